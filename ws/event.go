// Package ws, WebSocket bağlantı yönetimi ve gerçek zamanlı event dağıtımını sağlar.
//
// Mimari:
//   - Hub: Tüm oturumları ve oda üyeliklerini yöneten merkezi yapı
//   - RoomRegistry: RoomID → aktif Session set eşlemesi (join/leave/broadcast)
//   - Session: Her WebSocket bağlantısını temsil eder (kimlik + oda üyelikleri)
//   - Event: Client-server arası iletilen mesaj formatı
//
// Event akışı (örnek: comment:create):
//  1. Client `comment:create` gönderir → Session.handleEvent
//  2. Payload typed struct'a decode edilir, zorunlu alanlar kontrol edilir
//  3. Hub callback'i servis katmanını çağırır → DB kayıt
//  4. Kayıt başarılıysa `comment:new` event'i `post:<id>` odasına broadcast edilir
//  5. Gönderi sahibine notification fan-out yapılır (persist → push)
package ws

// Event, WebSocket üzerinden iletilen bir mesajı temsil eder.
//
// Op: Event türü — "comment:create", "message:new" vb.
// Data: Event'e özgü payload.
// Seq: Her outbound broadcast'e verilen artan sayı — frontend eksik
// event tespiti için takip eder (seq 5'ten sonra seq 7 gelirse 6 kayıp).
type Event struct {
	Op   string `json:"op"`
	Data any    `json:"d,omitempty"`
	Seq  int64  `json:"seq,omitempty"`
}

// Client → Server operasyonları
const (
	OpHeartbeat         = "heartbeat"          // Client periyodik gönderir — "hâlâ bağlıyım" sinyali
	OpTypingStart       = "typing:start"       // Kullanıcı konuşmada yazmaya başladı
	OpTypingStop        = "typing:stop"        // Kullanıcı yazmayı bıraktı
	OpPostJoin          = "post:join"          // Gönderi odasına katıl (canlı yorumlar için)
	OpPostLeave         = "post:leave"         // Gönderi odasından ayrıl
	OpConversationJoin  = "conversation:join"  // Konuşma odasına katıl (typing indicator için)
	OpConversationLeave = "conversation:leave" // Konuşma odasından ayrıl
	OpCommentCreate     = "comment:create"     // Yeni yorum oluştur
	OpMessageSend       = "message:send"       // Direkt mesaj gönder
	OpMessageRead       = "message:read"       // Mesajı okundu olarak işaretle
	OpPresenceUpdate    = "presence:update"    // Durum değişikliği (online/away/offline)
)

// Server → Client operasyonları
const (
	OpHeartbeatAck    = "heartbeat_ack"    // Heartbeat'e yanıt
	OpCommentNew      = "comment:new"      // Gönderi odasına yeni yorum
	OpMessageNew      = "message:new"      // Alıcının kişisel odasına yeni mesaj
	OpMessageSent     = "message:sent"     // Gönderene ack — broadcast DEĞİL, tek bağlantıya gider
	OpMessageReadRcpt = "message:read"     // Gönderenin kişisel odasına okundu bilgisi
	OpPresenceChange  = "presence:change"  // Bir kullanıcının durumu değişti
	OpNotificationNew = "notification:new" // Alıcının kişisel odasına bildirim
	OpPostCreated     = "post:created"     // REST katmanı yeni gönderiyi yazarın odasına iter
	OpError           = "error"            // Sadece kaynak oturuma giden hata event'i
)

// TypingData, typing:start / typing:stop event'lerinin inbound payload'ı.
type TypingData struct {
	ConversationID string `json:"conversation_id"`
}

// TypingBroadcast, typing event'lerinin broadcast edilen payload'ı.
type TypingBroadcast struct {
	UserID         string `json:"user_id"`
	ConversationID string `json:"conversation_id"`
}

// PostRoomData, post:join / post:leave payload'ı.
type PostRoomData struct {
	PostID string `json:"post_id"`
}

// ConversationRoomData, conversation:join / conversation:leave payload'ı.
type ConversationRoomData struct {
	ConversationID string `json:"conversation_id"`
}

// CommentCreateData, comment:create event'inin inbound payload'ı.
// ParentID dolu ise yorum bir cevaptır (threaded reply).
type CommentCreateData struct {
	PostID   string  `json:"post_id"`
	Content  string  `json:"content"`
	ParentID *string `json:"parent_id,omitempty"`
}

// MessageSendData, message:send event'inin inbound payload'ı.
type MessageSendData struct {
	ReceiverID string `json:"receiver_id"`
	Content    string `json:"content"`
}

// MessageReadData, message:read event'inin inbound payload'ı.
type MessageReadData struct {
	MessageID string `json:"message_id"`
}

// ReadReceiptData, message:read okundu bilgisinin outbound payload'ı.
// Mesajı gönderen kullanıcının kişisel odasına gider.
type ReadReceiptData struct {
	MessageID string `json:"message_id"`
}

// PresenceUpdateData, presence:update event'inin inbound payload'ı.
type PresenceUpdateData struct {
	Status string `json:"status"`
}

// PresenceChangeData, presence:change broadcast payload'ı.
type PresenceChangeData struct {
	UserID string `json:"user_id"`
	Status string `json:"status"`
}

// ErrorData, error event'inin payload'ı.
// Sadece hatayı tetikleyen oturuma gönderilir — diğer oturumlar etkilenmez.
type ErrorData struct {
	Message string `json:"message"`
}

// İzin verilen presence status değerleri.
const (
	PresenceOnline  = "online"
	PresenceAway    = "away"
	PresenceOffline = "offline"
)

// validPresenceStatus, verilen status'un tanımlı olup olmadığını döner.
func validPresenceStatus(status string) bool {
	switch status {
	case PresenceOnline, PresenceAway, PresenceOffline:
		return true
	}
	return false
}
