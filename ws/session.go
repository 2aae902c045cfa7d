package ws

import (
	"encoding/json"
	"log"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

// WebSocket bağlantı sabitleri
const (
	// writeWait: Bir mesajı yazmak için maksimum bekleme süresi.
	// Bu süre aşılırsa bağlantı kapatılır (ağ sorunu olabilir).
	writeWait = 10 * time.Second

	// pongWait: Client'ın heartbeat göndermesi için beklenen maksimum süre.
	// 3 heartbeat kaçırma = 30s × 3 = 90s.
	pongWait = 90 * time.Second

	// maxMessageSize: Client'ın gönderebileceği maksimum mesaj boyutu (byte).
	maxMessageSize = 4096

	// sendBufferSize: Her oturumun send channel'ının buffer boyutu.
	// Buffer dolarsa (client yavaş) oturum disconnect edilir.
	sendBufferSize = 256

	// callbackQueueSize: Persist gerektiren event'lerin kuyruk boyutu.
	// Kuyruk dolarsa read pump bekler — backpressure DB'ye kadar iner.
	callbackQueueSize = 64
)

// Session, tek bir WebSocket bağlantısını temsil eder.
//
// Her bağlantı için iki goroutine çalışır:
// - ReadPump: Client'dan gelen event'leri okur ve işler
// - WritePump: send channel'ından gelen mesajları bağlantıya yazar
//
// Neden iki goroutine?
// gorilla/websocket aynı anda sadece bir okuma ve bir yazma destekler.
// İki ayrı goroutine ile okuma ve yazma birbirini bloklamaz.
//
// userID bağlantı kurulurken token'dan çözülür ve oturum ömrü boyunca
// değişmez — client event'lerinde taşınan hiçbir kimlik bilgisine güvenilmez.
type Session struct {
	hub    *Hub
	conn   *websocket.Conn
	id     string // Bağlantı kimliği (uuid) — aynı kullanıcının sekmelerini ayırır
	userID string

	// send: Oturuma gönderilecek mesajların buffer'landığı channel.
	// Hub `session.send <- data` yazar, WritePump okuyup bağlantıya iletir.
	send chan []byte

	// callbacks: Persist gerektiren event'lerin (comment:create,
	// message:send, message:read) sıraya alındığı kuyruk. Tek bir worker
	// goroutine'i drain eder — aynı bağlantıdan gelen event'ler geliş
	// sırasıyla persist edilir, read pump ise bloklanmaz.
	// Tek üretici read pump'tır; kuyruğu ReadPump çıkarken kapatır.
	callbacks chan func()

	mu sync.Mutex // conn yazma çağrılarını korur
}

// NewSession, verilen bağlantı için yeni bir oturum oluşturur ve
// callback worker'ını başlatır.
func NewSession(hub *Hub, conn *websocket.Conn, id, userID string) *Session {
	s := &Session{
		hub:       hub,
		conn:      conn,
		id:        id,
		userID:    userID,
		send:      make(chan []byte, sendBufferSize),
		callbacks: make(chan func(), callbackQueueSize),
	}
	go s.runCallbacks()
	return s
}

// runCallbacks, kuyruktaki callback'leri sırayla çalıştırır.
// Kuyruk kapatıldığında kalan işler bitirilir, sonra çıkılır —
// bağlantı koparken alınmış bir mesaj yazılmadan kaybolmaz.
func (s *Session) runCallbacks() {
	for callback := range s.callbacks {
		callback()
	}
}

// ID, bağlantı kimliğini döner.
func (s *Session) ID() string { return s.id }

// UserID, oturumun bağlı olduğu kullanıcıyı döner.
func (s *Session) UserID() string { return s.userID }

// ReadPump, bağlantıdan gelen event'leri okur ve işler.
// Bağlantı kapanana kadar döngüde kalır; kapandığında Hub'dan çıkış yapar.
func (s *Session) ReadPump() {
	defer func() {
		close(s.callbacks)
		s.hub.unregister <- s
		s.conn.Close()
	}()

	s.conn.SetReadLimit(maxMessageSize)

	// Heartbeat gelmezse Read deadline aşımıyla hata verir ve oturum düşer.
	if err := s.conn.SetReadDeadline(time.Now().Add(pongWait)); err != nil {
		log.Printf("[ws] failed to set read deadline for user %s: %v", s.userID, err)
		return
	}

	for {
		_, rawMessage, err := s.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.Printf("[ws] unexpected close for user %s: %v", s.userID, err)
			}
			return
		}

		var event Event
		if err := json.Unmarshal(rawMessage, &event); err != nil {
			s.SendEvent(Event{Op: OpError, Data: ErrorData{Message: "invalid event format"}})
			continue
		}

		s.handleEvent(event)
	}
}

// handleEvent, client'dan gelen event'leri türüne göre işler.
//
// İki kategori vardır:
// - Persist gerektirmeyenler (heartbeat, typing, oda join/leave, presence):
//   doğrudan burada işlenir.
// - Persist gerektirenler (comment:create, message:send, message:read):
//   Hub callback'i üzerinden service katmanına devredilir. Callback'ler
//   oturumun kendi kuyruğuna eklenir — DB yazması read pump'ı bloklamaz
//   ama aynı bağlantının event'leri geliş sırasıyla işlenir.
func (s *Session) handleEvent(event Event) {
	switch event.Op {
	case OpHeartbeat:
		// Heartbeat geldi — deadline'ı yenile ve ack gönder.
		if err := s.conn.SetReadDeadline(time.Now().Add(pongWait)); err != nil {
			log.Printf("[ws] failed to set read deadline for user %s: %v", s.userID, err)
			return
		}
		s.SendEvent(Event{Op: OpHeartbeatAck})

	case OpTypingStart, OpTypingStop:
		s.handleTyping(event)

	case OpPostJoin, OpPostLeave:
		s.handlePostRoom(event)

	case OpConversationJoin, OpConversationLeave:
		s.handleConversationRoom(event)

	case OpCommentCreate:
		s.handleCommentCreate(event)

	case OpMessageSend:
		s.handleMessageSend(event)

	case OpMessageRead:
		s.handleMessageRead(event)

	case OpPresenceUpdate:
		s.handlePresenceUpdate(event)

	default:
		log.Printf("[ws] unknown op from user %s: %s", s.userID, event.Op)
	}
}

// handleTyping, typing:start / typing:stop event'ini konuşma odasına yayar.
// Ephemeral'dır: DB'ye yazılmaz, oda boşsa kaybolur.
func (s *Session) handleTyping(event Event) {
	var typing TypingData
	if err := decodeData(event.Data, &typing); err != nil || typing.ConversationID == "" {
		// Eksik conversation_id sessizce yutulur — typing görsel bir detay,
		// client'a hata dönmeye değmez.
		return
	}

	s.hub.BroadcastToRoomExcept(ConversationRoom(typing.ConversationID), s, Event{
		Op: event.Op,
		Data: TypingBroadcast{
			UserID:         s.userID,
			ConversationID: typing.ConversationID,
		},
	})
}

// handlePostRoom, post:join / post:leave ile gönderi odası üyeliğini yönetir.
// Gönderinin var olup olmadığı kontrol edilmez — olmayan bir gönderinin
// odasına katılmak zararsızdır, o odaya hiç event gelmez.
func (s *Session) handlePostRoom(event Event) {
	var data PostRoomData
	if err := decodeData(event.Data, &data); err != nil || data.PostID == "" {
		return
	}

	if event.Op == OpPostJoin {
		s.hub.registry.Join(s, PostRoom(data.PostID))
	} else {
		s.hub.registry.Leave(s, PostRoom(data.PostID))
	}
}

// handleConversationRoom, conversation:join / conversation:leave ile
// konuşma odası üyeliğini yönetir (typing indicator'lar için).
func (s *Session) handleConversationRoom(event Event) {
	var data ConversationRoomData
	if err := decodeData(event.Data, &data); err != nil || data.ConversationID == "" {
		return
	}

	if event.Op == OpConversationJoin {
		s.hub.registry.Join(s, ConversationRoom(data.ConversationID))
	} else {
		s.hub.registry.Leave(s, ConversationRoom(data.ConversationID))
	}
}

// handleCommentCreate, comment:create event'ini service callback'ine devreder.
// Persist, broadcast ve bildirim sorumluluğu callback'e aittir.
func (s *Session) handleCommentCreate(event Event) {
	var data CommentCreateData
	if err := decodeData(event.Data, &data); err != nil {
		s.SendEvent(Event{Op: OpError, Data: ErrorData{Message: "invalid comment payload"}})
		return
	}
	if data.PostID == "" || data.Content == "" {
		s.SendEvent(Event{Op: OpError, Data: ErrorData{Message: "post_id and content are required"}})
		return
	}

	if s.hub.onCommentCreate != nil {
		s.callbacks <- func() { s.hub.onCommentCreate(s, data) }
	}
}

// handleMessageSend, message:send event'ini service callback'ine devreder.
func (s *Session) handleMessageSend(event Event) {
	var data MessageSendData
	if err := decodeData(event.Data, &data); err != nil {
		s.SendEvent(Event{Op: OpError, Data: ErrorData{Message: "invalid message payload"}})
		return
	}
	if data.ReceiverID == "" || data.Content == "" {
		s.SendEvent(Event{Op: OpError, Data: ErrorData{Message: "receiver_id and content are required"}})
		return
	}

	if s.hub.onMessageSend != nil {
		s.callbacks <- func() { s.hub.onMessageSend(s, data) }
	}
}

// handleMessageRead, message:read event'ini service callback'ine devreder.
func (s *Session) handleMessageRead(event Event) {
	var data MessageReadData
	if err := decodeData(event.Data, &data); err != nil || data.MessageID == "" {
		s.SendEvent(Event{Op: OpError, Data: ErrorData{Message: "message_id is required"}})
		return
	}

	if s.hub.onMessageRead != nil {
		s.callbacks <- func() { s.hub.onMessageRead(s, data) }
	}
}

// handlePresenceUpdate, presence:update event'ini diğer oturumlara yayar.
// Ephemeral'dır: sunucu presence state'i saklamaz, yeni bağlananlar
// sonraki değişikliklere kadar kullanıcının durumunu bilmez.
func (s *Session) handlePresenceUpdate(event Event) {
	var data PresenceUpdateData
	if err := decodeData(event.Data, &data); err != nil {
		return
	}

	if !validPresenceStatus(data.Status) {
		log.Printf("[ws] invalid presence status from user %s: %s", s.userID, data.Status)
		return
	}

	s.hub.BroadcastToAllExcept(s, Event{
		Op:   OpPresenceChange,
		Data: PresenceChangeData{UserID: s.userID, Status: data.Status},
	})
}

// SendEvent, sadece bu oturuma tek bir event gönderir.
// Seq atanmaz — seq broadcast sırası içindir, hedefli ack/error
// event'leri sıraya dahil değildir.
// Gönderme Hub üzerinden yapılır: callback goroutine'i oturum düştükten
// sonra da SendEvent çağırabilir, kapalı channel'a yazılmamalı.
func (s *Session) SendEvent(event Event) {
	data, err := json.Marshal(event)
	if err != nil {
		log.Printf("[ws] failed to marshal event for user %s: %v", s.userID, err)
		return
	}

	s.hub.sendToSession(s, data)
}

// WritePump, send channel'ından gelen mesajları bağlantıya yazar.
func (s *Session) WritePump() {
	defer s.conn.Close()

	for {
		message, ok := <-s.send
		if !ok {
			// Channel kapatıldı — Hub oturumu çıkardı.
			s.writeMessage(websocket.CloseMessage, nil)
			return
		}

		if err := s.writeMessage(websocket.TextMessage, message); err != nil {
			return
		}
	}
}

// writeMessage, bağlantıya mesaj yazar. gorilla/websocket aynı anda
// birden fazla yazmaya izin vermez — mutex ile korunur.
func (s *Session) writeMessage(messageType int, data []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
		return err
	}
	return s.conn.WriteMessage(messageType, data)
}

// decodeData, `any` tipindeki event payload'ını hedef struct'a çevirir.
// event.Data doğrudan cast edilemez — JSON'a çevirip tekrar parse edilir.
func decodeData(data any, v any) error {
	raw, err := json.Marshal(data)
	if err != nil {
		return err
	}
	return json.Unmarshal(raw, v)
}
