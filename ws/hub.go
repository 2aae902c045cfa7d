package ws

import (
	"encoding/json"
	"log"
	"sync"
	"sync/atomic"
)

// EventPublisher, service katmanının WebSocket event'leri yayınlamak için
// kullandığı interface.
//
// Dependency Inversion: Service'ler Hub'ın concrete struct'ına değil,
// bu interface'e bağımlıdır. Böylece:
// 1. Service test edilirken fake EventPublisher kullanılabilir
// 2. Hub implementasyonu değişse bile service kodu etkilenmez
type EventPublisher interface {
	BroadcastToAll(event Event)
	BroadcastToRoom(roomID string, event Event)
	BroadcastToUser(userID string, event Event)
	IsUserOnline(userID string) bool
}

// Hub, tüm WebSocket oturumlarını ve oda üyeliklerini yöneten merkezi yapıdır.
//
// Go channel nedir? (register, unregister)
// Goroutine'ler arası güvenli iletişim sağlayan yapılar.
// Hub.Run() goroutine'i bu channel'lardan `select` ile okur:
// - register channel'dan yeni oturum gelirse → sessions map'e ekle
// - unregister channel'dan oturum gelirse → map'ten çıkar, odalardan temizle
type Hub struct {
	// sessions: Aktif tüm oturumların set'i.
	// Go'da set yoktur, map[*Session]bool kullanılır — bool her zaman true'dur.
	sessions map[*Session]bool

	// mu: sessions map'ini koruyan read-write mutex.
	// Birden fazla okuyucu aynı anda erişebilir (RLock),
	// yazma işlemi sırasında tüm erişim bloklanır (Lock).
	mu sync.RWMutex

	// registry: Oda üyelikleri. Kendi kilidini kendisi yönetir.
	registry *RoomRegistry

	// register/unregister: Oturum giriş/çıkış sinyalleri.
	register   chan *Session
	unregister chan *Session

	// seq: Her outbound broadcast'e verilen artan sayaç.
	// atomic.Int64: Birden fazla goroutine'in güvenle okuyup yazabildiği sayı.
	seq atomic.Int64

	// Persist gerektiren event'lerin callback'leri (init_callbacks.go'da set edilir).
	// Hub DB'yi bilmez — sorumluluk service katmanına devredilir.
	onCommentCreate func(s *Session, data CommentCreateData)
	onMessageSend   func(s *Session, data MessageSendData)
	onMessageRead   func(s *Session, data MessageReadData)
}

// NewHub, yeni bir Hub oluşturur.
func NewHub() *Hub {
	return &Hub{
		sessions:   make(map[*Session]bool),
		registry:   NewRoomRegistry(),
		register:   make(chan *Session),
		unregister: make(chan *Session),
	}
}

// Run, Hub'ın ana event loop'udur. main.go'da `go hub.Run()` ile başlatılır.
//
// select nedir?
// Birden fazla channel'ı aynı anda dinler.
// Hangi channel'dan veri gelirse o case çalışır, hiçbirinden gelmezse bekler.
func (h *Hub) Run() {
	for {
		select {
		case session := <-h.register:
			h.addSession(session)

		case session := <-h.unregister:
			h.removeSession(session)
		}
	}
}

// Registry, oda üyelik kayıtlarını döner.
func (h *Hub) Registry() *RoomRegistry {
	return h.registry
}

// OnCommentCreate, comment:create callback'ini set eder.
func (h *Hub) OnCommentCreate(fn func(s *Session, data CommentCreateData)) {
	h.onCommentCreate = fn
}

// OnMessageSend, message:send callback'ini set eder.
func (h *Hub) OnMessageSend(fn func(s *Session, data MessageSendData)) {
	h.onMessageSend = fn
}

// OnMessageRead, message:read callback'ini set eder.
func (h *Hub) OnMessageRead(fn func(s *Session, data MessageReadData)) {
	h.onMessageRead = fn
}

// addSession, yeni bir oturumu Hub'a ekler ve kullanıcının kişisel
// odasına otomatik katılımını yapar.
func (h *Hub) addSession(session *Session) {
	h.mu.Lock()
	h.sessions[session] = true
	h.mu.Unlock()

	// Kişisel oda üyeliği: DM, bildirim ve okundu bilgisi buraya gider.
	h.registry.Join(session, UserRoom(session.userID))

	log.Printf("[ws] session connected: id=%s user=%s (connections for user: %d)",
		session.id, session.userID, h.registry.Count(UserRoom(session.userID)))
}

// removeSession, bir oturumu Hub'dan çıkarır, tüm odalardan temizler ve
// send channel'ını kapatır. Kullanıcının son bağlantısıysa herkese
// presence:change (offline) broadcast edilir.
func (h *Hub) removeSession(session *Session) {
	h.mu.Lock()
	if _, ok := h.sessions[session]; !ok {
		// Aynı oturum iki kez unregister edilebilir (buffer dolu + read hata).
		h.mu.Unlock()
		return
	}
	delete(h.sessions, session)
	close(session.send)
	h.mu.Unlock()

	h.registry.LeaveAll(session)

	// Presence broadcast sessions kilidi bırakıldıktan sonra yapılır —
	// BroadcastToAll RLock aldığı için içeride çağrılamaz.
	if h.registry.Count(UserRoom(session.userID)) == 0 {
		log.Printf("[ws] user fully disconnected: %s", session.userID)
		h.BroadcastToAll(Event{
			Op:   OpPresenceChange,
			Data: PresenceChangeData{UserID: session.userID, Status: PresenceOffline},
		})
	} else {
		log.Printf("[ws] session disconnected: id=%s user=%s", session.id, session.userID)
	}
}

// BroadcastToAll, tüm bağlı oturumlara event gönderir.
func (h *Hub) BroadcastToAll(event Event) {
	data, ok := h.marshalWithSeq(event)
	if !ok {
		return
	}

	h.mu.RLock()
	defer h.mu.RUnlock()

	for session := range h.sessions {
		h.trySend(session, data)
	}
}

// BroadcastToAllExcept, bir oturum hariç tüm oturumlara event gönderir.
// presence:update broadcast'inde gönderen kendi değişikliğini zaten bilir.
func (h *Hub) BroadcastToAllExcept(exclude *Session, event Event) {
	data, ok := h.marshalWithSeq(event)
	if !ok {
		return
	}

	h.mu.RLock()
	defer h.mu.RUnlock()

	for session := range h.sessions {
		if session == exclude {
			continue
		}
		h.trySend(session, data)
	}
}

// BroadcastToRoom, odanın tüm üyelerine event gönderir.
// Oda boşsa event sessizce düşer — hata değildir.
func (h *Hub) BroadcastToRoom(roomID string, event Event) {
	h.broadcastToRoomExcept(roomID, nil, event)
}

// BroadcastToRoomExcept, bir oturum hariç odanın üyelerine event gönderir.
// Typing indicator'da gönderene kendi typing event'i gitmez.
func (h *Hub) BroadcastToRoomExcept(roomID string, exclude *Session, event Event) {
	h.broadcastToRoomExcept(roomID, exclude, event)
}

func (h *Hub) broadcastToRoomExcept(roomID string, exclude *Session, event Event) {
	data, ok := h.marshalWithSeq(event)
	if !ok {
		return
	}

	// Members snapshot döner — iterate sırasında registry kilidi tutulmaz.
	members := h.registry.Members(roomID)

	// Gönderme sessions kilidi altında yapılır: removeSession send
	// channel'ını Lock tutarken kapatır, kapalı channel'a yazmak panic'tir.
	// Snapshot ile kapanış arasında düşen üyeler map kontrolüyle atlanır.
	h.mu.RLock()
	defer h.mu.RUnlock()

	for _, session := range members {
		if session == exclude || !h.sessions[session] {
			continue
		}
		h.trySend(session, data)
	}
}

// BroadcastToUser, kullanıcının tüm bağlantılarına event gönderir.
// Kişisel oda üzerinden çalışır: her oturum bağlanırken user:<id> odasına katılır.
func (h *Hub) BroadcastToUser(userID string, event Event) {
	h.broadcastToRoomExcept(UserRoom(userID), nil, event)
}

// IsUserOnline, kullanıcının en az bir aktif bağlantısı olup olmadığını döner.
func (h *Hub) IsUserOnline(userID string) bool {
	return h.registry.Count(UserRoom(userID)) > 0
}

// marshalWithSeq, event'e sıradaki seq numarasını verip JSON'a çevirir.
// Seq ataması marshal'dan önce yapılır — tüm alıcılar aynı numarayı görür.
func (h *Hub) marshalWithSeq(event Event) ([]byte, bool) {
	event.Seq = h.seq.Add(1)

	data, err := json.Marshal(event)
	if err != nil {
		log.Printf("[ws] failed to marshal broadcast event %s: %v", event.Op, err)
		return nil, false
	}
	return data, true
}

// sendToSession, hedefli (broadcast olmayan) bir mesajı oturuma iletir.
// Oturum Hub'dan çıkarılmışsa mesaj düşer — send channel'ı kapanmış olabilir.
func (h *Hub) sendToSession(session *Session, data []byte) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	if !h.sessions[session] {
		return
	}
	h.trySend(session, data)
}

// trySend, mesajı oturumun send buffer'ına eklemeyi dener.
// Buffer doluysa oturum yavaş demektir — bağlantı kopartılır.
// Çağıranlar h.mu'yu (en az RLock) tutmak zorundadır.
func (h *Hub) trySend(session *Session, data []byte) {
	select {
	case session.send <- data:
	default:
		go func(s *Session) { h.unregister <- s }(session)
	}
}

// Shutdown, tüm oturum bağlantılarını kapatır (graceful shutdown).
func (h *Hub) Shutdown() {
	h.mu.Lock()
	defer h.mu.Unlock()

	for session := range h.sessions {
		close(session.send)
	}
	h.sessions = make(map[*Session]bool)
	log.Println("[ws] hub shut down, all connections closed")
}
