package ws

import "sync"

// Oda isimlendirme kuralı: "<tür>:<id>". Oda üyeliği bağlantı bazlıdır —
// aynı kullanıcının iki sekmesi aynı odaya ayrı ayrı katılır.

// UserRoom, kullanıcının kişisel odasının adını döner.
// Her oturum bağlanır bağlanmaz otomatik olarak bu odaya katılır;
// DM, bildirim ve okundu bilgisi gibi hedefli event'ler buraya gider.
func UserRoom(userID string) string {
	return "user:" + userID
}

// PostRoom, bir gönderinin canlı yorum odasının adını döner.
func PostRoom(postID string) string {
	return "post:" + postID
}

// ConversationRoom, bir konuşmanın typing indicator odasının adını döner.
func ConversationRoom(conversationID string) string {
	return "conversation:" + conversationID
}

// RoomRegistry, oda → üye oturumlar eşlemesini tutar.
//
// Odalar lazy oluşturulur: ilk Join'de map'e girer, son üye ayrılınca
// silinir. Boş oda diye bir durum kalıcı olarak var olmaz.
//
// Üyelik iki yönlü izlenir (rooms + bySession) — bağlantı koptuğunda
// LeaveAll tek geçişte tüm odalardan temizlik yapabilsin diye.
type RoomRegistry struct {
	mu        sync.RWMutex
	rooms     map[string]map[*Session]bool
	bySession map[*Session]map[string]bool
}

// NewRoomRegistry, boş bir RoomRegistry oluşturur.
func NewRoomRegistry() *RoomRegistry {
	return &RoomRegistry{
		rooms:     make(map[string]map[*Session]bool),
		bySession: make(map[*Session]map[string]bool),
	}
}

// Join, oturumu odaya ekler. Idempotent — zaten üyeyse no-op.
func (r *RoomRegistry) Join(s *Session, roomID string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.rooms[roomID] == nil {
		r.rooms[roomID] = make(map[*Session]bool)
	}
	r.rooms[roomID][s] = true

	if r.bySession[s] == nil {
		r.bySession[s] = make(map[string]bool)
	}
	r.bySession[s][roomID] = true
}

// Leave, oturumu odadan çıkarır. Üye değilse no-op.
// Oda boşalırsa map'ten silinir.
func (r *RoomRegistry) Leave(s *Session, roomID string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.leaveLocked(s, roomID)
}

// LeaveAll, oturumu üyesi olduğu tüm odalardan çıkarır ve bu odaların
// listesini döner. Bağlantı kopması temizliğinde kullanılır.
func (r *RoomRegistry) LeaveAll(s *Session) []string {
	r.mu.Lock()
	defer r.mu.Unlock()

	left := make([]string, 0, len(r.bySession[s]))
	for roomID := range r.bySession[s] {
		left = append(left, roomID)
		r.leaveLocked(s, roomID)
	}
	return left
}

// leaveLocked, r.mu yazma kilidi tutulurken çağrılmalıdır.
func (r *RoomRegistry) leaveLocked(s *Session, roomID string) {
	if members, ok := r.rooms[roomID]; ok {
		delete(members, s)
		if len(members) == 0 {
			delete(r.rooms, roomID)
		}
	}
	if rooms, ok := r.bySession[s]; ok {
		delete(rooms, roomID)
		if len(rooms) == 0 {
			delete(r.bySession, s)
		}
	}
}

// Members, odanın üye oturumlarının snapshot'ını döner.
// Dönen slice kopya olduğu için kilitsiz iterate edilebilir.
func (r *RoomRegistry) Members(roomID string) []*Session {
	r.mu.RLock()
	defer r.mu.RUnlock()

	members := make([]*Session, 0, len(r.rooms[roomID]))
	for s := range r.rooms[roomID] {
		members = append(members, s)
	}
	return members
}

// Count, odanın üye sayısını döner. Oda yoksa 0.
func (r *RoomRegistry) Count(roomID string) int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.rooms[roomID])
}

// Contains, oturumun odanın üyesi olup olmadığını döner.
func (r *RoomRegistry) Contains(s *Session, roomID string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.rooms[roomID][s]
}
