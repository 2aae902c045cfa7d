package ws

import (
	"log"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/Naitikhacke/Exposia/models"
)

// TokenValidator, WebSocket handshake'inde access token doğrulaması için
// kullanılan interface. AuthService bu interface'i implemente eder —
// ws paketi services paketine bağımlı olmaz (import cycle önlenir).
type TokenValidator interface {
	ValidateAccessToken(token string) (*models.TokenClaims, error)
}

// upgrader, HTTP bağlantısını WebSocket'e yükseltir.
//
// CheckOrigin neden true dönüyor?
// Origin kontrolü CORS middleware'de yapılır; WS auth zaten token ile
// sağlanır. Tarayıcı dışı client'lar (mobil, test) origin göndermez.
var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// Handler, WebSocket bağlantı isteklerini karşılar.
type Handler struct {
	hub       *Hub
	validator TokenValidator
}

// NewHandler, yeni bir WebSocket handler'ı oluşturur.
func NewHandler(hub *Hub, validator TokenValidator) *Handler {
	return &Handler{hub: hub, validator: validator}
}

// HandleConnection, GET /ws isteğini işler.
//
// Handshake akışı:
//  1. Query'den token alınır (?token=...) — tarayıcı WebSocket API'si
//     custom header desteklemediği için token query param ile taşınır.
//  2. Token doğrulanır, userID çözülür. Geçersizse bağlantı REDDEDİLİR —
//     anonim oturum açılmaz.
//  3. Bağlantı WebSocket'e upgrade edilir, oturum Hub'a kaydedilir.
//  4. Read/Write pump goroutine'leri başlatılır.
func (h *Handler) HandleConnection(w http.ResponseWriter, r *http.Request) {
	token := r.URL.Query().Get("token")
	if token == "" {
		http.Error(w, "missing token", http.StatusUnauthorized)
		return
	}

	claims, err := h.validator.ValidateAccessToken(token)
	if err != nil {
		log.Printf("[ws] rejected connection: invalid token: %v", err)
		http.Error(w, "invalid token", http.StatusUnauthorized)
		return
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		// Upgrade başarısızsa cevap zaten yazılmıştır.
		log.Printf("[ws] upgrade failed for user %s: %v", claims.UserID, err)
		return
	}

	session := NewSession(h.hub, conn, uuid.NewString(), claims.UserID)
	h.hub.register <- session

	go session.WritePump()
	go session.ReadPump()
}
