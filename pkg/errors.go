// Package pkg, katmanlar arasında paylaşılan küçük yardımcıları toplar.
//
// Buradaki sentinel error'lar katman sınırlarının ortak dili:
// repository ve service hangi hatanın olduğunu string mesajla değil
// errors.Is ile ayırt edilebilen sabit değerlerle bildirir.
package pkg

import "errors"

// Sentinel error'lar. %w ile sarılıp yukarı taşınır; handler katmanı
// HTTP status'a, ws katmanı error event'ine çevirir. Yeni bir hata türü
// eklenirse mapErrorToStatus'a da case eklenmelidir.
var (
	ErrNotFound      = errors.New("not found")
	ErrUnauthorized  = errors.New("unauthorized")
	ErrForbidden     = errors.New("forbidden")
	ErrAlreadyExists = errors.New("already exists")
	ErrBadRequest    = errors.New("bad request")
	ErrInternal      = errors.New("internal error")
)
