package httpx

import (
	"errors"
	"net/http"

	"github.com/ariefcatur/djikoe/internal/auth"
	"github.com/ariefcatur/djikoe/internal/catalog"
	"github.com/ariefcatur/djikoe/internal/checkout"
	"github.com/ariefcatur/djikoe/internal/guard"
	"github.com/ariefcatur/djikoe/internal/imagehost"
	"github.com/ariefcatur/djikoe/internal/notice"
	"github.com/ariefcatur/djikoe/internal/pesanan"
)

// Pesan sentinel sudah dalam bahasa pengguna; error lain disamarkan.
var userFacing = []error{
	guard.ErrForbidden,
	auth.ErrInvalidCredentials,
	auth.ErrEmailTaken,
	auth.ErrWeakPassword,
	auth.ErrMissingFields,
	catalog.ErrNotFound,
	catalog.ErrInvalidInput,
	pesanan.ErrNotFound,
	pesanan.ErrInvalidStatus,
	pesanan.ErrUnknownShipping,
	pesanan.ErrInvalidJumlah,
	pesanan.ErrTotalOverflow,
	checkout.ErrInvalidForm,
	checkout.ErrUploadFailed,
	checkout.ErrCreateFailed,
	checkout.ErrLoginRequired,
	imagehost.ErrTooLarge,
	imagehost.ErrEmptyFile,
	errProfileMissing,
	errUnknownRole,
}

func userMessage(err error) string {
	for _, target := range userFacing {
		if errors.Is(err, target) {
			return capitalize(target.Error())
		}
	}
	return genericMessage
}

const genericMessage = "Terjadi kesalahan, silakan coba lagi."

func capitalize(s string) string {
	if s == "" {
		return s
	}
	b := []byte(s)
	if b[0] >= 'a' && b[0] <= 'z' {
		b[0] -= 'a' - 'A'
	}
	return string(b) + "."
}

// fail: log lalu tampilkan notice, kembali ke next setelah jeda.
func (h *handler) fail(w http.ResponseWriter, r *http.Request, op string, err error, next string) {
	level := h.log.Warn
	if userMessage(err) == genericMessage {
		level = h.log.Error
	}
	level("request failed", "operation", op, "outcome", "failed", "path", r.URL.Path, "error", err)
	h.notices.Render(w, notice.Notice{Kind: notice.Error, Message: userMessage(err)}, next)
}

func (h *handler) ok(w http.ResponseWriter, msg, next string) {
	h.notices.Render(w, notice.Notice{Kind: notice.Success, Message: msg}, next)
}
