package notice

import (
	"encoding/base64"
	"encoding/json"
	"net/http"
)

type Kind string

const (
	Info    Kind = "info"
	Success Kind = "success"
	Error   Kind = "error"
)

// Notice = pesan sementara yang tampil sekali lalu hilang.
type Notice struct {
	Kind    Kind   `json:"kind"`
	Message string `json:"message"`
}

const cookieName = "djikoe_notice"

// Set menyimpan notice sebagai flash cookie untuk request berikutnya.
func Set(w http.ResponseWriter, n Notice) {
	b, err := json.Marshal(n)
	if err != nil {
		return
	}
	http.SetCookie(w, &http.Cookie{
		Name:     cookieName,
		Value:    base64.RawURLEncoding.EncodeToString(b),
		Path:     "/",
		MaxAge:   60,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

// Pop membaca lalu menghapus flash cookie.
func Pop(w http.ResponseWriter, r *http.Request) (Notice, bool) {
	c, err := r.Cookie(cookieName)
	if err != nil || c.Value == "" {
		return Notice{}, false
	}
	http.SetCookie(w, &http.Cookie{Name: cookieName, Value: "", Path: "/", MaxAge: -1})

	raw, err := base64.RawURLEncoding.DecodeString(c.Value)
	if err != nil {
		return Notice{}, false
	}
	var n Notice
	if err := json.Unmarshal(raw, &n); err != nil || n.Message == "" {
		return Notice{}, false
	}
	return n, true
}
