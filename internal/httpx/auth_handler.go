package httpx

import (
	"context"
	"errors"
	"net/http"

	"github.com/ariefcatur/djikoe/internal/auth"
	"github.com/ariefcatur/djikoe/internal/profile"
	"github.com/ariefcatur/djikoe/internal/session"
)

var (
	errProfileMissing = errors.New("data pengguna tidak ditemukan")
	errUnknownRole    = errors.New("role pengguna tidak dikenali")
)

func (h *handler) loginForm(w http.ResponseWriter, r *http.Request) {
	h.render(w, r, "login", http.StatusOK, view{Title: "Login", Nav: "public"})
}

func (h *handler) login(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.fail(w, r, "sign_in", err, "/login")
		return
	}
	ctx, cancel := context.WithTimeout(r.Context(), writeTimeout)
	defer cancel()

	token, id, err := h.Auth.SignIn(ctx, r.PostFormValue("email"), r.PostFormValue("password"))
	if err != nil {
		h.fail(w, r, "sign_in", err, "/login")
		return
	}

	// tujuan redirect ditentukan role di profile
	a, ok := h.Resolver.Resolve(ctx, &id).(session.Authenticated)
	if !ok {
		_ = h.Auth.SignOut(ctx, token)
		h.fail(w, r, "sign_in", errProfileMissing, "/login")
		return
	}
	var next string
	switch a.Profile.Role {
	case profile.RoleAdmin:
		next = "/admin"
	case profile.RoleUser:
		next = "/user"
	default:
		_ = h.Auth.SignOut(ctx, token)
		h.fail(w, r, "sign_in", errUnknownRole, "/login")
		return
	}

	session.SetCookie(w, token, h.SessionTTL, h.CookieSecure)
	h.log.Info("signed in", "operation", "sign_in", "outcome", "success", "uid", id.UID, "role", a.Profile.Role)
	h.ok(w, "Login berhasil.", next)
}

func (h *handler) registerForm(w http.ResponseWriter, r *http.Request) {
	h.render(w, r, "register", http.StatusOK, view{Title: "Daftar", Nav: "public"})
}

// register tidak pernah membuat admin dan tidak otomatis login.
func (h *handler) register(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.fail(w, r, "sign_up", err, "/register")
		return
	}
	ctx, cancel := writeCtx(r)
	defer cancel()

	_, err := h.Auth.SignUp(ctx, auth.SignUpInput{
		Name:     r.PostFormValue("name"),
		Email:    r.PostFormValue("email"),
		Password: r.PostFormValue("password"),
	})
	if err != nil {
		h.fail(w, r, "sign_up", err, "/register")
		return
	}
	h.ok(w, "Registrasi berhasil, silakan login.", "/login")
}

func (h *handler) logout(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := writeCtx(r)
	defer cancel()

	err := h.Auth.SignOut(ctx, session.TokenFromRequest(r))
	session.ClearCookie(w, h.CookieSecure)
	if err != nil {
		h.fail(w, r, "sign_out", err, "/login")
		return
	}
	h.ok(w, "Anda telah logout.", "/login")
}
