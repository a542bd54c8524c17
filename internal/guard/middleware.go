package guard

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/ariefcatur/djikoe/internal/notice"
	"github.com/ariefcatur/djikoe/internal/profile"
	"github.com/ariefcatur/djikoe/internal/session"
)

type StateSource interface {
	Current(ctx context.Context, token string) session.State
}

type Options struct {
	LoginPath string
	HomePath  string
	// Loading merender halaman tunggu; nil = halaman bawaan.
	Loading http.Handler
	Log     *slog.Logger
}

func (o Options) normalize() Options {
	if o.LoginPath == "" {
		o.LoginPath = "/login"
	}
	if o.HomePath == "" {
		o.HomePath = "/"
	}
	if o.Loading == nil {
		o.Loading = http.HandlerFunc(loadingPage)
	}
	if o.Log == nil {
		o.Log = slog.Default()
	}
	return o
}

// Require memasang guard role pada route.
func Require(src StateSource, role profile.Role, opts Options) func(http.Handler) http.Handler {
	opts = opts.normalize()
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			st := src.Current(r.Context(), session.TokenFromRequest(r))
			d := Decide(st, role)
			opts.Log.Debug("guard decision",
				"operation", "guard", "outcome", d.String(), "path", r.URL.Path, "required", role)

			switch d {
			case Wait:
				opts.Loading.ServeHTTP(w, r)
			case RedirectLogin:
				msg := "Silakan login terlebih dahulu"
				if u, ok := st.(session.Unauthenticated); ok && u.Reason != session.ReasonSignedOut {
					msg = "Data akun tidak ditemukan, silakan login ulang"
				}
				notice.Set(w, notice.Notice{Kind: notice.Error, Message: msg})
				http.Redirect(w, r, opts.LoginPath, http.StatusSeeOther)
			case RedirectHome:
				notice.Set(w, notice.Notice{Kind: notice.Error, Message: "Akses ditolak"})
				http.Redirect(w, r, opts.HomePath, http.StatusSeeOther)
			case Allow:
				next.ServeHTTP(w, r.WithContext(session.WithState(r.Context(), st)))
			}
		})
	}
}

// loadingPage: netral, tanpa konten terlindungi dan tanpa redirect.
func loadingPage(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Cache-Control", "no-store")
	w.Header().Set("Refresh", "1")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(`<!doctype html><html lang="id"><head><meta charset="utf-8"><title>Memuat...</title></head><body><p>Memuat...</p></body></html>`))
}
