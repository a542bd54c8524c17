package httpx

import (
	"context"
	"html/template"
	"io/fs"
	"log/slog"
	"net/http"
	"time"

	"github.com/ariefcatur/djikoe/internal/auth"
	"github.com/ariefcatur/djikoe/internal/catalog"
	"github.com/ariefcatur/djikoe/internal/checkout"
	"github.com/ariefcatur/djikoe/internal/guard"
	"github.com/ariefcatur/djikoe/internal/notice"
	"github.com/ariefcatur/djikoe/internal/pesanan"
	"github.com/ariefcatur/djikoe/internal/profile"
	"github.com/ariefcatur/djikoe/internal/session"
	"github.com/ariefcatur/djikoe/internal/statistik"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

type Deps struct {
	Auth      *auth.Service
	Hub       *session.Hub
	Resolver  *session.Resolver
	Catalog   *catalog.Service
	Pesanan   *pesanan.Service
	Checkout  *checkout.Service
	Statistik *statistik.Service
	Notices   *notice.Page

	SessionTTL     time.Duration
	CookieSecure   bool
	MaxUploadBytes int64
	RequestTimeout time.Duration

	// Uploads opsional, untuk menyajikan gambar di mode memory.
	Uploads http.Handler
	// Health dicek oleh /healthz, key = nama dependency.
	Health map[string]func(ctx context.Context) error
	Log    *slog.Logger
}

type handler struct {
	Deps
	tmpl    map[string]*template.Template
	notices *notice.Page
	log     *slog.Logger
}

func NewRouter(d Deps) (*chi.Mux, error) {
	tmpl, err := parseTemplates()
	if err != nil {
		return nil, err
	}
	if d.RequestTimeout <= 0 {
		d.RequestTimeout = 30 * time.Second
	}
	if d.MaxUploadBytes <= 0 {
		d.MaxUploadBytes = 5 << 20
	}
	h := &handler{Deps: d, tmpl: tmpl, notices: d.Notices, log: d.Log}

	r := chi.NewRouter()
	r.Use(middleware.RequestID, middleware.RealIP, requestLogger(d.Log), middleware.Recoverer)
	r.Use(middleware.Timeout(d.RequestTimeout))

	r.Get("/healthz", h.healthz)
	static, _ := fs.Sub(staticFS, "static")
	r.Handle("/static/*", http.StripPrefix("/static/", http.FileServer(http.FS(static))))
	if d.Uploads != nil {
		r.Handle("/uploads/*", d.Uploads)
	}

	// publik
	r.Get("/", h.home)
	r.Get("/home", h.home)
	r.Get("/produk", h.produk)
	r.Get("/login", h.loginForm)
	r.Post("/login", h.login)
	r.Get("/register", h.registerForm)
	r.Post("/register", h.register)
	r.Post("/logout", h.logout)

	opts := guard.Options{Loading: http.HandlerFunc(h.loading), Log: d.Log}

	// role=user
	r.Group(func(r chi.Router) {
		r.Use(guard.Require(d.Hub, profile.RoleUser, opts))
		r.Get("/user", h.userHome)
		r.Get("/riwayat", h.riwayat)
		r.Get("/detail-produk-user/{id}", h.detailProduk)
		r.Post("/detail-produk-user/{id}", h.submitPesanan)
	})

	// role=admin
	r.Group(func(r chi.Router) {
		r.Use(guard.Require(d.Hub, profile.RoleAdmin, opts))
		r.Get("/admin", h.adminDashboard)
		r.Get("/admin-produk", h.adminProduk)
		r.Post("/admin-produk", h.saveProduk)
		r.Post("/admin-produk/{id}/hapus", h.hapusProduk)
		r.Get("/admin-pesanan", h.adminPesanan)
		r.Post("/admin-pesanan/{id}/status", h.ubahStatus)
		r.Post("/admin-pesanan/{id}/hapus", h.hapusPesanan)
	})
	return r, nil
}

func (h *handler) healthz(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	status := map[string]string{}
	code := http.StatusOK
	for name, check := range h.Health {
		if err := check(ctx); err != nil {
			status[name] = err.Error()
			code = http.StatusServiceUnavailable
			continue
		}
		status[name] = "ok"
	}
	writeJSON(w, code, map[string]any{"status": http.StatusText(code), "deps": status})
}

// loading: tanpa konten terlindungi, tanpa redirect; browser refresh sendiri.
func (h *handler) loading(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Refresh", "1")
	w.Header().Set("Cache-Control", "no-store")
	h.execute(w, "loading", http.StatusOK, view{Title: "Memuat"})
}
