package httpx

import (
	"bytes"
	"embed"
	"encoding/json"
	"fmt"
	"html/template"
	"net/http"
	"strconv"

	"github.com/ariefcatur/djikoe/internal/notice"
)

//go:embed templates/*.html
var templateFS embed.FS

//go:embed static
var staticFS embed.FS

var pages = []string{
	"home", "produk", "login", "register",
	"user", "riwayat", "detail",
	"admin", "admin_produk", "admin_pesanan",
	"loading",
}

var funcs = template.FuncMap{"rupiah": rupiah}

func parseTemplates() (map[string]*template.Template, error) {
	out := make(map[string]*template.Template, len(pages))
	for _, p := range pages {
		t, err := template.New(p).Funcs(funcs).ParseFS(templateFS,
			"templates/layout.html", "templates/partials.html", "templates/"+p+".html")
		if err != nil {
			return nil, fmt.Errorf("parse template %s: %w", p, err)
		}
		out[p] = t
	}
	return out, nil
}

// rupiah: 85000 -> "Rp 85.000"
func rupiah(v int64) string {
	neg := v < 0
	if neg {
		v = -v
	}
	s := strconv.FormatInt(v, 10)
	var b []byte
	for i, c := range []byte(s) {
		if i > 0 && (len(s)-i)%3 == 0 {
			b = append(b, '.')
		}
		b = append(b, c)
	}
	if neg {
		return "Rp -" + string(b)
	}
	return "Rp " + string(b)
}

type view struct {
	Title  string
	Nav    string // public | user | admin
	Notice *notice.Notice
	Data   any
}

func (h *handler) render(w http.ResponseWriter, r *http.Request, page string, status int, v view) {
	if n, ok := notice.Pop(w, r); ok {
		v.Notice = &n
	}
	h.execute(w, page, status, v)
}

// execute render ke buffer dulu supaya error template tidak menghasilkan halaman setengah jadi.
func (h *handler) execute(w http.ResponseWriter, page string, status int, v view) {
	t, ok := h.tmpl[page]
	if !ok {
		h.log.Error("unknown template", "page", page)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	var buf bytes.Buffer
	if err := t.ExecuteTemplate(&buf, "layout", v); err != nil {
		h.log.Error("render failed", "page", page, "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = buf.WriteTo(w)
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}
