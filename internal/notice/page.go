package notice

import (
	"fmt"
	"html/template"
	"log/slog"
	"math"
	"net/http"
	"time"
)

var pageTmpl = template.Must(template.New("notice").Parse(`<!doctype html>
<html lang="id">
<head>
<meta charset="utf-8">
<title>Djikoe</title>
<link rel="stylesheet" href="/static/app.css">
</head>
<body>
<main class="notice notice-{{.Notice.Kind}}">
  <p>{{.Notice.Message}}</p>
  <p class="muted">Mengalihkan ke <a href="{{.Next}}">{{.Next}}</a>...</p>
</main>
</body>
</html>
`))

// Page merender notice lalu browser pindah ke Next setelah Delay (header Refresh).
type Page struct {
	Delay time.Duration
	Log   *slog.Logger
}

func (p *Page) Render(w http.ResponseWriter, n Notice, next string) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Refresh", RefreshValue(p.Delay, next))
	w.WriteHeader(http.StatusOK)
	if err := pageTmpl.Execute(w, struct {
		Notice Notice
		Next   string
	}{n, next}); err != nil && p.Log != nil {
		p.Log.Warn("render notice failed", "error", err)
	}
}

// RefreshValue membentuk nilai header Refresh, dibulatkan ke atas per detik.
func RefreshValue(d time.Duration, url string) string {
	secs := int(math.Ceil(d.Seconds()))
	if secs < 0 {
		secs = 0
	}
	if url == "" {
		return fmt.Sprintf("%d", secs)
	}
	return fmt.Sprintf("%d; url=%s", secs, url)
}
