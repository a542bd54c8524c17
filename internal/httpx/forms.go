package httpx

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/ariefcatur/djikoe/internal/imagehost"
	"github.com/ariefcatur/djikoe/internal/session"
)

const (
	readTimeout  = 3 * time.Second
	writeTimeout = 5 * time.Second
)

// writeCtx: tulis ke store tidak ikut batal kalau client putus.
func writeCtx(r *http.Request) (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.WithoutCancel(r.Context()), writeTimeout)
}

// parseMultipart membatasi ukuran body; kelebihan ukuran = imagehost.ErrTooLarge.
func (h *handler) parseMultipart(w http.ResponseWriter, r *http.Request) error {
	r.Body = http.MaxBytesReader(w, r.Body, h.MaxUploadBytes+1<<20)
	if err := r.ParseMultipartForm(h.MaxUploadBytes); err != nil {
		var tooBig *http.MaxBytesError
		if errors.As(err, &tooBig) {
			return imagehost.ErrTooLarge
		}
		return err
	}
	return nil
}

// formFile: nil kalau field kosong. close wajib dipanggil.
func formFile(r *http.Request, field string) (*imagehost.File, func()) {
	f, hdr, err := r.FormFile(field)
	if err != nil {
		return nil, func() {}
	}
	return &imagehost.File{
		Filename:    hdr.Filename,
		ContentType: hdr.Header.Get("Content-Type"),
		Size:        hdr.Size,
		Body:        f,
	}, func() { _ = f.Close() }
}

// current hanya dipanggil di belakang guard.Require.
func current(r *http.Request) session.State {
	return session.FromContext(r.Context())
}

func displayName(st session.State) string {
	if a, ok := st.(session.Authenticated); ok {
		return a.Profile.Name
	}
	return ""
}
