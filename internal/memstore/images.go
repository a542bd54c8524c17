package memstore

import (
	"context"
	"io"
	"net/http"
	"path"
	"sync"

	"github.com/ariefcatur/djikoe/internal/imagehost"
	"github.com/google/uuid"
)

type image struct {
	contentType string
	data        []byte
}

// Images meniru image host: simpan bytes, kembalikan URL lokal.
// Juga http.Handler untuk menyajikan gambar tersebut.
type Images struct {
	prefix string

	mu    sync.RWMutex
	files map[string]image
	calls int
	Fail  error // kalau diisi, Upload selalu gagal dengan error ini
}

func NewImages(prefix string) *Images {
	return &Images{prefix: prefix, files: map[string]image{}}
}

func (s *Images) Upload(ctx context.Context, f imagehost.File) (string, error) {
	s.mu.Lock()
	s.calls++
	fail := s.Fail
	s.mu.Unlock()
	if fail != nil {
		return "", fail
	}
	if f.Empty() {
		return "", imagehost.ErrEmptyFile
	}
	data, err := io.ReadAll(f.Body)
	if err != nil {
		return "", err
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}

	name := uuid.NewString() + path.Ext(f.Filename)
	s.mu.Lock()
	s.files[name] = image{contentType: f.ContentType, data: data}
	s.mu.Unlock()
	return s.prefix + name, nil
}

// Calls = jumlah pemanggilan Upload, termasuk yang gagal.
func (s *Images) Calls() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.calls
}

func (s *Images) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.mu.RLock()
	img, ok := s.files[path.Base(r.URL.Path)]
	s.mu.RUnlock()
	if !ok {
		http.NotFound(w, r)
		return
	}
	if img.contentType != "" {
		w.Header().Set("Content-Type", img.contentType)
	}
	_, _ = w.Write(img.data)
}
