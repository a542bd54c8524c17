package imagehost

import (
	"context"
	"errors"
	"io"
)

// File = gambar yang diunggah dari form multipart.
type File struct {
	Filename    string
	ContentType string
	Size        int64
	Body        io.Reader
}

func (f *File) Empty() bool { return f == nil || f.Body == nil || f.Size == 0 }

var (
	ErrEmptyFile = errors.New("file kosong")
	ErrTooLarge  = errors.New("file terlalu besar")
)

// Uploader: satu POST, hasilnya URL publik. Tidak ada delete.
type Uploader interface {
	Upload(ctx context.Context, f File) (string, error)
}
