package checkout

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/ariefcatur/djikoe/internal/catalog"
	"github.com/ariefcatur/djikoe/internal/imagehost"
	"github.com/ariefcatur/djikoe/internal/pesanan"
	"github.com/ariefcatur/djikoe/internal/session"
)

var (
	ErrUploadFailed = errors.New("gagal mengunggah bukti pembayaran")
	ErrCreateFailed = errors.New("gagal membuat pesanan")
)

type OrderPlacer interface {
	Place(ctx context.Context, p pesanan.Pesanan) (pesanan.Pesanan, error)
}

type Service struct {
	Orders       OrderPlacer
	Images       imagehost.Uploader
	Log          *slog.Logger
	Now          func() time.Time
	WriteTimeout time.Duration
}

type Outcome struct {
	Phase   Phase
	Pesanan pesanan.Pesanan
	// OrphanURL terisi kalau upload sukses tapi pesanan gagal dibuat.
	OrphanURL string
}

func (s *Service) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

// Submit: upload bukti -> buat pesanan (Menunggu) -> event PesananDibuat.
// Tulis tetap jalan walau client putus; dibatasi WriteTimeout.
func (s *Service) Submit(ctx context.Context, st session.State, prod catalog.Product, form Form) (Outcome, error) {
	flow := NewFlow()
	if err := flow.Open(st); err != nil {
		return Outcome{Phase: flow.Phase()}, err
	}
	if err := flow.Begin(form); err != nil {
		return Outcome{Phase: flow.Phase()}, err
	}
	user := st.(session.Authenticated)

	total, err := pesanan.Total(prod.Harga, form.Jumlah, form.Pengiriman)
	if err != nil {
		flow.finish(err)
		return Outcome{Phase: flow.Phase()}, err
	}

	timeout := s.WriteTimeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	wctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), timeout)
	defer cancel()

	url, err := s.Images.Upload(wctx, *form.Bukti)
	if err != nil {
		flow.finish(err)
		s.Log.Warn("proof upload failed",
			"operation", "checkout", "outcome", "failed", "uid", user.Identity.UID, "error", err)
		return Outcome{Phase: flow.Phase()}, fmt.Errorf("%w: %v", ErrUploadFailed, err)
	}

	p, err := s.Orders.Place(wctx, pesanan.Pesanan{
		NamaUser:         strings.TrimSpace(form.NamaPembeli),
		UserID:           user.Identity.UID,
		Produk:           prod.Nama,
		Jumlah:           form.Jumlah,
		Total:            total,
		AlamatLengkap:    strings.TrimSpace(form.AlamatLengkap),
		NomorTelepon:     strings.TrimSpace(form.NomorTelepon),
		Pengiriman:       form.Pengiriman,
		MetodePembayaran: form.MetodePembayaran,
		BuktiPembayaran:  url,
		Tanggal:          s.now().Format(pesanan.TanggalLayout),
	})
	if err != nil {
		flow.finish(err)
		// gambar sudah terlanjur di image host, tidak ada delete
		s.Log.Warn("orphaned proof upload",
			"operation", "checkout", "outcome", "partial", "uid", user.Identity.UID, "url", url, "error", err)
		return Outcome{Phase: flow.Phase(), OrphanURL: url}, fmt.Errorf("%w: %v", ErrCreateFailed, err)
	}

	flow.finish(nil)
	s.Log.Info("pesanan created",
		"operation", "checkout", "outcome", "success", "uid", user.Identity.UID, "pesanan_id", p.ID, "total", p.Total)
	return Outcome{Phase: flow.Phase(), Pesanan: p}, nil
}
