package catalog_test

import (
	"bytes"
	"context"
	"errors"
	"testing"
	"time"

	"github.com/ariefcatur/djikoe/internal/auth"
	"github.com/ariefcatur/djikoe/internal/catalog"
	"github.com/ariefcatur/djikoe/internal/guard"
	"github.com/ariefcatur/djikoe/internal/imagehost"
	kafkax "github.com/ariefcatur/djikoe/internal/kafka"
	"github.com/ariefcatur/djikoe/internal/logging"
	"github.com/ariefcatur/djikoe/internal/memstore"
	"github.com/ariefcatur/djikoe/internal/pesanan"
	"github.com/ariefcatur/djikoe/internal/profile"
	"github.com/ariefcatur/djikoe/internal/session"
)

func as(role profile.Role) session.State {
	return session.Authenticated{
		Identity: auth.Identity{UID: "uid-" + string(role)},
		Profile:  profile.Profile{UID: "uid-" + string(role), Role: role},
	}
}

func image(name string) *imagehost.File {
	data := []byte("jpeg-bytes")
	return &imagehost.File{Filename: name, ContentType: "image/jpeg", Size: int64(len(data)), Body: bytes.NewReader(data)}
}

func newService(m *memstore.Store) *catalog.Service {
	return &catalog.Service{
		Store:  m.Products,
		Images: m.Images,
		Events: kafkax.Nop{},
		Log:    logging.Discard(),
		Now:    func() time.Time { return time.Date(2025, 7, 1, 8, 0, 0, 0, time.UTC) },
	}
}

func TestMutationsRequireAdmin(t *testing.T) {
	m := memstore.New()
	svc := newService(m)
	ctx := context.Background()
	in := catalog.Input{Nama: "Robusta Temanggung", Harga: 60000}

	states := map[string]session.State{
		"user":      as(profile.RoleUser),
		"anonymous": session.Unauthenticated{Reason: session.ReasonSignedOut},
		"loading":   session.Loading{},
	}
	for name, st := range states {
		t.Run(name, func(t *testing.T) {
			if _, err := svc.Create(ctx, st, in); !errors.Is(err, guard.ErrForbidden) {
				t.Fatalf("create: expected ErrForbidden, got %v", err)
			}
			if _, err := svc.Update(ctx, st, "any", in); !errors.Is(err, guard.ErrForbidden) {
				t.Fatalf("update: expected ErrForbidden, got %v", err)
			}
			if err := svc.Delete(ctx, st, "any"); !errors.Is(err, guard.ErrForbidden) {
				t.Fatalf("delete: expected ErrForbidden, got %v", err)
			}
		})
	}
	if n, _ := m.Products.Count(ctx); n != 0 {
		t.Fatalf("forbidden create stored a product")
	}
}

func TestCreateValidation(t *testing.T) {
	svc := newService(memstore.New())
	cases := []struct {
		name string
		in   catalog.Input
	}{
		{"empty nama", catalog.Input{Nama: "  ", Harga: 1000}},
		{"zero harga", catalog.Input{Nama: "Kopi", Harga: 0}},
		{"negative harga", catalog.Input{Nama: "Kopi", Harga: -5}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := svc.Create(context.Background(), as(profile.RoleAdmin), tc.in); !errors.Is(err, catalog.ErrInvalidInput) {
				t.Fatalf("expected ErrInvalidInput, got %v", err)
			}
		})
	}
}

func TestCreateUpdateDelete(t *testing.T) {
	m := memstore.New()
	svc := newService(m)
	ctx := context.Background()
	admin := as(profile.RoleAdmin)

	p, err := svc.Create(ctx, admin, catalog.Input{Nama: " Arabica Gayo ", Harga: 85000, Deskripsi: "250g", Gambar: image("gayo.jpg")})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if p.ID == "" || p.Nama != "Arabica Gayo" || p.Gambar == "" || p.UpdatedAt != nil {
		t.Fatalf("unexpected product: %+v", p)
	}

	// tanpa gambar baru, gambar lama dipertahankan
	up, err := svc.Update(ctx, admin, p.ID, catalog.Input{Nama: "Arabica Gayo Wine", Harga: 95000})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if up.Gambar != p.Gambar || up.Harga != 95000 || up.UpdatedAt == nil {
		t.Fatalf("unexpected update result: %+v", up)
	}
	got, err := svc.Get(ctx, p.ID)
	if err != nil || got.Nama != "Arabica Gayo Wine" {
		t.Fatalf("get after update: %+v err=%v", got, err)
	}

	if err := svc.Delete(ctx, admin, p.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := svc.Get(ctx, p.ID); !errors.Is(err, catalog.ErrNotFound) {
		t.Fatalf("expected ErrNotFound after delete, got %v", err)
	}
	if _, err := svc.Update(ctx, admin, p.ID, catalog.Input{Nama: "x", Harga: 1}); !errors.Is(err, catalog.ErrNotFound) {
		t.Fatalf("update deleted product: %v", err)
	}
}

func TestUploadFailureStoresNothing(t *testing.T) {
	m := memstore.New()
	m.Images.Fail = errors.New("host down")
	svc := newService(m)

	if _, err := svc.Create(context.Background(), as(profile.RoleAdmin), catalog.Input{Nama: "Kopi", Harga: 1000, Gambar: image("k.jpg")}); err == nil {
		t.Fatalf("expected upload error")
	}
	if n, _ := m.Products.Count(context.Background()); n != 0 {
		t.Fatalf("product stored after failed upload")
	}
}

func TestDeleteKeepsOrderSnapshot(t *testing.T) {
	m := memstore.New()
	svc := newService(m)
	ctx := context.Background()
	admin := as(profile.RoleAdmin)

	p, err := svc.Create(ctx, admin, catalog.Input{Nama: "Toraja Sapan", Harga: 90000})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	orders := &pesanan.Service{Store: m.Pesanan, Events: kafkax.Nop{}, Log: logging.Discard()}
	placed, err := orders.Place(ctx, pesanan.Pesanan{UserID: "u-1", Produk: p.Nama, Jumlah: 1, Total: 100000})
	if err != nil {
		t.Fatalf("place: %v", err)
	}

	if err := svc.Delete(ctx, admin, p.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	got, err := m.Pesanan.Get(ctx, placed.ID)
	if err != nil {
		t.Fatalf("order vanished with product: %v", err)
	}
	if got.Produk != "Toraja Sapan" {
		t.Fatalf("unexpected produk snapshot: got=%q", got.Produk)
	}
}
