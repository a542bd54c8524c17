package pesanan_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/ariefcatur/djikoe/internal/auth"
	"github.com/ariefcatur/djikoe/internal/guard"
	kafkax "github.com/ariefcatur/djikoe/internal/kafka"
	"github.com/ariefcatur/djikoe/internal/logging"
	"github.com/ariefcatur/djikoe/internal/memstore"
	"github.com/ariefcatur/djikoe/internal/pesanan"
	"github.com/ariefcatur/djikoe/internal/profile"
	"github.com/ariefcatur/djikoe/internal/session"
)

func as(uid string, role profile.Role) session.State {
	return session.Authenticated{
		Identity: auth.Identity{UID: uid},
		Profile:  profile.Profile{UID: uid, Role: role},
	}
}

var admin = as("admin-1", profile.RoleAdmin)

func seed(t *testing.T) (*pesanan.Service, []pesanan.Pesanan) {
	t.Helper()
	m := memstore.New()
	svc := &pesanan.Service{
		Store:  m.Pesanan,
		Events: kafkax.Nop{},
		Log:    logging.Discard(),
		Now:    func() time.Time { return time.Date(2025, 7, 25, 9, 0, 0, 0, time.UTC) },
	}
	var out []pesanan.Pesanan
	for _, p := range []pesanan.Pesanan{
		{UserID: "u-1", NamaUser: "Sari", Produk: "Arabica Gayo", Jumlah: 2, Total: 180000, Pengiriman: pesanan.KurirJNT},
		{UserID: "u-1", NamaUser: "Sari", Produk: "Toraja", Jumlah: 1, Total: 100000, Pengiriman: pesanan.KurirJNE},
		{UserID: "u-2", NamaUser: "Budi", Produk: "Kintamani", Jumlah: 1, Total: 80000, Pengiriman: pesanan.KurirJNT},
	} {
		placed, err := svc.Place(context.Background(), p)
		if err != nil {
			t.Fatalf("place: %v", err)
		}
		out = append(out, placed)
	}
	return svc, out
}

func TestPlaceDefaults(t *testing.T) {
	_, placed := seed(t)
	p := placed[0]
	if p.ID == "" || p.Status != pesanan.StatusMenunggu || p.Tanggal != "2025-07-25" {
		t.Fatalf("unexpected placed pesanan: %+v", p)
	}
}

func TestUpdateStatusChangesOnlyStatus(t *testing.T) {
	svc, placed := seed(t)
	ctx := context.Background()
	before := placed[0]

	if err := svc.UpdateStatus(ctx, admin, before.ID, "Diproses"); err != nil {
		t.Fatalf("update: %v", err)
	}
	after, err := svc.Get(ctx, admin, before.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if after.Status != pesanan.StatusDiproses || after.UpdatedAt == nil {
		t.Fatalf("status not applied: %+v", after)
	}

	after.Status = before.Status
	after.UpdatedAt = nil
	before.CreatedAt = after.CreatedAt
	if after != before {
		t.Fatalf("other fields changed:\n got=%+v\nwant=%+v", after, before)
	}
}

func TestUpdateStatusRejectsUnknown(t *testing.T) {
	svc, placed := seed(t)
	err := svc.UpdateStatus(context.Background(), admin, placed[0].ID, "Dikirim")
	if !errors.Is(err, pesanan.ErrInvalidStatus) {
		t.Fatalf("expected ErrInvalidStatus, got %v", err)
	}
	if err := svc.UpdateStatus(context.Background(), admin, "missing", "Selesai"); !errors.Is(err, pesanan.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestListAllFilter(t *testing.T) {
	svc, placed := seed(t)
	ctx := context.Background()
	if err := svc.UpdateStatus(ctx, admin, placed[2].ID, "Selesai"); err != nil {
		t.Fatalf("update: %v", err)
	}

	cases := []struct {
		filter string
		want   int
	}{
		{"", 3},
		{pesanan.FilterSemua, 3},
		{"Menunggu", 2},
		{"Selesai", 1},
		{"Diproses", 0},
	}
	for _, tc := range cases {
		t.Run("filter="+tc.filter, func(t *testing.T) {
			got, err := svc.ListAll(ctx, admin, tc.filter)
			if err != nil {
				t.Fatalf("list: %v", err)
			}
			if len(got) != tc.want {
				t.Fatalf("unexpected count: got=%d want=%d", len(got), tc.want)
			}
		})
	}
}

func TestListMineOnlyOwnOrders(t *testing.T) {
	svc, _ := seed(t)
	got, err := svc.ListMine(context.Background(), as("u-1", profile.RoleUser))
	if err != nil {
		t.Fatalf("list mine: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("unexpected count: got=%d want=2", len(got))
	}
	for _, p := range got {
		if p.UserID != "u-1" {
			t.Fatalf("foreign order leaked: %+v", p)
		}
	}
}

func TestAccessByRole(t *testing.T) {
	svc, placed := seed(t)
	ctx := context.Background()
	user := as("u-1", profile.RoleUser)

	if _, err := svc.ListAll(ctx, user, ""); !errors.Is(err, guard.ErrForbidden) {
		t.Fatalf("user list all: %v", err)
	}
	if err := svc.UpdateStatus(ctx, user, placed[0].ID, "Selesai"); !errors.Is(err, guard.ErrForbidden) {
		t.Fatalf("user update status: %v", err)
	}
	if err := svc.Delete(ctx, user, placed[0].ID); !errors.Is(err, guard.ErrForbidden) {
		t.Fatalf("user delete: %v", err)
	}
	if _, err := svc.ListMine(ctx, admin); !errors.Is(err, guard.ErrForbidden) {
		t.Fatalf("admin list mine: %v", err)
	}
	if _, err := svc.ListMine(ctx, session.Loading{}); !errors.Is(err, guard.ErrForbidden) {
		t.Fatalf("loading list mine: %v", err)
	}
}

func TestDelete(t *testing.T) {
	svc, placed := seed(t)
	ctx := context.Background()
	if err := svc.Delete(ctx, admin, placed[1].ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := svc.Get(ctx, admin, placed[1].ID); !errors.Is(err, pesanan.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	all, _ := svc.ListAll(ctx, admin, "")
	if len(all) != 2 {
		t.Fatalf("unexpected count after delete: got=%d want=2", len(all))
	}
}
