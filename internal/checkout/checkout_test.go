package checkout_test

import (
	"bytes"
	"context"
	"errors"
	"math"
	"testing"
	"time"

	"github.com/ariefcatur/djikoe/internal/auth"
	"github.com/ariefcatur/djikoe/internal/catalog"
	"github.com/ariefcatur/djikoe/internal/checkout"
	"github.com/ariefcatur/djikoe/internal/imagehost"
	kafkax "github.com/ariefcatur/djikoe/internal/kafka"
	"github.com/ariefcatur/djikoe/internal/logging"
	"github.com/ariefcatur/djikoe/internal/memstore"
	"github.com/ariefcatur/djikoe/internal/pesanan"
	"github.com/ariefcatur/djikoe/internal/profile"
	"github.com/ariefcatur/djikoe/internal/session"
)

var fixedNow = time.Date(2025, 7, 25, 10, 0, 0, 0, time.UTC)

func userState(role profile.Role) session.State {
	return session.Authenticated{
		Identity: auth.Identity{UID: "u-1", Email: "sari@djikoe.id"},
		Profile:  profile.Profile{UID: "u-1", Name: "Sari", Role: role},
	}
}

func proof() *imagehost.File {
	data := []byte("\x89PNG fake")
	return &imagehost.File{Filename: "bukti.png", ContentType: "image/png", Size: int64(len(data)), Body: bytes.NewReader(data)}
}

func validForm() checkout.Form {
	return checkout.Form{
		NamaPembeli:      "Sari",
		NomorTelepon:     "08123456789",
		AlamatLengkap:    "Jl. Kopi No. 1, Bandung",
		Pengiriman:       pesanan.KurirJNT,
		MetodePembayaran: pesanan.MetodeQRIS,
		Jumlah:           2,
		Bukti:            proof(),
	}
}

var arabica = catalog.Product{ID: "p-1", Nama: "Arabica Gayo", Harga: 85000}

type fixture struct {
	m   *memstore.Store
	svc *checkout.Service
}

func newFixture(orders checkout.OrderPlacer) *fixture {
	m := memstore.New()
	if orders == nil {
		orders = &pesanan.Service{Store: m.Pesanan, Events: kafkax.Nop{}, Log: logging.Discard(), Now: func() time.Time { return fixedNow }}
	}
	return &fixture{
		m: m,
		svc: &checkout.Service{
			Orders: orders,
			Images: m.Images,
			Log:    logging.Discard(),
			Now:    func() time.Time { return fixedNow },
		},
	}
}

func (f *fixture) orderCount(t *testing.T) int {
	t.Helper()
	all, err := f.m.Pesanan.List(context.Background(), pesanan.Filter{})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	return len(all)
}

func TestSubmitSuccess(t *testing.T) {
	f := newFixture(nil)
	out, err := f.svc.Submit(context.Background(), userState(profile.RoleUser), arabica, validForm())
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if out.Phase != checkout.Success {
		t.Fatalf("unexpected phase: %s", out.Phase)
	}
	p := out.Pesanan
	if p.Status != pesanan.StatusMenunggu || p.Total != 180000 || p.Produk != "Arabica Gayo" {
		t.Fatalf("unexpected pesanan: %+v", p)
	}
	if p.UserID != "u-1" || p.Tanggal != "2025-07-25" || p.BuktiPembayaran == "" {
		t.Fatalf("unexpected pesanan fields: %+v", p)
	}
	if f.orderCount(t) != 1 {
		t.Fatalf("order not stored")
	}
}

func TestSubmitWithoutProofCreatesNothing(t *testing.T) {
	f := newFixture(nil)
	form := validForm()
	form.Bukti = nil

	out, err := f.svc.Submit(context.Background(), userState(profile.RoleUser), arabica, form)
	if !errors.Is(err, checkout.ErrInvalidForm) {
		t.Fatalf("expected ErrInvalidForm, got %v", err)
	}
	if out.Phase != checkout.FormOpen {
		t.Fatalf("validation failure should stay in form: %s", out.Phase)
	}
	if f.m.Images.Calls() != 0 {
		t.Fatalf("upload attempted without proof")
	}
	if f.orderCount(t) != 0 {
		t.Fatalf("order created without proof")
	}
}

func TestSubmitValidation(t *testing.T) {
	cases := map[string]func(*checkout.Form){
		"empty name":       func(f *checkout.Form) { f.NamaPembeli = " " },
		"empty phone":      func(f *checkout.Form) { f.NomorTelepon = "" },
		"empty address":    func(f *checkout.Form) { f.AlamatLengkap = "" },
		"unknown courier":  func(f *checkout.Form) { f.Pengiriman = "POS" },
		"non QRIS":         func(f *checkout.Form) { f.MetodePembayaran = "COD" },
		"zero jumlah":      func(f *checkout.Form) { f.Jumlah = 0 },
		"jumlah too large": func(f *checkout.Form) { f.Jumlah = pesanan.MaxJumlah + 1 },
		"jumlah overflow":  func(f *checkout.Form) { f.Jumlah = 108510311314568 },
		"empty proof":      func(f *checkout.Form) { f.Bukti = &imagehost.File{Filename: "x.png"} },
	}
	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			f := newFixture(nil)
			form := validForm()
			mutate(&form)
			if _, err := f.svc.Submit(context.Background(), userState(profile.RoleUser), arabica, form); !errors.Is(err, checkout.ErrInvalidForm) {
				t.Fatalf("expected ErrInvalidForm, got %v", err)
			}
			if f.m.Images.Calls() != 0 || f.orderCount(t) != 0 {
				t.Fatalf("side effects on invalid form")
			}
		})
	}
}

func TestSubmitRequiresUserSession(t *testing.T) {
	states := map[string]session.State{
		"loading":   session.Loading{},
		"anonymous": session.Unauthenticated{Reason: session.ReasonSignedOut},
		"admin":     userState(profile.RoleAdmin),
	}
	for name, st := range states {
		t.Run(name, func(t *testing.T) {
			f := newFixture(nil)
			out, err := f.svc.Submit(context.Background(), st, arabica, validForm())
			if !errors.Is(err, checkout.ErrLoginRequired) {
				t.Fatalf("expected ErrLoginRequired, got %v", err)
			}
			if out.Phase != checkout.Browsing || f.m.Images.Calls() != 0 || f.orderCount(t) != 0 {
				t.Fatalf("form opened without user session")
			}
		})
	}
}

func TestSubmitUploadFailure(t *testing.T) {
	f := newFixture(nil)
	f.m.Images.Fail = errors.New("image host down")

	out, err := f.svc.Submit(context.Background(), userState(profile.RoleUser), arabica, validForm())
	if !errors.Is(err, checkout.ErrUploadFailed) {
		t.Fatalf("expected ErrUploadFailed, got %v", err)
	}
	if out.Phase != checkout.Failed {
		t.Fatalf("unexpected phase: %s", out.Phase)
	}
	if f.orderCount(t) != 0 {
		t.Fatalf("order created after failed upload")
	}
}

func TestSubmitRejectsOverflowingTotal(t *testing.T) {
	f := newFixture(nil)
	mahal := catalog.Product{ID: "p-2", Nama: "Kopi Emas", Harga: math.MaxInt64 / 2}

	out, err := f.svc.Submit(context.Background(), userState(profile.RoleUser), mahal, validForm())
	if !errors.Is(err, pesanan.ErrTotalOverflow) {
		t.Fatalf("expected ErrTotalOverflow, got %v", err)
	}
	if out.Phase != checkout.Failed {
		t.Fatalf("unexpected phase: %s", out.Phase)
	}
	if f.m.Images.Calls() != 0 || f.orderCount(t) != 0 {
		t.Fatalf("side effects on overflowing total")
	}
}

type failingPlacer struct{}

func (failingPlacer) Place(context.Context, pesanan.Pesanan) (pesanan.Pesanan, error) {
	return pesanan.Pesanan{}, errors.New("store unavailable")
}

func TestSubmitCreateFailureLeavesOrphan(t *testing.T) {
	f := newFixture(failingPlacer{})
	out, err := f.svc.Submit(context.Background(), userState(profile.RoleUser), arabica, validForm())
	if !errors.Is(err, checkout.ErrCreateFailed) {
		t.Fatalf("expected ErrCreateFailed, got %v", err)
	}
	if out.Phase != checkout.Failed || out.OrphanURL == "" {
		t.Fatalf("expected failed phase with orphan url: %+v", out)
	}
	if f.m.Images.Calls() != 1 {
		t.Fatalf("upload should run exactly once, got %d", f.m.Images.Calls())
	}
}

func TestSubmitSurvivesClientCancel(t *testing.T) {
	f := newFixture(nil)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := f.svc.Submit(ctx, userState(profile.RoleUser), arabica, validForm()); err != nil {
		t.Fatalf("submit with cancelled request context: %v", err)
	}
	if f.orderCount(t) != 1 {
		t.Fatalf("order should complete after client disconnect")
	}
}

func TestFlowTransitions(t *testing.T) {
	flow := checkout.NewFlow()
	if flow.Phase() != checkout.Browsing {
		t.Fatalf("initial phase: %s", flow.Phase())
	}
	if err := flow.Begin(validForm()); !errors.Is(err, checkout.ErrBadTransition) {
		t.Fatalf("begin before open: %v", err)
	}
	if err := flow.Open(userState(profile.RoleUser)); err != nil {
		t.Fatalf("open: %v", err)
	}
	if err := flow.Open(userState(profile.RoleUser)); !errors.Is(err, checkout.ErrBadTransition) {
		t.Fatalf("double open: %v", err)
	}
	if err := flow.Begin(checkout.Form{}); !errors.Is(err, checkout.ErrInvalidForm) || flow.Phase() != checkout.FormOpen {
		t.Fatalf("invalid begin: err=%v phase=%s", err, flow.Phase())
	}
	if err := flow.Begin(validForm()); err != nil || flow.Phase() != checkout.Submitting {
		t.Fatalf("begin: err=%v phase=%s", err, flow.Phase())
	}
}
