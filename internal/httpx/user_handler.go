package httpx

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/ariefcatur/djikoe/internal/checkout"
	"github.com/ariefcatur/djikoe/internal/notice"
	"github.com/ariefcatur/djikoe/internal/pesanan"
	"github.com/go-chi/chi/v5"
)

type kurir struct {
	Kode   string
	Ongkir int64
}

func kurirList() []kurir {
	out := make([]kurir, 0, 2)
	for _, k := range []string{pesanan.KurirJNT, pesanan.KurirJNE} {
		fee, _ := pesanan.ShippingFee(k)
		out = append(out, kurir{Kode: k, Ongkir: fee})
	}
	return out
}

func (h *handler) userHome(w http.ResponseWriter, r *http.Request) {
	products, n := h.listProducts(r)
	h.render(w, r, "user", http.StatusOK, view{
		Title:  "Beranda",
		Nav:    "user",
		Notice: n,
		Data:   map[string]any{"Name": displayName(current(r)), "Products": products},
	})
}

func (h *handler) riwayat(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), readTimeout)
	defer cancel()

	v := view{Title: "Riwayat", Nav: "user"}
	orders, err := h.Pesanan.ListMine(ctx, current(r))
	if err != nil {
		h.log.Warn("list riwayat failed", "operation", "riwayat", "outcome", "degraded", "error", err)
		v.Notice = &notice.Notice{Kind: notice.Error, Message: userMessage(err)}
	}
	v.Data = map[string]any{"Orders": orders}
	h.render(w, r, "riwayat", http.StatusOK, v)
}

func (h *handler) detailProduk(w http.ResponseWriter, r *http.Request) {
	st := current(r)
	if err := checkout.NewFlow().Open(st); err != nil {
		notice.Set(w, notice.Notice{Kind: notice.Error, Message: userMessage(err)})
		http.Redirect(w, r, "/login", http.StatusSeeOther)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), readTimeout)
	defer cancel()
	p, err := h.Catalog.Get(ctx, chi.URLParam(r, "id"))
	if err != nil {
		h.fail(w, r, "product_detail", err, "/user")
		return
	}
	h.render(w, r, "detail", http.StatusOK, view{
		Title: p.Nama,
		Nav:   "user",
		Data:  map[string]any{"Product": p, "Name": displayName(st), "Kurir": kurirList()},
	})
}

func (h *handler) submitPesanan(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	back := "/detail-produk-user/" + id

	if err := h.parseMultipart(w, r); err != nil {
		h.fail(w, r, "checkout", err, back)
		return
	}
	bukti, closeBukti := formFile(r, "bukti")
	defer closeBukti()

	jumlah, _ := strconv.Atoi(r.PostFormValue("jumlah"))
	form := checkout.Form{
		NamaPembeli:      r.PostFormValue("nama_pembeli"),
		NomorTelepon:     r.PostFormValue("nomor_telepon"),
		AlamatLengkap:    r.PostFormValue("alamat_lengkap"),
		Pengiriman:       r.PostFormValue("pengiriman"),
		MetodePembayaran: r.PostFormValue("metode_pembayaran"),
		Jumlah:           jumlah,
		Bukti:            bukti,
	}

	ctx, cancel := context.WithTimeout(r.Context(), readTimeout)
	p, err := h.Catalog.Get(ctx, id)
	cancel()
	if err != nil {
		h.fail(w, r, "checkout", err, "/user")
		return
	}

	_, err = h.Checkout.Submit(r.Context(), current(r), p, form)
	switch {
	case errors.Is(err, checkout.ErrLoginRequired):
		notice.Set(w, notice.Notice{Kind: notice.Error, Message: userMessage(err)})
		http.Redirect(w, r, "/login", http.StatusSeeOther)
	case err != nil:
		h.fail(w, r, "checkout", err, back)
	default:
		h.ok(w, fmt.Sprintf("Pesanan untuk %s berhasil dibuat.", p.Nama), "/riwayat")
	}
}
