package httpx

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/ariefcatur/djikoe/internal/catalog"
	"github.com/ariefcatur/djikoe/internal/notice"
	"github.com/ariefcatur/djikoe/internal/pesanan"
	"github.com/ariefcatur/djikoe/internal/statistik"
	"github.com/go-chi/chi/v5"
)

func (h *handler) adminDashboard(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), readTimeout)
	defer cancel()

	v := view{Title: "Dashboard", Nav: "admin"}
	stats, err := h.Statistik.Get(ctx, current(r))
	if err != nil {
		h.log.Warn("statistik failed", "operation", "statistik_get", "outcome", "degraded", "error", err)
		v.Notice = &notice.Notice{Kind: notice.Error, Message: "Gagal memuat statistik."}
		stats = statistik.Dashboard{}
	}
	v.Data = map[string]any{"Stats": stats}
	h.render(w, r, "admin", http.StatusOK, v)
}

func (h *handler) adminProduk(w http.ResponseWriter, r *http.Request) {
	products, n := h.listProducts(r)
	v := view{Title: "Kelola Produk", Nav: "admin", Notice: n}

	var edit *catalog.Product
	if id := r.URL.Query().Get("edit"); id != "" {
		ctx, cancel := context.WithTimeout(r.Context(), readTimeout)
		p, err := h.Catalog.Get(ctx, id)
		cancel()
		if err != nil {
			v.Notice = &notice.Notice{Kind: notice.Error, Message: userMessage(err)}
		} else {
			edit = &p
		}
	}
	v.Data = map[string]any{"Products": products, "Edit": edit}
	h.render(w, r, "admin_produk", http.StatusOK, v)
}

func (h *handler) saveProduk(w http.ResponseWriter, r *http.Request) {
	if err := h.parseMultipart(w, r); err != nil {
		h.fail(w, r, "product_save", err, "/admin-produk")
		return
	}
	gambar, closeGambar := formFile(r, "gambar")
	defer closeGambar()

	harga, _ := strconv.ParseInt(strings.TrimSpace(r.PostFormValue("harga")), 10, 64)
	in := catalog.Input{
		Nama:      r.PostFormValue("nama"),
		Harga:     harga,
		Deskripsi: r.PostFormValue("deskripsi"),
		Gambar:    gambar,
	}

	ctx, cancel := writeCtx(r)
	defer cancel()

	id := r.PostFormValue("id")
	if id == "" {
		if _, err := h.Catalog.Create(ctx, current(r), in); err != nil {
			h.fail(w, r, "product_create", err, "/admin-produk")
			return
		}
		h.ok(w, "Produk berhasil ditambahkan.", "/admin-produk")
		return
	}
	if _, err := h.Catalog.Update(ctx, current(r), id, in); err != nil {
		h.fail(w, r, "product_update", err, "/admin-produk?edit="+id)
		return
	}
	h.ok(w, "Produk berhasil diperbarui.", "/admin-produk")
}

func (h *handler) hapusProduk(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := writeCtx(r)
	defer cancel()
	if err := h.Catalog.Delete(ctx, current(r), chi.URLParam(r, "id")); err != nil {
		h.fail(w, r, "product_delete", err, "/admin-produk")
		return
	}
	h.ok(w, "Produk berhasil dihapus.", "/admin-produk")
}

var statusFilters = []string{
	pesanan.FilterSemua,
	string(pesanan.StatusMenunggu),
	string(pesanan.StatusDiproses),
	string(pesanan.StatusSelesai),
}

func (h *handler) adminPesanan(w http.ResponseWriter, r *http.Request) {
	filter := r.URL.Query().Get("status")
	if filter == "" {
		filter = pesanan.FilterSemua
	}

	ctx, cancel := context.WithTimeout(r.Context(), readTimeout)
	defer cancel()

	v := view{Title: "Kelola Pesanan", Nav: "admin"}
	orders, err := h.Pesanan.ListAll(ctx, current(r), filter)
	if err != nil {
		h.log.Warn("list pesanan failed", "operation", "pesanan_list", "outcome", "degraded", "error", err)
		v.Notice = &notice.Notice{Kind: notice.Error, Message: userMessage(err)}
	}
	v.Data = map[string]any{
		"Orders":   orders,
		"Filter":   filter,
		"Filters":  statusFilters,
		"Statuses": pesanan.Statuses,
	}
	h.render(w, r, "admin_pesanan", http.StatusOK, v)
}

func (h *handler) ubahStatus(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.fail(w, r, "pesanan_status", err, "/admin-pesanan")
		return
	}
	status := r.PostFormValue("status")

	ctx, cancel := writeCtx(r)
	defer cancel()
	if err := h.Pesanan.UpdateStatus(ctx, current(r), chi.URLParam(r, "id"), status); err != nil {
		h.fail(w, r, "pesanan_status", err, "/admin-pesanan")
		return
	}
	h.ok(w, fmt.Sprintf("Status pesanan berhasil diperbarui menjadi %q.", status), "/admin-pesanan")
}

func (h *handler) hapusPesanan(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := writeCtx(r)
	defer cancel()
	if err := h.Pesanan.Delete(ctx, current(r), chi.URLParam(r, "id")); err != nil {
		h.fail(w, r, "pesanan_delete", err, "/admin-pesanan")
		return
	}
	h.ok(w, "Pesanan berhasil dihapus.", "/admin-pesanan")
}
