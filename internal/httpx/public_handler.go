package httpx

import (
	"context"
	"net/http"

	"github.com/ariefcatur/djikoe/internal/catalog"
	"github.com/ariefcatur/djikoe/internal/notice"
)

const homeProducts = 6

func (h *handler) home(w http.ResponseWriter, r *http.Request) {
	products, n := h.listProducts(r)
	if len(products) > homeProducts {
		products = products[:homeProducts]
	}
	h.render(w, r, "home", http.StatusOK, view{
		Title:  "Home",
		Nav:    "public",
		Notice: n,
		Data:   map[string]any{"Products": products},
	})
}

func (h *handler) produk(w http.ResponseWriter, r *http.Request) {
	products, n := h.listProducts(r)
	h.render(w, r, "produk", http.StatusOK, view{
		Title:  "Produk",
		Nav:    "public",
		Notice: n,
		Data:   map[string]any{"Products": products},
	})
}

// listProducts: gagal baca -> halaman kosong + notice, bukan error page.
func (h *handler) listProducts(r *http.Request) ([]catalog.Product, *notice.Notice) {
	ctx, cancel := context.WithTimeout(r.Context(), readTimeout)
	defer cancel()
	ps, err := h.Catalog.List(ctx)
	if err != nil {
		h.log.Warn("list products failed", "operation", "product_list", "outcome", "degraded", "error", err)
		return nil, &notice.Notice{Kind: notice.Error, Message: "Gagal memuat produk."}
	}
	return ps, nil
}
