package statistik

import (
	"strings"
	"time"

	"github.com/ariefcatur/djikoe/internal/pesanan"
)

// Dashboard = angka ringkas di halaman admin.
type Dashboard struct {
	TotalPesanan       int   `json:"total_pesanan"`
	TotalProduk        int   `json:"total_produk"`
	PendapatanBulanIni int64 `json:"pendapatan_bulan_ini"`
	TotalUser          int   `json:"total_user"`
}

// Compute: pendapatan = jumlah Total pesanan yang Tanggal-nya di bulan now.
func Compute(orders []pesanan.Pesanan, totalProduk, totalUser int, now time.Time) Dashboard {
	month := now.Format("2006-01")
	d := Dashboard{
		TotalPesanan: len(orders),
		TotalProduk:  totalProduk,
		TotalUser:    totalUser,
	}
	for _, o := range orders {
		if strings.HasPrefix(o.Tanggal, month) {
			d.PendapatanBulanIni += o.Total
		}
	}
	return d
}
