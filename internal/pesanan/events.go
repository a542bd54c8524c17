package pesanan

const (
	TopicPesanan = "pesanan.events"

	EventPesananDibuat       = "PesananDibuat"
	EventStatusPesananDiubah = "StatusPesananDiubah"
	EventPesananDihapus      = "PesananDihapus"
)

type PesananDibuatPayload struct {
	PesananID string `json:"pesanan_id"`
	UserID    string `json:"user_id"`
	Produk    string `json:"produk"`
	Jumlah    int    `json:"jumlah"`
	Total     int64  `json:"total"`
	Tanggal   string `json:"tanggal"`
}

type StatusPesananDiubahPayload struct {
	PesananID string `json:"pesanan_id"`
	Status    string `json:"status"`
}

type PesananDihapusPayload struct {
	PesananID string `json:"pesanan_id"`
}
