package catalog

const (
	TopicProduk = "produk.events"

	EventProdukDibuat  = "ProdukDibuat"
	EventProdukDiubah  = "ProdukDiubah"
	EventProdukDihapus = "ProdukDihapus"
)

type ProdukPayload struct {
	ID    string `json:"id"`
	Nama  string `json:"nama,omitempty"`
	Harga int64  `json:"harga,omitempty"`
}
