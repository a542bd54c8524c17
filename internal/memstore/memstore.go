// Package memstore menyimpan semua data di memori. Dipakai untuk
// STORAGE_DRIVER=memory (dev lokal tanpa infra) dan di test.
package memstore

type Store struct {
	Accounts *Accounts
	Tokens   *Tokens
	Profiles *Profiles
	Products *Products
	Pesanan  *Pesanan
	Images   *Images
}

func New() *Store {
	return &Store{
		Accounts: NewAccounts(),
		Tokens:   NewTokens(),
		Profiles: NewProfiles(),
		Products: NewProducts(),
		Pesanan:  NewPesanan(),
		Images:   NewImages("/uploads/"),
	}
}
