package checkout

import (
	"errors"
	"fmt"
	"strings"

	"github.com/ariefcatur/djikoe/internal/imagehost"
	"github.com/ariefcatur/djikoe/internal/pesanan"
)

var ErrInvalidForm = errors.New("harap lengkapi semua kolom formulir, termasuk bukti pembayaran")

type Form struct {
	NamaPembeli      string
	NomorTelepon     string
	AlamatLengkap    string
	Pengiriman       string
	MetodePembayaran string
	Jumlah           int
	Bukti            *imagehost.File
}

// FieldError menyebut kolom yang kosong / salah. errors.Is(err, ErrInvalidForm) == true.
type FieldError struct{ Fields []string }

func (e *FieldError) Error() string {
	return fmt.Sprintf("%s (%s)", ErrInvalidForm.Error(), strings.Join(e.Fields, ", "))
}

func (e *FieldError) Unwrap() error { return ErrInvalidForm }

// Validate tidak melakukan I/O apapun.
func (f Form) Validate() error {
	var bad []string
	if strings.TrimSpace(f.NamaPembeli) == "" {
		bad = append(bad, "nama_pembeli")
	}
	if strings.TrimSpace(f.NomorTelepon) == "" {
		bad = append(bad, "nomor_telepon")
	}
	if strings.TrimSpace(f.AlamatLengkap) == "" {
		bad = append(bad, "alamat_lengkap")
	}
	if _, err := pesanan.ShippingFee(f.Pengiriman); err != nil {
		bad = append(bad, "pengiriman")
	}
	if f.MetodePembayaran != pesanan.MetodeQRIS {
		bad = append(bad, "metode_pembayaran")
	}
	if f.Jumlah < 1 || f.Jumlah > pesanan.MaxJumlah {
		bad = append(bad, "jumlah")
	}
	if f.Bukti.Empty() {
		bad = append(bad, "bukti_pembayaran")
	}
	if len(bad) > 0 {
		return &FieldError{Fields: bad}
	}
	return nil
}
