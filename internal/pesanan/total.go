package pesanan

import (
	"errors"
	"fmt"
	"math"
)

const (
	KurirJNT = "JNT"
	KurirJNE = "JNE"

	MetodeQRIS = "QRIS"
)

// MaxJumlah = batas jumlah per pesanan; juga menjaga kolom jumlah (int4).
const MaxJumlah = 10000

var (
	ErrUnknownShipping = errors.New("jasa pengiriman tidak dikenal")
	ErrInvalidJumlah   = errors.New("jumlah pesanan tidak valid")
	ErrTotalOverflow   = errors.New("total pesanan terlalu besar")
)

var ongkir = map[string]int64{
	KurirJNT: 10000,
	KurirJNE: 12000,
}

func ShippingFee(pengiriman string) (int64, error) {
	fee, ok := ongkir[pengiriman]
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrUnknownShipping, pengiriman)
	}
	return fee, nil
}

// Total = harga*jumlah + ongkir. Tanpa pajak / diskon.
func Total(harga int64, jumlah int, pengiriman string) (int64, error) {
	fee, err := ShippingFee(pengiriman)
	if err != nil {
		return 0, err
	}
	if jumlah < 1 || harga < 0 {
		return 0, fmt.Errorf("%w: harga=%d jumlah=%d", ErrInvalidJumlah, harga, jumlah)
	}
	if harga > (math.MaxInt64-fee)/int64(jumlah) {
		return 0, fmt.Errorf("%w: harga=%d jumlah=%d", ErrTotalOverflow, harga, jumlah)
	}
	return harga*int64(jumlah) + fee, nil
}
