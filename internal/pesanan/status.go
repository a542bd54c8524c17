package pesanan

import (
	"errors"
	"fmt"
)

type Status string

const (
	StatusMenunggu Status = "Menunggu"
	StatusDiproses Status = "Diproses"
	StatusSelesai  Status = "Selesai"
)

// Semua dipakai filter admin: tanpa filter status.
const FilterSemua = "Semua"

var ErrInvalidStatus = errors.New("status pesanan tidak valid")

var Statuses = []Status{StatusMenunggu, StatusDiproses, StatusSelesai}

func (s Status) Valid() bool {
	switch s {
	case StatusMenunggu, StatusDiproses, StatusSelesai:
		return true
	}
	return false
}

func ParseStatus(v string) (Status, error) {
	s := Status(v)
	if !s.Valid() {
		return "", fmt.Errorf("%w: %q", ErrInvalidStatus, v)
	}
	return s, nil
}
