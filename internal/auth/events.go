package auth

const (
	TopicAkun = "akun.events"

	EventAkunDidaftarkan = "AkunDidaftarkan"
)

type AkunDidaftarkanPayload struct {
	UID   string `json:"uid"`
	Email string `json:"email"`
	Role  string `json:"role"`
}
