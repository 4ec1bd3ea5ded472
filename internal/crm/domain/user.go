package domain

// User is a registered account. Users are created at registration and never
// mutated or deleted afterwards.
type User struct {
	ID           string `json:"id"`
	Email        string `json:"email"`
	PasswordHash string `json:"passwordHash"` // argon2id encoded, never sent to clients
}

// Profile is the client-facing shape served by /api/me. Name is derived from
// the email local part; phone/company/role are fixed placeholders the
// dashboard expects.
type Profile struct {
	ID      string `json:"id"`
	Email   string `json:"email"`
	Name    string `json:"name"`
	Phone   string `json:"phone"`
	Company string `json:"company"`
	Role    string `json:"role"`
}
