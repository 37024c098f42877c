package domain

type ID string

// User is kept for schema parity only. Password is stored exactly as given;
// no endpoint reads or verifies it.
type User struct {
	ID       ID
	Username string
	Password string
}

type NewUser struct {
	Username string
	Password string
}
