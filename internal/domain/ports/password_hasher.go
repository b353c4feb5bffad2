package ports

// PasswordHasher define como as senhas são gravadas e comparadas
type PasswordHasher interface {
	Hash(password string) (string, error)
	Matches(stored, password string) bool
}
