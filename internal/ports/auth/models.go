package auth

// Claims representa la información extraída del token.
// UserID y Username son las dos identidades con las que se resuelve ownership.
type Claims struct {
	UserID   string
	Username string
	Email    string
}
