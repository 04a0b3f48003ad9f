package domain

// AccessToken is what the login endpoint returns: a signed stateless JWT.
// Possession of a validly signed, unexpired token is the whole proof of
// identity; nothing is stored server-side.
type AccessToken struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"` // always "bearer"
}
