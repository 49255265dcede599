package domain

// TokenIssuer issues short-lived bearer tokens this service presents to other services.
type TokenIssuer interface {
	Issue(audience string) (string, error)
}
