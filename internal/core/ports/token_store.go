package ports

// TokenStore holds opaque bearer credentials under process-wide keys.
// Implementations are pure key-value access: no validation of token
// contents, no expiry bookkeeping.
type TokenStore interface {
	Get(key string) (string, bool)
	Set(key, value string) error
	Remove(key string) error
}
