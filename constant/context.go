package constant

type contextKey string

const (
	IdentityKey contextKey = "identity"
	SessionKey  contextKey = "session_token"
)
