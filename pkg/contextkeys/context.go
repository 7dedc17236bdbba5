package contextkeys

// ContextKey is the type for values shared through gin and request contexts.
type ContextKey string

const (
	UserIDKey ContextKey = "userID"
	RoleKey   ContextKey = "role"
)
