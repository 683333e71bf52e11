package domain

// Role tiers used by the management routes, weakest to strongest. Admin is a
// universal override in HasRole.
const (
	RoleViewer = "Viewer"
	RoleEditor = "Editor"
	RoleAdmin  = "Admin"
)

// AuthContext is the request-scoped result of bearer-token verification.
// It is created fresh per request and never persisted.
type AuthContext struct {
	IsAuthenticated bool
	UserID          string
	UserEmail       string
	UserName        string
	Roles           []string
	// Error holds the client-facing failure reason when IsAuthenticated is
	// false. Never carries cryptographic detail.
	Error string
}

// HasRole reports whether the context satisfies a required role set.
// Unauthenticated contexts always deny. Admin grants everything, including an
// empty required set. Otherwise the context's roles must intersect required.
func (a AuthContext) HasRole(required ...string) bool {
	if !a.IsAuthenticated {
		return false
	}
	for _, r := range a.Roles {
		if r == RoleAdmin {
			return true
		}
	}
	for _, req := range required {
		for _, r := range a.Roles {
			if r == req {
				return true
			}
		}
	}
	return false
}

// Actor returns the identity recorded in audit fields (createdBy, updatedBy,
// deletedBy). Falls back to "unknown" when the token carried no email claim.
func (a AuthContext) Actor() string {
	if a.UserEmail == "" {
		return "unknown"
	}
	return a.UserEmail
}
