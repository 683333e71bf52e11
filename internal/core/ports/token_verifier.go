package ports

import (
	"context"

	"github.com/printforge/catalog-api/internal/core/domain"
)

// TokenVerifier turns the raw Authorization header into an AuthContext.
// Implementations must not make any network call when the header is missing
// or does not carry the bearer scheme, and must never surface cryptographic
// failure detail in AuthContext.Error.
type TokenVerifier interface {
	Verify(ctx context.Context, authorizationHeader string) domain.AuthContext
}
