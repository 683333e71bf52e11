// Package identity verifies bearer tokens issued by the configured
// Entra ID tenant. Signing keys come from the tenant's JWKS discovery
// endpoint; tokens are RS256-signed access tokens bound to this service's
// registered application.
package identity

import (
	"context"
	"errors"
	"strings"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"

	"github.com/printforge/catalog-api/internal/api/metrics"
	"github.com/printforge/catalog-api/internal/core/domain"
)

const (
	errNoAuthHeader = "No authorization header provided"
	errInvalidToken = "Invalid or expired token"
)

// Config carries the deployment binding for token verification.
type Config struct {
	TenantID string
	Issuer   string
	Audience string
	JWKSURL  string
}

// Verifier implements ports.TokenVerifier against an OIDC identity provider.
type Verifier struct {
	cfg    Config
	keys   *KeyCache
	parser *jwt.Parser
	log    zerolog.Logger
}

func NewVerifier(cfg Config, log zerolog.Logger) *Verifier {
	return &Verifier{
		cfg:  cfg,
		keys: NewKeyCache(cfg.JWKSURL),
		parser: jwt.NewParser(
			jwt.WithValidMethods([]string{jwt.SigningMethodRS256.Alg()}),
			jwt.WithIssuer(cfg.Issuer),
			jwt.WithAudience(cfg.Audience),
			jwt.WithExpirationRequired(),
		),
		log: log,
	}
}

// Verify resolves the Authorization header into a request-scoped AuthContext.
// A missing or non-bearer header fails immediately without any network call.
// All verification failures collapse into the same generic client-facing
// error; the concrete cause is only logged.
func (v *Verifier) Verify(ctx context.Context, authorizationHeader string) domain.AuthContext {
	token, ok := bearerToken(authorizationHeader)
	if !ok {
		return domain.AuthContext{Error: errNoAuthHeader}
	}

	claims := jwt.MapClaims{}
	parsed, err := v.parser.ParseWithClaims(token, claims, v.signingKey(ctx))
	if err == nil && !parsed.Valid {
		err = errors.New("token is not valid")
	}
	if err == nil {
		if tid, _ := claims["tid"].(string); tid != v.cfg.TenantID {
			err = errors.New("token tenant does not match configured tenant")
		}
	}
	if err != nil {
		v.log.Warn().Err(err).Msg("token verification failed")
		metrics.TokenVerificationsTotal.WithLabelValues("failure").Inc()
		return domain.AuthContext{Error: errInvalidToken}
	}

	auth := domain.AuthContext{
		IsAuthenticated: true,
		UserID:          firstString(claims, "oid", "sub"),
		UserEmail:       firstString(claims, "email", "preferred_username", "upn"),
		UserName:        firstString(claims, "name"),
		Roles:           roleClaims(claims),
	}

	v.log.Info().
		Str("oid", auth.UserID).
		Strs("roles", auth.Roles).
		Msg("authenticated")
	metrics.TokenVerificationsTotal.WithLabelValues("success").Inc()

	return auth
}

// signingKey returns a jwt.Keyfunc that resolves the token's kid through the
// JWKS cache.
func (v *Verifier) signingKey(ctx context.Context) jwt.Keyfunc {
	return func(t *jwt.Token) (any, error) {
		kid, _ := t.Header["kid"].(string)
		if kid == "" {
			return nil, errors.New("token header has no kid")
		}
		return v.keys.Key(ctx, kid)
	}
}

func bearerToken(header string) (string, bool) {
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
		return "", false
	}
	token := strings.TrimSpace(parts[1])
	return token, token != ""
}

// firstString returns the first of the given claims that holds a non-empty
// string. Entra ID tokens vary: v2 tokens carry email in preferred_username,
// v1 tokens in upn.
func firstString(claims jwt.MapClaims, keys ...string) string {
	for _, k := range keys {
		if s, ok := claims[k].(string); ok && s != "" {
			return s
		}
	}
	return ""
}

func roleClaims(claims jwt.MapClaims) []string {
	raw, ok := claims["roles"].([]any)
	if !ok {
		return []string{}
	}
	roles := make([]string, 0, len(raw))
	for _, r := range raw {
		if s, ok := r.(string); ok {
			roles = append(roles, s)
		}
	}
	return roles
}
