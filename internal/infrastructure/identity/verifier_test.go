package identity

import (
	"context"
	"crypto/rand"
	"crypto/rsa"
	"encoding/base64"
	"encoding/json"
	"math/big"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"
)

const (
	testTenant   = "11111111-2222-3333-4444-555555555555"
	testAudience = "api://catalog-client"
	testKid      = "test-signing-key"
)

type testIdP struct {
	key    *rsa.PrivateKey
	server *httptest.Server
	hits   atomic.Int64
}

// newTestIdP serves a JWKS document for a freshly generated RSA key and
// counts how often it is fetched.
func newTestIdP(t *testing.T) *testIdP {
	t.Helper()

	key, err := rsa.GenerateKey(rand.Reader, 2048)
	if err != nil {
		t.Fatalf("generate key: %v", err)
	}

	idp := &testIdP{key: key}
	idp.server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		idp.hits.Add(1)
		doc := map[string]any{
			"keys": []map[string]string{{
				"kty": "RSA",
				"use": "sig",
				"kid": testKid,
				"n":   base64.RawURLEncoding.EncodeToString(key.PublicKey.N.Bytes()),
				"e":   base64.RawURLEncoding.EncodeToString(big.NewInt(int64(key.PublicKey.E)).Bytes()),
			}},
		}
		_ = json.NewEncoder(w).Encode(doc)
	}))
	t.Cleanup(idp.server.Close)

	return idp
}

func (idp *testIdP) verifier(t *testing.T) *Verifier {
	t.Helper()
	return NewVerifier(Config{
		TenantID: testTenant,
		Issuer:   "https://sts.windows.net/" + testTenant + "/",
		Audience: testAudience,
		JWKSURL:  idp.server.URL,
	}, zerolog.Nop())
}

// sign issues an RS256 token with sensible defaults, then applies overrides.
func (idp *testIdP) sign(t *testing.T, overrides map[string]any) string {
	t.Helper()

	claims := jwt.MapClaims{
		"iss":                "https://sts.windows.net/" + testTenant + "/",
		"aud":                testAudience,
		"tid":                testTenant,
		"oid":                "user-object-id",
		"sub":                "subject-id",
		"preferred_username": "alice@example.com",
		"name":               "Alice",
		"roles":              []string{"Editor"},
		"exp":                time.Now().Add(time.Hour).Unix(),
	}
	for k, v := range overrides {
		if v == nil {
			delete(claims, k)
			continue
		}
		claims[k] = v
	}

	token := jwt.NewWithClaims(jwt.SigningMethodRS256, claims)
	token.Header["kid"] = testKid
	signed, err := token.SignedString(idp.key)
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	return signed
}

func TestVerify_ValidToken(t *testing.T) {
	idp := newTestIdP(t)
	v := idp.verifier(t)

	auth := v.Verify(context.Background(), "Bearer "+idp.sign(t, nil))

	if !auth.IsAuthenticated {
		t.Fatalf("expected authenticated context, got error %q", auth.Error)
	}
	if auth.UserID != "user-object-id" {
		t.Errorf("oid must win over sub, got %q", auth.UserID)
	}
	if auth.UserEmail != "alice@example.com" {
		t.Errorf("email = %q", auth.UserEmail)
	}
	if auth.UserName != "Alice" {
		t.Errorf("name = %q", auth.UserName)
	}
	if len(auth.Roles) != 1 || auth.Roles[0] != "Editor" {
		t.Errorf("roles = %v", auth.Roles)
	}
}

func TestVerify_ClaimFallbacks(t *testing.T) {
	idp := newTestIdP(t)
	v := idp.verifier(t)

	// No oid: subject id falls back to sub. No preferred_username: email
	// falls back to upn. No roles claim: empty set, still authenticated.
	token := idp.sign(t, map[string]any{
		"oid":                nil,
		"preferred_username": nil,
		"upn":                "alice@corp.example.com",
		"roles":              nil,
	})

	auth := v.Verify(context.Background(), "Bearer "+token)
	if !auth.IsAuthenticated {
		t.Fatalf("expected authenticated context, got error %q", auth.Error)
	}
	if auth.UserID != "subject-id" {
		t.Errorf("UserID = %q, want sub fallback", auth.UserID)
	}
	if auth.UserEmail != "alice@corp.example.com" {
		t.Errorf("UserEmail = %q, want upn fallback", auth.UserEmail)
	}
	if auth.Roles == nil || len(auth.Roles) != 0 {
		t.Errorf("roles must default to an empty set, got %v", auth.Roles)
	}
}

func TestVerify_MissingHeaderMakesNoNetworkCall(t *testing.T) {
	idp := newTestIdP(t)
	v := idp.verifier(t)

	for _, header := range []string{"", "Basic dXNlcjpwYXNz", "Bearer", "Bearer "} {
		auth := v.Verify(context.Background(), header)
		if auth.IsAuthenticated {
			t.Errorf("header %q: must not authenticate", header)
		}
		if auth.Error != "No authorization header provided" {
			t.Errorf("header %q: error = %q", header, auth.Error)
		}
	}

	if n := idp.hits.Load(); n != 0 {
		t.Fatalf("jwks endpoint was fetched %d times without a bearer token", n)
	}
}

func TestVerify_TenantMismatch(t *testing.T) {
	idp := newTestIdP(t)
	v := idp.verifier(t)

	token := idp.sign(t, map[string]any{"tid": "other-tenant"})
	auth := v.Verify(context.Background(), "Bearer "+token)

	if auth.IsAuthenticated {
		t.Fatalf("token from a foreign tenant must be rejected")
	}
	if auth.Error != "Invalid or expired token" {
		t.Errorf("error must stay generic, got %q", auth.Error)
	}
}

func TestVerify_Expired(t *testing.T) {
	idp := newTestIdP(t)
	v := idp.verifier(t)

	token := idp.sign(t, map[string]any{"exp": time.Now().Add(-time.Minute).Unix()})
	auth := v.Verify(context.Background(), "Bearer "+token)

	if auth.IsAuthenticated || auth.Error != "Invalid or expired token" {
		t.Fatalf("expired token must fail generically, got %+v", auth)
	}
}

func TestVerify_WrongAudience(t *testing.T) {
	idp := newTestIdP(t)
	v := idp.verifier(t)

	token := idp.sign(t, map[string]any{"aud": "api://someone-else"})
	auth := v.Verify(context.Background(), "Bearer "+token)

	if auth.IsAuthenticated || auth.Error != "Invalid or expired token" {
		t.Fatalf("wrong audience must fail generically, got %+v", auth)
	}
}

func TestVerify_WrongIssuer(t *testing.T) {
	idp := newTestIdP(t)
	v := idp.verifier(t)

	token := idp.sign(t, map[string]any{"iss": "https://evil.example.com/"})
	auth := v.Verify(context.Background(), "Bearer "+token)

	if auth.IsAuthenticated || auth.Error != "Invalid or expired token" {
		t.Fatalf("wrong issuer must fail generically, got %+v", auth)
	}
}

func TestVerify_TamperedSignature(t *testing.T) {
	idp := newTestIdP(t)
	v := idp.verifier(t)

	// Sign with a key the JWKS endpoint does not serve.
	otherKey, err := rsa.GenerateKey(rand.Reader, 2048)
	if err != nil {
		t.Fatalf("generate key: %v", err)
	}
	token := jwt.NewWithClaims(jwt.SigningMethodRS256, jwt.MapClaims{
		"iss": "https://sts.windows.net/" + testTenant + "/",
		"aud": testAudience,
		"tid": testTenant,
		"oid": "user-object-id",
		"exp": time.Now().Add(time.Hour).Unix(),
	})
	token.Header["kid"] = testKid
	signed, err := token.SignedString(otherKey)
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}

	auth := v.Verify(context.Background(), "Bearer "+signed)
	if auth.IsAuthenticated || auth.Error != "Invalid or expired token" {
		t.Fatalf("bad signature must fail generically, got %+v", auth)
	}
}

func TestVerify_KeysAreCachedAcrossRequests(t *testing.T) {
	idp := newTestIdP(t)
	v := idp.verifier(t)

	for i := 0; i < 3; i++ {
		auth := v.Verify(context.Background(), "Bearer "+idp.sign(t, nil))
		if !auth.IsAuthenticated {
			t.Fatalf("request %d: %q", i, auth.Error)
		}
	}

	if n := idp.hits.Load(); n != 1 {
		t.Fatalf("expected a single jwks fetch, got %d", n)
	}
}
