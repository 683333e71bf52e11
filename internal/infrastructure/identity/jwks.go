package identity

import (
	"context"
	"crypto/rsa"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"math/big"
	"net/http"
	"strings"
	"sync"
	"time"
)

const (
	keyTTL             = time.Hour
	minRefreshInterval = 30 * time.Second
	fetchTimeout       = 5 * time.Second
)

// KeyCache resolves RSA signing keys from a JWKS discovery endpoint, indexed
// by key id. Keys are cached for keyTTL; refreshes are rate-limited so that
// tokens carrying unknown kids cannot hammer the identity provider. Safe for
// concurrent use; intended as a process-lifetime singleton.
type KeyCache struct {
	url    string
	client *http.Client

	mu          sync.RWMutex
	keys        map[string]*rsa.PublicKey
	expiresAt   time.Time
	lastFetchAt time.Time
}

func NewKeyCache(jwksURL string) *KeyCache {
	return &KeyCache{
		url:    jwksURL,
		client: &http.Client{Timeout: fetchTimeout},
		keys:   map[string]*rsa.PublicKey{},
	}
}

// Key returns the public key for kid, refreshing the key set when the cache
// is stale or the kid is unknown.
func (c *KeyCache) Key(ctx context.Context, kid string) (*rsa.PublicKey, error) {
	if c.url == "" {
		return nil, errors.New("jwks url is not configured")
	}

	c.mu.RLock()
	key, ok := c.keys[kid]
	fresh := time.Now().Before(c.expiresAt)
	c.mu.RUnlock()
	if ok && fresh {
		return key, nil
	}

	if err := c.refresh(ctx, kid); err != nil {
		return nil, err
	}

	c.mu.RLock()
	defer c.mu.RUnlock()
	key, ok = c.keys[kid]
	if !ok {
		return nil, fmt.Errorf("signing key %q not found in jwks", kid)
	}
	return key, nil
}

func (c *KeyCache) refresh(ctx context.Context, kid string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := time.Now()
	if _, ok := c.keys[kid]; ok && now.Before(c.expiresAt) {
		// Another request refreshed while we waited for the lock and the kid
		// is now known. A fresh cache without the kid still forces a fetch:
		// the provider may have rotated its signing key mid-TTL.
		return nil
	}
	if now.Sub(c.lastFetchAt) < minRefreshInterval && len(c.keys) > 0 {
		return errors.New("jwks refresh rate limit reached")
	}
	c.lastFetchAt = now

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.url, nil)
	if err != nil {
		return err
	}
	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("jwks fetch: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("jwks fetch: unexpected status %d", resp.StatusCode)
	}

	var payload struct {
		Keys []struct {
			Kid string `json:"kid"`
			Kty string `json:"kty"`
			Use string `json:"use"`
			N   string `json:"n"`
			E   string `json:"e"`
		} `json:"keys"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return fmt.Errorf("jwks decode: %w", err)
	}

	next := map[string]*rsa.PublicKey{}
	for _, k := range payload.Keys {
		if !strings.EqualFold(k.Kty, "RSA") || k.Kid == "" {
			continue
		}
		pub, err := rsaFromJWK(k.N, k.E)
		if err != nil {
			continue
		}
		next[k.Kid] = pub
	}
	if len(next) == 0 {
		return errors.New("jwks contains no usable rsa keys")
	}

	c.keys = next
	c.expiresAt = now.Add(keyTTL)
	return nil
}

func rsaFromJWK(nB64, eB64 string) (*rsa.PublicKey, error) {
	nb, err := base64.RawURLEncoding.DecodeString(nB64)
	if err != nil {
		return nil, err
	}
	eb, err := base64.RawURLEncoding.DecodeString(eB64)
	if err != nil {
		return nil, err
	}
	if len(eb) == 0 {
		return nil, errors.New("invalid public exponent")
	}
	e := 0
	for _, b := range eb {
		e = e<<8 + int(b)
	}
	if e <= 1 {
		return nil, errors.New("invalid public exponent")
	}
	return &rsa.PublicKey{N: new(big.Int).SetBytes(nb), E: e}, nil
}
