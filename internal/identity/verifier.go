// Package identity turns a LIFF ID token into a verified user identity by
// asking the LINE verify endpoint.
package identity

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"survey/internal/apperr"
	"survey/internal/models"
	"survey/internal/providers"
	"survey/internal/structures"
	"time"

	"github.com/goccy/go-json"
	"github.com/golang-jwt/jwt/v5"
)

const (
	DevUserID      = "dev_user_12345"
	DevDisplayName = "Development User"

	cacheKeyPrefix = "identity:"
)

type VerifierInterface interface {
	Verify(ctx context.Context, credential string) (*models.Identity, error)
}

type verifyResponse struct {
	Sub     string `json:"sub"`
	Name    string `json:"name"`
	Picture string `json:"picture"`
}

type LineVerifier struct {
	devMode   bool
	clientID  string
	verifyURL string
	client    *http.Client
	cache     providers.CacheProviderInterface
	metrics   providers.MetricsProviderInterface
	logger    providers.Logger
	now       func() time.Time
}

func NewLineVerifier(
	conf *structures.Config,
	cache providers.CacheProviderInterface,
	metrics providers.MetricsProviderInterface,
	logger providers.Logger,
) *LineVerifier {
	timeout := conf.Identity.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	if conf.Identity.DevMode {
		logger.Warnf(providers.TypeAuth, "Development mode enabled: every request is authenticated as %s", DevUserID)
	}
	return &LineVerifier{
		devMode:   conf.Identity.DevMode,
		clientID:  conf.Identity.ClientID,
		verifyURL: conf.Identity.VerifyURL,
		client:    &http.Client{Timeout: timeout},
		cache:     cache,
		metrics:   metrics,
		logger:    logger,
		now:       time.Now,
	}
}

func DevIdentity() *models.Identity {
	return &models.Identity{ID: DevUserID, DisplayName: DevDisplayName}
}

func (v *LineVerifier) Verify(ctx context.Context, credential string) (*models.Identity, error) {
	if v.devMode {
		v.metrics.IncIdentityVerifications("dev")
		return DevIdentity(), nil
	}
	if credential == "" {
		v.metrics.IncIdentityVerifications("missing")
		return nil, apperr.Unauthenticated("authentication required")
	}

	if err := v.precheck(credential); err != nil {
		v.metrics.IncIdentityVerifications("rejected")
		v.logger.Debugf(providers.TypeAuth, "Token rejected before verification: %v", err)
		return nil, apperr.Unauthenticated("invalid token")
	}

	key := cacheKey(credential)
	if raw, ok := v.cache.Get(key); ok {
		var ident models.Identity
		if err := json.Unmarshal(raw, &ident); err == nil {
			v.metrics.IncIdentityVerifications("cached")
			return &ident, nil
		}
	}

	ident, err := v.callProvider(ctx, credential)
	if err != nil {
		if apperr.KindOf(err) == apperr.KindUpstream {
			v.metrics.IncIdentityVerifications("error")
		} else {
			v.metrics.IncIdentityVerifications("rejected")
		}
		return nil, err
	}

	if raw, err := json.Marshal(ident); err == nil {
		v.cache.Set(key, raw)
	}
	v.metrics.IncIdentityVerifications("verified")
	return ident, nil
}

// precheck parses the token without checking the signature; the provider
// does that. It only filters out strings that are not JWTs or have expired.
func (v *LineVerifier) precheck(credential string) error {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(credential, claims); err != nil {
		return err
	}
	exp, err := claims.GetExpirationTime()
	if err != nil {
		return err
	}
	if exp != nil && !v.now().Before(exp.Time) {
		return jwt.ErrTokenExpired
	}
	return nil
}

func (v *LineVerifier) callProvider(ctx context.Context, credential string) (*models.Identity, error) {
	form := url.Values{}
	form.Set("id_token", credential)
	form.Set("client_id", v.clientID)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, v.verifyURL, strings.NewReader(form.Encode()))
	if err != nil {
		return nil, apperr.Upstream("identity verification failed", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := v.client.Do(req)
	if err != nil {
		v.logger.Errorf(providers.TypeAuth, "Identity provider unreachable: %v", err)
		return nil, apperr.Upstream("identity verification failed", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		v.logger.Infof(providers.TypeAuth, "Identity provider rejected token: status %d", resp.StatusCode)
		return nil, apperr.Unauthenticated("invalid token")
	}

	var body verifyResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, apperr.Upstream("identity verification failed", fmt.Errorf("decode verify response: %w", err))
	}
	if body.Sub == "" {
		return nil, apperr.Unauthenticated("invalid token")
	}

	return &models.Identity{
		ID:          body.Sub,
		DisplayName: body.Name,
		PictureURL:  body.Picture,
	}, nil
}

func cacheKey(credential string) string {
	sum := sha256.Sum256([]byte(credential))
	return cacheKeyPrefix + hex.EncodeToString(sum[:])
}

var errNoBearer = errors.New("no bearer token")

// BearerToken extracts the token from an "Authorization: Bearer <token>"
// header. The scheme is matched case-insensitively.
func BearerToken(r *http.Request) (string, error) {
	h := r.Header.Get("Authorization")
	scheme, token, ok := strings.Cut(h, " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") {
		return "", errNoBearer
	}
	token = strings.TrimSpace(token)
	if token == "" {
		return "", errNoBearer
	}
	return token, nil
}
