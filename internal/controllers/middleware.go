package controllers

import (
	"context"
	"net/http"
	"survey/internal/apperr"
	"survey/internal/identity"
	"survey/internal/models"
	"survey/internal/providers"
)

type identityKey struct{}

// RequireIdentity verifies the bearer token before calling next and stores
// the resulting identity in the request context. In development mode the
// verifier accepts requests without a token.
func RequireIdentity(verifier identity.VerifierInterface, logger providers.Logger, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token, _ := identity.BearerToken(r)

		ident, err := verifier.Verify(r.Context(), token)
		if err != nil {
			if apperr.KindOf(err) == apperr.KindUnauthenticated {
				logger.Infof(providers.TypeAuth, "Rejected %s %s: %v", r.Method, r.URL.Path, err)
			}
			writeError(w, r, logger, err)
			return
		}

		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), identityKey{}, ident)))
	})
}

func IdentityFromContext(ctx context.Context) (*models.Identity, bool) {
	ident, ok := ctx.Value(identityKey{}).(*models.Identity)
	return ident, ok && ident != nil
}

// mustIdentity is for handlers mounted behind RequireIdentity.
func mustIdentity(w http.ResponseWriter, r *http.Request, logger providers.Logger) (*models.Identity, bool) {
	ident, ok := IdentityFromContext(r.Context())
	if !ok {
		writeError(w, r, logger, apperr.Unauthenticated("authentication required"))
	}
	return ident, ok
}
