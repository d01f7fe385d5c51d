package middleware

import (
	"errors"
	"net/http"

	"github.com/marianalima/joalheria-backend/api/responses"
	"github.com/marianalima/joalheria-backend/pkg/auth/session"
	"github.com/marianalima/joalheria-backend/pkg/config"
	pkgerrors "github.com/marianalima/joalheria-backend/pkg/errors"
	"github.com/marianalima/joalheria-backend/pkg/logger"
)

// AdminVerifier checks the stored admin capability.
type AdminVerifier interface {
	Verify(token string) error
}

// Session resolves the cookie into a session record and seeds the request
// context. Requests without a session pass through; gating happens in
// CustomerRequired / AdminRequired.
func Session(manager *session.Manager, cfg config.SessionConfig, logg *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			sessionID := session.ReadCookie(r, cfg)
			if sessionID == "" {
				next.ServeHTTP(w, r)
				return
			}

			record, err := manager.Get(r.Context(), sessionID)
			if err != nil {
				if errors.Is(err, session.ErrNoSession) {
					session.ClearCookie(w, cfg)
					next.ServeHTTP(w, r)
					return
				}
				responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load session"))
				return
			}

			// sliding expiry
			_ = manager.Touch(r.Context(), sessionID)

			ctx := WithSession(r.Context(), sessionID, record)
			if logg != nil {
				ctx = logg.WithSessionID(ctx, sessionID)
				if record.UserID != nil {
					ctx = logg.WithUserID(ctx, record.UserID.String())
				}
			}

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// CustomerRequired rejects requests whose session carries no customer
// principal.
func CustomerRequired(logg *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			record := SessionFromContext(r.Context())
			if record == nil || record.UserID == nil {
				responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeUnauthorized, "login required"))
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// AdminRequired rejects requests whose session carries no live admin
// capability.
func AdminRequired(verifier AdminVerifier, logg *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			record := SessionFromContext(r.Context())
			if record == nil {
				responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeForbidden, "admin access required"))
				return
			}
			if err := verifier.Verify(record.AdminCapability); err != nil {
				responses.WriteError(r.Context(), logg, w, err)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
