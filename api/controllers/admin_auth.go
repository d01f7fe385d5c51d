package controllers

import (
	"net/http"

	"github.com/marianalima/joalheria-backend/api/middleware"
	"github.com/marianalima/joalheria-backend/api/responses"
	"github.com/marianalima/joalheria-backend/api/validators"
	"github.com/marianalima/joalheria-backend/internal/adminauth"
	"github.com/marianalima/joalheria-backend/pkg/auth/session"
	"github.com/marianalima/joalheria-backend/pkg/config"
	pkgerrors "github.com/marianalima/joalheria-backend/pkg/errors"
	"github.com/marianalima/joalheria-backend/pkg/logger"
)

type adminLoginRequest struct {
	Secret string `json:"secret" validate:"required"`
}

// AdminLogin exchanges the back-office secret for a session-held admin
// capability. The session id rotates on success.
func AdminLogin(svc *adminauth.Service, manager *session.Manager, cfg config.SessionConfig, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload adminLoginRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		capability, err := svc.Login(payload.Secret)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		record := session.Record{AdminCapability: capability}
		if current := middleware.SessionFromContext(r.Context()); current != nil {
			record.UserID = current.UserID
		}
		if err := signIn(w, r, manager, cfg, record); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, map[string]bool{"admin": true})
	}
}

// AdminLogout destroys the session and clears the cookie.
func AdminLogout(manager *session.Manager, cfg config.SessionConfig, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if sessionID := middleware.SessionIDFromContext(r.Context()); sessionID != "" {
			if err := manager.Destroy(r.Context(), sessionID); err != nil {
				responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "destroy session"))
				return
			}
		}
		session.ClearCookie(w, cfg)

		responses.WriteSuccess(w, map[string]string{"status": "logged_out"})
	}
}

// AdminCheck reports whether the session holds a live admin capability.
func AdminCheck(svc *adminauth.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		record := middleware.SessionFromContext(r.Context())
		if record == nil || svc.Verify(record.AdminCapability) != nil {
			responses.WriteSuccess(w, map[string]bool{"admin": false})
			return
		}
		responses.WriteSuccess(w, map[string]bool{"admin": true})
	}
}
