package controllers

import (
	"net/http"

	"github.com/marianalima/joalheria-backend/api/middleware"
	"github.com/marianalima/joalheria-backend/api/responses"
	"github.com/marianalima/joalheria-backend/api/validators"
	"github.com/marianalima/joalheria-backend/internal/users"
	"github.com/marianalima/joalheria-backend/pkg/auth/session"
	"github.com/marianalima/joalheria-backend/pkg/config"
	pkgerrors "github.com/marianalima/joalheria-backend/pkg/errors"
	"github.com/marianalima/joalheria-backend/pkg/logger"
)

type registerRequest struct {
	Email    string  `json:"email" validate:"required,email"`
	Password string  `json:"password" validate:"required,min=8"`
	Name     string  `json:"name" validate:"required"`
	Phone    *string `json:"phone"`
}

// Register creates a customer account and signs it in.
func Register(svc users.Service, manager *session.Manager, cfg config.SessionConfig, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload registerRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		user, err := svc.Register(r.Context(), users.RegisterInput{
			Email:    payload.Email,
			Password: payload.Password,
			Name:     payload.Name,
			Phone:    payload.Phone,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if err := signIn(w, r, manager, cfg, session.Record{UserID: &user.ID}); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, user)
	}
}

type loginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// Login authenticates a customer and rotates the session id.
func Login(svc users.Service, manager *session.Manager, cfg config.SessionConfig, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload loginRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		user, err := svc.Login(r.Context(), payload.Email, payload.Password)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		record := session.Record{UserID: &user.ID}
		if current := middleware.SessionFromContext(r.Context()); current != nil {
			record.AdminCapability = current.AdminCapability
		}
		if err := signIn(w, r, manager, cfg, record); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, user)
	}
}

// Logout drops the customer principal. The session itself survives, so an
// admin capability held in the same session is untouched.
func Logout(manager *session.Manager, cfg config.SessionConfig, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sessionID := middleware.SessionIDFromContext(r.Context())
		record := middleware.SessionFromContext(r.Context())
		if sessionID == "" || record == nil {
			responses.WriteSuccess(w, map[string]string{"status": "logged_out"})
			return
		}

		next := session.Record{AdminCapability: record.AdminCapability}
		if err := manager.Put(r.Context(), sessionID, next); err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update session"))
			return
		}

		responses.WriteSuccess(w, map[string]string{"status": "logged_out"})
	}
}

// CurrentUser returns the logged-in customer's account.
func CurrentUser(svc users.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		record := middleware.SessionFromContext(r.Context())
		if record == nil || record.UserID == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeUnauthorized, "login required"))
			return
		}

		user, err := svc.Get(r.Context(), *record.UserID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, user)
	}
}

// signIn rotates the session id for the new principal and refreshes the
// cookie.
func signIn(w http.ResponseWriter, r *http.Request, manager *session.Manager, cfg config.SessionConfig, record session.Record) error {
	oldSessionID := middleware.SessionIDFromContext(r.Context())
	sessionID, err := manager.Regenerate(r.Context(), oldSessionID, record)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create session")
	}
	session.WriteCookie(w, cfg, sessionID)
	return nil
}
