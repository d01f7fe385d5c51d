package controllers

import (
	"net/http"

	"github.com/marianalima/joalheria-backend/api/responses"
	"github.com/marianalima/joalheria-backend/api/validators"
	"github.com/marianalima/joalheria-backend/internal/messages"
	"github.com/marianalima/joalheria-backend/pkg/logger"
)

type createMessageRequest struct {
	SenderName  string `json:"sender_name" validate:"required"`
	SenderEmail string `json:"sender_email" validate:"required,email"`
	SenderPhone string `json:"sender_phone"`
	Subject     string `json:"subject"`
	Body        string `json:"body" validate:"required"`
}

// CreateContactMessage stores a storefront contact form submission.
func CreateContactMessage(svc messages.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload createMessageRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		message, err := svc.Create(r.Context(), messages.CreateInput{
			SenderName:  payload.SenderName,
			SenderEmail: payload.SenderEmail,
			SenderPhone: payload.SenderPhone,
			Subject:     payload.Subject,
			Body:        payload.Body,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, message)
	}
}

// AdminListMessages returns all contact messages, newest first.
func AdminListMessages(svc messages.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		list, err := svc.List(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, list)
	}
}

type setMessageReadRequest struct {
	Read *bool `json:"read" validate:"required"`
}

// SetMessageRead flags a contact message as read or unread (admin).
func SetMessageRead(svc messages.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := parseIDParam(r, "messageId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload setMessageReadRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if err := svc.SetRead(r.Context(), id, *payload.Read); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, map[string]string{"status": "updated"})
	}
}

// DeleteMessage removes a contact message (admin).
func DeleteMessage(svc messages.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := parseIDParam(r, "messageId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if err := svc.Delete(r.Context(), id); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, map[string]string{"status": "deleted"})
	}
}
