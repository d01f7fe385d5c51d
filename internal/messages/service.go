package messages

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/marianalima/joalheria-backend/pkg/db/models"
	pkgerrors "github.com/marianalima/joalheria-backend/pkg/errors"
)

// Service exposes contact message operations.
type Service interface {
	Create(ctx context.Context, input CreateInput) (*MessageDTO, error)
	List(ctx context.Context) ([]MessageDTO, error)
	SetRead(ctx context.Context, id uuid.UUID, read bool) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type service struct {
	repo Repository
}

// NewService builds the contact message service.
func NewService(repo Repository) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("messages repository required")
	}
	return &service{repo: repo}, nil
}

func (s *service) Create(ctx context.Context, input CreateInput) (*MessageDTO, error) {
	name := strings.TrimSpace(input.SenderName)
	if name == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "sender name required")
	}
	email := strings.ToLower(strings.TrimSpace(input.SenderEmail))
	if email == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "sender email required")
	}
	subject := strings.TrimSpace(input.Subject)
	if subject == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "subject required")
	}
	body := strings.TrimSpace(input.Body)
	if body == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "message body required")
	}

	created, err := s.repo.Create(ctx, &models.ContactMessage{
		SenderName:  name,
		SenderEmail: email,
		SenderPhone: strings.TrimSpace(input.SenderPhone),
		Subject:     subject,
		Body:        body,
	})
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create contact message")
	}

	dto := toMessageDTO(*created)
	return &dto, nil
}

func (s *service) List(ctx context.Context) ([]MessageDTO, error) {
	messages, err := s.repo.List(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list contact messages")
	}
	return toMessageDTOs(messages), nil
}

func (s *service) SetRead(ctx context.Context, id uuid.UUID, read bool) error {
	if id == uuid.Nil {
		return pkgerrors.New(pkgerrors.CodeValidation, "message id required")
	}

	affected, err := s.repo.SetRead(ctx, id, read)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update contact message")
	}
	if affected == 0 {
		return pkgerrors.New(pkgerrors.CodeNotFound, "message not found")
	}
	return nil
}

func (s *service) Delete(ctx context.Context, id uuid.UUID) error {
	if id == uuid.Nil {
		return pkgerrors.New(pkgerrors.CodeValidation, "message id required")
	}

	affected, err := s.repo.Delete(ctx, id)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete contact message")
	}
	if affected == 0 {
		return pkgerrors.New(pkgerrors.CodeNotFound, "message not found")
	}
	return nil
}
