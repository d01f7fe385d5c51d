package adminauth

import (
	"time"

	"github.com/marianalima/joalheria-backend/pkg/auth"
	"github.com/marianalima/joalheria-backend/pkg/config"
	pkgerrors "github.com/marianalima/joalheria-backend/pkg/errors"
	"github.com/marianalima/joalheria-backend/pkg/security"
)

// Service gates the back office behind the shared admin secret. Successful
// login yields a short-lived capability token that the session carries; the
// capability expires independently of the session.
type Service struct {
	cfg config.AdminConfig
	now func() time.Time
}

// NewService builds the admin gate.
func NewService(cfg config.AdminConfig) *Service {
	return &Service{cfg: cfg, now: time.Now}
}

// Login verifies the shared secret in constant time and mints the admin
// capability. The caller is responsible for regenerating the session id
// before storing the capability.
func (s *Service) Login(secret string) (string, error) {
	if !security.SecretsEqual(secret, s.cfg.Secret) {
		return "", pkgerrors.New(pkgerrors.CodeUnauthorized, "invalid admin credentials")
	}

	token, err := auth.MintAdminCapability(s.cfg, s.now())
	if err != nil {
		return "", pkgerrors.Wrap(pkgerrors.CodeInternal, err, "mint admin capability")
	}
	return token, nil
}

// Verify checks a stored capability token. An empty, malformed, or expired
// capability is a forbidden error; callers treat the requester as a
// non-admin.
func (s *Service) Verify(token string) error {
	if token == "" {
		return pkgerrors.New(pkgerrors.CodeForbidden, "admin access required")
	}
	if _, err := auth.VerifyAdminCapability(s.cfg, token); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeForbidden, err, "admin access required")
	}
	return nil
}
