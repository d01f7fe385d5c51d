package adminauth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/marianalima/joalheria-backend/pkg/config"
	pkgerrors "github.com/marianalima/joalheria-backend/pkg/errors"
)

func testConfig() config.AdminConfig {
	return config.AdminConfig{
		Secret:             "correct-admin-secret",
		TokenSigningSecret: "signing-secret",
		TokenTTLMinutes:    30,
		TokenIssuer:        "joalheria",
	}
}

func TestLoginWithCorrectSecret(t *testing.T) {
	svc := NewService(testConfig())

	token, err := svc.Login("correct-admin-secret")
	require.NoError(t, err)
	assert.NotEmpty(t, token)

	assert.NoError(t, svc.Verify(token))
}

func TestLoginWithWrongSecret(t *testing.T) {
	svc := NewService(testConfig())

	_, err := svc.Login("wrong-secret")
	require.Error(t, err)
	assert.Equal(t, pkgerrors.CodeUnauthorized, pkgerrors.As(err).Code())

	_, err = svc.Login("")
	require.Error(t, err)
	assert.Equal(t, pkgerrors.CodeUnauthorized, pkgerrors.As(err).Code())
}

func TestVerifyRejectsEmptyAndMalformed(t *testing.T) {
	svc := NewService(testConfig())

	err := svc.Verify("")
	require.Error(t, err)
	assert.Equal(t, pkgerrors.CodeForbidden, pkgerrors.As(err).Code())

	err = svc.Verify("not-a-jwt")
	require.Error(t, err)
	assert.Equal(t, pkgerrors.CodeForbidden, pkgerrors.As(err).Code())
}

func TestVerifyRejectsExpiredCapability(t *testing.T) {
	svc := NewService(testConfig())
	svc.now = func() time.Time { return time.Now().Add(-2 * time.Hour) }

	token, err := svc.Login("correct-admin-secret")
	require.NoError(t, err)

	err = svc.Verify(token)
	require.Error(t, err)
	assert.Equal(t, pkgerrors.CodeForbidden, pkgerrors.As(err).Code())
}
