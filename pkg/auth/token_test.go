package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/marianalima/joalheria-backend/pkg/config"
)

func adminConfig() config.AdminConfig {
	return config.AdminConfig{
		Secret:             "shared-secret",
		TokenSigningSecret: "signing-secret",
		TokenTTLMinutes:    120,
		TokenIssuer:        "joalheria",
	}
}

func TestMintAndVerifyAdminCapability(t *testing.T) {
	cfg := adminConfig()
	now := time.Now()

	token, err := MintAdminCapability(cfg, now)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := VerifyAdminCapability(cfg, token)
	require.NoError(t, err)
	assert.Equal(t, "admin", claims.Scope)
	assert.WithinDuration(t, now.Add(2*time.Hour), claims.ExpiresAt.Time, time.Second)
}

func TestVerifyAdminCapabilityRejectsExpired(t *testing.T) {
	cfg := adminConfig()

	token, err := MintAdminCapability(cfg, time.Now().Add(-3*time.Hour))
	require.NoError(t, err)

	_, err = VerifyAdminCapability(cfg, token)
	assert.Error(t, err)
}

func TestVerifyAdminCapabilityRejectsWrongSecret(t *testing.T) {
	cfg := adminConfig()
	token, err := MintAdminCapability(cfg, time.Now())
	require.NoError(t, err)

	other := cfg
	other.TokenSigningSecret = "different"
	_, err = VerifyAdminCapability(other, token)
	assert.Error(t, err)
}

func TestMintAdminCapabilityRequiresSecret(t *testing.T) {
	cfg := adminConfig()
	cfg.TokenSigningSecret = ""
	_, err := MintAdminCapability(cfg, time.Now())
	assert.Error(t, err)
}
