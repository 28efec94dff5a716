package oauth

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsConfigured(t *testing.T) {
	svc := NewGoogleOAuthService(GoogleOAuthConfig{})
	assert.False(t, svc.IsConfigured())

	svc = NewGoogleOAuthService(GoogleOAuthConfig{ClientID: "id", ClientSecret: "secret"})
	assert.True(t, svc.IsConfigured())
}

func TestGetAuthURLCarriesState(t *testing.T) {
	svc := NewGoogleOAuthService(GoogleOAuthConfig{
		ClientID:     "client-123",
		ClientSecret: "secret",
		RedirectURL:  "http://localhost:8080/api/v1/auth/google/callback",
	})

	url := svc.GetAuthURL("state-token-xyz")

	assert.Contains(t, url, "state=state-token-xyz")
	assert.Contains(t, url, "client_id=client-123")
	assert.Contains(t, url, "access_type=offline")
}
