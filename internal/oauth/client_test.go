package oauth

import (
	"context"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/api/option"

	"github.com/kala-yatra/backend/internal/config"
	"github.com/kala-yatra/backend/internal/oauth/mockprovider"
)

func newTestClient(t *testing.T) (*GoogleClient, *mockprovider.Provider) {
	t.Helper()

	provider := mockprovider.New(mockprovider.User{
		ID:            "google-sub-42",
		Email:         "asha@example.com",
		VerifiedEmail: true,
		Name:          "Asha Rao",
	})
	srv := httptest.NewServer(provider.Handler())
	t.Cleanup(srv.Close)

	client := NewGoogleClient(config.GoogleConfig{
		ClientID:     "client-id",
		ClientSecret: "secret",
		RedirectURL:  "http://localhost:8080/api/v1/auth/callback",
		Scopes:       []string{"profile", "email"},
	}, option.WithEndpoint(srv.URL+"/")).
		WithEndpoint(srv.URL+mockprovider.AuthPath, srv.URL+mockprovider.TokenPath)

	return client, provider
}

func TestAuthCodeURL(t *testing.T) {
	client, _ := newTestClient(t)

	u, err := url.Parse(client.AuthCodeURL("state-1"))
	require.NoError(t, err)

	q := u.Query()
	assert.Equal(t, mockprovider.AuthPath, u.Path)
	assert.Equal(t, "client-id", q.Get("client_id"))
	assert.Equal(t, "state-1", q.Get("state"))
	assert.Equal(t, "profile email", q.Get("scope"))
	assert.Equal(t, "http://localhost:8080/api/v1/auth/callback", q.Get("redirect_uri"))
}

func TestExchange(t *testing.T) {
	client, provider := newTestClient(t)

	info, err := client.Exchange(context.Background(), provider.IssueCode("client-id"))
	require.NoError(t, err)
	assert.Equal(t, "google-sub-42", info.Subject)
	assert.Equal(t, "asha@example.com", info.Email)
	assert.True(t, info.EmailVerified)
	assert.Equal(t, "Asha Rao", info.Name)
}

func TestExchangeRejectsUnknownCode(t *testing.T) {
	client, _ := newTestClient(t)

	_, err := client.Exchange(context.Background(), "not-issued")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "exchange authorization code")
}
