package oauth

import (
	"context"

	"github.com/pkg/errors"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	googleoauth2 "google.golang.org/api/oauth2/v2"
	"google.golang.org/api/option"

	"github.com/kala-yatra/backend/internal/config"
)

// UserInfo is the identity returned by the provider after a code exchange.
type UserInfo struct {
	Subject       string
	Email         string
	EmailVerified bool
	Name          string
	Picture       string
}

type Provider interface {
	AuthCodeURL(state string) string
	Exchange(ctx context.Context, code string) (*UserInfo, error)
}

type GoogleClient struct {
	config *oauth2.Config
	opts   []option.ClientOption
}

// NewGoogleClient builds a client for Google sign-in. opts are passed to the
// userinfo service and let callers point it at another endpoint.
func NewGoogleClient(cfg config.GoogleConfig, opts ...option.ClientOption) *GoogleClient {
	return &GoogleClient{
		config: &oauth2.Config{
			ClientID:     cfg.ClientID,
			ClientSecret: cfg.ClientSecret,
			RedirectURL:  cfg.RedirectURL,
			Scopes:       cfg.Scopes,
			Endpoint:     google.Endpoint,
		},
		opts: opts,
	}
}

// WithEndpoint replaces Google's authorization and token URLs.
func (c *GoogleClient) WithEndpoint(authURL, tokenURL string) *GoogleClient {
	c.config.Endpoint = oauth2.Endpoint{
		AuthURL:   authURL,
		TokenURL:  tokenURL,
		AuthStyle: oauth2.AuthStyleInParams,
	}
	return c
}

func (c *GoogleClient) AuthCodeURL(state string) string {
	return c.config.AuthCodeURL(state, oauth2.AccessTypeOnline)
}

func (c *GoogleClient) Exchange(ctx context.Context, code string) (*UserInfo, error) {
	token, err := c.config.Exchange(ctx, code)
	if err != nil {
		return nil, errors.Wrap(err, "exchange authorization code")
	}

	opts := append([]option.ClientOption{option.WithTokenSource(c.config.TokenSource(ctx, token))}, c.opts...)
	svc, err := googleoauth2.NewService(ctx, opts...)
	if err != nil {
		return nil, errors.Wrap(err, "create userinfo service")
	}

	info, err := svc.Userinfo.Get().Context(ctx).Do()
	if err != nil {
		return nil, errors.Wrap(err, "get userinfo")
	}

	if info.Id == "" || info.Email == "" {
		return nil, errors.New("userinfo without subject or email")
	}

	return &UserInfo{
		Subject:       info.Id,
		Email:         info.Email,
		EmailVerified: info.VerifiedEmail != nil && *info.VerifiedEmail,
		Name:          info.Name,
		Picture:       info.Picture,
	}, nil
}
