// Package mockprovider is a local stand-in for Google's OAuth endpoints used
// in development and tests.
package mockprovider

import (
	"crypto/rand"
	"encoding/base64"
	"encoding/json"
	"net/http"
	"net/url"
	"strings"
	"sync"

	"go.uber.org/zap"

	"github.com/kala-yatra/backend/pkg/logger"
)

const (
	AuthPath     = "/o/oauth2/auth"
	TokenPath    = "/token"
	UserInfoPath = "/oauth2/v2/userinfo"
)

// User is served from the userinfo endpoint in Google's v2 format.
type User struct {
	ID            string `json:"id"`
	Email         string `json:"email"`
	VerifiedEmail bool   `json:"verified_email"`
	Name          string `json:"name"`
	Picture       string `json:"picture,omitempty"`
}

type tokenResponse struct {
	AccessToken string `json:"access_token"`
	ExpiresIn   int    `json:"expires_in"`
	TokenType   string `json:"token_type"`
}

type Provider struct {
	user   User
	codes  map[string]string
	tokens map[string]bool
	mu     sync.Mutex
}

func New(user User) *Provider {
	return &Provider{
		user:   user,
		codes:  make(map[string]string),
		tokens: make(map[string]bool),
	}
}

func (p *Provider) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc(AuthPath, p.authorize)
	mux.HandleFunc(TokenPath, p.token)
	mux.HandleFunc(UserInfoPath, p.userInfo)
	return mux
}

// IssueCode returns a code the token endpoint will accept once.
func (p *Provider) IssueCode(clientID string) string {
	code := randomToken()

	p.mu.Lock()
	p.codes[code] = clientID
	p.mu.Unlock()

	return code
}

func (p *Provider) authorize(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	clientID := q.Get("client_id")
	redirectURI := q.Get("redirect_uri")
	if clientID == "" || redirectURI == "" {
		http.Error(w, "invalid_request", http.StatusBadRequest)
		return
	}

	target, err := url.Parse(redirectURI)
	if err != nil {
		http.Error(w, "invalid_request", http.StatusBadRequest)
		return
	}

	params := target.Query()
	params.Set("code", p.IssueCode(clientID))
	if state := q.Get("state"); state != "" {
		params.Set("state", state)
	}
	target.RawQuery = params.Encode()

	logger.Debug("mock provider redirect", zap.String("redirect_uri", redirectURI))
	http.Redirect(w, r, target.String(), http.StatusFound)
}

func (p *Provider) token(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid_request", http.StatusBadRequest)
		return
	}

	if r.FormValue("grant_type") != "authorization_code" {
		writeError(w, "unsupported_grant_type")
		return
	}

	code := r.FormValue("code")
	p.mu.Lock()
	clientID, ok := p.codes[code]
	delete(p.codes, code)
	p.mu.Unlock()

	if !ok {
		writeError(w, "invalid_grant")
		return
	}
	if clientID != r.FormValue("client_id") {
		writeError(w, "invalid_client")
		return
	}

	access := randomToken()
	p.mu.Lock()
	p.tokens[access] = true
	p.mu.Unlock()

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(tokenResponse{
		AccessToken: access,
		ExpiresIn:   3600,
		TokenType:   "Bearer",
	})
}

func (p *Provider) userInfo(w http.ResponseWriter, r *http.Request) {
	access, ok := strings.CutPrefix(r.Header.Get("Authorization"), "Bearer ")
	if !ok {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	p.mu.Lock()
	valid := p.tokens[access]
	p.mu.Unlock()

	if !valid {
		http.Error(w, "invalid_token", http.StatusUnauthorized)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(p.user)
}

func writeError(w http.ResponseWriter, code string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusBadRequest)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": code})
}

func randomToken() string {
	b := make([]byte, 32)
	_, _ = rand.Read(b)
	return base64.RawURLEncoding.EncodeToString(b)
}
