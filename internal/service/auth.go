package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/kala-yatra/backend/internal/config"
	"github.com/kala-yatra/backend/internal/domain"
	"github.com/kala-yatra/backend/internal/oauth"
	"github.com/kala-yatra/backend/internal/repository"
	"github.com/kala-yatra/backend/pkg/auth"
	"github.com/kala-yatra/backend/pkg/logger"
)

type authService struct {
	profiles       repository.UserProfiles
	refreshSession repository.RefreshSession
	provider       oauth.Provider
	states         OAuthStateStore
	tokenManager   auth.TokenManager
	profileSpace   uuid.UUID
	now            func() time.Time
}

func newAuthService(
	profiles repository.UserProfiles,
	refreshSession repository.RefreshSession,
	provider oauth.Provider,
	states OAuthStateStore,
	tokenManager auth.TokenManager,
	cfg config.AuthConfig,
) *authService {
	return &authService{
		profiles:       profiles,
		refreshSession: refreshSession,
		provider:       provider,
		states:         states,
		tokenManager:   tokenManager,
		profileSpace:   uuid.MustParse(cfg.ProfileIDSpace),
		now:            time.Now,
	}
}

// ProfileID maps a provider subject to a stable profile id.
func ProfileID(space uuid.UUID, subject string) uuid.UUID {
	return uuid.NewSHA1(space, []byte(subject))
}

func (s *authService) SignInURL(ctx context.Context) (string, string, error) {
	state, err := s.states.Issue(ctx)
	if err != nil {
		return "", "", fmt.Errorf("issue oauth state failed: %w", err)
	}

	return s.provider.AuthCodeURL(state), state, nil
}

func (s *authService) Callback(ctx context.Context, code, state, userAgent, userIP string) (*Tokens, error) {
	if err := s.states.Consume(ctx, state); err != nil {
		if errors.Is(err, oauth.ErrInvalidState) {
			return nil, ErrInvalidState
		}
		return nil, fmt.Errorf("consume oauth state failed: %w", err)
	}

	info, err := s.provider.Exchange(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCodeExchange, err)
	}

	profileID := ProfileID(s.profileSpace, info.Subject)
	s.provisionProfile(ctx, profileID, info)

	tokens, err := s.createSession(ctx, profileID, info.Email, userAgent, userIP)
	if err != nil {
		return nil, err
	}

	return tokens, nil
}

// provisionProfile creates the profile on first login and touches it after.
// Failures are logged only; they must not block sign-in.
func (s *authService) provisionProfile(ctx context.Context, profileID uuid.UUID, info *oauth.UserInfo) {
	now := s.now()

	_, err := s.profiles.GetByExternalID(ctx, info.Subject)
	switch {
	case err == nil:
		if err := s.profiles.TouchLastLogin(ctx, profileID, now); err != nil {
			logger.Error("touch user profile failed", zap.String("profile_id", profileID.String()), zap.Error(err))
		}
		return
	case !errors.Is(err, domain.ErrNotFound):
		logger.Error("get user profile failed", zap.String("profile_id", profileID.String()), zap.Error(err))
		return
	}

	profile := &domain.UserProfile{
		ID:           profileID,
		ExternalID:   info.Subject,
		Email:        info.Email,
		FullName:     info.Name,
		AvatarURL:    info.Picture,
		IsNewAccount: true,
		LastLoginAt:  &now,
	}
	if err := s.profiles.Create(ctx, profile); err != nil {
		if errors.Is(err, domain.ErrDuplicateEntry) {
			// a concurrent login created it first
			if err := s.profiles.TouchLastLogin(ctx, profileID, now); err != nil {
				logger.Error("touch user profile failed", zap.String("profile_id", profileID.String()), zap.Error(err))
			}
			return
		}
		logger.Error("create user profile failed", zap.String("profile_id", profileID.String()), zap.Error(err))
		return
	}

	logger.Info("user profile created", zap.String("profile_id", profileID.String()))
}

func (s *authService) createSession(ctx context.Context, userID uuid.UUID, email, userAgent, userIP string) (*Tokens, error) {
	var (
		res Tokens
		err error
	)

	res.AccessToken, res.AccessTTL, err = s.tokenManager.NewJWT(userID, email)
	if err != nil {
		return nil, fmt.Errorf("generate access token failed: %w", err)
	}

	res.RefreshToken, res.RefreshTTL, err = s.tokenManager.NewRefreshToken()
	if err != nil {
		return nil, fmt.Errorf("generate refresh token failed: %w", err)
	}

	refreshSessionID, err := uuid.NewV7()
	if err != nil {
		return nil, fmt.Errorf("generate refresh session id failed: %w", err)
	}
	refreshSession := &domain.RefreshSession{
		ID:           refreshSessionID,
		UserID:       userID,
		RefreshToken: res.RefreshToken,
		UserAgent:    userAgent,
		IP:           userIP,
		ExpiresAt:    s.now().Add(res.RefreshTTL),
	}

	if err := s.refreshSession.Create(ctx, refreshSession); err != nil {
		return nil, fmt.Errorf("create refresh session failed: %w", err)
	}

	return &res, nil
}

func (s *authService) SignOut(ctx context.Context, refreshToken uuid.UUID) error {
	if err := s.refreshSession.Revoke(ctx, refreshToken); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil
		}
		return fmt.Errorf("%w: %v", ErrSignOut, err)
	}

	return nil
}

func (s *authService) GetUser(ctx context.Context, accessToken string) *SessionUser {
	if accessToken == "" {
		return nil
	}

	claims, err := s.tokenManager.Parse(accessToken)
	if err != nil {
		logger.Debug("session token rejected", zap.Error(err))
		return nil
	}

	user := &SessionUser{
		ID:    claims.UserID,
		Email: claims.Email,
	}

	profile, err := s.profiles.GetByID(ctx, claims.UserID)
	if err != nil {
		if !errors.Is(err, domain.ErrNotFound) {
			logger.Warn("load user profile failed", zap.String("profile_id", claims.UserID.String()), zap.Error(err))
		}
		return user
	}

	user.FullName = profile.FullName
	user.AvatarURL = profile.AvatarURL

	return user
}
