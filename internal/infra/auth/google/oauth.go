package google

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"

	"genrelens/config"
	"genrelens/internal/domain/entity"
	"genrelens/internal/domain/service"

	"github.com/pkg/errors"
	"golang.org/x/oauth2"
	googleoauth "golang.org/x/oauth2/google"
)

const googleUserInfoURL = "https://openidconnect.googleapis.com/v1/userinfo"

var defaultScopes = []string{"openid", "profile", "email"}

// OAuthService runs Google's authorization-code flow.
type OAuthService struct {
	oauthConfig     *oauth2.Config
	userInfoURL     string
	validateIDToken idTokenValidator
	logger          *slog.Logger
}

// NewOAuthService creates a new Google OAuth service
func NewOAuthService(cfg *config.Config, logger *slog.Logger) (service.OAuthService, error) {
	if cfg.GoogleOAuth == nil || cfg.GoogleOAuth.ClientID == "" || cfg.GoogleOAuth.ClientSecret == "" {
		return nil, errors.New("google oauth client id and secret must be provided")
	}

	scopes := cfg.GoogleOAuth.Scopes
	if len(scopes) == 0 {
		scopes = defaultScopes
	}

	return &OAuthService{
		oauthConfig: &oauth2.Config{
			ClientID:     cfg.GoogleOAuth.ClientID,
			ClientSecret: cfg.GoogleOAuth.ClientSecret,
			RedirectURL:  cfg.GoogleOAuth.RedirectURI,
			Scopes:       scopes,
			Endpoint:     googleoauth.Endpoint,
		},
		userInfoURL:     googleUserInfoURL,
		validateIDToken: validateGoogleIDToken,
		logger:          logger,
	}, nil
}

// BuildAuthorizationURL constructs the Google consent URL with the CSRF state parameter.
func (s *OAuthService) BuildAuthorizationURL(state string) string {
	return s.oauthConfig.AuthCodeURL(state, oauth2.AccessTypeOnline)
}

// GetProvider returns the OAuth provider type
func (s *OAuthService) GetProvider() entity.ProviderType {
	return entity.ProviderTypeGoogle
}

// ExchangeCode trades the authorization code for tokens and resolves the Google profile.
// The profile comes from the verified id_token when Google returns one, otherwise from
// the userinfo endpoint.
func (s *OAuthService) ExchangeCode(ctx context.Context, code string) (*service.OAuthUser, error) {
	token, err := s.oauthConfig.Exchange(ctx, code)
	if err != nil {
		return nil, errors.Wrap(err, "failed to exchange code for token")
	}

	if rawIDToken, ok := token.Extra("id_token").(string); ok && rawIDToken != "" {
		user, err := s.validateIDToken(ctx, rawIDToken, s.oauthConfig.ClientID)
		if err == nil {
			return user, nil
		}
		s.logger.Warn("Google ID token rejected, falling back to userinfo", slog.Any("error", err))
	}

	return s.fetchUserInfo(ctx, token)
}

func (s *OAuthService) fetchUserInfo(ctx context.Context, token *oauth2.Token) (*service.OAuthUser, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.userInfoURL, nil)
	if err != nil {
		return nil, errors.Wrap(err, "failed to create user info request")
	}

	resp, err := s.oauthConfig.Client(ctx, token).Do(req)
	if err != nil {
		return nil, errors.Wrap(err, "failed to get user info")
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))

		return nil, errors.Errorf("user info request failed with status %d: %s", resp.StatusCode, string(body))
	}

	var googleUser struct {
		Sub           string `json:"sub"`
		Email         string `json:"email"`
		Name          string `json:"name"`
		Picture       string `json:"picture"`
		EmailVerified bool   `json:"email_verified"`
	}

	if err := json.NewDecoder(resp.Body).Decode(&googleUser); err != nil {
		return nil, errors.Wrap(err, "failed to decode user info response")
	}

	if googleUser.Sub == "" {
		return nil, errors.New("user info response has no subject")
	}

	return &service.OAuthUser{
		ID:            googleUser.Sub,
		Email:         googleUser.Email,
		Name:          displayName(googleUser.Name, googleUser.Email),
		Provider:      entity.ProviderTypeGoogle,
		AvatarURL:     googleUser.Picture,
		EmailVerified: googleUser.EmailVerified,
	}, nil
}

func displayName(name, email string) string {
	if name != "" {
		return name
	}

	return email
}
