package impl

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"log/slog"

	deliverycontext "genrelens/internal/delivery/context"
	domainerrors "genrelens/internal/domain/errors"
	"genrelens/internal/domain/repository"
	"genrelens/internal/domain/service"
	"genrelens/internal/usecase"

	"github.com/pkg/errors"
	"go.uber.org/fx"
)

const stateBytes = 32

// AuthServiceParams holds dependencies for the sign-in flow, injected by Fx
type AuthServiceParams struct {
	fx.In

	OAuth  service.OAuthService
	States service.StateStore
	Users  repository.UserRepository
	Tokens service.TokenService
	Logger *slog.Logger
}

// authService implements the AuthUsecase interface.
type authService struct {
	oauth  service.OAuthService
	states service.StateStore
	users  repository.UserRepository
	tokens service.TokenService
	logger *slog.Logger
}

// NewAuthService is the constructor for authService.
func NewAuthService(params AuthServiceParams) usecase.AuthUsecase {
	return &authService{
		oauth:  params.OAuth,
		states: params.States,
		users:  params.Users,
		tokens: params.Tokens,
		logger: params.Logger,
	}
}

// log returns a request-scoped logger if available, otherwise falls back to the service's logger.
func (srv *authService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// BeginGoogleLogin stores a fresh random state and returns Google's consent URL.
func (srv *authService) BeginGoogleLogin(ctx context.Context) (string, error) {
	state, err := newState()
	if err != nil {
		return "", err
	}

	if err := srv.states.Save(ctx, state); err != nil {
		return "", errors.Wrap(err, "failed to store oauth state")
	}

	return srv.oauth.BuildAuthorizationURL(state), nil
}

// CompleteGoogleLogin validates the callback, resolves the Google profile to a user and
// issues a session token.
func (srv *authService) CompleteGoogleLogin(ctx context.Context, code, state string) (*usecase.LoginResult, error) {
	ok, err := srv.states.Consume(ctx, state)
	if err != nil {
		return nil, errors.Wrap(err, "failed to consume oauth state")
	}
	if !ok {
		return nil, domainerrors.ErrOAuthStateInvalid
	}

	if code == "" {
		return nil, domainerrors.ErrOAuthCodeMissing
	}

	oauthUser, err := srv.oauth.ExchangeCode(ctx, code)
	if err != nil {
		srv.log(ctx).Warn("Google code exchange failed", slog.Any("error", err))

		return nil, domainerrors.ErrOAuthFailed.WithDetails(err.Error())
	}

	user, err := srv.users.FindOrCreate(ctx, oauthUser.ID, oauthUser.Name)
	if err != nil {
		return nil, domainerrors.NewDatabaseExecuteError(err, "failed to find or create user")
	}

	token, err := srv.tokens.Issue(user.ID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to issue session token")
	}

	srv.log(ctx).Info("User signed in",
		slog.String("user_id", user.ID.String()),
		slog.String("provider", string(srv.oauth.GetProvider())),
	)

	return &usecase.LoginResult{Token: token, User: user}, nil
}

func newState() (string, error) {
	buf := make([]byte, stateBytes)
	if _, err := rand.Read(buf); err != nil {
		return "", errors.Wrap(err, "failed to generate oauth state")
	}

	return hex.EncodeToString(buf), nil
}
