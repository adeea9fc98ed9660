package impl

import (
	"context"
	"encoding/hex"
	"io"
	"log/slog"
	"testing"

	"genrelens/internal/domain/entity"
	domainerrors "genrelens/internal/domain/errors"
	"genrelens/internal/domain/service"
	mockRepo "genrelens/internal/mocks/repository"
	mockSvc "genrelens/internal/mocks/service"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type authFixture struct {
	oauth  *mockSvc.MockOAuthService
	states *mockSvc.MockStateStore
	users  *mockRepo.MockUserRepository
	tokens *mockSvc.MockTokenService
	srv    *authService
}

func newAuthFixture(t *testing.T) *authFixture {
	fx := &authFixture{
		oauth:  mockSvc.NewMockOAuthService(t),
		states: mockSvc.NewMockStateStore(t),
		users:  mockRepo.NewMockUserRepository(t),
		tokens: mockSvc.NewMockTokenService(t),
	}
	fx.srv = NewAuthService(AuthServiceParams{
		OAuth:  fx.oauth,
		States: fx.states,
		Users:  fx.users,
		Tokens: fx.tokens,
		Logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}).(*authService)

	return fx
}

func TestAuthService_BeginGoogleLogin(t *testing.T) {
	fx := newAuthFixture(t)
	ctx := context.Background()

	var saved string
	fx.states.EXPECT().Save(ctx, mock.AnythingOfType("string")).
		Run(func(_ context.Context, state string) { saved = state }).
		Return(nil).Once()
	fx.oauth.EXPECT().BuildAuthorizationURL(mock.AnythingOfType("string")).
		RunAndReturn(func(state string) string { return "https://accounts.google.com/o/oauth2/auth?state=" + state }).
		Once()

	authURL, err := fx.srv.BeginGoogleLogin(ctx)
	require.NoError(t, err)

	raw, err := hex.DecodeString(saved)
	require.NoError(t, err)
	assert.Len(t, raw, 32)
	assert.Equal(t, "https://accounts.google.com/o/oauth2/auth?state="+saved, authURL)
}

func TestAuthService_BeginGoogleLogin_StoreError(t *testing.T) {
	fx := newAuthFixture(t)
	fx.states.EXPECT().Save(mock.Anything, mock.Anything).Return(errors.New("redis down")).Once()

	authURL, err := fx.srv.BeginGoogleLogin(context.Background())
	assert.Error(t, err)
	assert.Empty(t, authURL)
}

func TestAuthService_CompleteGoogleLogin(t *testing.T) {
	fx := newAuthFixture(t)
	ctx := context.Background()
	user := &entity.User{ID: uuid.New(), GoogleID: "google-1", Username: "Ada"}

	fx.states.EXPECT().Consume(ctx, "state-1").Return(true, nil).Once()
	fx.oauth.EXPECT().ExchangeCode(ctx, "code-1").
		Return(&service.OAuthUser{ID: "google-1", Name: "Ada"}, nil).Once()
	fx.oauth.EXPECT().GetProvider().Return(entity.ProviderTypeGoogle)
	fx.users.EXPECT().FindOrCreate(ctx, "google-1", "Ada").Return(user, nil).Once()
	fx.tokens.EXPECT().Issue(user.ID).Return("signed.jwt.token", nil).Once()

	result, err := fx.srv.CompleteGoogleLogin(ctx, "code-1", "state-1")
	require.NoError(t, err)
	assert.Equal(t, "signed.jwt.token", result.Token)
	assert.Equal(t, user, result.User)
}

func TestAuthService_CompleteGoogleLogin_InvalidState(t *testing.T) {
	fx := newAuthFixture(t)
	fx.states.EXPECT().Consume(mock.Anything, "forged").Return(false, nil).Once()

	result, err := fx.srv.CompleteGoogleLogin(context.Background(), "code-1", "forged")
	assert.Nil(t, result)
	assert.True(t, errors.Is(err, domainerrors.ErrOAuthStateInvalid))
	fx.oauth.AssertNotCalled(t, "ExchangeCode", mock.Anything, mock.Anything)
}

func TestAuthService_CompleteGoogleLogin_MissingCode(t *testing.T) {
	fx := newAuthFixture(t)
	fx.states.EXPECT().Consume(mock.Anything, "state-1").Return(true, nil).Once()

	_, err := fx.srv.CompleteGoogleLogin(context.Background(), "", "state-1")
	assert.True(t, errors.Is(err, domainerrors.ErrOAuthCodeMissing))
}

func TestAuthService_CompleteGoogleLogin_ExchangeFails(t *testing.T) {
	fx := newAuthFixture(t)
	fx.states.EXPECT().Consume(mock.Anything, "state-1").Return(true, nil).Once()
	fx.oauth.EXPECT().ExchangeCode(mock.Anything, "code-1").Return(nil, errors.New("invalid_grant")).Once()

	_, err := fx.srv.CompleteGoogleLogin(context.Background(), "code-1", "state-1")
	assert.True(t, errors.Is(err, domainerrors.ErrOAuthFailed))
	fx.users.AssertNotCalled(t, "FindOrCreate", mock.Anything, mock.Anything, mock.Anything)
}

func TestAuthService_CompleteGoogleLogin_StoreFails(t *testing.T) {
	fx := newAuthFixture(t)
	fx.states.EXPECT().Consume(mock.Anything, "state-1").Return(true, nil).Once()
	fx.oauth.EXPECT().ExchangeCode(mock.Anything, "code-1").
		Return(&service.OAuthUser{ID: "google-1", Name: "Ada"}, nil).Once()
	fx.users.EXPECT().FindOrCreate(mock.Anything, "google-1", "Ada").
		Return(nil, errors.New("connection refused")).Once()

	_, err := fx.srv.CompleteGoogleLogin(context.Background(), "code-1", "state-1")

	var appErr domainerrors.AppError
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, 500, appErr.HTTPCode())
	fx.tokens.AssertNotCalled(t, "Issue", mock.Anything)
}
