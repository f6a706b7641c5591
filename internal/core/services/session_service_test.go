package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/storynest/storynest-backend/internal/apperrors"
	"github.com/storynest/storynest-backend/internal/core/domain"
	portssvc "github.com/storynest/storynest-backend/internal/core/ports/services"
	"github.com/storynest/storynest-backend/internal/core/services"
	"github.com/storynest/storynest-backend/internal/platform/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

// --- Mock SessionRepository ---
type MockSessionRepository struct {
	mock.Mock
}

func (m *MockSessionRepository) SaveSession(ctx context.Context, session domain.Session) error {
	args := m.Called(ctx, session)
	return args.Error(0)
}

func (m *MockSessionRepository) FindSessionByID(ctx context.Context, sessionID string) (*domain.Session, error) {
	args := m.Called(ctx, sessionID)
	var session *domain.Session
	if args.Get(0) != nil {
		session = args.Get(0).(*domain.Session)
	}
	return session, args.Error(1)
}

func (m *MockSessionRepository) DeleteSession(ctx context.Context, sessionID string) error {
	args := m.Called(ctx, sessionID)
	return args.Error(0)
}

func (m *MockSessionRepository) DeleteExpiredSessions(ctx context.Context, now time.Time) (int64, error) {
	args := m.Called(ctx, now)
	return args.Get(0).(int64), args.Error(1)
}

// --- Mock UserReader ---
type MockUserReader struct {
	mock.Mock
}

func (m *MockUserReader) FindUserByID(ctx context.Context, userID string) (*domain.User, error) {
	args := m.Called(ctx, userID)
	var user *domain.User
	if args.Get(0) != nil {
		user = args.Get(0).(*domain.User)
	}
	return user, args.Error(1)
}

func (m *MockUserReader) FindUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	args := m.Called(ctx, email)
	var user *domain.User
	if args.Get(0) != nil {
		user = args.Get(0).(*domain.User)
	}
	return user, args.Error(1)
}

// --- Mock TokenService ---
type MockTokenService struct {
	mock.Mock
}

func (m *MockTokenService) GenerateAccessToken(ctx context.Context, userID string, sessionID string, ttl time.Duration) (string, time.Time, error) {
	args := m.Called(ctx, userID, sessionID, ttl)
	return args.String(0), args.Get(1).(time.Time), args.Error(2)
}

func (m *MockTokenService) ValidateAccessToken(ctx context.Context, tokenString string) (*portssvc.TokenClaims, error) {
	args := m.Called(ctx, tokenString)
	var claims *portssvc.TokenClaims
	if args.Get(0) != nil {
		claims = args.Get(0).(*portssvc.TokenClaims)
	}
	return claims, args.Error(1)
}

var _ portssvc.TokenSvcFacade = (*MockTokenService)(nil)

// --- Test Suite ---
type SessionServiceTestSuite struct {
	suite.Suite
	mockSessionRepo *MockSessionRepository
	mockUserReader  *MockUserReader
	mockTokenSvc    *MockTokenService
	service         portssvc.SessionSvcFacade
}

func (suite *SessionServiceTestSuite) SetupTest() {
	suite.mockSessionRepo = new(MockSessionRepository)
	suite.mockUserReader = new(MockUserReader)
	suite.mockTokenSvc = new(MockTokenService)
	cfg := &config.Config{SessionTTL: 7 * 24 * time.Hour}
	suite.service = services.NewSessionService(cfg, suite.mockSessionRepo, suite.mockUserReader, suite.mockTokenSvc)
}

func (suite *SessionServiceTestSuite) TestCreateSession_Success() {
	ctx := context.Background()
	userID := uuid.NewString()
	expiresAt := time.Now().Add(7 * 24 * time.Hour)

	suite.mockSessionRepo.On("SaveSession", ctx, mock.MatchedBy(func(s domain.Session) bool {
		return s.UserID == userID && s.SessionID != "" && s.Token != "" && s.ExpiresAt.After(time.Now())
	})).Return(nil).Once()
	suite.mockTokenSvc.On("GenerateAccessToken", ctx, userID, mock.AnythingOfType("string"), 7*24*time.Hour).
		Return("signed.token.value", expiresAt, nil).Once()

	created, err := suite.service.CreateSession(ctx, userID)

	suite.Require().NoError(err)
	suite.Equal("signed.token.value", created.Token)
	suite.NotEmpty(created.SessionID)
	suite.Equal(expiresAt, created.ExpiresAt)
	suite.mockSessionRepo.AssertExpectations(suite.T())
	suite.mockTokenSvc.AssertExpectations(suite.T())
}

func (suite *SessionServiceTestSuite) TestCreateSession_TokenMintFailureCleansUpRow() {
	ctx := context.Background()
	userID := uuid.NewString()

	suite.mockSessionRepo.On("SaveSession", ctx, mock.AnythingOfType("domain.Session")).Return(nil).Once()
	suite.mockTokenSvc.On("GenerateAccessToken", ctx, userID, mock.AnythingOfType("string"), mock.AnythingOfType("time.Duration")).
		Return("", time.Time{}, assert.AnError).Once()
	suite.mockSessionRepo.On("DeleteSession", ctx, mock.AnythingOfType("string")).Return(nil).Once()

	created, err := suite.service.CreateSession(ctx, userID)

	suite.Require().Error(err)
	suite.Nil(created)
	suite.mockSessionRepo.AssertExpectations(suite.T())
}

func (suite *SessionServiceTestSuite) TestResolveSession_Success() {
	ctx := context.Background()
	userID := uuid.NewString()
	sessionID := uuid.NewString()
	user := &domain.User{UserID: userID, Email: "user@example.com"}
	session := &domain.Session{
		SessionID: sessionID,
		UserID:    userID,
		ExpiresAt: time.Now().Add(time.Hour),
	}

	suite.mockTokenSvc.On("ValidateAccessToken", ctx, "good-token").
		Return(&portssvc.TokenClaims{UserID: userID, SessionID: sessionID}, nil).Once()
	suite.mockSessionRepo.On("FindSessionByID", ctx, sessionID).Return(session, nil).Once()
	suite.mockUserReader.On("FindUserByID", ctx, userID).Return(user, nil).Once()

	resolved, err := suite.service.ResolveSession(ctx, "good-token")

	suite.Require().NoError(err)
	suite.Equal(user, resolved)
	suite.mockTokenSvc.AssertExpectations(suite.T())
	suite.mockSessionRepo.AssertExpectations(suite.T())
	suite.mockUserReader.AssertExpectations(suite.T())
}

func (suite *SessionServiceTestSuite) TestResolveSession_InvalidToken() {
	ctx := context.Background()
	suite.mockTokenSvc.On("ValidateAccessToken", ctx, "bad-token").
		Return(nil, apperrors.ErrUnauthorized).Once()

	resolved, err := suite.service.ResolveSession(ctx, "bad-token")

	suite.Nil(resolved)
	suite.ErrorIs(err, apperrors.ErrUnauthorized)
	suite.mockSessionRepo.AssertNotCalled(suite.T(), "FindSessionByID")
}

func (suite *SessionServiceTestSuite) TestResolveSession_RevokedSession() {
	// A valid signature over a deleted session row must not authenticate.
	ctx := context.Background()
	sessionID := uuid.NewString()

	suite.mockTokenSvc.On("ValidateAccessToken", ctx, "revoked-token").
		Return(&portssvc.TokenClaims{UserID: uuid.NewString(), SessionID: sessionID}, nil).Once()
	suite.mockSessionRepo.On("FindSessionByID", ctx, sessionID).Return(nil, apperrors.ErrNotFound).Once()

	resolved, err := suite.service.ResolveSession(ctx, "revoked-token")

	suite.Nil(resolved)
	suite.ErrorIs(err, apperrors.ErrUnauthorized)
}

func (suite *SessionServiceTestSuite) TestResolveSession_ExpiredRow() {
	ctx := context.Background()
	userID := uuid.NewString()
	sessionID := uuid.NewString()
	session := &domain.Session{
		SessionID: sessionID,
		UserID:    userID,
		ExpiresAt: time.Now().Add(-time.Minute),
	}

	suite.mockTokenSvc.On("ValidateAccessToken", ctx, "stale-token").
		Return(&portssvc.TokenClaims{UserID: userID, SessionID: sessionID}, nil).Once()
	suite.mockSessionRepo.On("FindSessionByID", ctx, sessionID).Return(session, nil).Once()

	resolved, err := suite.service.ResolveSession(ctx, "stale-token")

	suite.Nil(resolved)
	suite.ErrorIs(err, apperrors.ErrUnauthorized)
	suite.mockUserReader.AssertNotCalled(suite.T(), "FindUserByID")
}

func (suite *SessionServiceTestSuite) TestResolveSession_UserMismatch() {
	ctx := context.Background()
	sessionID := uuid.NewString()
	session := &domain.Session{
		SessionID: sessionID,
		UserID:    uuid.NewString(),
		ExpiresAt: time.Now().Add(time.Hour),
	}

	suite.mockTokenSvc.On("ValidateAccessToken", ctx, "mismatched-token").
		Return(&portssvc.TokenClaims{UserID: uuid.NewString(), SessionID: sessionID}, nil).Once()
	suite.mockSessionRepo.On("FindSessionByID", ctx, sessionID).Return(session, nil).Once()

	resolved, err := suite.service.ResolveSession(ctx, "mismatched-token")

	suite.Nil(resolved)
	suite.ErrorIs(err, apperrors.ErrUnauthorized)
}

func (suite *SessionServiceTestSuite) TestRevokeSession_Idempotent() {
	ctx := context.Background()
	sessionID := uuid.NewString()

	suite.mockSessionRepo.On("DeleteSession", ctx, sessionID).Return(nil).Twice()

	suite.NoError(suite.service.RevokeSession(ctx, sessionID))
	suite.NoError(suite.service.RevokeSession(ctx, sessionID))
	suite.mockSessionRepo.AssertExpectations(suite.T())
}

func (suite *SessionServiceTestSuite) TestRevokeSessionToken_InvalidTokenIsNoOp() {
	ctx := context.Background()
	suite.mockTokenSvc.On("ValidateAccessToken", ctx, "garbage").
		Return(nil, apperrors.ErrUnauthorized).Once()

	suite.NoError(suite.service.RevokeSessionToken(ctx, "garbage"))
	suite.mockSessionRepo.AssertNotCalled(suite.T(), "DeleteSession")
}

func (suite *SessionServiceTestSuite) TestRevokeSessionToken_DeletesRow() {
	ctx := context.Background()
	sessionID := uuid.NewString()

	suite.mockTokenSvc.On("ValidateAccessToken", ctx, "valid-token").
		Return(&portssvc.TokenClaims{UserID: uuid.NewString(), SessionID: sessionID}, nil).Once()
	suite.mockSessionRepo.On("DeleteSession", ctx, sessionID).Return(nil).Once()

	suite.NoError(suite.service.RevokeSessionToken(ctx, "valid-token"))
	suite.mockSessionRepo.AssertExpectations(suite.T())
}

func (suite *SessionServiceTestSuite) TestPurgeExpiredSessions() {
	ctx := context.Background()
	suite.mockSessionRepo.On("DeleteExpiredSessions", ctx, mock.AnythingOfType("time.Time")).
		Return(int64(3), nil).Once()

	removed, err := suite.service.PurgeExpiredSessions(ctx)

	suite.Require().NoError(err)
	suite.Equal(int64(3), removed)
	suite.mockSessionRepo.AssertExpectations(suite.T())
}

func TestSessionServiceTestSuite(t *testing.T) {
	suite.Run(t, new(SessionServiceTestSuite))
}
