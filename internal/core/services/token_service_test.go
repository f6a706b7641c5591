package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/storynest/storynest-backend/internal/apperrors"
	portssvc "github.com/storynest/storynest-backend/internal/core/ports/services"
	"github.com/storynest/storynest-backend/internal/core/services"
	"github.com/storynest/storynest-backend/internal/platform/config"
	"github.com/stretchr/testify/suite"
)

type TokenServiceTestSuite struct {
	suite.Suite
	cfg     *config.Config
	service portssvc.TokenSvcFacade
}

func (suite *TokenServiceTestSuite) SetupTest() {
	suite.cfg = &config.Config{
		JWTSecret:         "test-secret-key-for-token-tests",
		JWTIssuer:         "storynest-test",
		JWTExpiryDuration: time.Hour,
		JWTClockSkew:      2 * time.Minute,
	}
	suite.service = services.NewTokenService(suite.cfg)
}

func (suite *TokenServiceTestSuite) TestGenerateAndValidate_RoundTrip() {
	ctx := context.Background()
	userID := uuid.NewString()
	sessionID := uuid.NewString()

	tokenString, expiresAt, err := suite.service.GenerateAccessToken(ctx, userID, sessionID, time.Hour)
	suite.Require().NoError(err)
	suite.NotEmpty(tokenString)
	suite.WithinDuration(time.Now().Add(time.Hour), expiresAt, 5*time.Second)

	claims, err := suite.service.ValidateAccessToken(ctx, tokenString)
	suite.Require().NoError(err)
	suite.Equal(userID, claims.UserID)
	suite.Equal(sessionID, claims.SessionID)
	suite.WithinDuration(time.Now(), claims.IssuedAt, 5*time.Second)
}

func (suite *TokenServiceTestSuite) TestValidate_TamperedToken() {
	ctx := context.Background()
	tokenString, _, err := suite.service.GenerateAccessToken(ctx, uuid.NewString(), uuid.NewString(), time.Hour)
	suite.Require().NoError(err)

	// Flip a character in the payload segment
	tampered := []byte(tokenString)
	mid := len(tampered) / 2
	if tampered[mid] == 'a' {
		tampered[mid] = 'b'
	} else {
		tampered[mid] = 'a'
	}

	claims, err := suite.service.ValidateAccessToken(ctx, string(tampered))
	suite.Nil(claims)
	suite.ErrorIs(err, apperrors.ErrUnauthorized)
}

func (suite *TokenServiceTestSuite) TestValidate_WrongSigningKey() {
	ctx := context.Background()
	otherCfg := &config.Config{
		JWTSecret:    "a-completely-different-secret",
		JWTIssuer:    suite.cfg.JWTIssuer,
		JWTClockSkew: suite.cfg.JWTClockSkew,
	}
	otherService := services.NewTokenService(otherCfg)

	tokenString, _, err := otherService.GenerateAccessToken(ctx, uuid.NewString(), uuid.NewString(), time.Hour)
	suite.Require().NoError(err)

	claims, err := suite.service.ValidateAccessToken(ctx, tokenString)
	suite.Nil(claims)
	suite.ErrorIs(err, apperrors.ErrUnauthorized)
}

func (suite *TokenServiceTestSuite) TestValidate_ExpiredBeyondSkew() {
	ctx := context.Background()
	tokenString, _, err := suite.service.GenerateAccessToken(ctx, uuid.NewString(), uuid.NewString(), -10*time.Minute)
	suite.Require().NoError(err)

	claims, err := suite.service.ValidateAccessToken(ctx, tokenString)
	suite.Nil(claims)
	suite.ErrorIs(err, apperrors.ErrUnauthorized)
}

func (suite *TokenServiceTestSuite) TestValidate_ExpiredWithinSkew() {
	// A token one minute past expiry is still inside the two-minute leeway.
	ctx := context.Background()
	tokenString, _, err := suite.service.GenerateAccessToken(ctx, uuid.NewString(), uuid.NewString(), -time.Minute)
	suite.Require().NoError(err)

	claims, err := suite.service.ValidateAccessToken(ctx, tokenString)
	suite.Require().NoError(err)
	suite.NotNil(claims)
}

func (suite *TokenServiceTestSuite) TestValidate_WrongIssuer() {
	ctx := context.Background()
	otherCfg := &config.Config{
		JWTSecret:    suite.cfg.JWTSecret,
		JWTIssuer:    "someone-else",
		JWTClockSkew: suite.cfg.JWTClockSkew,
	}
	otherService := services.NewTokenService(otherCfg)

	tokenString, _, err := otherService.GenerateAccessToken(ctx, uuid.NewString(), uuid.NewString(), time.Hour)
	suite.Require().NoError(err)

	claims, err := suite.service.ValidateAccessToken(ctx, tokenString)
	suite.Nil(claims)
	suite.ErrorIs(err, apperrors.ErrUnauthorized)
}

func (suite *TokenServiceTestSuite) TestValidate_MissingSessionClaim() {
	ctx := context.Background()
	tokenString, _, err := suite.service.GenerateAccessToken(ctx, uuid.NewString(), "", time.Hour)
	suite.Require().NoError(err)

	claims, err := suite.service.ValidateAccessToken(ctx, tokenString)
	suite.Nil(claims)
	suite.ErrorIs(err, apperrors.ErrUnauthorized)
}

func (suite *TokenServiceTestSuite) TestValidate_Garbage() {
	ctx := context.Background()
	for _, input := range []string{"", "not-a-token", "a.b.c"} {
		claims, err := suite.service.ValidateAccessToken(ctx, input)
		suite.Nil(claims)
		suite.ErrorIs(err, apperrors.ErrUnauthorized)
	}
}

func TestTokenServiceTestSuite(t *testing.T) {
	suite.Run(t, new(TokenServiceTestSuite))
}
