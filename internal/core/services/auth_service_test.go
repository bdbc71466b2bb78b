package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/SscSPs/pfm_backend/internal/apperrors"
	portssvc "github.com/SscSPs/pfm_backend/internal/core/ports/services"
	"github.com/SscSPs/pfm_backend/internal/core/services"
	"github.com/SscSPs/pfm_backend/internal/dto"
	"github.com/SscSPs/pfm_backend/internal/utils"
	"github.com/stretchr/testify/suite"
)

const testJWTSecret = "test-secret"

type AuthServiceTestSuite struct {
	suite.Suite
	store   *memStore
	service portssvc.AuthSvcFacade
	users   portssvc.UserSvcFacade
}

func (suite *AuthServiceTestSuite) SetupTest() {
	suite.store = newMemStore()
	suite.service = services.NewAuthService(services.AuthSettings{
		JWTSecret:         testJWTSecret,
		JWTExpiryDuration: time.Hour,
		JWTIssuer:         "pfm_backend",
	}, suite.store)
	suite.users = services.NewUserService(suite.store)
}

func (suite *AuthServiceTestSuite) register(email string) *dto.AuthResponse {
	resp, err := suite.service.Register(context.Background(), dto.RegisterRequest{
		Name: "Ada", Email: email, Password: "correct-horse",
	})
	suite.Require().NoError(err)
	return resp
}

func (suite *AuthServiceTestSuite) TestRegisterThenLogin() {
	registered := suite.register("Ada@Example.com ")

	claims, err := utils.ParseAndValidateJWT(registered.Token, testJWTSecret)
	suite.Require().NoError(err)
	suite.Equal(registered.UserID, claims.Subject)

	loggedIn, err := suite.service.Login(context.Background(), dto.LoginRequest{Email: "ada@example.com", Password: "correct-horse"})
	suite.Require().NoError(err)
	suite.Equal(registered.UserID, loggedIn.UserID)

	user, err := suite.users.GetUserByID(context.Background(), registered.UserID)
	suite.Require().NoError(err)
	suite.Equal("USD", user.BaseCurrency)
	suite.NotEqual("correct-horse", user.PasswordHash)
}

func (suite *AuthServiceTestSuite) TestRegister_DuplicateEmail() {
	suite.register("ada@example.com")

	_, err := suite.service.Register(context.Background(), dto.RegisterRequest{
		Name: "Other", Email: "ADA@example.com", Password: "another-pass",
	})

	suite.Equal(apperrors.KindConflict, apperrors.KindOf(err))
}

func (suite *AuthServiceTestSuite) TestRegister_Validation() {
	_, err := suite.service.Register(context.Background(), dto.RegisterRequest{Name: "Ada", Email: "a@b.co", Password: "short"})
	suite.Equal(apperrors.KindValidation, apperrors.KindOf(err))

	_, err = suite.service.Register(context.Background(), dto.RegisterRequest{Name: "Ada", Email: "a@b.co", Password: "long-enough", BaseCurrency: "EURO"})
	suite.Equal(apperrors.KindValidation, apperrors.KindOf(err))
}

func (suite *AuthServiceTestSuite) TestLogin_Failures() {
	suite.register("ada@example.com")

	tests := []struct {
		name string
		req  dto.LoginRequest
	}{
		{"wrong password", dto.LoginRequest{Email: "ada@example.com", Password: "wrong-horse"}},
		{"unknown email", dto.LoginRequest{Email: "nobody@example.com", Password: "correct-horse"}},
	}
	for _, tt := range tests {
		suite.Run(tt.name, func() {
			_, err := suite.service.Login(context.Background(), tt.req)
			suite.Equal(apperrors.KindUnauthorized, apperrors.KindOf(err))
			suite.EqualError(err, "Invalid email or password")
		})
	}
}

func (suite *AuthServiceTestSuite) TestUpdatePreferences() {
	registered := suite.register("ada@example.com")
	ctx := context.Background()
	base := "EUR"
	income := dec("4200")

	user, err := suite.users.UpdatePreferences(ctx, registered.UserID, dto.UpdatePreferencesRequest{BaseCurrency: &base, MonthlyIncome: &income})

	suite.Require().NoError(err)
	suite.Equal("EUR", user.BaseCurrency)
	suite.Require().NotNil(user.MonthlyIncome)
	suite.True(user.MonthlyIncome.Equal(dec("4200")))

	negative := dec("-1")
	_, err = suite.users.UpdatePreferences(ctx, registered.UserID, dto.UpdatePreferencesRequest{MonthlyIncome: &negative})
	var appErr *apperrors.AppError
	suite.Require().ErrorAs(err, &appErr)
	suite.Equal("monthlyIncome", appErr.Field)

	blank := "  "
	_, err = suite.users.UpdatePreferences(ctx, registered.UserID, dto.UpdatePreferencesRequest{Name: &blank})
	suite.Require().ErrorAs(err, &appErr)
	suite.Equal("name", appErr.Field)

	_, err = suite.users.UpdatePreferences(ctx, "missing-user", dto.UpdatePreferencesRequest{Name: &base})
	suite.Equal(apperrors.KindNotFound, apperrors.KindOf(err))
}

func TestAuthServiceTestSuite(t *testing.T) {
	suite.Run(t, new(AuthServiceTestSuite))
}
