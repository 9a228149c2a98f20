// Package tests contains integration tests for staff authentication
package tests

import (
	"context"
	"testing"
	"time"

	"github.com/aztec-interiors/fitflow/app/dto"
	"github.com/aztec-interiors/fitflow/app/services"
	businessflow "github.com/aztec-interiors/fitflow/business_flow"
	"github.com/aztec-interiors/fitflow/models"
	"github.com/aztec-interiors/fitflow/repository"
	testingutil "github.com/aztec-interiors/fitflow/testing"
	"github.com/aztec-interiors/fitflow/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAuthFlow(t *testing.T) {
	testingutil.RunWithDB(t, func(testDB *testingutil.TestDB) {
		fixtures := testingutil.NewTestFixtures(testDB)

		userRepo := repository.NewUserRepository(testDB.DB)

		tokenService, err := services.NewTokenService(
			1*time.Hour, 24*time.Hour,
			"fitflow-test", "fitflow-api",
			false, "", "", "test-secret-key-test-secret-key!",
			nil,
		)
		require.NoError(t, err)

		captchaService, err := services.NewCaptchaServiceRotate(5*time.Minute, 10, 220)
		require.NoError(t, err)

		authFlow := businessflow.NewAuthFlow(userRepo, tokenService, captchaService)
		metadata := businessflow.NewClientMetadata("127.0.0.1", "Test User Agent")

		t.Run("SuccessfulLogin", func(t *testing.T) {
			user, err := fixtures.CreateTestUser(models.UserRoleManager)
			require.NoError(t, err)

			resp, err := authFlow.Login(context.Background(), &dto.LoginRequest{
				Email:    user.Email,
				Password: "TestPass123!",
			}, metadata)
			require.NoError(t, err)
			require.NotNil(t, resp)
			assert.NotEmpty(t, resp.AccessToken)
			assert.NotEmpty(t, resp.RefreshToken)
			assert.Equal(t, "Bearer", resp.TokenType)
			assert.Equal(t, user.Email, resp.User.Email)

			// Login stamps last_login_at
			reloaded, err := userRepo.ByID(context.Background(), user.ID)
			require.NoError(t, err)
			require.NotNil(t, reloaded)
			assert.NotNil(t, reloaded.LastLoginAt)
		})

		t.Run("UserNotFound", func(t *testing.T) {
			resp, err := authFlow.Login(context.Background(), &dto.LoginRequest{
				Email:    "nobody@aztec-interiors.co.uk",
				Password: "TestPass123!",
			}, metadata)
			require.Error(t, err)
			assert.Nil(t, resp)
			assert.True(t, businessflow.IsUserNotFound(err))
		})

		t.Run("IncorrectPassword", func(t *testing.T) {
			user, err := fixtures.CreateTestUser(models.UserRoleUser)
			require.NoError(t, err)

			resp, err := authFlow.Login(context.Background(), &dto.LoginRequest{
				Email:    user.Email,
				Password: "WrongPass123!",
			}, metadata)
			require.Error(t, err)
			assert.Nil(t, resp)
			assert.True(t, businessflow.IsIncorrectPassword(err))
		})

		t.Run("InactiveAccount", func(t *testing.T) {
			user, err := fixtures.CreateTestUser(models.UserRoleUser)
			require.NoError(t, err)
			user.IsActive = utils.ToPtr(false)
			require.NoError(t, userRepo.Update(context.Background(), user))

			resp, err := authFlow.Login(context.Background(), &dto.LoginRequest{
				Email:    user.Email,
				Password: "TestPass123!",
			}, metadata)
			require.Error(t, err)
			assert.Nil(t, resp)
			assert.True(t, businessflow.IsAccountInactive(err))
		})

		t.Run("RefreshToken", func(t *testing.T) {
			user, err := fixtures.CreateTestUser(models.UserRoleUser)
			require.NoError(t, err)

			login, err := authFlow.Login(context.Background(), &dto.LoginRequest{
				Email:    user.Email,
				Password: "TestPass123!",
			}, metadata)
			require.NoError(t, err)

			refreshed, err := authFlow.RefreshToken(context.Background(), &dto.RefreshTokenRequest{
				RefreshToken: login.RefreshToken,
			}, metadata)
			require.NoError(t, err)
			assert.NotEmpty(t, refreshed.AccessToken)
			assert.Equal(t, user.ID, refreshed.User.ID)
		})

		t.Run("RefreshWithGarbageToken", func(t *testing.T) {
			resp, err := authFlow.RefreshToken(context.Background(), &dto.RefreshTokenRequest{
				RefreshToken: "not-a-jwt",
			}, metadata)
			require.Error(t, err)
			assert.Nil(t, resp)
		})

		t.Run("CaptchaRoundTrip", func(t *testing.T) {
			challenge, err := authFlow.GetCaptcha(context.Background(), &dto.GetCaptchaRequest{})
			require.NoError(t, err)
			assert.NotEmpty(t, challenge.CaptchaID)
			assert.NotEmpty(t, challenge.MasterImage)

			// A wildly wrong angle fails verification
			ok := authFlow.VerifyCaptcha(context.Background(), &dto.VerifyCaptchaRequest{
				CaptchaID: challenge.CaptchaID,
				Angle:     -1,
			})
			assert.False(t, ok)
		})
	})
}
