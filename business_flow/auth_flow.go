// Package businessflow contains the core business logic and use cases for authentication workflows
package businessflow

import (
	"context"
	"time"

	"github.com/aztec-interiors/fitflow/app/dto"
	"github.com/aztec-interiors/fitflow/app/services"
	"github.com/aztec-interiors/fitflow/repository"
	"github.com/aztec-interiors/fitflow/utils"
	"golang.org/x/crypto/bcrypt"
)

// AuthFlow handles staff authentication
type AuthFlow interface {
	Login(ctx context.Context, request *dto.LoginRequest, metadata *ClientMetadata) (*dto.LoginResponse, error)
	RefreshToken(ctx context.Context, request *dto.RefreshTokenRequest, metadata *ClientMetadata) (*dto.LoginResponse, error)
	Logout(ctx context.Context, accessToken string, metadata *ClientMetadata) (*dto.LogoutResponse, error)
	GetCaptcha(ctx context.Context, request *dto.GetCaptchaRequest) (*dto.GetCaptchaResponse, error)
	VerifyCaptcha(ctx context.Context, request *dto.VerifyCaptchaRequest) bool
}

// AuthFlowImpl implements the authentication business flow
type AuthFlowImpl struct {
	userRepo       repository.UserRepository
	tokenService   services.TokenService
	captchaService services.CaptchaService
}

// NewAuthFlow creates a new auth flow instance
func NewAuthFlow(userRepo repository.UserRepository, tokenService services.TokenService, captchaService services.CaptchaService) AuthFlow {
	return &AuthFlowImpl{
		userRepo:       userRepo,
		tokenService:   tokenService,
		captchaService: captchaService,
	}
}

// Login authenticates a staff user with email and password
func (af *AuthFlowImpl) Login(ctx context.Context, request *dto.LoginRequest, metadata *ClientMetadata) (*dto.LoginResponse, error) {
	user, err := af.userRepo.ByEmail(ctx, request.Email)
	if err != nil {
		return nil, NewBusinessError("LOGIN_FAILED", "Login failed", err)
	}
	if user == nil {
		return nil, NewBusinessError("USER_NOT_FOUND", "User not found", ErrUserNotFound)
	}
	if !utils.IsTrue(user.IsActive) {
		return nil, NewBusinessError("ACCOUNT_INACTIVE", "Account is inactive", ErrAccountInactive)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(request.Password)); err != nil {
		return nil, NewBusinessError("INCORRECT_PASSWORD", "Incorrect password", ErrIncorrectPassword)
	}

	accessToken, refreshToken, err := af.tokenService.GenerateTokens(user.ID)
	if err != nil {
		return nil, NewBusinessError("LOGIN_FAILED", "Failed to generate tokens", err)
	}

	now := utils.UTCNow()
	user.LastLoginAt = &now
	if err := af.userRepo.Update(ctx, user); err != nil {
		return nil, NewBusinessError("LOGIN_FAILED", "Failed to record login", err)
	}

	return &dto.LoginResponse{
		Message:      "Login successful",
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		TokenType:    "Bearer",
		ExpiresIn:    int(utils.AccessTokenTTL / time.Second),
		User: dto.UserInfo{
			ID:         user.ID,
			UUID:       user.UUID.String(),
			Email:      user.Email,
			FirstName:  user.FirstName,
			LastName:   user.LastName,
			Role:       user.Role,
			Department: user.Department,
			IsActive:   user.IsActive,
			CreatedAt:  user.CreatedAt.Format(time.RFC3339),
		},
	}, nil
}

// RefreshToken exchanges a valid refresh token for a fresh token pair
func (af *AuthFlowImpl) RefreshToken(ctx context.Context, request *dto.RefreshTokenRequest, metadata *ClientMetadata) (*dto.LoginResponse, error) {
	claims, err := af.tokenService.ValidateToken(request.RefreshToken)
	if err != nil {
		return nil, NewBusinessError("TOKEN_INVALID", "Invalid refresh token", err)
	}

	user, err := af.userRepo.ByID(ctx, claims.UserID)
	if err != nil {
		return nil, NewBusinessError("TOKEN_REFRESH_FAILED", "Failed to look up user", err)
	}
	if user == nil {
		return nil, NewBusinessError("USER_NOT_FOUND", "User not found", ErrUserNotFound)
	}
	if !utils.IsTrue(user.IsActive) {
		return nil, NewBusinessError("ACCOUNT_INACTIVE", "Account is inactive", ErrAccountInactive)
	}

	accessToken, refreshToken, err := af.tokenService.RefreshToken(request.RefreshToken)
	if err != nil {
		return nil, NewBusinessError("TOKEN_REFRESH_FAILED", "Failed to refresh tokens", err)
	}

	return &dto.LoginResponse{
		Message:      "Token refreshed successfully",
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		TokenType:    "Bearer",
		ExpiresIn:    int(utils.AccessTokenTTL / time.Second),
		User: dto.UserInfo{
			ID:         user.ID,
			UUID:       user.UUID.String(),
			Email:      user.Email,
			FirstName:  user.FirstName,
			LastName:   user.LastName,
			Role:       user.Role,
			Department: user.Department,
			IsActive:   user.IsActive,
			CreatedAt:  user.CreatedAt.Format(time.RFC3339),
		},
	}, nil
}

// Logout revokes the presented access token
func (af *AuthFlowImpl) Logout(ctx context.Context, accessToken string, metadata *ClientMetadata) (*dto.LogoutResponse, error) {
	if err := af.tokenService.RevokeToken(ctx, accessToken); err != nil {
		return nil, NewBusinessError("LOGOUT_FAILED", "Failed to revoke token", err)
	}
	return &dto.LogoutResponse{
		Message: "Logged out successfully",
	}, nil
}

// GetCaptcha generates a rotate captcha challenge for the login page
func (af *AuthFlowImpl) GetCaptcha(ctx context.Context, request *dto.GetCaptchaRequest) (*dto.GetCaptchaResponse, error) {
	challenge, err := af.captchaService.GenerateRotate(ctx)
	if err != nil {
		return nil, NewBusinessError("CAPTCHA_FAILED", "Failed to generate captcha", err)
	}
	return &dto.GetCaptchaResponse{
		Message:     "Captcha generated successfully",
		CaptchaID:   challenge.ID,
		MasterImage: challenge.MasterImageBase64,
		ThumbImage:  challenge.ThumbImageBase64,
	}, nil
}

// VerifyCaptcha checks the user's answer against the stored challenge
func (af *AuthFlowImpl) VerifyCaptcha(ctx context.Context, request *dto.VerifyCaptchaRequest) bool {
	return af.captchaService.VerifyRotate(ctx, request.CaptchaID, float64(request.Angle))
}
