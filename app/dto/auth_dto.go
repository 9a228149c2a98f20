package dto

// LoginRequest represents the request payload for staff login
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email,max=100" example:"user@example.com"`
	Password string `json:"password" validate:"required,min=8,max=100" example:"SecurePass123!"`
}

// UserInfo represents user information returned in login responses
type UserInfo struct {
	ID         uint    `json:"id" example:"123"`
	UUID       string  `json:"uuid" example:"550e8400-e29b-41d4-a716-446655440000"`
	Email      string  `json:"email" example:"user@example.com"`
	FirstName  string  `json:"first_name" example:"Dave"`
	LastName   string  `json:"last_name" example:"Wilson"`
	Role       string  `json:"role" example:"user"`
	Department *string `json:"department,omitempty" example:"Sales"`
	IsActive   *bool   `json:"is_active" example:"true"`
	CreatedAt  string  `json:"created_at" example:"2025-01-15T10:30:00Z"`
}

// LoginResponse represents the successful login response
type LoginResponse struct {
	Message      string   `json:"message"`
	AccessToken  string   `json:"access_token"`
	RefreshToken string   `json:"refresh_token"`
	TokenType    string   `json:"token_type" example:"Bearer"`
	ExpiresIn    int      `json:"expires_in" example:"86400"`
	User         UserInfo `json:"user"`
}

// RefreshTokenRequest carries a refresh token to exchange for new tokens
type RefreshTokenRequest struct {
	RefreshToken string `json:"refresh_token" validate:"required"`
}

// LogoutResponse confirms token revocation
type LogoutResponse struct {
	Message string `json:"message"`
}

// GetCaptchaRequest represents the request for a rotation captcha challenge
type GetCaptchaRequest struct {
	Width  int `json:"width" validate:"omitempty,min=100,max=600"`
	Height int `json:"height" validate:"omitempty,min=100,max=600"`
}

// GetCaptchaResponse carries the generated captcha challenge
type GetCaptchaResponse struct {
	Message     string `json:"message"`
	CaptchaID   string `json:"captcha_id"`
	MasterImage string `json:"master_image"`
	ThumbImage  string `json:"thumb_image"`
	ThumbSize   int    `json:"thumb_size"`
}

// VerifyCaptchaRequest carries the user's captcha answer
type VerifyCaptchaRequest struct {
	CaptchaID string `json:"captcha_id" validate:"required"`
	Angle     int    `json:"angle" validate:"required"`
}
