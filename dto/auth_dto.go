package dto

import "time"

type LoginDTO struct {
	Email    string `form:"Email" binding:"required"`
	Password string `form:"Password" binding:"required"`
}

type RegisterDTO struct {
	Email    string `form:"Email" json:"Email" binding:"required,email"`
	Password string `form:"Password" json:"Password" binding:"required"`
}

type RefreshTokenDTO struct {
	RefreshToken string `form:"RefreshToken" binding:"required"`
}

// TokenResponse carries a freshly minted access/refresh pair.
type TokenResponse struct {
	AccessToken            string    `json:"AccessToken"`
	AccessTokenExpiration  time.Time `json:"AccessTokenExpiration"`
	RefreshToken           string    `json:"RefreshToken"`
	RefreshTokenExpiration time.Time `json:"RefreshTokenExpiration"`
}

type MeResponse struct {
	ID                     string     `json:"Id"`
	Email                  string     `json:"Email"`
	RefreshTokenExpiryTime *time.Time `json:"RefreshTokenExpiryTime"`
}
