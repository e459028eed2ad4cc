package services

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/martwain/todobackend/config"
	"github.com/martwain/todobackend/dto"
	"github.com/martwain/todobackend/models"
	"github.com/martwain/todobackend/stores"
	"golang.org/x/crypto/pbkdf2"
)

const (
	refreshTokenBytes       = 64
	refreshTokenIterations  = 10000
	refreshTokenDerivedSize = 64
)

// Claims carried inside an access token. The claim names mirror the ones
// the rest of the service expects: "nameid" is the user id, "unique_name"
// the username and "email" the email address.
type Claims struct {
	UserID string `json:"nameid"`
	Name   string `json:"unique_name"`
	Email  string `json:"email"`
	jwt.RegisteredClaims
}

// TokenService mints and validates the access/refresh token pair. It is
// the only component that touches the signing key.
type TokenService struct {
	cfg   config.TokenConfig
	users stores.UserStore
}

func NewTokenService(cfg config.TokenConfig, users stores.UserStore) *TokenService {
	return &TokenService{cfg: cfg, users: users}
}

// CreateToken mints a new access/refresh pair for the user and persists the
// refresh token on the user record. The previous refresh token, live or not,
// is overwritten unconditionally.
func (s *TokenService) CreateToken(ctx context.Context, user *models.User) (*dto.TokenResponse, error) {
	now := time.Now().UTC()
	accessExpiry := now.Add(s.cfg.AccessTokenLifetime)
	refreshExpiry := now.Add(s.cfg.RefreshTokenLifetime)

	accessToken, err := s.createAccessToken(user, now, accessExpiry)
	if err != nil {
		return nil, fmt.Errorf("sign access token: %w", err)
	}

	refreshToken, err := generateRefreshToken()
	if err != nil {
		return nil, fmt.Errorf("generate refresh token: %w", err)
	}

	user.RefreshToken = &refreshToken
	user.RefreshTokenExpiryTime = &refreshExpiry
	if err := s.users.Update(ctx, user); err != nil {
		return nil, fmt.Errorf("persist refresh token: %w", err)
	}

	return &dto.TokenResponse{
		AccessToken:            accessToken,
		AccessTokenExpiration:  accessExpiry,
		RefreshToken:           refreshToken,
		RefreshTokenExpiration: refreshExpiry,
	}, nil
}

// FindUserByToken resolves an access token back to its user without
// verifying signature or expiry. It is used during refresh, where the
// access token may already be expired but must still identify the
// claimant. Any parse or lookup failure yields nil, never an error.
func (s *TokenService) FindUserByToken(ctx context.Context, tokenString string) *models.User {
	if len(tokenString) >= len("bearer ") && strings.EqualFold(tokenString[:6], "bearer") {
		tokenString = tokenString[7:]
	}

	claims := &Claims{}
	if _, _, err := jwt.NewParser().ParseUnverified(tokenString, claims); err != nil {
		return nil
	}
	if claims.Name == "" {
		return nil
	}

	user, err := s.users.FindByEmail(ctx, claims.Name)
	if err != nil {
		return nil
	}
	return user
}

// ValidateToken fully verifies an access token: signature, signing method,
// expiry, issuer and audience. Unlike FindUserByToken it rejects anything
// not provably minted by this service.
func (s *TokenService) ValidateToken(tokenString string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims,
		func(t *jwt.Token) (interface{}, error) {
			return []byte(s.cfg.Key), nil
		},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(s.cfg.Issuer),
		jwt.WithAudience(s.cfg.Audience),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		return nil, err
	}
	if !token.Valid {
		return nil, jwt.ErrTokenUnverifiable
	}
	return claims, nil
}

func (s *TokenService) createAccessToken(user *models.User, issuedAt, expiry time.Time) (string, error) {
	claims := Claims{
		UserID: user.ID.Hex(),
		Name:   user.UserName,
		Email:  user.Email,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.ID.Hex(),
			ID:        uuid.New().String(),
			IssuedAt:  jwt.NewNumericDate(issuedAt),
			ExpiresAt: jwt.NewNumericDate(expiry),
			Issuer:    s.cfg.Issuer,
			Audience:  jwt.ClaimStrings{s.cfg.Audience},
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.cfg.Key))
}

// generateRefreshToken produces a high-entropy opaque string: 64 random
// bytes run through PBKDF2-SHA256 as a fixed-cost mixing step, then
// base64-encoded.
func generateRefreshToken() (string, error) {
	random := make([]byte, refreshTokenBytes)
	if _, err := rand.Read(random); err != nil {
		return "", err
	}

	derived := pbkdf2.Key(
		[]byte(base64.StdEncoding.EncodeToString(random)),
		[]byte{},
		refreshTokenIterations,
		refreshTokenDerivedSize,
		sha256.New,
	)

	return base64.StdEncoding.EncodeToString(derived), nil
}
