package controllers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/martwain/todobackend/dto"
	"github.com/martwain/todobackend/middleware"
	"github.com/martwain/todobackend/models"
	"github.com/martwain/todobackend/services"
	"github.com/martwain/todobackend/stores"
	"github.com/martwain/todobackend/utils"
)

const wrongCredentials = "Wrong credentials"

// POST /Auth/Login
func Login(users stores.UserStore, tokens *services.TokenService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var body dto.LoginDTO
		if err := c.ShouldBind(&body); err != nil {
			c.String(http.StatusBadRequest, wrongCredentials)
			return
		}

		user, err := users.FindByEmail(c.Request.Context(), utils.NormalizeEmail(body.Email))
		if err != nil {
			if errors.Is(err, stores.ErrNotFound) {
				c.String(http.StatusBadRequest, wrongCredentials)
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to look up user"})
			return
		}

		if err := utils.CheckPassword(user.PasswordHash, body.Password); err != nil {
			c.String(http.StatusBadRequest, wrongCredentials)
			return
		}

		pair, err := tokens.CreateToken(c.Request.Context(), user)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create token"})
			return
		}

		c.JSON(http.StatusOK, pair)
	}
}

// POST /Auth/Register
func Register(users stores.UserStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		var body dto.RegisterDTO
		if err := c.ShouldBind(&body); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		if problems := utils.ValidatePassword(body.Password); len(problems) > 0 {
			c.JSON(http.StatusUnprocessableEntity, gin.H{"errors": problems})
			return
		}

		email := utils.NormalizeEmail(body.Email)

		hash, err := utils.HashPassword(body.Password)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to hash password"})
			return
		}

		now := time.Now().UTC()
		user := models.User{
			Email:        email,
			UserName:     email,
			PasswordHash: hash,
			CreatedAt:    now,
			UpdatedAt:    now,
		}

		if err := users.Create(c.Request.Context(), &user); err != nil {
			if errors.Is(err, stores.ErrEmailExists) {
				c.JSON(http.StatusUnprocessableEntity, gin.H{"errors": []string{"Email is already taken."}})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create user"})
			return
		}

		body.Password = ""
		c.JSON(http.StatusCreated, body)
	}
}

// POST /Auth/RefreshToken
//
// The access token in the Authorization header only identifies the
// claimant; it may already be expired. The submitted refresh token must
// exactly match the one stored on the user record.
func RefreshToken(tokens *services.TokenService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var body dto.RefreshTokenDTO
		if err := c.ShouldBind(&body); err != nil {
			c.String(http.StatusBadRequest, wrongCredentials)
			return
		}

		header := c.GetHeader("Authorization")
		user := tokens.FindUserByToken(c.Request.Context(), header)

		if user != nil && user.RefreshToken != nil && *user.RefreshToken == body.RefreshToken {
			pair, err := tokens.CreateToken(c.Request.Context(), user)
			if err != nil {
				c.Status(http.StatusUnauthorized)
				return
			}
			c.JSON(http.StatusOK, pair)
			return
		}

		c.Status(http.StatusUnauthorized)
	}
}

// GET /Auth/Me
func Me() gin.HandlerFunc {
	return func(c *gin.Context) {
		user, err := middleware.CurrentUser(c)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "missing auth context"})
			return
		}

		c.JSON(http.StatusOK, dto.MeResponse{
			ID:                     user.ID.Hex(),
			Email:                  user.Email,
			RefreshTokenExpiryTime: user.RefreshTokenExpiryTime,
		})
	}
}
