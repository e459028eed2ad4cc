package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/martwain/todobackend/models"
	"github.com/martwain/todobackend/services"
	"github.com/martwain/todobackend/stores"
	"go.mongodb.org/mongo-driver/v2/bson"
)

const userContextKey = "currentUser"

// AuthMiddleware validates the bearer access token cryptographically and
// binds the resolved user to the request context. A token for a user that
// no longer exists is rejected.
func AuthMiddleware(tokens *services.TokenService, users stores.UserStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" || !strings.HasPrefix(header, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing token"})
			return
		}

		tokenStr := strings.TrimPrefix(header, "Bearer ")
		claims, err := tokens.ValidateToken(tokenStr)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid or expired token"})
			return
		}

		userID, err := bson.ObjectIDFromHex(claims.UserID)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid or expired token"})
			return
		}

		user, err := users.FindByID(c.Request.Context(), userID)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid user"})
			return
		}

		c.Set(userContextKey, user)
		c.Next()
	}
}

// CurrentUser returns the user bound by AuthMiddleware. A missing user on
// a protected route is a programming error, signalled to the caller
// instead of silently defaulting.
func CurrentUser(c *gin.Context) (*models.User, error) {
	val, ok := c.Get(userContextKey)
	if !ok {
		return nil, errors.New("no authenticated user in request context")
	}
	user, ok := val.(*models.User)
	if !ok {
		return nil, errors.New("no authenticated user in request context")
	}
	return user, nil
}
