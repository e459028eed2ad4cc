package models

import (
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

type User struct {
	ID           bson.ObjectID `bson:"_id,omitempty" json:"id"`
	Email        string        `bson:"email" json:"email"`
	UserName     string        `bson:"userName" json:"userName"`
	PasswordHash string        `bson:"passwordHash" json:"-"` // never expose

	// Exactly one live refresh token per user; overwritten on every issuance.
	RefreshToken           *string    `bson:"refreshToken,omitempty" json:"-"`
	RefreshTokenExpiryTime *time.Time `bson:"refreshTokenExpiryTime,omitempty" json:"-"`

	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time `bson:"updatedAt" json:"updatedAt"`
}
