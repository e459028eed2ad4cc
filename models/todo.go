package models

import (
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

type TodoItem struct {
	ID          bson.ObjectID    `bson:"_id,omitempty" json:"id"`
	Text        string           `bson:"text" json:"text"`
	IsCompleted bool             `bson:"isCompleted" json:"isCompleted"`
	UserID      bson.ObjectID    `bson:"userId" json:"userId"` // owner, immutable
	Attachments []TodoAttachment `bson:"attachments,omitempty" json:"attachments,omitempty"`
	CreatedAt   time.Time        `bson:"createdAt" json:"createdAt"`
	UpdatedAt   time.Time        `bson:"updatedAt" json:"updatedAt"`
}

type TodoAttachment struct {
	PublicURL  string    `bson:"publicUrl" json:"publicUrl"`
	ObjectName string    `bson:"objectName" json:"-"`
	MimeType   string    `bson:"mimeType" json:"mimeType"`
	SizeBytes  int64     `bson:"sizeBytes" json:"sizeBytes"`
	FileName   string    `bson:"fileName" json:"fileName"`
	UploadedAt time.Time `bson:"uploadedAt" json:"uploadedAt"`
}
