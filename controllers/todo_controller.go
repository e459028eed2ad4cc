package controllers

import (
	"log"
	"net/http"
	"time"

	"cloud.google.com/go/storage"
	"github.com/gin-gonic/gin"
	"github.com/martwain/todobackend/dto"
	"github.com/martwain/todobackend/middleware"
	"github.com/martwain/todobackend/models"
	"github.com/martwain/todobackend/stores"
	"github.com/martwain/todobackend/utils"
	"go.mongodb.org/mongo-driver/v2/bson"
)

// GET /TodoItem
func GetTodoItems(todos stores.TodoStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, err := middleware.CurrentUser(c)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "missing auth context"})
			return
		}

		items, err := todos.ListByUser(c.Request.Context(), user.ID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}

		c.JSON(http.StatusOK, items)
	}
}

// POST /TodoItem
func CreateTodoItem(todos stores.TodoStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, err := middleware.CurrentUser(c)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "missing auth context"})
			return
		}

		var body dto.NewTodoDTO
		if err := c.ShouldBind(&body); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		text := utils.NormalizeText(body.Text)
		if text == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "text must not be empty"})
			return
		}

		now := time.Now().UTC()
		item := models.TodoItem{
			Text:      text,
			UserID:    user.ID,
			CreatedAt: now,
			UpdatedAt: now,
		}

		if err := todos.Create(c.Request.Context(), &item); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}

		c.JSON(http.StatusCreated, item)
	}
}

// PUT /TodoItem/:id
func UpdateTodoItemText(todos stores.TodoStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		var body dto.UpdateTodoDTO
		if err := c.ShouldBind(&body); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		text := utils.NormalizeText(body.Text)
		if text == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "text must not be empty"})
			return
		}

		runTodoItemAction(c, todos, func(item *models.TodoItem) {
			item.Text = text
		})
	}
}

// PATCH /TodoItem/:id/MarkCompleted
func MarkTodoItemCompleted(todos stores.TodoStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		runTodoItemAction(c, todos, func(item *models.TodoItem) {
			item.IsCompleted = true
		})
	}
}

// PATCH /TodoItem/:id/MarkIncompleted
func MarkTodoItemIncompleted(todos stores.TodoStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		runTodoItemAction(c, todos, func(item *models.TodoItem) {
			item.IsCompleted = false
		})
	}
}

// DELETE /TodoItem/:id
func DeleteTodoItem(todos stores.TodoStore, gcs *storage.Client, bucket string) gin.HandlerFunc {
	return func(c *gin.Context) {
		item, ok := findOwnedTodoItem(c, todos)
		if !ok {
			return
		}

		if err := todos.Delete(c.Request.Context(), item.ID); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}

		// best effort attachment cleanup
		if gcs != nil && len(item.Attachments) > 0 {
			objectNames := make([]string, 0, len(item.Attachments))
			for _, a := range item.Attachments {
				objectNames = append(objectNames, a.ObjectName)
			}
			if err := utils.DeleteGCSObjects(c.Request.Context(), gcs, bucket, objectNames); err != nil {
				log.Printf("failed to delete attachments for item %s: %v", item.ID.Hex(), err)
			}
		}

		c.Status(http.StatusNoContent)
	}
}

// POST /TodoItem/:id/Attachment
func AddTodoAttachment(todos stores.TodoStore, gcs *storage.Client, bucket string, v *utils.FileValidator) gin.HandlerFunc {
	return func(c *gin.Context) {
		if gcs == nil || bucket == "" {
			c.JSON(http.StatusServiceUnavailable, gin.H{"error": "attachment storage not configured"})
			return
		}

		item, ok := findOwnedTodoItem(c, todos)
		if !ok {
			return
		}

		fileHeader, err := c.FormFile("file")
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "file is required"})
			return
		}

		if _, err := v.ValidateFile(fileHeader); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		attachment, err := utils.UploadTodoAttachmentToGCS(c.Request.Context(), gcs, bucket, item.ID.Hex(), fileHeader)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to store attachment"})
			return
		}

		item.Attachments = append(item.Attachments, *attachment)
		item.UpdatedAt = time.Now().UTC()
		if err := todos.Update(c.Request.Context(), item); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}

		c.JSON(http.StatusCreated, attachment)
	}
}

// findOwnedTodoItem resolves :id and enforces that the authenticated user
// owns the item. Missing item responds 404, wrong owner 403.
func findOwnedTodoItem(c *gin.Context, todos stores.TodoStore) (*models.TodoItem, bool) {
	id, err := bson.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "item not found"})
		return nil, false
	}

	item, err := todos.FindByID(c.Request.Context(), id)
	if err != nil {
		if err == stores.ErrNotFound {
			c.JSON(http.StatusNotFound, gin.H{"error": "item not found"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		}
		return nil, false
	}

	user, err := middleware.CurrentUser(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "missing auth context"})
		return nil, false
	}

	// Prevent user changing other users todos
	if item.UserID != user.ID {
		c.Status(http.StatusForbidden)
		return nil, false
	}

	return item, true
}

func runTodoItemAction(c *gin.Context, todos stores.TodoStore, action func(*models.TodoItem)) {
	item, ok := findOwnedTodoItem(c, todos)
	if !ok {
		return
	}

	action(item)
	item.UpdatedAt = time.Now().UTC()

	if err := todos.Update(c.Request.Context(), item); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, item)
}
