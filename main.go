package main

import (
	"context"
	"log"
	"net/http"
	"time"

	"cloud.google.com/go/storage"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/martwain/todobackend/config"
	"github.com/martwain/todobackend/controllers"
	"github.com/martwain/todobackend/database"
	"github.com/martwain/todobackend/middleware"
	"github.com/martwain/todobackend/services"
	"github.com/martwain/todobackend/stores"
	"github.com/martwain/todobackend/utils"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system environment variables")
	}
	cfg := config.Load()

	ctx := context.Background()
	client := database.Connect(cfg.Mongo)
	usersCol := database.OpenCollection(client, cfg.Mongo, "users")
	todosCol := database.OpenCollection(client, cfg.Mongo, "todo_items")
	if err := database.EnsureIndexes(ctx, usersCol); err != nil {
		log.Fatal(err)
	}

	users := stores.NewMongoUserStore(usersCol)
	todos := stores.NewMongoTodoStore(todosCol)
	tokens := services.NewTokenService(cfg.Token, users)

	var gcsClient *storage.Client
	if cfg.Storage.Bucket != "" {
		var err error
		gcsClient, err = utils.NewGCSClient(ctx, cfg.Storage)
		if err != nil {
			log.Fatal(err)
		}
	} else {
		log.Println("GCS_BUCKET not set, attachment uploads disabled")
	}
	v := utils.NewAttachmentValidator()

	r := gin.New()

	allowedOrigins := map[string]bool{}
	for _, origin := range cfg.AllowedOrigins {
		allowedOrigins[origin] = true
	}
	r.Use(cors.New(cors.Config{
		AllowOriginFunc: func(origin string) bool {
			return allowedOrigins[origin]
		},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))
	r.Use(gin.Logger())
	r.Use(gin.Recovery())

	r.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"message": "pong",
		})
	})

	r.POST("/Auth/Login", controllers.Login(users, tokens))
	r.POST("/Auth/Register", controllers.Register(users))
	r.POST("/Auth/RefreshToken", controllers.RefreshToken(tokens))

	authed := r.Group("/")
	authed.Use(middleware.AuthMiddleware(tokens, users))
	{
		authed.GET("/Auth/Me", controllers.Me())

		authed.GET("/TodoItem", controllers.GetTodoItems(todos))
		authed.POST("/TodoItem", controllers.CreateTodoItem(todos))
		authed.PUT("/TodoItem/:id", controllers.UpdateTodoItemText(todos))
		authed.PATCH("/TodoItem/:id/MarkCompleted", controllers.MarkTodoItemCompleted(todos))
		authed.PATCH("/TodoItem/:id/MarkIncompleted", controllers.MarkTodoItemIncompleted(todos))
		authed.DELETE("/TodoItem/:id", controllers.DeleteTodoItem(todos, gcsClient, cfg.Storage.Bucket))
		authed.POST("/TodoItem/:id/Attachment", controllers.AddTodoAttachment(todos, gcsClient, cfg.Storage.Bucket, v))
	}

	// Server listens on 0.0.0.0:8080 by default
	r.Run()
}
