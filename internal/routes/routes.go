package routes

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/example/pigeon/internal/config"
	"github.com/example/pigeon/internal/handlers"
	"github.com/example/pigeon/internal/middleware"
	"github.com/example/pigeon/internal/services"
	"github.com/example/pigeon/internal/store"
)

// Register wires up all HTTP routes.
func Register(app *fiber.App, db *gorm.DB, cfg *config.Config) {
	users := store.NewUsers(db, cfg.StoreTimeout)
	messages := store.NewMessages(db, cfg.StoreTimeout)
	smsService := services.NewSMSService(cfg.TwilioAccountSID, cfg.TwilioAuthToken, cfg.TwilioFromNumber)

	accountHandler := handlers.NewAccountHandler(users)
	messageHandler := handlers.NewMessageHandler(users, messages, smsService)
	authHandler := handlers.NewAuthHandler(users, cfg)

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	app.Post("/create-account", accountHandler.CreateAccount)
	app.Post("/update-profile", accountHandler.UpdateProfile)
	app.Get("/find-by-id/:id", accountHandler.FindByID)
	app.Get("/find-by-name/:name", accountHandler.FindByName)

	app.Get("/message-history/:uid/:fid", messageHandler.MessageHistory)
	app.Post("/send-message", messageHandler.SendMessage)
	app.Post("/delete-message/:mid/:uid", messageHandler.DeleteMessage)

	app.Post("/login", authHandler.Login)
	app.Get("/me", middleware.AuthMiddleware(cfg), authHandler.Me)
}
