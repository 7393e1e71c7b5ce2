// Package routes defines the API routing configuration.
// It wires repositories, services and handlers and groups routes by the
// session requirements they carry.
package routes

import (
	"smartshop/internal/handlers"
	"smartshop/internal/middleware"
	"smartshop/internal/repositories"
	"smartshop/internal/services/auth"
	"smartshop/internal/services/cards"
	"smartshop/internal/services/cart"
	"smartshop/internal/services/catalog"
	"smartshop/internal/services/sms"
	"smartshop/internal/services/wallet"
	"smartshop/internal/session"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// SetupRoutes configures all application routes.
func SetupRoutes(app *fiber.App, db *gorm.DB, sessions *session.Store, log *logrus.Logger) {
	// Repositories
	userRepo := repositories.NewUserRepository(db)
	walletRepo := repositories.NewWalletRepository(db)
	cartRepo := repositories.NewCartRepository(db)
	productRepo := repositories.NewProductRepository(db)
	cardRepo := repositories.NewCreditCardRepository(db)

	// Services
	authService := auth.NewService(userRepo, sms.NewFromEnv(log), log)
	walletService := wallet.NewService(walletRepo, log)
	cartService := cart.NewService(cartRepo)
	catalogService := catalog.NewService(productRepo)
	cardService := cards.NewService(cardRepo)

	// Handlers
	authHandler := handlers.NewAuthHandler(authService, sessions)
	walletHandler := handlers.NewWalletHandler(walletService)
	cartHandler := handlers.NewCartHandler(cartService)
	catalogHandler := handlers.NewCatalogHandler(catalogService)
	cardHandler := handlers.NewCardHandler(cardService)
	healthHandler := handlers.NewHealthHandler(sessions)

	sessionMiddleware := middleware.NewSessionMiddleware(sessions)
	app.Use(sessionMiddleware.Load)

	app.Get("/health", healthHandler.Check)

	// Page flows: form-encoded bodies, redirect semantics.
	app.Post("/register", authHandler.Register)
	app.Post("/login", authHandler.Login)
	app.Get("/logout", authHandler.Logout)
	app.Post("/send_otp", authHandler.SendOTP)
	app.Post("/verify-otp", authHandler.VerifyOTP)

	api := app.Group("/api")

	// Catalog browsing requires no session.
	api.Get("/products/:category", catalogHandler.GetProducts)

	// Everything below needs an authenticated session.
	protected := api.Use(sessionMiddleware.RequireAuth)

	protected.Post("/cart/add", cartHandler.AddItem)
	protected.Get("/cart", cartHandler.GetCart)
	protected.Put("/cart/update/:id", cartHandler.UpdateItem)
	protected.Delete("/cart/:id", cartHandler.RemoveItem)

	protected.Get("/wallet/balance", walletHandler.GetBalance)
	protected.Post("/wallet/deposit", walletHandler.Deposit)
	protected.Post("/wallet/pay", walletHandler.Pay)
	protected.Get("/transactions", walletHandler.GetTransactions)

	protected.Get("/cards", cardHandler.GetCards)
	protected.Post("/cards/add", cardHandler.AddCard)
	protected.Delete("/cards/:id", cardHandler.DeleteCard)
}
