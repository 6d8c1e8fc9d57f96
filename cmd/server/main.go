package main

import (
	"log"
	"strings"

	"procurement-backend/internal/account"
	"procurement-backend/internal/audit"
	"procurement-backend/internal/auth"
	"procurement-backend/internal/catalog"
	"procurement-backend/internal/config"
	"procurement-backend/internal/database"
	"procurement-backend/internal/events"
	"procurement-backend/internal/models"
	"procurement-backend/internal/purchase"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
)

func main() {
	cfg := config.Load()
	database.Init(cfg)

	var cache *catalog.Cache
	if cfg.RedisAddr != "" {
		var err error
		cache, err = catalog.NewCache(cfg.RedisAddr)
		if err != nil {
			log.Printf("[WARN] Redis unavailable, catalog cache disabled: %v", err)
			cache = nil
		} else {
			defer cache.Close()
		}
	}

	var publisher *events.Publisher
	if cfg.NATSURL != "" {
		var err error
		publisher, err = events.NewPublisher(cfg.NATSURL)
		if err != nil {
			log.Printf("[WARN] NATS unavailable, order events disabled: %v", err)
			publisher = nil
		} else {
			defer publisher.Close()
		}
	}

	catalogRepos := make(map[catalog.Collection]catalog.Repository, len(catalog.AllCollections))
	for _, col := range catalog.AllCollections {
		catalogRepos[col] = catalog.NewSQLRepository(database.DB, col)
	}
	fetcher := catalog.NewRepositoryFetcher(catalogRepos, cache)
	loader := catalog.NewLoader(fetcher)

	accountHandlers := account.NewHandlers(account.NewSQLRepository(database.DB))
	purchaseHandlers := purchase.NewHandlers(loader, publisher)

	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			if e, ok := err.(*fiber.Error); ok {
				return c.Status(e.Code).JSON(fiber.Map{
					"error": e.Message,
				})
			}
			log.Println("Unexpected error:", err)
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "Unexpected server error",
			})
		},
	})

	corsOrigins := strings.Split(cfg.CORSOrigins, ",")
	for i := range corsOrigins {
		corsOrigins[i] = strings.TrimSpace(corsOrigins[i])
	}
	app.Use(cors.New(cors.Config{
		AllowOrigins: strings.Join(corsOrigins, ","),
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
		AllowMethods: "GET,POST,PUT,DELETE,OPTIONS",
	}))

	api := app.Group("/api")

	// Public auth
	api.Post("/auth/register-admin", auth.RegisterAdminHandler(cfg))
	api.Post("/auth/login", auth.LoginHandler(cfg))

	// Protected
	protected := api.Group("")
	protected.Use(auth.JWTMiddleware(cfg))

	protected.Get("/auth/me", auth.MeHandler())

	// Catalog collections: po_category, po_model, po_brand, po_type, po_itemNames
	for _, res := range catalog.Resources {
		h := catalog.NewHandlers(res, catalogRepos[res.Collection], fetcher, cache)
		group := protected.Group("/" + string(res.Collection))
		group.Get("/getAll", h.List())
		group.Get("/search", h.Search())
		group.Post("/create", h.Create())
		group.Put("/update/:id", h.Update())
		group.Delete("/delete/:id", h.Delete())
	}

	// Accounts (vendors and clients)
	protected.Get("/accounts", accountHandlers.List())
	protected.Get("/accounts/:id", accountHandlers.Get())
	protected.Post("/accounts", accountHandlers.Create())
	protected.Put("/accounts/:id", accountHandlers.Update())
	protected.Delete("/accounts/:id", accountHandlers.Delete())

	// Purchase orders
	protected.Get("/purchase_order/getAll", purchaseHandlers.List())
	protected.Get("/purchase_order/get/:id", purchaseHandlers.Get())
	protected.Post("/purchase_order/create", purchaseHandlers.Create())
	protected.Put("/purchase_order/update/:id", purchaseHandlers.Update())
	protected.Delete("/purchase_order/delete/:id", purchaseHandlers.Delete())
	protected.Post("/purchase_order/:id/items", purchaseHandlers.AddItem())
	protected.Get("/purchase_order/export/:id", purchaseHandlers.Export())
	protected.Post("/purchase_order/parse-text", purchaseHandlers.ParseText())

	// Admin only
	adminRoutes := protected.Group("/admin")
	adminRoutes.Use(auth.RequireRole(models.RoleAdmin))
	adminRoutes.Post("/users", auth.CreateUserHandler())
	adminRoutes.Get("/audit-logs", audit.ListAuditLogsHandler())

	log.Println("Server listening on port:", cfg.HTTPPort)
	if err := app.Listen(":" + cfg.HTTPPort); err != nil {
		log.Fatal(err)
	}
}
