package gateway

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	fiberLogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"go.uber.org/zap"

	"github.com/Namnipitpon/ScrapDown-dev-api/internal/db"
	"github.com/Namnipitpon/ScrapDown-dev-api/internal/services/account"
	accHandlers "github.com/Namnipitpon/ScrapDown-dev-api/internal/services/account/handlers"
	"github.com/Namnipitpon/ScrapDown-dev-api/internal/services/match"
	matchHandlers "github.com/Namnipitpon/ScrapDown-dev-api/internal/services/match/handlers"
	"github.com/Namnipitpon/ScrapDown-dev-api/internal/services/shop"
	shopHandlers "github.com/Namnipitpon/ScrapDown-dev-api/internal/services/shop/handlers"
	"github.com/Namnipitpon/ScrapDown-dev-api/internal/services/social"
	socialHandlers "github.com/Namnipitpon/ScrapDown-dev-api/internal/services/social/handlers"
	"github.com/Namnipitpon/ScrapDown-dev-api/pkg/config"
)

// APIGateway handles the central routing and global middleware for the modular monolith.
type APIGateway struct {
	router *fiber.App
	logger *zap.Logger
	cfg    config.Config
	db     *sql.DB
}

// NewAPIGateway creates a new instance of APIGateway with a configured Fiber router.
func NewAPIGateway(cfg config.Config, logger *zap.Logger, dbConn *sql.DB) *APIGateway {
	app := fiber.New(fiber.Config{
		AppName: "ScrapDown API Gateway",
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			code := fiber.StatusInternalServerError
			if e, ok := err.(*fiber.Error); ok {
				code = e.Code
			}
			if code >= fiber.StatusInternalServerError {
				logger.Error("gateway error", zap.Error(err))
			}
			c.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
			return c.Status(code).JSON(fiber.Map{
				"error": err.Error(),
			})
		},
	})

	gw := &APIGateway{
		router: app,
		logger: logger,
		cfg:    cfg,
		db:     dbConn,
	}

	gw.applyMiddleware()
	gw.setupHealthCheck()

	if dbConn != nil {
		players := db.NewPlayerStore(dbConn)
		items := db.NewItemStore(dbConn)
		matches := db.NewMatchStore(dbConn)

		accSvc := account.NewAccountService(cfg, logger, players)
		socialSvc := social.NewSocialService(cfg, logger, players)
		shopSvc := shop.NewShopService(cfg, logger, players, items)
		matchSvc := match.NewMatchService(cfg, logger, players, matches)

		gw.registerRoutes(accSvc, socialSvc, shopSvc, matchSvc)
	}

	return gw
}

func (g *APIGateway) registerRoutes(
	accSvc account.Service,
	socialSvc social.Service,
	shopSvc shop.Service,
	matchSvc match.Service,
) {
	// Account routes
	accountH := accHandlers.NewAccountHandlers(accSvc, socialSvc, g.logger)
	accountGroup := g.MountGroup("/account")
	accountGroup.Post("/", accountH.CreatePlayer)
	accountGroup.Get("/search", accountH.SearchPlayers)
	accountGroup.Get("/:playerId", accountH.GetPlayer)
	accountGroup.Put("/playername", accountH.ChangePlayerName)
	accountGroup.Put("/select-loadout", accountH.SelectPilotSpaceship)
	accountGroup.Put("/actives", accountH.SetActives)
	accountGroup.Post("/achievements", accountH.AddAchievement)

	// Social routes
	socialH := socialHandlers.NewSocialHandlers(socialSvc, g.logger)
	socialGroup := g.MountGroup("/social")
	socialGroup.Post("/send-request", socialH.SendRequest)
	socialGroup.Post("/accept-request", socialH.AcceptRequest)
	socialGroup.Post("/remove-request", socialH.RemoveRequest)
	socialGroup.Post("/remove-friend", socialH.RemoveFriend)
	socialGroup.Post("/block", socialH.Block)
	socialGroup.Post("/unblock", socialH.Unblock)
	socialGroup.Get("/:playerId", socialH.GetRelationshipView)

	// Shop routes
	shopH := shopHandlers.NewShopHandlers(shopSvc, g.logger)
	shopGroup := g.MountGroup("/shop")
	shopGroup.Get("/items", shopH.ListItems)
	shopGroup.Post("/buy-item", shopH.BuyItem)
	shopGroup.Post("/buy-coins", shopH.BuyCoins)

	// Match routes
	matchH := matchHandlers.NewMatchHandlers(matchSvc, g.logger)
	matchesGroup := g.MountGroup("/matches")
	matchesGroup.Post("/generate-code", matchH.GenerateCode)
	matchesGroup.Put("/result", matchH.RecordResult)
	matchesGroup.Get("/:playerId", matchH.History)
}

// applyMiddleware sets up global middleware for the gateway.
func (g *APIGateway) applyMiddleware() {
	g.router.Use(cors.New(cors.Config{
		AllowOrigins: g.cfg.Server.CORSAllowOrigins,
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
	}))
	g.router.Use(fiberLogger.New())
	g.router.Use(recover.New())
	g.router.Use(limiter.New(limiter.Config{
		Max:        g.cfg.Server.RateLimitMax,
		Expiration: g.cfg.Server.RateLimitDuration,
	}))
}

// setupHealthCheck adds a basic health check endpoint to the gateway.
func (g *APIGateway) setupHealthCheck() {
	g.router.Get("/health", func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusOK).JSON(fiber.Map{
			"status": "ok",
		})
	})
}

// MountGroup allows services to mount their own route groups on the gateway.
func (g *APIGateway) MountGroup(prefix string, handlers ...fiber.Handler) fiber.Router {
	return g.router.Group(prefix, handlers...)
}

// Router returns the underlying Fiber app (useful for testing).
func (g *APIGateway) Router() *fiber.App {
	return g.router
}

// Start begins listening on the configured host and port.
func (g *APIGateway) Start() error {
	addr := fmt.Sprintf("%s:%d", g.cfg.Server.Host, g.cfg.Server.Port)
	g.logger.Info("Starting API Gateway", zap.String("address", addr))
	return g.router.Listen(addr)
}

// Shutdown gracefully stops the gateway.
func (g *APIGateway) Shutdown(ctx context.Context) error {
	g.logger.Info("Shutting down API Gateway...")
	return g.router.ShutdownWithContext(ctx)
}
