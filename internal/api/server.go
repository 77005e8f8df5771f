package api

import (
	"fmt"
	"log"
	"net"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"

	"github.com/b3dotfun/sdk-go/internal/api/middleware"
	"github.com/b3dotfun/sdk-go/internal/checkout"
	"github.com/b3dotfun/sdk-go/internal/database"
	"github.com/b3dotfun/sdk-go/internal/gasoracle"
	"github.com/b3dotfun/sdk-go/internal/services"
	"github.com/b3dotfun/sdk-go/internal/utils"
)

// APIServer exposes the SDK's read surfaces over HTTP: chain registry, gas
// prices, checkout session lifecycle and deployment/swap history.
type APIServer struct {
	app  *fiber.App
	db   *database.Database
	port int

	deployments services.TokenDeploymentService
	swaps       services.SwapRecordService
	sessions    services.CheckoutSessionService
	gas         *gasoracle.Service
	checkout    *checkout.Client
}

// ServerConfig wires the server's collaborators. Checkout may be nil when no
// backend is configured; its routes then return 503.
type ServerConfig struct {
	Database *database.Database
	Gas      *gasoracle.Service
	Checkout *checkout.Client
	// JwksUri enables bearer-token auth on mutating routes when set.
	JwksUri string
}

func NewAPIServer(cfg ServerConfig) *APIServer {
	app := fiber.New(fiber.Config{
		DisableStartupMessage: true,
	})

	// Add middleware
	app.Use(cors.New())
	app.Use(logger.New(logger.Config{
		Format:     "[${time}] ${status} - ${latency} ${method} ${path}\n",
		TimeFormat: "15:04:05",
		TimeZone:   "Local",
	}))

	server := &APIServer{
		app:         app,
		db:          cfg.Database,
		deployments: services.NewTokenDeploymentService(cfg.Database.DB),
		swaps:       services.NewSwapRecordService(cfg.Database.DB),
		sessions:    services.NewCheckoutSessionService(cfg.Database.DB),
		gas:         cfg.Gas,
		checkout:    cfg.Checkout,
	}

	var auth fiber.Handler
	if cfg.JwksUri != "" {
		auth = middleware.AuthMiddleware(middleware.AuthConfig{
			JWTAuthenticator: utils.NewJwtAuthenticator(cfg.JwksUri),
		})
	}
	server.setupRoutes(auth)
	return server
}

func (s *APIServer) setupRoutes(auth fiber.Handler) {
	// Chain registry
	s.app.Get("/api/chains", s.handleListChains)
	s.app.Get("/api/chains/:chain_id", s.handleGetChain)
	s.app.Get("/api/chains/:chain_id/tokens", s.handleListChainTokens)

	// Gas oracle
	s.app.Get("/api/gas/:chain_id", s.handleGetGasPrice)

	// Checkout sessions and order status
	checkoutGroup := s.app.Group("/api/checkout-sessions")
	if auth != nil {
		checkoutGroup.Use(auth)
	}
	checkoutGroup.Post("/", s.handleCreateCheckoutSession)
	checkoutGroup.Get("/:session_id", s.handleGetCheckoutSession)
	s.app.Get("/api/orders/:order_id/status", s.handleGetOrderStatus)

	// Deployment and swap history
	s.app.Get("/api/deployments", s.handleListDeployments)
	s.app.Get("/api/deployments/:token_address", s.handleGetDeployment)
	s.app.Get("/api/swaps/:user_address", s.handleListSwaps)

	// Health check
	s.app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(map[string]string{"status": "ok"})
	})
}

// Start starts the server on a random available port
func (s *APIServer) Start() (int, error) {
	listener, err := net.Listen("tcp", ":0")
	if err != nil {
		return 0, fmt.Errorf("failed to find available port: %w", err)
	}

	port := listener.Addr().(*net.TCPAddr).Port
	s.port = port
	listener.Close()

	go func() {
		if err := s.app.Listen(fmt.Sprintf(":%d", port)); err != nil {
			log.Printf("Error starting API server: %v\n", err)
		}
	}()

	return port, nil
}

// Listen blocks serving on the given address.
func (s *APIServer) Listen(addr string) error {
	return s.app.Listen(addr)
}

func (s *APIServer) Shutdown() error {
	return s.app.Shutdown()
}

func (s *APIServer) GetPort() int {
	return s.port
}
