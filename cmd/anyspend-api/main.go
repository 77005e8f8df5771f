package main

import (
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/b3dotfun/sdk-go/internal/api"
	"github.com/b3dotfun/sdk-go/internal/checkout"
	"github.com/b3dotfun/sdk-go/internal/database"
	"github.com/b3dotfun/sdk-go/internal/gasoracle"
)

// Build information (set via ldflags)
var (
	Version    = "dev"
	CommitHash = "unknown"
	BuildTime  = "unknown"
)

func main() {
	var showVersion = flag.Bool("version", false, "Show version information")
	var addr = flag.String("addr", ":8080", "Listen address")
	flag.Parse()

	if *showVersion {
		log.Printf("Anyspend API Server\n")
		log.Printf("Version: %s\n", Version)
		log.Printf("Commit: %s\n", CommitHash)
		log.Printf("Built: %s\n", BuildTime)
		return
	}

	// .env is optional; real deployments set the environment directly
	if err := godotenv.Load(); err != nil {
		log.Printf("No .env file loaded: %v", err)
	}

	db, err := openDatabase()
	if err != nil {
		log.Fatal("Failed to initialize database:", err)
	}
	defer db.Close()

	var checkoutClient *checkout.Client
	if backendURL := os.Getenv("ANYSPEND_BACKEND_URL"); backendURL != "" {
		checkoutClient = checkout.NewClient(backendURL, os.Getenv("ANYSPEND_BACKEND_TOKEN"))
	} else {
		log.Println("ANYSPEND_BACKEND_URL not set, checkout routes disabled")
	}

	server := api.NewAPIServer(api.ServerConfig{
		Database: db,
		Gas:      gasoracle.NewService(gasoracle.NewClient(os.Getenv("GAS_ORACLE_URL"))),
		Checkout: checkoutClient,
		JwksUri:  os.Getenv("JWKS_URI"),
	})

	go func() {
		log.Printf("API server listening on %s", *addr)
		if err := server.Listen(*addr); err != nil {
			log.Fatal("Failed to start API server:", err)
		}
	}()

	// Set up graceful shutdown
	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)
	<-c

	log.Println("\nShutting down server...")
	if err := server.Shutdown(); err != nil {
		log.Printf("Error shutting down API server: %v", err)
	}
	log.Println("Server shut down successfully")
}

// openDatabase prefers Postgres when a DSN is configured and falls back to a
// local sqlite file.
func openDatabase() (*database.Database, error) {
	if dsn := os.Getenv("DATABASE_URL"); dsn != "" {
		return database.NewPostgresDatabase(dsn)
	}

	homePath, err := os.UserHomeDir()
	if err != nil {
		return nil, err
	}
	return database.NewDatabase(homePath + "/anyspend.db")
}
