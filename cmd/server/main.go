package main

import (
	"context"
	"log"
	"log/slog"
	"net/http"
	"os"
	"strings"
	"time"

	"lexgenie/internal/auth"
	"lexgenie/internal/config"
	"lexgenie/internal/doctype"
	"lexgenie/internal/genai"
	"lexgenie/internal/handler"
	"lexgenie/internal/middleware"
	"lexgenie/internal/repository/postgres"
	"lexgenie/internal/repository/postgres/migrations"
	"lexgenie/internal/service"

	"github.com/joho/godotenv"
	"github.com/rs/cors"
)

func main() {
	// Load .env file (silently ignore if it doesn't exist - for production)
	_ = godotenv.Load()

	// Load configuration
	cfg := config.Load()

	// Setup structured logging
	logLevel := slog.LevelInfo
	if cfg.Environment == "dev" {
		logLevel = slog.LevelDebug
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: logLevel,
	}))
	slog.SetDefault(logger)

	logger.Info("server starting",
		"environment", cfg.Environment,
		"port", cfg.Port,
		"table_prefix", cfg.TablePrefix,
	)

	// JWT verification is optional: without a JWKS URL the server trusts the
	// userId request parameter, which is the mode local development runs in
	var jwtVerifier auth.JWTVerifier
	if cfg.SupabaseJWKSURL != "" {
		verifier, err := auth.NewJWTVerifier(cfg.SupabaseJWKSURL, logger)
		if err != nil {
			log.Fatalf("Failed to create JWT verifier: %v", err)
		}
		defer verifier.Close()
		jwtVerifier = verifier
	} else {
		logger.Warn("SUPABASE_JWKS_URL not set, token verification disabled")
	}

	// Run schema migrations before opening the pool
	ctx := context.Background()
	if err := migrations.Run(ctx, cfg.DatabaseURL); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	// Create pgx connection pool
	pool, err := postgres.CreateConnectionPool(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("Failed to create connection pool: %v", err)
	}
	defer pool.Close()

	logger.Info("database connected",
		"max_conns", 25,
		"min_conns", 5,
	)

	// Create table names
	tables := postgres.NewTableNames(cfg.TablePrefix)

	// Create repositories
	repoConfig := &postgres.RepositoryConfig{
		Pool:   pool,
		Tables: tables,
		Logger: logger,
	}
	docRepo := postgres.NewDocumentRepository(repoConfig)
	folderRepo := postgres.NewFolderRepository(repoConfig)
	chatRepo := postgres.NewChatRepository(repoConfig)
	txManager := postgres.NewTransactionManager(pool)

	// Document type rules and prompt templates
	registry, err := doctype.NewRegistry()
	if err != nil {
		log.Fatalf("Failed to load document type registry: %v", err)
	}
	logger.Info("document type registry initialized")

	// Anthropic-backed generator
	generator, err := genai.NewAnthropicGenerator(cfg.AnthropicAPIKey, cfg.AnthropicModel, registry, logger)
	if err != nil {
		log.Fatalf("Failed to create generator: %v", err)
	}

	// Create services
	docService := service.NewDocumentService(docRepo, generator, registry, logger)
	folderService := service.NewFolderService(folderRepo, docRepo, txManager, logger)
	chatService := service.NewChatService(chatRepo, generator, txManager, logger)

	// Create handlers
	docHandler := handler.NewDocumentHandler(docService, logger)
	folderHandler := handler.NewFolderHandler(folderService, logger)
	chatHandler := handler.NewChatHandler(chatService, logger)

	logger.Info("services initialized")

	// Create HTTP router (Go 1.22+ enhanced patterns)
	mux := http.NewServeMux()

	// Health check
	mux.HandleFunc("GET /health", docHandler.HealthCheck)

	// Document routes
	mux.HandleFunc("GET /documents", docHandler.ListDocuments)
	mux.HandleFunc("GET /documents/{id}", docHandler.GetDocument)
	mux.HandleFunc("PUT /documents/{id}", docHandler.UpdateDocument)
	mux.HandleFunc("DELETE /documents/{id}", docHandler.DeleteDocument)
	mux.HandleFunc("POST /generate/document", docHandler.GenerateDocument)

	// Folder routes
	mux.HandleFunc("GET /folders", folderHandler.ListFolders)
	mux.HandleFunc("POST /folders", folderHandler.CreateFolder)
	mux.HandleFunc("DELETE /folders/{id}", folderHandler.DeleteFolder)

	// Chat routes
	mux.HandleFunc("POST /chat/message", chatHandler.PostMessage)
	mux.HandleFunc("GET /chat/sessions", chatHandler.ListSessions)
	mux.HandleFunc("POST /chat/sessions", chatHandler.CreateSession)

	// Build middleware chain
	var root http.Handler = mux

	// Apply middleware in reverse order (they wrap each other)
	// Order: CORS → Recovery → Auth → Routes
	root = middleware.Auth(jwtVerifier, logger)(root)
	root = middleware.Recovery(logger)(root)

	// CORS - Must be before auth to handle OPTIONS pre-flight requests
	corsHandler := cors.New(cors.Options{
		AllowedOrigins:   strings.Split(cfg.CORSOrigins, ","),
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Origin", "Content-Type", "Accept", "Authorization"},
		AllowCredentials: true,
	})
	root = corsHandler.Handler(root)

	// Create HTTP server
	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      root,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 120 * time.Second, // generation requests can run long
		IdleTimeout:  60 * time.Second,
	}

	// Start server
	logger.Info("server listening", "port", cfg.Port)
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatalf("Failed to start server: %v", err)
	}
}
