package main

import (
	"context"
	"io"
	"log"
	"log/slog"
	"net/http"
	"os"
	"strings"
	"time"

	"garden/internal/auth"
	"garden/internal/config"
	"garden/internal/handler"
	"garden/internal/middleware"
	"garden/internal/repository/postgres"
	postgresContent "garden/internal/repository/postgres/content"
	serviceContent "garden/internal/service/content"
	"garden/internal/viewers"

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

	var logOut io.Writer = os.Stdout
	if cfg.LogDir != "" {
		logFile, err := config.SetupLogFile(cfg.LogDir, config.MaxLogFiles)
		if err != nil {
			log.Fatalf("Failed to setup log file: %v", err)
		}
		defer logFile.Close()
		logOut = io.MultiWriter(os.Stdout, logFile)
	}

	logger := slog.New(slog.NewJSONHandler(logOut, &slog.HandlerOptions{
		Level: logLevel,
	}))
	slog.SetDefault(logger)

	logger.Info("server starting",
		"environment", cfg.Environment,
		"port", cfg.Port,
		"table_prefix", cfg.TablePrefix,
	)

	// Create JWT verifier for Supabase authentication
	jwtVerifier, err := auth.NewJWTVerifier(cfg.SupabaseJWKSURL, logger)
	if err != nil {
		log.Fatalf("Failed to create JWT verifier: %v", err)
	}
	defer jwtVerifier.Close()

	// Create pgx connection pool
	ctx := context.Background()
	pool, err := postgres.CreateConnectionPool(ctx, cfg.SupabaseDBURL)
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
	nodeRepo := postgresContent.NewNodeRepository(repoConfig)
	payloadRepo := postgresContent.NewPayloadRepository(repoConfig)
	txManager := postgres.NewTransactionManager(pool)

	// Load viewer capability registry from embedded YAML
	viewerRegistry, err := viewers.NewRegistry()
	if err != nil {
		log.Fatalf("Failed to load viewer registry: %v", err)
	}
	logger.Info("viewer registry loaded")

	// Create content services
	analyzer := serviceContent.NewContentAnalyzer()
	ingestor := serviceContent.NewHTMLIngestor()
	parentValidator := serviceContent.NewParentValidator(nodeRepo)
	nodeService := serviceContent.NewNodeService(nodeRepo, payloadRepo, txManager, analyzer, ingestor, parentValidator, logger)
	treeService := serviceContent.NewTreeService(nodeRepo, logger)
	uploadService := serviceContent.NewUploadService(nodeRepo, payloadRepo, txManager, parentValidator, logger)

	// Create handlers
	treeHandler := handler.NewTreeHandler(treeService, logger)
	nodeHandler := handler.NewNodeHandler(nodeService, logger)
	uploadHandler := handler.NewUploadHandler(uploadService, logger)
	viewersHandler := handler.NewViewersHandler(viewerRegistry, logger)

	logger.Info("services initialized")

	// Create HTTP router (Go 1.22+ enhanced patterns)
	mux := http.NewServeMux()

	// Health check
	mux.HandleFunc("GET /health", treeHandler.HealthCheck)

	// Tree endpoint
	mux.HandleFunc("GET /api/content/tree", treeHandler.GetTree)

	// Node routes
	mux.HandleFunc("POST /api/content", nodeHandler.CreateNode)
	mux.HandleFunc("POST /api/content/batch/delete", nodeHandler.BatchDelete)       // Must come before {id} route
	mux.HandleFunc("POST /api/content/batch/duplicate", nodeHandler.BatchDuplicate) // Must come before {id} route
	mux.HandleFunc("GET /api/content/{id}", nodeHandler.GetNode)
	mux.HandleFunc("PATCH /api/content/{id}", nodeHandler.UpdateNode)
	mux.HandleFunc("DELETE /api/content/{id}", nodeHandler.DeleteNode)
	mux.HandleFunc("POST /api/content/{id}/restore", nodeHandler.RestoreNode)

	// Two-phase upload routes
	mux.HandleFunc("POST /api/files/initiate", uploadHandler.InitiateUpload)
	mux.HandleFunc("POST /api/files/{id}/finalize", uploadHandler.FinalizeUpload)

	// Viewer capability routes
	mux.HandleFunc("GET /api/viewers", viewersHandler.ListViewers)

	// Build middleware chain
	var httpHandler http.Handler = mux

	// Apply middleware in reverse order (they wrap each other)
	// Order: CORS → Recovery → Auth → Routes
	httpHandler = middleware.AuthMiddleware(jwtVerifier)(httpHandler)
	httpHandler = middleware.Recovery(logger)(httpHandler)

	// CORS - Must be before auth to handle OPTIONS pre-flight requests
	corsHandler := cors.New(cors.Options{
		AllowedOrigins:   strings.Split(cfg.CORSOrigins, ","),
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Origin", "Content-Type", "Accept", "Authorization"},
		AllowCredentials: true,
	})
	httpHandler = corsHandler.Handler(httpHandler)

	// Create HTTP server
	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      httpHandler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server
	logger.Info("server listening", "port", cfg.Port)
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatalf("Failed to start server: %v", err)
	}
}
