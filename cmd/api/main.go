package main

import (
	"context"
	"log"
	"strconv"
	"time"

	_ "portal/api/swagger" // swagger docs
	"portal/config"
	"portal/internal/database"
	"portal/internal/document"
	"portal/internal/handler"
	"portal/internal/repository"
	"portal/internal/service"
	"portal/internal/session"
	"portal/internal/store"
	"portal/internal/websocket"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// @title           Asset Portal API
// @version         1.0
// @description     Internal IT asset portal: inventory management, asset request intake with PDF generation, QR artifacts and role toggling.
// @host            localhost:8080
// @BasePath        /
func main() {
	if err := godotenv.Load("configs/.env"); err != nil {
		log.Println("No configs/.env file found or error loading it")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	gin.SetMode(cfg.HTTPServer.Mode)

	db, err := database.NewConnection(cfg.Database.DSN())
	if err != nil {
		log.Fatalf("Database connection failed: %v", err)
	}
	log.Println("Connected to PostgreSQL successfully.")

	// Set up WebSocket Hub
	wsHub := websocket.NewHub()
	go wsHub.Run()

	// Set up dependencies (Repository -> Store/Service -> Handler)
	kvRepo := repository.NewKVRepository(db)
	auditRepo := repository.NewAuditRepository(db)

	assetStore := store.New(kvRepo)
	assetStore.Load(context.Background())

	roles := session.NewRoles()
	generator := document.NewGenerator(cfg.Document.LogoPath)

	inventoryService := service.NewInventoryService(assetStore, auditRepo, wsHub)
	requestService := service.NewRequestService(generator, auditRepo)
	auditService := service.NewAuditService(auditRepo)
	qrService := service.NewQRService(assetStore, service.QRConfig{
		Endpoint:      cfg.QR.Endpoint,
		PublicBaseURL: cfg.Portal.PublicBaseURL,
		Timeout:       time.Duration(cfg.QR.TimeoutSeconds) * time.Second,
		CacheSize:     cfg.QR.CacheSize,
		CacheTTL:      time.Duration(cfg.QR.CacheTTLMin) * time.Minute,
	})

	// Initialize Handlers
	assetHandler := handler.NewAssetHandler(inventoryService, qrService, roles)
	requestHandler := handler.NewRequestHandler(requestService, roles, cfg.RateLimit.SubmitPerMin)
	sessionHandler := handler.NewSessionHandler(roles)
	auditHandler := handler.NewAuditHandler(auditService, roles)
	portalHandler := handler.NewPortalHandler(cfg.Portal)

	// Set up Gin Router
	router := gin.Default()

	// CORS configuration
	corsConfig := cors.DefaultConfig()
	corsConfig.AllowOrigins = cfg.Portal.AllowedOrigins
	corsConfig.AllowCredentials = true
	corsConfig.AllowHeaders = []string{"Origin", "Content-Length", "Content-Type", "Accept"}
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"}
	router.Use(cors.New(corsConfig))

	// Swagger route
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Health check
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "OK"})
	})

	// WebSocket endpoint for live inventory updates
	router.GET("/ws", func(c *gin.Context) {
		websocket.ServeWs(wsHub, c)
	})

	// Register API Routes
	assetHandler.RegisterRoutes(router.Group(""))
	requestHandler.RegisterRoutes(router.Group(""))
	sessionHandler.RegisterRoutes(router.Group(""))
	auditHandler.RegisterRoutes(router.Group(""))
	portalHandler.RegisterRoutes(router.Group(""))

	addr := ":" + strconv.Itoa(cfg.HTTPServer.Port)
	log.Printf("Server listening on %s", addr)
	if err := router.Run(addr); err != nil {
		log.Fatalf("Server failed: %v", err)
	}
}
