package main

import (
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"taskflow-app/taskflow/broker"
	"taskflow-app/taskflow/cache"
	"taskflow-app/taskflow/config"
	"taskflow-app/taskflow/database"
	"taskflow-app/taskflow/middleware"
	"taskflow-app/taskflow/routes"
	"taskflow-app/taskflow/services"

	"github.com/gin-gonic/gin"
)

func main() {
	cfg := config.Load()

	db, err := database.Setup(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer db.Close()

	// Initialize the broker producer with fail-soft handling
	brokerAvailable := true
	if err := broker.InitProducer(cfg.NatsURL); err != nil {
		log.Printf("Warning: Failed to initialize broker producer: %v", err)
		log.Println("The application will continue, but real-time events will be disabled")
		brokerAvailable = false
	} else {
		defer broker.CloseProducer()
	}

	// Analytics cache is optional: a missing Redis just means recomputes
	analyticsCache := cache.New(cfg.RedisHost+":"+cfg.RedisPort, time.Duration(cfg.AnalyticsCacheTTL)*time.Second)
	if analyticsCache != nil {
		defer analyticsCache.Close()
	}

	// Create and initialize the WebSocket relay
	webSocketService := services.NewWebSocketService(db)
	services.WebSocketServiceInstance = webSocketService
	webSocketService.Start(cfg.NatsURL)
	defer webSocketService.Stop()

	if brokerAvailable {
		eventHandlerService := services.NewEventHandlerService(db)
		services.EventHandlerServiceInstance = eventHandlerService
		eventHandlerService.Start()
		defer eventHandlerService.Stop()
	} else {
		log.Println("Event dispatch is disabled due to broker unavailability")
	}

	authService := services.NewAuthService(cfg.JWTSecret, cfg.JWTExpirationHours)
	services.AuthServiceInstance = authService

	userService := services.NewUserService(authService)
	services.UserServiceInstance = userService

	enhancedTaskService := services.NewEnhancedTaskService(analyticsCache)
	services.EnhancedTaskServiceInstance = enhancedTaskService

	router := gin.Default()
	router.Use(middleware.CORSMiddleware(cfg.AllowedOrigins))

	routes.RegisterHealthRoutes(router)

	jwtSecret := []byte(cfg.JWTSecret)

	public := router.Group("/api")
	routes.RegisterAuthRoutes(public, db, authService)
	routes.RegisterTaskRoutes(public, db, services.TaskServiceInstance)

	authenticated := router.Group("/api")
	authenticated.Use(middleware.AuthMiddleware(jwtSecret))
	routes.RegisterUserRoutes(authenticated, db, userService)

	enhanced := router.Group("/api/enhanced")
	enhanced.Use(middleware.AuthMiddleware(jwtSecret))
	routes.RegisterEnhancedTaskRoutes(enhanced, db, enhancedTaskService, services.AuditServiceInstance)
	routes.RegisterCategoryRoutes(enhanced, db, services.CategoryServiceInstance)

	ws := router.Group("")
	ws.Use(middleware.WebSocketAuthMiddleware(jwtSecret))
	routes.RegisterWebSocketRoutes(ws, webSocketService)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-quit
		log.Println("Shutting down server...")
		webSocketService.Stop()
		os.Exit(0)
	}()

	log.Printf("API server is running on port %s", cfg.AppPort)
	if err := http.ListenAndServe(":"+cfg.AppPort, router); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
