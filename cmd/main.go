package main

import (
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"neuralife-notes/neuralife/cache"
	"neuralife-notes/neuralife/config"
	"neuralife-notes/neuralife/database"
	"neuralife-notes/neuralife/middleware"
	"neuralife-notes/neuralife/remote"
	"neuralife-notes/neuralife/routes"
	"neuralife-notes/neuralife/services"

	"github.com/gin-gonic/gin"
	"github.com/nats-io/nats.go"
)

func main() {
	cfg := config.Load()

	db, err := database.Setup(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize local cache: %v", err)
	}
	defer db.Close()

	store := cache.NewStore(db)

	// Connect to the remote document store. RetryOnFailedConnect lets
	// the process come up offline; the connectivity monitor flips the
	// sync state once the connection lands.
	conn, err := nats.Connect(cfg.NatsURL,
		nats.RetryOnFailedConnect(true),
		nats.MaxReconnects(-1),
		nats.ReconnectWait(2*time.Second),
	)
	if err != nil {
		log.Fatalf("Failed to set up remote store connection: %v", err)
	}
	defer conn.Close()

	connectivity := services.NewConnectivityService(conn.IsConnected())
	services.ConnectivityServiceInstance = connectivity
	connectivity.Watch(conn)

	remoteStore := remote.NewNATSStore(conn)

	// WebSocket hub for pushing sync notifications to clients
	webSocketService := services.NewWebSocketService()
	services.WebSocketServiceInstance = webSocketService
	webSocketService.Start()
	defer webSocketService.Stop()

	notifier := services.NewNotificationService(webSocketService)
	services.NotificationServiceInstance = notifier

	sessionService := services.NewSessionService(store, remoteStore, connectivity, notifier)
	services.SessionServiceInstance = sessionService
	defer sessionService.EndAll()

	router := gin.Default()
	router.Use(middleware.CORSMiddleware(cfg.AllowedOrigins))

	routes.RegisterWebSocketRoutes(router, cfg.JWTSecret, webSocketService)

	apiGroup := router.Group("/api/v1")
	apiGroup.Use(middleware.AuthMiddleware(cfg.JWTSecret))
	routes.RegisterNoteRoutes(apiGroup, sessionService)
	routes.RegisterFolderRoutes(apiGroup, sessionService)
	routes.RegisterVersionRoutes(apiGroup, sessionService)
	routes.RegisterSyncRoutes(apiGroup, sessionService)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-quit
		log.Println("Shutting down server...")
		sessionService.EndAll()
		webSocketService.Stop()
		conn.Close()
		db.Close()
		os.Exit(0)
	}()

	log.Printf("API server is running on port %s", cfg.AppPort)
	if err := http.ListenAndServe(":"+cfg.AppPort, router); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
