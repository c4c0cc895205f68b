package main

import (
	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"

	"github.com/lanbeam/signaling/config"
	"github.com/lanbeam/signaling/internal/grouping"
	"github.com/lanbeam/signaling/internal/handlers"
	"github.com/lanbeam/signaling/internal/identity"
	"github.com/lanbeam/signaling/internal/names"
	"github.com/lanbeam/signaling/internal/presence"
	"github.com/lanbeam/signaling/internal/signaling"
)

func main() {
	// Load configuration
	cfg := config.Load()

	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	} else {
		log.SetLevel(log.DebugLevel)
	}

	// Presence mirror is optional; without Redis the in-memory
	// registry is the only view of occupancy.
	var mirror signaling.PresenceMirror
	if cfg.Redis.Enabled {
		client, err := presence.NewClient(cfg.Redis)
		if err != nil {
			log.Fatalf("Failed to connect to Redis: %v", err)
		}
		defer client.Close()
		mirror = presence.NewMirror(client)
		log.Info("Redis presence mirror enabled")
	}

	registry := signaling.NewRegistry(mirror)

	ws := &handlers.Signaling{
		Registry:     registry,
		Router:       signaling.NewRouter(registry),
		Signer:       identity.NewSigner(cfg.IdentitySecret, cfg.IdentityTTL),
		Policy:       grouping.Policy{TrustProxy: cfg.TrustProxy},
		Keepalive:    cfg.KeepaliveInterval,
		NameStrategy: names.ParseStrategy(cfg.NameStrategy),
	}

	router := gin.Default()

	// Global CORS middleware (runs before routing)
	router.Use(handlers.OriginFilter(cfg.AllowedOrigins))

	router.GET("/health", handlers.Health)
	router.GET("/stats", handlers.Stats(registry))

	// Signaling endpoints: primary plus a fallback for clients without
	// WebRTC support.
	server := router.Group("/server")
	{
		server.GET("/webrtc", ws.Handler(true))
		server.GET("/fallback", ws.Handler(false))
	}

	log.Infof("Starting signaling server on port %s", cfg.Port)
	if err := router.Run(":" + cfg.Port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
