package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"

	"redflag/internal/cache"
	"redflag/internal/config"
	"redflag/internal/service"
	"redflag/internal/transport/rest"
)

func main() {
	log.Println("started")
	ctx := context.Background()

	srvConfig := config.DefaultServerConfig()
	aiConfig := config.DefaultAIConfig()
	log.Printf("Advisory config:")
	log.Printf("  Model:       %s", aiConfig.Model)
	log.Printf("  Temperature: %.1f", aiConfig.Temperature)
	log.Printf("  Timeout:     %dms", aiConfig.TimeoutMS)
	log.Println("  API key:     supplied per session at intake")

	// Session store: Redis when configured, in-memory otherwise
	var sessionStore cache.SessionStore
	if srvConfig.RedisURI != "" {
		rdb := redis.NewClient(&redis.Options{
			Addr: srvConfig.RedisURI,
		})
		defer rdb.Close()

		if _, err := rdb.Ping(ctx).Result(); err != nil {
			log.Fatal("Failed to ping Redis:", err)
		}
		log.Println("Connected to Redis")
		sessionStore = cache.NewRedisSessionStore(rdb, srvConfig.SessionTTL)
	} else {
		log.Println("Warning: REDIS_URI not set, sessions are in-memory")
		sessionStore = cache.NewMemorySessionStore(srvConfig.SessionTTL)
	}

	// Initialize services
	authSvc := service.NewAuthService(srvConfig.JWTSecret)
	adviceSvc := service.NewAdviceService(aiConfig)
	sessionSvc := service.NewSessionService(sessionStore, authSvc, adviceSvc, srvConfig.SessionTTL)

	// Create router with container
	container := &rest.Container{
		AuthService:    authSvc,
		SessionService: sessionSvc,
	}

	router := rest.NewRouter(container)

	// Start server
	srv := &http.Server{
		Addr:    ":" + srvConfig.Port,
		Handler: router,
	}

	go func() {
		log.Printf("Server starting on :%s", srvConfig.Port)
		log.Println("Endpoints:")
		log.Println("  POST /v1/sessions")
		log.Println("  GET  /v1/sessions/current")
		log.Println("  POST /v1/sessions/current/credential")
		log.Println("  PUT  /v1/sessions/current/answers")
		log.Println("  POST /v1/sessions/current/submit")
		log.Println("  POST /v1/sessions/current/navigate")
		log.Println("  GET  /v1/sessions/current/verdict")
		log.Println("  POST /v1/sessions/current/advice")

		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("ListenAndServe:", err)
		}
	}()

	// Wait for interrupt
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Fatal("Server forced to shutdown:", err)
	}

	log.Println("Server exited")
}
