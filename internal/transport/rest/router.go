package rest

import (
	"net/http"
	"os"

	"github.com/gorilla/mux"

	"redflag/internal/service"
	"redflag/internal/transport/rest/handler"
	"redflag/internal/transport/rest/middleware"
)

// Container holds all dependencies for the router
type Container struct {
	AuthService    *service.AuthService
	SessionService *service.SessionService
}

// NewRouter creates the API router with all endpoints
func NewRouter(c *Container) http.Handler {
	r := mux.NewRouter()

	// Initialize handlers
	sessionHandler := handler.NewSessionHandler(c.SessionService)
	questionnaireHandler := handler.NewQuestionnaireHandler(c.SessionService)
	verdictHandler := handler.NewVerdictHandler(c.SessionService)

	// Initialize middleware
	authMW := middleware.NewAuthMiddleware(c.AuthService)

	// CORS middleware (apply first)
	r.Use(corsMiddleware)

	// API v1 routes
	v1 := r.PathPrefix("/v1").Subrouter()

	// Public routes
	v1.HandleFunc("/sessions", sessionHandler.Create).Methods("POST", "OPTIONS")

	// Health check
	r.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok"}`))
	}).Methods("GET")

	// Session routes (require session token)
	sessionRoutes := v1.NewRoute().Subrouter()
	sessionRoutes.Use(authMW.RequireSession)

	sessionRoutes.HandleFunc("/sessions/current", sessionHandler.State).Methods("GET", "OPTIONS")
	sessionRoutes.HandleFunc("/sessions/current/credential", sessionHandler.SubmitCredential).Methods("POST", "OPTIONS")
	sessionRoutes.HandleFunc("/sessions/current/navigate", sessionHandler.Navigate).Methods("POST", "OPTIONS")
	sessionRoutes.HandleFunc("/sessions/current/answers", questionnaireHandler.SaveDraft).Methods("PUT", "OPTIONS")
	sessionRoutes.HandleFunc("/sessions/current/submit", questionnaireHandler.Submit).Methods("POST", "OPTIONS")
	sessionRoutes.HandleFunc("/sessions/current/verdict", verdictHandler.Get).Methods("GET", "OPTIONS")
	sessionRoutes.HandleFunc("/sessions/current/advice", verdictHandler.Advice).Methods("POST", "OPTIONS")

	return r
}

func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		allowedOrigins := os.Getenv("CORS_ALLOWED_ORIGINS")
		if allowedOrigins == "" {
			allowedOrigins = "*"
		}

		allowedMethods := os.Getenv("CORS_ALLOWED_METHODS")
		if allowedMethods == "" {
			allowedMethods = "GET, POST, PUT, DELETE, OPTIONS"
		}

		allowedHeaders := os.Getenv("CORS_ALLOWED_HEADERS")
		if allowedHeaders == "" {
			allowedHeaders = "Content-Type, Authorization"
		}

		w.Header().Set("Access-Control-Allow-Origin", allowedOrigins)
		w.Header().Set("Access-Control-Allow-Methods", allowedMethods)
		w.Header().Set("Access-Control-Allow-Headers", allowedHeaders)

		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}
