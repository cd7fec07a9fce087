package http

import (
	"net/http"

	"clinic-whatsapp-scheduler/internal/delivery/http/handler"
	"clinic-whatsapp-scheduler/internal/delivery/http/middleware"

	"github.com/gorilla/mux"
)

type Router struct {
	router         *mux.Router
	webhookHandler *handler.WebhookHandler
	adminHandler   *handler.AdminHandler
	authHandler    *handler.AuthHandler
	authMiddleware *middleware.AuthMiddleware
	corsMiddleware *middleware.CORSMiddleware
}

func NewRouter(
	webhookHandler *handler.WebhookHandler,
	adminHandler *handler.AdminHandler,
	authHandler *handler.AuthHandler,
	authMiddleware *middleware.AuthMiddleware,
	corsMiddleware *middleware.CORSMiddleware,
) *Router {
	return &Router{
		router:         mux.NewRouter(),
		webhookHandler: webhookHandler,
		adminHandler:   adminHandler,
		authHandler:    authHandler,
		authMiddleware: authMiddleware,
		corsMiddleware: corsMiddleware,
	}
}

func (r *Router) Setup() *mux.Router {
	// API versioning
	api := r.router.PathPrefix("/api/v1").Subrouter()

	// Health check
	api.HandleFunc("/health", r.healthCheck).Methods(http.MethodGet)

	// WhatsApp webhook (public; verified by token handshake)
	api.HandleFunc("/whatsapp/webhook", r.webhookHandler.Verify).Methods(http.MethodGet)
	api.HandleFunc("/whatsapp/webhook", r.webhookHandler.Receive).Methods(http.MethodPost)

	// Auth routes (public)
	auth := api.PathPrefix("/auth").Subrouter()
	auth.HandleFunc("/login", r.authHandler.Login).Methods(http.MethodPost)
	auth.HandleFunc("/refresh-token", r.authHandler.RefreshToken).Methods(http.MethodPost)

	// Auth routes (protected)
	authProtected := api.PathPrefix("/auth").Subrouter()
	authProtected.Use(r.authMiddleware.Authenticate)
	authProtected.HandleFunc("/logout", r.authHandler.Logout).Methods(http.MethodPost)

	// Admin routes (protected)
	admin := api.PathPrefix("/admin").Subrouter()
	admin.Use(r.authMiddleware.Authenticate)
	admin.HandleFunc("/appointments", r.adminHandler.GetAppointments).Methods(http.MethodGet)
	admin.HandleFunc("/appointments", r.adminHandler.ClearAppointments).Methods(http.MethodDelete)
	admin.HandleFunc("/availability", r.adminHandler.GetAvailability).Methods(http.MethodGet)

	// Add CORS middleware
	r.router.Use(r.corsMiddleware.Handle)

	return r.router
}

func (r *Router) healthCheck(w http.ResponseWriter, req *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status": "ok"}`))
}
