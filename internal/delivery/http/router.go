package http

import (
	"net/http"

	httpSwagger "github.com/swaggo/http-swagger"

	"neargo/internal/delivery/http/controllers"
)

// NewRouter initializes the HTTP router with all application routes
func NewRouter(discoverController *controllers.DiscoverController, reserveController *controllers.ReserveController) *http.ServeMux {
	mux := http.NewServeMux()

	// Discovery
	mux.HandleFunc("GET /events", discoverController.Search)

	// Reservations
	mux.HandleFunc("POST /reserve", reserveController.Reserve)
	mux.HandleFunc("POST /holds/{holdID}/release", reserveController.Release)

	// Health
	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	// Swagger
	mux.Handle("/swagger/", httpSwagger.WrapHandler)

	return mux
}
