package api

import (
	"net/http"

	"github.com/gorilla/mux"

	"reelhouse/handlers"
)

// corsMiddleware handles CORS for API routes
func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "*")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// Register mounts API endpoints onto the provided router.
func Register(
	r *mux.Router,
	feedHandler *handlers.FeedHandler,
	publishHandler *handlers.PublishHandler,
	rokuConfigHandler *handlers.RokuConfigHandler,
	analyticsHandler *handlers.AnalyticsHandler,
	submissionsHandler *handlers.SubmissionsHandler,
	eventsHandler *handlers.EventsHandler,
	statusHandler *handlers.StatusHandler,
	adminSecretHash string,
) {
	api := r.PathPrefix("/api").Subrouter()
	api.Use(corsMiddleware)

	// Device-facing routes (unauthenticated; the set-top client never
	// writes anything but playback beacons).
	api.HandleFunc("/roku/feed", feedHandler.GetFeed).Methods(http.MethodGet)
	api.HandleFunc("/roku/movies/{key}", feedHandler.GetMovie).Methods(http.MethodGet)
	api.HandleFunc("/analytics/plays", analyticsHandler.RecordPlay).Methods(http.MethodPost)
	api.HandleFunc("/status", statusHandler.GetStatus).Methods(http.MethodGet)

	// Editor session event stream (advisory refresh hints).
	api.HandleFunc("/events", eventsHandler.Connect).Methods(http.MethodGet)

	// Admin routes behind the shared editor secret.
	admin := api.PathPrefix("/admin").Subrouter()
	admin.Use(handlers.AdminAuth(adminSecretHash))
	admin.HandleFunc("/publish", publishHandler.Publish).Methods(http.MethodPost)
	admin.HandleFunc("/roku-config", rokuConfigHandler.GetConfig).Methods(http.MethodGet)
	admin.HandleFunc("/roku-config", rokuConfigHandler.PutConfig).Methods(http.MethodPut)
	admin.HandleFunc("/submissions", submissionsHandler.List).Methods(http.MethodGet)
	admin.HandleFunc("/submissions", submissionsHandler.Create).Methods(http.MethodPost)
	admin.HandleFunc("/submissions/{id}/status", submissionsHandler.SetStatus).Methods(http.MethodPut)
}
