package server

import (
	"database/sql"
	"log/slog"
	"os"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/swaggest/swgui/v5emb"
)

func addRoutes(r chi.Router, logger *slog.Logger, store Store, sessions *SessionRegistry, broker *Broker, db *sql.DB, mediaReadyTimeout time.Duration, maxPerformerLevel int, spaDir string) {
	r.Get("/openapi.json", handleOpenAPI())
	r.Mount("/docs", v5emb.New("TangoTune API", "/openapi.json", "/docs"))
	r.Get("/healthz", handleHealth(logger, db))

	deps := sessionDeps{
		store:             store,
		sessions:          sessions,
		broker:            broker,
		mediaReadyTimeout: mediaReadyTimeout,
		maxPerformerLevel: maxPerformerLevel,
	}

	// Player routes — intents over REST, state back over SSE or WS.
	r.Route("/api/session", func(r chi.Router) {
		r.Post("/", handleSessionCreate(deps))
		r.Delete("/", handleSessionDelete(sessions))
		r.Get("/state", handleSessionState(sessions))
		r.Post("/configure", handleConfigure(sessions))
		r.Post("/playback", handlePlayback(sessions))
		r.Post("/guess", handleGuess(sessions))
		r.Post("/advance", handleAdvance(sessions))
		r.Post("/media/ready", handleMediaReady(sessions))
		r.Get("/events", handleEvents(sessions, broker))
		r.Get("/ws", handleWS(logger, sessions, broker))
	})

	r.Route("/api/admin", func(r chi.Router) {
		r.Post("/login", handleAdminLogin(store))
		r.Post("/logout", handleAdminLogout(store))
		r.Get("/me", handleAdminMe(store))

		// Catalog management, behind the session cookie.
		r.Group(func(r chi.Router) {
			r.Use(adminAuthMiddleware(store))
			r.Get("/performers", handleAdminListPerformers(store))
			r.Put("/performers/{name}", handleAdminUpdatePerformer(store))
			r.Get("/tracks", handleAdminListTracks(store))
			r.Post("/catalog/import", handleAdminImportCatalog(store))
		})
	})

	if spaDir != "" {
		if info, err := os.Stat(spaDir); err == nil && info.IsDir() {
			logger.Info("serving SPA", "dir", spaDir)
			r.NotFound(handleSPA(spaDir))
		}
	}
}
