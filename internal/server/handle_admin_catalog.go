package server

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/milongahq/tangotune/internal/catalog"
)

// PerformerItem is the admin view of one performer.
type PerformerItem struct {
	Name   string   `json:"name"`
	Tags   []string `json:"tags"`
	Active bool     `json:"active"`
	Level  int      `json:"level"`
}

// PerformerUpdateRequest toggles a performer's play eligibility.
type PerformerUpdateRequest struct {
	Active bool `json:"active"`
	Level  int  `json:"level"`
}

// TrackItem is the admin view of one track.
type TrackItem struct {
	ID            string   `json:"id"`
	Title         string   `json:"title"`
	PerformerName string   `json:"performerName"`
	AudioRef      string   `json:"audioRef"`
	Tags          []string `json:"tags"`
}

// ImportRequest carries a raw DJ library export plus the performer master
// list to normalize it against.
type ImportRequest struct {
	Songs  []catalog.RawSong         `json:"songs"`
	Master []catalog.MasterPerformer `json:"master"`
}

// ImportResponse summarizes an import run.
type ImportResponse struct {
	Tracks     int      `json:"tracks"`
	Performers int      `json:"performers"`
	Skipped    int      `json:"skipped"`
	Unmatched  []string `json:"unmatched"`
}

func handleAdminListPerformers(store Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		performers, err := store.ListPerformers(r.Context())
		if err != nil {
			writeError(w, http.StatusInternalServerError, "internal error")
			return
		}

		items := make([]PerformerItem, 0, len(performers))
		for _, p := range performers {
			items = append(items, PerformerItem{
				Name:   p.Name,
				Tags:   p.Tags,
				Active: p.Active,
				Level:  p.Level,
			})
		}
		writeJSON(w, http.StatusOK, items)
	}
}

func handleAdminUpdatePerformer(store Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		name := chi.URLParam(r, "name")

		var req PerformerUpdateRequest
		if err := readJSON(r, &req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}
		if req.Level < 0 {
			writeError(w, http.StatusBadRequest, "level must not be negative")
			return
		}

		err := store.UpdatePerformer(r.Context(), name, req.Active, req.Level)
		if errors.Is(err, ErrNotFound) {
			writeError(w, http.StatusNotFound, "performer not found")
			return
		}
		if err != nil {
			writeError(w, http.StatusInternalServerError, "internal error")
			return
		}

		writeJSON(w, http.StatusOK, PerformerItem{
			Name:   name,
			Active: req.Active,
			Level:  req.Level,
		})
	}
}

func handleAdminListTracks(store Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		tracks, err := store.ListTracks(r.Context())
		if err != nil {
			writeError(w, http.StatusInternalServerError, "internal error")
			return
		}

		items := make([]TrackItem, 0, len(tracks))
		for _, t := range tracks {
			items = append(items, TrackItem{
				ID:            t.ID,
				Title:         t.Title,
				PerformerName: t.PerformerName,
				AudioRef:      t.AudioRef,
				Tags:          t.Tags,
			})
		}
		writeJSON(w, http.StatusOK, items)
	}
}

func handleAdminImportCatalog(store Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req ImportRequest
		if err := readJSON(r, &req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}
		if len(req.Songs) == 0 || len(req.Master) == 0 {
			writeError(w, http.StatusBadRequest, "songs and master are required")
			return
		}

		res := catalog.Import(req.Songs, req.Master)
		if len(res.Tracks) == 0 {
			writeError(w, http.StatusBadRequest, "no importable songs in library")
			return
		}

		if err := store.ReplaceCatalog(r.Context(), res.Tracks, res.Performers); err != nil {
			writeError(w, http.StatusInternalServerError, "internal error")
			return
		}

		resp := ImportResponse{
			Tracks:     len(res.Tracks),
			Performers: len(res.Performers),
			Skipped:    res.Skipped,
			Unmatched:  res.Unmatched,
		}
		if resp.Unmatched == nil {
			resp.Unmatched = []string{}
		}
		writeJSON(w, http.StatusOK, resp)
	}
}
