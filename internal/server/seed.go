package server

import (
	"context"
	"log/slog"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/milongahq/tangotune/internal/catalog"
)

// SeedDemo bootstraps the first admin account and a small demo catalog.
// Idempotent: each piece is only created when its table is empty.
func SeedDemo(ctx context.Context, logger *slog.Logger, store Store, adminEmail, adminPassword string) error {
	count, err := store.CountAdmins(ctx)
	if err != nil {
		return err
	}
	if count == 0 && adminEmail != "" && adminPassword != "" {
		hash, err := bcrypt.GenerateFromPassword([]byte(adminPassword), bcrypt.DefaultCost)
		if err != nil {
			return err
		}
		if _, err := store.CreateAdmin(ctx, adminEmail, string(hash)); err != nil {
			return err
		}
		logger.Info("bootstrap admin created", "email", adminEmail)
	}

	tracks, err := store.CountTracks(ctx)
	if err != nil {
		return err
	}
	if tracks > 0 {
		return nil
	}

	demoTracks, demoPerformers := demoCatalog()
	if err := store.ReplaceCatalog(ctx, demoTracks, demoPerformers); err != nil {
		return err
	}

	logger.Info("demo catalog seeded", "tracks", len(demoTracks), "performers", len(demoPerformers))
	return nil
}

func demoCatalog() ([]catalog.Track, []catalog.Performer) {
	performers := []catalog.Performer{
		{Name: "Juan D'Arienzo", Tags: []string{"rhythmic"}, Active: true, Level: 1},
		{Name: "Carlos Di Sarli", Tags: []string{"lyrical"}, Active: true, Level: 1},
		{Name: "Anibal Troilo", Tags: []string{"lyrical"}, Active: true, Level: 1},
		{Name: "Osvaldo Pugliese", Tags: []string{"dramatic"}, Active: true, Level: 1},
		{Name: "Francisco Canaro", Tags: []string{"rhythmic", "old guard"}, Active: true, Level: 1},
		{Name: "Ricardo Tanturi", Tags: []string{"rhythmic"}, Active: true, Level: 2},
		{Name: "Miguel Calo", Tags: []string{"lyrical"}, Active: true, Level: 2},
		{Name: "Rodolfo Biagi", Tags: []string{"rhythmic"}, Active: true, Level: 2},
	}

	songs := []struct {
		title     string
		performer string
		tags      []string
	}{
		{"La Cumparsita", "Juan D'Arienzo", []string{"tango"}},
		{"El Flete", "Juan D'Arienzo", []string{"tango"}},
		{"Bahia Blanca", "Carlos Di Sarli", []string{"tango"}},
		{"A la Gran Muneca", "Carlos Di Sarli", []string{"tango"}},
		{"Quejas de Bandoneon", "Anibal Troilo", []string{"tango"}},
		{"Cachirulo", "Anibal Troilo", []string{"tango"}},
		{"La Yumba", "Osvaldo Pugliese", []string{"tango"}},
		{"Recuerdo", "Osvaldo Pugliese", []string{"tango"}},
		{"Poema", "Francisco Canaro", []string{"tango"}},
		{"Invierno", "Francisco Canaro", []string{"tango"}},
		{"Una Emocion", "Ricardo Tanturi", []string{"tango"}},
		{"Al Compas del Corazon", "Miguel Calo", []string{"tango"}},
		{"Racing Club", "Rodolfo Biagi", []string{"tango"}},
	}

	tracks := make([]catalog.Track, 0, len(songs))
	for _, s := range songs {
		tracks = append(tracks, catalog.Track{
			ID:            uuid.NewString(),
			Title:         s.title,
			PerformerName: s.performer,
			AudioRef:      "/audio/demo/" + uuid.NewString() + ".mp3",
			Tags:          s.tags,
		})
	}
	return tracks, performers
}
