package server

import (
	"context"
	"errors"

	"github.com/milongahq/tangotune/internal/catalog"
)

var ErrNotFound = errors.New("not found")

// Store is the persistence surface the handlers need: the song catalog plus
// admin accounts and their sessions. Round and session state never touches
// the store; it lives in memory for the life of a play session.
type Store interface {
	LoadCatalog(ctx context.Context) ([]catalog.Track, []catalog.Performer, error)
	ReplaceCatalog(ctx context.Context, tracks []catalog.Track, performers []catalog.Performer) error
	ListPerformers(ctx context.Context) ([]catalog.Performer, error)
	UpdatePerformer(ctx context.Context, name string, active bool, level int) error
	ListTracks(ctx context.Context) ([]catalog.Track, error)
	CountTracks(ctx context.Context) (int, error)

	AdminByEmail(ctx context.Context, email string) (adminID, passwordHash string, err error)
	CreateAdmin(ctx context.Context, email, passwordHash string) (adminID string, err error)
	CountAdmins(ctx context.Context) (int, error)
	CreateAdminSession(ctx context.Context, adminID string) (sessionID string, err error)
	DeleteAdminSession(ctx context.Context, sessionID string) error
	AdminFromSession(ctx context.Context, sessionID string) (adminSession, error)
}
