// Package session keeps live visualizations for the HTTP server.
//
// Each session owns one initialized [viz.Graph] and the raster surface it
// draws on, and is addressed by a random UUID. Sessions expire after a
// period of inactivity; every successful lookup extends the deadline.
//
//	store := session.NewMemoryStore(30 * time.Minute)
//	sess, err := session.New(graph, raster)
//	store.Set(ctx, sess)
//
//	sess, err = store.Get(ctx, id)
//	if errors.Is(err, errors.ErrCodeSessionNotFound) {
//	    // unknown or expired
//	}
//	sess.Lock()
//	defer sess.Unlock()
//
// Sessions are process-local; nothing is persisted.
//
// [viz.Graph]: github.com/matzehuels/netcanvas/pkg/viz
package session

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/matzehuels/netcanvas/pkg/canvas"
	"github.com/matzehuels/netcanvas/pkg/errors"
	"github.com/matzehuels/netcanvas/pkg/viz"
)

// DefaultTTL is the default idle lifetime of a session.
const DefaultTTL = 30 * time.Minute

// Session is one live visualization. Lock it while handling events or
// reading the raster so that requests for the same session run one at a time.
type Session struct {
	mu sync.Mutex

	ID        string         `json:"id"`
	CreatedAt time.Time      `json:"created_at"`
	ExpiresAt time.Time      `json:"expires_at"`
	Graph     *viz.Graph     `json:"-"`
	Raster    *canvas.Raster `json:"-"`
}

// New creates a session for an initialized graph drawing onto raster.
// The expiry is set when the session is stored.
func New(g *viz.Graph, raster *canvas.Raster) (*Session, error) {
	if g == nil || raster == nil {
		return nil, errors.New(errors.ErrCodeInvalidInput, "session needs a graph and a raster")
	}
	return &Session{
		ID:        uuid.NewString(),
		CreatedAt: time.Now(),
		Graph:     g,
		Raster:    raster,
	}, nil
}

// Lock serializes access to the session.
func (s *Session) Lock() { s.mu.Lock() }

// Unlock releases the session.
func (s *Session) Unlock() { s.mu.Unlock() }

// IsExpired returns true if the session has expired.
func (s *Session) IsExpired() bool {
	return !s.ExpiresAt.IsZero() && time.Now().After(s.ExpiresAt)
}

// Store is the interface for session storage backends.
type Store interface {
	// Get returns the session with id and extends its lifetime. Missing and
	// expired sessions return an ErrCodeSessionNotFound error.
	Get(ctx context.Context, id string) (*Session, error)

	// Set stores a session and starts its lifetime.
	Set(ctx context.Context, s *Session) error

	// Delete removes a session and destroys its visualization.
	Delete(ctx context.Context, id string) error

	// Cleanup removes expired sessions and returns how many were removed.
	Cleanup(ctx context.Context) (int, error)

	// Len returns the number of stored sessions, expired or not.
	Len() int
}

// ValidID reports whether id is a well-formed session ID.
func ValidID(id string) bool {
	_, err := uuid.Parse(id)
	return err == nil
}
