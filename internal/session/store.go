package session

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/Adda-Baaj/gamejolt-go/pkg/gamejolt"
)

// Package session remembers game sessions between command invocations.

// ErrNotFound is returned when no live session is stored for a user.
var ErrNotFound = errors.New("session not found")

// Store keeps {username, token} pairs until they expire.
type Store interface {
	Close() error
	Get(username string) (gamejolt.Session, error)
	Put(s gamejolt.Session) error
	Delete(username string) error
	// Last returns the most recently stored session that is still live.
	Last() (gamejolt.Session, error)
}

// Options controls retention characteristics for concrete store implementations.
type Options struct {
	TTL             time.Duration
	CleanupInterval time.Duration
}

const (
	defaultTTL             = 7 * 24 * time.Hour
	defaultCleanupInterval = 12 * time.Hour
)

// NewStore creates the configured session backend.
func NewStore(typ, path string, opts Options) (Store, error) {
	typ = strings.TrimSpace(strings.ToLower(typ))
	opts = normalizeOptions(opts)

	switch typ {
	case "", "none", "disabled":
		return noopStore{}, nil
	case "bbolt":
		if strings.TrimSpace(path) == "" {
			return nil, fmt.Errorf("bbolt session store requires a path")
		}
		return openBolt(path, opts)
	default:
		return nil, fmt.Errorf("unsupported session store type %q", typ)
	}
}

func normalizeOptions(opts Options) Options {
	if opts.TTL <= 0 {
		opts.TTL = defaultTTL
	}
	if opts.CleanupInterval <= 0 {
		opts.CleanupInterval = defaultCleanupInterval
	}
	return opts
}

type noopStore struct{}

func (noopStore) Close() error                         { return nil }
func (noopStore) Get(string) (gamejolt.Session, error) { return gamejolt.Session{}, ErrNotFound }
func (noopStore) Put(gamejolt.Session) error           { return nil }
func (noopStore) Delete(string) error                  { return nil }
func (noopStore) Last() (gamejolt.Session, error)      { return gamejolt.Session{}, ErrNotFound }
