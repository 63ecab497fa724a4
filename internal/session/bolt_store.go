package session

import (
	"encoding/binary"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/Adda-Baaj/gamejolt-go/pkg/gamejolt"
	bolt "go.etcd.io/bbolt"
)

const (
	sessionBucket    = "sessions"
	metaBucket       = "meta"
	lastUserKey      = "last_username"
	expiryValueBytes = 8
)

// boltStore implements a Store backed by BoltDB. Values are the expiry as
// big-endian unix seconds followed by the token bytes.
type boltStore struct {
	db              *bolt.DB
	cleanupMu       sync.Mutex
	lastCleanup     atomic.Int64
	ttl             time.Duration
	cleanupInterval time.Duration
	now             func() time.Time
}

// openBolt initializes a BoltDB-backed Store.
func openBolt(path string, opts Options) (Store, error) {
	dir := filepath.Dir(path)
	if dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create session store directory: %w", err)
		}
	}

	db, err := bolt.Open(path, 0o600, &bolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, fmt.Errorf("open bbolt db: %w", err)
	}
	if err := db.Update(func(tx *bolt.Tx) error {
		for _, name := range []string{sessionBucket, metaBucket} {
			if _, err := tx.CreateBucketIfNotExists([]byte(name)); err != nil {
				return err
			}
		}
		return nil
	}); err != nil {
		db.Close()
		return nil, fmt.Errorf("init buckets: %w", err)
	}

	store := &boltStore{
		db:              db,
		ttl:             opts.TTL,
		cleanupInterval: opts.CleanupInterval,
		now:             time.Now,
	}
	store.lastCleanup.Store(store.now().Unix())
	return store, nil
}

// Close closes the BoltDB store.
func (b *boltStore) Close() error {
	if b == nil || b.db == nil {
		return nil
	}
	return b.db.Close()
}

// Get returns the live session for username. Expired entries are removed.
func (b *boltStore) Get(username string) (gamejolt.Session, error) {
	username = strings.TrimSpace(username)
	if username == "" {
		return gamejolt.Session{}, ErrNotFound
	}

	now := b.now()
	if err := b.maybeCleanupExpired(now); err != nil {
		return gamejolt.Session{}, err
	}

	var (
		out   gamejolt.Session
		found bool
	)
	err := b.db.Update(func(tx *bolt.Tx) error {
		bucket, err := buckets(tx)
		if err != nil {
			return err
		}

		key := []byte(username)
		value := bucket.Get(key)
		if value == nil {
			return nil
		}

		token, expiry, ok := decodeValue(value)
		if !ok || !expiry.After(now) {
			return bucket.Delete(key)
		}

		out, found = gamejolt.Session{Username: username, Token: token}, true
		return nil
	})
	if err != nil {
		return gamejolt.Session{}, err
	}
	if !found {
		return gamejolt.Session{}, ErrNotFound
	}
	return out, nil
}

// Put stores s and makes it the most recent session.
func (b *boltStore) Put(s gamejolt.Session) error {
	username := strings.TrimSpace(s.Username)
	if username == "" || s.Token == "" {
		return fmt.Errorf("session needs a username and token")
	}

	now := b.now()
	if err := b.maybeCleanupExpired(now); err != nil {
		return err
	}

	return b.db.Update(func(tx *bolt.Tx) error {
		bucket, err := buckets(tx)
		if err != nil {
			return err
		}
		if err := bucket.Put([]byte(username), encodeValue(s.Token, now.Add(b.ttl))); err != nil {
			return err
		}
		return tx.Bucket([]byte(metaBucket)).Put([]byte(lastUserKey), []byte(username))
	})
}

// Delete forgets the session for username.
func (b *boltStore) Delete(username string) error {
	username = strings.TrimSpace(username)
	if username == "" {
		return nil
	}
	return b.db.Update(func(tx *bolt.Tx) error {
		bucket, err := buckets(tx)
		if err != nil {
			return err
		}
		meta := tx.Bucket([]byte(metaBucket))
		if string(meta.Get([]byte(lastUserKey))) == username {
			if err := meta.Delete([]byte(lastUserKey)); err != nil {
				return err
			}
		}
		return bucket.Delete([]byte(username))
	})
}

// Last returns the most recently stored session.
func (b *boltStore) Last() (gamejolt.Session, error) {
	var username string
	if err := b.db.View(func(tx *bolt.Tx) error {
		meta := tx.Bucket([]byte(metaBucket))
		if meta == nil {
			return fmt.Errorf("meta bucket missing")
		}
		username = string(meta.Get([]byte(lastUserKey)))
		return nil
	}); err != nil {
		return gamejolt.Session{}, err
	}
	return b.Get(username)
}

// maybeCleanupExpired removes expired sessions on a fixed cadence to avoid unbounded growth.
func (b *boltStore) maybeCleanupExpired(now time.Time) error {
	last := time.Unix(b.lastCleanup.Load(), 0)
	if now.Sub(last) < b.cleanupInterval {
		return nil
	}

	b.cleanupMu.Lock()
	defer b.cleanupMu.Unlock()

	last = time.Unix(b.lastCleanup.Load(), 0)
	if now.Sub(last) < b.cleanupInterval {
		return nil
	}

	err := b.db.Update(func(tx *bolt.Tx) error {
		bucket, err := buckets(tx)
		if err != nil {
			return err
		}

		cursor := bucket.Cursor()
		for k, v := cursor.First(); k != nil; k, v = cursor.Next() {
			_, expiry, ok := decodeValue(v)
			if !ok || !expiry.After(now) {
				if err := cursor.Delete(); err != nil {
					return err
				}
			}
		}
		return nil
	})
	if err == nil {
		b.lastCleanup.Store(now.Unix())
	}
	return err
}

func buckets(tx *bolt.Tx) (*bolt.Bucket, error) {
	bucket := tx.Bucket([]byte(sessionBucket))
	if bucket == nil || tx.Bucket([]byte(metaBucket)) == nil {
		return nil, fmt.Errorf("session buckets missing")
	}
	return bucket, nil
}

func encodeValue(token string, expiry time.Time) []byte {
	buf := make([]byte, expiryValueBytes+len(token))
	binary.BigEndian.PutUint64(buf, uint64(expiry.Unix()))
	copy(buf[expiryValueBytes:], token)
	return buf
}

// decodeValue splits a stored value into token and expiry.
func decodeValue(value []byte) (string, time.Time, bool) {
	if len(value) <= expiryValueBytes {
		return "", time.Time{}, false
	}
	unix := int64(binary.BigEndian.Uint64(value[:expiryValueBytes]))
	if unix <= 0 {
		return "", time.Time{}, false
	}
	return string(value[expiryValueBytes:]), time.Unix(unix, 0), true
}
