// Package store caches recently opened conversations locally so the recents
// picker works before the backend round-trip completes. Only titles and ids
// are cached; transcripts always come from the backend.
package store

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	bolt "go.etcd.io/bbolt"

	"github.com/Ghost-Developmentx/cashly-frontend-sub000/internal/types"
)

var (
	bucketRecents = []byte("recent_conversations")

	ErrNotFound = errors.New("conversation not found")
)

type RecentsStore interface {
	List(ctx context.Context) ([]*types.Conversation, error)
	Upsert(ctx context.Context, conv *types.Conversation) error
	Delete(ctx context.Context, id string) error
	Clear(ctx context.Context) error
	Close() error
}

type BboltRecentsStore struct {
	db *bolt.DB
}

func OpenRecentsStore(path string) (*BboltRecentsStore, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return nil, errors.New("recents db path is required")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return nil, err
	}
	db, err := bolt.Open(path, 0o600, &bolt.Options{Timeout: 2 * time.Second})
	if err != nil {
		return nil, err
	}
	err = db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(bucketRecents)
		return err
	})
	if err != nil {
		_ = db.Close()
		return nil, err
	}
	return &BboltRecentsStore{db: db}, nil
}

func (s *BboltRecentsStore) List(ctx context.Context) ([]*types.Conversation, error) {
	var out []*types.Conversation
	err := s.db.View(func(tx *bolt.Tx) error {
		bucket := tx.Bucket(bucketRecents)
		if bucket == nil {
			return nil
		}
		return bucket.ForEach(func(_, value []byte) error {
			var conv types.Conversation
			if err := json.Unmarshal(value, &conv); err != nil {
				return err
			}
			conv.Messages = nil
			out = append(out, &conv)
			return nil
		})
	})
	if err != nil {
		return nil, err
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].UpdatedAt > out[j].UpdatedAt
	})
	return out, nil
}

func (s *BboltRecentsStore) Upsert(ctx context.Context, conv *types.Conversation) error {
	if conv == nil || strings.TrimSpace(conv.ID) == "" {
		return errors.New("conversation id is required")
	}
	record := *conv
	record.Messages = nil
	if record.UpdatedAt == 0 {
		record.UpdatedAt = time.Now().Unix()
	}
	data, err := json.Marshal(&record)
	if err != nil {
		return err
	}
	return s.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(bucketRecents).Put([]byte(record.ID), data)
	})
}

func (s *BboltRecentsStore) Delete(ctx context.Context, id string) error {
	return s.db.Update(func(tx *bolt.Tx) error {
		bucket := tx.Bucket(bucketRecents)
		if bucket.Get([]byte(id)) == nil {
			return ErrNotFound
		}
		return bucket.Delete([]byte(id))
	})
}

func (s *BboltRecentsStore) Clear(ctx context.Context) error {
	return s.db.Update(func(tx *bolt.Tx) error {
		if err := tx.DeleteBucket(bucketRecents); err != nil {
			return err
		}
		_, err := tx.CreateBucket(bucketRecents)
		return err
	})
}

func (s *BboltRecentsStore) Close() error {
	return s.db.Close()
}
