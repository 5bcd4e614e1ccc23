package bunt

import (
	"context"
	"errors"
	"fmt"

	"github.com/tidwall/buntdb"
)

// Store is a file-backed store on the local device. Path ":memory:" keeps
// everything in memory.
type Store struct {
	db *buntdb.DB
}

func Open(path string) (*Store, error) {
	db, err := buntdb.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open buntdb %q: %w", path, err)
	}

	var cfg buntdb.Config
	if err := db.ReadConfig(&cfg); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("read buntdb config: %w", err)
	}
	// every cart write must be on disk before the mutation returns
	cfg.SyncPolicy = buntdb.Always
	if err := db.SetConfig(cfg); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("set buntdb config: %w", err)
	}

	return &Store{db: db}, nil
}

func (s *Store) Get(ctx context.Context, key string) (string, bool, error) {
	if err := ctx.Err(); err != nil {
		return "", false, err
	}

	var (
		val string
		ok  bool
	)
	err := s.db.View(func(tx *buntdb.Tx) error {
		v, err := tx.Get(key)
		if errors.Is(err, buntdb.ErrNotFound) {
			return nil
		}
		if err != nil {
			return err
		}
		val, ok = v, true
		return nil
	})
	if err != nil {
		return "", false, err
	}
	return val, ok, nil
}

func (s *Store) Set(ctx context.Context, key, value string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return s.db.Update(func(tx *buntdb.Tx) error {
		_, _, err := tx.Set(key, value, nil)
		return err
	})
}

func (s *Store) Ping(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return s.db.View(func(tx *buntdb.Tx) error { return nil })
}

func (s *Store) Close() error {
	return s.db.Close()
}
