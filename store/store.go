// Package store is the durable key/value layer: a single embedded bbolt
// environment holding the twelve-plus named sub-stores a node's logs live
// in (see names.go), and the four sub-store access patterns spec.md §4.3
// defines over them (ValSub, IoSetSub, OnSub, IoDupSub).
//
// Every write that must land atomically (a Kever.update commit, an escrow
// drain step) runs inside a single bbolt write transaction, giving the
// all-or-nothing EVT+SIGS+DTS+KE+FE commit the concurrency model requires.
package store

import (
	"fmt"

	"github.com/datatrails/go-datatrails-common/logger"
	"go.etcd.io/bbolt"
)

// Store owns the bbolt environment and its named buckets.
type Store struct {
	db  *bbolt.DB
	log logger.Logger
}

// Open creates or opens the bbolt file at path and ensures every named
// sub-store bucket exists.
func Open(path string, withOpts ...Option) (*Store, error) {
	opts := newDefaultOptions()
	for _, o := range withOpts {
		o(&opts)
	}

	db, err := bbolt.Open(path, 0o600, &bbolt.Options{Timeout: opts.timeout})
	if err != nil {
		return nil, fmt.Errorf("store: open %s: %w", path, err)
	}
	db.NoSync = opts.noSync

	s := &Store{db: db, log: opts.log}
	if err := s.db.Update(func(tx *bbolt.Tx) error {
		for _, name := range bucketNames {
			if _, err := tx.CreateBucketIfNotExists([]byte(name)); err != nil {
				return fmt.Errorf("%w: %s: %w", ErrBucketMissing, name, err)
			}
		}
		return nil
	}); err != nil {
		_ = db.Close()
		return nil, err
	}
	s.log.Infof("store: opened %s with %d buckets", path, len(bucketNames))
	return s, nil
}

// Close releases the database file.
func (s *Store) Close() error {
	s.log.Debugf("store: closing")
	return s.db.Close()
}

// Update runs fn in a single read-write transaction: every sub-store
// access fn performs lands together or not at all.
func (s *Store) Update(fn func(tx *Tx) error) error {
	return s.db.Update(func(btx *bbolt.Tx) error {
		return fn(&Tx{btx: btx})
	})
}

// View runs fn in a read-only transaction, concurrent with any in-flight
// writer per bbolt's MVCC model.
func (s *Store) View(fn func(tx *Tx) error) error {
	return s.db.View(func(btx *bbolt.Tx) error {
		return fn(&Tx{btx: btx})
	})
}

// Log exposes the component logger, set at Open via WithLogger or
// defaulted to logger.Sugar.WithServiceName("store").
func (s *Store) Log() logger.Logger {
	return s.log
}

// Tx is a single bbolt transaction scoped to the named sub-stores it is
// asked for. Callers obtain the sub-store view they need (ValSub, IoSetSub,
// OnSub, IoDupSub) via the accessor methods below.
type Tx struct {
	btx *bbolt.Tx
}

func (tx *Tx) bucket(name string) (*bbolt.Bucket, error) {
	b := tx.btx.Bucket([]byte(name))
	if b == nil {
		return nil, fmt.Errorf("%w: %s", ErrBucketMissing, name)
	}
	return b, nil
}

// Val returns a ValSub bound to the named bucket.
func (tx *Tx) Val(name string) (ValSub, error) {
	b, err := tx.bucket(name)
	if err != nil {
		return ValSub{}, err
	}
	return ValSub{b: b}, nil
}

// IoSet returns an IoSetSub bound to the named bucket.
func (tx *Tx) IoSet(name string) (IoSetSub, error) {
	b, err := tx.bucket(name)
	if err != nil {
		return IoSetSub{}, err
	}
	return IoSetSub{b: b}, nil
}

// On returns an OnSub bound to the named bucket.
func (tx *Tx) On(name string) (OnSub, error) {
	b, err := tx.bucket(name)
	if err != nil {
		return OnSub{}, err
	}
	return OnSub{b: b}, nil
}

// IoDup returns an IoDupSub bound to the named bucket.
func (tx *Tx) IoDup(name string) (IoDupSub, error) {
	b, err := tx.bucket(name)
	if err != nil {
		return IoDupSub{}, err
	}
	return IoDupSub{b: b}, nil
}

// Writable reports whether tx can mutate its buckets.
func (tx *Tx) Writable() bool {
	return tx.btx.Writable()
}
