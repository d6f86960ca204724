// Package boltstore implements products.Store on a bbolt file.
//
// Records live in the "products" bucket under big-endian sequence keys, so a
// cursor walk returns them in insertion order. The "product_ids" bucket maps
// product IDs to those keys.
package boltstore

import (
	"context"
	"encoding/binary"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"go.etcd.io/bbolt"

	"github.com/Simplici0/precificalc/internal/products"
)

var (
	productsBucket = []byte("products")
	idsBucket      = []byte("product_ids")
)

var errDuplicateID = errors.New("product id already exists")

// Store is a products.Store backed by bbolt.
type Store struct {
	db *bbolt.DB
}

var _ products.Store = (*Store)(nil)

// Open opens or creates the bbolt file at path.
func Open(path string) (*Store, error) {
	db, err := bbolt.Open(path, 0o600, &bbolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, fmt.Errorf("open bolt database: %w", err)
	}

	err = db.Update(func(tx *bbolt.Tx) error {
		for _, name := range [][]byte{productsBucket, idsBucket} {
			if _, err := tx.CreateBucketIfNotExists(name); err != nil {
				return fmt.Errorf("create bucket %s: %w", name, err)
			}
		}
		return nil
	})
	if err != nil {
		db.Close()
		return nil, err
	}

	return &Store{db: db}, nil
}

// Close releases the file lock.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) Append(ctx context.Context, p products.Product) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	data, err := json.Marshal(p)
	if err != nil {
		return fmt.Errorf("encode product: %w", err)
	}

	return s.db.Update(func(tx *bbolt.Tx) error {
		ids := tx.Bucket(idsBucket)
		if ids.Get([]byte(p.ID)) != nil {
			return errDuplicateID
		}

		b := tx.Bucket(productsBucket)
		seq, err := b.NextSequence()
		if err != nil {
			return fmt.Errorf("next product sequence: %w", err)
		}

		key := seqKey(seq)
		if err := b.Put(key, data); err != nil {
			return fmt.Errorf("put product: %w", err)
		}
		return ids.Put([]byte(p.ID), key)
	})
}

func (s *Store) Update(ctx context.Context, p products.Product) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	data, err := json.Marshal(p)
	if err != nil {
		return fmt.Errorf("encode product: %w", err)
	}

	return s.db.Update(func(tx *bbolt.Tx) error {
		key := tx.Bucket(idsBucket).Get([]byte(p.ID))
		if key == nil {
			return products.ErrNotFound
		}
		if err := tx.Bucket(productsBucket).Put(key, data); err != nil {
			return fmt.Errorf("put product: %w", err)
		}
		return nil
	})
}

func (s *Store) Delete(ctx context.Context, id string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	return s.db.Update(func(tx *bbolt.Tx) error {
		ids := tx.Bucket(idsBucket)
		key := ids.Get([]byte(id))
		if key == nil {
			return products.ErrNotFound
		}
		if err := tx.Bucket(productsBucket).Delete(key); err != nil {
			return fmt.Errorf("delete product: %w", err)
		}
		return ids.Delete([]byte(id))
	})
}

func (s *Store) Get(ctx context.Context, id string) (products.Product, error) {
	if err := ctx.Err(); err != nil {
		return products.Product{}, err
	}

	var p products.Product
	err := s.db.View(func(tx *bbolt.Tx) error {
		key := tx.Bucket(idsBucket).Get([]byte(id))
		if key == nil {
			return products.ErrNotFound
		}
		data := tx.Bucket(productsBucket).Get(key)
		if data == nil {
			return products.ErrNotFound
		}
		return json.Unmarshal(data, &p)
	})
	if err != nil {
		return products.Product{}, err
	}
	return p, nil
}

func (s *Store) List(ctx context.Context) ([]products.Product, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	list := make([]products.Product, 0)
	err := s.db.View(func(tx *bbolt.Tx) error {
		return tx.Bucket(productsBucket).ForEach(func(_, v []byte) error {
			var p products.Product
			if err := json.Unmarshal(v, &p); err != nil {
				return fmt.Errorf("decode product: %w", err)
			}
			list = append(list, p)
			return nil
		})
	})
	if err != nil {
		return nil, err
	}
	return list, nil
}

func seqKey(seq uint64) []byte {
	key := make([]byte, 8)
	binary.BigEndian.PutUint64(key, seq)
	return key
}
