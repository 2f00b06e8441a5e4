// Package store defines the persistence contract shared by every backend:
// a collection is always loaded whole and replaced whole.
package store

import (
	"context"
	"errors"
	"fmt"
	"sync"
)

// Collection identifies a logical list of records
type Collection string

// Collections known by the portal
const (
	Denuncias Collection = "denuncias"
	Cameras   Collection = "cameras"
	Noticias  Collection = "noticias"
	Usuarios  Collection = "usuarios"
)

// ErrUnknownCollection is returned when a collection name is not registered
var ErrUnknownCollection = errors.New("unknown collection")

// Store loads and replaces entire collections.
// Load decodes the stored list into dest (a pointer to a slice). A collection that was
// never written decodes as an empty list.
type Store interface {
	Load(ctx context.Context, collection Collection, dest any) error
	Replace(ctx context.Context, collection Collection, items any) error
	Close(ctx context.Context) error
}

// Identifiable is implemented by every stored entity
type Identifiable interface {
	GetId() int
}

// Validate checks the collection name
func (c Collection) Validate() error {
	switch c {
	case Denuncias, Cameras, Noticias, Usuarios:
		return nil
	}
	return fmt.Errorf("%w: %q", ErrUnknownCollection, string(c))
}

// LoadAll loads a collection into a fresh slice, never nil
func LoadAll[T any](ctx context.Context, s Store, collection Collection) ([]T, error) {
	items := make([]T, 0)
	if err := s.Load(ctx, collection, &items); err != nil {
		return nil, fmt.Errorf("loading %s: %w", collection, err)
	}
	if items == nil {
		items = make([]T, 0)
	}
	return items, nil
}

// NextID returns max(id)+1, starting at 1
func NextID[T Identifiable](items []T) int {
	next := 1
	for _, item := range items {
		if item.GetId() >= next {
			next = item.GetId() + 1
		}
	}
	return next
}

// IndexOf returns the position of the record with the given id, or -1
func IndexOf[T Identifiable](items []T, id int) int {
	for i, item := range items {
		if item.GetId() == id {
			return i
		}
	}
	return -1
}

// ErrNotFound is returned by mutations that target a missing id
var ErrNotFound = errors.New("record not found")

var (
	mutateMu    sync.Mutex
	mutateLocks = map[Collection]*sync.Mutex{}
)

func collectionLock(c Collection) *sync.Mutex {
	mutateMu.Lock()
	defer mutateMu.Unlock()
	l, ok := mutateLocks[c]
	if !ok {
		l = &sync.Mutex{}
		mutateLocks[c] = l
	}
	return l
}

// Update loads the collection, applies fn and replaces it with the result.
// Calls are serialized per collection inside this process; across processes the
// last writer wins. When fn returns an error nothing is written.
func Update[T any](ctx context.Context, s Store, collection Collection, fn func(items []T) ([]T, error)) error {
	l := collectionLock(collection)
	l.Lock()
	defer l.Unlock()

	items, err := LoadAll[T](ctx, s, collection)
	if err != nil {
		return err
	}
	items, err = fn(items)
	if err != nil {
		return err
	}
	if items == nil {
		items = make([]T, 0)
	}
	if err := s.Replace(ctx, collection, items); err != nil {
		return fmt.Errorf("replacing %s: %w", collection, err)
	}
	return nil
}
