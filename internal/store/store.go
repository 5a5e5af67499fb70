// Package store exposes narrow, collection-shaped interfaces over the
// document store so handlers never depend on the database driver directly.
package store

import (
	"context"
	"errors"

	"github.com/example/pigeon/internal/models"
)

// ErrNotFound is returned when no document exists at the requested key.
var ErrNotFound = errors.New("document not found")

// ErrDuplicateKey is returned by Create when the key is already taken.
var ErrDuplicateKey = errors.New("duplicate document key")

// Users is the users collection.
type Users interface {
	// Create writes a new user document; fails with ErrDuplicateKey if the
	// uid is already present.
	Create(ctx context.Context, user *models.User) error
	// Get returns the user at uid, or ErrNotFound.
	Get(ctx context.Context, uid string) (*models.User, error)
	// Update mutates the named fields of an existing user; ErrNotFound if
	// the uid is absent.
	Update(ctx context.Context, uid string, fields map[string]interface{}) error
	// FindByFirstName returns all users whose first name equals name.
	FindByFirstName(ctx context.Context, name string) ([]models.User, error)
	// FindByLastName returns all users whose last name equals name.
	FindByLastName(ctx context.Context, name string) ([]models.User, error)
	// FindByPhone returns the user with the given phone number, or ErrNotFound.
	FindByPhone(ctx context.Context, phone string) (*models.User, error)
}

// Messages is the messages collection.
type Messages interface {
	// Create writes a new message document; fails with ErrDuplicateKey if
	// the mid is already present.
	Create(ctx context.Context, message *models.Message) error
	// Get returns the message at mid, or ErrNotFound.
	Get(ctx context.Context, mid string) (*models.Message, error)
	// Delete removes the message at mid.
	Delete(ctx context.Context, mid string) error
	// Between returns all messages sent from sender to receiver.
	Between(ctx context.Context, sender, receiver string) ([]models.Message, error)
}
