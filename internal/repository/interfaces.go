package repository

import (
	"context"
	"errors"
)

// ErrNotFound is returned when a key has no stored entry.
var ErrNotFound = errors.New("not found")

// Storage keys for the tracker's durable state.
const (
	KeyProjects         = "projects"
	KeyCurrentProjectID = "currentProjectId"
	KeyProjectLabel     = "projectLabel"
)

// KVRepo is a string key/value store, the durable mirror of the project store.
type KVRepo interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
	Delete(ctx context.Context, key string) error
	Keys(ctx context.Context) ([]string, error)
	Clear(ctx context.Context) error
}
