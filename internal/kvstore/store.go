// ABOUTME: Interface definition for the local durable key-value store.
// ABOUTME: Defines the get/set/delete contract shared by the SQLite and memory backends.
package kvstore

import "errors"

// ErrNotFound is returned by Get when the key has never been set or was deleted.
var ErrNotFound = errors.New("kvstore: key not found")

// Store defines string key-value persistence.
type Store interface {
	// Get returns the value stored under key, or ErrNotFound.
	Get(key string) (string, error)

	// Set stores value under key, replacing any previous value.
	Set(key, value string) error

	// Delete removes key. Deleting an absent key is not an error.
	Delete(key string) error

	// Close releases any resources held by the store.
	Close() error
}
