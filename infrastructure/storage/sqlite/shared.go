// ABOUTME: Process-wide shared store handle with guarded lazy initialization
// ABOUTME: Double-checked so concurrent first calls never open duplicate pools

package sqlite

import "sync"

var (
	sharedMu sync.RWMutex
	shared   *Client
)

// Shared returns the process-wide store handle, opening it on first use.
// A failed open leaves the slot empty so a later call can retry. The handle
// is only ever reached through the ArticleStorage interface.
func Shared(filePath string) (*Client, error) {
	sharedMu.RLock()
	c := shared
	sharedMu.RUnlock()
	if c != nil {
		return c, nil
	}

	sharedMu.Lock()
	defer sharedMu.Unlock()

	// Re-check: another caller may have won the race while we waited.
	if shared != nil {
		return shared, nil
	}

	c, err := NewClient(filePath)
	if err != nil {
		return nil, err
	}

	shared = c
	return shared, nil
}

// ResetShared closes and forgets the shared handle. Intended for tests.
func ResetShared() {
	sharedMu.Lock()
	defer sharedMu.Unlock()

	if shared != nil {
		_ = shared.Close()
		shared = nil
	}
}
