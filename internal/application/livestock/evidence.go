package livestock

import "context"

// EvidenceStore persists evidence photos attached to exit mutations.
// Save returns the stored reference recorded on the mutation entry.
type EvidenceStore interface {
	Save(ctx context.Context, key string, data []byte, contentType string) (string, error)
	Delete(ctx context.Context, key string) error
}
