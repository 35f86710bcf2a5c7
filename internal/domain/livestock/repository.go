package livestock

import "context"

// Filter narrows registry listings
type Filter struct {
	Location *PenLocation
}

// HerdCounts aggregates the current registry by the dashboard dimensions
type HerdCounts struct {
	Total  int64 `json:"total"`
	Male   int64 `json:"male"`
	Female int64 `json:"female"`
	West   int64 `json:"west"`
	East   int64 `json:"east"`
}

// Repository defines persistence for the active-animal registry
type Repository interface {
	// Create inserts a new animal and assigns its ID
	Create(ctx context.Context, animal *Livestock) error

	// FindByID finds an animal by ID; returns shared.ErrNotFound if absent
	FindByID(ctx context.Context, id int64) (*Livestock, error)

	// FindAll lists animals, optionally filtered by location,
	// ordered by location then pen number
	FindAll(ctx context.Context, filter Filter) ([]Livestock, error)

	// Update persists changed attributes; returns shared.ErrNotFound if absent
	Update(ctx context.Context, animal *Livestock) error

	// Delete removes an animal unconditionally. No referential check is made
	// against the mutation log or sales ledger.
	Delete(ctx context.Context, id int64) error

	// Counts aggregates the registry for the dashboard
	Counts(ctx context.Context) (HerdCounts, error)
}

// MutationLogRepository defines persistence for the append-only population
// ledger. There are deliberately no update or delete operations.
type MutationLogRepository interface {
	// Append writes a new mutation record. The referenced livestock ID is
	// not validated against the registry.
	Append(ctx context.Context, entry *MutationEntryRecord) error

	// FindByLivestock lists all mutations for one animal, date descending
	FindByLivestock(ctx context.Context, livestockID int64) ([]MutationEntryRecord, error)

	// FindRecent lists the most recent mutations across the herd, date descending
	FindRecent(ctx context.Context, limit int) ([]MutationEntryRecord, error)

	// FindByLocation lists recent mutations of animals currently housed at a
	// location, date descending. Exits of already-deleted animals do not
	// appear here; use FindByLivestock or FindRecent for those.
	FindByLocation(ctx context.Context, location PenLocation, limit int) ([]MutationEntryRecord, error)
}
