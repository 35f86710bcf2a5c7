package livestock

import (
	"time"

	"github.com/dombastis/backend/internal/domain/shared"
)

// MutationKind classifies a population change
type MutationKind string

const (
	MutationEntry MutationKind = "Masuk"
	MutationExit  MutationKind = "Keluar"
)

// IsValid checks if the kind is a valid MutationKind
func (k MutationKind) IsValid() bool {
	return k == MutationEntry || k == MutationExit
}

// String returns the string representation of MutationKind
func (k MutationKind) String() string {
	return string(k)
}

// Well-known mutation reasons. Reason is free text; these are the values
// the workflows write themselves.
const (
	ReasonAcquisition = "Pembelian/Kelahiran"
	ReasonDeath       = "Kematian"
)

// MutationEntryRecord is one row of the append-only population ledger.
// The referenced livestock ID may dangle: the animal it names is usually
// deleted by the same workflow that writes the exit record, and the log
// outlives the registry row forever.
type MutationEntryRecord struct {
	shared.BaseEntity
	LivestockID   int64        `json:"livestock_id"`
	Kind          MutationKind `json:"kind"`
	Reason        string       `json:"reason"`
	Date          time.Time    `json:"date"`
	Note          string       `json:"note"`
	EvidencePhoto string       `json:"evidence_photo"` // storage reference, never validated after write
	RecordedBy    string       `json:"recorded_by"`
}

// NewEntryMutation creates an entry-side mutation for an animal joining the herd
func NewEntryMutation(livestockID int64, date time.Time, recordedBy string) (*MutationEntryRecord, error) {
	return newMutation(livestockID, MutationEntry, ReasonAcquisition, date, "", "", recordedBy)
}

// NewExitMutation creates an exit-side mutation for an animal leaving the herd
func NewExitMutation(livestockID int64, reason string, date time.Time, note, evidencePhoto, recordedBy string) (*MutationEntryRecord, error) {
	return newMutation(livestockID, MutationExit, reason, date, note, evidencePhoto, recordedBy)
}

func newMutation(livestockID int64, kind MutationKind, reason string, date time.Time, note, evidencePhoto, recordedBy string) (*MutationEntryRecord, error) {
	if livestockID <= 0 {
		return nil, shared.NewDomainError("INVALID_LIVESTOCK_ID", "Livestock ID must be positive")
	}
	if !kind.IsValid() {
		return nil, shared.NewDomainError("INVALID_MUTATION_KIND", "Mutation kind must be Masuk or Keluar")
	}
	if reason == "" {
		return nil, shared.NewDomainError("INVALID_REASON", "Mutation reason cannot be empty")
	}
	if date.IsZero() {
		return nil, shared.NewDomainError("INVALID_DATE", "Mutation date is required")
	}

	return &MutationEntryRecord{
		BaseEntity:    shared.NewBaseEntity(),
		LivestockID:   livestockID,
		Kind:          kind,
		Reason:        reason,
		Date:          date,
		Note:          note,
		EvidencePhoto: evidencePhoto,
		RecordedBy:    recordedBy,
	}, nil
}

// IsEntry reports whether the record marks an animal entering the herd
func (m *MutationEntryRecord) IsEntry() bool {
	return m.Kind == MutationEntry
}

// IsExit reports whether the record marks an animal leaving the herd
func (m *MutationEntryRecord) IsExit() bool {
	return m.Kind == MutationExit
}
