package livestock

import (
	"github.com/dombastis/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// Sex represents the sex of an animal
type Sex string

const (
	SexMale   Sex = "Jantan"
	SexFemale Sex = "Betina"
)

// IsValid checks if the sex is a valid Sex
func (s Sex) IsValid() bool {
	return s == SexMale || s == SexFemale
}

// String returns the string representation of Sex
func (s Sex) String() string {
	return string(s)
}

// PenLocation represents which barn an animal is housed in
type PenLocation string

const (
	PenWest PenLocation = "Barat"
	PenEast PenLocation = "Timur"
)

// IsValid checks if the location is a valid PenLocation
func (l PenLocation) IsValid() bool {
	return l == PenWest || l == PenEast
}

// String returns the string representation of PenLocation
func (l PenLocation) String() string {
	return string(l)
}

// Default attribute values applied when the caller leaves them blank
const (
	DefaultEarTag = "-"
	DefaultBreed  = "Lokal"
)

// Livestock represents one animal currently in the active herd.
// Presence in the registry is the liveness flag: removal is deletion,
// history survives only in the mutation log.
type Livestock struct {
	shared.BaseEntity
	Name        string          `json:"name"`
	Sex         Sex             `json:"sex"`
	WeightKg    decimal.Decimal `json:"weight_kg"`
	EarTag      string          `json:"ear_tag"` // free text, not unique
	Breed       string          `json:"breed"`
	PenLocation PenLocation     `json:"pen_location"`
	PenNumber   int             `json:"pen_number"`
}

// NewLivestock creates a new livestock record with validated attributes
func NewLivestock(name string, sex Sex, weightKg decimal.Decimal, earTag, breed string, location PenLocation, penNumber int) (*Livestock, error) {
	if name == "" {
		return nil, shared.NewDomainError("INVALID_NAME", "Animal name cannot be empty")
	}
	if !sex.IsValid() {
		return nil, shared.NewDomainError("INVALID_SEX", "Sex must be Jantan or Betina")
	}
	if weightKg.IsNegative() {
		return nil, shared.NewDomainError("INVALID_WEIGHT", "Weight cannot be negative")
	}
	if !location.IsValid() {
		return nil, shared.NewDomainError("INVALID_LOCATION", "Pen location must be Barat or Timur")
	}
	if penNumber <= 0 {
		return nil, shared.NewDomainError("INVALID_PEN_NUMBER", "Pen number must be positive")
	}
	if earTag == "" {
		earTag = DefaultEarTag
	}
	if breed == "" {
		breed = DefaultBreed
	}

	return &Livestock{
		BaseEntity:  shared.NewBaseEntity(),
		Name:        name,
		Sex:         sex,
		WeightKg:    weightKg,
		EarTag:      earTag,
		Breed:       breed,
		PenLocation: location,
		PenNumber:   penNumber,
	}, nil
}

// UpdateAttributes replaces the mutable attributes of the animal
func (a *Livestock) UpdateAttributes(name string, sex Sex, weightKg decimal.Decimal, earTag, breed string, location PenLocation, penNumber int) error {
	updated, err := NewLivestock(name, sex, weightKg, earTag, breed, location, penNumber)
	if err != nil {
		return err
	}

	a.Name = updated.Name
	a.Sex = updated.Sex
	a.WeightKg = updated.WeightKg
	a.EarTag = updated.EarTag
	a.Breed = updated.Breed
	a.PenLocation = updated.PenLocation
	a.PenNumber = updated.PenNumber
	return nil
}
