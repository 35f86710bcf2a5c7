package handler

import (
	"io"
	"path/filepath"
	"time"

	applivestock "github.com/dombastis/backend/internal/application/livestock"
	"github.com/dombastis/backend/internal/domain/livestock"
	"github.com/dombastis/backend/internal/interfaces/http/dto"
	"github.com/dombastis/backend/internal/interfaces/http/middleware"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// LivestockHandler handles herd registry and mutation log endpoints
type LivestockHandler struct {
	BaseHandler
	lifecycle      *applivestock.LifecycleService
	evidence       applivestock.EvidenceStore
	maxUploadBytes int64
}

// NewLivestockHandler creates a new LivestockHandler
func NewLivestockHandler(lifecycle *applivestock.LifecycleService, evidence applivestock.EvidenceStore, maxUploadBytes int64) *LivestockHandler {
	if maxUploadBytes <= 0 {
		maxUploadBytes = 5 << 20
	}
	return &LivestockHandler{
		lifecycle:      lifecycle,
		evidence:       evidence,
		maxUploadBytes: maxUploadBytes,
	}
}

// CreateLivestockRequest represents a request to register a new animal
type CreateLivestockRequest struct {
	Name      string `json:"name" binding:"required,min=1,max=100"`
	Sex       string `json:"sex" binding:"required,oneof=Jantan Betina"`
	WeightKg  string `json:"weight_kg" binding:"required,decimalstr"`
	EarTag    string `json:"ear_tag" binding:"max=50"`
	Breed     string `json:"breed" binding:"max=100"`
	Location  string `json:"location" binding:"required,oneof=Barat Timur"`
	PenNumber int    `json:"pen_number" binding:"required,min=1"`
}

// UpdateLivestockRequest represents a request to update an animal
type UpdateLivestockRequest struct {
	Name      string `json:"name" binding:"required,min=1,max=100"`
	Sex       string `json:"sex" binding:"required,oneof=Jantan Betina"`
	WeightKg  string `json:"weight_kg" binding:"required,decimalstr"`
	EarTag    string `json:"ear_tag" binding:"max=50"`
	Breed     string `json:"breed" binding:"max=100"`
	Location  string `json:"location" binding:"required,oneof=Barat Timur"`
	PenNumber int    `json:"pen_number" binding:"required,min=1"`
}

// LivestockResponse represents an animal in API responses
type LivestockResponse struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Sex       string    `json:"sex"`
	WeightKg  string    `json:"weight_kg"`
	EarTag    string    `json:"ear_tag"`
	Breed     string    `json:"breed"`
	Location  string    `json:"location"`
	PenNumber int       `json:"pen_number"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// MutationResponse represents a mutation log entry in API responses
type MutationResponse struct {
	ID            int64     `json:"id"`
	LivestockID   int64     `json:"livestock_id"`
	Kind          string    `json:"kind"`
	Reason        string    `json:"reason"`
	Date          time.Time `json:"date"`
	Note          string    `json:"note,omitempty"`
	EvidencePhoto string    `json:"evidence_photo,omitempty"`
	RecordedBy    string    `json:"recorded_by,omitempty"`
}

func toLivestockResponse(a *livestock.Livestock) LivestockResponse {
	return LivestockResponse{
		ID:        a.ID,
		Name:      a.Name,
		Sex:       a.Sex.String(),
		WeightKg:  a.WeightKg.String(),
		EarTag:    a.EarTag,
		Breed:     a.Breed,
		Location:  a.PenLocation.String(),
		PenNumber: a.PenNumber,
		CreatedAt: a.CreatedAt,
		UpdatedAt: a.UpdatedAt,
	}
}

func toMutationResponses(entries []livestock.MutationEntryRecord) []MutationResponse {
	out := make([]MutationResponse, len(entries))
	for i, e := range entries {
		out[i] = MutationResponse{
			ID:            e.ID,
			LivestockID:   e.LivestockID,
			Kind:          e.Kind.String(),
			Reason:        e.Reason,
			Date:          e.Date,
			Note:          e.Note,
			EvidencePhoto: e.EvidencePhoto,
			RecordedBy:    e.RecordedBy,
		}
	}
	return out
}

// Create registers a new animal and its entry mutation
func (h *LivestockHandler) Create(c *gin.Context) {
	var req CreateLivestockRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}

	weight, err := decimal.NewFromString(req.WeightKg)
	if err != nil {
		h.BadRequest(c, "weight_kg must be a decimal number")
		return
	}

	animal, err := h.lifecycle.AddAnimal(c.Request.Context(), actingUser(c), applivestock.AddAnimalRequest{
		Name:        req.Name,
		Sex:         livestock.Sex(req.Sex),
		WeightKg:    weight,
		EarTag:      req.EarTag,
		Breed:       req.Breed,
		PenLocation: livestock.PenLocation(req.Location),
		PenNumber:   req.PenNumber,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, toLivestockResponse(animal))
}

// List lists animals, optionally filtered by ?location=Barat|Timur
func (h *LivestockHandler) List(c *gin.Context) {
	var location *livestock.PenLocation
	if raw := c.Query("location"); raw != "" {
		loc := livestock.PenLocation(raw)
		location = &loc
	}

	animals, err := h.lifecycle.ListAnimals(c.Request.Context(), location)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	out := make([]LivestockResponse, len(animals))
	for i := range animals {
		out[i] = toLivestockResponse(&animals[i])
	}
	h.SuccessWithTotal(c, out, int64(len(out)))
}

// Get fetches one animal by ID
func (h *LivestockHandler) Get(c *gin.Context) {
	var req dto.IDRequest
	if err := c.ShouldBindUri(&req); err != nil {
		h.BadRequest(c, "Invalid livestock ID")
		return
	}

	animal, err := h.lifecycle.GetAnimal(c.Request.Context(), req.ID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, toLivestockResponse(animal))
}

// Update replaces the attributes of an existing animal
func (h *LivestockHandler) Update(c *gin.Context) {
	var uri dto.IDRequest
	if err := c.ShouldBindUri(&uri); err != nil {
		h.BadRequest(c, "Invalid livestock ID")
		return
	}

	var req UpdateLivestockRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}

	weight, err := decimal.NewFromString(req.WeightKg)
	if err != nil {
		h.BadRequest(c, "weight_kg must be a decimal number")
		return
	}

	animal, err := h.lifecycle.UpdateAnimal(c.Request.Context(), applivestock.UpdateAnimalRequest{
		ID:          uri.ID,
		Name:        req.Name,
		Sex:         livestock.Sex(req.Sex),
		WeightKg:    weight,
		EarTag:      req.EarTag,
		Breed:       req.Breed,
		PenLocation: livestock.PenLocation(req.Location),
		PenNumber:   req.PenNumber,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, toLivestockResponse(animal))
}

// Delete removes an animal without an audit record
func (h *LivestockHandler) Delete(c *gin.Context) {
	var req dto.IDRequest
	if err := c.ShouldBindUri(&req); err != nil {
		h.BadRequest(c, "Invalid livestock ID")
		return
	}

	if err := h.lifecycle.DeleteAnimal(c.Request.Context(), req.ID); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

// Retire records an exit mutation and removes the animal from the registry.
// Accepts multipart form data so an evidence photo can ride along.
func (h *LivestockHandler) Retire(c *gin.Context) {
	var uri dto.IDRequest
	if err := c.ShouldBindUri(&uri); err != nil {
		h.BadRequest(c, "Invalid livestock ID")
		return
	}

	reason := c.PostForm("reason")
	if reason == "" {
		h.BadRequest(c, "reason is required")
		return
	}
	note := c.PostForm("note")

	var date time.Time
	if raw := c.PostForm("date"); raw != "" {
		parsed, err := time.Parse("2006-01-02", raw)
		if err != nil {
			h.BadRequest(c, "date must be formatted YYYY-MM-DD")
			return
		}
		date = parsed
	}

	photoRef, err := h.saveEvidencePhoto(c)
	if err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	err = h.lifecycle.RetireAnimal(c.Request.Context(), actingUser(c), applivestock.RetireAnimalRequest{
		ID:            uri.ID,
		Date:          date,
		Reason:        reason,
		Note:          note,
		EvidencePhoto: photoRef,
	})
	if err != nil {
		// The mutation never committed, so drop the orphaned photo
		if photoRef != "" && h.evidence != nil {
			_ = h.evidence.Delete(c.Request.Context(), photoRef)
		}
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

// saveEvidencePhoto stores an uploaded photo, if any, and returns its reference
func (h *LivestockHandler) saveEvidencePhoto(c *gin.Context) (string, error) {
	if h.evidence == nil {
		return "", nil
	}
	file, err := c.FormFile("evidence_photo")
	if err != nil {
		// No file attached
		return "", nil
	}
	if file.Size > h.maxUploadBytes {
		return "", errUploadTooLarge
	}

	src, err := file.Open()
	if err != nil {
		return "", err
	}
	defer src.Close()

	data, err := io.ReadAll(io.LimitReader(src, h.maxUploadBytes))
	if err != nil {
		return "", err
	}

	key := "kematian/" + uuid.New().String() + filepath.Ext(file.Filename)
	contentType := file.Header.Get("Content-Type")
	return h.evidence.Save(c.Request.Context(), key, data, contentType)
}

// Counts aggregates the registry for the dashboard
func (h *LivestockHandler) Counts(c *gin.Context) {
	counts, err := h.lifecycle.HerdCounts(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, gin.H{
		"total":  counts.Total,
		"male":   counts.Male,
		"female": counts.Female,
		"west":   counts.West,
		"east":   counts.East,
	})
}

// History lists all mutation records for one animal, newest first
func (h *LivestockHandler) History(c *gin.Context) {
	var req dto.IDRequest
	if err := c.ShouldBindUri(&req); err != nil {
		h.BadRequest(c, "Invalid livestock ID")
		return
	}

	entries, err := h.lifecycle.MutationHistory(c.Request.Context(), req.ID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessWithTotal(c, toMutationResponses(entries), int64(len(entries)))
}

// RecentMutations lists the most recent mutations across the herd
func (h *LivestockHandler) RecentMutations(c *gin.Context) {
	limit := parseLimit(c.Query("limit"))

	entries, err := h.lifecycle.RecentMutations(c.Request.Context(), limit)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessWithTotal(c, toMutationResponses(entries), int64(len(entries)))
}

// MutationsByLocation lists recent mutations of animals at one location
func (h *LivestockHandler) MutationsByLocation(c *gin.Context) {
	location := livestock.PenLocation(c.Param("location"))
	limit := parseLimit(c.Query("limit"))

	entries, err := h.lifecycle.MutationsByLocation(c.Request.Context(), location, limit)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessWithTotal(c, toMutationResponses(entries), int64(len(entries)))
}
