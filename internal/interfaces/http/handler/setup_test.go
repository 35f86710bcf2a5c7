package handler

import (
	"encoding/json"
	"net/http/httptest"
	"strconv"
	"testing"

	applivestock "github.com/dombastis/backend/internal/application/livestock"
	appsales "github.com/dombastis/backend/internal/application/sales"
	"github.com/dombastis/backend/internal/infrastructure/persistence"
	"github.com/dombastis/backend/internal/infrastructure/persistence/models"
	"github.com/dombastis/backend/internal/infrastructure/storage"
	"github.com/dombastis/backend/internal/interfaces/http/middleware"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// newTestServer wires the full HTTP surface over an in-memory database,
// with the same routes the server binary registers.
func newTestServer(t *testing.T) (*gin.Engine, string) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	middleware.SetupValidator()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&models.LivestockModel{},
		&models.MutationLogModel{},
		&models.SalesModel{},
	))

	uploadDir := t.TempDir()
	evidence, err := storage.NewLocalEvidenceStore(uploadDir)
	require.NoError(t, err)

	lifecycle := applivestock.NewLifecycleService(
		persistence.NewGormLivestockRepository(db),
		persistence.NewGormMutationLogRepository(db),
		persistence.NewGormUnitOfWork(db),
		nil,
	)
	salesService := appsales.NewSalesService(persistence.NewGormSalesRepository(db), nil)

	livestockHandler := NewLivestockHandler(lifecycle, evidence, 5<<20)
	salesHandler := NewSalesHandler(salesService)

	r := gin.New()
	v1 := r.Group("/api/v1")
	{
		herd := v1.Group("/livestock")
		herd.POST("", livestockHandler.Create)
		herd.GET("", livestockHandler.List)
		herd.GET("/counts", livestockHandler.Counts)
		herd.GET("/:id", livestockHandler.Get)
		herd.PUT("/:id", livestockHandler.Update)
		herd.DELETE("/:id", livestockHandler.Delete)
		herd.POST("/:id/retire", livestockHandler.Retire)
		herd.GET("/:id/mutations", livestockHandler.History)

		mutations := v1.Group("/mutations")
		mutations.GET("", livestockHandler.RecentMutations)
		mutations.GET("/location/:location", livestockHandler.MutationsByLocation)

		sales := v1.Group("/sales")
		sales.POST("", salesHandler.Record)
		sales.GET("", salesHandler.List)
		sales.GET("/overview", salesHandler.Overview)
		sales.GET("/next-receipt", salesHandler.NextReceipt)
		sales.GET("/:id", salesHandler.Get)
		sales.DELETE("/:id", salesHandler.Delete)
	}

	return r, uploadDir
}

// envelope mirrors the standard response wrapper for assertions
type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   *struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
	Meta *struct {
		Total int64 `json:"total"`
	} `json:"meta"`
}

func decodeEnvelope(t *testing.T, w *httptest.ResponseRecorder) envelope {
	t.Helper()
	var env envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	return env
}

func itoa(id int64) string {
	return strconv.FormatInt(id, 10)
}
