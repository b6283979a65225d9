package tiers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"venuelayout/internal/layouts"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func setupTestRouter(svc Service) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	SetupTierRoutes(router.Group("/api/v1"), NewController(svc), func(c *gin.Context) { c.Next() })
	return router
}

func serve(router *gin.Engine, method, path string, body interface{}) *httptest.ResponseRecorder {
	payload, _ := json.Marshal(body)
	req := httptest.NewRequest(method, path, bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestController_PutAndGetBoundaries(t *testing.T) {
	repo := new(MockRepository)
	router := setupTestRouter(NewService(repo, layouts.NewMemoryStore(), nil, DefaultMinGap))
	eventID := uuid.New()

	repo.On("Upsert", mock.Anything, mock.AnythingOfType("*tiers.EventTierBoundaries")).Return(nil)
	repo.On("GetByEventID", mock.Anything, eventID).Return(NewEventTierBoundaries(eventID, Thresholds{PremiumY: 150, GoldY: 250, SilverY: 350, BronzeY: 450}), nil)

	w := serve(router, http.MethodPut, "/api/v1/admin/events/"+eventID.String()+"/tier-boundaries",
		map[string]float64{"premium_y": 150, "gold_y": 250, "silver_y": 350, "bronze_y": 450})
	assert.Equal(t, http.StatusOK, w.Code)

	w = serve(router, http.MethodGet, "/api/v1/events/"+eventID.String()+"/tier-boundaries", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var body struct {
		Data BoundariesResponse `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, 250.0, body.Data.Thresholds.GoldY)
	assert.False(t, body.Data.IsDefault)
}

func TestController_RejectsUnorderedBoundaries(t *testing.T) {
	repo := new(MockRepository)
	router := setupTestRouter(NewService(repo, layouts.NewMemoryStore(), nil, DefaultMinGap))

	// binding rejects a decreasing sequence
	w := serve(router, http.MethodPut, "/api/v1/admin/events/"+uuid.NewString()+"/tier-boundaries",
		map[string]float64{"premium_y": 300, "gold_y": 200, "silver_y": 400, "bronze_y": 500})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// the service rejects a gap below the minimum
	w = serve(router, http.MethodPut, "/api/v1/admin/events/"+uuid.NewString()+"/tier-boundaries",
		map[string]float64{"premium_y": 200, "gold_y": 201, "silver_y": 400, "bronze_y": 500})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	repo.AssertNotCalled(t, "Upsert", mock.Anything, mock.Anything)
}

func TestController_ClassifyLayoutNotFound(t *testing.T) {
	repo := new(MockRepository)
	router := setupTestRouter(NewService(repo, layouts.NewMemoryStore(), nil, DefaultMinGap))

	w := serve(router, http.MethodGet, "/api/v1/events/"+uuid.NewString()+"/layouts/"+uuid.NewString()+"/tiers", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = serve(router, http.MethodGet, "/api/v1/events/bad/tier-boundaries", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestController_ClassifyLayout(t *testing.T) {
	store := layouts.NewMemoryStore()
	layout := seatedLayout(t, store)
	repo := new(MockRepository)
	router := setupTestRouter(NewService(repo, store, nil, DefaultMinGap))
	eventID := uuid.New()
	repo.On("GetByEventID", mock.Anything, eventID).Return(nil, ErrBoundariesNotFound)

	w := serve(router, http.MethodGet, "/api/v1/events/"+eventID.String()+"/layouts/"+layout.ID.String()+"/tiers", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var body struct {
		Data ClassificationResponse `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Len(t, body.Data.Seats, 20)
}
