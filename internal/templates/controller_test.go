package templates

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTestRouter(svc Service) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	SetupTemplateRoutes(router.Group("/api/v1"), NewController(svc), func(c *gin.Context) { c.Next() })
	return router
}

func TestController_ListAndInstantiate(t *testing.T) {
	svc, _ := newTestService(t)
	router := setupTestRouter(svc)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/admin/layout-templates?category=arena", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	var list struct {
		Data []TemplateSummary `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &list))
	require.Len(t, list.Data, 1)
	assert.Equal(t, 1000, list.Data[0].Capacity.TotalCapacity)

	body, _ := json.Marshal(InstantiateRequest{Name: "Arena Night"})
	req = httptest.NewRequest(http.MethodPost, "/api/v1/admin/layout-templates/arena/instantiate", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	require.Equal(t, http.StatusCreated, w.Code)

	var created struct {
		Data struct {
			Name          string `json:"name"`
			TotalCapacity int    `json:"total_capacity"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))
	assert.Equal(t, "Arena Night", created.Data.Name)
	assert.Equal(t, 1000, created.Data.TotalCapacity)

	req = httptest.NewRequest(http.MethodPost, "/api/v1/admin/layout-templates/seed", nil)
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"seeded":3`)
}

func TestController_TemplateNotFound(t *testing.T) {
	svc, _ := newTestService(t)
	router := setupTestRouter(svc)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/admin/layout-templates/ballroom", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusNotFound, w.Code)

	req = httptest.NewRequest(http.MethodPost, "/api/v1/admin/layout-templates/ballroom/instantiate", nil)
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusNotFound, w.Code)

	req = httptest.NewRequest(http.MethodPost, "/api/v1/admin/layout-templates/theater/instantiate", bytes.NewReader([]byte(`{"name":"x"}`)))
	req.Header.Set("Content-Type", "application/json")
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
