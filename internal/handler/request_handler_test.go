package handler

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/techmaintain/parts-service/internal/domain"
	"github.com/techmaintain/parts-service/internal/repository"
	"github.com/techmaintain/parts-service/internal/service"
)

func newTestRouter(parts *repository.MemoryPartRepository, requests *repository.MemoryRequestRepository) *gin.Engine {
	gin.SetMode(gin.TestMode)
	logger := zap.NewNop()

	partService := service.NewPartService(parts, logger)
	requestService := service.NewRequestService(parts, requests, nil, logger)

	partHandler := NewPartHandler(partService, logger)
	requestHandler := NewRequestHandler(requestService, logger)

	router := gin.New()
	v1 := router.Group("/api/v1")
	{
		v1.POST("/parts", partHandler.CreatePart)
		v1.GET("/parts", partHandler.ListParts)
		v1.GET("/parts/:id", partHandler.GetPart)
		v1.PUT("/parts/:id", partHandler.UpdatePart)
		v1.DELETE("/parts/:id", partHandler.DeletePart)

		v1.POST("/requests", requestHandler.CreateRequest)
		v1.GET("/requests", requestHandler.ListRequests)
		v1.PATCH("/requests/:id/status", requestHandler.UpdateRequestStatus)
	}
	return router
}

func doJSON(router *gin.Engine, method string, path string, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body
}

func seedTestPart(t *testing.T, parts *repository.MemoryPartRepository, quantity int) *domain.Part {
	t.Helper()
	part := &domain.Part{
		PartID:       uuid.NewString(),
		SerialNumber: "SN-001",
		Module:       "cooling",
		Quantity:     quantity,
		CreatedAt:    time.Now(),
		UpdatedAt:    time.Now(),
	}
	require.NoError(t, parts.CreatePart(context.Background(), part))
	return part
}

func createBody(partID string, quantity int) string {
	return fmt.Sprintf(`{
		"partId": %q,
		"quantity": %d,
		"requiredDate": "2025-01-01",
		"priority": "high",
		"reason": "repair",
		"responsibleEmail": "a@b.com"
	}`, partID, quantity)
}

func TestCreateRequestEndpoint(t *testing.T) {
	parts := repository.NewMemoryPartRepository()
	requests := repository.NewMemoryRequestRepository()
	router := newTestRouter(parts, requests)
	part := seedTestPart(t, parts, 10)

	t.Run("creates request and deducts stock", func(t *testing.T) {
		w := doJSON(router, http.MethodPost, "/api/v1/requests", createBody(part.PartID, 4))
		require.Equal(t, http.StatusCreated, w.Code)

		body := decodeBody(t, w)
		assert.NotEmpty(t, body["id"])
		assert.Equal(t, "Pending", body["status"])
		assert.Equal(t, float64(4), body["quantity"])
		assert.Equal(t, "Anonymous", body["requester"])

		got := doJSON(router, http.MethodGet, "/api/v1/parts/"+part.PartID, "")
		require.Equal(t, http.StatusOK, got.Code)
		assert.Equal(t, float64(6), decodeBody(t, got)["quantity"])
	})

	t.Run("insufficient stock reports available", func(t *testing.T) {
		w := doJSON(router, http.MethodPost, "/api/v1/requests", createBody(part.PartID, 10))
		require.Equal(t, http.StatusBadRequest, w.Code)

		body := decodeBody(t, w)
		assert.Equal(t, "Insufficient stock", body["error"])
		assert.Equal(t, float64(6), body["available"])

		got := doJSON(router, http.MethodGet, "/api/v1/parts/"+part.PartID, "")
		assert.Equal(t, float64(6), decodeBody(t, got)["quantity"], "failed request leaves stock unchanged")
	})

	t.Run("missing fields list", func(t *testing.T) {
		w := doJSON(router, http.MethodPost, "/api/v1/requests", `{"partId": "x"}`)
		require.Equal(t, http.StatusBadRequest, w.Code)

		body := decodeBody(t, w)
		assert.Equal(t, "Missing fields", body["error"])
		assert.ElementsMatch(t,
			[]any{"quantity", "requiredDate", "priority", "reason", "responsibleEmail"},
			body["missing"])
	})

	t.Run("invalid email", func(t *testing.T) {
		body := strings.Replace(createBody(part.PartID, 1), "a@b.com", "not-an-email", 1)
		w := doJSON(router, http.MethodPost, "/api/v1/requests", body)
		require.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "Invalid email", decodeBody(t, w)["error"])
	})

	t.Run("unknown part", func(t *testing.T) {
		w := doJSON(router, http.MethodPost, "/api/v1/requests", createBody(uuid.NewString(), 1))
		require.Equal(t, http.StatusNotFound, w.Code)
		assert.Equal(t, "Part not found", decodeBody(t, w)["error"])
	})

	t.Run("malformed json", func(t *testing.T) {
		w := doJSON(router, http.MethodPost, "/api/v1/requests", `{"partId"`)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestRequestStatusEndpoint(t *testing.T) {
	parts := repository.NewMemoryPartRepository()
	requests := repository.NewMemoryRequestRepository()
	router := newTestRouter(parts, requests)
	part := seedTestPart(t, parts, 10)

	created := doJSON(router, http.MethodPost, "/api/v1/requests", createBody(part.PartID, 2))
	require.Equal(t, http.StatusCreated, created.Code)
	requestID := decodeBody(t, created)["id"].(string)

	t.Run("missing status", func(t *testing.T) {
		w := doJSON(router, http.MethodPatch, "/api/v1/requests/"+requestID+"/status", `{}`)
		require.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "Status not provided", decodeBody(t, w)["error"])
	})

	t.Run("unknown request", func(t *testing.T) {
		w := doJSON(router, http.MethodPatch, "/api/v1/requests/"+uuid.NewString()+"/status", `{"status":"Approved"}`)
		require.Equal(t, http.StatusNotFound, w.Code)
		assert.Equal(t, "Request not found", decodeBody(t, w)["error"])
	})

	t.Run("updates and shows up in listing", func(t *testing.T) {
		w := doJSON(router, http.MethodPatch, "/api/v1/requests/"+requestID+"/status", `{"status":"Approved"}`)
		require.Equal(t, http.StatusOK, w.Code)

		list := doJSON(router, http.MethodGet, "/api/v1/requests", "")
		require.Equal(t, http.StatusOK, list.Code)

		var listed []map[string]any
		require.NoError(t, json.Unmarshal(list.Body.Bytes(), &listed))
		require.Len(t, listed, 1)
		assert.Equal(t, "Approved", listed[0]["status"])
	})
}

func TestPartEndpoints(t *testing.T) {
	parts := repository.NewMemoryPartRepository()
	requests := repository.NewMemoryRequestRepository()
	router := newTestRouter(parts, requests)

	t.Run("create and fetch", func(t *testing.T) {
		w := doJSON(router, http.MethodPost, "/api/v1/parts", `{"serialNumber":"SN-9","module":"engine","quantity":7}`)
		require.Equal(t, http.StatusCreated, w.Code)
		partID := decodeBody(t, w)["id"].(string)

		got := doJSON(router, http.MethodGet, "/api/v1/parts/"+partID, "")
		require.Equal(t, http.StatusOK, got.Code)
		assert.Equal(t, "SN-9", decodeBody(t, got)["serialNumber"])
	})

	t.Run("get unknown part", func(t *testing.T) {
		w := doJSON(router, http.MethodGet, "/api/v1/parts/"+uuid.NewString(), "")
		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("malformed part id is a client error", func(t *testing.T) {
		for _, tc := range []struct {
			method string
			body   string
		}{
			{http.MethodGet, ""},
			{http.MethodPut, `{"quantity":1}`},
			{http.MethodDelete, ""},
		} {
			w := doJSON(router, tc.method, "/api/v1/parts/not-a-uuid", tc.body)
			require.Equal(t, http.StatusBadRequest, w.Code, "%s with malformed id", tc.method)
			assert.Equal(t, "Invalid part id", decodeBody(t, w)["error"])
		}
	})

	t.Run("update and delete", func(t *testing.T) {
		w := doJSON(router, http.MethodPost, "/api/v1/parts", `{"serialNumber":"SN-10","module":"engine","quantity":1}`)
		require.Equal(t, http.StatusCreated, w.Code)
		partID := decodeBody(t, w)["id"].(string)

		updated := doJSON(router, http.MethodPut, "/api/v1/parts/"+partID, `{"quantity":12}`)
		require.Equal(t, http.StatusOK, updated.Code)

		got := doJSON(router, http.MethodGet, "/api/v1/parts/"+partID, "")
		assert.Equal(t, float64(12), decodeBody(t, got)["quantity"])

		deleted := doJSON(router, http.MethodDelete, "/api/v1/parts/"+partID, "")
		require.Equal(t, http.StatusOK, deleted.Code)

		gone := doJSON(router, http.MethodGet, "/api/v1/parts/"+partID, "")
		assert.Equal(t, http.StatusNotFound, gone.Code)
	})
}
