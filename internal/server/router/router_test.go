package router

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/mamadbah2/shipment-tracker/internal/domain/models"
	"github.com/mamadbah2/shipment-tracker/internal/repository/memory"
	"github.com/mamadbah2/shipment-tracker/internal/server/handlers"
	"github.com/mamadbah2/shipment-tracker/internal/service/shipments"
)

type downStore struct{}

func (downStore) ListAll(context.Context) ([]models.ShipmentRecord, error) {
	return nil, fmt.Errorf("server selection timeout: %w", models.ErrStoreUnavailable)
}

func (downStore) Insert(context.Context, models.ShipmentRecord) (primitive.ObjectID, error) {
	return primitive.NilObjectID, fmt.Errorf("server selection timeout: %w", models.ErrStoreUnavailable)
}

func (downStore) Ping(context.Context) error { return models.ErrStoreUnavailable }

func newEngine(store shipments.Store) http.Handler {
	svc := shipments.NewService(store, nil)
	return New(handlers.NewShipmentHandler(svc, nil), nil)
}

func do(t *testing.T, h http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestSubmitThenList(t *testing.T) {
	h := newEngine(memory.NewShipmentRepository())

	body := `{"sender":{"name":"A","address":"X"},"receiver":{"name":"B","address":"Y"},"shipmentDetails":"box","trackerId":"TRACK-123"}`
	rec := do(t, h, http.MethodPost, "/api/submit", body)
	require.Equal(t, http.StatusCreated, rec.Code)

	var created models.MessageResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))
	assert.Equal(t, "Shipment saved successfully", created.Message)

	rec = do(t, h, http.MethodGet, "/api/shipments", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var records []models.ShipmentRecord
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &records))
	require.Len(t, records, 1)
	assert.Equal(t, "TRACK-123", records[0].TrackerID)
	assert.Equal(t, models.Party{Name: "A", Address: "X"}, records[0].Sender)
	assert.Equal(t, models.Party{Name: "B", Address: "Y"}, records[0].Receiver)
	assert.Equal(t, "box", records[0].ShipmentDetails)
	assert.False(t, records[0].ID.IsZero())

	var raw []map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &raw))
	assert.Contains(t, raw[0], "_id")
}

func TestListEmptyIsArray(t *testing.T) {
	h := newEngine(memory.NewShipmentRepository())

	rec := do(t, h, http.MethodGet, "/api/shipments", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `[]`, rec.Body.String())
}

func TestSubmitWithoutValidation(t *testing.T) {
	h := newEngine(memory.NewShipmentRepository())

	rec := do(t, h, http.MethodPost, "/api/submit", `{"trackerId":"TRACK-9"}`)
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = do(t, h, http.MethodPost, "/api/submit", "")
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = do(t, h, http.MethodGet, "/api/shipments", "")
	var records []models.ShipmentRecord
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &records))
	require.Len(t, records, 2)
	assert.Equal(t, "TRACK-9", records[0].TrackerID)
	assert.Empty(t, records[0].Sender.Name)
	assert.Empty(t, records[1].TrackerID)
}

func TestSubmitMalformedBody(t *testing.T) {
	h := newEngine(memory.NewShipmentRepository())

	rec := do(t, h, http.MethodPost, "/api/submit", `{"sender":`)
	require.Equal(t, http.StatusBadRequest, rec.Code)

	rec = do(t, h, http.MethodPost, "/api/submit", `shipment please`)
	require.Equal(t, http.StatusBadRequest, rec.Code)

	var payload models.ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &payload))
	assert.Equal(t, "Invalid request body", payload.Message)
	assert.NotEmpty(t, payload.Error)
}

func TestSubmitCastsScalarsToStrings(t *testing.T) {
	h := newEngine(memory.NewShipmentRepository())

	body := `{"sender":{"name":42,"address":null},"receiver":{"name":true},"shipmentDetails":5,"trackerId":1.5}`
	rec := do(t, h, http.MethodPost, "/api/submit", body)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	rec = do(t, h, http.MethodGet, "/api/shipments", "")
	var records []models.ShipmentRecord
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &records))
	require.Len(t, records, 1)
	assert.Equal(t, "42", records[0].Sender.Name)
	assert.Empty(t, records[0].Sender.Address)
	assert.Equal(t, "true", records[0].Receiver.Name)
	assert.Equal(t, "5", records[0].ShipmentDetails)
	assert.Equal(t, "1.5", records[0].TrackerID)
}

func TestSubmitUncastableValue(t *testing.T) {
	tests := map[string]string{
		"object details": `{"shipmentDetails":{"weight":3}}`,
		"array tracker":  `{"trackerId":["TRACK-1"]}`,
		"string sender":  `{"sender":"Alice"}`,
	}

	for name, body := range tests {
		t.Run(name, func(t *testing.T) {
			store := memory.NewShipmentRepository()
			h := newEngine(store)

			rec := do(t, h, http.MethodPost, "/api/submit", body)
			require.Equal(t, http.StatusInternalServerError, rec.Code)

			var payload models.ErrorResponse
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &payload))
			assert.Equal(t, "Error saving shipment", payload.Message)
			assert.NotEmpty(t, payload.Error)

			records, err := store.ListAll(context.Background())
			require.NoError(t, err)
			assert.Empty(t, records)
		})
	}
}

func TestStoreUnavailable(t *testing.T) {
	h := newEngine(downStore{})

	rec := do(t, h, http.MethodGet, "/api/shipments", "")
	require.Equal(t, http.StatusInternalServerError, rec.Code)
	var listErr models.ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &listErr))
	assert.Equal(t, "Error retrieving shipments", listErr.Message)
	assert.Contains(t, listErr.Error, "unavailable")

	rec = do(t, h, http.MethodPost, "/api/submit", `{"trackerId":"TRACK-1"}`)
	require.Equal(t, http.StatusInternalServerError, rec.Code)
	var saveErr models.ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &saveErr))
	assert.Equal(t, "Error saving shipment", saveErr.Message)
	assert.NotEmpty(t, saveErr.Error)
}

func TestHealthz(t *testing.T) {
	rec := do(t, newEngine(memory.NewShipmentRepository()), http.MethodGet, "/healthz", "")
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = do(t, newEngine(downStore{}), http.MethodGet, "/healthz", "")
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestCORS(t *testing.T) {
	h := newEngine(memory.NewShipmentRepository())

	req := httptest.NewRequest(http.MethodGet, "/api/shipments", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
}

func TestRequestLogLevels(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	svc := shipments.NewService(downStore{}, nil)
	h := New(handlers.NewShipmentHandler(svc, nil), zap.New(core))

	do(t, h, http.MethodGet, "/api/shipments", "")
	do(t, h, http.MethodPost, "/api/submit", "{oops")

	failed := logs.FilterMessage("request failed").All()
	require.Len(t, failed, 1)
	assert.Equal(t, zapcore.ErrorLevel, failed[0].Level)
	assert.Equal(t, "/api/shipments", failed[0].ContextMap()["route"])

	rejected := logs.FilterMessage("request rejected").All()
	require.Len(t, rejected, 1)
	assert.Equal(t, int64(http.StatusBadRequest), rejected[0].ContextMap()["status"])
}
