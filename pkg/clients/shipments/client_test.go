package shipments

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mamadbah2/shipment-tracker/internal/domain/models"
	"github.com/mamadbah2/shipment-tracker/internal/repository/memory"
	"github.com/mamadbah2/shipment-tracker/internal/server/handlers"
	"github.com/mamadbah2/shipment-tracker/internal/server/router"
	shipmentsvc "github.com/mamadbah2/shipment-tracker/internal/service/shipments"
)

func newServer(t *testing.T) *httptest.Server {
	t.Helper()
	svc := shipmentsvc.NewService(memory.NewShipmentRepository(), nil)
	srv := httptest.NewServer(router.New(handlers.NewShipmentHandler(svc, nil), nil))
	t.Cleanup(srv.Close)
	return srv
}

func TestAPIClient_SubmitThenList(t *testing.T) {
	client := NewClient(newServer(t).URL + "/")
	ctx := context.Background()

	empty, err := client.List(ctx)
	require.NoError(t, err)
	assert.NotNil(t, empty)
	assert.Empty(t, empty)

	resp, err := client.Submit(ctx, models.SubmitRequest{
		Sender:          models.Party{Name: "A", Address: "X"},
		Receiver:        models.Party{Name: "B", Address: "Y"},
		ShipmentDetails: "box",
		TrackerID:       "TRACK-123",
	})
	require.NoError(t, err)
	assert.Equal(t, "Shipment saved successfully", resp.Message)

	records, err := client.List(ctx)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "TRACK-123", records[0].TrackerID)
	assert.Equal(t, "B", records[0].Receiver.Name)
}

func TestAPIClient_ServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusInternalServerError)
		if r.URL.Path == listPath {
			_, _ = w.Write([]byte(`{"message":"Error retrieving shipments","error":"store unavailable"}`))
			return
		}
		_, _ = w.Write([]byte(`{"message":"Error saving shipment","error":"store unavailable"}`))
	}))
	defer srv.Close()
	client := NewClient(srv.URL)

	_, err := client.List(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrNetworkFailure)
	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusInternalServerError, apiErr.StatusCode)
	assert.Equal(t, "Error retrieving shipments", apiErr.Message)
	assert.Equal(t, "store unavailable", apiErr.Detail)

	_, err = client.Submit(context.Background(), models.SubmitRequest{})
	assert.ErrorIs(t, err, ErrNetworkFailure)
	assert.Contains(t, err.Error(), "Error saving shipment")
}

func TestAPIClient_PlainTextError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "bad gateway", http.StatusBadGateway)
	}))
	defer srv.Close()

	_, err := NewClient(srv.URL).List(context.Background())
	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusBadGateway, apiErr.StatusCode)
	assert.Equal(t, "bad gateway", apiErr.Message)
}

func TestAPIClient_Unreachable(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	client := NewClient(url)
	_, err := client.List(context.Background())
	assert.ErrorIs(t, err, ErrNetworkFailure)

	_, err = client.Submit(context.Background(), models.SubmitRequest{})
	assert.ErrorIs(t, err, ErrNetworkFailure)
}
