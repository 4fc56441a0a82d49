package shipments

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/mamadbah2/shipment-tracker/internal/domain/models"
)

// ErrNetworkFailure wraps every failed call to the shipment API, whether the
// request never completed or the server answered with an error status.
var ErrNetworkFailure = errors.New("shipment api request failed")

const (
	listPath   = "/api/shipments"
	submitPath = "/api/submit"
)

// Client exposes the shipment API operations used by the CLI.
type Client interface {
	List(ctx context.Context) ([]models.ShipmentRecord, error)
	Submit(ctx context.Context, req models.SubmitRequest) (*models.MessageResponse, error)
}

// APIError carries an error status and the server's {message, error} payload.
type APIError struct {
	StatusCode int
	Message    string
	Detail     string
}

func (e *APIError) Error() string {
	if e.Detail == "" {
		return fmt.Sprintf("status %d: %s", e.StatusCode, e.Message)
	}
	return fmt.Sprintf("status %d: %s: %s", e.StatusCode, e.Message, e.Detail)
}

// APIClient is a resty-backed implementation of Client.
type APIClient struct {
	httpClient *resty.Client
}

// NewClient builds an API client rooted at baseURL.
func NewClient(baseURL string) *APIClient {
	restyClient := resty.New().
		SetBaseURL(strings.TrimSuffix(baseURL, "/")).
		SetHeader("Content-Type", "application/json").
		SetHeader("Accept", "application/json").
		SetTimeout(15 * time.Second)

	return &APIClient{httpClient: restyClient}
}

// List fetches every stored shipment.
func (c *APIClient) List(ctx context.Context) ([]models.ShipmentRecord, error) {
	var records []models.ShipmentRecord
	apiErr := new(models.ErrorResponse)

	resp, err := c.httpClient.R().
		SetContext(ctx).
		SetResult(&records).
		SetError(apiErr).
		Get(listPath)
	if err != nil {
		return nil, fmt.Errorf("list shipments: %w: %w", ErrNetworkFailure, err)
	}
	if resp.IsError() {
		return nil, fmt.Errorf("list shipments: %w: %w", ErrNetworkFailure, toAPIError(resp, apiErr))
	}

	if records == nil {
		records = []models.ShipmentRecord{}
	}
	return records, nil
}

// Submit registers a shipment.
func (c *APIClient) Submit(ctx context.Context, req models.SubmitRequest) (*models.MessageResponse, error) {
	result := new(models.MessageResponse)
	apiErr := new(models.ErrorResponse)

	resp, err := c.httpClient.R().
		SetContext(ctx).
		SetBody(req).
		SetResult(result).
		SetError(apiErr).
		Post(submitPath)
	if err != nil {
		return nil, fmt.Errorf("submit shipment: %w: %w", ErrNetworkFailure, err)
	}
	if resp.IsError() {
		return nil, fmt.Errorf("submit shipment: %w: %w", ErrNetworkFailure, toAPIError(resp, apiErr))
	}

	return result, nil
}

func toAPIError(resp *resty.Response, payload *models.ErrorResponse) *APIError {
	out := &APIError{StatusCode: resp.StatusCode()}
	if payload != nil && payload.Message != "" {
		out.Message = payload.Message
		out.Detail = payload.Error
		return out
	}
	out.Message = strings.TrimSpace(resp.String())
	if out.Message == "" {
		out.Message = resp.Status()
	}
	return out
}
