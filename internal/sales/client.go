package sales

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/tillworks/pos-terminal/internal/checkout"
	"github.com/tillworks/pos-terminal/pkg/config"
	pkgerrors "github.com/tillworks/pos-terminal/pkg/errors"
)

// Receipt is the server acknowledgment of a submitted sale.
type Receipt struct {
	TicketID string `json:"ticket_id"`
}

// Submitter posts a settled checkout payload to the sales service.
type Submitter interface {
	Submit(ctx context.Context, payload checkout.Payload) (*Receipt, error)
}

// TillChecker reports whether the operator has an open cash-drawer session.
// Checkout cannot begin without one.
type TillChecker interface {
	HasOpenTill(ctx context.Context, operatorID string) (bool, error)
}

// Client is the full surface of the remote sales/till service.
type Client interface {
	Submitter
	TillChecker
}

type httpClient struct {
	baseURL string
	client  *http.Client
}

// NewHTTPClient builds the sales client from config.
func NewHTTPClient(cfg config.SalesConfig) (Client, error) {
	if cfg.BaseURL == "" {
		return nil, fmt.Errorf("sales base url required")
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &httpClient{
		baseURL: cfg.BaseURL,
		client:  &http.Client{Timeout: timeout},
	}, nil
}

// Submit posts the payload. The server re-validates stock against its ledger:
// a locally valid cart can still come back as insufficient stock here.
func (c *httpClient) Submit(ctx context.Context, payload checkout.Payload) (*Receipt, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "encoding sale payload")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/sales", bytes.NewReader(body))
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "building sale request")
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "sales service unreachable")
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK, http.StatusCreated:
		var receipt Receipt
		if err := json.NewDecoder(resp.Body).Decode(&receipt); err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "decoding sale receipt")
		}
		return &receipt, nil
	case http.StatusConflict, http.StatusUnprocessableEntity:
		return nil, pkgerrors.New(pkgerrors.CodeInsufficientStock, "stock re-validation failed at submission").WithDetails(decodeErrorBody(resp))
	case http.StatusUnauthorized, http.StatusForbidden:
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "sales service rejected credentials")
	default:
		return nil, pkgerrors.New(pkgerrors.CodeDependency, fmt.Sprintf("sales service returned %d", resp.StatusCode))
	}
}

// HasOpenTill checks for an open cash-drawer session for the operator.
func (c *httpClient) HasOpenTill(ctx context.Context, operatorID string) (bool, error) {
	endpoint := fmt.Sprintf("%s/till-sessions/current?operator_id=%s", c.baseURL, operatorID)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return false, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "building till request")
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return false, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "sales service unreachable")
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
		return true, nil
	case http.StatusNotFound:
		return false, nil
	default:
		return false, pkgerrors.New(pkgerrors.CodeDependency, fmt.Sprintf("sales service returned %d", resp.StatusCode))
	}
}

func decodeErrorBody(resp *http.Response) map[string]any {
	var details map[string]any
	if err := json.NewDecoder(resp.Body).Decode(&details); err != nil {
		return nil
	}
	return details
}
