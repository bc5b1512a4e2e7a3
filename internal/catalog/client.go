package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/tillworks/pos-terminal/pkg/config"
	pkgerrors "github.com/tillworks/pos-terminal/pkg/errors"
)

// TaxRule mirrors the catalog's tax attachment for a product.
type TaxRule struct {
	Name    string          `json:"name"`
	Percent decimal.Decimal `json:"percent"`
}

// Product is the catalog record returned by search or barcode lookup. Stock
// is authoritative only at the moment of the call; the terminal treats it as
// an advisory ceiling and the server re-validates at submission time.
type Product struct {
	ID        uuid.UUID        `json:"id"`
	Name      string           `json:"name"`
	Barcode   string           `json:"barcode,omitempty"`
	SalePrice decimal.Decimal  `json:"sale_price"`
	CostPrice *decimal.Decimal `json:"cost_price,omitempty"`
	Stock     int              `json:"stock"`
	Tax       *TaxRule         `json:"tax,omitempty"`
}

// Client is the catalog lookup surface the checkout screen consumes.
type Client interface {
	Search(ctx context.Context, term string) ([]Product, error)
	ByBarcode(ctx context.Context, code string) (*Product, error)
	Product(ctx context.Context, id uuid.UUID) (*Product, error)
}

type httpClient struct {
	baseURL string
	client  *http.Client
}

// NewHTTPClient builds the catalog client from config.
func NewHTTPClient(cfg config.CatalogConfig) (Client, error) {
	if cfg.BaseURL == "" {
		return nil, fmt.Errorf("catalog base url required")
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return &httpClient{
		baseURL: cfg.BaseURL,
		client:  &http.Client{Timeout: timeout},
	}, nil
}

func (c *httpClient) Search(ctx context.Context, term string) ([]Product, error) {
	endpoint := fmt.Sprintf("%s/products?query=%s", c.baseURL, url.QueryEscape(term))
	var out []Product
	if err := c.getJSON(ctx, endpoint, &out); err != nil {
		if typed := pkgerrors.As(err); typed != nil && typed.Code() == pkgerrors.CodeNotFound {
			return nil, nil
		}
		return nil, err
	}
	return out, nil
}

func (c *httpClient) ByBarcode(ctx context.Context, code string) (*Product, error) {
	endpoint := fmt.Sprintf("%s/products/barcode/%s", c.baseURL, url.PathEscape(code))
	var out Product
	if err := c.getJSON(ctx, endpoint, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *httpClient) Product(ctx context.Context, id uuid.UUID) (*Product, error) {
	endpoint := fmt.Sprintf("%s/products/%s", c.baseURL, id)
	var out Product
	if err := c.getJSON(ctx, endpoint, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *httpClient) getJSON(ctx context.Context, endpoint string, dest any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "building catalog request")
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "catalog service unreachable")
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
	case resp.StatusCode < 200 || resp.StatusCode > 299:
		return pkgerrors.New(pkgerrors.CodeDependency, fmt.Sprintf("catalog service returned %d", resp.StatusCode))
	}

	if err := json.NewDecoder(resp.Body).Decode(dest); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "decoding catalog response")
	}
	return nil
}
