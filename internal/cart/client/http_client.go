package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	cartdomain "github.com/smallbiznis/storefront/internal/cart/domain"
	"github.com/smallbiznis/storefront/internal/config"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

const defaultRequestTimeout = 10 * time.Second

type HTTPClient struct {
	baseURL string
	http    *http.Client
	log     *zap.Logger
}

type HTTPClientParam struct {
	fx.In

	Cfg config.Config
	Log *zap.Logger
}

func NewHTTPClient(p HTTPClientParam) cartdomain.Client {
	return &HTTPClient{
		baseURL: strings.TrimRight(p.Cfg.CartBaseURL, "/"),
		http:    &http.Client{Timeout: defaultRequestTimeout},
		log:     p.Log.Named("cart.client"),
	}
}

type addItemsRequest struct {
	Items []cartdomain.LineItem `json:"items"`
}

// AddItems submits line items in a single attempt. Non-2xx responses surface
// as *cartdomain.APIError so callers can show the status to the shopper.
func (c *HTTPClient) AddItems(ctx context.Context, items []cartdomain.LineItem) (*cartdomain.CartState, error) {
	if len(items) == 0 {
		return nil, cartdomain.ErrEmptySubmission
	}

	body, err := json.Marshal(addItemsRequest{Items: items})
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/cart/add.js", bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		c.log.Warn("cart add rejected", zap.Int("status", resp.StatusCode))
		return nil, &cartdomain.APIError{Status: resp.StatusCode}
	}

	// The add endpoint echoes the added items; the authoritative snapshot
	// comes from a follow-up GetCart, so the body is drained and dropped.
	return c.GetCart(ctx)
}

// GetCart fetches the live cart snapshot.
func (c *HTTPClient) GetCart(ctx context.Context) (*cartdomain.CartState, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/cart.js", nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &cartdomain.APIError{Status: resp.StatusCode}
	}

	var state cartdomain.CartState
	if err := json.NewDecoder(resp.Body).Decode(&state); err != nil {
		return nil, fmt.Errorf("decode cart: %w", err)
	}
	return &state, nil
}
