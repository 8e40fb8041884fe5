package client

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/fekuna/omnipos-inventory-service/internal/model"
	"github.com/fekuna/omnipos-inventory-service/internal/product"
	"github.com/fekuna/omnipos-inventory-service/pkg/logger"
	"go.uber.org/zap"
)

type Config struct {
	BaseURL string
	Timeout time.Duration
	Retries int
}

// HTTPClient calls the product service REST API.
type HTTPClient struct {
	baseURL string
	retries int
	http    *http.Client
	logger  logger.ZapLogger
}

func NewHTTPClient(cfg *Config, log logger.ZapLogger) *HTTPClient {
	return &HTTPClient{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		retries: cfg.Retries,
		http:    &http.Client{Timeout: cfg.Timeout},
		logger:  log,
	}
}

var _ product.Gate = (*HTTPClient)(nil)

type productEnvelope struct {
	Data model.Product `json:"data"`
}

func (c *HTTPClient) GetProductByID(ctx context.Context, id int64) (*model.Product, error) {
	var p *model.Product

	op := func() error {
		got, err := c.fetch(ctx, id)
		if err != nil {
			return err
		}
		p = got
		return nil
	}

	policy := backoff.WithContext(
		backoff.WithMaxRetries(backoff.NewExponentialBackOff(
			backoff.WithInitialInterval(100*time.Millisecond),
			backoff.WithMaxInterval(time.Second),
		), uint64(c.retries)),
		ctx,
	)

	notify := func(err error, wait time.Duration) {
		c.logger.Warn("product lookup failed, retrying",
			zap.Int64("product_id", id),
			zap.Duration("backoff", wait),
			zap.Error(err),
		)
	}

	if err := backoff.RetryNotify(op, policy, notify); err != nil {
		if errors.Is(err, product.ErrProductNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %v", product.ErrUnavailable, err)
	}
	return p, nil
}

func (c *HTTPClient) fetch(ctx context.Context, id int64) (*model.Product, error) {
	url := fmt.Sprintf("%s/api/products/%d", c.baseURL, id)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, backoff.Permanent(err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return nil, backoff.Permanent(product.ErrProductNotFound)
	case resp.StatusCode >= 500:
		return nil, fmt.Errorf("product service returned %d", resp.StatusCode)
	case resp.StatusCode != http.StatusOK:
		return nil, backoff.Permanent(fmt.Errorf("product service returned %d", resp.StatusCode))
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	var env productEnvelope
	if err := json.Unmarshal(body, &env); err != nil {
		return nil, backoff.Permanent(fmt.Errorf("decode product: %w", err))
	}
	if env.Data.ID == 0 {
		env.Data.ID = id
	}
	return &env.Data, nil
}
