// Package paygate is the HTTP client of the payment gateway orders API.
package paygate

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"time"

	"github.com/fsdevblog/learnmarket/internal/domain"
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
)

const RouteOrders = "/v1/orders"

const (
	defaultTimeout       = 10 * time.Second
	defaultMaxRetries    = 2
	defaultMaxWait       = 5 * time.Second
	defaultRetryAfter    = 60
	minRetryAfter        = 1
	maxRetryAfter        = 120
	maxErrorBodyBytes    = 4 << 10
	maxResponseBodyBytes = 1 << 20
	headerRetryAfter     = "Retry-After"
	headerContentType    = "Content-Type"
	contentTypeJSON      = "application/json"
)

// HTTPClient creates gateway orders. The key pair is only used for basic auth of API calls.
type HTTPClient struct {
	baseURL    string
	keyID      string
	keySecret  string
	httpClient *http.Client
	maxRetries int
	// maxWait caps the Retry-After pause.
	maxWait time.Duration
}

func New(baseURL, keyID, keySecret string) *HTTPClient {
	return &HTTPClient{
		baseURL:    baseURL,
		keyID:      keyID,
		keySecret:  keySecret,
		httpClient: &http.Client{Timeout: defaultTimeout},
		maxRetries: defaultMaxRetries,
		maxWait:    defaultMaxWait,
	}
}

// SetMaxRetries sets how many times a throttled request is repeated.
func (c *HTTPClient) SetMaxRetries(n int) *HTTPClient {
	if n >= 0 {
		c.maxRetries = n
	}
	return c
}

// SetHTTPClient replaces the underlying http client.
func (c *HTTPClient) SetHTTPClient(hc *http.Client) *HTTPClient {
	c.httpClient = hc
	return c
}

// CreateOrder creates an order on the gateway. A throttled request is repeated after the Retry-After pause
// while retries are left and the pause fits into maxWait.
// Errors: *StatusCodeError for non 2xx answers, *TooManyRequestError when retries are exhausted.
func (c *HTTPClient) CreateOrder(ctx context.Context, args domain.CreateOrderArgs) (*domain.Order, error) {
	for attempt := 0; ; attempt++ {
		order, err := c.createOrder(ctx, args)
		if err == nil {
			return order, nil
		}

		var tooManyReq *TooManyRequestError
		if !errors.As(err, &tooManyReq) || attempt >= c.maxRetries || tooManyReq.RetryAfter > c.maxWait {
			return nil, err
		}

		select {
		case <-ctx.Done():
			return nil, errors.Wrap(ctx.Err(), "create order")
		case <-time.After(tooManyReq.RetryAfter):
		}
	}
}

//nolint:nonamedreturns
func (c *HTTPClient) createOrder(ctx context.Context, args domain.CreateOrderArgs) (order *domain.Order, err error) {
	payload, marshalErr := json.Marshal(createOrderRequest{
		Amount:   args.Amount,
		Currency: args.Currency,
		Receipt:  args.Receipt,
		Notes:    args.Notes,
	})
	if marshalErr != nil {
		return nil, errors.Wrap(marshalErr, "marshal request")
	}

	req, reqErr := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+RouteOrders, bytes.NewReader(payload))
	if reqErr != nil {
		return nil, errors.Wrap(reqErr, "create request")
	}
	req.SetBasicAuth(c.keyID, c.keySecret)
	req.Header.Set(headerContentType, contentTypeJSON)

	resp, doErr := c.httpClient.Do(req)
	if doErr != nil {
		return nil, errors.Wrap(doErr, "do request")
	}
	defer func() {
		if closeErr := resp.Body.Close(); closeErr != nil && err == nil {
			err = errors.Wrap(closeErr, "close body")
		}
	}()

	if resp.StatusCode == http.StatusTooManyRequests {
		return nil, NewTooManyRequestError(parseRetryAfter(resp.Header.Get(headerRetryAfter)))
	}

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		// drain a bit of the body so the connection can be reused.
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, maxErrorBodyBytes))
		return nil, NewStatusCodeError(resp.StatusCode)
	}

	var response orderResponse
	if decodeErr := json.NewDecoder(io.LimitReader(resp.Body, maxResponseBodyBytes)).Decode(&response); decodeErr != nil {
		return nil, errors.Wrap(decodeErr, "parse response")
	}
	if response.ID == "" {
		return nil, errors.New("parse response: empty order id")
	}
	return response.toDomain(), nil
}

// parseRetryAfter accepts seconds in [minRetryAfter, maxRetryAfter], anything else means defaultRetryAfter.
func parseRetryAfter(value string) time.Duration {
	minValue := decimal.NewFromInt(minRetryAfter)
	maxValue := decimal.NewFromInt(maxRetryAfter)

	retryAfter, parseErr := decimal.NewFromString(value)
	if parseErr != nil || retryAfter.LessThan(minValue) || retryAfter.GreaterThan(maxValue) {
		retryAfter = decimal.NewFromInt(defaultRetryAfter)
	}
	return time.Duration(retryAfter.IntPart()) * time.Second
}
