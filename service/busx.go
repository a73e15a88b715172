package service

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"busx-cli/model"
)

const (
	defaultBaseURL     = "http://localhost:8640/api"
	defaultUserAgent   = "busx-cli"
	defaultMaxAttempts = 3
	defaultRetryBase   = 200 * time.Millisecond
	defaultRetryCap    = 1200 * time.Millisecond
)

// Client wraps HTTP access to the BusX booking API.
type Client struct {
	httpClient  *http.Client
	baseURL     string
	userAgent   string
	maxAttempts int
	retryBase   time.Duration
	retryCap    time.Duration
}

// APIError is returned when the BusX API responds with a non-2xx status.
type APIError struct {
	StatusCode int
	Status     string
	Endpoint   string
	Body       string
}

func (e *APIError) Error() string {
	if e == nil {
		return "busx api error"
	}
	return fmt.Sprintf("busx api error: %s: %s", e.Status, e.Body)
}

// IsNotFound reports whether the error represents a 404 from the API.
func IsNotFound(err error) bool {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode == http.StatusNotFound
	}
	return false
}

// NewClient creates a new API client. A nil httpClient gets a default with
// a timeout; an empty baseURL falls back to the local mock server.
func NewClient(httpClient *http.Client, baseURL string) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 12 * time.Second}
	}
	if strings.TrimSpace(baseURL) == "" {
		baseURL = defaultBaseURL
	}
	return &Client{
		httpClient:  httpClient,
		baseURL:     strings.TrimRight(baseURL, "/"),
		userAgent:   defaultUserAgent,
		maxAttempts: defaultMaxAttempts,
		retryBase:   defaultRetryBase,
		retryCap:    defaultRetryCap,
	}
}

// GetAgencies returns the static agency reference list.
func (c *Client) GetAgencies(ctx context.Context) ([]model.Agency, error) {
	endpoint := fmt.Sprintf("%s/reference/agencies", c.baseURL)

	var agencies []model.Agency
	if err := c.getJSON(ctx, endpoint, &agencies); err != nil {
		return nil, err
	}
	if len(agencies) == 0 {
		return nil, errors.New("no agencies found")
	}
	return agencies, nil
}

// GetSchedules searches trips between two agencies on a calendar day. The
// server matches by day in the agencies' local sense, so only the date
// part is sent.
func (c *Client) GetSchedules(ctx context.Context, fromID string, toID string, date time.Time) ([]model.Schedule, error) {
	if fromID == "" || toID == "" {
		return nil, errors.New("departure and arrival agency ids are required")
	}

	query := url.Values{}
	query.Set("from", fromID)
	query.Set("to", toID)
	query.Set("date", date.Format(time.DateOnly))
	endpoint := fmt.Sprintf("%s/schedules?%s", c.baseURL, query.Encode())

	var schedules []model.Schedule
	if err := c.getJSON(ctx, endpoint, &schedules); err != nil {
		return nil, err
	}
	return schedules, nil
}

// GetSeatMap fetches the seat schema for a trip. Unknown trip ids surface
// as a not-found APIError.
func (c *Client) GetSeatMap(ctx context.Context, tripID string) (model.SeatMap, error) {
	if tripID == "" {
		return model.SeatMap{}, errors.New("trip id is required")
	}
	endpoint := fmt.Sprintf("%s/seatSchemas/%s", c.baseURL, url.PathEscape(tripID))

	var seatMap model.SeatMap
	if err := c.getJSON(ctx, endpoint, &seatMap); err != nil {
		return model.SeatMap{}, err
	}
	return seatMap, nil
}

// SellTickets submits the frozen booking snapshot. A 2xx response with
// ok=false is a domain rejection and comes back as a value, not an error;
// only transport and protocol failures return errors. The request is sent
// exactly once: a sale is not idempotent, so there is no retry loop here.
func (c *Client) SellTickets(ctx context.Context, req model.TicketSaleRequest) (model.TicketSaleResponse, error) {
	endpoint := fmt.Sprintf("%s/tickets/sell", c.baseURL)

	var res model.TicketSaleResponse
	if err := c.postJSON(ctx, endpoint, req, &res); err != nil {
		return model.TicketSaleResponse{}, err
	}
	return res, nil
}

func (c *Client) getJSON(ctx context.Context, endpoint string, out any) error {
	maxAttempts := c.maxAttempts
	if maxAttempts < 1 {
		maxAttempts = 1
	}

	for attempt := 1; attempt <= maxAttempts; attempt++ {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
		if err != nil {
			return fmt.Errorf("create request: %w", err)
		}
		req.Header.Set("User-Agent", c.userAgent)
		req.Header.Set("Accept", "application/json")

		res, err := c.httpClient.Do(req)
		if err != nil {
			if c.shouldRetryNetworkError(err) && attempt < maxAttempts {
				if waitErr := c.waitRetry(ctx, attempt); waitErr != nil {
					return waitErr
				}
				continue
			}
			return fmt.Errorf("request failed: %w", err)
		}

		if res.StatusCode < http.StatusOK || res.StatusCode >= http.StatusMultipleChoices {
			apiErr := newAPIError(res, endpoint)
			if c.shouldRetryStatus(res.StatusCode) && attempt < maxAttempts {
				if waitErr := c.waitRetry(ctx, attempt); waitErr != nil {
					return waitErr
				}
				continue
			}
			return apiErr
		}

		err = decodeBody(res, out)
		if err != nil {
			return fmt.Errorf("decode response from %s: %w", endpoint, err)
		}
		return nil
	}

	return errors.New("request failed after retries")
}

func (c *Client) postJSON(ctx context.Context, endpoint string, in any, out any) error {
	payload, err := json.Marshal(in)
	if err != nil {
		return fmt.Errorf("encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Content-Type", "application/json")

	res, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}

	if res.StatusCode < http.StatusOK || res.StatusCode >= http.StatusMultipleChoices {
		return newAPIError(res, endpoint)
	}

	if err := decodeBody(res, out); err != nil {
		return fmt.Errorf("decode response from %s: %w", endpoint, err)
	}
	return nil
}

func newAPIError(res *http.Response, endpoint string) *APIError {
	snippet, _ := io.ReadAll(io.LimitReader(res.Body, 8<<10))
	_ = res.Body.Close()
	return &APIError{
		StatusCode: res.StatusCode,
		Status:     res.Status,
		Endpoint:   endpoint,
		Body:       strings.TrimSpace(string(snippet)),
	}
}

func decodeBody(res *http.Response, out any) error {
	dec := json.NewDecoder(res.Body)
	err := dec.Decode(out)
	_ = res.Body.Close()
	if err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return nil
}

func (c *Client) shouldRetryStatus(code int) bool {
	return code == http.StatusTooManyRequests || code >= http.StatusInternalServerError
}

func (c *Client) shouldRetryNetworkError(err error) bool {
	if err == nil {
		return false
	}
	return !errors.Is(err, context.Canceled) && !errors.Is(err, context.DeadlineExceeded)
}

func (c *Client) waitRetry(ctx context.Context, attempt int) error {
	delay := c.retryDelay(attempt)
	timer := time.NewTimer(delay)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

func (c *Client) retryDelay(attempt int) time.Duration {
	if attempt < 1 {
		attempt = 1
	}
	base := c.retryBase
	if base <= 0 {
		base = defaultRetryBase
	}
	cap := c.retryCap
	if cap <= 0 {
		cap = defaultRetryCap
	}

	delay := base
	for i := 1; i < attempt; i++ {
		if delay >= cap/2 {
			return cap
		}
		delay *= 2
	}
	if delay > cap {
		return cap
	}
	return delay
}
