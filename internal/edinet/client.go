package edinet

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/ternarybob/arbor"
	"golang.org/x/time/rate"
)

const (
	// DefaultBaseURL is the base URL for the EDINET API v2.
	DefaultBaseURL = "https://api.edinet-fsa.go.jp/api/v2"

	// DefaultTimeout is the default HTTP timeout. Downloads of large ZIPs may need more.
	DefaultTimeout = 60 * time.Second

	// DefaultRequestInterval keeps consecutive calls under ~3 requests per second.
	DefaultRequestInterval = 350 * time.Millisecond
)

// Client is an EDINET API client. Calls are spaced by at least the request
// interval; a Client is safe for concurrent use.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
	logger     arbor.ILogger
	limiter    *rate.Limiter
}

// ClientOption configures the Client.
type ClientOption func(*Client)

// WithBaseURL sets a custom base URL.
func WithBaseURL(baseURL string) ClientOption {
	return func(c *Client) {
		c.baseURL = baseURL
	}
}

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(httpClient *http.Client) ClientOption {
	return func(c *Client) {
		c.httpClient = httpClient
	}
}

// WithLogger sets a logger.
func WithLogger(logger arbor.ILogger) ClientOption {
	return func(c *Client) {
		c.logger = logger
	}
}

// WithRequestInterval sets the minimum delay between consecutive calls.
// A non-positive interval disables spacing.
func WithRequestInterval(interval time.Duration) ClientOption {
	return func(c *Client) {
		c.limiter = newLimiter(interval)
	}
}

// NewClient creates a new EDINET API client.
func NewClient(apiKey string, opts ...ClientOption) *Client {
	c := &Client{
		baseURL: DefaultBaseURL,
		apiKey:  apiKey,
		httpClient: &http.Client{
			Timeout: DefaultTimeout,
		},
		limiter: newLimiter(DefaultRequestInterval),
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

func newLimiter(interval time.Duration) *rate.Limiter {
	if interval <= 0 {
		return rate.NewLimiter(rate.Inf, 1)
	}
	return rate.NewLimiter(rate.Every(interval), 1)
}

// SearchDocuments lists filings submitted on date (YYYY-MM-DD) and applies filters.
func (c *Client) SearchDocuments(ctx context.Context, date string, filters SearchFilters) ([]Document, error) {
	params := url.Values{}
	params.Set("date", date)
	params.Set("type", "2") // metadata and document list

	resp, err := c.get(ctx, "/documents.json", params)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	var result documentsResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("%w: failed to decode response: %v", ErrRemoteCall, err)
	}

	if result.Metadata.Status != "200" {
		status, _ := strconv.Atoi(result.Metadata.Status)
		return nil, &APIError{
			StatusCode: status,
			Message:    result.Metadata.Message,
			Endpoint:   "/documents.json",
		}
	}

	docs := FilterDocuments(result.Results, filters)

	if c.logger != nil {
		c.logger.Debug().
			Str("date", date).
			Int("total", len(result.Results)).
			Int("matched", len(docs)).
			Msg("EDINET documents searched")
	}

	return docs, nil
}

// FilterDocuments applies filters to docs, preserving order.
func FilterDocuments(docs []Document, filters SearchFilters) []Document {
	matched := make([]Document, 0, len(docs))
	for _, d := range docs {
		if filters.SecCode != "" {
			code := str(d.SecCode)
			if code == "" || prefix4(code) != prefix4(filters.SecCode) {
				continue
			}
		}
		if filters.OrdinanceCode != "" && str(d.OrdinanceCode) != filters.OrdinanceCode {
			continue
		}
		if filters.FormCode != "" && str(d.FormCode) != filters.FormCode {
			continue
		}
		matched = append(matched, d)
	}
	return matched
}

func prefix4(s string) string {
	if len(s) > 4 {
		return s[:4]
	}
	return s
}

// DownloadDocument fetches docID in the given format and writes it to outputPath,
// creating parent directories. It returns the written path.
func (c *Client) DownloadDocument(ctx context.Context, docID string, docType DocumentType, outputPath string) (string, error) {
	if !docType.Valid() {
		return "", fmt.Errorf("%w: %q", ErrInvalidDocumentType, docType)
	}

	params := url.Values{}
	params.Set("type", string(docType))

	endpoint := "/documents/" + url.PathEscape(docID)
	resp, err := c.get(ctx, endpoint, params)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	// Errors for unknown documents arrive as HTTP 200 with a JSON body.
	if mediaType, _, _ := mime.ParseMediaType(resp.Header.Get("Content-Type")); mediaType == "application/json" {
		return "", decodeJSONError(resp.Body, endpoint)
	}

	if err := os.MkdirAll(filepath.Dir(outputPath), 0755); err != nil {
		return "", fmt.Errorf("failed to create output directory: %w", err)
	}

	f, err := os.Create(outputPath)
	if err != nil {
		return "", fmt.Errorf("failed to create output file: %w", err)
	}

	written, err := io.Copy(f, resp.Body)
	closeErr := f.Close()
	if err != nil {
		os.Remove(outputPath)
		return "", fmt.Errorf("%w: download interrupted: %v", ErrRemoteCall, err)
	}
	if closeErr != nil {
		return "", fmt.Errorf("failed to write output file: %w", closeErr)
	}

	if c.logger != nil {
		c.logger.Debug().
			Str("doc_id", docID).
			Str("type", string(docType)).
			Int64("bytes", written).
			Str("path", outputPath).
			Msg("EDINET document downloaded")
	}

	return outputPath, nil
}

// get waits for the limiter and performs a GET request. The caller closes the body.
func (c *Client) get(ctx context.Context, path string, params url.Values) (*http.Response, error) {
	if c.apiKey == "" {
		return nil, ErrMissingAPIKey
	}

	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrRemoteCall, err)
	}

	params.Set("Subscription-Key", c.apiKey)
	reqURL := fmt.Sprintf("%s%s?%s", c.baseURL, path, params.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	if c.logger != nil {
		c.logger.Debug().
			Str("url", c.baseURL+path).
			Msg("EDINET API request")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrRemoteCall, err)
	}

	if resp.StatusCode != http.StatusOK {
		defer resp.Body.Close()
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return nil, &APIError{
			StatusCode: resp.StatusCode,
			Message:    string(body),
			Endpoint:   path,
		}
	}

	return resp, nil
}

// decodeJSONError turns a JSON error body into an APIError.
func decodeJSONError(body io.Reader, endpoint string) error {
	var payload struct {
		Metadata struct {
			Status  string `json:"status"`
			Message string `json:"message"`
		} `json:"metadata"`
		StatusCode int    `json:"StatusCode"`
		Message    string `json:"message"`
	}
	if err := json.NewDecoder(body).Decode(&payload); err != nil {
		return fmt.Errorf("%w: unexpected JSON response: %v", ErrRemoteCall, err)
	}

	apiErr := &APIError{Endpoint: endpoint, StatusCode: payload.StatusCode, Message: payload.Message}
	if payload.Metadata.Status != "" {
		apiErr.StatusCode, _ = strconv.Atoi(payload.Metadata.Status)
		apiErr.Message = payload.Metadata.Message
	}
	return apiErr
}
