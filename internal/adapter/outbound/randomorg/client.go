package randomorg

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/0xsj/overwatch-mastermind/internal/port/outbound/generator"
)

const (
	// DefaultBaseURL is the public random.org HTTP API.
	DefaultBaseURL = "https://www.random.org"

	maxErrorBody = 512
	maxQuotaBody = 64

	// maxLineBytes covers one signed 64-bit integer plus CRLF.
	maxLineBytes = 22
)

// Config holds configuration for the random.org client.
type Config struct {
	BaseURL string
	Timeout time.Duration
}

// DefaultConfig returns default client configuration.
func DefaultConfig() Config {
	return Config{
		BaseURL: DefaultBaseURL,
		Timeout: 10 * time.Second,
	}
}

// client implements generator.CodeGenerator against the random.org plain-text API.
type client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient creates a new CodeGenerator backed by random.org.
func NewClient(config Config) generator.CodeGenerator {
	baseURL := strings.TrimRight(config.BaseURL, "/")
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &client{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: config.Timeout},
	}
}

func (c *client) Generate(ctx context.Context, qty, min, max int) ([]int, error) {
	if qty < 1 || min > max {
		return nil, fmt.Errorf("%w: invalid request qty=%d range=[%d,%d]", generator.ErrUnavailable, qty, min, max)
	}

	params := url.Values{
		"num":    {strconv.Itoa(qty)},
		"min":    {strconv.Itoa(min)},
		"max":    {strconv.Itoa(max)},
		"col":    {"1"},
		"base":   {"10"},
		"format": {"plain"},
		"rnd":    {"new"},
	}

	body, err := c.get(ctx, "/integers/", params, int64(qty)*maxLineBytes)
	if err != nil {
		return nil, err
	}

	numbers := make([]int, 0, qty)
	scanner := bufio.NewScanner(strings.NewReader(body))
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		n, err := strconv.Atoi(line)
		if err != nil {
			return nil, fmt.Errorf("%w: malformed integer %q", generator.ErrUnavailable, line)
		}
		if n < min || n > max {
			return nil, fmt.Errorf("%w: integer %d outside [%d,%d]", generator.ErrUnavailable, n, min, max)
		}
		numbers = append(numbers, n)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("%w: failed to read integers: %v", generator.ErrUnavailable, err)
	}
	if len(numbers) != qty {
		return nil, fmt.Errorf("%w: got %d integers, want %d", generator.ErrUnavailable, len(numbers), qty)
	}

	return numbers, nil
}

func (c *client) Quota(ctx context.Context) (int64, error) {
	body, err := c.get(ctx, "/quota/", url.Values{"format": {"plain"}}, maxQuotaBody)
	if err != nil {
		return 0, err
	}

	quota, err := strconv.ParseInt(strings.TrimSpace(body), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: malformed quota %q", generator.ErrUnavailable, strings.TrimSpace(body))
	}

	return quota, nil
}

// get fetches path and returns the body, failing when it exceeds limit bytes.
func (c *client) get(ctx context.Context, path string, params url.Values, limit int64) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path+"?"+params.Encode(), nil)
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "text/plain")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: %v", generator.ErrUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return "", fmt.Errorf("%w: status %d: %s", generator.ErrUnavailable, resp.StatusCode, strings.TrimSpace(string(body)))
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, limit+1))
	if err != nil {
		return "", fmt.Errorf("%w: failed to read response: %v", generator.ErrUnavailable, err)
	}
	if int64(len(body)) > limit {
		return "", fmt.Errorf("%w: response exceeds %d bytes", generator.ErrUnavailable, limit)
	}

	return string(body), nil
}
