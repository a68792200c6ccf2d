package contracts

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/avast/retry-go/v4"
)

const (
	defaultRetryAttempts = 3
	defaultRetryDelay    = 200 * time.Millisecond
	maxResponseSize      = 16 << 20
)

// HTTPSource reads interface files from the console's web server:
//
//	GET /api/abis/versions              {"versions": [...]}
//	GET /api/abis/<version>/contracts   {"contracts": [...]}
//	GET /abis/<version>/<Name>.json
//	GET /abis/<version>/version.yaml
//
// Transport errors and 5xx responses are retried.
type HTTPSource struct {
	baseURL  string
	client   *http.Client
	attempts uint
	delay    time.Duration
}

var _ Source = (*HTTPSource)(nil)

// HTTPOption configures an HTTPSource.
type HTTPOption func(*HTTPSource)

func WithHTTPClient(c *http.Client) HTTPOption {
	return func(s *HTTPSource) { s.client = c }
}

// WithRetry sets how many times a request is attempted and the base delay between attempts.
func WithRetry(attempts uint, delay time.Duration) HTTPOption {
	return func(s *HTTPSource) {
		s.attempts = attempts
		s.delay = delay
	}
}

func NewHTTPSource(baseURL string, opts ...HTTPOption) *HTTPSource {
	s := &HTTPSource{
		baseURL:  strings.TrimSuffix(baseURL, "/"),
		client:   &http.Client{Timeout: 30 * time.Second},
		attempts: defaultRetryAttempts,
		delay:    defaultRetryDelay,
	}
	for _, opt := range opts {
		opt(s)
	}

	return s
}

func (s *HTTPSource) Versions(ctx context.Context) ([]string, error) {
	var resp struct {
		Versions []string `json:"versions"`
	}
	if err := s.getJSON(ctx, "/api/abis/versions", &resp); err != nil {
		return nil, fmt.Errorf("failed to list versions: %w", err)
	}

	return resp.Versions, nil
}

func (s *HTTPSource) Contracts(ctx context.Context, version string) ([]string, error) {
	if err := checkName(version); err != nil {
		return nil, err
	}
	var resp struct {
		Contracts []string `json:"contracts"`
	}
	if err := s.getJSON(ctx, "/api/abis/"+url.PathEscape(version)+"/contracts", &resp); err != nil {
		return nil, fmt.Errorf("failed to list contracts of version %s: %w", version, err)
	}

	return resp.Contracts, nil
}

func (s *HTTPSource) ReadContract(ctx context.Context, version, name string) ([]byte, error) {
	if err := checkName(version); err != nil {
		return nil, err
	}
	if err := checkName(name); err != nil {
		return nil, err
	}
	raw, err := s.get(ctx, "/abis/"+url.PathEscape(version)+"/"+url.PathEscape(name)+".json")
	if err != nil {
		return nil, fmt.Errorf("failed to load contract %s in version %s: %w", name, version, err)
	}

	return raw, nil
}

func (s *HTTPSource) ReadMetadata(ctx context.Context, version string) (VersionMetadata, error) {
	if err := checkName(version); err != nil {
		return VersionMetadata{}, err
	}
	raw, err := s.get(ctx, "/abis/"+url.PathEscape(version)+"/"+metadataFile)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return VersionMetadata{}, nil
		}

		return VersionMetadata{}, fmt.Errorf("failed to load metadata of version %s: %w", version, err)
	}

	return parseMetadata(raw)
}

func (s *HTTPSource) getJSON(ctx context.Context, path string, v any) error {
	raw, err := s.get(ctx, path)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(raw, v); err != nil {
		return fmt.Errorf("failed to decode %s: %w", path, err)
	}

	return nil
}

func (s *HTTPSource) get(ctx context.Context, path string) ([]byte, error) {
	return retry.DoWithData(func() ([]byte, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.baseURL+path, nil)
		if err != nil {
			return nil, retry.Unrecoverable(fmt.Errorf("failed to build request for %s: %w", path, err))
		}
		resp, err := s.client.Do(req)
		if err != nil {
			return nil, fmt.Errorf("failed to fetch %s: %w", path, err)
		}
		defer resp.Body.Close()

		switch {
		case resp.StatusCode == http.StatusNotFound:
			return nil, retry.Unrecoverable(fmt.Errorf("%s: %w", path, ErrNotFound))
		case resp.StatusCode >= http.StatusInternalServerError:
			return nil, fmt.Errorf("fetching %s: unexpected status %s", path, resp.Status)
		case resp.StatusCode != http.StatusOK:
			return nil, retry.Unrecoverable(fmt.Errorf("fetching %s: unexpected status %s", path, resp.Status))
		}

		body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
		if err != nil {
			return nil, fmt.Errorf("failed to read %s: %w", path, err)
		}

		return body, nil
	},
		retry.Context(ctx),
		retry.Attempts(s.attempts),
		retry.Delay(s.delay),
		retry.LastErrorOnly(true),
	)
}
