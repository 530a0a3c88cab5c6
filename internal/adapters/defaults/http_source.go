package defaults

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"respawn-map-service/internal/domain"
	"respawn-map-service/internal/platform/obs"
	"time"

	"github.com/hashicorp/go-retryablehttp"
	"github.com/rs/zerolog/log"
)

// HTTPSource fetches the default respawn list from a URL.
//
// Retries are off unless configured; the caller falls back to an empty list
// on any error.
type HTTPSource struct {
	url    string
	client *retryablehttp.Client
}

func NewHTTPSource(url string, retries int) *HTTPSource {
	c := retryablehttp.NewClient()
	c.RetryMax = retries
	c.RetryWaitMin = 200 * time.Millisecond
	c.RetryWaitMax = 2 * time.Second
	c.HTTPClient.Timeout = 10 * time.Second
	c.Logger = nil
	c.ResponseLogHook = logResponse

	return &HTTPSource{url: url, client: c}
}

func (s *HTTPSource) FetchDefaults(ctx context.Context) (_ []domain.RespawnPoint, err error) {
	defer obs.Time(ctx, "defaults.http.Fetch")(&err)

	req, err := retryablehttp.NewRequestWithContext(ctx, http.MethodGet, s.url, nil)
	if err != nil {
		return nil, fmt.Errorf("fetch default respawn list: create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch default respawn list: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetch default respawn list: unexpected status: %d", resp.StatusCode)
	}

	b, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("fetch default respawn list: read body: %w", err)
	}
	return decodeList(b)
}

func logResponse(_ retryablehttp.Logger, r *http.Response) {
	ev := log.Debug()
	if r.StatusCode >= 400 {
		ev = log.Warn()
	}
	ev.Str("method", r.Request.Method).
		Stringer("url", r.Request.URL).
		Int("status", r.StatusCode).
		Msg("HTTP response")
}
