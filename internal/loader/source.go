package loader

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"
)

// maxResourceBytes caps a single fetched resource.
const maxResourceBytes = 5 * 1024 * 1024

// ErrResourceTooLarge is returned when a fetched resource exceeds the size cap.
var ErrResourceTooLarge = errors.New("resource too large")

// Source fetches the raw YAML for one named resource.
type Source interface {
	Fetch(ctx context.Context, name string) ([]byte, error)
}

// DirSource reads <Dir>/<name>.yaml from disk.
type DirSource struct {
	Dir string
}

func (s DirSource) Fetch(_ context.Context, name string) ([]byte, error) {
	path := filepath.Join(s.Dir, name+".yaml")
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return data, nil
}

// HTTPSource fetches <BaseURL>/<name>.yaml with a cache-busting query.
type HTTPSource struct {
	BaseURL string
	Client  *http.Client
	// Now stamps the cache buster; defaults to time.Now.
	Now func() time.Time
	// MaxBytes caps the body size; zero means maxResourceBytes.
	MaxBytes int64
}

// NewHTTPSource builds an HTTPSource. A zero timeout leaves the transport defaults in place.
func NewHTTPSource(baseURL string, timeout time.Duration) *HTTPSource {
	return &HTTPSource{
		BaseURL: baseURL,
		Client:  &http.Client{Timeout: timeout},
	}
}

func (s *HTTPSource) Fetch(ctx context.Context, name string) ([]byte, error) {
	u, err := s.resourceURL(name)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/yaml, text/yaml, text/plain, */*")

	client := s.Client
	if client == nil {
		client = http.DefaultClient
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", u, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("fetch %s: HTTP %d", u, resp.StatusCode)
	}

	limit := s.MaxBytes
	if limit <= 0 {
		limit = maxResourceBytes
	}
	body, err := io.ReadAll(io.LimitReader(resp.Body, limit+1))
	if err != nil {
		return nil, fmt.Errorf("read body: %w", err)
	}
	if int64(len(body)) > limit {
		return nil, fmt.Errorf("fetch %s: %w (limit %d bytes)", u, ErrResourceTooLarge, limit)
	}
	return body, nil
}

func (s *HTTPSource) resourceURL(name string) (string, error) {
	base, err := url.Parse(strings.TrimRight(s.BaseURL, "/") + "/")
	if err != nil {
		return "", fmt.Errorf("invalid data URL: %w", err)
	}
	if base.Scheme != "http" && base.Scheme != "https" {
		return "", fmt.Errorf("unsupported scheme: %q", base.Scheme)
	}
	u := base.JoinPath(name + ".yaml")

	now := time.Now
	if s.Now != nil {
		now = s.Now
	}
	q := u.Query()
	q.Set("v", strconv.FormatInt(now().UnixMilli(), 10))
	u.RawQuery = q.Encode()
	return u.String(), nil
}
