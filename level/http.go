package level

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// HTTPSource fetches levels from a level server.
type HTTPSource struct {
	BaseURL string
	Client  *http.Client
}

func NewHTTPSource(baseURL string) *HTTPSource {
	return &HTTPSource{
		BaseURL: strings.TrimRight(baseURL, "/"),
		Client:  &http.Client{Timeout: 10 * time.Second},
	}
}

// Load returns every level the server lists, ordered.
func (s *HTTPSource) Load(ctx context.Context) ([]Level, error) {
	b, err := s.get(ctx, "/api/levels")
	if err != nil {
		return nil, err
	}
	levels, err := DecodeList(b)
	if err != nil {
		return nil, err
	}
	Sort(levels)
	return levels, nil
}

// Get fetches a single level by id.
func (s *HTTPSource) Get(ctx context.Context, id string) (Level, error) {
	b, err := s.get(ctx, "/api/levels/"+id)
	if err != nil {
		return Level{}, err
	}
	l, err := Decode(b)
	if err != nil {
		return Level{}, err
	}
	if l.ID == "" {
		l.ID = id
	}
	return l, nil
}

func (s *HTTPSource) get(ctx context.Context, p string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.BaseURL+p, nil)
	if err != nil {
		return nil, fmt.Errorf("level: request %s: %w", p, err)
	}
	client := s.Client
	if client == nil {
		client = http.DefaultClient
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("level: fetch %s: %w", p, err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return nil, fmt.Errorf("level: fetch %s: %w", p, ErrNotFound)
	case resp.StatusCode != http.StatusOK:
		return nil, fmt.Errorf("level: fetch %s: unexpected status %s", p, resp.Status)
	}
	b, err := io.ReadAll(io.LimitReader(resp.Body, 4<<20))
	if err != nil {
		return nil, fmt.Errorf("level: read %s: %w", p, err)
	}
	return b, nil
}
