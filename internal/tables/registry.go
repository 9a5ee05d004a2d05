package tables

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	json "github.com/goccy/go-json"
	"go.uber.org/zap"
)

// Registry resolves tables by reference year. The store's year is served
// locally; other years are fetched from a remote registry and cached. Any
// failure falls back to the store's tables.
type Registry struct {
	store  *Store
	url    string
	client *http.Client
	cache  sync.Map // year -> *Tables
	logger *zap.Logger
}

func NewRegistry(store *Store, registryURL string, logger *zap.Logger) *Registry {
	r := &Registry{
		store:  store,
		url:    strings.TrimRight(registryURL, "/"),
		logger: logger,
	}
	if r.url != "" {
		r.client = &http.Client{
			Timeout: 2 * time.Second,
			Transport: &http.Transport{
				MaxIdleConns:        100,
				MaxIdleConnsPerHost: 100,
				IdleConnTimeout:     90 * time.Second,
			},
		}
	}
	return r
}

// ForYear returns the tables for year. fallback is true when year was asked
// for but could not be resolved and the current tables were returned instead.
func (r *Registry) ForYear(ctx context.Context, year int) (t *Tables, fallback bool) {
	current := r.store.Current()
	if year == 0 || year == current.Year {
		return current, false
	}
	if v, ok := r.cache.Load(year); ok {
		return v.(*Tables), false
	}
	if r.url == "" {
		return current, true
	}

	t, err := r.fetch(ctx, year)
	if err != nil {
		r.logger.Warn("tables registry lookup failed", zap.Int("year", year), zap.Error(err))
		return current, true
	}
	r.cache.Store(year, t)
	return t, false
}

// Close releases idle registry connections.
func (r *Registry) Close() {
	if r.client != nil {
		r.client.CloseIdleConnections()
	}
}

func (r *Registry) fetch(ctx context.Context, year int) (*Tables, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, r.url+"/tables/"+strconv.Itoa(year), nil)
	if err != nil {
		return nil, err
	}
	resp, err := r.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		io.Copy(io.Discard, resp.Body)
		return nil, fmt.Errorf("registry returned %d", resp.StatusCode)
	}

	var t Tables
	if err := json.NewDecoder(resp.Body).Decode(&t); err != nil {
		return nil, fmt.Errorf("decode registry response: %w", err)
	}
	if t.Year != year {
		return nil, fmt.Errorf("registry returned tables for %d", t.Year)
	}
	if err := t.Validate(); err != nil {
		return nil, err
	}
	t.seal()
	return &t, nil
}
