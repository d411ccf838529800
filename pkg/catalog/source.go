package catalog

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/golang/glog"

	"github.com/1F47E/campus-nav/pkg/config"
	"github.com/1F47E/campus-nav/pkg/models"
)

// ErrUnknownSource is returned for an unsupported catalog source kind
var ErrUnknownSource = errors.New("unknown catalog source")

// Source supplies the location records
type Source interface {
	Load(ctx context.Context) ([]models.Location, error)
}

// SourceFunc adapts a function to Source
type SourceFunc func(ctx context.Context) ([]models.Location, error)

func (f SourceFunc) Load(ctx context.Context) ([]models.Location, error) {
	return f(ctx)
}

// HTTPSource fetches records from a REST endpoint returning the JSON
// record array, e.g. a PostgREST "locations?select=*" URL.
type HTTPSource struct {
	URL    string
	APIKey string
	Client *http.Client
}

func (h HTTPSource) Load(ctx context.Context) ([]models.Location, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, h.URL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if h.APIKey != "" {
		req.Header.Set("apikey", h.APIKey)
		req.Header.Set("Authorization", "Bearer "+h.APIKey)
	}

	client := h.Client
	if client == nil {
		client = http.DefaultClient
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch %s: %w", h.URL, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("failed to fetch %s: status %s", h.URL, resp.Status)
	}
	return DecodeJSON(resp.Body)
}

// Open builds the Source described by cfg. The returned close function
// releases any database connection and is never nil.
func Open(ctx context.Context, cfg config.Config) (Source, func() error, error) {
	noop := func() error { return nil }
	c := cfg.Catalog

	switch c.Source {
	case "json":
		return JSONFile{Path: c.Path}, noop, nil
	case "snapshot":
		return Snapshot{Path: c.Path}, noop, nil
	case "http":
		timeout := time.Duration(c.LoadTimeout) * time.Second
		return HTTPSource{
			URL:    c.URL,
			APIKey: c.APIKey,
			Client: &http.Client{Timeout: timeout},
		}, noop, nil
	case "sqlite":
		store, err := OpenSQL(ctx, DriverSQLite, c.Path, c.Table)
		if err != nil {
			return nil, noop, err
		}
		return store, store.Close, nil
	case "postgres":
		pg := cfg.Postgres
		dsn := PostgresDSN(pg.Host, pg.User, pg.Password, pg.Database, pg.Port)
		store, err := OpenSQL(ctx, DriverPostgres, dsn, c.Table)
		if err != nil {
			return nil, noop, err
		}
		store.SetPoolSize(pg.MaxConnections)
		return store, store.Close, nil
	}
	return nil, noop, fmt.Errorf("%w: %q", ErrUnknownSource, c.Source)
}

// LoadOrEmpty runs one load of src bounded by timeout (0 means no bound).
// Any failure, including a load that does not finish in time, degrades to
// an empty catalog; the error is only logged.
func LoadOrEmpty(ctx context.Context, src Source, timeout time.Duration) *Catalog {
	if src == nil {
		glog.Warning("catalog: no source configured, using empty catalog")
		return Empty()
	}
	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	type result struct {
		locs []models.Location
		err  error
	}
	done := make(chan result, 1)
	go func() {
		locs, err := src.Load(ctx)
		done <- result{locs, err}
	}()

	select {
	case r := <-done:
		if r.err != nil {
			glog.Warningf("catalog: load failed, using empty catalog: %v", r.err)
			return Empty()
		}
		c := New(r.locs)
		glog.V(1).Infof("catalog: loaded %d locations (%d selectable)", c.Len(), len(c.Selectable()))
		return c
	case <-ctx.Done():
		glog.Warningf("catalog: load did not finish, using empty catalog: %v", ctx.Err())
		return Empty()
	}
}
