package viewer

import (
	"context"
	"errors"
	"fmt"
	"github.com/cyz14/s2cells/params"
	"github.com/cyz14/s2cells/s2"
	"github.com/cyz14/s2cells/types/dataset"
	"github.com/dustin/go-humanize"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"
)

// ErrUnsupportedLevel is returned for levels outside the configured level set.
var ErrUnsupportedLevel = errors.New("unsupported level")

// StatusError is a completed request with a non-200 response.
type StatusError struct {
	Source string
	Code   int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("GET %s: response status %d %s", e.Source, e.Code, http.StatusText(e.Code))
}

// LoadResult is the outcome of one dataset request.
type LoadResult struct {
	Level      s2.CellLevel
	Generation uint64
	Source     string
	Dataset    *dataset.Dataset
	Err        error
	Size       int
	Elapsed    time.Duration

	// Stale is set by the viewer when the result arrived after a newer selection.
	Stale bool
}

// Loader fetches level datasets over HTTP.
type Loader struct {
	Client  *http.Client
	BaseURL string
	Levels  []s2.CellLevel

	logger *slog.Logger
}

func NewLoader(config *params.ViewerConfig, client *http.Client) *Loader {
	if config == nil {
		config = params.DefaultViewerConfig()
	}
	if client == nil {
		client = &http.Client{Timeout: config.RequestTimeout}
	}
	return &Loader{
		Client:  client,
		BaseURL: config.DataSourceBase,
		Levels:  config.Levels,
		logger:  slog.With("viewer", "loader"),
	}
}

// Source resolves a level to its data source URL.
func (l *Loader) Source(level s2.CellLevel) string {
	return strings.TrimSuffix(l.BaseURL, "/") + fmt.Sprintf(params.DataSourcePattern, level)
}

// Load fetches the level's dataset on its own goroutine and calls done with the result.
// It returns immediately. There is no retry.
func (l *Loader) Load(ctx context.Context, level s2.CellLevel, generation uint64, done func(LoadResult)) {
	go func() {
		done(l.Fetch(ctx, level, generation))
	}()
}

// Fetch is the blocking form of Load.
func (l *Loader) Fetch(ctx context.Context, level s2.CellLevel, generation uint64) LoadResult {
	start := time.Now()
	res := LoadResult{Level: level, Generation: generation, Source: l.Source(level)}
	l.fetch(ctx, &res)
	res.Elapsed = time.Since(start)
	return res
}

func (l *Loader) fetch(ctx context.Context, res *LoadResult) {
	level := res.Level

	if !params.IsSupportedLevel(l.Levels, level) {
		res.Err = fmt.Errorf("%w: %d (supported: %v)", ErrUnsupportedLevel, level, l.Levels)
		return
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, res.Source, nil)
	if err != nil {
		res.Err = err
		return
	}
	req.Header.Set("Accept", "application/json")

	resp, err := l.Client.Do(req)
	if err != nil {
		l.logger.Warn("Request failed", "source", res.Source, "error", err)
		res.Err = fmt.Errorf("GET %s: %w", res.Source, err)
		return
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		l.logger.Warn("Bad response", "source", res.Source, "response status", resp.StatusCode)
		_, _ = io.Copy(io.Discard, resp.Body)
		res.Err = &StatusError{Source: res.Source, Code: resp.StatusCode}
		return
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		res.Err = fmt.Errorf("read %s: %w", res.Source, err)
		return
	}
	res.Size = len(body)

	ds, err := dataset.Decode(body)
	if err != nil {
		l.logger.Warn("Failed to decode dataset", "source", res.Source, "error", err)
		res.Err = fmt.Errorf("decode %s: %w", res.Source, err)
		return
	}
	if ds.Level != int(level) {
		res.Err = fmt.Errorf("decode %s: %w", res.Source, &dataset.MalformedDatasetError{
			Level:  ds.Level,
			NCells: ds.NCells,
			Points: len(ds.Points),
			Reason: fmt.Sprintf("level %d requested", level),
		})
		return
	}
	res.Dataset = ds

	l.logger.Info("Loaded", "level", ds.Level, "ncells", ds.NCells,
		"size", humanize.Bytes(uint64(res.Size)), "source", res.Source)
}
