package catalog

import (
	"context"
	_ "embed"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/sandeepkv93/prchecklist/internal/model"
)

//go:embed chores.json
var defaultCatalog []byte

const DefaultSource = "builtin"

// FetchError reports a catalog that could not be retrieved or parsed.
type FetchError struct {
	Source string
	Err    error
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("catalog: fetch %s: %v", e.Source, e.Err)
}

func (e *FetchError) Unwrap() error {
	return e.Err
}

// Loader yields the canonical ordered chore list.
type Loader interface {
	Load(ctx context.Context) ([]model.CatalogEntry, error)
}

// LoaderFunc adapts a function to Loader.
type LoaderFunc func(ctx context.Context) ([]model.CatalogEntry, error)

func (f LoaderFunc) Load(ctx context.Context) ([]model.CatalogEntry, error) { return f(ctx) }

// Static serves a fixed catalog.
type Static []model.CatalogEntry

func (s Static) Load(context.Context) ([]model.CatalogEntry, error) {
	return append([]model.CatalogEntry(nil), s...), nil
}

type FileLoader struct {
	Path string
}

func (l FileLoader) Load(ctx context.Context) ([]model.CatalogEntry, error) {
	if err := ctx.Err(); err != nil {
		return nil, &FetchError{Source: l.Path, Err: err}
	}
	raw, err := os.ReadFile(l.Path)
	if err != nil {
		return nil, &FetchError{Source: l.Path, Err: fmt.Errorf("read file: %w", err)}
	}
	return decode(l.Path, raw)
}

type HTTPLoader struct {
	URL    string
	Client *http.Client
}

func (l HTTPLoader) Load(ctx context.Context) ([]model.CatalogEntry, error) {
	client := l.Client
	if client == nil {
		client = http.DefaultClient
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, l.URL, nil)
	if err != nil {
		return nil, &FetchError{Source: l.URL, Err: err}
	}
	req.Header.Set("Accept", "application/json")
	resp, err := client.Do(req)
	if err != nil {
		return nil, &FetchError{Source: l.URL, Err: err}
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, &FetchError{Source: l.URL, Err: fmt.Errorf("unexpected status %s", resp.Status)}
	}
	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &FetchError{Source: l.URL, Err: fmt.Errorf("read body: %w", err)}
	}
	return decode(l.URL, raw)
}

// Builtin serves the catalog compiled into the binary.
func Builtin() Loader {
	return LoaderFunc(func(context.Context) ([]model.CatalogEntry, error) {
		return decode(DefaultSource, defaultCatalog)
	})
}

// New picks a loader for source: empty or "builtin" for the embedded list,
// an http(s) URL, or a file path.
func New(source string, timeout time.Duration) Loader {
	trimmed := strings.TrimSpace(source)
	switch {
	case trimmed == "" || trimmed == DefaultSource:
		return Builtin()
	case strings.HasPrefix(trimmed, "http://"), strings.HasPrefix(trimmed, "https://"):
		return HTTPLoader{URL: trimmed, Client: &http.Client{Timeout: timeout}}
	default:
		return FileLoader{Path: trimmed}
	}
}

// Entries are not schema-checked: missing fields decode to zero values.
func decode(source string, raw []byte) ([]model.CatalogEntry, error) {
	var entries []model.CatalogEntry
	if err := json.Unmarshal(raw, &entries); err != nil {
		return nil, &FetchError{Source: source, Err: fmt.Errorf("json unmarshal: %w", err)}
	}
	if entries == nil {
		entries = []model.CatalogEntry{}
	}
	return entries, nil
}
