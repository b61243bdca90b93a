// Package gateway is the HTTP client for the civmod backend service.
// It speaks the load/save/export/build contract, caches reference-data
// catalogs, and retries transient failures with exponential backoff.
//
// Document-level writes (Save, Export, ExportToDir, Build) are serialized
// through a per-client mutex, so a second write issued while one is in
// flight queues behind it instead of interleaving. They also run the
// local document gate first: a document that fails validation is refused
// before any network call, and the violation list is returned to the
// caller.
//
// All methods are safe for concurrent use by multiple goroutines.
package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/Phlair/civ7-modding-tools-sub000/pkg/document"
	"github.com/Phlair/civ7-modding-tools-sub000/pkg/httputil"
	"github.com/Phlair/civ7-modding-tools-sub000/pkg/refdata"
	"github.com/Phlair/civ7-modding-tools-sub000/pkg/validate"
)

const httpTimeout = 30 * time.Second

var (
	// ErrNotFound is returned when the backend has no resource at the
	// requested path or name.
	ErrNotFound = errors.New("resource not found")

	// ErrNetwork is returned for HTTP failures (timeouts, connection
	// errors, 5xx responses).
	ErrNetwork = errors.New("network error")
)

// ValidationError is returned when a document-level write is refused by
// the local validation gate. No network call was made.
type ValidationError struct {
	Issues []validate.Issue
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("document validation failed: %s", strings.Join(validate.Messages(e.Issues), "; "))
}

// Client is the backend gateway client.
type Client struct {
	http    *http.Client
	baseURL string
	cache   *httputil.Cache

	// writeMu serializes document-level writes.
	writeMu sync.Mutex
}

// NewClient creates a gateway client for the given base URL. The cache
// is used for reference-data GETs only; pass nil to disable caching.
func NewClient(baseURL string, cache *httputil.Cache) *Client {
	if cache != nil {
		cache = cache.Namespace("gateway:")
	}
	return &Client{
		http:    &http.Client{Timeout: httpTimeout},
		baseURL: strings.TrimSuffix(baseURL, "/"),
		cache:   cache,
	}
}

// Status is the backend health response.
type Status struct {
	Status  string `json:"status"`
	Version string `json:"version,omitempty"`
}

// Health checks the backend health endpoint.
func (c *Client) Health(ctx context.Context) (*Status, error) {
	var status Status
	if err := c.getJSON(ctx, "/health", &status); err != nil {
		return nil, err
	}
	return &status, nil
}

// Load fetches the document stored at path. The response carries the
// tree and the resolved path.
func (c *Client) Load(ctx context.Context, path string) (*document.Store, string, error) {
	var resp struct {
		Data map[string]any `json:"data"`
		Path string         `json:"path"`
	}
	err := c.postJSON(ctx, "/api/load", map[string]any{"path": path}, &resp)
	if err != nil {
		return nil, "", err
	}
	return document.FromTree(resp.Data), resp.Path, nil
}

// Save persists the document at path. The document is validated locally
// first; a failing document returns a [*ValidationError] without any
// network traffic. Synthetic element keys are stripped from the
// serialized tree.
func (c *Client) Save(ctx context.Context, path string, store *document.Store) error {
	tree, err := c.gated(store)
	if err != nil {
		return err
	}

	c.writeMu.Lock()
	defer c.writeMu.Unlock()

	var resp struct {
		Error string `json:"error,omitempty"`
	}
	if err := c.postJSON(ctx, "/api/save", map[string]any{"path": path, "data": tree}, &resp); err != nil {
		return err
	}
	if resp.Error != "" {
		return fmt.Errorf("save rejected: %s", resp.Error)
	}
	return nil
}

// Export renders the document to its external structured representation
// and returns the raw bytes. Validation gates the call the same way Save
// does.
func (c *Client) Export(ctx context.Context, store *document.Store) ([]byte, error) {
	tree, err := c.gated(store)
	if err != nil {
		return nil, err
	}

	c.writeMu.Lock()
	defer c.writeMu.Unlock()

	return c.postRaw(ctx, "/api/export", map[string]any{"data": tree})
}

// ExportToDir asks the backend to write the exported files under dir.
func (c *Client) ExportToDir(ctx context.Context, store *document.Store, dir string) error {
	tree, err := c.gated(store)
	if err != nil {
		return err
	}

	c.writeMu.Lock()
	defer c.writeMu.Unlock()

	var resp struct {
		Error string `json:"error,omitempty"`
	}
	body := map[string]any{"data": tree, "output_dir": dir}
	if err := c.postJSON(ctx, "/api/export-to-disk", body, &resp); err != nil {
		return err
	}
	if resp.Error != "" {
		return fmt.Errorf("export rejected: %s", resp.Error)
	}
	return nil
}

// Build asks the backend for a zipped build of the document and returns
// the archive bytes.
func (c *Client) Build(ctx context.Context, store *document.Store) ([]byte, error) {
	tree, err := c.gated(store)
	if err != nil {
		return nil, err
	}

	c.writeMu.Lock()
	defer c.writeMu.Unlock()

	return c.postRaw(ctx, "/api/build", map[string]any{"data": tree})
}

// ValidateField asks the backend to validate a single field value. Every
// candidate travels as a string, so data_type is fixed accordingly.
func (c *Client) ValidateField(ctx context.Context, fieldName, value string) (*validate.Result, error) {
	var result validate.Result
	body := map[string]any{"field_name": fieldName, "value": value, "data_type": "string"}
	if err := c.postJSON(ctx, "/api/validate/field", body, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// ValidateDocument asks the backend to validate the whole document.
func (c *Client) ValidateDocument(ctx context.Context, store *document.Store) (bool, []validate.Issue, error) {
	var resp struct {
		Valid  bool             `json:"isValid"`
		Errors []validate.Issue `json:"errors"`
	}
	body := map[string]any{"data": document.StripElementKeys(store.Tree())}
	if err := c.postJSON(ctx, "/api/validate/document", body, &resp); err != nil {
		return false, nil, err
	}
	return resp.Valid, resp.Errors, nil
}

// Catalog fetches the named reference-data catalog. Responses are cached
// when the client has a cache.
func (c *Client) Catalog(ctx context.Context, name string) (refdata.Catalog, error) {
	var resp struct {
		Values refdata.Catalog `json:"values"`
	}
	key := "catalog:" + name
	err := c.cached(ctx, key, &resp, func() error {
		return c.getJSON(ctx, "/api/refdata/"+url.PathEscape(name), &resp)
	})
	if err != nil {
		return nil, err
	}
	return resp.Values, nil
}

// CatalogNames lists the catalog names the backend serves.
func (c *Client) CatalogNames(ctx context.Context) ([]string, error) {
	var resp struct {
		Names []string `json:"names"`
	}
	err := c.cached(ctx, "catalog-names", &resp, func() error {
		return c.getJSON(ctx, "/api/refdata", &resp)
	})
	if err != nil {
		return nil, err
	}
	return resp.Names, nil
}

// FetchCatalog implements [refdata.Source].
func (c *Client) FetchCatalog(ctx context.Context, name string) (refdata.Catalog, error) {
	return c.Catalog(ctx, name)
}

// gated validates the document locally and returns the key-stripped tree
// ready for serialization.
func (c *Client) gated(store *document.Store) (map[string]any, error) {
	ok, issues := validate.ValidateDocument(store.Tree())
	if !ok {
		return nil, &ValidationError{Issues: issues}
	}
	return document.StripElementKeys(store.Tree()), nil
}

// cached reads key from the cache or runs fetch with retries and stores
// the result. With no cache configured every call fetches.
func (c *Client) cached(ctx context.Context, key string, v any, fetch func() error) error {
	if c.cache != nil {
		if ok, _ := c.cache.Get(key, v); ok {
			return nil
		}
	}
	if err := httputil.RetryWithBackoff(ctx, fetch); err != nil {
		return err
	}
	if c.cache != nil {
		_ = c.cache.Set(key, v)
	}
	return nil
}

func (c *Client) getJSON(ctx context.Context, path string, v any) error {
	body, err := c.do(ctx, http.MethodGet, path, nil)
	if err != nil {
		return err
	}
	defer body.Close()
	return json.NewDecoder(body).Decode(v)
}

func (c *Client) postJSON(ctx context.Context, path string, payload, v any) error {
	body, err := c.do(ctx, http.MethodPost, path, payload)
	if err != nil {
		return err
	}
	defer body.Close()
	return json.NewDecoder(body).Decode(v)
}

func (c *Client) postRaw(ctx context.Context, path string, payload any) ([]byte, error) {
	body, err := c.do(ctx, http.MethodPost, path, payload)
	if err != nil {
		return nil, err
	}
	defer body.Close()
	return io.ReadAll(body)
}

func (c *Client) do(ctx context.Context, method, path string, payload any) (io.ReadCloser, error) {
	var reqBody io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return nil, err
		}
		reqBody = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return nil, err
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, &httputil.RetryableError{Err: fmt.Errorf("%w: %v", ErrNetwork, err)}
	}

	if err := checkStatus(resp); err != nil {
		resp.Body.Close()
		return nil, err
	}
	return resp.Body, nil
}

func checkStatus(resp *http.Response) error {
	switch {
	case resp.StatusCode >= 200 && resp.StatusCode < 300:
		return nil
	case resp.StatusCode == http.StatusNotFound:
		return fmt.Errorf("%w: %s", ErrNotFound, errorDetail(resp.Body))
	case resp.StatusCode >= 500:
		return &httputil.RetryableError{Err: fmt.Errorf("%w: status %d", ErrNetwork, resp.StatusCode)}
	default:
		return fmt.Errorf("%w: status %d: %s", ErrNetwork, resp.StatusCode, errorDetail(resp.Body))
	}
}

// errorDetail pulls the message out of a structured {error, code} payload
// so failures read like the backend reported them.
func errorDetail(r io.Reader) string {
	var payload struct {
		Error string `json:"error"`
	}
	if err := json.NewDecoder(r).Decode(&payload); err != nil || payload.Error == "" {
		return "no detail"
	}
	return payload.Error
}
