// Package sheets adapts one remote spreadsheet document into the tabular
// store the rest of the system reads and writes. Worksheets are opened
// lazily, created on demand, and addressed row-by-row; every call is a
// blocking network call with no retry, so transient failures surface
// immediately to the caller.
package sheets

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/teamorders/orderdesk/internal/api/metrics"
	"github.com/teamorders/orderdesk/internal/core/domain"
	"github.com/teamorders/orderdesk/internal/core/ports"
)

const defaultTimeout = 10 * time.Second

// Dimensions given to a worksheet created on first open.
const (
	newSheetRows = 1000
	newSheetCols = 20
)

// Config captures the settings for reaching the spreadsheet service.
type Config struct {
	BaseURL    string
	DocumentID string
	APIToken   string
	Timeout    time.Duration
}

// Client talks to the spreadsheet service's REST API for a single document.
type Client struct {
	base  string
	doc   string
	token string
	hc    *http.Client
	log   zerolog.Logger
}

// Connect builds a client for the configured document and verifies the
// document is reachable. A default timeout is applied when none is provided.
func Connect(ctx context.Context, cfg Config, log zerolog.Logger) (*Client, error) {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	c := &Client{
		base:  strings.TrimRight(cfg.BaseURL, "/"),
		doc:   cfg.DocumentID,
		token: cfg.APIToken,
		hc:    &http.Client{Timeout: timeout},
		log:   log,
	}

	if err := c.Ping(ctx); err != nil {
		return nil, fmt.Errorf("sheets connect: %w", err)
	}
	return c, nil
}

// Ping checks that the document itself can be fetched.
func (c *Client) Ping(ctx context.Context) error {
	return c.do(ctx, "ping", "", http.MethodGet, c.docPath(""), nil, nil)
}

// Worksheet opens the named sheet, creating it with a generous fixed
// capacity when it does not exist yet.
func (c *Client) Worksheet(ctx context.Context, name string) (ports.Worksheet, error) {
	err := c.do(ctx, "open", name, http.MethodGet, c.sheetPath(name, ""), nil, nil)
	if err != nil {
		if !isNotFound(err) {
			return nil, err
		}
		create := map[string]any{"title": name, "rows": newSheetRows, "cols": newSheetCols}
		if err := c.do(ctx, "create", name, http.MethodPost, c.docPath("/sheets"), create, nil); err != nil {
			return nil, err
		}
		c.log.Info().Str("sheet", name).Msg("worksheet created")
	}
	return &worksheet{c: c, name: name}, nil
}

func isNotFound(err error) bool {
	var re *domain.RemoteError
	if !errors.As(err, &re) {
		return false
	}
	var se *statusError
	return errors.As(re.Err, &se) && se.code == http.StatusNotFound
}

func (c *Client) docPath(suffix string) string {
	return fmt.Sprintf("/documents/%s%s", c.doc, suffix)
}

func (c *Client) sheetPath(name, suffix string) string {
	return fmt.Sprintf("/documents/%s/sheets/%s%s", c.doc, name, suffix)
}

// statusError keeps the HTTP status distinguishable under the RemoteError
// wrapper without leaking net/http types upward.
type statusError struct {
	code int
	body string
}

func (e *statusError) Error() string {
	if e.body == "" {
		return http.StatusText(e.code)
	}
	return fmt.Sprintf("%s: %s", http.StatusText(e.code), e.body)
}

// do performs one API call. Failures come back as *domain.RemoteError and are
// never retried.
func (c *Client) do(ctx context.Context, op, sheet, method, path string, in, out any) error {
	var body io.Reader
	if in != nil {
		data, err := json.Marshal(in)
		if err != nil {
			return &domain.RemoteError{Op: op, Sheet: sheet, Err: err}
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.base+path, body)
	if err != nil {
		return &domain.RemoteError{Op: op, Sheet: sheet, Err: err}
	}
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.hc.Do(req)
	if err != nil {
		metrics.SheetRequestsTotal.WithLabelValues(op, "error").Inc()
		return &domain.RemoteError{Op: op, Sheet: sheet, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		metrics.SheetRequestsTotal.WithLabelValues(op, "error").Inc()
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return &domain.RemoteError{Op: op, Sheet: sheet, Err: &statusError{code: resp.StatusCode, body: strings.TrimSpace(string(msg))}}
	}

	metrics.SheetRequestsTotal.WithLabelValues(op, "ok").Inc()
	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return &domain.RemoteError{Op: op, Sheet: sheet, Err: err}
		}
	}
	return nil
}

// worksheet is one named sheet of the document.
type worksheet struct {
	c    *Client
	name string
}

type valuesResponse struct {
	Values [][]string `json:"values"`
}

type rowResponse struct {
	Values []string `json:"values"`
}

func (w *worksheet) Values(ctx context.Context) ([][]string, error) {
	var out valuesResponse
	if err := w.c.do(ctx, "values", w.name, http.MethodGet, w.c.sheetPath(w.name, "/values"), nil, &out); err != nil {
		return nil, err
	}
	return out.Values, nil
}

func (w *worksheet) RowValues(ctx context.Context, row int) ([]string, error) {
	var out rowResponse
	path := w.c.sheetPath(w.name, fmt.Sprintf("/values/%d", row))
	if err := w.c.do(ctx, "row", w.name, http.MethodGet, path, nil, &out); err != nil {
		return nil, err
	}
	return out.Values, nil
}

func (w *worksheet) AppendRow(ctx context.Context, values []string) error {
	in := map[string]any{"values": values}
	return w.c.do(ctx, "append", w.name, http.MethodPost, w.c.sheetPath(w.name, "/values:append"), in, nil)
}

func (w *worksheet) UpdateRow(ctx context.Context, row int, values []string) error {
	in := map[string]any{"values": values}
	path := w.c.sheetPath(w.name, fmt.Sprintf("/values/%d", row))
	return w.c.do(ctx, "update", w.name, http.MethodPut, path, in, nil)
}

func (w *worksheet) DeleteRow(ctx context.Context, row int) error {
	path := w.c.sheetPath(w.name, fmt.Sprintf("/values/%d", row))
	return w.c.do(ctx, "delete", w.name, http.MethodDelete, path, nil, nil)
}
