// Package sheet mirrors the workspace to a spreadsheet web app.
//
// The web app receives the whole workspace on every push, as a POST of
// {"action":"sync", "products":[...], "transactions":[...], "contacts":[...]},
// and returns it on GET ?action=get. Every push also keeps a local backup in
// the store, used when the web app cannot be reached.
package sheet

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"net/http"
	"net/url"
	"time"

	"github.com/PaesslerAG/jsonpath"
	"github.com/etnz/smartbiz"
	"github.com/etnz/smartbiz/store"
	"github.com/rs/zerolog/log"
)

// DateLayout formats transaction dates for the spreadsheet.
const DateLayout = "15:04:05 2/1/2006"

// Result is the outcome of a push.
type Result struct {
	// LocalOnly is set when no web app is configured: only the backup was
	// written.
	LocalOnly bool
	Timestamp time.Time
}

// Backup is the local copy written on every push.
type Backup struct {
	Timestamp time.Time         `json:"timestamp"`
	Data      smartbiz.Snapshot `json:"data"`
}

// Source tells where pulled data came from.
type Source int

const (
	None Source = iota
	Cloud
	Local
)

func (s Source) String() string {
	switch s {
	case Cloud:
		return "cloud"
	case Local:
		return "local backup"
	default:
		return "none"
	}
}

// Client pushes and pulls the workspace.
type Client struct {
	// URL of the web app. Empty means backup only.
	URL   string
	Store store.Store
	HTTP  *http.Client
	// Location of the formatted dates, time.Local when nil.
	Location *time.Location

	now func() time.Time
}

// New returns a client for the web app at url, keeping its backup in st.
func New(url string, st store.Store) *Client {
	return &Client{URL: url, Store: st}
}

func (c *Client) client() *http.Client {
	if c.HTTP != nil {
		return c.HTTP
	}
	return &http.Client{Timeout: 30 * time.Second}
}

func (c *Client) clock() time.Time {
	if c.now != nil {
		return c.now()
	}
	return time.Now()
}

// Push writes the local backup of s, then sends s to the web app, if any.
// The backup is written even when the web app fails.
func (c *Client) Push(ctx context.Context, s smartbiz.Snapshot) (Result, error) {
	r := Result{Timestamp: c.clock().UTC()}
	backup, err := json.Marshal(Backup{Timestamp: r.Timestamp, Data: s})
	if err != nil {
		return r, fmt.Errorf("cannot encode backup: %w", err)
	}
	if err := c.Store.Put(ctx, store.KeyLastSyncData, backup); err != nil {
		return r, fmt.Errorf("cannot write backup: %w", err)
	}

	if c.URL == "" {
		log.Warn().Msg("no sync URL configured, data only saved locally")
		r.LocalOnly = true
		return r, nil
	}

	payload, err := c.export(s)
	if err != nil {
		return r, err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.URL, bytes.NewReader(payload))
	if err != nil {
		return r, fmt.Errorf("invalid sync URL: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	resp, err := c.client().Do(req)
	if err != nil {
		return r, fmt.Errorf("cannot sync: %w", err)
	}
	defer resp.Body.Close()
	io.Copy(io.Discard, resp.Body)
	if resp.StatusCode >= 300 {
		return r, fmt.Errorf("cannot sync: %s", resp.Status)
	}

	stamp, _ := json.Marshal(r.Timestamp.Format(time.RFC3339))
	if err := c.Store.Put(ctx, store.KeyLastSyncTime, stamp); err != nil {
		log.Warn().Err(err).Msg("cannot record the sync time")
	}
	log.Info().Int("products", len(s.Products)).Int("transactions", len(s.Transactions)).Int("contacts", len(s.Contacts)).Msg("synced")
	return r, nil
}

// export encodes s for the spreadsheet: types are replaced by their labels
// and transactions carry a formatted date.
func (c *Client) export(s smartbiz.Snapshot) ([]byte, error) {
	loc := c.Location
	if loc == nil {
		loc = time.Local
	}
	txs := make([]map[string]any, 0, len(s.Transactions))
	for _, tx := range s.Transactions {
		m, err := toMap(tx)
		if err != nil {
			return nil, err
		}
		m["type"] = tx.Type.Label()
		m["dateFormatted"] = tx.Date.In(loc).Format(DateLayout)
		txs = append(txs, m)
	}
	contacts := make([]map[string]any, 0, len(s.Contacts))
	for _, ct := range s.Contacts {
		m, err := toMap(ct)
		if err != nil {
			return nil, err
		}
		m["type"] = ct.Type.Label()
		contacts = append(contacts, m)
	}
	products := s.Products
	if products == nil {
		products = []smartbiz.Product{}
	}
	return json.Marshal(map[string]any{
		"action":       "sync",
		"products":     products,
		"transactions": txs,
		"contacts":     contacts,
	})
}

// toMap converts v to its JSON object, keeping numbers exact.
func toMap(v any) (map[string]any, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var m map[string]any
	if err := dec.Decode(&m); err != nil {
		return nil, err
	}
	return m, nil
}

// Pull fetches the workspace from the web app. When the web app is not
// configured, cannot be reached or returns no products, the local backup is
// returned instead. Without a backup, Pull returns nil and None.
func (c *Client) Pull(ctx context.Context) (*smartbiz.Snapshot, Source, error) {
	if c.URL != "" {
		s, err := c.fetch(ctx)
		if err == nil {
			return s, Cloud, nil
		}
		log.Warn().Err(err).Msg("cannot load from the cloud, using the local backup")
	}
	b, err := LoadBackup(ctx, c.Store)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, None, nil
	}
	if err != nil {
		return nil, None, err
	}
	return &b.Data, Local, nil
}

func (c *Client) fetch(ctx context.Context) (*smartbiz.Snapshot, error) {
	u, err := url.Parse(c.URL)
	if err != nil {
		return nil, err
	}
	q := u.Query()
	q.Set("action", "get")
	u.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, err
	}
	resp, err := c.client().Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("cannot http GET %v%v: %v", u.Host, u.Path, resp.Status)
	}
	dec := json.NewDecoder(resp.Body)
	dec.UseNumber()
	var jobj any
	if err := dec.Decode(&jobj); err != nil {
		return nil, fmt.Errorf("cannot decode cloud data: %w", err)
	}
	if products, err := jsonpath.Get("$.products", jobj); err != nil || products == nil {
		return nil, errors.New("cloud data has no products")
	}
	if err := relabel(jobj, "$.transactions[*]", func(s string) (string, error) {
		t, err := smartbiz.ParseTransactionType(s)
		return string(t), err
	}); err != nil {
		return nil, err
	}
	if err := relabel(jobj, "$.contacts[*]", func(s string) (string, error) {
		t, err := smartbiz.ParseContactType(s)
		return string(t), err
	}); err != nil {
		return nil, err
	}

	data, err := json.Marshal(jobj)
	if err != nil {
		return nil, err
	}
	var s smartbiz.Snapshot
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("cannot decode cloud data: %w", err)
	}
	return &s, nil
}

// relabel turns the "type" of every object selected by path back into its
// code.
func relabel(jobj any, path string, parse func(string) (string, error)) error {
	jval, err := jsonpath.Get(path, jobj)
	if err != nil {
		// absent collection
		return nil
	}
	list, _ := jval.([]any)
	for _, v := range list {
		obj, ok := v.(map[string]any)
		if !ok {
			continue
		}
		label, _ := obj["type"].(string)
		code, err := parse(label)
		if err != nil {
			return fmt.Errorf("cloud data: %w", err)
		}
		obj["type"] = code
		delete(obj, "dateFormatted")
	}
	return nil
}

// LoadBackup reads the local backup. It returns an error matching
// fs.ErrNotExist when no push ever happened.
func LoadBackup(ctx context.Context, st store.Store) (Backup, error) {
	var b Backup
	data, err := st.Get(ctx, store.KeyLastSyncData)
	if err != nil {
		return b, err
	}
	if err := json.Unmarshal(data, &b); err != nil {
		return b, fmt.Errorf("cannot decode backup: %w", err)
	}
	return b, nil
}

// LastSync returns the time of the last successful push to the web app, zero
// if none.
func LastSync(ctx context.Context, st store.Store) (time.Time, error) {
	data, err := st.Get(ctx, store.KeyLastSyncTime)
	if errors.Is(err, fs.ErrNotExist) {
		return time.Time{}, nil
	}
	if err != nil {
		return time.Time{}, err
	}
	var s string
	if json.Unmarshal(data, &s) != nil {
		s = string(data)
	}
	return time.Parse(time.RFC3339, s)
}
