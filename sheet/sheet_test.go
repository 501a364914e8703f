package sheet

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/etnz/smartbiz"
	"github.com/etnz/smartbiz/store"
)

var fixed = time.Date(2025, 3, 1, 8, 0, 0, 0, time.UTC)

func newClient(url string) *Client {
	c := New(url, store.NewMemory())
	c.Location = time.UTC
	c.now = func() time.Time { return fixed }
	return c
}

// webApp is a fake spreadsheet web app keeping the last pushed body.
type webApp struct {
	mu     sync.Mutex
	pushed map[string]any
	get    string // reply to GET, 500 when empty
}

func (w *webApp) ServeHTTP(rw http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodPost:
		data, _ := io.ReadAll(r.Body)
		var m map[string]any
		if err := json.Unmarshal(data, &m); err != nil {
			http.Error(rw, err.Error(), http.StatusBadRequest)
			return
		}
		w.mu.Lock()
		w.pushed = m
		w.mu.Unlock()
		rw.Write([]byte(`{"status":"ok"}`))
	case http.MethodGet:
		if r.URL.Query().Get("action") != "get" || w.get == "" {
			http.Error(rw, "no data", http.StatusInternalServerError)
			return
		}
		rw.Write([]byte(w.get))
	}
}

func TestClient_Push_LocalOnly(t *testing.T) {
	ctx := context.Background()
	c := newClient("")
	r, err := c.Push(ctx, smartbiz.Seed())
	if err != nil {
		t.Fatalf("Push() error = %v", err)
	}
	if !r.LocalOnly || !r.Timestamp.Equal(fixed) {
		t.Errorf("Push() = %+v, want local only at %v", r, fixed)
	}
	b, err := LoadBackup(ctx, c.Store)
	if err != nil {
		t.Fatalf("LoadBackup() error = %v", err)
	}
	if !b.Timestamp.Equal(fixed) || len(b.Data.Products) != 4 {
		t.Errorf("backup = %v with %d products", b.Timestamp, len(b.Data.Products))
	}
	if last, _ := LastSync(ctx, c.Store); !last.IsZero() {
		t.Errorf("LastSync() = %v, want zero without a web app", last)
	}
}

func TestClient_Push(t *testing.T) {
	ctx := context.Background()
	app := &webApp{}
	srv := httptest.NewServer(app)
	defer srv.Close()

	c := newClient(srv.URL)
	r, err := c.Push(ctx, smartbiz.Seed())
	if err != nil {
		t.Fatalf("Push() error = %v", err)
	}
	if r.LocalOnly {
		t.Error("Push() is local only with a web app")
	}
	if app.pushed["action"] != "sync" {
		t.Errorf("action = %v, want sync", app.pushed["action"])
	}
	txs := app.pushed["transactions"].([]any)
	first := txs[0].(map[string]any)
	if first["type"] != "Bán hàng" || first["dateFormatted"] != "09:30:00 20/5/2024" || first["id"] != "t1" {
		t.Errorf("transaction = %v", first)
	}
	if first["total"] != float64(32000000) {
		t.Errorf("total = %#v, want a number", first["total"])
	}
	contacts := app.pushed["contacts"].([]any)
	if got := contacts[2].(map[string]any)["type"]; got != "Nhà cung cấp" {
		t.Errorf("contact type = %v", got)
	}
	if got := len(app.pushed["products"].([]any)); got != 4 {
		t.Errorf("pushed %d products, want 4", got)
	}
	last, err := LastSync(ctx, c.Store)
	if err != nil || !last.Equal(fixed) {
		t.Errorf("LastSync() = %v, %v, want %v", last, err, fixed)
	}
}

func TestClient_Push_Failure(t *testing.T) {
	ctx := context.Background()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusBadGateway)
	}))
	defer srv.Close()

	c := newClient(srv.URL)
	if _, err := c.Push(ctx, smartbiz.Seed()); err == nil {
		t.Fatal("Push() succeeded against a failing web app")
	}
	// the backup is written first
	if _, err := LoadBackup(ctx, c.Store); err != nil {
		t.Errorf("LoadBackup() error = %v", err)
	}
}

func TestClient_Pull(t *testing.T) {
	ctx := context.Background()
	app := &webApp{}
	srv := httptest.NewServer(app)
	defer srv.Close()

	c := newClient(srv.URL)
	if s, src, err := c.Pull(ctx); s != nil || src != None || err != nil {
		t.Fatalf("Pull() with nothing = %v, %v, %v", s, src, err)
	}

	// a push feeds the fake web app and the backup
	if _, err := c.Push(ctx, smartbiz.Seed()); err != nil {
		t.Fatal(err)
	}
	data, _ := json.Marshal(app.pushed)
	app.get = string(data)

	s, src, err := c.Pull(ctx)
	if err != nil || src != Cloud {
		t.Fatalf("Pull() = %v, %v, want cloud data", src, err)
	}
	seed := smartbiz.Seed()
	if len(s.Transactions) != 2 || !s.Transactions[0].Equal(seed.Transactions[0]) {
		t.Errorf("pulled transactions = %+v", s.Transactions)
	}
	if s.Contacts[2].Type != smartbiz.Supplier {
		t.Errorf("contact type = %q, want SUPPLIER", s.Contacts[2].Type)
	}

	testCases := map[string]string{
		"no products":   `{"status":"empty"}`,
		"web app fails": "",
	}
	for name, reply := range testCases {
		t.Run(name, func(t *testing.T) {
			app.get = reply
			s, src, err := c.Pull(ctx)
			if err != nil || src != Local {
				t.Fatalf("Pull() = %v, %v, want the local backup", src, err)
			}
			if len(s.Products) != 4 {
				t.Errorf("backup has %d products", len(s.Products))
			}
		})
	}
}

func TestClient_Pull_NoURL(t *testing.T) {
	c := newClient("")
	_, src, err := c.Pull(context.Background())
	if err != nil || src != None {
		t.Errorf("Pull() = %v, %v, want none", src, err)
	}
}

func TestLoadBackup_Missing(t *testing.T) {
	_, err := LoadBackup(context.Background(), store.NewMemory())
	if !errors.Is(err, store.ErrNotFound) {
		t.Errorf("LoadBackup() error = %v, want ErrNotFound", err)
	}
}

func TestScheduler(t *testing.T) {
	var mu sync.Mutex
	calls := 0
	c := newClient("")
	s, err := NewScheduler("@every 1s", c, func(context.Context) (smartbiz.Snapshot, error) {
		mu.Lock()
		defer mu.Unlock()
		calls++
		if calls == 1 {
			return smartbiz.Snapshot{}, errors.New("store locked")
		}
		return smartbiz.Seed(), nil
	})
	if err != nil {
		t.Fatalf("NewScheduler() error = %v", err)
	}
	s.Start()
	defer s.Stop(context.Background())

	// the first capture fails and is skipped, the second one is pushed
	select {
	case r := <-s.Done():
		if !r.LocalOnly {
			t.Errorf("result = %+v", r)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("no push within 5s")
	}
	mu.Lock()
	defer mu.Unlock()
	if calls < 2 {
		t.Errorf("snapshot captured %d times, want at least 2", calls)
	}
}

func TestNewScheduler_Invalid(t *testing.T) {
	seed := func(context.Context) (smartbiz.Snapshot, error) { return smartbiz.Seed(), nil }
	if _, err := NewScheduler("every now and then", newClient(""), seed); err == nil {
		t.Error("NewScheduler() accepted an invalid schedule")
	}
}
