package dashboard

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"sync"
	"testing"

	"github.com/mfletcher/nestegg/internal/common"
	"github.com/mfletcher/nestegg/internal/interfaces"
	"github.com/mfletcher/nestegg/internal/models"
)

// memStore is an in-memory KeyValueStore for service tests.
type memStore struct {
	mu   sync.Mutex
	data map[string][]byte

	setErr error
}

func newMemStore() *memStore {
	return &memStore{data: make(map[string][]byte)}
}

func (m *memStore) Get(ctx context.Context, key string) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.data[key]
	if !ok {
		return nil, fmt.Errorf("%w: %q", interfaces.ErrNotFound, key)
	}
	return v, nil
}

func (m *memStore) Set(ctx context.Context, key string, value []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.setErr != nil {
		return m.setErr
	}
	m.data[key] = value
	return nil
}

func (m *memStore) Remove(ctx context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.data, key)
	return nil
}

func (m *memStore) Keys(ctx context.Context) ([]string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	keys := make([]string, 0, len(m.data))
	for k := range m.data {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys, nil
}

func (m *memStore) Close() error { return nil }

func newTestService(store interfaces.KeyValueStore) *Service {
	return NewService(store, common.NewDefaultConfig(), common.NewSilentLogger())
}

func TestGetPortfolio_DefaultsWhenEmpty(t *testing.T) {
	svc := newTestService(newMemStore())
	defer svc.Close()

	p, err := svc.GetPortfolio(context.Background())
	if err != nil {
		t.Fatalf("GetPortfolio() error = %v", err)
	}

	want := models.DefaultPortfolio()
	if p.Core != want.Core || p.Growth != want.Growth || p.Crypto != want.Crypto || p.Hedge != want.Hedge {
		t.Errorf("GetPortfolio() = %+v, want defaults %+v", p, want)
	}
}

func TestSavePortfolio_RoundTrip(t *testing.T) {
	store := newMemStore()
	svc := newTestService(store)
	defer svc.Close()
	ctx := context.Background()

	p := &models.Portfolio{Core: 100000, Growth: 20000, Crypto: 5000, Hedge: 10000, MonthlySavings: 3000, Currency: "USD"}
	if err := svc.SavePortfolio(ctx, p); err != nil {
		t.Fatalf("SavePortfolio() error = %v", err)
	}

	got, err := svc.GetPortfolio(ctx)
	if err != nil {
		t.Fatalf("GetPortfolio() error = %v", err)
	}
	if got.Core != 100000 || got.Growth != 20000 || got.Crypto != 5000 || got.Hedge != 10000 {
		t.Errorf("round trip = %+v", got)
	}
	if got.UpdatedAt.IsZero() {
		t.Error("UpdatedAt not stamped on save")
	}
}

func TestSavePortfolio_RejectsInvalid(t *testing.T) {
	store := newMemStore()
	svc := newTestService(store)
	defer svc.Close()

	p := &models.Portfolio{Core: -1, Currency: "USD"}
	err := svc.SavePortfolio(context.Background(), p)
	if !errors.Is(err, models.ErrInvalidInput) {
		t.Errorf("SavePortfolio(negative) error = %v, want ErrInvalidInput", err)
	}
	if _, ok := store.data[portfolioKey]; ok {
		t.Error("invalid portfolio was persisted")
	}
}

func TestSavePortfolio_SnapshotsPriorRecord(t *testing.T) {
	store := newMemStore()
	svc := newTestService(store)
	defer svc.Close()
	ctx := context.Background()

	first := &models.Portfolio{Core: 100, Growth: 200, Crypto: 300, Hedge: 400, Currency: "USD"}
	if err := svc.SavePortfolio(ctx, first); err != nil {
		t.Fatalf("first save error = %v", err)
	}
	second := &models.Portfolio{Core: 111, Growth: 222, Crypto: 333, Hedge: 444, Currency: "USD"}
	if err := svc.SavePortfolio(ctx, second); err != nil {
		t.Fatalf("second save error = %v", err)
	}

	raw, ok := store.data[backupKey]
	if !ok {
		t.Fatal("no backup snapshot written")
	}
	var backed models.Portfolio
	if err := json.Unmarshal(raw, &backed); err != nil {
		t.Fatalf("backup record unreadable: %v", err)
	}
	if backed.Core != 100 {
		t.Errorf("backup Core = %v, want the prior record's 100", backed.Core)
	}
}

func TestGetPortfolio_RestoresFromBackup(t *testing.T) {
	store := newMemStore()
	svc := newTestService(store)
	defer svc.Close()
	ctx := context.Background()

	good := &models.Portfolio{Core: 500, Growth: 50, Crypto: 5, Hedge: 10, Currency: "USD"}
	data, _ := json.Marshal(good)
	store.data[backupKey] = data
	// Primary is structurally broken: a bucket field is missing.
	store.data[portfolioKey] = []byte(`{"core": 1, "growth": 2, "crypto": 3}`)

	p, err := svc.GetPortfolio(ctx)
	if err != nil {
		t.Fatalf("GetPortfolio() error = %v", err)
	}
	if p.Core != 500 {
		t.Errorf("GetPortfolio() Core = %v, want backup's 500", p.Core)
	}

	// The backup must have been re-established as the primary record.
	var restored models.Portfolio
	if err := json.Unmarshal(store.data[portfolioKey], &restored); err != nil {
		t.Fatalf("primary record unreadable after restore: %v", err)
	}
	if restored.Core != 500 {
		t.Errorf("restored primary Core = %v, want 500", restored.Core)
	}
}

func TestGetPortfolio_DefaultsWhenBothCorrupt(t *testing.T) {
	store := newMemStore()
	svc := newTestService(store)
	defer svc.Close()

	store.data[portfolioKey] = []byte(`not json`)
	store.data[backupKey] = []byte(`{"core": true}`)

	p, err := svc.GetPortfolio(context.Background())
	if err != nil {
		t.Fatalf("GetPortfolio() error = %v", err)
	}
	want := models.DefaultPortfolio()
	if p.Core != want.Core {
		t.Errorf("GetPortfolio() Core = %v, want default %v", p.Core, want.Core)
	}
}

func TestGetSettings_DefaultsFromConfig(t *testing.T) {
	svc := newTestService(newMemStore())
	defer svc.Close()

	settings, err := svc.GetSettings(context.Background())
	if err != nil {
		t.Fatalf("GetSettings() error = %v", err)
	}
	if settings.FITarget != common.NewDefaultConfig().FI.Target {
		t.Errorf("FITarget = %v, want config default", settings.FITarget)
	}
}

func TestSaveSettings_RoundTrip(t *testing.T) {
	svc := newTestService(newMemStore())
	defer svc.Close()
	ctx := context.Background()

	in := &models.Settings{FITarget: 1500000, DisplayCurrency: "EUR"}
	if err := svc.SaveSettings(ctx, in); err != nil {
		t.Fatalf("SaveSettings() error = %v", err)
	}

	got, err := svc.GetSettings(ctx)
	if err != nil {
		t.Fatalf("GetSettings() error = %v", err)
	}
	if got.FITarget != 1500000 || got.DisplayCurrency != "EUR" {
		t.Errorf("GetSettings() = %+v", got)
	}
}

func TestSnapshot_AssemblesAllSections(t *testing.T) {
	svc := newTestService(newMemStore())
	defer svc.Close()

	snap, err := svc.Snapshot(context.Background())
	if err != nil {
		t.Fatalf("Snapshot() error = %v", err)
	}

	if snap.Portfolio == nil {
		t.Fatal("snapshot missing portfolio")
	}
	wantTotal := snap.Portfolio.Core + snap.Portfolio.Growth + snap.Portfolio.Crypto + snap.Portfolio.Hedge
	if snap.Total != wantTotal {
		t.Errorf("Total = %v, want %v", snap.Total, wantTotal)
	}
	sum := snap.Allocations.Core + snap.Allocations.Growth + snap.Allocations.Crypto + snap.Allocations.Hedge
	if sum < 99.999 || sum > 100.001 {
		t.Errorf("allocations sum = %v, want 100", sum)
	}
	if snap.FI == nil {
		t.Error("snapshot missing FI progress")
	}
	if snap.History == nil {
		t.Error("snapshot missing historical metrics")
	}
	if snap.GeneratedAt.IsZero() {
		t.Error("snapshot missing timestamp")
	}
}

func TestHistory_ReturnsReferenceSeries(t *testing.T) {
	svc := newTestService(newMemStore())
	defer svc.Close()

	series := svc.History()
	if len(series) == 0 {
		t.Fatal("History() returned no entries")
	}
	for i := 1; i < len(series); i++ {
		if series[i].Year <= series[i-1].Year {
			t.Errorf("series not year-ordered at index %d", i)
		}
	}
}
