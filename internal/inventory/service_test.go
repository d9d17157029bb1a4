package inventory_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/labstock-id/labstock/internal/api"
	"github.com/labstock-id/labstock/internal/auth"
	"github.com/labstock-id/labstock/internal/devserver"
	"github.com/labstock-id/labstock/internal/inventory"
	"github.com/labstock-id/labstock/internal/models"
	"github.com/labstock-id/labstock/internal/session"
)

func sampleItems() []models.Item {
	return []models.Item{
		{ID: "1", Name: "Mikroskop Binokuler", Category: "Alat Ukur", Quantity: 3},
		{ID: "2", Name: "Beaker", Category: "Alat Gelas", Quantity: 40, Description: "250ml glass"},
		{ID: "3", Name: "Etanol", Category: "Bahan Kimia", Quantity: 5},
		{ID: "4", Name: "Sarung Tangan", Category: "Peralatan Keselamatan", Quantity: 120},
	}
}

func TestFilterItems(t *testing.T) {
	items := sampleItems()

	tests := []struct {
		name    string
		query   string
		wantIDs []string
	}{
		{name: "by name case-insensitive", query: "beaker", wantIDs: []string{"2"}},
		{name: "by category", query: "kimia", wantIDs: []string{"3"}},
		{name: "by description", query: "GLASS", wantIDs: []string{"2"}},
		{name: "substring across fields", query: "alat", wantIDs: []string{"1", "2", "4"}},
		{name: "no match", query: "sentrifus", wantIDs: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := inventory.FilterItems(items, tt.query)
			var gotIDs []string
			for _, item := range got {
				gotIDs = append(gotIDs, item.ID)
			}
			if !reflect.DeepEqual(gotIDs, tt.wantIDs) {
				t.Errorf("query %q: expected %v, got %v", tt.query, tt.wantIDs, gotIDs)
			}
		})
	}
}

// Filtering with an empty query is the identity.
func TestFilterItemsEmptyQuery(t *testing.T) {
	items := sampleItems()
	got := inventory.FilterItems(items, "")
	if !reflect.DeepEqual(got, items) {
		t.Fatalf("expected unchanged list, got %+v", got)
	}
}

func TestComputeStats(t *testing.T) {
	tests := []struct {
		name  string
		items []models.Item
		want  inventory.Stats
	}{
		{
			name:  "empty list",
			items: nil,
			want:  inventory.Stats{},
		},
		{
			name:  "sample list",
			items: sampleItems(),
			want:  inventory.Stats{TotalItems: 4, TotalQuantity: 168, Categories: 4, LowStock: 2},
		},
		{
			name: "repeated categories and boundary quantity",
			items: []models.Item{
				{Category: "Alat Gelas", Quantity: 5},
				{Category: "Alat Gelas", Quantity: 6},
			},
			want: inventory.Stats{TotalItems: 2, TotalQuantity: 11, Categories: 1, LowStock: 1},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := inventory.ComputeStats(tt.items)
			if got != tt.want {
				t.Errorf("expected %+v, got %+v", tt.want, got)
			}
		})
	}
}

// newService registers a user against a dev server and returns a service
// bound to that session.
func newService(t *testing.T) *inventory.Service {
	t.Helper()

	srv := devserver.New("test-secret", nil)
	ts := httptest.NewServer(srv.Handler())
	t.Cleanup(ts.Close)

	tokens := session.NewStore(filepath.Join(t.TempDir(), "token.json"))
	client := api.NewClient(ts.URL, tokens, nil)
	authCtx := auth.NewContext(client, tokens)
	if err := authCtx.Register(context.Background(), "Ani", "a@b.com", "secret1"); err != nil {
		t.Fatalf("Register: %v", err)
	}
	return inventory.NewService(client)
}

func TestCreateTriggersRefetch(t *testing.T) {
	svc := newService(t)
	ctx := context.Background()

	if err := svc.FetchAll(ctx); err != nil {
		t.Fatalf("FetchAll: %v", err)
	}
	before := svc.Stats()

	created, err := svc.Create(ctx, models.ItemInput{Name: "Beaker", Category: "Alat Gelas", Quantity: 10})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if created.ID == "" {
		t.Fatal("expected created item to carry an id")
	}

	after := svc.Stats()
	if after.TotalQuantity != before.TotalQuantity+10 {
		t.Errorf("expected total quantity to grow by 10, got %d -> %d", before.TotalQuantity, after.TotalQuantity)
	}
	if after.TotalItems != before.TotalItems+1 {
		t.Errorf("expected one more item, got %d -> %d", before.TotalItems, after.TotalItems)
	}
}

func TestUpdateAndDeleteResync(t *testing.T) {
	svc := newService(t)
	ctx := context.Background()

	created, err := svc.Create(ctx, models.ItemInput{Name: "Etanol", Category: "Bahan Kimia", Quantity: 2})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	if _, err := svc.Update(ctx, created.ID, models.ItemInput{Name: "Etanol 96%", Category: "Bahan Kimia", Quantity: 8}); err != nil {
		t.Fatalf("Update: %v", err)
	}
	items := svc.Items()
	if len(items) != 1 || items[0].Name != "Etanol 96%" || items[0].Quantity != 8 {
		t.Fatalf("expected list to reflect the server after update, got %+v", items)
	}

	if err := svc.Delete(ctx, created.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if items := svc.Items(); len(items) != 0 {
		t.Fatalf("expected empty list after delete, got %+v", items)
	}
}

// Two identical submissions are two creates; the client does not
// de-duplicate. This is the expected behavior, not a bug.
func TestDuplicateCreatesAreNotDeduplicated(t *testing.T) {
	svc := newService(t)
	ctx := context.Background()

	in := models.ItemInput{Name: "Beaker", Category: "Alat Gelas", Quantity: 10}
	first, err := svc.Create(ctx, in)
	if err != nil {
		t.Fatalf("first Create: %v", err)
	}
	second, err := svc.Create(ctx, in)
	if err != nil {
		t.Fatalf("second Create: %v", err)
	}

	if first.ID == second.ID {
		t.Fatal("expected two distinct items")
	}
	if items := svc.Items(); len(items) != 2 {
		t.Fatalf("expected 2 items, got %d", len(items))
	}
}

// A failed fetch keeps the previous list displayed.
func TestFetchFailureKeepsPreviousList(t *testing.T) {
	var fail bool
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if fail {
			w.WriteHeader(http.StatusInternalServerError)
			w.Write([]byte(`{"message":"boom"}`))
			return
		}
		w.Write([]byte(`[{"id":"1","name":"Beaker","category":"Alat Gelas","quantity":10}]`))
	}))
	defer ts.Close()

	tokens := session.NewStore(filepath.Join(t.TempDir(), "token.json"))
	svc := inventory.NewService(api.NewClient(ts.URL, tokens, nil))
	ctx := context.Background()

	if err := svc.FetchAll(ctx); err != nil {
		t.Fatalf("FetchAll: %v", err)
	}

	fail = true
	if err := svc.FetchAll(ctx); err == nil {
		t.Fatal("expected fetch to fail")
	}
	items := svc.Items()
	if len(items) != 1 || items[0].Name != "Beaker" {
		t.Fatalf("expected stale list to survive, got %+v", items)
	}
}
