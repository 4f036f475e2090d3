package app

import (
	"context"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"tune-go/internal/config"
	"tune-go/internal/tune"
)

// newTestApp wires a full TuneApp against an httptest directory server, a
// memory database and a throwaway config file.
func newTestApp(t *testing.T, handler http.Handler) *TuneApp {
	t.Helper()

	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	base := t.TempDir()
	cfg := config.NewConfig(base)
	cfg.Directory.ServerURL = srv.URL
	cfg.Database = config.DatabaseConfig{Type: "memory"}

	cfgPath := filepath.Join(base, "tune.toml")
	if err := config.Init(cfgPath, cfg); err != nil {
		t.Fatalf("config.Init() error = %v", err)
	}

	a, err := NewTuneApp(cfg, cfgPath, "Test")
	if err != nil {
		t.Fatalf("NewTuneApp() error = %v", err)
	}
	t.Cleanup(func() {
		a.Close()
	})
	return a
}

// directoryStub serves a fixed station for byuuid lookups and empty
// responses elsewhere.
func directoryStub() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case strings.HasPrefix(r.URL.Path, "/json/stations/byuuid/uuid-1"):
			w.Write([]byte(`[{"stationuuid":"uuid-1","name":"Radio One","url":"http://one.example/stream","bitrate":128}]`))
		case strings.HasPrefix(r.URL.Path, "/json/stations/"):
			w.Write([]byte(`[]`))
		default:
			w.Write([]byte(`[]`))
		}
	})
}

func TestTuneApp_FavouriteLifecycle(t *testing.T) {
	a := newTestApp(t, directoryStub())
	ctx := context.Background()

	station, err := a.AddFavourite(ctx, "uuid-1")
	if err != nil {
		t.Fatalf("AddFavourite() error = %v", err)
	}
	if station.DisplayName() != "Radio One" {
		t.Errorf("resolved name = %q, want %q", station.DisplayName(), "Radio One")
	}

	// Adding again is an error.
	if _, err := a.AddFavourite(ctx, "uuid-1"); err == nil {
		t.Fatalf("second AddFavourite() error = nil, want already-registered error")
	}

	stations, err := a.ListFavourites()
	if err != nil {
		t.Fatalf("ListFavourites() error = %v", err)
	}
	if len(stations) != 1 {
		t.Fatalf("got %d favourites, want 1", len(stations))
	}

	if err := a.RemoveFavourite("uuid-1"); err != nil {
		t.Fatalf("RemoveFavourite() error = %v", err)
	}
	if err := a.RemoveFavourite("uuid-1"); err == nil {
		t.Fatalf("second RemoveFavourite() error = nil, want not-a-favourite error")
	}
}

func TestTuneApp_ToggleFavourite(t *testing.T) {
	a := newTestApp(t, directoryStub())
	ctx := context.Background()

	added, err := a.ToggleFavourite(ctx, "uuid-1")
	if err != nil {
		t.Fatalf("ToggleFavourite() error = %v", err)
	}
	if !added {
		t.Fatalf("first toggle = false, want true")
	}

	added, err = a.ToggleFavourite(ctx, "uuid-1")
	if err != nil {
		t.Fatalf("ToggleFavourite() error = %v", err)
	}
	if added {
		t.Fatalf("second toggle = true, want false")
	}

	// Unknown station can't be toggled.
	if _, err := a.ToggleFavourite(ctx, "uuid-missing"); err == nil {
		t.Fatalf("ToggleFavourite(missing) error = nil, want error")
	}
}

func TestTuneApp_NewLocalStation(t *testing.T) {
	a := newTestApp(t, directoryStub())

	station, err := a.NewLocalStation("My Stream", "http://mine.example/stream")
	if err != nil {
		t.Fatalf("NewLocalStation() error = %v", err)
	}
	if station.Source != tune.SourceLocal {
		t.Errorf("Source = %v, want local", station.Source)
	}
	if station.UUID() == "" {
		t.Errorf("no UUID assigned")
	}

	mask := a.StateMask(station)
	if mask != tune.StateFavourite|tune.StateLocal {
		t.Errorf("StateMask = %b, want favourite|local", mask)
	}
}

func TestTuneApp_SetSortOrder(t *testing.T) {
	a := newTestApp(t, directoryStub())

	if err := a.SetSortOrder("name_desc"); err != nil {
		t.Fatalf("SetSortOrder() error = %v", err)
	}

	// The new order is persisted into the config file.
	cfg, err := config.ReadFromFile(a.cfgPath)
	if err != nil {
		t.Fatalf("ReadFromFile() error = %v", err)
	}
	if cfg.Favourites.SortBy != "name_desc" {
		t.Errorf("persisted SortBy = %q, want %q", cfg.Favourites.SortBy, "name_desc")
	}

	if err := a.SetSortOrder("bogus"); err == nil {
		t.Fatalf("SetSortOrder(bogus) error = nil, want error")
	}
}

func TestTuneApp_ListFavourites_UsesPersistedOrder(t *testing.T) {
	a := newTestApp(t, directoryStub())

	for _, name := range []string{"Charlie", "Alpha", "Beta"} {
		if _, err := a.NewLocalStation(name, "http://x.example/"+name); err != nil {
			t.Fatalf("NewLocalStation(%s) error = %v", name, err)
		}
	}

	if err := a.SetSortOrder("name"); err != nil {
		t.Fatalf("SetSortOrder() error = %v", err)
	}

	stations, err := a.ListFavourites()
	if err != nil {
		t.Fatalf("ListFavourites() error = %v", err)
	}
	got := make([]string, 0, len(stations))
	for _, s := range stations {
		got = append(got, s.DisplayName())
	}
	if strings.Join(got, ",") != "Alpha,Beta,Charlie" {
		t.Errorf("order = %v, want name ascending", got)
	}
}

func TestTuneApp_ExportFavouritesCSV(t *testing.T) {
	a := newTestApp(t, directoryStub())

	if _, err := a.NewLocalStation("My Stream", "http://mine.example/stream"); err != nil {
		t.Fatalf("NewLocalStation() error = %v", err)
	}

	var buf strings.Builder
	n, err := a.ExportFavouritesCSV(&buf)
	if err != nil {
		t.Fatalf("ExportFavouritesCSV() error = %v", err)
	}
	if n != 1 {
		t.Errorf("exported %d rows, want 1", n)
	}

	out := buf.String()
	lines := strings.Split(strings.TrimSpace(out), "\n")
	if len(lines) != 2 {
		t.Fatalf("got %d lines, want header + 1 row:\n%s", len(lines), out)
	}
	if !strings.HasPrefix(lines[0], "station_uuid,source,name") {
		t.Errorf("header = %q", lines[0])
	}
	if !strings.Contains(lines[1], "My Stream") {
		t.Errorf("row = %q, want station name", lines[1])
	}
	if !strings.Contains(lines[1], "local") {
		t.Errorf("row = %q, want local source", lines[1])
	}
}
