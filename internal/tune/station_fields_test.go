package tune_test

import (
	"strings"
	"testing"

	"tune-go/internal/tune"
)

func TestSetField(t *testing.T) {
	t.Run("decodes a wire response shape", func(t *testing.T) {
		t.Parallel()
		s := tune.NewStation()
		wire := map[string]any{
			"stationuuid":            "uuid-9",
			"name":                   "Radio Nine",
			"url_resolved":           "http://nine.example/stream",
			"iso_3166_2":             "FR-IDF",
			"votes":                  float64(120),
			"bitrate":                float64(192),
			"clicktrend":             float64(-2),
			"lastcheckok":            float64(1),
			"hls":                    float64(0),
			"geo_lat":                48.85,
			"lastchangetime_iso8601": "2024-02-01T12:00:00Z",
		}

		for name, value := range wire {
			if err := tune.SetField(s, name, value); err != nil {
				t.Fatalf("SetField(%q) error = %v", name, err)
			}
		}

		if s.StationUUID == nil || *s.StationUUID != "uuid-9" {
			t.Errorf("StationUUID not set")
		}
		if s.URLResolved == nil || *s.URLResolved != "http://nine.example/stream" {
			t.Errorf("URLResolved not set")
		}
		if s.ISO3166_2 == nil || *s.ISO3166_2 != "FR-IDF" {
			t.Errorf("ISO3166_2 not set")
		}
		if s.Votes != 120 || s.Bitrate != 192 {
			t.Errorf("metrics: votes=%d bitrate=%d", s.Votes, s.Bitrate)
		}
		if s.ClickTrend != -2 {
			t.Errorf("ClickTrend = %d, want -2", s.ClickTrend)
		}
		if !s.LastCheckOK {
			t.Errorf("LastCheckOK = false, want true (wire sends 1)")
		}
		if s.HLS {
			t.Errorf("HLS = true, want false (wire sends 0)")
		}
		if s.GeoLat != 48.85 {
			t.Errorf("GeoLat = %v, want 48.85", s.GeoLat)
		}
		if s.LastChangeTime.ISO8601 == nil || *s.LastChangeTime.ISO8601 != "2024-02-01T12:00:00Z" {
			t.Errorf("LastChangeTime.ISO8601 not set")
		}
	})

	t.Run("unknown field names are skipped silently", func(t *testing.T) {
		t.Parallel()
		s := tune.NewStation()
		if err := tune.SetField(s, "some_future_field", "whatever"); err != nil {
			t.Fatalf("SetField(unknown) error = %v", err)
		}
	})

	t.Run("nil clears an optional string", func(t *testing.T) {
		t.Parallel()
		s := tune.NewStation()
		s.Homepage = str("http://old.example")
		if err := tune.SetField(s, "homepage", nil); err != nil {
			t.Fatalf("SetField error = %v", err)
		}
		if s.Homepage != nil {
			t.Errorf("Homepage = %q, want nil", *s.Homepage)
		}
	})

	t.Run("type mismatch names the field", func(t *testing.T) {
		t.Parallel()
		s := tune.NewStation()
		err := tune.SetField(s, "name", 42)
		if err == nil {
			t.Fatalf("SetField(name, 42) error = nil, want error")
		}
		if !strings.Contains(err.Error(), `"name"`) {
			t.Errorf("error %q does not name the field", err)
		}
	})

	t.Run("numeric strings coerce", func(t *testing.T) {
		t.Parallel()
		s := tune.NewStation()
		if err := tune.SetField(s, "votes", "55"); err != nil {
			t.Fatalf("SetField error = %v", err)
		}
		if s.Votes != 55 {
			t.Errorf("Votes = %d, want 55", s.Votes)
		}
	})
}

func TestLookupField(t *testing.T) {
	t.Parallel()
	acc, ok := tune.LookupField("bitrate")
	if !ok {
		t.Fatalf("LookupField(bitrate) not found")
	}
	if acc.Type != tune.FieldUnsigned {
		t.Errorf("bitrate type = %v, want FieldUnsigned", acc.Type)
	}

	s := fullStation()
	if got := acc.Get(s); got != uint64(128) {
		t.Errorf("Get(bitrate) = %v, want 128", got)
	}

	if _, ok := tune.LookupField("nope"); ok {
		t.Errorf("LookupField(nope) found an accessor")
	}

	// String getters surface nil for unset fields.
	acc, _ = tune.LookupField("homepage")
	if got := acc.Get(tune.NewStation()); got != nil {
		t.Errorf("Get(homepage) on empty station = %v, want nil", got)
	}
}
