package tune_test

import (
	"context"
	"errors"
	"testing"

	"tune-go/internal/testutil"
	"tune-go/internal/tune"
)

func newService(t *testing.T) (*tune.TuneService, *testutil.StubDirectory) {
	t.Helper()
	dir := testutil.NewStubDirectory()
	favs := newFavourites(t, nil)
	svc := tune.NewTuneService(dir, favs, tune.NewNopLogger(), testutil.FixedClock())
	return svc, dir
}

func TestTuneService_SearchStations(t *testing.T) {
	t.Run("marks favourites and sorts", func(t *testing.T) {
		t.Parallel()
		svc, dir := newService(t)
		fav := testutil.Station("Beta", "uuid-beta")
		if _, err := svc.Favourites().ToggleFavourite(fav, tune.SourceRemote); err != nil {
			t.Fatalf("ToggleFavourite() error = %v", err)
		}

		dir.SearchResult = []*tune.Station{
			testutil.Station("Charlie", "uuid-charlie"),
			testutil.Station("Beta", "uuid-beta"),
			testutil.Station("Alpha", "uuid-alpha"),
		}

		filter := tune.NewFilter()
		filter.Tag = "jazz"
		stations, err := svc.SearchStations(context.Background(), filter, tune.SortNameAsc)
		if err != nil {
			t.Fatalf("SearchStations() error = %v", err)
		}

		if len(stations) != 3 {
			t.Fatalf("got %d stations, want 3", len(stations))
		}
		if got := stations[0].DisplayName(); got != "Alpha" {
			t.Errorf("stations[0] = %q, want Alpha (sorted)", got)
		}
		if !stations[1].Favourite {
			t.Errorf("Beta not marked as favourite")
		}
		if stations[0].Favourite || stations[2].Favourite {
			t.Errorf("non-favourites marked")
		}

		if len(dir.SearchCalls) != 1 || dir.SearchCalls[0] != "tag=jazz" {
			t.Errorf("directory query = %v, want [tag=jazz]", dir.SearchCalls)
		}
	})

	t.Run("directory error propagates", func(t *testing.T) {
		t.Parallel()
		svc, dir := newService(t)
		dir.SearchErr = errors.New("boom")

		if _, err := svc.SearchStations(context.Background(), tune.NewFilter(), tune.SortNone); err == nil {
			t.Fatalf("SearchStations() error = nil, want error")
		}
	})
}

func TestTuneService_LookupStations(t *testing.T) {
	t.Parallel()
	svc, dir := newService(t)
	dir.SetStations(tune.ByTag, "jazz", testutil.Station("Alpha", "uuid-alpha"))

	stations, err := svc.LookupStations(context.Background(), tune.ByTag, "jazz")
	if err != nil {
		t.Fatalf("LookupStations() error = %v", err)
	}
	if len(stations) != 1 || stations[0].DisplayName() != "Alpha" {
		t.Fatalf("stations = %v", stations)
	}
	if len(dir.LookupCalls) != 1 || dir.LookupCalls[0] != "bytag/jazz" {
		t.Errorf("lookup calls = %v", dir.LookupCalls)
	}
}

func TestTuneService_BrowseCategory(t *testing.T) {
	t.Parallel()
	svc, dir := newService(t)
	dir.CategoryItems = []tune.CategoryItem{
		{Name: "jazz", StationCount: 120},
		{Name: "rock", StationCount: 900},
	}

	items, err := svc.BrowseCategory(context.Background(), tune.CategoryTags)
	if err != nil {
		t.Fatalf("BrowseCategory() error = %v", err)
	}
	if len(items) != 2 || items[0].Name != "jazz" {
		t.Fatalf("items = %v", items)
	}
	if len(dir.BrowseCalls) != 1 || dir.BrowseCalls[0] != tune.CategoryTags {
		t.Errorf("browse calls = %v", dir.BrowseCalls)
	}
}

func TestTuneService_Vote(t *testing.T) {
	t.Run("successful vote refreshes a stored favourite", func(t *testing.T) {
		t.Parallel()
		svc, dir := newService(t)

		stored := testutil.Station("Radio One", "uuid-1")
		stored.Votes = 10
		stored.ClickCount = 5
		if _, err := svc.Favourites().ToggleFavourite(stored, tune.SourceRemote); err != nil {
			t.Fatalf("ToggleFavourite() error = %v", err)
		}

		fresh := testutil.Station("Radio One", "uuid-1")
		fresh.Votes = 999
		fresh.Bitrate = 320
		dir.SetStations(tune.ByUUID, "uuid-1", fresh)

		receipt, err := svc.Vote(context.Background(), "uuid-1")
		if err != nil {
			t.Fatalf("Vote() error = %v", err)
		}
		if !receipt.OK {
			t.Fatalf("receipt.OK = false")
		}

		stations, err := svc.Favourites().ListFavourites(tune.SortNone)
		if err != nil {
			t.Fatalf("ListFavourites() error = %v", err)
		}
		if len(stations) != 1 {
			t.Fatalf("got %d favourites, want 1", len(stations))
		}
		got := stations[0]
		if got.Bitrate != 320 {
			t.Errorf("bitrate = %d, want 320 (refreshed)", got.Bitrate)
		}
		// Local vote/click bookkeeping survives the refresh.
		if got.Votes != 10 {
			t.Errorf("votes = %d, want 10 (kept)", got.Votes)
		}
		if got.ClickCount != 5 {
			t.Errorf("clicks = %d, want 5 (kept)", got.ClickCount)
		}
	})

	t.Run("rejected vote skips the refresh", func(t *testing.T) {
		t.Parallel()
		svc, dir := newService(t)
		dir.VoteResult = &tune.VoteReceipt{OK: false, Message: "too many votes"}

		receipt, err := svc.Vote(context.Background(), "uuid-1")
		if err != nil {
			t.Fatalf("Vote() error = %v", err)
		}
		if receipt.OK {
			t.Fatalf("receipt.OK = true, want false")
		}
		if len(dir.LookupCalls) != 0 {
			t.Errorf("refresh lookup happened after rejected vote: %v", dir.LookupCalls)
		}
	})

	t.Run("vote for a non-favourite succeeds without refresh", func(t *testing.T) {
		t.Parallel()
		svc, dir := newService(t)

		receipt, err := svc.Vote(context.Background(), "uuid-unknown")
		if err != nil {
			t.Fatalf("Vote() error = %v", err)
		}
		if !receipt.OK {
			t.Fatalf("receipt.OK = false")
		}
		if len(dir.LookupCalls) != 0 {
			t.Errorf("lookup happened for a non-favourite: %v", dir.LookupCalls)
		}
	})
}

func TestTuneService_Click(t *testing.T) {
	t.Parallel()
	svc, dir := newService(t)
	dir.ClickResult = &tune.ClickReceipt{
		OK:          true,
		StationUUID: "uuid-1",
		Name:        "Radio One",
		URL:         "http://one.example/stream",
	}

	receipt, err := svc.Click(context.Background(), "uuid-1")
	if err != nil {
		t.Fatalf("Click() error = %v", err)
	}
	if receipt.URL != "http://one.example/stream" {
		t.Errorf("receipt.URL = %q", receipt.URL)
	}
	if len(dir.ClickCalls) != 1 || dir.ClickCalls[0] != "uuid-1" {
		t.Errorf("click calls = %v", dir.ClickCalls)
	}
}

func TestTuneService_RefreshFavourite(t *testing.T) {
	t.Run("missing directory record is an error", func(t *testing.T) {
		t.Parallel()
		svc, _ := newService(t)

		stored := testutil.Station("Gone", "uuid-gone")
		if _, err := svc.Favourites().ToggleFavourite(stored, tune.SourceRemote); err != nil {
			t.Fatalf("ToggleFavourite() error = %v", err)
		}

		if err := svc.RefreshFavourite(context.Background(), "uuid-gone"); err == nil {
			t.Fatalf("RefreshFavourite() error = nil, want error")
		}
	})

	t.Run("non-favourite is left alone", func(t *testing.T) {
		t.Parallel()
		svc, dir := newService(t)

		if err := svc.RefreshFavourite(context.Background(), "uuid-x"); err != nil {
			t.Fatalf("RefreshFavourite() error = %v", err)
		}
		if len(dir.LookupCalls) != 0 {
			t.Errorf("directory queried for a non-favourite: %v", dir.LookupCalls)
		}
	})
}

func TestTuneService_StateMask(t *testing.T) {
	t.Parallel()
	svc, _ := newService(t)

	local := testutil.LocalStation("Mine", "uuid-local")
	if got := svc.StateMask(local); got != tune.StateFavourite|tune.StateLocal {
		t.Errorf("StateMask(local favourite) = %b, want %b", got, tune.StateFavourite|tune.StateLocal)
	}

	remote := testutil.Station("Theirs", "uuid-remote")
	if got := svc.StateMask(remote); got != 0 {
		t.Errorf("StateMask(plain remote) = %b, want 0", got)
	}

	svc.SetQueued(remote)
	if got := svc.StateMask(remote); got != tune.StateQueued {
		t.Errorf("StateMask(queued) = %b, want %b", got, tune.StateQueued)
	}
	if got := svc.StateMask(local); got&tune.StateQueued != 0 {
		t.Errorf("unqueued station carries the queued bit")
	}

	svc.SetQueued(nil)
	if got := svc.StateMask(remote); got&tune.StateQueued != 0 {
		t.Errorf("queued bit survives clearing")
	}

	if got := svc.StateMask(nil); got != 0 {
		t.Errorf("StateMask(nil) = %b, want 0", got)
	}
}
