package testutil

import (
	"context"
	"sync"

	"tune-go/internal/tune"
)

// StubDirectory is a scripted tune.DirectoryClient. It records the calls
// made against it and returns pre-configured results.
type StubDirectory struct {
	mu sync.Mutex

	SearchResult  []*tune.Station
	SearchErr     error
	StationsByKey map[string][]*tune.Station
	StationsErr   error
	CategoryItems []tune.CategoryItem
	CategoriesErr error
	VoteResult    *tune.VoteReceipt
	VoteErr       error
	ClickResult   *tune.ClickReceipt
	ClickErr      error

	SearchCalls []string
	LookupCalls []string
	VoteCalls   []string
	ClickCalls  []string
	BrowseCalls []tune.CategoryKind
}

func NewStubDirectory() *StubDirectory {
	return &StubDirectory{StationsByKey: make(map[string][]*tune.Station)}
}

// SetStations scripts the result of Stations for a given by/term pair.
func (d *StubDirectory) SetStations(by tune.SearchBy, term string, stations ...*tune.Station) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.StationsByKey[by.Token()+"/"+term] = stations
}

func (d *StubDirectory) Search(_ context.Context, filter *tune.Filter) ([]*tune.Station, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.SearchCalls = append(d.SearchCalls, filter.QueryString())
	return d.SearchResult, d.SearchErr
}

func (d *StubDirectory) Stations(_ context.Context, by tune.SearchBy, term string) ([]*tune.Station, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	key := by.Token() + "/" + term
	d.LookupCalls = append(d.LookupCalls, key)
	return d.StationsByKey[key], d.StationsErr
}

func (d *StubDirectory) Categories(_ context.Context, kind tune.CategoryKind) ([]tune.CategoryItem, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.BrowseCalls = append(d.BrowseCalls, kind)
	return d.CategoryItems, d.CategoriesErr
}

func (d *StubDirectory) Vote(_ context.Context, uuid string) (*tune.VoteReceipt, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.VoteCalls = append(d.VoteCalls, uuid)
	if d.VoteErr != nil {
		return nil, d.VoteErr
	}
	if d.VoteResult != nil {
		return d.VoteResult, nil
	}
	return &tune.VoteReceipt{OK: true, Message: "voted"}, nil
}

func (d *StubDirectory) Click(_ context.Context, uuid string) (*tune.ClickReceipt, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.ClickCalls = append(d.ClickCalls, uuid)
	if d.ClickErr != nil {
		return nil, d.ClickErr
	}
	if d.ClickResult != nil {
		return d.ClickResult, nil
	}
	return &tune.ClickReceipt{OK: true, StationUUID: uuid}, nil
}
