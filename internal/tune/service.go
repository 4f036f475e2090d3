package tune

import (
	"context"
	"fmt"
)

// Per-station display state bits, combined into a bitmask for the UI.
const (
	StateFavourite uint8 = 1 << 0
	StateQueued    uint8 = 1 << 1
	StateLocal     uint8 = 1 << 2
)

// TuneService is the orchestration layer between the CLI and the directory:
// it issues filters, merges results against the favourites registry, sorts
// via the comparator table and computes per-record display state.
type TuneService struct {
	client     DirectoryClient
	favourites *FavouritesService
	logger     Logger
	clock      Clock

	// queuedHash identifies the currently queued/playing station without
	// holding the whole record; zero means nothing is queued.
	queuedHash uint64
}

// NewTuneService creates a new TuneService with the provided dependencies.
func NewTuneService(client DirectoryClient, favourites *FavouritesService, logger Logger, clock Clock) *TuneService {
	return &TuneService{
		client:     client,
		favourites: favourites,
		logger:     logger,
		clock:      clock,
	}
}

// Favourites exposes the favourites registry rules.
func (s *TuneService) Favourites() *FavouritesService {
	return s.favourites
}

// SearchStations queries the directory with the filter, marks results that
// are registered favourites and applies the local sort attribute.
func (s *TuneService) SearchStations(ctx context.Context, filter *Filter, attr SortAttr) ([]*Station, error) {
	stations, err := s.client.Search(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("searching directory: %w", err)
	}
	if err := s.markFavourites(stations); err != nil {
		return nil, err
	}
	SortStations(stations, attr)
	s.logger.Debug("search complete", "results", len(stations))
	return stations, nil
}

// LookupStations fetches stations through one of the directory's fixed
// lookup endpoints and marks favourites.
func (s *TuneService) LookupStations(ctx context.Context, by SearchBy, term string) ([]*Station, error) {
	stations, err := s.client.Stations(ctx, by, term)
	if err != nil {
		return nil, fmt.Errorf("looking up stations: %w", err)
	}
	if err := s.markFavourites(stations); err != nil {
		return nil, err
	}
	return stations, nil
}

// BrowseCategory enumerates the distinct values of one directory attribute.
func (s *TuneService) BrowseCategory(ctx context.Context, kind CategoryKind) ([]CategoryItem, error) {
	items, err := s.client.Categories(ctx, kind)
	if err != nil {
		return nil, fmt.Errorf("browsing %s: %w", kind, err)
	}
	return items, nil
}

// Vote casts a vote for a station and, when it is a registered favourite,
// refreshes the stored copy so the local vote count does not go stale.
func (s *TuneService) Vote(ctx context.Context, uuid string) (*VoteReceipt, error) {
	receipt, err := s.client.Vote(ctx, uuid)
	if err != nil {
		return nil, fmt.Errorf("voting: %w", err)
	}
	if receipt.OK {
		if err := s.RefreshFavourite(ctx, uuid); err != nil {
			s.logger.Warn("favourite refresh after vote failed", "uuid", uuid, "error", err)
		}
	}
	return receipt, nil
}

// Click registers a click (listen) for a station.
func (s *TuneService) Click(ctx context.Context, uuid string) (*ClickReceipt, error) {
	receipt, err := s.client.Click(ctx, uuid)
	if err != nil {
		return nil, fmt.Errorf("registering click: %w", err)
	}
	return receipt, nil
}

// RefreshFavourite re-fetches a remote favourite and minimal-copies the
// fresh fields onto the stored record, keeping the local vote/click
// bookkeeping and the record's insertion slot. A station that is not a
// remote favourite is left alone.
func (s *TuneService) RefreshFavourite(ctx context.Context, uuid string) error {
	stored, err := s.favourites.db.GetFavourite(uuid, SourceRemote)
	if err != nil {
		return fmt.Errorf("looking up favourite: %w", err)
	}
	if stored == nil {
		return nil
	}

	fresh, err := s.client.Stations(ctx, ByUUID, uuid)
	if err != nil {
		return fmt.Errorf("fetching station: %w", err)
	}
	if len(fresh) == 0 {
		return fmt.Errorf("station %s no longer exists in the directory", uuid)
	}

	fresh[0].MinimalCopyTo(stored)
	if err := s.favourites.UpdateFavourite(stored, SourceRemote); err != nil {
		return err
	}
	s.logger.Debug("favourite refreshed", "uuid", uuid)
	return nil
}

// SetQueued records which station is currently queued/playing. Pass nil to
// clear.
func (s *TuneService) SetQueued(station *Station) {
	if station == nil || station.StationUUID == nil {
		s.queuedHash = 0
		return
	}
	s.queuedHash = HashUUID(*station.StationUUID)
}

// StateMask computes the display state bitmask for one station: bit 0 set
// when it is a favourite, bit 1 when it is the queued station, bit 2 when
// it is locally sourced.
func (s *TuneService) StateMask(station *Station) uint8 {
	var mask uint8
	if station == nil {
		return mask
	}
	if station.Favourite {
		mask |= StateFavourite
	}
	if s.queuedHash != 0 && station.StationUUID != nil &&
		HashUUID(*station.StationUUID) == s.queuedHash {
		mask |= StateQueued
	}
	if station.Source == SourceLocal {
		mask |= StateLocal
	}
	return mask
}

func (s *TuneService) markFavourites(stations []*Station) error {
	for _, station := range stations {
		fav, err := s.favourites.IsFavourite(station, station.Source)
		if err != nil {
			return fmt.Errorf("marking favourites: %w", err)
		}
		station.Favourite = fav
	}
	return nil
}
