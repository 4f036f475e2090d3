package app

import (
	"context"
	"fmt"
	"os"

	"tune-go/internal/browser"
	"tune-go/internal/config"
	"tune-go/internal/database"
	"tune-go/internal/tune"
)

// TuneApp is the application layer between the CLI and TuneService.
// It constructs all dependencies from config, exposes high-level operations
// that accept raw CLI values, and manages the DB lifecycle on Close.
type TuneApp struct {
	cfg        *config.Config
	cfgPath    string
	db         tune.Database
	client     tune.DirectoryClient
	favourites *tune.FavouritesService
	service    *tune.TuneService
	logFile    *os.File
}

// NewTuneApp creates a fully wired TuneApp from the given config.
// command identifies the CLI command being run (e.g. "Search", "ToggleFavourite").
// The caller must call Close when done.
func NewTuneApp(cfg *config.Config, cfgPath, command string) (*TuneApp, error) {
	db, err := database.NewDatabaseFromConfig(cfg.Database)
	if err != nil {
		return nil, fmt.Errorf("creating favourites database: %w", err)
	}

	logger, logFile, err := newLogger(cfg.LogDir, command)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("creating logger: %w", err)
	}
	log := &slogAdapter{l: logger}

	client, err := browser.NewClient(cfg.Directory, log)
	if err != nil {
		db.Close()
		logFile.Close()
		return nil, fmt.Errorf("creating directory client: %w", err)
	}

	favourites := tune.NewFavouritesService(db, tune.UUIDGenerator{}, log)
	svc := tune.NewTuneService(client, favourites, log, tune.RealClock{})

	return &TuneApp{
		cfg:        cfg,
		cfgPath:    cfgPath,
		db:         db,
		client:     client,
		favourites: favourites,
		service:    svc,
		logFile:    logFile,
	}, nil
}

// Search queries the directory with the filter and applies the configured
// favourites sort attribute to the results.
func (a *TuneApp) Search(ctx context.Context, filter *tune.Filter) ([]*tune.Station, error) {
	return a.service.SearchStations(ctx, filter, a.sortAttr())
}

// Lookup fetches stations through one of the directory's fixed endpoints.
func (a *TuneApp) Lookup(ctx context.Context, by tune.SearchBy, term string) ([]*tune.Station, error) {
	return a.service.LookupStations(ctx, by, term)
}

// Browse enumerates the distinct values of one directory attribute.
func (a *TuneApp) Browse(ctx context.Context, kind tune.CategoryKind) ([]tune.CategoryItem, error) {
	return a.service.BrowseCategory(ctx, kind)
}

// ListFavourites returns the registry sorted by the persisted sort order.
func (a *TuneApp) ListFavourites() ([]*tune.Station, error) {
	return a.favourites.ListFavourites(a.sortAttr())
}

// ToggleFavourite looks the station up in the directory and toggles its
// favourite registration. Returns true when the station is now a favourite.
func (a *TuneApp) ToggleFavourite(ctx context.Context, uuid string) (bool, error) {
	station, err := a.resolveStation(ctx, uuid)
	if err != nil {
		return false, err
	}
	return a.favourites.ToggleFavourite(station, station.Source)
}

// AddFavourite registers a directory station as a favourite. Adding a
// station that is already registered is an error.
func (a *TuneApp) AddFavourite(ctx context.Context, uuid string) (*tune.Station, error) {
	station, err := a.resolveStation(ctx, uuid)
	if err != nil {
		return nil, err
	}
	fav, err := a.favourites.IsFavourite(station, station.Source)
	if err != nil {
		return nil, err
	}
	if fav {
		return nil, fmt.Errorf("station %s is already a favourite", uuid)
	}
	if _, err := a.favourites.ToggleFavourite(station, station.Source); err != nil {
		return nil, err
	}
	return station, nil
}

// RemoveFavourite removes a station from the registry by UUID, checking the
// local source first and falling back to the remote one.
func (a *TuneApp) RemoveFavourite(uuid string) error {
	for _, source := range []tune.Source{tune.SourceLocal, tune.SourceRemote} {
		fav, err := a.favourites.IsFavouriteUUID(uuid, source)
		if err != nil {
			return err
		}
		if fav {
			station := tune.NewStation()
			station.StationUUID = &uuid
			_, err := a.favourites.ToggleFavourite(station, source)
			return err
		}
	}
	return fmt.Errorf("station %s is not a favourite", uuid)
}

// NewLocalStation registers a user-entered station as a local favourite.
func (a *TuneApp) NewLocalStation(name, streamURL string) (*tune.Station, error) {
	station := tune.NewStation()
	station.Name = &name
	station.URL = &streamURL
	return a.favourites.AddLocalStation(station)
}

// Vote casts a vote for a station.
func (a *TuneApp) Vote(ctx context.Context, uuid string) (*tune.VoteReceipt, error) {
	return a.service.Vote(ctx, uuid)
}

// Click registers a click (listen) for a station.
func (a *TuneApp) Click(ctx context.Context, uuid string) (*tune.ClickReceipt, error) {
	return a.service.Click(ctx, uuid)
}

// StateMask computes the display state bitmask for one station.
func (a *TuneApp) StateMask(station *tune.Station) uint8 {
	return a.service.StateMask(station)
}

// SetSortOrder persists a new favourites sort order into the config file.
func (a *TuneApp) SetSortOrder(token string) error {
	if _, ok := tune.ParseSortAttr(token); !ok {
		return fmt.Errorf("unknown sort order %q", token)
	}
	a.cfg.Favourites.SortBy = token
	if err := config.Save(a.cfgPath, a.cfg); err != nil {
		return fmt.Errorf("persisting sort order: %w", err)
	}
	return nil
}

// Close closes all resources.
func (a *TuneApp) Close() error {
	var firstErr error
	if err := a.db.Close(); err != nil {
		firstErr = fmt.Errorf("closing database: %w", err)
	}
	if a.logFile != nil {
		a.logFile.Close()
	}
	return firstErr
}

// resolveStation finds a station by UUID: local favourites first, then the
// remote favourites, then the directory.
func (a *TuneApp) resolveStation(ctx context.Context, uuid string) (*tune.Station, error) {
	favourites, err := a.favourites.ListFavourites(tune.SortNone)
	if err != nil {
		return nil, err
	}
	for _, s := range favourites {
		if s.UUID() == uuid {
			return s, nil
		}
	}

	stations, err := a.service.LookupStations(ctx, tune.ByUUID, uuid)
	if err != nil {
		return nil, err
	}
	if len(stations) == 0 {
		return nil, fmt.Errorf("no station with UUID %s", uuid)
	}
	return stations[0], nil
}

func (a *TuneApp) sortAttr() tune.SortAttr {
	attr, ok := tune.ParseSortAttr(a.cfg.Favourites.SortBy)
	if !ok {
		return tune.SortNone
	}
	return attr
}
