package tune

import (
	"fmt"
	"sync"
)

// uuidAttempts bounds local UUID generation retries before giving up.
const uuidAttempts = 5

// FavouritesService owns the identity and merge rules for the favourites
// registry: one persisted set of stations keyed by (UUID, source).
//
// A single mutex serializes mutation so a UUID collision check and the
// insert that depends on it are atomic; two concurrent toggles on the same
// station must never produce duplicate entries.
type FavouritesService struct {
	mu     sync.Mutex
	db     Database
	idgen  IDGenerator
	logger Logger
}

// NewFavouritesService creates a favourites service over the given store.
func NewFavouritesService(db Database, idgen IDGenerator, logger Logger) *FavouritesService {
	return &FavouritesService{db: db, idgen: idgen, logger: logger}
}

// IsFavourite reports whether the station's (UUID, source) key is registered.
// A station without a UUID is never a favourite.
func (f *FavouritesService) IsFavourite(station *Station, source Source) (bool, error) {
	if station == nil || station.StationUUID == nil {
		return false, nil
	}
	return f.IsFavouriteUUID(*station.StationUUID, source)
}

// IsFavouriteUUID is the UUID-only existence check, also used during local
// UUID generation to detect collisions.
func (f *FavouritesService) IsFavouriteUUID(uuid string, source Source) (bool, error) {
	stored, err := f.db.GetFavourite(uuid, source)
	if err != nil {
		return false, fmt.Errorf("looking up favourite: %w", err)
	}
	return stored != nil, nil
}

// ToggleFavourite removes the station from the registry when present, or
// inserts a deep copy tagged with the given source when absent.
// Returns true when the station is a favourite after the call.
func (f *FavouritesService) ToggleFavourite(station *Station, source Source) (bool, error) {
	if station == nil || station.StationUUID == nil {
		return false, fmt.Errorf("station has no UUID")
	}
	f.mu.Lock()
	defer f.mu.Unlock()

	uuid := *station.StationUUID
	stored, err := f.db.GetFavourite(uuid, source)
	if err != nil {
		return false, fmt.Errorf("looking up favourite: %w", err)
	}

	if stored != nil {
		if err := f.db.DeleteFavourite(uuid, source); err != nil {
			return false, fmt.Errorf("removing favourite: %w", err)
		}
		f.logger.Info("favourite removed", "uuid", uuid, "source", source.String())
		return false, nil
	}

	entry := station.Duplicate()
	entry.Source = source
	entry.Favourite = true
	if err := f.db.InsertFavourite(entry); err != nil {
		return false, fmt.Errorf("adding favourite: %w", err)
	}
	f.logger.Info("favourite added", "uuid", uuid, "source", source.String())
	return true, nil
}

// UpdateFavourite replaces the stored favourite matching the station's
// (UUID, source) key with the station's current field values, keeping its
// insertion-order slot.
func (f *FavouritesService) UpdateFavourite(station *Station, source Source) error {
	if station == nil || station.StationUUID == nil {
		return fmt.Errorf("station has no UUID")
	}
	f.mu.Lock()
	defer f.mu.Unlock()

	entry := station.Duplicate()
	entry.Source = source
	entry.Favourite = true
	if err := f.db.UpdateFavourite(entry); err != nil {
		return fmt.Errorf("updating favourite: %w", err)
	}
	return nil
}

// ListFavourites returns the registry contents sorted by the given
// attribute. SortNone preserves insertion order.
func (f *FavouritesService) ListFavourites(attr SortAttr) ([]*Station, error) {
	stations, err := f.db.ListFavourites()
	if err != nil {
		return nil, fmt.Errorf("listing favourites: %w", err)
	}
	for _, s := range stations {
		s.Favourite = true
	}
	SortStations(stations, attr)
	return stations, nil
}

// GenerateLocalUUID produces a UUID for a new local station, regenerating
// on collision with an existing local favourite. After five collisions it
// gives up and reports failure.
func (f *FavouritesService) GenerateLocalUUID() (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.generateLocalUUIDLocked()
}

func (f *FavouritesService) generateLocalUUIDLocked() (string, error) {
	for attempt := 0; attempt < uuidAttempts; attempt++ {
		id := f.idgen.New()
		stored, err := f.db.GetFavourite(id, SourceLocal)
		if err != nil {
			return "", fmt.Errorf("checking UUID collision: %w", err)
		}
		if stored == nil {
			return id, nil
		}
		f.logger.Warn("local UUID collision, regenerating", "uuid", id, "attempt", attempt+1)
	}
	return "", fmt.Errorf("could not generate a unique local UUID in %d attempts", uuidAttempts)
}

// AddLocalStation registers a user-entered station as a local favourite,
// assigning it a fresh collision-checked UUID. Returns the stored copy.
func (f *FavouritesService) AddLocalStation(station *Station) (*Station, error) {
	if station == nil || station.Name == nil || station.URL == nil {
		return nil, fmt.Errorf("local station needs at least a name and a URL")
	}
	f.mu.Lock()
	defer f.mu.Unlock()

	id, err := f.generateLocalUUIDLocked()
	if err != nil {
		return nil, err
	}

	entry := station.Duplicate()
	entry.StationUUID = &id
	entry.Source = SourceLocal
	entry.Favourite = true
	if err := f.db.InsertFavourite(entry); err != nil {
		return nil, fmt.Errorf("adding local station: %w", err)
	}
	f.logger.Info("local station added", "uuid", id, "name", entry.DisplayName())
	return entry, nil
}
