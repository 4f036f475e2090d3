package tune

// Database provides persistent storage for the favourites registry.
// Entries are keyed by (station UUID, source); listing preserves insertion
// order so the registry can apply its own configured sort on top.
type Database interface {
	// GetFavourite returns the stored favourite for the key, or nil when absent.
	GetFavourite(uuid string, source Source) (*Station, error)

	// ListFavourites returns all favourites in insertion order.
	ListFavourites() ([]*Station, error)

	// InsertFavourite stores a new favourite.
	// Returns an error if the (UUID, source) key already exists.
	InsertFavourite(station *Station) error

	// UpdateFavourite replaces the stored fields of the favourite matching
	// station's (UUID, source) key without moving its insertion slot.
	UpdateFavourite(station *Station) error

	// DeleteFavourite removes the favourite for the key, if present.
	DeleteFavourite(uuid string, source Source) error

	// Close closes the underlying store.
	Close() error
}
