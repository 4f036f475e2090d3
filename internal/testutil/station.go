package testutil

import "tune-go/internal/tune"

// Str returns a pointer to s, for optional station fields in fixtures.
func Str(s string) *string {
	return &s
}

// Station builds a remote station fixture with the given name and UUID.
func Station(name, uuid string) *tune.Station {
	s := tune.NewStation()
	s.Name = Str(name)
	s.StationUUID = Str(uuid)
	s.URL = Str("http://stream.example/" + uuid)
	s.Source = tune.SourceRemote
	return s
}

// LocalStation builds a local station fixture with the given name and UUID.
func LocalStation(name, uuid string) *tune.Station {
	s := Station(name, uuid)
	s.Source = tune.SourceLocal
	s.Favourite = true
	return s
}
