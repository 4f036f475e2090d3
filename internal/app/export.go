package app

import (
	"fmt"
	"io"

	"github.com/jszwec/csvutil"
)

// favouriteRow is the flat CSV shape of one favourite. Optional fields stay
// pointers so absent values export as empty cells without inventing data.
type favouriteRow struct {
	StationUUID string  `csv:"station_uuid"`
	Source      string  `csv:"source"`
	Name        *string `csv:"name"`
	URL         *string `csv:"url"`
	Homepage    *string `csv:"homepage"`
	Tags        *string `csv:"tags"`
	Country     *string `csv:"country"`
	CountryCode *string `csv:"country_code"`
	State       *string `csv:"state"`
	Language    *string `csv:"language"`
	Codec       *string `csv:"codec"`
	Bitrate     uint64  `csv:"bitrate"`
	Votes       uint64  `csv:"votes"`
}

// ExportFavouritesCSV writes the favourites registry to w as CSV, in the
// registry's persisted sort order.
func (a *TuneApp) ExportFavouritesCSV(w io.Writer) (int, error) {
	stations, err := a.ListFavourites()
	if err != nil {
		return 0, err
	}

	rows := make([]favouriteRow, 0, len(stations))
	for _, s := range stations {
		rows = append(rows, favouriteRow{
			StationUUID: s.UUID(),
			Source:      s.Source.String(),
			Name:        s.Name,
			URL:         s.URL,
			Homepage:    s.Homepage,
			Tags:        s.Tags,
			Country:     s.Country,
			CountryCode: s.CountryCode,
			State:       s.State,
			Language:    s.Language,
			Codec:       s.Codec,
			Bitrate:     s.Bitrate,
			Votes:       s.Votes,
		})
	}

	data, err := csvutil.Marshal(rows)
	if err != nil {
		return 0, fmt.Errorf("encoding favourites: %w", err)
	}
	if _, err := w.Write(data); err != nil {
		return 0, fmt.Errorf("writing favourites: %w", err)
	}
	return len(rows), nil
}
