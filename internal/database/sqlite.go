package database

import (
	"database/sql"
	"errors"
	"fmt"

	"tune-go/internal/database/migrations"
	"tune-go/internal/tune"

	_ "github.com/mattn/go-sqlite3" // SQLite driver
)

// SQLiteDatabase implements the tune.Database interface using SQLite.
// Favourites keep their insertion order through the autoincrement id;
// updates rewrite field values in place and never move a row.
type SQLiteDatabase struct {
	db   *sql.DB
	path string
}

// NewSQLiteDatabase creates a new SQLite database connection.
// path can be a file path or ":memory:" for an in-memory database.
func NewSQLiteDatabase(path string) (*SQLiteDatabase, error) {
	db, err := OpenConnection(path)
	if err != nil {
		return nil, err
	}
	return &SQLiteDatabase{db: db, path: path}, nil
}

// NewSQLiteDatabaseFromDB wraps an existing database connection.
// The caller is responsible for ensuring the connection is properly configured.
func NewSQLiteDatabaseFromDB(db *sql.DB) *SQLiteDatabase {
	return &SQLiteDatabase{db: db}
}

// OpenConnection opens and configures a SQLite connection with the PRAGMAs
// the favourites store relies on. Exported for tools and tests.
func OpenConnection(path string) (*sql.DB, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// Enable foreign key constraints (SQLite default is OFF for backward compatibility)
	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to enable foreign keys: %w", err)
	}

	return db, nil
}

// CheckMigrations verifies the schema is at the latest migration version.
func (s *SQLiteDatabase) CheckMigrations() error {
	return migrations.CheckDBMigrationStatus(s.db)
}

// Migrate applies any outstanding migrations.
func (s *SQLiteDatabase) Migrate() error {
	return migrations.MigrateUp(s.db)
}

const favouriteColumns = `
	station_uuid, source, change_uuid, server_uuid, name, url, url_resolved,
	homepage, favicon, tags, country, country_code, iso_3166_2, state,
	language, language_codes, codec, votes, bitrate, click_count, click_trend,
	last_check_ok, broken, ssl_error, hls,
	last_change_time, last_change_time_iso8601,
	last_check_time, last_check_time_iso8601,
	click_timestamp, click_timestamp_iso8601,
	geo_lat, geo_long, has_extended_info`

func (s *SQLiteDatabase) GetFavourite(uuid string, source tune.Source) (*tune.Station, error) {
	row := s.db.QueryRow(
		`SELECT `+favouriteColumns+` FROM favourites WHERE station_uuid = ? AND source = ?`,
		uuid, int(source),
	)
	station, err := scanStation(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil // Not found
		}
		return nil, fmt.Errorf("finding favourite: %w", err)
	}
	return station, nil
}

func (s *SQLiteDatabase) ListFavourites() ([]*tune.Station, error) {
	rows, err := s.db.Query(`SELECT ` + favouriteColumns + ` FROM favourites ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("listing favourites: %w", err)
	}
	defer rows.Close()

	var stations []*tune.Station
	for rows.Next() {
		station, err := scanStation(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning favourite: %w", err)
		}
		stations = append(stations, station)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("listing favourites: %w", err)
	}
	return stations, nil
}

func (s *SQLiteDatabase) InsertFavourite(station *tune.Station) error {
	if station == nil || station.StationUUID == nil {
		return fmt.Errorf("favourite needs a station UUID")
	}
	_, err := s.db.Exec(
		`INSERT INTO favourites (`+favouriteColumns+`) VALUES
		(?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?,
		 ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		stationArgs(station)...,
	)
	if err != nil {
		return fmt.Errorf("inserting favourite: %w", err)
	}
	return nil
}

func (s *SQLiteDatabase) UpdateFavourite(station *tune.Station) error {
	if station == nil || station.StationUUID == nil {
		return fmt.Errorf("favourite needs a station UUID")
	}
	args := append(stationArgs(station)[2:], *station.StationUUID, int(station.Source))
	res, err := s.db.Exec(
		`UPDATE favourites SET
			change_uuid = ?, server_uuid = ?, name = ?, url = ?,
			url_resolved = ?, homepage = ?, favicon = ?, tags = ?,
			country = ?, country_code = ?, iso_3166_2 = ?, state = ?,
			language = ?, language_codes = ?, codec = ?, votes = ?,
			bitrate = ?, click_count = ?, click_trend = ?, last_check_ok = ?,
			broken = ?, ssl_error = ?, hls = ?,
			last_change_time = ?, last_change_time_iso8601 = ?,
			last_check_time = ?, last_check_time_iso8601 = ?,
			click_timestamp = ?, click_timestamp_iso8601 = ?,
			geo_lat = ?, geo_long = ?, has_extended_info = ?
		WHERE station_uuid = ? AND source = ?`,
		args...,
	)
	if err != nil {
		return fmt.Errorf("updating favourite: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("updating favourite: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("favourite %s (%s) not found", *station.StationUUID, station.Source)
	}
	return nil
}

func (s *SQLiteDatabase) DeleteFavourite(uuid string, source tune.Source) error {
	if _, err := s.db.Exec(
		`DELETE FROM favourites WHERE station_uuid = ? AND source = ?`,
		uuid, int(source),
	); err != nil {
		return fmt.Errorf("deleting favourite: %w", err)
	}
	return nil
}

func (s *SQLiteDatabase) Close() error {
	return s.db.Close()
}

// stationArgs flattens a station into the insert/update argument order of
// favouriteColumns.
func stationArgs(station *tune.Station) []any {
	return []any{
		*station.StationUUID, int(station.Source),
		nullString(station.ChangeUUID), nullString(station.ServerUUID),
		nullString(station.Name), nullString(station.URL),
		nullString(station.URLResolved), nullString(station.Homepage),
		nullString(station.Favicon), nullString(station.Tags),
		nullString(station.Country), nullString(station.CountryCode),
		nullString(station.ISO3166_2), nullString(station.State),
		nullString(station.Language), nullString(station.LanguageCodes),
		nullString(station.Codec),
		int64(station.Votes), int64(station.Bitrate),
		int64(station.ClickCount), station.ClickTrend,
		station.LastCheckOK, station.Broken, station.SSLError, station.HLS,
		nullString(station.LastChangeTime.Raw), nullString(station.LastChangeTime.ISO8601),
		nullString(station.LastCheckTime.Raw), nullString(station.LastCheckTime.ISO8601),
		nullString(station.ClickTimestamp.Raw), nullString(station.ClickTimestamp.ISO8601),
		station.GeoLat, station.GeoLong, station.HasExtendedInfo,
	}
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanStation(row rowScanner) (*tune.Station, error) {
	var (
		station                              = tune.NewStation()
		stationUUID                          string
		source                               int
		changeUUID, serverUUID               sql.NullString
		name, url, urlResolved, homepage     sql.NullString
		favicon, tags, country, countryCode  sql.NullString
		iso31662, state, language, langCodes sql.NullString
		codec                                sql.NullString
		votes, bitrate, clickCount           int64
		lastChangeRaw, lastChangeISO         sql.NullString
		lastCheckRaw, lastCheckISO           sql.NullString
		clickTSRaw, clickTSISO               sql.NullString
	)
	err := row.Scan(
		&stationUUID, &source, &changeUUID, &serverUUID, &name, &url,
		&urlResolved, &homepage, &favicon, &tags, &country, &countryCode,
		&iso31662, &state, &language, &langCodes, &codec,
		&votes, &bitrate, &clickCount, &station.ClickTrend,
		&station.LastCheckOK, &station.Broken, &station.SSLError, &station.HLS,
		&lastChangeRaw, &lastChangeISO, &lastCheckRaw, &lastCheckISO,
		&clickTSRaw, &clickTSISO,
		&station.GeoLat, &station.GeoLong, &station.HasExtendedInfo,
	)
	if err != nil {
		return nil, err
	}

	station.StationUUID = &stationUUID
	station.Source = tune.Source(source)
	station.Favourite = true
	station.ChangeUUID = fromNull(changeUUID)
	station.ServerUUID = fromNull(serverUUID)
	station.Name = fromNull(name)
	station.URL = fromNull(url)
	station.URLResolved = fromNull(urlResolved)
	station.Homepage = fromNull(homepage)
	station.Favicon = fromNull(favicon)
	station.Tags = fromNull(tags)
	station.Country = fromNull(country)
	station.CountryCode = fromNull(countryCode)
	station.ISO3166_2 = fromNull(iso31662)
	station.State = fromNull(state)
	station.Language = fromNull(language)
	station.LanguageCodes = fromNull(langCodes)
	station.Codec = fromNull(codec)
	station.Votes = uint64(votes)
	station.Bitrate = uint64(bitrate)
	station.ClickCount = uint64(clickCount)
	station.LastChangeTime = tune.TimestampPair{Raw: fromNull(lastChangeRaw), ISO8601: fromNull(lastChangeISO)}
	station.LastCheckTime = tune.TimestampPair{Raw: fromNull(lastCheckRaw), ISO8601: fromNull(lastCheckISO)}
	station.ClickTimestamp = tune.TimestampPair{Raw: fromNull(clickTSRaw), ISO8601: fromNull(clickTSISO)}
	return station, nil
}

func nullString(s *string) sql.NullString {
	if s == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *s, Valid: true}
}

func fromNull(ns sql.NullString) *string {
	if !ns.Valid {
		return nil
	}
	v := ns.String
	return &v
}
