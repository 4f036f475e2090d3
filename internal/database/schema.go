package database

// Schema is the complete current database schema, equivalent to applying
// every migration in order. Tests apply it directly to in-memory databases
// instead of running the migration chain.
//
// Keep in sync with internal/database/migrations/files.
const Schema = `
CREATE TABLE favourites (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	station_uuid TEXT NOT NULL,
	source INTEGER NOT NULL,
	change_uuid TEXT,
	server_uuid TEXT,
	name TEXT,
	url TEXT,
	url_resolved TEXT,
	homepage TEXT,
	favicon TEXT,
	tags TEXT,
	country TEXT,
	country_code TEXT,
	iso_3166_2 TEXT,
	state TEXT,
	language TEXT,
	language_codes TEXT,
	codec TEXT,
	votes INTEGER NOT NULL DEFAULT 0,
	bitrate INTEGER NOT NULL DEFAULT 0,
	click_count INTEGER NOT NULL DEFAULT 0,
	click_trend INTEGER NOT NULL DEFAULT 0,
	last_check_ok INTEGER NOT NULL DEFAULT 0,
	broken INTEGER NOT NULL DEFAULT 0,
	ssl_error INTEGER NOT NULL DEFAULT 0,
	hls INTEGER NOT NULL DEFAULT 0,
	last_change_time TEXT,
	last_change_time_iso8601 TEXT,
	last_check_time TEXT,
	last_check_time_iso8601 TEXT,
	click_timestamp TEXT,
	click_timestamp_iso8601 TEXT,
	geo_lat REAL NOT NULL DEFAULT 0,
	geo_long REAL NOT NULL DEFAULT 0,
	has_extended_info INTEGER NOT NULL DEFAULT 0,
	UNIQUE (station_uuid, source)
);

CREATE INDEX idx_favourites_station_uuid ON favourites (station_uuid);
`
