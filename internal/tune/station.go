package tune

import (
	"hash/fnv"
)

// Source identifies where a station record originated.
// A record's source is set once at creation; changing it afterwards would
// break favourite bookkeeping, which is keyed by (UUID, source).
type Source int

const (
	// SourceLocal marks a station entered by the user on this machine.
	SourceLocal Source = iota
	// SourceRemote marks a station fetched from the remote directory.
	SourceRemote
)

func (s Source) String() string {
	switch s {
	case SourceLocal:
		return "local"
	case SourceRemote:
		return "remote"
	default:
		return "unknown"
	}
}

// TimestampPair holds a directory timestamp in both the legacy raw format
// and the normalized ISO-8601 format. Either may be absent independently.
type TimestampPair struct {
	Raw     *string
	ISO8601 *string
}

// Station is the canonical in-memory representation of one radio station,
// whether it came from the local favourites registry or the remote directory.
// Optional strings are pointers: nil means the directory never sent the
// field, which is distinct from an empty value.
type Station struct {
	// Identity
	ChangeUUID  *string
	StationUUID *string // primary identity key
	ServerUUID  *string

	// Descriptive
	Name          *string
	URL           *string
	URLResolved   *string
	Homepage      *string
	Favicon       *string
	Tags          *string // comma-joined
	Country       *string
	CountryCode   *string // ISO 3166-1 alpha-2
	ISO3166_2     *string // ISO 3166-2 subdivision code, when known
	State         *string
	Language      *string
	LanguageCodes *string
	Codec         *string

	// Metrics
	Votes       uint64
	Bitrate     uint64
	ClickCount  uint64
	ClickTrend  int64
	LastCheckOK bool
	Broken      bool
	SSLError    int64
	HLS         bool

	// Timestamps
	LastChangeTime TimestampPair
	LastCheckTime  TimestampPair
	ClickTimestamp TimestampPair

	// Geo
	GeoLat  float64
	GeoLong float64

	// Origin and UI state
	Favourite       bool
	Source          Source
	HasExtendedInfo bool
}

// NewStation returns a zeroed station record. All optional fields are nil,
// the source is local and the favourite flag is unset.
func NewStation() *Station {
	return &Station{Source: SourceLocal}
}

// CopyTo deep-copies every field of s into dst, overwriting whatever dst
// held before. Copying a station onto itself is a no-op.
func (s *Station) CopyTo(dst *Station) {
	if s == dst || dst == nil {
		return
	}
	dst.ChangeUUID = cloneString(s.ChangeUUID)
	dst.StationUUID = cloneString(s.StationUUID)
	dst.ServerUUID = cloneString(s.ServerUUID)
	dst.Name = cloneString(s.Name)
	dst.URL = cloneString(s.URL)
	dst.URLResolved = cloneString(s.URLResolved)
	dst.Homepage = cloneString(s.Homepage)
	dst.Favicon = cloneString(s.Favicon)
	dst.Tags = cloneString(s.Tags)
	dst.Country = cloneString(s.Country)
	dst.CountryCode = cloneString(s.CountryCode)
	dst.ISO3166_2 = cloneString(s.ISO3166_2)
	dst.State = cloneString(s.State)
	dst.Language = cloneString(s.Language)
	dst.LanguageCodes = cloneString(s.LanguageCodes)
	dst.Codec = cloneString(s.Codec)
	dst.Votes = s.Votes
	dst.Bitrate = s.Bitrate
	dst.ClickCount = s.ClickCount
	dst.ClickTrend = s.ClickTrend
	dst.LastCheckOK = s.LastCheckOK
	dst.Broken = s.Broken
	dst.SSLError = s.SSLError
	dst.HLS = s.HLS
	dst.LastChangeTime = s.LastChangeTime.clone()
	dst.LastCheckTime = s.LastCheckTime.clone()
	dst.ClickTimestamp = s.ClickTimestamp.clone()
	dst.GeoLat = s.GeoLat
	dst.GeoLong = s.GeoLong
	dst.Favourite = s.Favourite
	dst.Source = s.Source
	dst.HasExtendedInfo = s.HasExtendedInfo
}

// MinimalCopyTo copies every user-facing field of s into dst but leaves
// dst's vote/click housekeeping (votes, click count, click trend and the
// click timestamp pair) untouched. Used when syncing a favourite in memory
// so stale remote metadata is not carried over.
func (s *Station) MinimalCopyTo(dst *Station) {
	if s == dst || dst == nil {
		return
	}
	votes := dst.Votes
	clicks := dst.ClickCount
	trend := dst.ClickTrend
	clickTS := dst.ClickTimestamp
	s.CopyTo(dst)
	dst.Votes = votes
	dst.ClickCount = clicks
	dst.ClickTrend = trend
	dst.ClickTimestamp = clickTS
}

// Duplicate allocates a new station and deep-copies s into it.
func (s *Station) Duplicate() *Station {
	dup := NewStation()
	s.CopyTo(dup)
	return dup
}

// SameIdentity reports whether a and b refer to the same station: both must
// carry a station UUID and the UUIDs must be exactly equal (case-sensitive).
func SameIdentity(a, b *Station) bool {
	if a == nil || b == nil {
		return false
	}
	if a.StationUUID == nil || b.StationUUID == nil {
		return false
	}
	return *a.StationUUID == *b.StationUUID
}

// FullyEqual reports field-by-field equality across every user-visible and
// metadata field. Two nil optional strings are equal; nil vs set is not.
func FullyEqual(a, b *Station) bool {
	if a == b {
		return true
	}
	if a == nil || b == nil {
		return false
	}
	return eqString(a.ChangeUUID, b.ChangeUUID) &&
		eqString(a.StationUUID, b.StationUUID) &&
		eqString(a.ServerUUID, b.ServerUUID) &&
		eqString(a.Name, b.Name) &&
		eqString(a.URL, b.URL) &&
		eqString(a.URLResolved, b.URLResolved) &&
		eqString(a.Homepage, b.Homepage) &&
		eqString(a.Favicon, b.Favicon) &&
		eqString(a.Tags, b.Tags) &&
		eqString(a.Country, b.Country) &&
		eqString(a.CountryCode, b.CountryCode) &&
		eqString(a.ISO3166_2, b.ISO3166_2) &&
		eqString(a.State, b.State) &&
		eqString(a.Language, b.Language) &&
		eqString(a.LanguageCodes, b.LanguageCodes) &&
		eqString(a.Codec, b.Codec) &&
		a.Votes == b.Votes &&
		a.Bitrate == b.Bitrate &&
		a.ClickCount == b.ClickCount &&
		a.ClickTrend == b.ClickTrend &&
		a.LastCheckOK == b.LastCheckOK &&
		a.Broken == b.Broken &&
		a.SSLError == b.SSLError &&
		a.HLS == b.HLS &&
		a.LastChangeTime.equal(b.LastChangeTime) &&
		a.LastCheckTime.equal(b.LastCheckTime) &&
		a.ClickTimestamp.equal(b.ClickTimestamp) &&
		a.GeoLat == b.GeoLat &&
		a.GeoLong == b.GeoLong &&
		a.Favourite == b.Favourite &&
		a.Source == b.Source &&
		a.HasExtendedInfo == b.HasExtendedInfo
}

// HashUUID returns a deterministic 64-bit FNV-1a hash of a UUID string.
// Used as a cheap pre-check for "is this the currently queued station"
// before a full identity comparison.
func HashUUID(uuid string) uint64 {
	h := fnv.New64a()
	h.Write([]byte(uuid))
	return h.Sum64()
}

// ClearChangeTimestamps drops both change timestamp strings.
func (s *Station) ClearChangeTimestamps() {
	s.LastChangeTime = TimestampPair{}
}

// ClearCheckTimestamps drops both check timestamp strings.
func (s *Station) ClearCheckTimestamps() {
	s.LastCheckTime = TimestampPair{}
}

// Clear resets every field to its zero state. Safe to call repeatedly.
func (s *Station) Clear() {
	*s = Station{Source: s.Source}
}

// DisplayName returns the station name, or an empty string when unset.
func (s *Station) DisplayName() string {
	if s.Name == nil {
		return ""
	}
	return *s.Name
}

// UUID returns the station UUID, or an empty string when unset.
func (s *Station) UUID() string {
	if s.StationUUID == nil {
		return ""
	}
	return *s.StationUUID
}

func (p TimestampPair) clone() TimestampPair {
	return TimestampPair{Raw: cloneString(p.Raw), ISO8601: cloneString(p.ISO8601)}
}

func (p TimestampPair) equal(o TimestampPair) bool {
	return eqString(p.Raw, o.Raw) && eqString(p.ISO8601, o.ISO8601)
}

func cloneString(s *string) *string {
	if s == nil {
		return nil
	}
	v := *s
	return &v
}

func eqString(a, b *string) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}
