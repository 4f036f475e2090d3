package tune

import "context"

// CategoryKind names one attribute whose distinct values the directory can
// enumerate ("give me all known countries" rather than stations).
type CategoryKind string

const (
	CategoryCountries    CategoryKind = "countries"
	CategoryCountryCodes CategoryKind = "countrycodes"
	CategoryCodecs       CategoryKind = "codecs"
	CategoryStates       CategoryKind = "states"
	CategoryLanguages    CategoryKind = "languages"
	CategoryTags         CategoryKind = "tags"
)

// CategoryKinds lists the directory's fixed category vocabulary.
func CategoryKinds() []CategoryKind {
	return []CategoryKind{
		CategoryCountries, CategoryCountryCodes, CategoryCodecs,
		CategoryStates, CategoryLanguages, CategoryTags,
	}
}

// SearchBy names one of the directory's fixed station lookup endpoints.
type SearchBy int

const (
	ByUUID SearchBy = iota
	ByName
	ByNameExact
	ByCodec
	ByCodecExact
	ByCountry
	ByCountryExact
	ByCountryCodeExact
	ByState
	ByStateExact
	ByLanguage
	ByLanguageExact
	ByTag
	ByTagExact
	ByURL
	ByTopClick
	ByTopVote
	ByLastClick
	ByLastChange
)

var searchByTokens = map[SearchBy]string{
	ByUUID:             "byuuid",
	ByName:             "byname",
	ByNameExact:        "bynameexact",
	ByCodec:            "bycodec",
	ByCodecExact:       "bycodecexact",
	ByCountry:          "bycountry",
	ByCountryExact:     "bycountryexact",
	ByCountryCodeExact: "bycountrycodeexact",
	ByState:            "bystate",
	ByStateExact:       "bystateexact",
	ByLanguage:         "bylanguage",
	ByLanguageExact:    "bylanguageexact",
	ByTag:              "bytag",
	ByTagExact:         "bytagexact",
	ByURL:              "byurl",
	ByTopClick:         "topclick",
	ByTopVote:          "topvote",
	ByLastClick:        "lastclick",
	ByLastChange:       "lastchange",
}

// Token returns the endpoint path token for a lookup kind, or "".
func (b SearchBy) Token() string {
	return searchByTokens[b]
}

// ParseSearchBy maps an endpoint token back to its lookup kind.
func ParseSearchBy(token string) (SearchBy, bool) {
	for by, t := range searchByTokens {
		if t == token {
			return by, true
		}
	}
	return ByUUID, false
}

// CategoryItem is one distinct attribute value with its station count,
// as returned by category browsing.
type CategoryItem struct {
	Name         string `json:"name"`
	StationCount uint64 `json:"stationcount"`
}

// VoteReceipt acknowledges a vote cast for a station.
type VoteReceipt struct {
	OK      bool   `json:"ok"`
	Message string `json:"message"`
}

// ClickReceipt acknowledges a click-counter hit for a station.
type ClickReceipt struct {
	OK          bool   `json:"ok"`
	Message     string `json:"message"`
	StationUUID string `json:"stationuuid"`
	Name        string `json:"name"`
	URL         string `json:"url"`
}

// DirectoryClient is the narrow interface the core uses to talk to the
// remote station directory. Implementations own transport, caching and wire
// decoding; the core only sees station records and receipt DTOs.
type DirectoryClient interface {
	// Search returns stations matching a compiled filter.
	Search(ctx context.Context, filter *Filter) ([]*Station, error)

	// Stations looks stations up through one of the fixed "by" endpoints.
	Stations(ctx context.Context, by SearchBy, term string) ([]*Station, error)

	// Categories enumerates the distinct values of one attribute.
	Categories(ctx context.Context, kind CategoryKind) ([]CategoryItem, error)

	// Vote casts a vote for the station with the given UUID.
	Vote(ctx context.Context, uuid string) (*VoteReceipt, error)

	// Click registers a click (listen) for the station with the given UUID.
	Click(ctx context.Context, uuid string) (*ClickReceipt, error)
}
