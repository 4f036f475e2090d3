package tune

import (
	"sort"
	"strings"
)

// SortAttr identifies one sort order for local station lists. Ascending and
// descending variants are distinct attributes so a persisted sort order is a
// single token.
type SortAttr int

const (
	SortNone SortAttr = iota
	SortNameAsc
	SortNameDesc
	SortTagsAsc
	SortTagsDesc
	SortCountryAsc
	SortCountryDesc
	SortCountryCodeAsc
	SortCountryCodeDesc
	SortStateAsc
	SortStateDesc
	SortLanguageAsc
	SortLanguageDesc
	SortCodecAsc
	SortCodecDesc
	SortBitrateAsc
	SortBitrateDesc
	SortVotesAsc
	SortVotesDesc
	SortClickCountAsc
	SortClickCountDesc
	SortClickTrendAsc
	SortClickTrendDesc
	SortSourceAsc
	SortSourceDesc
)

type sortEntry struct {
	display string
	token   string
	cmp     func(a, b *Station) int
}

// sortTable is the comparator dispatch table. Callers look up an attribute
// to invoke its comparator or to render its display string; an unknown
// attribute compares everything equal.
var sortTable = map[SortAttr]sortEntry{
	SortNone:            {"None", "none", func(a, b *Station) int { return 0 }},
	SortNameAsc:         {"Name", "name", compareName},
	SortNameDesc:        {"Name (desc)", "name_desc", invert(compareName)},
	SortTagsAsc:         {"Tags", "tags", fieldCompare(func(s *Station) *string { return s.Tags })},
	SortTagsDesc:        {"Tags (desc)", "tags_desc", invert(fieldCompare(func(s *Station) *string { return s.Tags }))},
	SortCountryAsc:      {"Country", "country", fieldCompare(func(s *Station) *string { return s.Country })},
	SortCountryDesc:     {"Country (desc)", "country_desc", invert(fieldCompare(func(s *Station) *string { return s.Country }))},
	SortCountryCodeAsc:  {"Country code", "countrycode", compareCountryCode},
	SortCountryCodeDesc: {"Country code (desc)", "countrycode_desc", invert(compareCountryCode)},
	SortStateAsc:        {"State", "state", fieldCompare(func(s *Station) *string { return s.State })},
	SortStateDesc:       {"State (desc)", "state_desc", invert(fieldCompare(func(s *Station) *string { return s.State }))},
	SortLanguageAsc:     {"Language", "language", compareLanguage},
	SortLanguageDesc:    {"Language (desc)", "language_desc", invert(compareLanguage)},
	SortCodecAsc:        {"Codec", "codec", compareCodec},
	SortCodecDesc:       {"Codec (desc)", "codec_desc", invert(compareCodec)},
	SortBitrateAsc:      {"Bitrate", "bitrate", func(a, b *Station) int { return cmpUint(a.Bitrate, b.Bitrate) }},
	SortBitrateDesc:     {"Bitrate (desc)", "bitrate_desc", func(a, b *Station) int { return cmpUint(b.Bitrate, a.Bitrate) }},
	SortVotesAsc:        {"Votes", "votes", func(a, b *Station) int { return cmpUint(a.Votes, b.Votes) }},
	SortVotesDesc:       {"Votes (desc)", "votes_desc", func(a, b *Station) int { return cmpUint(b.Votes, a.Votes) }},
	SortClickCountAsc:   {"Clicks", "clickcount", func(a, b *Station) int { return cmpUint(a.ClickCount, b.ClickCount) }},
	SortClickCountDesc:  {"Clicks (desc)", "clickcount_desc", func(a, b *Station) int { return cmpUint(b.ClickCount, a.ClickCount) }},
	SortClickTrendAsc:   {"Click trend", "clicktrend", func(a, b *Station) int { return cmpInt(a.ClickTrend, b.ClickTrend) }},
	SortClickTrendDesc:  {"Click trend (desc)", "clicktrend_desc", func(a, b *Station) int { return cmpInt(b.ClickTrend, a.ClickTrend) }},
	// Both source orders put local (zero) sources first with a name tie-break.
	// The descending variant is not a mirror; this matches the long-standing
	// behaviour favourites displays rely on.
	SortSourceAsc:  {"Source", "source", compareSource},
	SortSourceDesc: {"Source (desc)", "source_desc", compareSource},
}

// Compare orders two stations by the given attribute, returning a negative,
// zero or positive value. Unknown attributes compare equal.
func Compare(a, b *Station, attr SortAttr) int {
	entry, ok := sortTable[attr]
	if !ok {
		return 0
	}
	return clampSign(entry.cmp(a, b))
}

// String returns the human-readable display name of the sort attribute.
func (a SortAttr) String() string {
	if entry, ok := sortTable[a]; ok {
		return entry.display
	}
	return "Unknown"
}

// Token returns the config token used to persist a sort attribute.
func (a SortAttr) Token() string {
	if entry, ok := sortTable[a]; ok {
		return entry.token
	}
	return "none"
}

// ParseSortAttr resolves a persisted config token back to a sort attribute.
func ParseSortAttr(token string) (SortAttr, bool) {
	for attr, entry := range sortTable {
		if entry.token == token {
			return attr, true
		}
	}
	return SortNone, false
}

// SortAttrs lists every known sort attribute in a stable order, for help
// output and completion.
func SortAttrs() []SortAttr {
	attrs := make([]SortAttr, 0, len(sortTable))
	for attr := range sortTable {
		attrs = append(attrs, attr)
	}
	sort.Slice(attrs, func(i, j int) bool { return attrs[i] < attrs[j] })
	return attrs
}

// SortStations sorts stations in place by the given attribute. The sort is
// stable, so SortNone is a passthrough.
func SortStations(stations []*Station, attr SortAttr) {
	sort.SliceStable(stations, func(i, j int) bool {
		return Compare(stations[i], stations[j], attr) < 0
	})
}

// compareName orders nil names last, otherwise lexicographically, breaking
// ties by ascending bitrate.
func compareName(a, b *Station) int {
	if r := cmpStringNilLast(a.Name, b.Name); r != 0 {
		return r
	}
	return cmpUint(a.Bitrate, b.Bitrate)
}

// compareCountryCode compares the most specific code each side has:
// the ISO 3166-2 subdivision code when present, else the country code.
func compareCountryCode(a, b *Station) int {
	return cmpStringNilLast(effectiveCountryCode(a), effectiveCountryCode(b))
}

func effectiveCountryCode(s *Station) *string {
	if s.ISO3166_2 != nil {
		return s.ISO3166_2
	}
	return s.CountryCode
}

// compareLanguage prefers language codes over the display language. A
// station carrying codes sorts after one without, mirrored at each nil
// combination.
func compareLanguage(a, b *Station) int {
	switch {
	case a.LanguageCodes != nil && b.LanguageCodes != nil:
		return strings.Compare(*a.LanguageCodes, *b.LanguageCodes)
	case a.LanguageCodes != nil:
		return 1
	case b.LanguageCodes != nil:
		return -1
	default:
		return cmpStringNilLast(a.Language, b.Language)
	}
}

// compareCodec orders codecs lexicographically, case-insensitive, nil last.
// The legacy client compared codec storage identity here, which made codec
// sorting effectively arbitrary; local sorting has no wire contract so the
// lexicographic order is used instead.
func compareCodec(a, b *Station) int {
	ac, bc := a.Codec, b.Codec
	if ac == nil || bc == nil {
		return cmpStringNilLast(ac, bc)
	}
	return strings.Compare(strings.ToLower(*ac), strings.ToLower(*bc))
}

func compareSource(a, b *Station) int {
	if a.Source == b.Source {
		return compareName(a, b)
	}
	if a.Source == 0 {
		return -1
	}
	return 1
}

func fieldCompare(field func(s *Station) *string) func(a, b *Station) int {
	return func(a, b *Station) int {
		return cmpStringNilLast(field(a), field(b))
	}
}

func invert(cmp func(a, b *Station) int) func(a, b *Station) int {
	return func(a, b *Station) int { return -cmp(a, b) }
}

func cmpStringNilLast(a, b *string) int {
	switch {
	case a == nil && b == nil:
		return 0
	case a == nil:
		return 1
	case b == nil:
		return -1
	default:
		return strings.Compare(*a, *b)
	}
}

func cmpUint(a, b uint64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

func cmpInt(a, b int64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

func clampSign(r int) int {
	switch {
	case r < 0:
		return -1
	case r > 0:
		return 1
	default:
		return 0
	}
}
