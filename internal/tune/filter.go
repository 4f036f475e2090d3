package tune

import (
	"fmt"
	"math"
	"net/url"
	"strconv"
	"strings"
)

// Filter defaults. BitrateMaxUnbounded is a sentinel meaning "no upper
// bound" and is never serialized; DefaultLimit is the directory's page size
// when the caller did not ask for one.
const (
	BitrateMaxUnbounded uint64 = math.MaxUint32
	DefaultLimit        uint64 = 1000
)

// OrderBy names a server-side sort order for directory searches. The zero
// value means "let the directory decide".
type OrderBy int

const (
	OrderNone OrderBy = iota
	OrderName
	OrderURL
	OrderHomepage
	OrderFavicon
	OrderTags
	OrderCountry
	OrderState
	OrderLanguage
	OrderVotes
	OrderCodec
	OrderBitrate
	OrderLastCheckOK
	OrderLastCheckTime
	OrderClickTimestamp
	OrderClickCount
	OrderClickTrend
	OrderChangeTimestamp
	OrderRandom
)

var orderTokens = map[OrderBy]string{
	OrderName:            "name",
	OrderURL:             "url",
	OrderHomepage:        "homepage",
	OrderFavicon:         "favicon",
	OrderTags:            "tags",
	OrderCountry:         "country",
	OrderState:           "state",
	OrderLanguage:        "language",
	OrderVotes:           "votes",
	OrderCodec:           "codec",
	OrderBitrate:         "bitrate",
	OrderLastCheckOK:     "lastcheckok",
	OrderLastCheckTime:   "lastchecktime",
	OrderClickTimestamp:  "clicktimestamp",
	OrderClickCount:      "clickcount",
	OrderClickTrend:      "clicktrend",
	OrderChangeTimestamp: "changetimestamp",
	OrderRandom:          "random",
}

// Token returns the wire token for an order attribute, or "" for OrderNone
// and unknown values.
func (o OrderBy) Token() string {
	return orderTokens[o]
}

// ParseOrderBy resolves a wire/config token into an OrderBy value.
func ParseOrderBy(token string) (OrderBy, bool) {
	for o, t := range orderTokens {
		if t == token {
			return o, true
		}
	}
	return OrderNone, false
}

// Filter is one directory search specification. It both drives remote
// searches and compiles to the directory's query-string grammar.
//
// Free-text fields pair with an Exact toggle selecting exact-vs-substring
// matching. TagList entries all must match (AND semantics).
type Filter struct {
	Name          string
	NameExact     bool
	Country       string
	CountryExact  bool
	countryCode   string // exactly 2 chars or blank; set via SetCountryCode
	State         string
	StateExact    bool
	Language      string
	LanguageExact bool
	Tag           string
	TagExact      bool
	TagList       []string
	Codec         string
	BitrateMin    uint64
	BitrateMax    uint64
	Order         OrderBy
	Reverse       bool
	Offset        uint64
	Limit         uint64
	Source        Source // which backend to query; never serialized
}

// NewFilter returns a filter with every field at its default: no text
// constraints, unbounded bitrate, no server ordering, limit 1000.
func NewFilter() *Filter {
	return &Filter{
		BitrateMax: BitrateMaxUnbounded,
		Limit:      DefaultLimit,
		Source:     SourceRemote,
	}
}

// SetCountryCode stores the first two characters of code. An empty code
// clears the field; anything shorter than two characters is rejected and
// the previous value kept.
func (f *Filter) SetCountryCode(code string) error {
	if code == "" {
		f.countryCode = ""
		return nil
	}
	if len(code) < 2 {
		return fmt.Errorf("country code %q too short: want 2 characters", code)
	}
	f.countryCode = code[:2]
	return nil
}

// CountryCode returns the stored two-letter country code, or "".
func (f *Filter) CountryCode() string {
	return f.countryCode
}

// Copy deep-copies f into dst, replacing everything dst held, including the
// tag list (each entry copied, order preserved).
func (f *Filter) Copy(dst *Filter) {
	if f == dst || dst == nil {
		return
	}
	*dst = *f
	if f.TagList != nil {
		dst.TagList = make([]string, len(f.TagList))
		copy(dst.TagList, f.TagList)
	}
}

// QueryString compiles the filter into the directory's query grammar:
// key=value pairs joined with '&', free-text values percent-encoded, fields
// at their default omitted. Field order is fixed by the wire contract.
// The pristine filter compiles to the empty string; the transport adds the
// leading '?' when non-empty.
func (f *Filter) QueryString() string {
	var b strings.Builder

	appendPair := func(key, value string) {
		if b.Len() > 0 {
			b.WriteByte('&')
		}
		b.WriteString(key)
		b.WriteByte('=')
		b.WriteString(value)
	}
	appendText := func(key, value string, exact bool, exactKey string) {
		if value == "" {
			return
		}
		appendPair(key, escapeQuery(value))
		if exact {
			appendPair(exactKey, "true")
		}
	}

	appendText("name", f.Name, f.NameExact, "nameExact")
	appendText("country", f.Country, f.CountryExact, "countryExact")
	if f.countryCode != "" {
		appendPair("countrycode", f.countryCode)
	}
	appendText("state", f.State, f.StateExact, "stateExact")
	appendText("language", f.Language, f.LanguageExact, "languageExact")
	appendText("tag", f.Tag, f.TagExact, "tagExact")
	if len(f.TagList) > 0 {
		encoded := make([]string, len(f.TagList))
		for i, tag := range f.TagList {
			encoded[i] = escapeQuery(tag)
		}
		appendPair("tagList", strings.Join(encoded, ","))
	}
	if f.Codec != "" {
		appendPair("codec", escapeQuery(f.Codec))
	}
	if f.BitrateMin > 0 {
		appendPair("bitrateMin", strconv.FormatUint(f.BitrateMin, 10))
	}
	if f.BitrateMax != BitrateMaxUnbounded {
		appendPair("bitrateMax", strconv.FormatUint(f.BitrateMax, 10))
	}
	if token := f.Order.Token(); token != "" {
		appendPair("order", token)
	}
	if f.Reverse {
		appendPair("reverse", "true")
	}
	if f.Offset > 0 {
		appendPair("offset", strconv.FormatUint(f.Offset, 10))
	}
	// limit=0 means "no limit" and must stay distinguishable from unset,
	// so anything other than the default is emitted, zero included.
	if f.Limit != DefaultLimit {
		appendPair("limit", strconv.FormatUint(f.Limit, 10))
	}

	return b.String()
}

// escapeQuery percent-encodes a free-text query value. The directory's
// grammar wants spaces as %20, not '+'.
func escapeQuery(s string) string {
	return strings.ReplaceAll(url.QueryEscape(s), "+", "%20")
}
