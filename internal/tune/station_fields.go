package tune

import (
	"fmt"
	"strconv"
)

// FieldType tags the semantic type of a station field in the accessor table.
type FieldType int

const (
	FieldUnknown FieldType = iota
	FieldString
	FieldUnsigned
	FieldSigned
	FieldBool
	FieldFloat
)

// FieldAccessor is a typed get/set pair for one station field, keyed by the
// directory's wire name. The setters are lenient about JSON value shapes:
// the directory sends booleans as 0/1 and numbers occasionally as strings,
// so every setter coerces from the types the wire actually produces.
type FieldAccessor struct {
	Type FieldType
	Get  func(s *Station) any
	Set  func(s *Station, v any) error
}

// stationFields maps the directory response field names to accessors.
// Wire names follow the directory's casing, not Go's.
var stationFields = map[string]FieldAccessor{
	"changeuuid":  stringField(func(s *Station) **string { return &s.ChangeUUID }),
	"stationuuid": stringField(func(s *Station) **string { return &s.StationUUID }),
	"serveruuid":  stringField(func(s *Station) **string { return &s.ServerUUID }),
	"name":        stringField(func(s *Station) **string { return &s.Name }),
	"url":         stringField(func(s *Station) **string { return &s.URL }),
	"url_resolved": stringField(func(s *Station) **string {
		return &s.URLResolved
	}),
	"homepage":      stringField(func(s *Station) **string { return &s.Homepage }),
	"favicon":       stringField(func(s *Station) **string { return &s.Favicon }),
	"tags":          stringField(func(s *Station) **string { return &s.Tags }),
	"country":       stringField(func(s *Station) **string { return &s.Country }),
	"countrycode":   stringField(func(s *Station) **string { return &s.CountryCode }),
	"iso_3166_2":    stringField(func(s *Station) **string { return &s.ISO3166_2 }),
	"state":         stringField(func(s *Station) **string { return &s.State }),
	"language":      stringField(func(s *Station) **string { return &s.Language }),
	"languagecodes": stringField(func(s *Station) **string { return &s.LanguageCodes }),
	"codec":         stringField(func(s *Station) **string { return &s.Codec }),

	"votes": {
		Type: FieldUnsigned,
		Get:  func(s *Station) any { return s.Votes },
		Set:  func(s *Station, v any) error { return setUnsigned(&s.Votes, v) },
	},
	"bitrate": {
		Type: FieldUnsigned,
		Get:  func(s *Station) any { return s.Bitrate },
		Set:  func(s *Station, v any) error { return setUnsigned(&s.Bitrate, v) },
	},
	"clickcount": {
		Type: FieldUnsigned,
		Get:  func(s *Station) any { return s.ClickCount },
		Set:  func(s *Station, v any) error { return setUnsigned(&s.ClickCount, v) },
	},
	"clicktrend": {
		Type: FieldSigned,
		Get:  func(s *Station) any { return s.ClickTrend },
		Set:  func(s *Station, v any) error { return setSigned(&s.ClickTrend, v) },
	},
	"ssl_error": {
		Type: FieldSigned,
		Get:  func(s *Station) any { return s.SSLError },
		Set:  func(s *Station, v any) error { return setSigned(&s.SSLError, v) },
	},
	"lastcheckok": {
		Type: FieldBool,
		Get:  func(s *Station) any { return s.LastCheckOK },
		Set:  func(s *Station, v any) error { return setBool(&s.LastCheckOK, v) },
	},
	"hls": {
		Type: FieldBool,
		Get:  func(s *Station) any { return s.HLS },
		Set:  func(s *Station, v any) error { return setBool(&s.HLS, v) },
	},
	"has_extended_info": {
		Type: FieldBool,
		Get:  func(s *Station) any { return s.HasExtendedInfo },
		Set:  func(s *Station, v any) error { return setBool(&s.HasExtendedInfo, v) },
	},
	"geo_lat": {
		Type: FieldFloat,
		Get:  func(s *Station) any { return s.GeoLat },
		Set:  func(s *Station, v any) error { return setFloat(&s.GeoLat, v) },
	},
	"geo_long": {
		Type: FieldFloat,
		Get:  func(s *Station) any { return s.GeoLong },
		Set:  func(s *Station, v any) error { return setFloat(&s.GeoLong, v) },
	},

	"lastchangetime": stringField(func(s *Station) **string {
		return &s.LastChangeTime.Raw
	}),
	"lastchangetime_iso8601": stringField(func(s *Station) **string {
		return &s.LastChangeTime.ISO8601
	}),
	"lastchecktime": stringField(func(s *Station) **string {
		return &s.LastCheckTime.Raw
	}),
	"lastchecktime_iso8601": stringField(func(s *Station) **string {
		return &s.LastCheckTime.ISO8601
	}),
	"clicktimestamp": stringField(func(s *Station) **string {
		return &s.ClickTimestamp.Raw
	}),
	"clicktimestamp_iso8601": stringField(func(s *Station) **string {
		return &s.ClickTimestamp.ISO8601
	}),
}

// LookupField returns the accessor for a directory wire field name.
// Unknown names return a FieldUnknown accessor and false.
func LookupField(name string) (FieldAccessor, bool) {
	acc, ok := stationFields[name]
	if !ok {
		return FieldAccessor{Type: FieldUnknown}, false
	}
	return acc, true
}

// SetField assigns a decoded wire value to the named field of s.
// Unknown field names are skipped without error so new directory fields
// never break deserialization.
func SetField(s *Station, name string, value any) error {
	acc, ok := LookupField(name)
	if !ok {
		return nil
	}
	if err := acc.Set(s, value); err != nil {
		return fmt.Errorf("field %q: %w", name, err)
	}
	return nil
}

func stringField(ptr func(s *Station) **string) FieldAccessor {
	return FieldAccessor{
		Type: FieldString,
		Get: func(s *Station) any {
			p := *ptr(s)
			if p == nil {
				return nil
			}
			return *p
		},
		Set: func(s *Station, v any) error {
			if v == nil {
				*ptr(s) = nil
				return nil
			}
			str, ok := v.(string)
			if !ok {
				return fmt.Errorf("expected string, got %T", v)
			}
			*ptr(s) = &str
			return nil
		},
	}
}

func setUnsigned(dst *uint64, v any) error {
	switch n := v.(type) {
	case nil:
		*dst = 0
	case float64:
		if n < 0 {
			*dst = 0
			return nil
		}
		*dst = uint64(n)
	case int64:
		if n < 0 {
			*dst = 0
			return nil
		}
		*dst = uint64(n)
	case int:
		if n < 0 {
			*dst = 0
			return nil
		}
		*dst = uint64(n)
	case uint64:
		*dst = n
	case string:
		parsed, err := strconv.ParseUint(n, 10, 64)
		if err != nil {
			return fmt.Errorf("expected unsigned, got %q", n)
		}
		*dst = parsed
	default:
		return fmt.Errorf("expected unsigned, got %T", v)
	}
	return nil
}

func setSigned(dst *int64, v any) error {
	switch n := v.(type) {
	case nil:
		*dst = 0
	case float64:
		*dst = int64(n)
	case int64:
		*dst = n
	case int:
		*dst = int64(n)
	case string:
		parsed, err := strconv.ParseInt(n, 10, 64)
		if err != nil {
			return fmt.Errorf("expected signed, got %q", n)
		}
		*dst = parsed
	default:
		return fmt.Errorf("expected signed, got %T", v)
	}
	return nil
}

func setBool(dst *bool, v any) error {
	switch b := v.(type) {
	case nil:
		*dst = false
	case bool:
		*dst = b
	case float64:
		*dst = b != 0
	case int:
		*dst = b != 0
	case string:
		*dst = b == "true" || b == "1"
	default:
		return fmt.Errorf("expected bool, got %T", v)
	}
	return nil
}

func setFloat(dst *float64, v any) error {
	switch f := v.(type) {
	case nil:
		*dst = 0
	case float64:
		*dst = f
	case int:
		*dst = float64(f)
	case string:
		parsed, err := strconv.ParseFloat(f, 64)
		if err != nil {
			return fmt.Errorf("expected float, got %q", f)
		}
		*dst = parsed
	default:
		return fmt.Errorf("expected float, got %T", v)
	}
	return nil
}
