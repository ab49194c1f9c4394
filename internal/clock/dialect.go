package clock

import (
	"encoding/json"
	"time"
)

// Dialect identifies which textual date format a DateString carries.
type Dialect string

const (
	// DialectShort is the "Jan 6, 2026" format.
	DialectShort Dialect = "short"

	// DialectLong is the "06 Jan 2026" format.
	DialectLong Dialect = "long"

	// DialectUnknown marks a legacy string no known layout produced.
	DialectUnknown Dialect = ""
)

// DateString is a persisted date tagged with its dialect. New records are
// written in the tagged form; the decoder keeps accepting the bare strings
// older records were stored as.
type DateString struct {
	Kind Dialect `json:"kind"`
	Raw  string  `json:"raw"`
}

// ShortDate formats t in the short dialect.
func ShortDate(t time.Time) DateString {
	return DateString{Kind: DialectShort, Raw: FormatShort(t)}
}

// LongDate formats t in the long dialect.
func LongDate(t time.Time) DateString {
	return DateString{Kind: DialectLong, Raw: FormatLong(t)}
}

// LegacyDate wraps a raw stored string, inferring its dialect best-effort.
func LegacyDate(raw string) DateString {
	return DateString{Kind: DetectDialect(raw), Raw: raw}
}

// Time parses the underlying date. ok is false for unparsable legacy values.
func (d DateString) Time() (time.Time, bool) {
	return ParseDate(d.Raw)
}

// IsZero reports whether the DateString holds no value.
func (d DateString) IsZero() bool {
	return d.Raw == ""
}

// String returns the raw stored form.
func (d DateString) String() string {
	return d.Raw
}

// MarshalJSON writes the tagged object form.
func (d DateString) MarshalJSON() ([]byte, error) {
	type tagged DateString
	return json.Marshal(tagged(d))
}

// UnmarshalJSON accepts both the tagged object form and the bare string form
// legacy records used.
func (d *DateString) UnmarshalJSON(data []byte) error {
	var raw string
	if err := json.Unmarshal(data, &raw); err == nil {
		*d = LegacyDate(raw)
		return nil
	}

	type tagged DateString
	var parsed tagged
	if err := json.Unmarshal(data, &parsed); err != nil {
		return err
	}
	*d = DateString(parsed)
	return nil
}

// DetectDialect reports which layout a raw date string matches.
func DetectDialect(raw string) Dialect {
	value := normalizeSpaces(raw)
	if value == "" {
		return DialectUnknown
	}
	if _, err := time.ParseInLocation(ShortLayout, value, Location()); err == nil {
		return DialectShort
	}
	if _, err := time.ParseInLocation(LongLayout, value, Location()); err == nil {
		return DialectLong
	}
	return DialectUnknown
}
