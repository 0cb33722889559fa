package event

import (
	"fmt"
	"strconv"
	"strings"
)

// Defaults substituted for missing optional fields.
const (
	UnknownTeam  = "Unknown"
	UnknownVenue = "Unknown venue"
)

// NormalizationError reports a raw record that carried none of the identity
// fields its provider promised. Missing optional fields never produce one.
type NormalizationError struct {
	Sport  string
	Reason string
}

func (e *NormalizationError) Error() string {
	return fmt.Sprintf("normalize %s event: %s", e.Sport, e.Reason)
}

// FieldMap declares where a provider keeps each canonical field inside its
// decoded JSON. Values are dot-paths ("teams.home.name"); empty paths mean
// the provider never supplies that field.
type FieldMap struct {
	ID          string
	HomeTeam    string
	AwayTeam    string
	StartTime   string
	Venue       string
	Status      string
	Competition string

	// DefaultStatus is used when the status path is empty or unresolvable.
	// Empty means StatusUnknown.
	DefaultStatus string
}

// Normalize builds a canonical Event from a provider record using the
// provider's field mapping. Missing optional fields get documented defaults;
// only a record with no resolvable identity (id and both teams absent) is
// rejected. StartTime stays unparsed here — Canonicalize resolves it.
func Normalize(sport string, raw map[string]interface{}, fm FieldMap) (Event, error) {
	id := Dig(raw, fm.ID)
	home := Dig(raw, fm.HomeTeam)
	away := Dig(raw, fm.AwayTeam)
	if id == "" && home == "" && away == "" {
		return Event{}, &NormalizationError{Sport: sport, Reason: "no identity fields in record"}
	}

	e := Event{
		ID:          id,
		Sport:       sport,
		HomeTeam:    home,
		AwayTeam:    away,
		RawStart:    Dig(raw, fm.StartTime),
		Venue:       Dig(raw, fm.Venue),
		Status:      Dig(raw, fm.Status),
		Competition: Dig(raw, fm.Competition),
	}
	if e.ID == "" {
		e.ID = fmt.Sprintf("%s-%s-%s", sport, strings.ToLower(home), strings.ToLower(away))
	}
	if e.HomeTeam == "" {
		e.HomeTeam = UnknownTeam
	}
	if e.AwayTeam == "" {
		e.AwayTeam = UnknownTeam
	}
	if e.Venue == "" {
		e.Venue = UnknownVenue
	}
	if e.Status == "" {
		if fm.DefaultStatus != "" {
			e.Status = fm.DefaultStatus
		} else {
			e.Status = StatusUnknown
		}
	}
	return e, nil
}

// Dig resolves a dot-path inside a decoded JSON object and renders the leaf
// as a string. Numbers, bools and strings are supported; anything else (or a
// broken path) yields "".
func Dig(raw map[string]interface{}, path string) string {
	if path == "" {
		return ""
	}
	var cur interface{} = raw
	for _, part := range strings.Split(path, ".") {
		m, ok := cur.(map[string]interface{})
		if !ok {
			return ""
		}
		cur = m[part]
	}
	return stringify(cur)
}

func stringify(v interface{}) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case float64:
		// JSON numbers decode as float64; ids are integral in practice
		if t == float64(int64(t)) {
			return strconv.FormatInt(int64(t), 10)
		}
		return strconv.FormatFloat(t, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(t)
	default:
		return ""
	}
}
