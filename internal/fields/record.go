package fields

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"fjacquet/sepa-pain/internal/dateutils"
	"fjacquet/sepa-pain/internal/models"
)

// Record is one canonical field map of a collection, payment or document
// header. Values are keyed by canonical name; the postal address is kept
// apart because it is the only nested field.
type Record struct {
	Values  map[string]string
	PstlAdr *models.PostalAddress
}

// NewRecord builds a record from already canonical string values.
func NewRecord(values map[string]string) *Record {
	r := &Record{Values: make(map[string]string, len(values))}
	for k, v := range values {
		r.Values[Canonical(k)] = v
	}
	return r
}

// Get returns the value stored under name, or "".
func (r *Record) Get(name string) string {
	if r == nil {
		return ""
	}
	return r.Values[name]
}

// Has reports whether name holds a non-blank value. The postal address
// counts as present when it is set and not empty.
func (r *Record) Has(name string) bool {
	if r == nil {
		return false
	}
	if name == PstlAdr {
		return r.PstlAdr != nil && !r.PstlAdr.IsEmpty()
	}
	return strings.TrimSpace(r.Values[name]) != ""
}

// Set stores v under name.
func (r *Record) Set(name, v string) {
	if r.Values == nil {
		r.Values = make(map[string]string)
	}
	r.Values[name] = v
}

// Delete removes name from the record.
func (r *Record) Delete(name string) {
	delete(r.Values, name)
	if name == PstlAdr {
		r.PstlAdr = nil
	}
}

// Names returns the present field names in sorted order.
func (r *Record) Names() []string {
	names := make([]string, 0, len(r.Values)+1)
	for k := range r.Values {
		names = append(names, k)
	}
	if r.PstlAdr != nil {
		names = append(names, PstlAdr)
	}
	sort.Strings(names)
	return names
}

// Missing returns the names from required that are not present, in the
// order given.
func (r *Record) Missing(required []string) []string {
	var missing []string
	for _, name := range required {
		if !r.Has(name) {
			missing = append(missing, name)
		}
	}
	return missing
}

// Clone returns a deep copy of the record.
func (r *Record) Clone() *Record {
	if r == nil {
		return nil
	}
	c := &Record{Values: make(map[string]string, len(r.Values)), PstlAdr: r.PstlAdr.Clone()}
	for k, v := range r.Values {
		c.Values[k] = v
	}
	return c
}

// Normalize converts raw caller input into a canonical record: keys are
// lower-cased, legacy aliases are resolved (an explicit canonical key wins
// over its alias), scalar values are rendered as strings and the nested
// postal address is decoded. Nil values are dropped.
func Normalize(raw map[string]any) (*Record, error) {
	rec := &Record{Values: make(map[string]string, len(raw))}

	explicit := make(map[string]bool, len(raw))
	for k := range raw {
		explicit[strings.ToLower(strings.TrimSpace(k))] = true
	}

	for key, v := range raw {
		lower := strings.ToLower(strings.TrimSpace(key))
		name := Canonical(key)
		if name != lower && explicit[name] {
			continue
		}
		if v == nil {
			continue
		}

		if name == PstlAdr {
			addr, err := decodeAddress(v)
			if err != nil {
				return nil, fmt.Errorf("field %s: %w", key, err)
			}
			rec.PstlAdr = addr
			continue
		}

		s, err := scalarString(v)
		if err != nil {
			return nil, fmt.Errorf("field %s: %w", key, err)
		}
		rec.Values[name] = s
	}
	return rec, nil
}

// MustNormalize is Normalize for literal input in tests and examples.
func MustNormalize(raw map[string]any) *Record {
	rec, err := Normalize(raw)
	if err != nil {
		panic(err)
	}
	return rec
}

// scalarString writes numbers with a period and no grouping so that amount
// checks see every decimal the caller passed.
func scalarString(v any) (string, error) {
	switch t := v.(type) {
	case string:
		return t, nil
	case decimal.Decimal:
		return t.String(), nil
	case *decimal.Decimal:
		return t.String(), nil
	case bool:
		return strconv.FormatBool(t), nil
	case int:
		return strconv.Itoa(t), nil
	case int64:
		return strconv.FormatInt(t, 10), nil
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64), nil
	case float32:
		return strconv.FormatFloat(float64(t), 'f', -1, 32), nil
	case time.Time:
		if t.Equal(dateutils.StartOfDay(t)) {
			return dateutils.ToISODate(t), nil
		}
		return dateutils.ToISODateTime(t), nil
	case fmt.Stringer:
		return t.String(), nil
	default:
		return "", fmt.Errorf("unsupported value type %T", v)
	}
}

func decodeAddress(v any) (*models.PostalAddress, error) {
	switch t := v.(type) {
	case models.PostalAddress:
		return t.Clone(), nil
	case *models.PostalAddress:
		return t.Clone(), nil
	case map[string]string:
		m := make(map[string]any, len(t))
		for k, s := range t {
			m[k] = s
		}
		return addressFromMap(m)
	case map[string]any:
		return addressFromMap(t)
	default:
		return nil, fmt.Errorf("unsupported postal address type %T", v)
	}
}

func addressFromMap(m map[string]any) (*models.PostalAddress, error) {
	addr := &models.PostalAddress{}
	parts := make(map[string]*string)
	for _, p := range addr.StructuredParts() {
		parts[strings.ToLower(p.Name)] = p.Value
	}
	parts["ctry"] = &addr.Ctry

	for key, v := range m {
		k := strings.ToLower(strings.TrimSpace(key))
		if k == "adrline" {
			lines, err := addressLines(v)
			if err != nil {
				return nil, err
			}
			addr.AdrLine = lines
			continue
		}
		dst, ok := parts[k]
		if !ok {
			return nil, fmt.Errorf("unknown postal address part %q", key)
		}
		s, err := scalarString(v)
		if err != nil {
			return nil, fmt.Errorf("postal address part %s: %w", key, err)
		}
		*dst = s
	}
	return addr, nil
}

func addressLines(v any) ([]string, error) {
	switch t := v.(type) {
	case string:
		return []string{t}, nil
	case []string:
		return append([]string(nil), t...), nil
	case []any:
		lines := make([]string, 0, len(t))
		for _, l := range t {
			s, err := scalarString(l)
			if err != nil {
				return nil, fmt.Errorf("adrLine: %w", err)
			}
			lines = append(lines, s)
		}
		return lines, nil
	default:
		return nil, fmt.Errorf("adrLine: unsupported type %T", v)
	}
}
