package extrafields

import (
	"bytes"
	"encoding/json"

	"github.com/pkg/errors"
)

var (
	// ErrMalformedList is returned when a stored value is not a JSON array.
	ErrMalformedList = errors.New("stored field list is not a JSON array")
	// ErrElementNotObject is returned when a list element is not a JSON object.
	ErrElementNotObject = errors.New("field list element is not a JSON object")
)

// element carries one list entry. The raw JSON is kept verbatim so that
// entries this package did not write survive a round trip unchanged.
type element struct {
	key string
	raw json.RawMessage
}

// List is an ordered sequence of field descriptors. List position is the
// authoritative display order; the per-field order attribute is advisory.
type List struct {
	elements []element
}

// DecodeList parses a stored field list value. Malformed JSON, non-array
// JSON and non-object elements are errors, never coerced to an empty list.
func DecodeList(data []byte) (List, error) {
	// a JSON null unmarshals into a slice without error, reject it up front
	if trimmed := bytes.TrimSpace(data); len(trimmed) == 0 || trimmed[0] != '[' {
		return List{}, errors.Wrap(ErrMalformedList, "value is not a JSON array")
	}

	var raws []json.RawMessage
	if err := json.Unmarshal(data, &raws); err != nil {
		return List{}, errors.Wrap(ErrMalformedList, err.Error())
	}

	list := List{elements: make([]element, 0, len(raws))}

	for _, raw := range raws {
		// same null trap per element, it would enter the list keyed ""
		if trimmed := bytes.TrimSpace(raw); len(trimmed) == 0 || trimmed[0] != '{' {
			return List{}, errors.Wrap(ErrElementNotObject, "element is not a JSON object")
		}

		var keyed struct {
			Key string `json:"key"`
		}

		if err := json.Unmarshal(raw, &keyed); err != nil {
			return List{}, errors.Wrap(ErrElementNotObject, err.Error())
		}

		list.elements = append(list.elements, element{key: keyed.Key, raw: raw})
	}

	return list, nil
}

// Encode serializes the list back to JSON. An empty list encodes as [].
func (l List) Encode() ([]byte, error) {
	raws := make([]json.RawMessage, 0, len(l.elements))
	for _, e := range l.elements {
		raws = append(raws, e.raw)
	}

	out, err := json.Marshal(raws)
	if err != nil {
		return nil, errors.Wrap(err, "failed to encode field list")
	}

	return out, nil
}

// Len returns the number of fields in the list.
func (l List) Len() int {
	return len(l.elements)
}

// Keys returns the field keys in list order.
func (l List) Keys() []string {
	keys := make([]string, 0, len(l.elements))
	for _, e := range l.elements {
		keys = append(keys, e.key)
	}

	return keys
}

// Contains reports whether the list holds a field with the given key.
func (l List) Contains(key string) bool {
	for _, e := range l.elements {
		if e.key == key {
			return true
		}
	}

	return false
}

// Merge returns the list with f inserted at the front, unless a field with
// the same key is already present, in which case the list is returned
// unchanged. The changed result reports whether an insertion happened.
// Merge is pure: the receiver list is never mutated.
func Merge(l List, f Field) (List, bool, error) {
	if err := f.Validate(); err != nil {
		return List{}, false, err
	}

	if l.Contains(f.Key) {
		return l, false, nil
	}

	raw, err := json.Marshal(f)
	if err != nil {
		return List{}, false, errors.Wrap(err, "failed to encode field descriptor")
	}

	merged := List{elements: make([]element, 0, len(l.elements)+1)}
	merged.elements = append(merged.elements, element{key: f.Key, raw: raw})
	merged.elements = append(merged.elements, l.elements...)

	return merged, true, nil
}

// Remove returns the list without any field matching key, preserving the
// relative order of the remaining fields. The changed result reports
// whether anything was removed. Remove is pure.
func Remove(l List, key string) (List, bool) {
	filtered := List{elements: make([]element, 0, len(l.elements))}

	for _, e := range l.elements {
		if e.key != key {
			filtered.elements = append(filtered.elements, e)
		}
	}

	return filtered, filtered.Len() != l.Len()
}
