package transform

import (
	"encoding/json"
	"fmt"
	"maps"
	"strings"

	"github.com/de-tools/stat-atlas/pkg/models/domain"
)

const (
	termSeparator = ","
	nameSeparator = " + "
)

// NormalizeSegments prepares GetSegmentList items for the frontend: dicId
// becomes comma-separated, id/name alias termIds/names, and mas_names pairs
// every term id with its display name. Inputs are not modified.
func NormalizeSegments(items []domain.Segment) ([]domain.Segment, error) {
	out := make([]domain.Segment, 0, len(items))
	for i, item := range items {
		termIDs, err := stringField(item, "termIds")
		if err != nil {
			return nil, fmt.Errorf("segment %d: %w", i, err)
		}
		names, err := stringField(item, "names")
		if err != nil {
			return nil, fmt.Errorf("segment %d: %w", i, err)
		}
		dicID, err := stringField(item, "dicId")
		if err != nil {
			return nil, fmt.Errorf("segment %d: %w", i, err)
		}

		ids := strings.Split(termIDs, termSeparator)
		labels := strings.Split(names, nameSeparator)
		if len(ids) != len(labels) {
			return nil, fmt.Errorf("segment %d: %w: %d term ids, %d names",
				i, ErrLengthMismatch, len(ids), len(labels))
		}

		pairs := make([]domain.TermName, len(ids))
		for j := range ids {
			pairs[j] = domain.TermName{
				ID:   strings.TrimSpace(ids[j]),
				Name: strings.TrimSpace(labels[j]),
			}
		}

		normalized := maps.Clone(item)
		normalized["id"] = termIDs
		normalized["name"] = names
		normalized["dicId"] = strings.ReplaceAll(dicID, nameSeparator, termSeparator)
		normalized["mas_names"] = pairs
		out = append(out, normalized)
	}

	return out, nil
}

func stringField(item domain.Segment, key string) (string, error) {
	v, ok := item[key]
	if !ok {
		return "", fmt.Errorf("%w: missing %q", ErrMalformedSegment, key)
	}
	switch s := v.(type) {
	case string:
		return s, nil
	case json.Number:
		return s.String(), nil
	default:
		return "", fmt.Errorf("%w: %q is %T, want string", ErrMalformedSegment, key, v)
	}
}
