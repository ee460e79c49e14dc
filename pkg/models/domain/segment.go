package domain

// Segment is one GetSegmentList item. Upstream fields are kept as-is; the
// normalised fields are added on top.
type Segment map[string]any

// TermName pairs a term id with its display name.
type TermName struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}
