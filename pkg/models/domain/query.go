package domain

const DefaultMeasureID = 1

// TreeQuery selects the index slice requested from GetIndexTreeData and
// GetIndexPeriods.
type TreeQuery struct {
	MeasureID int
	IndexID   int
	PeriodID  int
	Terms     string // comma-joined termIds
	TermID    int    // the term to drill into, one of Terms
	DicIDs    string // comma-joined dictionary ids
	Idx       int
	ParentID  string // empty for the root level
}
