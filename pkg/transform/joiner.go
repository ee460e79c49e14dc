package transform

import (
	"fmt"

	"github.com/de-tools/stat-atlas/pkg/models/domain"
)

// JoinTreePeriods flattens region nodes into records keyed by period name.
// Output order follows tree order. Periods without data on a region are
// omitted from that region's record.
func JoinTreePeriods(tree []domain.RegionNode, periods domain.PeriodIndex) ([]domain.FlatRegionRecord, error) {
	if err := periods.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrLengthMismatch, err)
	}

	records := make([]domain.FlatRegionRecord, 0, len(tree))
	for _, region := range tree {
		record := domain.FlatRegionRecord{
			ID:   region.ID,
			Text: region.Text,
			Leaf: region.Leaf,
		}

		for i, code := range periods.DateList {
			value, ok := region.Value(code)
			if !ok {
				continue
			}
			record.Set(periods.PeriodNameList[i], value)
		}

		records = append(records, record)
	}

	return records, nil
}
