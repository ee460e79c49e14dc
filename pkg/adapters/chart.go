package adapters

import (
	"github.com/de-tools/stat-atlas/pkg/models/api"
	"github.com/de-tools/stat-atlas/pkg/models/domain"
	"github.com/de-tools/stat-atlas/pkg/models/store"
)

func MapStoreChartToDomain(r store.ChartRecord) domain.ChartConfig {
	return domain.ChartConfig{
		ID:           r.ID,
		OwnerID:      r.UserID,
		IndexID:      r.IndexID,
		PeriodID:     r.PeriodID,
		Terms:        r.Terms,
		TermID:       r.TermID,
		DicIDs:       r.DicIDs,
		Idx:          r.Idx,
		ChartType:    r.ChartType,
		SelectedData: r.SelectedData,
		PrimaryData:  r.PrimaryData,
		FolderID:     r.FolderID,
	}
}

func MapDomainChartToStore(c domain.ChartConfig) store.ChartRecord {
	return store.ChartRecord{
		ID:           c.ID,
		UserID:       c.OwnerID,
		IndexID:      c.IndexID,
		PeriodID:     c.PeriodID,
		Terms:        c.Terms,
		TermID:       c.TermID,
		DicIDs:       c.DicIDs,
		Idx:          c.Idx,
		ChartType:    c.ChartType,
		SelectedData: c.SelectedData,
		PrimaryData:  c.PrimaryData,
		FolderID:     c.FolderID,
	}
}

// MapSaveChartRequestToDomain maps absent fields to zero values; callers
// reject incomplete requests with MissingFields first.
func MapSaveChartRequestToDomain(req api.SaveChartRequest) domain.ChartConfig {
	return domain.ChartConfig{
		IndexID:      deref(req.IndexID),
		PeriodID:     deref(req.PeriodID),
		Terms:        deref(req.Terms),
		TermID:       deref(req.TermID),
		DicIDs:       deref(req.DicIDs),
		Idx:          deref(req.Idx),
		ChartType:    deref(req.ChartType),
		SelectedData: deref(req.SelectedData),
		PrimaryData:  deref(req.PrimaryData),
		FolderID:     req.FolderID,
	}
}

func deref[T any](v *T) T {
	var zero T
	if v == nil {
		return zero
	}
	return *v
}

func MapDomainChartToAPI(c domain.ChartConfig) api.Chart {
	return api.Chart{
		ID:           c.ID,
		UserID:       c.OwnerID,
		IndexID:      c.IndexID,
		PeriodID:     c.PeriodID,
		Terms:        c.Terms,
		TermID:       c.TermID,
		DicIDs:       c.DicIDs,
		Idx:          c.Idx,
		ChartType:    c.ChartType,
		SelectedData: c.SelectedData,
		PrimaryData:  c.PrimaryData,
		FolderID:     c.FolderID,
	}
}
