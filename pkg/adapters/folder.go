package adapters

import (
	"github.com/de-tools/stat-atlas/pkg/models/api"
	"github.com/de-tools/stat-atlas/pkg/models/domain"
	"github.com/de-tools/stat-atlas/pkg/models/store"
)

func MapStoreFolderToDomain(r store.FolderRecord) domain.Folder {
	return domain.Folder{
		ID:      r.ID,
		OwnerID: r.UserID,
		Name:    r.Name,
	}
}

func MapDomainFolderToAPI(f domain.Folder) api.Folder {
	return api.Folder{
		ID:     f.ID,
		UserID: f.OwnerID,
		Name:   f.Name,
	}
}

func MapStoreIndicatorToDomain(r store.IndicatorRecord) domain.Indicator {
	return domain.Indicator{ID: r.ID, Name: r.Name}
}

func MapDomainIndicatorToAPI(i domain.Indicator) api.Indicator {
	return api.Indicator{ID: i.ID, Name: i.Name}
}
