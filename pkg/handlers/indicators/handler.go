package indicators

import (
	"net/http"

	"github.com/de-tools/stat-atlas/pkg/adapters"
	"github.com/de-tools/stat-atlas/pkg/handlers/response"
	"github.com/de-tools/stat-atlas/pkg/models/api"
	"github.com/de-tools/stat-atlas/pkg/services/indicators"
)

type Handler struct {
	catalog indicators.Catalog
}

func NewHandler(catalog indicators.Catalog) *Handler {
	return &Handler{catalog: catalog}
}

// ListIndicators answers 404 when the catalogue is empty.
func (h *Handler) ListIndicators(w http.ResponseWriter, r *http.Request) {
	list, err := h.catalog.List(r.Context())
	if err != nil {
		response.WriteError(w, r, err)
		return
	}
	if len(list) == 0 {
		response.WriteDetail(w, r, http.StatusNotFound, "no indicators found")
		return
	}

	result := make([]api.Indicator, 0, len(list))
	for _, i := range list {
		result = append(result, adapters.MapDomainIndicatorToAPI(i))
	}
	response.WriteJSON(w, r, http.StatusOK, result)
}
