package charts

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/de-tools/stat-atlas/pkg/adapters"
	"github.com/de-tools/stat-atlas/pkg/handlers/response"
	"github.com/de-tools/stat-atlas/pkg/models/api"
	"github.com/de-tools/stat-atlas/pkg/server/middleware"
	"github.com/de-tools/stat-atlas/pkg/services/charts"
)

// Handler serves saved chart configurations. Routes are mounted behind the
// identity middleware.
type Handler struct {
	manager charts.Manager
}

func NewHandler(manager charts.Manager) *Handler {
	return &Handler{manager: manager}
}

func (h *Handler) SaveChart(w http.ResponseWriter, r *http.Request) {
	owner, ok := middleware.UserID(r.Context())
	if !ok {
		response.WriteDetail(w, r, http.StatusUnauthorized, "user is not authenticated")
		return
	}

	var req api.SaveChartRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.WriteDetail(w, r, http.StatusBadRequest, "invalid request body")
		return
	}
	if missing := req.MissingFields(); len(missing) > 0 {
		response.WriteDetail(w, r, http.StatusBadRequest,
			"missing required fields: "+strings.Join(missing, ", "))
		return
	}

	id, err := h.manager.SaveChart(r.Context(), owner, adapters.MapSaveChartRequestToDomain(req))
	if err != nil {
		response.WriteError(w, r, err)
		return
	}

	response.WriteJSON(w, r, http.StatusOK, api.SaveChartResponse{
		Message: "data saved",
		DataID:  id,
	})
}

func (h *Handler) ListCharts(w http.ResponseWriter, r *http.Request) {
	owner, ok := middleware.UserID(r.Context())
	if !ok {
		response.WriteDetail(w, r, http.StatusUnauthorized, "user is not authenticated")
		return
	}

	q := response.NewQuery(r)
	folderID := q.OptionalInt64("folder_id")
	if err := q.Err(); err != nil {
		response.WriteDetail(w, r, http.StatusBadRequest, err.Error())
		return
	}

	list, err := h.manager.ListCharts(r.Context(), owner, folderID)
	if err != nil {
		response.WriteError(w, r, err)
		return
	}

	result := make([]api.Chart, 0, len(list))
	for _, c := range list {
		result = append(result, adapters.MapDomainChartToAPI(c))
	}
	response.WriteJSON(w, r, http.StatusOK, result)
}

func (h *Handler) DeleteChart(w http.ResponseWriter, r *http.Request) {
	owner, ok := middleware.UserID(r.Context())
	if !ok {
		response.WriteDetail(w, r, http.StatusUnauthorized, "user is not authenticated")
		return
	}

	id, err := response.PathID(r, "id")
	if err != nil {
		response.WriteDetail(w, r, http.StatusBadRequest, err.Error())
		return
	}

	if err := h.manager.DeleteChart(r.Context(), owner, id); err != nil {
		response.WriteError(w, r, err)
		return
	}
	response.WriteJSON(w, r, http.StatusOK, api.MessageResponse{Message: "data deleted"})
}
