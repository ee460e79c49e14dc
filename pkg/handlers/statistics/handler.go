package statistics

import (
	"net/http"

	"github.com/de-tools/stat-atlas/pkg/handlers/response"
	"github.com/de-tools/stat-atlas/pkg/models/domain"
	"github.com/de-tools/stat-atlas/pkg/services/statistics"
)

type Handler struct {
	service statistics.Service
}

func NewHandler(service statistics.Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) GetPeriods(w http.ResponseWriter, r *http.Request) {
	q := response.NewQuery(r)
	indexID := q.Int("indexId")
	if err := q.Err(); err != nil {
		response.WriteDetail(w, r, http.StatusBadRequest, err.Error())
		return
	}

	data, err := h.service.GetPeriods(r.Context(), indexID)
	if err != nil {
		response.WriteError(w, r, err)
		return
	}
	response.WriteJSON(w, r, http.StatusOK, data)
}

func (h *Handler) GetSegments(w http.ResponseWriter, r *http.Request) {
	q := response.NewQuery(r)
	indexID := q.Int("indexId")
	periodID := q.Int("periodId")
	if err := q.Err(); err != nil {
		response.WriteDetail(w, r, http.StatusBadRequest, err.Error())
		return
	}

	segments, err := h.service.GetSegments(r.Context(), indexID, periodID)
	if err != nil {
		response.WriteError(w, r, err)
		return
	}
	response.WriteJSON(w, r, http.StatusOK, segments)
}

func (h *Handler) GetIndexAttributes(w http.ResponseWriter, r *http.Request) {
	q := response.NewQuery(r)
	indexID := q.Int("indexId")
	periodID := q.Int("periodId")
	if err := q.Err(); err != nil {
		response.WriteDetail(w, r, http.StatusBadRequest, err.Error())
		return
	}

	data, err := h.service.GetIndexAttributes(r.Context(), indexID, periodID)
	if err != nil {
		response.WriteError(w, r, err)
		return
	}
	response.WriteJSON(w, r, http.StatusOK, data)
}

func (h *Handler) GetIndexTreeData(w http.ResponseWriter, r *http.Request) {
	q := response.NewQuery(r)
	query := domain.TreeQuery{
		MeasureID: q.IntDefault("p_measure_id", domain.DefaultMeasureID),
		IndexID:   q.Int("p_index_id"),
		PeriodID:  q.Int("p_period_id"),
		Terms:     q.String("p_terms"),
		TermID:    q.Int("p_term_id"),
		DicIDs:    q.String("p_dicIds"),
		Idx:       q.Int("idx"),
		ParentID:  q.StringDefault("p_parent_id", ""),
	}
	if err := q.Err(); err != nil {
		response.WriteDetail(w, r, http.StatusBadRequest, err.Error())
		return
	}

	records, err := h.service.GetIndexTreeData(r.Context(), query)
	if err != nil {
		response.WriteError(w, r, err)
		return
	}
	response.WriteJSON(w, r, http.StatusOK, records)
}
