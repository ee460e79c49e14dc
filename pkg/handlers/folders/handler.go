package folders

import (
	"encoding/json"
	"net/http"

	"github.com/de-tools/stat-atlas/pkg/adapters"
	"github.com/de-tools/stat-atlas/pkg/handlers/response"
	"github.com/de-tools/stat-atlas/pkg/models/api"
	"github.com/de-tools/stat-atlas/pkg/server/middleware"
	"github.com/de-tools/stat-atlas/pkg/services/charts"
)

type Handler struct {
	manager charts.Manager
}

func NewHandler(manager charts.Manager) *Handler {
	return &Handler{manager: manager}
}

func (h *Handler) CreateFolder(w http.ResponseWriter, r *http.Request) {
	owner, ok := middleware.UserID(r.Context())
	if !ok {
		response.WriteDetail(w, r, http.StatusUnauthorized, "user is not authenticated")
		return
	}

	var req api.FolderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.WriteDetail(w, r, http.StatusBadRequest, "invalid request body")
		return
	}

	folder, err := h.manager.CreateFolder(r.Context(), owner, req.Name)
	if err != nil {
		response.WriteError(w, r, err)
		return
	}

	response.WriteJSON(w, r, http.StatusOK, api.FolderResponse{
		ID:      folder.ID,
		Name:    folder.Name,
		UserID:  folder.OwnerID,
		Message: "folder created",
	})
}

func (h *Handler) ListFolders(w http.ResponseWriter, r *http.Request) {
	owner, ok := middleware.UserID(r.Context())
	if !ok {
		response.WriteDetail(w, r, http.StatusUnauthorized, "user is not authenticated")
		return
	}

	folders, err := h.manager.ListFolders(r.Context(), owner)
	if err != nil {
		response.WriteError(w, r, err)
		return
	}

	result := make([]api.Folder, 0, len(folders))
	for _, f := range folders {
		result = append(result, adapters.MapDomainFolderToAPI(f))
	}
	response.WriteJSON(w, r, http.StatusOK, result)
}

func (h *Handler) RenameFolder(w http.ResponseWriter, r *http.Request) {
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

	var req api.FolderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.WriteDetail(w, r, http.StatusBadRequest, "invalid request body")
		return
	}

	folder, err := h.manager.RenameFolder(r.Context(), owner, id, req.Name)
	if err != nil {
		response.WriteError(w, r, err)
		return
	}

	response.WriteJSON(w, r, http.StatusOK, api.FolderResponse{
		ID:      folder.ID,
		Name:    folder.Name,
		UserID:  folder.OwnerID,
		Message: "folder updated",
	})
}

func (h *Handler) DeleteFolder(w http.ResponseWriter, r *http.Request) {
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

	if err := h.manager.DeleteFolder(r.Context(), owner, id); err != nil {
		response.WriteError(w, r, err)
		return
	}
	response.WriteJSON(w, r, http.StatusOK, api.MessageResponse{Message: "folder deleted"})
}
