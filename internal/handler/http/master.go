package http

import (
	"encoding/json"
	"net/http"

	"github.com/cmlabs-hris/ponto-backend-go/internal/domain/sector"
	"github.com/cmlabs-hris/ponto-backend-go/internal/domain/worker"
	"github.com/cmlabs-hris/ponto-backend-go/internal/handler/http/response"
	"github.com/go-chi/chi/v5"
)

type MasterHandler interface {
	// Sector handlers
	CreateSector(w http.ResponseWriter, r *http.Request)
	GetSector(w http.ResponseWriter, r *http.Request)
	ListSectors(w http.ResponseWriter, r *http.Request)
	UpdateSector(w http.ResponseWriter, r *http.Request)
	DeleteSector(w http.ResponseWriter, r *http.Request)

	// Worker handlers
	CreateWorker(w http.ResponseWriter, r *http.Request)
	GetWorker(w http.ResponseWriter, r *http.Request)
	ListWorkers(w http.ResponseWriter, r *http.Request)
	UpdateWorker(w http.ResponseWriter, r *http.Request)
}

type masterHandlerImpl struct {
	sectorService sector.SectorService
	workerService worker.WorkerService
}

func NewMasterHandler(sectorService sector.SectorService, workerService worker.WorkerService) MasterHandler {
	return &masterHandlerImpl{
		sectorService: sectorService,
		workerService: workerService,
	}
}

// ==================== SECTOR HANDLERS ====================

func (h *masterHandlerImpl) CreateSector(w http.ResponseWriter, r *http.Request) {
	var req sector.CreateSectorRequest

	// Decode request body
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	result, err := h.sectorService.Create(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Sector created successfully", result)
}

func (h *masterHandlerImpl) GetSector(w http.ResponseWriter, r *http.Request) {
	result, err := h.sectorService.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

func (h *masterHandlerImpl) ListSectors(w http.ResponseWriter, r *http.Request) {
	result, err := h.sectorService.List(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

func (h *masterHandlerImpl) UpdateSector(w http.ResponseWriter, r *http.Request) {
	var req sector.UpdateSectorRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	req.ID = chi.URLParam(r, "id")

	result, err := h.sectorService.Update(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Sector updated successfully", result)
}

func (h *masterHandlerImpl) DeleteSector(w http.ResponseWriter, r *http.Request) {
	if err := h.sectorService.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Sector deleted successfully", nil)
}

// ==================== WORKER HANDLERS ====================

func (h *masterHandlerImpl) CreateWorker(w http.ResponseWriter, r *http.Request) {
	var req worker.CreateWorkerRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	result, err := h.workerService.Create(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Worker created successfully", result)
}

func (h *masterHandlerImpl) GetWorker(w http.ResponseWriter, r *http.Request) {
	result, err := h.workerService.Get(r.Context(), chi.URLParam(r, "subjectID"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

func (h *masterHandlerImpl) ListWorkers(w http.ResponseWriter, r *http.Request) {
	var filter worker.WorkerFilter
	if sectorID := r.URL.Query().Get("sector_id"); sectorID != "" {
		filter.SectorID = &sectorID
	}
	if search := r.URL.Query().Get("search"); search != "" {
		filter.Search = &search
	}

	result, err := h.workerService.List(r.Context(), filter)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

func (h *masterHandlerImpl) UpdateWorker(w http.ResponseWriter, r *http.Request) {
	var req worker.UpdateWorkerRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	req.SubjectID = chi.URLParam(r, "subjectID")

	result, err := h.workerService.Update(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Worker updated successfully", result)
}
