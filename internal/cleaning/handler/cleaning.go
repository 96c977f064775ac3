package handler

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/julienschmidt/httprouter"

	"datacleaner/internal/cleaning/service"
	"datacleaner/pkg/client"
	apperrors "datacleaner/pkg/errors"
	httputil "datacleaner/pkg/http"
	"datacleaner/pkg/logger"
	"datacleaner/pkg/model"
	"datacleaner/pkg/table"
)

type CleaningHandler struct {
	service service.CleaningService
	log     *logger.Logger
}

func NewCleaningHandler(service service.CleaningService, log *logger.Logger) *CleaningHandler {
	return &CleaningHandler{
		service: service,
		log:     log,
	}
}

func (h *CleaningHandler) CleanRecords(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var req model.CleanRecordsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, "CleanRecords", bodyError(err, "Invalid request body"))
		return
	}

	resp, err := h.service.CleanRecords(r.Context(), &req)
	if err != nil {
		h.writeError(w, "CleanRecords", err)
		return
	}

	if err := httputil.WriteSuccess(w, resp); err != nil {
		h.log.Error("failed to write success response", "handler", "CleanRecords", "operation", "WriteSuccess", "error", err)
	}
}

func (h *CleaningHandler) CleanCSV(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	if mt := httputil.MediaType(r); mt != httputil.ContentTypeCSV {
		h.writeError(w, "CleanCSV", apperrors.UnsupportedMedia(mt, httputil.ContentTypeCSV))
		return
	}

	tbl, err := table.Read(r.Body)
	if err != nil {
		h.writeError(w, "CleanCSV", bodyError(err, "Invalid CSV body"))
		return
	}

	run, err := h.service.CleanTable(r.Context(), tbl, model.SourceAPICSV)
	if err != nil {
		h.writeError(w, "CleanCSV", err)
		return
	}

	w.Header().Set(client.RunIDHeader, run.ID)
	if err := httputil.WriteCSV(w, http.StatusOK, tbl.Write); err != nil {
		h.log.Error("failed to write CSV response", "handler", "CleanCSV", "operation", "WriteCSV", "run_id", run.ID, "error", err)
	}
}

func (h *CleaningHandler) GetRun(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	run, err := h.service.GetRun(r.Context(), ps.ByName("id"))
	if err != nil {
		h.writeError(w, "GetRun", err)
		return
	}

	if err := httputil.WriteSuccess(w, run); err != nil {
		h.log.Error("failed to write success response", "handler", "GetRun", "operation", "WriteSuccess", "error", err)
	}
}

func (h *CleaningHandler) ListRuns(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	limit, offset, err := httputil.ExtractLimitOffset(r)
	if err != nil {
		h.writeError(w, "ListRuns", err)
		return
	}

	runs, totalCount, err := h.service.ListRuns(r.Context(), limit, offset)
	if err != nil {
		h.writeError(w, "ListRuns", err)
		return
	}

	if err := httputil.WritePaginated(w, runs, totalCount, limit, offset); err != nil {
		h.log.Error("failed to write paginated response", "handler", "ListRuns", "operation", "WritePaginated", "error", err)
	}
}

func (h *CleaningHandler) RegisterRoutes(router *httprouter.Router) {
	router.POST(client.CleanRecordsPath, h.CleanRecords)
	router.POST(client.CleanCSVPath, h.CleanCSV)
	router.GET(client.RunsPath, h.ListRuns)
	router.GET(client.RunsPath+"/:id", h.GetRun)
}

func (h *CleaningHandler) writeError(w http.ResponseWriter, handler string, err error) {
	if writeErr := httputil.WriteError(w, err); writeErr != nil {
		h.log.Error("failed to write error response", "handler", handler, "operation", "WriteError", "error", writeErr)
	}
}

// bodyError maps a body read or decode failure to a client error.
func bodyError(err error, message string) error {
	var maxErr *http.MaxBytesError
	if errors.As(err, &maxErr) {
		return apperrors.PayloadTooLarge(maxErr.Limit)
	}
	if errors.Is(err, io.EOF) {
		return apperrors.InvalidInput(message + ": body is empty")
	}
	if errors.Is(err, table.ErrEmpty) {
		return apperrors.InvalidInput(message + ": no header row")
	}
	return apperrors.InvalidInput(message + ": " + err.Error())
}
