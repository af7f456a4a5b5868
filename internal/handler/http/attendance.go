package http

import (
	"encoding/json"
	"log/slog"
	"mime/multipart"
	"net/http"
	"strings"

	"github.com/cmlabs-hris/ponto-backend-go/internal/domain/attendance"
	"github.com/cmlabs-hris/ponto-backend-go/internal/handler/http/response"
	"github.com/cmlabs-hris/ponto-backend-go/internal/pkg/jwt"
)

const maxMultipartMemory = 10 << 20 // 10MB

type AttendanceHandler interface {
	Table(w http.ResponseWriter, r *http.Request)
	PreviewPunch(w http.ResponseWriter, r *http.Request)
	Punch(w http.ResponseWriter, r *http.Request)
	RecordException(w http.ResponseWriter, r *http.Request)
	RemoveEvent(w http.ResponseWriter, r *http.Request)
	ListEvents(w http.ResponseWriter, r *http.Request)
}

type attendanceHandlerImpl struct {
	attendanceService attendance.AttendanceService
}

func NewAttendanceHandler(attendanceService attendance.AttendanceService) AttendanceHandler {
	return &attendanceHandlerImpl{
		attendanceService: attendanceService,
	}
}

// rejectionStatus maps a punch result code to its HTTP status.
func rejectionStatus(code attendance.ResultCode) int {
	switch code {
	case attendance.ResultInvalidSubject:
		return http.StatusNotFound
	case attendance.ResultUnauthorized:
		return http.StatusForbidden
	default:
		return http.StatusConflict
	}
}

// subjectOrOwn falls back to the caller's own subject when none is given.
func subjectOrOwn(r *http.Request, subjectID string) string {
	if subjectID != "" {
		return subjectID
	}
	if p, ok := jwt.PrincipalFromContext(r.Context()); ok && p.SubjectID != nil {
		return *p.SubjectID
	}
	return ""
}

// parseMultipartData decodes the JSON 'data' field of a multipart form into dst
// and returns the optional file stored under fileField.
func parseMultipartData(w http.ResponseWriter, r *http.Request, dst interface{}, fileField string) (multipart.File, *multipart.FileHeader, bool) {
	if err := r.ParseMultipartForm(maxMultipartMemory); err != nil {
		slog.Error("Failed to parse multipart form", "error", err)
		response.BadRequest(w, "Failed to parse form data", nil)
		return nil, nil, false
	}

	dataJSON := r.FormValue("data")
	if dataJSON == "" {
		response.BadRequest(w, "Field 'data' is required", nil)
		return nil, nil, false
	}

	if err := json.Unmarshal([]byte(dataJSON), dst); err != nil {
		slog.Error("Failed to unmarshal JSON data", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return nil, nil, false
	}

	file, fileHeader, err := r.FormFile(fileField)
	if err != nil {
		if err == http.ErrMissingFile {
			return nil, nil, true
		}
		slog.Error("Failed to get file from form", "error", err)
		response.BadRequest(w, "Invalid file upload", nil)
		return nil, nil, false
	}
	return file, fileHeader, true
}

// Table implements AttendanceHandler.
func (h *attendanceHandlerImpl) Table(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	req := attendance.TableRequest{
		SubjectID: subjectOrOwn(r, query.Get("subject_id")),
		From:      query.Get("from"),
		To:        query.Get("to"),
	}

	result, err := h.attendanceService.BuildTable(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// PreviewPunch implements AttendanceHandler.
func (h *attendanceHandlerImpl) PreviewPunch(w http.ResponseWriter, r *http.Request) {
	var req attendance.PunchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}

	result, err := h.attendanceService.PreviewPunch(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	if result.Result != attendance.ResultOK {
		response.Rejected(w, rejectionStatus(result.Result), string(result.Result), result.Message, result)
		return
	}
	response.SuccessWithMessage(w, result.Message, result)
}

// Punch implements AttendanceHandler.
func (h *attendanceHandlerImpl) Punch(w http.ResponseWriter, r *http.Request) {
	var req attendance.PunchRequest

	file, fileHeader, ok := parseMultipartData(w, r, &req, "photo")
	if !ok {
		return
	}
	if file != nil {
		defer file.Close()
		req.File = file
		req.FileHeader = fileHeader
	}

	result, err := h.attendanceService.EvaluatePunch(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	if result.Result != attendance.ResultOK {
		response.Rejected(w, rejectionStatus(result.Result), string(result.Result), result.Message, result)
		return
	}
	response.Created(w, result.Message, result)
}

// RecordException implements AttendanceHandler. Accepts either a JSON body or
// a multipart form with an optional 'attachment'.
func (h *attendanceHandlerImpl) RecordException(w http.ResponseWriter, r *http.Request) {
	var req attendance.ExceptionRequest

	if strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/") {
		file, fileHeader, ok := parseMultipartData(w, r, &req, "attachment")
		if !ok {
			return
		}
		if file != nil {
			defer file.Close()
			req.File = file
			req.FileHeader = fileHeader
		}
	} else if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}

	result, err := h.attendanceService.RecordException(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Exception recorded", result)
}

// RemoveEvent implements AttendanceHandler.
func (h *attendanceHandlerImpl) RemoveEvent(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	req := attendance.RemoveEventRequest{
		SubjectID: query.Get("subject_id"),
		Date:      query.Get("date"),
		Kind:      attendance.Kind(query.Get("kind")),
	}

	if err := h.attendanceService.RemoveEvent(r.Context(), req); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Attendance event removed", nil)
}

// ListEvents implements AttendanceHandler.
func (h *attendanceHandlerImpl) ListEvents(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	filter := attendance.EventFilter{
		SubjectID: subjectOrOwn(r, query.Get("subject_id")),
		From:      query.Get("from"),
		To:        query.Get("to"),
	}

	result, err := h.attendanceService.ListEvents(r.Context(), filter)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}
