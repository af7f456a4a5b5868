package http

import (
	"net/http"
	"strconv"

	"github.com/cmlabs-hris/ponto-backend-go/internal/domain/report"
	"github.com/cmlabs-hris/ponto-backend-go/internal/handler/http/response"
)

type ReportHandler interface {
	// Attendance table export, PDF or XLSX
	DownloadAttendanceReport(w http.ResponseWriter, r *http.Request)
}

type reportHandlerImpl struct {
	reportService report.ReportService
}

func NewReportHandler(reportService report.ReportService) ReportHandler {
	return &reportHandlerImpl{
		reportService: reportService,
	}
}

// DownloadAttendanceReport handles GET /reports/attendance
func (h *reportHandlerImpl) DownloadAttendanceReport(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	req := report.AttendanceReportRequest{
		From:   query.Get("from"),
		To:     query.Get("to"),
		Format: report.Format(query.Get("format")),
	}
	if subjectID := query.Get("subject_id"); subjectID != "" {
		req.SubjectID = &subjectID
	}
	if sectorID := query.Get("sector_id"); sectorID != "" {
		req.SectorID = &sectorID
	}
	if req.SubjectID == nil && req.SectorID == nil {
		own := subjectOrOwn(r, "")
		if own != "" {
			req.SubjectID = &own
		}
	}

	if detailed := query.Get("detailed"); detailed != "" {
		parsed, err := strconv.ParseBool(detailed)
		if err != nil {
			response.BadRequest(w, "invalid detailed parameter", nil)
			return
		}
		req.Detailed = parsed
	}

	buf, filename, err := h.reportService.ComposeAttendanceReport(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	format := req.Format
	if format == "" {
		format = report.FormatPDF
	}
	response.File(w, format.ContentType(), filename, buf.Bytes())
}
