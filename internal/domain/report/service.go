package report

import (
	"bytes"
	"context"
)

// ReportService defines the interface for report generation
type ReportService interface {
	// ComposeAttendanceReport renders the attendance tables of one worker or of
	// a sector roster and returns the file content with its suggested name.
	ComposeAttendanceReport(ctx context.Context, req AttendanceReportRequest) (*bytes.Buffer, string, error)
}
