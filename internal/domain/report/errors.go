package report

import "errors"

var (
	ErrNoWorkers              = errors.New("no workers found for the specified criteria")
	ErrUnsupportedFormat      = errors.New("unsupported report format")
	ErrReportGenerationFailed = errors.New("failed to generate report")
)
