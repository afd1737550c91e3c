package models

import "time"

// ReportType enumerates the exportable datasets.
type ReportType string

const (
	ReportTypeParents ReportType = "parents"
	ReportTypeScores  ReportType = "scores"
)

// ReportFormat enumerates output renderings.
type ReportFormat string

const (
	ReportFormatCSV ReportFormat = "csv"
	ReportFormatPDF ReportFormat = "pdf"
)

// ExportRequest asks for a rendered report. StudentID is required for the
// scores report and ignored otherwise.
type ExportRequest struct {
	Type      ReportType   `json:"type" validate:"required,oneof=parents scores"`
	Format    ReportFormat `json:"format" validate:"required,oneof=csv pdf"`
	StudentID string       `json:"student_id,omitempty"`
}

// ExportResult describes a generated export and its signed download URL.
type ExportResult struct {
	ExportID  string       `json:"export_id"`
	Filename  string       `json:"filename"`
	Format    ReportFormat `json:"format"`
	URL       string       `json:"url"`
	ExpiresAt time.Time    `json:"expires_at"`
}
