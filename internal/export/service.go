// Package export renders broker-ready payloads into the worksheet and CSV
// formats operators upload alongside manual CE Broker reporting.
package export

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/supercpe/cpe-tracker/internal/entity"
)

// Header row shared by the XLSX and CSV exports. Column names follow the
// CE Broker form questions.
var headers = []string{
	"Course Name",
	"Provider Name",
	"Completion Date",
	"Hours",
	"Category",
	"Course Type",
	"Subject Areas",
	"Course Code",
	"Field of Study",
	"NASBA Sponsor",
	"Certificate File",
}

// Service produces XLSX bytes for broker worksheets.
type Service struct {
	logger *slog.Logger
}

func NewService(logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{logger: logger}
}

// BrokerWorksheetXLSX returns an XLSX workbook (as bytes) listing one row per
// payload, ready to work through the broker form from.
func (s *Service) BrokerWorksheetXLSX(payloads []entity.BrokerPayload) ([]byte, error) {
	f := excelize.NewFile()
	const sheet = "CE Broker"
	if index, _ := f.GetSheetIndex(sheet); index == -1 {
		if _, err := f.NewSheet(sheet); err != nil {
			return nil, err
		}
	}
	activeIndex, _ := f.GetSheetIndex(sheet)
	f.SetActiveSheet(activeIndex)

	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		if err := f.SetCellValue(sheet, cell, h); err != nil {
			return nil, fmt.Errorf("write header: %w", err)
		}
	}

	for r, p := range payloads {
		for c, value := range rowFor(p) {
			cell, _ := excelize.CoordinatesToCellName(c+1, r+2)
			if err := f.SetCellValue(sheet, cell, value); err != nil {
				return nil, fmt.Errorf("write row %d: %w", r+1, err)
			}
		}
	}

	// Drop the default sheet so the workbook opens on the worksheet.
	if defaultIndex, _ := f.GetSheetIndex("Sheet1"); defaultIndex != -1 && sheet != "Sheet1" {
		if err := f.DeleteSheet("Sheet1"); err != nil {
			return nil, err
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("serialize workbook: %w", err)
	}
	s.logger.Info("export.xlsx.ok", "rows", len(payloads), "bytes", buf.Len())
	return buf.Bytes(), nil
}

func rowFor(p entity.BrokerPayload) []string {
	return []string{
		p.CourseName,
		p.ProviderName,
		p.CompletionDate,
		p.Hours,
		string(p.Category),
		string(p.CourseType),
		strings.Join(p.Subjects, ", "),
		p.CourseCode,
		p.FieldOfStudy,
		p.NASBASponsor,
		p.CertificateFilename,
	}
}
