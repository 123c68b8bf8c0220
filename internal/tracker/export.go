package tracker

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/xuri/excelize/v2"
)

// Sheet names of the exported workbook
const (
	SheetApplications = "Applications"
	SheetNotes        = "Notes"
	SheetSummary      = "Summary"
)

const dateLayout = "2006-01-02"

var applicationHeaders = []string{
	"Company", "Position", "Status", "Location", "Work Type", "Applied", "Salary Range", "Job URL", "Created",
}

var statusFill = map[Status]string{
	StatusSaved:        "EDEDED",
	StatusApplied:      "DDEBF7",
	StatusInterviewing: "FFEB9C",
	StatusOffer:        "C6EFCE",
	StatusRejected:     "FFC7CE",
	StatusWithdrawn:    "EDEDED",
}

var thinBorder = []excelize.Border{
	{Type: "left", Color: "000000", Style: 1},
	{Type: "right", Color: "000000", Style: 1},
	{Type: "top", Color: "000000", Style: 1},
	{Type: "bottom", Color: "000000", Style: 1},
}

// ExportXLSX writes apps, their notes and a status summary to an Excel workbook.
// notes is keyed by application ID and may be nil.
func ExportXLSX(apps []Application, notes map[uuid.UUID][]Note, generated time.Time) ([]byte, error) {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	if err := f.SetSheetName("Sheet1", SheetApplications); err != nil {
		return nil, fmt.Errorf("failed to name sheet: %w", err)
	}
	if _, err := f.NewSheet(SheetNotes); err != nil {
		return nil, fmt.Errorf("failed to create notes sheet: %w", err)
	}
	if _, err := f.NewSheet(SheetSummary); err != nil {
		return nil, fmt.Errorf("failed to create summary sheet: %w", err)
	}

	if err := writeApplications(f, apps); err != nil {
		return nil, fmt.Errorf("failed to write applications sheet: %w", err)
	}
	if err := writeNotes(f, apps, notes); err != nil {
		return nil, fmt.Errorf("failed to write notes sheet: %w", err)
	}
	if err := writeSummary(f, Summarize(apps), generated); err != nil {
		return nil, fmt.Errorf("failed to write summary sheet: %w", err)
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to encode workbook: %w", err)
	}
	return buf.Bytes(), nil
}

func headerStyle(f *excelize.File) (int, error) {
	return f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Color: "FFFFFF"},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"4472C4"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
		Border:    thinBorder,
	})
}

func writeHeaderRow(f *excelize.File, sheet string, headers []string) error {
	style, err := headerStyle(f)
	if err != nil {
		return err
	}
	for i, h := range headers {
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			return err
		}
		if err := f.SetCellValue(sheet, cell, h); err != nil {
			return err
		}
		if err := f.SetCellStyle(sheet, cell, cell, style); err != nil {
			return err
		}
	}
	return f.SetPanes(sheet, &excelize.Panes{
		Freeze:      true,
		YSplit:      1,
		TopLeftCell: "A2",
		ActivePane:  "bottomLeft",
	})
}

// setRow writes values left to right starting at column A
func setRow(f *excelize.File, sheet string, row int, values ...any) error {
	for i, v := range values {
		cell, err := excelize.CoordinatesToCellName(i+1, row)
		if err != nil {
			return err
		}
		if err := f.SetCellValue(sheet, cell, v); err != nil {
			return err
		}
	}
	return nil
}

func writeApplications(f *excelize.File, apps []Application) error {
	sheet := SheetApplications
	widths := []float64{25, 30, 14, 20, 12, 12, 16, 40, 12}
	for i, w := range widths {
		col, err := excelize.ColumnNumberToName(i + 1)
		if err != nil {
			return err
		}
		if err := f.SetColWidth(sheet, col, col, w); err != nil {
			return err
		}
	}
	if err := writeHeaderRow(f, sheet, applicationHeaders); err != nil {
		return err
	}

	styles := make(map[Status]int, len(statusFill))
	for st, color := range statusFill {
		id, err := f.NewStyle(&excelize.Style{
			Fill:   excelize.Fill{Type: "pattern", Color: []string{color}, Pattern: 1},
			Border: thinBorder,
		})
		if err != nil {
			return err
		}
		styles[st] = id
	}

	for i, a := range apps {
		row := i + 2
		err := setRow(f, sheet, row,
			a.CompanyName,
			a.PositionTitle,
			a.Status.Label(),
			deref(a.Location),
			deref(a.WorkType),
			formatDate(a.AppliedDate),
			deref(a.SalaryRange),
			deref(a.JobURL),
			a.CreatedAt.Format(dateLayout),
		)
		if err != nil {
			return err
		}
		if style, ok := styles[a.Status]; ok {
			if err := f.SetCellStyle(sheet, fmt.Sprintf("C%d", row), fmt.Sprintf("C%d", row), style); err != nil {
				return err
			}
		}
		if url := deref(a.JobURL); url != "" {
			if err := f.SetCellHyperLink(sheet, fmt.Sprintf("H%d", row), url, "External"); err != nil {
				return err
			}
		}
	}

	if len(apps) > 0 {
		last, err := excelize.CoordinatesToCellName(len(applicationHeaders), len(apps)+1)
		if err != nil {
			return err
		}
		if err := f.AutoFilter(sheet, "A1:"+last, nil); err != nil {
			return err
		}
	}
	return nil
}

func writeNotes(f *excelize.File, apps []Application, notes map[uuid.UUID][]Note) error {
	sheet := SheetNotes
	if err := f.SetColWidth(sheet, "A", "B", 25); err != nil {
		return err
	}
	if err := f.SetColWidth(sheet, "D", "D", 12); err != nil {
		return err
	}
	if err := f.SetColWidth(sheet, "E", "E", 60); err != nil {
		return err
	}
	if err := writeHeaderRow(f, sheet, []string{"Company", "Position", "Type", "Date", "Note"}); err != nil {
		return err
	}

	wrap, err := f.NewStyle(&excelize.Style{Alignment: &excelize.Alignment{WrapText: true, Vertical: "top"}})
	if err != nil {
		return err
	}

	row := 2
	for _, a := range apps {
		for _, n := range notes[a.ID] {
			if err := setRow(f, sheet, row, a.CompanyName, a.PositionTitle, n.NoteType, n.NoteDate.Format(dateLayout), n.Content); err != nil {
				return err
			}
			if err := f.SetCellStyle(sheet, fmt.Sprintf("E%d", row), fmt.Sprintf("E%d", row), wrap); err != nil {
				return err
			}
			row++
		}
	}
	return nil
}

func writeSummary(f *excelize.File, s Summary, generated time.Time) error {
	sheet := SheetSummary
	if err := f.SetColWidth(sheet, "A", "A", 22); err != nil {
		return err
	}
	label, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return err
	}

	rows := [][]any{
		{"Generated", generated.UTC().Format("2006-01-02 15:04:05")},
		{"Total Applications", s.Total},
		{"Active", s.Active},
		{"Response Rate (%)", s.ResponseRate},
	}
	for _, st := range Statuses() {
		rows = append(rows, []any{st.Label(), s.ByStatus[st]})
	}

	for i, r := range rows {
		row := i + 1
		if err := setRow(f, sheet, row, r...); err != nil {
			return err
		}
		if err := f.SetCellStyle(sheet, fmt.Sprintf("A%d", row), fmt.Sprintf("A%d", row), label); err != nil {
			return err
		}
	}
	return nil
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func formatDate(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format(dateLayout)
}
