package export

import (
	"bytes"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/xuri/excelize/v2"

	"github.com/shaysadin/wedding-seating-api/internal/domain/guest"
	"github.com/shaysadin/wedding-seating-api/internal/domain/seating"
	"github.com/shaysadin/wedding-seating-api/internal/logger"
)

// ErrNoTables means the event has no seating arrangement to export
var ErrNoTables = errors.New("event has no tables to export")

// SeatingChart renders an event's seating arrangement as an XLSX workbook:
// a summary sheet followed by one sheet per table listing its guests. The
// workbook is returned as a buffer with a suggested filename.
func SeatingChart(eventName string, tables []*seating.Table, guests []*guest.Guest) (*bytes.Buffer, string, error) {
	log := logger.Service("export")

	if len(tables) == 0 {
		return nil, "", ErrNoTables
	}

	byID := make(map[uuid.UUID]*guest.Guest, len(guests))
	for _, g := range guests {
		byID[g.ID] = g
	}

	f := excelize.NewFile()
	defer f.Close()

	headerStyle, _ := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 11},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#4472C4"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})

	if err := writeSummarySheet(f, eventName, tables, byID, headerStyle); err != nil {
		log.Error("failed to write summary sheet", "error", err)
		return nil, "", err
	}

	for _, t := range tables {
		if err := writeTableSheet(f, t, byID, headerStyle); err != nil {
			log.Error("failed to write table sheet", "table", t.Number, "error", err)
			return nil, "", err
		}
	}

	f.DeleteSheet("Sheet1")

	buf := new(bytes.Buffer)
	if err := f.Write(buf); err != nil {
		log.Error("failed to write workbook", "error", err)
		return nil, "", fmt.Errorf("failed to write workbook: %w", err)
	}

	filename := fmt.Sprintf("seating_chart_%s.xlsx", sanitizeFilename(eventName))
	return buf, filename, nil
}

func writeSummarySheet(f *excelize.File, eventName string, tables []*seating.Table, byID map[uuid.UUID]*guest.Guest, headerStyle int) error {
	const sheet = "Summary"
	idx, err := f.NewSheet(sheet)
	if err != nil {
		return err
	}
	f.SetActiveSheet(idx)

	f.SetColWidth(sheet, "A", "A", 8)
	f.SetColWidth(sheet, "B", "B", 28)
	f.SetColWidth(sheet, "C", "E", 12)

	f.SetCellValue(sheet, "A1", fmt.Sprintf("Seating Chart: %s", eventName))
	f.MergeCell(sheet, "A1", "E1")
	f.SetCellStyle(sheet, "A1", "A1", headerStyle)

	headers := []string{"#", "Table", "Capacity", "Seated", "Shape"}
	for i, h := range headers {
		col, _ := excelize.ColumnNumberToName(i + 1)
		f.SetCellValue(sheet, cell(col, 2), h)
		f.SetCellStyle(sheet, cell(col, 2), cell(col, 2), headerStyle)
	}

	row := 3
	for _, t := range tables {
		seated := 0
		for _, a := range t.Assignments {
			if g, ok := byID[a.GuestID]; ok {
				seated += g.SeatDemand()
			} else {
				seated++
			}
		}

		f.SetCellValue(sheet, cell("A", row), t.Number)
		f.SetCellValue(sheet, cell("B", row), t.Name)
		f.SetCellValue(sheet, cell("C", row), t.Capacity)
		f.SetCellValue(sheet, cell("D", row), seated)
		f.SetCellValue(sheet, cell("E", row), string(t.Shape))
		row++
	}

	return nil
}

func writeTableSheet(f *excelize.File, t *seating.Table, byID map[uuid.UUID]*guest.Guest, headerStyle int) error {
	sheet := fmt.Sprintf("Table %d", t.Number)
	if _, err := f.NewSheet(sheet); err != nil {
		return err
	}

	f.SetColWidth(sheet, "A", "A", 28)
	f.SetColWidth(sheet, "B", "E", 14)

	f.SetCellValue(sheet, "A1", t.Name)
	f.MergeCell(sheet, "A1", "E1")
	f.SetCellStyle(sheet, "A1", "A1", headerStyle)

	headers := []string{"Guest", "Party Size", "Side", "Group", "RSVP"}
	for i, h := range headers {
		col, _ := excelize.ColumnNumberToName(i + 1)
		f.SetCellValue(sheet, cell(col, 2), h)
		f.SetCellStyle(sheet, cell(col, 2), cell(col, 2), headerStyle)
	}

	row := 3
	for _, a := range t.Assignments {
		g, ok := byID[a.GuestID]
		if !ok {
			f.SetCellValue(sheet, cell("A", row), "(unknown guest)")
			row++
			continue
		}

		f.SetCellValue(sheet, cell("A", row), g.Name)
		f.SetCellValue(sheet, cell("B", row), g.SeatDemand())
		f.SetCellValue(sheet, cell("C", row), g.Side)
		f.SetCellValue(sheet, cell("D", row), g.GroupName)
		f.SetCellValue(sheet, cell("E", row), g.Status().String())
		row++
	}

	return nil
}

func cell(col string, row int) string {
	return fmt.Sprintf("%s%d", col, row)
}

func sanitizeFilename(name string) string {
	out := make([]rune, 0, len(name))
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			out = append(out, r)
		case r == ' ', r == '-', r == '_':
			out = append(out, '_')
		}
	}
	if len(out) == 0 {
		return "event"
	}
	return string(out)
}
