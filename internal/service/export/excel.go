package export

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"mrp-sched/internal/service/plan"
)

var excelHeaders = []string{
	"Part", "Name", "Work centers", "Category",
	"Stock", "Shelf theory", "External",
	"Shortage date", "Due date", "Shortage qty",
	"Backlog", "Startable", "Demand total",
}

// BuildExcel renders the report as a workbook: fixed columns first, then
// one demand column per horizon day, header row frozen.
func BuildExcel(rep *plan.Report) ([]byte, error) {
	const op = "export.BuildExcel"

	f := excelize.NewFile()
	defer f.Close()
	sheet := "Shortage"
	f.SetSheetName("Sheet1", sheet)

	headerStyle, _ := f.NewStyle(&excelize.Style{
		Font:   &excelize.Font{Bold: true},
		Fill:   excelize.Fill{Type: "pattern", Color: []string{"E0E0E0"}, Pattern: 1},
		Border: []excelize.Border{{Type: "bottom", Color: "000000", Style: 2}},
	})

	header := append([]string{}, excelHeaders...)
	for _, d := range rep.Dates {
		header = append(header, d.Format(dateFormat))
	}
	for i, name := range header {
		f.SetCellValue(sheet, cellName(i+1, 1), name)
	}
	lastCol, _ := excelize.CoordinatesToCellName(len(header), 1)
	f.SetCellStyle(sheet, "A1", lastCol, headerStyle)

	for rowIdx, row := range rep.Rows {
		rowNum := rowIdx + 2

		f.SetCellValue(sheet, cellName(1, rowNum), row.Item)
		f.SetCellValue(sheet, cellName(2, rowNum), row.Name)
		f.SetCellValue(sheet, cellName(3, rowNum), row.WorkCenters)
		f.SetCellValue(sheet, cellName(4, rowNum), row.Category)
		f.SetCellValue(sheet, cellName(5, rowNum), row.Stock)
		f.SetCellValue(sheet, cellName(6, rowNum), row.Theory)
		f.SetCellValue(sheet, cellName(7, rowNum), row.External)
		f.SetCellValue(sheet, cellName(8, rowNum), formatDate(row.ShortageDate))
		f.SetCellValue(sheet, cellName(9, rowNum), formatDate(row.DueDate))
		f.SetCellValue(sheet, cellName(10, rowNum), row.ShortageQty)
		f.SetCellValue(sheet, cellName(11, rowNum), row.Backlog)
		f.SetCellValue(sheet, cellName(12, rowNum), row.Startable)
		f.SetCellValue(sheet, cellName(13, rowNum), row.DemandTotal)
		for i, q := range row.Daily {
			f.SetCellValue(sheet, cellName(len(excelHeaders)+i+1, rowNum), q)
		}
	}

	f.SetPanes(sheet, &excelize.Panes{
		Freeze:      true,
		XSplit:      0,
		YSplit:      1,
		TopLeftCell: "A2",
	})
	f.SetColWidth(sheet, "A", "D", 18)

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return buf.Bytes(), nil
}

func cellName(col, row int) string {
	name, _ := excelize.CoordinatesToCellName(col, row)
	return name
}
