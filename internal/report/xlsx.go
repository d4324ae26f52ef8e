package report

import (
	"fmt"
	"io"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/Reaishma/Automated-grading-app/internal/classroom"
)

const SheetGrades = "Grades"

var gradeHeaders = []string{"Student", "Email", "Assignment", "Submitted", "Score", "Max", "Percent", "Feedback", "Graded"}

// WriteXLSX writes one row per roster entry to a "Grades" sheet. Ungraded
// submissions leave the score columns blank.
func WriteXLSX(w io.Writer, entries []classroom.Entry, generated time.Time) error {
	f := excelize.NewFile()
	defer f.Close()

	idx, err := f.NewSheet(SheetGrades)
	if err != nil {
		return fmt.Errorf("report: new sheet: %w", err)
	}
	f.SetActiveSheet(idx)
	f.DeleteSheet("Sheet1")

	f.SetColWidth(SheetGrades, "A", "C", 22)
	f.SetColWidth(SheetGrades, "D", "D", 18)
	f.SetColWidth(SheetGrades, "E", "G", 10)
	f.SetColWidth(SheetGrades, "H", "H", 60)
	f.SetColWidth(SheetGrades, "I", "I", 18)

	headerStyle, _ := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 11, Color: "#FFFFFF"},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#4472C4"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})
	wrapStyle, _ := f.NewStyle(&excelize.Style{
		Alignment: &excelize.Alignment{WrapText: true, Vertical: "top"},
	})

	f.SetCellValue(SheetGrades, "A1", "Grade report "+generated.Format("2006-01-02 15:04"))
	f.MergeCell(SheetGrades, "A1", cell(colName(len(gradeHeaders)-1), 1))
	f.SetCellStyle(SheetGrades, "A1", "A1", headerStyle)

	for i, h := range gradeHeaders {
		f.SetCellValue(SheetGrades, cell(colName(i), 2), h)
	}
	f.SetCellStyle(SheetGrades, "A2", cell(colName(len(gradeHeaders)-1), 2), headerStyle)

	row := 3
	for _, e := range entries {
		sub := e.Submission
		student, email, title := "(unknown)", "", "(unknown)"
		var max float64
		if e.Student != nil {
			student, email = e.Student.Name, e.Student.Email
		}
		if e.Assignment != nil {
			title, max = e.Assignment.Title, e.Assignment.MaxScore
		}
		f.SetCellValue(SheetGrades, cell("A", row), student)
		f.SetCellValue(SheetGrades, cell("B", row), email)
		f.SetCellValue(SheetGrades, cell("C", row), title)
		f.SetCellValue(SheetGrades, cell("D", row), sub.SubmittedAt.Format("2006-01-02 15:04"))
		if max > 0 {
			f.SetCellValue(SheetGrades, cell("F", row), max)
		}
		if sub.Graded() {
			f.SetCellValue(SheetGrades, cell("E", row), round1(*sub.Score))
			if max > 0 {
				f.SetCellValue(SheetGrades, cell("G", row), round1(*sub.Score/max*100))
			}
			f.SetCellValue(SheetGrades, cell("H", row), *sub.Feedback)
			if sub.GradedAt != nil {
				f.SetCellValue(SheetGrades, cell("I", row), sub.GradedAt.Format("2006-01-02 15:04"))
			}
		} else {
			f.SetCellValue(SheetGrades, cell("H", row), "Not graded yet")
		}
		f.SetCellStyle(SheetGrades, cell("H", row), cell("H", row), wrapStyle)
		row++
	}

	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("report: write xlsx: %w", err)
	}
	return nil
}

func round1(v float64) float64 {
	return float64(int64(v*10+0.5)) / 10
}

func colName(idx int) string {
	name, _ := excelize.ColumnNumberToName(idx + 1)
	return name
}

func cell(col string, row int) string {
	return fmt.Sprintf("%s%d", col, row)
}
