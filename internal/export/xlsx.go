package export

import (
	"fmt"
	"io"
	"strconv"

	"github.com/myrjola/fitcoach/internal/errors"
	"github.com/xuri/excelize/v2"
)

// Sheet names of the workbook.
const (
	SheetPlan    = "Workout Plan"
	SheetSummary = "Summary"
)

// WriteXLSX writes a workbook with the plan rows and a profile summary.
func WriteXLSX(w io.Writer, d Document) (err error) {
	f := excelize.NewFile()
	defer func() {
		if closeErr := f.Close(); closeErr != nil {
			err = errors.Join(err, errors.Wrap(closeErr, "close workbook"))
		}
	}()

	if err = f.SetSheetName("Sheet1", SheetPlan); err != nil {
		return errors.Wrap(err, "rename sheet")
	}
	if _, err = f.NewSheet(SheetSummary); err != nil {
		return errors.Wrap(err, "create summary sheet")
	}
	if err = writePlanSheet(f, d); err != nil {
		return err
	}
	if err = writeSummarySheet(f, d); err != nil {
		return err
	}
	f.SetActiveSheet(0)

	if _, err = f.WriteTo(w); err != nil {
		return errors.Wrap(err, "write workbook")
	}
	return nil
}

func writePlanSheet(f *excelize.File, d Document) error {
	headerStyle, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 12, Color: "FFFFFF"},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"2E75B6"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})
	if err != nil {
		return errors.Wrap(err, "create header style")
	}
	restStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Italic: true, Color: "7F7F7F"},
	})
	if err != nil {
		return errors.Wrap(err, "create rest style")
	}

	rows := append([][]string{{"Day", "Muscle Group", "Exercise"}}, Rows(d.Plan)...)
	for i, row := range rows {
		cell, cellErr := excelize.CoordinatesToCellName(1, i+1)
		if cellErr != nil {
			return errors.Wrap(cellErr, "cell name")
		}
		if err = f.SetSheetRow(SheetPlan, cell, &row); err != nil {
			return errors.Wrap(err, "set plan row")
		}
		if i > 0 && row[2] == RestDay {
			if err = f.SetCellStyle(SheetPlan, "A"+strconv.Itoa(i+1), "C"+strconv.Itoa(i+1), restStyle); err != nil {
				return errors.Wrap(err, "style rest row")
			}
		}
	}
	if err = f.SetCellStyle(SheetPlan, "A1", "C1", headerStyle); err != nil {
		return errors.Wrap(err, "style header")
	}
	if err = f.SetColWidth(SheetPlan, "A", "B", 15); err != nil {
		return errors.Wrap(err, "set column width")
	}
	if err = f.SetColWidth(SheetPlan, "C", "C", 30); err != nil {
		return errors.Wrap(err, "set column width")
	}
	return nil
}

func writeSummarySheet(f *excelize.File, d Document) error {
	titleStyle, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 16, Color: "FFFFFF"},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"2E75B6"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})
	if err != nil {
		return errors.Wrap(err, "create title style")
	}
	labelStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"E2EFDA"}, Pattern: 1},
	})
	if err != nil {
		return errors.Wrap(err, "create label style")
	}

	if err = f.SetCellValue(SheetSummary, "A1", "AI FITNESS TRAINER - WORKOUT PLAN"); err != nil {
		return errors.Wrap(err, "set title")
	}
	if err = f.MergeCell(SheetSummary, "A1", "B1"); err != nil {
		return errors.Wrap(err, "merge title")
	}
	if err = f.SetCellStyle(SheetSummary, "A1", "B1", titleStyle); err != nil {
		return errors.Wrap(err, "style title")
	}

	info := [][2]any{
		{"Generated for", d.name()},
		{"Date", d.GeneratedAt.Format("2006-01-02")},
		{"BMI", d.BMI},
		{"BMI Category", string(d.Category)},
		{"Fitness Level", string(d.Level)},
		{"Primary Goal", string(d.Goal)},
		{"Training Days", d.Plan.ActiveDays()},
		{"Total Exercises", d.Plan.TotalExercises()},
	}
	for i, row := range info {
		rowNum := i + 3 //nolint:mnd // below the title and a blank row.
		label := fmt.Sprintf("A%d", rowNum)
		if err = f.SetCellValue(SheetSummary, label, row[0]); err != nil {
			return errors.Wrap(err, "set summary label")
		}
		if err = f.SetCellValue(SheetSummary, fmt.Sprintf("B%d", rowNum), row[1]); err != nil {
			return errors.Wrap(err, "set summary value")
		}
		if err = f.SetCellStyle(SheetSummary, label, label, labelStyle); err != nil {
			return errors.Wrap(err, "style summary label")
		}
	}
	if err = f.SetColWidth(SheetSummary, "A", "A", 20); err != nil {
		return errors.Wrap(err, "set column width")
	}
	if err = f.SetColWidth(SheetSummary, "B", "B", 30); err != nil {
		return errors.Wrap(err, "set column width")
	}
	return nil
}
