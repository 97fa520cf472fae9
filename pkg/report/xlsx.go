package report

import (
	"cmp"
	"fmt"
	"io"
	"slices"

	"github.com/xuri/excelize/v2"

	"github.com/jakechorley/circle-teams/pkg/core/model"
)

const defaultSheet = "Sheet1"

// CirclesSheetName is the lookup sheet of circle sizes for a pair
func CirclesSheetName(sol model.Solution) string {
	return "Kruhy-" + sol.Name()
}

// TeamsSheetName is the sheet holding the distribution of a pair
func TeamsSheetName(sol model.Solution) string {
	return "Teams-" + sol.Name()
}

type workbookStyles struct {
	team       int
	count      int
	categories map[model.Category]int
}

func border() []excelize.Border {
	return []excelize.Border{
		{Type: "left", Color: "#000000", Style: 1},
		{Type: "right", Color: "#000000", Style: 1},
		{Type: "top", Color: "#000000", Style: 1},
		{Type: "bottom", Color: "#000000", Style: 1},
	}
}

func newWorkbookStyles(f *excelize.File) (*workbookStyles, error) {
	var err error
	styles := &workbookStyles{categories: make(map[model.Category]int)}

	styles.team, err = f.NewStyle(&excelize.Style{
		Border: []excelize.Border{
			{Type: "left", Color: "#000000", Style: 1},
			{Type: "right", Color: "#000000", Style: 1},
			{Type: "top", Color: "#000000", Style: 2},
			{Type: "bottom", Color: "#000000", Style: 2},
		},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create team style: %w", err)
	}

	styles.count, err = f.NewStyle(&excelize.Style{Border: border()})
	if err != nil {
		return nil, fmt.Errorf("failed to create count style: %w", err)
	}

	for _, category := range model.AllCategories() {
		id, err := f.NewStyle(&excelize.Style{
			Border: border(),
			Fill:   excelize.Fill{Type: "pattern", Color: []string{CategoryColor(category)}, Pattern: 1},
		})
		if err != nil {
			return nil, fmt.Errorf("failed to create style for %s: %w", category, err)
		}
		styles.categories[category] = id
	}

	return styles, nil
}

// BuildWorkbook creates a workbook with a circles sheet and a teams sheet per
// solved pair. Unsolved pairs are skipped.
func BuildWorkbook(solutions []model.Solution, subteams int, names TeamNamer) (*excelize.File, error) {
	f := excelize.NewFile()

	styles, err := newWorkbookStyles(f)
	if err != nil {
		f.Close()
		return nil, err
	}

	for _, sol := range solved(solutions) {
		if err := writeCirclesSheet(f, sol); err != nil {
			f.Close()
			return nil, err
		}
		if err := writeTeamsSheet(f, sol, subteams, names, styles); err != nil {
			f.Close()
			return nil, err
		}
	}

	// A workbook needs at least one sheet, so the default one stays when nothing was solved
	if len(f.GetSheetList()) > 1 {
		if err := f.DeleteSheet(defaultSheet); err != nil {
			f.Close()
			return nil, fmt.Errorf("failed to delete default sheet: %w", err)
		}
		f.SetActiveSheet(0)
	}

	return f, nil
}

// WriteWorkbook builds the workbook and writes it to w
func WriteWorkbook(w io.Writer, solutions []model.Solution, subteams int, names TeamNamer) error {
	f, err := BuildWorkbook(solutions, subteams, names)
	if err != nil {
		return err
	}
	defer f.Close()

	if err := f.Write(w); err != nil {
		return fmt.Errorf("failed to write workbook: %w", err)
	}
	return nil
}

// SaveWorkbook builds the workbook and saves it at path
func SaveWorkbook(path string, solutions []model.Solution, subteams int, names TeamNamer) error {
	f, err := BuildWorkbook(solutions, subteams, names)
	if err != nil {
		return err
	}
	defer f.Close()

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("%s cannot be written, it may be open in another program: %w", path, err)
	}
	return nil
}

func writeCirclesSheet(f *excelize.File, sol model.Solution) error {
	sheet := CirclesSheetName(sol)
	if _, err := f.NewSheet(sheet); err != nil {
		return fmt.Errorf("failed to create sheet %s: %w", sheet, err)
	}

	circles := sol.Distribution.Circles()
	slices.SortFunc(circles, func(a, b model.Circle) int {
		return cmp.Or(cmp.Compare(a.ID, b.ID), cmp.Compare(a.Origin, b.Origin))
	})

	rows := [][]any{{"Kruh", "Size"}}
	for _, c := range circles {
		rows = append(rows, []any{c.Label(), c.Size})
	}
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return fmt.Errorf("failed to write %s!%s: %w", sheet, cell, err)
		}
	}
	return nil
}

func writeTeamsSheet(f *excelize.File, sol model.Solution, subteams int, names TeamNamer, styles *workbookStyles) error {
	sheet := TeamsSheetName(sol)
	if _, err := f.NewSheet(sheet); err != nil {
		return fmt.Errorf("failed to create sheet %s: %w", sheet, err)
	}

	lookup := CirclesSheetName(sol)
	lastLookupRow := len(sol.Distribution.Circles()) + 1

	widest := 1
	for _, team := range sol.Distribution {
		for _, sub := range team.Subteams {
			widest = max(widest, len(sub.Circles))
		}
	}
	lastColumn, err := excelize.ColumnNumberToName(2 + widest)
	if err != nil {
		return err
	}

	for _, team := range sol.Distribution {
		firstRow := team.Index*subteams + 1
		lastRow := firstRow + subteams - 1

		nameCell := fmt.Sprintf("A%d", firstRow)
		if err := f.SetCellValue(sheet, nameCell, names.name(team.Index)); err != nil {
			return err
		}
		if lastRow > firstRow {
			if err := f.MergeCell(sheet, nameCell, fmt.Sprintf("A%d", lastRow)); err != nil {
				return fmt.Errorf("failed to merge team cells: %w", err)
			}
		}
		if err := f.SetCellStyle(sheet, nameCell, fmt.Sprintf("A%d", lastRow), styles.team); err != nil {
			return err
		}

		// Every subteam row gets a size formula, empty subteams sum to zero
		for row := firstRow; row <= lastRow; row++ {
			formula := fmt.Sprintf("SUMPRODUCT(SUMIF('%s'!$A$2:$A$%d,C%d:%s%d,'%s'!$B$2:$B$%d))",
				lookup, lastLookupRow, row, lastColumn, row, lookup, lastLookupRow)
			cell := fmt.Sprintf("B%d", row)
			if err := f.SetCellFormula(sheet, cell, formula); err != nil {
				return fmt.Errorf("failed to write %s!%s: %w", sheet, cell, err)
			}
			if err := f.SetCellStyle(sheet, cell, cell, styles.count); err != nil {
				return err
			}
		}

		for _, sub := range team.Subteams {
			row := firstRow + sub.Index
			for i, c := range sub.Circles {
				cell, err := excelize.CoordinatesToCellName(3+i, row)
				if err != nil {
					return err
				}
				if err := f.SetCellStr(sheet, cell, c.Label()); err != nil {
					return err
				}
				if style, ok := styles.categories[c.Category]; ok {
					if err := f.SetCellStyle(sheet, cell, cell, style); err != nil {
						return err
					}
				}
			}
		}
	}
	return nil
}
