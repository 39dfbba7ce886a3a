package batch

import (
	"fmt"
	"io"
	"slices"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"Whirligig/internal/blade"
)

// Columns understood by ImportSheet. Headers are matched case-insensitively.
// preset and tip_style pick the base preset, unit ("in" or "mm") applies to
// every length on the row, and blank cells keep the preset value.
var Columns = []string{
	"name", "preset", "unit", "tip_style",
	"exposed_length", "tab_length", "tab_width", "root_width", "tip_width", "tip_radius",
	"width_position", "taper_sharpness", "edge_curvature", "kerf_offset",
	"pin_hole_present", "pin_hole_diameter", "pin_hole_offset",
}

type setter func(p *blade.Parameters, v string) error

func number(dst func(*blade.Parameters) *float64) setter {
	return func(p *blade.Parameters, v string) error {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return err
		}
		*dst(p) = f
		return nil
	}
}

var setters = map[string]setter{
	"exposed_length":    number(func(p *blade.Parameters) *float64 { return &p.ExposedLength }),
	"tab_length":        number(func(p *blade.Parameters) *float64 { return &p.TabLength }),
	"tab_width":         number(func(p *blade.Parameters) *float64 { return &p.TabWidth }),
	"root_width":        number(func(p *blade.Parameters) *float64 { return &p.RootWidth }),
	"tip_width":         number(func(p *blade.Parameters) *float64 { return &p.TipWidth }),
	"tip_radius":        number(func(p *blade.Parameters) *float64 { return &p.TipRadius }),
	"width_position":    number(func(p *blade.Parameters) *float64 { return &p.WidthPosition }),
	"taper_sharpness":   number(func(p *blade.Parameters) *float64 { return &p.TaperSharpness }),
	"edge_curvature":    number(func(p *blade.Parameters) *float64 { return &p.EdgeCurvature }),
	"kerf_offset":       number(func(p *blade.Parameters) *float64 { return &p.KerfOffset }),
	"pin_hole_diameter": number(func(p *blade.Parameters) *float64 { return &p.PinHole.Diameter }),
	"pin_hole_offset":   number(func(p *blade.Parameters) *float64 { return &p.PinHole.OffsetFromHub }),
	"pin_hole_present": func(p *blade.Parameters, v string) error {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return err
		}
		p.PinHole.Present = b
		return nil
	},
}

// ImportSheet reads the first sheet of an xlsx workbook. The first row is
// the header. Rows that cannot be read come back with Error set.
func ImportSheet(r io.Reader) ([]Item, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("open workbook: %w", err)
	}
	defer f.Close()

	rows, err := f.GetRows(f.GetSheetName(0))
	if err != nil {
		return nil, fmt.Errorf("read sheet: %w", err)
	}
	if len(rows) < 2 {
		return nil, ErrNoItems
	}

	header := make([]string, len(rows[0]))
	for i, h := range rows[0] {
		h = strings.ToLower(strings.TrimSpace(h))
		if h != "" && !slices.Contains(Columns, h) {
			return nil, fmt.Errorf("unknown column %q", rows[0][i])
		}
		header[i] = h
	}

	var items []Item
	for i, row := range rows[1:] {
		if blank(row) {
			continue
		}
		item, err := parseRow(header, row)
		if err != nil {
			item.Error = fmt.Sprintf("row %d: %v", i+2, err)
		}
		items = append(items, item)
	}
	if len(items) == 0 {
		return nil, ErrNoItems
	}
	return items, nil
}

func parseRow(header, row []string) (Item, error) {
	cells := map[string]string{}
	for i, v := range row {
		if i < len(header) && header[i] != "" {
			cells[header[i]] = strings.TrimSpace(v)
		}
	}
	item := Item{Name: cells["name"]}

	p, err := blade.Base(blade.TipStyle(cells["preset"]), blade.TipStyle(cells["tip_style"]))
	if err != nil {
		return item, err
	}
	unit, err := blade.ParseUnit(cells["unit"])
	if err != nil {
		return item, err
	}
	if unit == blade.Millimeters {
		p = blade.ToMillimeters(p)
	}

	for col, v := range cells {
		set, ok := setters[col]
		if !ok || v == "" {
			continue
		}
		if err := set(&p, v); err != nil {
			return item, fmt.Errorf("%s: %w", col, err)
		}
	}
	if unit == blade.Millimeters {
		p = blade.FromMillimeters(p)
	}
	item.Parameters = p
	return item, nil
}

func blank(row []string) bool {
	for _, v := range row {
		if strings.TrimSpace(v) != "" {
			return false
		}
	}
	return true
}

var resultHeader = []any{
	"name", "tip_style", "exposed_length", "cg_x", "cg_percent", "sweet_start", "sweet_end",
	"sensitivity", "flywheel_rating", "moment_of_inertia", "total_area", "in_sweet_spot", "error",
}

// WriteSheet writes one result row per batch row to a new workbook.
func WriteSheet(w io.Writer, out Output) error {
	f := excelize.NewFile()
	defer f.Close()

	const sheet = "Results"
	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return err
	}
	if err := f.SetSheetRow(sheet, "A1", &resultHeader); err != nil {
		return err
	}
	for i, r := range out.Rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		values := []any{r.Name, string(r.Parameters.TipStyle), r.Parameters.ExposedLength}
		if m := r.Metrics; m != nil {
			values = append(values, m.CGX, m.CGPercent, m.SweetStart, m.SweetEnd,
				string(m.Sensitivity), string(m.FlywheelRating), m.MomentOfInertia, m.TotalArea, m.InSweetSpot)
		} else {
			values = append(values, "", "", "", "", "", "", "", "", "")
		}
		values = append(values, r.Error)
		if err := f.SetSheetRow(sheet, cell, &values); err != nil {
			return err
		}
	}
	if err := f.Write(w); err != nil {
		return fmt.Errorf("write workbook: %w", err)
	}
	return nil
}
