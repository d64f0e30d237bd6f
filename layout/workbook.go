package layout

import (
	"fmt"
	"math"

	"github.com/ByLCY/copybook/config"
)

// 预览时格子边长按可用宽度与 10 行高度取较小值。
const previewFitRows = 10

// layoutWorkbook 画单页练习册：五线谱组或带装饰的格子。练习册没有内容，不分页。
func layoutWorkbook(cfg config.Config, s Surface, m Metrics, pc *pageCollector) error {
	style, size, name := cfg.Workbook()
	stroke, err := PaletteColor(name)
	if err != nil {
		return err
	}
	switch style {
	case config.StyleStaff:
		layoutStaff(s, m, stroke, pc.curr())
		return nil
	case config.StyleTianzige, config.StyleMizi, config.StylePinyin, config.StyleSquare:
		return layoutGrid(style, size, s, m, stroke, pc.curr())
	default:
		return fmt.Errorf("%w: 练习册样式 %q", ErrUnknownVariant, style)
	}
}

// layoutStaff 自上而下重复五线组，每组左右两侧各有一条竖线框住。
func layoutStaff(s Surface, m Metrics, stroke Color, acc *pageAccumulator) {
	groupHeight := 4 * m.StaffLineSpacing
	count := int(math.Floor(s.ContentHeight() / (groupHeight + m.StaffGap)))
	left, right := s.ContentLeft(), s.ContentRight()

	for g := 0; g < count; g++ {
		top := s.ContentTop() + float64(g)*(groupHeight+m.StaffGap)
		for i := 0; i < 5; i++ {
			y := top + float64(i)*m.StaffLineSpacing
			acc.appendLine(Line{X1: left, Y1: y, X2: right, Y2: y, Color: stroke, Width: m.GridWidth, Role: RoleStaff})
		}
		bottom := top + groupHeight
		acc.appendLine(Line{X1: left, Y1: top, X2: left, Y2: bottom, Color: stroke, Width: m.GridWidth, Role: RoleStaffBar})
		acc.appendLine(Line{X1: right, Y1: top, X2: right, Y2: bottom, Color: stroke, Width: m.GridWidth, Role: RoleStaffBar})
	}
}

// gridGeometry 计算格子边长与起点。打印使用固定毫米边长并水平居中，预览按视口适配并靠左。
func gridGeometry(size config.GridSize, cols int, s Surface, m Metrics) (cell, startX float64, err error) {
	availW, availH := s.ContentWidth(), s.ContentHeight()
	sp := m.CellSpacing
	switch s.Kind {
	case SurfacePrint:
		cell, err = printCellSize(size)
		if err != nil {
			return 0, 0, err
		}
		total := float64(cols)*cell + float64(cols-1)*sp
		return cell, s.ContentLeft() + (availW-total)/2, nil
	case SurfacePreview:
		byWidth := (availW - float64(cols-1)*sp) / float64(cols)
		byHeight := (availH - float64(previewFitRows-1)*sp) / previewFitRows
		return math.Min(byWidth, byHeight), s.ContentLeft(), nil
	default:
		return 0, 0, fmt.Errorf("%w: 表面类型 %q", ErrUnknownVariant, s.Kind)
	}
}

func layoutGrid(style config.WorkbookStyle, size config.GridSize, s Surface, m Metrics, stroke Color, acc *pageAccumulator) error {
	cols, err := workbookColumns(size)
	if err != nil {
		return err
	}
	cell, startX, err := gridGeometry(size, cols, s, m)
	if err != nil {
		return err
	}
	if cell <= 0 {
		return nil
	}
	sp := m.CellSpacing
	rows := int(math.Floor((s.ContentHeight() + sp) / (cell + sp)))

	for r := 0; r < rows; r++ {
		for c := 0; c < cols; c++ {
			x := startX + float64(c)*(cell+sp)
			y := s.ContentTop() + float64(r)*(cell+sp)
			acc.appendRect(Rect{X: x, Y: y, Width: cell, Height: cell, StrokeColor: stroke, StrokeWidth: m.GridWidth})
			for _, ln := range cellDecoration(style, x, y, cell, m, stroke) {
				acc.appendLine(ln)
			}
		}
	}
	return nil
}

// cellDecoration 返回单个格子内部的装饰线，与外框同色，线宽更细。
func cellDecoration(style config.WorkbookStyle, x, y, cell float64, m Metrics, stroke Color) []Line {
	midX, midY := x+cell/2, y+cell/2
	deco := func(x1, y1, x2, y2 float64) Line {
		return Line{X1: x1, Y1: y1, X2: x2, Y2: y2, Color: stroke, Width: m.DecorationWidth, Dash: m.DecorationDash, Role: RoleDecoration}
	}
	switch style {
	case config.StyleTianzige:
		return []Line{
			deco(midX, y, midX, y+cell),
			deco(x, midY, x+cell, midY),
		}
	case config.StyleMizi:
		return []Line{
			deco(midX, y, midX, y+cell),
			deco(x, midY, x+cell, midY),
			deco(x, y, x+cell, y+cell),
			deco(x+cell, y, x, y+cell),
		}
	case config.StylePinyin:
		out := make([]Line, 0, 4)
		for k := 0; k < 4; k++ {
			ly := y + cell*(0.25+float64(k)*0.5/3)
			out = append(out, Line{
				X1: x + m.PinyinInset, Y1: ly, X2: x + cell - m.PinyinInset, Y2: ly,
				Color: stroke, Width: m.PinyinWidth, Role: RoleDecoration,
			})
		}
		return out
	default:
		return nil
	}
}
