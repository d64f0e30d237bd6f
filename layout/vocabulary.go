package layout

import (
	"math"

	"github.com/ByLCY/copybook/config"
	"github.com/ByLCY/copybook/vocab"
)

// vocabGrid 是单词表在某个表面上的行列几何。
type vocabGrid struct {
	cols, rows int
	colWidth   float64
	rowPitch   float64 // 相邻两行顶部的距离
	rowBand    float64 // 四线三格在其中垂直居中的带高
}

// vocabGridFor 打印时按 gridCols×gridRows 平分内容区；
// 预览时列数相同，行数由视口高度决定（行距为 1.5 倍行高）。
func vocabGridFor(cfg config.Config, s Surface, m Metrics) vocabGrid {
	g := vocabGrid{cols: cfg.GridCols}
	g.colWidth = s.ContentWidth() / float64(g.cols)
	if s.Kind == SurfacePrint {
		g.rows = cfg.GridRows
		g.rowPitch = s.ContentHeight() / float64(g.rows)
		g.rowBand = g.rowPitch
		return g
	}
	g.rowPitch = m.LineHeight * 1.5
	g.rowBand = m.LineHeight
	g.rows = int(math.Floor(s.ContentHeight() / g.rowPitch))
	if g.rows < 0 {
		g.rows = 0
	}
	return g
}

// layoutVocabulary 按行优先把条目填入格子。
// 单词用完后，当前页剩余格子仍画出空白四线三格；用完单词的那一页之后不再分页，至少输出一页。
func layoutVocabulary(cfg config.Config, entries []vocab.Entry, s Surface, m Metrics, pc *pageCollector) error {
	g := vocabGridFor(cfg, s, m)
	if g.cols*g.rows == 0 {
		return nil
	}
	h := m.FourLineHeight
	textWidth := g.colWidth - 2*m.CellPadding

	next := 0
	for {
		acc := pc.curr()
		for r := 0; r < g.rows; r++ {
			for c := 0; c < g.cols; c++ {
				x := s.ContentLeft() + float64(c)*g.colWidth
				y := s.ContentTop() + float64(r)*g.rowPitch
				top := y + (g.rowBand-h)/2

				for _, ln := range fourLineGroup(x, x+g.colWidth, top, h, m) {
					acc.appendLine(ln)
				}

				if next >= len(entries) {
					acc.cells.Empty++
					next++
					continue
				}
				item := entries[next]
				next++
				acc.cells.Filled++

				wordColor := colorWord
				if cfg.TraceMode {
					wordColor = colorTrace
				}
				acc.appendText(Text{
					Content:  item.Word,
					X:        x + m.CellPadding,
					Y:        top + h*0.66,
					Size:     m.FontSize,
					Font:     FontMain,
					Color:    wordColor,
					MaxWidth: textWidth,
				})
				if item.Meaning != "" {
					acc.appendText(Text{
						Content:  item.Meaning,
						X:        x + m.CellPadding,
						Y:        top + h + m.MeaningGap,
						Size:     m.MeaningSize,
						Font:     FontMeaning,
						Color:    colorMeaning,
						MaxWidth: textWidth,
					})
				}
			}
		}
		if next >= len(entries) || !s.Paginate {
			return nil
		}
		pc.newPage()
	}
}
