package layout

type pageAccumulator struct {
	lines []Line
	rects []Rect
	texts []Text
	cells CellStats
}

func (p *pageAccumulator) appendLine(ln Line) {
	p.lines = append(p.lines, ln)
}

func (p *pageAccumulator) appendRect(rc Rect) {
	p.rects = append(p.rects, rc)
}

func (p *pageAccumulator) appendText(tx Text) {
	p.texts = append(p.texts, tx)
}

func (p *pageAccumulator) empty() bool {
	return len(p.lines) == 0 && len(p.rects) == 0 && len(p.texts) == 0
}

// pageCollector 按顺序收集各页图元；非分页表面始终只有一页。
type pageCollector struct {
	surface Surface
	accs    []*pageAccumulator
	current int
}

func newPageCollector(s Surface) *pageCollector {
	pc := &pageCollector{surface: s}
	pc.newPage()
	return pc
}

func (pc *pageCollector) newPage() *pageAccumulator {
	acc := &pageAccumulator{}
	pc.accs = append(pc.accs, acc)
	pc.current = len(pc.accs) - 1
	return acc
}

func (pc *pageCollector) curr() *pageAccumulator {
	if len(pc.accs) == 0 {
		return pc.newPage()
	}
	return pc.accs[pc.current]
}

func (pc *pageCollector) pages() []Page {
	out := make([]Page, len(pc.accs))
	for i, acc := range pc.accs {
		bg := colorBackground
		out[i] = Page{
			Index:      i,
			Width:      pc.surface.Width,
			Height:     pc.surface.Height,
			Margin:     pc.surface.Margin,
			Background: &bg,
			Lines:      acc.lines,
			Rects:      acc.rects,
			Texts:      acc.texts,
			Cells:      acc.cells,
		}
	}
	return out
}
