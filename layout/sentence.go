package layout

import (
	"fmt"

	"github.com/ByLCY/copybook/config"
)

// ruleOffset 是单线样式的练习线相对行顶的位置（占行高的比例）。
const ruleOffset = 0.6

// layoutSentence 逐行放置 linesPerPage 条练习线。
// 打印表面在下一行越过可用区域底部时换页，游标回到上边距加一个行高；
// 预览表面不分页，越界即停止。行号在整个文档内连续，奇偶判断以此为准。
func layoutSentence(cfg config.Config, sentence string, s Surface, m Metrics, pc *pageCollector) error {
	left, right := s.ContentLeft(), s.ContentRight()
	top := s.ContentTop() + m.LineHeight
	cursorY := top

	for i := 0; i < cfg.LinesPerPage; i++ {
		if cursorY+m.LineHeight > s.ContentBottom() {
			if !s.Paginate {
				break
			}
			// 行高大于整页时仍在空白页上放一行，避免产生空页。
			if !pc.curr().empty() {
				pc.newPage()
				cursorY = top
			}
		}
		acc := pc.curr()

		if cfg.ShowGuideLines {
			acc.appendLine(Line{X1: left, Y1: cursorY, X2: right, Y2: cursorY, Color: colorGuide, Width: m.GuideWidth, Role: RoleGuide})
		}

		ruleY := cursorY + m.LineHeight*ruleOffset
		rule := Line{X1: left, Y1: ruleY, X2: right, Y2: ruleY, Color: colorRule, Width: m.RuleWidth, Role: RoleRule}
		baseline := cursorY - m.SampleOffset
		switch cfg.LineType {
		case config.LineSolid:
			acc.appendLine(rule)
		case config.LineDashed:
			rule.Dash = m.Dashed
			acc.appendLine(rule)
		case config.LineDotted:
			rule.Dash = m.Dotted
			acc.appendLine(rule)
		case config.LineAlternating:
			if i%2 == 1 {
				rule.Dash = m.Dashed
			}
			acc.appendLine(rule)
		case config.LineFourLines:
			groupTop := cursorY - m.FourLineHeight*ruleOffset
			for _, ln := range fourLineGroup(left, right, groupTop, m.FourLineHeight, m) {
				acc.appendLine(ln)
			}
			baseline = groupTop + m.FourLineHeight*0.66
		default:
			return fmt.Errorf("%w: 横线样式 %q", ErrUnknownVariant, cfg.LineType)
		}

		// 只在偶数行放示例文字，奇数行留给练习。
		if i%2 == 0 && sentence != "" {
			acc.appendText(Text{
				Content:  sentence,
				X:        left,
				Y:        baseline,
				Size:     m.FontSize,
				Font:     FontMain,
				Color:    colorSample,
				MaxWidth: s.ContentWidth(),
			})
		}

		cursorY += m.LineHeight
	}
	return nil
}
