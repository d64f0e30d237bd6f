package layout

import (
	"fmt"

	"github.com/ByLCY/copybook/binding"
	"github.com/ByLCY/copybook/config"
	"github.com/ByLCY/copybook/vocab"
)

// Content 是从配置文本派生的内容：句子模式用整段文本，单词模式用解析后的条目。
// 练习册模式没有内容。
type Content struct {
	Sentence string        `json:"sentence,omitempty"`
	Entries  []vocab.Entry `json:"entries,omitempty"`
}

// ContentFor 按练习类型派生内容，每次调用都重新解析。
func ContentFor(cfg config.Config) Content {
	switch cfg.PracticeType {
	case config.PracticeSentence:
		return Content{Sentence: cfg.Text}
	case config.PracticeVocabulary:
		return Content{Entries: vocab.Parse(cfg.Text)}
	default:
		return Content{}
	}
}

// Build 是纯函数：相同的输入总是得到相同的图元序列，不保留任何状态。
func Build(cfg config.Config, content Content, s Surface) (*Result, error) {
	if s.Width <= 0 || s.Height <= 0 {
		return nil, fmt.Errorf("layout: 表面尺寸无效 %gx%g", s.Width, s.Height)
	}
	m, err := MetricsFor(s, cfg)
	if err != nil {
		return nil, err
	}
	pc := newPageCollector(s)

	switch cfg.PracticeType {
	case config.PracticeSentence:
		err = layoutSentence(cfg, content.Sentence, s, m, pc)
	case config.PracticeVocabulary:
		err = layoutVocabulary(cfg, content.Entries, s, m, pc)
	case config.PracticeWorkbook:
		err = layoutWorkbook(cfg, s, m, pc)
	default:
		err = fmt.Errorf("%w: 练习类型 %q", ErrUnknownVariant, cfg.PracticeType)
	}
	if err != nil {
		return nil, err
	}

	pages := pc.pages()
	if s.Kind == SurfacePrint {
		stampPages(pages, cfg, m)
	}
	return &Result{
		Surface: s,
		Pages:   pages,
		Meta: DocumentMeta{
			Title:   "Handwriting Practice",
			Subject: string(cfg.PracticeType),
			Creator: "copybook",
		},
	}, nil
}

// stampPages 在每页右上角放置印记文本。
func stampPages(pages []Page, cfg config.Config, m Metrics) {
	tmpl := cfg.Stamp
	if tmpl == "" {
		tmpl = config.DefaultStamp
	}
	for i := range pages {
		p := &pages[i]
		content := binding.Interpolate(tmpl, map[string]any{
			"page":  i + 1,
			"pages": len(pages),
			"type":  string(cfg.PracticeType),
		})
		if content == "" {
			continue
		}
		p.Stamp = &Text{
			Content: content,
			X:       p.Width - p.Margin.Right,
			Y:       m.StampBaseline,
			Size:    m.StampSize,
			Font:    FontStamp,
			Color:   colorStamp,
			Align:   "right",
		}
	}
}

// fourLineGroup 生成一组四线三格：顶线、虚线中线、强调色基线（0.66）与底线。
func fourLineGroup(x1, x2, top, height float64, m Metrics) []Line {
	at := func(ratio float64) float64 { return top + height*ratio }
	return []Line{
		{X1: x1, Y1: at(0), X2: x2, Y2: at(0), Color: colorRule, Width: m.FourLineWidth, Role: RoleAscender},
		{X1: x1, Y1: at(0.33), X2: x2, Y2: at(0.33), Color: colorRule, Width: m.FourLineWidth, Dash: m.MidlineDash, Role: RoleMidline},
		{X1: x1, Y1: at(0.66), X2: x2, Y2: at(0.66), Color: colorAccent, Width: m.FourLineWidth, Role: RoleBaseline},
		{X1: x1, Y1: at(1), X2: x2, Y2: at(1), Color: colorRule, Width: m.FourLineWidth, Role: RoleDescender},
	}
}
