package layout

import (
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/ByLCY/copybook/config"
	"github.com/ByLCY/copybook/vocab"
)

func approx(a, b float64) bool { return math.Abs(a-b) < 1e-6 }

func mustPrint(t *testing.T, size config.PageSize) Surface {
	t.Helper()
	s, err := PrintSurface(size)
	if err != nil {
		t.Fatalf("创建打印表面失败: %v", err)
	}
	return s
}

func mustBuild(t *testing.T, cfg config.Config, content Content, s Surface) *Result {
	t.Helper()
	res, err := Build(cfg, content, s)
	if err != nil {
		t.Fatalf("布局计算失败: %v", err)
	}
	if len(res.Pages) == 0 {
		t.Fatalf("无页面输出")
	}
	return res
}

func makeEntries(n int) []vocab.Entry {
	out := make([]vocab.Entry, n)
	for i := range out {
		out[i] = vocab.Entry{Word: fmt.Sprintf("word%d", i), Meaning: "n. 释义"}
	}
	return out
}

func countRole(lines []Line, role LineRole) int {
	n := 0
	for _, ln := range lines {
		if ln.Role == role {
			n++
		}
	}
	return n
}

// TestVocabularyPagination：4×14 网格放 57 个单词，第二页只有 1 个已填格子和 55 个空格子。
func TestVocabularyPagination(t *testing.T) {
	cfg := config.Default()
	res := mustBuild(t, cfg, Content{Entries: makeEntries(57)}, mustPrint(t, config.PageA4))
	if len(res.Pages) != 2 {
		t.Fatalf("期望 2 页，实际 %d", len(res.Pages))
	}
	if got := res.Pages[0].Cells; got.Filled != 56 || got.Empty != 0 {
		t.Fatalf("第一页格子统计错误: %+v", got)
	}
	if got := res.Pages[1].Cells; got.Filled != 1 || got.Empty != 55 {
		t.Fatalf("第二页格子统计错误: %+v", got)
	}
	// 每个格子都有一组四线三格，包括空格子。
	if n := countRole(res.Pages[1].Lines, RoleBaseline); n != 56 {
		t.Fatalf("第二页应有 56 组四线三格，实际 %d", n)
	}
}

func TestVocabularyExactFillHasNoTrailingPage(t *testing.T) {
	cfg := config.Default()
	res := mustBuild(t, cfg, Content{Entries: makeEntries(56)}, mustPrint(t, config.PageA4))
	if len(res.Pages) != 1 {
		t.Fatalf("56 个单词应正好一页，实际 %d", len(res.Pages))
	}
}

func TestVocabularyEmptyListStillOnePage(t *testing.T) {
	cfg := config.Default()
	res := mustBuild(t, cfg, Content{}, mustPrint(t, config.PageA4))
	if len(res.Pages) != 1 {
		t.Fatalf("期望 1 页，实际 %d", len(res.Pages))
	}
	if got := res.Pages[0].Cells; got.Filled != 0 || got.Empty != 56 {
		t.Fatalf("格子统计错误: %+v", got)
	}
}

func TestVocabularyTraceAndMeaning(t *testing.T) {
	cfg := config.Default()
	cfg.TraceMode = true
	entries := []vocab.Entry{{Word: "apple", Meaning: "n. 苹果"}, {Word: "bare"}}
	res := mustBuild(t, cfg, Content{Entries: entries}, mustPrint(t, config.PageA4))
	texts := res.Pages[0].Texts
	if len(texts) != 3 {
		t.Fatalf("期望 3 段文本（2 个单词 + 1 条释义），实际 %d", len(texts))
	}
	if texts[0].Color != colorTrace || texts[0].Font != FontMain {
		t.Fatalf("描红模式下单词应为浅灰主字体: %+v", texts[0])
	}
	if texts[1].Font != FontMeaning || texts[1].Color != colorMeaning || texts[1].Content != "n. 苹果" {
		t.Fatalf("释义文本错误: %+v", texts[1])
	}
	if texts[1].Y <= texts[0].Y {
		t.Fatalf("释义应位于单词下方")
	}
}

func TestVocabularyPreviewSinglePage(t *testing.T) {
	cfg := config.Default()
	res := mustBuild(t, cfg, Content{Entries: makeEntries(100)}, PreviewSurface(800, 600))
	if len(res.Pages) != 1 {
		t.Fatalf("预览不分页，实际 %d 页", len(res.Pages))
	}
	// 内容高 560px，行距 60px，可放 9 行。
	if got := res.Pages[0].Cells.Filled; got != 36 {
		t.Fatalf("期望 36 个已填格子，实际 %d", got)
	}
	if res.Pages[0].Stamp != nil {
		t.Fatalf("预览不应有页角印记")
	}
}

// TestSentencePagination：表面只能容纳 6 行时，10 行分成 6 + 4。
func TestSentencePagination(t *testing.T) {
	cfg := config.Default()
	cfg.PracticeType = config.PracticeSentence
	cfg.LineType = config.LineSolid
	cfg.ShowGuideLines = false
	cfg.LinesPerPage = 10
	s := Surface{Kind: SurfacePrint, Unit: UnitMM, Width: 100, Height: 100, Paginate: true}

	res := mustBuild(t, cfg, Content{Sentence: "The quick brown fox."}, s)
	if len(res.Pages) != 2 {
		t.Fatalf("期望 2 页，实际 %d", len(res.Pages))
	}
	if a, b := countRole(res.Pages[0].Lines, RoleRule), countRole(res.Pages[1].Lines, RoleRule); a != 6 || b != 4 {
		t.Fatalf("分页行数错误: %d + %d", a, b)
	}
	// 第二页游标重新从上边距加一个行高开始。
	if first, want := res.Pages[1].Lines[0].Y1, 14*ruleOffset+14; !approx(first, want) {
		t.Fatalf("第二页首行位置 %g，期望 %g", first, want)
	}
}

func TestSentenceSampleOnEvenLines(t *testing.T) {
	cfg := config.Default()
	cfg.PracticeType = config.PracticeSentence
	cfg.LinesPerPage = 5
	res := mustBuild(t, cfg, Content{Sentence: "hello"}, mustPrint(t, config.PageA4))
	if n := len(res.Pages[0].Texts); n != 3 {
		t.Fatalf("5 行中应有 3 行示例文字，实际 %d", n)
	}
	if n := countRole(res.Pages[0].Lines, RoleGuide); n != 5 {
		t.Fatalf("应有 5 条参考线，实际 %d", n)
	}
}

func TestSentenceEmptyTextHasNoGlyphs(t *testing.T) {
	cfg := config.Default()
	cfg.PracticeType = config.PracticeSentence
	res := mustBuild(t, cfg, Content{}, mustPrint(t, config.PageA4))
	if n := len(res.Pages[0].Texts); n != 0 {
		t.Fatalf("空文本不应产生文字，实际 %d", n)
	}
}

func TestSentenceLineStyles(t *testing.T) {
	cfg := config.Default()
	cfg.PracticeType = config.PracticeSentence
	cfg.ShowGuideLines = false
	cfg.LinesPerPage = 4
	s := mustPrint(t, config.PageA4)
	m, _ := MetricsFor(s, cfg)

	cases := []struct {
		lt    config.LineType
		dash  [][]float64
		roles int
	}{
		{config.LineSolid, [][]float64{nil, nil, nil, nil}, 4},
		{config.LineDashed, [][]float64{m.Dashed, m.Dashed, m.Dashed, m.Dashed}, 4},
		{config.LineDotted, [][]float64{m.Dotted, m.Dotted, m.Dotted, m.Dotted}, 4},
		{config.LineAlternating, [][]float64{nil, m.Dashed, nil, m.Dashed}, 4},
	}
	for _, c := range cases {
		cfg.LineType = c.lt
		res := mustBuild(t, cfg, Content{}, s)
		lines := res.Pages[0].Lines
		if len(lines) != c.roles {
			t.Fatalf("%s: 期望 %d 条线，实际 %d", c.lt, c.roles, len(lines))
		}
		for i, ln := range lines {
			if !reflect.DeepEqual(ln.Dash, c.dash[i]) {
				t.Fatalf("%s: 第 %d 条线虚线样式 %v，期望 %v", c.lt, i, ln.Dash, c.dash[i])
			}
		}
	}
}

// TestFourLineBaselineRatio：所有四线组的强调基线都位于组高 0.66 处。
func TestFourLineBaselineRatio(t *testing.T) {
	check := func(name string, lines []Line) {
		t.Helper()
		groups := 0
		for i := 0; i+3 < len(lines); i++ {
			if lines[i].Role != RoleAscender {
				continue
			}
			top, mid, base, bottom := lines[i], lines[i+1], lines[i+2], lines[i+3]
			if mid.Role != RoleMidline || base.Role != RoleBaseline || bottom.Role != RoleDescender {
				t.Fatalf("%s: 四线组顺序错误", name)
			}
			h := bottom.Y1 - top.Y1
			if !approx(base.Y1-top.Y1, h*0.66) || !approx(mid.Y1-top.Y1, h*0.33) {
				t.Fatalf("%s: 基线比例错误", name)
			}
			if base.Color != AccentColor() {
				t.Fatalf("%s: 基线应为强调色", name)
			}
			if len(mid.Dash) == 0 {
				t.Fatalf("%s: 中线应为虚线", name)
			}
			groups++
		}
		if groups == 0 {
			t.Fatalf("%s: 未找到四线组", name)
		}
	}

	vocabCfg := config.Default()
	sentenceCfg := config.Default()
	sentenceCfg.PracticeType = config.PracticeSentence
	for _, s := range []Surface{PreviewSurface(900, 700), mustPrint(t, config.PageLetter)} {
		res := mustBuild(t, vocabCfg, Content{Entries: makeEntries(3)}, s)
		check(string(s.Kind)+"/vocabulary", res.Pages[0].Lines)
		res = mustBuild(t, sentenceCfg, Content{Sentence: "abc"}, s)
		check(string(s.Kind)+"/sentence", res.Pages[0].Lines)
	}
}

func TestFourLineTextSitsOnBaseline(t *testing.T) {
	cfg := config.Default()
	cfg.PracticeType = config.PracticeSentence
	res := mustBuild(t, cfg, Content{Sentence: "abc"}, mustPrint(t, config.PageA4))
	var baseline float64
	for _, ln := range res.Pages[0].Lines {
		if ln.Role == RoleBaseline {
			baseline = ln.Y1
			break
		}
	}
	if !approx(res.Pages[0].Texts[0].Y, baseline) {
		t.Fatalf("示例文字基线 %g，期望 %g", res.Pages[0].Texts[0].Y, baseline)
	}
}

func workbookConfig(style config.WorkbookStyle, size config.GridSize) config.Config {
	cfg := config.Default()
	cfg.PracticeType = config.PracticeWorkbook
	cfg.WorkbookStyle = style
	cfg.GridSize = size
	return cfg
}

func TestWorkbookColumnsAndCentering(t *testing.T) {
	s := mustPrint(t, config.PageA4)
	cases := []struct {
		size       config.GridSize
		cols, rows int
		cell       float64
	}{
		{config.GridSmall, 15, 32, 7},
		{config.GridMedium, 10, 23, 10},
		{config.GridLarge, 7, 16, 15},
	}
	for _, c := range cases {
		res := mustBuild(t, workbookConfig(config.StyleSquare, c.size), Content{}, s)
		if len(res.Pages) != 1 {
			t.Fatalf("练习册只有一页，实际 %d", len(res.Pages))
		}
		rects := res.Pages[0].Rects
		if len(rects) != c.cols*c.rows {
			t.Fatalf("%s: 期望 %d 个格子，实际 %d", c.size, c.cols*c.rows, len(rects))
		}
		if !approx(rects[0].Width, c.cell) {
			t.Fatalf("%s: 格子边长 %g，期望 %g", c.size, rects[0].Width, c.cell)
		}
		last := rects[c.cols-1]
		leftGap := rects[0].X - s.ContentLeft()
		rightGap := s.ContentRight() - (last.X + last.Width)
		if !approx(leftGap, rightGap) {
			t.Fatalf("%s: 打印网格应水平居中，左 %g 右 %g", c.size, leftGap, rightGap)
		}
		if len(res.Pages[0].Lines) != 0 {
			t.Fatalf("square 样式不应有装饰线")
		}
	}
}

func TestWorkbookPreviewFlushLeft(t *testing.T) {
	res := mustBuild(t, workbookConfig(config.StyleSquare, config.GridMedium), Content{}, PreviewSurface(800, 600))
	rects := res.Pages[0].Rects
	if !approx(rects[0].X, previewMargin) {
		t.Fatalf("预览网格应靠左，实际 x=%g", rects[0].X)
	}
	if rects[1].Y != rects[0].Y || rects[9].Y != rects[0].Y || rects[10].Y == rects[0].Y {
		t.Fatalf("预览网格应为每行 10 列")
	}
}

func TestWorkbookDecorations(t *testing.T) {
	s := mustPrint(t, config.PageA4)
	cases := []struct {
		style   config.WorkbookStyle
		perCell int
		dashed  bool
	}{
		{config.StyleTianzige, 2, true},
		{config.StyleMizi, 4, true},
		{config.StylePinyin, 4, false},
	}
	red, _ := PaletteColor(config.ColorRed)
	for _, c := range cases {
		cfg := workbookConfig(c.style, config.GridMedium)
		cfg.GridColor = config.ColorRed
		res := mustBuild(t, cfg, Content{}, s)
		page := res.Pages[0]
		if len(page.Lines) != c.perCell*len(page.Rects) {
			t.Fatalf("%s: 每格应有 %d 条装饰线，实际共 %d 条 / %d 格", c.style, c.perCell, len(page.Lines), len(page.Rects))
		}
		if got := len(page.Lines[0].Dash) > 0; got != c.dashed {
			t.Fatalf("%s: 装饰线虚线属性错误", c.style)
		}
		if page.Rects[0].StrokeColor != red {
			t.Fatalf("%s: 格子外框应使用 gridColor", c.style)
		}
		for _, ln := range page.Lines {
			if ln.Color != red {
				t.Fatalf("%s: 装饰线颜色 %v，应与 gridColor %v 一致", c.style, ln.Color, red)
			}
			if !(ln.Width < page.Rects[0].StrokeWidth) {
				t.Fatalf("%s: 装饰线应比外框细", c.style)
			}
		}
	}

	res := mustBuild(t, workbookConfig(config.StylePinyin, config.GridMedium), Content{}, s)
	cell := res.Pages[0].Rects[0]
	lines := res.Pages[0].Lines[:4]
	if !approx(lines[0].Y1-cell.Y, cell.Height*0.25) || !approx(lines[3].Y1-cell.Y, cell.Height*0.75) {
		t.Fatalf("拼音格四线应位于格子中部 50%%")
	}
	if !(lines[0].X1 > cell.X) || !(lines[0].X2 < cell.X+cell.Width) {
		t.Fatalf("拼音格横线应左右内缩")
	}
}

func TestWorkbookStaff(t *testing.T) {
	cfg := workbookConfig(config.StyleStaff, config.GridMedium)
	cfg.GridColor = config.ColorBlue
	res := mustBuild(t, cfg, Content{}, mustPrint(t, config.PageA4))
	page := res.Pages[0]
	// 可用高度 257mm，每组 10mm 加 10mm 间距，共 12 组。
	if n := countRole(page.Lines, RoleStaff); n != 12*5 {
		t.Fatalf("期望 60 条谱线，实际 %d", n)
	}
	if n := countRole(page.Lines, RoleStaffBar); n != 12*2 {
		t.Fatalf("期望 24 条竖线，实际 %d", n)
	}
	blue, _ := PaletteColor(config.ColorBlue)
	if page.Lines[0].Color != blue {
		t.Fatalf("谱线颜色应使用 gridColor")
	}
}

func TestWorkbookDefaults(t *testing.T) {
	cfg := workbookConfig("", "")
	cfg.GridColor = ""
	res := mustBuild(t, cfg, Content{}, mustPrint(t, config.PageA4))
	if n := len(res.Pages[0].Rects); n != 10*23 {
		t.Fatalf("默认应为中号田字格，实际 %d 格", n)
	}
}

func TestUnknownVariants(t *testing.T) {
	s := mustPrint(t, config.PageA4)

	cfg := config.Default()
	cfg.PracticeType = config.PracticeSentence
	cfg.LineType = "wavy"
	if _, err := Build(cfg, Content{}, s); !errors.Is(err, ErrUnknownVariant) {
		t.Fatalf("未知横线样式应返回 ErrUnknownVariant，实际 %v", err)
	}

	cfg = workbookConfig(config.StyleTianzige, "huge")
	if _, err := Build(cfg, Content{}, s); !errors.Is(err, ErrUnknownVariant) {
		t.Fatalf("未知格子大小应返回 ErrUnknownVariant，实际 %v", err)
	}

	cfg = workbookConfig("hexagon", config.GridSmall)
	if _, err := Build(cfg, Content{}, s); !errors.Is(err, ErrUnknownVariant) {
		t.Fatalf("未知练习册样式应返回 ErrUnknownVariant，实际 %v", err)
	}

	cfg = config.Default()
	cfg.PracticeType = "essay"
	if _, err := Build(cfg, Content{}, s); !errors.Is(err, ErrUnknownVariant) {
		t.Fatalf("未知练习类型应返回 ErrUnknownVariant，实际 %v", err)
	}

	if _, err := PrintSurface("A3"); !errors.Is(err, ErrUnknownVariant) {
		t.Fatalf("未知纸张应返回 ErrUnknownVariant，实际 %v", err)
	}
	if _, err := PaletteColor("purple"); !errors.Is(err, ErrUnknownVariant) {
		t.Fatalf("未知颜色应返回 ErrUnknownVariant，实际 %v", err)
	}
}

func TestInvalidSurface(t *testing.T) {
	if _, err := Build(config.Default(), Content{}, PreviewSurface(0, 100)); err == nil {
		t.Fatalf("零宽表面应报错")
	}
}

func TestBuildDeterministic(t *testing.T) {
	cfg := config.Default()
	cfg.Text = "apple n. 苹果\nbanana n. 香蕉\n"
	content := ContentFor(cfg)
	s := mustPrint(t, config.PageA4)
	a := mustBuild(t, cfg, content, s)
	b := mustBuild(t, cfg, content, s)
	if !reflect.DeepEqual(a, b) {
		t.Fatalf("相同输入应得到相同结果")
	}
}

func TestStamps(t *testing.T) {
	cfg := config.Default()
	s := mustPrint(t, config.PageA4)
	res := mustBuild(t, cfg, Content{Entries: makeEntries(60)}, s)
	for i, want := range []string{"copybook · 1/2", "copybook · 2/2"} {
		st := res.Pages[i].Stamp
		if st == nil || st.Content != want {
			t.Fatalf("第 %d 页印记错误: %+v", i+1, st)
		}
		if st.Align != "right" || !approx(st.X, s.Width-s.Margin.Right) {
			t.Fatalf("印记应右对齐到右边距: %+v", st)
		}
	}

	cfg.Stamp = "${type}"
	res = mustBuild(t, cfg, Content{}, s)
	if got := res.Pages[0].Stamp.Content; got != "vocabulary" {
		t.Fatalf("自定义印记错误: %q", got)
	}
}

func TestContentFor(t *testing.T) {
	cfg := config.Default()
	cfg.Text = "apple n. 苹果"
	if c := ContentFor(cfg); len(c.Entries) != 1 || c.Sentence != "" {
		t.Fatalf("单词模式内容错误: %+v", c)
	}
	cfg.PracticeType = config.PracticeSentence
	if c := ContentFor(cfg); c.Sentence != cfg.Text || c.Entries != nil {
		t.Fatalf("句子模式内容错误: %+v", c)
	}
	cfg.PracticeType = config.PracticeWorkbook
	if c := ContentFor(cfg); c.Sentence != "" || c.Entries != nil {
		t.Fatalf("练习册模式不应有内容: %+v", c)
	}
}

func TestWriteDebugJSON(t *testing.T) {
	res := mustBuild(t, config.Default(), Content{Entries: makeEntries(2)}, mustPrint(t, config.PageA4))
	path := filepath.Join(t.TempDir(), "layout.json")
	if err := WriteDebugJSON(res, path); err != nil {
		t.Fatalf("写入调试 JSON 失败: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil || len(data) == 0 {
		t.Fatalf("调试 JSON 为空: %v", err)
	}
}
