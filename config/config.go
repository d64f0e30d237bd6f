package config

import (
	"errors"
	"fmt"
	"strings"
)

// ErrEmptyText 表示句子/单词模式在生成前缺少文本内容。
var ErrEmptyText = errors.New("请先生成或输入内容")

// PracticeType 选择布局算法。
type PracticeType string

const (
	PracticeSentence   PracticeType = "sentence"
	PracticeVocabulary PracticeType = "vocabulary"
	PracticeWorkbook   PracticeType = "workbook"
)

// LineType 是句子模式的横线样式。
type LineType string

const (
	LineSolid       LineType = "solid"
	LineDashed      LineType = "dashed"
	LineDotted      LineType = "dotted"
	LineAlternating LineType = "alternating"
	LineFourLines   LineType = "four-lines"
)

// WorkbookStyle 决定练习册格子的内部装饰。
type WorkbookStyle string

const (
	StyleTianzige WorkbookStyle = "tianzige"
	StyleMizi     WorkbookStyle = "mizi"
	StylePinyin   WorkbookStyle = "pinyin"
	StyleSquare   WorkbookStyle = "square"
	StyleStaff    WorkbookStyle = "staff"
)

// GridSize 决定练习册格子的物理尺寸与列数。
type GridSize string

const (
	GridSmall  GridSize = "small"
	GridMedium GridSize = "medium"
	GridLarge  GridSize = "large"
)

// Color 是练习册固定调色板中的颜色名。
type Color string

const (
	ColorBlack Color = "black"
	ColorGray  Color = "gray"
	ColorBlue  Color = "blue"
	ColorRed   Color = "red"
)

// PageSize 是打印纸张规格。
type PageSize string

const (
	PageA4     PageSize = "A4"
	PageLetter PageSize = "Letter"
)

func (p PracticeType) Valid() bool {
	switch p {
	case PracticeSentence, PracticeVocabulary, PracticeWorkbook:
		return true
	}
	return false
}

func (l LineType) Valid() bool {
	switch l {
	case LineSolid, LineDashed, LineDotted, LineAlternating, LineFourLines:
		return true
	}
	return false
}

func (s WorkbookStyle) Valid() bool {
	switch s {
	case StyleTianzige, StyleMizi, StylePinyin, StyleSquare, StyleStaff:
		return true
	}
	return false
}

func (g GridSize) Valid() bool {
	switch g {
	case GridSmall, GridMedium, GridLarge:
		return true
	}
	return false
}

func (c Color) Valid() bool {
	switch c {
	case ColorBlack, ColorGray, ColorBlue, ColorRed:
		return true
	}
	return false
}

func (p PageSize) Valid() bool {
	switch p {
	case PageA4, PageLetter:
		return true
	}
	return false
}

// Config 是一次渲染所需的全部参数。调用方按值传入，布局阶段不会保留它。
// 字号与行高均以界面像素为单位。
type Config struct {
	Text           string       `yaml:"text"`
	FontSize       float64      `yaml:"fontSize"`
	LineHeight     float64      `yaml:"lineHeight"`
	LineType       LineType     `yaml:"lineType"`
	ShowGuideLines bool         `yaml:"showGuideLines"`
	LinesPerPage   int          `yaml:"linesPerPage"`
	FontFamily     string       `yaml:"fontFamily"`
	PageSize       PageSize     `yaml:"pageSize"`
	PracticeType   PracticeType `yaml:"practiceType"`
	GridCols       int          `yaml:"gridCols"`
	GridRows       int          `yaml:"gridRows"`
	TraceMode      bool         `yaml:"traceMode"`

	// 以下字段仅在练习册模式下生效，可以为空。
	WorkbookStyle WorkbookStyle `yaml:"workbookStyle,omitempty"`
	GridSize      GridSize      `yaml:"gridSize,omitempty"`
	GridColor     Color         `yaml:"gridColor,omitempty"`
	TextColor     Color         `yaml:"textColor,omitempty"`

	// Stamp 是每页角落的印记模板，支持 ${page}/${pages}/${type}。
	Stamp string `yaml:"stamp,omitempty"`
}

// DefaultStamp 是未指定 Stamp 时使用的模板。
const DefaultStamp = "copybook · ${page}/${pages}"

// Default 返回与网页版一致的默认配置。
func Default() Config {
	return Config{
		FontSize:       18,
		LineHeight:     40,
		LineType:       LineFourLines,
		ShowGuideLines: true,
		LinesPerPage:   10,
		FontFamily:     "Hengshui",
		PageSize:       PageA4,
		PracticeType:   PracticeVocabulary,
		GridCols:       4,
		GridRows:       14,
		WorkbookStyle:  StyleTianzige,
		GridSize:       GridMedium,
		GridColor:      ColorBlack,
		TextColor:      ColorBlack,
		Stamp:          DefaultStamp,
	}
}

// Validate 只校验当前练习类型实际使用的字段，未启用的字段保持原样。
func (c Config) Validate() error {
	if !c.PracticeType.Valid() {
		return fmt.Errorf("未知的练习类型：%q", c.PracticeType)
	}
	if c.FontSize <= 0 {
		return fmt.Errorf("fontSize 必须为正数，实际 %g", c.FontSize)
	}
	if c.LineHeight <= 0 {
		return fmt.Errorf("lineHeight 必须为正数，实际 %g", c.LineHeight)
	}
	if !c.PageSize.Valid() {
		return fmt.Errorf("暂不支持的纸张尺寸：%q", c.PageSize)
	}
	switch c.PracticeType {
	case PracticeSentence:
		if !c.LineType.Valid() {
			return fmt.Errorf("未知的横线样式：%q", c.LineType)
		}
		if c.LinesPerPage <= 0 {
			return fmt.Errorf("linesPerPage 必须为正整数，实际 %d", c.LinesPerPage)
		}
	case PracticeVocabulary:
		if c.GridCols <= 0 || c.GridRows <= 0 {
			return fmt.Errorf("gridCols/gridRows 必须为正整数，实际 %dx%d", c.GridCols, c.GridRows)
		}
	case PracticeWorkbook:
		if c.WorkbookStyle != "" && !c.WorkbookStyle.Valid() {
			return fmt.Errorf("未知的练习册样式：%q", c.WorkbookStyle)
		}
		if c.GridSize != "" && !c.GridSize.Valid() {
			return fmt.Errorf("未知的格子大小：%q", c.GridSize)
		}
		if c.GridColor != "" && !c.GridColor.Valid() {
			return fmt.Errorf("未知的格子颜色：%q", c.GridColor)
		}
		if c.TextColor != "" && !c.TextColor.Valid() {
			return fmt.Errorf("未知的文字颜色：%q", c.TextColor)
		}
	}
	return nil
}

// CheckPrintable 是导出前的前置检查：练习册以外的模式必须有文本。
func (c Config) CheckPrintable() error {
	if c.PracticeType == PracticeWorkbook {
		return nil
	}
	if strings.TrimSpace(c.Text) == "" {
		return ErrEmptyText
	}
	return nil
}

// Workbook 返回练习册相关字段，空值取默认。
func (c Config) Workbook() (WorkbookStyle, GridSize, Color) {
	style, size, col := c.WorkbookStyle, c.GridSize, c.GridColor
	if style == "" {
		style = StyleTianzige
	}
	if size == "" {
		size = GridMedium
	}
	if col == "" {
		col = ColorBlack
	}
	return style, size, col
}
