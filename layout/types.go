package layout

// 该文件定义布局结果与绘制图元，供布局计算、两个渲染器与调试 JSON 共用。
// 所有坐标都使用所属 Surface 的单位（预览为 px，打印为 mm），原点在左上角。

// Result 保存一次布局的全部页面。
type Result struct {
	Surface Surface      `json:"surface"`
	Pages   []Page       `json:"pages"`
	Meta    DocumentMeta `json:"meta"`
}

// Color 采用 0-255 的 RGB 数值。
type Color struct {
	R int `json:"r"`
	G int `json:"g"`
	B int `json:"b"`
}

// Margin 与 Surface 同单位。
type Margin struct {
	Top    float64 `json:"top"`
	Right  float64 `json:"right"`
	Bottom float64 `json:"bottom"`
	Left   float64 `json:"left"`
}

// Page 记录页面尺寸与可以直接渲染的图元。
type Page struct {
	Index      int       `json:"index"`
	Width      float64   `json:"width"`
	Height     float64   `json:"height"`
	Margin     Margin    `json:"margin"`
	Background *Color    `json:"background,omitempty"`
	Lines      []Line    `json:"lines,omitempty"`
	Rects      []Rect    `json:"rects,omitempty"`
	Texts      []Text    `json:"texts,omitempty"`
	Stamp      *Text     `json:"stamp,omitempty"`
	Cells      CellStats `json:"cells"`
}

// CellStats 统计单词表页面中已填写与空白的格子数。
type CellStats struct {
	Filled int `json:"filled"`
	Empty  int `json:"empty"`
}

// LineRole 标记线段在版面中的语义，渲染器不关心，测试与调试会用到。
type LineRole string

const (
	RoleGuide      LineRole = "guide"
	RoleRule       LineRole = "rule"
	RoleAscender   LineRole = "ascender"
	RoleMidline    LineRole = "midline"
	RoleBaseline   LineRole = "baseline"
	RoleDescender  LineRole = "descender"
	RoleStaff      LineRole = "staff"
	RoleStaffBar   LineRole = "staff-bar"
	RoleDecoration LineRole = "decoration"
)

// Line 表示一条线段；Dash 为空表示实线，否则为 [实, 空, ...] 交替长度。
type Line struct {
	X1    float64   `json:"x1"`
	Y1    float64   `json:"y1"`
	X2    float64   `json:"x2"`
	Y2    float64   `json:"y2"`
	Color Color     `json:"color"`
	Width float64   `json:"width"`
	Dash  []float64 `json:"dash,omitempty"`
	Role  LineRole  `json:"role"`
}

// Rect 表示一个只描边的矩形（格子外框）。
type Rect struct {
	X           float64 `json:"x"`
	Y           float64 `json:"y"`
	Width       float64 `json:"width"`
	Height      float64 `json:"height"`
	StrokeColor Color   `json:"strokeColor"`
	StrokeWidth float64 `json:"strokeWidth"`
}

// FontRole 是逻辑字体，渲染器据此选择实际字体。
type FontRole string

const (
	FontMain    FontRole = "main"    // 主文本（英文单词、例句）
	FontMeaning FontRole = "meaning" // 释义，通常包含中文
	FontStamp   FontRole = "stamp"   // 页角印记
)

// Text 是一段放在基线上的单行文本。
// MaxWidth > 0 时渲染器会在文本过宽时等比缩小字号。
type Text struct {
	Content  string   `json:"content"`
	X        float64  `json:"x"`
	Y        float64  `json:"y"` // 基线
	Size     float64  `json:"size"`
	Font     FontRole `json:"font"`
	Color    Color    `json:"color"`
	Align    string   `json:"align,omitempty"` // left（默认）/center/right
	MaxWidth float64  `json:"maxWidth,omitempty"`
}

// DocumentMeta 保存 PDF 元信息。
type DocumentMeta struct {
	Title   string `json:"title"`
	Subject string `json:"subject"`
	Creator string `json:"creator"`
}
