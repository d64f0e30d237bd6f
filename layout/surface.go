package layout

import (
	"errors"
	"fmt"

	"github.com/ByLCY/copybook/config"
)

// ErrUnknownVariant 表示配置中出现了布局不认识的枚举值。
var ErrUnknownVariant = errors.New("layout: 未知的枚举值")

// SurfaceKind 区分两种输出表面。
type SurfaceKind string

const (
	SurfacePreview SurfaceKind = "preview"
	SurfacePrint   SurfaceKind = "print"
)

// Surface 描述布局的目标表面：单位、边界与是否分页。
type Surface struct {
	Kind     SurfaceKind `json:"kind"`
	Unit     Unit        `json:"unit"`
	Width    float64     `json:"width"`
	Height   float64     `json:"height"`
	Margin   Margin      `json:"margin"`
	Paginate bool        `json:"paginate"`
}

const (
	previewMargin = 20.0 // px
	printMargin   = 20.0 // mm
)

var pagePresets = map[config.PageSize][2]float64{
	config.PageA4:     {210, 297},
	config.PageLetter: {215.9, 279.4},
}

// PreviewSurface 返回视口大小的单页像素表面。
func PreviewSurface(width, height float64) Surface {
	m := previewMargin
	return Surface{
		Kind:   SurfacePreview,
		Unit:   UnitPX,
		Width:  width,
		Height: height,
		Margin: Margin{Top: m, Right: m, Bottom: m, Left: m},
	}
}

// PrintSurface 返回纸张大小的毫米表面，四边 20mm 边距，内容溢出时分页。
func PrintSurface(size config.PageSize) (Surface, error) {
	dim, ok := pagePresets[size]
	if !ok {
		return Surface{}, fmt.Errorf("%w: 纸张尺寸 %q", ErrUnknownVariant, size)
	}
	m := printMargin
	return Surface{
		Kind:     SurfacePrint,
		Unit:     UnitMM,
		Width:    dim[0],
		Height:   dim[1],
		Margin:   Margin{Top: m, Right: m, Bottom: m, Left: m},
		Paginate: true,
	}, nil
}

func (s Surface) ContentLeft() float64   { return s.Margin.Left }
func (s Surface) ContentRight() float64  { return s.Width - s.Margin.Right }
func (s Surface) ContentTop() float64    { return s.Margin.Top }
func (s Surface) ContentBottom() float64 { return s.Height - s.Margin.Bottom }
func (s Surface) ContentWidth() float64  { return s.ContentRight() - s.ContentLeft() }
func (s Surface) ContentHeight() float64 { return s.ContentBottom() - s.ContentTop() }
