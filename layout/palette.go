package layout

import (
	"fmt"

	"github.com/ByLCY/copybook/config"
)

// 固定配色，两个表面共用。
var (
	colorBackground = Color{R: 240, G: 253, B: 244} // #f0fdf4
	colorGuide      = Color{R: 210, G: 210, B: 210}
	colorRule       = Color{R: 100, G: 100, B: 100}
	colorAccent     = Color{R: 82, G: 196, B: 26} // 四线三格的基线
	colorSample     = Color{R: 180, G: 180, B: 180}
	colorWord       = Color{R: 0, G: 0, B: 0}
	colorTrace      = Color{R: 200, G: 200, B: 200}
	colorMeaning    = Color{R: 22, G: 163, B: 74}
	colorStamp      = Color{R: 150, G: 150, B: 150}
)

// PaletteColor 把练习册的颜色名映射到 RGB。
func PaletteColor(c config.Color) (Color, error) {
	switch c {
	case config.ColorBlack:
		return Color{R: 0, G: 0, B: 0}, nil
	case config.ColorGray:
		return Color{R: 128, G: 128, B: 128}, nil
	case config.ColorBlue:
		return Color{R: 0, G: 0, B: 255}, nil
	case config.ColorRed:
		return Color{R: 255, G: 0, B: 0}, nil
	default:
		return Color{}, fmt.Errorf("%w: 颜色 %q", ErrUnknownVariant, c)
	}
}

// AccentColor 返回四线三格基线的强调色。
func AccentColor() Color { return colorAccent }
