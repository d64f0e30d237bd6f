package canvasrenderer

import (
	"bytes"
	"fmt"
	"image/color"
	"strings"
	"sync"

	"github.com/tdewolff/canvas"
	"github.com/tdewolff/canvas/renderers/pdf"

	"github.com/ByLCY/copybook/fonts"
	"github.com/ByLCY/copybook/layout"
	"github.com/ByLCY/copybook/renderer"
)

const defaultStrokeWidth = 0.2

// Renderer draws layout results into a PDF via github.com/tdewolff/canvas.
// Coordinates are converted to millimetres, whatever unit the surface uses.
type Renderer struct {
	fontBlobs map[layout.FontRole][]byte

	fontMu       sync.Mutex
	fontFamilies map[layout.FontRole]*canvas.FontFamily
}

var _ renderer.Renderer = (*Renderer)(nil)

// Options configures the canvas renderer.
type Options struct {
	Fonts map[layout.FontRole][]byte // 每个逻辑字体对应的字体数据
}

// NewRenderer creates a renderer that only uses the embedded fallback fonts.
func NewRenderer() *Renderer { return NewRendererWithOptions(Options{}) }

// NewRendererWithOptions creates a renderer with injected fonts.
func NewRendererWithOptions(opts Options) *Renderer {
	r := &Renderer{
		fontBlobs:    map[layout.FontRole][]byte{},
		fontFamilies: map[layout.FontRole]*canvas.FontFamily{},
	}
	for role, data := range opts.Fonts {
		if len(data) > 0 {
			r.fontBlobs[role] = data
		}
	}
	return r
}

// Render renders the result into a PDF byte slice. 任一页出错都不会产生输出。
func (r *Renderer) Render(result *layout.Result) ([]byte, error) {
	if result == nil {
		return nil, fmt.Errorf("渲染结果为空")
	}
	if len(result.Pages) == 0 {
		return nil, fmt.Errorf("缺少可渲染的页面")
	}
	scale := layout.Length{Value: 1, Unit: result.Surface.Unit}.ToMM()

	var buf bytes.Buffer
	first := result.Pages[0]
	writer := pdf.New(&buf, first.Width*scale, first.Height*scale, nil)
	writer.SetInfo(result.Meta.Title, result.Meta.Subject, "", "", result.Meta.Creator)
	for i, page := range result.Pages {
		w, h := page.Width*scale, page.Height*scale
		if i > 0 {
			writer.NewPage(w, h)
		}
		c := canvas.New(w, h)
		ctx := canvas.NewContext(c)
		ctx.SetCoordSystem(canvas.CartesianIV) // 使坐标与布局保持左上角为原点

		if err := r.drawPage(ctx, page, scale); err != nil {
			return nil, fmt.Errorf("绘制第 %d 页失败: %w", i+1, err)
		}
		c.RenderTo(writer)
	}

	if err := writer.Close(); err != nil {
		return nil, fmt.Errorf("写入 PDF 失败: %w", err)
	}
	return buf.Bytes(), nil
}

func (r *Renderer) drawPage(ctx *canvas.Context, page layout.Page, scale float64) error {
	if page.Background != nil {
		ctx.SetStrokeColor(color.RGBA{0, 0, 0, 0})
		ctx.SetFillColor(colorFromLayout(*page.Background))
		ctx.DrawPath(0, 0, canvas.Rectangle(page.Width*scale, page.Height*scale))
	}
	r.drawRects(ctx, page.Rects, scale)
	r.drawLines(ctx, page.Lines, scale)
	for _, tx := range page.Texts {
		if err := r.drawText(ctx, tx, scale); err != nil {
			return err
		}
	}
	if page.Stamp != nil {
		if err := r.drawText(ctx, *page.Stamp, scale); err != nil {
			return err
		}
	}
	return nil
}

// drawLines 绘制直线列表，Dash 非空时使用虚线。
func (r *Renderer) drawLines(ctx *canvas.Context, lines []layout.Line, scale float64) {
	ctx.SetFillColor(color.RGBA{0, 0, 0, 0})
	for _, ln := range lines {
		w := ln.Width * scale
		if w <= 0 {
			w = defaultStrokeWidth
		}
		ctx.SetStrokeColor(colorFromLayout(ln.Color))
		ctx.SetStrokeWidth(w)
		if len(ln.Dash) > 0 {
			dashes := make([]float64, len(ln.Dash))
			for i, d := range ln.Dash {
				dashes[i] = d * scale
			}
			ctx.SetDashes(0, dashes...)
		} else {
			ctx.SetDashes(0)
		}
		p := &canvas.Path{}
		p.MoveTo(0, 0)
		p.LineTo((ln.X2-ln.X1)*scale, (ln.Y2-ln.Y1)*scale)
		ctx.DrawPath(ln.X1*scale, ln.Y1*scale, p)
	}
	ctx.SetDashes(0)
}

// drawRects 绘制只描边的矩形
func (r *Renderer) drawRects(ctx *canvas.Context, rects []layout.Rect, scale float64) {
	ctx.SetDashes(0)
	for _, rc := range rects {
		w := rc.StrokeWidth * scale
		if w <= 0 {
			w = defaultStrokeWidth
		}
		ctx.SetFillColor(color.RGBA{0, 0, 0, 0})
		ctx.SetStrokeColor(colorFromLayout(rc.StrokeColor))
		ctx.SetStrokeWidth(w)
		ctx.DrawPath(rc.X*scale, rc.Y*scale, canvas.Rectangle(rc.Width*scale, rc.Height*scale))
	}
}

// drawText 在基线上绘制单行文本；超过 MaxWidth 时等比缩小字号。
func (r *Renderer) drawText(ctx *canvas.Context, tx layout.Text, scale float64) error {
	if tx.Content == "" {
		return nil
	}
	sizeMM := tx.Size * scale
	face, err := r.fontFace(tx.Font, toPt(sizeMM), tx.Color)
	if err != nil {
		return err
	}
	if limit := tx.MaxWidth * scale; limit > 0 {
		if width := face.TextWidth(tx.Content); width > limit {
			face, err = r.fontFace(tx.Font, toPt(sizeMM*limit/width), tx.Color)
			if err != nil {
				return err
			}
		}
	}

	var align canvas.TextAlign
	switch strings.ToLower(tx.Align) {
	case "center":
		align = canvas.Center
	case "right", "end":
		align = canvas.Right
	default:
		align = canvas.Left
	}
	ctx.DrawText(tx.X*scale, tx.Y*scale, canvas.NewTextLine(face, tx.Content, align))
	return nil
}

func (r *Renderer) fontFace(role layout.FontRole, sizePt float64, col layout.Color) (*canvas.FontFace, error) {
	family, err := r.ensureFontFamily(role)
	if err != nil {
		return nil, err
	}
	return family.Face(sizePt, colorFromLayout(col), canvas.FontRegular, canvas.FontNormal), nil
}

// ensureFontFamily 按逻辑字体加载字体族；注入的字体无法解析时退回内置字体。
func (r *Renderer) ensureFontFamily(role layout.FontRole) (*canvas.FontFamily, error) {
	r.fontMu.Lock()
	defer r.fontMu.Unlock()

	if family, ok := r.fontFamilies[role]; ok {
		return family, nil
	}
	if data, ok := r.fontBlobs[role]; ok {
		family := canvas.NewFontFamily(string(role))
		if err := family.LoadFont(data, 0, canvas.FontRegular); err == nil {
			r.fontFamilies[role] = family
			return family, nil
		}
	}
	family := canvas.NewFontFamily("copybook-fallback-" + string(role))
	if err := family.LoadFont(fallbackFor(role), 0, canvas.FontRegular); err != nil {
		return nil, fmt.Errorf("加载兜底字体失败: %w", err)
	}
	r.fontFamilies[role] = family
	return family, nil
}

func fallbackFor(role layout.FontRole) []byte {
	if role == layout.FontStamp {
		return fonts.Mono()
	}
	return fonts.Regular()
}

func colorFromLayout(c layout.Color) color.Color {
	return canvas.RGBA(float64(c.R)/255.0, float64(c.G)/255.0, float64(c.B)/255.0, 1.0)
}

// toPt 将毫米(mm)转换为点(pt)。
func toPt(mm float64) float64 { return mm * layout.MmToPt }
