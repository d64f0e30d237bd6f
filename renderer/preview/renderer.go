// Package preview 用 gogpu/gg 软件光栅化布局结果，输出 PNG 预览图。
// 每次 Render 都从空白画布完整重绘，不保留上一次的像素。
package preview

import (
	"bytes"
	"fmt"
	"math"
	"strings"
	"sync"

	"github.com/gogpu/gg"
	"github.com/gogpu/gg/text"

	"github.com/ByLCY/copybook/fonts"
	"github.com/ByLCY/copybook/layout"
	"github.com/ByLCY/copybook/renderer"
)

// Options 配置预览渲染器。
type Options struct {
	// Fonts 为逻辑字体提供字体文件数据；缺失或无法解析时使用内置字体。
	Fonts map[layout.FontRole][]byte
	// Scale 是每个表面单位对应的像素数；0 表示 px 表面按 1:1、mm 表面按 1/0.35 换算。
	Scale float64
}

// Renderer 把布局结果绘制为 PNG。
type Renderer struct {
	opts Options

	mu      sync.Mutex
	sources map[layout.FontRole]*text.FontSource
}

var _ renderer.Renderer = (*Renderer)(nil)

func NewRenderer(opts Options) *Renderer {
	return &Renderer{opts: opts, sources: map[layout.FontRole]*text.FontSource{}}
}

// Render 只绘制第一页，预览表面本来就只有一页。
func (r *Renderer) Render(result *layout.Result) ([]byte, error) {
	if result == nil || len(result.Pages) == 0 {
		return nil, fmt.Errorf("缺少可渲染的页面")
	}
	scale := r.scaleFor(result.Surface.Unit)
	page := result.Pages[0]
	w, h := int(math.Ceil(page.Width*scale)), int(math.Ceil(page.Height*scale))
	if w <= 0 || h <= 0 {
		return nil, fmt.Errorf("页面尺寸无效 %dx%d", w, h)
	}

	dc := gg.NewContext(w, h)
	defer dc.Close()

	bg := gg.RGB(1, 1, 1)
	if page.Background != nil {
		bg = rgb(*page.Background)
	}
	dc.ClearWithColor(bg)

	for _, rc := range page.Rects {
		dc.ClearDash()
		dc.SetColor(rgb(rc.StrokeColor).Color())
		dc.SetLineWidth(math.Max(rc.StrokeWidth*scale, 1))
		dc.DrawRectangle(rc.X*scale, rc.Y*scale, rc.Width*scale, rc.Height*scale)
		if err := dc.Stroke(); err != nil {
			return nil, fmt.Errorf("绘制格子失败: %w", err)
		}
	}
	for _, ln := range page.Lines {
		if len(ln.Dash) > 0 {
			dash := make([]float64, len(ln.Dash))
			for i, d := range ln.Dash {
				dash[i] = d * scale
			}
			dc.SetDash(dash...)
		} else {
			dc.ClearDash()
		}
		dc.SetColor(rgb(ln.Color).Color())
		dc.SetLineWidth(math.Max(ln.Width*scale, 0.5))
		dc.DrawLine(ln.X1*scale, ln.Y1*scale, ln.X2*scale, ln.Y2*scale)
		if err := dc.Stroke(); err != nil {
			return nil, fmt.Errorf("绘制线条失败: %w", err)
		}
	}
	dc.ClearDash()

	texts := page.Texts
	if page.Stamp != nil {
		texts = append(texts[:len(texts):len(texts)], *page.Stamp)
	}
	for _, tx := range texts {
		if err := r.drawText(dc, tx, scale); err != nil {
			return nil, err
		}
	}

	var buf bytes.Buffer
	if err := dc.EncodePNG(&buf); err != nil {
		return nil, fmt.Errorf("编码 PNG 失败: %w", err)
	}
	return buf.Bytes(), nil
}

func (r *Renderer) scaleFor(u layout.Unit) float64 {
	if r.opts.Scale > 0 {
		return r.opts.Scale
	}
	return layout.Length{Value: 1, Unit: u}.To(layout.UnitPX)
}

func (r *Renderer) drawText(dc *gg.Context, tx layout.Text, scale float64) error {
	if tx.Content == "" {
		return nil
	}
	src, err := r.source(tx.Font)
	if err != nil {
		return err
	}
	size := tx.Size * scale
	dc.SetFont(src.Face(size))
	width, _ := dc.MeasureString(tx.Content)
	if limit := tx.MaxWidth * scale; limit > 0 && width > limit {
		size *= limit / width
		dc.SetFont(src.Face(size))
		width, _ = dc.MeasureString(tx.Content)
	}

	x := tx.X * scale
	switch strings.ToLower(tx.Align) {
	case "center":
		x -= width / 2
	case "right", "end":
		x -= width
	}
	dc.SetColor(rgb(tx.Color).Color())
	dc.DrawString(tx.Content, x, tx.Y*scale)
	return nil
}

// source 返回逻辑字体对应的字体源，解析结果在渲染器内复用。
func (r *Renderer) source(role layout.FontRole) (*text.FontSource, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if src, ok := r.sources[role]; ok {
		return src, nil
	}
	if data := r.opts.Fonts[role]; len(data) > 0 {
		if src, err := text.NewFontSource(data); err == nil {
			r.sources[role] = src
			return src, nil
		}
	}
	fallback := fonts.Regular()
	if role == layout.FontStamp {
		fallback = fonts.Mono()
	}
	src, err := text.NewFontSource(fallback)
	if err != nil {
		return nil, fmt.Errorf("加载兜底字体失败: %w", err)
	}
	r.sources[role] = src
	return src, nil
}

// Close 释放已解析的字体源。
func (r *Renderer) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for role, src := range r.sources {
		_ = src.Close()
		delete(r.sources, role)
	}
	return nil
}

func rgb(c layout.Color) gg.RGBA {
	return gg.RGB(float64(c.R)/255, float64(c.G)/255, float64(c.B)/255)
}
