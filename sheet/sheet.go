// Package sheet 串起配置、字体、布局与渲染，对外提供预览、导出 PDF 与选词三个入口。
package sheet

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/ByLCY/copybook/config"
	"github.com/ByLCY/copybook/fonts"
	"github.com/ByLCY/copybook/layout"
	canvasrenderer "github.com/ByLCY/copybook/renderer/canvas"
	"github.com/ByLCY/copybook/renderer/preview"
	"github.com/ByLCY/copybook/vocab"
)

var (
	// ErrRender 表示 PDF 生成失败，此时不会向输出写入任何内容。
	ErrRender = errors.New("生成 PDF 失败，请稍后重试")
	// ErrEmptyDictionary 表示词库为空或无法读取。
	ErrEmptyDictionary = errors.New("词库为空")
)

// Generator 持有跨调用共享的资源。零值可用：字体缓存默认为 fonts.Shared。
type Generator struct {
	Fonts   *fonts.Cache
	Assets  []fonts.Asset
	Fetcher vocab.Fetcher
	Logger  *slog.Logger
}

// Report 描述一次导出的结果。
type Report struct {
	Pages        int      `json:"pages"`
	Bytes        int      `json:"bytes"`
	MissingFonts []string `json:"missingFonts,omitempty"`
}

func (g *Generator) logger() *slog.Logger {
	if g.Logger != nil {
		return g.Logger
	}
	return slog.Default()
}

func (g *Generator) cache() *fonts.Cache {
	if g.Fonts != nil {
		return g.Fonts
	}
	return fonts.Shared
}

// assetsFor 返回当前配置需要的字体：fontFamily 指定的主字体与释义字体。
func (g *Generator) assetsFor(cfg config.Config) map[layout.FontRole]fonts.Asset {
	out := map[layout.FontRole]fonts.Asset{}
	for _, a := range g.Assets {
		switch a.Name {
		case cfg.FontFamily:
			out[layout.FontMain] = a
		case fonts.MeaningFont:
			out[layout.FontMeaning] = a
		}
	}
	return out
}

// loadFonts 通过缓存获取当前配置需要的字体，返回成功加载的数据与缺失的字体名。
func (g *Generator) loadFonts(ctx context.Context, cfg config.Config) (map[layout.FontRole][]byte, []string) {
	blobs := map[layout.FontRole][]byte{}
	var missing []string
	for role, a := range g.assetsFor(cfg) {
		data, ok := g.cache().Load(ctx, a)
		if !ok {
			missing = append(missing, a.Name)
			continue
		}
		blobs[role] = data
	}
	return blobs, missing
}

// WarmFonts 预先把当前配置需要的字体载入缓存，之后的 Preview 即可直接使用。
// 返回无法获取的字体名，调用方可据此提示用户。
func (g *Generator) WarmFonts(ctx context.Context, cfg config.Config) []string {
	_, missing := g.loadFonts(ctx, cfg)
	if len(missing) > 0 {
		g.logger().Warn("部分字体不可用，预览使用内置字体", "fonts", missing)
	}
	return missing
}

// Layout 计算布局但不渲染，用于调试输出。
func (g *Generator) Layout(cfg config.Config, s layout.Surface) (*layout.Result, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return layout.Build(cfg, layout.ContentFor(cfg), s)
}

// Preview 同步生成预览 PNG。只使用缓存中已有的字体，不等待下载。
func (g *Generator) Preview(cfg config.Config, width, height float64) ([]byte, error) {
	res, err := g.Layout(cfg, layout.PreviewSurface(width, height))
	if err != nil {
		return nil, err
	}
	blobs := map[layout.FontRole][]byte{}
	for role, a := range g.assetsFor(cfg) {
		if data, ok := g.cache().Peek(a.Name); ok {
			blobs[role] = data
		}
	}
	r := preview.NewRenderer(preview.Options{Fonts: blobs})
	defer r.Close()
	data, err := r.Render(res)
	if err != nil {
		return nil, fmt.Errorf("渲染预览失败: %w", err)
	}
	return data, nil
}

// Print 生成完整的 PDF 后一次性写入 sink。
// 句子与单词模式缺少文本时返回 config.ErrEmptyText；字体获取失败只记录并使用兜底字体。
func (g *Generator) Print(ctx context.Context, cfg config.Config, sink io.Writer) (*Report, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if err := cfg.CheckPrintable(); err != nil {
		return nil, err
	}
	s, err := layout.PrintSurface(cfg.PageSize)
	if err != nil {
		return nil, err
	}

	log := g.logger()
	report := &Report{}
	injected, missing := g.loadFonts(ctx, cfg)
	report.MissingFonts = missing
	if len(report.MissingFonts) > 0 {
		log.Warn("部分字体不可用，使用内置字体", "fonts", report.MissingFonts)
	}

	res, err := layout.Build(cfg, layout.ContentFor(cfg), s)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrRender, err)
	}
	data, err := canvasrenderer.NewRendererWithOptions(canvasrenderer.Options{Fonts: injected}).Render(res)
	if err != nil {
		log.Error("PDF 渲染失败", "err", err)
		return nil, fmt.Errorf("%w: %w", ErrRender, err)
	}
	if _, err := sink.Write(data); err != nil {
		return nil, fmt.Errorf("写入输出失败: %w", err)
	}
	report.Pages = len(res.Pages)
	report.Bytes = len(data)
	log.Info("PDF 已生成", "type", cfg.PracticeType, "pages", report.Pages, "bytes", report.Bytes)
	return report, nil
}

// Words 从词库中选出 pages 页单词，返回可直接作为单词表文本的内容。
func (g *Generator) Words(ctx context.Context, source string, mode vocab.Mode, pages, startPage int) ([]vocab.Entry, error) {
	f := g.Fetcher
	if f == nil {
		f = fonts.SourceFetcher{}
	}
	words := vocab.LoadDictionary(ctx, f, source, g.logger())
	if len(words) == 0 {
		return nil, ErrEmptyDictionary
	}
	picked := vocab.Select(words, mode, pages, startPage, vocab.WordsPerPage)
	g.logger().Debug("已选词", "mode", mode, "dictionary", len(words), "picked", len(picked))
	return picked, nil
}
