package main

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/ByLCY/copybook/config"
	"github.com/ByLCY/copybook/fonts"
	"github.com/ByLCY/copybook/layout"
	"github.com/ByLCY/copybook/sheet"
	"github.com/ByLCY/copybook/vocab"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		if errors.Is(err, config.ErrEmptyText) || errors.Is(err, sheet.ErrEmptyDictionary) {
			color.Yellow("提示: %v", err)
		} else {
			color.Red("错误: %v", err)
		}
		os.Exit(1)
	}
}

// options 是所有子命令共用的参数。
type options struct {
	verbose  bool
	fontsDir string

	configPath string
	practice   string
	pageSize   string
	text       string
}

func newRootCmd() *cobra.Command {
	opts := &options{}
	root := &cobra.Command{
		Use:           "copybook",
		Short:         "生成可打印的英文书写练习纸（单词表、例句描红、练习册）",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "输出调试日志")
	root.PersistentFlags().StringVar(&opts.fontsDir, "fonts", "assets/fonts", "字体目录或 URL 前缀")

	root.AddCommand(
		newPrintCmd(opts),
		newPreviewCmd(opts),
		newLayoutCmd(opts),
		newWordsCmd(opts),
	)
	return root
}

// addConfigFlags 注册读取配置与覆盖单个字段的参数。
func addConfigFlags(cmd *cobra.Command, opts *options) {
	cmd.Flags().StringVarP(&opts.configPath, "config", "c", "", "配置文件（.sheet 或 .yaml）")
	cmd.Flags().StringVar(&opts.practice, "type", "", "练习类型：sentence/vocabulary/workbook")
	cmd.Flags().StringVar(&opts.pageSize, "page-size", "", "纸张：A4/Letter")
	cmd.Flags().StringVar(&opts.text, "text", "", "练习文本，覆盖配置文件中的 text")
}

func (o *options) generator() *sheet.Generator {
	level := slog.LevelInfo
	if o.verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	fonts.Shared.SetLogger(logger)
	return &sheet.Generator{
		Fonts:  fonts.Shared,
		Assets: fonts.DefaultAssets(o.fontsDir),
		Logger: logger,
	}
}

// loadConfig 读取配置文件（未指定时使用默认配置），再应用命令行覆盖。
func (o *options) loadConfig(cmd *cobra.Command) (config.Config, error) {
	cfg := config.Default()
	if o.configPath != "" {
		loaded, err := config.Load(o.configPath)
		if err != nil {
			return config.Config{}, err
		}
		cfg = loaded
	}
	overrides := []struct{ flag, key, value string }{
		{"type", "practiceType", o.practice},
		{"page-size", "pageSize", o.pageSize},
		{"text", "text", o.text},
	}
	for _, ov := range overrides {
		if !cmd.Flags().Changed(ov.flag) {
			continue
		}
		if err := cfg.Set(ov.key, ov.value); err != nil {
			return config.Config{}, fmt.Errorf("--%s: %w", ov.flag, err)
		}
	}
	return cfg, nil
}

func newPrintCmd(opts *options) *cobra.Command {
	var out string
	cmd := &cobra.Command{
		Use:   "print",
		Short: "导出 PDF",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := opts.loadConfig(cmd)
			if err != nil {
				return err
			}
			g := opts.generator()
			// 先写入内存，完整生成后再落盘，失败时不留下半个文件。
			var buf bytes.Buffer
			report, err := g.Print(cmd.Context(), cfg, &buf)
			if err != nil {
				return err
			}
			if err := writeFile(out, buf.Bytes()); err != nil {
				return err
			}
			for _, name := range report.MissingFonts {
				color.Yellow("字体 %s 不可用，已使用内置字体", name)
			}
			fmt.Printf("已生成 PDF：%s（%d 页）\n", out, report.Pages)
			return nil
		},
	}
	addConfigFlags(cmd, opts)
	cmd.Flags().StringVarP(&out, "out", "o", "output/practice.pdf", "PDF 输出路径")
	return cmd
}

func newPreviewCmd(opts *options) *cobra.Command {
	var (
		out           string
		width, height float64
	)
	cmd := &cobra.Command{
		Use:   "preview",
		Short: "生成 PNG 预览图",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := opts.loadConfig(cmd)
			if err != nil {
				return err
			}
			g := opts.generator()
			for _, name := range g.WarmFonts(cmd.Context(), cfg) {
				color.Yellow("字体 %s 不可用，已使用内置字体", name)
			}
			data, err := g.Preview(cfg, width, height)
			if err != nil {
				return err
			}
			if err := writeFile(out, data); err != nil {
				return err
			}
			fmt.Printf("已生成预览：%s\n", out)
			return nil
		},
	}
	addConfigFlags(cmd, opts)
	cmd.Flags().StringVarP(&out, "out", "o", "output/preview.png", "PNG 输出路径")
	cmd.Flags().Float64Var(&width, "width", 794, "视口宽度（px）")
	cmd.Flags().Float64Var(&height, "height", 1123, "视口高度（px）")
	return cmd
}

func newLayoutCmd(opts *options) *cobra.Command {
	var debugPath, surface string
	cmd := &cobra.Command{
		Use:   "layout",
		Short: "只计算布局并输出调试 JSON",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := opts.loadConfig(cmd)
			if err != nil {
				return err
			}
			var s layout.Surface
			switch layout.SurfaceKind(surface) {
			case layout.SurfacePrint:
				if s, err = layout.PrintSurface(cfg.PageSize); err != nil {
					return err
				}
			case layout.SurfacePreview:
				s = layout.PreviewSurface(794, 1123)
			default:
				return fmt.Errorf("未知的表面类型：%s", surface)
			}
			result, err := opts.generator().Layout(cfg, s)
			if err != nil {
				return fmt.Errorf("布局计算失败: %w", err)
			}
			if err := layout.WriteDebugJSON(result, debugPath); err != nil {
				return err
			}
			fmt.Printf("已输出布局：%s（%d 页）\n", debugPath, len(result.Pages))
			return nil
		},
	}
	addConfigFlags(cmd, opts)
	cmd.Flags().StringVar(&debugPath, "debug", "output/layout.json", "布局调试 JSON 输出路径")
	cmd.Flags().StringVar(&surface, "surface", string(layout.SurfacePrint), "print 或 preview")
	return cmd
}

func newWordsCmd(opts *options) *cobra.Command {
	var (
		dict        string
		mode        string
		pages       int
		start       int
		showPageCnt bool
		out         string
	)
	cmd := &cobra.Command{
		Use:   "words",
		Short: "从词库中选词，输出单词表文本",
		RunE: func(cmd *cobra.Command, args []string) error {
			m := vocab.Mode(mode)
			if m != vocab.Random && m != vocab.Sequential {
				return fmt.Errorf("未知的选词方式：%s", mode)
			}
			g := opts.generator()
			if showPageCnt {
				entries, err := g.Words(cmd.Context(), dict, vocab.Sequential, 1<<20, 1)
				if err != nil {
					return err
				}
				fmt.Printf("词库共 %d 个单词，%d 页\n", len(entries), vocab.PageCount(len(entries), vocab.WordsPerPage))
				return nil
			}
			entries, err := g.Words(cmd.Context(), dict, m, pages, start)
			if err != nil {
				return err
			}
			if len(entries) < pages*vocab.WordsPerPage {
				color.Yellow("词库不足，只选出 %d 个单词", len(entries))
			}
			text := vocab.Format(entries)
			if out == "" {
				fmt.Println(text)
				return nil
			}
			return writeFile(out, []byte(text+"\n"))
		},
	}
	cmd.Flags().StringVar(&dict, "dict", "assets/CET_4.txt", "词库文件路径或 URL")
	cmd.Flags().StringVar(&mode, "mode", string(vocab.Random), "random 或 sequential")
	cmd.Flags().IntVar(&pages, "pages", 1, "页数")
	cmd.Flags().IntVar(&start, "start", 1, "顺序选词的起始页（从 1 开始）")
	cmd.Flags().BoolVar(&showPageCnt, "count", false, "只输出词库的单词数与页数")
	cmd.Flags().StringVarP(&out, "out", "o", "", "输出文件，留空则打印到标准输出")
	return cmd
}

func writeFile(path string, data []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("创建输出目录失败: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("写入文件 %s 失败: %w", path, err)
	}
	return nil
}
