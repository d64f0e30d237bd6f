package config

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/ByLCY/copybook/dsl"
)

// Load 从文件读取配置：.yaml/.yml 走 YAML，其余按 sheet DSL 解析。
// 文件中未出现的字段保持 Default() 的取值。
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("无法读取配置文件 %s: %w", path, err)
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FromYAML(data)
	default:
		doc, err := dsl.Parse(bytes.NewReader(data))
		if err != nil {
			return Config{}, fmt.Errorf("解析 sheet 文件失败: %w", err)
		}
		return FromDocument(doc)
	}
}

// FromYAML 在默认配置之上叠加 YAML 内容。
func FromYAML(data []byte) (Config, error) {
	cfg := Default()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("解析 YAML 配置失败: %w", err)
	}
	return cfg, nil
}

// FromDocument 在默认配置之上叠加 sheet 文档中的赋值。
// sheet 后面的标识符（如 sheet vocabulary）等价于 practice-type。
func FromDocument(doc *dsl.Document) (Config, error) {
	cfg := Default()
	if doc == nil {
		return cfg, nil
	}
	if doc.Kind != "" {
		cfg.PracticeType = PracticeType(strings.ToLower(doc.Kind))
	}
	for _, a := range doc.Assignments {
		if err := cfg.Set(a.Key, a.Value.Raw()); err != nil {
			return Config{}, fmt.Errorf("第 %d 行: %w", a.Pos.Line, err)
		}
	}
	return cfg, nil
}

// Set 按键名修改单个字段，供 DSL 与命令行覆盖共用。
func (c *Config) Set(key, raw string) error {
	v := &dsl.Value{String: (*dsl.StringLiteral)(&raw)}
	var err error
	switch dsl.NormalizeKey(key) {
	case "text":
		c.Text = raw
	case "fontsize":
		c.FontSize, err = v.Float()
	case "lineheight":
		c.LineHeight, err = v.Float()
	case "linetype":
		c.LineType = LineType(strings.ToLower(raw))
	case "showguidelines", "guides", "guidelines":
		c.ShowGuideLines, err = v.Bool()
	case "linesperpage", "lines":
		c.LinesPerPage, err = v.Int()
	case "fontfamily", "font":
		c.FontFamily = raw
	case "pagesize", "page":
		c.PageSize = normalizePageSize(raw)
	case "practicetype", "type":
		c.PracticeType = PracticeType(strings.ToLower(raw))
	case "gridcols", "cols":
		c.GridCols, err = v.Int()
	case "gridrows", "rows":
		c.GridRows, err = v.Int()
	case "tracemode", "trace":
		c.TraceMode, err = v.Bool()
	case "workbookstyle", "style":
		c.WorkbookStyle = WorkbookStyle(strings.ToLower(raw))
	case "gridsize":
		c.GridSize = GridSize(strings.ToLower(raw))
	case "gridcolor":
		c.GridColor = Color(strings.ToLower(raw))
	case "textcolor":
		c.TextColor = Color(strings.ToLower(raw))
	case "stamp":
		c.Stamp = raw
	default:
		return fmt.Errorf("未知的配置项：%s", key)
	}
	if err != nil {
		return fmt.Errorf("%s: %w", key, err)
	}
	return nil
}

func normalizePageSize(raw string) PageSize {
	switch strings.ToLower(raw) {
	case "a4":
		return PageA4
	case "letter":
		return PageLetter
	}
	return PageSize(raw)
}
