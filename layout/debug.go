package layout

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// debugDoc 在布局结果之外附带每页的图元数量，方便快速比对两个表面。
type debugDoc struct {
	*Result
	Summary []pageSummary `json:"summary"`
}

type pageSummary struct {
	Index int       `json:"index"`
	Lines int       `json:"lines"`
	Rects int       `json:"rects"`
	Texts int       `json:"texts"`
	Cells CellStats `json:"cells"`
}

// DebugJSON 将布局结果编码为带缩进的 JSON。
func DebugJSON(res *Result) ([]byte, error) {
	if res == nil {
		return nil, fmt.Errorf("布局结果为空")
	}
	doc := debugDoc{Result: res}
	for _, p := range res.Pages {
		doc.Summary = append(doc.Summary, pageSummary{
			Index: p.Index,
			Lines: len(p.Lines),
			Rects: len(p.Rects),
			Texts: len(p.Texts),
			Cells: p.Cells,
		})
	}
	return json.MarshalIndent(doc, "", "  ")
}

// WriteDebugJSON 将布局结果输出为 JSON 文件，必要时创建目录。
func WriteDebugJSON(res *Result, path string) error {
	data, err := DebugJSON(res)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("创建调试目录失败: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("写入调试 JSON 失败: %w", err)
	}
	return nil
}
