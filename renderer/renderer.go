package renderer

import "github.com/ByLCY/copybook/layout"

// Renderer 将布局结果输出为最终文件，例如 PDF 或 PNG 图像。
// Render 返回完整的二进制数据；出错时不返回任何部分结果。
type Renderer interface {
	Render(result *layout.Result) ([]byte, error)
}
