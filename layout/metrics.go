package layout

import (
	"fmt"

	"github.com/ByLCY/copybook/config"
)

// Metrics 把配置中的界面像素尺寸映射到某个表面上的具体长度。
// 两个表面共享同一套比例，只有常量不同：预览按像素近似，打印按毫米精确。
type Metrics struct {
	FontSize       float64 `json:"fontSize"`
	LineHeight     float64 `json:"lineHeight"`
	FourLineHeight float64 `json:"fourLineHeight"`
	MeaningSize    float64 `json:"meaningSize"`
	MeaningGap     float64 `json:"meaningGap"`   // 第四线到释义基线
	SampleOffset   float64 `json:"sampleOffset"` // 非四线模式下示例文字在行线上方的距离
	CellPadding    float64 `json:"cellPadding"`
	StampSize      float64 `json:"stampSize"`
	StampBaseline  float64 `json:"stampBaseline"`

	GuideWidth      float64 `json:"guideWidth"`
	RuleWidth       float64 `json:"ruleWidth"`
	FourLineWidth   float64 `json:"fourLineWidth"`
	GridWidth       float64 `json:"gridWidth"`
	DecorationWidth float64 `json:"decorationWidth"`
	PinyinWidth     float64 `json:"pinyinWidth"`

	Dashed         []float64 `json:"dashed"`
	Dotted         []float64 `json:"dotted"`
	MidlineDash    []float64 `json:"midlineDash"`
	DecorationDash []float64 `json:"decorationDash"`

	StaffLineSpacing float64 `json:"staffLineSpacing"`
	StaffGap         float64 `json:"staffGap"`
	CellSpacing      float64 `json:"cellSpacing"`
	PinyinInset      float64 `json:"pinyinInset"`
}

// MetricsFor 计算给定表面上的度量。
func MetricsFor(s Surface, cfg config.Config) (Metrics, error) {
	switch s.Kind {
	case SurfacePreview:
		fs := cfg.FontSize
		return Metrics{
			FontSize:       fs,
			LineHeight:     cfg.LineHeight,
			FourLineHeight: fs * 1.5,
			MeaningSize:    fs * 0.6,
			MeaningGap:     fs * 0.8,
			SampleOffset:   fs * 0.2,
			CellPadding:    5,

			GuideWidth:      1,
			RuleWidth:       1.5,
			FourLineWidth:   1,
			GridWidth:       1,
			DecorationWidth: 0.5,
			PinyinWidth:     0.8,

			Dashed:         []float64{5, 5},
			Dotted:         []float64{2, 3},
			MidlineDash:    []float64{2, 2},
			DecorationDash: []float64{3, 3},

			StaffLineSpacing: 10,
			StaffGap:         40,
			CellSpacing:      3,
			PinyinInset:      4,
		}, nil
	case SurfacePrint:
		fs := Px(cfg.FontSize).ToMM()
		return Metrics{
			FontSize:       fs,
			LineHeight:     Px(cfg.LineHeight).ToMM(),
			FourLineHeight: 9,
			MeaningSize:    fs * 1.5 * PtToMm,
			MeaningGap:     fs,
			SampleOffset:   fs * 0.3,
			CellPadding:    2,
			StampSize:      9 * PtToMm,
			StampBaseline:  10,

			GuideWidth:      0.1,
			RuleWidth:       0.3,
			FourLineWidth:   0.1,
			GridWidth:       0.3,
			DecorationWidth: 0.15,
			PinyinWidth:     0.2,

			Dashed:         []float64{3, 3},
			Dotted:         []float64{0.5, 1.5},
			MidlineDash:    []float64{1, 1},
			DecorationDash: []float64{1, 1},

			StaffLineSpacing: 2.5,
			StaffGap:         10,
			CellSpacing:      1,
			PinyinInset:      1,
		}, nil
	default:
		return Metrics{}, fmt.Errorf("%w: 表面类型 %q", ErrUnknownVariant, s.Kind)
	}
}

// workbookColumns 返回格子大小对应的列数，两个表面一致。
func workbookColumns(size config.GridSize) (int, error) {
	switch size {
	case config.GridSmall:
		return 15, nil
	case config.GridMedium:
		return 10, nil
	case config.GridLarge:
		return 7, nil
	default:
		return 0, fmt.Errorf("%w: 格子大小 %q", ErrUnknownVariant, size)
	}
}

// printCellSize 返回打印时单个格子的边长（mm）。
func printCellSize(size config.GridSize) (float64, error) {
	switch size {
	case config.GridSmall:
		return 7, nil
	case config.GridMedium:
		return 10, nil
	case config.GridLarge:
		return 15, nil
	default:
		return 0, fmt.Errorf("%w: 格子大小 %q", ErrUnknownVariant, size)
	}
}
