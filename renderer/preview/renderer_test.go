package preview

import (
	"bytes"
	"image/png"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ByLCY/copybook/config"
	"github.com/ByLCY/copybook/layout"
)

func build(t *testing.T, cfg config.Config, s layout.Surface) *layout.Result {
	t.Helper()
	res, err := layout.Build(cfg, layout.ContentFor(cfg), s)
	require.NoError(t, err)
	return res
}

func near(a uint32, b int) bool {
	d := int(a>>8) - b
	return d >= -1 && d <= 1
}

func TestRenderPreviewPNG(t *testing.T) {
	cfg := config.Default()
	cfg.Text = "apple n. 苹果\nbanana n. 香蕉\ncherry n. 樱桃"
	r := NewRenderer(Options{})
	defer r.Close()

	data, err := r.Render(build(t, cfg, layout.PreviewSurface(800, 600)))
	require.NoError(t, err)

	img, err := png.Decode(bytes.NewReader(data))
	require.NoError(t, err)
	require.Equal(t, 800, img.Bounds().Dx())
	require.Equal(t, 600, img.Bounds().Dy())

	cr, cg, cb, _ := img.At(2, 2).RGBA()
	require.True(t, near(cr, 240) && near(cg, 253) && near(cb, 244), "页边应为背景色")
}

func TestRenderIsRepeatable(t *testing.T) {
	cfg := config.Default()
	cfg.PracticeType = config.PracticeSentence
	cfg.Text = "Practice makes perfect."
	res := build(t, cfg, layout.PreviewSurface(400, 300))

	r := NewRenderer(Options{})
	defer r.Close()
	a, err := r.Render(res)
	require.NoError(t, err)
	b, err := r.Render(res)
	require.NoError(t, err)
	require.Equal(t, a, b)
}

func TestRenderWorkbookStyles(t *testing.T) {
	r := NewRenderer(Options{})
	defer r.Close()
	for _, style := range []config.WorkbookStyle{config.StyleTianzige, config.StyleMizi, config.StylePinyin, config.StyleSquare, config.StyleStaff} {
		cfg := config.Default()
		cfg.PracticeType = config.PracticeWorkbook
		cfg.WorkbookStyle = style
		_, err := r.Render(build(t, cfg, layout.PreviewSurface(500, 700)))
		require.NoError(t, err, style)
	}
}

func TestRenderPrintResultAsThumbnail(t *testing.T) {
	cfg := config.Default()
	cfg.Text = "apple n. 苹果"
	s, err := layout.PrintSurface(config.PageA4)
	require.NoError(t, err)

	r := NewRenderer(Options{})
	defer r.Close()
	data, err := r.Render(build(t, cfg, s))
	require.NoError(t, err)

	img, err := png.Decode(bytes.NewReader(data))
	require.NoError(t, err)
	require.InDelta(t, 600, img.Bounds().Dx(), 1)
}

func TestRenderRejectsEmpty(t *testing.T) {
	r := NewRenderer(Options{Fonts: map[layout.FontRole][]byte{layout.FontMain: []byte("junk")}})
	_, err := r.Render(&layout.Result{})
	require.Error(t, err)
}
