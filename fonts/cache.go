package fonts

import (
	"context"
	"log/slog"
	"path/filepath"
	"strings"
	"sync"

	"golang.org/x/sync/singleflight"
)

// 逻辑字体名。
const (
	MainFont    = "Hengshui"
	MeaningFont = "HappyPlanet"
)

// Asset 是一个需要下载或读取的字体文件。
type Asset struct {
	Name   string
	Source string
}

// DefaultAssets 返回两个默认字体：主文本字体与释义字体，文件位于 dir 下。
// dir 也可以是 URL 前缀。
func DefaultAssets(dir string) []Asset {
	join := func(file string) string {
		if isURL(dir) {
			return strings.TrimSuffix(dir, "/") + "/" + file
		}
		return filepath.Join(dir, file)
	}
	return []Asset{
		{Name: MainFont, Source: join("Hengshui.ttf")},
		{Name: MeaningFont, Source: join("HappyPlanet.ttf")},
	}
}

func isURL(s string) bool {
	return strings.HasPrefix(s, "http://") || strings.HasPrefix(s, "https://")
}

type nopHandler struct{}

func (nopHandler) Enabled(context.Context, slog.Level) bool  { return false }
func (nopHandler) Handle(context.Context, slog.Record) error { return nil }
func (nopHandler) WithAttrs([]slog.Attr) slog.Handler        { return nopHandler{} }
func (nopHandler) WithGroup(string) slog.Handler             { return nopHandler{} }

// Cache 按字体名缓存字节，整个进程共享。
// 同一名字只会成功获取一次；并发的首次请求合并为一次读取。失败不缓存，下次调用会重试。
type Cache struct {
	fetcher Fetcher
	logger  *slog.Logger

	mu    sync.RWMutex
	data  map[string][]byte
	group singleflight.Group
}

// Shared 是进程级的字体缓存。
var Shared = NewCache(SourceFetcher{}, nil)

// NewCache 创建缓存；logger 为 nil 时不输出日志。
func NewCache(f Fetcher, logger *slog.Logger) *Cache {
	if logger == nil {
		logger = slog.New(nopHandler{})
	}
	return &Cache{fetcher: f, logger: logger, data: make(map[string][]byte)}
}

// SetLogger 替换缓存使用的日志器。
func (c *Cache) SetLogger(l *slog.Logger) {
	if l == nil {
		l = slog.New(nopHandler{})
	}
	c.mu.Lock()
	c.logger = l
	c.mu.Unlock()
}

// Peek 只读取已缓存的字体，不触发获取。
func (c *Cache) Peek(name string) ([]byte, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	data, ok := c.data[name]
	return data, ok
}

// Load 返回字体字节，必要时获取并缓存。获取失败时记录日志并返回 false，调用方使用兜底字体。
func (c *Cache) Load(ctx context.Context, a Asset) ([]byte, bool) {
	if data, ok := c.Peek(a.Name); ok {
		return data, true
	}
	ch := c.group.DoChan(a.Name, func() (any, error) {
		if data, ok := c.Peek(a.Name); ok {
			return data, nil
		}
		// 获取由多个调用方共享，不随单个调用方取消。
		data, err := c.fetcher.Fetch(context.WithoutCancel(ctx), a.Source)
		if err != nil {
			return nil, err
		}
		c.mu.Lock()
		c.data[a.Name] = data
		c.mu.Unlock()
		return data, nil
	})

	c.mu.RLock()
	logger := c.logger
	c.mu.RUnlock()

	select {
	case <-ctx.Done():
		logger.Warn("等待字体超时", "font", a.Name, "err", ctx.Err())
		return nil, false
	case res := <-ch:
		if res.Err != nil {
			logger.Error("加载字体失败", "font", a.Name, "source", a.Source, "err", res.Err)
			return nil, false
		}
		logger.Debug("字体已就绪", "font", a.Name, "shared", res.Shared)
		return res.Val.([]byte), true
	}
}

// LoadAll 依次确保所有字体可用，返回加载失败的字体名。
func (c *Cache) LoadAll(ctx context.Context, assets []Asset) []string {
	var missing []string
	for _, a := range assets {
		if _, ok := c.Load(ctx, a); !ok {
			missing = append(missing, a.Name)
		}
	}
	return missing
}
