package vocab

import (
	"context"
	"log/slog"
)

// Fetcher 读取外部资源（本地路径或 URL）。fonts.SourceFetcher 满足该接口。
type Fetcher interface {
	Fetch(ctx context.Context, source string) ([]byte, error)
}

// LoadDictionary 读取 UTF-8 词库并解析成条目。
// 读取失败只记录日志并返回空列表，调用方据此提示“词库为空”。
func LoadDictionary(ctx context.Context, f Fetcher, source string, logger *slog.Logger) []Entry {
	if logger == nil {
		logger = slog.Default()
	}
	data, err := f.Fetch(ctx, source)
	if err != nil {
		logger.Error("加载词库失败", "source", source, "err", err)
		return []Entry{}
	}
	entries := Parse(string(data))
	logger.Debug("词库已加载", "source", source, "entries", len(entries))
	return entries
}
