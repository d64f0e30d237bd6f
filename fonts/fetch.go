package fonts

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/sethvargo/go-retry"
)

// Fetcher 按来源读取原始字节。来源可以是本地路径、http(s) URL 或 "embed:" 内置字体。
type Fetcher interface {
	Fetch(ctx context.Context, source string) ([]byte, error)
}

const (
	defaultAttempts = 3
	defaultBackoff  = 200 * time.Millisecond
)

// SourceFetcher 是默认的 Fetcher。远程读取失败时按固定间隔重试，本地文件不重试。
type SourceFetcher struct {
	Client   *http.Client
	Attempts uint64        // 总尝试次数，0 表示 3 次
	Backoff  time.Duration // 重试间隔，0 表示 200ms
}

func (f SourceFetcher) Fetch(ctx context.Context, source string) ([]byte, error) {
	switch {
	case strings.HasPrefix(source, "embed:"):
		return LoadEmbedded(source)
	case isURL(source):
		return f.fetchHTTP(ctx, source)
	default:
		data, err := os.ReadFile(source)
		if err != nil {
			return nil, fmt.Errorf("读取文件 %s 失败: %w", source, err)
		}
		return data, nil
	}
}

func (f SourceFetcher) fetchHTTP(ctx context.Context, url string) ([]byte, error) {
	client := f.Client
	if client == nil {
		client = http.DefaultClient
	}
	attempts := f.Attempts
	if attempts == 0 {
		attempts = defaultAttempts
	}
	backoff := f.Backoff
	if backoff <= 0 {
		backoff = defaultBackoff
	}

	var body []byte
	err := retry.Do(ctx, retry.WithMaxRetries(attempts-1, retry.NewConstant(backoff)), func(ctx context.Context) error {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
		if err != nil {
			return err
		}
		res, err := client.Do(req)
		if err != nil {
			return retry.RetryableError(err)
		}
		defer res.Body.Close()
		switch {
		case res.StatusCode >= 500:
			return retry.RetryableError(fmt.Errorf("请求 %s 返回 %d", url, res.StatusCode))
		case res.StatusCode != http.StatusOK:
			return fmt.Errorf("请求 %s 返回 %d", url, res.StatusCode)
		}
		data, err := io.ReadAll(res.Body)
		if err != nil {
			return retry.RetryableError(err)
		}
		body = data
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("下载 %s 失败: %w", url, err)
	}
	return body, nil
}
