package fonts

import (
	"fmt"
	"strings"

	"golang.org/x/image/font/gofont/gomono"
	"golang.org/x/image/font/gofont/goregular"
)

var embedded = map[string][]byte{
	"goregular": goregular.TTF,
	"gomono":    gomono.TTF,
}

// Regular 返回内置的 Go Regular 字体，作为主文本的兜底字体。
func Regular() []byte { return goregular.TTF }

// Mono 返回内置的 Go Mono 字体，用于页角印记。
func Mono() []byte { return gomono.TTF }

// LoadEmbedded 返回内置字体的字节数据，name 可写为 "embed:goregular" 或直接 "goregular"。
func LoadEmbedded(name string) ([]byte, error) {
	key := strings.ToLower(strings.TrimSuffix(strings.TrimPrefix(name, "embed:"), ".ttf"))
	data, ok := embedded[key]
	if !ok {
		return nil, fmt.Errorf("读取内置字体 %s 失败: 不存在", name)
	}
	return data, nil
}
