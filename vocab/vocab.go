// Package vocab 负责把词库文本解析成单词条目，并从中挑选出一批单词。
package vocab

import (
	"math/rand/v2"
	"strings"
)

// WordsPerPage 是默认 4×14 单词表一页容纳的单词数。
const WordsPerPage = 56

// Entry 是一条 "单词 释义"。
type Entry struct {
	Word    string `json:"word"`
	Meaning string `json:"meaning"`
}

// Parse 逐行解析文本，词库文件与用户输入走同一条路径。
//
// 规则：去掉首尾空白；空行、非 ASCII 字母开头、少于两个词元的行直接跳过；
// 第二个词元以 "[" 开头时视为音标并跳过；其余词元以单个空格拼成释义，释义为空则丢弃。
// 格式不对的行不会报错。
func Parse(raw string) []Entry {
	var entries []Entry
	for _, line := range strings.Split(raw, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || !isASCIILetter(line[0]) {
			continue
		}
		parts := strings.Fields(line)
		if len(parts) < 2 {
			continue
		}
		start := 1
		if strings.HasPrefix(parts[1], "[") {
			start = 2
		}
		meaning := strings.Join(parts[start:], " ")
		if meaning == "" {
			continue
		}
		entries = append(entries, Entry{Word: parts[0], Meaning: meaning})
	}
	return entries
}

// Format 把条目还原成每行一个 "word meaning" 的文本，作为单词表的输入。
func Format(entries []Entry) string {
	lines := make([]string, len(entries))
	for i, e := range entries {
		lines[i] = e.Word + " " + e.Meaning
	}
	return strings.Join(lines, "\n")
}

func isASCIILetter(b byte) bool {
	return (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z')
}

// Mode 是选词方式。
type Mode string

const (
	Random     Mode = "random"
	Sequential Mode = "sequential"
)

// Select 从词库中挑选 pageCount*wordsPerPage 个单词。
//
// Random 每次都重新洗牌（不固定种子）后取前 N 个；Sequential 从第 startPage 页开始连续截取，
// 超出词库末尾时直接返回更少的单词，不回绕也不补齐。本函数不做范围校验，越界时只截断。
func Select(words []Entry, mode Mode, pageCount, startPage, wordsPerPage int) []Entry {
	total := pageCount * wordsPerPage
	if total <= 0 || len(words) == 0 {
		return []Entry{}
	}
	switch mode {
	case Random:
		shuffled := make([]Entry, len(words))
		copy(shuffled, words)
		rand.Shuffle(len(shuffled), func(i, j int) {
			shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
		})
		if total > len(shuffled) {
			total = len(shuffled)
		}
		return shuffled[:total]
	case Sequential:
		start := (startPage - 1) * wordsPerPage
		if start < 0 || start >= len(words) {
			return []Entry{}
		}
		end := start + total
		if end > len(words) {
			end = len(words)
		}
		out := make([]Entry, end-start)
		copy(out, words[start:end])
		return out
	default:
		return []Entry{}
	}
}

// PageCount 返回词库按 wordsPerPage 分页后的总页数。
func PageCount(total, wordsPerPage int) int {
	if total <= 0 || wordsPerPage <= 0 {
		return 0
	}
	return (total + wordsPerPage - 1) / wordsPerPage
}
