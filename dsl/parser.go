package dsl

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"
)

var (
	sheetLexer = lexer.MustSimple([]lexer.SimpleRule{
		{Name: "Whitespace", Pattern: `[ \t\r]+`},
		{Name: "Newline", Pattern: `\n+`},
		{Name: "BlockComment", Pattern: `/\*[^*]*\*+(?:[^/*][^*]*\*+)*/`},
		{Name: "LineComment", Pattern: `//[^\n]*`},
		{Name: "HashComment", Pattern: `#[^\n]*`},
		{Name: "Number", Pattern: `-?(?:\d+\.\d+|\d+)(?:px)?`},
		{Name: "String", Pattern: "\"(?:\\\\.|[^\"])*\"|`[^`]*`"},
		{Name: "Ident", Pattern: `[A-Za-z_][A-Za-z0-9_-]*`},
		{Name: "Symbol", Pattern: `[:;,=]`},
		{Name: "LBrace", Pattern: `{`},
		{Name: "RBrace", Pattern: `}`},
	})

	documentParser = participle.MustBuild[Document](
		participle.Lexer(sheetLexer),
		participle.Elide("Whitespace", "LineComment", "BlockComment", "HashComment"),
	)
)

// Document 是 .sheet 文件的根节点：
//
//	sheet vocabulary {
//	  font-size: 18
//	  text: `apple 苹果`
//	}
type Document struct {
	Pos         lexer.Position `parser:"" json:"-"`
	Kind        string         `parser:"Newline* 'sheet' @Ident?"`
	Assignments []*Assignment  `parser:"'{' Newline* ( @@ ( ';' | ',' | Newline )* )* '}' Newline*"`
}

// Assignment 使用冒号或等号语法（key: value）。
type Assignment struct {
	Pos   lexer.Position `parser:"" json:"-"`
	Key   string         `parser:"@Ident"`
	Value *Value         `parser:"( ':' | '=' ) Newline* @@"`
}

// Value 是属性值：字符串、数字或标识符（true/false/枚举名）。
type Value struct {
	String *StringLiteral `parser:"  @String"`
	Number *string        `parser:"| @Number"`
	Ident  *string        `parser:"| @Ident"`
}

// StringLiteral 在捕获时去掉引号，反引号内容按原样保留（可跨行）。
type StringLiteral string

// Capture implements participle.Capture.
func (s *StringLiteral) Capture(values []string) error {
	if len(values) == 0 {
		return fmt.Errorf("string literal capture requires value")
	}
	val, err := strconv.Unquote(values[0])
	if err != nil {
		return err
	}
	*s = StringLiteral(val)
	return nil
}

// Raw 返回值的文本形式，数字去掉 px 后缀。
func (v *Value) Raw() string {
	switch {
	case v == nil:
		return ""
	case v.String != nil:
		return string(*v.String)
	case v.Number != nil:
		return strings.TrimSuffix(*v.Number, "px")
	case v.Ident != nil:
		return *v.Ident
	default:
		return ""
	}
}

// Float 将值解析为浮点数。
func (v *Value) Float() (float64, error) {
	f, err := strconv.ParseFloat(v.Raw(), 64)
	if err != nil {
		return 0, fmt.Errorf("期望数字，实际 %q", v.Raw())
	}
	return f, nil
}

// Int 将值解析为整数。
func (v *Value) Int() (int, error) {
	n, err := strconv.Atoi(v.Raw())
	if err != nil {
		return 0, fmt.Errorf("期望整数，实际 %q", v.Raw())
	}
	return n, nil
}

// Bool 接受 true/false/yes/no/on/off。
func (v *Value) Bool() (bool, error) {
	switch strings.ToLower(v.Raw()) {
	case "true", "yes", "on":
		return true, nil
	case "false", "no", "off":
		return false, nil
	}
	return false, fmt.Errorf("期望布尔值，实际 %q", v.Raw())
}

// Parse parses sheet content from an io.Reader.
func Parse(r io.Reader) (*Document, error) {
	return documentParser.Parse("", r)
}

// ParseString parses sheet content from a string.
func ParseString(input string) (*Document, error) {
	return documentParser.ParseString("", input)
}

// NormalizeKey 统一 font-size / font_size / fontSize 这类写法。
func NormalizeKey(key string) string {
	key = strings.ToLower(key)
	key = strings.ReplaceAll(key, "-", "")
	return strings.ReplaceAll(key, "_", "")
}
