package game

import (
	"fmt"
	"path"
	"strings"

	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goitalic"
	"golang.org/x/image/font/gofont/gomono"
	"golang.org/x/image/font/gofont/goregular"
)

// 内置字体，不需要字体文件
const (
	FontGoRegular = "@go-regular"
	FontGoItalic  = "@go-italic"
	FontGoBold    = "@go-bold"
	FontGoMono    = "@go-mono"
)

var builtinFonts = map[string][]byte{
	FontGoRegular: goregular.TTF,
	FontGoItalic:  goitalic.TTF,
	FontGoBold:    gobold.TTF,
	FontGoMono:    gomono.TTF,
}

// FontKind 字体文件类型
type FontKind int

const (
	// FontAuto 按扩展名判断
	FontAuto FontKind = iota
	// FontTrueType TrueType / OpenType 矢量字体
	FontTrueType
	// FontBitmap AngelCode 位图字体（.fnt）
	FontBitmap
)

func (k FontKind) String() string {
	switch k {
	case FontTrueType:
		return "truetype"
	case FontBitmap:
		return "bitmap"
	default:
		return "auto"
	}
}

// ParseFontKind 解析清单中的字体类型
func ParseFontKind(s string) (FontKind, error) {
	switch strings.ToLower(s) {
	case "", "auto":
		return FontAuto, nil
	case "truetype", "ttf", "otf":
		return FontTrueType, nil
	case "bitmap", "fnt", "bmfont":
		return FontBitmap, nil
	}
	return FontAuto, fmt.Errorf("unknown font kind %q", s)
}

// FontDescriptor 描述要加载的字体
// Path 可以是资源清单中的 ID；Size 只对矢量字体有效
type FontDescriptor struct {
	Path string
	Size float64
	Kind FontKind
}

func (d FontDescriptor) resolvedKind() FontKind {
	if _, ok := builtinFonts[d.Path]; ok {
		return FontTrueType
	}
	if d.Kind != FontAuto {
		return d.Kind
	}
	if strings.EqualFold(path.Ext(d.Path), ".fnt") {
		return FontBitmap
	}
	return FontTrueType
}
