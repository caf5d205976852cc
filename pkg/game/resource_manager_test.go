package game

import (
	"errors"
	"image"
	"image/color"
	"image/png"
	"io/fs"
	"os"
	"path/filepath"
	"testing"

	"github.com/hajimehoshi/ebiten/v2/audio"
	"golang.org/x/image/font/gofont/goregular"
)

// Ebitengine 只允许创建一个音频上下文，所有测试共享
var testAudioContext *audio.Context

func TestMain(m *testing.M) {
	testAudioContext = audio.NewContext(48000)
	os.Exit(m.Run())
}

// createTestImage 生成纯色 PNG
func createTestImage(path string, w, h int) error {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	blue := color.RGBA{B: 255, A: 255}
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, blue)
		}
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()
	return png.Encode(file, img)
}

func writeFile(t *testing.T, path string, data []byte) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		t.Fatal(err)
	}
}

func TestLoadTexture(t *testing.T) {
	root := t.TempDir()
	if err := createTestImage(filepath.Join(root, "textures", "rock.png"), 64, 32); err != nil {
		t.Fatal(err)
	}

	rm := NewResourceManager(root, nil)
	tex, err := rm.LoadTexture("textures/rock.png")
	if err != nil {
		t.Fatalf("LoadTexture: %v", err)
	}
	if tex.Image == nil {
		t.Error("Image is nil")
	}
	if tex.Width != 64 || tex.Height != 32 {
		t.Errorf("size = %dx%d, want 64x32", tex.Width, tex.Height)
	}
	if tex.Path != "textures/rock.png" {
		t.Errorf("Path = %q", tex.Path)
	}
}

func TestLoadTexture_HeadlessAndCache(t *testing.T) {
	root := t.TempDir()
	if err := createTestImage(filepath.Join(root, "a.png"), 10, 20); err != nil {
		t.Fatal(err)
	}

	rm := NewResourceManager(root, nil)
	rm.SetHeadless(true)

	first, err := rm.LoadTexture("a.png")
	if err != nil {
		t.Fatalf("LoadTexture: %v", err)
	}
	if first.Image != nil {
		t.Error("headless texture should have no image")
	}
	if first.Width != 10 || first.Height != 20 {
		t.Errorf("size = %dx%d, want 10x20", first.Width, first.Height)
	}

	second, err := rm.LoadTexture("./a.png")
	if err != nil {
		t.Fatal(err)
	}
	if first != second {
		t.Error("expected cached texture for the same cleaned path")
	}
}

func TestLoadTexture_Errors(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "bad.png"), []byte("not an image"))

	rm := NewResourceManager(root, nil)
	rm.SetHeadless(true)

	tests := []struct {
		name     string
		path     string
		notExist bool
	}{
		{"missing file", "missing.png", true},
		{"invalid format", "bad.png", false},
		{"escapes root", "../outside.png", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := rm.LoadTexture(tt.path)
			var le *LoadError
			if !errors.As(err, &le) {
				t.Fatalf("error %v is not a *LoadError", err)
			}
			if le.Kind != ResourceTexture {
				t.Errorf("Kind = %v, want texture", le.Kind)
			}
			if got := errors.Is(err, fs.ErrNotExist); got != tt.notExist {
				t.Errorf("errors.Is(ErrNotExist) = %v, want %v", got, tt.notExist)
			}
		})
	}
}

func TestLoadFont_TrueType(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "fonts", "goregular.ttf"), goregular.TTF)

	rm := NewResourceManager(root, nil)
	f, err := rm.LoadFont(FontDescriptor{Path: "fonts/goregular.ttf", Size: 16})
	if err != nil {
		t.Fatalf("LoadFont: %v", err)
	}
	w, h := f.Measure("Survival")
	if w <= 0 || h <= 0 {
		t.Errorf("Measure = (%v, %v), want positive", w, h)
	}

	// 同一文件的不同字号共享字形源
	if _, err := rm.LoadFont(FontDescriptor{Path: "fonts/goregular.ttf", Size: 32}); err != nil {
		t.Fatal(err)
	}
	if len(rm.fontSourceCache) != 1 {
		t.Errorf("font sources = %d, want 1", len(rm.fontSourceCache))
	}

	if _, err := rm.LoadFont(FontDescriptor{Path: "fonts/goregular.ttf"}); err == nil {
		t.Error("expected error for zero size")
	}
}

const testFnt = `info face="Test" size=8 bold=0 italic=0 charset="" unicode=1 stretchH=100 smooth=0 aa=1 padding=0,0,0,0 spacing=1,1 outline=0
common lineHeight=10 base=8 scaleW=16 scaleH=16 pages=1 packed=0 alphaChnl=0 redChnl=0 greenChnl=0 blueChnl=0
page id=0 file="test_0.png"
chars count=2
char id=65   x=0     y=0     width=5     height=7     xoffset=0     yoffset=1     xadvance=6     page=0  chnl=15
char id=66   x=6     y=0     width=5     height=7     xoffset=0     yoffset=1     xadvance=6     page=0  chnl=15
kernings count=1
kerning first=65  second=66  amount=-1
`

func TestLoadFont_Bitmap(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "fonts", "test.fnt"), []byte(testFnt))
	if err := createTestImage(filepath.Join(root, "fonts", "test_0.png"), 16, 16); err != nil {
		t.Fatal(err)
	}

	rm := NewResourceManager(root, nil)
	rm.SetHeadless(true)

	f, err := rm.LoadFont(FontDescriptor{Path: "fonts/test.fnt"})
	if err != nil {
		t.Fatalf("LoadFont: %v", err)
	}

	tests := []struct {
		s    string
		want float64
	}{
		{"A", 6},
		{"AB", 11}, // 字距 -1
		{"BA", 12},
		{"AxB", 11}, // 缺失字符被跳过
	}
	for _, tt := range tests {
		if w, h := f.Measure(tt.s); w != tt.want || h != 10 {
			t.Errorf("Measure(%q) = (%v, %v), want (%v, 10)", tt.s, w, h, tt.want)
		}
	}

	again, err := rm.LoadFont(FontDescriptor{Path: "fonts/test.fnt"})
	if err != nil {
		t.Fatal(err)
	}
	if again != f {
		t.Error("expected cached bitmap font")
	}
}

func TestFontDescriptorKind(t *testing.T) {
	tests := []struct {
		desc FontDescriptor
		want FontKind
	}{
		{FontDescriptor{Path: "a.ttf"}, FontTrueType},
		{FontDescriptor{Path: "a.FNT"}, FontBitmap},
		{FontDescriptor{Path: "a.otf"}, FontTrueType},
		{FontDescriptor{Path: "a.bin", Kind: FontBitmap}, FontBitmap},
	}
	for _, tt := range tests {
		if got := tt.desc.resolvedKind(); got != tt.want {
			t.Errorf("%+v: kind = %v, want %v", tt.desc, got, tt.want)
		}
	}

	if _, err := ParseFontKind("vector"); err == nil {
		t.Error("expected error for unknown kind")
	}
}

func TestLoadError(t *testing.T) {
	cause := errors.New("boom")
	err := loadErr(ResourceAudio, "a.wav", cause)
	if !errors.Is(err, cause) {
		t.Error("LoadError should unwrap to its cause")
	}
	if got, want := err.Error(), "load audio a.wav: boom"; got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}
	if got := ResourceKind(9).String(); got != "ResourceKind(9)" {
		t.Errorf("String() = %q", got)
	}
}

func TestLoadFont_Builtin(t *testing.T) {
	rm := NewResourceManager(t.TempDir(), nil)
	for _, name := range []string{FontGoRegular, FontGoItalic, FontGoBold, FontGoMono} {
		f, err := rm.LoadFont(FontDescriptor{Path: name, Size: 24})
		if err != nil {
			t.Fatalf("LoadFont(%s): %v", name, err)
		}
		if w, _ := f.Measure("0123"); w <= 0 {
			t.Errorf("%s: width = %v", name, w)
		}
	}
	// .fnt 扩展名判断不影响内置字体
	if got := (FontDescriptor{Path: FontGoMono, Kind: FontBitmap}).resolvedKind(); got != FontTrueType {
		t.Errorf("builtin kind = %v", got)
	}
}
