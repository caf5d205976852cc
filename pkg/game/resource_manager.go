package game

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	_ "image/gif"  // Register GIF decoder
	_ "image/jpeg" // Register JPEG decoder
	_ "image/png"  // Register PNG decoder
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/fzipp/bmfont"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	_ "golang.org/x/image/bmp"  // Register BMP decoder
	_ "golang.org/x/image/webp" // Register WebP decoder

	"github.com/decker502/survival/pkg/components"
	"github.com/decker502/survival/pkg/logger"
	"github.com/decker502/survival/pkg/render"
)

// TextureLoader 纹理加载接口
type TextureLoader interface {
	LoadTexture(path string) (*components.Texture, error)
}

// FontLoader 字体加载接口
type FontLoader interface {
	LoadFont(desc FontDescriptor) (render.Font, error)
}

// ResourceManager 集中管理游戏资源的加载和缓存
//
// 所有路径都相对于 root 目录，使用 "/" 分隔。
// 加载过资源清单后，路径参数也可以是清单中的资源 ID。
//
// 非线程安全：只在运行循环的 goroutine 上调用（Init 阶段）。
//
// 用法：
//
//	am := NewAudioManager(audioContext, 1)
//	rm := NewResourceManager(".", am)
//	if err := rm.LoadResourceConfig("data/resources.yaml"); err != nil {
//	    return err
//	}
//	tex, err := rm.LoadTexture("IMAGE_ASTEROID")
type ResourceManager struct {
	root     string
	fsys     fs.FS
	headless bool // 只读取尺寸，不创建 GPU 图像

	textureCache    map[string]*components.Texture
	fontSourceCache map[string]*text.GoTextFaceSource
	bitmapFontCache map[string]*render.BitmapFont

	audio *AudioManager

	config      *ResourceConfig
	resourceMap map[string]string // 资源 ID -> 完整路径
	images      map[string]ImageResource
	fonts       map[string]FontResource

	log *log.Logger
}

// NewResourceManager 创建以 root 为根目录的资源管理器
// am 可以为 nil；非 nil 时音频文件也通过本管理器读取
func NewResourceManager(root string, am *AudioManager) *ResourceManager {
	rm := &ResourceManager{
		root:            root,
		fsys:            os.DirFS(root),
		textureCache:    make(map[string]*components.Texture),
		fontSourceCache: make(map[string]*text.GoTextFaceSource),
		bitmapFontCache: make(map[string]*render.BitmapFont),
		audio:           am,
		resourceMap:     make(map[string]string),
		images:          make(map[string]ImageResource),
		fonts:           make(map[string]FontResource),
		log:             logger.For("ResourceManager"),
	}
	if am != nil {
		am.SetReader(rm.ReadFile)
	}
	return rm
}

// SetHeadless 无头模式下纹理只包含尺寸，Image 为 nil
func (rm *ResourceManager) SetHeadless(headless bool) {
	rm.headless = headless
}

// Audio 返回音频播放器，可能为 nil
func (rm *ResourceManager) Audio() AudioPlayer {
	if rm.audio == nil {
		return nil
	}
	return rm.audio
}

// Resolve 把资源 ID 解析为路径，不是 ID 时原样返回
func (rm *ResourceManager) Resolve(name string) string {
	if p, ok := rm.resourceMap[name]; ok {
		return p
	}
	return name
}

// ReadFile 读取 root 下的文件，name 可以是资源 ID
func (rm *ResourceManager) ReadFile(name string) ([]byte, error) {
	p, err := rm.fsPath(name)
	if err != nil {
		return nil, err
	}
	return fs.ReadFile(rm.fsys, p)
}

func (rm *ResourceManager) fsPath(name string) (string, error) {
	p := path.Clean(strings.TrimPrefix(filepath.ToSlash(rm.Resolve(name)), "/"))
	if !fs.ValidPath(p) {
		return "", fmt.Errorf("invalid resource path %q", name)
	}
	return p, nil
}

// LoadTexture 加载图像并缓存
// 支持 PNG、JPEG、GIF、BMP、WebP
func (rm *ResourceManager) LoadTexture(name string) (*components.Texture, error) {
	p, err := rm.fsPath(name)
	if err != nil {
		return nil, loadErr(ResourceTexture, name, err)
	}
	if tex, ok := rm.textureCache[p]; ok {
		return tex, nil
	}

	data, err := fs.ReadFile(rm.fsys, p)
	if err != nil {
		return nil, loadErr(ResourceTexture, p, err)
	}

	var tex *components.Texture
	if rm.headless {
		cfg, _, err := image.DecodeConfig(bytes.NewReader(data))
		if err != nil {
			return nil, loadErr(ResourceTexture, p, fmt.Errorf("decode: %w", err))
		}
		tex = &components.Texture{Path: p, Width: cfg.Width, Height: cfg.Height}
	} else {
		img, _, err := image.Decode(bytes.NewReader(data))
		if err != nil {
			return nil, loadErr(ResourceTexture, p, fmt.Errorf("decode: %w", err))
		}
		tex = components.NewTexture(p, ebiten.NewImageFromImage(img))
	}

	rm.textureCache[p] = tex
	rm.log.Debugf("loaded texture %s (%dx%d)", p, tex.Width, tex.Height)
	return tex, nil
}

// CellSize 返回清单中精灵表的单元格大小
func (rm *ResourceManager) CellSize(id string) (w, h int, ok bool) {
	img, ok := rm.images[id]
	if !ok || img.CellWidth <= 0 || img.CellHeight <= 0 {
		return 0, 0, false
	}
	return img.CellWidth, img.CellHeight, true
}

// LoadFont 加载字体
// 矢量字体的字形源按路径缓存，不同字号共享；位图字体按路径缓存
func (rm *ResourceManager) LoadFont(desc FontDescriptor) (render.Font, error) {
	if res, ok := rm.fonts[desc.Path]; ok {
		if desc.Size <= 0 {
			desc.Size = res.Size
		}
		if desc.Kind == FontAuto {
			desc.Kind, _ = ParseFontKind(res.Kind)
		}
	}

	desc.Path = rm.Resolve(desc.Path)
	if data, ok := builtinFonts[desc.Path]; ok {
		return rm.loadTextFont(desc.Path, desc.Size, func() ([]byte, error) { return data, nil })
	}

	p, err := rm.fsPath(desc.Path)
	if err != nil {
		return nil, loadErr(ResourceFont, desc.Path, err)
	}
	desc.Path = p

	switch desc.resolvedKind() {
	case FontBitmap:
		return rm.loadBitmapFont(p)
	default:
		return rm.loadTextFont(p, desc.Size, func() ([]byte, error) { return fs.ReadFile(rm.fsys, p) })
	}
}

func (rm *ResourceManager) loadTextFont(p string, size float64, read func() ([]byte, error)) (render.Font, error) {
	if size <= 0 {
		return nil, loadErr(ResourceFont, p, fmt.Errorf("invalid font size %v", size))
	}
	if src, ok := rm.fontSourceCache[p]; ok {
		return render.NewTextFont(src, size), nil
	}

	data, err := read()
	if err != nil {
		return nil, loadErr(ResourceFont, p, err)
	}
	src, err := text.NewGoTextFaceSource(bytes.NewReader(data))
	if err != nil {
		return nil, loadErr(ResourceFont, p, fmt.Errorf("parse: %w", err))
	}
	rm.fontSourceCache[p] = src
	rm.log.Debugf("loaded font %s", p)
	return render.NewTextFont(src, size), nil
}

// loadBitmapFont 解析 AngelCode .fnt 描述文件，图集页作为纹理加载
func (rm *ResourceManager) loadBitmapFont(p string) (render.Font, error) {
	if f, ok := rm.bitmapFontCache[p]; ok {
		return f, nil
	}

	bf, err := bmfont.Load(filepath.Join(rm.root, filepath.FromSlash(p)))
	if err != nil {
		return nil, loadErr(ResourceFont, p, err)
	}
	desc := bf.Descriptor

	font := render.NewBitmapFont(int(desc.Common.LineHeight))
	dir := path.Dir(p)
	for _, page := range desc.Pages {
		tex, err := rm.LoadTexture(path.Join(dir, page.File))
		if err != nil {
			return nil, loadErr(ResourceFont, p, err)
		}
		font.Pages[int(page.ID)] = tex.Image
	}
	for _, c := range desc.Chars {
		x, y := int(c.X), int(c.Y)
		font.Glyphs[rune(c.ID)] = render.Glyph{
			Page:     int(c.Page),
			Rect:     image.Rect(x, y, x+int(c.Width), y+int(c.Height)),
			XOffset:  int(c.XOffset),
			YOffset:  int(c.YOffset),
			XAdvance: int(c.XAdvance),
		}
	}
	for pair, k := range desc.Kerning {
		font.Kerning[[2]rune{rune(pair.First), rune(pair.Second)}] = int(k.Amount)
	}

	rm.bitmapFontCache[p] = font
	rm.log.Debugf("loaded bitmap font %s %q size %d, %d glyphs",
		p, desc.Info.Face, int(desc.Info.Size), len(font.Glyphs))
	return font, nil
}

// LoadResourceConfig 读取资源清单并建立 ID -> 路径映射
// configPath 相对于 root
func (rm *ResourceManager) LoadResourceConfig(configPath string) error {
	data, err := rm.ReadFile(configPath)
	if err != nil {
		return loadErr(ResourceManifest, configPath, err)
	}
	cfg, err := ParseResourceConfig(data)
	if err != nil {
		return loadErr(ResourceManifest, configPath, err)
	}
	rm.config = cfg
	rm.buildResourceMap()
	rm.log.Infof("resource manifest %s: %d resources", configPath, len(rm.resourceMap))
	return nil
}

// buildResourceMap 建立资源 ID 到完整路径的映射
//
//	IMAGE_ASTEROID -> assets/textures/asteroid.png
//	SOUND_LASER    -> assets/audio/laser.wav
func (rm *ResourceManager) buildResourceMap() {
	rm.resourceMap = make(map[string]string)
	rm.images = make(map[string]ImageResource)
	rm.fonts = make(map[string]FontResource)
	if rm.config == nil {
		return
	}

	for _, group := range rm.config.Groups {
		for _, img := range group.Images {
			rm.resourceMap[img.ID] = buildFullPath(rm.config.BasePath, img.Path)
			rm.images[img.ID] = img
		}
		for _, sound := range group.Sounds {
			rm.resourceMap[sound.ID] = buildFullPath(rm.config.BasePath, sound.Path)
		}
		for _, font := range group.Fonts {
			if _, ok := builtinFonts[font.Path]; ok {
				rm.resourceMap[font.ID] = font.Path
			} else {
				rm.resourceMap[font.ID] = buildFullPath(rm.config.BasePath, font.Path)
			}
			rm.fonts[font.ID] = font
		}
	}
}

// LoadResourceGroup 预加载一组资源
// 图像和字体进入缓存；音频只检查文件存在，解码由 AudioManager.Initialise 完成
func (rm *ResourceManager) LoadResourceGroup(groupName string) error {
	if rm.config == nil {
		return loadErr(ResourceManifest, groupName, errors.New("resource manifest not loaded"))
	}
	group, ok := rm.config.Groups[groupName]
	if !ok {
		return loadErr(ResourceManifest, groupName, errors.New("resource group not found"))
	}

	for _, img := range group.Images {
		if _, err := rm.LoadTexture(img.ID); err != nil {
			return err
		}
	}
	for _, font := range group.Fonts {
		if _, err := rm.LoadFont(FontDescriptor{Path: font.ID}); err != nil {
			return err
		}
	}
	for _, sound := range group.Sounds {
		p, err := rm.fsPath(sound.ID)
		if err == nil {
			_, err = fs.Stat(rm.fsys, p)
		}
		if err != nil {
			return loadErr(ResourceAudio, sound.ID, err)
		}
	}

	rm.log.Infof("loaded group %s: %d images, %d fonts, %d sounds",
		groupName, len(group.Images), len(group.Fonts), len(group.Sounds))
	return nil
}
