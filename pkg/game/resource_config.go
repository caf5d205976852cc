package game

import (
	"fmt"
	"path"

	"gopkg.in/yaml.v3"
)

// ResourceConfig 资源清单（data/resources.yaml）
//
// 结构：
//
//	version: "1.0"
//	base_path: assets
//	groups:
//	  survival:
//	    images: [...]
//	    sounds: [...]
//	    fonts: [...]
type ResourceConfig struct {
	Version  string                   `yaml:"version"`
	BasePath string                   `yaml:"base_path"` // 所有资源路径的前缀
	Groups   map[string]ResourceGroup `yaml:"groups"`
}

// ResourceGroup 可以一起加载的一组资源
type ResourceGroup struct {
	Images []ImageResource `yaml:"images"`
	Sounds []SoundResource `yaml:"sounds"`
	Fonts  []FontResource  `yaml:"fonts"`
}

// ImageResource 图像资源
// 精灵表通过 cell_width / cell_height 标注单元格大小
//
//	- id: IMAGE_ASTEROID
//	  path: textures/asteroid.png
//	  cell_width: 64
//	  cell_height: 64
type ImageResource struct {
	ID         string `yaml:"id"`
	Path       string `yaml:"path"`
	CellWidth  int    `yaml:"cell_width,omitempty"`
	CellHeight int    `yaml:"cell_height,omitempty"`
}

// SoundResource 音频资源
type SoundResource struct {
	ID   string `yaml:"id"`
	Path string `yaml:"path"`
}

// FontResource 字体资源
// kind 为空时按扩展名判断（.fnt 为位图字体）
type FontResource struct {
	ID   string  `yaml:"id"`
	Path string  `yaml:"path"`
	Size float64 `yaml:"size,omitempty"`
	Kind string  `yaml:"kind,omitempty"`
}

// ParseResourceConfig 解析 YAML 资源清单
func ParseResourceConfig(data []byte) (*ResourceConfig, error) {
	var cfg ResourceConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse resource manifest: %w", err)
	}
	for name, g := range cfg.Groups {
		for _, f := range g.Fonts {
			if f.Kind == "" {
				continue
			}
			if _, err := ParseFontKind(f.Kind); err != nil {
				return nil, fmt.Errorf("group %s font %s: %w", name, f.ID, err)
			}
		}
	}
	return &cfg, nil
}

// buildFullPath 拼接 base_path 与相对路径
func buildFullPath(basePath, relativePath string) string {
	if basePath == "" {
		return path.Clean(relativePath)
	}
	return path.Join(basePath, relativePath)
}
