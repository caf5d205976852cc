package game

import "fmt"

// ResourceKind 资源类别，用于 LoadError
type ResourceKind int

const (
	ResourceTexture ResourceKind = iota
	ResourceFont
	ResourceAudio
	ResourceManifest
)

var resourceKindNames = [...]string{"texture", "font", "audio", "manifest"}

func (k ResourceKind) String() string {
	if k < 0 || int(k) >= len(resourceKindNames) {
		return fmt.Sprintf("ResourceKind(%d)", int(k))
	}
	return resourceKindNames[k]
}

// LoadError 资源加载失败
// 可以用 errors.As 取出，Err 为底层原因
type LoadError struct {
	Kind ResourceKind
	Path string
	Err  error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("load %s %s: %v", e.Kind, e.Path, e.Err)
}

func (e *LoadError) Unwrap() error {
	return e.Err
}

func loadErr(kind ResourceKind, path string, err error) error {
	return &LoadError{Kind: kind, Path: path, Err: err}
}
