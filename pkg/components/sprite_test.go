package components

import (
	"testing"

	"github.com/decker502/survival/pkg/geom"
)

func TestSpriteComponentActiveWraps(t *testing.T) {
	s := NewSpriteComponent()
	if _, ok := s.Current(); ok {
		t.Fatal("empty sprite should have no current frame")
	}

	a := &Texture{Width: 10, Height: 10}
	b := &Texture{Width: 20, Height: 20}
	s.Add(a, geom.Vec2{X: 5, Y: 5})
	s.Add(b, geom.Vec2{})

	if s.Active != 0 {
		t.Errorf("first texture should be active, got %d", s.Active)
	}

	s.SetActive(3)
	if s.Active != 1 {
		t.Errorf("SetActive(3) with 2 frames = %d, want 1", s.Active)
	}
	f, _ := s.Current()
	if f.Texture != b {
		t.Error("Current should return the second texture")
	}

	s.Remove(1)
	if s.Active != 0 {
		t.Errorf("after removing the active frame, Active = %d, want 0", s.Active)
	}
	s.Remove(0)
	if s.Active != -1 {
		t.Errorf("empty list should set Active to -1, got %d", s.Active)
	}
	s.Remove(5) // 越界忽略
}
