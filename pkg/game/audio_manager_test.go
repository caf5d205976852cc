package game

import (
	"bytes"
	"encoding/binary"
	"errors"
	"path/filepath"
	"testing"

	"github.com/decker502/survival/pkg/geom"
)

// testWAV 生成 48kHz 单声道 16 位 PCM 的 WAV 数据
func testWAV(samples int) []byte {
	const (
		rate     = 48000
		channels = 1
		bits     = 16
	)
	dataSize := samples * channels * bits / 8

	var buf bytes.Buffer
	buf.WriteString("RIFF")
	binary.Write(&buf, binary.LittleEndian, uint32(36+dataSize))
	buf.WriteString("WAVEfmt ")
	binary.Write(&buf, binary.LittleEndian, uint32(16))
	binary.Write(&buf, binary.LittleEndian, uint16(1))
	binary.Write(&buf, binary.LittleEndian, uint16(channels))
	binary.Write(&buf, binary.LittleEndian, uint32(rate))
	binary.Write(&buf, binary.LittleEndian, uint32(rate*channels*bits/8))
	binary.Write(&buf, binary.LittleEndian, uint16(channels*bits/8))
	binary.Write(&buf, binary.LittleEndian, uint16(bits))
	buf.WriteString("data")
	binary.Write(&buf, binary.LittleEndian, uint32(dataSize))
	for i := 0; i < samples; i++ {
		v := int16(1000)
		if i%2 == 1 {
			v = -1000
		}
		binary.Write(&buf, binary.LittleEndian, v)
	}
	return buf.Bytes()
}

func newTestAudio(t *testing.T, files ...string) (*AudioManager, string) {
	t.Helper()
	root := t.TempDir()
	for _, f := range files {
		writeFile(t, filepath.Join(root, f), testWAV(128))
	}
	am := NewAudioManager(testAudioContext, 0.5)
	NewResourceManager(root, am)
	return am, root
}

func TestAudioManager_RegisterAndPlay(t *testing.T) {
	am, _ := newTestAudio(t, "gun.wav", "laser.wav", "explosion.wav")

	for i, p := range []string{"gun.wav", "laser.wav", "explosion.wav"} {
		if got := am.AddNewAudioFile(p); got != i {
			t.Errorf("AddNewAudioFile(%q) = %d, want %d", p, got, i)
		}
	}
	if err := am.Initialise(); err != nil {
		t.Fatalf("Initialise: %v", err)
	}
	if len(am.players) != 3 {
		t.Fatalf("players = %d, want 3", len(am.players))
	}

	// 越界下标被忽略
	for _, i := range []int{-1, 0, 2, 3, 100} {
		am.PlayAudioIndex(i)
	}
	if am.Disabled() {
		t.Error("manager should stay enabled")
	}

	// 重复初始化为空操作
	if err := am.Initialise(); err != nil {
		t.Errorf("second Initialise: %v", err)
	}
}

func TestAudioManager_LazyInitialise(t *testing.T) {
	am, _ := newTestAudio(t, "laser.wav")
	am.AddNewAudioFile("laser.wav")

	am.PlayAudioIndex(0)
	if !am.initialised || len(am.players) != 1 {
		t.Errorf("PlayAudioIndex should initialise, players = %d", len(am.players))
	}

	// 初始化之后注册的文件立即解码
	if idx := am.AddNewAudioFile("laser.wav"); idx != 1 || len(am.players) != 2 {
		t.Errorf("late register: idx=%d players=%d", idx, len(am.players))
	}
}

func TestAudioManager_FailureDisables(t *testing.T) {
	am, _ := newTestAudio(t, "gun.wav")
	am.AddNewAudioFile("gun.wav")
	am.AddNewAudioFile("missing.wav")

	err := am.Initialise()
	var le *LoadError
	if !errors.As(err, &le) || le.Kind != ResourceAudio || le.Path != "missing.wav" {
		t.Fatalf("Initialise error = %v, want audio LoadError for missing.wav", err)
	}
	if !am.Disabled() {
		t.Fatal("manager should be disabled")
	}
	if err := am.Initialise(); !errors.Is(err, ErrAudioDisabled) {
		t.Errorf("second Initialise = %v, want ErrAudioDisabled", err)
	}

	am.PlayAudioIndex(0)
	if idx := am.AddNewAudioFile("gun.wav"); idx != 2 {
		t.Errorf("index = %d, want 2", idx)
	}
	if am.players != nil {
		t.Error("disabled manager should hold no players")
	}
}

func TestAudioManager_NoContext(t *testing.T) {
	am := NewAudioManager(nil, 1)
	am.AddNewAudioFile("gun.wav")
	if err := am.Initialise(); err == nil {
		t.Fatal("expected error without audio context")
	}
	if !am.Disabled() {
		t.Error("manager should be disabled")
	}
	am.PlayAudioIndex(0)
}

func TestAudioManager_UnsupportedFormat(t *testing.T) {
	am, root := newTestAudio(t)
	writeFile(t, filepath.Join(root, "noise.bin"), []byte("definitely not audio"))
	am.AddNewAudioFile("noise.bin")
	if err := am.Initialise(); err == nil {
		t.Fatal("expected decode error")
	}
}

func TestAudioManager_Source(t *testing.T) {
	am := NewAudioManager(nil, 1)
	pos, vel := geom.Vec2{X: 1, Y: 2}, geom.Vec2{X: -3, Y: 0}
	am.SetSource(pos, vel)
	if am.SourcePosition != pos || am.SourceVelocity != vel {
		t.Errorf("source = %v %v", am.SourcePosition, am.SourceVelocity)
	}
	if am.Len() != 0 {
		t.Errorf("Len = %d", am.Len())
	}
}

// testAU 生成 8kHz 单声道 μ-law 的 AU 数据
func testAU(samples int) []byte {
	var buf bytes.Buffer
	for _, v := range []uint32{0x2e736e64, 24, uint32(samples), 1, 8000, 1} {
		binary.Write(&buf, binary.BigEndian, v)
	}
	for i := 0; i < samples; i++ {
		buf.WriteByte(byte(i))
	}
	return buf.Bytes()
}

func TestAudioManager_AUFormat(t *testing.T) {
	am, root := newTestAudio(t)
	writeFile(t, filepath.Join(root, "explode.au"), testAU(256))
	// 没有扩展名时按文件头识别
	writeFile(t, filepath.Join(root, "explode"), testAU(64))

	am.AddNewAudioFile("explode.au")
	am.AddNewAudioFile("explode")
	if err := am.Initialise(); err != nil {
		t.Fatalf("Initialise: %v", err)
	}
	if len(am.players) != 2 {
		t.Errorf("players = %d, want 2", len(am.players))
	}
	am.PlayAudioIndex(0)
}
