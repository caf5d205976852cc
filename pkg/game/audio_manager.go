package game

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path"
	"strings"
	"sync"

	"github.com/charmbracelet/log"
	"github.com/hajimehoshi/ebiten/v2/audio"
	"github.com/hajimehoshi/ebiten/v2/audio/mp3"
	"github.com/hajimehoshi/ebiten/v2/audio/vorbis"
	"github.com/hajimehoshi/ebiten/v2/audio/wav"

	auaudio "github.com/decker502/survival/internal/audio"
	"github.com/decker502/survival/pkg/geom"
	"github.com/decker502/survival/pkg/logger"
)

// AudioPlayer 游戏使用的音频接口
// 注册音频文件得到下标，之后按下标播放
type AudioPlayer interface {
	AddNewAudioFile(path string) int
	Initialise() error
	PlayAudioIndex(i int)
}

// ErrAudioDisabled 音频初始化失败后 AudioManager 永久禁用
var ErrAudioDisabled = errors.New("audio disabled")

// AudioManager 音效管理器
// 职责：
//   - 按注册顺序保存音频文件路径，下标即播放句柄
//   - Initialise 一次性解码所有音频（WAV/MP3/OGG）
//   - 初始化失败只记录一次日志，之后所有播放都是空操作
//
// 声源位置和速度只随播放请求保存，不做空间化
type AudioManager struct {
	mu sync.Mutex

	context *audio.Context
	read    func(name string) ([]byte, error)
	volume  float64

	paths   []string
	players []*audio.Player

	initialised bool
	disabled    bool

	SourcePosition geom.Vec2
	SourceVelocity geom.Vec2

	log *log.Logger
}

// NewAudioManager 创建音频管理器
// ctx 为 nil 时管理器在 Initialise 时被禁用
func NewAudioManager(ctx *audio.Context, volume float64) *AudioManager {
	return &AudioManager{
		context: ctx,
		read:    os.ReadFile,
		volume:  volume,
		log:     logger.For("AudioManager"),
	}
}

// SetReader 设置读取音频文件的函数
func (am *AudioManager) SetReader(read func(name string) ([]byte, error)) {
	am.mu.Lock()
	defer am.mu.Unlock()
	am.read = read
}

// AddNewAudioFile 注册音频文件，返回播放下标
// 初始化之后注册的文件会立即解码
func (am *AudioManager) AddNewAudioFile(p string) int {
	am.mu.Lock()
	defer am.mu.Unlock()

	am.paths = append(am.paths, p)
	idx := len(am.paths) - 1
	if am.initialised && !am.disabled {
		player, err := am.newPlayer(p)
		if err != nil {
			am.disable(err)
			return idx
		}
		am.players = append(am.players, player)
	}
	return idx
}

// Initialise 解码所有已注册的音频
// 只执行一次；失败后管理器被禁用并返回错误
func (am *AudioManager) Initialise() error {
	am.mu.Lock()
	defer am.mu.Unlock()
	return am.initialiseLocked()
}

func (am *AudioManager) initialiseLocked() error {
	if am.disabled {
		return ErrAudioDisabled
	}
	if am.initialised {
		return nil
	}
	am.initialised = true

	if am.context == nil {
		err := errors.New("no audio context")
		am.disable(err)
		return err
	}

	players := make([]*audio.Player, 0, len(am.paths))
	for _, p := range am.paths {
		player, err := am.newPlayer(p)
		if err != nil {
			am.disable(err)
			return err
		}
		players = append(players, player)
	}
	am.players = players
	am.log.Infof("initialised %d sounds", len(players))
	return nil
}

// disable 记录一次错误并永久关闭播放
func (am *AudioManager) disable(err error) {
	if am.disabled {
		return
	}
	am.disabled = true
	am.players = nil
	am.log.Warnf("audio disabled: %v", err)
}

// Disabled 报告管理器是否已被禁用
func (am *AudioManager) Disabled() bool {
	am.mu.Lock()
	defer am.mu.Unlock()
	return am.disabled
}

// Len 返回已注册的音频数量
func (am *AudioManager) Len() int {
	am.mu.Lock()
	defer am.mu.Unlock()
	return len(am.paths)
}

// SetVolume 设置音量（0-1），对之后的播放生效
func (am *AudioManager) SetVolume(volume float64) {
	am.mu.Lock()
	defer am.mu.Unlock()
	am.volume = volume
}

// SetSource 设置声源位置和速度
func (am *AudioManager) SetSource(pos, vel geom.Vec2) {
	am.mu.Lock()
	defer am.mu.Unlock()
	am.SourcePosition = pos
	am.SourceVelocity = vel
}

// PlayAudioIndex 从头播放第 i 个音频
// 下标越界时忽略；尚未初始化时先初始化
func (am *AudioManager) PlayAudioIndex(i int) {
	am.mu.Lock()
	defer am.mu.Unlock()

	if !am.initialised {
		if err := am.initialiseLocked(); err != nil {
			return
		}
	}
	if am.disabled || i < 0 || i >= len(am.players) {
		return
	}

	player := am.players[i]
	player.SetVolume(am.volume)
	if err := player.Rewind(); err != nil {
		am.log.Warnf("rewind sound %s: %v", am.paths[i], err)
	}
	player.Play()
}

func (am *AudioManager) newPlayer(p string) (*audio.Player, error) {
	data, err := am.read(p)
	if err != nil {
		return nil, loadErr(ResourceAudio, p, err)
	}
	stream, err := decodeAudio(p, data, am.context.SampleRate())
	if err != nil {
		return nil, loadErr(ResourceAudio, p, err)
	}
	player, err := am.context.NewPlayer(stream)
	if err != nil {
		return nil, loadErr(ResourceAudio, p, fmt.Errorf("create player: %w", err))
	}
	return player, nil
}

// decodeAudio 按扩展名选择解码器，输出重采样到 sampleRate
// 资源 ID 没有扩展名，此时按文件头识别 AU，再依次尝试 WAV、OGG、MP3
func decodeAudio(name string, data []byte, sampleRate int) (io.ReadSeeker, error) {
	switch strings.ToLower(path.Ext(name)) {
	case ".wav":
		return wav.DecodeWithSampleRate(sampleRate, bytes.NewReader(data))
	case ".mp3":
		return mp3.DecodeWithSampleRate(sampleRate, bytes.NewReader(data))
	case ".ogg":
		return vorbis.DecodeWithSampleRate(sampleRate, bytes.NewReader(data))
	case ".au":
		return decodeAU(data, sampleRate)
	}

	if auaudio.IsAU(data) {
		return decodeAU(data, sampleRate)
	}
	if s, err := wav.DecodeWithSampleRate(sampleRate, bytes.NewReader(data)); err == nil {
		return s, nil
	}
	if s, err := vorbis.DecodeWithSampleRate(sampleRate, bytes.NewReader(data)); err == nil {
		return s, nil
	}
	if s, err := mp3.DecodeWithSampleRate(sampleRate, bytes.NewReader(data)); err == nil {
		return s, nil
	}
	return nil, fmt.Errorf("unsupported audio format: %s (supported: .wav, .mp3, .ogg, .au)", name)
}

func decodeAU(data []byte, sampleRate int) (io.ReadSeeker, error) {
	s, err := auaudio.DecodeAU(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	if s.SampleRate() == sampleRate {
		return s, nil
	}
	return audio.Resample(s, s.Length(), s.SampleRate(), sampleRate), nil
}
