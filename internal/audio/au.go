// Package audio 解码 Ebitengine 不直接支持的音频格式
package audio

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
)

// Sun/NeXT .au 文件头，全部字段为大端序
type auHeader struct {
	Magic      uint32
	DataOffset uint32
	DataSize   uint32 // 未知时为 0xFFFFFFFF
	Encoding   uint32
	SampleRate uint32
	Channels   uint32
}

const (
	auMagic         = 0x2e736e64 // ".snd"
	auHeaderSize    = 24
	auUnknownSize   = 0xFFFFFFFF
	auEncodingULaw  = 1
	auEncodingPCM16 = 3
)

// ErrNotAU 数据不是 .au 格式
var ErrNotAU = errors.New("not a Sun/NeXT audio file")

// IsAU 检查数据是否以 .au 魔数开头
func IsAU(data []byte) bool {
	return len(data) >= 4 && binary.BigEndian.Uint32(data) == auMagic
}

// AUStream 解码后的 PCM 流
// 格式与 Ebitengine 播放器要求一致：16 位有符号小端、双声道，采样率为文件原始采样率
type AUStream struct {
	*bytes.Reader
	sampleRate int
}

// SampleRate 返回文件的采样率
func (s *AUStream) SampleRate() int {
	return s.sampleRate
}

// Length 返回解码后的字节数
func (s *AUStream) Length() int64 {
	return s.Size()
}

// DecodeAU 解码 μ-law 或 16 位线性 PCM 编码的单声道/双声道 .au 数据
func DecodeAU(r io.Reader) (*AUStream, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read au: %w", err)
	}
	if len(data) < auHeaderSize || !IsAU(data) {
		return nil, ErrNotAU
	}

	var h auHeader
	if err := binary.Read(bytes.NewReader(data), binary.BigEndian, &h); err != nil {
		return nil, fmt.Errorf("read au header: %w", err)
	}
	if h.Channels < 1 || h.Channels > 2 {
		return nil, fmt.Errorf("au: unsupported channel count %d", h.Channels)
	}
	if h.SampleRate == 0 {
		return nil, errors.New("au: zero sample rate")
	}
	if h.DataOffset < auHeaderSize || int(h.DataOffset) > len(data) {
		return nil, fmt.Errorf("au: invalid data offset %d (file size %d)", h.DataOffset, len(data))
	}

	body := data[h.DataOffset:]
	if h.DataSize != auUnknownSize && int(h.DataSize) < len(body) {
		body = body[:h.DataSize]
	}

	var samples []int16
	switch h.Encoding {
	case auEncodingULaw:
		samples = make([]int16, len(body))
		for i, b := range body {
			samples[i] = ulaw(b)
		}
	case auEncodingPCM16:
		samples = make([]int16, len(body)/2)
		for i := range samples {
			samples[i] = int16(binary.BigEndian.Uint16(body[i*2:]))
		}
	default:
		return nil, fmt.Errorf("au: unsupported encoding %d", h.Encoding)
	}

	return &AUStream{
		Reader:     bytes.NewReader(toStereo(samples, int(h.Channels))),
		sampleRate: int(h.SampleRate),
	}, nil
}

// ulaw 按 G.711 把一个 μ-law 字节展开为 16 位 PCM
func ulaw(b byte) int16 {
	b = ^b
	exponent := (b >> 4) & 0x07
	mantissa := int32(b & 0x0F)
	sample := ((mantissa<<3)+0x84)<<exponent - 0x84
	if b&0x80 != 0 {
		return int16(-sample)
	}
	return int16(sample)
}

// toStereo 输出小端字节，单声道样本复制到左右两个声道
func toStereo(samples []int16, channels int) []byte {
	frames := len(samples) / channels
	out := make([]byte, frames*4)
	for f := 0; f < frames; f++ {
		l := samples[f*channels]
		r := l
		if channels == 2 {
			r = samples[f*channels+1]
		}
		binary.LittleEndian.PutUint16(out[f*4:], uint16(l))
		binary.LittleEndian.PutUint16(out[f*4+2:], uint16(r))
	}
	return out
}
