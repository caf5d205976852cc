package engine

import "time"

// frameAvgCount 帧时间滑动平均的窗口大小
const frameAvgCount = 30

// Metrics 游戏循环统计
type Metrics struct {
	TicksRun       uint64        // 已执行的逻辑 tick 数
	FramesRendered uint64        // 已渲染的帧数
	SkippedTicks   uint64        // 超出补帧上限而被丢弃的 tick 数
	FrameTime      time.Duration // 最近 frameAvgCount 帧的平均帧间隔
	FPS            float64       // 最近一秒的帧数
}

// frameStats 计算帧时间平均值和 FPS
type frameStats struct {
	samples  [frameAvgCount]time.Duration
	count    int
	avg      time.Duration
	frames   int
	accum    time.Duration
	fps      float64
	last     time.Time
	hasFrame bool
}

// record 记录一帧，now 为该帧的渲染时间
func (s *frameStats) record(now time.Time) {
	if !s.hasFrame {
		s.last = now
		s.hasFrame = true
		return
	}
	elapsed := now.Sub(s.last)
	s.last = now

	s.samples[s.count%frameAvgCount] = elapsed
	s.count++
	n := min(s.count, frameAvgCount)
	var sum time.Duration
	for i := 0; i < n; i++ {
		sum += s.samples[i]
	}
	s.avg = sum / time.Duration(n)

	s.frames++
	s.accum += elapsed
	if s.accum >= time.Second {
		s.fps = float64(s.frames) / s.accum.Seconds()
		s.frames = 0
		s.accum = 0
	}
}
