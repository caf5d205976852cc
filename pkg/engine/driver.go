// Package engine 实现固定步长的游戏循环
//
// 逻辑以固定频率运行，渲染尽可能频繁。每次循环迭代最多补跑 MaxCatchUpTicks 个
// 逻辑 tick；若仍然落后，剩余的 tick 被丢弃，截止时间重新对齐到当前时间，
// 循环跳过积压而不是越拖越慢。
package engine

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/charmbracelet/log"

	"github.com/decker502/survival/pkg/logger"
)

// 默认值
const (
	DefaultTicksPerSecond  = 60
	DefaultMaxCatchUpTicks = 15
)

// ErrAlreadyRunning 循环已经在运行
var ErrAlreadyRunning = errors.New("engine: driver already running")

// Host 由游戏循环驱动的对象
type Host interface {
	LogicTick()
	RenderFrame()
}

// Options 游戏循环参数
type Options struct {
	TicksPerSecond  int   // 为 0 时使用 DefaultTicksPerSecond
	MaxCatchUpTicks int   // 为 0 时使用 DefaultMaxCatchUpTicks
	YieldWhenIdle   bool  // 没有 tick 到期时休眠到下一个截止时间
	Clock           Clock // 为 nil 时使用 SystemClock
}

// Driver 固定步长游戏循环
//
// Advance 与 Render 只能由同一个 goroutine 调用；Stop 和 Metrics 可以从任意
// goroutine 调用。
type Driver struct {
	host       Host
	clock      Clock
	tps        int64
	maxCatchUp int
	yield      bool

	// 第 n 个 tick 的截止时间为 base + n/tps 秒，按整数运算避免累积误差
	base    time.Time
	n       int64
	started bool

	stop    atomic.Bool
	running atomic.Bool
	done    chan struct{}
	runErr  error

	mu      sync.Mutex
	metrics Metrics
	frames  frameStats

	log *log.Logger
}

// NewDriver 创建游戏循环
func NewDriver(host Host, opts Options) (*Driver, error) {
	if host == nil {
		return nil, errors.New("engine: nil host")
	}
	if opts.TicksPerSecond == 0 {
		opts.TicksPerSecond = DefaultTicksPerSecond
	}
	if opts.MaxCatchUpTicks == 0 {
		opts.MaxCatchUpTicks = DefaultMaxCatchUpTicks
	}
	if opts.TicksPerSecond < 0 || opts.MaxCatchUpTicks < 0 {
		return nil, fmt.Errorf("engine: invalid loop options tps=%d maxCatchUp=%d",
			opts.TicksPerSecond, opts.MaxCatchUpTicks)
	}
	if opts.Clock == nil {
		opts.Clock = SystemClock{}
	}

	return &Driver{
		host:       host,
		clock:      opts.Clock,
		tps:        int64(opts.TicksPerSecond),
		maxCatchUp: opts.MaxCatchUpTicks,
		yield:      opts.YieldWhenIdle,
		log:        logger.For("Driver"),
	}, nil
}

// TickInterval 返回逻辑 tick 的间隔
func (d *Driver) TickInterval() time.Duration {
	return time.Second / time.Duration(d.tps)
}

func (d *Driver) deadline(n int64) time.Time {
	return d.base.Add(time.Duration(n * int64(time.Second) / d.tps))
}

// Advance 运行所有到期的逻辑 tick，返回本次运行的 tick 数
//
// 第一次调用只记录起始时间。之后当前时间晚于下一个截止时间时运行一个 tick，
// 最多 MaxCatchUpTicks 个；达到上限后仍落后则丢弃积压并重新对齐。
func (d *Driver) Advance() int {
	now := d.clock.Now()
	if !d.started {
		d.base = now
		d.n = 0
		d.started = true
		return 0
	}

	ticks := 0
	for ticks < d.maxCatchUp && now.After(d.deadline(d.n)) {
		d.host.LogicTick()
		d.n++
		ticks++
	}

	var skipped int64
	if ticks == d.maxCatchUp && now.After(d.deadline(d.n)) {
		// 截止时间早于 now 的 tick 总数为 ceil(elapsed * tps / 1s)
		elapsed := int64(now.Sub(d.base))
		due := (elapsed*d.tps + int64(time.Second) - 1) / int64(time.Second)
		skipped = due - d.n
		d.base = now
		d.n = 0
		d.log.Debugf("fell behind, skipped %d ticks", skipped)
	}

	d.mu.Lock()
	d.metrics.TicksRun += uint64(ticks)
	d.metrics.SkippedTicks += uint64(skipped)
	d.mu.Unlock()
	return ticks
}

// Render 渲染一帧
func (d *Driver) Render() {
	d.host.RenderFrame()

	now := d.clock.Now()
	d.mu.Lock()
	d.frames.record(now)
	d.metrics.FramesRendered++
	d.metrics.FrameTime = d.frames.avg
	d.metrics.FPS = d.frames.fps
	d.mu.Unlock()
}

// RunOnce 运行到期的逻辑 tick，然后渲染恰好一帧
func (d *Driver) RunOnce() int {
	ticks := d.Advance()
	d.Render()
	return ticks
}

// Run 在当前 goroutine 中循环调用 RunOnce，直到 Stop 被调用或 ctx 被取消
//
// 停止标志只在每次迭代开始时检查，已经开始的 tick 总会完成。
// 因 Stop 退出时返回 nil，因 ctx 退出时返回 ctx.Err()。
func (d *Driver) Run(ctx context.Context) error {
	if !d.running.CompareAndSwap(false, true) {
		return ErrAlreadyRunning
	}
	d.stop.Store(false)
	return d.loop(ctx)
}

func (d *Driver) loop(ctx context.Context) error {
	defer d.running.Store(false)

	d.log.Infof("loop started: %d ticks/s, max catch-up %d", d.tps, d.maxCatchUp)
	defer d.log.Info("loop stopped")

	for {
		if d.stop.Load() {
			return nil
		}
		if err := ctx.Err(); err != nil {
			return err
		}

		if ticks := d.RunOnce(); ticks == 0 && d.yield {
			d.sleepUntilNextTick()
		}
	}
}

// sleepUntilNextTick 休眠到下一个 tick 到期
// 截止时间本身不算到期，因此多等 1ns
func (d *Driver) sleepUntilNextTick() {
	wait := d.deadline(d.n).Sub(d.clock.Now())
	if wait < 0 {
		return
	}
	d.clock.Sleep(wait + time.Nanosecond)
}

// Start 在一个专用 goroutine 中运行循环，用 Stop 和 Wait 结束
func (d *Driver) Start(ctx context.Context) error {
	if !d.running.CompareAndSwap(false, true) {
		return ErrAlreadyRunning
	}
	d.stop.Store(false)
	d.done = make(chan struct{})

	go func() {
		defer close(d.done)
		d.runErr = d.loop(ctx)
	}()
	return nil
}

// Stop 请求循环在下一次迭代开始时退出
func (d *Driver) Stop() {
	d.stop.Store(true)
}

// Wait 等待 Start 启动的循环退出并返回 Run 的结果
func (d *Driver) Wait() error {
	if d.done == nil {
		return nil
	}
	<-d.done
	return d.runErr
}

// Running 循环是否正在运行
func (d *Driver) Running() bool {
	return d.running.Load()
}

// Metrics 返回统计数据的副本
func (d *Driver) Metrics() Metrics {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.metrics
}
