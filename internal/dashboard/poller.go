package dashboard

import (
	"sync"
	"time"

	"github.com/bionicotaku/lingo-services-videohub/internal/models/vo"
)

const defaultPollInterval = 5 * time.Second

// Poller 在存在未完成视频时按固定间隔发出刷新信号。
// 每次刷新后调用 Reschedule；全部进入终态时计时器被清除。
type Poller struct {
	interval time.Duration
	ticks    chan struct{}

	mu    sync.Mutex
	timer *time.Timer
	armed bool
}

// NewPoller 构造 Poller；interval<=0 时使用 5s。
func NewPoller(interval time.Duration) *Poller {
	if interval <= 0 {
		interval = defaultPollInterval
	}
	return &Poller{interval: interval, ticks: make(chan struct{}, 1)}
}

// Ticks 在计时器到期时收到信号。
func (p *Poller) Ticks() <-chan struct{} {
	return p.ticks
}

// Reschedule 根据最新列表决定是否安排下一次刷新，返回是否已安排。
func (p *Poller) Reschedule(items []vo.VideoWithAnalytics) bool {
	if !NeedsPolling(items) {
		p.Stop()
		return false
	}
	p.arm()
	return true
}

// Retry 在刷新失败后无条件安排下一次刷新。
func (p *Poller) Retry() {
	p.arm()
}

func (p *Poller) arm() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.timer == nil {
		p.timer = time.AfterFunc(p.interval, p.fire)
	} else {
		p.timer.Stop()
		p.timer.Reset(p.interval)
	}
	p.armed = true
}

// Stop 清除计时器并丢弃尚未消费的信号，可重复调用。
func (p *Poller) Stop() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.timer != nil {
		p.timer.Stop()
	}
	p.armed = false
	select {
	case <-p.ticks:
	default:
	}
}

// Armed reports whether a refresh is scheduled.
func (p *Poller) Armed() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.armed
}

func (p *Poller) fire() {
	p.mu.Lock()
	p.armed = false
	p.mu.Unlock()
	select {
	case p.ticks <- struct{}{}:
	default:
	}
}
