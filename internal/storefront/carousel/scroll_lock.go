package carousel

import "sync"

// PageScroll is a reference-counted ScrollLock. Scroll is suspended while any holder
// has not released.
type PageScroll struct {
	mu      sync.Mutex
	holders int
}

func (p *PageScroll) Suspend() func() {
	p.mu.Lock()
	p.holders++
	p.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			p.mu.Lock()
			p.holders--
			p.mu.Unlock()
		})
	}
}

func (p *PageScroll) Suspended() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.holders > 0
}
