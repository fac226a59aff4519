package session

import (
	"time"

	"github.com/sung0916/my-english-edu-sub001/pkg/game/gameplay"
)

// countdown is the per-trap ticker goroutine
type countdown struct {
	stop chan struct{}
	done chan struct{}
}

// startCountdownLocked launches a ticker for the trap that was just
// triggered. Callers hold e.mu.
func (e *Engine) startCountdownLocked() {
	e.gen++
	gen := e.gen
	cd := &countdown{stop: make(chan struct{}), done: make(chan struct{})}
	e.cd = cd

	go func() {
		defer close(cd.done)
		ticker := time.NewTicker(e.opts.TickInterval)
		defer ticker.Stop()
		for {
			select {
			case <-cd.stop:
				return
			case <-ticker.C:
				if !e.tick(gen) {
					return
				}
			}
		}
	}()
}

// stopCountdownLocked cancels the running countdown, if any, and returns a
// channel closed once its goroutine has exited. Bumping the generation makes
// any tick already waiting on e.mu a no-op. Callers hold e.mu and must not
// wait on the returned channel until they release it.
func (e *Engine) stopCountdownLocked() <-chan struct{} {
	if e.cd == nil {
		return nil
	}
	e.gen++
	cd := e.cd
	e.cd = nil
	close(cd.stop)
	return cd.done
}

// tick applies one countdown second. It returns false when the countdown
// should stop.
func (e *Engine) tick(gen uint64) bool {
	e.mu.Lock()
	if gen != e.gen || e.closed || !e.game.Trapped() {
		e.mu.Unlock()
		return false
	}

	expired := gameplay.Tick(e.game)
	if expired {
		// the goroutine is on its way out; nothing to wait for
		e.gen++
		e.cd = nil
		e.logger.Infof("trap countdown ran out, player sent back to %v", e.game.Start)
	}
	e.publishAndUnlock()
	return !expired
}

func wait(done <-chan struct{}) {
	if done != nil {
		<-done
	}
}
