package services

import (
	"log"
	"sync"
	"time"
)

// CountdownRunner drives the per-question countdown: it calls the
// session's Tick once per interval for the lifetime of the process.
// The session itself decides whether a tick does anything, so pausing
// or resetting needs no runner coordination.
type CountdownRunner interface {
	Start()
	Stop()
}

type countdownRunner struct {
	session  SessionService
	interval time.Duration
	wg       sync.WaitGroup
	stopChan chan struct{}
}

func NewCountdownRunner(session SessionService, interval time.Duration) CountdownRunner {
	if interval <= 0 {
		interval = time.Second
	}
	return &countdownRunner{
		session:  session,
		interval: interval,
		stopChan: make(chan struct{}),
	}
}

// Start implements CountdownRunner.
func (r *countdownRunner) Start() {
	r.wg.Add(1)
	go r.run()
	log.Println("✅ Countdown runner started")
}

// Stop implements CountdownRunner. Blocks until the tick loop has
// fully exited so no tick fires against a torn-down session.
func (r *countdownRunner) Stop() {
	close(r.stopChan)
	r.wg.Wait()
	log.Println("✅ Countdown runner stopped")
}

func (r *countdownRunner) run() {
	defer r.wg.Done()

	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	for {
		select {
		case <-r.stopChan:
			return
		case <-ticker.C:
			r.session.Tick()
		}
	}
}
