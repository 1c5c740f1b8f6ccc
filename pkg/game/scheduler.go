package game

import "time"

// tickScheduler owns the physics ticker, which only exists while a match is played.
type tickScheduler struct {
	interval time.Duration
	ticker   *time.Ticker
}

func newTickScheduler(interval time.Duration) *tickScheduler {
	return &tickScheduler{interval: interval}
}

// C returns the ticker channel, or nil while stopped so a select never fires on it.
func (s *tickScheduler) C() <-chan time.Time {
	if s.ticker == nil {
		return nil
	}
	return s.ticker.C
}

// sync starts or stops the ticker to match playing.
func (s *tickScheduler) sync(playing bool) {
	switch {
	case playing && s.ticker == nil:
		s.ticker = time.NewTicker(s.interval)
	case !playing && s.ticker != nil:
		s.ticker.Stop()
		s.ticker = nil
	}
}

func (s *tickScheduler) running() bool {
	return s.ticker != nil
}
