package tracker

import (
	"context"
	"fmt"
	"time"
)

// IncrementRunning adds one second of elapsed time to every task whose
// timer flag is set, and reports how many tasks advanced.
func (s *Store) IncrementRunning() (int, error) {
	advanced := 0
	err := s.update(func(st *trackerState) error {
		for i := range st.Tasks {
			if !st.Tasks[i].TimerRunning {
				continue
			}
			st.Tasks[i].TimeElapsed++
			advanced++
		}
		return nil
	})
	if err != nil {
		return 0, fmt.Errorf("write tasks: %w", err)
	}
	return advanced, nil
}

// RunTicker advances running task timers once per interval until ctx is
// cancelled. The store never self-cancels: the caller owns the tick source
// and stops it by cancelling ctx, so a torn-down view cannot leak ticks.
func (s *Store) RunTicker(ctx context.Context, interval time.Duration) error {
	if interval <= 0 {
		interval = time.Second
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			if _, err := s.IncrementRunning(); err != nil {
				return err
			}
		}
	}
}
