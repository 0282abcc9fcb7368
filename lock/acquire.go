package lock

import (
	"fmt"
	"log/slog"
	"time"
)

const (
	// DefaultDelay is how long a writer waits after seeing the flag held.
	DefaultDelay = 300 * time.Millisecond
	// DefaultForceAfter is the number of failed checks tolerated before the
	// writer assumes the holder died and resets the flag.
	DefaultForceAfter = 100
)

// Options tune Acquire. The zero value uses the defaults above, time.Sleep
// and a logger that discards everything.
type Options struct {
	Delay      time.Duration
	ForceAfter int
	Sleep      func(time.Duration)
	Logger     *slog.Logger
}

func (o Options) withDefaults() Options {
	if o.Delay <= 0 {
		o.Delay = DefaultDelay
	}
	if o.ForceAfter <= 0 {
		o.ForceAfter = DefaultForceAfter
	}
	if o.Sleep == nil {
		o.Sleep = time.Sleep
	}
	if o.Logger == nil {
		o.Logger = slog.New(slog.DiscardHandler)
	}
	return o
}

// Stats describes how an acquisition went.
type Stats struct {
	// Attempts counts failed checks, i.e. how often the flag was seen held.
	Attempts int
	// ForcedReleases counts how often the flag was reset by this writer.
	ForcedReleases int
}

// Acquire blocks until flag is taken.
//
// Every time the flag is seen held the writer sleeps for Delay and counts a
// failed attempt. Once the count exceeds ForceAfter the flag is forced to
// Unlocked and the writer sleeps once more before checking again. The count
// is never reset, so under sustained contention every further failure forces
// another release. There is no timeout and no way to cancel.
//
// The flag stays Locked after Acquire returns. Nothing in this package
// releases it; the next writer's forced release does.
//
// An error is returned only when the flag itself cannot be read or written.
func Acquire(flag Flag, opts Options) (Stats, error) {
	opts = opts.withDefaults()
	var st Stats
	for {
		ok, err := flag.TryAcquire()
		if err != nil {
			return st, fmt.Errorf("check lock: %w", err)
		}
		if ok {
			if st.Attempts > 0 {
				opts.Logger.Debug("lock acquired after waiting",
					"attempts", st.Attempts, "forced_releases", st.ForcedReleases)
			}
			return st, nil
		}

		opts.Sleep(opts.Delay)
		st.Attempts++

		if st.Attempts > opts.ForceAfter {
			opts.Logger.Warn("lock still held, forcing release",
				"attempts", st.Attempts, "force_after", opts.ForceAfter)
			if err := flag.ForceRelease(); err != nil {
				return st, fmt.Errorf("force release: %w", err)
			}
			st.ForcedReleases++
			opts.Sleep(opts.Delay)
		}
	}
}
