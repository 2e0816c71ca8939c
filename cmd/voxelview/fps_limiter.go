package main

import (
	"time"

	"voxelview/internal/config"
)

// spinWindow is how early the limiter stops sleeping and starts polling.
const spinWindow = 200 * time.Microsecond

// FPSLimiter paces frames to config.FPSLimit.
type FPSLimiter struct {
	next time.Time
}

// Wait blocks until the next frame is due. With no limit it returns at once.
func (f *FPSLimiter) Wait() {
	limit := config.FPSLimit()
	if limit <= 0 {
		f.next = time.Time{}
		return
	}

	target := time.Second / time.Duration(limit)
	if f.next.IsZero() {
		f.next = time.Now().Add(target)
	} else {
		f.next = f.next.Add(target)
	}

	for {
		remaining := time.Until(f.next)
		if remaining <= 0 {
			break
		}
		if remaining > spinWindow {
			time.Sleep(remaining - spinWindow)
		}
	}

	// resync after a hitch instead of racing to catch up
	if late := -time.Until(f.next); late > target {
		f.next = time.Now().Add(target)
	}
}
