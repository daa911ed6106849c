// Package rslimiter gates new work on system memory pressure.
package rslimiter

import (
	"context"
	"fmt"
	"runtime"
	"time"

	"github.com/aleister1102/jsmonster/internal/common"
	"github.com/rs/zerolog"
	"github.com/shirou/gopsutil/v3/mem"
)

// ResourceLimiterConfig controls the memory gate
type ResourceLimiterConfig struct {
	// Used system memory, in percent, above which Acquire waits. Zero disables the gate.
	MaxMemoryPercent float64
	// Polling interval while waiting for memory to drop.
	CheckInterval time.Duration
	// Longest time Acquire waits before giving up.
	MaxWait time.Duration
}

// DefaultResourceLimiterConfig returns a disabled gate with sane polling values.
func DefaultResourceLimiterConfig() ResourceLimiterConfig {
	return ResourceLimiterConfig{
		CheckInterval: 250 * time.Millisecond,
		MaxWait:       30 * time.Second,
	}
}

// ResourceLimiter blocks new fetches while system memory is above threshold
type ResourceLimiter struct {
	config ResourceLimiterConfig
	logger zerolog.Logger
	probe  func() (float64, error)
}

// NewResourceLimiter creates a new resource limiter
func NewResourceLimiter(config ResourceLimiterConfig, logger zerolog.Logger) *ResourceLimiter {
	defaults := DefaultResourceLimiterConfig()
	if config.CheckInterval <= 0 {
		config.CheckInterval = defaults.CheckInterval
	}
	if config.MaxWait <= 0 {
		config.MaxWait = defaults.MaxWait
	}

	return &ResourceLimiter{
		config: config,
		logger: logger.With().Str("component", "ResourceLimiter").Logger(),
		probe:  systemMemoryPercent,
	}
}

// Enabled reports whether the gate is active.
func (rl *ResourceLimiter) Enabled() bool {
	return rl != nil && rl.config.MaxMemoryPercent > 0
}

// CheckSystemMemoryLimit reports whether used system memory is above the threshold.
func (rl *ResourceLimiter) CheckSystemMemoryLimit() (bool, float64, error) {
	if !rl.Enabled() {
		return false, 0, nil
	}

	usedPercent, err := rl.probe()
	if err != nil {
		return false, 0, fmt.Errorf("failed to get system memory stats: %w", err)
	}
	return usedPercent > rl.config.MaxMemoryPercent, usedPercent, nil
}

// Acquire returns once memory is below the threshold. It forces a garbage
// collection on the first refusal and returns ErrMemoryPressure after
// MaxWait. A failing probe never blocks work.
func (rl *ResourceLimiter) Acquire(ctx context.Context) error {
	if !rl.Enabled() {
		return nil
	}

	deadline := time.Now().Add(rl.config.MaxWait)
	ticker := time.NewTicker(rl.config.CheckInterval)
	defer ticker.Stop()

	for attempt := 0; ; attempt++ {
		exceeded, usedPercent, err := rl.CheckSystemMemoryLimit()
		if err != nil {
			rl.logger.Debug().Err(err).Msg("Memory probe failed, not gating")
			return nil
		}
		if !exceeded {
			return nil
		}

		if attempt == 0 {
			rl.logger.Warn().
				Float64("used_percent", usedPercent).
				Float64("threshold_percent", rl.config.MaxMemoryPercent).
				Msg("System memory usage exceeded threshold, delaying fetch")
			runtime.GC()
		}

		if time.Now().After(deadline) {
			return common.WrapErrorf(common.ErrMemoryPressure, "used %.1f%% > %.1f%%", usedPercent, rl.config.MaxMemoryPercent)
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}
	}
}

func systemMemoryPercent() (float64, error) {
	vmStat, err := mem.VirtualMemory()
	if err != nil {
		return 0, err
	}
	return vmStat.UsedPercent, nil
}
