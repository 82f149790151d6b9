package build

import (
	"context"
	"time"
)

// BuildRequest holds per-run options.
type BuildRequest struct {
	// Clean removes the output directory before rendering.
	Clean bool

	// DryRun resolves and validates every page without writing output.
	DryRun bool
}

// BuildResult contains the outcome of a build execution.
type BuildResult struct {
	// BuildID uniquely identifies the run in logs and traces.
	BuildID string

	Status BuildStatus

	// OutputPath is the directory pages were written to.
	OutputPath string

	// Pages lists every resource in render order.
	Pages []PageResult

	// Rendered counts pages written (zero on dry runs).
	Rendered int

	// Collisions lists destination paths claimed more than once. The last
	// resource for a path wins.
	Collisions []string

	Duration  time.Duration
	StartTime time.Time
	EndTime   time.Time
}

// PageResult describes one resource of a build.
type PageResult struct {
	Path     string `json:"path"`
	Kind     string `json:"kind"`
	Source   string `json:"source,omitempty"`
	Target   string `json:"target,omitempty"`
	Template string `json:"template,omitempty"`
}

// BuildStatus represents the outcome of a build execution.
type BuildStatus string

const (
	BuildStatusSuccess BuildStatus = "success"

	// BuildStatusWarning marks a completed build with collisions.
	BuildStatusWarning BuildStatus = "warning"

	BuildStatusFailed    BuildStatus = "failed"
	BuildStatusCancelled BuildStatus = "cancelled"
)

// IsTerminal returns true if the status represents a final state.
func (s BuildStatus) IsTerminal() bool {
	return s == BuildStatusSuccess || s == BuildStatusWarning ||
		s == BuildStatusFailed || s == BuildStatusCancelled
}

// IsSuccess returns true if the build produced output.
func (s BuildStatus) IsSuccess() bool {
	return s == BuildStatusSuccess || s == BuildStatusWarning
}

// Runner is the part of Service the preview loop depends on.
type Runner interface {
	Run(ctx context.Context, req BuildRequest) (*BuildResult, error)
}
