package server

import (
	"sync"
	"time"

	"git.home.luguber.info/inful/showcase/internal/build"
)

// BuildState tracks the outcome of the most recent build for the health
// endpoint and the error page.
type BuildState struct {
	mu           sync.RWMutex
	lastError    error
	last         *build.BuildResult
	hasGoodBuild bool
	builds       int
}

// Record stores the outcome of a build.
func (s *BuildState) Record(result *build.BuildResult, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.builds++
	s.last = result
	s.lastError = err
	if err == nil {
		s.hasGoodBuild = true
	}
}

// Snapshot is a point-in-time copy of BuildState.
type Snapshot struct {
	Err          error
	Last         *build.BuildResult
	HasGoodBuild bool
	Builds       int
}

// Snapshot returns the current state.
func (s *BuildState) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return Snapshot{Err: s.lastError, Last: s.last, HasGoodBuild: s.hasGoodBuild, Builds: s.builds}
}

// HealthResponse is the health endpoint payload.
type HealthResponse struct {
	Status       string     `json:"status"`
	Builds       int        `json:"builds"`
	HasGoodBuild bool       `json:"has_good_build"`
	LastBuild    *LastBuild `json:"last_build,omitempty"`
}

// LastBuild summarizes the most recent build.
type LastBuild struct {
	ID         string    `json:"id"`
	Status     string    `json:"status"`
	Pages      int       `json:"pages"`
	Collisions []string  `json:"collisions,omitempty"`
	FinishedAt time.Time `json:"finished_at"`
	DurationMS int64     `json:"duration_ms"`
}

func (s Snapshot) health() HealthResponse {
	resp := HealthResponse{Status: "ok", Builds: s.Builds, HasGoodBuild: s.HasGoodBuild}
	switch {
	case s.Builds == 0:
		resp.Status = "starting"
	case s.Err != nil:
		resp.Status = "error"
	}
	if s.Last != nil {
		resp.LastBuild = &LastBuild{
			ID:         s.Last.BuildID,
			Status:     string(s.Last.Status),
			Pages:      len(s.Last.Pages),
			Collisions: s.Last.Collisions,
			FinishedAt: s.Last.EndTime,
			DurationMS: s.Last.Duration.Milliseconds(),
		}
	}
	return resp
}
