package domain

import (
	"errors"
	"time"

	"github.com/alexanderramin/stagehand/internal/timeline"
)

// ErrPhaseWindowInverted indicates a phase whose end precedes its start.
var ErrPhaseWindowInverted = errors.New("phase end before phase start")

// Phase is a named, time-bounded segment of an event's lifecycle.
// Created explicitly by the user or implicitly by the assignment
// orchestrator when it lays out the logistics phases.
type Phase struct {
	ID            string
	EventID       string
	PhaseTypeID   string
	Name          string
	StartTime     time.Time
	EndTime       time.Time
	SequenceOrder int
	Color         string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// Window returns the phase's stored time window.
func (p *Phase) Window() timeline.Window {
	return timeline.Window{Start: p.StartTime, End: p.EndTime}
}

// SetWindow replaces the stored window.
func (p *Phase) SetWindow(w timeline.Window) {
	p.StartTime = w.Start
	p.EndTime = w.End
}

// Validate checks the basic ordering invariant.
func (p *Phase) Validate() error {
	if p.EndTime.Before(p.StartTime) {
		return ErrPhaseWindowInverted
	}
	return nil
}
