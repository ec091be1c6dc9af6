// Package timer holds the in-progress sleep, nursing, and pumping
// sessions. Each slot carries at most one active timer; the whole state is
// snapshotted to disk on every mutation so running timers survive app
// restarts. Database rows are written by the caller at stop time (sleep is
// the exception: its open-ended row is inserted when the timer starts).
package timer

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"
)

type Side string

const (
	SideLeft  Side = "left"
	SideRight Side = "right"
)

// Slot is one active timer: which baby and when it started.
type Slot struct {
	BabyID    string    `json:"babyId"`
	StartTime time.Time `json:"startTime"`
}

// NursingSlot additionally tracks which breast is in use.
type NursingSlot struct {
	Slot
	Side Side `json:"side"`
}

type snapshot struct {
	Sleep   *Slot        `json:"activeSleepTimer"`
	Nursing *NursingSlot `json:"activeNursingTimer"`
	Pumping *Slot        `json:"activePumpingTimer"`
}

// State is the three-slot timer state machine. It is not safe for
// concurrent use; the TUI mutates it from a single update loop.
type State struct {
	path string

	sleep   *Slot
	nursing *NursingSlot
	pumping *Slot
}

// Load reads the snapshot at path, returning empty state when no snapshot
// exists yet. An undecodable snapshot is also treated as empty: timers are
// advisory and must never block startup.
func Load(path string) (*State, error) {
	st := &State{path: path}

	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return st, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read timer state: %w", err)
	}

	var snap snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return st, nil
	}
	st.sleep = snap.Sleep
	st.nursing = snap.Nursing
	st.pumping = snap.Pumping
	return st, nil
}

// DefaultStatePath returns ~/.config/dotsby/timers.json
func DefaultStatePath() (string, error) {
	cfg, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(cfg, "dotsby", "timers.json"), nil
}

func (s *State) save() error {
	if s.path == "" {
		return nil
	}
	data, err := json.MarshalIndent(snapshot{Sleep: s.sleep, Nursing: s.nursing, Pumping: s.pumping}, "", "  ")
	if err != nil {
		return fmt.Errorf("encode timer state: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("create state directory: %w", err)
	}
	// Write-then-rename so a crash mid-write cannot leave a torn snapshot.
	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("write timer state: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return fmt.Errorf("replace timer state: %w", err)
	}
	return nil
}

func (s *State) ActiveSleep() *Slot          { return s.sleep }
func (s *State) ActiveNursing() *NursingSlot { return s.nursing }
func (s *State) ActivePumping() *Slot        { return s.pumping }

// StartSleep begins a sleep timer. A timer already running in the slot is
// replaced, whichever baby it belonged to (last start wins).
func (s *State) StartSleep(babyID string, start time.Time) error {
	s.sleep = &Slot{BabyID: babyID, StartTime: start}
	return s.save()
}

// StopSleep clears the sleep slot and returns what was running, or nil if
// the slot was idle.
func (s *State) StopSleep() (*Slot, error) {
	slot := s.sleep
	if slot == nil {
		return nil, nil
	}
	s.sleep = nil
	return slot, s.save()
}

func (s *State) StartNursing(babyID string, side Side, start time.Time) error {
	s.nursing = &NursingSlot{Slot: Slot{BabyID: babyID, StartTime: start}, Side: side}
	return s.save()
}

// SwitchSide flips the nursing side. The start time is preserved: the
// logged duration spans the whole session regardless of side changes.
func (s *State) SwitchSide() error {
	if s.nursing == nil {
		return nil
	}
	if s.nursing.Side == SideLeft {
		s.nursing.Side = SideRight
	} else {
		s.nursing.Side = SideLeft
	}
	return s.save()
}

func (s *State) StopNursing() (*NursingSlot, error) {
	slot := s.nursing
	if slot == nil {
		return nil, nil
	}
	s.nursing = nil
	return slot, s.save()
}

func (s *State) StartPumping(babyID string, start time.Time) error {
	s.pumping = &Slot{BabyID: babyID, StartTime: start}
	return s.save()
}

func (s *State) StopPumping() (*Slot, error) {
	slot := s.pumping
	if slot == nil {
		return nil, nil
	}
	s.pumping = nil
	return slot, s.save()
}

// ClearAll drops all three slots without logging anything.
func (s *State) ClearAll() error {
	s.sleep = nil
	s.nursing = nil
	s.pumping = nil
	return s.save()
}

// ElapsedSeconds is the display-facing elapsed time for a running timer.
func ElapsedSeconds(start, now time.Time) int {
	return int(now.Sub(start).Seconds())
}
