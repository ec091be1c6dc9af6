package tui

import (
	"fmt"
	"time"

	"github.com/dotsby/dotsby/internal/store"
	"github.com/dotsby/dotsby/internal/timer"
)

// timerController bridges the timer slots and the record store. Sleep
// sessions get their open-ended database row when the timer starts;
// nursing and pumping sessions are written as a single finalized row when
// their timer stops.
type timerController struct {
	store  *store.Store
	timers *timer.State
}

func (c *timerController) startSleep(babyID string) error {
	now := time.Now()
	_, err := c.store.InsertSleepLog(store.SleepLogInsert{
		BabyID:    babyID,
		StartTime: now,
		SleepType: inferSleepType(now),
	})
	if err != nil {
		return err
	}
	return c.timers.StartSleep(babyID, now)
}

// stopSleep finalizes the open sleep row for the timer's baby. When the
// row was already closed (edited from the logbook), the timer is simply
// cleared.
func (c *timerController) stopSleep() (*store.SleepLog, error) {
	slot, err := c.timers.StopSleep()
	if err != nil {
		return nil, err
	}
	if slot == nil {
		return nil, nil
	}
	active, err := c.store.GetActiveSleepLog(slot.BabyID)
	if err != nil {
		return nil, err
	}
	if active == nil {
		return nil, nil
	}
	if err := c.store.EndSleepLog(active.ID, time.Now()); err != nil {
		return nil, err
	}
	return c.store.GetSleepLogByID(active.ID)
}

func (c *timerController) startNursing(babyID string) error {
	// Alternate from the last recorded side so both get offered.
	side := timer.SideLeft
	last, err := c.store.GetLastNursingSide(babyID)
	if err != nil {
		return err
	}
	if last == string(timer.SideLeft) {
		side = timer.SideRight
	}
	return c.timers.StartNursing(babyID, side, time.Now())
}

func (c *timerController) stopNursing() (*store.FeedingLog, error) {
	slot, err := c.timers.StopNursing()
	if err != nil {
		return nil, err
	}
	if slot == nil {
		return nil, nil
	}
	now := time.Now()
	feedType := store.FeedBreastLeft
	if slot.Side == timer.SideRight {
		feedType = store.FeedBreastRight
	}
	content := store.ContentBreastMilk
	return c.store.InsertFeedingLog(store.FeedingLogInsert{
		BabyID:      slot.BabyID,
		FeedType:    feedType,
		StartTime:   slot.StartTime,
		EndTime:     &now,
		ContentType: &content,
	})
}

func (c *timerController) startPumping(babyID string) error {
	return c.timers.StartPumping(babyID, time.Now())
}

func (c *timerController) stopPumping(outputOz float64) (*store.PumpingLog, error) {
	slot, err := c.timers.StopPumping()
	if err != nil {
		return nil, err
	}
	if slot == nil {
		return nil, nil
	}
	now := time.Now()
	return c.store.InsertPumpingLog(store.PumpingLogInsert{
		BabyID:    slot.BabyID,
		StartTime: slot.StartTime,
		EndTime:   &now,
		OutputOz:  outputOz,
	})
}

// reconcile runs at startup. A sleep timer whose database row has gone
// missing (or was closed from another session) is dropped; an open sleep
// row with no timer gets its timer restored.
func (c *timerController) reconcile() error {
	if slot := c.timers.ActiveSleep(); slot != nil {
		active, err := c.store.GetActiveSleepLog(slot.BabyID)
		if err != nil {
			return err
		}
		if active == nil {
			if _, err := c.timers.StopSleep(); err != nil {
				return fmt.Errorf("clear stale sleep timer: %w", err)
			}
		}
	}
	return nil
}

// inferSleepType guesses nap vs night from the clock; the logbook can
// correct it afterwards.
func inferSleepType(t time.Time) store.SleepType {
	h := t.Local().Hour()
	if h >= 19 || h < 6 {
		return store.SleepNight
	}
	return store.SleepNap
}
