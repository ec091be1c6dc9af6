package pattern

import (
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/dotsby/dotsby/internal/store"
)

// ActivityRange builds one DayActivity per calendar day in [from, to]
// inclusive, zero-filled for days with no logs so quiet days still render
// with intensity 0. Bounds are widened to whole UTC days to match the
// store's day bucketing. The five rollup scans run concurrently.
func ActivityRange(s *store.Store, babyID string, from, to time.Time) ([]store.DayActivity, error) {
	from = startOfDay(from)
	to = startOfDay(to)
	queryFrom, queryTo := from, to.AddDate(0, 0, 1)

	var (
		sleep   []store.DayMinutes
		feeds   []store.DayCount
		diapers []store.DayCount
		pumping []store.DayVolume
		photos  []store.DayCount
	)

	var g errgroup.Group
	g.Go(func() (err error) {
		sleep, err = s.SleepMinutesByDay(babyID, queryFrom, queryTo)
		return
	})
	g.Go(func() (err error) {
		feeds, err = s.FeedCountByDay(babyID, queryFrom, queryTo)
		return
	})
	g.Go(func() (err error) {
		diapers, err = s.DiaperCountByDay(babyID, queryFrom, queryTo)
		return
	})
	g.Go(func() (err error) {
		pumping, err = s.PumpingOzByDay(babyID, queryFrom, queryTo)
		return
	})
	g.Go(func() (err error) {
		photos, err = s.PhotoCountByDay(babyID, queryFrom, queryTo)
		return
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	sleepMap := make(map[string]int, len(sleep))
	for _, d := range sleep {
		sleepMap[d.Date] = d.Minutes
	}
	feedMap := make(map[string]int, len(feeds))
	for _, d := range feeds {
		feedMap[d.Date] = d.Count
	}
	diaperMap := make(map[string]int, len(diapers))
	for _, d := range diapers {
		diaperMap[d.Date] = d.Count
	}
	pumpMap := make(map[string]float64, len(pumping))
	for _, d := range pumping {
		pumpMap[d.Date] = d.TotalOz
	}
	photoMap := make(map[string]int, len(photos))
	for _, d := range photos {
		photoMap[d.Date] = d.Count
	}

	var out []store.DayActivity
	for day := from; !day.After(to); day = day.AddDate(0, 0, 1) {
		date := day.Format("2006-01-02")
		t := Totals{
			SleepMinutes: sleepMap[date],
			FeedCount:    feedMap[date],
			DiaperCount:  diaperMap[date],
			PumpingOz:    pumpMap[date],
			PhotoCount:   photoMap[date],
		}
		out = append(out, store.DayActivity{
			Date:         date,
			Intensity:    Calculate(t),
			SleepMinutes: t.SleepMinutes,
			FeedCount:    t.FeedCount,
			DiaperCount:  t.DiaperCount,
			PumpingOz:    t.PumpingOz,
			PhotoCount:   t.PhotoCount,
		})
	}
	return out, nil
}

func startOfDay(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
