package export

import (
	"encoding/csv"
	"fmt"
	"os"
	"time"

	"github.com/dotsby/dotsby/internal/store"
)

// Logs bundles a baby's finalized logs for export. It is read-only over
// the record store's query results.
type Logs struct {
	Baby    *store.Baby
	Sleep   []store.SleepLog
	Feeding []store.FeedingLog
	Diapers []store.DiaperLog
	Pumping []store.PumpingLog
}

func ToCSV(l Logs, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create csv file: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	defer w.Flush()

	// Header
	if err := w.Write([]string{"Type", "Subtype", "Start", "End", "Duration (min)", "Amount (oz)", "Notes"}); err != nil {
		return err
	}

	for _, s := range l.Sleep {
		row := []string{
			"sleep", string(s.SleepType),
			s.StartTime.Local().Format(time.RFC3339),
			timeStr(s.EndTime),
			durationMinutes(s.StartTime, s.EndTime),
			"",
			strOrEmpty(s.Notes),
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}
	for _, fl := range l.Feeding {
		amount := ""
		if fl.AmountOz != nil {
			amount = fmt.Sprintf("%.2f", *fl.AmountOz)
		}
		row := []string{
			"feeding", string(fl.FeedType),
			fl.StartTime.Local().Format(time.RFC3339),
			timeStr(fl.EndTime),
			durationMinutes(fl.StartTime, fl.EndTime),
			amount,
			strOrEmpty(fl.Notes),
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}
	for _, d := range l.Diapers {
		row := []string{
			"diaper", string(d.DiaperType),
			d.LoggedAt.Local().Format(time.RFC3339),
			"", "", "",
			strOrEmpty(d.Notes),
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}
	for _, p := range l.Pumping {
		row := []string{
			"pumping", "",
			p.StartTime.Local().Format(time.RFC3339),
			timeStr(p.EndTime),
			durationMinutes(p.StartTime, p.EndTime),
			fmt.Sprintf("%.2f", p.OutputOz),
			strOrEmpty(p.Notes),
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}

	return w.Error()
}

func timeStr(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Local().Format(time.RFC3339)
}

func durationMinutes(start time.Time, end *time.Time) string {
	if end == nil {
		return ""
	}
	return fmt.Sprintf("%d", int(end.Sub(start).Minutes()))
}

func strOrEmpty(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
