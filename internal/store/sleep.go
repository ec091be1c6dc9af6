package store

import (
	"database/sql"
	"errors"
	"fmt"
	"time"
)

// ErrActiveSleepExists is returned when inserting an open-ended sleep log
// while the baby already has a session in progress.
var ErrActiveSleepExists = errors.New("baby already has an active sleep session")

const sleepCols = `id, baby_id, start_time, end_time, sleep_type, location, quality_rating, notes, created_at`

func scanSleepLog(row interface{ Scan(...any) error }) (*SleepLog, error) {
	l := &SleepLog{}
	var startTime, createdAt string
	var endTime, location, notes sql.NullString
	var quality sql.NullInt64

	err := row.Scan(&l.ID, &l.BabyID, &startTime, &endTime, &l.SleepType, &location, &quality, &notes, &createdAt)
	if err != nil {
		return nil, err
	}
	l.StartTime = parseTime(startTime)
	l.EndTime = timePtr(endTime)
	l.Location = strPtr(location)
	l.QualityRating = intPtr(quality)
	l.Notes = strPtr(notes)
	l.CreatedAt = parseTime(createdAt)
	return l, nil
}

// InsertSleepLog creates a sleep log. A nil EndTime means the session is in
// progress; at most one such row may exist per baby, checked inside the
// insert transaction.
func (s *Store) InsertSleepLog(in SleepLogInsert) (*SleepLog, error) {
	id := newID()
	now := time.Now().UTC()

	tx, err := s.db.Begin()
	if err != nil {
		return nil, fmt.Errorf("begin insert sleep log: %w", err)
	}
	defer tx.Rollback()

	if in.EndTime == nil {
		var existing string
		err := tx.QueryRow(
			`SELECT id FROM sleep_logs WHERE baby_id = ? AND end_time IS NULL LIMIT 1`, in.BabyID,
		).Scan(&existing)
		if err == nil {
			return nil, ErrActiveSleepExists
		}
		if err != sql.ErrNoRows {
			return nil, fmt.Errorf("check active sleep: %w", err)
		}
	}

	_, err = tx.Exec(
		`INSERT INTO sleep_logs (id, baby_id, start_time, end_time, sleep_type, location, quality_rating, notes, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		id, in.BabyID, fmtTime(in.StartTime), fmtTimePtr(in.EndTime), in.SleepType,
		in.Location, in.QualityRating, in.Notes, fmtTime(now),
	)
	if err != nil {
		return nil, fmt.Errorf("insert sleep log: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit insert sleep log: %w", err)
	}
	return s.GetSleepLogByID(id)
}

func (s *Store) GetSleepLogByID(id string) (*SleepLog, error) {
	l, err := scanSleepLog(s.db.QueryRow(
		`SELECT `+sleepCols+` FROM sleep_logs WHERE id = ?`, id,
	))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get sleep log %s: %w", id, err)
	}
	return l, nil
}

// GetSleepLogs lists logs whose start time falls in [from, to), newest first.
func (s *Store) GetSleepLogs(babyID string, from, to time.Time) ([]SleepLog, error) {
	rows, err := s.db.Query(
		`SELECT `+sleepCols+` FROM sleep_logs
		 WHERE baby_id = ? AND start_time >= ? AND start_time < ?
		 ORDER BY start_time DESC`,
		babyID, fmtTime(from), fmtTime(to),
	)
	if err != nil {
		return nil, fmt.Errorf("list sleep logs: %w", err)
	}
	defer rows.Close()

	var logs []SleepLog
	for rows.Next() {
		l, err := scanSleepLog(rows)
		if err != nil {
			return nil, err
		}
		logs = append(logs, *l)
	}
	return logs, rows.Err()
}

func (s *Store) GetTodaySleepLogs(babyID string) ([]SleepLog, error) {
	from, to := todayRange()
	return s.GetSleepLogs(babyID, from, to)
}

// GetLastSleepLog returns the most recently started log, open or closed.
func (s *Store) GetLastSleepLog(babyID string) (*SleepLog, error) {
	l, err := scanSleepLog(s.db.QueryRow(
		`SELECT `+sleepCols+` FROM sleep_logs WHERE baby_id = ? ORDER BY start_time DESC LIMIT 1`, babyID,
	))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get last sleep log: %w", err)
	}
	return l, nil
}

// GetActiveSleepLog returns the baby's open-ended session, if any.
func (s *Store) GetActiveSleepLog(babyID string) (*SleepLog, error) {
	l, err := scanSleepLog(s.db.QueryRow(
		`SELECT `+sleepCols+` FROM sleep_logs WHERE baby_id = ? AND end_time IS NULL LIMIT 1`, babyID,
	))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get active sleep log: %w", err)
	}
	return l, nil
}

// EndSleepLog finalizes an open session by setting its end time.
func (s *Store) EndSleepLog(id string, endTime time.Time) error {
	_, err := s.db.Exec(`UPDATE sleep_logs SET end_time = ? WHERE id = ?`, fmtTime(endTime), id)
	if err != nil {
		return fmt.Errorf("end sleep log %s: %w", id, err)
	}
	return nil
}

func (s *Store) UpdateSleepLog(id string, u SleepLogUpdate) error {
	var fields []string
	var args []any

	if u.StartTime != nil {
		fields = append(fields, "start_time = ?")
		args = append(args, fmtTime(*u.StartTime))
	}
	if u.EndTime != nil {
		fields = append(fields, "end_time = ?")
		args = append(args, fmtTime(*u.EndTime))
	}
	if u.SleepType != nil {
		fields = append(fields, "sleep_type = ?")
		args = append(args, *u.SleepType)
	}
	if u.Location != nil {
		fields = append(fields, "location = ?")
		args = append(args, *u.Location)
	}
	if u.QualityRating != nil {
		fields = append(fields, "quality_rating = ?")
		args = append(args, *u.QualityRating)
	}
	if u.Notes != nil {
		fields = append(fields, "notes = ?")
		args = append(args, *u.Notes)
	}
	if len(fields) == 0 {
		return nil
	}

	args = append(args, id)
	_, err := s.db.Exec(`UPDATE sleep_logs SET `+joinFields(fields)+` WHERE id = ?`, args...)
	if err != nil {
		return fmt.Errorf("update sleep log %s: %w", id, err)
	}
	return nil
}

func (s *Store) DeleteSleepLog(id string) error {
	_, err := s.db.Exec(`DELETE FROM sleep_logs WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete sleep log %s: %w", id, err)
	}
	return nil
}

// SleepMinutesByDay sums session minutes per calendar day over [from, to).
// Open sessions count up to now; a session crossing midnight is attributed
// entirely to the day it started.
func (s *Store) SleepMinutesByDay(babyID string, from, to time.Time) ([]DayMinutes, error) {
	rows, err := s.db.Query(
		`SELECT date(start_time) AS day,
		        SUM(CAST((julianday(COALESCE(end_time, strftime('%Y-%m-%dT%H:%M:%SZ','now'))) - julianday(start_time)) * 24 * 60 AS INTEGER))
		 FROM sleep_logs
		 WHERE baby_id = ? AND start_time >= ? AND start_time < ?
		 GROUP BY day
		 ORDER BY day`,
		babyID, fmtTime(from), fmtTime(to),
	)
	if err != nil {
		return nil, fmt.Errorf("sleep minutes by day: %w", err)
	}
	defer rows.Close()

	var out []DayMinutes
	for rows.Next() {
		var d DayMinutes
		if err := rows.Scan(&d.Date, &d.Minutes); err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	return out, rows.Err()
}

// TotalSleepToday sums all session minutes started in the local day. It
// sums over the range directly rather than reusing the per-day rollup,
// whose UTC date buckets can split a local day in two.
func (s *Store) TotalSleepToday(babyID string) (int, error) {
	from, to := todayRange()
	var total sql.NullInt64
	err := s.db.QueryRow(
		`SELECT SUM(CAST((julianday(COALESCE(end_time, strftime('%Y-%m-%dT%H:%M:%SZ','now'))) - julianday(start_time)) * 24 * 60 AS INTEGER))
		 FROM sleep_logs
		 WHERE baby_id = ? AND start_time >= ? AND start_time < ?`,
		babyID, fmtTime(from), fmtTime(to),
	).Scan(&total)
	if err != nil {
		return 0, fmt.Errorf("total sleep today: %w", err)
	}
	return int(total.Int64), nil
}
