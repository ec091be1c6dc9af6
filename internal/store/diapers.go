package store

import (
	"database/sql"
	"fmt"
	"time"
)

const diaperCols = `id, baby_id, logged_at, diaper_type, color, consistency, notes, created_at`

func scanDiaperLog(row interface{ Scan(...any) error }) (*DiaperLog, error) {
	l := &DiaperLog{}
	var loggedAt, createdAt string
	var color, consistency, notes sql.NullString

	err := row.Scan(&l.ID, &l.BabyID, &loggedAt, &l.DiaperType, &color, &consistency, &notes, &createdAt)
	if err != nil {
		return nil, err
	}
	l.LoggedAt = parseTime(loggedAt)
	l.Color = strPtr(color)
	l.Consistency = strPtr(consistency)
	l.Notes = strPtr(notes)
	l.CreatedAt = parseTime(createdAt)
	return l, nil
}

func (s *Store) InsertDiaperLog(in DiaperLogInsert) (*DiaperLog, error) {
	id := newID()
	now := time.Now().UTC()

	_, err := s.db.Exec(
		`INSERT INTO diaper_logs (id, baby_id, logged_at, diaper_type, color, consistency, notes, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		id, in.BabyID, fmtTime(in.LoggedAt), in.DiaperType, in.Color, in.Consistency, in.Notes, fmtTime(now),
	)
	if err != nil {
		return nil, fmt.Errorf("insert diaper log: %w", err)
	}
	return s.GetDiaperLogByID(id)
}

func (s *Store) GetDiaperLogByID(id string) (*DiaperLog, error) {
	l, err := scanDiaperLog(s.db.QueryRow(
		`SELECT `+diaperCols+` FROM diaper_logs WHERE id = ?`, id,
	))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get diaper log %s: %w", id, err)
	}
	return l, nil
}

func (s *Store) GetDiaperLogs(babyID string, from, to time.Time) ([]DiaperLog, error) {
	rows, err := s.db.Query(
		`SELECT `+diaperCols+` FROM diaper_logs
		 WHERE baby_id = ? AND logged_at >= ? AND logged_at < ?
		 ORDER BY logged_at DESC`,
		babyID, fmtTime(from), fmtTime(to),
	)
	if err != nil {
		return nil, fmt.Errorf("list diaper logs: %w", err)
	}
	defer rows.Close()

	var logs []DiaperLog
	for rows.Next() {
		l, err := scanDiaperLog(rows)
		if err != nil {
			return nil, err
		}
		logs = append(logs, *l)
	}
	return logs, rows.Err()
}

func (s *Store) GetTodayDiaperLogs(babyID string) ([]DiaperLog, error) {
	from, to := todayRange()
	return s.GetDiaperLogs(babyID, from, to)
}

func (s *Store) GetLastDiaperLog(babyID string) (*DiaperLog, error) {
	l, err := scanDiaperLog(s.db.QueryRow(
		`SELECT `+diaperCols+` FROM diaper_logs WHERE baby_id = ? ORDER BY logged_at DESC LIMIT 1`, babyID,
	))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get last diaper log: %w", err)
	}
	return l, nil
}

// GetTodayDiaperCounts tallies today's wet and dirty changes; a "both"
// diaper counts toward each.
func (s *Store) GetTodayDiaperCounts(babyID string) (DiaperCounts, error) {
	logs, err := s.GetTodayDiaperLogs(babyID)
	if err != nil {
		return DiaperCounts{}, err
	}
	var counts DiaperCounts
	for _, l := range logs {
		if l.DiaperType == DiaperWet || l.DiaperType == DiaperBoth {
			counts.Wet++
		}
		if l.DiaperType == DiaperDirty || l.DiaperType == DiaperBoth {
			counts.Dirty++
		}
	}
	return counts, nil
}

func (s *Store) UpdateDiaperLog(id string, u DiaperLogUpdate) error {
	var fields []string
	var args []any

	if u.LoggedAt != nil {
		fields = append(fields, "logged_at = ?")
		args = append(args, fmtTime(*u.LoggedAt))
	}
	if u.DiaperType != nil {
		fields = append(fields, "diaper_type = ?")
		args = append(args, *u.DiaperType)
	}
	if u.Color != nil {
		fields = append(fields, "color = ?")
		args = append(args, *u.Color)
	}
	if u.Consistency != nil {
		fields = append(fields, "consistency = ?")
		args = append(args, *u.Consistency)
	}
	if u.Notes != nil {
		fields = append(fields, "notes = ?")
		args = append(args, *u.Notes)
	}
	if len(fields) == 0 {
		return nil
	}

	args = append(args, id)
	_, err := s.db.Exec(`UPDATE diaper_logs SET `+joinFields(fields)+` WHERE id = ?`, args...)
	if err != nil {
		return fmt.Errorf("update diaper log %s: %w", id, err)
	}
	return nil
}

func (s *Store) DeleteDiaperLog(id string) error {
	_, err := s.db.Exec(`DELETE FROM diaper_logs WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete diaper log %s: %w", id, err)
	}
	return nil
}

// DiaperCountByDay counts changes per calendar day, bucketed by logged_at.
func (s *Store) DiaperCountByDay(babyID string, from, to time.Time) ([]DayCount, error) {
	rows, err := s.db.Query(
		`SELECT date(logged_at) AS day, COUNT(*)
		 FROM diaper_logs
		 WHERE baby_id = ? AND logged_at >= ? AND logged_at < ?
		 GROUP BY day
		 ORDER BY day`,
		babyID, fmtTime(from), fmtTime(to),
	)
	if err != nil {
		return nil, fmt.Errorf("diaper count by day: %w", err)
	}
	defer rows.Close()

	var out []DayCount
	for rows.Next() {
		var d DayCount
		if err := rows.Scan(&d.Date, &d.Count); err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	return out, rows.Err()
}
