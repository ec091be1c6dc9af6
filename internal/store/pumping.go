package store

import (
	"database/sql"
	"fmt"
	"time"
)

const pumpingCols = `id, baby_id, start_time, end_time, output_oz, output_left_oz, output_right_oz, notes, created_at`

func scanPumpingLog(row interface{ Scan(...any) error }) (*PumpingLog, error) {
	l := &PumpingLog{}
	var startTime, createdAt string
	var endTime, notes sql.NullString
	var left, right sql.NullFloat64

	err := row.Scan(&l.ID, &l.BabyID, &startTime, &endTime, &l.OutputOz, &left, &right, &notes, &createdAt)
	if err != nil {
		return nil, err
	}
	l.StartTime = parseTime(startTime)
	l.EndTime = timePtr(endTime)
	l.OutputLeftOz = floatPtr(left)
	l.OutputRightOz = floatPtr(right)
	l.Notes = strPtr(notes)
	l.CreatedAt = parseTime(createdAt)
	return l, nil
}

func (s *Store) InsertPumpingLog(in PumpingLogInsert) (*PumpingLog, error) {
	id := newID()
	now := time.Now().UTC()

	_, err := s.db.Exec(
		`INSERT INTO pumping_logs (id, baby_id, start_time, end_time, output_oz, output_left_oz, output_right_oz, notes, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		id, in.BabyID, fmtTime(in.StartTime), fmtTimePtr(in.EndTime),
		in.OutputOz, in.OutputLeftOz, in.OutputRightOz, in.Notes, fmtTime(now),
	)
	if err != nil {
		return nil, fmt.Errorf("insert pumping log: %w", err)
	}
	return s.GetPumpingLogByID(id)
}

func (s *Store) GetPumpingLogByID(id string) (*PumpingLog, error) {
	l, err := scanPumpingLog(s.db.QueryRow(
		`SELECT `+pumpingCols+` FROM pumping_logs WHERE id = ?`, id,
	))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get pumping log %s: %w", id, err)
	}
	return l, nil
}

func (s *Store) GetPumpingLogs(babyID string, from, to time.Time) ([]PumpingLog, error) {
	rows, err := s.db.Query(
		`SELECT `+pumpingCols+` FROM pumping_logs
		 WHERE baby_id = ? AND start_time >= ? AND start_time < ?
		 ORDER BY start_time DESC`,
		babyID, fmtTime(from), fmtTime(to),
	)
	if err != nil {
		return nil, fmt.Errorf("list pumping logs: %w", err)
	}
	defer rows.Close()

	var logs []PumpingLog
	for rows.Next() {
		l, err := scanPumpingLog(rows)
		if err != nil {
			return nil, err
		}
		logs = append(logs, *l)
	}
	return logs, rows.Err()
}

func (s *Store) GetTodayPumpingLogs(babyID string) ([]PumpingLog, error) {
	from, to := todayRange()
	return s.GetPumpingLogs(babyID, from, to)
}

func (s *Store) GetLastPumpingLog(babyID string) (*PumpingLog, error) {
	l, err := scanPumpingLog(s.db.QueryRow(
		`SELECT `+pumpingCols+` FROM pumping_logs WHERE baby_id = ? ORDER BY start_time DESC LIMIT 1`, babyID,
	))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get last pumping log: %w", err)
	}
	return l, nil
}

func (s *Store) GetTodayPumpingTotal(babyID string) (float64, error) {
	from, to := todayRange()
	var total sql.NullFloat64
	err := s.db.QueryRow(
		`SELECT COALESCE(SUM(output_oz), 0) FROM pumping_logs
		 WHERE baby_id = ? AND start_time >= ? AND start_time < ?`,
		babyID, fmtTime(from), fmtTime(to),
	).Scan(&total)
	if err != nil {
		return 0, fmt.Errorf("today pumping total: %w", err)
	}
	return total.Float64, nil
}

func (s *Store) UpdatePumpingLog(id string, u PumpingLogUpdate) error {
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
	if u.OutputOz != nil {
		fields = append(fields, "output_oz = ?")
		args = append(args, *u.OutputOz)
	}
	if u.OutputLeftOz != nil {
		fields = append(fields, "output_left_oz = ?")
		args = append(args, *u.OutputLeftOz)
	}
	if u.OutputRightOz != nil {
		fields = append(fields, "output_right_oz = ?")
		args = append(args, *u.OutputRightOz)
	}
	if u.Notes != nil {
		fields = append(fields, "notes = ?")
		args = append(args, *u.Notes)
	}
	if len(fields) == 0 {
		return nil
	}

	args = append(args, id)
	_, err := s.db.Exec(`UPDATE pumping_logs SET `+joinFields(fields)+` WHERE id = ?`, args...)
	if err != nil {
		return fmt.Errorf("update pumping log %s: %w", id, err)
	}
	return nil
}

func (s *Store) DeletePumpingLog(id string) error {
	_, err := s.db.Exec(`DELETE FROM pumping_logs WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete pumping log %s: %w", id, err)
	}
	return nil
}

// PumpingOzByDay sums output per calendar day, bucketed by start time.
func (s *Store) PumpingOzByDay(babyID string, from, to time.Time) ([]DayVolume, error) {
	rows, err := s.db.Query(
		`SELECT date(start_time) AS day, SUM(output_oz)
		 FROM pumping_logs
		 WHERE baby_id = ? AND start_time >= ? AND start_time < ?
		 GROUP BY day
		 ORDER BY day`,
		babyID, fmtTime(from), fmtTime(to),
	)
	if err != nil {
		return nil, fmt.Errorf("pumping oz by day: %w", err)
	}
	defer rows.Close()

	var out []DayVolume
	for rows.Next() {
		var d DayVolume
		if err := rows.Scan(&d.Date, &d.TotalOz); err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	return out, rows.Err()
}
