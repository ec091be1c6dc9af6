package store

import (
	"database/sql"
	"fmt"
	"time"
)

const feedingCols = `id, baby_id, feed_type, start_time, end_time, amount_oz, content_type, food_name, reaction_flag, notes, created_at`

func scanFeedingLog(row interface{ Scan(...any) error }) (*FeedingLog, error) {
	l := &FeedingLog{}
	var startTime, createdAt string
	var endTime, contentType, foodName, notes sql.NullString
	var amount sql.NullFloat64
	var reaction int

	err := row.Scan(&l.ID, &l.BabyID, &l.FeedType, &startTime, &endTime, &amount,
		&contentType, &foodName, &reaction, &notes, &createdAt)
	if err != nil {
		return nil, err
	}
	l.StartTime = parseTime(startTime)
	l.EndTime = timePtr(endTime)
	l.AmountOz = floatPtr(amount)
	if contentType.Valid {
		ct := ContentType(contentType.String)
		l.ContentType = &ct
	}
	l.FoodName = strPtr(foodName)
	l.ReactionFlag = reaction == 1
	l.Notes = strPtr(notes)
	l.CreatedAt = parseTime(createdAt)
	return l, nil
}

func (s *Store) InsertFeedingLog(in FeedingLogInsert) (*FeedingLog, error) {
	id := newID()
	now := time.Now().UTC()

	var contentType any
	if in.ContentType != nil {
		contentType = string(*in.ContentType)
	}
	_, err := s.db.Exec(
		`INSERT INTO feeding_logs (id, baby_id, feed_type, start_time, end_time, amount_oz, content_type, food_name, reaction_flag, notes, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		id, in.BabyID, in.FeedType, fmtTime(in.StartTime), fmtTimePtr(in.EndTime),
		in.AmountOz, contentType, in.FoodName, boolToInt(in.ReactionFlag), in.Notes, fmtTime(now),
	)
	if err != nil {
		return nil, fmt.Errorf("insert feeding log: %w", err)
	}
	return s.GetFeedingLogByID(id)
}

func (s *Store) GetFeedingLogByID(id string) (*FeedingLog, error) {
	l, err := scanFeedingLog(s.db.QueryRow(
		`SELECT `+feedingCols+` FROM feeding_logs WHERE id = ?`, id,
	))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get feeding log %s: %w", id, err)
	}
	return l, nil
}

func (s *Store) GetFeedingLogs(babyID string, from, to time.Time) ([]FeedingLog, error) {
	rows, err := s.db.Query(
		`SELECT `+feedingCols+` FROM feeding_logs
		 WHERE baby_id = ? AND start_time >= ? AND start_time < ?
		 ORDER BY start_time DESC`,
		babyID, fmtTime(from), fmtTime(to),
	)
	if err != nil {
		return nil, fmt.Errorf("list feeding logs: %w", err)
	}
	defer rows.Close()

	var logs []FeedingLog
	for rows.Next() {
		l, err := scanFeedingLog(rows)
		if err != nil {
			return nil, err
		}
		logs = append(logs, *l)
	}
	return logs, rows.Err()
}

func (s *Store) GetTodayFeedingLogs(babyID string) ([]FeedingLog, error) {
	from, to := todayRange()
	return s.GetFeedingLogs(babyID, from, to)
}

func (s *Store) GetLastFeedingLog(babyID string) (*FeedingLog, error) {
	l, err := scanFeedingLog(s.db.QueryRow(
		`SELECT `+feedingCols+` FROM feeding_logs WHERE baby_id = ? ORDER BY start_time DESC LIMIT 1`, babyID,
	))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get last feeding log: %w", err)
	}
	return l, nil
}

// GetLastNursingSide reports which breast the most recent nursing session
// used, or "" when the baby has never nursed.
func (s *Store) GetLastNursingSide(babyID string) (string, error) {
	var feedType string
	err := s.db.QueryRow(
		`SELECT feed_type FROM feeding_logs
		 WHERE baby_id = ? AND feed_type IN ('breast_left', 'breast_right')
		 ORDER BY start_time DESC LIMIT 1`, babyID,
	).Scan(&feedType)
	if err == sql.ErrNoRows {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("get last nursing side: %w", err)
	}
	if feedType == string(FeedBreastLeft) {
		return "left", nil
	}
	return "right", nil
}

func (s *Store) UpdateFeedingLog(id string, u FeedingLogUpdate) error {
	var fields []string
	var args []any

	if u.FeedType != nil {
		fields = append(fields, "feed_type = ?")
		args = append(args, *u.FeedType)
	}
	if u.StartTime != nil {
		fields = append(fields, "start_time = ?")
		args = append(args, fmtTime(*u.StartTime))
	}
	if u.EndTime != nil {
		fields = append(fields, "end_time = ?")
		args = append(args, fmtTime(*u.EndTime))
	}
	if u.AmountOz != nil {
		fields = append(fields, "amount_oz = ?")
		args = append(args, *u.AmountOz)
	}
	if u.ContentType != nil {
		fields = append(fields, "content_type = ?")
		args = append(args, *u.ContentType)
	}
	if u.FoodName != nil {
		fields = append(fields, "food_name = ?")
		args = append(args, *u.FoodName)
	}
	if u.ReactionFlag != nil {
		fields = append(fields, "reaction_flag = ?")
		args = append(args, boolToInt(*u.ReactionFlag))
	}
	if u.Notes != nil {
		fields = append(fields, "notes = ?")
		args = append(args, *u.Notes)
	}
	if len(fields) == 0 {
		return nil
	}

	args = append(args, id)
	_, err := s.db.Exec(`UPDATE feeding_logs SET `+joinFields(fields)+` WHERE id = ?`, args...)
	if err != nil {
		return fmt.Errorf("update feeding log %s: %w", id, err)
	}
	return nil
}

func (s *Store) DeleteFeedingLog(id string) error {
	_, err := s.db.Exec(`DELETE FROM feeding_logs WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete feeding log %s: %w", id, err)
	}
	return nil
}

// FeedCountByDay counts feeds per calendar day, bucketed by start time.
func (s *Store) FeedCountByDay(babyID string, from, to time.Time) ([]DayCount, error) {
	rows, err := s.db.Query(
		`SELECT date(start_time) AS day, COUNT(*)
		 FROM feeding_logs
		 WHERE baby_id = ? AND start_time >= ? AND start_time < ?
		 GROUP BY day
		 ORDER BY day`,
		babyID, fmtTime(from), fmtTime(to),
	)
	if err != nil {
		return nil, fmt.Errorf("feed count by day: %w", err)
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

func (s *Store) TodayFeedCount(babyID string) (int, error) {
	from, to := todayRange()
	var count int
	err := s.db.QueryRow(
		`SELECT COUNT(*) FROM feeding_logs WHERE baby_id = ? AND start_time >= ? AND start_time < ?`,
		babyID, fmtTime(from), fmtTime(to),
	).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("today feed count: %w", err)
	}
	return count, nil
}
