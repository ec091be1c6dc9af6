package store

import (
	"database/sql"
	"fmt"
	"time"
)

// InsertBaby creates a baby and its settings row in one transaction.
func (s *Store) InsertBaby(name string, birthDate time.Time, avatarURI *string) (*Baby, error) {
	id := newID()
	now := time.Now().UTC()

	tx, err := s.db.Begin()
	if err != nil {
		return nil, fmt.Errorf("begin insert baby: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.Exec(
		`INSERT INTO babies (id, name, birth_date, avatar_uri, created_at) VALUES (?, ?, ?, ?, ?)`,
		id, name, fmtTime(birthDate), avatarURI, fmtTime(now),
	)
	if err != nil {
		return nil, fmt.Errorf("insert baby: %w", err)
	}
	_, err = tx.Exec(
		`INSERT INTO baby_settings (id, baby_id) VALUES (?, ?)`,
		newID(), id,
	)
	if err != nil {
		return nil, fmt.Errorf("insert baby settings: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit insert baby: %w", err)
	}
	return s.GetBabyByID(id)
}

func (s *Store) GetBabyByID(id string) (*Baby, error) {
	b := &Baby{}
	var birthDate, createdAt string
	var avatarURI sql.NullString

	err := s.db.QueryRow(
		`SELECT id, name, birth_date, avatar_uri, created_at FROM babies WHERE id = ?`, id,
	).Scan(&b.ID, &b.Name, &birthDate, &avatarURI, &createdAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get baby %s: %w", id, err)
	}
	b.BirthDate = parseTime(birthDate)
	b.AvatarURI = strPtr(avatarURI)
	b.CreatedAt = parseTime(createdAt)
	return b, nil
}

func (s *Store) GetAllBabies() ([]Baby, error) {
	rows, err := s.db.Query(
		`SELECT id, name, birth_date, avatar_uri, created_at FROM babies ORDER BY created_at DESC`,
	)
	if err != nil {
		return nil, fmt.Errorf("list babies: %w", err)
	}
	defer rows.Close()

	var babies []Baby
	for rows.Next() {
		var b Baby
		var birthDate, createdAt string
		var avatarURI sql.NullString
		if err := rows.Scan(&b.ID, &b.Name, &birthDate, &avatarURI, &createdAt); err != nil {
			return nil, err
		}
		b.BirthDate = parseTime(birthDate)
		b.AvatarURI = strPtr(avatarURI)
		b.CreatedAt = parseTime(createdAt)
		babies = append(babies, b)
	}
	return babies, rows.Err()
}

func (s *Store) GetBabyCount() (int, error) {
	var count int
	err := s.db.QueryRow(`SELECT COUNT(*) FROM babies`).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count babies: %w", err)
	}
	return count, nil
}

func (s *Store) UpdateBaby(id string, u BabyUpdate) error {
	var fields []string
	var args []any

	if u.Name != nil {
		fields = append(fields, "name = ?")
		args = append(args, *u.Name)
	}
	if u.BirthDate != nil {
		fields = append(fields, "birth_date = ?")
		args = append(args, fmtTime(*u.BirthDate))
	}
	if u.AvatarURI != nil {
		fields = append(fields, "avatar_uri = ?")
		args = append(args, *u.AvatarURI)
	}
	if len(fields) == 0 {
		return nil
	}

	args = append(args, id)
	_, err := s.db.Exec(`UPDATE babies SET `+joinFields(fields)+` WHERE id = ?`, args...)
	if err != nil {
		return fmt.Errorf("update baby %s: %w", id, err)
	}
	return nil
}

// DeleteBaby hard-deletes the baby; settings and all logs cascade.
func (s *Store) DeleteBaby(id string) error {
	_, err := s.db.Exec(`DELETE FROM babies WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete baby %s: %w", id, err)
	}
	return nil
}

func (s *Store) GetBabySettings(babyID string) (*BabySettings, error) {
	bs := &BabySettings{}
	var goal, reminder sql.NullFloat64
	var metric int

	err := s.db.QueryRow(
		`SELECT id, baby_id, daily_pumping_goal_oz, feeding_reminder_hours, use_metric_units
		 FROM baby_settings WHERE baby_id = ?`, babyID,
	).Scan(&bs.ID, &bs.BabyID, &goal, &reminder, &metric)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get baby settings %s: %w", babyID, err)
	}
	bs.DailyPumpingGoalOz = floatPtr(goal)
	bs.FeedingReminderHours = floatPtr(reminder)
	bs.UseMetricUnits = metric == 1
	return bs, nil
}

func (s *Store) UpdateBabySettings(babyID string, u BabySettingsUpdate) error {
	var fields []string
	var args []any

	if u.DailyPumpingGoalOz != nil {
		fields = append(fields, "daily_pumping_goal_oz = ?")
		args = append(args, *u.DailyPumpingGoalOz)
	}
	if u.FeedingReminderHours != nil {
		fields = append(fields, "feeding_reminder_hours = ?")
		args = append(args, *u.FeedingReminderHours)
	}
	if u.UseMetricUnits != nil {
		fields = append(fields, "use_metric_units = ?")
		args = append(args, boolToInt(*u.UseMetricUnits))
	}
	if len(fields) == 0 {
		return nil
	}

	args = append(args, babyID)
	_, err := s.db.Exec(`UPDATE baby_settings SET `+joinFields(fields)+` WHERE baby_id = ?`, args...)
	if err != nil {
		return fmt.Errorf("update baby settings %s: %w", babyID, err)
	}
	return nil
}
