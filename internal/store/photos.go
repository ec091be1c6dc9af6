package store

import (
	"database/sql"
	"fmt"
	"time"
)

const photoCols = `id, baby_id, image_uri, thumbnail_uri, taken_at, month_number, milestone_type, milestone_name, caption, is_favorite, created_at`

func scanMilestonePhoto(row interface{ Scan(...any) error }) (*MilestonePhoto, error) {
	p := &MilestonePhoto{}
	var takenAt, createdAt string
	var thumb, name, caption sql.NullString
	var month sql.NullInt64
	var favorite int

	err := row.Scan(&p.ID, &p.BabyID, &p.ImageURI, &thumb, &takenAt, &month,
		&p.MilestoneType, &name, &caption, &favorite, &createdAt)
	if err != nil {
		return nil, err
	}
	p.ThumbnailURI = strPtr(thumb)
	p.TakenAt = parseTime(takenAt)
	p.MonthNumber = intPtr(month)
	p.MilestoneName = strPtr(name)
	p.Caption = strPtr(caption)
	p.IsFavorite = favorite == 1
	p.CreatedAt = parseTime(createdAt)
	return p, nil
}

func (s *Store) InsertMilestonePhoto(in MilestonePhotoInsert) (*MilestonePhoto, error) {
	id := newID()
	now := time.Now().UTC()

	_, err := s.db.Exec(
		`INSERT INTO milestone_photos (id, baby_id, image_uri, thumbnail_uri, taken_at, month_number, milestone_type, milestone_name, caption, is_favorite, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		id, in.BabyID, in.ImageURI, in.ThumbnailURI, fmtTime(in.TakenAt), in.MonthNumber,
		in.MilestoneType, in.MilestoneName, in.Caption, boolToInt(in.IsFavorite), fmtTime(now),
	)
	if err != nil {
		return nil, fmt.Errorf("insert milestone photo: %w", err)
	}
	return s.GetMilestonePhotoByID(id)
}

func (s *Store) GetMilestonePhotoByID(id string) (*MilestonePhoto, error) {
	p, err := scanMilestonePhoto(s.db.QueryRow(
		`SELECT `+photoCols+` FROM milestone_photos WHERE id = ?`, id,
	))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get milestone photo %s: %w", id, err)
	}
	return p, nil
}

// GetMilestonePhotos lists a baby's photos newest first.
func (s *Store) GetMilestonePhotos(babyID string) ([]MilestonePhoto, error) {
	rows, err := s.db.Query(
		`SELECT `+photoCols+` FROM milestone_photos WHERE baby_id = ? ORDER BY taken_at DESC`, babyID,
	)
	if err != nil {
		return nil, fmt.Errorf("list milestone photos: %w", err)
	}
	defer rows.Close()

	var photos []MilestonePhoto
	for rows.Next() {
		p, err := scanMilestonePhoto(rows)
		if err != nil {
			return nil, err
		}
		photos = append(photos, *p)
	}
	return photos, rows.Err()
}

func (s *Store) UpdateMilestonePhoto(id string, u MilestonePhotoUpdate) error {
	var fields []string
	var args []any

	if u.ImageURI != nil {
		fields = append(fields, "image_uri = ?")
		args = append(args, *u.ImageURI)
	}
	if u.ThumbnailURI != nil {
		fields = append(fields, "thumbnail_uri = ?")
		args = append(args, *u.ThumbnailURI)
	}
	if u.TakenAt != nil {
		fields = append(fields, "taken_at = ?")
		args = append(args, fmtTime(*u.TakenAt))
	}
	if u.MonthNumber != nil {
		fields = append(fields, "month_number = ?")
		args = append(args, *u.MonthNumber)
	}
	if u.MilestoneType != nil {
		fields = append(fields, "milestone_type = ?")
		args = append(args, *u.MilestoneType)
	}
	if u.MilestoneName != nil {
		fields = append(fields, "milestone_name = ?")
		args = append(args, *u.MilestoneName)
	}
	if u.Caption != nil {
		fields = append(fields, "caption = ?")
		args = append(args, *u.Caption)
	}
	if u.IsFavorite != nil {
		fields = append(fields, "is_favorite = ?")
		args = append(args, boolToInt(*u.IsFavorite))
	}
	if len(fields) == 0 {
		return nil
	}

	args = append(args, id)
	_, err := s.db.Exec(`UPDATE milestone_photos SET `+joinFields(fields)+` WHERE id = ?`, args...)
	if err != nil {
		return fmt.Errorf("update milestone photo %s: %w", id, err)
	}
	return nil
}

func (s *Store) DeleteMilestonePhoto(id string) error {
	_, err := s.db.Exec(`DELETE FROM milestone_photos WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete milestone photo %s: %w", id, err)
	}
	return nil
}

// PhotoCountByDay counts photos per calendar day, bucketed by taken_at.
func (s *Store) PhotoCountByDay(babyID string, from, to time.Time) ([]DayCount, error) {
	rows, err := s.db.Query(
		`SELECT date(taken_at) AS day, COUNT(*)
		 FROM milestone_photos
		 WHERE baby_id = ? AND taken_at >= ? AND taken_at < ?
		 GROUP BY day
		 ORDER BY day`,
		babyID, fmtTime(from), fmtTime(to),
	)
	if err != nil {
		return nil, fmt.Errorf("photo count by day: %w", err)
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
