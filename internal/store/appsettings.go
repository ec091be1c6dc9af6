package store

import (
	"database/sql"
	"fmt"
	"time"
)

// GetAppSettings returns the singleton settings row (seeded at migration).
func (s *Store) GetAppSettings() (*AppSettings, error) {
	a := &AppSettings{}
	var onboarding, premium int
	var selectedBaby, unlockDate sql.NullString

	err := s.db.QueryRow(
		`SELECT has_completed_onboarding, selected_baby_id, appearance_mode, has_unlocked_premium, premium_unlock_date, tip_jar_total
		 FROM app_settings WHERE id = 1`,
	).Scan(&onboarding, &selectedBaby, &a.AppearanceMode, &premium, &unlockDate, &a.TipJarTotal)
	if err != nil {
		return nil, fmt.Errorf("get app settings: %w", err)
	}
	a.HasCompletedOnboarding = onboarding == 1
	a.SelectedBabyID = strPtr(selectedBaby)
	a.HasUnlockedPremium = premium == 1
	a.PremiumUnlockDate = timePtr(unlockDate)
	return a, nil
}

func (s *Store) UpdateAppSettings(u AppSettingsUpdate) error {
	var fields []string
	var args []any

	if u.HasCompletedOnboarding != nil {
		fields = append(fields, "has_completed_onboarding = ?")
		args = append(args, boolToInt(*u.HasCompletedOnboarding))
	}
	if u.SelectedBabyID != nil {
		fields = append(fields, "selected_baby_id = ?")
		args = append(args, *u.SelectedBabyID)
	}
	if u.AppearanceMode != nil {
		fields = append(fields, "appearance_mode = ?")
		args = append(args, *u.AppearanceMode)
	}
	if u.HasUnlockedPremium != nil {
		fields = append(fields, "has_unlocked_premium = ?")
		args = append(args, boolToInt(*u.HasUnlockedPremium))
	}
	if u.PremiumUnlockDate != nil {
		fields = append(fields, "premium_unlock_date = ?")
		args = append(args, fmtTime(*u.PremiumUnlockDate))
	}
	if u.TipJarTotal != nil {
		fields = append(fields, "tip_jar_total = ?")
		args = append(args, *u.TipJarTotal)
	}
	if len(fields) == 0 {
		return nil
	}

	_, err := s.db.Exec(`UPDATE app_settings SET `+joinFields(fields)+` WHERE id = 1`, args...)
	if err != nil {
		return fmt.Errorf("update app settings: %w", err)
	}
	return nil
}

// SetSelectedBaby records which baby the app is focused on.
func (s *Store) SetSelectedBaby(babyID string) error {
	id := babyID
	return s.UpdateAppSettings(AppSettingsUpdate{SelectedBabyID: &id})
}

// UnlockPremium flips the premium flag and records when it happened.
func (s *Store) UnlockPremium(at time.Time) error {
	yes := true
	return s.UpdateAppSettings(AppSettingsUpdate{HasUnlockedPremium: &yes, PremiumUnlockDate: &at})
}

// AddTip accumulates a tip-jar amount onto the running total.
func (s *Store) AddTip(amount float64) error {
	_, err := s.db.Exec(`UPDATE app_settings SET tip_jar_total = tip_jar_total + ? WHERE id = 1`, amount)
	if err != nil {
		return fmt.Errorf("add tip: %w", err)
	}
	return nil
}
