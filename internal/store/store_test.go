package store

import (
	"errors"
	"testing"
	"time"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := NewMemory()
	if err != nil {
		t.Fatalf("new memory store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func newTestBaby(t *testing.T, s *Store) *Baby {
	t.Helper()
	birth := time.Now().AddDate(0, -4, 0)
	baby, err := s.InsertBaby("Nora", birth, nil)
	if err != nil {
		t.Fatalf("insert baby: %v", err)
	}
	return baby
}

// insertSleep is a test helper that inserts a completed sleep session
// ending at a given offset before now.
func insertSleep(t *testing.T, s *Store, babyID string, endOffset time.Duration, durationMin int) *SleepLog {
	t.Helper()
	end := time.Now().Add(-endOffset)
	start := end.Add(-time.Duration(durationMin) * time.Minute)
	log, err := s.InsertSleepLog(SleepLogInsert{
		BabyID:    babyID,
		StartTime: start,
		EndTime:   &end,
		SleepType: SleepNap,
	})
	if err != nil {
		t.Fatalf("insert sleep: %v", err)
	}
	return log
}

// ============================================================
// Store initialization
// ============================================================

func TestNewMemory(t *testing.T) {
	s, err := NewMemory()
	if err != nil {
		t.Fatal(err)
	}
	defer s.Close()

	// Should have run migration v1
	var version int
	s.db.QueryRow("PRAGMA user_version").Scan(&version)
	if version != 1 {
		t.Fatalf("expected user_version 1, got %d", version)
	}
}

func TestNewWithPath(t *testing.T) {
	dir := t.TempDir()
	path := dir + "/sub/dotsby.db"
	s, err := New(path)
	if err != nil {
		t.Fatal(err)
	}
	s.Close()

	// Reopen — should succeed and not re-migrate
	s2, err := New(path)
	if err != nil {
		t.Fatal(err)
	}
	s2.Close()
}

func TestDefaultDBPath(t *testing.T) {
	path, err := DefaultDBPath()
	if err != nil {
		t.Fatal(err)
	}
	if path == "" {
		t.Fatal("empty path")
	}
}

func TestPragmasConfigured(t *testing.T) {
	s := newTestStore(t)

	var fk int
	s.db.QueryRow("PRAGMA foreign_keys").Scan(&fk)
	if fk != 1 {
		t.Fatalf("expected foreign_keys=1, got %d", fk)
	}
}

func TestMigrationIdempotent(t *testing.T) {
	s := newTestStore(t)
	// Running migrate again should be a no-op
	if err := s.migrate(); err != nil {
		t.Fatalf("second migration failed: %v", err)
	}
}

func TestAppSettingsSeeded(t *testing.T) {
	s := newTestStore(t)
	settings, err := s.GetAppSettings()
	if err != nil {
		t.Fatal(err)
	}
	if settings == nil {
		t.Fatal("singleton app settings row should exist after migration")
	}
	if settings.HasCompletedOnboarding {
		t.Fatal("onboarding should start incomplete")
	}
	if settings.SelectedBabyID != nil {
		t.Fatal("no baby should be selected initially")
	}
	if settings.AppearanceMode != "system" {
		t.Fatalf("expected system appearance, got %s", settings.AppearanceMode)
	}
}

// ============================================================
// Babies
// ============================================================

func TestInsertAndGetBaby(t *testing.T) {
	s := newTestStore(t)
	birth := time.Date(2025, 4, 10, 0, 0, 0, 0, time.UTC)
	baby, err := s.InsertBaby("Ada", birth, nil)
	if err != nil {
		t.Fatal(err)
	}
	if baby.ID == "" {
		t.Fatal("expected non-empty ID")
	}
	if baby.Name != "Ada" {
		t.Fatalf("unexpected name: %s", baby.Name)
	}
	if !baby.BirthDate.Equal(birth) {
		t.Fatalf("birth date mismatch: %v", baby.BirthDate)
	}
	if baby.CreatedAt.IsZero() {
		t.Fatal("CreatedAt should be set")
	}

	fetched, err := s.GetBabyByID(baby.ID)
	if err != nil {
		t.Fatal(err)
	}
	if fetched == nil || fetched.Name != "Ada" {
		t.Fatalf("GetBabyByID returned %+v", fetched)
	}
}

func TestGetBabyNotFound(t *testing.T) {
	s := newTestStore(t)
	baby, err := s.GetBabyByID("missing")
	if err != nil {
		t.Fatal(err)
	}
	if baby != nil {
		t.Fatal("expected nil for missing baby")
	}
}

func TestInsertBabyCreatesSettings(t *testing.T) {
	s := newTestStore(t)
	baby := newTestBaby(t, s)

	settings, err := s.GetBabySettings(baby.ID)
	if err != nil {
		t.Fatal(err)
	}
	if settings == nil {
		t.Fatal("settings row should be created with the baby")
	}
	if settings.UseMetricUnits {
		t.Fatal("metric should default to off")
	}
	if settings.DailyPumpingGoalOz != nil {
		t.Fatal("pumping goal should default to nil")
	}
}

func TestGetAllBabiesNewestFirst(t *testing.T) {
	s := newTestStore(t)
	birth := time.Now().AddDate(0, -2, 0)
	s.db.Exec(`INSERT INTO babies (id, name, birth_date, created_at) VALUES (?, ?, ?, ?)`,
		"b1", "First", birth.Format(time.RFC3339), "2026-01-01T00:00:00Z")
	s.db.Exec(`INSERT INTO babies (id, name, birth_date, created_at) VALUES (?, ?, ?, ?)`,
		"b2", "Second", birth.Format(time.RFC3339), "2026-02-01T00:00:00Z")

	babies, err := s.GetAllBabies()
	if err != nil {
		t.Fatal(err)
	}
	if len(babies) != 2 {
		t.Fatalf("expected 2 babies, got %d", len(babies))
	}
	if babies[0].Name != "Second" {
		t.Fatalf("expected newest first, got %s", babies[0].Name)
	}
}

func TestGetBabyCount(t *testing.T) {
	s := newTestStore(t)
	n, _ := s.GetBabyCount()
	if n != 0 {
		t.Fatalf("expected 0, got %d", n)
	}
	newTestBaby(t, s)
	n, _ = s.GetBabyCount()
	if n != 1 {
		t.Fatalf("expected 1, got %d", n)
	}
}

func TestUpdateBabyPartial(t *testing.T) {
	s := newTestStore(t)
	baby := newTestBaby(t, s)

	name := "Renamed"
	if err := s.UpdateBaby(baby.ID, BabyUpdate{Name: &name}); err != nil {
		t.Fatal(err)
	}
	updated, _ := s.GetBabyByID(baby.ID)
	if updated.Name != "Renamed" {
		t.Fatalf("name not updated: %s", updated.Name)
	}
	// Untouched field survives
	if !updated.BirthDate.Equal(baby.BirthDate) {
		t.Fatal("birth date should be unchanged")
	}
}

func TestUpdateBabyEmptyNoOp(t *testing.T) {
	s := newTestStore(t)
	baby := newTestBaby(t, s)
	if err := s.UpdateBaby(baby.ID, BabyUpdate{}); err != nil {
		t.Fatalf("empty update should be a no-op, got %v", err)
	}
}

func TestDeleteBabyCascades(t *testing.T) {
	s := newTestStore(t)
	baby := newTestBaby(t, s)

	insertSleep(t, s, baby.ID, time.Hour, 30)
	s.InsertFeedingLog(FeedingLogInsert{BabyID: baby.ID, FeedType: FeedBottle, StartTime: time.Now()})
	s.InsertDiaperLog(DiaperLogInsert{BabyID: baby.ID, LoggedAt: time.Now(), DiaperType: DiaperWet})
	s.InsertPumpingLog(PumpingLogInsert{BabyID: baby.ID, StartTime: time.Now(), OutputOz: 3})

	if err := s.DeleteBaby(baby.ID); err != nil {
		t.Fatal(err)
	}

	for _, table := range []string{"baby_settings", "sleep_logs", "feeding_logs", "diaper_logs", "pumping_logs"} {
		var n int
		s.db.QueryRow("SELECT COUNT(*) FROM "+table).Scan(&n)
		if n != 0 {
			t.Fatalf("%s should be empty after cascade delete, got %d rows", table, n)
		}
	}
}

func TestUpdateBabySettings(t *testing.T) {
	s := newTestStore(t)
	baby := newTestBaby(t, s)

	metric := true
	goal := 12.5
	err := s.UpdateBabySettings(baby.ID, BabySettingsUpdate{
		UseMetricUnits:     &metric,
		DailyPumpingGoalOz: &goal,
	})
	if err != nil {
		t.Fatal(err)
	}

	settings, _ := s.GetBabySettings(baby.ID)
	if !settings.UseMetricUnits {
		t.Fatal("metric not saved")
	}
	if settings.DailyPumpingGoalOz == nil || *settings.DailyPumpingGoalOz != 12.5 {
		t.Fatalf("goal not saved: %v", settings.DailyPumpingGoalOz)
	}
}

func TestForeignKeyLogsBaby(t *testing.T) {
	s := newTestStore(t)
	_, err := s.InsertSleepLog(SleepLogInsert{
		BabyID:    "missing",
		StartTime: time.Now(),
		SleepType: SleepNap,
	})
	if err == nil {
		t.Fatal("expected foreign key error")
	}
}

// ============================================================
// Sleep logs
// ============================================================

func TestInsertAndGetSleepLog(t *testing.T) {
	s := newTestStore(t)
	baby := newTestBaby(t, s)

	end := time.Now()
	start := end.Add(-45 * time.Minute)
	quality := 4
	loc := "crib"
	log, err := s.InsertSleepLog(SleepLogInsert{
		BabyID:        baby.ID,
		StartTime:     start,
		EndTime:       &end,
		SleepType:     SleepNap,
		Location:      &loc,
		QualityRating: &quality,
	})
	if err != nil {
		t.Fatal(err)
	}
	if log.ID == "" {
		t.Fatal("expected non-empty ID")
	}
	if log.SleepType != SleepNap {
		t.Fatalf("unexpected type: %s", log.SleepType)
	}
	if log.EndTime == nil {
		t.Fatal("end time should round-trip")
	}
	if log.QualityRating == nil || *log.QualityRating != 4 {
		t.Fatalf("quality not stored: %v", log.QualityRating)
	}

	fetched, err := s.GetSleepLogByID(log.ID)
	if err != nil {
		t.Fatal(err)
	}
	if fetched == nil || fetched.Location == nil || *fetched.Location != "crib" {
		t.Fatalf("fetched log wrong: %+v", fetched)
	}
}

func TestInsertSleepLogRejectsSecondActive(t *testing.T) {
	s := newTestStore(t)
	baby := newTestBaby(t, s)

	_, err := s.InsertSleepLog(SleepLogInsert{
		BabyID:    baby.ID,
		StartTime: time.Now(),
		SleepType: SleepNap,
	})
	if err != nil {
		t.Fatal(err)
	}

	_, err = s.InsertSleepLog(SleepLogInsert{
		BabyID:    baby.ID,
		StartTime: time.Now(),
		SleepType: SleepNight,
	})
	if !errors.Is(err, ErrActiveSleepExists) {
		t.Fatalf("expected ErrActiveSleepExists, got %v", err)
	}
}

func TestInsertSleepLogActivePerBaby(t *testing.T) {
	s := newTestStore(t)
	baby1 := newTestBaby(t, s)
	baby2, _ := s.InsertBaby("Theo", time.Now().AddDate(-1, 0, 0), nil)

	_, err := s.InsertSleepLog(SleepLogInsert{BabyID: baby1.ID, StartTime: time.Now(), SleepType: SleepNap})
	if err != nil {
		t.Fatal(err)
	}
	// A different baby can still have an active session
	_, err = s.InsertSleepLog(SleepLogInsert{BabyID: baby2.ID, StartTime: time.Now(), SleepType: SleepNap})
	if err != nil {
		t.Fatalf("other baby's active session should be allowed: %v", err)
	}
}

func TestCompletedSleepAllowedAlongsideActive(t *testing.T) {
	s := newTestStore(t)
	baby := newTestBaby(t, s)

	_, err := s.InsertSleepLog(SleepLogInsert{BabyID: baby.ID, StartTime: time.Now(), SleepType: SleepNap})
	if err != nil {
		t.Fatal(err)
	}
	// Backfilling a finished session is fine while one is running
	insertSleep(t, s, baby.ID, 2*time.Hour, 40)
}

func TestGetActiveSleepLog(t *testing.T) {
	s := newTestStore(t)
	baby := newTestBaby(t, s)

	active, err := s.GetActiveSleepLog(baby.ID)
	if err != nil {
		t.Fatal(err)
	}
	if active != nil {
		t.Fatal("no active session yet")
	}

	log, _ := s.InsertSleepLog(SleepLogInsert{BabyID: baby.ID, StartTime: time.Now(), SleepType: SleepNight})
	active, _ = s.GetActiveSleepLog(baby.ID)
	if active == nil || active.ID != log.ID {
		t.Fatal("active session should be returned")
	}
	if active.EndTime != nil {
		t.Fatal("active session has no end time")
	}
}

func TestEndSleepLog(t *testing.T) {
	s := newTestStore(t)
	baby := newTestBaby(t, s)

	log, _ := s.InsertSleepLog(SleepLogInsert{BabyID: baby.ID, StartTime: time.Now().Add(-30 * time.Minute), SleepType: SleepNap})
	if err := s.EndSleepLog(log.ID, time.Now()); err != nil {
		t.Fatal(err)
	}

	ended, _ := s.GetSleepLogByID(log.ID)
	if ended.EndTime == nil {
		t.Fatal("end time should be set")
	}
	active, _ := s.GetActiveSleepLog(baby.ID)
	if active != nil {
		t.Fatal("no session should be active after ending")
	}
}

func TestGetSleepLogsRange(t *testing.T) {
	s := newTestStore(t)
	baby := newTestBaby(t, s)

	insertSleep(t, s, baby.ID, time.Hour, 30)
	insertSleep(t, s, baby.ID, 3*time.Hour, 60)
	insertSleep(t, s, baby.ID, 50*time.Hour, 45) // outside the window

	from := time.Now().Add(-24 * time.Hour)
	to := time.Now().Add(time.Hour)
	logs, err := s.GetSleepLogs(baby.ID, from, to)
	if err != nil {
		t.Fatal(err)
	}
	if len(logs) != 2 {
		t.Fatalf("expected 2 logs in range, got %d", len(logs))
	}
	// Newest start first
	if logs[0].StartTime.Before(logs[1].StartTime) {
		t.Fatal("logs should be newest first")
	}
}

func TestGetLastSleepLog(t *testing.T) {
	s := newTestStore(t)
	baby := newTestBaby(t, s)

	last, err := s.GetLastSleepLog(baby.ID)
	if err != nil {
		t.Fatal(err)
	}
	if last != nil {
		t.Fatal("expected nil with no logs")
	}

	insertSleep(t, s, baby.ID, 5*time.Hour, 30)
	recent := insertSleep(t, s, baby.ID, time.Hour, 45)

	last, _ = s.GetLastSleepLog(baby.ID)
	if last == nil || last.ID != recent.ID {
		t.Fatal("should return the most recently started log")
	}
}

func TestUpdateSleepLog(t *testing.T) {
	s := newTestStore(t)
	baby := newTestBaby(t, s)
	log := insertSleep(t, s, baby.ID, time.Hour, 30)

	night := SleepNight
	quality := 5
	if err := s.UpdateSleepLog(log.ID, SleepLogUpdate{SleepType: &night, QualityRating: &quality}); err != nil {
		t.Fatal(err)
	}
	updated, _ := s.GetSleepLogByID(log.ID)
	if updated.SleepType != SleepNight || updated.QualityRating == nil || *updated.QualityRating != 5 {
		t.Fatalf("update failed: %+v", updated)
	}
}

func TestDeleteSleepLog(t *testing.T) {
	s := newTestStore(t)
	baby := newTestBaby(t, s)
	log := insertSleep(t, s, baby.ID, time.Hour, 30)

	if err := s.DeleteSleepLog(log.ID); err != nil {
		t.Fatal(err)
	}
	gone, _ := s.GetSleepLogByID(log.ID)
	if gone != nil {
		t.Fatal("log should be deleted")
	}
}

func TestSleepMinutesByDay(t *testing.T) {
	s := newTestStore(t)
	baby := newTestBaby(t, s)

	// Two sessions today: 30 + 60 minutes
	insertSleep(t, s, baby.ID, time.Hour, 30)
	insertSleep(t, s, baby.ID, 2*time.Hour, 60)

	from := time.Now().AddDate(0, 0, -1)
	to := time.Now().AddDate(0, 0, 1)
	days, err := s.SleepMinutesByDay(baby.ID, from, to)
	if err != nil {
		t.Fatal(err)
	}
	var total int
	for _, d := range days {
		total += d.Minutes
	}
	if total < 89 || total > 91 {
		t.Fatalf("expected ~90 minutes, got %d", total)
	}
}

func TestSleepMinutesByDayCountsActiveSession(t *testing.T) {
	s := newTestStore(t)
	baby := newTestBaby(t, s)

	// Active session started 40 minutes ago, no end time
	_, err := s.InsertSleepLog(SleepLogInsert{
		BabyID:    baby.ID,
		StartTime: time.Now().Add(-40 * time.Minute),
		SleepType: SleepNap,
	})
	if err != nil {
		t.Fatal(err)
	}

	total, err := s.TotalSleepToday(baby.ID)
	if err != nil {
		t.Fatal(err)
	}
	if total < 39 || total > 41 {
		t.Fatalf("active session should count up to now, got %d minutes", total)
	}
}

func TestTotalSleepTodaySpansUTCDateBoundary(t *testing.T) {
	// In a UTC+9 local zone an early-morning session carries the previous
	// UTC date, so the local day's sessions straddle two UTC date buckets.
	// The today total must cover all of them.
	prev := time.Local
	time.Local = time.FixedZone("UTC+9", 9*60*60)
	t.Cleanup(func() { time.Local = prev })

	s := newTestStore(t)
	baby := newTestBaby(t, s)

	now := time.Now()
	midnight := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.Local)

	// 04:30-05:00 local (previous UTC date) and 15:00-15:45 local.
	earlyEnd := midnight.Add(5 * time.Hour)
	earlyStart := earlyEnd.Add(-30 * time.Minute)
	if _, err := s.InsertSleepLog(SleepLogInsert{
		BabyID: baby.ID, StartTime: earlyStart, EndTime: &earlyEnd, SleepType: SleepNight,
	}); err != nil {
		t.Fatal(err)
	}
	lateEnd := midnight.Add(15*time.Hour + 45*time.Minute)
	lateStart := midnight.Add(15 * time.Hour)
	if _, err := s.InsertSleepLog(SleepLogInsert{
		BabyID: baby.ID, StartTime: lateStart, EndTime: &lateEnd, SleepType: SleepNap,
	}); err != nil {
		t.Fatal(err)
	}

	total, err := s.TotalSleepToday(baby.ID)
	if err != nil {
		t.Fatal(err)
	}
	if total < 74 || total > 76 {
		t.Fatalf("expected ~75 minutes across both sessions, got %d", total)
	}
}

func TestTotalSleepTodayEmpty(t *testing.T) {
	s := newTestStore(t)
	baby := newTestBaby(t, s)
	total, err := s.TotalSleepToday(baby.ID)
	if err != nil {
		t.Fatal(err)
	}
	if total != 0 {
		t.Fatalf("expected 0, got %d", total)
	}
}

// ============================================================
// Feeding logs
// ============================================================

func TestInsertFeedingLogBottle(t *testing.T) {
	s := newTestStore(t)
	baby := newTestBaby(t, s)

	amount := 4.5
	content := ContentFormula
	log, err := s.InsertFeedingLog(FeedingLogInsert{
		BabyID:      baby.ID,
		FeedType:    FeedBottle,
		StartTime:   time.Now(),
		AmountOz:    &amount,
		ContentType: &content,
	})
	if err != nil {
		t.Fatal(err)
	}
	if log.AmountOz == nil || *log.AmountOz != 4.5 {
		t.Fatalf("amount not stored: %v", log.AmountOz)
	}
	if log.ContentType == nil || *log.ContentType != ContentFormula {
		t.Fatalf("content not stored: %v", log.ContentType)
	}
	if log.ReactionFlag {
		t.Fatal("reaction flag should default false")
	}
}

func TestInsertFeedingLogSolids(t *testing.T) {
	s := newTestStore(t)
	baby := newTestBaby(t, s)

	food := "sweet potato"
	content := ContentFood
	log, err := s.InsertFeedingLog(FeedingLogInsert{
		BabyID:       baby.ID,
		FeedType:     FeedSolids,
		StartTime:    time.Now(),
		FoodName:     &food,
		ContentType:  &content,
		ReactionFlag: true,
	})
	if err != nil {
		t.Fatal(err)
	}
	if log.FoodName == nil || *log.FoodName != "sweet potato" {
		t.Fatalf("food name not stored: %v", log.FoodName)
	}
	if !log.ReactionFlag {
		t.Fatal("reaction flag should round-trip")
	}
}

func TestGetLastNursingSide(t *testing.T) {
	s := newTestStore(t)
	baby := newTestBaby(t, s)

	side, err := s.GetLastNursingSide(baby.ID)
	if err != nil {
		t.Fatal(err)
	}
	if side != "" {
		t.Fatalf("expected empty with no nursing logs, got %q", side)
	}

	s.InsertFeedingLog(FeedingLogInsert{BabyID: baby.ID, FeedType: FeedBreastLeft, StartTime: time.Now().Add(-2 * time.Hour)})
	s.InsertFeedingLog(FeedingLogInsert{BabyID: baby.ID, FeedType: FeedBreastRight, StartTime: time.Now().Add(-time.Hour)})
	// Bottles don't count
	s.InsertFeedingLog(FeedingLogInsert{BabyID: baby.ID, FeedType: FeedBottle, StartTime: time.Now()})

	side, _ = s.GetLastNursingSide(baby.ID)
	if side != "right" {
		t.Fatalf("expected right, got %q", side)
	}
}

func TestTodayFeedCount(t *testing.T) {
	s := newTestStore(t)
	baby := newTestBaby(t, s)

	s.InsertFeedingLog(FeedingLogInsert{BabyID: baby.ID, FeedType: FeedBottle, StartTime: time.Now()})
	s.InsertFeedingLog(FeedingLogInsert{BabyID: baby.ID, FeedType: FeedBreastLeft, StartTime: time.Now()})
	// Yesterday, excluded
	s.InsertFeedingLog(FeedingLogInsert{BabyID: baby.ID, FeedType: FeedBottle, StartTime: time.Now().AddDate(0, 0, -1)})

	n, err := s.TodayFeedCount(baby.ID)
	if err != nil {
		t.Fatal(err)
	}
	if n != 2 {
		t.Fatalf("expected 2, got %d", n)
	}
}

func TestUpdateFeedingLog(t *testing.T) {
	s := newTestStore(t)
	baby := newTestBaby(t, s)
	log, _ := s.InsertFeedingLog(FeedingLogInsert{BabyID: baby.ID, FeedType: FeedBottle, StartTime: time.Now()})

	amount := 6.0
	flag := true
	if err := s.UpdateFeedingLog(log.ID, FeedingLogUpdate{AmountOz: &amount, ReactionFlag: &flag}); err != nil {
		t.Fatal(err)
	}
	updated, _ := s.GetFeedingLogByID(log.ID)
	if updated.AmountOz == nil || *updated.AmountOz != 6.0 || !updated.ReactionFlag {
		t.Fatalf("update failed: %+v", updated)
	}
}

// ============================================================
// Diaper logs
// ============================================================

func TestGetTodayDiaperCountsBothCountsInEach(t *testing.T) {
	s := newTestStore(t)
	baby := newTestBaby(t, s)

	s.InsertDiaperLog(DiaperLogInsert{BabyID: baby.ID, LoggedAt: time.Now(), DiaperType: DiaperWet})
	s.InsertDiaperLog(DiaperLogInsert{BabyID: baby.ID, LoggedAt: time.Now(), DiaperType: DiaperDirty})
	s.InsertDiaperLog(DiaperLogInsert{BabyID: baby.ID, LoggedAt: time.Now(), DiaperType: DiaperBoth})

	counts, err := s.GetTodayDiaperCounts(baby.ID)
	if err != nil {
		t.Fatal(err)
	}
	if counts.Wet != 2 {
		t.Fatalf("expected wet=2 (wet + both), got %d", counts.Wet)
	}
	if counts.Dirty != 2 {
		t.Fatalf("expected dirty=2 (dirty + both), got %d", counts.Dirty)
	}
}

func TestDiaperCountByDay(t *testing.T) {
	s := newTestStore(t)
	baby := newTestBaby(t, s)

	s.InsertDiaperLog(DiaperLogInsert{BabyID: baby.ID, LoggedAt: time.Now(), DiaperType: DiaperWet})
	s.InsertDiaperLog(DiaperLogInsert{BabyID: baby.ID, LoggedAt: time.Now(), DiaperType: DiaperDirty})
	s.InsertDiaperLog(DiaperLogInsert{BabyID: baby.ID, LoggedAt: time.Now().AddDate(0, 0, -1), DiaperType: DiaperWet})

	from := time.Now().AddDate(0, 0, -2)
	to := time.Now().AddDate(0, 0, 1)
	days, err := s.DiaperCountByDay(baby.ID, from, to)
	if err != nil {
		t.Fatal(err)
	}
	if len(days) != 2 {
		t.Fatalf("expected 2 days, got %d", len(days))
	}
	var total int
	for _, d := range days {
		total += d.Count
	}
	if total != 3 {
		t.Fatalf("expected 3 changes total, got %d", total)
	}
}

// ============================================================
// Pumping logs
// ============================================================

func TestGetTodayPumpingTotal(t *testing.T) {
	s := newTestStore(t)
	baby := newTestBaby(t, s)

	total, err := s.GetTodayPumpingTotal(baby.ID)
	if err != nil {
		t.Fatal(err)
	}
	if total != 0 {
		t.Fatalf("expected 0 with no logs, got %f", total)
	}

	s.InsertPumpingLog(PumpingLogInsert{BabyID: baby.ID, StartTime: time.Now(), OutputOz: 3.5})
	s.InsertPumpingLog(PumpingLogInsert{BabyID: baby.ID, StartTime: time.Now(), OutputOz: 2.0})
	s.InsertPumpingLog(PumpingLogInsert{BabyID: baby.ID, StartTime: time.Now().AddDate(0, 0, -1), OutputOz: 4.0})

	total, _ = s.GetTodayPumpingTotal(baby.ID)
	if total != 5.5 {
		t.Fatalf("expected 5.5, got %f", total)
	}
}

func TestInsertPumpingLogPerSide(t *testing.T) {
	s := newTestStore(t)
	baby := newTestBaby(t, s)

	left, right := 1.5, 2.0
	log, err := s.InsertPumpingLog(PumpingLogInsert{
		BabyID:        baby.ID,
		StartTime:     time.Now(),
		OutputOz:      3.5,
		OutputLeftOz:  &left,
		OutputRightOz: &right,
	})
	if err != nil {
		t.Fatal(err)
	}
	if log.OutputLeftOz == nil || *log.OutputLeftOz != 1.5 {
		t.Fatalf("left output not stored: %v", log.OutputLeftOz)
	}
	if log.OutputRightOz == nil || *log.OutputRightOz != 2.0 {
		t.Fatalf("right output not stored: %v", log.OutputRightOz)
	}
}

// ============================================================
// Milestone photos
// ============================================================

func TestMilestonePhotoCRUD(t *testing.T) {
	s := newTestStore(t)
	baby := newTestBaby(t, s)

	month := 3
	photo, err := s.InsertMilestonePhoto(MilestonePhotoInsert{
		BabyID:        baby.ID,
		ImageURI:      "file:///photos/month3.jpg",
		TakenAt:       time.Now(),
		MonthNumber:   &month,
		MilestoneType: MilestoneMonthly,
	})
	if err != nil {
		t.Fatal(err)
	}
	if photo.MonthNumber == nil || *photo.MonthNumber != 3 {
		t.Fatalf("month not stored: %v", photo.MonthNumber)
	}

	fav := true
	if err := s.UpdateMilestonePhoto(photo.ID, MilestonePhotoUpdate{IsFavorite: &fav}); err != nil {
		t.Fatal(err)
	}
	updated, _ := s.GetMilestonePhotoByID(photo.ID)
	if !updated.IsFavorite {
		t.Fatal("favorite flag not saved")
	}

	photos, _ := s.GetMilestonePhotos(baby.ID)
	if len(photos) != 1 {
		t.Fatalf("expected 1 photo, got %d", len(photos))
	}

	if err := s.DeleteMilestonePhoto(photo.ID); err != nil {
		t.Fatal(err)
	}
	gone, _ := s.GetMilestonePhotoByID(photo.ID)
	if gone != nil {
		t.Fatal("photo should be deleted")
	}
}

// ============================================================
// App settings
// ============================================================

func TestSetSelectedBaby(t *testing.T) {
	s := newTestStore(t)
	baby := newTestBaby(t, s)

	if err := s.SetSelectedBaby(baby.ID); err != nil {
		t.Fatal(err)
	}
	settings, _ := s.GetAppSettings()
	if settings.SelectedBabyID == nil || *settings.SelectedBabyID != baby.ID {
		t.Fatalf("selected baby not saved: %v", settings.SelectedBabyID)
	}
}

func TestUpdateAppSettingsPartial(t *testing.T) {
	s := newTestStore(t)

	done := true
	mode := "dark"
	if err := s.UpdateAppSettings(AppSettingsUpdate{HasCompletedOnboarding: &done, AppearanceMode: &mode}); err != nil {
		t.Fatal(err)
	}
	settings, _ := s.GetAppSettings()
	if !settings.HasCompletedOnboarding || settings.AppearanceMode != "dark" {
		t.Fatalf("update failed: %+v", settings)
	}
	// Untouched fields survive
	if settings.HasUnlockedPremium {
		t.Fatal("premium flag should be untouched")
	}
}

func TestUnlockPremium(t *testing.T) {
	s := newTestStore(t)
	at := time.Now()
	if err := s.UnlockPremium(at); err != nil {
		t.Fatal(err)
	}
	settings, _ := s.GetAppSettings()
	if !settings.HasUnlockedPremium {
		t.Fatal("premium should be unlocked")
	}
	if settings.PremiumUnlockDate == nil {
		t.Fatal("unlock date should be set")
	}
}

func TestAddTipAccumulates(t *testing.T) {
	s := newTestStore(t)
	s.AddTip(2.99)
	s.AddTip(4.99)
	settings, _ := s.GetAppSettings()
	if settings.TipJarTotal < 7.97 || settings.TipJarTotal > 7.99 {
		t.Fatalf("expected ~7.98, got %f", settings.TipJarTotal)
	}
}

// ============================================================
// Close safety
// ============================================================

func TestCloseStore(t *testing.T) {
	s, _ := NewMemory()
	if err := s.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}
}
