package store

import "time"

type SleepType string

const (
	SleepNap   SleepType = "nap"
	SleepNight SleepType = "night"
)

type FeedType string

const (
	FeedBreastLeft  FeedType = "breast_left"
	FeedBreastRight FeedType = "breast_right"
	FeedBottle      FeedType = "bottle"
	FeedSolids      FeedType = "solids"
)

type ContentType string

const (
	ContentBreastMilk ContentType = "breast_milk"
	ContentFormula    ContentType = "formula"
	ContentFood       ContentType = "food"
)

type DiaperType string

const (
	DiaperWet   DiaperType = "wet"
	DiaperDirty DiaperType = "dirty"
	DiaperBoth  DiaperType = "both"
)

type MilestoneType string

const (
	MilestoneMonthly       MilestoneType = "monthly"
	MilestoneDevelopmental MilestoneType = "developmental"
	MilestoneCustom        MilestoneType = "custom"
)

type Baby struct {
	ID        string
	Name      string
	BirthDate time.Time
	AvatarURI *string
	CreatedAt time.Time
}

// BabySettings has exactly one row per baby, created alongside it.
type BabySettings struct {
	ID                   string
	BabyID               string
	DailyPumpingGoalOz   *float64
	FeedingReminderHours *float64
	UseMetricUnits       bool
}

type SleepLog struct {
	ID            string
	BabyID        string
	StartTime     time.Time
	EndTime       *time.Time // nil while the session is in progress
	SleepType     SleepType
	Location      *string
	QualityRating *int
	Notes         *string
	CreatedAt     time.Time
}

type FeedingLog struct {
	ID           string
	BabyID       string
	FeedType     FeedType
	StartTime    time.Time
	EndTime      *time.Time // nursing duration only
	AmountOz     *float64   // bottle only, canonical ounces
	ContentType  *ContentType
	FoodName     *string
	ReactionFlag bool
	Notes        *string
	CreatedAt    time.Time
}

type DiaperLog struct {
	ID          string
	BabyID      string
	LoggedAt    time.Time
	DiaperType  DiaperType
	Color       *string
	Consistency *string
	Notes       *string
	CreatedAt   time.Time
}

type PumpingLog struct {
	ID            string
	BabyID        string
	StartTime     time.Time
	EndTime       *time.Time
	OutputOz      float64 // canonical ounces
	OutputLeftOz  *float64
	OutputRightOz *float64
	Notes         *string
	CreatedAt     time.Time
}

type MilestonePhoto struct {
	ID            string
	BabyID        string
	ImageURI      string
	ThumbnailURI  *string
	TakenAt       time.Time
	MonthNumber   *int
	MilestoneType MilestoneType
	MilestoneName *string
	Caption       *string
	IsFavorite    bool
	CreatedAt     time.Time
}

// AppSettings is the singleton row keyed id=1.
type AppSettings struct {
	HasCompletedOnboarding bool
	SelectedBabyID         *string
	AppearanceMode         string // light, dark, system
	HasUnlockedPremium     bool
	PremiumUnlockDate      *time.Time
	TipJarTotal            float64
}

// --- Insert parameter structs ---

type SleepLogInsert struct {
	BabyID        string
	StartTime     time.Time
	EndTime       *time.Time
	SleepType     SleepType
	Location      *string
	QualityRating *int
	Notes         *string
}

type FeedingLogInsert struct {
	BabyID       string
	FeedType     FeedType
	StartTime    time.Time
	EndTime      *time.Time
	AmountOz     *float64
	ContentType  *ContentType
	FoodName     *string
	ReactionFlag bool
	Notes        *string
}

type DiaperLogInsert struct {
	BabyID      string
	LoggedAt    time.Time
	DiaperType  DiaperType
	Color       *string
	Consistency *string
	Notes       *string
}

type PumpingLogInsert struct {
	BabyID        string
	StartTime     time.Time
	EndTime       *time.Time
	OutputOz      float64
	OutputLeftOz  *float64
	OutputRightOz *float64
	Notes         *string
}

type MilestonePhotoInsert struct {
	BabyID        string
	ImageURI      string
	ThumbnailURI  *string
	TakenAt       time.Time
	MonthNumber   *int
	MilestoneType MilestoneType
	MilestoneName *string
	Caption       *string
	IsFavorite    bool
}

// --- Partial update structs; nil fields are left untouched ---

type BabyUpdate struct {
	Name      *string
	BirthDate *time.Time
	AvatarURI *string
}

type BabySettingsUpdate struct {
	DailyPumpingGoalOz   *float64
	FeedingReminderHours *float64
	UseMetricUnits       *bool
}

type SleepLogUpdate struct {
	StartTime     *time.Time
	EndTime       *time.Time
	SleepType     *SleepType
	Location      *string
	QualityRating *int
	Notes         *string
}

type FeedingLogUpdate struct {
	FeedType     *FeedType
	StartTime    *time.Time
	EndTime      *time.Time
	AmountOz     *float64
	ContentType  *ContentType
	FoodName     *string
	ReactionFlag *bool
	Notes        *string
}

type DiaperLogUpdate struct {
	LoggedAt    *time.Time
	DiaperType  *DiaperType
	Color       *string
	Consistency *string
	Notes       *string
}

type PumpingLogUpdate struct {
	StartTime     *time.Time
	EndTime       *time.Time
	OutputOz      *float64
	OutputLeftOz  *float64
	OutputRightOz *float64
	Notes         *string
}

type MilestonePhotoUpdate struct {
	ImageURI      *string
	ThumbnailURI  *string
	TakenAt       *time.Time
	MonthNumber   *int
	MilestoneType *MilestoneType
	MilestoneName *string
	Caption       *string
	IsFavorite    *bool
}

type AppSettingsUpdate struct {
	HasCompletedOnboarding *bool
	SelectedBabyID         *string
	AppearanceMode         *string
	HasUnlockedPremium     *bool
	PremiumUnlockDate      *time.Time
	TipJarTotal            *float64
}

// --- Aggregation result rows ---

// DayMinutes is one day's summed sleep minutes, date in YYYY-MM-DD.
type DayMinutes struct {
	Date    string
	Minutes int
}

type DayCount struct {
	Date  string
	Count int
}

type DayVolume struct {
	Date    string
	TotalOz float64
}

// DayActivity is the derived per-day rollup; never persisted.
type DayActivity struct {
	Date         string
	Intensity    int
	SleepMinutes int
	FeedCount    int
	DiaperCount  int
	PumpingOz    float64
	PhotoCount   int
}

// DiaperCounts tallies wet and dirty changes; a "both" diaper counts in each.
type DiaperCounts struct {
	Wet   int
	Dirty int
}
