package export

import (
	"encoding/csv"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/dotsby/dotsby/internal/store"
)

func sampleLogs() Logs {
	start := time.Date(2026, 8, 27, 13, 0, 0, 0, time.UTC)
	end := start.Add(45 * time.Minute)
	amount := 4.5
	notes := "fussy"

	return Logs{
		Baby: &store.Baby{ID: "b1", Name: "Nora"},
		Sleep: []store.SleepLog{
			{ID: "s1", BabyID: "b1", StartTime: start, EndTime: &end, SleepType: store.SleepNap, Notes: &notes},
			{ID: "s2", BabyID: "b1", StartTime: start.Add(3 * time.Hour), SleepType: store.SleepNight}, // in progress
		},
		Feeding: []store.FeedingLog{
			{ID: "f1", BabyID: "b1", FeedType: store.FeedBottle, StartTime: start, AmountOz: &amount},
		},
		Diapers: []store.DiaperLog{
			{ID: "d1", BabyID: "b1", LoggedAt: start, DiaperType: store.DiaperBoth},
		},
		Pumping: []store.PumpingLog{
			{ID: "p1", BabyID: "b1", StartTime: start, EndTime: &end, OutputOz: 3.25},
		},
	}
}

func TestToCSV(t *testing.T) {
	path := filepath.Join(t.TempDir(), "export.csv")
	if err := ToCSV(sampleLogs(), path); err != nil {
		t.Fatal(err)
	}

	f, err := os.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()

	rows, err := csv.NewReader(f).ReadAll()
	if err != nil {
		t.Fatal(err)
	}
	// Header + 2 sleep + 1 feeding + 1 diaper + 1 pumping
	if len(rows) != 6 {
		t.Fatalf("expected 6 rows, got %d", len(rows))
	}
	if rows[0][0] != "Type" || rows[0][5] != "Amount (oz)" {
		t.Fatalf("unexpected header: %v", rows[0])
	}

	// Completed sleep carries a duration and notes
	if rows[1][0] != "sleep" || rows[1][1] != "nap" {
		t.Fatalf("sleep row: %v", rows[1])
	}
	if rows[1][4] != "45" {
		t.Fatalf("expected 45 min duration, got %q", rows[1][4])
	}
	if rows[1][6] != "fussy" {
		t.Fatalf("notes: %q", rows[1][6])
	}

	// In-progress sleep has empty end and duration
	if rows[2][3] != "" || rows[2][4] != "" {
		t.Fatalf("open session should have empty end/duration: %v", rows[2])
	}

	// Bottle amount formatted with two decimals
	if rows[3][0] != "feeding" || rows[3][5] != "4.50" {
		t.Fatalf("feeding row: %v", rows[3])
	}

	if rows[4][0] != "diaper" || rows[4][1] != "both" {
		t.Fatalf("diaper row: %v", rows[4])
	}
	if rows[5][0] != "pumping" || rows[5][5] != "3.25" {
		t.Fatalf("pumping row: %v", rows[5])
	}
}

func TestToJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "export.json")
	if err := ToJSON(sampleLogs(), path); err != nil {
		t.Fatal(err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}

	var doc struct {
		ExportedAt time.Time `json:"exportedAt"`
		BabyName   string    `json:"babyName"`
	}
	if err := json.Unmarshal(data, &doc); err != nil {
		t.Fatal(err)
	}
	if doc.BabyName != "Nora" {
		t.Fatalf("baby name: %q", doc.BabyName)
	}
	if doc.ExportedAt.IsZero() {
		t.Fatal("exportedAt should be set")
	}
}

func TestToJSONNilBaby(t *testing.T) {
	path := filepath.Join(t.TempDir(), "export.json")
	if err := ToJSON(Logs{}, path); err != nil {
		t.Fatal(err)
	}
	data, _ := os.ReadFile(path)
	var doc struct {
		BabyName string `json:"babyName"`
	}
	if err := json.Unmarshal(data, &doc); err != nil {
		t.Fatal(err)
	}
	if doc.BabyName != "" {
		t.Fatalf("expected empty name, got %q", doc.BabyName)
	}
}

func TestToCSVBadPath(t *testing.T) {
	if err := ToCSV(Logs{}, filepath.Join(t.TempDir(), "missing", "x.csv")); err == nil {
		t.Fatal("expected error for unwritable path")
	}
}
