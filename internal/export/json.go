package export

import (
	"encoding/json"
	"fmt"
	"os"
	"time"
)

type jsonExport struct {
	ExportedAt time.Time `json:"exportedAt"`
	BabyName   string    `json:"babyName"`
	Logs       Logs      `json:"logs"`
}

func ToJSON(l Logs, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create json file: %w", err)
	}
	defer f.Close()

	name := ""
	if l.Baby != nil {
		name = l.Baby.Name
	}
	doc := jsonExport{
		ExportedAt: time.Now(),
		BabyName:   name,
		Logs:       l,
	}

	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("encode json export: %w", err)
	}
	return nil
}
