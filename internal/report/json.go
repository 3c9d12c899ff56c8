package report

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/rjboer/GoBPSK/internal/telemetry"
)

type resultsFile struct {
	NumBits int               `json:"numBits"`
	Points  []telemetry.Point `json:"points"`
}

// WriteJSON stores the reported sweep points as indented JSON.
func WriteJSON(numBits int, points []telemetry.Point, path string) error {
	if err := ensureDir(path); err != nil {
		return err
	}
	data, err := json.MarshalIndent(resultsFile{NumBits: numBits, Points: points}, "", "  ")
	if err != nil {
		return fmt.Errorf("encode result: %w", err)
	}
	return os.WriteFile(path, append(data, '\n'), 0o644)
}
