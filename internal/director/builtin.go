package director

import (
	_ "embed"
	"fmt"
)

//go:embed scripts/video.yaml
var videoScript []byte

// VideoSchedule returns the built-in product demo script.
func VideoSchedule() (*Schedule, error) {
	schedule, err := ParseSchedule(videoScript)
	if err != nil {
		return nil, fmt.Errorf("built-in video script: %w", err)
	}
	return schedule, nil
}
