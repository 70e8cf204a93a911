package director

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/ivlev/flexdash-demo/internal/system"
)

// GenerateSchedulePath creates a timestamped schedule filename inside dir
func GenerateSchedulePath(dir string) string {
	timestamp := time.Now().Format("2006-01-02_15-04-05")
	return filepath.Join(dir, fmt.Sprintf("schedule_%s.yaml", timestamp))
}

// FindLatestSchedule finds the most recent schedule file in dir
func FindLatestSchedule(dir string) (string, error) {
	latest, err := system.FindLatestFile(dir, ".yaml", ".yml")
	if err != nil {
		return "", fmt.Errorf("no schedule files found: %w", err)
	}
	return latest, nil
}

// LoadSchedule reads a schedule from a file, or from the newest schedule
// file when path is a directory.
func LoadSchedule(path string) (*Schedule, error) {
	if system.IsDir(path) {
		latest, err := FindLatestSchedule(path)
		if err != nil {
			return nil, err
		}
		path = latest
	}
	schedule, err := ReadSchedule(path)
	if err != nil {
		return nil, fmt.Errorf("read schedule %s: %w", path, err)
	}
	return schedule, nil
}
