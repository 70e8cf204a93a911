package director

import (
	"bytes"
	"os"

	"gopkg.in/yaml.v3"
)

// WriteSchedule writes a schedule to a YAML file
func WriteSchedule(schedule *Schedule, path string) error {
	data, err := yaml.Marshal(schedule)
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}

// ReadSchedule reads a schedule from a YAML file
func ReadSchedule(path string) (*Schedule, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	return ParseSchedule(data)
}

// ParseSchedule decodes a YAML schedule. Unknown keys are rejected.
func ParseSchedule(data []byte) (*Schedule, error) {
	var schedule Schedule
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&schedule); err != nil {
		return nil, err
	}

	return &schedule, nil
}
