package director

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidSchedule is returned for schedules that cannot be played.
	ErrInvalidSchedule = errors.New("invalid schedule")
	// ErrSceneOverlap marks a scene starting before the previous one ends.
	ErrSceneOverlap = errors.New("scene overlaps previous scene")
	// ErrSceneGap marks a scene starting after the previous one ends.
	ErrSceneGap = errors.New("gap before scene")
	// ErrActionOrder marks action offsets that are not strictly increasing.
	ErrActionOrder = errors.New("action offsets not strictly increasing")
)

// Validate checks the schedule once, before the first tick.
func (s *Schedule) Validate() error {
	if s == nil || len(s.Scenes) == 0 {
		return fmt.Errorf("%w: no scenes", ErrInvalidSchedule)
	}

	var errs []error
	seen := make(map[string]bool, len(s.Scenes))
	var end int64

	for i, sc := range s.Scenes {
		name := sc.ID
		if name == "" {
			name = fmt.Sprintf("#%d", i)
			errs = append(errs, fmt.Errorf("scene %s: empty id", name))
		} else if seen[sc.ID] {
			errs = append(errs, fmt.Errorf("scene %s: duplicate id", name))
		}
		seen[sc.ID] = true

		if sc.DurationMS <= 0 {
			errs = append(errs, fmt.Errorf("scene %s: duration must be positive, got %dms", name, sc.DurationMS))
		}
		if sc.StartMS != nil {
			switch {
			case *sc.StartMS < end:
				errs = append(errs, fmt.Errorf("scene %s: %w (starts %dms, previous ends %dms)", name, ErrSceneOverlap, *sc.StartMS, end))
			case *sc.StartMS > end:
				errs = append(errs, fmt.Errorf("scene %s: %w (starts %dms, previous ends %dms)", name, ErrSceneGap, *sc.StartMS, end))
			}
		}
		if sc.Transition.DurationMS < 0 || (sc.DurationMS > 0 && sc.Transition.DurationMS > sc.DurationMS) {
			errs = append(errs, fmt.Errorf("scene %s: transition duration %dms out of range", name, sc.Transition.DurationMS))
		}

		errs = append(errs, validateActions(name, sc)...)
		end += sc.DurationMS
	}

	if len(errs) > 0 {
		return fmt.Errorf("%w: %w", ErrInvalidSchedule, errors.Join(errs...))
	}
	return nil
}

func validateActions(name string, sc Scene) []error {
	if len(sc.Actions) == 0 {
		return []error{fmt.Errorf("scene %s: no actions", name)}
	}

	var errs []error
	ids := make(map[string]bool, len(sc.Actions))
	for j, a := range sc.Actions {
		if a.ID == "" {
			errs = append(errs, fmt.Errorf("scene %s: action #%d has empty id", name, j))
		} else if ids[a.ID] {
			errs = append(errs, fmt.Errorf("scene %s: duplicate action %s", name, a.ID))
		}
		ids[a.ID] = true

		if a.OffsetMS < 0 {
			errs = append(errs, fmt.Errorf("scene %s: action %s has negative offset", name, a.ID))
		}
		if a.OffsetMS >= sc.DurationMS {
			errs = append(errs, fmt.Errorf("scene %s: action %s starts at %dms, scene ends at %dms", name, a.ID, a.OffsetMS, sc.DurationMS))
		}
		if j > 0 && a.OffsetMS <= sc.Actions[j-1].OffsetMS {
			errs = append(errs, fmt.Errorf("scene %s: %w (%s at %dms after %s at %dms)",
				name, ErrActionOrder, a.ID, a.OffsetMS, sc.Actions[j-1].ID, sc.Actions[j-1].OffsetMS))
		}
		if a.Phase != "" && !a.Phase.Valid() {
			errs = append(errs, fmt.Errorf("scene %s: action %s has unknown phase %q", name, a.ID, a.Phase))
		}
	}
	return errs
}
