// Package timex contains time helpers shared by configuration and tokens.
package timex

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"
)

// Duration wraps time.Duration for JSON configuration files. It accepts a
// Go duration string ("90s", "1h") or an integer number of milliseconds,
// and always marshals back to the string form.
type Duration struct {
	time.Duration
}

func (d Duration) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.String())
}

func (d *Duration) UnmarshalJSON(b []byte) error {
	var v any
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}
	switch value := v.(type) {
	case float64:
		if value != float64(int64(value)) {
			return fmt.Errorf("duration %v: milliseconds must be an integer", value)
		}
		d.Duration = time.Duration(value) * time.Millisecond
		return nil
	case string:
		parsed, err := time.ParseDuration(value)
		if err != nil {
			return err
		}
		d.Duration = parsed
		return nil
	default:
		return errors.New("invalid duration")
	}
}

// Millis converts a millisecond count to a time.Duration.
func Millis(ms int64) time.Duration {
	return time.Duration(ms) * time.Millisecond
}
