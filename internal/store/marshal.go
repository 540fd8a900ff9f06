package store

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"
)

// timeLayout stores timestamps as fixed-width text so that string order
// is time order.
const timeLayout = "2006-01-02T15:04:05.000000000Z07:00"

// marshalOptions converts run options to JSON TEXT for storage.
// HTML escaping is disabled so templates containing '<' or '&' stay
// readable in the database.
func marshalOptions(opts RunOptions) (string, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(opts); err != nil {
		return "", fmt.Errorf("marshal options: %w", err)
	}
	return string(bytes.TrimRight(buf.Bytes(), "\n")), nil
}

// unmarshalOptions parses options JSON TEXT from storage.
func unmarshalOptions(s string) (RunOptions, error) {
	var opts RunOptions
	if err := json.Unmarshal([]byte(s), &opts); err != nil {
		return RunOptions{}, fmt.Errorf("unmarshal options: %w", err)
	}
	return opts, nil
}

func formatTime(t time.Time) string {
	return t.UTC().Format(timeLayout)
}

func parseTime(s string) (time.Time, error) {
	t, err := time.Parse(timeLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse started_at %q: %w", s, err)
	}
	return t, nil
}
