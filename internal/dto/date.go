package dto

import (
	"bytes"
	"encoding/json"
	"time"

	"github.com/yukikurage/project-tracker-api/internal/utils"
)

// Date is a request date field. It records whether the key was present
// and whether it was null, so updates can tell "unchanged" from "clear".
type Date struct {
	Set  bool
	Null bool
	Time time.Time
}

// UnmarshalJSON accepts null, an RFC 3339 timestamp or a YYYY-MM-DD date
func (d *Date) UnmarshalJSON(data []byte) error {
	d.Set = true
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		d.Null = true
		return nil
	}

	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	t, err := utils.ParseDate(raw)
	if err != nil {
		return err
	}
	d.Null = false
	d.Time = t
	return nil
}

// Ptr returns the date, or nil when it is absent or null
func (d Date) Ptr() *time.Time {
	if !d.Set || d.Null {
		return nil
	}
	t := d.Time
	return &t
}

// Cleared reports an explicit null
func (d Date) Cleared() bool {
	return d.Set && d.Null
}
