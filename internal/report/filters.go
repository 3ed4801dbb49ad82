package report

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"
)

// FiltersBI is the request body shared by every reporting endpoint.
// Each optional filter accepts either a single scalar or a list; the
// custom list types erase that distinction at decode time so the rest
// of the pipeline only ever sees ordered slices.
type FiltersBI struct {
	DateFrom   *Date      `json:"data_inicio"`
	DateTo     *Date      `json:"data_fim"`
	BranchIDs  IntList    `json:"codfilial"`
	ClientIDs  StringList `json:"codcliente"`
	CityIDs    IntList    `json:"codcid"`
	ProductIDs IntList    `json:"codpro"`
	Regions    StringList `json:"regiao"`
}

// Window resolves the effective date range: data_fim defaults to today,
// data_inicio to thirty days before data_fim.
func (f FiltersBI) Window(now time.Time) (time.Time, time.Time) {
	end := now
	if f.DateTo != nil {
		end = f.DateTo.Time
	}
	start := end.AddDate(0, 0, -30)
	if f.DateFrom != nil {
		start = f.DateFrom.Time
	}
	return start, end
}

// PriorYearWindow is the same range shifted back exactly 365 days.
func (f FiltersBI) PriorYearWindow(now time.Time) (time.Time, time.Time) {
	start, end := f.Window(now)
	return start.AddDate(0, 0, -365), end.AddDate(0, 0, -365)
}

// Date is a calendar date encoded as "2006-01-02" on the wire.
type Date struct {
	time.Time
}

func (d *Date) UnmarshalJSON(data []byte) error {
	if bytes.Equal(data, []byte("null")) {
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return fmt.Errorf("parse date %q: %w", s, err)
	}
	d.Time = t
	return nil
}

func (d Date) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.Format("2006-01-02"))
}

// IntList accepts null, a bare integer, or an array of integers.
// A bare integer normalizes to a one-element list; order is preserved.
type IntList []int64

func (l *IntList) UnmarshalJSON(data []byte) error {
	if bytes.Equal(data, []byte("null")) {
		*l = nil
		return nil
	}
	if len(data) > 0 && data[0] == '[' {
		var vals []int64
		if err := json.Unmarshal(data, &vals); err != nil {
			return err
		}
		*l = vals
		return nil
	}
	var single int64
	if err := json.Unmarshal(data, &single); err != nil {
		return err
	}
	*l = IntList{single}
	return nil
}

// StringList accepts null, a bare string, or an array of strings.
type StringList []string

func (l *StringList) UnmarshalJSON(data []byte) error {
	if bytes.Equal(data, []byte("null")) {
		*l = nil
		return nil
	}
	if len(data) > 0 && data[0] == '[' {
		var vals []string
		if err := json.Unmarshal(data, &vals); err != nil {
			return err
		}
		*l = vals
		return nil
	}
	var single string
	if err := json.Unmarshal(data, &single); err != nil {
		return err
	}
	*l = StringList{single}
	return nil
}
