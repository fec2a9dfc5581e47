package activity

import (
	"encoding/json"
	"math"
	"regexp"
	"strconv"
	"strings"
)

// leadingNumber matches the decimal number a string starts with, so "12abc"
// reads as 12 and trailing text is ignored.
var leadingNumber = regexp.MustCompile(`^[+-]?(\d+\.?\d*|\.\d+)([eE][+-]?\d+)?`)

// Amount is a non-negative cost. It decodes leniently: a string is read up to
// the end of its leading number and anything that is not a finite number
// becomes 0.
type Amount float64

// Float returns the amount with NaN, infinities and negatives mapped to 0.
func (a Amount) Float() float64 {
	return sanitize(float64(a))
}

func (a Amount) MarshalJSON() ([]byte, error) {
	return json.Marshal(a.Float())
}

func (a *Amount) UnmarshalJSON(b []byte) error {
	*a = Amount(lenientNumber(b))
	return nil
}

// Minutes is a non-negative whole number of minutes, decoded like Amount and
// truncated toward zero.
type Minutes int

// Int returns the minutes with negatives mapped to 0.
func (m Minutes) Int() int {
	if m < 0 {
		return 0
	}
	return int(m)
}

func (m Minutes) MarshalJSON() ([]byte, error) {
	return json.Marshal(m.Int())
}

func (m *Minutes) UnmarshalJSON(b []byte) error {
	v := lenientNumber(b)
	if v > math.MaxInt32 {
		v = 0
	}
	*m = Minutes(int(v))
	return nil
}

func lenientNumber(b []byte) float64 {
	var raw any
	if err := json.Unmarshal(b, &raw); err != nil {
		return 0
	}
	switch v := raw.(type) {
	case float64:
		return sanitize(v)
	case string:
		m := leadingNumber.FindString(strings.TrimSpace(v))
		if m == "" {
			return 0
		}
		f, err := strconv.ParseFloat(m, 64)
		if err != nil {
			return 0
		}
		return sanitize(f)
	default:
		return 0
	}
}

func sanitize(f float64) float64 {
	if math.IsNaN(f) || math.IsInf(f, 0) || f < 0 {
		return 0
	}
	return f
}
