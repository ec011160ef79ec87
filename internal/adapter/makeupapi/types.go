package makeupapi

import (
	"bytes"
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

type product struct {
	ID          flexString `json:"id"`
	Name        *string    `json:"name"`
	Brand       *string    `json:"brand"`
	ProductType *string    `json:"product_type"`
	Category    *string    `json:"category"`
	ImageLink   *string    `json:"image_link"`
	Price       flexNumber `json:"price"`
	Rating      flexNumber `json:"rating"`
}

// flexString accepts JSON strings and numbers.
type flexString string

func (s *flexString) UnmarshalJSON(b []byte) error {
	if bytes.Equal(b, []byte("null")) {
		*s = ""
		return nil
	}
	if len(b) > 0 && b[0] == '"' {
		var v string
		if err := json.Unmarshal(b, &v); err != nil {
			return err
		}
		*s = flexString(v)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return err
	}
	*s = flexString(n.String())
	return nil
}

// flexNumber accepts numbers, numeric strings and null. Blank, unparsable
// or non-finite strings ("NaN", "Inf") are treated as absent.
type flexNumber struct {
	v *float64
}

func (n *flexNumber) UnmarshalJSON(b []byte) error {
	n.v = nil
	if bytes.Equal(b, []byte("null")) {
		return nil
	}
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
		if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
			return nil
		}
		n.v = &f
		return nil
	}
	var f float64
	if err := json.Unmarshal(b, &f); err != nil {
		return err
	}
	n.v = &f
	return nil
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
