package models

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
)

type TripRequest struct {
	StartingPoint       string   `json:"startingPoint"`
	Destination         string   `json:"destination"`
	StartDate           string   `json:"startDate"`
	EndDate             string   `json:"endDate"`
	Budget              Scalar   `json:"budget"`
	Travelers           Scalar   `json:"travelers"`
	Interests           []string `json:"interests"`
	SpecialRequirements string   `json:"specialRequirements"`
	IncludeForts        *bool    `json:"includeForts,omitempty"`
}

// Scalar keeps a JSON number or string exactly as the client wrote it.
// Web forms post numeric inputs as strings, so both forms are accepted.
// A null value leaves the Scalar empty.
type Scalar string

func (s *Scalar) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*s = ""
		return nil
	}

	if len(data) > 0 && data[0] == '"' {
		var text string
		if err := json.Unmarshal(data, &text); err != nil {
			return err
		}
		*s = Scalar(strings.TrimSpace(text))
		return nil
	}

	var num json.Number
	if err := json.Unmarshal(data, &num); err != nil {
		return fmt.Errorf("expected a number or a string, got %s", data)
	}
	*s = Scalar(num.String())
	return nil
}

func (s Scalar) String() string {
	return string(s)
}
