package models

import "encoding/json"

// ItineraryOverview is a best-effort read of a generated itinerary.
// The model is only asked to follow the schema, so every field may be missing.
type ItineraryOverview struct {
	Days               int
	BudgetStatus       string
	TotalEstimatedCost string
}

type itineraryShape struct {
	Itinerary []json.RawMessage `json:"itinerary"`
	Summary   struct {
		BudgetStatus       json.RawMessage `json:"budget_status"`
		TotalEstimatedCost json.RawMessage `json:"total_estimated_cost"`
	} `json:"summary"`
}

// ReadOverview returns false when raw is not an object it can read.
func ReadOverview(raw json.RawMessage) (ItineraryOverview, bool) {
	var shape itineraryShape
	if err := json.Unmarshal(raw, &shape); err != nil {
		return ItineraryOverview{}, false
	}

	return ItineraryOverview{
		Days:               len(shape.Itinerary),
		BudgetStatus:       looseString(shape.Summary.BudgetStatus),
		TotalEstimatedCost: looseString(shape.Summary.TotalEstimatedCost),
	}, true
}

// looseString renders strings unquoted and any other JSON value as-is.
func looseString(raw json.RawMessage) string {
	if len(raw) == 0 || string(raw) == "null" {
		return ""
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}
	return string(raw)
}
