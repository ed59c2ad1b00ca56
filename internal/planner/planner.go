package planner

import (
	"context"
	"encoding/json"
	"log"

	"github.com/BerylCAtieno/trip-planner-agent/internal/models"
)

type Planner struct {
	gen    Generator
	prompt PromptOptions
}

// Result.Overview is zero when the itinerary does not have the usual shape.
type Result struct {
	Itinerary json.RawMessage
	Overview  models.ItineraryOverview
}

func New(gen Generator, opts PromptOptions) *Planner {
	return &Planner{
		gen:    gen,
		prompt: opts.withDefaults(),
	}
}

// Plan makes exactly one model call. Every returned error is an *Error.
func (p *Planner) Plan(ctx context.Context, req models.TripRequest) (*Result, error) {
	if p.gen == nil {
		return nil, NewError(ConfigError, "no text generator configured", nil)
	}

	prompt := BuildPrompt(req, p.prompt)

	log.Printf("STATE: Requesting itinerary %q -> %q", orDefault(req.StartingPoint, notSpecified), orDefault(req.Destination, notSpecified))
	raw, err := p.gen.Generate(ctx, prompt)
	if err != nil {
		log.Printf("ERROR: Itinerary generation failed: %v", err)
		return nil, NewError(UpstreamError, "itinerary generation failed", err)
	}

	itinerary, err := ExtractItinerary(raw)
	if err != nil {
		if isBudgetRefusal(raw) {
			log.Printf("WARN: Model declined to plan within the given budget")
		} else {
			log.Printf("ERROR: Could not extract itinerary JSON: %v", err)
		}
		return nil, err
	}

	result := &Result{Itinerary: itinerary}
	if overview, ok := models.ReadOverview(itinerary); ok {
		result.Overview = overview
	} else {
		log.Printf("WARN: Itinerary does not follow the requested schema")
	}

	return result, nil
}
