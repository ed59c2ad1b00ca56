package planner

import (
	"fmt"
	"strings"

	"github.com/BerylCAtieno/trip-planner-agent/internal/models"
)

const (
	notSpecified               = "Not specified"
	defaultTravelers           = "1"
	defaultSpecialRequirements = "None"
	DefaultCurrencySymbol      = "₹"
	DefaultCurrencyName        = "Indian Rupees"
	budgetRefusal              = "Not possible in this budget, increase your budget"
)

type PromptOptions struct {
	CurrencySymbol string
	CurrencyName   string
}

func (o PromptOptions) withDefaults() PromptOptions {
	if o.CurrencySymbol == "" {
		o.CurrencySymbol = DefaultCurrencySymbol
	}
	if o.CurrencyName == "" {
		o.CurrencyName = DefaultCurrencyName
	}
	return o
}

// tripDetails is a TripRequest with every placeholder already applied.
type tripDetails struct {
	StartingPoint       string
	Destination         string
	StartDate           string
	EndDate             string
	Budget              string
	Travelers           string
	Interests           string
	SpecialRequirements string
	IncludeForts        string
}

func resolveDetails(req models.TripRequest) tripDetails {
	d := tripDetails{
		StartingPoint:       orDefault(req.StartingPoint, notSpecified),
		Destination:         orDefault(req.Destination, notSpecified),
		StartDate:           orDefault(req.StartDate, notSpecified),
		EndDate:             orDefault(req.EndDate, notSpecified),
		Budget:              orDefault(req.Budget.String(), notSpecified),
		Travelers:           orDefault(req.Travelers.String(), defaultTravelers),
		Interests:           strings.Join(req.Interests, ", "),
		SpecialRequirements: orDefault(req.SpecialRequirements, defaultSpecialRequirements),
	}

	if req.IncludeForts != nil {
		d.IncludeForts = "No"
		if *req.IncludeForts {
			d.IncludeForts = "Yes"
		}
	}

	return d
}

func orDefault(value, def string) string {
	if v := strings.TrimSpace(value); v != "" {
		return v
	}
	return def
}

// BuildPrompt concatenates the fixed planner instructions with the trip block.
func BuildPrompt(req models.TripRequest, opts PromptOptions) string {
	opts = opts.withDefaults()
	return buildSystemPrompt(opts) + buildTripPrompt(resolveDetails(req), opts)
}

func buildSystemPrompt(opts PromptOptions) string {
	return strings.NewReplacer("{cur}", opts.CurrencySymbol).Replace(systemPrompt)
}

func buildTripPrompt(d tripDetails, opts PromptOptions) string {
	var b strings.Builder

	fmt.Fprintf(&b, "\nCreate a detailed travel itinerary from %s to %s.\n\n", d.StartingPoint, d.Destination)
	b.WriteString("Trip Details:\n")
	fmt.Fprintf(&b, "- Travel Dates: %s to %s\n", d.StartDate, d.EndDate)
	fmt.Fprintf(&b, "- Budget: %s%s\n", opts.CurrencySymbol, d.Budget)
	fmt.Fprintf(&b, "- Number of Travelers: %s\n", d.Travelers)
	fmt.Fprintf(&b, "- Interests: %s\n", d.Interests)
	fmt.Fprintf(&b, "- Special Requirements: %s\n", d.SpecialRequirements)
	if d.IncludeForts != "" {
		fmt.Fprintf(&b, "- Include Forts: %s\n", d.IncludeForts)
	}

	b.WriteString("\nInstructions:\n")
	fmt.Fprintf(&b, "1. FIRST, check if the total estimated trip cost can be completed within the given budget in %s.\n", opts.CurrencyName)
	fmt.Fprintf(&b, "   - If NOT possible, reply ONLY with: %q and do NOT provide a plan.\n", budgetRefusal)
	b.WriteString("   - If a cheaper alternative plan exists, provide it instead (within budget).\n")
	b.WriteString("2. If within budget, create:\n")
	b.WriteString("   - **Journey Overview** with starting point details (name, address, description), destination description and route summary (key highlights)\n")
	fmt.Fprintf(&b, "   - **Daily Itinerary** for each travel day: time of day, activity description, duration, cost (%s), exact location names, full addresses, lat/lng coordinates and transportation between locations\n", opts.CurrencySymbol)
	fmt.Fprintf(&b, "   - **Local Transportation Options** at the destination: type, name of service, description, cost in %s, helpful tips\n", opts.CurrencySymbol)
	fmt.Fprintf(&b, "   - **Summary**: total estimated cost (%s), budget status (\"under budget\", \"within budget\", \"over budget\"), key themes, forts visited (if any), destination description, route summary\n", opts.CurrencySymbol)
	b.WriteString("\nProvide a detailed itinerary in the specified JSON format.\n")

	return b.String()
}

const systemPrompt = `
You are an expert travel planner AI that creates detailed itineraries with journey overviews.
Your responses must include:

1. ALWAYS INCLUDE:
   - Journey Overview:
     * STARTING POINT details (name, address, description)
     * DESTINATION description
     * ROUTE SUMMARY (key highlights of the journey)
   - Daily Itinerary:
     * Activities with exact time, duration, cost (in {cur})
     * Precise locations with full address and coordinates (lat/lng)
     * Transportation between locations
   - Local Transportation Options:
     * Type (metro/bus/taxi/bicycle/walking/train/tram/ferry)
     * Name of service/system
     * Description
     * Typical costs (in {cur})
     * Helpful tips
   - Summary:
     * Total estimated cost ({cur})
     * Budget status ("under budget" / "within budget" / "over budget")
     * Key themes
     * List of forts visited (if requested)
     * Destination description
     * Route summary

2. BUDGET LOGIC (IN {cur}):
   - BEFORE GENERATING A PLAN, CALCULATE THE TOTAL ESTIMATED COST
   - IF total cost EXCEEDS the user's budget:
     * IF the trip is NOT possible within budget, RETURN the message "Not possible in this budget, increase your budget" and DO NOT provide a plan
     * IF the budget is low BUT a cheaper alternative plan exists, RETURN the alternative plan WITHIN budget
   - IF cost is within budget, RETURN the plan as normal

Response JSON Format:
{
    "starting_point": {
        "name": "Starting location",
        "address": "Full address",
        "description": "Brief description"
    },
    "itinerary": [
        {
            "day": 1,
            "activities": [
                {
                    "time": "Morning/Afternoon/Evening",
                    "description": "Activity details",
                    "duration": "X hours",
                    "cost": "{cur}X",
                    "transportation": "Transport method",
                    "location": {
                        "name": "Location name",
                        "address": "Full address",
                        "lat": latitude,
                        "lng": longitude
                    }
                }
            ]
        }
    ],
    "local_transport": [
        {
            "type": "metro",
            "name": "City Metro System",
            "description": "Fast and efficient subway system covering all major areas",
            "cost": "{cur}2-5 per ride",
            "tips": "Purchase a rechargeable metro card for discounts"
        },
        {
            "type": "taxi",
            "name": "City Cabs",
            "description": "24/7 taxi service available throughout the city",
            "cost": "{cur}10-30 depending on distance",
            "tips": "Use the official taxi app for better rates"
        }
    ],
    "summary": {
        "total_estimated_cost": "{cur}X",
        "budget_status": "",
        "key_themes": [],
        "forts_visited": [],
        "destination_description": "",
        "route_summary": ""
    }
}
`
