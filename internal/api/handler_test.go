package api_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"reflect"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/BerylCAtieno/trip-planner-agent/internal/api"
	"github.com/BerylCAtieno/trip-planner-agent/internal/planner"
)

// stubGenerator is a test double for planner.Generator.
type stubGenerator struct {
	text   string
	err    error
	calls  int
	prompt string
}

func (s *stubGenerator) Generate(_ context.Context, prompt string) (string, error) {
	s.calls++
	s.prompt = prompt
	return s.text, s.err
}

// buildTestRouter wires the same middleware chain as the server around a stub generator.
func buildTestRouter(gen planner.Generator, origins []string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(api.CORSMiddleware(origins))
	r.Use(api.TraceIDMiddleware())
	r.Use(api.RequestLoggingMiddleware())
	api.RegisterRoutes(r, api.NewPlanHandler(planner.New(gen, planner.PromptOptions{})))
	return r
}

func postPlan(r *gin.Engine, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/plan", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	if err := json.Unmarshal(w.Body.Bytes(), &out); err != nil {
		t.Fatalf("response is not a JSON object: %v (%s)", err, w.Body.String())
	}
	return out
}

const goaItinerary = `{"starting_point":{"name":"Mumbai","address":"Chhatrapati Shivaji Terminus","description":"Start"},` +
	`"itinerary":[{"day":1,"activities":[{"time":"Morning","description":"Baga Beach","duration":"3 hours","cost":"₹0",` +
	`"transportation":"Taxi","location":{"name":"Baga Beach","address":"Baga, Goa","lat":15.5553,"lng":73.7517}}]}],` +
	`"local_transport":[{"type":"bus","name":"Kadamba","description":"State buses","cost":"₹20","tips":"Carry change"}],` +
	`"summary":{"total_estimated_cost":"₹4800","budget_status":"within budget","key_themes":["beaches"],"forts_visited":[],` +
	`"destination_description":"Beaches","route_summary":"Coastal"}}`

// TestPlan_EmbeddedJSON covers the Mumbai to Goa scenario with prose around the JSON.
func TestPlan_EmbeddedJSON(t *testing.T) {
	gen := &stubGenerator{text: "Here is your plan: " + goaItinerary + "\nHave fun!"}
	r := buildTestRouter(gen, nil)

	w := postPlan(r, `{"startingPoint":"Mumbai","destination":"Goa","budget":5000,"travelers":2,"interests":["beaches"]}`)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	if ct := w.Header().Get("Content-Type"); !strings.HasPrefix(ct, "application/json") {
		t.Errorf("unexpected content type %q", ct)
	}

	var want map[string]any
	if err := json.Unmarshal([]byte(goaItinerary), &want); err != nil {
		t.Fatalf("fixture: %v", err)
	}
	if got := decodeBody(t, w); !reflect.DeepEqual(got, want) {
		t.Errorf("itinerary changed on the way through:\n got %v\nwant %v", got, want)
	}

	for _, line := range []string{
		"from Mumbai to Goa.",
		"- Travel Dates: Not specified to Not specified\n",
		"- Budget: ₹5000\n",
		"- Number of Travelers: 2\n",
		"- Interests: beaches\n",
		"- Special Requirements: None\n",
	} {
		if !strings.Contains(gen.prompt, line) {
			t.Errorf("prompt missing %q", line)
		}
	}
}

// TestPlan_NoBraces covers the budget refusal reply, which holds no JSON at all.
func TestPlan_NoBraces(t *testing.T) {
	raw := "Not possible in this budget, increase your budget"
	r := buildTestRouter(&stubGenerator{text: raw}, nil)

	w := postPlan(r, `{"startingPoint":"Mumbai","destination":"Paris","budget":500}`)

	if w.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", w.Code)
	}
	body := decodeBody(t, w)
	if body["error"] != "Could not parse AI response" {
		t.Errorf("unexpected error field %v", body["error"])
	}
	if body["response"] != raw {
		t.Errorf("expected raw response %q, got %v", raw, body["response"])
	}
}

// TestPlan_TruncatedJSON verifies a cut-off object is reported with the original text.
func TestPlan_TruncatedJSON(t *testing.T) {
	raw := "```json\n" + `{"starting_point": {"name": "Pune"}, "itinerary": [{"day": 1, "activities": [` + "\n```"
	r := buildTestRouter(&stubGenerator{text: raw}, nil)

	w := postPlan(r, `{"destination":"Lonavala"}`)

	if w.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", w.Code)
	}
	body := decodeBody(t, w)
	if body["error"] != "Could not parse AI response" || body["response"] != raw {
		t.Errorf("unexpected body %v", body)
	}
}

// TestPlan_UpstreamError verifies a failed model call yields a plain error object.
func TestPlan_UpstreamError(t *testing.T) {
	gen := &stubGenerator{err: errors.New("googleapi: Error 503: model overloaded")}
	r := buildTestRouter(gen, nil)

	w := postPlan(r, `{"destination":"Goa"}`)

	if w.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", w.Code)
	}
	body := decodeBody(t, w)
	msg, _ := body["error"].(string)
	if !strings.Contains(msg, "model overloaded") {
		t.Errorf("error should carry the upstream message, got %q", msg)
	}
	if _, ok := body["response"]; ok {
		t.Errorf("upstream errors must not include a response field")
	}
	if gen.calls != 1 {
		t.Errorf("expected a single attempt, got %d", gen.calls)
	}
}

// TestPlan_MalformedBody verifies a broken body never reaches the model.
func TestPlan_MalformedBody(t *testing.T) {
	cases := map[string]string{
		"not json":            `{"destination": `,
		"empty body":          ``,
		"null body":           `null`,
		"padded null body":    "  null\n",
		"string body":         `"Goa"`,
		"array body":          `["Goa"]`,
		"bad interests":       `{"interests": "beaches"}`,
		"boolean budget":      `{"budget": true}`,
		"numeric destination": `{"destination": 123}`,
	}
	for name, body := range cases {
		t.Run(name, func(t *testing.T) {
			gen := &stubGenerator{text: "{}"}
			r := buildTestRouter(gen, nil)

			w := postPlan(r, body)

			if w.Code != http.StatusInternalServerError {
				t.Fatalf("expected 500, got %d", w.Code)
			}
			if msg, _ := decodeBody(t, w)["error"].(string); msg == "" {
				t.Errorf("expected an error message")
			}
			if gen.calls != 0 {
				t.Errorf("generator should not be called for a malformed body")
			}
		})
	}
}

// TestPlan_MissingFields verifies an empty object is planned with placeholders.
func TestPlan_MissingFields(t *testing.T) {
	gen := &stubGenerator{text: `{"itinerary": []}`}
	r := buildTestRouter(gen, nil)

	w := postPlan(r, `{}`)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	for _, line := range []string{
		"from Not specified to Not specified.",
		"- Budget: ₹Not specified\n",
		"- Number of Travelers: 1\n",
		"- Special Requirements: None\n",
	} {
		if !strings.Contains(gen.prompt, line) {
			t.Errorf("prompt missing %q", line)
		}
	}
}

// TestPlan_FormStrings verifies the web form's string-typed numbers are accepted.
func TestPlan_FormStrings(t *testing.T) {
	gen := &stubGenerator{text: `{"itinerary": []}`}
	r := buildTestRouter(gen, nil)

	w := postPlan(r, `{"destination":"Udaipur","budget":"12000","travelers":"3","includeForts":true}`)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	for _, line := range []string{"- Budget: ₹12000\n", "- Number of Travelers: 3\n", "- Include Forts: Yes\n"} {
		if !strings.Contains(gen.prompt, line) {
			t.Errorf("prompt missing %q", line)
		}
	}
}

func TestHealth(t *testing.T) {
	r := buildTestRouter(&stubGenerator{}, nil)
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK || w.Body.String() != "OK" {
		t.Errorf("unexpected health response %d %q", w.Code, w.Body.String())
	}
}

// TestTraceID verifies incoming trace IDs are echoed and missing ones are generated.
func TestTraceID(t *testing.T) {
	r := buildTestRouter(&stubGenerator{}, nil)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set(api.TraceIDHeader, "trace-123")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if got := w.Header().Get(api.TraceIDHeader); got != "trace-123" {
		t.Errorf("expected echoed trace id, got %q", got)
	}

	req = httptest.NewRequest(http.MethodGet, "/health", nil)
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if _, err := uuid.Parse(w.Header().Get(api.TraceIDHeader)); err != nil {
		t.Errorf("expected a generated uuid, got %q", w.Header().Get(api.TraceIDHeader))
	}
}

// TestCORSPreflight verifies browsers may call /plan from any origin by default.
func TestCORSPreflight(t *testing.T) {
	r := buildTestRouter(&stubGenerator{}, []string{"*"})

	req := httptest.NewRequest(http.MethodOptions, "/plan", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	req.Header.Set("Access-Control-Request-Headers", "Content-Type")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", w.Code)
	}
	if got := w.Header().Get("Access-Control-Allow-Origin"); got != "*" {
		t.Errorf("expected wildcard origin, got %q", got)
	}
}

// TestCORSAllowedOrigin verifies an explicit origin list is honoured on real requests.
func TestCORSAllowedOrigin(t *testing.T) {
	r := buildTestRouter(&stubGenerator{text: "{}"}, []string{"http://localhost:5173"})

	req := httptest.NewRequest(http.MethodPost, "/plan", bytes.NewBufferString(`{}`))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Origin", "http://localhost:5173")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if got := w.Header().Get("Access-Control-Allow-Origin"); got != "http://localhost:5173" {
		t.Errorf("expected origin to be allowed, got %q", got)
	}
}
