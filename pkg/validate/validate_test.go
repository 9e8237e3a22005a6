package validate_test

import (
	"encoding/json"
	"testing"

	"go.uber.org/zap"

	"github.com/villela/pickem-ev-engine/pkg/validate"
)

// decode espelha o caminho real: payloads chegam como JSON cru.
func decode(t *testing.T, raw string) any {
	t.Helper()
	var v any
	if err := json.Unmarshal([]byte(raw), &v); err != nil {
		t.Fatalf("bad test fixture: %v", err)
	}
	return v
}

func TestEventPayload(t *testing.T) {
	log := zap.NewNop()

	tests := []struct {
		name string
		raw  string
		want bool
	}{
		{
			name: "valid event",
			raw:  `{"id":"abc123","sport_key":"basketball_nba","commence_time":"2024-01-15T19:00:00Z","bookmakers":[]}`,
			want: true,
		},
		{name: "missing fields", raw: `{"id":"abc123"}`, want: false},
		{name: "not an object", raw: `["id"]`, want: false},
		{name: "bookmakers not a list", raw: `{"id":"a","sport_key":"b","commence_time":"c","bookmakers":{}}`, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := validate.EventPayload(decode(t, tt.raw), log); got != tt.want {
				t.Errorf("EventPayload() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestBookmaker(t *testing.T) {
	log := zap.NewNop()

	if !validate.Bookmaker(decode(t, `{"key":"pinnacle","title":"Pinnacle","markets":[]}`), log) {
		t.Error("valid bookmaker rejected")
	}
	if validate.Bookmaker(decode(t, `{"key":"pinnacle"}`), log) {
		t.Error("bookmaker without markets accepted")
	}
	if validate.Bookmaker(decode(t, `{"key":"pinnacle","markets":{}}`), log) {
		t.Error("bookmaker with non-list markets accepted")
	}
	if validate.Bookmaker(nil, log) {
		t.Error("nil bookmaker accepted")
	}
}

func TestMarket(t *testing.T) {
	if !validate.Market(decode(t, `{"key":"player_points","outcomes":[]}`)) {
		t.Error("valid market rejected")
	}
	if validate.Market(decode(t, `{"key":"player_points"}`)) {
		t.Error("market without outcomes accepted")
	}
	if validate.Market("player_points") {
		t.Error("non-object market accepted")
	}
}

func TestOutcome(t *testing.T) {
	log := zap.NewNop()

	tests := []struct {
		name string
		raw  string
		want bool
	}{
		{name: "valid outcome", raw: `{"name":"Over","price":-110,"point":25.5,"description":"LeBron James"}`, want: true},
		{name: "string price is coercible", raw: `{"name":"Over","price":"-110"}`, want: true},
		{name: "missing price", raw: `{"name":"Over"}`, want: false},
		{name: "non-numeric price", raw: `{"name":"Over","price":"N/A"}`, want: false},
		{name: "null price", raw: `{"name":"Over","price":null}`, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := validate.Outcome(decode(t, tt.raw), log); got != tt.want {
				t.Errorf("Outcome() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestOutcomeSiblingIndependence(t *testing.T) {
	log := zap.NewNop()

	// um outcome malformado no mercado não contamina o irmão válido
	market := decode(t, `{"key":"player_points","outcomes":[{"name":"Over","price":"N/A"},{"name":"Under","price":-110}]}`)
	outcomes := market.(map[string]any)["outcomes"].([]any)

	if validate.Outcome(outcomes[0], log) {
		t.Error("malformed sibling accepted")
	}
	if !validate.Outcome(outcomes[1], log) {
		t.Error("valid outcome rejected because of malformed sibling")
	}
}

func TestSafeFloat(t *testing.T) {
	log := zap.NewNop()

	tests := []struct {
		name  string
		value any
		def   float64
		want  float64
	}{
		{name: "numeric string", value: "123.45", def: 0, want: 123.45},
		{name: "json number", value: float64(100), def: 0, want: 100.0},
		{name: "int", value: 42, def: 0, want: 42.0},
		{name: "invalid string falls back", value: "invalid", def: -1.0, want: -1.0},
		{name: "nil falls back", value: nil, def: 7.5, want: 7.5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := validate.SafeFloat(tt.value, tt.def, log); got != tt.want {
				t.Errorf("SafeFloat(%v) = %v, want %v", tt.value, got, tt.want)
			}
		})
	}
}

func TestSafeInt(t *testing.T) {
	log := zap.NewNop()

	if got := validate.SafeInt("123", 0, log); got != 123 {
		t.Errorf("SafeInt(\"123\") = %d, want 123", got)
	}
	if got := validate.SafeInt("123.0", 0, log); got != 123 {
		t.Errorf("SafeInt(\"123.0\") = %d, want 123", got)
	}
	if got := validate.SafeInt(123.7, 0, log); got != 123 {
		t.Errorf("SafeInt(123.7) = %d, want 123", got)
	}
	if got := validate.SafeInt("invalid", -1, log); got != -1 {
		t.Errorf("SafeInt(\"invalid\") = %d, want -1", got)
	}
}

func TestSafeCurrency(t *testing.T) {
	log := zap.NewNop()

	tests := []struct {
		value any
		want  float64
	}{
		{"$123.45", 123.45},
		{"1,234.56", 1234.56},
		{"$1,000", 1000.0},
		{100, 100.0},
		{"invalid", 0.0},
		{nil, 0.0},
	}

	for _, tt := range tests {
		if got := validate.SafeCurrency(tt.value, log); got != tt.want {
			t.Errorf("SafeCurrency(%v) = %v, want %v", tt.value, got, tt.want)
		}
	}
}

func TestStake(t *testing.T) {
	if _, err := validate.Stake(10.0); err != nil {
		t.Errorf("Stake(10) unexpected error: %v", err)
	}
	if _, err := validate.Stake(0); err == nil {
		t.Error("Stake(0) should fail")
	}
	if _, err := validate.Stake(-5); err == nil {
		t.Error("Stake(-5) should fail")
	}
}

func TestAmericanOdds(t *testing.T) {
	tests := []struct {
		odds    int
		wantErr bool
	}{
		{-110, false},
		{150, false},
		{-100, false},
		{100, false},
		{50, true},
		{-50, true},
		{0, true},
		{99, true},
		{-99, true},
	}

	for _, tt := range tests {
		_, err := validate.AmericanOdds(tt.odds)
		if (err != nil) != tt.wantErr {
			t.Errorf("AmericanOdds(%d) error = %v, wantErr %v", tt.odds, err, tt.wantErr)
		}
	}
}

func TestProbability(t *testing.T) {
	for _, p := range []float64{0, 0.5, 1} {
		if _, err := validate.Probability(p); err != nil {
			t.Errorf("Probability(%v) unexpected error: %v", p, err)
		}
	}
	for _, p := range []float64{-0.1, 1.5} {
		if _, err := validate.Probability(p); err == nil {
			t.Errorf("Probability(%v) should fail", p)
		}
	}
}

func TestPositiveNumber(t *testing.T) {
	if _, err := validate.PositiveNumber(10, "payout"); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
	_, err := validate.PositiveNumber(-5, "payout")
	if err == nil {
		t.Fatal("PositiveNumber(-5) should fail")
	}
	// a mensagem precisa nomear o campo violado
	if got := err.Error(); got != "payout must be positive, got -5" {
		t.Errorf("unexpected message: %q", got)
	}
}
