package ledger

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatusForPayout(t *testing.T) {
	cases := []struct {
		name       string
		stake      float64
		payout     float64
		wantStatus string
		wantPayout float64
	}{
		{"payout above stake is profit", 10, 30, StatusProfit, 30},
		{"payout equal to stake is push", 10, 10, StatusPush, 10},
		{"payout below stake is partial", 10, 5, StatusPartial, 5},
		{"zero payout is lost", 10, 0, StatusLost, 0},
		{"negative payout clamps to zero and is lost", 10, -5, StatusLost, 0},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			status, payout := StatusForPayout(tc.stake, tc.payout)
			assert.Equal(t, tc.wantStatus, status)
			assert.Equal(t, tc.wantPayout, payout)
		})
	}
}

func TestProfitLoss(t *testing.T) {
	wantPL := func(v float64) *float64 { return &v }

	cases := []struct {
		name string
		slip Slip
		want *float64
	}{
		{"profit", Slip{Stake: 10, Payout: 30, Status: StatusProfit}, wantPL(20)},
		{"legacy won counts as profit", Slip{Stake: 10, Payout: 30, Status: StatusWon}, wantPL(20)},
		{"partial is a negative net", Slip{Stake: 10, Payout: 5, Status: StatusPartial}, wantPL(-5)},
		{"push nets zero", Slip{Stake: 10, Payout: 10, Status: StatusPush}, wantPL(0)},
		{"lost forfeits the stake", Slip{Stake: 10, Payout: 0, Status: StatusLost}, wantPL(-10)},
		{"pending has no p/l", Slip{Stake: 10, Status: StatusPending}, nil},
		{"unknown status has no p/l", Slip{Stake: 10, Status: "Voided"}, nil},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := ProfitLoss(tc.slip)
			if tc.want == nil {
				assert.Nil(t, got)
				return
			}
			require.NotNil(t, got)
			assert.Equal(t, *tc.want, *got)
		})
	}
}

func TestComputeAnalytics(t *testing.T) {
	slips := []Slip{
		{Stake: 10, Payout: 30, Status: StatusProfit},
		{Stake: 10, Payout: 0, Status: StatusLost},
	}

	a := ComputeAnalytics(slips)

	assert.Equal(t, 1, a.Wins)
	assert.Equal(t, 1, a.Losses)
	assert.Equal(t, 0, a.Pending)
	assert.Equal(t, 20.0, a.TotalStaked)
	assert.Equal(t, 10.0, a.TotalProfit)
	assert.Equal(t, 50.0, a.WinRate)
	assert.InDelta(t, 50.0, a.ROI, 1e-9)
	assert.Equal(t, []float64{100, 120, 110}, a.Bankroll)
}

func TestComputeAnalytics_PushKeepsBankrollFlat(t *testing.T) {
	slips := []Slip{
		{Stake: 10, Payout: 30, Status: StatusProfit},
		{Stake: 10, Payout: 10, Status: StatusPush},
	}

	a := ComputeAnalytics(slips)

	assert.Equal(t, []float64{100, 120, 120}, a.Bankroll)
	assert.Equal(t, 1, a.Wins)
	assert.Equal(t, 0, a.Losses)
	assert.Equal(t, 100.0, a.WinRate)
}

func TestComputeAnalytics_PendingOnlyCounts(t *testing.T) {
	slips := []Slip{
		{Stake: 10, Status: StatusPending},
	}

	a := ComputeAnalytics(slips)

	assert.Equal(t, 1, a.Pending)
	assert.Zero(t, a.TotalStaked)
	assert.Zero(t, a.WinRate)
	assert.Zero(t, a.ROI)
	assert.Equal(t, []float64{100}, a.Bankroll)
}

func TestComputeAnalytics_PartialCountsAsLoss(t *testing.T) {
	slips := []Slip{
		{Stake: 10, Payout: 5, Status: StatusPartial},
	}

	a := ComputeAnalytics(slips)

	assert.Equal(t, 0, a.Wins)
	assert.Equal(t, 1, a.Losses)
	assert.Equal(t, -5.0, a.TotalProfit)
	assert.Equal(t, []float64{100, 95}, a.Bankroll)
}

func TestPickSummary(t *testing.T) {
	legs := []Leg{
		{Player: "LeBron James", Market: "player_points_over", Line: 25.5, Selection: "Over"},
		{Player: "Luka Doncic", Market: "player_assists_under", Line: 8.5, Selection: "Under"},
	}
	assert.Equal(t, "James O25.5, Doncic U8.5", PickSummary(legs))
}

func TestPickSummary_TruncatesAfterThree(t *testing.T) {
	legs := []Leg{
		{Player: "LeBron James", Market: "player_points_over", Line: 25.5, Selection: "Over"},
		{Player: "Luka Doncic", Market: "player_assists_over", Line: 8.5, Selection: "Over"},
		{Player: "Jayson Tatum", Market: "player_threes_over", Line: 3.5, Selection: "Over"},
		{Player: "Stephen Curry", Market: "player_threes_over", Line: 4.5, Selection: "Over"},
		{Player: "Kevin Durant", Market: "player_points_over", Line: 27.5, Selection: "Over"},
	}
	got := PickSummary(legs)
	assert.Equal(t, "James O25.5, Doncic O8.5, Tatum O3.5 +2 more", got)
}

func TestPickSummary_DirectionFallsBackToMarket(t *testing.T) {
	legs := []Leg{
		{Player: "LeBron James", Market: "player_points_under", Line: 25.5},
	}
	assert.Equal(t, "James U25.5", PickSummary(legs))
}

func TestPickSummary_WholeLineHasNoDecimal(t *testing.T) {
	legs := []Leg{
		{Player: "LeBron James", Market: "player_points_over", Line: 25, Selection: "Over"},
	}
	assert.Equal(t, "James O25", PickSummary(legs))
}

func TestRecognizeOutcome(t *testing.T) {
	cases := []struct {
		text    string
		hit, ok bool
	}{
		{"Win", true, true},
		{"won", true, true},
		{"HIT", true, true},
		{"1", true, true},
		{"loss", false, true},
		{"Lost", false, true},
		{"miss", false, true},
		{"0", false, true},
		{" w ", true, true},
		{"", false, false},
		{"dnp", false, false},
		{"voided", false, false},
	}
	for _, tc := range cases {
		hit, ok := RecognizeOutcome(tc.text)
		assert.Equal(t, tc.ok, ok, "ok for %q", tc.text)
		if ok {
			assert.Equal(t, tc.hit, hit, "hit for %q", tc.text)
		}
	}
}
