package matcher

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/villela/pickem-ev-engine/internal/shared/config"
	"github.com/villela/pickem-ev-engine/pkg/contracts/events"
)

func quote(book, player, market, selection string, price int, line float64) events.PropQuote {
	return events.PropQuote{
		EventID:    "evt-1",
		SportKey:   "basketball_nba",
		Bookmaker:  book,
		MarketKey:  market,
		PlayerName: player,
		Selection:  selection,
		Price:      price,
		Point:      line,
		FetchedAt:  time.Now().UTC(),
	}
}

func TestFindOpportunities_ExactLineMatch(t *testing.T) {
	cfg := config.DefaultAnalysis()
	quotes := []events.PropQuote{
		quote("pinnacle", "LeBron James", "player_points", "Over", -110, 25.5),
		quote("pinnacle", "LeBron James", "player_points", "Under", -110, 25.5),
		quote("prizepicks", "LeBron James", "player_points", "Over", -119, 25.5),
	}

	res := FindOpportunities(quotes, cfg, zap.NewNop())

	require.Len(t, res.Opportunities, 1)
	opp := res.Opportunities[0]
	assert.Equal(t, "LeBron James", opp.PlayerName)
	assert.Equal(t, "player_points_over", opp.Market)
	assert.Equal(t, 25.5, opp.LineValue)
	assert.Equal(t, -110, opp.SharpOverPrice)
	assert.Equal(t, -110, opp.SharpUnderPrice)
	assert.Equal(t, "PrizePicks", opp.DFSBook)
	assert.Equal(t, "pinnacle", opp.SharpSource)
	assert.InDelta(t, 0.5, opp.FairWinProb, 1e-9)
	assert.InDelta(t, -7.834101382488479, opp.EVPercentage, 1e-9)
}

func TestFindOpportunities_LineMismatchProducesNothing(t *testing.T) {
	cfg := config.DefaultAnalysis()
	quotes := []events.PropQuote{
		quote("pinnacle", "LeBron James", "player_points", "Over", -110, 25.5),
		quote("pinnacle", "LeBron James", "player_points", "Under", -110, 25.5),
		// mesma prop, linha diferente: grupo separado, sem referência sharp
		quote("prizepicks", "LeBron James", "player_points", "Over", -119, 26.5),
	}

	res := FindOpportunities(quotes, cfg, zap.NewNop())

	assert.Empty(t, res.Opportunities)
	assert.Equal(t, 2, res.GroupsSeen)
	assert.Equal(t, 1, res.GroupsNoSharp)
}

func TestFindOpportunities_OneSidedSharpSkipped(t *testing.T) {
	cfg := config.DefaultAnalysis()
	quotes := []events.PropQuote{
		quote("pinnacle", "LeBron James", "player_points", "Over", -110, 25.5),
		quote("prizepicks", "LeBron James", "player_points", "Over", -119, 25.5),
	}

	res := FindOpportunities(quotes, cfg, zap.NewNop())

	assert.Empty(t, res.Opportunities)
	assert.Equal(t, 1, res.GroupsOneSided)
}

func TestFindOpportunities_FallbackConfidenceOnlyShavesPositiveEV(t *testing.T) {
	cfg := config.DefaultAnalysis()
	quotes := []events.PropQuote{
		// sem pinnacle: fanduel vira a referência, com desconto 0.75
		quote("fanduel", "Jayson Tatum", "player_points", "Over", -130, 27.5),
		quote("fanduel", "Jayson Tatum", "player_points", "Under", 110, 27.5),
		quote("prizepicks", "Jayson Tatum", "player_points", "Over", -119, 27.5),
		quote("prizepicks", "Jayson Tatum", "player_points", "Under", -119, 27.5),
	}

	res := FindOpportunities(quotes, cfg, zap.NewNop())

	require.Len(t, res.Opportunities, 2)
	// EV positivo do Over levou o desconto; EV negativo do Under ficou intacto
	over, under := res.Opportunities[0], res.Opportunities[1]
	assert.Equal(t, "player_points_over", over.Market)
	assert.Equal(t, "fanduel", over.SharpSource)
	assert.InDelta(t, 0.04489193869043895*0.75, over.EVPercentage, 1e-9)
	assert.Equal(t, "player_points_under", under.Market)
	assert.InDelta(t, -15.713094703667396, under.EVPercentage, 1e-9)
}

func TestFindOpportunities_PrimaryBeatsFallback(t *testing.T) {
	cfg := config.DefaultAnalysis()
	quotes := []events.PropQuote{
		quote("pinnacle", "Luka Doncic", "player_assists", "Over", -200, 8.5),
		quote("pinnacle", "Luka Doncic", "player_assists", "Under", 170, 8.5),
		quote("fanduel", "Luka Doncic", "player_assists", "Over", -110, 8.5),
		quote("fanduel", "Luka Doncic", "player_assists", "Under", -110, 8.5),
		quote("underdog", "Luka Doncic", "player_assists", "Over", -119, 8.5),
	}

	res := FindOpportunities(quotes, cfg, zap.NewNop())

	require.Len(t, res.Opportunities, 1)
	opp := res.Opportunities[0]
	assert.Equal(t, "pinnacle", opp.SharpSource)
	assert.Equal(t, "Underdog", opp.DFSBook)
	// pinnacle tem confiança 1.0: EV positivo sai sem desconto
	assert.InDelta(t, 18.499012508229118, opp.EVPercentage, 1e-9)
}

func TestFindOpportunities_BadSharpOddsSkipped(t *testing.T) {
	cfg := config.DefaultAnalysis()
	quotes := []events.PropQuote{
		// preço na zona morta de odds americanas
		quote("pinnacle", "LeBron James", "player_points", "Over", 50, 25.5),
		quote("pinnacle", "LeBron James", "player_points", "Under", -110, 25.5),
		quote("prizepicks", "LeBron James", "player_points", "Over", -119, 25.5),
	}

	res := FindOpportunities(quotes, cfg, zap.NewNop())

	assert.Empty(t, res.Opportunities)
	assert.Equal(t, 1, res.GroupsBadOdds)
}

func TestFindOpportunities_RankedByEVDescending(t *testing.T) {
	cfg := config.DefaultAnalysis()
	quotes := []events.PropQuote{
		quote("pinnacle", "Luka Doncic", "player_assists", "Over", -200, 8.5),
		quote("pinnacle", "Luka Doncic", "player_assists", "Under", 170, 8.5),
		quote("prizepicks", "Luka Doncic", "player_assists", "Over", -119, 8.5),
		quote("pinnacle", "LeBron James", "player_points", "Over", -110, 25.5),
		quote("pinnacle", "LeBron James", "player_points", "Under", -110, 25.5),
		quote("prizepicks", "LeBron James", "player_points", "Over", -119, 25.5),
	}

	res := FindOpportunities(quotes, cfg, zap.NewNop())

	require.Len(t, res.Opportunities, 2)
	assert.Equal(t, "Luka Doncic", res.Opportunities[0].PlayerName)
	assert.Greater(t, res.Opportunities[0].EVPercentage, res.Opportunities[1].EVPercentage)
}

func TestFindOpportunities_BothDFSSidesEmitTwo(t *testing.T) {
	cfg := config.DefaultAnalysis()
	quotes := []events.PropQuote{
		quote("pinnacle", "LeBron James", "player_points", "Over", -110, 25.5),
		quote("pinnacle", "LeBron James", "player_points", "Under", -110, 25.5),
		quote("prizepicks", "LeBron James", "player_points", "Over", -119, 25.5),
		quote("prizepicks", "LeBron James", "player_points", "Under", -119, 25.5),
	}

	res := FindOpportunities(quotes, cfg, zap.NewNop())

	assert.Len(t, res.Opportunities, 2)
}
