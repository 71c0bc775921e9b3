// Package odds prices a detected game from the ranked standing of its
// participants. All functions are pure: the same rosters and clamp band
// always produce the same odds.
package odds

import (
	"strings"

	"github.com/kassalytics/tracker/internal/domain"
)

// Strength model weights. A player's strength is an MMR estimate built
// from tier, division, league points and season win rate.
const (
	unrankedMMR     = 1600.0
	lpWeight        = 3.0
	winRateWeight   = 4.0
	baselineWinRate = 50.0
)

var tierMMR = map[string]float64{
	"IRON":        400,
	"BRONZE":      800,
	"SILVER":      1200,
	"GOLD":        1600,
	"PLATINUM":    2000,
	"EMERALD":     2400,
	"DIAMOND":     2800,
	"MASTER":      3200,
	"GRANDMASTER": 3600,
	"CHALLENGER":  4000,
}

var divisionBonus = map[string]float64{
	"I":   300,
	"II":  200,
	"III": 100,
	"IV":  0,
}

// PlayerStrength estimates a single participant's MMR. Unranked players
// get the unranked baseline, adjusted only by their season win rate.
func PlayerStrength(p domain.ParticipantSnapshot) float64 {
	base, ok := tierMMR[strings.ToUpper(p.RankTier)]
	if !ok {
		base = unrankedMMR
	} else {
		base += divisionBonus[strings.ToUpper(p.RankDivision)]
		base += lpWeight * float64(p.LeaguePoints)
	}
	return base + winRateWeight*(p.WinRate()-baselineWinRate)
}

// TeamStrength averages the strength of one side's roster, so uneven
// rosters are compared player for player rather than by head count. An
// empty side defaults to the unranked baseline.
func TeamStrength(players []domain.ParticipantSnapshot) float64 {
	if len(players) == 0 {
		return unrankedMMR
	}
	var total float64
	for _, p := range players {
		total += PlayerStrength(p)
	}
	return total / float64(len(players))
}

// Compute prices a game from its rosters. Win percentages always sum to
// 100 and each side's multiplier is 100 divided by its win percentage,
// clamped to [minMultiplier, maxMultiplier]. A missing roster half is
// priced at the unranked baseline, so two empty halves are a coin flip.
func Compute(rosters domain.Rosters, minMultiplier, maxMultiplier float64) domain.Odds {
	blue := TeamStrength(rosters.Blue)
	red := TeamStrength(rosters.Red)

	bluePct := 50.0
	if total := blue + red; total > 0 {
		bluePct = blue / total * 100
	}
	redPct := 100 - bluePct

	return domain.Odds{
		BlueWinPct:     bluePct,
		RedWinPct:      redPct,
		BlueMultiplier: multiplier(bluePct, minMultiplier, maxMultiplier),
		RedMultiplier:  multiplier(redPct, minMultiplier, maxMultiplier),
	}
}

// multiplier converts a win percentage to a payout multiplier. A side
// with zero win chance still pays at most the clamp ceiling.
func multiplier(winPct, min, max float64) float64 {
	if winPct <= 0 {
		return max
	}
	m := 100 / winPct
	if m < min {
		return min
	}
	if m > max {
		return max
	}
	return m
}
