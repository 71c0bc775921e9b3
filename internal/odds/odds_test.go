package odds

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/kassalytics/tracker/internal/domain"
)

func ranked(tier, division string, lp, wins, losses int) domain.ParticipantSnapshot {
	return domain.ParticipantSnapshot{
		RankTier:     tier,
		RankDivision: division,
		LeaguePoints: lp,
		SeasonWins:   wins,
		SeasonLosses: losses,
	}
}

func TestPlayerStrength(t *testing.T) {
	testCases := []struct {
		name     string
		player   domain.ParticipantSnapshot
		expected float64
	}{
		{
			// 1600 + 300 + 3*50 = 2050, win rate 50 adds nothing
			name:     "gold I with 50 LP at even win rate",
			player:   ranked("GOLD", "I", 50, 10, 10),
			expected: 2050,
		},
		{
			// 400 + 0 + 0, win rate 50 default
			name:     "iron IV floor",
			player:   ranked("IRON", "IV", 0, 0, 0),
			expected: 400,
		},
		{
			// 4000 + 300 + 3*100 + 4*(60-50) = 4640
			name:     "challenger with positive win rate",
			player:   ranked("CHALLENGER", "I", 100, 60, 40),
			expected: 4640,
		},
		{
			name:     "unranked defaults to baseline",
			player:   domain.ParticipantSnapshot{},
			expected: 1600,
		},
		{
			// 1600 + 4*(40-50) = 1560
			name:     "unranked with losing record",
			player:   domain.ParticipantSnapshot{SeasonWins: 4, SeasonLosses: 6},
			expected: 1560,
		},
		{
			name:     "tier lookup is case insensitive",
			player:   ranked("gold", "i", 50, 10, 10),
			expected: 2050,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.InDelta(t, tc.expected, PlayerStrength(tc.player), 0.001)
		})
	}
}

func TestTeamStrength(t *testing.T) {
	// (400 + 2050) / 2
	team := []domain.ParticipantSnapshot{
		ranked("IRON", "IV", 0, 0, 0),
		ranked("GOLD", "I", 50, 10, 10),
	}
	assert.InDelta(t, 1225, TeamStrength(team), 0.001)

	// An empty side prices at the unranked baseline, not zero.
	assert.InDelta(t, 1600, TeamStrength(nil), 0.001)
}

func TestCompute(t *testing.T) {
	// Known strengths: DIAMOND II even record = 3000, PLATINUM IV even
	// record = 2000, so blue should be priced at 60%.
	blue := []domain.ParticipantSnapshot{ranked("DIAMOND", "II", 0, 5, 5)}
	red := []domain.ParticipantSnapshot{ranked("PLATINUM", "IV", 0, 5, 5)}

	o := Compute(domain.Rosters{Blue: blue, Red: red}, 1.20, 2.50)

	assert.InDelta(t, 60, o.BlueWinPct, 0.001)
	assert.InDelta(t, 40, o.RedWinPct, 0.001)
	assert.InDelta(t, 100.0/60.0, o.BlueMultiplier, 0.001)
	assert.InDelta(t, 2.50, o.RedMultiplier, 0.001)
}

func TestComputePercentagesSumTo100(t *testing.T) {
	rosterCases := []domain.Rosters{
		{
			Blue: []domain.ParticipantSnapshot{ranked("CHALLENGER", "I", 500, 200, 100)},
			Red:  []domain.ParticipantSnapshot{ranked("IRON", "IV", 0, 1, 20)},
		},
		{
			Blue: []domain.ParticipantSnapshot{{}, {}, {}, {}, {}},
			Red:  []domain.ParticipantSnapshot{{}, {}, {}, {}, {}},
		},
		{
			Blue: []domain.ParticipantSnapshot{ranked("SILVER", "III", 20, 30, 40)},
			Red:  []domain.ParticipantSnapshot{ranked("GOLD", "II", 80, 55, 45)},
		},
	}

	for _, rosters := range rosterCases {
		o := Compute(rosters, 1.20, 2.50)
		assert.InDelta(t, 100, o.BlueWinPct+o.RedWinPct, 0.0001)
	}
}

func TestComputeMultiplierClamping(t *testing.T) {
	// Extreme mismatch: the favourite hits the floor, the longshot the
	// ceiling.
	blue := []domain.ParticipantSnapshot{
		ranked("CHALLENGER", "I", 800, 300, 100),
		ranked("CHALLENGER", "I", 800, 300, 100),
	}
	red := []domain.ParticipantSnapshot{ranked("IRON", "IV", 0, 2, 30)}

	o := Compute(domain.Rosters{Blue: blue, Red: red}, 1.20, 2.50)

	assert.Equal(t, 1.20, o.BlueMultiplier)
	assert.Equal(t, 2.50, o.RedMultiplier)
}

func TestComputeEvenMatch(t *testing.T) {
	mirror := []domain.ParticipantSnapshot{ranked("GOLD", "II", 40, 20, 20)}

	o := Compute(domain.Rosters{Blue: mirror, Red: mirror}, 1.20, 2.50)

	assert.InDelta(t, 50, o.BlueWinPct, 0.001)
	assert.InDelta(t, 50, o.RedWinPct, 0.001)
	// 100/50 = 2.0, inside the clamp band
	assert.InDelta(t, 2.0, o.BlueMultiplier, 0.001)
	assert.InDelta(t, 2.0, o.RedMultiplier, 0.001)
}

func TestComputeEmptyRosters(t *testing.T) {
	o := Compute(domain.Rosters{}, 1.20, 2.50)

	assert.InDelta(t, 50, o.BlueWinPct, 0.001)
	assert.InDelta(t, 50, o.RedWinPct, 0.001)
}

func TestComputeOneEmptySide(t *testing.T) {
	// A missing blue half is priced at the unranked baseline, so a full
	// unranked red roster does not get handed a 100% price.
	red := []domain.ParticipantSnapshot{{}, {}, {}, {}, {}}

	o := Compute(domain.Rosters{Red: red}, 1.20, 2.50)

	assert.InDelta(t, 50, o.BlueWinPct, 0.001)
	assert.InDelta(t, 50, o.RedWinPct, 0.001)
	assert.InDelta(t, 2.0, o.BlueMultiplier, 0.001)
	assert.InDelta(t, 2.0, o.RedMultiplier, 0.001)
}

func TestComputeUnevenRosters(t *testing.T) {
	// Five unranked players against one unranked player have identical
	// average strength. Head count alone must not move the price.
	blue := []domain.ParticipantSnapshot{{}, {}, {}, {}, {}}
	red := []domain.ParticipantSnapshot{{}}

	o := Compute(domain.Rosters{Blue: blue, Red: red}, 1.20, 2.50)

	assert.InDelta(t, 50, o.BlueWinPct, 0.001)
	assert.InDelta(t, 50, o.RedWinPct, 0.001)
}

func TestComputeIsDeterministic(t *testing.T) {
	rosters := domain.Rosters{
		Blue: []domain.ParticipantSnapshot{ranked("EMERALD", "I", 75, 120, 100)},
		Red:  []domain.ParticipantSnapshot{ranked("DIAMOND", "IV", 10, 90, 80)},
	}

	first := Compute(rosters, 1.20, 2.50)
	for i := 0; i < 10; i++ {
		assert.Equal(t, first, Compute(rosters, 1.20, 2.50))
	}
}
