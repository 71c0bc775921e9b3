package domain

import "time"

// Side identifies one of the two teams in a tracked match.
type Side string

const (
	SideBlue Side = "blue"
	SideRed  Side = "red"
)

// Valid reports whether the side is one of the two known team labels.
func (s Side) Valid() bool {
	return s == SideBlue || s == SideRed
}

// Opposite returns the other team's side.
func (s Side) Opposite() Side {
	if s == SideBlue {
		return SideRed
	}
	return SideBlue
}

// GameState represents the lifecycle state of a tracked game
type GameState string

const (
	GameStateDetected       GameState = "detected"
	GameStateBettingOpen    GameState = "betting_open"
	GameStateBettingClosed  GameState = "betting_closed"
	GameStateAwaitingResult GameState = "awaiting_result"
	GameStateResolved       GameState = "resolved"
)

// Queue identifiers from the match provider. Only ranked solo queue
// games are tracked.
const QueueRankedSolo = 420

// ParticipantSnapshot captures one player's champion and ranked standing
// at the moment the game was detected. Rank fields are empty for
// unranked players.
type ParticipantSnapshot struct {
	ChampionID   int    `json:"champion_id"`
	DisplayName  string `json:"display_name"`
	RankTier     string `json:"rank_tier,omitempty"`
	RankDivision string `json:"rank_division,omitempty"`
	LeaguePoints int    `json:"league_points"`
	SeasonWins   int    `json:"season_wins"`
	SeasonLosses int    `json:"season_losses"`
	Role         string `json:"role,omitempty"`
}

// WinRate returns the participant's season win rate in percent, or 50
// when no games are on record.
func (p ParticipantSnapshot) WinRate() float64 {
	total := p.SeasonWins + p.SeasonLosses
	if total == 0 {
		return 50
	}
	return float64(p.SeasonWins) / float64(total) * 100
}

// Rosters holds both teams of a tracked game, ordered by role.
type Rosters struct {
	Blue []ParticipantSnapshot `json:"blue"`
	Red  []ParticipantSnapshot `json:"red"`
}

// Odds is the pricing computed for a game when it is first detected.
// It is immutable for the game's lifetime: wagers copy the multiplier
// at placement and resolution never re-prices.
type Odds struct {
	BlueWinPct     float64 `json:"blue_win_pct"`
	RedWinPct      float64 `json:"red_win_pct"`
	BlueMultiplier float64 `json:"blue_multiplier"`
	RedMultiplier  float64 `json:"red_multiplier"`
}

// MultiplierFor returns the payout multiplier for the given side.
func (o Odds) MultiplierFor(side Side) float64 {
	if side == SideBlue {
		return o.BlueMultiplier
	}
	return o.RedMultiplier
}

// TrackedGame is the engine's record of a single live match being
// monitored for betting.
type TrackedGame struct {
	GameID          string    `json:"game_id"`
	Region          string    `json:"region"`
	State           GameState `json:"state"`
	TrackedPUUID    string    `json:"tracked_puuid"`
	TrackedName     string    `json:"tracked_name"`
	TrackedSide     Side      `json:"tracked_side"`
	Participants    Rosters   `json:"participants"`
	Odds            Odds      `json:"odds"`
	OpenedAt        time.Time `json:"opened_at"`
	BettingClosesAt time.Time `json:"betting_closes_at"`
	Resolved        bool      `json:"resolved"`
	WinningSide     *Side     `json:"winning_side,omitempty"`
	NeedsManual     bool      `json:"needs_manual_resolution"`
	NotificationRef string    `json:"notification_ref,omitempty"`
}

// BettingOpen reports whether wagers are still accepted at the given time.
func (g *TrackedGame) BettingOpen(now time.Time) bool {
	return !g.Resolved && now.Before(g.BettingClosesAt)
}

// TrackedAccount is a subscribed Riot account watched by the poller.
type TrackedAccount struct {
	PUUID       string    `json:"puuid"`
	Region      string    `json:"region"`
	GameName    string    `json:"game_name"`
	TagLine     string    `json:"tag_line"`
	DisplayName string    `json:"display_name"`
	Enabled     bool      `json:"enabled"`
	AddedAt     time.Time `json:"added_at"`
}

// RiotID returns the account's riot id in GameName#TagLine form.
func (a TrackedAccount) RiotID() string {
	return a.GameName + "#" + a.TagLine
}

// MatchResult is the outcome reported by the match-data provider once a
// tracked game has finished upstream.
type MatchResult struct {
	GameID      string        `json:"game_id"`
	TrackedWon  bool          `json:"tracked_won"`
	WinningSide Side          `json:"winning_side"`
	Duration    time.Duration `json:"duration"`
}
