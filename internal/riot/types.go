package riot

// Account is the account-v1 response for a riot id lookup.
type Account struct {
	PUUID    string `json:"puuid"`
	GameName string `json:"gameName"`
	TagLine  string `json:"tagLine"`
}

// CurrentGameInfo is the spectator-v5 payload for a live game.
type CurrentGameInfo struct {
	GameID            int64                    `json:"gameId"`
	GameType          string                   `json:"gameType"`
	GameStartTime     int64                    `json:"gameStartTime"`
	PlatformID        string                   `json:"platformId"`
	GameQueueConfigID int64                    `json:"gameQueueConfigId"`
	Participants      []CurrentGameParticipant `json:"participants"`
}

// CurrentGameParticipant is one player inside a spectator payload.
type CurrentGameParticipant struct {
	PUUID      string `json:"puuid"`
	TeamID     int64  `json:"teamId"`
	ChampionID int64  `json:"championId"`
	RiotID     string `json:"riotId"`
}

// Team ids used by the spectator and match endpoints.
const (
	TeamIDBlue int64 = 100
	TeamIDRed  int64 = 200
)

// MatchID composes the match-v5 identifier for this game.
func (g *CurrentGameInfo) MatchID() string {
	return matchID(g.PlatformID, g.GameID)
}

// LeagueEntry is one queue's ranked standing from league-v4.
type LeagueEntry struct {
	QueueType    string `json:"queueType"`
	Tier         string `json:"tier"`
	Rank         string `json:"rank"`
	LeaguePoints int    `json:"leaguePoints"`
	Wins         int    `json:"wins"`
	Losses       int    `json:"losses"`
}

// QueueTypeRankedSolo is the league-v4 queue label for ranked solo queue.
const QueueTypeRankedSolo = "RANKED_SOLO_5x5"

// matchResponse is the subset of the match-v5 payload the engine reads.
type matchResponse struct {
	Info struct {
		GameDuration int64 `json:"gameDuration"`
		Participants []struct {
			PUUID  string `json:"puuid"`
			TeamID int64  `json:"teamId"`
			Win    bool   `json:"win"`
		} `json:"participants"`
	} `json:"info"`
}
