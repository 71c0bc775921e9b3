package domain

import "time"

// BettorAccount holds a bettor's point balance and lifetime betting
// stats. Accounts are created lazily on first interaction with the
// configured starting balance.
type BettorAccount struct {
	BettorID     string    `json:"bettor_id"`
	Balance      int64     `json:"balance"`
	TotalWagered int64     `json:"total_wagered"`
	TotalWon     int64     `json:"total_won"`
	TotalLost    int64     `json:"total_lost"`
	BetsPlaced   int       `json:"bets_placed"`
	BetsWon      int       `json:"bets_won"`
	CreatedAt    time.Time `json:"created_at"`
}

// WinRate returns the bettor's bet win rate in percent.
func (a BettorAccount) WinRate() float64 {
	if a.BetsPlaced == 0 {
		return 0
	}
	return float64(a.BetsWon) / float64(a.BetsPlaced) * 100
}
