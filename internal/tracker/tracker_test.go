package tracker

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/kassalytics/tracker/internal/domain"
	"github.com/kassalytics/tracker/internal/event"
	"github.com/kassalytics/tracker/internal/riot"
)

var testNow = time.Date(2026, 3, 14, 20, 0, 0, 0, time.UTC)

type trackerFixture struct {
	registry *MockRegistry
	betting  *MockBetting
	games    *MockGameRepo
	provider *MockProvider
	notifier *MockNotifier
	bus      *MockBus
	tracker  *Tracker
}

func newFixture() *trackerFixture {
	f := &trackerFixture{
		registry: new(MockRegistry),
		betting:  new(MockBetting),
		games:    new(MockGameRepo),
		provider: new(MockProvider),
		notifier: new(MockNotifier),
		bus:      new(MockBus),
	}
	f.tracker = New(f.registry, f.betting, f.games, f.provider, f.notifier, f.bus, Config{
		BettingWindow:  3 * time.Minute,
		ResultDeadline: 2 * time.Hour,
		MultiplierMin:  1.20,
		MultiplierMax:  2.50,
	}).WithClock(func() time.Time { return testNow })
	return f
}

func trackedAccount() domain.TrackedAccount {
	return domain.TrackedAccount{
		PUUID:       "puuid-1",
		Region:      "euw1",
		GameName:    "Kassadin",
		TagLine:     "EUW",
		DisplayName: "Kassadin#EUW",
		Enabled:     true,
	}
}

func liveGame() *riot.CurrentGameInfo {
	participants := make([]riot.CurrentGameParticipant, 0, 10)
	for i := 0; i < 5; i++ {
		participants = append(participants, riot.CurrentGameParticipant{
			PUUID:      "blue-" + string(rune('a'+i)),
			TeamID:     riot.TeamIDBlue,
			ChampionID: int64(i + 1),
			RiotID:     "Blue#" + string(rune('a'+i)),
		})
		participants = append(participants, riot.CurrentGameParticipant{
			PUUID:      "red-" + string(rune('a'+i)),
			TeamID:     riot.TeamIDRed,
			ChampionID: int64(i + 6),
			RiotID:     "Red#" + string(rune('a'+i)),
		})
	}
	participants[0].PUUID = "puuid-1"

	return &riot.CurrentGameInfo{
		GameID:            12345,
		PlatformID:        "EUW1",
		GameQueueConfigID: domain.QueueRankedSolo,
		Participants:      participants,
	}
}

func stateGame(id string, state domain.GameState) domain.TrackedGame {
	return domain.TrackedGame{
		GameID:          id,
		State:           state,
		TrackedPUUID:    "puuid-1",
		TrackedName:     "Kassadin#EUW",
		TrackedSide:     domain.SideBlue,
		OpenedAt:        testNow.Add(-10 * time.Minute),
		BettingClosesAt: testNow.Add(-7 * time.Minute),
	}
}

func TestPollAccounts_RegistersNewGame(t *testing.T) {
	f := newFixture()

	f.registry.On("ListTrackedAccounts", mock.Anything).
		Return([]domain.TrackedAccount{trackedAccount()}, nil)
	f.provider.On("ActiveGame", mock.Anything, "puuid-1").Return(liveGame(), nil)
	f.registry.On("GetGame", mock.Anything, "EUW1_12345").Return(nil, domain.ErrGameNotFound)
	f.provider.On("LeagueEntries", mock.Anything, mock.Anything).
		Return([]riot.LeagueEntry{{
			QueueType:    riot.QueueTypeRankedSolo,
			Tier:         "GOLD",
			Rank:         "II",
			LeaguePoints: 40,
			Wins:         60,
			Losses:       50,
		}}, nil)
	f.registry.On("RegisterGame", mock.Anything, mock.MatchedBy(func(g *domain.TrackedGame) bool {
		return g.GameID == "EUW1_12345" &&
			g.State == domain.GameStateBettingOpen &&
			g.TrackedSide == domain.SideBlue &&
			len(g.Participants.Blue) == 5 &&
			len(g.Participants.Red) == 5 &&
			g.BettingClosesAt.Equal(testNow.Add(3*time.Minute)) &&
			g.Odds.BlueMultiplier >= 1.20 && g.Odds.BlueMultiplier <= 2.50
	})).Return(true, nil)
	f.notifier.On("GameOpened", mock.Anything, mock.Anything).Return("msg-1", nil)
	f.games.On("SetNotificationRef", mock.Anything, "EUW1_12345", "msg-1").Return(nil)

	err := f.tracker.PollAccounts(context.Background())
	require.NoError(t, err)

	f.registry.AssertExpectations(t)
	f.notifier.AssertExpectations(t)
	f.games.AssertExpectations(t)
}

func TestPollAccounts_SkipsNonSoloQueue(t *testing.T) {
	f := newFixture()

	game := liveGame()
	game.GameQueueConfigID = 450

	f.registry.On("ListTrackedAccounts", mock.Anything).
		Return([]domain.TrackedAccount{trackedAccount()}, nil)
	f.provider.On("ActiveGame", mock.Anything, "puuid-1").Return(game, nil)

	err := f.tracker.PollAccounts(context.Background())
	require.NoError(t, err)

	f.registry.AssertNotCalled(t, "RegisterGame", mock.Anything, mock.Anything)
}

func TestPollAccounts_NotInGame(t *testing.T) {
	f := newFixture()

	f.registry.On("ListTrackedAccounts", mock.Anything).
		Return([]domain.TrackedAccount{trackedAccount()}, nil)
	f.provider.On("ActiveGame", mock.Anything, "puuid-1").Return(nil, nil)

	err := f.tracker.PollAccounts(context.Background())
	require.NoError(t, err)

	f.registry.AssertNotCalled(t, "RegisterGame", mock.Anything, mock.Anything)
}

func TestPollAccounts_AlreadyTracked(t *testing.T) {
	f := newFixture()

	existing := stateGame("EUW1_12345", domain.GameStateBettingOpen)
	f.registry.On("ListTrackedAccounts", mock.Anything).
		Return([]domain.TrackedAccount{trackedAccount()}, nil)
	f.provider.On("ActiveGame", mock.Anything, "puuid-1").Return(liveGame(), nil)
	f.registry.On("GetGame", mock.Anything, "EUW1_12345").Return(&existing, nil)

	err := f.tracker.PollAccounts(context.Background())
	require.NoError(t, err)

	// No roster enrichment for a game already in the registry
	f.provider.AssertNotCalled(t, "LeagueEntries", mock.Anything, mock.Anything)
	f.registry.AssertNotCalled(t, "RegisterGame", mock.Anything, mock.Anything)
}

func TestPollAccounts_CapReachedContinuesSweep(t *testing.T) {
	f := newFixture()

	f.registry.On("ListTrackedAccounts", mock.Anything).
		Return([]domain.TrackedAccount{trackedAccount()}, nil)
	f.provider.On("ActiveGame", mock.Anything, "puuid-1").Return(liveGame(), nil)
	f.registry.On("GetGame", mock.Anything, "EUW1_12345").Return(nil, domain.ErrGameNotFound)
	f.provider.On("LeagueEntries", mock.Anything, mock.Anything).Return([]riot.LeagueEntry{}, nil)
	f.registry.On("RegisterGame", mock.Anything, mock.Anything).
		Return(false, domain.ErrTrackingCapReached)

	err := f.tracker.PollAccounts(context.Background())
	require.NoError(t, err)

	f.notifier.AssertNotCalled(t, "GameOpened", mock.Anything, mock.Anything)
}

func TestPollAccounts_ProviderErrorDoesNotStopSweep(t *testing.T) {
	f := newFixture()

	first := trackedAccount()
	second := trackedAccount()
	second.PUUID = "puuid-2"
	second.DisplayName = "Other#EUW"

	f.registry.On("ListTrackedAccounts", mock.Anything).
		Return([]domain.TrackedAccount{first, second}, nil)
	f.provider.On("ActiveGame", mock.Anything, "puuid-1").
		Return(nil, domain.ErrUpstreamUnavailable)
	f.provider.On("ActiveGame", mock.Anything, "puuid-2").Return(nil, nil)

	err := f.tracker.PollAccounts(context.Background())
	require.NoError(t, err)

	f.provider.AssertNumberOfCalls(t, "ActiveGame", 2)
}

func TestCloseExpiredWindows(t *testing.T) {
	f := newFixture()

	expired := stateGame("EUW1_1", domain.GameStateBettingOpen)
	expired.BettingClosesAt = testNow.Add(-time.Second)
	stillOpen := stateGame("EUW1_2", domain.GameStateBettingOpen)
	stillOpen.BettingClosesAt = testNow.Add(time.Minute)

	f.games.On("ListGamesInState", mock.Anything, domain.GameStateBettingOpen).
		Return([]domain.TrackedGame{expired, stillOpen}, nil)
	f.games.On("UpdateGameStateIfMatches", mock.Anything, "EUW1_1",
		domain.GameStateBettingOpen, domain.GameStateBettingClosed).Return(1, nil)
	f.betting.On("ListGameWagers", mock.Anything, "EUW1_1").Return([]domain.Wager{
		{GameID: "EUW1_1", Stake: 200},
		{GameID: "EUW1_1", Stake: 300},
	}, nil)
	f.bus.On("Publish", mock.Anything, mock.MatchedBy(func(e event.Event) bool {
		if e.Type != event.BettingClosed {
			return false
		}
		payload, ok := e.Payload.(event.BettingClosedPayloadV1)
		return ok && payload.WagerCount == 2 && payload.TotalStaked == 500
	})).Return(nil)
	f.notifier.On("BettingClosed", mock.Anything, mock.Anything).Return(nil)

	err := f.tracker.CloseExpiredWindows(context.Background())
	require.NoError(t, err)

	// The game whose window is still open is untouched
	f.games.AssertNumberOfCalls(t, "UpdateGameStateIfMatches", 1)
	f.bus.AssertExpectations(t)
}

func TestCloseExpiredWindows_LostRace(t *testing.T) {
	f := newFixture()

	expired := stateGame("EUW1_1", domain.GameStateBettingOpen)
	expired.BettingClosesAt = testNow.Add(-time.Second)

	f.games.On("ListGamesInState", mock.Anything, domain.GameStateBettingOpen).
		Return([]domain.TrackedGame{expired}, nil)
	f.games.On("UpdateGameStateIfMatches", mock.Anything, "EUW1_1",
		domain.GameStateBettingOpen, domain.GameStateBettingClosed).Return(0, nil)

	err := f.tracker.CloseExpiredWindows(context.Background())
	require.NoError(t, err)

	f.bus.AssertNotCalled(t, "Publish", mock.Anything, mock.Anything)
	f.notifier.AssertNotCalled(t, "BettingClosed", mock.Anything, mock.Anything)
}

func TestSweepResults_GameStillLive(t *testing.T) {
	f := newFixture()

	closed := stateGame("EUW1_12345", domain.GameStateBettingClosed)
	f.games.On("ListGamesInState", mock.Anything, domain.GameStateBettingClosed).
		Return([]domain.TrackedGame{closed}, nil)
	f.games.On("ListGamesInState", mock.Anything, domain.GameStateAwaitingResult).
		Return([]domain.TrackedGame{}, nil)
	f.provider.On("ActiveGame", mock.Anything, "puuid-1").Return(liveGame(), nil)

	err := f.tracker.SweepResults(context.Background())
	require.NoError(t, err)

	f.games.AssertNotCalled(t, "UpdateGameStateIfMatches",
		mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestSweepResults_GameLeftSpectator(t *testing.T) {
	f := newFixture()

	closed := stateGame("EUW1_12345", domain.GameStateBettingClosed)
	f.games.On("ListGamesInState", mock.Anything, domain.GameStateBettingClosed).
		Return([]domain.TrackedGame{closed}, nil)
	f.games.On("ListGamesInState", mock.Anything, domain.GameStateAwaitingResult).
		Return([]domain.TrackedGame{}, nil)
	f.provider.On("ActiveGame", mock.Anything, "puuid-1").Return(nil, nil)
	f.games.On("UpdateGameStateIfMatches", mock.Anything, "EUW1_12345",
		domain.GameStateBettingClosed, domain.GameStateAwaitingResult).Return(1, nil)

	err := f.tracker.SweepResults(context.Background())
	require.NoError(t, err)

	f.games.AssertExpectations(t)
}

func TestSweepResults_ResolvesFinishedGame(t *testing.T) {
	f := newFixture()

	awaiting := stateGame("EUW1_12345", domain.GameStateAwaitingResult)
	f.games.On("ListGamesInState", mock.Anything, domain.GameStateBettingClosed).
		Return([]domain.TrackedGame{}, nil)
	f.games.On("ListGamesInState", mock.Anything, domain.GameStateAwaitingResult).
		Return([]domain.TrackedGame{awaiting}, nil)
	f.provider.On("MatchResult", mock.Anything, "EUW1_12345", "puuid-1").
		Return(&domain.MatchResult{
			GameID:      "EUW1_12345",
			TrackedWon:  true,
			WinningSide: domain.SideBlue,
			Duration:    28 * time.Minute,
		}, nil)
	summary := &domain.SettlementSummary{GameID: "EUW1_12345", WinningSide: domain.SideBlue, WagersSettled: 2}
	f.betting.On("Resolve", mock.Anything, "EUW1_12345", domain.SideBlue).Return(summary, nil)
	f.notifier.On("GameResolved", mock.Anything, mock.Anything, summary).Return(nil)

	err := f.tracker.SweepResults(context.Background())
	require.NoError(t, err)

	f.betting.AssertExpectations(t)
	f.notifier.AssertExpectations(t)
}

func TestSweepResults_ResultNotReadyBeforeDeadline(t *testing.T) {
	f := newFixture()

	awaiting := stateGame("EUW1_12345", domain.GameStateAwaitingResult)
	f.games.On("ListGamesInState", mock.Anything, domain.GameStateBettingClosed).
		Return([]domain.TrackedGame{}, nil)
	f.games.On("ListGamesInState", mock.Anything, domain.GameStateAwaitingResult).
		Return([]domain.TrackedGame{awaiting}, nil)
	f.provider.On("MatchResult", mock.Anything, "EUW1_12345", "puuid-1").
		Return(nil, domain.ErrGameNotFound)

	err := f.tracker.SweepResults(context.Background())
	require.NoError(t, err)

	f.games.AssertNotCalled(t, "MarkNeedsManual", mock.Anything, mock.Anything)
	f.betting.AssertNotCalled(t, "Resolve", mock.Anything, mock.Anything, mock.Anything)
}

func TestSweepResults_FlagsManualAfterDeadline(t *testing.T) {
	f := newFixture()

	awaiting := stateGame("EUW1_12345", domain.GameStateAwaitingResult)
	awaiting.OpenedAt = testNow.Add(-3 * time.Hour)

	f.games.On("ListGamesInState", mock.Anything, domain.GameStateBettingClosed).
		Return([]domain.TrackedGame{}, nil)
	f.games.On("ListGamesInState", mock.Anything, domain.GameStateAwaitingResult).
		Return([]domain.TrackedGame{awaiting}, nil)
	f.provider.On("MatchResult", mock.Anything, "EUW1_12345", "puuid-1").
		Return(nil, domain.ErrGameNotFound)
	f.games.On("MarkNeedsManual", mock.Anything, "EUW1_12345").Return(nil)
	f.bus.On("Publish", mock.Anything, mock.MatchedBy(func(e event.Event) bool {
		return e.Type == event.GameNeedsManual
	})).Return(nil)
	f.notifier.On("GameNeedsManual", mock.Anything, mock.Anything).Return(nil)

	err := f.tracker.SweepResults(context.Background())
	require.NoError(t, err)

	f.games.AssertExpectations(t)
	f.bus.AssertExpectations(t)
}

func TestSweepResults_ProviderOutageNeverDecidesGame(t *testing.T) {
	f := newFixture()

	awaiting := stateGame("EUW1_12345", domain.GameStateAwaitingResult)
	awaiting.OpenedAt = testNow.Add(-3 * time.Hour)

	f.games.On("ListGamesInState", mock.Anything, domain.GameStateBettingClosed).
		Return([]domain.TrackedGame{}, nil)
	f.games.On("ListGamesInState", mock.Anything, domain.GameStateAwaitingResult).
		Return([]domain.TrackedGame{awaiting}, nil)
	f.provider.On("MatchResult", mock.Anything, "EUW1_12345", "puuid-1").
		Return(nil, domain.ErrUpstreamUnavailable)

	err := f.tracker.SweepResults(context.Background())
	require.NoError(t, err)

	// An outage is not a missing result; the deadline check only
	// applies when the provider says the match is absent.
	f.games.AssertNotCalled(t, "MarkNeedsManual", mock.Anything, mock.Anything)
	f.betting.AssertNotCalled(t, "Resolve", mock.Anything, mock.Anything, mock.Anything)
}

func TestSweepResults_AlreadyResolvedIsQuiet(t *testing.T) {
	f := newFixture()

	awaiting := stateGame("EUW1_12345", domain.GameStateAwaitingResult)
	f.games.On("ListGamesInState", mock.Anything, domain.GameStateBettingClosed).
		Return([]domain.TrackedGame{}, nil)
	f.games.On("ListGamesInState", mock.Anything, domain.GameStateAwaitingResult).
		Return([]domain.TrackedGame{awaiting}, nil)
	f.provider.On("MatchResult", mock.Anything, "EUW1_12345", "puuid-1").
		Return(&domain.MatchResult{GameID: "EUW1_12345", WinningSide: domain.SideRed}, nil)
	f.betting.On("Resolve", mock.Anything, "EUW1_12345", domain.SideRed).
		Return(nil, domain.ErrAlreadyResolved)

	err := f.tracker.SweepResults(context.Background())
	require.NoError(t, err)

	f.notifier.AssertNotCalled(t, "GameResolved", mock.Anything, mock.Anything, mock.Anything)
}

func TestNopNotifier(t *testing.T) {
	var n Notifier = NopNotifier{}

	ref, err := n.GameOpened(context.Background(), nil)
	assert.NoError(t, err)
	assert.Empty(t, ref)
	assert.NoError(t, n.BettingClosed(context.Background(), nil))
	assert.NoError(t, n.GameResolved(context.Background(), nil, nil))
	assert.NoError(t, n.GameNeedsManual(context.Background(), nil))
}
