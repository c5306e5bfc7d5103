package scoring

import (
	"log/slog"
	"time"

	"github.com/vkaradzhov/belot-server/internal/model"
)

// Card point values. Trump-ranked cards promote the 9 and J; plain
// cards keep the 9 worthless and the J at 2.
var (
	trumpPoints = map[model.Rank]int{
		model.Rank7:  0,
		model.Rank8:  0,
		model.Rank9:  14,
		model.Rank10: 10,
		model.RankJ:  20,
		model.RankQ:  3,
		model.RankK:  4,
		model.RankA:  11,
	}
	plainPoints = map[model.Rank]int{
		model.Rank7:  0,
		model.Rank8:  0,
		model.Rank9:  0,
		model.Rank10: 10,
		model.RankJ:  2,
		model.RankQ:  3,
		model.RankK:  4,
		model.RankA:  11,
	}
)

const (
	lastTrickBonus = 10
	capoBonus      = 90
)

// Settlement is the scoring result for a completed hand
type Settlement struct {
	Summary model.HandSummary
	// MatchOver is true when a team reached the winning score
	MatchOver bool
	// WinnerTeam is set only when MatchOver
	WinnerTeam model.Team
}

// Engine turns completed hands into credited match points
type Engine struct {
	logger *slog.Logger
}

// New creates a scoring engine
func New(logger *slog.Logger) *Engine {
	return &Engine{logger: logger}
}

// CardPoints returns the point value of a single card under the contract
func CardPoints(card model.Card, contract model.Contract) int {
	if contract.TrumpRanked(card) {
		return trumpPoints[card.Rank]
	}
	return plainPoints[card.Rank]
}

// TrickPoints sums the card points of a completed trick
func TrickPoints(cards []model.PlayedCard, contract model.Contract) int {
	total := 0
	for _, pc := range cards {
		total += CardPoints(pc.Card, contract)
	}
	return total
}

// SettleHand scores the finished hand and applies the credited points to
// the session's running totals. It records the hand summary, updates the
// hanging pool and reports whether the match is over.
func (e *Engine) SettleHand(sess *model.Session, now time.Time) Settlement {
	p := sess.Play
	contract := *sess.Contract
	declarerTeam := model.TeamOf(contract.DeclarerSeat)

	raw := p.HandPoints
	var trickCounts [model.NumTeams]int
	for t := 0; t < model.NumTeams; t++ {
		trickCounts[t] = len(p.TricksWon[t])
	}

	raw[p.LastTrickTeam] += lastTrickBonus

	// Capo: a team that took no tricks concedes a 90-point bonus in
	// place of its last-trick chance
	capoTeam := model.Team(-1)
	for t := 0; t < model.NumTeams; t++ {
		if trickCounts[t] == 0 {
			capoTeam = model.Team(t)
		}
	}
	if capoTeam >= 0 {
		raw[capoTeam.Opponent()] += capoBonus
	}

	// No-trumps hands count double, except the capo bonus
	if contract.Mode == model.ModeNoTrumps {
		for t := 0; t < model.NumTeams; t++ {
			raw[t] *= 2
		}
		if capoTeam >= 0 {
			raw[capoTeam.Opponent()] -= capoBonus
		}
	}

	var rounded [model.NumTeams]int
	for t := 0; t < model.NumTeams; t++ {
		rounded[t] = roundPoints(raw[t], contract.Mode)
	}

	summary := model.HandSummary{
		HandNumber:    sess.HandNumber,
		Contract:      contract,
		Stake:         sess.Stake,
		TrickCounts:   trickCounts,
		RoundedPoints: rounded,
		CompletedAt:   now,
	}

	var credited [model.NumTeams]int
	defenderTeam := declarerTeam.Opponent()
	combined := rounded[0] + rounded[1]

	switch {
	case rounded[declarerTeam] > rounded[defenderTeam]:
		summary.Outcome = model.OutcomeDeclarerWon
		credited[declarerTeam] = rounded[declarerTeam]
		credited[defenderTeam] = rounded[defenderTeam]
	case rounded[declarerTeam] < rounded[defenderTeam]:
		// Failed contract: the defenders collect everything
		summary.Outcome = model.OutcomeFailed
		credited[defenderTeam] = combined
	default:
		// Tie: the declarers' share hangs for the next settled hand,
		// the defenders keep theirs
		summary.Outcome = model.OutcomeHanging
		credited[defenderTeam] = rounded[defenderTeam]
		sess.HangingPoints += rounded[declarerTeam]
	}

	mult := sess.Stake.Multiplier()
	for t := 0; t < model.NumTeams; t++ {
		credited[t] *= mult
	}

	// A settled hand's winner also collects the hanging pool
	if summary.Outcome != model.OutcomeHanging && sess.HangingPoints > 0 {
		winner := defenderTeam
		if summary.Outcome == model.OutcomeDeclarerWon {
			winner = declarerTeam
		}
		credited[winner] += sess.HangingPoints
		sess.HangingPoints = 0
	}

	summary.Credited = credited
	summary.HangingPoints = sess.HangingPoints

	for t := 0; t < model.NumTeams; t++ {
		sess.TotalScores[t] += credited[t]
	}
	sess.HandHistory = append(sess.HandHistory, summary)

	settlement := Settlement{Summary: summary}
	if winner, over := e.matchWinner(sess); over {
		settlement.MatchOver = true
		settlement.WinnerTeam = winner
	}

	e.logger.Info("hand settled",
		slog.Int("hand_number", summary.HandNumber),
		slog.String("outcome", string(summary.Outcome)),
		slog.Int("credited_team0", credited[0]),
		slog.Int("credited_team1", credited[1]),
	)

	return settlement
}

// roundPoints rounds raw hand points to match points (tens). All-trumps
// rounds up from a remainder of 4; every other mode rounds from 5.
func roundPoints(p int, mode model.TrumpMode) int {
	threshold := 5
	if mode == model.ModeAllTrumps {
		threshold = 4
	}
	if p%10 >= threshold {
		return p/10*10 + 10
	}
	return p / 10 * 10
}

// matchWinner reports whether a team has reached the winning score.
// When both have, the higher total wins.
func (e *Engine) matchWinner(sess *model.Session) (model.Team, bool) {
	s := sess.TotalScores
	if s[0] < model.WinningScore && s[1] < model.WinningScore {
		return -1, false
	}
	if s[0] > s[1] {
		return 0, true
	}
	return 1, true
}
