package scoring

import (
	"context"
	"log/slog"

	"github.com/mcoot/jeopardy-go2/internal/model"
	"github.com/mcoot/jeopardy-go2/internal/storage"
)

// Result is the scoring of a completed match
type Result struct {
	Standings []model.Standing `json:"standings"`
	Outcome   model.Outcome    `json:"outcome"`
	HighScore model.HighScore  `json:"high_score"`
	// NewHighScore is set when a sole winner holds the high score after the match
	NewHighScore bool `json:"new_high_score"`
}

// Service scores completed matches and maintains the high score
type Service struct {
	storage storage.Storage
	logger  *slog.Logger
}

// New creates a new scoring service
func New(storage storage.Storage, logger *slog.Logger) *Service {
	return &Service{
		storage: storage,
		logger:  logger,
	}
}

// ScoreMatch ranks the players of a finished match and offers every
// player's score as a high score candidate.
func (s *Service) ScoreMatch(ctx context.Context, players []model.Player) (*Result, error) {
	result := &Result{
		Standings: model.RankPlayers(players),
		Outcome:   model.OutcomeFor(players),
	}

	var (
		hs  model.HighScore
		err error
	)
	for _, p := range players {
		var updated bool
		hs, updated, err = s.storage.SubmitScore(ctx, p.Name, p.Score)
		if err != nil {
			return result, err
		}
		if updated {
			s.logger.Info("new high score",
				slog.String("player", p.Name),
				slog.Int("score", p.Score),
			)
		}
	}
	if len(players) == 0 {
		if hs, err = s.storage.GetHighScore(ctx); err != nil {
			return result, err
		}
	}

	result.HighScore = hs
	// A zero score never becomes the high score, so matching the default
	// 0/None record is not a new high score.
	result.NewHighScore = !result.Outcome.Tie &&
		len(result.Outcome.Winners) == 1 &&
		result.Outcome.TopScore > 0 &&
		result.Outcome.TopScore == hs.Score
	return result, nil
}

// HighScore returns the recorded high score
func (s *Service) HighScore(ctx context.Context) (model.HighScore, error) {
	return s.storage.GetHighScore(ctx)
}

// ResetHighScore clears the recorded high score
func (s *Service) ResetHighScore(ctx context.Context) error {
	if err := s.storage.ResetHighScore(ctx); err != nil {
		return err
	}
	s.logger.Info("high score reset")
	return nil
}
