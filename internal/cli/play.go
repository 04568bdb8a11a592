package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/mcoot/jeopardy-go2/internal/codec"
	"github.com/mcoot/jeopardy-go2/internal/config"
	"github.com/mcoot/jeopardy-go2/internal/factory"
	"github.com/mcoot/jeopardy-go2/internal/model"
	"github.com/mcoot/jeopardy-go2/internal/services/engine"
	"github.com/mcoot/jeopardy-go2/internal/services/scoring"
	"github.com/mcoot/jeopardy-go2/internal/storage"
)

// frameRate is how often the terminal game advances the answer timer
const frameRate = 30

const playHelp = `Commands:
  <category> <value>   pick a cell, e.g. "science 400"
  1-4                  answer the active question
  :save <name>         save the match
  :load <name>         restore a saved match
  :saves               list saved matches
  :delete <name>       delete a save
  :highscore           show the high score
  :skip                pass the turn to the next player
  :again               play again once the board is cleared
  :quit                leave the game`

func newPlayCmd() *cobra.Command {
	var loadName string

	cmd := &cobra.Command{
		Use:   "play [player]...",
		Short: "Play a match in this terminal",
		Long: `Play a local match in the terminal. Players take turns in the order given.

Saves and the high score go to the storage backend named in the config file.
Use --load to continue a saved match instead of starting a new one.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			appCfg, err := config.Load(cfg.ConfigPath)
			if err != nil {
				return err
			}

			// Logs go to stderr so they do not interleave with the board
			level := slog.LevelWarn
			if cfg.Verbose {
				level = slog.LevelDebug
			}
			logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			app, err := factory.New(ctx, appCfg, logger)
			if err != nil {
				return err
			}
			defer func() { _ = app.Close() }()

			var eng *engine.Engine
			if loadName != "" {
				state, err := readSave(ctx, app.Storage, loadName)
				if err != nil {
					return err
				}
				if eng, err = engine.FromSnapshot(app.QuestionBank, state); err != nil {
					return err
				}
			} else {
				if len(args) < appCfg.Match.MinPlayers {
					return fmt.Errorf("%w: need at least %d players", model.ErrInsufficientPlayers, appCfg.Match.MinPlayers)
				}
				if eng, err = engine.New(app.QuestionBank, args); err != nil {
					return err
				}
			}

			session := newPlaySession(eng, app.Storage, app.ScoringService, cmd.OutOrStdout(), logger)
			return runPlay(ctx, session, cmd.InOrStdin())
		},
	}

	cmd.Flags().StringVar(&loadName, "load", "", "Continue a saved match")

	return cmd
}

// runPlay drives a session: stdin lines and 30Hz frames are fed from one
// select loop, so the session is only touched by this goroutine.
func runPlay(ctx context.Context, s *playSession, in io.Reader) error {
	lines := make(chan string)
	go func() {
		defer close(lines)
		scanner := bufio.NewScanner(in)
		for scanner.Scan() {
			select {
			case lines <- scanner.Text():
			case <-ctx.Done():
				return
			}
		}
	}()

	ticker := time.NewTicker(time.Second / frameRate)
	defer ticker.Stop()

	s.Start(ctx)
	last := time.Now()
	for !s.Done() {
		select {
		case <-ctx.Done():
			return nil
		case line, ok := <-lines:
			if !ok {
				return nil
			}
			s.HandleLine(ctx, line)
		case now := <-ticker.C:
			s.Frame(ctx, now.Sub(last).Seconds())
			last = now
		}
	}
	return nil
}

// playSession is the terminal front-end for one engine
type playSession struct {
	engine  *engine.Engine
	storage storage.Storage
	scoring *scoring.Service
	out     io.Writer
	logger  *slog.Logger

	shownSeconds int
	done         bool
}

func newPlaySession(eng *engine.Engine, store storage.Storage, scoring *scoring.Service, out io.Writer, logger *slog.Logger) *playSession {
	return &playSession{
		engine:  eng,
		storage: store,
		scoring: scoring,
		out:     out,
		logger:  logger,
	}
}

// Start shows the opening screen
func (s *playSession) Start(ctx context.Context) {
	fmt.Fprintln(s.out, "Jeopardy! Type :help for commands.")
	if s.engine.State() == engine.StateRoundComplete {
		s.finish(ctx)
		return
	}
	s.showTurn()
}

// Done reports whether the player asked to quit
func (s *playSession) Done() bool {
	return s.done
}

// Frame advances the answer timer by the elapsed frame time
func (s *playSession) Frame(ctx context.Context, delta float64) {
	if delta > engine.MaxFrameStep {
		delta = engine.MaxFrameStep
	}
	if res := s.engine.Tick(delta); res != nil {
		s.showResolution(ctx, res)
		return
	}

	active := s.engine.Active()
	if active == nil {
		return
	}
	secs := active.WholeSeconds()
	if secs != s.shownSeconds && active.Urgency() != model.UrgencyNormal {
		fmt.Fprintf(s.out, "%ds left\n", secs)
	}
	s.shownSeconds = secs
}

// HandleLine applies one line of player input
func (s *playSession) HandleLine(ctx context.Context, line string) {
	line = strings.TrimSpace(line)
	if line == "" {
		return
	}

	if strings.HasPrefix(line, ":") {
		s.command(ctx, line)
		return
	}

	switch s.engine.State() {
	case engine.StateQuestionActive:
		s.answer(ctx, line)
	case engine.StateAwaitingSelection:
		s.selectCell(line)
	default:
		fmt.Fprintln(s.out, "The board is clear. Type :again to play again or :quit to leave.")
	}
}

func (s *playSession) command(ctx context.Context, line string) {
	name, arg, _ := strings.Cut(strings.TrimPrefix(line, ":"), " ")
	arg = strings.TrimSpace(arg)

	switch strings.ToLower(name) {
	case "help":
		fmt.Fprintln(s.out, playHelp)
	case "quit", "q":
		s.done = true
	case "save":
		s.save(ctx, arg)
	case "load":
		s.load(ctx, arg)
	case "saves":
		s.listSaves(ctx)
	case "delete":
		if err := s.storage.DeleteMatch(ctx, arg); err != nil {
			s.fail(err)
			return
		}
		fmt.Fprintf(s.out, "Deleted %q\n", arg)
	case "highscore":
		hs, err := s.scoring.HighScore(ctx)
		if err != nil {
			s.fail(err)
			return
		}
		fmt.Fprintf(s.out, "High Score: %d by %s\n", hs.Score, hs.Player)
	case "skip":
		if err := s.engine.SkipTurn(); err != nil {
			s.fail(err)
			return
		}
		s.showTurn()
	case "again":
		if err := s.engine.PlayAgain(); err != nil {
			s.fail(err)
			return
		}
		s.showTurn()
	default:
		fmt.Fprintf(s.out, "Unknown command %q. Type :help for commands.\n", name)
	}
}

func (s *playSession) selectCell(line string) {
	fields := strings.Fields(line)
	if len(fields) != 2 {
		fmt.Fprintln(s.out, `Pick a cell as "<category> <value>", e.g. "science 400".`)
		return
	}
	category, err := model.ParseCategory(fields[0])
	if err != nil {
		s.fail(err)
		return
	}
	value, err := strconv.Atoi(strings.TrimPrefix(fields[1], "$"))
	if err != nil {
		s.fail(model.ErrInvalidValue)
		return
	}
	cell, err := model.CellFor(category, value)
	if err != nil {
		s.fail(err)
		return
	}

	// Answered cells are ignored, as on the board screen
	active, err := s.engine.SelectCell(cell)
	if err != nil {
		s.logger.Debug("selection ignored", slog.String("cell", cell.String()), slog.String("error", err.Error()))
		return
	}
	s.shownSeconds = active.WholeSeconds()
	fmt.Fprintln(s.out)
	writeQuestion(s.out, active.Cell.Category.Label(), active.Cell.Value(), active.Question.Prompt, active.Question.Choices)
	fmt.Fprintf(s.out, "%s, you have %d seconds.\n", s.engine.CurrentPlayer().Name, active.WholeSeconds())
}

func (s *playSession) answer(ctx context.Context, line string) {
	choice, err := strconv.Atoi(line)
	if err != nil {
		fmt.Fprintf(s.out, "Answer with a number from 1 to %d.\n", model.ChoicesPerQuestion)
		return
	}
	res, err := s.engine.SubmitChoice(choice - 1)
	if err != nil {
		s.fail(err)
		return
	}
	s.showResolution(ctx, res)
}

func (s *playSession) save(ctx context.Context, name string) {
	if name == "" {
		s.fail(model.ErrInvalidSaveName)
		return
	}
	data, err := codec.Encode(s.engine.Snapshot())
	if err != nil {
		s.fail(err)
		return
	}
	if err := s.storage.SaveMatch(ctx, name, data); err != nil {
		s.logger.Error("failed to save match", slog.String("save", name), slog.String("error", err.Error()))
		s.fail(err)
		return
	}
	fmt.Fprintf(s.out, "Saved as %q\n", name)
}

func (s *playSession) load(ctx context.Context, name string) {
	state, err := readSave(ctx, s.storage, name)
	if err != nil {
		s.fail(err)
		return
	}
	if err := s.engine.Restore(state); err != nil {
		s.fail(err)
		return
	}
	fmt.Fprintf(s.out, "Loaded %q\n", name)
	if s.engine.State() == engine.StateRoundComplete {
		s.finish(ctx)
		return
	}
	s.showTurn()
}

func (s *playSession) listSaves(ctx context.Context) {
	names, err := s.storage.ListMatches(ctx)
	if err != nil {
		s.fail(err)
		return
	}
	NewOutput("text", s.out).Print(Saves{Saves: names})
}

func (s *playSession) showResolution(ctx context.Context, res *engine.Resolution) {
	fmt.Fprintln(s.out)
	writeResolution(s.out, res.PlayerName, res.PointsDelta, res.TimedOut, res.CorrectAnswer)
	if !res.RoundComplete {
		s.showTurn()
		return
	}
	s.finish(ctx)
}

// finish shows final standings and records the high score
func (s *playSession) finish(ctx context.Context) {
	result, err := s.scoring.ScoreMatch(ctx, s.engine.Players())
	if err != nil {
		s.logger.Error("failed to record high score", slog.String("error", err.Error()))
	}
	fmt.Fprintln(s.out)
	NewOutput("text", s.out).printResult(resultFromScoring(result))
	fmt.Fprintln(s.out, "Type :again to play again or :quit to leave.")
}

func (s *playSession) showTurn() {
	if s.engine.State() == engine.StateRoundComplete {
		fmt.Fprintln(s.out, "The board is clear. Type :again to play again or :quit to leave.")
		return
	}

	board := s.engine.Board()
	cats := model.Categories()
	labels := make([]string, len(cats))
	for i, c := range cats {
		labels[i] = c.Label()
	}

	fmt.Fprintln(s.out)
	writeBoard(s.out, labels, model.Values(), func(col, row int) bool {
		return board.IsAnswered(model.Cell{Category: cats[col], Tier: model.Tier(row)})
	})

	players := s.engine.Players()
	names := make([]string, len(players))
	scores := make([]int, len(players))
	for i, p := range players {
		names[i], scores[i] = p.Name, p.Score
	}
	writeScores(s.out, names, scores, s.engine.CurrentPlayerIndex())
	fmt.Fprintf(s.out, "%s, pick a cell.\n", s.engine.CurrentPlayer().Name)
}

func (s *playSession) fail(err error) {
	fmt.Fprintf(s.out, "Error: %s\n", err)
}

func readSave(ctx context.Context, store storage.Storage, name string) (model.MatchState, error) {
	data, err := store.GetMatch(ctx, name)
	if err != nil {
		return model.MatchState{}, err
	}
	state, err := codec.Decode(data)
	if err != nil {
		return model.MatchState{}, fmt.Errorf("%w: %v", model.ErrInvalidSnapshot, err)
	}
	return state, nil
}

func resultFromScoring(r *scoring.Result) Result {
	out := Result{
		Winners:      r.Outcome.Winners,
		Tie:          r.Outcome.Tie,
		HighScore:    HighScore{Score: r.HighScore.Score, Player: r.HighScore.Player},
		NewHighScore: r.NewHighScore,
	}
	for _, st := range r.Standings {
		out.Standings = append(out.Standings, Standing{Rank: st.Rank, Name: st.Name, Score: st.Score, Winner: st.Winner})
	}
	return out
}
