package main

import (
	"context"
	"fmt"
	"os"
	"runtime"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"napoleon/internal/bots"
	"napoleon/internal/engine"
	"napoleon/internal/engine/sim"
	"napoleon/internal/server"
	"napoleon/internal/solver"
)

func main() {
	if err := rootCmd().Execute(); err != nil {
		log.Error("napoleon", "err", err)
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	var verbose bool
	root := &cobra.Command{
		Use:           "napoleon",
		Short:         "Exact end-game solver for Napoleon",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			zerolog.SetGlobalLevel(zerolog.WarnLevel)
			if verbose {
				log.SetLevel(log.DebugLevel)
				zerolog.SetGlobalLevel(zerolog.DebugLevel)
			}
		},
	}
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "debug logging")
	root.AddCommand(solveCmd(), analyzeCmd(), randomCmd(), playCmd())
	return root
}

// sampleDeal is a four player deal with eight tricks left.
func sampleDeal() server.PositionDTO {
	return server.PositionDTO{
		Hands: []string{
			"S2 SQ D6 C2 C3 C5 C9 BJ",
			"H6 H7 H9 D8 DA C4 CJ CK",
			"S3 S6 S10 SK D4 D5 C10 CQ",
			"HJ D3 DJ DQ C8 CA RJ XJ",
		},
		Napoleon: 3,
		Adjutant: 2,
		Turn:     0,
		Trump:    "D",
		Contract: 17,
		Declarer: 7,
		Defender: 1,
	}
}

func positionFlags(cmd *cobra.Command, dto *server.PositionDTO, moves bool) {
	f := cmd.Flags()
	f.StringArrayVar(&dto.Hands, "hand", dto.Hands, "cards of one seat, repeat per seat in seat order")
	f.IntVar(&dto.Napoleon, "napoleon", dto.Napoleon, "napoleon seat")
	f.IntVar(&dto.Adjutant, "adjutant", dto.Adjutant, "adjutant seat")
	f.IntVar(&dto.Turn, "turn", dto.Turn, "seat to play")
	f.BoolVar(&dto.Reversed, "reversed", dto.Reversed, "play runs against the seat order")
	f.StringVar(&dto.Trump, "trump", dto.Trump, "trump suit letter: S H D C")
	f.IntVar(&dto.Contract, "contract", dto.Contract, "picture cards the napoleon bid")
	f.IntVar(&dto.Declarer, "declarer", dto.Declarer, "picture cards won by the napoleon's side")
	f.IntVar(&dto.Defender, "defender", dto.Defender, "picture cards won by the allied side")
	f.StringSliceVar(&dto.Trick, "trick", dto.Trick, "cards on the table, lead first")
	if moves {
		f.StringSliceVar(&dto.Moves, "moves", dto.Moves, "cards to replay before searching")
	}
}

func solveCmd() *cobra.Command {
	dto := sampleDeal()
	cmd := &cobra.Command{
		Use:   "solve",
		Short: "Decide which coalition wins a position",
		RunE: func(cmd *cobra.Command, args []string) error {
			p, moves, err := dto.ToPosition()
			if err != nil {
				return err
			}
			fmt.Print(renderPosition(p))
			log.Debug("solving", "remaining", p.Remaining(), "moves", len(moves))
			start := time.Now()
			r, err := p.SolveAfter(moves)
			if err != nil {
				return err
			}
			fmt.Print(renderResult(r, time.Since(start).Seconds()))
			return nil
		},
	}
	positionFlags(cmd, &dto, true)
	return cmd
}

func analyzeCmd() *cobra.Command {
	dto := sampleDeal()
	var workers int
	cmd := &cobra.Command{
		Use:   "analyze",
		Short: "Solve every legal card of the seat on turn",
		RunE: func(cmd *cobra.Command, args []string) error {
			p, _, err := dto.ToPosition()
			if err != nil {
				return err
			}
			fmt.Print(renderPosition(p))
			start := time.Now()
			results, err := solver.Analyze(context.Background(), p, workers)
			if err != nil {
				return err
			}
			fmt.Print(renderAnalysis(p, results))
			fmt.Printf("%.3f sec\n", time.Since(start).Seconds())
			return nil
		},
	}
	positionFlags(cmd, &dto, false)
	cmd.Flags().IntVar(&workers, "workers", runtime.NumCPU(), "parallel searches")
	return cmd
}

func randomCmd() *cobra.Command {
	var cfg sim.Config
	var seed int64
	cmd := &cobra.Command{
		Use:   "random",
		Short: "Deal, play randomly down to an end-game and solve it",
		RunE: func(cmd *cobra.Command, args []string) error {
			g, err := sim.RandomEndgame(seed, cfg)
			if err != nil {
				return err
			}
			if g.Over() {
				log.Info("decided before the end-game", "seed", seed, "verdict", g.Verdict)
				return nil
			}
			p := solver.FromGame(g)
			fmt.Print(renderPosition(p))
			start := time.Now()
			r, err := p.Solve()
			if err != nil {
				return err
			}
			fmt.Print(renderResult(r, time.Since(start).Seconds()))
			return nil
		},
	}
	f := cmd.Flags()
	f.Int64Var(&seed, "seed", time.Now().UnixNano(), "deal seed")
	f.IntVar(&cfg.Players, "players", 4, "number of players")
	f.IntVar(&cfg.TricksLeft, "tricks", 4, "tricks left to solve")
	f.IntVar(&cfg.Target, "contract", 0, "contract target, 0 picks one")
	return cmd
}

func playCmd() *cobra.Command {
	var seed int64
	var players, limit int
	var names string
	cmd := &cobra.Command{
		Use:   "play",
		Short: "Play a whole deal between bots",
		RunE: func(cmd *cobra.Command, args []string) error {
			if !engine.ValidPlayers(players) {
				return fmt.Errorf("cannot deal for %d players", players)
			}
			kinds := strings.Split(names, ",")
			seats := make([]sim.Player, players)
			for i := range seats {
				b, err := bots.New(strings.TrimSpace(kinds[i%len(kinds)]), seed+int64(i), limit)
				if err != nil {
					return err
				}
				seats[i] = b
			}
			g := engine.NewGame(players, seed, sim.RandomContract(engine.NewRNG(seed), players, 0))
			log.Info("dealt", "seed", seed, "napoleon", g.Contract.Napoleon, "adjutant", g.Contract.Adjutant,
				"trump", g.Contract.Trump, "contract", g.Contract.Target)
			if err := sim.PlayOut(g, seats, engine.DeckSize); err != nil {
				return err
			}
			fmt.Println(renderCards(g.Played))
			fmt.Printf("%s, points %d/%d\n", verdict.Render(g.Verdict.String()+" wins"), g.Score.Declarer, g.Score.Defender)
			return nil
		},
	}
	f := cmd.Flags()
	f.Int64Var(&seed, "seed", time.Now().UnixNano(), "deal seed")
	f.IntVar(&players, "players", 4, "number of players")
	f.StringVar(&names, "bots", "perfect,normal,easy,normal", "bot per seat, cycled: easy, normal or perfect")
	f.IntVar(&limit, "limit", 16, "cards left before perfect bots start solving")
	return cmd
}
