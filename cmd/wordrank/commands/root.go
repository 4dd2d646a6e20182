package commands

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/viant/wordrank/config"
)

// app carries the global flags and the state they produce for subcommands.
type app struct {
	configPath string
	logFormat  string
	verbose    bool

	// overrides applied on top of the loaded configuration
	vectors    string
	vocabulary string
	dailyWords string
	baseDate   string
	storeKind  string
	storeDSN   string
	storeDir   string

	cfg    *config.Config
	logger *slog.Logger
}

// NewRootCmd builds the wordrank command tree.
func NewRootCmd() *cobra.Command {
	a := &app{}
	root := &cobra.Command{
		Use:   "wordrank",
		Short: "Daily word game ranking engine",
		Long: `wordrank ranks a vocabulary by cosine similarity to each day's secret
word and stores the rankings for the game to serve.

Settings come from an optional YAML file (--config), the environment
(WORDRANK_*, LOCAL_EMBEDDINGS_PATH, DATABASE_URL) and the flags below,
later sources overriding earlier ones.

Examples:
  # Check the word lists
  wordrank check

  # Archive the whole cycle of daily words into SQLite
  wordrank generate --workers 4

  # Serve the archive
  wordrank serve --addr :8080`,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: a.setup,
	}

	flags := root.PersistentFlags()
	flags.StringVarP(&a.configPath, "config", "c", "", "YAML configuration file")
	flags.StringVar(&a.logFormat, "log-format", "text", "log format: text or json")
	flags.BoolVarP(&a.verbose, "verbose", "v", false, "debug logging")
	flags.StringVar(&a.vectors, "vectors", "", "word vector file (text, .bz2, .gz, .zst) or SQLite vector cache")
	flags.StringVar(&a.vocabulary, "vocabulary", "", "vocabulary word list")
	flags.StringVar(&a.dailyWords, "daily-words", "", "daily secret word list")
	flags.StringVar(&a.baseDate, "base-date", "", "first game day, YYYY-MM-DD")
	flags.StringVar(&a.storeKind, "store", "", "archive store: sqlite, badger or dir")
	flags.StringVar(&a.storeDSN, "dsn", "", "SQLite archive database")
	flags.StringVar(&a.storeDir, "store-dir", "", "badger or ranking file directory")

	root.AddCommand(
		newGenerateCmd(a),
		newRankCmd(a),
		newSimilarityCmd(a),
		newWordCmd(a),
		newCheckCmd(a),
		newImportCmd(a),
		newExtractCmd(a),
		newServeCmd(a),
	)
	return root
}

// Execute runs the root command until it finishes or the process is
// interrupted.
func Execute() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return NewRootCmd().ExecuteContext(ctx)
}

func (a *app) setup(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load(a.configPath)
	if err != nil {
		return err
	}
	flags := cmd.Flags()
	override := func(name string, dst *string, value string) {
		if flags.Changed(name) {
			*dst = value
		}
	}
	override("vectors", &cfg.Vectors, a.vectors)
	override("vocabulary", &cfg.Vocabulary, a.vocabulary)
	override("daily-words", &cfg.DailyWords, a.dailyWords)
	override("base-date", &cfg.BaseDate, a.baseDate)
	override("store", &cfg.Store.Kind, a.storeKind)
	override("dsn", &cfg.Store.DSN, a.storeDSN)
	override("store-dir", &cfg.Store.Dir, a.storeDir)
	if err := cfg.Validate(); err != nil {
		return err
	}
	logger, err := newLogger(cmd.ErrOrStderr(), a.logFormat, a.verbose)
	if err != nil {
		return err
	}
	a.cfg = cfg
	a.logger = logger
	return nil
}

func newLogger(w io.Writer, format string, verbose bool) (*slog.Logger, error) {
	opts := &slog.HandlerOptions{Level: slog.LevelInfo}
	if verbose {
		opts.Level = slog.LevelDebug
	}
	switch format {
	case "text", "":
		return slog.New(slog.NewTextHandler(w, opts)), nil
	case "json":
		return slog.New(slog.NewJSONHandler(w, opts)), nil
	}
	return nil, fmt.Errorf("unknown log format %q", format)
}
