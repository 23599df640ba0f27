package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/somdipdey/Learning-Styles/internal/analysis"
	"github.com/somdipdey/Learning-Styles/internal/clipboard"
	"github.com/somdipdey/Learning-Styles/internal/config"
	"github.com/somdipdey/Learning-Styles/internal/diagram"
	"github.com/somdipdey/Learning-Styles/internal/export"
	"github.com/somdipdey/Learning-Styles/internal/llm"
	"github.com/somdipdey/Learning-Styles/internal/logging"
	"github.com/somdipdey/Learning-Styles/internal/session"
	"github.com/somdipdey/Learning-Styles/internal/store"
)

// loadConfig resolves the configuration: file, then env, then flags.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	flags := cmd.Flags()
	path, _ := flags.GetString("config")
	if path == "" {
		path = config.DefaultPath()
	}
	cfg, err := config.Load(path)
	if err != nil {
		return nil, err
	}

	if flags.Changed("db") {
		cfg.DBPath, _ = flags.GetString("db")
	}
	if flags.Changed("questions") {
		cfg.QuestionsPath, _ = flags.GetString("questions")
	}
	if flags.Changed("out") {
		cfg.ExportDir, _ = flags.GetString("out")
	}
	if flags.Changed("debug") {
		cfg.Debug, _ = flags.GetBool("debug")
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// runtime bundles what a command needs. Close releases all of it.
type runtime struct {
	cfg    *config.Config
	logger *zap.Logger
	store  *store.Store
	fonts  *diagram.Fonts
}

// Commands declare the runtime they need through this annotation. Commands
// without it (config, version, help) run before any store is opened.
const (
	runtimeAnnotation = "lsq/runtime"
	runtimeCLI        = "cli"
	runtimeTUI        = "tui"
)

type runtimeKey struct{}

// opened is the runtime of the executing command. Execute closes it even
// when RunE fails and the post-run hooks are skipped.
var opened *runtime

// needsRuntime reports whether cmd asked for a runtime and whether it is the
// TUI flavour.
func needsRuntime(cmd *cobra.Command) (need, tui bool) {
	switch cmd.Annotations[runtimeAnnotation] {
	case runtimeCLI:
		return true, false
	case runtimeTUI:
		return true, true
	}
	return false, false
}

// setupRuntime is the root PersistentPreRunE: it opens the runtime for
// commands that declare one and stores it in the command context.
func setupRuntime(cmd *cobra.Command, _ []string) error {
	need, tui := needsRuntime(cmd)
	if !need {
		return nil
	}
	rt, err := openRuntime(cmd, tui)
	if err != nil {
		return err
	}
	opened = rt
	cmd.SetContext(context.WithValue(cmd.Context(), runtimeKey{}, rt))
	return nil
}

// teardownRuntime releases the runtime opened by setupRuntime, if any.
func teardownRuntime(*cobra.Command, []string) {
	if opened != nil {
		opened.Close()
		opened = nil
	}
}

// runtimeFrom returns the runtime opened for cmd. It panics when the command
// is missing its runtime annotation.
func runtimeFrom(cmd *cobra.Command) *runtime {
	rt, ok := cmd.Context().Value(runtimeKey{}).(*runtime)
	if !ok {
		panic(fmt.Sprintf("command %q has no runtime", cmd.CommandPath()))
	}
	return rt
}

// openRuntime loads config, builds the logger and opens the store. The
// TUI logs to a file; every other command logs warnings to stderr.
func openRuntime(cmd *cobra.Command, tui bool) (*runtime, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, err
	}

	var logger *zap.Logger
	if tui {
		logger, err = logging.New(cfg.LogPath, cfg.Debug)
	} else {
		logger, err = logging.NewCLI(cfg.Debug)
	}
	if err != nil {
		return nil, err
	}

	if err := store.EnsureDir(cfg.DBPath); err != nil {
		return nil, fmt.Errorf("create data directory: %w", err)
	}
	st, err := store.Open(cfg.DBPath)
	if err != nil {
		return nil, fmt.Errorf("open store: %w", err)
	}
	logger.Debug("store opened", zap.String("path", cfg.DBPath))

	return &runtime{cfg: cfg, logger: logger, store: st}, nil
}

func (r *runtime) Close() {
	if r.fonts != nil {
		r.fonts.Close()
	}
	if err := r.store.Close(); err != nil {
		r.logger.Warn("close store", zap.Error(err))
	}
	_ = r.logger.Sync()
}

// exporter loads the fonts on first use.
func (r *runtime) exporter() (*export.Exporter, error) {
	if r.fonts == nil {
		fonts, err := diagram.LoadFonts()
		if err != nil {
			return nil, fmt.Errorf("load fonts: %w", err)
		}
		r.fonts = fonts
	}
	return export.New(r.cfg.ExportDir, r.fonts, r.store.EventRepo(), r.logger), nil
}

// analysisService builds the AI coach. When no provider is configured the
// service is returned without one and reports itself unavailable.
func (r *runtime) analysisService(ctx context.Context) *analysis.Service {
	cfg, ok := llm.ResolveConfig()
	if !ok {
		r.logger.Debug("no LLM provider configured")
		return analysis.New(nil, 0, r.logger)
	}
	provider, err := llm.NewProvider(ctx, cfg, r.store.EventRepo(), r.logger)
	if err != nil {
		r.logger.Warn("LLM provider unavailable", zap.String("provider", cfg.Provider), zap.Error(err))
		return analysis.New(nil, 0, r.logger)
	}
	return analysis.New(provider, cfg.Timeout, r.logger)
}

// session builds the application state. Services are attached by callers
// that need them.
func (r *runtime) session(ctx context.Context) *session.State {
	return session.New(ctx, session.Options{
		QuestionsPath: r.cfg.QuestionsPath,
		Prefs:         r.store.Prefs(),
		Events:        r.store.EventRepo(),
		Logger:        r.logger,
		Theme:         r.cfg.Theme,
	})
}

// defaultClipboard writes through the OS clipboard and falls back to an
// OSC 52 escape on stderr, which stays usable while the TUI owns stdout.
func defaultClipboard() clipboard.Writer {
	return clipboard.Default(os.Stderr)
}
