package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/kokistudios/thinkstate/internal/config"
	"github.com/kokistudios/thinkstate/internal/history"
	tsmcp "github.com/kokistudios/thinkstate/internal/mcp"
	"github.com/kokistudios/thinkstate/internal/replay"
	"github.com/kokistudios/thinkstate/internal/thinking"
	"github.com/kokistudios/thinkstate/internal/ui"
)

// Set via ldflags at build time
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func buildVersion() string {
	if commit == "none" {
		return version
	}
	return fmt.Sprintf("%s (%s, %s)", version, commit, date)
}

var noColor bool

func main() {
	rootCmd := &cobra.Command{
		Use:   "thinkstate",
		Short: "thinkstate: structured thinking over MCP",
		Long:  "An MCP stdio server that records numbered, revisable, branchable thoughts for a calling agent and reports where it is in its reasoning.",
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			ui.Init(noColor)
		},
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return serve()
		},
	}

	rootCmd.Version = buildVersion()
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "Disable colored output")

	rootCmd.AddGroup(
		&cobra.Group{ID: "core", Title: "Core Commands:"},
		&cobra.Group{ID: "config", Title: "Configuration:"},
	)

	for _, c := range []*cobra.Command{serveCmd(), guideCmd(), replayCmd()} {
		c.GroupID = "core"
		rootCmd.AddCommand(c)
	}
	for _, c := range []*cobra.Command{initCmd(), configCmd()} {
		c.GroupID = "config"
		rootCmd.AddCommand(c)
	}

	if err := rootCmd.Execute(); err != nil {
		ui.Error(err.Error())
		os.Exit(1)
	}
}

// loadConfig reads THINKSTATE_HOME, applies environment overrides and sets
// the log level.
func loadConfig() (*config.Store, error) {
	s, err := config.Load(config.Home())
	if err != nil {
		return nil, err
	}
	s.Config.ApplyEnv(nil)
	if err := ui.SetLevel(s.Config.Logging.Level); err != nil {
		return nil, err
	}
	return s, nil
}

func newHandler(cfg config.Config) *thinking.Handler {
	return thinking.NewHandler(history.New(), thinking.Options{
		Diagnostics:    os.Stderr,
		Format:         ui.ThoughtBox,
		DisableLogging: cfg.Logging.Disabled,
		Logger:         ui.Logger,
	})
}

func serve() error {
	s, err := loadConfig()
	if err != nil {
		return fmt.Errorf("startup failed: %w", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	stopSignals := history.LogSignals(ui.Logger)
	defer stopSignals()

	h := newHandler(s.Config)
	server := tsmcp.NewServer(h, tsmcp.Options{
		Name:     s.Config.Server.Name,
		Version:  version,
		ToolName: s.Config.Server.ToolName,
	})

	ui.Logger.Info("thinkstate running on stdio",
		"session", h.Store().SessionID(),
		"tool", s.Config.Server.ToolName,
		"thought_logging", !s.Config.Logging.Disabled,
	)
	if err := server.Run(ctx); err != nil && ctx.Err() == nil {
		return fmt.Errorf("server stopped: %w", err)
	}
	ui.Logger.Info("thinkstate stopped", "session", h.Store().SessionID(), "thoughts", h.Store().Len())
	return nil
}

func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the MCP server on stdio",
		Long:  "Start thinkstate as a Model Context Protocol server over stdio. Responses go to stdout; thought boxes and logs go to stderr. Running thinkstate with no subcommand does the same.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return serve()
		},
	}
}

func guideCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "guide",
		Short: "Show the cognitive state guide",
		Long:  "Render the guide that the server hands to calling agents as its tool description.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ui.CommandBanner("guide", "Cognitive State Model")
			return ui.RenderMarkdown(os.Stdout, tsmcp.Guide, noColor || os.Getenv("NO_COLOR") != "")
		},
	}
}

func replayCmd() *cobra.Command {
	var step bool
	cmd := &cobra.Command{
		Use:   "replay <file.jsonl>",
		Short: "Replay recorded tool calls",
		Long:  "Feed recorded argument objects (one JSON object per line) through a fresh session. Each response is printed to stdout and each stored thought is drawn on stderr.",
		Example: `  thinkstate replay session.jsonl
  thinkstate replay session.jsonl --step
  DISABLE_THOUGHT_LOGGING=true thinkstate replay session.jsonl`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := loadConfig()
			if err != nil {
				return err
			}
			calls, err := replay.ReadFile(args[0])
			if err != nil {
				return err
			}

			cfg := s.Config
			if step {
				// Boxes are shown by the stepper instead.
				cfg.Logging.Disabled = true
			}
			h := newHandler(cfg)

			_, sum, err := replay.Run(cmd.Context(), h, calls, os.Stdout)
			if err != nil {
				return err
			}
			ui.SectionHeader("Replay")
			ui.Detail("Calls:", fmt.Sprintf("%d", len(calls)))
			ui.Detail("Stored:", ui.Green(fmt.Sprintf("%d", sum.Accepted)))
			if sum.Rejected > 0 {
				ui.Detail("Rejected:", ui.Yellow(fmt.Sprintf("%d", sum.Rejected)))
				ui.Warning("Some calls were rejected; their error responses are on stdout.")
			}
			ui.Detail("Branches:", fmt.Sprintf("%d", len(h.Store().BranchNames())))

			if !step {
				return nil
			}
			records := h.Store().Records()
			pages := make([]string, len(records))
			for i, r := range records {
				pages[i] = ui.ThoughtBox(r)
			}
			if len(pages) == 0 {
				ui.EmptyState("No thoughts were stored.")
				return nil
			}
			return ui.StepThrough(pages)
		},
	}
	cmd.Flags().BoolVar(&step, "step", false, "Page through stored thoughts interactively")
	return cmd
}

func initCmd() *cobra.Command {
	var force bool
	cmd := &cobra.Command{
		Use:     "init",
		Short:   "Create THINKSTATE_HOME with a default config",
		Long:    "Create the THINKSTATE_HOME directory (~/.thinkstate by default) with config.yaml. The server runs without it; init is only needed to change defaults.",
		Example: "  thinkstate init\n  thinkstate init --force",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			home := config.Home()
			if err := config.Init(home, force); err != nil {
				return err
			}
			ui.Success("thinkstate initialized")
			ui.Detail("Home:", home)
			ui.Info("Edit " + ui.Bold("config.yaml") + " there or run " + ui.Dim("thinkstate config set <key> <value>") + ".")
			return nil
		},
	}
	cmd.Flags().BoolVar(&force, "force", false, "Reinitialize even if THINKSTATE_HOME already exists")
	return cmd
}

func configCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "View and edit thinkstate configuration",
	}
	cmd.AddCommand(configShowCmd())
	cmd.AddCommand(configSetCmd())
	return cmd
}

func configShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Display current effective configuration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := loadConfig()
			if err != nil {
				return err
			}
			data, err := yaml.Marshal(s.Config)
			if err != nil {
				return fmt.Errorf("failed to marshal config: %w", err)
			}
			ui.Detail("Home:", s.Home)
			if os.Getenv(config.EnvDisableThoughtLogging) != "" {
				ui.Detail("Override:", ui.Red(config.EnvDisableThoughtLogging)+" is set")
			}
			fmt.Print(string(data))
			return nil
		},
	}
}

func configSetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "set <key> <value>",
		Short: "Set a configuration value",
		Long:  "Set a thinkstate configuration value. Valid keys: logging.disabled, logging.level, server.name, server.tool_name.",
		Example: `  thinkstate config set logging.disabled true
  thinkstate config set logging.level debug
  thinkstate config set server.tool_name structured_thinking`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			// Read the file as written; environment overrides must not be saved.
			s, err := config.Load(config.Home())
			if err != nil {
				return err
			}
			if err := s.SetConfigValue(args[0], args[1]); err != nil {
				return err
			}
			ui.Success(fmt.Sprintf("Set %s = %s", args[0], args[1]))
			return nil
		},
	}
}
