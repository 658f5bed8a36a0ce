package cli

import (
	"context"
	stderrors "errors"
	"fmt"
	"io"
	"os"
	"os/signal"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/arthur-debert/sfo/internal/version"
	"github.com/arthur-debert/sfo/pkg/logging"
	"github.com/arthur-debert/sfo/pkg/ui"
)

// globals holds the persistent flags shared by every command.
type globals struct {
	verbosity int
	format    string
}

// renderer builds the output renderer for cmd from the --format flag.
// forceJSON wins over --format.
func (g *globals) renderer(cmd *cobra.Command, forceJSON, pretty bool) (ui.Renderer, error) {
	format, err := ui.ParseFormat(g.format)
	if err != nil {
		return nil, err
	}
	opts := ui.Options{}
	if forceJSON {
		format = ui.FormatJSON
		opts.CompactJSON = !pretty
	}
	return ui.NewRenderer(format, cmd.OutOrStdout(), opts)
}

// reportedError marks an error whose output was already rendered.
type reportedError struct{ error }

func (e reportedError) Unwrap() error { return e.error }

// NewRootCmd creates and returns the root command
func NewRootCmd() *cobra.Command {
	// Initialize custom template formatting functions
	initTemplateFormatting()

	g := &globals{}

	rootCmd := &cobra.Command{
		Use:     "sfo",
		Short:   MsgRootShort,
		Long:    MsgRootLong,
		Version: version.Version,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			logging.SetupLogger(g.verbosity)
			logging.LogCommand(cmd.Name(), args)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			// No subcommand: show help and fail
			_ = cmd.Help()
			return fmt.Errorf(MsgErrNoCommand)
		},
		SilenceUsage:      true,
		SilenceErrors:     true,
		DisableAutoGenTag: true,
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
	}

	// Global flags
	rootCmd.PersistentFlags().CountVarP(&g.verbosity, "verbose", "v", MsgFlagVerbose)
	rootCmd.PersistentFlags().StringVar(&g.format, "format", "auto", MsgFlagFormat)
	_ = rootCmd.RegisterFlagCompletionFunc("format", cobra.FixedCompletions(
		[]string{"auto", "term", "text", "json"}, cobra.ShellCompDirectiveNoFileComp))

	// Define command groups
	rootCmd.AddGroup(&cobra.Group{
		ID:    "core",
		Title: "COMMANDS:",
	})
	rootCmd.AddGroup(&cobra.Group{
		ID:    "misc",
		Title: "MISC:",
	})

	rootCmd.SetUsageTemplate(MsgUsageTemplate)
	rootCmd.SetVersionTemplate("{{.Version}}\n")

	rootCmd.AddCommand(newDryRunCmd(g))
	rootCmd.AddCommand(newOrganizeCmd(g))
	rootCmd.AddCommand(newUndoCmd(g))
	rootCmd.AddCommand(newRulesCmd(g))
	rootCmd.AddCommand(newInitCmd(g))
	rootCmd.AddCommand(newVersionCmd())
	rootCmd.AddCommand(newCompletionCmd())

	return rootCmd
}

// Execute runs the root command with interrupt handling and reports any
// error on stderr. It returns the process exit code.
func Execute() int {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	rootCmd := NewRootCmd()
	err := rootCmd.ExecuteContext(ctx)
	if err == nil {
		return 0
	}

	var reported reportedError
	if !stderrors.As(err, &reported) {
		reportError(os.Stderr, rootCmd, err)
	}
	log.Debug().Err(err).Msg("Command failed")
	return 1
}

// reportError renders err with the format requested on the command line,
// falling back to plain text when the flags themselves are unusable.
func reportError(w io.Writer, rootCmd *cobra.Command, err error) {
	format := ui.FormatAuto
	if f := rootCmd.PersistentFlags().Lookup("format"); f != nil {
		if parsed, perr := ui.ParseFormat(f.Value.String()); perr == nil {
			format = parsed
		}
	}
	r, rerr := ui.NewRenderer(format, w, ui.Options{})
	if rerr != nil {
		_, _ = fmt.Fprintf(w, "Error: %v\n", err)
		return
	}
	_ = r.RenderError(err)
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "version",
		Short:   MsgVersionShort,
		GroupID: "misc",
		Args:    cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), version.String())
		},
	}
}

func newCompletionCmd() *cobra.Command {
	return &cobra.Command{
		Use:                   "completion [bash|zsh|fish|powershell]",
		Short:                 MsgCompletionShort,
		Long:                  MsgCompletionLong,
		GroupID:               "misc",
		DisableFlagsInUseLine: true,
		ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
		Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			switch args[0] {
			case "bash":
				return cmd.Root().GenBashCompletion(out)
			case "zsh":
				return cmd.Root().GenZshCompletion(out)
			case "fish":
				return cmd.Root().GenFishCompletion(out, true)
			case "powershell":
				return cmd.Root().GenPowerShellCompletionWithDesc(out)
			}
			return fmt.Errorf(MsgErrUnknownShell, args[0])
		},
	}
}
