package cli

import (
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/arthur-debert/sfo/pkg/config"
	"github.com/arthur-debert/sfo/pkg/errors"
	"github.com/arthur-debert/sfo/pkg/filesystem"
	"github.com/arthur-debert/sfo/pkg/planner"
	"github.com/arthur-debert/sfo/pkg/rules"
	"github.com/arthur-debert/sfo/pkg/ui/view"
)

func newRulesCmd(g *globals) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "rules",
		Short:   MsgRulesShort,
		Long:    MsgRulesLong,
		GroupID: "core",
	}
	cmd.AddCommand(newRulesValidateCmd(g))
	cmd.AddCommand(newRulesExplainCmd(g))
	cmd.AddCommand(newRulesDocsCmd(g))
	return cmd
}

func newRulesValidateCmd(g *globals) *cobra.Command {
	var (
		configPath     string
		asJSON, pretty bool
	)

	cmd := &cobra.Command{
		Use:   "validate",
		Short: MsgRulesValidateShort,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			r, err := g.renderer(cmd, asJSON, pretty)
			if err != nil {
				return err
			}

			path := configPath
			if path == "" {
				path = config.DefaultPath()
			}
			v := view.Validation{Path: view.Slash(path)}

			cfg, err := config.Load(path)
			var set rules.RuleSet
			if err == nil {
				set, err = cfg.CompileRules()
			}
			if err != nil {
				v.Error = err.Error()
				if rerr := r.RenderValidation(v); rerr != nil {
					return rerr
				}
				return reportedError{err}
			}

			v.Valid = true
			v.Rules = view.Summaries(set)
			return r.RenderValidation(v)
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "", MsgFlagConfig)
	cmd.Flags().BoolVar(&asJSON, "json", false, MsgFlagJSON)
	cmd.Flags().BoolVar(&pretty, "pretty", false, MsgFlagPretty)
	return cmd
}

func newRulesExplainCmd(g *globals) *cobra.Command {
	var (
		configPath, file, dest string
		asJSON, pretty         bool
	)

	cmd := &cobra.Command{
		Use:     "explain",
		Short:   MsgRulesExplainShort,
		Example: MsgExplainExample,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requireFlags(cmd, "file"); err != nil {
				return err
			}
			r, err := g.renderer(cmd, asJSON, pretty)
			if err != nil {
				return err
			}

			_, set, err := loadRules(configPath)
			if err != nil {
				return err
			}
			abs, err := filepath.Abs(file)
			if err != nil {
				return errors.Wrapf(err, errors.ErrInvalidInput, "cannot resolve %s", file)
			}

			p, err := planner.New(planner.Options{FS: filesystem.NewOS()})
			if err != nil {
				return err
			}
			ex, _, err := p.Explain(abs, set)
			if err != nil {
				return err
			}
			return r.RenderExplain(view.FromExplain(abs, ex, dest))
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "", MsgFlagConfig)
	cmd.Flags().StringVarP(&file, "file", "f", "", MsgFlagExplainFile)
	cmd.Flags().StringVar(&dest, "dest", "", MsgFlagExplainDest)
	cmd.Flags().BoolVar(&asJSON, "json", false, MsgFlagJSON)
	cmd.Flags().BoolVar(&pretty, "pretty", false, MsgFlagPretty)
	return cmd
}

func newRulesDocsCmd(g *globals) *cobra.Command {
	return &cobra.Command{
		Use:   "docs",
		Short: MsgRulesDocsShort,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			r, err := g.renderer(cmd, false, false)
			if err != nil {
				return err
			}
			return r.RenderDocs(rules.Reference())
		},
	}
}
