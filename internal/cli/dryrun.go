package cli

import (
	"github.com/spf13/cobra"

	"github.com/arthur-debert/sfo/pkg/filesystem"
	"github.com/arthur-debert/sfo/pkg/ui/view"
)

func newDryRunCmd(g *globals) *cobra.Command {
	var (
		src, dest, configPath string
		asJSON, pretty        bool
		workers               int
	)

	cmd := &cobra.Command{
		Use:     "dry-run",
		Short:   MsgDryRunShort,
		Long:    MsgDryRunLong,
		Example: MsgDryRunExample,
		GroupID: "core",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requireFlags(cmd, "src", "dest"); err != nil {
				return err
			}
			r, err := g.renderer(cmd, asJSON, pretty)
			if err != nil {
				return err
			}

			cfg, set, err := loadRules(configPath)
			if err != nil {
				return err
			}
			res, err := plan(cmd.Context(), filesystem.NewOS(), planRequest{
				cfg: cfg, set: set, src: src, dest: dest, workers: workers,
			})
			if err != nil {
				return err
			}
			return r.RenderPlan(view.FromPlan(res.Plan, res.Vanished))
		},
	}

	cmd.Flags().StringVar(&src, "src", "", MsgFlagSrc)
	cmd.Flags().StringVar(&dest, "dest", "", MsgFlagDest)
	cmd.Flags().StringVarP(&configPath, "config", "c", "", MsgFlagConfig)
	cmd.Flags().BoolVar(&asJSON, "json", false, MsgFlagJSON)
	cmd.Flags().BoolVar(&pretty, "pretty", false, MsgFlagPretty)
	cmd.Flags().IntVar(&workers, "max-workers-hashing", 0, MsgFlagWorkers)
	_ = cmd.MarkFlagDirname("src")
	_ = cmd.MarkFlagDirname("dest")

	return cmd
}
