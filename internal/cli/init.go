package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/arthur-debert/sfo/pkg/config"
	"github.com/arthur-debert/sfo/pkg/filesystem"
)

func newInitCmd(g *globals) *cobra.Command {
	var (
		path  string
		force bool
	)

	cmd := &cobra.Command{
		Use:     "init",
		Short:   MsgInitShort,
		Long:    MsgInitLong,
		GroupID: "core",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			r, err := g.renderer(cmd, false, false)
			if err != nil {
				return err
			}
			if path == "" {
				path = config.DefaultPath()
			}
			if err := config.WriteDefault(filesystem.NewOS(), path, force); err != nil {
				return err
			}
			return r.RenderMessage(fmt.Sprintf(MsgConfigWritten, path))
		},
	}

	cmd.Flags().StringVar(&path, "path", "", MsgFlagInitPath)
	cmd.Flags().BoolVar(&force, "force", false, MsgFlagForce)
	return cmd
}
