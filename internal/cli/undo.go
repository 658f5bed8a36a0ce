package cli

import (
	"github.com/spf13/cobra"

	"github.com/arthur-debert/sfo/pkg/executor"
	"github.com/arthur-debert/sfo/pkg/filesystem"
	"github.com/arthur-debert/sfo/pkg/ui/view"
	"github.com/arthur-debert/sfo/pkg/winpath"
)

func newUndoCmd(g *globals) *cobra.Command {
	var manifest string

	cmd := &cobra.Command{
		Use:     "undo",
		Short:   MsgUndoShort,
		Long:    MsgUndoLong,
		GroupID: "core",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requireFlags(cmd, "manifest"); err != nil {
				return err
			}
			r, err := g.renderer(cmd, false, false)
			if err != nil {
				return err
			}

			fs := filesystem.NewOS()
			records, err := executor.ReadManifest(fs, manifest)
			if err != nil {
				return err
			}

			ex := executor.New(executor.Options{FS: fs, LongPaths: winpath.Current.Windows})
			result, undoErr := ex.Undo(cmd.Context(), records)
			if err := r.RenderUndo(view.FromUndo(result)); err != nil {
				return err
			}
			return undoErr
		},
	}

	cmd.Flags().StringVar(&manifest, "manifest", executor.DefaultManifestName, MsgFlagManifest)
	return cmd
}
