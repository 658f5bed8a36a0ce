package cli

import (
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/arthur-debert/sfo/pkg/errors"
	"github.com/arthur-debert/sfo/pkg/executor"
	"github.com/arthur-debert/sfo/pkg/filesystem"
	"github.com/arthur-debert/sfo/pkg/logging"
	"github.com/arthur-debert/sfo/pkg/types"
	"github.com/arthur-debert/sfo/pkg/ui/view"
	"github.com/arthur-debert/sfo/pkg/winpath"
)

type organizeFlags struct {
	src, dest, configPath string
	manifest              string
	onCollision           string
	trash                 string
	copy                  bool
	workers               int
	logFile               string
}

func newOrganizeCmd(g *globals) *cobra.Command {
	var f organizeFlags

	cmd := &cobra.Command{
		Use:     "organize",
		Short:   MsgOrganizeShort,
		Long:    MsgOrganizeLong,
		Example: MsgOrganizeExample,
		GroupID: "core",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runOrganize(cmd, g, f)
		},
	}

	cmd.Flags().StringVar(&f.src, "src", "", MsgFlagSrc)
	cmd.Flags().StringVar(&f.dest, "dest", "", MsgFlagDest)
	cmd.Flags().StringVarP(&f.configPath, "config", "c", "", MsgFlagConfig)
	cmd.Flags().StringVar(&f.manifest, "manifest", executor.DefaultManifestName, MsgFlagManifest)
	cmd.Flags().StringVar(&f.onCollision, "on-collision", "", MsgFlagOnCollision)
	cmd.Flags().StringVar(&f.trash, "trash", "", MsgFlagTrash)
	cmd.Flags().BoolVar(&f.copy, "copy", false, MsgFlagCopy)
	cmd.Flags().IntVar(&f.workers, "max-workers-hashing", 0, MsgFlagWorkers)
	cmd.Flags().StringVar(&f.logFile, "log-file", "", MsgFlagLogFile)
	_ = cmd.MarkFlagDirname("src")
	_ = cmd.MarkFlagDirname("dest")
	_ = cmd.RegisterFlagCompletionFunc("on-collision", cobra.FixedCompletions(
		[]string{"skip", "overwrite", "rename"}, cobra.ShellCompDirectiveNoFileComp))

	return cmd
}

func runOrganize(cmd *cobra.Command, g *globals, f organizeFlags) error {
	if err := requireFlags(cmd, "src", "dest", "manifest"); err != nil {
		return err
	}
	r, err := g.renderer(cmd, false, false)
	if err != nil {
		return err
	}

	cfg, set, err := loadRules(f.configPath)
	if err != nil {
		return err
	}
	collision := cfg.CollisionPolicy()
	if f.onCollision != "" {
		collision = types.CollisionPolicy(f.onCollision)
		if !collision.Valid() {
			return errors.Newf(errors.ErrInvalidInput, "invalid --on-collision %q (expected skip, overwrite or rename)", f.onCollision).
				WithDetail("flag", "on-collision")
		}
	}

	fs := filesystem.NewOS()
	res, err := plan(cmd.Context(), fs, planRequest{
		cfg: cfg, set: set, src: f.src, dest: f.dest, workers: f.workers,
		skip: []string{f.trash},
	})
	if err != nil {
		return err
	}

	opts := executor.Options{
		FS:        fs,
		Collision: collision,
		TrashDir:  f.trash,
		Copy:      f.copy,
		LongPaths: winpath.Current.Windows,
	}
	if f.logFile != "" {
		actionLog, closer, err := logging.OpenJSONLinesLog(f.logFile)
		if err != nil {
			return errors.Wrapf(err, errors.ErrFileWrite, "cannot open log file %s", f.logFile).
				WithDetail("path", f.logFile)
		}
		defer func() { _ = closer.Close() }()
		opts.ActionLog = &actionLog
	}

	result, runErr := executor.New(opts).Organize(cmd.Context(), res.Plan)

	// The manifest is written even for an interrupted run so it can be undone.
	if err := executor.WriteManifest(fs, f.manifest, result.Manifest); err != nil {
		if runErr != nil {
			log.Error().Err(err).Str("path", f.manifest).Msg("Failed to write manifest")
			return runErr
		}
		return err
	}

	if err := r.RenderOrganize(view.FromOrganize(result, f.manifest)); err != nil {
		return err
	}
	if runErr != nil {
		return runErr
	}

	logFailures(result)
	return nil
}

func logFailures(result types.OrganizeResult) {
	failed := result.Failed()
	if len(failed) == 0 {
		return
	}
	log.Warn().Int("failed", len(failed)).Msg("Some files could not be organized, see the manifest")
}
