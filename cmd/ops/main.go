package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/singhdivyam772/workflow-builder-assignment/internal/config"
	"github.com/singhdivyam772/workflow-builder-assignment/internal/ops"
	"github.com/singhdivyam772/workflow-builder-assignment/internal/serverapp"
	"github.com/singhdivyam772/workflow-builder-assignment/internal/storage"
)

var (
	flagConfig string

	bold   = color.New(color.Bold).SprintFunc()
	dim    = color.New(color.Faint).SprintFunc()
	green  = color.New(color.FgGreen).SprintFunc()
	red    = color.New(color.FgRed).SprintFunc()
	yellow = color.New(color.FgYellow).SprintFunc()
	cyan   = color.New(color.FgCyan).SprintFunc()
)

func main() {
	if err := rootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:          "workflow-ops",
		Short:        "Export, import and inspect stored workflow tasks",
		SilenceUsage: true,
	}
	root.PersistentFlags().StringVar(&flagConfig, "config", "workflow_config.yml", "config file")

	root.AddCommand(exportCmd())
	root.AddCommand(importCmd())
	root.AddCommand(drillCmd())
	root.AddCommand(tasksCmd())
	return root
}

// withStorage opens the configured backend for the duration of fn.
func withStorage(ctx context.Context, fn func(storage.Storage) error) error {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	st, closeStorage, err := serverapp.OpenStorage(ctx, cfg)
	if err != nil {
		return fmt.Errorf("open storage: %w", err)
	}
	defer closeStorage()
	return fn(st)
}

func exportCmd() *cobra.Command {
	var out string
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write all tasks to a gzip JSON snapshot",
		RunE: func(cmd *cobra.Command, args []string) error {
			now := time.Now()
			if out == "" {
				out = filepath.Join("backups", "workflow-"+now.UTC().Format("20060102T150405Z")+".json.gz")
			}
			return withStorage(cmd.Context(), func(st storage.Storage) error {
				snap, err := ops.Export(cmd.Context(), st, out, now)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s %s (%d tasks, digest %s)\n", green("exported"), out, len(snap.Tasks), dim(snap.Digest[:12]))
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&out, "out", "", "snapshot path (default backups/workflow-<ts>.json.gz)")
	return cmd
}

func importCmd() *cobra.Command {
	var in string
	var force bool
	cmd := &cobra.Command{
		Use:   "import",
		Short: "Replace stored tasks with a snapshot",
		RunE: func(cmd *cobra.Command, args []string) error {
			if in == "" {
				return fmt.Errorf("--in is required")
			}
			return withStorage(cmd.Context(), func(st storage.Storage) error {
				current, err := st.Load(cmd.Context())
				if err != nil {
					return err
				}
				if len(current) > 0 && !force {
					return fmt.Errorf("storage already holds %d tasks; pass --force to replace them", len(current))
				}
				snap, err := ops.Import(cmd.Context(), in, st)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s %d tasks from %s\n", green("imported"), len(snap.Tasks), in)
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&in, "in", "", "snapshot to import")
	cmd.Flags().BoolVar(&force, "force", false, "overwrite existing tasks")
	return cmd
}

func drillCmd() *cobra.Command {
	var workDir string
	cmd := &cobra.Command{
		Use:   "drill",
		Short: "Export then re-import into a scratch store and compare digests",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withStorage(cmd.Context(), func(st storage.Storage) error {
				path, digest, err := ops.Drill(cmd.Context(), st, workDir, time.Now())
				if err != nil {
					return err
				}
				w := cmd.OutOrStdout()
				fmt.Fprintln(w, "snapshot:", path)
				fmt.Fprintln(w, "digest:  ", digest)
				fmt.Fprintln(w, green("drill ok"))
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&workDir, "work-dir", os.TempDir(), "directory for drill artifacts")
	return cmd
}

func tasksCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "tasks",
		Short: "List stored tasks and how far each has progressed",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withStorage(cmd.Context(), func(st storage.Storage) error {
				tasks, err := st.Load(cmd.Context())
				if err != nil {
					return err
				}
				w := cmd.OutOrStdout()
				if len(tasks) == 0 {
					fmt.Fprintln(w, dim("no tasks stored"))
					return nil
				}
				for _, s := range ops.Summarize(tasks) {
					name := s.TaskName
					if name == "" {
						name = dim("(unnamed)")
					}
					fmt.Fprintf(w, "%s  %-24s %-14s %s\n",
						bold(fmt.Sprintf("#%-3d", s.ID)), name, s.Assignee, stageLabel(s))
				}
				return nil
			})
		},
	}
}

func stageLabel(s ops.TaskSummary) string {
	stage := s.Stage()
	switch stage {
	case "ended":
		return green(stage)
	case "started":
		return cyan(stage)
	case "rejected":
		return red(stage)
	case "approved", "awaiting approval":
		return yellow(stage)
	default:
		return dim(stage)
	}
}
