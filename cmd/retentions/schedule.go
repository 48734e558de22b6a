package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/raoulx24/retentions/internal/apperr"
	"github.com/raoulx24/retentions/internal/config"
	"github.com/raoulx24/retentions/internal/ruleset"
	"github.com/raoulx24/retentions/internal/runner"
	"github.com/raoulx24/retentions/internal/schedule"
)

// newScheduleCmd builds the `retentions schedule` subcommand: either a
// single target given as <path> <pattern> --cron, or several targets
// loaded from --config (see SPEC_FULL.md's promotion of the teacher's
// unused RetentionRule.Cron field and its config-file loading idiom).
func newScheduleCmd() *cobra.Command {
	flags := &cliFlags{}
	var cronSpec string
	var configPath string

	cmd := &cobra.Command{
		Use:           "schedule [path] [pattern]",
		Short:         "Run the retention pipeline repeatedly on a cron expression",
		SilenceUsage:  true,
		SilenceErrors: true,
		Args: func(cmd *cobra.Command, args []string) error {
			if configPath != "" {
				return cobra.NoArgs(cmd, args)
			}
			return cobra.ExactArgs(2)(cmd, args)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			log := newLoggerForRuleSet(&ruleset.RuleSet{Verbosity: 2})
			sched := schedule.New(log)

			if configPath != "" {
				if err := addConfigTargets(sched, configPath); err != nil {
					return err
				}
			} else {
				if cronSpec == "" {
					return apperr.Configf("--cron", "required unless --config is set")
				}
				rs, err := buildRuleSet(cmd, flags, args[0], args[1])
				if err != nil {
					return err
				}
				runLog := newLoggerForRuleSet(rs)
				if _, err := sched.AddJob(cronSpec, rs.BasePath+" "+rs.Pattern, func(ctx context.Context) error {
					return runner.Run(ctx, rs, runLog, cmd.OutOrStdout())
				}); err != nil {
					return apperr.Configf("--cron", "invalid cron expression %q: %v", cronSpec, err)
				}
			}

			ctx, cancel := context.WithCancel(cmd.Context())
			defer cancel()
			go func() {
				sigCh := make(chan os.Signal, 1)
				signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
				<-sigCh
				log.Info("schedule: shutting down")
				cancel()
			}()

			sched.Run(ctx)
			return nil
		},
	}

	flags.register(cmd.Flags())
	cmd.Flags().StringVar(&cronSpec, "cron", "", "five-field cron expression triggering each run")
	cmd.Flags().StringVar(&configPath, "config", "", "YAML file listing several scheduled targets instead of one path/pattern/--cron")

	return cmd
}

// addConfigTargets loads configPath and registers one cron job per
// target, each with its own validated rule set and logger.
func addConfigTargets(sched *schedule.Scheduler, configPath string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return apperr.Configf("--config", "%v", err)
	}
	for _, t := range cfg.Targets {
		rs, err := ruleset.Validate(targetToOptions(t))
		if err != nil {
			label := t.Name
			if label == "" {
				label = fmt.Sprintf("%s %s", t.Path, t.Pattern)
			}
			return apperr.Configf("--config", "target %q: %v", label, err)
		}
		log := newLoggerForRuleSet(rs)
		if _, err := sched.AddJob(t.Cron, rs.BasePath+" "+rs.Pattern, func(ctx context.Context) error {
			return runner.Run(ctx, rs, log, os.Stdout)
		}); err != nil {
			return apperr.Configf("--config", "target %q: invalid cron expression %q: %v", t.Name, t.Cron, err)
		}
	}
	return nil
}

func targetToOptions(t config.Target) ruleset.Options {
	return ruleset.Options{
		Path:              t.Path,
		Pattern:           t.Pattern,
		Minutes:           t.Minutes,
		Hours:             t.Hours,
		Days:              t.Days,
		Weeks:             t.Weeks,
		Week13:            t.Week13,
		Months:            t.Months,
		Quarters:          t.Quarters,
		Years:             t.Years,
		Last:              t.Last,
		MaxAge:            t.MaxAge,
		MaxFiles:          t.MaxFiles,
		MaxSize:           t.MaxSize,
		RegexMode:         t.RegexMode,
		AgeType:           t.AgeType,
		Protect:           t.Protect,
		FolderMode:        t.FolderMode,
		DeleteCompanions:  t.DeleteCompanions,
		DryRun:            t.DryRun,
		NoLockFile:        t.NoLockFile,
		FailOnDeleteError: t.FailOnDeleteError,
		LockMetadata:      t.LockMetadata,
	}
}
