package main

import (
	"os"
	"regexp"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/raoulx24/retentions/internal/apperr"
	"github.com/raoulx24/retentions/internal/logging"
	"github.com/raoulx24/retentions/internal/ruleset"
	"github.com/raoulx24/retentions/internal/runner"
)

// version is overwritten at release-build time via -ldflags; "dev"
// covers local builds, mirroring the Python original's --version.
var version = "dev"

// cliFlags mirrors ruleset.Options one field at a time, bound directly
// to pflag variables so cobra owns argument parsing (spec.md §1: CLI
// parsing is an external collaborator, not core pipeline scope).
type cliFlags struct {
	minutes, hours, days, weeks, week13, months, quarters, years int
	last                                                         int

	maxAge   string
	maxFiles int
	maxSize  string

	regexMode string
	ageType   string
	protect   string

	folderMode string

	deleteCompanions   []string
	companionRulesFile string

	dryRun            bool
	listOnly          string
	verbose           string
	noLockFile        bool
	failOnDeleteError bool
	lockMetadata      bool
}

func (f *cliFlags) register(fs *pflag.FlagSet) {
	fs.IntVar(&f.minutes, "minutes", 0, "keep the newest representative of each of the newest N distinct minute buckets")
	fs.IntVar(&f.hours, "hours", 0, "keep the newest representative of each of the newest N distinct hour buckets")
	fs.IntVar(&f.days, "days", 0, "keep the newest representative of each of the newest N distinct day buckets")
	fs.IntVar(&f.weeks, "weeks", 0, "keep the newest representative of each of the newest N distinct ISO week buckets")
	fs.IntVar(&f.week13, "week13", 0, "keep the newest representative of each of the newest N distinct 13-week buckets")
	fs.IntVar(&f.months, "months", 0, "keep the newest representative of each of the newest N distinct month buckets")
	fs.IntVar(&f.quarters, "quarters", 0, "keep the newest representative of each of the newest N distinct quarter buckets")
	fs.IntVar(&f.years, "years", 0, "keep the newest representative of each of the newest N distinct year buckets")
	fs.IntVar(&f.last, "last", 0, "keep the newest N entries regardless of bucket")

	fs.StringVar(&f.maxAge, "max-age", "", "demote retained entries older than this duration (s|h|d|w|m|q|y)")
	fs.IntVar(&f.maxFiles, "max-files", 0, "demote the oldest retained entries beyond this count")
	fs.StringVar(&f.maxSize, "max-size", "", "demote retained entries once cumulative size exceeds this (K|M|G|T|P|E)")

	fs.StringVar(&f.regexMode, "regex-mode", "", "casesensitive|ignorecase (pattern is glob unless set)")
	fs.StringVar(&f.ageType, "age-type", "", "mtime|ctime|atime|birthtime")
	fs.StringVar(&f.protect, "protect", "", "glob pattern excluding matches from all decision logic")
	fs.StringVar(&f.folderMode, "folder-mode", "", "folder|youngest-file|oldest-file|path=<p>")
	fs.StringArrayVar(&f.deleteCompanions, "delete-companions", nil, "TYPE:MATCH:COMPANIONS companion rule (repeatable)")
	fs.StringVar(&f.companionRulesFile, "companion-rules-file", "", "YAML file listing additional companion rules")

	fs.BoolVar(&f.dryRun, "dry-run", false, "emit the decision log, perform no deletion")
	fs.StringVar(&f.listOnly, "list-only", "", "emit the prune set only, separated by [sep] (default newline)")
	fs.Lookup("list-only").NoOptDefVal = "\n"
	fs.StringVar(&f.verbose, "verbose", "", "0-3 or ERROR|WARN|INFO|DEBUG")
	fs.BoolVar(&f.noLockFile, "no-lock-file", false, "disable advisory lock acquisition")
	fs.BoolVar(&f.failOnDeleteError, "fail-on-delete-error", false, "abort on the first delete failure instead of warning")
	fs.BoolVar(&f.lockMetadata, "lock-metadata", false, "include the run ID in the lock file's diagnostic line")
}

func (f *cliFlags) toOptions(path, pattern string, listOnlySet bool) ruleset.Options {
	return ruleset.Options{
		Path:              path,
		Pattern:           pattern,
		Minutes:           f.minutes,
		Hours:             f.hours,
		Days:              f.days,
		Weeks:             f.weeks,
		Week13:            f.week13,
		Months:            f.months,
		Quarters:          f.quarters,
		Years:             f.years,
		Last:              f.last,
		MaxAge:            f.maxAge,
		MaxFiles:          f.maxFiles,
		MaxSize:           f.maxSize,
		RegexMode:         f.regexMode,
		AgeType:           f.ageType,
		Protect:           f.protect,
		FolderMode:        f.folderMode,
		DeleteCompanions:  f.deleteCompanions,
		DryRun:            f.dryRun,
		ListOnly:          listOnlySet,
		ListOnlySet:       listOnlySet,
		ListSeparator:     f.listOnly,
		Verbose:           f.verbose,
		NoLockFile:        f.noLockFile,
		FailOnDeleteError: f.failOnDeleteError,
		LockMetadata:      f.lockMetadata,
	}
}

func newRootCmd() *cobra.Command {
	flags := &cliFlags{}

	root := &cobra.Command{
		Use:           "retentions <path> <pattern>",
		Short:         "Apply backup-style retention policy to a directory's direct children",
		Version:       version,
		Args:          cobra.ExactArgs(2),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			rs, err := buildRuleSet(cmd, flags, args[0], args[1])
			if err != nil {
				return err
			}
			log := newLoggerForRuleSet(rs)
			return runner.Run(cmd.Context(), rs, log, cmd.OutOrStdout())
		},
	}

	flags.register(root.Flags())
	root.SetFlagErrorFunc(suggestOnUnknownFlag)

	root.AddCommand(newScheduleCmd())

	return root
}

func buildRuleSet(cmd *cobra.Command, flags *cliFlags, path, pattern string) (*ruleset.RuleSet, error) {
	listOnlySet := cmd.Flags().Changed("list-only")
	opts := flags.toOptions(path, pattern, listOnlySet)

	if flags.companionRulesFile != "" {
		rules, err := loadCompanionRulesFile(flags.companionRulesFile)
		if err != nil {
			return nil, err
		}
		opts.DeleteCompanions = append(opts.DeleteCompanions, rules...)
	}

	return ruleset.Validate(opts)
}

func newLoggerForRuleSet(rs *ruleset.RuleSet) logging.Logger {
	return logging.NewStdLogger(os.Stderr, logging.Level(rs.Verbosity))
}

// unknownFlagPattern extracts the offending flag name from pflag's
// "unknown flag: --foo" text. Other error shapes (including "unknown
// shorthand flag: 'f' in -foo") do not match and get no suggestion.
var unknownFlagPattern = regexp.MustCompile(`unknown flag: (--[\w-]+)`)

func suggestOnUnknownFlag(cmd *cobra.Command, err error) error {
	m := unknownFlagPattern.FindStringSubmatch(err.Error())
	if m == nil {
		return apperr.Configf("flags", "%v", err)
	}
	got := m[1]
	if suggestion := ruleset.SuggestFlag(got, ruleset.KnownFlags); suggestion != "" {
		return apperr.Configf(got, "unknown flag (did you mean %s?)", suggestion)
	}
	return apperr.Configf(got, "unknown flag")
}
