package ruleset

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/raoulx24/retentions/internal/apperr"
)

// Options is the raw, unvalidated CLI input (spec §6). Every field
// mirrors one flag; zero values mean "not supplied" except where a
// bool's zero value is meaningful (false).
type Options struct {
	Path    string
	Pattern string

	Minutes, Hours, Days, Weeks, Week13, Months, Quarters, Years int
	Last                                                         int

	MaxAge   string
	MaxFiles int
	MaxSize  string

	RegexMode string // "" (glob), "casesensitive", "ignorecase"
	AgeType   string // "" (mtime), "ctime", "atime", "birthtime"
	Protect   string

	FolderMode string // "" (disabled), "folder", "youngest-file", "oldest-file", "path=<p>"

	DeleteCompanions []string

	DryRun            bool
	ListOnly          bool
	ListOnlySet       bool
	ListSeparator     string
	Verbose           string // "" means unset
	NoLockFile        bool
	FailOnDeleteError bool
	LockMetadata      bool
}

// Validate normalises and cross-checks opts, producing an immutable
// RuleSet or a *apperr.Error of Category Config (spec stage 1, §6
// Rejections).
func Validate(opts Options) (*RuleSet, error) {
	if opts.Path == "" {
		return nil, apperr.Configf("path", "path is required")
	}
	if opts.Pattern == "" {
		return nil, apperr.Configf("pattern", "file_pattern is required")
	}

	absPath, err := filepath.Abs(opts.Path)
	if err != nil {
		return nil, apperr.Configf("path", "resolving absolute path: %v", err)
	}

	rs := &RuleSet{
		BasePath:          absPath,
		Pattern:           opts.Pattern,
		Counts:            map[Granularity]int{},
		ProtectPattern:    opts.Protect,
		DryRun:            opts.DryRun,
		ListOnly:          opts.ListOnly,
		NoLockFile:        opts.NoLockFile,
		FailOnDeleteError: opts.FailOnDeleteError,
		LockMetadata:      opts.LockMetadata,
	}

	if err := validateRegexMode(opts, rs); err != nil {
		return nil, err
	}
	if err := validateAgeType(opts, rs); err != nil {
		return nil, err
	}
	if err := validateGranularities(opts, rs); err != nil {
		return nil, err
	}
	if err := validateFilters(opts, rs); err != nil {
		return nil, err
	}
	if err := validateFolderMode(opts, rs); err != nil {
		return nil, err
	}
	if err := validateCompanions(opts, rs); err != nil {
		return nil, err
	}
	if err := validateVerbosity(opts, rs); err != nil {
		return nil, err
	}

	rs.ListSeparator = "\n"
	if opts.ListSeparator != "" {
		sep := opts.ListSeparator
		if sep == "\\0" {
			sep = "\x00"
		}
		rs.ListSeparator = sep
	}

	if rs.ListOnly && rs.Verbosity >= 2 {
		return nil, apperr.Configf("--list-only", "list-only cannot be combined with --verbose >= INFO")
	}

	if !hasAnyRetention(rs) {
		return nil, apperr.Configf("retention", "at least one retention granularity or --last is required to bound behaviour")
	}

	return rs, nil
}

func hasAnyRetention(rs *RuleSet) bool {
	if rs.Last > 0 {
		return true
	}
	for _, n := range rs.Counts {
		if n > 0 {
			return true
		}
	}
	return false
}

func validateRegexMode(opts Options, rs *RuleSet) error {
	switch opts.RegexMode {
	case "":
		rs.Regex = Glob
	case "casesensitive":
		rs.Regex = RegexCaseSensitive
	case "ignorecase":
		rs.Regex = RegexIgnoreCase
	default:
		return apperr.Configf("--regex-mode", "unknown value %q: want casesensitive or ignorecase", opts.RegexMode)
	}
	return nil
}

func validateAgeType(opts Options, rs *RuleSet) error {
	var a AgeType
	switch opts.AgeType {
	case "", "mtime":
		a = MTime
	case "ctime":
		a = CTime
	case "atime":
		a = ATime
	case "birthtime":
		a = BirthTime
	default:
		return apperr.Configf("--age-type", "unknown value %q: want mtime, ctime, atime or birthtime", opts.AgeType)
	}
	if !platformSupports(a) {
		return apperr.Configf("--age-type", "%s is not available on this platform", a)
	}
	rs.AgeType = a
	return nil
}

func validateGranularities(opts Options, rs *RuleSet) error {
	type spec struct {
		gran Granularity
		n    int
		flag string
	}
	specs := []spec{
		{Minutes, opts.Minutes, "--minutes"},
		{Hours, opts.Hours, "--hours"},
		{Days, opts.Days, "--days"},
		{Weeks, opts.Weeks, "--weeks"},
		{Week13, opts.Week13, "--week13"},
		{Month, opts.Months, "--months"},
		{Quarter, opts.Quarters, "--quarters"},
		{Years, opts.Years, "--years"},
	}
	for _, s := range specs {
		if s.n == 0 {
			continue
		}
		if s.n < 0 {
			return apperr.Configf(s.flag, "retention count must be > 0, got %d", s.n)
		}
		rs.Counts[s.gran] = s.n
	}
	if opts.Last != 0 {
		if opts.Last < 0 {
			return apperr.Configf("--last", "must be > 0, got %d", opts.Last)
		}
		rs.Last = opts.Last
	}
	return nil
}

func validateFilters(opts Options, rs *RuleSet) error {
	if opts.MaxAge != "" {
		d, err := ParseMaxAge(opts.MaxAge)
		if err != nil {
			return apperr.Configf("--max-age", "%v", err)
		}
		rs.MaxAge = d
	}
	if opts.MaxFiles != 0 {
		if opts.MaxFiles < 0 {
			return apperr.Configf("--max-files", "must be > 0, got %d", opts.MaxFiles)
		}
		rs.MaxFiles = opts.MaxFiles
	}
	if opts.MaxSize != "" {
		size, err := ParseSize(opts.MaxSize)
		if err != nil {
			return apperr.Configf("--max-size", "%v", err)
		}
		rs.MaxSize = size
	}
	return nil
}

func validateFolderMode(opts Options, rs *RuleSet) error {
	if opts.FolderMode == "" {
		return nil
	}
	rs.FolderMode = true
	switch {
	case opts.FolderMode == "folder":
		rs.FolderSource = FolderTimeSource{Kind: FolderSelf}
	case opts.FolderMode == "youngest-file":
		rs.FolderSource = FolderTimeSource{Kind: FolderYoungestFile}
	case opts.FolderMode == "oldest-file":
		rs.FolderSource = FolderTimeSource{Kind: FolderOldestFile}
	case strings.HasPrefix(opts.FolderMode, "path="):
		p := strings.TrimPrefix(opts.FolderMode, "path=")
		if p == "" {
			return apperr.Configf("--folder-mode", "path=<p> requires a non-empty path")
		}
		rs.FolderSource = FolderTimeSource{Kind: FolderPath, Path: p}
	default:
		return apperr.Configf("--folder-mode", "unknown value %q: want folder, youngest-file, oldest-file, or path=<p>", opts.FolderMode)
	}
	return nil
}

func validateCompanions(opts Options, rs *RuleSet) error {
	for _, raw := range opts.DeleteCompanions {
		rule, err := ParseCompanionRule(raw)
		if err != nil {
			return apperr.Configf("--delete-companions", "%v", err)
		}
		rs.Companions = append(rs.Companions, rule)
	}
	return nil
}

func validateVerbosity(opts Options, rs *RuleSet) error {
	if opts.Verbose == "" {
		if opts.DryRun && !opts.ListOnly {
			rs.Verbosity = 2 // dry-run implies verbose >= INFO, unless list-only
		}
		return nil
	}
	level, err := parseVerbosity(opts.Verbose)
	if err != nil {
		return apperr.Configf("--verbose", "%v", err)
	}
	rs.Verbosity = level
	return nil
}

func parseVerbosity(s string) (int, error) {
	switch s {
	case "0", "ERROR":
		return 0, nil
	case "1", "WARN":
		return 1, nil
	case "2", "INFO":
		return 2, nil
	case "3", "DEBUG":
		return 3, nil
	default:
		return 0, fmt.Errorf("invalid value %q: want 0-3 or ERROR|WARN|INFO|DEBUG", s)
	}
}
