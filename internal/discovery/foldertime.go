package discovery

import (
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/raoulx24/retentions/internal/apperr"
	"github.com/raoulx24/retentions/internal/logging"
	"github.com/raoulx24/retentions/internal/ruleset"
)

// folderAge derives one timestamp for folderPath per the configured
// folder-time source (§3 Entry.age_instant, §4.1, §9 "Folder-mode
// recursion"). The bool return is false when the folder is omitted
// (empty folder in youngest-/oldest-file mode, after a warning is
// logged).
func folderAge(rs *ruleset.RuleSet, log logging.Logger, folderPath string) (time.Time, bool, error) {
	switch rs.FolderSource.Kind {
	case ruleset.FolderSelf:
		info, err := os.Stat(folderPath)
		if err != nil {
			return time.Time{}, false, apperr.IOf("discovery", "stat folder %s: %v", folderPath, err)
		}
		return ageInstant(info, rs.AgeType), true, nil

	case ruleset.FolderYoungestFile, ruleset.FolderOldestFile:
		youngest := rs.FolderSource.Kind == ruleset.FolderYoungestFile
		t, found, err := scanExtremumTime(folderPath, rs.AgeType, youngest)
		if err != nil {
			return time.Time{}, false, err
		}
		if !found {
			log.Warn("folder %s is empty in %s mode, omitting", folderPath, folderSourceName(rs.FolderSource.Kind))
			return time.Time{}, false, nil
		}
		return t, true, nil

	case ruleset.FolderPath:
		return resolveFolderPathTime(rs, folderPath)

	default:
		return time.Time{}, false, apperr.Unexpectedf("discovery", "unknown folder time source")
	}
}

func folderSourceName(k ruleset.FolderTimeSourceKind) string {
	if k == ruleset.FolderYoungestFile {
		return "youngest-file"
	}
	return "oldest-file"
}

// scanExtremumTime performs the only recursive walk in the pipeline
// (§9): a pure reduction from a directory subtree to a single
// timestamp, following no symlinks and with no decision side effects.
func scanExtremumTime(root string, ageType ruleset.AgeType, youngest bool) (time.Time, bool, error) {
	var best time.Time
	found := false

	err := filepath.WalkDir(root, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		info, err := d.Info()
		if err != nil {
			return nil
		}
		if info.Mode()&os.ModeSymlink != 0 {
			return nil
		}
		t := ageInstant(info, ageType)
		if !found {
			best = t
			found = true
			return nil
		}
		if youngest && t.After(best) {
			best = t
		} else if !youngest && t.Before(best) {
			best = t
		}
		return nil
	})
	if err != nil {
		return time.Time{}, false, apperr.IOf("discovery", "scanning folder %s: %v", root, err)
	}
	return best, found, nil
}

// resolveFolderPathTime resolves the path=<p> folder-mode source: <p>
// must canonicalise to a regular file strictly inside folderPath.
func resolveFolderPathTime(rs *ruleset.RuleSet, folderPath string) (time.Time, bool, error) {
	candidate := rs.FolderSource.Path
	if !filepath.IsAbs(candidate) {
		candidate = filepath.Join(folderPath, candidate)
	}

	resolved, err := filepath.EvalSymlinks(candidate)
	if err != nil {
		return time.Time{}, false, apperr.Configf("--folder-mode", "path=%s: %v", rs.FolderSource.Path, err)
	}
	resolvedFolder, err := filepath.EvalSymlinks(folderPath)
	if err != nil {
		return time.Time{}, false, apperr.IOf("discovery", "resolving folder %s: %v", folderPath, err)
	}

	rel, err := filepath.Rel(resolvedFolder, resolved)
	if err != nil || rel == "." || strings.HasPrefix(rel, "..") {
		return time.Time{}, false, apperr.Configf("--folder-mode", "path=%s does not lie inside folder %s", rs.FolderSource.Path, folderPath)
	}

	info, err := os.Stat(resolved)
	if err != nil {
		return time.Time{}, false, apperr.Configf("--folder-mode", "path=%s: %v", rs.FolderSource.Path, err)
	}
	if !info.Mode().IsRegular() {
		return time.Time{}, false, apperr.Configf("--folder-mode", "path=%s is not a regular file", rs.FolderSource.Path)
	}

	return ageInstant(info, rs.AgeType), true, nil
}
