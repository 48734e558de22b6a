// Package discovery implements spec stage 3: enumerating the direct
// children of a base directory that match the configured pattern and
// producing a sorted, immutable Entry list.
package discovery

import (
	"os"
	"path/filepath"
	"sort"

	"github.com/raoulx24/retentions/internal/apperr"
	"github.com/raoulx24/retentions/internal/entry"
	"github.com/raoulx24/retentions/internal/logging"
	"github.com/raoulx24/retentions/internal/ruleset"
)

// Discover enumerates the direct children of rs.BasePath, returning
// the matched entries sorted newest-first with byte-lexicographic
// tie-break on path (§4.1).
func Discover(rs *ruleset.RuleSet, log logging.Logger) ([]*entry.Entry, error) {
	info, err := os.Stat(rs.BasePath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, apperr.Configf("path", "base path does not exist: %s", rs.BasePath)
		}
		return nil, apperr.IOf("discovery", "stat base path: %v", err)
	}
	if !info.IsDir() {
		return nil, apperr.Configf("path", "base path is not a directory: %s", rs.BasePath)
	}

	children, err := os.ReadDir(rs.BasePath)
	if err != nil {
		return nil, apperr.IOf("discovery", "reading directory %s: %v", rs.BasePath, err)
	}

	m, err := newMatcher(rs)
	if err != nil {
		return nil, apperr.Configf("pattern", "%v", err)
	}

	var entries []*entry.Entry
	for _, child := range children {
		name := child.Name()

		// Skip symlinks unconditionally, silently (§4.1: neither
		// counted nor logged as candidates).
		linfo, err := os.Lstat(filepath.Join(rs.BasePath, name))
		if err != nil {
			continue
		}
		if linfo.Mode()&os.ModeSymlink != 0 {
			continue
		}

		if rs.FolderMode {
			e, ok, err := discoverFolderEntry(rs, log, name, linfo)
			if err != nil {
				return nil, err
			}
			if ok {
				entries = append(entries, e)
			}
			continue
		}

		if !linfo.Mode().IsRegular() {
			continue
		}
		if !m.match(name) {
			continue
		}

		info, err := os.Stat(filepath.Join(rs.BasePath, name))
		if err != nil {
			continue
		}
		entries = append(entries, &entry.Entry{
			Path:       filepath.Join(rs.BasePath, name),
			Kind:       entry.File,
			Size:       info.Size(),
			AgeInstant: ageInstant(info, rs.AgeType),
			Name:       name,
		})
	}

	sortEntries(entries)
	return entries, nil
}

func discoverFolderEntry(rs *ruleset.RuleSet, log logging.Logger, name string, linfo os.FileInfo) (*entry.Entry, bool, error) {
	if !linfo.IsDir() {
		return nil, false, nil
	}
	m, err := newMatcher(rs)
	if err != nil {
		return nil, false, apperr.Configf("pattern", "%v", err)
	}
	if !m.match(name) {
		return nil, false, nil
	}

	folderPath := filepath.Join(rs.BasePath, name)
	age, ok, err := folderAge(rs, log, folderPath)
	if err != nil {
		return nil, false, err
	}
	if !ok {
		return nil, false, nil
	}

	return &entry.Entry{
		Path:       folderPath,
		Kind:       entry.Folder,
		Size:       0,
		AgeInstant: age,
		Name:       name,
	}, true, nil
}

func sortEntries(entries []*entry.Entry) {
	sort.SliceStable(entries, func(i, j int) bool {
		if !entries[i].AgeInstant.Equal(entries[j].AgeInstant) {
			return entries[i].AgeInstant.After(entries[j].AgeInstant)
		}
		return entries[i].Path < entries[j].Path
	})
}
