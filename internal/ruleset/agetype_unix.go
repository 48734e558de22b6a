//go:build unix && !darwin

package ruleset

// platformSupports reports whether age-type a is available on this
// platform's stat(2) result. Most unix filesystems expose mtime,
// ctime (metadata-change time, not create time — an intentionally
// platform-defined distinction, §9 Open Questions) and atime
// (meaningful only insofar as the mount isn't noatime; the tool
// checks support, not meaningfulness, per §9). Birthtime has no
// portable field on generic unix stat_t.
func platformSupports(a AgeType) bool {
	switch a {
	case MTime, CTime, ATime:
		return true
	case BirthTime:
		return false
	default:
		return false
	}
}
