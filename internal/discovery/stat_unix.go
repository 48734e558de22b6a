//go:build unix && !darwin

package discovery

import (
	"os"
	"syscall"
	"time"

	"github.com/raoulx24/retentions/internal/ruleset"
)

// ageInstant extracts the timestamp matching ageType from info,
// falling back to ModTime for AgeTypes the platform stat struct
// doesn't expose (already rejected at config-validation time for
// anything Validate would not have allowed through).
func ageInstant(info os.FileInfo, ageType ruleset.AgeType) time.Time {
	st, ok := info.Sys().(*syscall.Stat_t)
	if !ok {
		return info.ModTime()
	}
	switch ageType {
	case ruleset.CTime:
		return time.Unix(st.Ctim.Sec, st.Ctim.Nsec)
	case ruleset.ATime:
		return time.Unix(st.Atim.Sec, st.Atim.Nsec)
	default:
		return info.ModTime()
	}
}
