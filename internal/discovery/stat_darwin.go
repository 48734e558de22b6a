//go:build darwin

package discovery

import (
	"os"
	"syscall"
	"time"

	"github.com/raoulx24/retentions/internal/ruleset"
)

func ageInstant(info os.FileInfo, ageType ruleset.AgeType) time.Time {
	st, ok := info.Sys().(*syscall.Stat_t)
	if !ok {
		return info.ModTime()
	}
	switch ageType {
	case ruleset.CTime:
		return time.Unix(st.Ctimespec.Sec, st.Ctimespec.Nsec)
	case ruleset.ATime:
		return time.Unix(st.Atimespec.Sec, st.Atimespec.Nsec)
	case ruleset.BirthTime:
		return time.Unix(st.Birthtimespec.Sec, st.Birthtimespec.Nsec)
	default:
		return info.ModTime()
	}
}
