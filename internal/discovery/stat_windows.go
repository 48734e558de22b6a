//go:build windows

package discovery

import (
	"os"
	"syscall"
	"time"

	"github.com/raoulx24/retentions/internal/ruleset"
)

func ageInstant(info os.FileInfo, ageType ruleset.AgeType) time.Time {
	st, ok := info.Sys().(*syscall.Win32FileAttributeData)
	if !ok {
		return info.ModTime()
	}
	switch ageType {
	case ruleset.ATime:
		return time.Unix(0, st.LastAccessTime.Nanoseconds())
	case ruleset.BirthTime:
		return time.Unix(0, st.CreationTime.Nanoseconds())
	default:
		return info.ModTime()
	}
}
