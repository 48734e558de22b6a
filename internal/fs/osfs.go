package fs

import (
	"context"
	"os"
)

// OSFS is the concrete FS implementation backed by the local
// filesystem, used by the execution stage (§4.7) to delete entries.
type OSFS struct{}

func New() *OSFS {
	return &OSFS{}
}

func (o *OSFS) Stat(path string) (FileInfo, error) {
	st, err := os.Stat(path)
	if err != nil {
		return FileInfo{}, err
	}
	return toFileInfo(path, st), nil
}

func (o *OSFS) Lstat(path string) (FileInfo, error) {
	st, err := os.Lstat(path)
	if err != nil {
		return FileInfo{}, err
	}
	return toFileInfo(path, st), nil
}

func toFileInfo(path string, st os.FileInfo) FileInfo {
	return FileInfo{
		Path:    path,
		Size:    st.Size(),
		MTime:   st.ModTime(),
		IsDir:   st.IsDir(),
		IsLink:  st.Mode()&os.ModeSymlink != 0,
		Regular: st.Mode().IsRegular(),
	}
}

func (o *OSFS) MkdirAll(path string) error {
	return os.MkdirAll(path, 0o755)
}

func (o *OSFS) RemoveAll(path string) error {
	return os.RemoveAll(path)
}

func (o *OSFS) Remove(ctx context.Context, path string) error {
	return removeWithRetry(ctx, path)
}
