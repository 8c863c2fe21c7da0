package partcost

import (
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/rotisserie/eris"
)

// BackupTimeFormat stamps backup file names.
const BackupTimeFormat = "20060102_150405"

// CreateBackup copies path to dir/<name>_backup_<timestamp>.xlsx. A relative
// dir is resolved against the directory of path.
func CreateBackup(path, dir string, now time.Time) (string, error) {
	if dir == "" {
		dir = "backups"
	}
	if !filepath.IsAbs(dir) {
		dir = filepath.Join(filepath.Dir(path), dir)
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", eris.Wrapf(err, "failed to create backup directory %s", dir)
	}

	base := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	dst := filepath.Join(dir, base+"_backup_"+now.Format(BackupTimeFormat)+".xlsx")

	if err := copyFile(path, dst); err != nil {
		return "", eris.Wrapf(err, "failed to back up %s", path)
	}
	return dst, nil
}

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	info, err := in.Stat()
	if err != nil {
		return err
	}

	out, err := os.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, info.Mode().Perm())
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return err
	}
	if err := out.Close(); err != nil {
		return err
	}
	return os.Chtimes(dst, info.ModTime(), info.ModTime())
}
