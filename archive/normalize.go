package archive

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	. "boreas/helper"

	"github.com/klauspost/compress/zip"
)

// DataSuffix is the extension of the data file expected inside a
// projection archive.
const DataSuffix = ".nc"

// ErrNoDataMember reports an archive with no .nc member inside.
var ErrNoDataMember = errors.New("archive: no .nc member found")

// Normalize extracts the first .nc member of the zip at archivePath and
// moves it onto targetPath. On success the archive is deleted; on any
// failure the scratch file is removed and the archive left in place for
// inspection.
func Normalize(archivePath, targetPath string) error {
	reader, err := zip.OpenReader(archivePath)
	if err != nil {
		return fmt.Errorf("[ZIP] opening %s: %w", archivePath, err)
	}

	var member *zip.File
	for _, f := range reader.File {
		if strings.HasSuffix(f.Name, DataSuffix) {
			member = f
			break
		}
	}
	if member == nil {
		reader.Close()
		return fmt.Errorf("%w: %s", ErrNoDataMember, archivePath)
	}

	err = extract(member, targetPath)
	reader.Close()
	if err != nil {
		return err
	}

	if err := os.Remove(archivePath); err != nil {
		return fmt.Errorf("[ZIP] removing archive: %w", err)
	}

	Log.Info().Msgf("[ZIP] %s -> %s", member.Name, targetPath)

	return nil
}

func extract(member *zip.File, targetPath string) error {
	src, err := member.Open()
	if err != nil {
		return fmt.Errorf("[ZIP] opening member %s: %w", member.Name, err)
	}
	defer src.Close()

	tmp, err := os.CreateTemp(filepath.Dir(targetPath), filepath.Base(targetPath)+".extract")
	if err != nil {
		return fmt.Errorf("[ZIP] creating scratch file: %w", err)
	}

	if _, err := io.Copy(tmp, src); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("[ZIP] extracting %s: %w", member.Name, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("[ZIP] closing scratch file: %w", err)
	}

	if err := os.Rename(tmp.Name(), targetPath); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("[ZIP] moving into place: %w", err)
	}

	return nil
}
