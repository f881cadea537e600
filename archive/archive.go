package archive

import (
	"archive/tar"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/jesspatton/arctree/logger"
	"github.com/jesspatton/arctree/tree"
	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zip"
	"github.com/klauspost/compress/zstd"
	"github.com/ulikunitz/xz"
)

var (
	ErrUnknownFormat = errors.New("archive: unknown format")
	ErrUnsafePath    = errors.New("archive: unsafe entry path")
)

// Format is a packaging format recognised by file name.
type Format int

const (
	Unknown Format = iota
	Zip
	Tar
	TarGzip
	TarXz
	TarZstd
)

func (f Format) String() string {
	switch f {
	case Zip:
		return "zip"
	case Tar:
		return "tar"
	case TarGzip:
		return "tar.gz"
	case TarXz:
		return "tar.xz"
	case TarZstd:
		return "tar.zst"
	default:
		return "unknown"
	}
}

// DetectFormat guesses the format from the file name.
func DetectFormat(name string) Format {
	lower := strings.ToLower(name)
	switch {
	case strings.HasSuffix(lower, ".zip"), strings.HasSuffix(lower, ".jar"):
		return Zip
	case strings.HasSuffix(lower, ".tar.gz"), strings.HasSuffix(lower, ".tgz"):
		return TarGzip
	case strings.HasSuffix(lower, ".tar.xz"), strings.HasSuffix(lower, ".txz"):
		return TarXz
	case strings.HasSuffix(lower, ".tar.zst"), strings.HasSuffix(lower, ".tzst"):
		return TarZstd
	case strings.HasSuffix(lower, ".tar"):
		return Tar
	default:
		return Unknown
	}
}

// IsArchive reports whether name has a recognised archive extension.
func IsArchive(name string) bool {
	return DetectFormat(name) != Unknown
}

// Summary describes an enumerated archive.
type Summary struct {
	Name  string
	Size  int64
	Files int
}

// Open enumerates the archive at path. Entries keep archive order.
func Open(path string) ([]tree.Entry, Summary, error) {
	format := DetectFormat(path)
	if format == Unknown {
		return nil, Summary{}, fmt.Errorf("%w: %s", ErrUnknownFormat, path)
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, Summary{}, err
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return nil, Summary{}, err
	}

	var entries []tree.Entry
	if format == Zip {
		entries, err = ReadZip(f, info.Size())
	} else {
		entries, err = readCompressedTar(format, f)
	}
	if err != nil {
		return nil, Summary{}, fmt.Errorf("read %s: %w", path, err)
	}

	summary := Summary{
		Name: filepath.Base(path),
		Size: info.Size(),
	}
	for _, e := range entries {
		if e.Type == tree.File {
			summary.Files++
		}
	}
	logger.Debugf("enumerated %d entries from %s archive %s", len(entries), format, path)
	return entries, summary, nil
}

// ReadZip enumerates a zip archive.
func ReadZip(r io.ReaderAt, size int64) ([]tree.Entry, error) {
	zr, err := zip.NewReader(r, size)
	if err != nil {
		return nil, err
	}

	var entries []tree.Entry
	for _, f := range zr.File {
		typ := tree.File
		if f.FileInfo().IsDir() || strings.HasSuffix(f.Name, "/") {
			typ = tree.Directory
		}
		segments, err := splitName(f.Name)
		if err != nil {
			return nil, err
		}
		if len(segments) == 0 {
			continue
		}
		entries = append(entries, tree.Entry{Segments: segments, Type: typ})
	}
	return entries, nil
}

// ReadTar enumerates an uncompressed tar stream. Links are listed as files,
// devices and fifos are skipped.
func ReadTar(r io.Reader) ([]tree.Entry, error) {
	tr := tar.NewReader(r)

	var entries []tree.Entry
	for {
		hdr, err := tr.Next()
		if err == io.EOF {
			return entries, nil
		}
		if err != nil {
			return nil, err
		}

		var typ tree.Type
		switch hdr.Typeflag {
		case tar.TypeDir:
			typ = tree.Directory
		case tar.TypeReg, tar.TypeSymlink, tar.TypeLink:
			typ = tree.File
		default:
			logger.Debugf("skipping tar entry %q of type %q", hdr.Name, hdr.Typeflag)
			continue
		}

		segments, err := splitName(hdr.Name)
		if err != nil {
			return nil, err
		}
		if len(segments) == 0 {
			continue
		}
		entries = append(entries, tree.Entry{Segments: segments, Type: typ})
	}
}

func readCompressedTar(format Format, r io.Reader) ([]tree.Entry, error) {
	switch format {
	case Tar:
		return ReadTar(r)
	case TarGzip:
		gz, err := gzip.NewReader(r)
		if err != nil {
			return nil, err
		}
		defer gz.Close()
		return ReadTar(gz)
	case TarXz:
		xr, err := xz.NewReader(r)
		if err != nil {
			return nil, err
		}
		return ReadTar(xr)
	case TarZstd:
		zr, err := zstd.NewReader(r)
		if err != nil {
			return nil, err
		}
		defer zr.Close()
		return ReadTar(zr)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownFormat, format)
	}
}

// splitName turns an archive member name into path segments.
func splitName(name string) ([]string, error) {
	name = strings.ReplaceAll(name, "\\", "/")
	segments := tree.SplitPath(name)

	out := segments[:0]
	for _, s := range segments {
		switch s {
		case ".":
			continue
		case "..":
			return nil, fmt.Errorf("%w: %q", ErrUnsafePath, name)
		}
		out = append(out, s)
	}
	return out, nil
}
