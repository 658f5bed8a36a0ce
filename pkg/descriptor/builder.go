package descriptor

import (
	stderrors "errors"
	"io/fs"
	"path/filepath"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/arthur-debert/sfo/pkg/errors"
	"github.com/arthur-debert/sfo/pkg/internal/hashutil"
	"github.com/arthur-debert/sfo/pkg/logging"
	"github.com/arthur-debert/sfo/pkg/types"
)

// Options configures a Builder
type Options struct {
	FS     types.FS
	Dates  DateExtractor
	Logger *zerolog.Logger
}

// Builder turns paths into FileDescriptors
type Builder struct {
	fs     types.FS
	dates  DateExtractor
	hashes *HashCache
	logger zerolog.Logger
}

// New creates a Builder. A nil FS is an error; a nil DateExtractor uses the
// EXIF/XMP extractor.
func New(opts Options) (*Builder, error) {
	if opts.FS == nil {
		return nil, errors.New(errors.ErrInvalidInput, "descriptor builder requires a filesystem")
	}

	logger := logging.GetLogger("descriptor")
	if opts.Logger != nil {
		logger = *opts.Logger
	}

	dates := opts.Dates
	if dates == nil {
		dates = NewPhotoDateExtractor()
	}

	return &Builder{
		fs:     opts.FS,
		dates:  dates,
		hashes: NewHashCache(),
		logger: logger,
	}, nil
}

// Build reads the metadata of path. The content hash is computed only when
// needsHash is set.
func (b *Builder) Build(path string, needsHash bool) (types.FileDescriptor, error) {
	if !filepath.IsAbs(path) {
		abs, err := filepath.Abs(path)
		if err != nil {
			return types.FileDescriptor{}, errors.Wrapf(err, errors.ErrFileAccess, "cannot resolve %s", path).
				WithDetail("path", path)
		}
		path = abs
	}

	info, err := b.fs.Stat(path)
	if err != nil {
		return types.FileDescriptor{}, ioError(err, path, "cannot stat file")
	}
	if info.IsDir() {
		return types.FileDescriptor{}, errors.Newf(errors.ErrInvalidInput, "%s is a directory", path).
			WithDetail("path", path)
	}

	base, ext := SplitName(filepath.Base(path))
	d := types.FileDescriptor{
		Path:      path,
		BaseName:  base,
		Extension: ext,
		ModTime:   info.ModTime().Local().Truncate(time.Second),
	}

	if needsHash {
		sum, err := b.Hash(path)
		if err != nil {
			return types.FileDescriptor{}, err
		}
		d.ContentHash = sum
	}

	if SupportsCaptureDate(ext) {
		captured, err := b.dates.CapturedDate(b.fs, path)
		if err != nil {
			b.logger.Debug().Err(err).Str("path", path).Msg("No capture date, using modification time")
		} else {
			d.CapturedDate = &captured
		}
	}

	return d, nil
}

// Hash returns the cached content hash of path, computing it on first use.
func (b *Builder) Hash(path string) (string, error) {
	if sum, ok := b.hashes.Get(path); ok {
		return sum, nil
	}
	sum, err := hashutil.FileChecksum(b.fs, path)
	if err != nil {
		return "", ioError(err, path, "cannot hash file")
	}
	b.hashes.Put(path, sum)
	b.logger.Trace().Str("path", path).Str("hash", sum).Msg("Hashed file")
	return sum, nil
}

// SplitName splits a file name into base name and lowercase extension
// without the dot. Dotfiles such as ".bashrc" have no extension.
func SplitName(name string) (base, ext string) {
	dot := strings.LastIndex(name, ".")
	if dot <= 0 || dot == len(name)-1 {
		return name, ""
	}
	return name[:dot], strings.ToLower(name[dot+1:])
}

func ioError(err error, path, msg string) error {
	code := errors.ErrFileAccess
	if stderrors.Is(err, fs.ErrNotExist) {
		code = errors.ErrFileNotFound
	}
	return errors.Wrap(err, code, msg).WithDetail("path", path)
}
