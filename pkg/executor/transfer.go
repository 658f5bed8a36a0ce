package executor

import (
	stderrors "errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"syscall"
)

// move renames src to dst, falling back to copy and remove when the two
// are on different devices.
func (e *Executor) move(src, dst string) error {
	err := e.fs.Rename(e.path(src), e.path(dst))
	if err == nil || !stderrors.Is(err, syscall.EXDEV) {
		return err
	}

	e.logger.Debug().Str("src", src).Str("dst", dst).Msg("Cross-device move, copying instead")
	if err := e.copyFile(src, dst); err != nil {
		return err
	}
	return e.fs.Remove(e.path(src))
}

// copyFile copies content and modification time. A partial copy is removed.
func (e *Executor) copyFile(src, dst string) error {
	in, err := e.fs.Open(e.path(src))
	if err != nil {
		return err
	}
	defer func() { _ = in.Close() }()

	info, err := in.Stat()
	if err != nil {
		return err
	}

	out, err := e.fs.Create(e.path(dst))
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, in); err != nil {
		_ = out.Close()
		_ = e.fs.Remove(e.path(dst))
		return err
	}
	if err := out.Close(); err != nil {
		_ = e.fs.Remove(e.path(dst))
		return err
	}
	return e.fs.Chtimes(e.path(dst), info.ModTime(), info.ModTime())
}

func (e *Executor) exists(path string) bool {
	_, err := e.fs.Lstat(e.path(path))
	return err == nil
}

// uniqueName returns path, or the first free "stem_(i).ext" next to it.
func (e *Executor) uniqueName(path string) string {
	if !e.exists(path) {
		return path
	}
	dir, name := filepath.Split(path)
	stem, ext := splitSuffix(name)
	for i := 1; ; i++ {
		candidate := filepath.Join(dir, fmt.Sprintf("%s_(%d)%s", stem, i, ext))
		if !e.exists(candidate) {
			return candidate
		}
	}
}

// splitSuffix splits off the last extension, keeping its dot and case.
// Dotfiles and names ending in a dot have none.
func splitSuffix(name string) (stem, ext string) {
	dot := strings.LastIndex(name, ".")
	if dot <= 0 || dot == len(name)-1 {
		return name, ""
	}
	return name[:dot], name[dot:]
}

func (e *Executor) path(p string) string {
	if !e.longPaths {
		return p
	}
	return e.platform.LongPath(p)
}
