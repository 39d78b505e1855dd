package ui

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"

	"quickchat/internal/domain"
)

// PathPicker "picks" the image at a path given on the command line. A blank,
// missing or non-regular path counts as a cancelled pick.
type PathPicker struct {
	Path string
	Log  *slog.Logger
}

func (p PathPicker) PickImage(_ context.Context) (domain.FileRef, bool) {
	if p.Path == "" {
		return domain.FileRef{}, false
	}
	abs, err := filepath.Abs(p.Path)
	if err != nil {
		p.logf("image picker error", err)
		return domain.FileRef{}, false
	}
	info, err := os.Stat(abs)
	if err != nil {
		p.logf("image picker error", err)
		return domain.FileRef{}, false
	}
	if !info.Mode().IsRegular() {
		p.logf("image picker: not a regular file", nil)
		return domain.FileRef{}, false
	}
	return domain.FileRef{URI: "file://" + filepath.ToSlash(abs), Name: filepath.Base(abs)}, true
}

func (p PathPicker) logf(msg string, err error) {
	if p.Log == nil {
		return
	}
	p.Log.Debug(msg, "path", p.Path, "err", err)
}

var _ domain.ImagePicker = PathPicker{}
