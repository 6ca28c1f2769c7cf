// Package emitter provides the driven.Emitter adapter that writes patched
// libraries to disk.
package emitter

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/custodia-labs/libpatch/internal/core/domain"
	"github.com/custodia-labs/libpatch/internal/core/ports/driven"
	"github.com/custodia-labs/libpatch/internal/logger"
)

// Ensure Emitter implements the interface.
var _ driven.Emitter = (*Emitter)(nil)

// FileMode is the permission of emitted files.
const FileMode = 0644

// Emitter writes artifacts atomically: content goes to a temporary file
// in the destination directory which is then renamed over the target, so
// an interrupted write never leaves a truncated artifact behind.
type Emitter struct {
	baseDir string
}

// New creates a new emitter. Relative artifact paths are resolved against
// baseDir; an empty baseDir means the working directory.
func New(baseDir string) *Emitter {
	return &Emitter{baseDir: baseDir}
}

// Emit writes the artifact and returns the number of bytes written.
func (e *Emitter) Emit(ctx context.Context, artifact *domain.OutputArtifact) (int64, error) {
	if artifact == nil || artifact.Document == nil || artifact.Path == "" {
		return 0, domain.ErrInvalidInput
	}
	if err := ctx.Err(); err != nil {
		return 0, err
	}

	path := artifact.Path
	if !filepath.IsAbs(path) && e.baseDir != "" {
		path = filepath.Join(e.baseDir, path)
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return 0, fmt.Errorf("create output directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return 0, fmt.Errorf("create temp file: %w", err)
	}
	tmpName := tmp.Name()
	defer func() {
		// No-op once the rename has succeeded.
		_ = os.Remove(tmpName)
	}()

	n, err := tmp.WriteString(artifact.Document.Content)
	if err != nil {
		_ = tmp.Close()
		return 0, fmt.Errorf("write %s: %w", path, err)
	}
	if err := tmp.Sync(); err != nil {
		_ = tmp.Close()
		return 0, fmt.Errorf("sync %s: %w", path, err)
	}
	if err := tmp.Close(); err != nil {
		return 0, fmt.Errorf("close %s: %w", path, err)
	}
	if err := os.Chmod(tmpName, FileMode); err != nil {
		return 0, fmt.Errorf("chmod %s: %w", path, err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		return 0, fmt.Errorf("rename %s: %w", path, err)
	}

	logger.Debug("wrote %s (%d bytes)", path, n)
	return int64(n), nil
}
