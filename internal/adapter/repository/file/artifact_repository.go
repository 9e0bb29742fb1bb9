// Package file stores model artifacts as gob files on the local filesystem.
package file

import (
	"bufio"
	"context"
	"encoding/gob"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/google/renameio/v2"

	"github.com/ressKim-io/iris-classifier/internal/domain/entity"
	"github.com/ressKim-io/iris-classifier/internal/domain/repository"
)

// ErrArtifactNotFound is returned by Load when no artifact exists at the configured path
var ErrArtifactNotFound = errors.New("model artifact not found")

type artifactRepository struct {
	path string
}

// NewArtifactRepository creates a repository backed by a single file at path
func NewArtifactRepository(path string) repository.ArtifactRepository {
	return &artifactRepository{path: path}
}

func (r *artifactRepository) Location() string {
	return r.path
}

func (r *artifactRepository) Save(ctx context.Context, artifact *entity.Artifact, verify repository.VerifyFunc) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if artifact == nil {
		return errors.New("artifact is nil")
	}

	dir := filepath.Dir(r.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create artifact directory: %w", err)
	}

	pf, err := renameio.NewPendingFile(r.path,
		renameio.WithTempDir(dir),
		renameio.WithPermissions(0o644),
	)
	if err != nil {
		return fmt.Errorf("failed to create pending artifact file: %w", err)
	}
	// No-op once the file has been atomically replaced.
	defer pf.Cleanup()

	w := bufio.NewWriter(pf)
	if err := gob.NewEncoder(w).Encode(artifact); err != nil {
		return fmt.Errorf("failed to encode artifact: %w", err)
	}
	if err := w.Flush(); err != nil {
		return fmt.Errorf("failed to write artifact: %w", err)
	}

	reloaded, err := decodeFile(pf.Name())
	if err != nil {
		return fmt.Errorf("failed to reload pending artifact: %w", err)
	}
	if verify != nil {
		if err := verify(reloaded); err != nil {
			return fmt.Errorf("artifact verification failed: %w", err)
		}
	}

	if err := ctx.Err(); err != nil {
		return err
	}
	if err := pf.CloseAtomicallyReplace(); err != nil {
		return fmt.Errorf("failed to commit artifact: %w", err)
	}
	return nil
}

func (r *artifactRepository) Load(ctx context.Context) (*entity.Artifact, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	artifact, err := decodeFile(r.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrArtifactNotFound, r.path)
		}
		return nil, err
	}
	return artifact, nil
}

func decodeFile(path string) (*entity.Artifact, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var artifact entity.Artifact
	if err := gob.NewDecoder(bufio.NewReader(f)).Decode(&artifact); err != nil {
		return nil, fmt.Errorf("failed to decode artifact %s: %w", path, err)
	}
	return &artifact, nil
}
