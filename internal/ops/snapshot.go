package ops

import (
	"compress/gzip"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/singhdivyam772/workflow-builder-assignment/internal/model"
	"github.com/singhdivyam772/workflow-builder-assignment/internal/storage"
)

const snapshotVersion = 1

var ErrDigestMismatch = errors.New("snapshot digest mismatch")

// Snapshot is the on-disk export format: gzip-compressed JSON.
type Snapshot struct {
	Version    int          `json:"version"`
	ExportedAt time.Time    `json:"exportedAt"`
	Digest     string       `json:"digest"`
	Tasks      []model.Task `json:"tasks"`
}

// Digest hashes the canonical encoding of tasks.
func Digest(tasks []model.Task) (string, error) {
	b, err := storage.Encode(tasks)
	if err != nil {
		return "", err
	}
	sum := sha256.Sum256(b)
	return hex.EncodeToString(sum[:]), nil
}

// Export writes everything st holds to path.
func Export(ctx context.Context, st storage.Storage, path string, now time.Time) (Snapshot, error) {
	path = filepath.Clean(strings.TrimSpace(path))
	if path == "" || path == "." {
		return Snapshot{}, fmt.Errorf("export path is required")
	}
	tasks, err := st.Load(ctx)
	if err != nil {
		return Snapshot{}, fmt.Errorf("load tasks: %w", err)
	}
	digest, err := Digest(tasks)
	if err != nil {
		return Snapshot{}, err
	}
	snap := Snapshot{
		Version:    snapshotVersion,
		ExportedAt: now.UTC(),
		Digest:     digest,
		Tasks:      tasks,
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return Snapshot{}, err
	}
	f, err := os.Create(path)
	if err != nil {
		return Snapshot{}, err
	}
	defer f.Close()

	gz := gzip.NewWriter(f)
	enc := json.NewEncoder(gz)
	enc.SetIndent("", "  ")
	if err := enc.Encode(snap); err != nil {
		_ = gz.Close()
		return Snapshot{}, err
	}
	if err := gz.Close(); err != nil {
		return Snapshot{}, err
	}
	return snap, f.Close()
}

// Read opens and verifies a snapshot without touching any storage.
func Read(path string) (Snapshot, error) {
	f, err := os.Open(filepath.Clean(strings.TrimSpace(path)))
	if err != nil {
		return Snapshot{}, err
	}
	defer f.Close()

	gz, err := gzip.NewReader(f)
	if err != nil {
		return Snapshot{}, fmt.Errorf("open snapshot: %w", err)
	}
	defer gz.Close()

	var snap Snapshot
	if err := json.NewDecoder(gz).Decode(&snap); err != nil {
		return Snapshot{}, fmt.Errorf("decode snapshot: %w", err)
	}
	if snap.Version != snapshotVersion {
		return Snapshot{}, fmt.Errorf("unsupported snapshot version %d", snap.Version)
	}
	if snap.Tasks == nil {
		snap.Tasks = []model.Task{}
	}
	digest, err := Digest(snap.Tasks)
	if err != nil {
		return Snapshot{}, err
	}
	if digest != snap.Digest {
		return Snapshot{}, fmt.Errorf("%w: file=%s computed=%s", ErrDigestMismatch, snap.Digest, digest)
	}
	return snap, nil
}

// Import replaces the contents of st with the snapshot at path.
func Import(ctx context.Context, path string, st storage.Storage) (Snapshot, error) {
	snap, err := Read(path)
	if err != nil {
		return Snapshot{}, err
	}
	if err := st.Save(ctx, snap.Tasks); err != nil {
		return Snapshot{}, fmt.Errorf("save tasks: %w", err)
	}
	return snap, nil
}

// Drill exports st into workDir, imports the result into a scratch store and
// checks both sides hash the same.
func Drill(ctx context.Context, st storage.Storage, workDir string, now time.Time) (string, string, error) {
	if err := os.MkdirAll(workDir, 0o755); err != nil {
		return "", "", err
	}
	path := filepath.Join(workDir, "workflow-drill-"+now.UTC().Format("20060102T150405Z")+".json.gz")

	snap, err := Export(ctx, st, path, now)
	if err != nil {
		return "", "", err
	}
	scratch := storage.NewMemoryStorage()
	if _, err := Import(ctx, path, scratch); err != nil {
		return path, "", err
	}
	restored, err := scratch.Load(ctx)
	if err != nil {
		return path, "", err
	}
	digest, err := Digest(restored)
	if err != nil {
		return path, "", err
	}
	if digest != snap.Digest {
		return path, digest, fmt.Errorf("%w: exported=%s restored=%s", ErrDigestMismatch, snap.Digest, digest)
	}
	return path, digest, nil
}
