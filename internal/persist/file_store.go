package persist

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/text/unicode/norm"
)

const saveExt = ".json"

// FileStore keeps one JSON file per world in a directory.
type FileStore struct {
	dir string
	log *zap.Logger
}

func NewFileStore(dir string, log *zap.Logger) (*FileStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create save dir %s: %w", dir, err)
	}
	return &FileStore{dir: dir, log: log}, nil
}

var nameReplacer = strings.NewReplacer("/", "_", "\\", "_", ":", "_", "\x00", "_")

// FileName maps a world name to its file name. Names are NFC-normalized so
// visually identical names share a file.
func FileName(name string) string {
	n := nameReplacer.Replace(norm.NFC.String(strings.TrimSpace(name)))
	if n == "" || strings.HasPrefix(n, ".") {
		n = "_" + n
	}
	return n + saveExt
}

func (s *FileStore) path(name string) string {
	return filepath.Join(s.dir, FileName(name))
}

// Save writes the world atomically: a temp file in the same directory is
// renamed over the old save.
func (s *FileStore) Save(ctx context.Context, name string, sd *SaveData) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	data, err := Encode(sd)
	if err != nil {
		return fmt.Errorf("encode world %s: %w", name, err)
	}

	tmp, err := os.CreateTemp(s.dir, ".save-*")
	if err != nil {
		return fmt.Errorf("save world %s: %w", name, err)
	}
	defer os.Remove(tmp.Name()) // no-op after a successful rename

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("save world %s: %w", name, err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return fmt.Errorf("save world %s: %w", name, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("save world %s: %w", name, err)
	}
	if err := os.Rename(tmp.Name(), s.path(name)); err != nil {
		return fmt.Errorf("save world %s: %w", name, err)
	}
	s.log.Info("world saved", zap.String("world", name), zap.Int("bytes", len(data)))
	return nil
}

func (s *FileStore) Load(ctx context.Context, name string) (*SaveData, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	data, err := os.ReadFile(s.path(name))
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load world %s: %w", name, err)
	}
	sd, err := Decode(data)
	if err != nil {
		s.log.Warn("ignoring unreadable save", zap.String("world", name), zap.Error(err))
		return nil, nil
	}
	return sd, nil
}

// List returns the saved world file names without extension, sorted.
func (s *FileStore) List(ctx context.Context) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return nil, fmt.Errorf("list saves: %w", err)
	}
	var names []string
	for _, e := range entries {
		n := e.Name()
		if e.IsDir() || strings.HasPrefix(n, ".") || filepath.Ext(n) != saveExt {
			continue
		}
		names = append(names, strings.TrimSuffix(n, saveExt))
	}
	sort.Strings(names)
	return names, nil
}
