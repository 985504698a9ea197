package persist

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"go.uber.org/zap"
)

func sampleSave() *SaveData {
	return &SaveData{
		MapData: [][]int{
			{0, 0, 0, 0},
			{0, 4, 0, 0},
			{1, 1, 1, 1},
			{3, 3, 3, 3},
		},
		PlayerPos: [2]int{40, 0},
	}
}

func newFileStore(t *testing.T) *FileStore {
	t.Helper()
	s, err := NewFileStore(t.TempDir(), zap.NewNop())
	if err != nil {
		t.Fatal(err)
	}
	return s
}

func TestFileStoreRoundTrip(t *testing.T) {
	ctx := context.Background()
	s := newFileStore(t)
	want := sampleSave()
	if err := s.Save(ctx, "home", want); err != nil {
		t.Fatal(err)
	}
	got, err := s.Load(ctx, "home")
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Load() = %+v, want %+v", got, want)
	}

	entries, _ := os.ReadDir(s.dir)
	if len(entries) != 1 {
		t.Errorf("save dir holds %d entries, want only the save file", len(entries))
	}
}

func TestFileStoreMissingAndCorrupt(t *testing.T) {
	ctx := context.Background()
	s := newFileStore(t)

	if got, err := s.Load(ctx, "nowhere"); got != nil || err != nil {
		t.Errorf("missing world: %v, %v", got, err)
	}

	tests := map[string]string{
		"garbage": "{not json",
		"ragged":  `{"map_data": [[0, 1], [1]], "player_pos": [0, 0]}`,
		"code":    `{"map_data": [[0, 9]], "player_pos": [0, 0]}`,
		"empty":   `{"map_data": [], "player_pos": [0, 0]}`,
	}
	for name, body := range tests {
		if err := os.WriteFile(s.path(name), []byte(body), 0o644); err != nil {
			t.Fatal(err)
		}
		if got, err := s.Load(ctx, name); got != nil || err != nil {
			t.Errorf("%s: Load() = %v, %v, want nil, nil", name, got, err)
		}
	}
}

func TestFileStoreList(t *testing.T) {
	ctx := context.Background()
	s := newFileStore(t)
	for _, n := range []string{"beta", "alpha"} {
		if err := s.Save(ctx, n, sampleSave()); err != nil {
			t.Fatal(err)
		}
	}
	os.WriteFile(filepath.Join(s.dir, "notes.txt"), []byte("x"), 0o644)

	got, err := s.List(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if want := []string{"alpha", "beta"}; !reflect.DeepEqual(got, want) {
		t.Errorf("List() = %v, want %v", got, want)
	}
}

func TestFileStoreHonorsContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	s := newFileStore(t)
	if err := s.Save(ctx, "w", sampleSave()); !errors.Is(err, context.Canceled) {
		t.Errorf("Save() error = %v, want canceled", err)
	}
}

func TestFileName(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"world", "world.json"},
		{"a/b", "a_b.json"},
		{"..", "_...json"},
		{"  padded ", "padded.json"},
		{"cafe\u0301", "caf\u00e9.json"},
	}
	for _, tt := range tests {
		if got := FileName(tt.in); got != tt.want {
			t.Errorf("FileName(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestDecodeErrors(t *testing.T) {
	for _, doc := range []string{
		`{"map_data": [[7]]}`,
		`{"map_data": [[0, 259]]}`,
		`{"map_data": [[256, 1]]}`,
	} {
		if _, err := Decode([]byte(doc)); !errors.Is(err, ErrCorruptSave) {
			t.Errorf("Decode(%s) error = %v, want ErrCorruptSave", doc, err)
		}
	}
}

func TestMapChecksumStable(t *testing.T) {
	a, _ := mapChecksum(sampleSave().MapData)
	b, _ := mapChecksum(sampleSave().MapData)
	if len(a) != 32 || !reflect.DeepEqual(a, b) {
		t.Errorf("checksum unstable or wrong size: %x %x", a, b)
	}
	changed := sampleSave()
	changed.MapData[0][0] = 1
	c, _ := mapChecksum(changed.MapData)
	if reflect.DeepEqual(a, c) {
		t.Error("checksum ignores terrain changes")
	}
}
