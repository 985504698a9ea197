package data

import (
	"fmt"
	"math"
	"os"

	"gopkg.in/yaml.v3"
)

// SpawnEntry places enemies on the surface of a map column. Enemies appear
// when the chunk holding Column is streamed in.
type SpawnEntry struct {
	Column int     `yaml:"column"`
	Count  int     `yaml:"count"`
	Spread int     `yaml:"spread"` // random column offset, in tiles, each way
	Health float64 `yaml:"health"` // 0 = default
}

type spawnListFile struct {
	Spawns []SpawnEntry `yaml:"spawns"`
}

// SpawnTable indexes spawn entries by chunk column.
type SpawnTable struct {
	chunkSize int
	byChunk   map[int][]SpawnEntry
	total     int
}

// LoadSpawnList loads enemy spawns from a YAML file.
func LoadSpawnList(path string, chunkSize int) (*SpawnTable, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read spawn_list: %w", err)
	}
	var f spawnListFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse spawn_list: %w", err)
	}
	t := NewSpawnTable(chunkSize)
	for i, s := range f.Spawns {
		if s.Count <= 0 {
			return nil, fmt.Errorf("spawn_list entry %d: count must be positive", i)
		}
		if s.Spread < 0 {
			return nil, fmt.Errorf("spawn_list entry %d: negative spread", i)
		}
		t.Add(s)
	}
	return t, nil
}

func NewSpawnTable(chunkSize int) *SpawnTable {
	return &SpawnTable{chunkSize: chunkSize, byChunk: make(map[int][]SpawnEntry)}
}

func (t *SpawnTable) Add(s SpawnEntry) {
	c := int(math.Floor(float64(s.Column) / float64(t.chunkSize)))
	t.byChunk[c] = append(t.byChunk[c], s)
	t.total += s.Count
}

// ForChunk returns the entries whose column lies in chunk c.
func (t *SpawnTable) ForChunk(c int) []SpawnEntry {
	return t.byChunk[c]
}

// Count returns the total number of enemies across all entries.
func (t *SpawnTable) Count() int { return t.total }
