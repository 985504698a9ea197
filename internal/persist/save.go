package persist

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/blockyworld/blocky/internal/tile"
	"golang.org/x/crypto/blake2b"
)

// SaveData is the persisted world: terrain rows plus the player's top-left
// pixel position. Grass is never written; it flattens to dirt.
type SaveData struct {
	MapData   [][]int `json:"map_data" jsonschema:"title=Terrain rows,description=Row-major tile codes (0 air 1 dirt 3 stone 4 wood 5 leaf),minItems=1"`
	PlayerPos [2]int  `json:"player_pos" jsonschema:"title=Player position,description=Top-left corner of the player in pixels"`
}

var ErrCorruptSave = errors.New("corrupt save")

// Validate checks the row shape and tile codes.
func (s *SaveData) Validate() error {
	if _, err := tile.FromRows(s.MapData); err != nil {
		return fmt.Errorf("%w: %v", ErrCorruptSave, err)
	}
	return nil
}

// RawMap converts the saved rows into an immutable terrain map.
func (s *SaveData) RawMap() (*tile.RawMap, error) {
	m, err := tile.FromRows(s.MapData)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorruptSave, err)
	}
	return m, nil
}

// Decode parses and validates a JSON save.
func Decode(data []byte) (*SaveData, error) {
	var s SaveData
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorruptSave, err)
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return &s, nil
}

func Encode(s *SaveData) ([]byte, error) {
	return json.Marshal(s)
}

// mapChecksum hashes the compact JSON encoding of the terrain rows.
func mapChecksum(rows [][]int) ([]byte, error) {
	b, err := json.Marshal(rows)
	if err != nil {
		return nil, err
	}
	sum := blake2b.Sum256(b)
	return sum[:], nil
}
