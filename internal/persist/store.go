package persist

import "context"

// Store persists worlds by name. Load returns (nil, nil) when the world
// does not exist or its data is unusable; callers then generate a new one.
type Store interface {
	Save(ctx context.Context, name string, s *SaveData) error
	Load(ctx context.Context, name string) (*SaveData, error)
	List(ctx context.Context) ([]string, error)
}
