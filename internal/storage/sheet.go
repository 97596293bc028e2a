package storage

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/jwebster45206/combat-engine/pkg/sheet"
)

// Sheet operations (filesystem-backed, returns the spec only)

func (r *RedisStorage) sheetsDir() string {
	return filepath.Join(r.dataDir, "sheets")
}

// GetSheetSpec loads <dataDir>/sheets/<id>.json. Use sheet.NewSheetFromSpec to
// build the runtime sheet.
func (r *RedisStorage) GetSheetSpec(ctx context.Context, id string) (*sheet.Spec, error) {
	if id == "" || strings.ContainsAny(id, `/\`) {
		return nil, fmt.Errorf("invalid sheet id %q", id)
	}
	spec, err := sheet.LoadSpec(filepath.Join(r.sheetsDir(), id+".json"))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrSheetNotFound, id)
		}
		return nil, err
	}
	return spec, nil
}

func (r *RedisStorage) ListSheets(ctx context.Context) ([]string, error) {
	entries, err := os.ReadDir(r.sheetsDir())
	if err != nil {
		if os.IsNotExist(err) {
			return []string{}, nil
		}
		return nil, fmt.Errorf("failed to read sheets directory: %w", err)
	}

	var ids []string
	for _, entry := range entries {
		if !entry.IsDir() && filepath.Ext(entry.Name()) == ".json" {
			ids = append(ids, strings.TrimSuffix(entry.Name(), ".json"))
		}
	}
	slices.Sort(ids)
	return ids, nil
}
