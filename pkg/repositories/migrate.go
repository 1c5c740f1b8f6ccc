package repositories

import (
	"context"
	"fmt"
	"io/fs"
	"path"
	"sort"
)

type migration struct {
	name string
	sql  string
}

// readMigrations returns the .sql files of dir in lexical order.
func readMigrations(fsys fs.FS, dir string) ([]migration, error) {
	entries, err := fs.ReadDir(fsys, dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read migrations directory: %v", err)
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].Name() < entries[j].Name() })

	var out []migration
	for _, entry := range entries {
		if entry.IsDir() || path.Ext(entry.Name()) != ".sql" {
			continue
		}
		p := path.Join(dir, entry.Name())
		b, err := fs.ReadFile(fsys, p)
		if err != nil {
			return nil, fmt.Errorf("failed to read migration %s: %v", p, err)
		}
		out = append(out, migration{name: p, sql: string(b)})
	}
	return out, nil
}

func applyMigrations(ctx context.Context, fsys fs.FS, dir string, exec func(ctx context.Context, sql string) error) error {
	ms, err := readMigrations(fsys, dir)
	if err != nil {
		return err
	}
	for _, m := range ms {
		if err := exec(ctx, m.sql); err != nil {
			return fmt.Errorf("failed to execute migration %s: %v", m.name, err)
		}
	}
	return nil
}
