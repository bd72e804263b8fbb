package migration

import (
	"fmt"
	"io/fs"
	"os"
	"sort"
	"strings"
)

// Source reads migrations from a filesystem. Migrations are pairs of
// {version}_{name}.up.sql / {version}_{name}.down.sql files; pairs
// missing either direction are ignored.
type Source struct {
	fsys fs.FS
}

// NewSource creates a Source over an fs.FS (an embedded filesystem or
// a disk directory via NewDirSource).
func NewSource(fsys fs.FS) *Source {
	return &Source{fsys: fsys}
}

// NewDirSource creates a Source over a directory on disk.
func NewDirSource(dir string) *Source {
	return &Source{fsys: os.DirFS(dir)}
}

// List returns all complete migrations sorted by version.
func (s *Source) List() ([]Migration, error) {
	entries, err := fs.ReadDir(s.fsys, ".")
	if err != nil {
		return nil, fmt.Errorf("failed to read migrations: %w", err)
	}

	type pair struct {
		name     string
		upFile   string
		downFile string
	}
	pairs := make(map[string]*pair)

	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		fileName := entry.Name()

		// {version}_{name}.{up|down}.sql
		version, rest, ok := strings.Cut(fileName, "_")
		if !ok {
			continue
		}

		if name, ok := strings.CutSuffix(rest, ".up.sql"); ok {
			p := pairs[version]
			if p == nil {
				p = &pair{name: name}
				pairs[version] = p
			}
			p.upFile = fileName
		} else if name, ok := strings.CutSuffix(rest, ".down.sql"); ok {
			p := pairs[version]
			if p == nil {
				p = &pair{name: name}
				pairs[version] = p
			}
			p.downFile = fileName
		}
	}

	var migrations []Migration
	for version, p := range pairs {
		if p.upFile == "" || p.downFile == "" {
			continue
		}

		upSQL, err := fs.ReadFile(s.fsys, p.upFile)
		if err != nil {
			return nil, fmt.Errorf("failed to read up migration %s: %w", p.upFile, err)
		}
		downSQL, err := fs.ReadFile(s.fsys, p.downFile)
		if err != nil {
			return nil, fmt.Errorf("failed to read down migration %s: %w", p.downFile, err)
		}

		migrations = append(migrations, Migration{
			Version: version,
			Name:    p.name,
			UpSQL:   string(upSQL),
			DownSQL: string(downSQL),
		})
	}

	sort.Slice(migrations, func(i, j int) bool {
		return migrations[i].Version < migrations[j].Version
	})
	return migrations, nil
}
