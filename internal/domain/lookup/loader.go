package lookup

import (
	"context"
	"fmt"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

type namedEntry struct {
	ID   int    `koanf:"id"`
	Name string `koanf:"name"`
}

type namesFile struct {
	Maps []namedEntry `koanf:"maps"`
	Civs []namedEntry `koanf:"civs"`
}

// Load reads a YAML names file and returns options overlaying its entries.
//
// The file has two optional lists:
//
//	maps:
//	  - {id: 9, name: Arabia}
//	civs:
//	  - {id: 1, name: Britons}
func Load(_ context.Context, path string) ([]Option, error) {
	k := koanf.New(".")
	if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrLoadTable, path, err)
	}

	var nf namesFile
	if err := k.UnmarshalWithConf("", &nf, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrLoadTable, path, err)
	}

	mapNames, err := toNames("maps", nf.Maps)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrLoadTable, path, err)
	}
	civNames, err := toNames("civs", nf.Civs)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrLoadTable, path, err)
	}
	return []Option{WithMaps(mapNames), WithCivs(civNames)}, nil
}

func toNames(section string, entries []namedEntry) (map[int]string, error) {
	out := make(map[int]string, len(entries))
	for i, e := range entries {
		name := strings.TrimSpace(e.Name)
		if name == "" {
			return nil, fmt.Errorf("%s[%d]: empty name for id %d", section, i, e.ID)
		}
		out[e.ID] = name
	}
	return out, nil
}
