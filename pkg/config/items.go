package config

import (
	"sort"
	"strings"

	"github.com/arthur-debert/dotf/pkg/errors"
	"github.com/arthur-debert/dotf/pkg/types"
	"github.com/go-viper/mapstructure/v2"
)

// itemObject is the table form of an item: { files = [...], ignore = [...] }
type itemObject struct {
	Files  []string `mapstructure:"files"`
	Ignore []string `mapstructure:"ignore"`
}

// decodeItems turns the files table into items sorted by name. Each value
// is a string, a list of strings or an itemObject.
func decodeItems(raw interface{}) ([]types.Item, error) {
	if raw == nil {
		return nil, nil
	}

	table, ok := raw.(map[string]interface{})
	if !ok {
		return nil, errors.New(errors.ErrConfigValid, "files must be a table")
	}

	names := make([]string, 0, len(table))
	for name := range table {
		names = append(names, name)
	}
	sort.Strings(names)

	items := make([]types.Item, 0, len(names))
	for _, name := range names {
		item, err := decodeItem(name, table[name])
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, nil
}

func decodeItem(name string, value interface{}) (types.Item, error) {
	switch v := value.(type) {
	case string:
		if strings.TrimSpace(v) == "" {
			return types.Item{}, invalidItem(name, "string must not be empty")
		}
		return types.NewItem(name, v), nil

	case []interface{}:
		if len(v) == 0 {
			return types.Item{}, invalidItem(name, "list must not be empty")
		}
		files := make([]string, 0, len(v))
		for _, f := range v {
			s, ok := f.(string)
			if !ok {
				return types.Item{}, invalidItem(name, "list must only contain strings")
			}
			files = append(files, s)
		}
		return types.Item{Name: name, Files: files}, nil

	case map[string]interface{}:
		var obj itemObject
		dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
			Result:      &obj,
			ErrorUnused: true,
		})
		if err != nil {
			return types.Item{}, errors.Wrap(err, errors.ErrInternal, "failed to create decoder")
		}
		if err := dec.Decode(v); err != nil {
			return types.Item{}, errors.Wrapf(err, errors.ErrConfigValid, "invalid item %s", name)
		}
		if len(obj.Files) == 0 {
			return types.Item{}, invalidItem(name, "object must list files")
		}
		return types.Item{Name: name, Files: obj.Files, Ignore: obj.Ignore}, nil
	}

	return types.Item{}, errors.Newf(errors.ErrConfigValid, "invalid type for %s", name)
}

func invalidItem(name, reason string) error {
	return errors.Newf(errors.ErrConfigValid, "%s: %s", name, reason)
}
