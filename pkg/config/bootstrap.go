package config

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"

	"github.com/arthur-debert/dotf/pkg/errors"
	"github.com/arthur-debert/dotf/pkg/logging"
	gotoml "github.com/pelletier/go-toml/v2"
	yamlv3 "gopkg.in/yaml.v3"
)

// Format is the configuration file syntax
type Format string

const (
	FormatTOML Format = "toml"
	FormatYAML Format = "yaml"
)

// FormatFromPath picks the format from the file extension, TOML by default
func FormatFromPath(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML
	}
	return FormatTOML
}

const starterHeader = `# dotf configuration
#
# repository: the directory holding the tracked copies.
# files: name = path spec, list of path specs, or { files = [...], ignore = [...] }.
# Path specs are relative to both the home directory and the repository;
# specs with * ? or [ are expanded as globs.
`

type starter struct {
	Repository string                 `toml:"repository" yaml:"repository"`
	Files      map[string]interface{} `toml:"files" yaml:"files"`
}

type starterObject struct {
	Files  []string `toml:"files" yaml:"files"`
	Ignore []string `toml:"ignore" yaml:"ignore"`
}

func starterDocument(repository string) starter {
	return starter{
		Repository: repository,
		Files: map[string]interface{}{
			"vim":  ".vimrc",
			"glob": "notes/**/*.txt",
			"list": []string{".zshrc", ".bashrc"},
			"object": starterObject{
				Files:  []string{"scripts/*"},
				Ignore: []string{"*.out", ".cache"},
			},
		},
	}
}

// Starter renders a starter configuration pointing at repository. The
// settings section is included commented out with its defaults.
func Starter(repository string, format Format) ([]byte, error) {
	doc := starterDocument(repository)

	var buf bytes.Buffer
	buf.WriteString(starterHeader)
	buf.WriteString("\n")

	switch format {
	case FormatYAML:
		body, err := yamlv3.Marshal(doc)
		if err != nil {
			return nil, errors.Wrap(err, errors.ErrInternal, "failed to render starter config")
		}
		buf.Write(body)

		defaults, err := DefaultSettings()
		if err != nil {
			return nil, err
		}
		settings, err := yamlv3.Marshal(map[string]Settings{"settings": defaults})
		if err != nil {
			return nil, errors.Wrap(err, errors.ErrInternal, "failed to render default settings")
		}
		buf.WriteString("\n")
		buf.WriteString(commentOutConfigValues(string(settings)))

	default:
		body, err := gotoml.Marshal(doc)
		if err != nil {
			return nil, errors.Wrap(err, errors.ErrInternal, "failed to render starter config")
		}
		buf.Write(body)
		buf.WriteString("\n")
		buf.WriteString(commentOutConfigValues(string(defaultConfig)))
	}

	return buf.Bytes(), nil
}

// Bootstrap writes a starter configuration at path. It never overwrites an
// existing file.
func Bootstrap(path, repository string) error {
	logger := logging.GetLogger("config")

	if _, err := os.Stat(path); err == nil {
		return errors.Newf(errors.ErrInvalidInput, "config file already exists: %s", path)
	}

	content, err := Starter(repository, FormatFromPath(path))
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return errors.Wrap(err, errors.ErrDirCreate, "failed to create config directory").
			WithDetail("path", filepath.Dir(path))
	}
	if err := os.WriteFile(path, content, 0644); err != nil {
		return errors.Wrap(err, errors.ErrFileWrite, "failed to write config file").
			WithDetail("path", path)
	}

	logger.Info().Str("path", path).Str("repository", repository).Msg("Wrote starter configuration")
	return nil
}

// commentOutConfigValues comments every assignment, keeping comments,
// blank lines and table headers as they are.
func commentOutConfigValues(content string) string {
	lines := strings.Split(content, "\n")
	result := make([]string, 0, len(lines))

	for _, line := range lines {
		trimmed := strings.TrimSpace(line)

		switch {
		case trimmed == "", strings.HasPrefix(trimmed, "#"):
			result = append(result, line)
		case strings.HasPrefix(trimmed, "[") && strings.HasSuffix(trimmed, "]"):
			result = append(result, line)
		default:
			result = append(result, "# "+line)
		}
	}

	return strings.Join(result, "\n")
}
