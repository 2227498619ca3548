// Package paths resolves the process-wide locations dotf works with: the
// user's home directory, the XDG config and state directories, and the
// configuration file. It follows the XDG Base Directory specification
// through github.com/adrg/xdg.
//
// Paths are computed once at startup and handed to the components that
// need them; nothing in this package writes to disk.
package paths

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/adrg/xdg"
	"github.com/arthur-debert/dotf/pkg/errors"
)

// Environment variable names
const (
	// EnvConfig points at an explicit configuration file
	EnvConfig = "DOTF_CONFIG"

	// EnvHome is the standard home directory variable
	EnvHome = "HOME"
)

const (
	// AppName names the state directory and the log file
	AppName = "dotf"

	// ConfigBaseName is the configuration file name without extension
	ConfigBaseName = "dotfiles"

	// LogFileName is the name of the log file inside the state directory
	LogFileName = "dotf.log"
)

// ConfigExtensions are tried in order when looking for the configuration file
var ConfigExtensions = []string{".toml", ".yaml", ".yml"}

// Paths holds the resolved process-wide directories
type Paths struct {
	home      string
	configDir string
	stateDir  string
}

// New resolves the directories from the environment
func New() (*Paths, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		home = os.Getenv(EnvHome)
		if home == "" {
			return nil, errors.Wrap(err, errors.ErrNotFound, "cannot determine home directory")
		}
	}

	xdg.Reload()
	return NewAt(home, xdg.ConfigHome, filepath.Join(xdg.StateHome, AppName)), nil
}

// NewAt creates Paths rooted at explicit directories
func NewAt(home, configDir, stateDir string) *Paths {
	return &Paths{
		home:      filepath.Clean(home),
		configDir: filepath.Clean(configDir),
		stateDir:  filepath.Clean(stateDir),
	}
}

// Home returns the user's home directory
func (p *Paths) Home() string {
	return p.home
}

// ConfigDir returns the XDG config directory the configuration file lives in
func (p *Paths) ConfigDir() string {
	return p.configDir
}

// StateDir returns dotf's XDG state directory
func (p *Paths) StateDir() string {
	return p.stateDir
}

// LogFilePath returns the path of the log file
func (p *Paths) LogFilePath() string {
	return filepath.Join(p.stateDir, LogFileName)
}

// ConfigCandidates lists the configuration files looked up, in order
func (p *Paths) ConfigCandidates() []string {
	candidates := make([]string, 0, len(ConfigExtensions))
	for _, ext := range ConfigExtensions {
		candidates = append(candidates, filepath.Join(p.configDir, ConfigBaseName+ext))
	}
	return candidates
}

// DefaultConfigPath is where a new configuration file is written
func (p *Paths) DefaultConfigPath() string {
	return p.ConfigCandidates()[0]
}

// FindConfig returns the configuration file to use and whether it exists.
// An explicit path wins over DOTF_CONFIG, which wins over the candidates.
// When nothing exists the returned path is where one should be created.
func (p *Paths) FindConfig(explicit string) (string, bool, error) {
	if explicit == "" {
		explicit = os.Getenv(EnvConfig)
	}

	if explicit != "" {
		path, err := filepath.Abs(p.ExpandHome(explicit))
		if err != nil {
			return "", false, errors.Wrapf(err, errors.ErrFileAccess, "failed to resolve %s", explicit)
		}
		ok, err := isFile(path)
		return path, ok, err
	}

	for _, candidate := range p.ConfigCandidates() {
		ok, err := isFile(candidate)
		if err != nil {
			return "", false, err
		}
		if ok {
			return candidate, true, nil
		}
	}

	return p.DefaultConfigPath(), false, nil
}

// ExpandHome expands a leading ~ to the home directory
func (p *Paths) ExpandHome(path string) string {
	if path == "~" {
		return p.home
	}
	if strings.HasPrefix(path, "~/") || strings.HasPrefix(path, "~"+string(filepath.Separator)) {
		return filepath.Join(p.home, path[2:])
	}
	return path
}

// Display shortens paths under the home directory to ~/...
func (p *Paths) Display(path string) string {
	rel, err := filepath.Rel(p.home, path)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return path
	}
	if rel == "." {
		return "~"
	}
	return "~/" + filepath.ToSlash(rel)
}

func isFile(path string) (bool, error) {
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, errors.Wrap(err, errors.ErrFileAccess, "cannot access config file").
			WithDetail("path", path)
	}
	if info.IsDir() {
		return false, errors.Newf(errors.ErrConfigLoad, "config path is a directory: %s", path)
	}
	return true, nil
}
