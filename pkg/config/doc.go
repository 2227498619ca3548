// Package config loads the dotf configuration file.
//
// The file names the repository and the tracked items:
//
//	repository = "~/dotfiles"
//
//	[files]
//	vim = ".vimrc"
//	shells = [".zshrc", ".bashrc"]
//	scripts = { files = ["bin/*"], ignore = ["*.out"] }
//
//	[settings]
//	diff_command = "diff -u --color"
//
// Values are layered with koanf: embedded defaults first, then the file
// (TOML, or YAML by extension), then DOTF_REPOSITORY and
// DOTF_SETTINGS_<KEY> environment variables.
package config
