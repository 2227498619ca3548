package matchers

// builtinExclusions are never part of a glob expansion
var builtinExclusions = []string{
	"**/.git/**",
	"**/.hg/**",
	"**/.svn/**",
	"**/node_modules/**",
	"**/target/**",
	"**/__pycache__/**",
	"**/.venv/**",
	"*.o",
	"*.backup",
}

// BuiltinPatterns returns a copy of the built-in exclusion patterns
func BuiltinPatterns() []string {
	out := make([]string, len(builtinExclusions))
	copy(out, builtinExclusions)
	return out
}

// BuiltinExclusions returns the built-in exclusions plus any extra glob
// patterns from configuration.
func BuiltinExclusions(extra ...string) (*Set, error) {
	return NewSet(append(BuiltinPatterns(), extra...), SyntaxGlob)
}
