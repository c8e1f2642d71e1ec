package walker

import (
	"path/filepath"

	ignore "github.com/sabhiram/go-gitignore"
)

// ignoreStack tracks .gitignore rules as traversal descends. Each layer
// corresponds to one directory; layers without a .gitignore hold a nil
// parser so push and pop stay balanced.
type ignoreStack struct {
	layers []ignoreLayer
}

type ignoreLayer struct {
	dir    string
	parser *ignore.GitIgnore
}

func newIgnoreStack() *ignoreStack {
	return &ignoreStack{}
}

// push loads .gitignore from dir, if present, onto the stack.
func (s *ignoreStack) push(dir string) {
	parser, err := ignore.CompileIgnoreFile(filepath.Join(dir, ".gitignore"))
	if err != nil {
		parser = nil
	}
	s.layers = append(s.layers, ignoreLayer{dir: dir, parser: parser})
}

func (s *ignoreStack) pop() {
	if len(s.layers) > 0 {
		s.layers = s.layers[:len(s.layers)-1]
	}
}

// isIgnored checks path against every active layer, innermost rules
// last so they take effect the way git applies them.
func (s *ignoreStack) isIgnored(path string, isDir bool) bool {
	for _, layer := range s.layers {
		if layer.parser == nil {
			continue
		}
		rel, err := filepath.Rel(layer.dir, path)
		if err != nil {
			continue
		}
		if isDir {
			rel += string(filepath.Separator)
		}
		if layer.parser.MatchesPath(rel) {
			return true
		}
	}
	return false
}
