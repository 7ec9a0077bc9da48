package minify

import (
	"path/filepath"
	"strings"

	"github.com/samber/lo"
)

// Placeholder is replaced in an output pattern by each input's base name.
const Placeholder = "$1"

// OutputName resolves pattern for one input file. The placeholder becomes the
// file's base name without extension, prefixed by publicFolder, or by the
// file's own directory when replaceInPlace is set.
func OutputName(file, pattern, publicFolder string, replaceInPlace bool) string {
	base := filepath.Base(file)
	name := strings.TrimSuffix(base, filepath.Ext(base))

	switch {
	case replaceInPlace:
		name = filepath.Join(filepath.Dir(file), name)
	case publicFolder != "":
		name = filepath.Join(publicFolder, name)
	}

	return strings.Replace(pattern, Placeholder, name, 1)
}

// templateOutput resolves a single placeholder output against every input.
// List outputs are positional and are returned untouched.
func templateOutput(in, out Paths, publicFolder string, replaceInPlace bool) Paths {
	if out.List || len(out.Files) != 1 || !strings.Contains(out.Files[0], Placeholder) {
		return out
	}

	pattern := out.Files[0]
	return Paths{
		Files: lo.Map(in.Files, func(file string, _ int) string {
			return OutputName(file, pattern, publicFolder, replaceInPlace)
		}),
		List: in.List,
	}
}
