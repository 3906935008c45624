package schema

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/sirupsen/logrus"
	"github.com/zclconf/go-cty/cty"

	"github.com/arloliu/bitfield/errs"
	"github.com/arloliu/bitfield/internal/options"
)

// FileExtension is the extension Load looks for when walking directories.
const FileExtension = ".hcl"

// Loader parses schema files with a fixed set of variables.
//
// A Loader is safe for concurrent use; every call uses its own parser.
type Loader struct {
	logger  logrus.FieldLogger
	evalCtx *hcl.EvalContext
}

// NewLoader creates a loader.
//
// Returns:
//   - *Loader: The loader
//   - error: ErrInvalidOption for an unusable option
func NewLoader(opts ...Option) (*Loader, error) {
	cfg := newConfig()
	if err := options.Apply(cfg, opts...); err != nil {
		return nil, err
	}

	vars := cty.EmptyObjectVal
	if len(cfg.variables) > 0 {
		vars = cty.ObjectVal(cfg.variables)
	}

	evalCtx := &hcl.EvalContext{
		Variables: map[string]cty.Value{"var": vars},
	}

	return &Loader{logger: cfg.logger, evalCtx: evalCtx}, nil
}

// Parse decodes schema source held in memory. filename only labels diagnostics.
//
// Returns:
//   - *Set: The layouts declared in src
//   - error: ErrInvalidSchema for syntax or decoding problems, ErrDuplicateField
//     for a repeated layout name, or the error NewType reports for a layout
func (l *Loader) Parse(src []byte, filename string) (*Set, error) {
	parser := hclparse.NewParser()
	file, diags := parser.ParseHCL(src, filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("%w: failed to parse %s: %w", errs.ErrInvalidSchema, filename, diags)
	}

	set := newSet()
	if err := l.decode(set, file, filename); err != nil {
		return nil, err
	}

	return set, nil
}

// Load parses every given file, and every .hcl file below every given
// directory, into one set. Layout names must be unique across all files.
func (l *Loader) Load(paths ...string) (*Set, error) {
	files, err := findFiles(paths)
	if err != nil {
		return nil, err
	}

	set := newSet()
	if len(files) == 0 {
		l.logger.WithField("paths", paths).Warn("no schema files found")
		return set, nil
	}

	parser := hclparse.NewParser()
	for _, path := range files {
		l.logger.WithField("path", path).Debug("loading schema file")

		file, diags := parser.ParseHCLFile(path)
		if diags.HasErrors() {
			return nil, fmt.Errorf("%w: failed to parse %s: %w", errs.ErrInvalidSchema, path, diags)
		}
		if err := l.decode(set, file, path); err != nil {
			return nil, err
		}
	}

	return set, nil
}

func (l *Loader) decode(set *Set, file *hcl.File, filename string) error {
	var spec fileSpec
	if diags := gohcl.DecodeBody(file.Body, l.evalCtx, &spec); diags.HasErrors() {
		return fmt.Errorf("%w: failed to decode %s: %w", errs.ErrInvalidSchema, filename, diags)
	}

	for _, ls := range spec.Layouts {
		t, err := ls.build(filename, l.logger)
		if err != nil {
			return err
		}
		if err := set.add(t); err != nil {
			return fmt.Errorf("%s: %w", filename, err)
		}

		l.logger.WithFields(logrus.Fields{
			"file":   filename,
			"layout": t.Name(),
			"size":   t.Size(),
		}).Debug("schema layout loaded")
	}

	return nil
}

// findFiles expands directories into the schema files below them, in lexical
// order. Plain files are kept regardless of extension.
func findFiles(paths []string) ([]string, error) {
	var files []string
	for _, root := range paths {
		info, err := os.Stat(root)
		if err != nil {
			return nil, fmt.Errorf("schema: %w", err)
		}
		if !info.IsDir() {
			files = append(files, root)
			continue
		}

		err = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if !d.IsDir() && strings.HasSuffix(d.Name(), FileExtension) {
				files = append(files, path)
			}

			return nil
		})
		if err != nil {
			return nil, fmt.Errorf("schema: failed to walk %s: %w", root, err)
		}
	}

	return files, nil
}

// Parse decodes schema source with a one-off Loader.
func Parse(src []byte, filename string, opts ...Option) (*Set, error) {
	l, err := NewLoader(opts...)
	if err != nil {
		return nil, err
	}

	return l.Parse(src, filename)
}

// Load reads schema files and directories with a default Loader.
func Load(paths ...string) (*Set, error) {
	l, err := NewLoader()
	if err != nil {
		return nil, err
	}

	return l.Load(paths...)
}
