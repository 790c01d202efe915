package fixture

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	"go.uber.org/multierr"
	"gopkg.in/yaml.v3"
)

// LoadMode controls how errors are handled while loading a directory.
type LoadMode int

const (
	// FailFast stops at the first file that fails to load.
	FailFast LoadMode = iota
	// CollectAll loads every file and returns all errors together.
	CollectAll
)

// Error codes.
const (
	ErrCodeGeneric         = "E001"
	ErrCodeScanError       = "E002"
	ErrCodeNoFiles         = "E003"
	ErrCodeParseFailed     = "E004"
	ErrCodeNotFound        = "E005"
	ErrCodeInvalidDocument = "E010"
	ErrCodeInvalidNode     = "E011"
	ErrCodeInvalidVersion  = "E012"
	ErrCodeInvalidSymbol   = "E013"
)

// LoadError is an error in a fixture file.
type LoadError struct {
	Code    string
	Message string
	File    string
	Doc     string
}

func (e *LoadError) Error() string {
	var b strings.Builder
	if e.File != "" {
		b.WriteString(e.File)
		b.WriteString(": ")
	}
	if e.Doc != "" {
		fmt.Fprintf(&b, "%s: ", e.Doc)
	}
	fmt.Fprintf(&b, "%s: %s", e.Code, e.Message)
	return b.String()
}

// IsFixtureFile reports whether path has a fixture extension.
func IsFixtureFile(path string) bool {
	switch filepath.Ext(path) {
	case ".yaml", ".yml", ".cue":
		return true
	}
	return false
}

// LoadFile loads every document in a .yaml/.yml (one or more "---"
// separated documents) or .cue file.
func LoadFile(path string) ([]*Fixture, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, &LoadError{Code: ErrCodeNotFound, Message: "fixture file not found", File: path}
		}
		return nil, &LoadError{Code: ErrCodeGeneric, Message: err.Error(), File: path}
	}

	var docs []Document
	switch filepath.Ext(path) {
	case ".cue":
		docs, err = parseCUE(data, path)
	case ".yaml", ".yml":
		docs, err = parseYAML(data)
	default:
		return nil, &LoadError{Code: ErrCodeGeneric, Message: "unsupported fixture extension", File: path}
	}
	if err != nil {
		return nil, &LoadError{Code: ErrCodeParseFailed, Message: err.Error(), File: path}
	}
	if len(docs) == 0 {
		return nil, &LoadError{Code: ErrCodeInvalidDocument, Message: "no documents", File: path}
	}

	out := make([]*Fixture, 0, len(docs))
	for i := range docs {
		f, err := Decode(&docs[i])
		if err != nil {
			var le *LoadError
			if errors.As(err, &le) {
				le.File = path
			}
			return nil, err
		}
		f.File = path
		out = append(out, f)
	}
	return out, nil
}

func parseYAML(data []byte) ([]Document, error) {
	var docs []Document
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	for {
		var doc Document
		err := dec.Decode(&doc)
		if errors.Is(err, io.EOF) {
			return docs, nil
		}
		if err != nil {
			return nil, fmt.Errorf("parse YAML: %w", err)
		}
		docs = append(docs, doc)
	}
}

// parseCUE accepts either a single document at the top level or a list of
// documents under "documents".
func parseCUE(data []byte, path string) ([]Document, error) {
	ctx := cuecontext.New()
	v := ctx.CompileBytes(data, cue.Filename(path))
	if err := v.Err(); err != nil {
		return nil, fmt.Errorf("compile CUE: %w", err)
	}
	if err := v.Validate(cue.Concrete(true)); err != nil {
		return nil, fmt.Errorf("validate CUE: %w", err)
	}

	if list := v.LookupPath(cue.ParsePath("documents")); list.Exists() {
		var docs []Document
		if err := list.Decode(&docs); err != nil {
			return nil, fmt.Errorf("decode CUE documents: %w", err)
		}
		return docs, nil
	}
	var doc Document
	if err := v.Decode(&doc); err != nil {
		return nil, fmt.Errorf("decode CUE: %w", err)
	}
	return []Document{doc}, nil
}

// Load loads the fixtures at each path. A directory is walked for fixture
// files in lexical order.
func Load(paths []string, mode LoadMode) ([]*Fixture, error) {
	var files []string
	for _, p := range paths {
		found, err := findFiles(p)
		if err != nil {
			return nil, err
		}
		files = append(files, found...)
	}
	if len(files) == 0 {
		return nil, &LoadError{Code: ErrCodeNoFiles, Message: fmt.Sprintf("no fixture files found in %s", strings.Join(paths, ", "))}
	}

	var (
		out  []*Fixture
		errs error
	)
	for _, f := range files {
		fixtures, err := LoadFile(f)
		if err != nil {
			if mode == FailFast {
				return out, err
			}
			errs = multierr.Append(errs, err)
			continue
		}
		out = append(out, fixtures...)
	}
	return out, errs
}

func findFiles(path string) ([]string, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, &LoadError{Code: ErrCodeNotFound, Message: fmt.Sprintf("path not found: %s", path)}
	}
	if !info.IsDir() {
		return []string{path}, nil
	}

	var files []string
	err = filepath.WalkDir(path, func(p string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && IsFixtureFile(p) {
			files = append(files, p)
		}
		return nil
	})
	if err != nil {
		return nil, &LoadError{Code: ErrCodeScanError, Message: fmt.Sprintf("error scanning directory: %v", err)}
	}
	sort.Strings(files)
	return files, nil
}
