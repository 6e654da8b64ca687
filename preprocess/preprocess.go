// Package preprocess flattens shader #include trees into a single
// compilation unit, tracking every file the result depends on and
// failing fast on missing files and include cycles.
package preprocess

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/gogpu/shaderlab/internal/logging"
)

// ErrCircularInclude is wrapped by the error reported when a file
// includes itself, directly or through a chain.
var ErrCircularInclude = errors.New("circular include")

// IncludeError describes a failed #include directive.
type IncludeError struct {
	// File is the file containing the directive.
	File string
	// Line is the 1-based line number of the directive.
	Line int
	// Path is the include path as written in the source.
	Path string
	// Err is the underlying cause (os error, ErrCircularInclude, or a
	// syntax description).
	Err error
}

func (e *IncludeError) Error() string {
	return fmt.Sprintf("%s:%d: #include %q: %v", e.File, e.Line, e.Path, e.Err)
}

func (e *IncludeError) Unwrap() error { return e.Err }

// Result is the outcome of preprocessing. On failure the partial source
// is discarded: Source is empty and Err carries the first error hit.
type Result struct {
	// Source is the flattened compilation unit.
	Source string
	// Dependencies lists every included file as an absolute path, in
	// expansion order. A file reached via two distinct non-cyclic include
	// paths appears twice; there is deliberately no global deduplication
	// (include guards are the shader author's concern).
	Dependencies []string
	// Err is nil on success.
	Err error
}

// OK reports whether preprocessing succeeded.
func (r Result) OK() bool { return r.Err == nil }

// Process loads and flattens the shader at mainPath. Include paths are
// resolved relative to the directory of the file being expanded first,
// then relative to mainPath's directory. Expanded files are wrapped in
// `// BEGIN INCLUDE:` / `// END INCLUDE:` markers for traceability.
func Process(mainPath string) Result {
	data, err := os.ReadFile(mainPath)
	if err != nil {
		err = fmt.Errorf("shader file not found: %s: %w", mainPath, err)
		logging.Get().Error("preprocess failed",
			slog.String("component", "preprocess"),
			slog.Any("error", err))
		return Result{Err: err}
	}

	x := &expander{baseDir: filepath.Dir(mainPath)}
	return x.run(string(data), mainPath)
}

// ProcessSource flattens in-memory source, resolving includes against
// baseDir. The pseudo file name "<source>" stands in for the main file in
// diagnostics.
func ProcessSource(source, baseDir string) Result {
	x := &expander{baseDir: baseDir}
	return x.run(source, sourcePseudoFile)
}

const sourcePseudoFile = "<source>"

type expander struct {
	baseDir string
	// expanding holds the absolute paths of the include chain currently
	// being expanded; membership means a cycle.
	expanding    map[string]bool
	dependencies []string
}

func (x *expander) run(source, mainFile string) Result {
	x.expanding = make(map[string]bool)

	var b strings.Builder
	if err := x.expand(&b, source, mainFile); err != nil {
		logging.Get().Error("preprocess failed",
			slog.String("component", "preprocess"),
			slog.Any("error", err))
		return Result{Err: err}
	}
	return Result{Source: b.String(), Dependencies: x.dependencies}
}

// expand walks source line by line, splicing include expansions in place
// of their directives. Non-directive lines pass through newline-normalized.
func (x *expander) expand(b *strings.Builder, source, currentFile string) error {
	lines := strings.Split(strings.ReplaceAll(source, "\r\n", "\n"), "\n")
	// Split yields a trailing empty element for newline-terminated input;
	// dropping it avoids doubling the final newline.
	if n := len(lines); n > 0 && lines[n-1] == "" {
		lines = lines[:n-1]
	}

	for i, line := range lines {
		lineNo := i + 1
		if !isIncludeDirective(line) {
			b.WriteString(line)
			b.WriteByte('\n')
			continue
		}

		includePath, ok := parseIncludePath(line)
		if !ok {
			return &IncludeError{File: currentFile, Line: lineNo, Path: strings.TrimSpace(line),
				Err: errors.New("malformed directive")}
		}

		resolved, ok := x.resolve(includePath, currentFile)
		if !ok {
			return &IncludeError{File: currentFile, Line: lineNo, Path: includePath,
				Err: os.ErrNotExist}
		}

		abs, err := filepath.Abs(resolved)
		if err != nil {
			return &IncludeError{File: currentFile, Line: lineNo, Path: includePath, Err: err}
		}
		if x.expanding[abs] {
			return &IncludeError{File: currentFile, Line: lineNo, Path: includePath,
				Err: ErrCircularInclude}
		}

		data, err := os.ReadFile(abs)
		if err != nil {
			return &IncludeError{File: currentFile, Line: lineNo, Path: includePath, Err: err}
		}

		x.expanding[abs] = true
		x.dependencies = append(x.dependencies, abs)
		logging.Get().Debug("expanding include",
			slog.String("component", "preprocess"),
			slog.String("path", includePath),
			slog.String("from", currentFile))

		b.WriteString("// BEGIN INCLUDE: " + includePath + "\n")
		if err := x.expand(b, string(data), abs); err != nil {
			return err
		}
		b.WriteString("// END INCLUDE: " + includePath + "\n")

		// Leaving the file's expansion: the same file may be included
		// again via a different, non-cyclic path.
		delete(x.expanding, abs)
	}

	return nil
}

// resolve tries the directory of the including file first, then the base
// directory of the whole run.
func (x *expander) resolve(includePath, currentFile string) (string, bool) {
	if currentFile != sourcePseudoFile {
		candidate := filepath.Join(filepath.Dir(currentFile), includePath)
		if fileExists(candidate) {
			return candidate, true
		}
	}
	candidate := filepath.Join(x.baseDir, includePath)
	if fileExists(candidate) {
		return candidate, true
	}
	return "", false
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}

// isIncludeDirective matches `#include "..."` and `#include <...>` with
// optional whitespace, including between '#' and the keyword.
func isIncludeDirective(line string) bool {
	s := strings.TrimSpace(line)
	if !strings.HasPrefix(s, "#") {
		return false
	}
	s = strings.TrimSpace(s[1:])
	if !strings.HasPrefix(s, "include") {
		return false
	}
	s = strings.TrimSpace(s[len("include"):])
	return strings.HasPrefix(s, `"`) || strings.HasPrefix(s, "<")
}

// parseIncludePath extracts the path between the quote or angle-bracket
// delimiters.
func parseIncludePath(line string) (string, bool) {
	s := strings.TrimSpace(line)
	s = strings.TrimSpace(strings.TrimPrefix(s, "#"))
	s = strings.TrimSpace(strings.TrimPrefix(s, "include"))

	if len(s) < 2 {
		return "", false
	}
	var closer byte
	switch s[0] {
	case '"':
		closer = '"'
	case '<':
		closer = '>'
	default:
		return "", false
	}
	end := strings.IndexByte(s[1:], closer)
	if end < 0 {
		return "", false
	}
	path := s[1 : 1+end]
	if path == "" {
		return "", false
	}
	return path, true
}
