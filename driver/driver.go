// Package driver wires the Slate front end together: it loads source files,
// runs the lexer and parser, resolves import directives recursively and emits
// everything into a single IR module.
package driver

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"

	"github.com/slate-lang/slate/ast"
	"github.com/slate-lang/slate/codegen"
	"github.com/slate-lang/slate/ir"
	"github.com/slate-lang/slate/lexer"
	"github.com/slate-lang/slate/parser"
)

// ErrImportCycle indicates that a file imports itself, directly or through a
// chain of imports. Cycles are skipped by default; a Driver with Strict set
// reports them through this error instead.
var ErrImportCycle = errors.New("import cycle")

// Driver runs compile pipelines. One Driver may compile many units; the
// visited set is per-Compile call.
type Driver struct {
	// Strict makes import cycles a compile error instead of skipping the
	// re-import.
	Strict bool

	log zerolog.Logger
}

// New creates a Driver logging through the given logger.
func New(log zerolog.Logger) *Driver {
	return &Driver{log: log}
}

// ParseFile lexes and parses one source file without resolving imports.
func (d *Driver) ParseFile(path string) (*ast.Program, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	d.log.Debug().Str("file", path).Int("bytes", len(src)).Msg("parsing")

	toks := lexer.New(string(src)).Tokenize()
	prog, err := parser.Parse(toks)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return prog, nil
}

// Compile compiles the unit at path, together with everything it imports,
// into one IR module named moduleName.
//
// Import directives are resolved relative to the importing file. Each file is
// compiled at most once per Compile call: re-imports (including cyclic ones)
// are skipped. An imported file is fully emitted before emission of the
// importing unit continues.
func (d *Driver) Compile(path, moduleName string) (*ir.Module, error) {
	gen := codegen.New(moduleName)
	visited := make(map[string]unitState)
	if err := d.emitUnit(gen, path, visited); err != nil {
		return nil, err
	}
	return gen.Module(), nil
}

// unitState tracks a file's progress through one Compile call. A file that is
// reached again while compiling sits on the current import chain, which is a
// cycle.
type unitState int

const (
	compiling unitState = iota + 1
	compiled
)

// emitUnit parses one file and emits its nodes, recursing into imports.
func (d *Driver) emitUnit(gen *codegen.Generator, path string, visited map[string]unitState) error {
	abs, err := filepath.Abs(path)
	if err != nil {
		return err
	}
	switch visited[abs] {
	case compiling:
		if d.Strict {
			return fmt.Errorf("%s: %w", path, ErrImportCycle)
		}
		d.log.Debug().Str("file", path).Msg("import cycle, skipping")
		return nil
	case compiled:
		d.log.Debug().Str("file", path).Msg("already compiled, skipping")
		return nil
	}
	visited[abs] = compiling

	prog, err := d.ParseFile(path)
	if err != nil {
		return err
	}

	for _, n := range prog.Nodes {
		imp, ok := n.(*ast.ImportExpr)
		if !ok {
			if _, err := gen.Emit(n); err != nil {
				return fmt.Errorf("%s: %w", path, err)
			}
			continue
		}
		target := filepath.Join(filepath.Dir(path), imp.Path)
		d.log.Info().Str("from", path).Str("import", target).Msg("resolving import")
		if err := d.emitUnit(gen, target, visited); err != nil {
			return err
		}
	}

	visited[abs] = compiled
	d.log.Debug().Str("file", path).Int("nodes", len(prog.Nodes)).Msg("emitted")
	return nil
}
