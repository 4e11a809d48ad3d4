package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/ndrsllwngr/goscript/ast"
	"github.com/ndrsllwngr/goscript/check"
	"github.com/ndrsllwngr/goscript/mods"
	"github.com/ndrsllwngr/goscript/report"
	"github.com/ndrsllwngr/goscript/sem"
	"github.com/ndrsllwngr/goscript/syntax"
)

// SrcFileExtension is the file extension of GoScript source files.
const SrcFileExtension = ".gs"

// Driver walks a project package by package, parsing and checking each one and
// acting as the importer for packages named in import declarations.
type Driver struct {
	proj  *mods.Project
	arena *sem.Arena

	// info, errors, and softErrors accumulate results across every package
	// checked for the project.
	info       *check.TypeInfo
	errors     *report.ErrorList
	softErrors *report.ErrorList

	// pkgs caches checked packages by import path.
	pkgs map[string]sem.PackageKey

	// checking holds the import paths currently being checked, used to detect
	// import cycles.
	checking map[string]bool
}

// NewDriver creates a driver for the given project.
func NewDriver(proj *mods.Project) *Driver {
	return &Driver{
		proj:       proj,
		arena:      sem.NewArena(),
		info:       check.NewTypeInfo(),
		errors:     report.NewErrorList(),
		softErrors: report.NewErrorList(),
		pkgs:       make(map[string]sem.PackageKey),
		checking:   make(map[string]bool),
	}
}

// Errors returns the hard diagnostics accumulated so far.
func (d *Driver) Errors() *report.ErrorList {
	return d.errors
}

// SoftErrors returns the soft diagnostics accumulated so far.
func (d *Driver) SoftErrors() *report.ErrorList {
	return d.softErrors
}

// Info returns the recorded results accumulated so far.
func (d *Driver) Info() *check.TypeInfo {
	return d.info
}

// CheckProject parses and checks the root package of the project together with
// everything it imports.  A non-nil error indicates a condition that stopped
// checking early; ordinary diagnostics are collected in the driver's error
// lists instead.
func (d *Driver) CheckProject() error {
	_, err := d.checkDir(d.proj.SrcDir, d.proj.Name)
	return err
}

// Import resolves and checks the package with the given import path, parsing
// it first if it has not been seen before.
func (d *Driver) Import(path string) (sem.PackageKey, error) {
	if pkg, ok := d.pkgs[path]; ok {
		return pkg, nil
	}

	if d.checking[path] {
		return sem.NoPkg, fmt.Errorf("import cycle through %s", path)
	}

	dir, err := d.resolveImport(path)
	if err != nil {
		return sem.NoPkg, err
	}

	return d.checkDir(dir, path)
}

// resolveImport maps an import path to the directory holding the package's
// source files.  The project source directory is searched before any
// configured import directories.
func (d *Driver) resolveImport(path string) (string, error) {
	relPath := filepath.FromSlash(path)
	for _, root := range append([]string{d.proj.SrcDir}, d.proj.ImportDirs...) {
		dir := filepath.Join(root, relPath)
		if finfo, err := os.Stat(dir); err == nil && finfo.IsDir() {
			return dir, nil
		}
	}

	return "", fmt.Errorf("no package directory for %s", path)
}

// checkDir parses and checks the package whose sources live in the given
// directory.
func (d *Driver) checkDir(dir, path string) (sem.PackageKey, error) {
	d.checking[path] = true
	defer delete(d.checking, path)

	files, err := d.parseDir(dir)
	if err != nil {
		return sem.NoPkg, err
	}

	if len(files) == 0 {
		return sem.NoPkg, fmt.Errorf("no source files in %s", dir)
	}

	pkg := d.arena.NewPackage(path, "")
	checker := check.NewChecker(d.arena, &check.Config{Importer: d}, pkg, d.info, d.errors, d.softErrors)
	if err := checker.Check(files); err != nil {
		return sem.NoPkg, err
	}

	d.pkgs[path] = pkg
	return pkg, nil
}

// parseDir parses every source file in the given directory, in lexical file
// name order.
func (d *Driver) parseDir(dir string) ([]*ast.File, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}

	var names []string
	for _, entry := range entries {
		if !entry.IsDir() && strings.HasSuffix(entry.Name(), SrcFileExtension) {
			names = append(names, entry.Name())
		}
	}

	sort.Strings(names)

	var files []*ast.File
	for _, name := range names {
		absPath := filepath.Join(dir, name)
		reprPath, err := filepath.Rel(d.proj.RootDir, absPath)
		if err != nil {
			reprPath = absPath
		}

		f, err := os.Open(absPath)
		if err != nil {
			return nil, err
		}

		file, err := syntax.ParseFile(absPath, reprPath, f)
		f.Close()
		if err != nil {
			return nil, err
		}

		files = append(files, file)
	}

	return files, nil
}
