package check

import (
	"fmt"
	"sort"

	"github.com/ndrsllwngr/goscript/ast"
	"github.com/ndrsllwngr/goscript/report"
	"github.com/ndrsllwngr/goscript/sem"
)

// Importer resolves an import path to an already checked package.
type Importer interface {
	// Import returns the package identified by the given import path.  The
	// returned package must be complete.
	Import(path string) (sem.PackageKey, error)
}

// Config holds the configuration of a checker.
type Config struct {
	// Importer resolves import paths.  If nil, all imports fail and are
	// replaced by fake packages.
	Importer Importer
}

// Checker checks the files of one package against an arena shared by all
// packages of a program.  Diagnostics accumulate in two caller-owned lists:
// hard errors that make the package ill-formed, and soft errors that flag
// violations which do not prevent use of the recorded results.  Checking
// never raises diagnostics as control flow; the single fatal condition is an
// inconsistent or blank package clause, reported through Check's error
// return.
type Checker struct {
	arena *sem.Arena
	conf  *Config
	pkg   sem.PackageKey

	info       *TypeInfo
	errors     *report.ErrorList
	softErrors *report.ErrorList

	// objMap maps every package level object to its declaration record.
	objMap map[sem.ObjKey]sem.DeclKey

	// fakes caches fake packages by import path so one broken import resolves
	// to one placeholder.
	fakes map[string]sem.PackageKey

	// labelUses tracks, within the function body being checked, which labels
	// have been targeted by a branch statement.
	labelUses map[sem.ObjKey]bool

	fctx *filesContext
	octx objContext
}

// NewChecker creates a checker for the given package.  The recorded-results
// store and both error lists are owned by the caller and must be non-nil.
func NewChecker(arena *sem.Arena, conf *Config, pkg sem.PackageKey, info *TypeInfo, errors, softErrors *report.ErrorList) *Checker {
	if conf == nil {
		conf = &Config{}
	}

	return &Checker{
		arena:      arena,
		conf:       conf,
		pkg:        pkg,
		info:       info,
		errors:     errors,
		softErrors: softErrors,
		objMap:     make(map[sem.ObjKey]sem.DeclKey),
		fakes:      make(map[string]sem.PackageKey),
		octx:       newObjContext(),
	}
}

// Check checks the given files as the files of the checker's package.  It
// returns a non-nil error only for a fatal condition; all other problems are
// recorded in the error lists.  The package is marked complete when checking
// finishes, even if errors were recorded.
func (c *Checker) Check(files []*ast.File) error {
	if err := c.checkPkgNames(files); err != nil {
		return err
	}

	c.fctx = newFilesContext(files)
	defer func() { c.fctx = nil }()

	c.collectObjects()
	c.packageObjects()
	c.processDelayed()
	c.recordUntyped()
	c.initOrder()
	c.unusedImports()

	c.arena.Pkg(c.pkg).MarkComplete()
	return nil
}

// checkPkgNames validates the package clauses of the file set.  All files
// must declare the same non-blank package name; the first file's name becomes
// the package's name if it has none yet.  A later file named _ mismatches
// that name rather than failing the blank-name test.  The fatal diagnostic is
// recorded in the hard-error list before being returned.
func (c *Checker) checkPkgNames(files []*ast.File) error {
	pkg := c.arena.Pkg(c.pkg)

	for _, file := range files {
		name := file.PkgName.Name

		if pkg.Name() == "" {
			if name == sem.BlankName {
				return c.fatalf(file, file.PkgName.Span(), "invalid package name _")
			}

			pkg.SetName(name)
		} else if name != pkg.Name() {
			return c.fatalf(file, file.PkgName.Span(),
				"inconsistent package names: expected %s, found %s", pkg.Name(), name)
		}
	}

	return nil
}

// fatalf records a fatal diagnostic in the hard-error list and returns it.
func (c *Checker) fatalf(file *ast.File, span *report.TextSpan, msg string, args ...interface{}) error {
	c.errors.Add(file.ReprPath, span, msg, args...)

	return &report.Diagnostic{
		ReprPath: file.ReprPath,
		Span:     span,
		Message:  fmt.Sprintf(msg, args...),
	}
}

// -----------------------------------------------------------------------------

// errorf records a hard error against the file currently being checked.
func (c *Checker) errorf(span *report.TextSpan, msg string, args ...interface{}) {
	c.errors.Add(c.reprPath(), span, msg, args...)
}

// softErrorf records a soft error against the file currently being checked.
func (c *Checker) softErrorf(span *report.TextSpan, msg string, args ...interface{}) {
	c.softErrors.Add(c.reprPath(), span, msg, args...)
}

func (c *Checker) reprPath() string {
	if c.fctx != nil && c.octx.fileIdx < len(c.fctx.files) {
		return c.fctx.files[c.octx.fileIdx].ReprPath
	}

	return ""
}

// invalid returns the key of the invalid placeholder type.
func (c *Checker) invalid() sem.TypeKey {
	return c.arena.Universe.Invalid
}

// basic returns the key of the predeclared basic type of the given kind.
func (c *Checker) basic(kind sem.BasicKind) sem.TypeKey {
	return c.arena.Universe.Basic(kind)
}

// -----------------------------------------------------------------------------

// packageObjects checks every package level object in source order: file by
// file, position by position.
func (c *Checker) packageObjects() {
	objs := make([]sem.ObjKey, 0, len(c.objMap))
	for obj := range c.objMap {
		objs = append(objs, obj)
	}

	sort.Slice(objs, func(i, j int) bool {
		di := c.arena.Decl(c.objMap[objs[i]])
		dj := c.arena.Decl(c.objMap[objs[j]])
		if di.File != dj.File {
			return di.File < dj.File
		}

		return c.arena.Obj(objs[i]).Pos.Before(c.arena.Obj(objs[j]).Pos)
	})

	for _, obj := range objs {
		c.objDecl(obj)
	}
}

// recordUntyped flushes the provisional results of expressions that remained
// untyped into the recorded results.
func (c *Checker) recordUntyped() {
	for e, info := range c.fctx.untyped {
		c.info.RecordTypeAndValue(e, info.mode, info.typ, info.val)
	}
}

// unusedImports reports soft errors for named and dot imports that were never
// referenced, file by file in declaration order.
func (c *Checker) unusedImports() {
	for i, scopeKey := range c.fctx.fileScopes {
		c.octx.fileIdx = i

		for _, b := range c.fctx.fileImports[i] {
			if b.obj == sem.NoObj {
				if span, ok := c.fctx.unusedDotImports[scopeKey][b.pkg]; ok {
					delete(c.fctx.unusedDotImports[scopeKey], b.pkg)
					c.softErrorf(span, "%q imported and not used", c.arena.Pkg(b.pkg).Path())
				}

				continue
			}

			obj := c.arena.Obj(b.obj)
			if obj.Used() {
				continue
			}

			imported := c.arena.Pkg(obj.Imported())
			if obj.Name != imported.Name() {
				c.softErrorf(obj.Pos, "%q imported and not used as %s", imported.Path(), obj.Name)
			} else {
				c.softErrorf(obj.Pos, "%q imported and not used", imported.Path())
			}
		}
	}
}
