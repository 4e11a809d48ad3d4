package sem

import "fmt"

// Package describes a single compilation unit: its import path, its display
// name, its top level scope, its completeness flag, and its explicit import
// list.
type Package struct {
	path  string
	name  string
	scope ScopeKey

	// complete transitions false to true at most once and never reverts.  A
	// package is complete once its scope contains at least all of its
	// exported objects.
	complete bool

	// imports is the list of directly imported packages in source order.
	imports []PackageKey

	// fake marks a placeholder package substituted for an unresolvable
	// import.  Scope lookup failures against a fake package are silently
	// dropped so one broken import does not cascade into spurious undefined
	// identifier diagnostics.
	fake bool
}

// Path returns the package's import path.
func (p *Package) Path() string {
	return p.path
}

// Name returns the package's display name.
func (p *Package) Name() string {
	return p.name
}

// SetName sets the package's display name.
func (p *Package) SetName(name string) {
	p.name = name
}

// Scope returns the (complete or incomplete) package scope holding the
// objects declared at package level.
func (p *Package) Scope() ScopeKey {
	return p.scope
}

// Complete returns whether the package's scope contains at least all of its
// exported objects.
func (p *Package) Complete() bool {
	return p.complete
}

// MarkComplete marks the package as complete.  The flag never reverts.
func (p *Package) MarkComplete() {
	p.complete = true
}

// Imports returns the list of directly imported packages in source order.
func (p *Package) Imports() []PackageKey {
	return p.imports
}

// SetImports sets the list of explicitly imported packages.  It is the
// caller's responsibility to keep the list elements unique.
func (p *Package) SetImports(pkgs []PackageKey) {
	p.imports = pkgs
}

// Fake returns whether the package is an unresolved-import placeholder.
func (p *Package) Fake() bool {
	return p.fake
}

// MarkFake marks the package as an unresolved-import placeholder.
func (p *Package) MarkFake() {
	p.fake = true
}

func (p *Package) String() string {
	return fmt.Sprintf("package %s (%s)", p.name, p.path)
}
