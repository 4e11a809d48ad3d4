package mods

import (
	"fmt"
	"os"
	"path/filepath"
	"unicode"

	"github.com/pelletier/go-toml"
)

// ProjectFileName is the name of the project file expected in the root
// directory of every GoScript project.
const ProjectFileName = "goscript.toml"

// Project represents a loaded and validated GoScript project.
type Project struct {
	// RootDir is the directory enclosing the project file.
	RootDir string

	// Name is the project name.
	Name string

	// SrcDir is the absolute path to the directory holding the root package.
	SrcDir string

	// ImportDirs is the list of absolute paths searched for imported
	// packages, in order.  The source directory is always searched first.
	ImportDirs []string
}

// tomlProjectFile represents the project file as it is encoded in TOML.
type tomlProjectFile struct {
	Project *tomlProject `toml:"project"`
}

// tomlProject represents a GoScript project as it is encoded in TOML.
type tomlProject struct {
	Name       string   `toml:"name"`
	SrcDir     string   `toml:"src-dir,omitempty"`
	ImportDirs []string `toml:"import-dirs,omitempty"`
}

// LoadProject loads and validates the project rooted at the given directory.
func LoadProject(path string) (*Project, error) {
	buff, err := os.ReadFile(filepath.Join(path, ProjectFileName))
	if err != nil {
		return nil, err
	}

	tpf := &tomlProjectFile{}
	if err := toml.Unmarshal(buff, tpf); err != nil {
		return nil, err
	}

	proj := &Project{RootDir: path}
	if err := validateProject(proj, tpf.Project); err != nil {
		return nil, err
	}

	return proj, nil
}

// validateProject checks that the top level project contents are valid and
// moves them over to the loaded project.
func validateProject(proj *Project, tproj *tomlProject) error {
	if tproj == nil {
		return fmt.Errorf("missing [project] table in project at %s", proj.RootDir)
	}

	if tproj.Name == "" {
		return fmt.Errorf("missing project name for project at %s", proj.RootDir)
	}

	if !IsValidIdentifier(tproj.Name) {
		return fmt.Errorf("project name `%s` must be a valid identifier", tproj.Name)
	}

	proj.Name = tproj.Name

	srcDir := tproj.SrcDir
	if srcDir == "" {
		srcDir = "."
	}

	proj.SrcDir = filepath.Join(proj.RootDir, srcDir)
	if finfo, err := os.Stat(proj.SrcDir); err != nil || !finfo.IsDir() {
		return fmt.Errorf("source directory `%s` does not exist", srcDir)
	}

	for _, dir := range tproj.ImportDirs {
		absDir := filepath.Join(proj.RootDir, dir)
		if finfo, err := os.Stat(absDir); err != nil || !finfo.IsDir() {
			return fmt.Errorf("import directory `%s` does not exist", dir)
		}

		proj.ImportDirs = append(proj.ImportDirs, absDir)
	}

	return nil
}

// IsValidIdentifier returns whether the given string would be usable as an
// identifier in a GoScript source file.
func IsValidIdentifier(name string) bool {
	for i, r := range name {
		if r == '_' || unicode.IsLetter(r) {
			continue
		}

		if i > 0 && unicode.IsDigit(r) {
			continue
		}

		return false
	}

	return name != ""
}
