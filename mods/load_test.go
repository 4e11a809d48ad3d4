package mods

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/nalgeon/be"
)

func writeProject(t *testing.T, contents string, dirs ...string) string {
	t.Helper()

	root := t.TempDir()
	for _, dir := range dirs {
		be.Err(t, os.MkdirAll(filepath.Join(root, dir), 0o755), nil)
	}

	be.Err(t, os.WriteFile(filepath.Join(root, ProjectFileName), []byte(contents), 0o644), nil)
	return root
}

func TestLoadProject(t *testing.T) {
	root := writeProject(t, `
[project]
name = "demo"
src-dir = "src"
import-dirs = ["vendor"]
`, "src", "vendor")

	proj, err := LoadProject(root)
	be.Err(t, err, nil)

	be.Equal(t, proj.Name, "demo")
	be.Equal(t, proj.RootDir, root)
	be.Equal(t, proj.SrcDir, filepath.Join(root, "src"))
	be.Equal(t, proj.ImportDirs, []string{filepath.Join(root, "vendor")})
}

func TestLoadProjectDefaults(t *testing.T) {
	root := writeProject(t, "[project]\nname = \"demo\"\n")

	proj, err := LoadProject(root)
	be.Err(t, err, nil)

	// The source directory defaults to the project root.
	be.Equal(t, proj.SrcDir, root)
	be.True(t, proj.ImportDirs == nil)
}

func TestLoadProjectErrors(t *testing.T) {
	cases := []struct {
		name     string
		contents string
	}{
		{"missing project table", "answer = 42\n"},
		{"missing name", "[project]\nsrc-dir = \".\"\n"},
		{"invalid name", "[project]\nname = \"not a name\"\n"},
		{"missing src dir", "[project]\nname = \"demo\"\nsrc-dir = \"nope\"\n"},
		{"missing import dir", "[project]\nname = \"demo\"\nimport-dirs = [\"nope\"]\n"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := LoadProject(writeProject(t, tc.contents))
			be.True(t, err != nil)
		})
	}
}

func TestLoadProjectMissingFile(t *testing.T) {
	_, err := LoadProject(t.TempDir())
	be.True(t, err != nil)
}

func TestIsValidIdentifier(t *testing.T) {
	be.True(t, IsValidIdentifier("demo"))
	be.True(t, IsValidIdentifier("_private"))
	be.True(t, IsValidIdentifier("v2"))
	be.True(t, !IsValidIdentifier(""))
	be.True(t, !IsValidIdentifier("2fast"))
	be.True(t, !IsValidIdentifier("has space"))
	be.True(t, !IsValidIdentifier("dash-ed"))
}
