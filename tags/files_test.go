package tags

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFindSourceFilesFiltersAndExcludes(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(root, "pkg"), 0750))
	require.NoError(t, os.MkdirAll(filepath.Join(root, "vendor", "dep"), 0750))
	require.NoError(t, os.MkdirAll(filepath.Join(root, ".git"), 0750))

	writeFile(t, root, "main.go", "package main\n")
	writeFile(t, root, "README.md", "# readme\n")
	writeFile(t, root, "notes.txt", "not a source file\n")
	writeFile(t, filepath.Join(root, "pkg"), "util.go", "package pkg\n")
	writeFile(t, filepath.Join(root, "vendor", "dep"), "dep.go", "package dep\n")
	writeFile(t, filepath.Join(root, ".git"), "config.go", "not really source\n")

	paths, err := FindSourceFiles(FindOptions{
		Root:        root,
		Suffixes:    []string{".go", ".md"},
		ExcludeDirs: []string{"vendor"},
	})
	require.NoError(t, err)

	var names []string
	for _, p := range paths {
		rel, err := filepath.Rel(root, p)
		require.NoError(t, err)
		names = append(names, filepath.ToSlash(rel))
	}
	assert.ElementsMatch(t, []string{"main.go", "README.md", "pkg/util.go"}, names)
}

func TestFindSourceFilesExcludesReportItself(t *testing.T) {
	root := t.TempDir()
	report := writeFile(t, root, "CODE_TAG_SUMMARY.md", "# Code Tag Summary\n")
	writeFile(t, root, "doc.md", "# doc\n")

	paths, err := FindSourceFiles(FindOptions{
		Root:       root,
		Suffixes:   []string{".md"},
		OutputPath: report,
	})
	require.NoError(t, err)
	require.Len(t, paths, 1)
	assert.Equal(t, "doc.md", filepath.Base(paths[0]))
}

func TestFindSourceFilesDeterministicOrder(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "b.go", "package b\n")
	writeFile(t, root, "a.go", "package a\n")
	writeFile(t, root, "c.go", "package c\n")

	first, err := FindSourceFiles(FindOptions{Root: root, Suffixes: []string{".go"}})
	require.NoError(t, err)
	second, err := FindSourceFiles(FindOptions{Root: root, Suffixes: []string{".go"}})
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, "a.go", filepath.Base(first[0]))
}
