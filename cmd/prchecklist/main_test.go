package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testPage = "https://github.com/org/repo/pull/12"

type cli struct {
	dir  string
	base []string
}

func newCLI(t *testing.T) cli {
	t.Helper()
	for _, name := range []string{
		"PRCHECKLIST_PAGE", "PRCHECKLIST_CATALOG", "PRCHECKLIST_STORE",
		"PRCHECKLIST_STATE_PATH", "PRCHECKLIST_VERBOSE", "PRCHECKLIST_LOG_FILE",
		"PRCHECKLIST_NA_STATUS_COLUMN", "PRCHECKLIST_DESKTOP_NOTIFICATIONS",
	} {
		t.Setenv(name, "")
	}
	dir := t.TempDir()
	return cli{
		dir: dir,
		base: []string{
			"--config", filepath.Join(dir, "missing.yaml"),
			"--store", "json",
			"--state", filepath.Join(dir, "state.json"),
			"--page", testPage,
		},
	}
}

func (c cli) run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	root := newRootCmd()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(append(append([]string{}, args...), c.base...))
	err := root.Execute()
	return out.String(), err
}

func TestShowListsBuiltinCatalog(t *testing.T) {
	c := newCLI(t)
	out, err := c.run(t, "show")
	require.NoError(t, err)
	assert.Contains(t, out, "[ ] 1. Code follows the project style guide")
	assert.Contains(t, out, "[ ] 10. Feature flags and config defaults are reviewed")
}

func TestMutationsPersistAcrossInvocations(t *testing.T) {
	c := newCLI(t)

	out, err := c.run(t, "done", "2")
	require.NoError(t, err)
	assert.Contains(t, out, "chore 2 done")

	_, err = c.run(t, "exclude", "7")
	require.NoError(t, err)

	out, err = c.run(t, "add", "Screenshots", "attached")
	require.NoError(t, err)
	assert.Contains(t, out, "added chore 11: Screenshots attached")

	out, err = c.run(t, "show", "done")
	require.NoError(t, err)
	assert.Equal(t, "[x] 2. New and changed code is covered by tests\n", out)

	out, err = c.run(t, "show", "na")
	require.NoError(t, err)
	assert.Equal(t, "[-] 7. Database migrations are reversible\n", out)

	raw, err := os.ReadFile(filepath.Join(c.dir, "state.json"))
	require.NoError(t, err)
	assert.Contains(t, string(raw), "checklistState_https%3A%2F%2Fgithub.com%2Forg%2Frepo%2Fpull%2F12")
}

func TestBulkRefusedWhileExcluded(t *testing.T) {
	c := newCLI(t)
	_, err := c.run(t, "exclude", "1")
	require.NoError(t, err)

	_, err = c.run(t, "all")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not_permitted")

	_, err = c.run(t, "exclude", "1")
	require.NoError(t, err)
	out, err := c.run(t, "all")
	require.NoError(t, err)
	assert.Contains(t, out, "all chores done")
}

func TestUnknownIndexFails(t *testing.T) {
	c := newCLI(t)
	_, err := c.run(t, "done", "99")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no chore with index 99")
}

func TestReportPrintsMarkdown(t *testing.T) {
	c := newCLI(t)
	_, err := c.run(t, "done", "1")
	require.NoError(t, err)
	_, err = c.run(t, "exclude", "3")
	require.NoError(t, err)

	out, err := c.run(t, "report", "--na-status")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "-------------------\n### PR Checklist\n-------------------\n"), out)
	assert.Contains(t, out, "| 1 | Code follows the project style guide | Yes |")
	assert.Contains(t, out, "| 2 | New and changed code is covered by tests | No |")
	assert.Contains(t, out, "| 3 | All tests pass locally and in CI | Not applicable |")
}

func TestConfigFileAndFlagPrecedence(t *testing.T) {
	c := newCLI(t)
	catalogPath := filepath.Join(c.dir, "chores.json")
	require.NoError(t, os.WriteFile(catalogPath, []byte(`[{"index":1,"title":"From file"}]`), 0o644))
	configPath := filepath.Join(c.dir, "prchecklist.yaml")
	require.NoError(t, os.WriteFile(configPath, []byte("catalog: "+catalogPath+"\n"), 0o644))

	root := newRootCmd()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetArgs([]string{"show", "--config", configPath, "--store", "memory", "--page", testPage})
	require.NoError(t, root.Execute())
	assert.Equal(t, "[ ] 1. From file\n", out.String())

	out.Reset()
	root = newRootCmd()
	root.SetOut(&out)
	root.SetArgs([]string{"show", "--config", configPath, "--store", "memory", "--catalog", "builtin"})
	require.NoError(t, root.Execute())
	assert.Contains(t, out.String(), "10. Feature flags")
}

func TestMissingCatalogFails(t *testing.T) {
	c := newCLI(t)
	_, err := c.run(t, "show", "--catalog", filepath.Join(c.dir, "nope.json"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "nope.json")
}

func TestPagesListsSavedPages(t *testing.T) {
	c := newCLI(t)
	_, err := c.run(t, "done", "1")
	require.NoError(t, err)

	out, err := c.run(t, "pages")
	require.NoError(t, err)
	assert.Equal(t, testPage+"\n", out)
}
