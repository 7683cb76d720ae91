package repository

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func writeRoster(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "departments.csv")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestRosterRepository_Load_MissingFile(t *testing.T) {
	repo := NewCSVRosterRepository(filepath.Join(t.TempDir(), "nope.csv"))

	departments, err := repo.Load(context.Background())
	require.NoError(t, err)
	require.NotNil(t, departments)
	require.Empty(t, departments)
}

func TestRosterRepository_Load_FirstColumnOnly(t *testing.T) {
	path := writeRoster(t, "Department,Floor\nInternal Medicine,2\nSurgery,3\n,4\n\"Obstetrics, Gynecology\",5\nICU\n")

	departments, err := NewCSVRosterRepository(path).Load(context.Background())
	require.NoError(t, err)
	require.Equal(t, []string{"Internal Medicine", "Surgery", "Obstetrics, Gynecology", "ICU"}, departments)
}

func TestRosterRepository_Load_HeaderOnly(t *testing.T) {
	path := writeRoster(t, "Department\n")

	departments, err := NewCSVRosterRepository(path).Load(context.Background())
	require.NoError(t, err)
	require.Empty(t, departments)
}
