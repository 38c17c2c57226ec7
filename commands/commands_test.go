package commands

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"quillblog/app/repositories"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func run(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()

	cmd := NewRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetArgs(args)

	err := cmd.Execute()
	return out.String(), err
}

func TestInit(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "badger")

	out, err := run(t, "", "init", "--db", dbPath)
	require.NoError(t, err)
	assert.Contains(t, out, "Database initialized successfully")
	assert.DirExists(t, dbPath)

	out, err = run(t, "", "init", "--db", dbPath)
	require.NoError(t, err)
	assert.Contains(t, out, "Database already exists")
}

func TestClean(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "badger")

	out, err := run(t, "", "clean", "--db", dbPath)
	require.NoError(t, err)
	assert.Contains(t, out, "already clean")

	_, err = run(t, "", "init", "--db", dbPath)
	require.NoError(t, err)

	out, err = run(t, "n\n", "clean", "--db", dbPath)
	require.NoError(t, err)
	assert.Contains(t, out, "Operation cancelled")
	assert.DirExists(t, dbPath)

	out, err = run(t, "y\n", "clean", "--db", dbPath)
	require.NoError(t, err)
	assert.Contains(t, out, "Database cleaned successfully")
	assert.NoDirExists(t, dbPath)

	_, err = run(t, "", "init", "--db", dbPath)
	require.NoError(t, err)
	out, err = run(t, "", "clean", "--force", "--db", dbPath)
	require.NoError(t, err)
	assert.Contains(t, out, "Database cleaned successfully")
}

func TestCreateUser(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "badger")

	out, err := run(t, "", "createuser", "--db", dbPath, "--username", "editor", "--password", "password123")
	require.NoError(t, err)
	assert.Contains(t, out, `User "editor" created with id 1`)

	out, err = run(t, "", "createuser", "--db", dbPath, "--username", "editor", "--password", "password456")
	require.Error(t, err)
	assert.Contains(t, out, "username: A user with that username already exists.")

	out, err = run(t, "", "createuser", "--db", dbPath, "--username", "writer", "--password", "short")
	require.Error(t, err)
	assert.Contains(t, out, "password:")

	_, err = run(t, "", "createuser", "--db", dbPath)
	assert.Error(t, err)
}

func TestBackupAndRestore(t *testing.T) {
	tmp := t.TempDir()
	dbPath := filepath.Join(tmp, "badger")
	backupDir := filepath.Join(tmp, "backups")

	_, err := run(t, "", "backup", "--db", dbPath, "--dir", backupDir)
	assert.Error(t, err, "nothing to back up yet")

	_, err = run(t, "", "createuser", "--db", dbPath, "--username", "editor", "--password", "password123")
	require.NoError(t, err)

	out, err := run(t, "", "backup", "--db", dbPath, "--dir", backupDir)
	require.NoError(t, err)
	assert.Contains(t, out, "Database backed up successfully")

	files, err := filepath.Glob(filepath.Join(backupDir, "backup_*.db"))
	require.NoError(t, err)
	require.Len(t, files, 1)

	_, err = run(t, "", "clean", "--force", "--db", dbPath)
	require.NoError(t, err)
	_, err = run(t, "", "init", "--db", dbPath)
	require.NoError(t, err)

	out, err = run(t, "n\n", "restore", files[0], "--db", dbPath)
	require.NoError(t, err)
	assert.Contains(t, out, "Operation cancelled")

	out, err = run(t, "y\n", "restore", files[0], "--db", dbPath)
	require.NoError(t, err)
	assert.Contains(t, out, "Database restored successfully")

	store, err := repositories.Open(dbPath, nil)
	require.NoError(t, err)
	defer store.Close()
	user, err := store.Users.GetByUsername("editor")
	require.NoError(t, err)
	assert.Equal(t, 1, user.ID)
}

func TestRestoreErrors(t *testing.T) {
	tmp := t.TempDir()
	dbPath := filepath.Join(tmp, "badger")

	_, err := run(t, "", "restore", filepath.Join(tmp, "missing.db"), "--db", dbPath)
	assert.Error(t, err)

	empty := filepath.Join(tmp, "empty.db")
	require.NoError(t, os.WriteFile(empty, nil, 0o600))
	_, err = run(t, "", "restore", empty, "--db", dbPath)
	assert.Error(t, err)

	_, err = run(t, "", "restore", "--db", dbPath)
	assert.Error(t, err, "file argument is required")
}

func TestVersion(t *testing.T) {
	out, err := run(t, "", "version")
	require.NoError(t, err)
	assert.Equal(t, "quillblog "+Version+"\n", out)
}

func TestBadConfigFile(t *testing.T) {
	_, err := run(t, "", "init", "--config", filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}
