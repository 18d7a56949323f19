package tests

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/IvanChernomyrdin/projectkeeper/internal/agent/config"
)

func TestDefaultPath_UnderHomeDir(t *testing.T) {
	home, err := os.UserHomeDir()
	require.NoError(t, err)

	p, err := config.DefaultPath()
	require.NoError(t, err)
	require.Equal(t, filepath.Join(home, ".projectkeeper", "credentials.json"), p)
}

func TestLoad_MissingFile_EmptyCredentials(t *testing.T) {
	creds, err := config.Load(filepath.Join(t.TempDir(), "nope.json"))
	require.NoError(t, err)
	require.NotNil(t, creds)
	require.Equal(t, config.Credentials{}, *creds)
	require.False(t, creds.LoggedIn())
}

func TestSave_ThenLoad(t *testing.T) {
	// вложенная директория создаётся сама
	p := filepath.Join(t.TempDir(), "a", "b", "credentials.json")

	want := config.Credentials{
		Token:     "tok-1",
		Email:     "test@example.com",
		ServerURL: "http://127.0.0.1:8080",
	}
	require.NoError(t, config.Save(p, &want))

	got, err := config.Load(p)
	require.NoError(t, err)
	require.Equal(t, want, *got)
	require.True(t, got.LoggedIn())

	// временный файл не остаётся
	_, err = os.Stat(p + ".tmp")
	require.True(t, os.IsNotExist(err))

	if runtime.GOOS != "windows" {
		st, err := os.Stat(p)
		require.NoError(t, err)
		require.Zero(t, st.Mode().Perm()&0o077, "group/other must have no access, got %o", st.Mode().Perm())
	}
}

func TestSave_Overwrites(t *testing.T) {
	p := filepath.Join(t.TempDir(), "credentials.json")

	require.NoError(t, config.Save(p, &config.Credentials{Token: "old"}))
	require.NoError(t, config.Save(p, &config.Credentials{Token: "new"}))

	got, err := config.Load(p)
	require.NoError(t, err)
	require.Equal(t, "new", got.Token)
}

func TestLoad_BadJSON(t *testing.T) {
	p := filepath.Join(t.TempDir(), "credentials.json")
	require.NoError(t, os.WriteFile(p, []byte("{bad-json"), 0o600))

	_, err := config.Load(p)
	require.Error(t, err)
}

func TestClear(t *testing.T) {
	p := filepath.Join(t.TempDir(), "credentials.json")
	require.NoError(t, config.Save(p, &config.Credentials{Token: "tok"}))

	require.NoError(t, config.Clear(p))
	_, err := os.Stat(p)
	require.True(t, os.IsNotExist(err))

	// повторный вызов не ошибка
	require.NoError(t, config.Clear(p))
}

func TestLoggedIn_NilAndBlank(t *testing.T) {
	var nilCreds *config.Credentials
	require.False(t, nilCreds.LoggedIn())
	require.False(t, (&config.Credentials{Token: "   "}).LoggedIn())
}
