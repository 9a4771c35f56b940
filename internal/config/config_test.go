package config

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
)

func chdir(t *testing.T, dir string) {
	t.Helper()
	old, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() {
		if err := os.Chdir(old); err != nil {
			t.Fatal(err)
		}
	})
}

func TestLoadDotEnv_FindsFilesInPriorityOrder(t *testing.T) {
	dir := t.TempDir()
	chdir(t, dir)

	assert.Nil(t, LoadDotEnv())

	assert.NoError(t, os.WriteFile(".env", []byte("DOTENV_CHECK_A=from-env\n"), 0o644))
	assert.NoError(t, os.WriteFile(".env.local", []byte("DOTENV_CHECK_A=from-local\n"), 0o644))

	t.Setenv("DOTENV_CHECK_A", "")
	os.Unsetenv("DOTENV_CHECK_A")

	found := LoadDotEnv()

	assert.Equal(t, []string{".env.local", ".env"}, found)
	assert.Equal(t, "from-local", os.Getenv("DOTENV_CHECK_A"))
}

func TestLoadDotEnv_OSEnvWins(t *testing.T) {
	dir := t.TempDir()
	chdir(t, dir)

	assert.NoError(t, os.WriteFile(".env", []byte("DOTENV_CHECK_B=from-file\n"), 0o644))
	t.Setenv("DOTENV_CHECK_B", "from-os")

	LoadDotEnv()

	assert.Equal(t, "from-os", os.Getenv("DOTENV_CHECK_B"))
}
