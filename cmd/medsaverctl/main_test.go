package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCommandTree(t *testing.T) {
	for _, path := range [][]string{
		{"migrate"},
		{"medicines", "import"},
		{"reminders", "dispatch"},
		{"users", "promote"},
	} {
		cmd, _, err := rootCmd.Find(path)
		require.NoError(t, err, path)
		assert.Equal(t, path[len(path)-1], cmd.Name())
	}
}

func TestImportRequiresPath(t *testing.T) {
	assert.Error(t, medicinesImportCmd.Args(medicinesImportCmd, nil))
	assert.NoError(t, medicinesImportCmd.Args(medicinesImportCmd, []string{"medicines.csv"}))
	assert.Error(t, usersPromoteCmd.Args(usersPromoteCmd, []string{"a@example.com", "b@example.com"}))
}
