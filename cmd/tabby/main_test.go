package main

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRun(t *testing.T) {
	originalArgs := os.Args
	defer func() {
		os.Args = originalArgs
	}()

	tests := []struct {
		name         string
		setup        func(t *testing.T, tmpDir string)
		args         []string
		expectedExit int
	}{
		{
			name: "version command succeeds",
			setup: func(_ *testing.T, _ string) {
			},
			args:         []string{"tabby", "version"},
			expectedExit: 0,
		},
		{
			name: "missing config file fails",
			setup: func(_ *testing.T, _ string) {
			},
			args:         []string{"tabby", "collect", "reports", "--config", "nonexistent.yaml"},
			expectedExit: 1,
		},
		{
			name: "collect with valid config succeeds",
			setup: func(t *testing.T, tmpDir string) {
				configContent := `profiles:
  reports:
    glob: "*.xlsx"
`
				require.NoError(t, os.WriteFile(tmpDir+"/tabby.yaml", []byte(configContent), 0o600))
			},
			args:         []string{"tabby", "collect", "reports"},
			expectedExit: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tmpDir := t.TempDir()
			tt.setup(t, tmpDir)

			originalWd, _ := os.Getwd()
			require.NoError(t, os.Chdir(tmpDir))
			defer func() {
				_ = os.Chdir(originalWd)
			}()

			os.Args = tt.args

			exitCode := run()
			assert.Equal(t, tt.expectedExit, exitCode)
		})
	}
}
