package commands

import (
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteExportFile(t *testing.T) {
	tests := map[string]struct {
		render     func(w io.Writer) error
		expErr     bool
		expContent string
	}{
		"A successful render should replace the existing report.": {
			render: func(w io.Writer) error {
				_, err := io.WriteString(w, "<html>new</html>")
				return err
			},
			expContent: "<html>new</html>",
		},

		"A render failing halfway should keep the existing report untouched.": {
			render: func(w io.Writer) error {
				_, _ = io.WriteString(w, "<html>ha")
				return errors.New("something")
			},
			expErr:     true,
			expContent: "<html>old</html>",
		},
	}

	for name, test := range tests {
		t.Run(name, func(t *testing.T) {
			assert := assert.New(t)
			require := require.New(t)

			dir := t.TempDir()
			path := filepath.Join(dir, "todo_export_2025_03.html")
			require.NoError(os.WriteFile(path, []byte("<html>old</html>"), 0644))

			err := writeExportFile(path, test.render)

			if test.expErr {
				assert.Error(err)
			} else {
				assert.NoError(err)
			}

			got, err := os.ReadFile(path)
			require.NoError(err)
			assert.Equal(test.expContent, string(got))

			// No temporary files are left behind.
			entries, err := os.ReadDir(dir)
			require.NoError(err)
			assert.Len(entries, 1)
		})
	}
}
