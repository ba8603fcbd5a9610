package commits

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadFile(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		filename string
		content  string
		wantErr  bool
		validate func(t *testing.T, got []RawCommit)
	}{
		"yaml records": {
			filename: "commits.yaml",
			content: `- hash: abc1234567890
  type: feat
  scope: ui
  subject: add X
  committer:
    name: Ada
    date: 2024-05-01T12:00:00Z
  references:
    - issue: "42"
      prefix: "#"
- type: fix
  subject: fix Y
  breaking: true
`,
			validate: func(t *testing.T, got []RawCommit) {
				require.Len(t, got, 2)
				assert.Equal(t, "feat", got[0].Type)
				assert.Equal(t, "ui", got[0].Scope)
				assert.Equal(t, "42", got[0].References[0].Issue)
				assert.Equal(t, time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC), got[0].Committer.Date.UTC())
				assert.True(t, got[1].Breaking)
			},
		},
		"json records": {
			filename: "commits.json",
			content: `[
  {"hash": "abc1234567890", "type": "feat", "subject": "add X",
   "commit": {"long": "abc1234567890", "short": "abc1234"},
   "committer": {"name": "Ada", "date": "2024-05-01T12:00:00Z"},
   "notes": [{"title": "BREAKING CHANGE", "text": "gone"}]}
]`,
			validate: func(t *testing.T, got []RawCommit) {
				require.Len(t, got, 1)
				assert.Equal(t, "abc1234", got[0].Commit.Short)
				assert.True(t, got[0].IsBreaking())
				assert.Equal(t, 2024, got[0].Committer.Date.Year())
			},
		},
		"empty yaml": {
			filename: "empty.yml",
			content:  "",
			validate: func(t *testing.T, got []RawCommit) {
				assert.NotNil(t, got)
				assert.Empty(t, got)
			},
		},
		"empty json": {
			filename: "empty.json",
			content:  "  \n",
			validate: func(t *testing.T, got []RawCommit) {
				assert.Empty(t, got)
			},
		},
		"malformed json": {
			filename: "bad.json",
			content:  `[{"hash": }]`,
			wantErr:  true,
		},
		"malformed yaml": {
			filename: "bad.yaml",
			content:  "- hash: [unclosed",
			wantErr:  true,
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			path := filepath.Join(t.TempDir(), tt.filename)
			require.NoError(t, os.WriteFile(path, []byte(tt.content), 0o644))

			got, err := LoadFile(path)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			tt.validate(t, got)
		})
	}
}

func TestLoadFile_Missing(t *testing.T) {
	t.Parallel()

	_, err := LoadFile(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "opening commits file")
}
