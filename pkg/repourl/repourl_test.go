package repourl

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuild(t *testing.T) {
	tests := []struct {
		name    string
		url     string
		typ     Type
		repoDir string
		file    string
		want    string
	}{
		{"github", "https://git.example.com", GitHub, "", "foo/bar.proto", "https://git.example.com/blob/main/foo/bar.proto#L42"},
		{"github with repo dir", "https://git.example.com", GitHub, "myrepodir", "foo/bar.proto", "https://git.example.com/blob/main/myrepodir/foo/bar.proto#L42"},
		{"github extra slashes", "https://git.example.com/", GitHub, "/myrepodir/", "/foo/bar.proto", "https://git.example.com/blob/main/myrepodir/foo/bar.proto#L42"},
		{"bitbucket", "https://git.example.com", Bitbucket, "", "foo/bar.proto", "https://git.example.com/src/main/foo/bar.proto#lines-42"},
		{"bitbucket with repo dir", "https://git.example.com", Bitbucket, "myrepodir", "foo/bar.proto", "https://git.example.com/src/main/myrepodir/foo/bar.proto#lines-42"},
		{"bitbucket extra slashes", "https://git.example.com/", Bitbucket, "/myrepodir/", "/foo/bar.proto", "https://git.example.com/src/main/myrepodir/foo/bar.proto#lines-42"},
		{"gitlab", "https://git.example.com", GitLab, "", "foo/bar.proto", "https://git.example.com/-/blob/main/foo/bar.proto#L41"},
		{"gitlab with repo dir", "https://git.example.com", GitLab, "myrepodir", "foo/bar.proto", "https://git.example.com/-/blob/main/myrepodir/foo/bar.proto#L41"},
		{"gitlab extra slashes", "https://git.example.com/", GitLab, "/myrepodir/", "/foo/bar.proto", "https://git.example.com/-/blob/main/myrepodir/foo/bar.proto#L41"},
		{"none", "https://git.example.com", None, "", "foo/bar.proto", ""},
		{"no url", "", GitHub, "", "foo/bar.proto", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Build(tt.url, tt.typ, "main", tt.repoDir, tt.file, 41))
		})
	}
}

func TestParseType(t *testing.T) {
	for in, want := range map[string]Type{
		"":          GitHub,
		"github":    GitHub,
		"GitLab":    GitLab,
		"bitbucket": Bitbucket,
		"none":      None,
	} {
		got, err := ParseType(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}

	_, err := ParseType("sourceforge")
	assert.Error(t, err)
}
