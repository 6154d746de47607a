package domain

import (
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

func TestNewWorkspace(t *testing.T) {
	w, err := NewWorkspace("feature-x", " main ", []RepoSpec{
		{Path: "/src/api/"},
		{Name: "web-app", Path: "/src/web"},
	})
	require.NoError(t, err)

	_, err = uuid.Parse(w.ID())
	require.NoError(t, err, "workspace id should be a uuid")
	require.Equal(t, "feature-x", w.Name())
	require.Equal(t, "main", w.Branch())
	require.Nil(t, w.LastOpenedAt())
	require.False(t, w.CreatedAt().IsZero())

	repos := w.Repos()
	require.Len(t, repos, 2)
	require.Equal(t, "api", repos[0].Name)
	require.Equal(t, "/src/api", repos[0].Path)
	require.Equal(t, "web-app", repos[1].Name)
	require.NotEqual(t, repos[0].ID, repos[1].ID)

	got, ok := w.Repo(repos[1].ID)
	require.True(t, ok)
	require.Equal(t, repos[1], got)
	_, ok = w.Repo("missing")
	require.False(t, ok)
}

func TestNewWorkspace_Validation(t *testing.T) {
	tests := []struct {
		name  string
		wsNm  string
		specs []RepoSpec
		field string
	}{
		{name: "empty name", wsNm: "", specs: []RepoSpec{{Path: "/a"}}, field: "name"},
		{name: "name with space", wsNm: "my ws", specs: []RepoSpec{{Path: "/a"}}, field: "name"},
		{name: "relative path", wsNm: "ws", specs: []RepoSpec{{Path: "a"}}, field: "path"},
		{name: "duplicate path", wsNm: "ws", specs: []RepoSpec{{Path: "/a"}, {Path: "/a/"}}, field: "path"},
		{name: "duplicate repo name", wsNm: "ws", specs: []RepoSpec{{Path: "/x/a"}, {Path: "/y/a"}}, field: "repo name"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewWorkspace(tt.wsNm, "", tt.specs)
			var verr *ValidationError
			require.True(t, errors.As(err, &verr), "expected ValidationError, got %v", err)
			require.Equal(t, tt.field, verr.Field)
		})
	}
}

func TestNewWorkspace_NoRepos(t *testing.T) {
	_, err := NewWorkspace("ws", "", nil)
	require.ErrorIs(t, err, ErrNoRepos)
}

func TestReposReturnsCopy(t *testing.T) {
	w, err := NewWorkspace("ws", "", []RepoSpec{{Path: "/a"}})
	require.NoError(t, err)

	repos := w.Repos()
	repos[0].Name = "changed"
	require.Equal(t, "a", w.Repos()[0].Name)
}

func TestMarkOpened(t *testing.T) {
	w := ReconstituteWorkspace("id", "ws", "", nil, time.Unix(1, 0), time.Unix(2, 0), nil)
	at := time.Unix(100, 0)
	w.MarkOpened(at)
	require.NotNil(t, w.LastOpenedAt())
	require.True(t, w.LastOpenedAt().Equal(at))
	require.Equal(t, 0, w.RepoCount())
}

func TestNotFoundError(t *testing.T) {
	err := error(&NotFoundError{Name: "ws"})
	require.ErrorIs(t, err, ErrNotFound)
	require.Contains(t, err.Error(), `"ws"`)
	require.False(t, errors.Is(err, ErrDuplicateName))
}
