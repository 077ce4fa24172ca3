package services

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"remontzbt.dev/internal/logging"
	"remontzbt.dev/internal/models"
)

type mockLoader struct {
	mock.Mock
}

func (m *mockLoader) LoadProjects(ctx context.Context) ([]models.Project, error) {
	args := m.Called(ctx)
	if list, ok := args.Get(0).([]models.Project); ok {
		return list, args.Error(1)
	}
	return nil, args.Error(1)
}

func sampleProjects() []models.Project {
	return []models.Project{
		{ID: 1, Title: "Студия на Пионерской", Category: "Studio"},
		{ID: 2, Title: "Однушка", Category: "1-room"},
		{ID: 3, Title: "Студия у парка", Category: "Studio"},
		{ID: 7, Title: "Двушка", Category: "2-room"},
	}
}

func TestCategoriesFirstOccurrenceOrder(t *testing.T) {
	got := Categories(sampleProjects())
	require.Equal(t, []Category{{All: true}, {Name: "Studio"}, {Name: "1-room"}, {Name: "2-room"}}, got)
}

func TestCategoriesEmptyCollection(t *testing.T) {
	require.Equal(t, []Category{{All: true}}, Categories(nil))
}

func TestCategoryNamedAllStaysSelectable(t *testing.T) {
	projects := []models.Project{{ID: 1, Category: "Studio"}, {ID: 2, Category: "all"}, {ID: 3, Category: ""}}

	cats := Categories(projects)
	require.Equal(t, []Category{{All: true}, {Name: "Studio"}, {Name: "all"}, {Name: ""}}, cats)

	got := FilterByCategory(projects, SelectCategory("all"))
	require.Len(t, got, 1)
	require.Equal(t, 2, got[0].ID)

	got = FilterByCategory(projects, SelectCategory(""))
	require.Len(t, got, 1)
	require.Equal(t, 3, got[0].ID)

	require.Len(t, FilterByCategory(projects, Selection{}), 3)
}

func TestSelectionMatchesExactlyOneEntry(t *testing.T) {
	cats := Categories([]models.Project{{Category: "Studio"}, {Category: "all"}})
	for _, sel := range []Selection{{}, SelectCategory("Studio"), SelectCategory("all")} {
		active := 0
		for _, c := range cats {
			if sel.Matches(c) {
				active++
			}
		}
		require.Equal(t, 1, active, sel)
	}
}

func TestFilterIncludesEveryProjectUnderItsCategory(t *testing.T) {
	projects := sampleProjects()
	for _, p := range projects {
		got := FilterByCategory(projects, SelectCategory(p.Category))
		require.Contains(t, got, p)
		for _, q := range got {
			require.Equal(t, p.Category, q.Category)
		}
	}
}

func TestFilterAllReturnsWholeCollectionInOrder(t *testing.T) {
	projects := sampleProjects()
	require.Equal(t, projects, FilterByCategory(projects, Selection{}))
}

func TestFilterUnknownCategoryIsEmpty(t *testing.T) {
	got := FilterByCategory(sampleProjects(), SelectCategory("Penthouse"))
	require.NotNil(t, got)
	require.Empty(t, got)
}

func TestFilterIsCaseSensitive(t *testing.T) {
	require.Empty(t, FilterByCategory(sampleProjects(), SelectCategory("studio")))
}

func TestFilterScenario(t *testing.T) {
	projects := []models.Project{{ID: 1, Category: "Studio"}, {ID: 2, Category: "1-room"}}
	got := FilterByCategory(projects, SelectCategory("1-room"))
	require.Len(t, got, 1)
	require.Equal(t, 2, got[0].ID)
}

func TestFilterDoesNotAliasSource(t *testing.T) {
	projects := sampleProjects()
	got := FilterByCategory(projects, Selection{})
	got[0].Title = "changed"
	require.Equal(t, "Студия на Пионерской", projects[0].Title)
}

func TestResolveProject(t *testing.T) {
	projects := sampleProjects()

	tests := []struct {
		name   string
		raw    string
		wantID int
		err    error
	}{
		{name: "first", raw: "1", wantID: 1},
		{name: "not at matching position", raw: "7", wantID: 7},
		{name: "surrounding spaces", raw: " 2 ", wantID: 2},
		{name: "absent", raw: "99", err: ErrProjectNotFound},
		{name: "negative", raw: "-1", err: ErrProjectNotFound},
		{name: "not a number", raw: "abc", err: ErrProjectNotFound},
		{name: "empty", raw: "", err: ErrProjectNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ResolveProject(projects, tt.raw)
			if tt.err != nil {
				require.ErrorIs(t, err, tt.err)
				require.Nil(t, got)
				return
			}
			require.NoError(t, err)
			require.Equal(t, tt.wantID, got.ID)
		})
	}
}

func TestFeatured(t *testing.T) {
	projects := sampleProjects()
	require.Len(t, Featured(projects, 3), 3)
	require.Equal(t, 1, Featured(projects, 3)[0].ID)
	require.Len(t, Featured(projects, 10), 4)
	require.Empty(t, Featured(projects, -1))
}

func TestProjectServiceLoadFailureFallsBackToEmpty(t *testing.T) {
	ctx := context.Background()
	loader := &mockLoader{}
	loadErr := &LoadError{Kind: LoadErrorRead, Source: "x", Err: os.ErrNotExist}
	loader.On("LoadProjects", ctx).Return(nil, loadErr)

	svc := NewProjectService(loader, logging.Discard())
	got, err := svc.Load(ctx)

	var le *LoadError
	require.ErrorAs(t, err, &le)
	require.NotNil(t, got)
	require.Empty(t, got)
	loader.AssertExpectations(t)
}

func TestProjectServiceLoadDropsResultAfterCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	loader := &mockLoader{}
	loader.On("LoadProjects", ctx).Run(func(mock.Arguments) { cancel() }).Return(sampleProjects(), nil)

	svc := NewProjectService(loader, logging.Discard())
	got, err := svc.Load(ctx)
	require.ErrorIs(t, err, context.Canceled)
	require.Nil(t, got)
}

func TestFileLoaderReadsFreshEachCall(t *testing.T) {
	path := filepath.Join(t.TempDir(), "projects.json")
	require.NoError(t, os.WriteFile(path, []byte(`[{"id":1,"category":"Studio"}]`), 0o644))

	loader := NewFileLoader(path)
	got, err := loader.LoadProjects(context.Background())
	require.NoError(t, err)
	require.Len(t, got, 1)

	require.NoError(t, os.WriteFile(path, []byte(`[{"id":1},{"id":2}]`), 0o644))
	got, err = loader.LoadProjects(context.Background())
	require.NoError(t, err)
	require.Len(t, got, 2)
}

func TestFileLoaderErrors(t *testing.T) {
	dir := t.TempDir()

	_, err := NewFileLoader(filepath.Join(dir, "missing.json")).LoadProjects(context.Background())
	var le *LoadError
	require.ErrorAs(t, err, &le)
	require.Equal(t, LoadErrorRead, le.Kind)
	require.True(t, errors.Is(err, os.ErrNotExist))

	bad := filepath.Join(dir, "bad.json")
	require.NoError(t, os.WriteFile(bad, []byte(`{"projects":[]}`), 0o644))
	_, err = NewFileLoader(bad).LoadProjects(context.Background())
	require.ErrorAs(t, err, &le)
	require.Equal(t, LoadErrorParse, le.Kind)
}

func TestDecodeProjectsRejectsDuplicateIDs(t *testing.T) {
	_, err := DecodeProjects("inline", []byte(`[{"id":1},{"id":1}]`))
	var le *LoadError
	require.ErrorAs(t, err, &le)
	require.Equal(t, LoadErrorParse, le.Kind)
	require.Contains(t, err.Error(), "duplicate project id 1")
}

func TestDecodeProjectsNullIsEmpty(t *testing.T) {
	got, err := DecodeProjects("inline", []byte(`null`))
	require.NoError(t, err)
	require.NotNil(t, got)
	require.Empty(t, got)
}
