package repository

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/RubachokBoss/driving-test-service/internal/models"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestFileRepository(t *testing.T) (*FileRepository, string) {
	t.Helper()

	path := filepath.Join(t.TempDir(), "data", "testResults.json")
	repo, err := NewFileRepository(path, zerolog.Nop())
	require.NoError(t, err)

	return repo, path
}

func sampleResults() []models.TestResult {
	passed := true
	return []models.TestResult{
		{
			ID:        "1710496800000",
			FirstName: "John",
			LastName:  "Smith",
			PhysicalTest: models.PhysicalTest{
				PhysicalScores: models.PhysicalScores{ColorBlind: 1, LongSighted: 1, Astigmatism: 1, Response: 1},
				Passed:         true,
			},
			TheoryTest: models.TheoryTest{
				TheoryScores: models.TheoryScores{TrafficSigns: 40, RoadLines: 40, RightOfWay: 40},
				Passed:       true,
			},
			PracticalTest: models.PracticalTest{
				Passed: &passed,
				Extra:  map[string]json.RawMessage{"examiner": json.RawMessage(`"K. Lee"`)},
			},
			OverallStatus: models.OverallStatusPassed,
			CreatedAt:     time.Date(2024, 3, 15, 10, 0, 0, 0, time.UTC),
		},
		{
			ID:            "1710496800001",
			FirstName:     "Amy",
			LastName:      "Jones",
			OverallStatus: models.OverallStatusPending,
			CreatedAt:     time.Date(2024, 3, 15, 11, 0, 0, 0, time.UTC),
		},
	}
}

func TestNewFileRepository_SeedsEmptyCollection(t *testing.T) {
	repo, path := newTestFileRepository(t)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "[]\n", string(data))

	results, err := repo.LoadAll(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, results)
	assert.Empty(t, results)
}

func TestNewFileRepository_KeepsExistingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "testResults.json")
	require.NoError(t, os.WriteFile(path, []byte(`[{"id":"42","firstName":"Old","practicalTest":{"passed":null}}]`), 0o644))

	repo, err := NewFileRepository(path, zerolog.Nop())
	require.NoError(t, err)

	results, err := repo.LoadAll(context.Background())
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "42", results[0].ID)
	assert.Nil(t, results[0].PracticalTest.Passed)
}

func TestFileRepository_RoundTrip(t *testing.T) {
	repo, _ := newTestFileRepository(t)
	ctx := context.Background()

	want := sampleResults()
	require.NoError(t, repo.SaveAll(ctx, want))

	got, err := repo.LoadAll(ctx)
	require.NoError(t, err)
	assert.Equal(t, want, got)

	require.NoError(t, repo.SaveAll(ctx, got))
	again, err := repo.LoadAll(ctx)
	require.NoError(t, err)
	assert.Equal(t, got, again)
}

func TestFileRepository_WritesPrettyJSONArray(t *testing.T) {
	repo, path := newTestFileRepository(t)

	require.NoError(t, repo.SaveAll(context.Background(), sampleResults()[:1]))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "[\n  {\n    \"id\": \"1710496800000\"")
	assert.Contains(t, string(data), `"overallStatus": "passed"`)
	assert.Contains(t, string(data), `"createdAt": "2024-03-15T10:00:00Z"`)

	entries, err := os.ReadDir(filepath.Dir(path))
	require.NoError(t, err)
	assert.Len(t, entries, 1, "temporary files must not be left behind")
}

func TestFileRepository_MalformedFile(t *testing.T) {
	repo, path := newTestFileRepository(t)
	require.NoError(t, os.WriteFile(path, []byte(`{not json`), 0o644))

	_, err := repo.LoadAll(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrStorage)
}

func TestFileRepository_MissingFile(t *testing.T) {
	repo, path := newTestFileRepository(t)
	require.NoError(t, os.Remove(path))

	_, err := repo.LoadAll(context.Background())
	assert.ErrorIs(t, err, ErrStorage)
	assert.ErrorIs(t, repo.Ping(context.Background()), ErrStorage)
}

func TestFileRepository_CancelledContext(t *testing.T) {
	repo, _ := newTestFileRepository(t)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := repo.LoadAll(ctx)
	assert.ErrorIs(t, err, context.Canceled)
	assert.ErrorIs(t, repo.SaveAll(ctx, nil), context.Canceled)
}

func TestFileRepository_KeepsFileMode(t *testing.T) {
	repo, path := newTestFileRepository(t)

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o644), info.Mode().Perm())

	require.NoError(t, repo.SaveAll(context.Background(), sampleResults()))
	info, err = os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o644), info.Mode().Perm())

	require.NoError(t, os.Chmod(path, 0o640))
	require.NoError(t, repo.SaveAll(context.Background(), nil))
	info, err = os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o640), info.Mode().Perm())
}
