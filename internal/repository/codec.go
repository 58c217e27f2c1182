package repository

import (
	"encoding/json"

	"github.com/RubachokBoss/driving-test-service/internal/models"
)

// encodeResults renders the collection the way it is kept on disk:
// a pretty-printed JSON array, "[]" when empty.
func encodeResults(results []models.TestResult) ([]byte, error) {
	if results == nil {
		results = []models.TestResult{}
	}

	data, err := json.MarshalIndent(results, "", "  ")
	if err != nil {
		return nil, err
	}

	return append(data, '\n'), nil
}

func decodeResults(data []byte) ([]models.TestResult, error) {
	var results []models.TestResult
	if err := json.Unmarshal(data, &results); err != nil {
		return nil, err
	}

	if results == nil {
		results = []models.TestResult{}
	}

	return results, nil
}
