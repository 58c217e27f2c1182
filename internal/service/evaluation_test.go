package service

import (
	"testing"

	"github.com/RubachokBoss/driving-test-service/internal/models"
	"github.com/stretchr/testify/assert"
)

func boolPtr(v bool) *bool {
	return &v
}

func TestEvaluatePhysical(t *testing.T) {
	tests := []struct {
		name   string
		scores models.PhysicalScores
		want   bool
	}{
		{"all components pass", models.PhysicalScores{ColorBlind: 1, LongSighted: 1, Astigmatism: 1, Response: 1}, true},
		{"sum exactly at threshold", models.PhysicalScores{ColorBlind: 1, LongSighted: 1, Astigmatism: 1, Response: 0}, true},
		{"sum one below threshold", models.PhysicalScores{ColorBlind: 1, LongSighted: 0, Astigmatism: 1, Response: 0}, false},
		{"all zero", models.PhysicalScores{}, false},
		{"scaled scores", models.PhysicalScores{Response: 10}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, EvaluatePhysical(tt.scores))
		})
	}
}

func TestEvaluateTheory(t *testing.T) {
	tests := []struct {
		name   string
		scores models.TheoryScores
		want   bool
	}{
		{"sum exactly at threshold", models.TheoryScores{TrafficSigns: 40, RoadLines: 40, RightOfWay: 40}, true},
		{"sum one below threshold", models.TheoryScores{TrafficSigns: 40, RoadLines: 40, RightOfWay: 39}, false},
		{"full marks", models.TheoryScores{TrafficSigns: 50, RoadLines: 50, RightOfWay: 50}, true},
		{"no answers", models.TheoryScores{}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, EvaluateTheory(tt.scores))
		})
	}
}

func TestDeriveOverallStatus(t *testing.T) {
	tests := []struct {
		name      string
		physical  *bool
		theory    *bool
		practical *bool
		want      models.OverallStatus
	}{
		{"all passed", boolPtr(true), boolPtr(true), boolPtr(true), models.OverallStatusPassed},
		{"practical not judged", boolPtr(true), boolPtr(true), nil, models.OverallStatusPending},
		{"practical failed", boolPtr(true), boolPtr(true), boolPtr(false), models.OverallStatusFailed},
		{"theory failed practical passed", boolPtr(true), boolPtr(false), boolPtr(true), models.OverallStatusFailed},
		{"failure with practical pending", boolPtr(false), boolPtr(true), nil, models.OverallStatusPending},
		{"physical not judged", nil, boolPtr(true), boolPtr(true), models.OverallStatusPending},
		{"everything failed", boolPtr(false), boolPtr(false), boolPtr(false), models.OverallStatusFailed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, DeriveOverallStatus(tt.physical, tt.theory, tt.practical))
		})
	}
}

func TestEvaluate_RecomputesDerivedFields(t *testing.T) {
	result := models.TestResult{
		PhysicalTest: models.PhysicalTest{
			PhysicalScores: models.PhysicalScores{ColorBlind: 1, LongSighted: 1, Astigmatism: 1, Response: 1},
			Passed:         false,
		},
		TheoryTest: models.TheoryTest{
			TheoryScores: models.TheoryScores{TrafficSigns: 10, RoadLines: 10, RightOfWay: 10},
			Passed:       true,
		},
		PracticalTest: models.PracticalTest{Passed: boolPtr(true)},
		OverallStatus: models.OverallStatusPassed,
	}

	Evaluate(&result)

	assert.True(t, result.PhysicalTest.Passed)
	assert.False(t, result.TheoryTest.Passed)
	assert.Equal(t, models.OverallStatusFailed, result.OverallStatus)
}
