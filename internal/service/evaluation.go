package service

import "github.com/RubachokBoss/driving-test-service/internal/models"

const (
	PhysicalPassThreshold = 3
	TheoryPassThreshold   = 120
)

// EvaluatePhysical sums the four eye and reaction checks. How each component
// is scored is up to the examiner; only the total is compared.
func EvaluatePhysical(scores models.PhysicalScores) bool {
	total := scores.ColorBlind + scores.LongSighted + scores.Astigmatism + scores.Response
	return total >= PhysicalPassThreshold
}

func EvaluateTheory(scores models.TheoryScores) bool {
	total := scores.TrafficSigns + scores.RoadLines + scores.RightOfWay
	return total >= TheoryPassThreshold
}

// DeriveOverallStatus returns passed only when every sub-test passed. A nil
// outcome means the sub-test has not been judged yet and yields pending; an
// explicit false always yields failed.
func DeriveOverallStatus(physical, theory, practical *bool) models.OverallStatus {
	if isTrue(physical) && isTrue(theory) && isTrue(practical) {
		return models.OverallStatusPassed
	}

	if physical == nil || theory == nil || practical == nil {
		return models.OverallStatusPending
	}

	return models.OverallStatusFailed
}

// Evaluate recomputes every derived field of result from its current scores.
func Evaluate(result *models.TestResult) {
	result.PhysicalTest.Passed = EvaluatePhysical(result.PhysicalTest.PhysicalScores)
	result.TheoryTest.Passed = EvaluateTheory(result.TheoryTest.TheoryScores)

	physical := result.PhysicalTest.Passed
	theory := result.TheoryTest.Passed
	result.OverallStatus = DeriveOverallStatus(&physical, &theory, result.PracticalTest.Passed)
}

func isTrue(v *bool) bool {
	return v != nil && *v
}
