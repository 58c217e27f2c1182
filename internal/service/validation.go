package service

import (
	"fmt"

	"github.com/RubachokBoss/driving-test-service/internal/models"
)

func validateCreateRequest(req *models.CreateResultRequest) error {
	if req == nil {
		return newValidationError("body", "is required")
	}

	if req.PhysicalTest == nil {
		return newValidationError("physicalTest", "is required")
	}
	if err := validatePhysicalInput(req.PhysicalTest); err != nil {
		return err
	}

	if req.TheoryTest == nil {
		return newValidationError("theoryTest", "is required")
	}
	if err := validateTheoryInput(req.TheoryTest); err != nil {
		return err
	}

	if req.PracticalTest == nil {
		return newValidationError("practicalTest", "is required")
	}

	return nil
}

// validateUpdateRequest accepts any subset of fields, but a sub-test that is
// sent must be complete.
func validateUpdateRequest(req *models.UpdateResultRequest) error {
	if req == nil {
		return newValidationError("body", "is required")
	}

	if req.PhysicalTest != nil {
		if err := validatePhysicalInput(req.PhysicalTest); err != nil {
			return err
		}
	}

	if req.TheoryTest != nil {
		if err := validateTheoryInput(req.TheoryTest); err != nil {
			return err
		}
	}

	return nil
}

// MaxScore bounds every sub-score so threshold sums cannot overflow.
const MaxScore = 1000

func validatePhysicalInput(in *models.PhysicalTestInput) error {
	return validateScores(
		scoreField{"physicalTest.colorBlind", in.ColorBlind},
		scoreField{"physicalTest.longSighted", in.LongSighted},
		scoreField{"physicalTest.astigmatism", in.Astigmatism},
		scoreField{"physicalTest.response", in.Response},
	)
}

func validateTheoryInput(in *models.TheoryTestInput) error {
	return validateScores(
		scoreField{"theoryTest.trafficSigns", in.TrafficSigns},
		scoreField{"theoryTest.roadLines", in.RoadLines},
		scoreField{"theoryTest.rightOfWay", in.RightOfWay},
	)
}

type scoreField struct {
	name  string
	value *int
}

func validateScores(fields ...scoreField) error {
	for _, f := range fields {
		switch {
		case f.value == nil:
			return newValidationError(f.name, "is required")
		case *f.value < 0 || *f.value > MaxScore:
			return newValidationError(f.name, fmt.Sprintf("must be between 0 and %d", MaxScore))
		}
	}
	return nil
}

// Inputs must be validated before conversion.
func physicalScores(in *models.PhysicalTestInput) models.PhysicalScores {
	return models.PhysicalScores{
		ColorBlind:  *in.ColorBlind,
		LongSighted: *in.LongSighted,
		Astigmatism: *in.Astigmatism,
		Response:    *in.Response,
	}
}

func theoryScores(in *models.TheoryTestInput) models.TheoryScores {
	return models.TheoryScores{
		TrafficSigns: *in.TrafficSigns,
		RoadLines:    *in.RoadLines,
		RightOfWay:   *in.RightOfWay,
	}
}
