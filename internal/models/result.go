package models

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"
)

type TestResult struct {
	ID            string        `json:"id"`
	FirstName     string        `json:"firstName"`
	LastName      string        `json:"lastName"`
	PhysicalTest  PhysicalTest  `json:"physicalTest"`
	TheoryTest    TheoryTest    `json:"theoryTest"`
	PracticalTest PracticalTest `json:"practicalTest"`
	OverallStatus OverallStatus `json:"overallStatus"`
	CreatedAt     time.Time     `json:"createdAt"`
}

type PhysicalScores struct {
	ColorBlind  int `json:"colorBlind"`
	LongSighted int `json:"longSighted"`
	Astigmatism int `json:"astigmatism"`
	Response    int `json:"response"`
}

type PhysicalTest struct {
	PhysicalScores
	Passed bool `json:"passed"`
}

type TheoryScores struct {
	TrafficSigns int `json:"trafficSigns"`
	RoadLines    int `json:"roadLines"`
	RightOfWay   int `json:"rightOfWay"`
}

type TheoryTest struct {
	TheoryScores
	Passed bool `json:"passed"`
}

// PracticalTest is supplied by the examiner as-is. Only "passed" is read;
// any other fields are kept and written back unchanged.
type PracticalTest struct {
	Passed *bool
	Extra  map[string]json.RawMessage
}

func (p PracticalTest) MarshalJSON() ([]byte, error) {
	out := make(map[string]json.RawMessage, len(p.Extra)+1)
	for k, v := range p.Extra {
		out[k] = v
	}

	passed := json.RawMessage("null")
	if p.Passed != nil {
		passed = json.RawMessage(fmt.Sprintf("%t", *p.Passed))
	}
	out["passed"] = passed

	return json.Marshal(out)
}

func (p *PracticalTest) UnmarshalJSON(data []byte) error {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		return fmt.Errorf("practicalTest must be an object: %w", err)
	}

	p.Passed = nil
	if raw, ok := fields["passed"]; ok {
		delete(fields, "passed")
		if !bytes.Equal(bytes.TrimSpace(raw), []byte("null")) {
			var passed bool
			if err := json.Unmarshal(raw, &passed); err != nil {
				return fmt.Errorf("practicalTest.passed must be a boolean or null")
			}
			p.Passed = &passed
		}
	}

	if len(fields) == 0 {
		fields = nil
	}
	p.Extra = fields

	return nil
}

type OverallStatus string

const (
	OverallStatusPassed  OverallStatus = "passed"
	OverallStatusPending OverallStatus = "pending"
	OverallStatusFailed  OverallStatus = "failed"
)

func (s OverallStatus) String() string {
	return string(s)
}

type DayStats struct {
	Passed    int `json:"passed"`
	NotPassed int `json:"notPassed"`
}
