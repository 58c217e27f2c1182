package models

// Data Transfer Objects

// Score fields are pointers so a missing field can be told apart from a zero score.
type PhysicalTestInput struct {
	ColorBlind  *int `json:"colorBlind"`
	LongSighted *int `json:"longSighted"`
	Astigmatism *int `json:"astigmatism"`
	Response    *int `json:"response"`
}

type TheoryTestInput struct {
	TrafficSigns *int `json:"trafficSigns"`
	RoadLines    *int `json:"roadLines"`
	RightOfWay   *int `json:"rightOfWay"`
}

type CreateResultRequest struct {
	FirstName     string             `json:"firstName"`
	LastName      string             `json:"lastName"`
	PhysicalTest  *PhysicalTestInput `json:"physicalTest"`
	TheoryTest    *TheoryTestInput   `json:"theoryTest"`
	PracticalTest *PracticalTest     `json:"practicalTest"`
}

type UpdateResultRequest struct {
	FirstName     *string            `json:"firstName"`
	LastName      *string            `json:"lastName"`
	PhysicalTest  *PhysicalTestInput `json:"physicalTest"`
	TheoryTest    *TheoryTestInput   `json:"theoryTest"`
	PracticalTest *PracticalTest     `json:"practicalTest"`
}

type SearchQuery struct {
	FirstName string
	LastName  string
}

// StatsResponse is keyed by UTC calendar date (YYYY-MM-DD).
type StatsResponse map[string]DayStats

type MessageResponse struct {
	Message string `json:"message"`
}
