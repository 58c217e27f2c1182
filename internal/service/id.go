package service

import (
	"strconv"
	"time"

	"github.com/RubachokBoss/driving-test-service/internal/models"
)

// idGenerator hands out millisecond-timestamp ids that never go backwards
// and never repeat an id already present in the collection. Callers must
// hold the service lock.
type idGenerator struct {
	now  func() time.Time
	last int64
}

func newIDGenerator(now func() time.Time) *idGenerator {
	return &idGenerator{now: now}
}

func (g *idGenerator) next(existing []models.TestResult) string {
	id := g.now().UnixMilli()
	if id <= g.last {
		id = g.last + 1
	}

	taken := make(map[string]struct{}, len(existing))
	for _, result := range existing {
		taken[result.ID] = struct{}{}
	}

	for {
		if _, ok := taken[strconv.FormatInt(id, 10)]; !ok {
			break
		}
		id++
	}

	g.last = id
	return strconv.FormatInt(id, 10)
}
