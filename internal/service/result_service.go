package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/RubachokBoss/driving-test-service/internal/metrics"
	"github.com/RubachokBoss/driving-test-service/internal/models"
	"github.com/RubachokBoss/driving-test-service/internal/repository"
	"github.com/RubachokBoss/driving-test-service/internal/service/integration"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

type ResultService interface {
	CreateResult(ctx context.Context, req *models.CreateResultRequest) (*models.TestResult, error)
	UpdateResult(ctx context.Context, id string, req *models.UpdateResultRequest) (*models.TestResult, error)
	DeleteResult(ctx context.Context, id string) error
	GetAllResults(ctx context.Context) ([]models.TestResult, error)
	SearchResults(ctx context.Context, query models.SearchQuery) ([]models.TestResult, error)
	GetStats(ctx context.Context) (models.StatsResponse, error)
	Ping(ctx context.Context) error
}

// resultService runs every request as load, mutate, save over the whole
// collection. mu makes it the only writer in the process.
type resultService struct {
	mu        sync.Mutex
	repo      repository.ResultRepository
	publisher integration.EventPublisher
	ids       *idGenerator
	now       func() time.Time
	metrics   *metrics.Metrics
	logger    zerolog.Logger
}

type Option func(*resultService)

// WithClock replaces time.Now; tests use it to pin ids and dates.
func WithClock(now func() time.Time) Option {
	return func(s *resultService) {
		s.now = now
		s.ids = newIDGenerator(now)
	}
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(s *resultService) {
		s.metrics = m
	}
}

func NewResultService(
	repo repository.ResultRepository,
	publisher integration.EventPublisher,
	logger zerolog.Logger,
	opts ...Option,
) ResultService {
	if publisher == nil {
		publisher = integration.NewNoopPublisher()
	}

	s := &resultService{
		repo:      repo,
		publisher: publisher,
		now:       time.Now,
		logger:    logger,
	}
	s.ids = newIDGenerator(s.now)

	for _, opt := range opts {
		opt(s)
	}

	return s
}

func (s *resultService) CreateResult(ctx context.Context, req *models.CreateResultRequest) (*models.TestResult, error) {
	if err := validateCreateRequest(req); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	results, err := s.repo.LoadAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load results: %w", err)
	}

	result := models.TestResult{
		ID:            s.ids.next(results),
		FirstName:     req.FirstName,
		LastName:      req.LastName,
		PhysicalTest:  models.PhysicalTest{PhysicalScores: physicalScores(req.PhysicalTest)},
		TheoryTest:    models.TheoryTest{TheoryScores: theoryScores(req.TheoryTest)},
		PracticalTest: *req.PracticalTest,
		CreatedAt:     s.now().UTC().Truncate(time.Millisecond),
	}
	Evaluate(&result)

	results = append(results, result)
	if err := s.repo.SaveAll(ctx, results); err != nil {
		return nil, fmt.Errorf("failed to save results: %w", err)
	}

	s.publish(ctx, models.EventResultCreated, &result)
	s.metrics.IncrementResultWrite("create", result.OverallStatus.String())

	s.logger.Info().
		Str("result_id", result.ID).
		Str("overall_status", result.OverallStatus.String()).
		Msg("Test result created")

	return &result, nil
}

// UpdateResult resolves the id before looking at the body, so an unknown id
// is reported as not found whatever the request carries.
func (s *resultService) UpdateResult(ctx context.Context, id string, req *models.UpdateResultRequest) (*models.TestResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	results, err := s.repo.LoadAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load results: %w", err)
	}

	index := indexOf(results, id)
	if index == -1 {
		return nil, fmt.Errorf("result %s: %w", id, ErrNotFound)
	}

	if err := validateUpdateRequest(req); err != nil {
		return nil, err
	}

	result := results[index]
	applyUpdate(&result, req)
	Evaluate(&result)
	results[index] = result

	if err := s.repo.SaveAll(ctx, results); err != nil {
		return nil, fmt.Errorf("failed to save results: %w", err)
	}

	s.publish(ctx, models.EventResultUpdated, &result)
	s.metrics.IncrementResultWrite("update", result.OverallStatus.String())

	s.logger.Info().
		Str("result_id", result.ID).
		Str("overall_status", result.OverallStatus.String()).
		Msg("Test result updated")

	return &result, nil
}

func (s *resultService) DeleteResult(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	results, err := s.repo.LoadAll(ctx)
	if err != nil {
		return fmt.Errorf("failed to load results: %w", err)
	}

	remaining := make([]models.TestResult, 0, len(results))
	for _, result := range results {
		if result.ID != id {
			remaining = append(remaining, result)
		}
	}

	if len(remaining) == len(results) {
		return fmt.Errorf("result %s: %w", id, ErrNotFound)
	}

	if err := s.repo.SaveAll(ctx, remaining); err != nil {
		return fmt.Errorf("failed to save results: %w", err)
	}

	s.publish(ctx, models.EventResultDeleted, &models.TestResult{ID: id})
	s.metrics.IncrementResultWrite("delete", "")

	s.logger.Info().
		Str("result_id", id).
		Msg("Test result deleted")

	return nil
}

func (s *resultService) GetAllResults(ctx context.Context) ([]models.TestResult, error) {
	return s.load(ctx)
}

func (s *resultService) SearchResults(ctx context.Context, query models.SearchQuery) ([]models.TestResult, error) {
	results, err := s.load(ctx)
	if err != nil {
		return nil, err
	}

	return FilterByName(results, query.FirstName, query.LastName), nil
}

func (s *resultService) GetStats(ctx context.Context) (models.StatsResponse, error) {
	results, err := s.load(ctx)
	if err != nil {
		return nil, err
	}

	return AggregateByDay(results), nil
}

func (s *resultService) Ping(ctx context.Context) error {
	return s.repo.Ping(ctx)
}

// load takes the lock too, so a read never races a rewrite of the store.
func (s *resultService) load(ctx context.Context) ([]models.TestResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	results, err := s.repo.LoadAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load results: %w", err)
	}

	if results == nil {
		results = []models.TestResult{}
	}

	return results, nil
}

func (s *resultService) publish(ctx context.Context, eventType string, result *models.TestResult) {
	event := &models.ResultEvent{
		EventID:       uuid.New().String(),
		EventType:     eventType,
		ResultID:      result.ID,
		OverallStatus: result.OverallStatus,
		Timestamp:     s.now().Unix(),
	}

	if err := s.publisher.PublishResultEvent(ctx, event); err != nil {
		// Storage already holds the change; a lost event is only logged.
		s.logger.Error().Err(err).
			Str("event_type", eventType).
			Str("result_id", result.ID).
			Msg("Failed to publish result event")
	}
}

// applyUpdate merges the supplied fields over result. id, createdAt and the
// derived fields are never taken from the request.
func applyUpdate(result *models.TestResult, req *models.UpdateResultRequest) {
	if req.FirstName != nil {
		result.FirstName = *req.FirstName
	}
	if req.LastName != nil {
		result.LastName = *req.LastName
	}
	if req.PhysicalTest != nil {
		result.PhysicalTest.PhysicalScores = physicalScores(req.PhysicalTest)
	}
	if req.TheoryTest != nil {
		result.TheoryTest.TheoryScores = theoryScores(req.TheoryTest)
	}
	if req.PracticalTest != nil {
		result.PracticalTest = *req.PracticalTest
	}
}

func indexOf(results []models.TestResult, id string) int {
	for i, result := range results {
		if result.ID == id {
			return i
		}
	}
	return -1
}
