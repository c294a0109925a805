package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"health-advisor/domain"
	"health-advisor/repository"
)

// Analyzer is the remote analysis and recommendation service.
type Analyzer interface {
	Analyze(ctx context.Context, session domain.Session, input domain.AnalysisRequest) (domain.AnalysisResult, error)
	Recommendations(ctx context.Context, session domain.Session) (domain.Recommendation, error)
}

type EventPublisher interface {
	Publish(ctx context.Context, record domain.SubmissionRecord) error
}

type SubmissionService struct {
	analyzer  Analyzer
	cache     repository.CacheRepository
	repo      repository.SubmissionRepository
	publisher EventPublisher
	guard     *InFlightGuard
	cacheTTL  time.Duration
	logger    *zap.Logger
	now       func() time.Time
}

// NewSubmissionService wires the submission flow. cacheTTL of zero keeps
// the last result until it is overwritten.
func NewSubmissionService(
	analyzer Analyzer,
	cache repository.CacheRepository,
	repo repository.SubmissionRepository,
	publisher EventPublisher,
	cacheTTL time.Duration,
	logger *zap.Logger,
) *SubmissionService {
	return &SubmissionService{
		analyzer:  analyzer,
		cache:     cache,
		repo:      repo,
		publisher: publisher,
		guard:     NewInFlightGuard(),
		cacheTTL:  cacheTTL,
		logger:    logger,
		now:       time.Now,
	}
}

func resultCacheKey(userID int64) string {
	return fmt.Sprintf("analysis:%d", userID)
}

// Submit validates raw input, sends it for analysis and returns the
// display-ready results. A failure at any step aborts with no retry.
func (s *SubmissionService) Submit(
	ctx context.Context,
	session domain.Session,
	raw domain.RawInput,
) (domain.ResultsView, error) {

	formKey := strconv.FormatInt(session.UserID, 10) + ":" + session.Token
	if !s.guard.Acquire(formKey) {
		return domain.ResultsView{}, ErrSubmissionInFlight
	}
	defer s.guard.Release(formKey)

	metrics, err := Validate(raw)
	if err != nil {
		return domain.ResultsView{}, err
	}

	if strings.TrimSpace(session.Token) == "" {
		return domain.ResultsView{}, ErrSessionExpired
	}

	request := domain.AnalysisRequest{
		UserID:        session.UserID,
		Height:        metrics.HeightMeters,
		Weight:        metrics.WeightKg,
		SugarFasting:  metrics.SugarFastingMgDl,
		SugarPost:     metrics.SugarPostMgDl,
		BloodPressure: BloodPressureText(metrics),
		ActivityLevel: string(metrics.ActivityLevel),
		FamilyHistory: string(metrics.FamilyHistory),
	}

	var (
		result   domain.AnalysisResult
		rec      domain.Recommendation
		fallback bool
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		r, err := s.analyzer.Analyze(gctx, session, request)
		if err != nil {
			return err
		}
		result = r
		return nil
	})
	g.Go(func() error {
		rec, fallback = s.recommendations(gctx, session)
		return nil
	})
	if err := g.Wait(); err != nil {
		s.logger.Warn("analysis failed",
			zap.Int64("user_id", session.UserID),
			zap.Error(err))
		return domain.ResultsView{}, err
	}

	display, err := MapForDisplay(result)
	if err != nil {
		s.logger.Error("analysis result rejected",
			zap.Int64("user_id", session.UserID),
			zap.Error(err))
		return domain.ResultsView{}, err
	}

	s.remember(ctx, domain.SubmissionRecord{
		ID:        uuid.NewString(),
		UserID:    session.UserID,
		Metrics:   metrics,
		Result:    result,
		CreatedAt: s.now().UTC(),
	})

	return domain.ResultsView{
		Display:         display,
		Recommendations: MapRecommendation(rec, fallback),
	}, nil
}

// LastResults renders the most recent cached analysis for the session's user.
func (s *SubmissionService) LastResults(
	ctx context.Context,
	session domain.Session,
) (domain.ResultsView, error) {

	if strings.TrimSpace(session.Token) == "" {
		return domain.ResultsView{}, ErrSessionExpired
	}

	payload, ok, err := s.cache.Get(ctx, resultCacheKey(session.UserID))
	if err != nil {
		return domain.ResultsView{}, err
	}
	if !ok {
		return domain.ResultsView{}, ErrNoResults
	}

	var result domain.AnalysisResult
	if err := json.Unmarshal([]byte(payload), &result); err != nil {
		return domain.ResultsView{}, fmt.Errorf("decode cached result: %w", err)
	}

	display, err := MapForDisplay(result)
	if err != nil {
		return domain.ResultsView{}, err
	}

	rec, fallback := s.recommendations(ctx, session)
	return domain.ResultsView{
		Display:         display,
		Recommendations: MapRecommendation(rec, fallback),
	}, nil
}

// History lists the session user's saved submissions, newest first.
func (s *SubmissionService) History(ctx context.Context, session domain.Session) ([]domain.SubmissionRecord, error) {
	if strings.TrimSpace(session.Token) == "" {
		return nil, ErrSessionExpired
	}
	return s.repo.ListByUser(ctx, session.UserID)
}

func (s *SubmissionService) recommendations(
	ctx context.Context,
	session domain.Session,
) (domain.Recommendation, bool) {
	rec, err := s.analyzer.Recommendations(ctx, session)
	if err == nil && rec.Blank() {
		err = errors.New("empty recommendation bundle")
	}
	if err != nil {
		s.logger.Warn("using fallback recommendations",
			zap.Int64("user_id", session.UserID),
			zap.Error(fmt.Errorf("%w: %v", ErrRecommendationUnavailable, err)))
		return FallbackRecommendation, true
	}
	return rec, false
}

// remember caches, stores and announces an accepted submission.
// None of these steps is critical to the user's result.
func (s *SubmissionService) remember(ctx context.Context, record domain.SubmissionRecord) {
	log := s.logger.With(zap.String("submission_id", record.ID), zap.Int64("user_id", record.UserID))

	if payload, err := json.Marshal(record.Result); err != nil {
		log.Warn("failed to encode result for cache", zap.Error(err))
	} else if err := s.cache.Set(ctx, resultCacheKey(record.UserID), string(payload), s.cacheTTL); err != nil {
		log.Warn("failed to cache analysis result", zap.Error(err))
	}

	if err := s.repo.Save(ctx, record); err != nil {
		log.Warn("failed to save submission", zap.Error(err))
	}

	if err := s.publisher.Publish(ctx, record); err != nil {
		log.Warn("failed to publish submission", zap.Error(err))
	}

	log.Info("submission accepted",
		zap.String("risk_score", string(record.Result.RiskScore)),
		zap.Float64("bmi", record.Result.BMI))
}
