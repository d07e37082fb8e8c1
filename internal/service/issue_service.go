package service

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"gorm.io/gorm"

	"civictrack/internal/cache"
	"civictrack/internal/errors"
	"civictrack/internal/model"
	"civictrack/internal/repository"
)

const (
	statsCacheKey = "stats"
	statsCacheTTL = 30 * time.Second
)

// Stats holds the read-only aggregates for the dashboard.
type Stats struct {
	TotalIssues    int64 `json:"total_issues"`
	ResolvedIssues int64 `json:"resolved_issues"`
	ActiveUsers    int64 `json:"active_users"`
}

// IssueService orchestrates issue creation, listing, voting, status
// transitions, and stats aggregation.
type IssueService interface {
	Create(ctx context.Context, input CreateIssueInput) (*model.Issue, error)
	List(ctx context.Context) ([]model.Issue, error)
	Vote(ctx context.Context, id uint, userID string) (int, error)
	SetStatus(ctx context.Context, id uint, status string) (*model.Issue, error)
	Stats(ctx context.Context) (*Stats, error)
	SeedSampleIssues(ctx context.Context) (int, error)
}

type issueService struct {
	issueRepo repository.IssueRepository
	userRepo  repository.UserRepository
	cache     *cache.Client
	validator *IssueValidator
	now       func() time.Time
}

// NewIssueService creates a new issue service.
func NewIssueService(
	issueRepo repository.IssueRepository,
	userRepo repository.UserRepository,
	cache *cache.Client,
) IssueService {
	return &issueService{
		issueRepo: issueRepo,
		userRepo:  userRepo,
		cache:     cache,
		validator: NewIssueValidator(),
		now:       func() time.Time { return time.Now().UTC() },
	}
}

// Create validates the payload and persists a new issue with status
// "reported", a single founding vote, and both timestamps set to now.
func (s *issueService) Create(ctx context.Context, input CreateIssueInput) (*model.Issue, error) {
	record, err := s.validator.ValidateCreate(input)
	if err != nil {
		return nil, err
	}

	now := s.now()
	issue := &model.Issue{
		Title:       record.Title,
		Description: record.Description,
		Category:    record.Category,
		Location:    record.Location,
		Status:      model.StatusReported,
		Votes:       1,
		CreatedAt:   now,
		UpdatedAt:   now,
		Latitude:    record.Latitude,
		Longitude:   record.Longitude,
		ReporterID:  record.ReporterID,
	}

	if err := s.issueRepo.Create(ctx, issue); err != nil {
		return nil, err
	}

	// Denormalized counter; a failure here never fails the report.
	if err := s.userRepo.IncrementIssuesReported(ctx, issue.ReporterID); err != nil {
		log.Printf("increment issues_reported for %q: %v", issue.ReporterID, err)
	}

	s.invalidateStats(ctx)
	return issue, nil
}

// List returns all issues newest first.
func (s *issueService) List(ctx context.Context) ([]model.Issue, error) {
	return s.issueRepo.List(ctx)
}

// Vote increments the vote counter of an existing issue by exactly one and
// returns the new count. The increment serializes through the store, so
// concurrent votes on the same id all land.
func (s *issueService) Vote(ctx context.Context, id uint, userID string) (int, error) {
	votes, err := s.issueRepo.IncrementVotes(ctx, id, s.now())
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return 0, errors.ErrIssueNotFound
		}
		return 0, err
	}

	if userID != "" {
		if err := s.userRepo.IncrementVotesCast(ctx, userID); err != nil {
			log.Printf("increment votes_cast for %q: %v", userID, err)
		}
	}

	s.invalidateStats(ctx)
	return votes, nil
}

// SetStatus moves an existing issue to the given workflow state. Any state is
// reachable from any other; the only constraint is enum membership.
func (s *issueService) SetStatus(ctx context.Context, id uint, status string) (*model.Issue, error) {
	newStatus := model.Status(status)
	if !newStatus.Valid() {
		return nil, errors.ErrInvalidStatus
	}

	issue, err := s.issueRepo.FindByID(ctx, id)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.ErrIssueNotFound
		}
		return nil, err
	}

	now := s.now()
	if err := s.issueRepo.UpdateStatus(ctx, id, newStatus, now); err != nil {
		return nil, err
	}

	issue.Status = newStatus
	issue.UpdatedAt = now
	s.invalidateStats(ctx)
	return issue, nil
}

// Stats computes the aggregate counters, serving from cache when fresh. The
// distinct-reporter count is floored at one so an empty or placeholder-only
// table never reads as "no active citizens".
func (s *issueService) Stats(ctx context.Context) (*Stats, error) {
	if data, _ := s.cache.Get(ctx, statsCacheKey); data != nil {
		var cached Stats
		if err := json.Unmarshal(data, &cached); err == nil {
			return &cached, nil
		}
	}

	total, err := s.issueRepo.Count(ctx)
	if err != nil {
		return nil, err
	}
	resolved, err := s.issueRepo.CountByStatus(ctx, model.StatusResolved)
	if err != nil {
		return nil, err
	}
	reporters, err := s.issueRepo.CountDistinctReporters(ctx)
	if err != nil {
		return nil, err
	}
	if reporters < 1 {
		reporters = 1
	}

	stats := &Stats{
		TotalIssues:    total,
		ResolvedIssues: resolved,
		ActiveUsers:    reporters,
	}

	if payload, err := json.Marshal(stats); err == nil {
		_ = s.cache.Set(ctx, statsCacheKey, payload, statsCacheTTL)
	}
	return stats, nil
}

// SeedSampleIssues inserts the bootstrap rows into an empty store. Running it
// against a non-empty store is a no-op, so it is safe to call on every start.
func (s *issueService) SeedSampleIssues(ctx context.Context) (int, error) {
	total, err := s.issueRepo.Count(ctx)
	if err != nil {
		return 0, err
	}
	if total > 0 {
		return 0, nil
	}

	now := s.now()
	samples := []model.Issue{
		{
			Title:       "Large pothole on Main Street",
			Description: "Deep pothole causing traffic issues and vehicle damage",
			Category:    model.CategoryRoads,
			Location:    "Main Street near City Hall",
			Status:      model.StatusReported,
			Votes:       12,
		},
		{
			Title:       "Broken street light",
			Description: "Street light not working for 3 days, creating safety concerns",
			Category:    model.CategoryLighting,
			Location:    "Park Avenue & 5th Street",
			Status:      model.StatusProgress,
			Votes:       8,
		},
		{
			Title:       "Water leak on sidewalk",
			Description: "Continuous water leak creating puddles and wasting water",
			Category:    model.CategoryWater,
			Location:    "Oak Street",
			Status:      model.StatusResolved,
			Votes:       15,
		},
	}
	for i := range samples {
		samples[i].ReporterID = model.DefaultReporterID
		samples[i].CreatedAt = now
		samples[i].UpdatedAt = now
	}

	if err := s.issueRepo.CreateBatch(ctx, samples); err != nil {
		return 0, err
	}

	s.invalidateStats(ctx)
	return len(samples), nil
}

func (s *issueService) invalidateStats(ctx context.Context) {
	_ = s.cache.Delete(ctx, statsCacheKey)
}
