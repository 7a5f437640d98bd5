package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/jobtracker/internal/client/client"
	"github.com/dmitrijs2005/jobtracker/internal/client/models"
	"github.com/dmitrijs2005/jobtracker/internal/client/scrape"
)

// ErrNotPosting is returned by Import when the page does not look like a job posting.
var ErrNotPosting = errors.New("page does not look like a job posting")

type Scraper interface {
	Scrape(ctx context.Context, pageURL string) (scrape.Posting, bool, error)
}

type JobService interface {
	List(ctx context.Context) ([]models.Job, error)
	Get(ctx context.Context, id string) (*models.Job, error)
	Create(ctx context.Context, in models.JobInput) (*models.Job, error)
	Update(ctx context.Context, id string, in models.JobInput) (*models.Job, error)
	Delete(ctx context.Context, id string) error
	// Import scrapes pageURL. The Posting is returned even with ErrNotPosting
	// so the caller can decide to keep it.
	Import(ctx context.Context, pageURL string) (scrape.Posting, error)
}

type jobService struct {
	client  client.Client
	scraper Scraper
}

func NewJobService(c client.Client, s Scraper) JobService {
	return &jobService{client: c, scraper: s}
}

func (s *jobService) List(ctx context.Context) ([]models.Job, error) {
	return s.client.ListJobs(ctx)
}

func (s *jobService) Get(ctx context.Context, id string) (*models.Job, error) {
	return s.client.GetJob(ctx, strings.TrimSpace(id))
}

func (s *jobService) Create(ctx context.Context, in models.JobInput) (*models.Job, error) {
	return s.client.CreateJob(ctx, normalize(in))
}

func (s *jobService) Update(ctx context.Context, id string, in models.JobInput) (*models.Job, error) {
	return s.client.UpdateJob(ctx, strings.TrimSpace(id), normalize(in))
}

func (s *jobService) Delete(ctx context.Context, id string) error {
	return s.client.DeleteJob(ctx, strings.TrimSpace(id))
}

func (s *jobService) Import(ctx context.Context, pageURL string) (scrape.Posting, error) {
	pageURL = strings.TrimSpace(pageURL)
	if !strings.HasPrefix(pageURL, "http://") && !strings.HasPrefix(pageURL, "https://") {
		return scrape.Posting{}, fmt.Errorf("%w: url must start with http:// or https://", client.ErrBadRequest)
	}

	p, isJob, err := s.scraper.Scrape(ctx, pageURL)
	if err != nil {
		return scrape.Posting{}, fmt.Errorf("import: %w", err)
	}
	if !isJob {
		return p, ErrNotPosting
	}
	return p, nil
}

// normalize trims text fields, drops blank tags and turns a blank date into null.
func normalize(in models.JobInput) models.JobInput {
	in.Title = strings.TrimSpace(in.Title)
	in.Company = strings.TrimSpace(in.Company)
	in.Link = strings.TrimSpace(in.Link)
	in.Status = strings.ToLower(strings.TrimSpace(in.Status))
	in.Notes = strings.TrimSpace(in.Notes)

	if in.DateApplied != nil {
		d := strings.TrimSpace(*in.DateApplied)
		if d == "" {
			in.DateApplied = nil
		} else {
			in.DateApplied = &d
		}
	}

	tags := make([]string, 0, len(in.Tags))
	for _, t := range in.Tags {
		if t = strings.TrimSpace(t); t != "" {
			tags = append(tags, t)
		}
	}
	in.Tags = tags
	return in
}

// ParseTags splits a comma separated list.
func ParseTags(s string) []string {
	return normalize(models.JobInput{Tags: strings.Split(s, ",")}).Tags
}
