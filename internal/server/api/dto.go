package api

import (
	"time"

	"github.com/dmitrijs2005/jobtracker/internal/server/models"
	"github.com/dmitrijs2005/jobtracker/internal/server/services"
)

type credentialsRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type registerResponse struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
}

type loginResponse struct {
	Token string `json:"token"`
}

type healthResponse struct {
	Status string `json:"status"`
}

// jobRequest is the body of POST and PUT /api/jobs. date_applied may be
// omitted, null, blank or a date.
type jobRequest struct {
	Title       string   `json:"title"`
	Company     string   `json:"company"`
	Link        string   `json:"link"`
	Status      string   `json:"status"`
	DateApplied *string  `json:"date_applied"`
	Notes       string   `json:"notes"`
	Tags        []string `json:"tags"`
}

func (r jobRequest) input() services.JobInput {
	return services.JobInput{
		Title:       r.Title,
		Company:     r.Company,
		Link:        r.Link,
		Status:      r.Status,
		DateApplied: r.DateApplied,
		Notes:       r.Notes,
		Tags:        r.Tags,
	}
}

type jobResponse struct {
	ID          string    `json:"id"`
	UserID      string    `json:"user_id"`
	Title       string    `json:"title"`
	Company     string    `json:"company"`
	Link        string    `json:"link"`
	Status      string    `json:"status"`
	DateApplied *string   `json:"date_applied"`
	Notes       string    `json:"notes"`
	Tags        []string  `json:"tags"`
	CreatedAt   time.Time `json:"created_at"`
}

func newJobResponse(j *models.Job) jobResponse {
	resp := jobResponse{
		ID:        j.ID,
		UserID:    j.UserID,
		Title:     j.Title,
		Company:   j.Company,
		Link:      j.Link,
		Status:    string(j.Status),
		Notes:     j.Notes,
		Tags:      j.Tags,
		CreatedAt: j.CreatedAt,
	}
	if j.DateApplied != nil {
		d := j.DateApplied.Format(services.DateLayout)
		resp.DateApplied = &d
	}
	if resp.Tags == nil {
		resp.Tags = []string{}
	}
	return resp
}

func newJobListResponse(jobs []*models.Job) []jobResponse {
	out := make([]jobResponse, 0, len(jobs))
	for _, j := range jobs {
		out = append(out, newJobResponse(j))
	}
	return out
}
