// Package models defines the payloads the CLI exchanges with the job tracker API.
package models

import "time"

// Job mirrors the server's job representation. DateApplied is "YYYY-MM-DD" or nil.
type Job struct {
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

// JobInput is the body of create and update requests. Empty Status lets the
// server apply its default.
type JobInput struct {
	Title       string   `json:"title"`
	Company     string   `json:"company"`
	Link        string   `json:"link,omitempty"`
	Status      string   `json:"status,omitempty"`
	DateApplied *string  `json:"date_applied"`
	Notes       string   `json:"notes,omitempty"`
	Tags        []string `json:"tags,omitempty"`
}

// Input returns the editable part of j.
func (j *Job) Input() JobInput {
	return JobInput{
		Title:       j.Title,
		Company:     j.Company,
		Link:        j.Link,
		Status:      j.Status,
		DateApplied: j.DateApplied,
		Notes:       j.Notes,
		Tags:        j.Tags,
	}
}

type User struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
}
