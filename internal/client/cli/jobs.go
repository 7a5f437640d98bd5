package cli

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/dmitrijs2005/jobtracker/internal/client/models"
	"github.com/dmitrijs2005/jobtracker/internal/client/services"
)

const (
	dateLayout    = "2006-01-02"
	defaultStatus = "applied"
	clearValue    = "-"
)

// today is a test seam.
var today = func() string { return time.Now().Format(dateLayout) }

func (a *App) List(ctx context.Context) error {
	jobs, err := a.jobService.List(ctx)
	if err != nil {
		return err
	}

	if len(jobs) == 0 {
		fmt.Fprintln(a.out, "No jobs yet, use 'add' or 'import <url>'")
		return nil
	}

	tw := tabwriter.NewWriter(a.out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tSTATUS\tAPPLIED\tCOMPANY\tTITLE\tTAGS")
	for _, j := range jobs {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\n",
			j.ID, j.Status, dateOrDash(j.DateApplied), j.Company, j.Title, strings.Join(j.Tags, ","))
	}
	return tw.Flush()
}

func (a *App) Show(ctx context.Context, id string) error {
	j, err := a.jobService.Get(ctx, id)
	if err != nil {
		return err
	}
	a.printJob(j)
	return nil
}

func (a *App) Add(ctx context.Context) error {
	var (
		in  models.JobInput
		err error
	)

	if in.Title, err = a.in.text("Title"); err != nil {
		return err
	}
	if in.Company, err = a.in.text("Company"); err != nil {
		return err
	}
	if in.Link, err = a.in.text("Link"); err != nil {
		return err
	}
	if in.Status, err = a.in.textDefault("Status (applied, interviewing, offered, rejected)", defaultStatus); err != nil {
		return err
	}

	date, err := a.in.textDefault("Date applied (YYYY-MM-DD, - for none)", today())
	if err != nil {
		return err
	}
	in.DateApplied = dateInput(date)

	if in.Notes, err = a.in.multiline("Notes"); err != nil {
		return err
	}

	tags, err := a.in.text("Tags (comma separated)")
	if err != nil {
		return err
	}
	in.Tags = services.ParseTags(tags)

	j, err := a.jobService.Create(ctx, in)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Created %s\n", j.ID)
	return nil
}

// Edit prompts for every field with the current value as default.
// Entering - clears an optional field.
func (a *App) Edit(ctx context.Context, id string) error {
	j, err := a.jobService.Get(ctx, id)
	if err != nil {
		return err
	}

	in := j.Input()

	if in.Title, err = a.in.textDefault("Title", j.Title); err != nil {
		return err
	}
	if in.Company, err = a.in.textDefault("Company", j.Company); err != nil {
		return err
	}

	link, err := a.in.textDefault("Link", j.Link)
	if err != nil {
		return err
	}
	in.Link = clearable(link)

	if in.Status, err = a.in.textDefault("Status", j.Status); err != nil {
		return err
	}

	date, err := a.in.textDefault("Date applied (YYYY-MM-DD)", dateOrEmpty(j.DateApplied))
	if err != nil {
		return err
	}
	in.DateApplied = dateInput(date)

	notes, err := a.in.multilineDefault("Notes", j.Notes)
	if err != nil {
		return err
	}
	in.Notes = clearable(notes)

	tags, err := a.in.textDefault("Tags (comma separated)", strings.Join(j.Tags, ","))
	if err != nil {
		return err
	}
	in.Tags = services.ParseTags(clearable(tags))

	updated, err := a.jobService.Update(ctx, id, in)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Updated %s\n", updated.ID)
	return nil
}

func (a *App) Delete(ctx context.Context, id string) error {
	ok, err := a.in.confirm(fmt.Sprintf("Delete job %s?", id))
	if err != nil {
		return err
	}
	if !ok {
		fmt.Fprintln(a.out, "Cancelled")
		return nil
	}

	if err := a.jobService.Delete(ctx, id); err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Deleted %s\n", id)
	return nil
}

// Import scrapes a posting page, lets the user fill in what is missing and
// creates the job.
func (a *App) Import(ctx context.Context, pageURL string) error {
	p, err := a.jobService.Import(ctx, pageURL)
	if errors.Is(err, services.ErrNotPosting) {
		ok, cerr := a.in.confirm("This page does not look like a job posting. Continue?")
		if cerr != nil {
			return cerr
		}
		if !ok {
			fmt.Fprintln(a.out, "Cancelled")
			return nil
		}
	} else if err != nil {
		return err
	}

	in := p.JobInput()
	if in.Title, err = a.in.textDefault("Title", in.Title); err != nil {
		return err
	}
	if in.Company, err = a.in.textDefault("Company", in.Company); err != nil {
		return err
	}
	tags, err := a.in.text("Tags (comma separated)")
	if err != nil {
		return err
	}
	in.Tags = services.ParseTags(tags)

	j, err := a.jobService.Create(ctx, in)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Imported %s as %s\n", pageURL, j.ID)
	return nil
}

func (a *App) printJob(j *models.Job) {
	tw := tabwriter.NewWriter(a.out, 0, 4, 2, ' ', 0)
	fmt.Fprintf(tw, "ID:\t%s\n", j.ID)
	fmt.Fprintf(tw, "Title:\t%s\n", j.Title)
	fmt.Fprintf(tw, "Company:\t%s\n", j.Company)
	fmt.Fprintf(tw, "Status:\t%s\n", j.Status)
	fmt.Fprintf(tw, "Applied:\t%s\n", dateOrDash(j.DateApplied))
	fmt.Fprintf(tw, "Link:\t%s\n", j.Link)
	fmt.Fprintf(tw, "Tags:\t%s\n", strings.Join(j.Tags, ", "))
	fmt.Fprintf(tw, "Created:\t%s\n", j.CreatedAt.Local().Format(time.DateTime))
	_ = tw.Flush()
	if j.Notes != "" {
		fmt.Fprintf(a.out, "\n%s\n", j.Notes)
	}
}

func dateInput(s string) *string {
	if s = clearable(s); s == "" {
		return nil
	}
	return &s
}

func clearable(s string) string {
	if s == clearValue {
		return ""
	}
	return s
}

func dateOrEmpty(d *string) string {
	if d == nil {
		return ""
	}
	return *d
}

func dateOrDash(d *string) string {
	if d == nil {
		return clearValue
	}
	return *d
}
