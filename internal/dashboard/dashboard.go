// Package dashboard computes the summary shown on the home screen and by
// the dashboard command.
package dashboard

import (
	"context"
	"sort"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/tgienger/tms/internal/models"
)

// DepartmentCount is the head count of one department
type DepartmentCount struct {
	Department models.Department `json:"department"`
	Employees  int               `json:"employees"`
}

// Summary is the aggregate view of employees and tasks
type Summary struct {
	Employees   int               `json:"employees"`
	Departments []DepartmentCount `json:"departments"`
	Tasks       int               `json:"tasks"`
	Pending     int               `json:"pending"` // email not sent yet
	Sent        int               `json:"sent"`
	Overdue     int               `json:"overdue"`
	Upcoming    []models.Task     `json:"upcoming"`
}

// UpcomingLimit caps Summary.Upcoming
const UpcomingLimit = 5

// Summarize aggregates employees and tasks as of now
func Summarize(employees []models.Employee, tasks []models.Task, now time.Time) Summary {
	s := Summary{Employees: len(employees), Tasks: len(tasks)}

	counts := make(map[models.Department]int, len(models.Departments))
	for _, e := range employees {
		counts[e.Department]++
	}
	for _, d := range models.Departments {
		s.Departments = append(s.Departments, DepartmentCount{Department: d, Employees: counts[d]})
	}

	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	var upcoming []models.Task
	for _, t := range tasks {
		if t.EmailSent {
			s.Sent++
		} else {
			s.Pending++
		}
		due := t.Due()
		if due.IsZero() {
			continue
		}
		if due.Before(today) {
			s.Overdue++
			continue
		}
		upcoming = append(upcoming, t)
	}
	sort.SliceStable(upcoming, func(i, j int) bool { return upcoming[i].Due().Before(upcoming[j].Due()) })
	if len(upcoming) > UpcomingLimit {
		upcoming = upcoming[:UpcomingLimit]
	}
	s.Upcoming = upcoming
	return s
}

// Lister fetches one collection
type Lister[T any] interface {
	List(ctx context.Context) ([]T, error)
}

// Load fetches employees and tasks concurrently
func Load(ctx context.Context, employees Lister[models.Employee], tasks Lister[models.Task]) ([]models.Employee, []models.Task, error) {
	var (
		emps []models.Employee
		tsks []models.Task
	)
	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		emps, err = employees.List(ctx)
		return err
	})
	g.Go(func() error {
		var err error
		tsks, err = tasks.List(ctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, nil, err
	}
	return emps, tsks, nil
}
