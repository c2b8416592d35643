package importer

import (
	"strconv"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/tgienger/tms/internal/models"
)

// Parsed is the outcome of mapping rows to records
type Parsed[T any] struct {
	Records []T
	Skipped int // rows missing a required field
}

// EmployeeRows maps rows with name, department, email and phone columns.
// Rows missing any of them are skipped.
func EmployeeRows(rows []Row) (Parsed[models.Employee], error) {
	var out Parsed[models.Employee]
	for _, r := range rows {
		e := models.Employee{
			Name:       r.Get("name"),
			Department: models.ParseDepartment(r.Get("department")),
			Email:      r.Get("email"),
			Phone:      r.Get("phone"),
		}
		if e.Name == "" || e.Department == "" || e.Email == "" || e.Phone == "" {
			out.Skipped++
			continue
		}
		out.Records = append(out.Records, e)
	}
	if len(out.Records) == 0 {
		return out, ErrNoValidRecords
	}
	return out, nil
}

// TaskRows maps rows with title, employee email and due date columns. The
// assignee is resolved by email against employees; unknown emails skip the row.
func TaskRows(rows []Row, employees []models.Employee) (Parsed[models.Task], error) {
	byEmail := make(map[string]models.ID, len(employees))
	for _, e := range employees {
		byEmail[strings.ToLower(strings.TrimSpace(e.Email))] = e.ID
	}

	var out Parsed[models.Task]
	for _, r := range rows {
		title := r.Get("title", "task")
		email := strings.ToLower(r.Get("employeeemail", "email", "employee"))
		due, ok := normalizeDate(r.Get("duedate", "due", "deadline"))
		empID, known := byEmail[email]
		if title == "" || email == "" || !ok || !known {
			out.Skipped++
			continue
		}
		out.Records = append(out.Records, models.Task{Title: title, EmployeeID: empID, DueDate: due})
	}
	if len(out.Records) == 0 {
		return out, ErrNoValidRecords
	}
	return out, nil
}

var dateFormats = []string{
	models.DateLayout,
	"1/2/2006",
	"01/02/2006",
	"2006/01/02",
	"1-2-2006",
	time.RFC3339,
}

// normalizeDate accepts ISO dates, common US formats and Excel date serials
func normalizeDate(value string) (string, bool) {
	value = strings.TrimSpace(value)
	if value == "" {
		return "", false
	}
	if serial, err := strconv.ParseFloat(value, 64); err == nil {
		if serial < 1 || serial > 2958465 {
			return "", false
		}
		t, err := excelize.ExcelDateToTime(serial, false)
		if err != nil {
			return "", false
		}
		return t.Format(models.DateLayout), true
	}
	for _, layout := range dateFormats {
		if t, err := time.Parse(layout, value); err == nil {
			return t.Format(models.DateLayout), true
		}
	}
	return "", false
}
