// Package apitest provides an in-memory stand-in for the REST backend so
// client, synchronizer, CLI and view tests can run against real HTTP.
package apitest

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"sync"
	"testing"

	"github.com/tgienger/tms/internal/models"
)

// Backend is a fake of the task-management REST API
type Backend struct {
	*httptest.Server

	mu        sync.Mutex
	nextID    int64
	calls     map[string]int
	failures  map[string]int // route -> status to answer with
	Employees []models.Employee
	Tasks     []models.Task
	Groups    []models.InventoryGroup
	Items     []models.InventoryItem
	Todos     []models.WorkTodo
	Sent      []map[string]any

	Users      map[string]string // email -> password
	Registered []map[string]string
}

// NewBackend starts a fake backend that is closed with the test
func NewBackend(t testing.TB) *Backend {
	t.Helper()
	b := &Backend{
		nextID:   100,
		calls:    map[string]int{},
		failures: map[string]int{},
		Users:    map[string]string{"jane@example.com": "secret"},
	}
	b.Server = httptest.NewServer(b.routes())
	t.Cleanup(b.Server.Close)
	return b
}

// Calls returns how often a route pattern (e.g. "POST /employees") was hit
func (b *Backend) Calls(route string) int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.calls[route]
}

// Fail makes the next requests to route answer with status
func (b *Backend) Fail(route string, status int) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.failures[route] = status
}

// Recover undoes Fail
func (b *Backend) Recover(route string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	delete(b.failures, route)
}

func (b *Backend) newID() models.ID {
	b.nextID++
	return models.IntID(b.nextID)
}

func (b *Backend) handle(route string, fn func(w http.ResponseWriter, r *http.Request)) (string, http.HandlerFunc) {
	return route, func(w http.ResponseWriter, r *http.Request) {
		b.mu.Lock()
		defer b.mu.Unlock()
		b.calls[route]++
		if status, ok := b.failures[route]; ok {
			writeJSON(w, status, map[string]string{"message": "forced failure"})
			return
		}
		fn(w, r)
	}
}

func (b *Backend) routes() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc(b.handle("POST /login", b.login))
	mux.HandleFunc(b.handle("POST /register", b.register))

	mux.HandleFunc(b.handle("GET /employees", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, b.Employees)
	}))
	mux.HandleFunc(b.handle("POST /employees", func(w http.ResponseWriter, r *http.Request) {
		var e models.Employee
		if !decode(w, r, &e) {
			return
		}
		e.ID = b.newID()
		b.Employees = append(b.Employees, e)
		writeJSON(w, http.StatusCreated, e)
	}))
	mux.HandleFunc(b.handle("PUT /employees/{id}", func(w http.ResponseWriter, r *http.Request) {
		var e models.Employee
		if !decode(w, r, &e) {
			return
		}
		e.ID = models.ParseID(r.PathValue("id"))
		if !replace(b.Employees, e) {
			notFound(w)
			return
		}
		writeJSON(w, http.StatusOK, map[string]string{"message": "Employee updated"})
	}))
	mux.HandleFunc(b.handle("DELETE /employees/{id}", func(w http.ResponseWriter, r *http.Request) {
		var ok bool
		b.Employees, ok = remove(b.Employees, models.ParseID(r.PathValue("id")))
		if !ok {
			notFound(w)
			return
		}
		writeJSON(w, http.StatusOK, map[string]string{"message": "Employee deleted"})
	}))

	mux.HandleFunc(b.handle("GET /tasks", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, b.Tasks)
	}))
	mux.HandleFunc(b.handle("POST /tasks", func(w http.ResponseWriter, r *http.Request) {
		var t models.Task
		if !decode(w, r, &t) {
			return
		}
		t.ID = b.newID()
		b.Tasks = append(b.Tasks, t)
		writeJSON(w, http.StatusCreated, t)
	}))
	mux.HandleFunc(b.handle("PUT /tasks/{id}", func(w http.ResponseWriter, r *http.Request) {
		var t models.Task
		if !decode(w, r, &t) {
			return
		}
		t.ID = models.ParseID(r.PathValue("id"))
		if !replace(b.Tasks, t) {
			notFound(w)
			return
		}
		writeJSON(w, http.StatusOK, map[string]string{"message": "Task updated"})
	}))
	mux.HandleFunc(b.handle("DELETE /tasks/{id}", func(w http.ResponseWriter, r *http.Request) {
		var ok bool
		b.Tasks, ok = remove(b.Tasks, models.ParseID(r.PathValue("id")))
		if !ok {
			notFound(w)
			return
		}
		writeJSON(w, http.StatusOK, map[string]string{"message": "Task deleted"})
	}))
	mux.HandleFunc(b.handle("PATCH /tasks/{id}/email-sent", func(w http.ResponseWriter, r *http.Request) {
		id := models.ParseID(r.PathValue("id"))
		for i := range b.Tasks {
			if b.Tasks[i].ID.Equal(id) {
				b.Tasks[i].EmailSent = true
				writeJSON(w, http.StatusOK, map[string]string{"message": "Email status updated"})
				return
			}
		}
		notFound(w)
	}))
	mux.HandleFunc(b.handle("POST /send-email", func(w http.ResponseWriter, r *http.Request) {
		var payload map[string]any
		if !decode(w, r, &payload) {
			return
		}
		b.Sent = append(b.Sent, payload)
		writeJSON(w, http.StatusOK, map[string]string{"message": "Email sent successfully"})
	}))

	mux.HandleFunc(b.handle("GET /inventory/groups", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, b.Groups)
	}))
	mux.HandleFunc(b.handle("POST /inventory/groups", func(w http.ResponseWriter, r *http.Request) {
		var g models.InventoryGroup
		if !decode(w, r, &g) {
			return
		}
		g.ID = b.newID()
		b.Groups = append(b.Groups, g)
		writeJSON(w, http.StatusCreated, g)
	}))
	mux.HandleFunc(b.handle("PUT /inventory/groups/{id}", func(w http.ResponseWriter, r *http.Request) {
		var g models.InventoryGroup
		if !decode(w, r, &g) {
			return
		}
		g.ID = models.ParseID(r.PathValue("id"))
		if !replace(b.Groups, g) {
			notFound(w)
			return
		}
		writeJSON(w, http.StatusOK, map[string]string{"message": "Group updated"})
	}))
	mux.HandleFunc(b.handle("DELETE /inventory/groups/{id}", func(w http.ResponseWriter, r *http.Request) {
		id := models.ParseID(r.PathValue("id"))
		var ok bool
		b.Groups, ok = remove(b.Groups, id)
		if !ok {
			notFound(w)
			return
		}
		kept := b.Items[:0]
		for _, it := range b.Items {
			if !it.GroupID.Equal(id) {
				kept = append(kept, it)
			}
		}
		b.Items = kept
		writeJSON(w, http.StatusOK, map[string]string{"message": "Group deleted"})
	}))

	mux.HandleFunc(b.handle("GET /inventory/items/{groupId}", func(w http.ResponseWriter, r *http.Request) {
		groupID := models.ParseID(r.PathValue("groupId"))
		out := []models.InventoryItem{}
		for _, it := range b.Items {
			if it.GroupID.Equal(groupID) {
				out = append(out, it)
			}
		}
		writeJSON(w, http.StatusOK, out)
	}))
	// Like the real backend, item creation only acknowledges.
	mux.HandleFunc(b.handle("POST /inventory/items", func(w http.ResponseWriter, r *http.Request) {
		var it models.InventoryItem
		if !decode(w, r, &it) {
			return
		}
		it.ID = b.newID()
		b.Items = append(b.Items, it)
		writeJSON(w, http.StatusCreated, map[string]string{"message": "Item added"})
	}))
	mux.HandleFunc(b.handle("PUT /inventory/items/{id}", func(w http.ResponseWriter, r *http.Request) {
		var it models.InventoryItem
		if !decode(w, r, &it) {
			return
		}
		id := models.ParseID(r.PathValue("id"))
		for i := range b.Items {
			if b.Items[i].ID.Equal(id) {
				b.Items[i].Name = it.Name
				b.Items[i].Quantity = it.Quantity
				writeJSON(w, http.StatusOK, map[string]string{"message": "Item updated"})
				return
			}
		}
		notFound(w)
	}))
	mux.HandleFunc(b.handle("DELETE /inventory/items/{id}", func(w http.ResponseWriter, r *http.Request) {
		var ok bool
		b.Items, ok = remove(b.Items, models.ParseID(r.PathValue("id")))
		if !ok {
			notFound(w)
			return
		}
		writeJSON(w, http.StatusOK, map[string]string{"message": "Item deleted"})
	}))

	mux.HandleFunc(b.handle("GET /worktodo", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, b.Todos)
	}))
	mux.HandleFunc(b.handle("POST /worktodo", func(w http.ResponseWriter, r *http.Request) {
		var td models.WorkTodo
		if !decode(w, r, &td) {
			return
		}
		td.ID = b.newID()
		b.Todos = append(b.Todos, td)
		writeJSON(w, http.StatusCreated, td)
	}))
	mux.HandleFunc(b.handle("PUT /worktodo/{id}", func(w http.ResponseWriter, r *http.Request) {
		var td models.WorkTodo
		if !decode(w, r, &td) {
			return
		}
		td.ID = models.ParseID(r.PathValue("id"))
		if !replace(b.Todos, td) {
			notFound(w)
			return
		}
		writeJSON(w, http.StatusOK, map[string]string{"message": "Updated"})
	}))
	mux.HandleFunc(b.handle("DELETE /worktodo/{id}", func(w http.ResponseWriter, r *http.Request) {
		var ok bool
		b.Todos, ok = remove(b.Todos, models.ParseID(r.PathValue("id")))
		if !ok {
			notFound(w)
			return
		}
		writeJSON(w, http.StatusOK, map[string]string{"message": "Deleted"})
	}))

	return mux
}

func (b *Backend) login(w http.ResponseWriter, r *http.Request) {
	var creds struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if !decode(w, r, &creds) {
		return
	}
	if pw, ok := b.Users[creds.Email]; !ok || pw != creds.Password {
		writeJSON(w, http.StatusUnauthorized, map[string]string{"message": "Invalid credentials"})
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{
		"token":    "token-" + strconv.Itoa(len(b.Users)),
		"username": "Jane",
		"photo":    "https://cdn.example.com/jane.png",
	})
}

func (b *Backend) register(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(1 << 20); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"message": "invalid form"})
		return
	}
	email := r.FormValue("email")
	if _, exists := b.Users[email]; exists {
		writeJSON(w, http.StatusConflict, map[string]string{"message": "User already exists"})
		return
	}
	entry := map[string]string{
		"username": r.FormValue("username"),
		"email":    email,
		"phone":    r.FormValue("phone"),
	}
	if _, header, err := r.FormFile("photo"); err == nil {
		entry["photo"] = header.Filename
	}
	b.Users[email] = r.FormValue("password")
	b.Registered = append(b.Registered, entry)
	writeJSON(w, http.StatusCreated, map[string]string{"message": "User registered"})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func decode(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"message": "invalid json"})
		return false
	}
	return true
}

func notFound(w http.ResponseWriter) {
	writeJSON(w, http.StatusNotFound, map[string]string{"message": "Not found"})
}

func replace[T models.Record](items []T, rec T) bool {
	for i := range items {
		if items[i].Key().Equal(rec.Key()) {
			items[i] = rec
			return true
		}
	}
	return false
}

func remove[T models.Record](items []T, id models.ID) ([]T, bool) {
	for i := range items {
		if items[i].Key().Equal(id) {
			return append(items[:i], items[i+1:]...), true
		}
	}
	return items, false
}
