package cli

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tgienger/tms/internal/api/apitest"
	"github.com/tgienger/tms/internal/config"
	"github.com/tgienger/tms/internal/dashboard"
	"github.com/tgienger/tms/internal/models"
	"github.com/tgienger/tms/internal/session"
)

type envelope struct {
	Data json.RawMessage `json:"data"`
	Meta json.RawMessage `json:"meta"`
}

type harness struct {
	t       *testing.T
	backend *apitest.Backend
	dataDir string
}

func newHarness(t *testing.T) *harness {
	return &harness{t: t, backend: apitest.NewBackend(t), dataDir: t.TempDir()}
}

func (h *harness) run(args ...string) (envelope, error) {
	h.t.Helper()
	app := &App{cfg: &config.Config{
		Env:         "test",
		APIURL:      h.backend.URL,
		DataDir:     h.dataDir,
		PageSize:    10,
		SessionTTL:  time.Hour,
		RefreshMode: config.RefreshManual,
	}}
	cmd := newRootCmd(app, "test")
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs(args)
	defer app.close()

	if err := cmd.Execute(); err != nil {
		return envelope{}, err
	}
	var env envelope
	require.NoError(h.t, json.Unmarshal(out.Bytes(), &env), out.String())
	return env, nil
}

func (h *harness) mustRun(args ...string) envelope {
	h.t.Helper()
	env, err := h.run(args...)
	require.NoError(h.t, err)
	return env
}

func (h *harness) login() {
	h.t.Helper()
	h.mustRun("login", "--email", "jane@example.com", "--password", "secret")
}

func decode[T any](t *testing.T, raw json.RawMessage) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(raw, &v))
	return v
}

func TestProtectedCommandsNeedSession(t *testing.T) {
	h := newHarness(t)

	_, err := h.run("employees", "list")
	require.Error(t, err)
	assert.True(t, errors.Is(err, session.ErrNoSession))
	assert.Zero(t, h.backend.Calls("GET /employees"))
}

func TestLoginWhoamiLogout(t *testing.T) {
	h := newHarness(t)

	_, err := h.run("login", "--email", "jane@example.com", "--password", "wrong")
	require.Error(t, err)
	assert.Equal(t, "Invalid credentials", err.Error())

	h.login()
	me := decode[sessionOut](t, h.mustRun("whoami").Data)
	assert.Equal(t, "Jane", me.Username)
	assert.False(t, me.ExpiresAt.IsZero())

	h.mustRun("logout")
	_, err = h.run("whoami")
	assert.True(t, errors.Is(err, session.ErrNoSession))
}

func TestRegister(t *testing.T) {
	h := newHarness(t)
	photo := filepath.Join(t.TempDir(), "me.png")
	require.NoError(t, os.WriteFile(photo, []byte("png"), 0o600))

	env := h.mustRun("register", "--username", "bob", "--email", "bob@example.com",
		"--phone", "555", "--password", "pw", "--photo", photo)
	assert.Equal(t, "User registered", decode[map[string]string](t, env.Data)["message"])
	require.Len(t, h.backend.Registered, 1)
	assert.Equal(t, "me.png", h.backend.Registered[0]["photo"])
}

func TestEmployeeLifecycle(t *testing.T) {
	h := newHarness(t)
	h.login()

	created := decode[models.Employee](t, h.mustRun("employees", "add",
		"--name", "Ann", "--department", "backend", "--email", "ann@example.com", "--phone", "1").Data)
	require.False(t, created.ID.IsZero())
	assert.Equal(t, models.DepartmentBackend, created.Department)

	updated := decode[models.Employee](t, h.mustRun("employees", "update", created.ID.String(), "--phone", "2").Data)
	assert.Equal(t, "2", updated.Phone)
	assert.Equal(t, "Ann", updated.Name)

	list := decode[[]models.Employee](t, h.mustRun("employees", "list").Data)
	require.Len(t, list, 1)
	assert.Equal(t, "2", list[0].Phone)

	h.mustRun("employees", "delete", created.ID.String())
	assert.Empty(t, decode[[]models.Employee](t, h.mustRun("employees", "list").Data))

	_, err := h.run("employees", "update", "999", "--name", "X")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}

func TestInvalidEmployeeIsNotSent(t *testing.T) {
	h := newHarness(t)
	h.login()

	_, err := h.run("employees", "add", "--name", "Ann", "--department", "Backend", "--phone", "1")
	require.Error(t, err)
	assert.True(t, models.IsValidationError(err))
	assert.Zero(t, h.backend.Calls("POST /employees"))
}

func TestEmployeeListPaging(t *testing.T) {
	h := newHarness(t)
	h.login()
	for _, e := range [][2]string{{"Ann", "Backend"}, {"Bob", "Backend"}, {"Cy", "QA"}} {
		h.mustRun("employees", "add", "--name", e[0], "--department", e[1],
			"--email", e[0]+"@example.com", "--phone", "1")
	}

	env := h.mustRun("employees", "list", "--category", "backend", "--page-size", "1", "--page", "2")
	rows := decode[[]models.Employee](t, env.Data)
	require.Len(t, rows, 1)
	assert.Equal(t, "Bob", rows[0].Name)

	meta := decode[pageMeta](t, env.Meta)
	assert.Equal(t, pageMeta{Page: 2, Pages: 2, Total: 2}, meta)
}

func TestEmployeeListPastLastPageIsEmpty(t *testing.T) {
	h := newHarness(t)
	h.login()
	h.mustRun("employees", "add", "--name", "Ann", "--department", "QA", "--email", "ann@example.com", "--phone", "1")

	env := h.mustRun("employees", "list", "--page", "5")
	assert.Empty(t, decode[[]models.Employee](t, env.Data))
	assert.Equal(t, pageMeta{Page: 5, Pages: 1, Total: 1}, decode[pageMeta](t, env.Meta))

	_, err := h.run("employees", "list", "--page", "0")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "--page")
}

func TestTaskAssignAndNotifyOnce(t *testing.T) {
	h := newHarness(t)
	h.login()
	h.mustRun("employees", "add", "--name", "Ann", "--department", "QA", "--email", "ann@example.com", "--phone", "1")

	task := decode[models.Task](t, h.mustRun("tasks", "assign",
		"--title", "Ship", "--employee", "ANN@example.com", "--due", "2025-03-01").Data)
	require.False(t, task.ID.IsZero())

	h.mustRun("tasks", "notify", task.ID.String())
	require.Len(t, h.backend.Sent, 1)
	assert.Equal(t, "ann@example.com", h.backend.Sent[0]["employeeEmail"])

	_, err := h.run("tasks", "notify", task.ID.String())
	assert.ErrorIs(t, err, errAlreadyNotified)
	assert.Len(t, h.backend.Sent, 1)

	sent := decode[[]models.Task](t, h.mustRun("tasks", "list", "--category", "sent").Data)
	assert.Len(t, sent, 1)

	h.mustRun("tasks", "delete", task.ID.String())
	assert.Empty(t, decode[[]models.Task](t, h.mustRun("tasks", "list").Data))
}

func TestEmployeeImport(t *testing.T) {
	h := newHarness(t)
	h.login()
	path := filepath.Join(t.TempDir(), "staff.csv")
	require.NoError(t, os.WriteFile(path, []byte(
		"name,department,email,phone\n"+
			"Ann,Frontend,ann@example.com,1\n"+
			"Bob,,bob@example.com,2\n"+
			"Cy,QA,cy@example.com,3\n"), 0o600))

	env := h.mustRun("employees", "import", path)
	assert.Len(t, decode[[]models.Employee](t, env.Data), 2)
	assert.Equal(t, importMeta{Skipped: 1}, decode[importMeta](t, env.Meta))
	assert.Zero(t, h.backend.Calls("POST /employees"))

	env = h.mustRun("employees", "import", path, "--commit")
	meta := decode[importMeta](t, env.Meta)
	assert.True(t, meta.Committed)
	assert.Equal(t, 2, meta.Created)
	assert.Empty(t, decode[[]models.Employee](t, env.Data))
	assert.Equal(t, 2, h.backend.Calls("POST /employees"))
}

func TestTaskImport(t *testing.T) {
	h := newHarness(t)
	h.login()
	ann := decode[models.Employee](t, h.mustRun("employees", "add",
		"--name", "Ann", "--department", "QA", "--email", "ann@example.com", "--phone", "1").Data)
	path := filepath.Join(t.TempDir(), "tasks.csv")
	require.NoError(t, os.WriteFile(path, []byte(
		"Title,Email,Due Date\n"+
			"Ship,ann@example.com,2025-06-01\n"+
			"Docs,,2025-06-02\n"+
			"Test,ANN@example.com,6/3/2025\n"), 0o600))

	env := h.mustRun("tasks", "import", path)
	drafts := decode[[]models.Task](t, env.Data)
	require.Len(t, drafts, 2)
	assert.Equal(t, importMeta{Skipped: 1}, decode[importMeta](t, env.Meta))
	assert.Zero(t, h.backend.Calls("POST /tasks"))

	env = h.mustRun("tasks", "import", path, "--commit")
	meta := decode[importMeta](t, env.Meta)
	assert.True(t, meta.Committed)
	assert.Equal(t, 2, meta.Created)
	assert.Equal(t, 2, h.backend.Calls("POST /tasks"))

	tasks := decode[[]models.Task](t, h.mustRun("tasks", "list").Data)
	require.Len(t, tasks, 2)
	assert.Equal(t, "Ship", tasks[0].Title)
	assert.Equal(t, "2025-06-03", tasks[1].DueDate)
	for _, task := range tasks {
		assert.True(t, task.EmployeeID.Equal(ann.ID))
		assert.False(t, task.EmailSent)
	}
}

func TestImportReportsRejectedRows(t *testing.T) {
	h := newHarness(t)
	h.login()
	path := filepath.Join(t.TempDir(), "staff.csv")
	require.NoError(t, os.WriteFile(path, []byte(
		"name,department,email,phone\nAnn,Frontend,ann@example.com,1\n"), 0o600))
	h.backend.Fail("POST /employees", 500)

	_, err := h.run("employees", "import", path, "--commit")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "1 of 1 rows failed")
	assert.Equal(t, 1, h.backend.Calls("POST /employees"))
}

func TestInventoryItems(t *testing.T) {
	h := newHarness(t)
	h.login()

	group := decode[models.InventoryGroup](t, h.mustRun("inventory", "groups", "add", "--name", "Cables").Data)
	h.mustRun("inventory", "items", "add", group.ID.String(), "--name", "HDMI", "--quantity", "4")

	items := decode[[]models.InventoryItem](t, h.mustRun("inventory", "items", "list", group.ID.String()).Data)
	require.Len(t, items, 1)
	assert.Equal(t, 4, items[0].Quantity)

	_, err := h.run("inventory", "items", "add", group.ID.String(), "--name", "VGA", "--quantity", "many")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "--quantity")

	renamed := decode[models.InventoryGroup](t, h.mustRun("inventory", "groups", "rename", group.ID.String(), "--name", "Cabling").Data)
	assert.Equal(t, "Cabling", renamed.Name)
}

func TestTodoDefaultsToMedium(t *testing.T) {
	h := newHarness(t)
	h.login()

	todo := decode[models.WorkTodo](t, h.mustRun("todos", "add", "--title", "Plan", "--deadline", "2025-04-01").Data)
	assert.Equal(t, models.PriorityMedium, todo.Priority)

	rows := decode[[]models.WorkTodo](t, h.mustRun("todos", "list", "--category", "medium").Data)
	assert.Len(t, rows, 1)
}

func TestDashboard(t *testing.T) {
	h := newHarness(t)
	h.login()
	h.mustRun("employees", "add", "--name", "Ann", "--department", "QA", "--email", "ann@example.com", "--phone", "1")

	sum := decode[dashboard.Summary](t, h.mustRun("dashboard").Data)
	assert.Equal(t, 1, sum.Employees)
	assert.Zero(t, sum.Tasks)
}
