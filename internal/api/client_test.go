package api_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tgienger/tms/internal/api"
	"github.com/tgienger/tms/internal/api/apitest"
	"github.com/tgienger/tms/internal/models"
)

func TestEmployeesCRUD(t *testing.T) {
	backend := apitest.NewBackend(t)
	client := api.New(backend.URL)
	ctx := context.Background()

	created, err := client.Employees().Create(ctx, models.Employee{
		Name: "Ann", Department: models.DepartmentFrontend, Email: "ann@example.com", Phone: "555",
	})
	require.NoError(t, err)
	assert.False(t, created.ID.IsZero())
	assert.Equal(t, "Ann", created.Name)

	created.Name = "Ann B."
	require.NoError(t, client.Employees().Update(ctx, created.ID, created))

	list, err := client.Employees().List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "Ann B.", list[0].Name)

	require.NoError(t, client.Employees().Delete(ctx, created.ID))
	list, err = client.Employees().List(ctx)
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestErrorCarriesServerMessage(t *testing.T) {
	backend := apitest.NewBackend(t)
	client := api.New(backend.URL)

	err := client.Employees().Delete(context.Background(), models.ParseID("999"))
	require.Error(t, err)
	assert.Equal(t, http.StatusNotFound, api.StatusOf(err))
	assert.Equal(t, "Not found", api.MessageOf(err, "fallback"))
	assert.Equal(t, "Not found", err.Error())
}

func TestErrorFieldFallback(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"error":"bad thing"}`))
	}))
	defer srv.Close()

	_, err := api.New(srv.URL).WorkTodos().List(context.Background())
	require.Error(t, err)
	assert.Equal(t, "bad thing", api.MessageOf(err, "fallback"))
}

func TestErrorWithoutBodyUsesFallback(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	_, err := api.New(srv.URL).Groups().List(context.Background())
	require.Error(t, err)
	assert.Equal(t, "Failed to load groups", api.MessageOf(err, "Failed to load groups"))
	assert.Contains(t, err.Error(), "Internal Server Error")
}

func TestBearerToken(t *testing.T) {
	var got string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = r.Header.Get("Authorization")
		_, _ = w.Write([]byte(`[]`))
	}))
	defer srv.Close()

	client := api.New(srv.URL, api.WithToken(func() string { return "abc" }))
	_, err := client.Employees().List(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Bearer abc", got)
}

func TestNoTokenNoHeader(t *testing.T) {
	got := "unset"
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = r.Header.Get("Authorization")
		_, _ = w.Write([]byte(`[]`))
	}))
	defer srv.Close()

	_, err := api.New(srv.URL).Employees().List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestTimeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
		_, _ = w.Write([]byte(`[]`))
	}))
	defer srv.Close()

	_, err := api.New(srv.URL, api.WithTimeout(20*time.Millisecond)).Employees().List(context.Background())
	require.Error(t, err)
	assert.Zero(t, api.StatusOf(err))
}

func TestLogin(t *testing.T) {
	backend := apitest.NewBackend(t)
	client := api.New(backend.URL)

	res, err := client.Login(context.Background(), api.Credentials{Email: "jane@example.com", Password: "secret"})
	require.NoError(t, err)
	assert.NotEmpty(t, res.Token)
	assert.Equal(t, "Jane", res.Username)
	assert.NotEmpty(t, res.Photo)

	_, err = client.Login(context.Background(), api.Credentials{Email: "jane@example.com", Password: "nope"})
	require.Error(t, err)
	assert.Equal(t, http.StatusUnauthorized, api.StatusOf(err))
	assert.Equal(t, "Invalid credentials", api.MessageOf(err, ""))
}

func TestLoginWithoutToken(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"username":"x"}`))
	}))
	defer srv.Close()

	_, err := api.New(srv.URL).Login(context.Background(), api.Credentials{Email: "a", Password: "b"})
	require.Error(t, err)
}

func TestRegisterMultipart(t *testing.T) {
	backend := apitest.NewBackend(t)
	client := api.New(backend.URL)

	msg, err := client.Register(context.Background(), api.Registration{
		Username:  "bob",
		Email:     "bob@example.com",
		Phone:     "123",
		Password:  "pw",
		PhotoName: "bob.png",
		Photo:     strings.NewReader("png-bytes"),
	})
	require.NoError(t, err)
	assert.Equal(t, "User registered", msg)
	require.Len(t, backend.Registered, 1)
	assert.Equal(t, "bob", backend.Registered[0]["username"])
	assert.Equal(t, "bob.png", backend.Registered[0]["photo"])

	_, err = client.Register(context.Background(), api.Registration{Username: "bob", Email: "bob@example.com", Password: "pw"})
	require.Error(t, err)
	assert.Equal(t, "User already exists", api.MessageOf(err, ""))
}

func TestNotifyAndMarkSent(t *testing.T) {
	backend := apitest.NewBackend(t)
	client := api.New(backend.URL)
	ctx := context.Background()

	task, err := client.Tasks().Create(ctx, models.Task{Title: "Ship", EmployeeID: models.ParseID("7"), DueDate: "2025-01-31"})
	require.NoError(t, err)

	msg, err := client.Tasks().SendNotification(ctx, api.NewNotification(task, models.Employee{Name: "Ann", Email: "ann@example.com"}))
	require.NoError(t, err)
	assert.Equal(t, "Email sent successfully", msg)
	require.Len(t, backend.Sent, 1)
	assert.Equal(t, "ann@example.com", backend.Sent[0]["employeeEmail"])
	assert.Equal(t, "Ship", backend.Sent[0]["taskTitle"])

	require.NoError(t, client.Tasks().MarkNotified(ctx, task.ID))
	tasks, err := client.Tasks().List(ctx)
	require.NoError(t, err)
	require.Len(t, tasks, 1)
	assert.True(t, tasks[0].EmailSent)
}

func TestItemsListedPerGroup(t *testing.T) {
	backend := apitest.NewBackend(t)
	client := api.New(backend.URL)
	ctx := context.Background()

	g1, err := client.Groups().Create(ctx, models.InventoryGroup{Name: "Cables"})
	require.NoError(t, err)
	g2, err := client.Groups().Create(ctx, models.InventoryGroup{Name: "Monitors"})
	require.NoError(t, err)

	created, err := client.Items(g1.ID).Create(ctx, models.InventoryItem{Name: "HDMI", Quantity: 4, GroupID: g1.ID})
	require.NoError(t, err)
	assert.True(t, created.ID.IsZero(), "backend only acknowledges item creation")

	items, err := client.Items(g1.ID).List(ctx)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "HDMI", items[0].Name)

	items, err = client.Items(g2.ID).List(ctx)
	require.NoError(t, err)
	assert.Empty(t, items)

	require.NoError(t, client.Items(g1.ID).Update(ctx, backend.Items[0].ID, models.InventoryItem{Name: "HDMI 2.1", Quantity: 6}))
	items, err = client.Items(g1.ID).List(ctx)
	require.NoError(t, err)
	assert.Equal(t, 6, items[0].Quantity)
}
