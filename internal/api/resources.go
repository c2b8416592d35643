package api

import (
	"context"
	"net/http"
	"net/url"

	"github.com/tgienger/tms/internal/models"
)

// Resource is the list/create/update/delete surface of one backend collection
type Resource[T any] struct {
	c        *Client
	listPath string
	basePath string
}

func newResource[T any](c *Client, path string) Resource[T] {
	return Resource[T]{c: c, listPath: path, basePath: path}
}

// List fetches the whole collection
func (r Resource[T]) List(ctx context.Context) ([]T, error) {
	var out []T
	if err := r.c.doJSON(ctx, http.MethodGet, r.listPath, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Create posts rec and returns the record as the server stored it
func (r Resource[T]) Create(ctx context.Context, rec T) (T, error) {
	var out T
	if err := r.c.doJSON(ctx, http.MethodPost, r.basePath, rec, &out); err != nil {
		var zero T
		return zero, err
	}
	return out, nil
}

// Update replaces the record identified by id
func (r Resource[T]) Update(ctx context.Context, id models.ID, rec T) error {
	return r.c.doJSON(ctx, http.MethodPut, r.itemPath(id), rec, nil)
}

// Delete removes the record identified by id
func (r Resource[T]) Delete(ctx context.Context, id models.ID) error {
	return r.c.doJSON(ctx, http.MethodDelete, r.itemPath(id), nil, nil)
}

func (r Resource[T]) itemPath(id models.ID) string {
	return r.basePath + "/" + url.PathEscape(id.String())
}

// Employees is the /employees collection
func (c *Client) Employees() Resource[models.Employee] {
	return newResource[models.Employee](c, "/employees")
}

// Groups is the /inventory/groups collection
func (c *Client) Groups() Resource[models.InventoryGroup] {
	return newResource[models.InventoryGroup](c, "/inventory/groups")
}

// Items is the item collection of one group. Items are listed per group but
// created, updated and deleted through the flat /inventory/items path.
func (c *Client) Items(groupID models.ID) Resource[models.InventoryItem] {
	return Resource[models.InventoryItem]{
		c:        c,
		listPath: "/inventory/items/" + url.PathEscape(groupID.String()),
		basePath: "/inventory/items",
	}
}

// WorkTodos is the /worktodo collection
func (c *Client) WorkTodos() Resource[models.WorkTodo] {
	return newResource[models.WorkTodo](c, "/worktodo")
}
