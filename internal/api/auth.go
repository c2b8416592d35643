package api

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
)

// Credentials is the body of POST /login
type Credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginResult is returned by a successful login
type LoginResult struct {
	Token    string `json:"token"`
	Username string `json:"username"`
	Photo    string `json:"photo,omitempty"`
}

// Login exchanges credentials for an opaque session token
func (c *Client) Login(ctx context.Context, creds Credentials) (LoginResult, error) {
	var out LoginResult
	if err := c.doJSON(ctx, http.MethodPost, "/login", creds, &out); err != nil {
		return LoginResult{}, err
	}
	if out.Token == "" {
		return LoginResult{}, fmt.Errorf("login: response carried no token")
	}
	return out, nil
}

// Registration is the multipart form of POST /register
type Registration struct {
	Username  string
	Email     string
	Phone     string
	Password  string
	PhotoName string
	Photo     io.Reader // optional profile picture
}

// PhotoFromFile opens path as the registration photo. The caller closes the
// returned file.
func (r *Registration) PhotoFromFile(path string) (*os.File, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open photo: %w", err)
	}
	r.Photo = f
	r.PhotoName = filepath.Base(path)
	return f, nil
}

// Register creates an account. It returns the server's confirmation message.
func (c *Client) Register(ctx context.Context, reg Registration) (string, error) {
	var body bytes.Buffer
	w := multipart.NewWriter(&body)

	fields := [][2]string{
		{"username", reg.Username},
		{"email", reg.Email},
		{"phone", reg.Phone},
		{"password", reg.Password},
	}
	for _, f := range fields {
		if err := w.WriteField(f[0], f[1]); err != nil {
			return "", fmt.Errorf("register: %w", err)
		}
	}
	if reg.Photo != nil {
		name := reg.PhotoName
		if name == "" {
			name = "photo"
		}
		part, err := w.CreateFormFile("photo", name)
		if err != nil {
			return "", fmt.Errorf("register: %w", err)
		}
		if _, err := io.Copy(part, reg.Photo); err != nil {
			return "", fmt.Errorf("register: read photo: %w", err)
		}
	}
	if err := w.Close(); err != nil {
		return "", fmt.Errorf("register: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/register", &body)
	if err != nil {
		return "", fmt.Errorf("register: %w", err)
	}
	req.Header.Set("Content-Type", w.FormDataContentType())

	var out messageResponse
	if err := c.do(req, &out); err != nil {
		return "", err
	}
	return out.Message, nil
}
