// Package api implements the HTTP client for a remote phaseboard server.
// It satisfies the same backend surface as the in-process service adapter,
// so the TUI cannot tell the two apart.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"strings"
	"time"

	"phaseboard/internal/domain"
	"phaseboard/internal/dto"
	"phaseboard/internal/repository"
)

// ErrServerUnavailable indicates the server could not be reached.
var ErrServerUnavailable = errors.New("phaseboard server unreachable")

// RemoteError is a non-2xx API response decoded into the error contract.
type RemoteError struct {
	StatusCode int
	Code       string
	Message    string
}

func (e *RemoteError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return fmt.Sprintf("server returned %d", e.StatusCode)
}

// Client talks JSON to a phaseboard server.
type Client struct {
	baseURL string
	http    *http.Client
}

// NewClient creates a client for the server at baseURL.
func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http: &http.Client{
			Timeout: 10 * time.Second,
			Transport: &http.Transport{
				DialContext: (&net.Dialer{
					Timeout: 5 * time.Second,
				}).DialContext,
			},
		},
	}
}

// Available checks whether the server answers its health endpoint.
func (c *Client) Available(ctx context.Context) bool {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/health", nil)
	if err != nil {
		return false
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return false
	}
	defer resp.Body.Close()
	return resp.StatusCode == http.StatusOK
}

func (c *Client) FetchTree(ctx context.Context) (*domain.Tree, error) {
	var out dto.TreeDTO
	if err := c.call(ctx, http.MethodGet, "/api/tree", nil, &out); err != nil {
		return nil, err
	}
	return out.ToTree(), nil
}

func (c *Client) ReorderPhases(ctx context.Context, orderedIDs []string) error {
	return c.call(ctx, http.MethodPut, "/api/phases/order", dto.OrderRequest{OrderedIDs: orderedIDs}, nil)
}

func (c *Client) ReorderTaskLists(ctx context.Context, phaseID string, orderedIDs []string) error {
	path := fmt.Sprintf("/api/phases/%s/lists/order", phaseID)
	return c.call(ctx, http.MethodPut, path, dto.OrderRequest{OrderedIDs: orderedIDs}, nil)
}

func (c *Client) MoveTask(ctx context.Context, taskID, listID, phaseID string, orderIndex int) error {
	path := fmt.Sprintf("/api/tasks/%s/move", taskID)
	return c.call(ctx, http.MethodPut, path, dto.MoveTaskRequest{
		TaskListID: listID,
		PhaseID:    phaseID,
		OrderIndex: orderIndex,
	}, nil)
}

func (c *Client) CreatePhase(ctx context.Context, p *domain.Phase) error {
	req := dto.CreatePhaseRequest{Name: p.Name, StartDate: p.StartDate, EndDate: p.EndDate}
	var out dto.PhaseDTO
	if err := c.call(ctx, http.MethodPost, "/api/phases", req, &out); err != nil {
		return err
	}
	p.ID = out.ID
	p.CreatedAt = out.CreatedAt
	p.UpdatedAt = out.UpdatedAt
	return nil
}

func (c *Client) UpdatePhase(ctx context.Context, p *domain.Phase) error {
	req := dto.UpdatePhaseRequest{Name: p.Name, StartDate: p.StartDate, EndDate: p.EndDate}
	return c.call(ctx, http.MethodPut, "/api/phases/"+p.ID, req, nil)
}

func (c *Client) DeletePhase(ctx context.Context, id string) error {
	return c.call(ctx, http.MethodDelete, "/api/phases/"+id, nil, nil)
}

func (c *Client) CreateTaskList(ctx context.Context, l *domain.TaskList) error {
	req := dto.CreateTaskListRequest{Name: l.Name, Access: string(l.Access)}
	var out dto.TaskListDTO
	path := fmt.Sprintf("/api/phases/%s/lists", l.PhaseID)
	if err := c.call(ctx, http.MethodPost, path, req, &out); err != nil {
		return err
	}
	l.ID = out.ID
	l.Access = domain.AccessLevel(out.Access)
	l.CreatedAt = out.CreatedAt
	l.UpdatedAt = out.UpdatedAt
	return nil
}

func (c *Client) UpdateTaskList(ctx context.Context, l *domain.TaskList) error {
	req := dto.UpdateTaskListRequest{Name: l.Name, Access: string(l.Access)}
	return c.call(ctx, http.MethodPut, "/api/lists/"+l.ID, req, nil)
}

func (c *Client) DeleteTaskList(ctx context.Context, id string) error {
	return c.call(ctx, http.MethodDelete, "/api/lists/"+id, nil, nil)
}

func (c *Client) CreateTask(ctx context.Context, rec *repository.TaskRecord) error {
	req := dto.CreateTaskRequest{
		Title:     rec.Title,
		Status:    rec.Status,
		Priority:  rec.Priority,
		Assignees: rec.Assignees,
		Tags:      rec.Tags,
		DueDate:   rec.DueDate,
		ParentID:  rec.ParentID,
	}
	var out dto.TaskDTO
	path := fmt.Sprintf("/api/lists/%s/tasks", rec.TaskListID)
	if err := c.call(ctx, http.MethodPost, path, req, &out); err != nil {
		return err
	}
	rec.ID = out.ID
	rec.Status = out.Status
	rec.Priority = out.Priority
	rec.CreatedAt = out.CreatedAt
	rec.UpdatedAt = out.UpdatedAt
	return nil
}

func (c *Client) UpdateTask(ctx context.Context, rec *repository.TaskRecord) error {
	req := dto.UpdateTaskRequest{
		Title:     rec.Title,
		Status:    rec.Status,
		Priority:  rec.Priority,
		Assignees: rec.Assignees,
		Tags:      rec.Tags,
		DueDate:   rec.DueDate,
	}
	return c.call(ctx, http.MethodPut, "/api/tasks/"+rec.ID, req, nil)
}

func (c *Client) DeleteTask(ctx context.Context, id string) error {
	return c.call(ctx, http.MethodDelete, "/api/tasks/"+id, nil, nil)
}

// call performs one request/response cycle. A nil out discards the body;
// non-2xx statuses decode into RemoteError.
func (c *Client) call(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshaling request: %w", err)
		}
		reader = bytes.NewReader(data)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		return fmt.Errorf("%w: %v", ErrServerUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		remote := &RemoteError{StatusCode: resp.StatusCode}
		var apiErr struct {
			Code    string `json:"code"`
			Message string `json:"message"`
		}
		if decodeErr := json.NewDecoder(resp.Body).Decode(&apiErr); decodeErr == nil {
			remote.Code = apiErr.Code
			remote.Message = apiErr.Message
		}
		return remote
	}
	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decoding response: %w", err)
	}
	return nil
}
