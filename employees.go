package deskmates

import (
	"context"
	"strconv"
)

// Employee is a digital employee definition as returned by the platform.
// Timestamps are kept as the server's ISO strings.
type Employee struct {
	ID               string   `json:"id"`
	Name             string   `json:"name"`
	Description      string   `json:"description,omitempty"`
	Avatar           string   `json:"avatar,omitempty"`
	Category         string   `json:"category,omitempty"`
	Industry         string   `json:"industry,omitempty"`
	Role             string   `json:"role,omitempty"`
	Prompt           string   `json:"prompt,omitempty"`
	Model            string   `json:"model,omitempty"`
	KnowledgeBaseIDs []string `json:"knowledgeBaseIds,omitempty"`
	Status           string   `json:"status"`
	TrialCount       int      `json:"trialCount"`
	HireCount        int      `json:"hireCount"`
	IsHired          bool     `json:"isHired"`
	IsRecruited      bool     `json:"isRecruited"`
	IsHot            bool     `json:"isHot,omitempty"`
	OriginalPrice    int      `json:"originalPrice,omitempty"`
	CreatedAt        string   `json:"createdAt,omitempty"`
	UpdatedAt        string   `json:"updatedAt,omitempty"`
	CreatedBy        string   `json:"createdBy,omitempty"`
}

// EmployeeInput carries the writable fields for create and update calls.
// Empty fields are omitted, which on update means "leave unchanged".
type EmployeeInput struct {
	Name             string   `json:"name,omitempty"`
	Description      string   `json:"description,omitempty"`
	Avatar           string   `json:"avatar,omitempty"`
	Category         string   `json:"category,omitempty"`
	Industry         string   `json:"industry,omitempty"`
	Role             string   `json:"role,omitempty"`
	Prompt           string   `json:"prompt,omitempty"`
	Model            string   `json:"model,omitempty"`
	KnowledgeBaseIDs []string `json:"knowledgeBaseIds,omitempty"`
	Status           *string  `json:"status,omitempty"`
}

// EmployeeListParams filters and paginates List calls. Zero values are
// omitted from the query string.
type EmployeeListParams struct {
	Page     int
	PageSize int
	Category string
	Status   string
	Keyword  string
}

func (p EmployeeListParams) options() []RequestOption {
	var opts []RequestOption
	if p.Page > 0 {
		opts = append(opts, WithQuery("page", strconv.Itoa(p.Page)))
	}
	if p.PageSize > 0 {
		opts = append(opts, WithQuery("page_size", strconv.Itoa(p.PageSize)))
	}
	if p.Category != "" {
		opts = append(opts, WithQuery("category", p.Category))
	}
	if p.Status != "" {
		opts = append(opts, WithQuery("status", p.Status))
	}
	if p.Keyword != "" {
		opts = append(opts, WithQuery("keyword", p.Keyword))
	}
	return opts
}

// EmployeeService manages the caller's own employee definitions.
type EmployeeService struct {
	client *Client
}

// List returns a page of employees visible to the caller.
func (s *EmployeeService) List(ctx context.Context, params EmployeeListParams, opts ...RequestOption) (*Page[Employee], error) {
	var env Response[Page[Employee]]
	if err := s.client.Get(ctx, "/employees", &env, append(params.options(), opts...)...); err != nil {
		return nil, err
	}
	return &env.Data, nil
}

// Get returns a single employee by id.
func (s *EmployeeService) Get(ctx context.Context, id string, opts ...RequestOption) (*Employee, error) {
	var env Response[Employee]
	if err := s.client.Get(ctx, "/employees/"+id, &env, opts...); err != nil {
		return nil, err
	}
	return &env.Data, nil
}

// Create registers a new employee in draft status.
func (s *EmployeeService) Create(ctx context.Context, input *EmployeeInput, opts ...RequestOption) (*Employee, error) {
	var env Response[Employee]
	if err := s.client.Post(ctx, "/employees", input, &env, opts...); err != nil {
		return nil, err
	}
	return &env.Data, nil
}

// Update modifies an existing employee.
func (s *EmployeeService) Update(ctx context.Context, id string, input *EmployeeInput, opts ...RequestOption) (*Employee, error) {
	var env Response[Employee]
	if err := s.client.Put(ctx, "/employees/"+id, input, &env, opts...); err != nil {
		return nil, err
	}
	return &env.Data, nil
}

// Delete removes an employee.
func (s *EmployeeService) Delete(ctx context.Context, id string, opts ...RequestOption) error {
	return s.client.Delete(ctx, "/employees/"+id, nil, opts...)
}

// Publish moves a draft employee to the marketplace.
func (s *EmployeeService) Publish(ctx context.Context, id string, opts ...RequestOption) (*Employee, error) {
	var env Response[Employee]
	if err := s.client.Post(ctx, "/employees/"+id+"/publish", nil, &env, opts...); err != nil {
		return nil, err
	}
	return &env.Data, nil
}

// Categories returns the known employee categories.
func (s *EmployeeService) Categories(ctx context.Context, opts ...RequestOption) ([]string, error) {
	var env Response[struct {
		Categories []string `json:"categories"`
	}]
	if err := s.client.Get(ctx, "/employees/categories", &env, opts...); err != nil {
		return nil, err
	}
	return env.Data.Categories, nil
}
