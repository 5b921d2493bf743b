package deskmates

import (
	"context"
	"strconv"
)

// MarketplaceListParams filters and paginates marketplace browsing.
type MarketplaceListParams struct {
	Page     int
	PageSize int
	Category string
	Industry string
	Keyword  string
}

func (p MarketplaceListParams) options() []RequestOption {
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
	if p.Industry != "" {
		opts = append(opts, WithQuery("industry", p.Industry))
	}
	if p.Keyword != "" {
		opts = append(opts, WithQuery("keyword", p.Keyword))
	}
	return opts
}

// HireResult is the outcome of hiring or trialing a marketplace employee.
type HireResult struct {
	Employee       Employee `json:"employee"`
	HireTime       string   `json:"hireTime,omitempty"`
	UserID         string   `json:"userId,omitempty"`
	OrganizationID string   `json:"organizationId,omitempty"`
}

// MarketplaceService browses published employees and manages hiring.
type MarketplaceService struct {
	client *Client
}

// List returns a page of published employees.
func (s *MarketplaceService) List(ctx context.Context, params MarketplaceListParams, opts ...RequestOption) (*Page[Employee], error) {
	var env Response[Page[Employee]]
	if err := s.client.Get(ctx, "/marketplace", &env, append(params.options(), opts...)...); err != nil {
		return nil, err
	}
	return &env.Data, nil
}

// Categories returns the marketplace categories.
func (s *MarketplaceService) Categories(ctx context.Context, opts ...RequestOption) ([]string, error) {
	var env Response[struct {
		Categories []string `json:"categories"`
		Total      int      `json:"total"`
	}]
	if err := s.client.Get(ctx, "/marketplace/categories", &env, opts...); err != nil {
		return nil, err
	}
	return env.Data.Categories, nil
}

// Industries returns the marketplace industries.
func (s *MarketplaceService) Industries(ctx context.Context, opts ...RequestOption) ([]string, error) {
	var env Response[struct {
		Industries []string `json:"industries"`
		Total      int      `json:"total"`
	}]
	if err := s.client.Get(ctx, "/marketplace/industries", &env, opts...); err != nil {
		return nil, err
	}
	return env.Data.Industries, nil
}

// Hire hires a published employee for the current user.
func (s *MarketplaceService) Hire(ctx context.Context, employeeID string, opts ...RequestOption) (*HireResult, error) {
	var env Response[HireResult]
	if err := s.client.Post(ctx, "/marketplace/"+employeeID+"/hire", nil, &env, opts...); err != nil {
		return nil, err
	}
	return &env.Data, nil
}

// Trial starts a trial of a published employee without hiring it.
func (s *MarketplaceService) Trial(ctx context.Context, employeeID string, opts ...RequestOption) (*HireResult, error) {
	var env Response[HireResult]
	if err := s.client.Post(ctx, "/marketplace/"+employeeID+"/trial", nil, &env, opts...); err != nil {
		return nil, err
	}
	return &env.Data, nil
}
