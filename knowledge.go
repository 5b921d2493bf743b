package deskmates

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"strconv"
)

// KnowledgeBase is a named collection of knowledge items an employee can be
// grounded on.
type KnowledgeBase struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Description string   `json:"description,omitempty"`
	DocCount    int      `json:"docCount"`
	Status      string   `json:"status"`
	Tags        []string `json:"tags,omitempty"`
	IsPublic    bool     `json:"isPublic"`
	Vectorized  bool     `json:"vectorized"`
	Category    string   `json:"category,omitempty"`
	CreatedAt   string   `json:"createdAt,omitempty"`
	UpdatedAt   string   `json:"updatedAt,omitempty"`
	CreatedBy   string   `json:"createdBy,omitempty"`
}

// KnowledgeBaseInput carries the writable knowledge base fields.
type KnowledgeBaseInput struct {
	Name        string   `json:"name,omitempty"`
	Description string   `json:"description,omitempty"`
	Tags        []string `json:"tags,omitempty"`
	IsPublic    *bool    `json:"isPublic,omitempty"`
	Category    string   `json:"category,omitempty"`
	Status      string   `json:"status,omitempty"`
}

// KnowledgeItem is one stored knowledge chunk.
type KnowledgeItem struct {
	ID              string         `json:"id"`
	KnowledgeBaseID string         `json:"knowledgeBaseId"`
	SerialNo        int            `json:"serialNo"`
	Content         string         `json:"content"`
	WordCount       int            `json:"wordCount"`
	SourceFile      string         `json:"sourceFile,omitempty"`
	CreateTime      string         `json:"createTime,omitempty"`
	Metadata        map[string]any `json:"metadata,omitempty"`
}

// KnowledgeItemInput is one chunk to be saved into a base.
type KnowledgeItemInput struct {
	Content    string         `json:"content"`
	SerialNo   int            `json:"serialNo,omitempty"`
	SourceFile string         `json:"sourceFile,omitempty"`
	Metadata   map[string]any `json:"metadata,omitempty"`
}

// DocumentConfig controls how uploaded documents are segmented into items.
type DocumentConfig struct {
	FileType         string `json:"fileType,omitempty"`
	KnowledgeLength  int    `json:"knowledgeLength,omitempty"`
	OverlapLength    int    `json:"overlapLength,omitempty"`
	LineBreakSegment bool   `json:"lineBreakSegment,omitempty"`
	MaxSegmentLength int    `json:"maxSegmentLength,omitempty"`
}

// FileUpload describes an accepted document upload and its processing task.
type FileUpload struct {
	FileID      string `json:"fileId"`
	Filename    string `json:"filename"`
	ContentType string `json:"contentType,omitempty"`
	Size        int64  `json:"size,omitempty"`
	UploadTime  string `json:"uploadTime,omitempty"`
	TaskID      string `json:"taskId,omitempty"`
	Status      string `json:"status,omitempty"`
}

// ParseResult is the segmentation produced for one uploaded document.
type ParseResult struct {
	FileID        string          `json:"fileId"`
	FileName      string          `json:"fileName"`
	KnowledgeList []KnowledgeItem `json:"knowledgeList"`
	ParseStatus   string          `json:"parseStatus,omitempty"`
}

// SearchHit is one semantic search result.
type SearchHit struct {
	Content  string         `json:"content"`
	Score    float64        `json:"score,omitempty"`
	Metadata map[string]any `json:"metadata,omitempty"`
}

// SearchResult wraps the hits for one query.
type SearchResult struct {
	Query           string      `json:"query"`
	KnowledgeBaseID string      `json:"knowledgeBaseId"`
	Results         []SearchHit `json:"results"`
	Total           int         `json:"total"`
}

// KnowledgeService manages knowledge bases, their items and document
// ingestion.
type KnowledgeService struct {
	client *Client
}

// ListBases returns the knowledge bases visible to the caller.
func (s *KnowledgeService) ListBases(ctx context.Context, opts ...RequestOption) ([]KnowledgeBase, error) {
	var env Response[struct {
		Items []KnowledgeBase `json:"items"`
		Total int             `json:"total"`
	}]
	if err := s.client.Get(ctx, "/knowledge-bases", &env, opts...); err != nil {
		return nil, err
	}
	return env.Data.Items, nil
}

// CreateBase creates a new knowledge base.
func (s *KnowledgeService) CreateBase(ctx context.Context, input *KnowledgeBaseInput, opts ...RequestOption) (*KnowledgeBase, error) {
	var env Response[KnowledgeBase]
	if err := s.client.Post(ctx, "/knowledge-bases", input, &env, opts...); err != nil {
		return nil, err
	}
	return &env.Data, nil
}

// GetBase returns one knowledge base by id.
func (s *KnowledgeService) GetBase(ctx context.Context, id string, opts ...RequestOption) (*KnowledgeBase, error) {
	var env Response[KnowledgeBase]
	if err := s.client.Get(ctx, "/knowledge-bases/"+id, &env, opts...); err != nil {
		return nil, err
	}
	return &env.Data, nil
}

// UpdateBase modifies a knowledge base.
func (s *KnowledgeService) UpdateBase(ctx context.Context, id string, input *KnowledgeBaseInput, opts ...RequestOption) (*KnowledgeBase, error) {
	var env Response[KnowledgeBase]
	if err := s.client.Put(ctx, "/knowledge-bases/"+id, input, &env, opts...); err != nil {
		return nil, err
	}
	return &env.Data, nil
}

// DeleteBase removes a knowledge base and all of its items.
func (s *KnowledgeService) DeleteBase(ctx context.Context, id string, opts ...RequestOption) error {
	return s.client.Delete(ctx, "/knowledge-bases/"+id, nil, opts...)
}

// Items returns a page of a base's knowledge items.
func (s *KnowledgeService) Items(ctx context.Context, baseID string, page, pageSize int, opts ...RequestOption) ([]KnowledgeItem, error) {
	if page > 0 {
		opts = append(opts, WithQuery("page", strconv.Itoa(page)))
	}
	if pageSize > 0 {
		opts = append(opts, WithQuery("page_size", strconv.Itoa(pageSize)))
	}

	var env Response[struct {
		Items []KnowledgeItem `json:"items"`
		Total int             `json:"total"`
	}]
	if err := s.client.Get(ctx, "/knowledge-bases/"+baseID+"/documents", &env, opts...); err != nil {
		return nil, err
	}
	return env.Data.Items, nil
}

// SaveItems stores parsed or hand-written items into a base.
func (s *KnowledgeService) SaveItems(ctx context.Context, baseID string, items []KnowledgeItemInput, opts ...RequestOption) error {
	body := map[string]any{"items": items}
	return s.client.Post(ctx, "/knowledge-bases/"+baseID+"/knowledge", body, nil, opts...)
}

// DeleteItem removes a single knowledge item.
func (s *KnowledgeService) DeleteItem(ctx context.Context, baseID, itemID string, opts ...RequestOption) error {
	return s.client.Delete(ctx, "/knowledge-bases/"+baseID+"/knowledge/"+itemID, nil, opts...)
}

// ClearItems removes every item in a base, keeping the base itself.
func (s *KnowledgeService) ClearItems(ctx context.Context, baseID string, opts ...RequestOption) error {
	return s.client.Delete(ctx, "/knowledge-bases/"+baseID+"/knowledge", nil, opts...)
}

// Search runs a semantic search over one base. topK <= 0 uses the server
// default.
func (s *KnowledgeService) Search(ctx context.Context, baseID, query string, topK int, opts ...RequestOption) (*SearchResult, error) {
	body := map[string]any{"query": query}
	if topK > 0 {
		body["topK"] = topK
	}

	var env Response[SearchResult]
	if err := s.client.Post(ctx, "/knowledge-bases/"+baseID+"/search", body, &env, opts...); err != nil {
		return nil, err
	}
	return &env.Data, nil
}

// Stats returns vectorization and document statistics for one base.
func (s *KnowledgeService) Stats(ctx context.Context, baseID string, opts ...RequestOption) (map[string]any, error) {
	var env Response[map[string]any]
	if err := s.client.Get(ctx, "/knowledge-bases/"+baseID+"/stats", &env, opts...); err != nil {
		return nil, err
	}
	return env.Data, nil
}

// ParseDocument segments an uploaded document into knowledge items without
// saving them.
func (s *KnowledgeService) ParseDocument(ctx context.Context, baseID, fileID string, config *DocumentConfig, opts ...RequestOption) (*ParseResult, error) {
	var body any
	if config != nil {
		body = map[string]any{"config": config}
	}

	var env Response[ParseResult]
	if err := s.client.Post(ctx, "/knowledge-bases/"+baseID+"/documents/"+fileID+"/parse", body, &env, opts...); err != nil {
		return nil, err
	}
	return &env.Data, nil
}

// DocumentConfigGet returns the current document processing configuration.
func (s *KnowledgeService) DocumentConfigGet(ctx context.Context, opts ...RequestOption) (*DocumentConfig, error) {
	var env Response[DocumentConfig]
	if err := s.client.Get(ctx, "/knowledge-bases/config/document-processing", &env, opts...); err != nil {
		return nil, err
	}
	return &env.Data, nil
}

// DocumentConfigUpdate replaces the document processing configuration.
func (s *KnowledgeService) DocumentConfigUpdate(ctx context.Context, config *DocumentConfig, opts ...RequestOption) (*DocumentConfig, error) {
	var env Response[DocumentConfig]
	if err := s.client.Put(ctx, "/knowledge-bases/config/document-processing", config, &env, opts...); err != nil {
		return nil, err
	}
	return &env.Data, nil
}

// Upload sends a document into a base as a multipart form. This rides the
// transport directly: binary transfer is outside the retry/timeout contract,
// so a failed upload surfaces immediately. chunkSize/chunkOverlap <= 0 use
// the server defaults.
func (s *KnowledgeService) Upload(ctx context.Context, baseID, filename string, content io.Reader, chunkSize, chunkOverlap int) (*FileUpload, error) {
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)

	part, err := writer.CreateFormFile("file", filename)
	if err == nil {
		_, err = io.Copy(part, content)
	}
	if err == nil && chunkSize > 0 {
		err = writer.WriteField("chunk_size", strconv.Itoa(chunkSize))
	}
	if err == nil && chunkOverlap > 0 {
		err = writer.WriteField("chunk_overlap", strconv.Itoa(chunkOverlap))
	}
	if err == nil {
		err = writer.Close()
	}
	if err != nil {
		return nil, &APIError{Message: "invalid upload body", StatusCode: http.StatusBadRequest, Cause: err}
	}

	c := s.client
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.requestURL("/knowledge-bases/"+baseID+"/upload", nil), &buf)
	if err != nil {
		return nil, &APIError{Message: "invalid request", StatusCode: http.StatusBadRequest, Cause: err}
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())
	req.Header.Set("Accept", "application/json")
	req.Header.Set(HeaderUserID, c.session.UserID())
	req.Header.Set(HeaderEmployeeID, c.session.EmployeeID())

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, wrapTransportError(err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, wrapTransportError(err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, newStatusError(resp.StatusCode, data)
	}

	var value any
	if err := json.Unmarshal(data, &value); err != nil {
		return nil, &APIError{Message: "failed to decode response", StatusCode: http.StatusInternalServerError, Cause: err}
	}
	var env Response[FileUpload]
	if err := decodeInto(&httpResult{status: resp.StatusCode, body: data, value: value}, &env, false); err != nil {
		return nil, err
	}
	return &env.Data, nil
}
