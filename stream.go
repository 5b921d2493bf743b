package deskmates

import (
	"bufio"
	"bytes"
	"context"
	"io"
	"net/http"
	"strings"
)

const (
	streamDataPrefix = "data: "
	streamDoneMarker = "[DONE]"

	// Individual model output frames are small; 1 MiB leaves ample headroom
	// for tool call payloads embedded in a single frame.
	streamMaxFrameSize = 1 << 20
)

// StreamHandler receives each decoded chunk as soon as it arrives. Chunks are
// raw frame text; no case transformation is applied.
type StreamHandler func(chunk string)

// Stream issues a single-attempt POST and incrementally reads the response as
// newline-delimited "data:" frames, invoking fn once per payload frame. The
// [DONE] sentinel or stream exhaustion ends the read; anything else that goes
// wrong surfaces immediately as an *APIError. The retry loop and the
// per-attempt timeout are deliberately bypassed: an interrupted stream cannot
// be transparently resumed.
func (c *Client) Stream(ctx context.Context, path string, body any, fn StreamHandler, opts ...RequestOption) error {
	call := c.newCallOptions(opts)

	requestID := c.debug.requestID()

	payload, err := encodeBody(body, call.rawCase)
	if err != nil {
		return &APIError{Message: "invalid request body", StatusCode: http.StatusBadRequest, Cause: err}
	}

	var reader io.Reader
	if payload != nil {
		reader = bytes.NewReader(payload)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.requestURL(path, call.query), reader)
	if err != nil {
		return &APIError{Message: "invalid request", StatusCode: http.StatusBadRequest, Cause: err}
	}
	c.setDefaultHeaders(req, "text/event-stream")
	for key, value := range call.headers {
		req.Header.Set(key, value)
	}

	if c.debugOn(c.debug.logStream()) {
		c.logger.Debug("opening stream", "requestID", requestID, "path", path)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return wrapTransportError(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		data, _ := io.ReadAll(resp.Body)
		return newStatusError(resp.StatusCode, data)
	}

	scanner := bufio.NewScanner(resp.Body)
	scanner.Buffer(make([]byte, 0, 64*1024), streamMaxFrameSize)

	chunks := 0
	for scanner.Scan() {
		line := scanner.Text()
		if !strings.HasPrefix(line, streamDataPrefix) {
			continue
		}
		chunk := strings.TrimPrefix(line, streamDataPrefix)
		if strings.TrimSpace(chunk) == streamDoneMarker {
			if c.debugOn(c.debug.logStream()) {
				c.logger.Debug("stream done", "requestID", requestID, "chunks", chunks)
			}
			return nil
		}
		chunks++
		if c.metrics != nil {
			c.metrics.RecordStreamChunk(path)
		}
		fn(chunk)
	}

	if err := scanner.Err(); err != nil {
		if c.debugOn(c.debug.logStream()) {
			c.logger.Warn("stream read failed", "requestID", requestID, "error", err.Error())
		}
		return &APIError{Message: "stream read failed", StatusCode: http.StatusInternalServerError, Cause: err}
	}

	if c.debugOn(c.debug.logStream()) {
		c.logger.Debug("stream exhausted", "requestID", requestID, "chunks", chunks)
	}
	return nil
}
