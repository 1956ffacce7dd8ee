package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/jefftrojan/afritrade-rev/internal/reqctx"
)

var ErrUpstream = errors.New("upstream_error")

// RagClient proxies free-text trade/legal questions to the retrieval
// service. Wire format: POST {base}/rag/ {"user_input": q} -> {"response": a}.
type RagClient struct {
	baseURL    string
	httpClient *http.Client
}

func NewRagClient(baseURL string, httpClient *http.Client) *RagClient {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 20 * time.Second}
	}
	return &RagClient{baseURL: strings.TrimSuffix(baseURL, "/"), httpClient: httpClient}
}

type ragRequest struct {
	UserInput string `json:"user_input"`
}

type ragResponse struct {
	Response string `json:"response"`
}

func (c *RagClient) Ask(ctx context.Context, question string) (string, error) {
	rid := reqctx.RID(ctx)
	start := time.Now()
	body, _ := json.Marshal(ragRequest{UserInput: question})
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/rag/", bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")

	log.Printf("[rag] rid=%s stage=request_start len=%d", rid, len(question))
	resp, err := c.httpClient.Do(req)
	if err != nil {
		log.Printf("[rag] rid=%s stage=request_fail err=%v", rid, err)
		return "", fmt.Errorf("%w: %v", ErrUpstream, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 300 {
		log.Printf("[rag] rid=%s stage=bad_status status=%d", rid, resp.StatusCode)
		return "", fmt.Errorf("%w: status %d", ErrUpstream, resp.StatusCode)
	}
	var out ragResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		log.Printf("[rag] rid=%s stage=decode_fail err=%v", rid, err)
		return "", fmt.Errorf("%w: %v", ErrUpstream, err)
	}
	if out.Response == "" {
		log.Printf("[rag] rid=%s stage=empty_response", rid)
		return "", fmt.Errorf("%w: empty response field", ErrUpstream)
	}
	log.Printf("[rag] rid=%s stage=done totalMs=%d", rid, time.Since(start).Milliseconds())
	return out.Response, nil
}
