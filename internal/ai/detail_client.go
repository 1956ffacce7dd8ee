package ai

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/jefftrojan/afritrade-rev/internal/reqctx"
	"google.golang.org/genai"
)

// DetailClient generates a product description when a supplier submits a
// listing without one. Best effort only; callers must treat failures as
// "leave the field empty".
type DetailClient struct {
	model string
}

func NewDetailClient(model string) *DetailClient {
	if model == "" {
		model = "gemini-2.5-flash"
	}
	return &DetailClient{model: model}
}

func (c *DetailClient) Generate(ctx context.Context, productName string) (string, error) {
	rid := reqctx.RID(ctx)
	start := time.Now()
	client, err := genai.NewClient(ctx, nil)
	if err != nil {
		log.Printf("[details] rid=%s stage=client_init err=%v", rid, err)
		return "", err
	}

	prompt := "Generate a brief, informative description for a trade marketplace product. " +
		"Two to three sentences, plain text, no markdown. Include key features and potential uses."

	parts := []*genai.Part{
		genai.NewPartFromText(prompt),
		genai.NewPartFromText(fmt.Sprintf("Product name: %s", productName)),
	}
	contents := []*genai.Content{
		genai.NewContentFromParts(parts, genai.RoleUser),
	}
	temp := float32(0.4)
	config := &genai.GenerateContentConfig{
		Temperature: &temp,
	}
	res, err := client.Models.GenerateContent(ctx, c.model, contents, config)
	if err != nil {
		log.Printf("[details] rid=%s stage=generate_fail model=%s err=%v", rid, c.model, err)
		return "", fmt.Errorf("generate details: %w", err)
	}
	text := strings.TrimSpace(res.Text())
	log.Printf("[details] rid=%s stage=done model=%s len=%d totalMs=%d", rid, c.model, len(text), time.Since(start).Milliseconds())
	return text, nil
}
