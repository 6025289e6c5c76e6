package ollama

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/jmorganca/ollama/api"
)

const (
	// DefaultModel is the recommended summarisation model
	DefaultModel = "llama3.2"
	// DefaultURL is the default Ollama API endpoint
	DefaultURL = "http://localhost:11434"
)

// Client wraps the Ollama API client
type Client struct {
	client *api.Client
	model  string
}

// NewClient creates a new Ollama client
func NewClient(url, model string) (*Client, error) {
	if url == "" {
		url = DefaultURL
	}
	if model == "" {
		model = DefaultModel
	}

	client, err := api.ClientFromEnvironment()
	if err != nil {
		return nil, fmt.Errorf("failed to create ollama client: %w", err)
	}

	return &Client{
		client: client,
		model:  model,
	}, nil
}

// IsAvailable checks if Ollama is running and accessible
func IsAvailable(url string) bool {
	if url == "" {
		url = DefaultURL
	}

	// Try to connect with a short timeout
	client := &http.Client{
		Timeout: 2 * time.Second,
	}

	resp, err := client.Get(url)
	if err != nil {
		return false
	}
	defer resp.Body.Close()

	return resp.StatusCode == http.StatusOK
}

// Summarize asks the model to describe how the named file was produced,
// given its lineage document.
func (c *Client) Summarize(ctx context.Context, filename, lineageDoc string) (string, error) {
	if lineageDoc == "" {
		return "", fmt.Errorf("lineage document cannot be empty")
	}

	prompt := fmt.Sprintf(
		"The following document describes the processing history of the file %s: "+
			"its own creation record plus those of every ancestor file, with "+
			"parentsByKey giving the parent relationships. Summarise in a few "+
			"sentences how the file was produced and from what inputs.\n\n%s",
		filename, lineageDoc)

	stream := false
	req := &api.GenerateRequest{
		Model:  c.model,
		Prompt: prompt,
		Stream: &stream,
	}

	var out strings.Builder
	err := c.client.Generate(ctx, req, func(resp api.GenerateResponse) error {
		out.WriteString(resp.Response)
		return nil
	})
	if err != nil {
		return "", fmt.Errorf("failed to generate summary: %w", err)
	}

	return out.String(), nil
}

// GetModel returns the model being used
func (c *Client) GetModel() string {
	return c.model
}
