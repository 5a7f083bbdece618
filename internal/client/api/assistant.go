package api

import (
	"context"
	"net/http"
	"time"
)

// Assistant is the opaque generative-text collaborator. The chat loop only
// needs a prompt-to-reply function; everything else about the remote model
// is out of scope.
type Assistant interface {
	Reply(ctx context.Context, prompt string) (string, error)
}

// HTTPAssistant calls a remote generative endpoint with a JSON body
// {"prompt": ...} and expects {"text": ...} back.
type HTTPAssistant struct {
	endpoint string
	apiKey   string
	http     *http.Client
}

func NewHTTPAssistant(endpoint, apiKey string, timeout time.Duration) *HTTPAssistant {
	return &HTTPAssistant{
		endpoint: endpoint,
		apiKey:   apiKey,
		http:     &http.Client{Timeout: timeout},
	}
}

type assistantRequest struct {
	Prompt string `json:"prompt"`
}

type assistantResponse struct {
	Text string `json:"text"`
}

func (a *HTTPAssistant) Reply(ctx context.Context, prompt string) (string, error) {
	c := &Client{baseURL: a.endpoint, http: a.http}

	var res assistantResponse
	_, err := c.doJSON(ctx, http.MethodPost, "", a.apiKey, assistantRequest{Prompt: prompt}, &res)
	if err != nil {
		return "", err
	}
	return res.Text, nil
}

// CannedAssistant is the offline fallback used when no assistant endpoint is
// configured. It echoes a fixed acknowledgement so the chat loop stays usable.
type CannedAssistant struct{}

func (CannedAssistant) Reply(ctx context.Context, prompt string) (string, error) {
	return "I am offline right now, but I received: " + prompt, nil
}
