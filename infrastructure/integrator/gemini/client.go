package gemini

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/vfg2006/hexa-dashboard-api/internal/config"
	"github.com/vfg2006/hexa-dashboard-api/pkg/httpclient"
)

var (
	ErrMissingAPIKey = errors.New("chave da API de IA não configurada")
	ErrRateLimited   = errors.New("limite de requisições da IA excedido")
	ErrEmptyResponse = errors.New("resposta da IA sem conteúdo")
)

// Generator gera texto a partir de um prompt
type Generator interface {
	Enabled() bool
	GenerateContent(ctx context.Context, prompt string) (string, error)
}

type Client struct {
	apiKey string
	model  string
	http   *httpclient.Client
}

type part struct {
	Text string `json:"text"`
}

type content struct {
	Parts []part `json:"parts"`
}

type generateRequest struct {
	Contents []content `json:"contents"`
}

type generateResponse struct {
	Candidates []struct {
		Content content `json:"content"`
	} `json:"candidates"`
}

func NewClient(cfg config.AI) *Client {
	return &Client{
		apiKey: cfg.APIKey,
		model:  cfg.Model,
		http: httpclient.New(httpclient.Config{
			BaseURL:    cfg.BaseURL,
			Timeout:    cfg.Timeout,
			MaxRetries: -1,
			RateLimit:  2,
			RateBurst:  4,
		}),
	}
}

func (c *Client) Enabled() bool {
	return c.apiKey != ""
}

// GenerateContent chama models/{model}:generateContent e devolve o texto do primeiro candidato
func (c *Client) GenerateContent(ctx context.Context, prompt string) (string, error) {
	if !c.Enabled() {
		return "", ErrMissingAPIKey
	}

	body := generateRequest{
		Contents: []content{{Parts: []part{{Text: prompt}}}},
	}

	resp, err := c.http.PostJSON(
		ctx,
		fmt.Sprintf("v1beta/models/%s:generateContent", c.model),
		map[string]string{"x-goog-api-key": c.apiKey},
		body,
	)
	if err != nil {
		var statusErr *httpclient.StatusError
		if errors.As(err, &statusErr) && statusErr.StatusCode == http.StatusTooManyRequests {
			return "", fmt.Errorf("%w: %v", ErrRateLimited, err)
		}
		return "", fmt.Errorf("erro ao gerar conteúdo: %w", err)
	}

	var decoded generateResponse
	if err := resp.Decode(&decoded); err != nil {
		return "", err
	}

	for _, candidate := range decoded.Candidates {
		texts := make([]string, 0, len(candidate.Content.Parts))
		for _, p := range candidate.Content.Parts {
			texts = append(texts, p.Text)
		}
		if text := strings.TrimSpace(strings.Join(texts, "")); text != "" {
			return text, nil
		}
	}

	return "", ErrEmptyResponse
}
