package vision

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"
)

type GeminiClient struct {
	apiKey     string
	model      string
	imageModel string
}

func NewGeminiClient(s Settings) *GeminiClient {
	return &GeminiClient{
		apiKey:     s.APIKey,
		model:      s.Model,
		imageModel: s.ImageModel,
	}
}

// AnalyzeImage sends the photo plus a strict-JSON prompt to Gemini and
// returns the model's text output.
func (g *GeminiClient) AnalyzeImage(ctx context.Context, image []byte, mimeType string, opts AnalysisOptions) (string, error) {
	if g.apiKey == "" {
		return "", errors.New("missing GEMINI_API_KEY")
	}
	if len(image) == 0 {
		return "", errors.New("empty image")
	}
	if mimeType == "" {
		mimeType = "image/jpeg"
	}

	payload := map[string]any{
		"contents": []map[string]any{
			{
				"parts": []map[string]any{
					{"text": buildAnalysisPrompt(opts)},
					{
						"inline_data": map[string]string{
							"mime_type": mimeType,
							"data":      base64.StdEncoding.EncodeToString(image),
						},
					},
				},
			},
		},
		"generationConfig": map[string]any{
			"temperature":     0.2,
			"maxOutputTokens": 2048,
		},
	}

	raw, err := g.post(ctx, g.model, payload)
	if err != nil {
		return "", err
	}

	text, err := firstText(raw)
	if err != nil {
		return "", err
	}
	return text, nil
}

// GenerateImage asks Gemini for a promotional photo and returns it as a
// base64 data URL.
func (g *GeminiClient) GenerateImage(ctx context.Context, dishName string) (*GeneratedImage, error) {
	if g.apiKey == "" {
		return nil, errors.New("missing GEMINI_API_KEY")
	}
	if dishName == "" {
		return nil, errors.New("empty dish name")
	}

	payload := map[string]any{
		"contents": []map[string]any{
			{
				"parts": []map[string]any{
					{"text": buildImagePrompt(dishName)},
				},
			},
		},
		"generationConfig": map[string]any{
			"responseModalities": []string{"TEXT", "IMAGE"},
		},
	}

	raw, err := g.post(ctx, g.imageModel, payload)
	if err != nil {
		return nil, err
	}

	var result struct {
		Candidates []struct {
			Content struct {
				Parts []struct {
					Text       string `json:"text"`
					InlineData *struct {
						MimeType string `json:"mimeType"`
						Data     string `json:"data"`
					} `json:"inlineData"`
				} `json:"parts"`
			} `json:"content"`
		} `json:"candidates"`
	}
	if err := json.Unmarshal(raw, &result); err != nil {
		return nil, err
	}
	if len(result.Candidates) == 0 {
		return nil, errors.New("empty gemini response")
	}

	out := &GeneratedImage{}
	for _, part := range result.Candidates[0].Content.Parts {
		if part.Text != "" {
			out.Text = part.Text
		}
		if part.InlineData != nil && out.DataURL == "" {
			out.DataURL = fmt.Sprintf(
				"data:%s;base64,%s",
				part.InlineData.MimeType,
				part.InlineData.Data,
			)
		}
	}
	if out.DataURL == "" {
		return nil, errors.New("gemini returned no image")
	}
	return out, nil
}

func (g *GeminiClient) post(ctx context.Context, model string, payload map[string]any) ([]byte, error) {
	url := fmt.Sprintf(
		"https://generativelanguage.googleapis.com/v1beta/models/%s:generateContent?key=%s",
		model,
		g.apiKey,
	)

	body, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(
		ctx,
		http.MethodPost,
		url,
		bytes.NewBuffer(body),
	)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	client := &http.Client{Timeout: 60 * time.Second}
	resp, err := client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("gemini api error: %s", string(raw))
	}
	return raw, nil
}

// firstText pulls the first text part out of a generateContent response.
func firstText(raw []byte) (string, error) {
	var result struct {
		Candidates []struct {
			Content struct {
				Parts []struct {
					Text string `json:"text"`
				} `json:"parts"`
			} `json:"content"`
		} `json:"candidates"`
	}
	if err := json.Unmarshal(raw, &result); err != nil {
		return "", err
	}
	if len(result.Candidates) == 0 ||
		len(result.Candidates[0].Content.Parts) == 0 {
		return "", errors.New("empty gemini response")
	}
	return result.Candidates[0].Content.Parts[0].Text, nil
}
