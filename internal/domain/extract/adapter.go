package extract

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

const defaultNERConfidence = 0.8

// Classification is a document-level label pair from a statistical model.
type Classification struct {
	DocumentType string  `json:"document_type"`
	Specialty    string  `json:"specialty"`
	Confidence   float64 `json:"confidence"`
}

// ModelAdapter is an optional statistical NER and classification backend.
// The pipeline works without one; when configured, its entities are merged
// with the rule-based extractors' output.
type ModelAdapter interface {
	Extract(ctx context.Context, text string) ([]Entity, error)
	Classify(ctx context.Context, text string) (*Classification, error)
}

// RESTAdapter talks to a model server over HTTP.
type RESTAdapter struct {
	baseURL string
	client  *http.Client
}

func NewRESTAdapter(baseURL string, timeout time.Duration) *RESTAdapter {
	return &RESTAdapter{
		baseURL: baseURL,
		client:  &http.Client{Timeout: timeout},
	}
}

// nerLabelMap translates generic NER labels into the pipeline's labels.
// Unknown labels pass through unchanged.
var nerLabelMap = map[string]string{
	"PERSON":   LabelPatientName,
	"ORG":      "ORGANIZATION",
	"DATE":     "DATE",
	"TIME":     "TIME",
	"QUANTITY": "MEASUREMENT",
	"CARDINAL": "NUMBER",
}

type extractResponse struct {
	Entities []struct {
		Text       string  `json:"text"`
		Label      string  `json:"label"`
		Start      int     `json:"start"`
		End        int     `json:"end"`
		Confidence float64 `json:"confidence"`
	} `json:"entities"`
}

// Extract posts the text to the model server and remaps its labels.
func (a *RESTAdapter) Extract(ctx context.Context, text string) ([]Entity, error) {
	var resp extractResponse
	if err := a.post(ctx, "/extract", text, &resp); err != nil {
		return nil, err
	}

	entities := make([]Entity, 0, len(resp.Entities))
	for _, e := range resp.Entities {
		label := e.Label
		if mapped, ok := nerLabelMap[label]; ok {
			label = mapped
		}
		conf := e.Confidence
		if conf == 0 {
			conf = defaultNERConfidence
		}
		entities = append(entities, Entity{
			Text:       e.Text,
			Label:      label,
			Start:      e.Start,
			End:        e.End,
			Confidence: conf,
		})
	}
	return entities, nil
}

// Classify posts the text to the model server's classification endpoint.
func (a *RESTAdapter) Classify(ctx context.Context, text string) (*Classification, error) {
	var resp Classification
	if err := a.post(ctx, "/classify", text, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (a *RESTAdapter) post(ctx context.Context, path, text string, out interface{}) error {
	body, err := json.Marshal(map[string]string{"text": text})
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, a.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("build model request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := a.client.Do(req)
	if err != nil {
		return fmt.Errorf("model request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("model server returned status %d", resp.StatusCode)
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode model response: %w", err)
	}
	return nil
}
