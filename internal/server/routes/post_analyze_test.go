package routes

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"relate/internal/server/middleware"
	"relate/pkg/common"
	"relate/pkg/graph"
	"relate/pkg/wikidata"

	"github.com/go-playground/validator"
	"github.com/labstack/echo/v4"
)

type stubValidator struct {
	validator *validator.Validate
}

func (v *stubValidator) Validate(i any) error {
	return v.validator.Struct(i)
}

type stubExtractor struct {
	mentions []common.EntityMention
}

func (s *stubExtractor) Extract(ctx context.Context, text string) ([]common.EntityMention, error) {
	return s.mentions, nil
}

type stubKG struct{}

func (s *stubKG) SearchEntities(ctx context.Context, query string) ([]wikidata.SearchResult, error) {
	switch query {
	case "Alan Turing":
		return []wikidata.SearchResult{{ID: "Q7251", Label: "Alan Turing"}}, nil
	case "United Kingdom":
		return []wikidata.SearchResult{{ID: "Q145", Label: "United Kingdom"}}, nil
	}
	return nil, nil
}

func (s *stubKG) GetStatements(ctx context.Context, qid string) (map[string][]string, error) {
	if qid == "Q7251" {
		return map[string][]string{"P27": {"Q145"}}, nil
	}
	return map[string][]string{}, nil
}

func (s *stubKG) GetLabels(ctx context.Context, ids []string) (map[string]string, error) {
	return map[string]string{"P27": "country of citizenship"}, nil
}

func newAnalyzeContext(t *testing.T, body string) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()

	e := echo.New()
	e.Validator = &stubValidator{validator: validator.New()}

	req := httptest.NewRequest(http.MethodPost, "/api/analyze", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()

	app := &middleware.App{
		Extractor: &stubExtractor{
			mentions: []common.EntityMention{
				{Text: "Alan Turing", Type: "PERSON"},
				{Text: "United Kingdom", Type: "GPE"},
			},
		},
		Graph: graph.NewGraphClient(graph.NewGraphClientParams{
			KG:              &stubKG{},
			ParallelLookups: 2,
			MaxRetries:      1,
		}),
	}

	c := &middleware.AppContext{
		Context: e.NewContext(req, rec),
		App:     app,
	}
	return c, rec
}

func TestAnalyzeHandler_Success(t *testing.T) {
	c, rec := newAnalyzeContext(t, `{"text": "Alan Turing was born in the United Kingdom."}`)

	if err := AnalyzeHandler(c); err != nil {
		t.Fatalf("AnalyzeHandler() error = %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var res analyzeResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &res); err != nil {
		t.Fatalf("invalid response JSON: %v", err)
	}
	if !res.Success {
		t.Fatalf("expected success, got %+v", res)
	}
	if res.Count != 1 || len(res.Relationships) != 1 {
		t.Fatalf("expected one relationship, got %+v", res)
	}
	rel := res.Relationships[0]
	if rel.PredicatePID != "P27" || rel.ObjectInDegree != 1 {
		t.Fatalf("unexpected relationship: %+v", rel)
	}
	if len(res.Graph.Nodes) != 2 || len(res.Graph.Edges) != 1 {
		t.Fatalf("unexpected graph payload: %+v", res.Graph)
	}
}

func TestAnalyzeHandler_EmptyText(t *testing.T) {
	for _, body := range []string{`{}`, `{"text": ""}`, `{"text": "   "}`} {
		c, rec := newAnalyzeContext(t, body)
		if err := AnalyzeHandler(c); err != nil {
			t.Fatalf("AnalyzeHandler() error = %v", err)
		}
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400 for body %s, got %d", body, rec.Code)
		}
	}
}

func TestAnalyzeHandler_TextTooLong(t *testing.T) {
	long := strings.Repeat("a", maxAnalyzeChars+1)
	c, rec := newAnalyzeContext(t, `{"text": "`+long+`"}`)

	if err := AnalyzeHandler(c); err != nil {
		t.Fatalf("AnalyzeHandler() error = %v", err)
	}
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for oversized text, got %d", rec.Code)
	}
}

func TestAnalyzeHandler_InvalidJSON(t *testing.T) {
	c, rec := newAnalyzeContext(t, `{"text": `)

	if err := AnalyzeHandler(c); err != nil {
		t.Fatalf("AnalyzeHandler() error = %v", err)
	}
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for invalid JSON, got %d", rec.Code)
	}
}
