package market

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/bobmcallan/advisor/internal/common"
	"github.com/bobmcallan/advisor/internal/models"
)

type mockPriceClient struct {
	news []models.NewsItem
	err  error
}

func (m *mockPriceClient) History(_ context.Context, _, _ string) ([]models.PriceBar, error) {
	return nil, nil
}

func (m *mockPriceClient) News(_ context.Context, _ string, _ int) ([]models.NewsItem, error) {
	return m.news, m.err
}

type mockTextGen struct {
	response string
	err      error
	prompt   string
}

func (m *mockTextGen) GenerateContent(_ context.Context, prompt string) (string, error) {
	m.prompt = prompt
	return m.response, m.err
}

func TestAnalyze(t *testing.T) {
	prices := &mockPriceClient{news: []models.NewsItem{
		{Title: "Record earnings", Source: "wire", Sentiment: "positive"},
		{Title: "Chip shortage", Source: "wire", Sentiment: "negative"},
	}}
	textgen := &mockTextGen{response: "  Outlook is cautiously optimistic.\n"}
	svc := NewService(prices, textgen, common.NewSilentLogger())

	analysis, err := svc.Analyze(context.Background(), "AAPL", []string{"Technology", "Healthcare"})
	if err != nil {
		t.Fatalf("Analyze() error = %v", err)
	}

	if analysis.Ticker != "AAPL" {
		t.Errorf("Ticker = %q, want AAPL", analysis.Ticker)
	}
	if analysis.Summary != "Outlook is cautiously optimistic." {
		t.Errorf("Summary = %q, want trimmed summary", analysis.Summary)
	}
	if len(analysis.News) != 2 {
		t.Errorf("len(News) = %d, want 2", len(analysis.News))
	}

	for _, fragment := range []string{"AAPL", "Technology, Healthcare", "Record earnings", "[negative] Chip shortage"} {
		if !strings.Contains(textgen.prompt, fragment) {
			t.Errorf("prompt missing %q", fragment)
		}
	}
}

func TestAnalyze_NewsFailureDegrades(t *testing.T) {
	prices := &mockPriceClient{err: errors.New("news feed down")}
	textgen := &mockTextGen{response: "General outlook."}
	svc := NewService(prices, textgen, common.NewSilentLogger())

	analysis, err := svc.Analyze(context.Background(), "AAPL", nil)
	if err != nil {
		t.Fatalf("Analyze() error = %v, news failures must degrade", err)
	}
	if analysis.Summary != "General outlook." {
		t.Errorf("Summary = %q", analysis.Summary)
	}
	if len(analysis.News) != 0 {
		t.Errorf("len(News) = %d, want 0", len(analysis.News))
	}
	if strings.Contains(textgen.prompt, "Recent headlines") {
		t.Error("prompt lists headlines despite news failure")
	}
}

func TestAnalyze_TextGenFailure(t *testing.T) {
	prices := &mockPriceClient{}
	textgen := &mockTextGen{err: errors.New("quota exceeded")}
	svc := NewService(prices, textgen, common.NewSilentLogger())

	if _, err := svc.Analyze(context.Background(), "AAPL", nil); err == nil {
		t.Fatal("Analyze() error = nil, want error on generation failure")
	}
}
