package service

import (
	"context"
	"fmt"
	"orbit/cmd/internal/contract"
	"orbit/cmd/internal/infrastructure/newsapi"
	"orbit/cmd/internal/utils"
	"orbit/cmd/internal/utils/apierror"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/gommon/log"
)

const (
	newsCategoryAll     = "all"
	newsCategoryGeneral = "general"
	defaultNewsImage    = "https://images.unsplash.com/photo-1504711434969-e33886168f5c?w=400&h=200&fit=crop"
)

type HeadlinesProvider interface {
	Enabled() bool
	TopHeadlines(ctx context.Context, country, category string, pageSize int) (*newsapi.Headlines, error)
}

type DefaultNewsService struct {
	Provider HeadlinesProvider
	Validate *validator.Validate
	Now      func() time.Time
}

func NewNewsService(provider HeadlinesProvider, validate *validator.Validate) *DefaultNewsService {
	return &DefaultNewsService{
		Provider: provider,
		Validate: validate,
		Now:      time.Now,
	}
}

// GetNews never fails because of the upstream: without an API key it
// serves a sample feed, and on errors a single placeholder article.
func (n *DefaultNewsService) GetNews(ctx context.Context, query *contract.NewsQuery) (*contract.NewsResponse, apierror.ErrorResponse) {
	utils.Sanitize(query)
	if valerr := n.Validate.Struct(query); valerr != nil {
		return nil, apierror.FromValidationError(valerr)
	}

	category := query.Category
	if category == "" {
		category = "technology"
	}
	country := query.Country
	if country == "" {
		country = "us"
	}
	pageSize := query.PageSize
	if pageSize == 0 {
		pageSize = 10
	}

	apiCategory := category
	if category == newsCategoryAll {
		apiCategory = newsCategoryGeneral
	}

	now := n.Now().UTC()
	if !n.Provider.Enabled() {
		articles := sampleNews(now, category)
		return &contract.NewsResponse{
			Articles:     articles,
			TotalResults: len(articles),
			Category:     category,
			Status:       contract.StatusOK,
			LastUpdated:  now.Format(time.RFC3339),
		}, nil
	}

	headlines, err := n.Provider.TopHeadlines(ctx, country, apiCategory, pageSize)
	if err != nil {
		log.Errorf("failed to fetch news: %v", err)
		return &contract.NewsResponse{
			Articles:     []*contract.NewsArticle{fallbackArticle(now)},
			TotalResults: 1,
			Category:     category,
			Status:       contract.StatusError,
			Message:      "Failed to fetch news data",
			LastUpdated:  now.Format(time.RFC3339),
		}, nil
	}

	articles := make([]*contract.NewsArticle, len(headlines.Articles))
	for i, a := range headlines.Articles {
		articles[i] = &contract.NewsArticle{
			ID:          fmt.Sprintf("news-%d", i),
			Title:       orDefault(a.Title, "No title available"),
			Description: orDefault(a.Description, "No description available"),
			URL:         orDefault(a.URL, "#"),
			ImageURL:    orDefault(a.ImageURL, defaultNewsImage),
			Source:      orDefault(a.Source, "Unknown Source"),
			PublishedAt: orDefault(a.PublishedAt, now.Format(time.RFC3339)),
			Category:    apiCategory,
		}
	}

	total := headlines.TotalResults
	if total == 0 {
		total = len(articles)
	}

	return &contract.NewsResponse{
		Articles:     articles,
		TotalResults: total,
		Category:     category,
		Status:       contract.StatusOK,
		LastUpdated:  now.Format(time.RFC3339),
	}, nil
}

func sampleNews(now time.Time, category string) []*contract.NewsArticle {
	samples := []struct {
		title, description, image, source, category string
	}{
		{"Tech Innovation Drives Market Growth", "Latest technological advancements are reshaping industries and creating new opportunities for growth.", "photo-1518709268805-4e9042af2176", "Tech News", "technology"},
		{"Global Markets Show Positive Trends", "Financial markets continue to show resilience with key indicators pointing to sustained growth.", "photo-1611974789855-9c2a0a7236a3", "Business Daily", "business"},
		{"Health Research Breakthrough Announced", "Scientists have made significant progress in understanding complex diseases, offering hope for new treatments.", "photo-1559757148-5c350d0d3c56", "Health Today", "health"},
		{"Climate Action Summit Concludes", "World leaders have reached new agreements on climate change mitigation strategies.", "photo-1569163139397-7b1b0b2b8b8b", "Environmental News", "science"},
		{"Sports Championship Updates", "Exciting developments in the world of sports with several major tournaments reaching their climax.", "photo-1571019613454-1cb2f99b2d8b", "Sports Central", "sports"},
	}

	articles := make([]*contract.NewsArticle, 0, len(samples))
	for i, s := range samples {
		if category != newsCategoryAll && s.category != category {
			continue
		}
		articles = append(articles, &contract.NewsArticle{
			ID:          fmt.Sprintf("%d", i+1),
			Title:       s.title,
			Description: s.description,
			URL:         fmt.Sprintf("https://example.com/news/%d", i+1),
			ImageURL:    fmt.Sprintf("https://images.unsplash.com/%s?w=400&h=200&fit=crop", s.image),
			Source:      s.source,
			PublishedAt: now.Add(-time.Duration(i) * time.Hour).Format(time.RFC3339),
			Category:    s.category,
		})
	}
	return articles
}

func fallbackArticle(now time.Time) *contract.NewsArticle {
	return &contract.NewsArticle{
		ID:          "fallback-1",
		Title:       "News Service Temporarily Unavailable",
		Description: "We are experiencing technical difficulties. Please try again later.",
		URL:         "#",
		ImageURL:    defaultNewsImage,
		Source:      "System",
		PublishedAt: now.Format(time.RFC3339),
		Category:    newsCategoryGeneral,
	}
}

func orDefault(s, fallback string) string {
	if s == "" {
		return fallback
	}
	return s
}
