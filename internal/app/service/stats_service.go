package service

import (
	"context"
	"fmt"
	"time"

	"newsportal/internal/common"
	"newsportal/internal/domain/model"
	"newsportal/internal/domain/repository"
)

type StatsService struct {
	newsRepo    repository.NewsRepository
	userRepo    repository.UserRepository
	recentLimit int
}

func NewStatsService(newsRepo repository.NewsRepository, userRepo repository.UserRepository, recentLimit int) *StatsService {
	return &StatsService{newsRepo: newsRepo, userRepo: userRepo, recentLimit: recentLimit}
}

// DashboardStats feeds the per-author dashboard: the category chart and
// the trailing six-month activity chart.
type DashboardStats struct {
	TotalNews            int                   `json:"totalNews"`
	RecentNews           []model.News          `json:"recentNews"`
	CategoryDistribution []model.CategoryCount `json:"categoryDistribution"`
	MonthlyActivity      []model.MonthCount    `json:"monthlyActivity"`
}

type SiteStats struct {
	TotalUsers int          `json:"totalUsers"`
	TotalNews  int          `json:"totalNews"`
	RecentNews []model.News `json:"recentNews"`
}

type AdminStatsCounts struct {
	TotalUsers        int `json:"totalUsers"`
	TotalAdmins       int `json:"totalAdmins"`
	TotalRegularUsers int `json:"totalRegularUsers"`
	TotalNews         int `json:"totalNews"`
}

type AdminStats struct {
	Counts      AdminStatsCounts `json:"counts"`
	LatestUsers []model.User     `json:"latestUsers"`
	LatestNews  []model.News     `json:"latestNews"`
}

// MyStats runs four independent read queries scoped to the author. The
// six-month window uses calendar subtraction, so the boundary day carries
// over year rollovers.
func (s *StatsService) MyStats(ctx context.Context, authorID string, now time.Time) (*DashboardStats, error) {
	if authorID == "" {
		return nil, common.ErrUnauthorized
	}

	total, err := s.newsRepo.CountByAuthor(ctx, authorID)
	if err != nil {
		return nil, fmt.Errorf("failed to count news: %w", err)
	}

	recent, err := s.newsRepo.ListRecentByAuthor(ctx, authorID, s.recentLimit)
	if err != nil {
		return nil, fmt.Errorf("failed to list recent news: %w", err)
	}

	categories, err := s.newsRepo.CountByCategory(ctx, authorID)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate categories: %w", err)
	}

	sixMonthsAgo := now.AddDate(0, -6, 0)
	monthly, err := s.newsRepo.CountByMonth(ctx, authorID, sixMonthsAgo)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate monthly activity: %w", err)
	}

	return &DashboardStats{
		TotalNews:            total,
		RecentNews:           recent,
		CategoryDistribution: categories,
		MonthlyActivity:      monthly,
	}, nil
}

func (s *StatsService) SiteStats(ctx context.Context) (*SiteStats, error) {
	totalUsers, err := s.userRepo.CountAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to count users: %w", err)
	}
	totalNews, err := s.newsRepo.CountAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to count news: %w", err)
	}
	recent, err := s.newsRepo.ListLatest(ctx, 6)
	if err != nil {
		return nil, fmt.Errorf("failed to list recent news: %w", err)
	}
	return &SiteStats{TotalUsers: totalUsers, TotalNews: totalNews, RecentNews: recent}, nil
}

func (s *StatsService) AdminStats(ctx context.Context) (*AdminStats, error) {
	totalUsers, err := s.userRepo.CountAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to count users: %w", err)
	}
	totalAdmins, err := s.userRepo.CountByRole(ctx, model.RoleAdmin)
	if err != nil {
		return nil, fmt.Errorf("failed to count admins: %w", err)
	}
	totalRegular, err := s.userRepo.CountByRole(ctx, model.RoleUser)
	if err != nil {
		return nil, fmt.Errorf("failed to count regular users: %w", err)
	}
	totalNews, err := s.newsRepo.CountAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to count news: %w", err)
	}
	latestUsers, err := s.userRepo.ListLatest(ctx, 5)
	if err != nil {
		return nil, fmt.Errorf("failed to list latest users: %w", err)
	}
	latestNews, err := s.newsRepo.ListLatest(ctx, 5)
	if err != nil {
		return nil, fmt.Errorf("failed to list latest news: %w", err)
	}

	return &AdminStats{
		Counts: AdminStatsCounts{
			TotalUsers:        totalUsers,
			TotalAdmins:       totalAdmins,
			TotalRegularUsers: totalRegular,
			TotalNews:         totalNews,
		},
		LatestUsers: latestUsers,
		LatestNews:  latestNews,
	}, nil
}
