package services

import (
	"context"
	"fmt"
	"time"

	"github.com/sseleimend/e-commerce/internal/models"
	"github.com/sseleimend/e-commerce/internal/repositories/interfaces"
	"github.com/sseleimend/e-commerce/internal/utils"
)

type AnalyticsService interface {
	// GetAnalytics returns the sales totals plus a zero-filled daily series
	// for the trailing seven days.
	GetAnalytics(ctx context.Context) (*models.AnalyticsResponse, error)
}

type analyticsService struct {
	orderRepo interfaces.OrderRepository
}

func NewAnalyticsService(orderRepo interfaces.OrderRepository) AnalyticsService {
	return &analyticsService{
		orderRepo: orderRepo,
	}
}

func (s *analyticsService) GetAnalytics(ctx context.Context) (*models.AnalyticsResponse, error) {
	summary, err := s.orderRepo.GetSalesSummary(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get sales summary: %w", err)
	}

	endDate := time.Now()
	startDate := endDate.AddDate(0, 0, -utils.DailySalesWindowDays)

	dailySales, err := s.orderRepo.GetDailySales(ctx, startDate, endDate)
	if err != nil {
		return nil, fmt.Errorf("failed to get daily sales: %w", err)
	}

	return &models.AnalyticsResponse{
		Summary:    summary,
		DailySales: fillMissingDays(dailySales, startDate, endDate),
	}, nil
}

// fillMissingDays expands the aggregation result so every calendar day in
// the window appears, with zeros for days without orders.
func fillMissingDays(dailySales []*models.DailySales, startDate, endDate time.Time) []*models.DailySales {
	byDate := make(map[string]*models.DailySales, len(dailySales))
	for _, day := range dailySales {
		byDate[day.Date] = day
	}

	var filled []*models.DailySales
	for d := startDate; !d.After(endDate); d = d.AddDate(0, 0, 1) {
		date := d.Format("2006-01-02")
		if day, ok := byDate[date]; ok {
			filled = append(filled, day)
		} else {
			filled = append(filled, &models.DailySales{Date: date})
		}
	}

	return filled
}
