package dto

import (
	"stayledger/internal/domains/dashboard/model"

	"github.com/shopspring/decimal"
)

type RevenueByTypeResponse struct {
	Type    string          `json:"type"`
	Revenue decimal.Decimal `json:"revenue"`
}

type TopProductResponse struct {
	ProductID string `json:"product_id"`
	Name      string `json:"name"`
	Quantity  int    `json:"quantity"`
}

type StatsResponse struct {
	TotalBookings      int                     `json:"total_bookings"`
	TotalRevenue       decimal.Decimal         `json:"total_revenue"`
	TotalAffiliates    int                     `json:"total_affiliates"`
	PendingWithdrawals int                     `json:"pending_withdrawals"`
	DirectBookings     int                     `json:"direct_bookings"`
	AffiliateBookings  int                     `json:"affiliate_bookings"`
	RevenueByType      []RevenueByTypeResponse `json:"revenue_by_type"`
	TopProducts        []TopProductResponse    `json:"top_products"`
}

func (r *StatsResponse) FromModel(stats model.Stats) {
	r.TotalBookings = stats.Bookings
	r.TotalRevenue = stats.Revenue
	r.TotalAffiliates = stats.Affiliates
	r.PendingWithdrawals = stats.PendingWithdrawals
	r.DirectBookings = stats.DirectBookings
	r.AffiliateBookings = stats.AffiliateBookings

	r.RevenueByType = make([]RevenueByTypeResponse, len(stats.RevenueByType))
	for i, row := range stats.RevenueByType {
		r.RevenueByType[i] = RevenueByTypeResponse(row)
	}

	r.TopProducts = make([]TopProductResponse, len(stats.TopProducts))
	for i, row := range stats.TopProducts {
		r.TopProducts[i] = TopProductResponse(row)
	}
}
