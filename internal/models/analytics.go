package models

type SalesSummary struct {
	Customers    int64   `json:"customers" bson:"customers"`
	Products     int64   `json:"products" bson:"products"`
	TotalSales   int64   `json:"total_sales" bson:"total_sales"`
	TotalRevenue float64 `json:"total_revenue" bson:"total_revenue"`
}

type DailySales struct {
	Date    string  `json:"date" bson:"_id"`
	Sales   int64   `json:"sales" bson:"sales"`
	Revenue float64 `json:"revenue" bson:"revenue"`
}

type AnalyticsResponse struct {
	Summary    *SalesSummary `json:"summary"`
	DailySales []*DailySales `json:"daily_sales"`
}
