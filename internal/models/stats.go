package models

// ProductStats summarizes the product table.
type ProductStats struct {
	Total    int64 `json:"totalProducts"`
	Active   int64 `json:"activeProducts"`
	LowStock int64 `json:"lowStockProducts"`
}

// DashboardStats is the summary shown on the admin landing page.
type DashboardStats struct {
	ProductStats
	TotalCategories int64 `json:"totalCategories"`
}
