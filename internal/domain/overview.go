package domain

import "github.com/shopspring/decimal"

// MonthlyRevenue is one bar of the dashboard revenue graph
type MonthlyRevenue struct {
	Name  string          `json:"name"`
	Total decimal.Decimal `json:"total"`
}

// Transaction is a paid order summarized for the dashboard
type Transaction struct {
	Name      string `json:"name"`
	Email     string `json:"email"`
	Price     string `json:"price"`
	CreatedAt string `json:"createdAt"`
}

// Overview aggregates a store's sales figures
type Overview struct {
	TotalRevenue       decimal.Decimal  `json:"totalRevenue"`
	SalesCount         int              `json:"salesCount"`
	StockCount         int              `json:"stockCount"`
	GraphRevenue       []MonthlyRevenue `json:"graphRevenue"`
	RecentTransactions []Transaction    `json:"recentTransactions"`
}

// OrderRow is an order flattened for the admin orders table
type OrderRow struct {
	ID         string `json:"id"`
	IsPaid     bool   `json:"isPaid"`
	Phone      string `json:"phone"`
	Address    string `json:"address"`
	Products   string `json:"products"`
	TotalPrice string `json:"totalPrice"`
	CreatedAt  string `json:"createdAt"`
}
