package models

// StockStatus is the availability bucket shown next to a product.
type StockStatus string

const (
	OutOfStock StockStatus = "out-of-stock"
	LowStock   StockStatus = "low-stock"
	InStock    StockStatus = "in-stock"
)

// LowStockThreshold is the highest stock level still reported as low.
const LowStockThreshold = 10

func StockStatusOf(stock int) StockStatus {
	switch {
	case stock <= 0:
		return OutOfStock
	case stock <= LowStockThreshold:
		return LowStock
	default:
		return InStock
	}
}
