package smartbiz

import (
	"time"

	"github.com/shopspring/decimal"
)

// seedDate is the date of the demonstration transactions.
var seedDate = time.Date(2024, time.May, 20, 9, 30, 0, 0, time.UTC)

func vnd(v int64) decimal.Decimal { return decimal.NewFromInt(v) }

// Seed returns the demonstration data used for a new workspace: four
// products, two customers, two suppliers, one sale on credit and one purchase
// on credit. The balances already account for the two transactions.
func Seed() Snapshot {
	return Snapshot{
		Products: []Product{
			{ID: "p1", Name: "iPhone 15 Pro Max", SKU: "IP15PM", Category: "Điện thoại", Unit: "Cái", CostPrice: vnd(28_000_000), SalePrice: vnd(32_000_000), Stock: 15, MinStock: 5},
			{ID: "p2", Name: "Samsung S24 Ultra", SKU: "S24U", Category: "Điện thoại", Unit: "Cái", CostPrice: vnd(25_000_000), SalePrice: vnd(29_000_000), Stock: 8, MinStock: 5},
			{ID: "p3", Name: "MacBook Air M3", SKU: "MBA-M3", Category: "Laptop", Unit: "Cái", CostPrice: vnd(24_000_000), SalePrice: vnd(27_500_000), Stock: 3, MinStock: 5},
			{ID: "p4", Name: "AirPods Pro 2", SKU: "APP2", Category: "Phụ kiện", Unit: "Bộ", CostPrice: vnd(5_000_000), SalePrice: vnd(6_200_000), Stock: 25, MinStock: 10},
		},
		Contacts: []Contact{
			{ID: "c1", Name: "Nguyễn Văn A", Phone: "0901234567", Type: Customer, Balance: vnd(1_500_000)},
			{ID: "c2", Name: "Trần Thị B", Phone: "0987654321", Type: Customer, Balance: vnd(0)},
			{ID: "s1", Name: "Công ty NPP Toàn Cầu", Phone: "0281234567", Type: Supplier, Balance: vnd(45_000_000)},
			{ID: "s2", Name: "Xưởng Linh Kiện ABC", Phone: "0249876543", Type: Supplier, Balance: vnd(0)},
		},
		Transactions: []Transaction{
			{
				ID: "t1", Type: Sale, Date: seedDate, ContactID: "c1", ContactName: "Nguyễn Văn A",
				Items: []TransactionItem{
					{ProductID: "p1", Name: "iPhone 15 Pro Max", Quantity: 1, Price: vnd(32_000_000), Total: vnd(32_000_000)},
				},
				Subtotal: vnd(32_000_000), Discount: vnd(0), Total: vnd(32_000_000),
				PaidAmount: vnd(30_500_000), DebtAmount: vnd(1_500_000),
			},
			{
				ID: "t2", Type: Purchase, Date: seedDate.Add(-24 * time.Hour), ContactID: "s1", ContactName: "Công ty NPP Toàn Cầu",
				Items: []TransactionItem{
					{ProductID: "p2", Name: "Samsung S24 Ultra", Quantity: 5, Price: vnd(25_000_000), Total: vnd(125_000_000)},
				},
				Subtotal: vnd(125_000_000), Discount: vnd(0), Total: vnd(125_000_000),
				PaidAmount: vnd(80_000_000), DebtAmount: vnd(45_000_000),
			},
		},
	}
}
