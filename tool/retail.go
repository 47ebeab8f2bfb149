package tool

import (
	"github.com/nicksaban20/Green-Agent/core"
	"github.com/nicksaban20/Green-Agent/world"
)

func (e *Executor) searchProducts(op SearchProductsOp) (Result, error) {
	query := "SELECT * FROM products WHERE 1=1"
	var args []any
	if op.Category != "" {
		query += " AND category = ?"
		args = append(args, op.Category)
	}
	if op.Name != "" {
		query += " AND name LIKE ?"
		args = append(args, "%"+op.Name+"%")
	}

	products, err := e.store.Query(query, args...)
	if err != nil {
		return nil, err
	}
	if products == nil {
		products = []world.Row{}
	}
	return Result{"products": products}, nil
}

// placeOrder validates stock for every requested line before issuing any
// write, then creates the order, its line items and the stock debits in one
// transaction. A single short line fails the whole order.
func (e *Executor) placeOrder(op PlaceOrderOp) (Result, error) {
	if len(op.ProductIDs) != len(op.Quantities) {
		return nil, core.NewBusinessRuleError("Product IDs and quantities must match")
	}

	var result Result
	err := e.store.Transact(func(tx *world.Tx) error {
		prices := make([]float64, len(op.ProductIDs))
		for i, productID := range op.ProductIDs {
			product, err := tx.QueryRow(
				"SELECT stock_quantity, price FROM products WHERE id = ?", productID,
			)
			if err != nil {
				return err
			}
			if product == nil {
				return core.NewBusinessRuleError("Insufficient stock for product %d", productID)
			}
			if stock, _ := product["stock_quantity"].(int64); stock < op.Quantities[i] {
				return core.NewBusinessRuleError("Insufficient stock for product %d", productID)
			}
			prices[i] = asPrice(product["price"])
		}

		var total float64
		for i := range op.ProductIDs {
			total += prices[i] * float64(op.Quantities[i])
		}

		orderID, err := tx.Insert(
			"INSERT INTO orders (customer_id, order_date, total_amount, status) VALUES (?, ?, ?, ?)",
			op.CustomerID, e.today(), total, "completed",
		)
		if err != nil {
			return err
		}

		for i, productID := range op.ProductIDs {
			if _, err := tx.Insert(
				"INSERT INTO order_items (order_id, product_id, quantity, unit_price) VALUES (?, ?, ?, ?)",
				orderID, productID, op.Quantities[i], prices[i],
			); err != nil {
				return err
			}
			if err := tx.Exec(
				"UPDATE products SET stock_quantity = stock_quantity - ? WHERE id = ?",
				op.Quantities[i], productID,
			); err != nil {
				return err
			}
		}

		result = Result{"order_id": orderID, "status": "completed", "total_amount": total}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// returnItem restocks one unit and decrements the order line in the same
// transaction. Returns are only permitted within 30 whole days of the order
// date.
func (e *Executor) returnItem(op ReturnItemOp) (Result, error) {
	err := e.store.Transact(func(tx *world.Tx) error {
		order, err := tx.QueryRow("SELECT * FROM orders WHERE id = ?", op.OrderID)
		if err != nil {
			return err
		}
		if order == nil {
			return core.NewBusinessRuleError("Order not found")
		}

		orderDate, _ := order["order_date"].(string)
		days, err := e.daysSince(orderDate)
		if err != nil {
			return err
		}
		if days > 30 {
			return core.NewBusinessRuleError("Return window expired (30 days)")
		}

		item, err := tx.QueryRow("SELECT product_id FROM order_items WHERE id = ?", op.ItemID)
		if err != nil {
			return err
		}
		if item == nil {
			return core.NewBusinessRuleError("Order item not found")
		}

		if err := tx.Exec(
			"UPDATE order_items SET quantity = quantity - 1 WHERE id = ?", op.ItemID,
		); err != nil {
			return err
		}
		return tx.Exec(
			"UPDATE products SET stock_quantity = stock_quantity + 1 WHERE id = ?",
			item["product_id"],
		)
	})
	if err != nil {
		return nil, err
	}
	return Result{"status": "returned", "reason": op.Reason}, nil
}

func (e *Executor) checkInventory(op CheckInventoryOp) (Result, error) {
	product, err := e.store.QueryRow(
		"SELECT stock_quantity FROM products WHERE id = ?", op.ProductID,
	)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, core.NewBusinessRuleError("Product not found")
	}
	return Result{"stock_quantity": product["stock_quantity"]}, nil
}

func asPrice(v any) float64 {
	switch n := v.(type) {
	case float64:
		return n
	case int64:
		return float64(n)
	default:
		return 0
	}
}
