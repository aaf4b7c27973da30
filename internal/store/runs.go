package store

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/m-wu/order-reports/internal/model"
	"github.com/m-wu/order-reports/internal/orders"
)

// Run 一次跑批的归档记录
type Run struct {
	ID         string    `json:"id"`
	SourceFile string    `json:"source_file"`
	Weekday    string    `json:"weekday"`
	CreatedAt  time.Time `json:"created_at"`
	OrderCount int       `json:"order_count"`
	ItemCount  int       `json:"item_count"`
}

// SaveRun 把一次聚合结果整体归档，返回 run ID
// run 记录与逐单记录在同一事务内落库
func (s *Store) SaveRun(sourceFile, weekday string, result *orders.Result) (string, error) {
	runID := uuid.New().String()

	tx, err := s.db.Begin()
	if err != nil {
		return "", fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.Exec(`
		INSERT INTO runs (id, source_file, weekday, order_count, item_count)
		VALUES (?, ?, ?, ?, ?)
	`, runID, sourceFile, weekday, len(result.Orders), result.RowCount)
	if err != nil {
		return "", fmt.Errorf("failed to insert run: %w", err)
	}

	stmt, err := tx.Prepare(`
		INSERT INTO run_orders (
			run_id, order_number, fulfillment_status,
			shipping_name, shipping_phone, shipping_street, shipping_city,
			shipping_method, branch, pickup_point, notes,
			item_count, food_item_count, food_item_subtotal,
			tip_total, shipping_total, tax_total, grand_total
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return "", fmt.Errorf("failed to prepare statement: %w", err)
	}
	defer stmt.Close()

	for _, orderNumber := range result.SortedOrderNumbers() {
		o := result.Orders[orderNumber]
		_, err := stmt.Exec(
			runID, o.OrderNumber, o.FulfillmentStatus,
			o.ShippingName, o.ShippingPhone, o.ShippingStreet, o.ShippingCity,
			o.ShippingMethod, o.Branch, o.PickupPoint, o.Notes,
			o.ItemCount, o.FoodItemCount, o.FoodItemSubtotal,
			o.TipTotal, o.ShippingTotal, o.TaxTotal, o.GrandTotal,
		)
		if err != nil {
			return "", fmt.Errorf("failed to insert order %s: %w", o.OrderNumber, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return "", fmt.Errorf("failed to commit transaction: %w", err)
	}

	return runID, nil
}

// ListRuns 按时间倒序列出归档的跑批
func (s *Store) ListRuns(limit int) ([]*Run, error) {
	if limit <= 0 {
		limit = 50
	}

	rows, err := s.db.Query(`
		SELECT id, source_file, weekday, created_at, order_count, item_count
		FROM runs ORDER BY created_at DESC, id LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query runs: %w", err)
	}
	defer rows.Close()

	var runs []*Run
	for rows.Next() {
		run := &Run{}
		if err := rows.Scan(&run.ID, &run.SourceFile, &run.Weekday, &run.CreatedAt,
			&run.OrderCount, &run.ItemCount); err != nil {
			return nil, fmt.Errorf("failed to scan run: %w", err)
		}
		runs = append(runs, run)
	}
	return runs, rows.Err()
}

// GetRunOrders 取某次跑批归档的订单汇总，按订单号升序
func (s *Store) GetRunOrders(runID string) ([]*model.Order, error) {
	rows, err := s.db.Query(`
		SELECT order_number, fulfillment_status,
			shipping_name, shipping_phone, shipping_street, shipping_city,
			shipping_method, branch, pickup_point, notes,
			item_count, food_item_count, food_item_subtotal,
			tip_total, shipping_total, tax_total, grand_total
		FROM run_orders WHERE run_id = ? ORDER BY order_number
	`, runID)
	if err != nil {
		return nil, fmt.Errorf("failed to query run orders: %w", err)
	}
	defer rows.Close()

	var result []*model.Order
	for rows.Next() {
		o := &model.Order{}
		if err := rows.Scan(
			&o.OrderNumber, &o.FulfillmentStatus,
			&o.ShippingName, &o.ShippingPhone, &o.ShippingStreet, &o.ShippingCity,
			&o.ShippingMethod, &o.Branch, &o.PickupPoint, &o.Notes,
			&o.ItemCount, &o.FoodItemCount, &o.FoodItemSubtotal,
			&o.TipTotal, &o.ShippingTotal, &o.TaxTotal, &o.GrandTotal,
		); err != nil {
			return nil, fmt.Errorf("failed to scan order: %w", err)
		}
		result = append(result, o)
	}
	return result, rows.Err()
}
