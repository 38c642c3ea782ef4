package ledger

import (
	"context"
	"fmt"

	"github.com/junaidrashid-git/storefront-api/models"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

// Drift describes a product whose counters disagree with the cart lines and
// order items that claim its units.
type Drift struct {
	ProductID uint   `json:"product_id"`
	Name      string `json:"name"`
	Total     int    `json:"total_quantity"`
	Remaining int    `json:"remaining"`
	Sold      int    `json:"sold"`
	Claimed   int    `json:"claimed"`
	Repaired  bool   `json:"repaired"`
}

type claimRow struct {
	ProductID uint
	Quantity  int
}

// Reconcile recomputes every product's claimed units from cart lines and order
// items and reports products that drifted. With repair set, sold is reset to
// the claimed count and remaining to whatever of the total is left.
func (l *Ledger) Reconcile(ctx context.Context, repair bool) ([]Drift, error) {
	db := l.db.WithContext(ctx)

	claimed := map[uint]int{}
	for _, model := range []interface{}{&models.CartLine{}, &models.OrderItem{}} {
		var rows []claimRow
		if err := db.Model(model).
			Select("product_id, SUM(quantity) AS quantity").
			Group("product_id").
			Scan(&rows).Error; err != nil {
			return nil, fmt.Errorf("sum claimed units: %w", err)
		}
		for _, r := range rows {
			claimed[r.ProductID] += r.Quantity
		}
	}

	var products []models.Product
	if err := db.Order("id").Find(&products).Error; err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}

	drifts := []Drift{}
	for _, p := range products {
		a := p.Availability
		c := claimed[p.ID]
		if a.Balanced() && a.Sold == c && a.Remaining >= 0 {
			continue
		}

		d := Drift{ProductID: p.ID, Name: p.Name, Total: a.Total, Remaining: a.Remaining, Sold: a.Sold, Claimed: c}
		log.Warn().Uint("product_id", p.ID).Int("total", a.Total).Int("remaining", a.Remaining).
			Int("sold", a.Sold).Int("claimed", c).Msg("Stock drift detected")

		if repair {
			repaired, err := repairProduct(db, p, c)
			if err != nil {
				return drifts, err
			}
			d.Repaired = repaired
		}
		drifts = append(drifts, d)
	}
	return drifts, nil
}

// repairProduct rewrites the counters of p, guarded by the values that were
// read. A product that moved in the meantime is left for the next run.
func repairProduct(db *gorm.DB, p models.Product, claimed int) (bool, error) {
	remaining := p.Availability.Total - claimed
	if remaining < 0 {
		log.Warn().Uint("product_id", p.ID).Int("total", p.Availability.Total).Int("claimed", claimed).
			Msg("More units claimed than stocked")
		remaining = 0
	}

	res := db.Model(&models.Product{}).
		Where("id = ? AND availability_sold = ? AND availability_remaining = ?",
			p.ID, p.Availability.Sold, p.Availability.Remaining).
		Updates(map[string]interface{}{
			"availability_sold":      claimed,
			"availability_remaining": remaining,
		})
	if res.Error != nil {
		return false, fmt.Errorf("repair product %d: %w", p.ID, res.Error)
	}
	if res.RowsAffected == 0 {
		log.Warn().Uint("product_id", p.ID).Msg("Product changed during repair, skipped")
		return false, nil
	}
	log.Info().Uint("product_id", p.ID).Int("sold", claimed).Int("remaining", remaining).Msg("✅ Stock repaired")
	return true, nil
}
