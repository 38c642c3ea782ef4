package productcontroller

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/junaidrashid-git/storefront-api/models"
	"github.com/tealeg/xlsx"
	"gorm.io/gorm"
)

var exportHeaders = []string{
	"ID", "SellerID", "Name", "Category", "Brand", "Status",
	"OriginalPrice", "DiscountPercentage", "Price", "Currency",
	"TotalQuantity", "Remaining", "Sold", "CreatedAt", "UpdatedAt",
}

// BuildProductsSheet renders products as a single-sheet workbook.
func BuildProductsSheet(products []models.Product) (*xlsx.File, error) {
	file := xlsx.NewFile()
	sheet, err := file.AddSheet("Products")
	if err != nil {
		return nil, err
	}

	headerRow := sheet.AddRow()
	for _, h := range exportHeaders {
		headerRow.AddCell().SetValue(h)
	}

	for _, p := range products {
		row := sheet.AddRow()
		row.AddCell().SetValue(p.ID)
		row.AddCell().SetValue(p.SellerID)
		row.AddCell().SetValue(p.Name)
		row.AddCell().SetValue(p.Category)
		row.AddCell().SetValue(p.Brand)
		row.AddCell().SetValue(string(p.Status))
		row.AddCell().SetValue(p.OriginalPrice)
		row.AddCell().SetValue(p.DiscountPercentage)
		row.AddCell().SetValue(p.Price)
		row.AddCell().SetValue(p.Currency)
		row.AddCell().SetValue(p.Availability.Total)
		row.AddCell().SetValue(p.Availability.Remaining)
		row.AddCell().SetValue(p.Availability.Sold)
		row.AddCell().SetValue(p.CreatedAt.Format("2006-01-02 15:04:05"))
		row.AddCell().SetValue(p.UpdatedAt.Format("2006-01-02 15:04:05"))
	}
	return file, nil
}

// GET /admin/products/export-excel
func ExportProductsToExcel(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var products []models.Product
		if err := db.WithContext(c.Request.Context()).Order("id").Find(&products).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch products", "code": "internal"})
			return
		}

		file, err := BuildProductsSheet(products)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create Excel sheet", "code": "internal"})
			return
		}

		// Set response headers for download
		c.Header("Content-Disposition", "attachment; filename=products.xlsx")
		c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
		c.Header("Content-Transfer-Encoding", "binary")
		c.Header("Expires", "0")

		if err := file.Write(c.Writer); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to write Excel file", "code": "internal"})
			return
		}
	}
}
