package productcontroller

import (
	"testing"

	"github.com/junaidrashid-git/storefront-api/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildProductsSheet(t *testing.T) {
	products := []models.Product{
		{ID: 1, SellerID: 7, Name: "Kettle", Category: "Kitchen", Status: models.ProductStatusApproved,
			Currency: "BDT", Availability: models.Availability{Total: 5, Remaining: 3, Sold: 2}},
		{ID: 2, SellerID: 7, Name: "Lamp", Category: "Home", Status: models.ProductStatusPending,
			Currency: "BDT", Availability: models.NewAvailability(1)},
	}

	file, err := BuildProductsSheet(products)
	require.NoError(t, err)
	require.Len(t, file.Sheets, 1)

	sheet := file.Sheets[0]
	assert.Equal(t, "Products", sheet.Name)
	require.Len(t, sheet.Rows, 3)
	assert.Len(t, sheet.Rows[0].Cells, len(exportHeaders))
	assert.Equal(t, "Name", sheet.Rows[0].Cells[2].Value)
	assert.Equal(t, "Kettle", sheet.Rows[1].Cells[2].Value)
	assert.Equal(t, "approved", sheet.Rows[1].Cells[5].Value)
	assert.Equal(t, "pending", sheet.Rows[2].Cells[5].Value)
}

func TestBuildProductsSheetEmpty(t *testing.T) {
	file, err := BuildProductsSheet(nil)
	require.NoError(t, err)
	assert.Len(t, file.Sheets[0].Rows, 1)
}
