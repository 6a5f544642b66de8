package productcontroller

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/tealeg/xlsx"
	"gorm.io/gorm"

	"github.com/PelusheLD/FV-Bodegon/models"
)

// ExportProductsToExcel streams the catalog as an .xlsx download, using
// the same column headers the importer understands so the round trip
// works.
// GET /api/admin/products/export-excel
func ExportProductsToExcel(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var products []models.Product
		if err := db.Order("name").Find(&products).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch products"})
			return
		}

		file := xlsx.NewFile()
		sheet, err := file.AddSheet("Productos")
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create Excel sheet"})
			return
		}

		headerRow := sheet.AddRow()
		for _, h := range []string{"Codigo", "Nombre", "Existencia", "Precio"} {
			headerRow.AddCell().SetValue(h)
		}

		for _, p := range products {
			row := sheet.AddRow()
			row.AddCell().SetValue(p.ExternalCode)
			row.AddCell().SetValue(p.Name)
			row.AddCell().SetValue(p.Stock)
			row.AddCell().SetValue(p.Price)
		}

		c.Header("Content-Disposition", "attachment; filename=productos.xlsx")
		c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")

		if err := file.Write(c.Writer); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to write Excel file"})
			return
		}
	}
}
