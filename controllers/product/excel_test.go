package productcontroller

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/tealeg/xlsx"

	"github.com/PelusheLD/FV-Bodegon/models"
)

func buildSheet(t *testing.T, headers []string, rows [][]string) *xlsx.Sheet {
	file := xlsx.NewFile()
	sheet, err := file.AddSheet("Catalogo")
	if err != nil {
		t.Fatal(err)
	}
	headerRow := sheet.AddRow()
	for _, h := range headers {
		headerRow.AddCell().SetValue(h)
	}
	for _, row := range rows {
		r := sheet.AddRow()
		for _, cell := range row {
			r.AddCell().SetValue(cell)
		}
	}
	return sheet
}

func TestNormalizeHeader(t *testing.T) {
	assert.Equal(t, "precio maximo", normalizeHeader("Precio Máximo"))
	assert.Equal(t, "precio maximo", normalizeHeader("  PRECIO   MAXIMO  "))
	assert.Equal(t, "codigo", normalizeHeader("Código"))
	assert.Equal(t, "existencia actual", normalizeHeader("Existencia Actual"))
}

func TestResolveColumnsMissingRequired(t *testing.T) {
	sheet := buildSheet(t, []string{"Nombre", "Precio"}, [][]string{{"Agua", "1.00"}})
	_, _, err := importSheet(newTestDB(t), sheet)
	assert.ErrorContains(t, err, "missing required columns")
}

func TestImportCreatesUnderFallbackCategory(t *testing.T) {
	db := newTestDB(t)
	sheet := buildSheet(t,
		[]string{"Código", "Nombre", "Existencia Actual", "Precio Máximo"},
		[][]string{
			{"A001", "Harina de Maíz", "24", "1,50"},
			{"A002", "Queso por peso", "10", "8.75"},
		},
	)

	imported, rowErrors, err := importSheet(db, sheet)
	assert.NoError(t, err)
	assert.Empty(t, rowErrors)
	assert.Equal(t, 2, imported)

	var fallback models.Category
	assert.NoError(t, db.First(&fallback, "name = ?", fallbackCategoryName).Error)
	assert.True(t, fallback.Enabled)

	var harina models.Product
	assert.NoError(t, db.First(&harina, "external_code = ?", "A001").Error)
	assert.Equal(t, 1.5, harina.Price)
	assert.Equal(t, 24.0, harina.Stock)
	assert.Equal(t, models.MeasurementUnit, harina.MeasurementType)
	assert.Equal(t, fallback.ID, harina.CategoryID)

	// "por peso" in the name marks the product as sold by weight
	var queso models.Product
	assert.NoError(t, db.First(&queso, "external_code = ?", "A002").Error)
	assert.Equal(t, models.MeasurementWeight, queso.MeasurementType)
}

func TestImportUpdatesMatchedByCode(t *testing.T) {
	db := newTestDB(t)
	category := seedCategoryWithProducts(t, db)
	existing := models.Product{
		Name:            "Harina vieja",
		Price:           1.0,
		Stock:           5,
		CategoryID:      category.ID,
		ExternalCode:    "A001",
		MeasurementType: models.MeasurementUnit,
	}
	assert.NoError(t, db.Create(&existing).Error)

	sheet := buildSheet(t,
		[]string{"Codigo", "Producto", "Stock", "Precio"},
		[][]string{{"A001", "Harina por peso", "30", "2.25"}},
	)

	imported, rowErrors, err := importSheet(db, sheet)
	assert.NoError(t, err)
	assert.Empty(t, rowErrors)
	assert.Equal(t, 1, imported)

	var updated models.Product
	assert.NoError(t, db.First(&updated, "id = ?", existing.ID).Error)
	assert.Equal(t, 2.25, updated.Price)
	assert.Equal(t, 30.0, updated.Stock)
	// name match implies an upgrade to weight, category stays put
	assert.Equal(t, models.MeasurementWeight, updated.MeasurementType)
	assert.Equal(t, category.ID, updated.CategoryID)
}

// One bad row never aborts the batch: it is reported and the rest
// imports.
func TestImportBadRowIsIsolated(t *testing.T) {
	db := newTestDB(t)
	sheet := buildSheet(t,
		[]string{"Codigo", "Nombre", "Existencia", "Precio"},
		[][]string{
			{"A001", "Harina", "10", "1.50"},
			{"A002", "Gratis", "10", "0"},  // price <= 0
			{"", "Sin código", "10", "2"},  // missing code
			{"A004", "", "10", "2"},        // missing name
			{"A005", "Arroz", "50", "3,25"},
		},
	)

	imported, rowErrors, err := importSheet(db, sheet)
	assert.NoError(t, err)
	assert.Equal(t, 2, imported)
	assert.Len(t, rowErrors, 3)

	var count int64
	db.Model(&models.Product{}).Count(&count)
	assert.Equal(t, int64(2), count)
}
