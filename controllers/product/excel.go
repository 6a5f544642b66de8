package productcontroller

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"unicode"

	"github.com/gin-gonic/gin"
	"github.com/tealeg/xlsx"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
	"gorm.io/gorm"

	"github.com/PelusheLD/FV-Bodegon/models"
)

// fallbackCategoryName is where imported products land when the sheet
// carries no category information.
const fallbackCategoryName = "OTROS"

// headerAliases maps normalized supplier column headers to canonical
// fields. Suppliers are inconsistent about accents and wording, so
// headers are diacritic-stripped and lowercased before lookup.
var headerAliases = map[string]string{
	"codigo":            "code",
	"cod":               "code",
	"nombre":            "name",
	"producto":          "name",
	"existencia actual": "stock",
	"existencia":        "stock",
	"stock":             "stock",
	"precio maximo":     "price",
	"precio maximoo":    "price",
	"precio":            "price",
}

var errMissingColumns = errors.New("missing required columns")

// normalizeHeader strips diacritics, collapses whitespace and lowercases,
// so "Precio Máximo " and "precio maximo" resolve to the same alias.
func normalizeHeader(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	stripped, _, err := transform.String(t, s)
	if err != nil {
		stripped = s
	}
	return strings.ToLower(strings.Join(strings.Fields(stripped), " "))
}

// parseDecimal accepts both dot and comma decimal separators.
func parseDecimal(s string) float64 {
	v, err := strconv.ParseFloat(strings.ReplaceAll(strings.TrimSpace(s), ",", "."), 64)
	if err != nil {
		return 0
	}
	return v
}

// resolveColumns maps the header row to canonical field -> column index.
// Unrecognized headers are ignored; code, name and price must resolve.
func resolveColumns(header *xlsx.Row) (map[string]int, error) {
	columns := make(map[string]int)
	for i, cell := range header.Cells {
		if field, ok := headerAliases[normalizeHeader(cell.String())]; ok {
			if _, taken := columns[field]; !taken {
				columns[field] = i
			}
		}
	}
	for _, required := range []string{"code", "name", "price"} {
		if _, ok := columns[required]; !ok {
			return nil, fmt.Errorf("%w: %s", errMissingColumns, required)
		}
	}
	return columns, nil
}

// importSheet walks the data rows, updating products matched by external
// code and creating the rest under the fallback category. One bad row is
// recorded and skipped, never aborting the batch.
func importSheet(db *gorm.DB, sheet *xlsx.Sheet) (imported int, rowErrors []string, err error) {
	if sheet.MaxRow < 2 {
		return 0, nil, errors.New("sheet is empty or missing header row")
	}

	columns, err := resolveColumns(sheet.Rows[0])
	if err != nil {
		return 0, nil, err
	}

	fallback, err := ensureFallbackCategory(db)
	if err != nil {
		return 0, nil, err
	}

	for i := 1; i < sheet.MaxRow; i++ {
		row := sheet.Rows[i]
		get := func(field string) string {
			idx, ok := columns[field]
			if !ok || idx >= len(row.Cells) {
				return ""
			}
			return strings.TrimSpace(row.Cells[idx].String())
		}

		code := get("code")
		name := get("name")
		price := parseDecimal(get("price"))
		stock := parseDecimal(get("stock"))
		isWeight := strings.Contains(strings.ToLower(name), "por peso")

		if code == "" || name == "" || price <= 0 {
			rowErrors = append(rowErrors, fmt.Sprintf("fila %d inválida: codigo=%q nombre=%q precio=%v", i+1, code, name, price))
			continue
		}

		var existing models.Product
		findErr := db.First(&existing, "external_code = ?", code).Error
		switch {
		case findErr == nil:
			existing.Price = price
			existing.Stock = stock
			if isWeight && existing.MeasurementType != models.MeasurementWeight {
				existing.MeasurementType = models.MeasurementWeight
			}
			if saveErr := db.Save(&existing).Error; saveErr != nil {
				rowErrors = append(rowErrors, fmt.Sprintf("fila %d: no se pudo actualizar %q", i+1, name))
				continue
			}
		case findErr == gorm.ErrRecordNotFound:
			measurement := models.MeasurementUnit
			if isWeight {
				measurement = models.MeasurementWeight
			}
			product := models.Product{
				Name:            name,
				Price:           price,
				CategoryID:      fallback.ID,
				ExternalCode:    code,
				Stock:           stock,
				MeasurementType: measurement,
			}
			if createErr := db.Create(&product).Error; createErr != nil {
				rowErrors = append(rowErrors, fmt.Sprintf("fila %d: no se pudo crear %q", i+1, name))
				continue
			}
		default:
			rowErrors = append(rowErrors, fmt.Sprintf("fila %d: error consultando %q", i+1, code))
			continue
		}
		imported++
	}

	return imported, rowErrors, nil
}

func ensureFallbackCategory(db *gorm.DB) (*models.Category, error) {
	var category models.Category
	err := db.First(&category, "name = ?", fallbackCategoryName).Error
	if err == gorm.ErrRecordNotFound {
		category = models.Category{Name: fallbackCategoryName, Enabled: true}
		err = db.Create(&category).Error
	}
	if err != nil {
		return nil, err
	}
	return &category, nil
}

// ImportProductsFromExcel ingests a supplier catalog.
// POST /api/products/import-excel, multipart field "excel"
func ImportProductsFromExcel(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		fileHeader, err := c.FormFile("excel")
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Excel file is required"})
			return
		}

		file, err := fileHeader.Open()
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to open Excel file"})
			return
		}
		defer file.Close()

		xlFile, err := xlsx.OpenReaderAt(file, fileHeader.Size)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Failed to parse Excel file"})
			return
		}
		if len(xlFile.Sheets) == 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Excel file has no sheets"})
			return
		}

		imported, rowErrors, err := importSheet(db, xlFile.Sheets[0])
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		if rowErrors == nil {
			rowErrors = []string{}
		}
		c.JSON(http.StatusOK, gin.H{
			"message":  fmt.Sprintf("Se importaron %d productos exitosamente", imported),
			"imported": imported,
			"errors":   rowErrors,
		})
	}
}
