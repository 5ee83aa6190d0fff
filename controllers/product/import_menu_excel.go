package productcontroller

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/tealeg/xlsx"
	"gorm.io/gorm"

	"github.com/charddss/mcbyte-cafe/models"
)

// ImportMenuFromExcel bulk-creates or updates menu items from an uploaded
// workbook in the export layout. Rows with a known ID are updated, rows
// without one are created, malformed rows are skipped and counted.
func ImportMenuFromExcel(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		excelFileHeader, err := c.FormFile("file")
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Excel file is required"})
			return
		}

		file, err := excelFileHeader.Open()
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to open Excel file"})
			return
		}
		defer file.Close()

		xlFile, err := xlsx.OpenReaderAt(file, excelFileHeader.Size)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to parse Excel file"})
			return
		}

		if len(xlFile.Sheets) == 0 || xlFile.Sheets[0].MaxRow < 2 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Excel file is empty or missing header row"})
			return
		}

		sheet := xlFile.Sheets[0]
		created, updated, skipped := 0, 0, 0

		for i := 1; i < sheet.MaxRow; i++ {
			row := sheet.Rows[i]

			get := func(index int) string {
				if index < len(row.Cells) {
					return strings.TrimSpace(row.Cells[index].String())
				}
				return ""
			}

			idStr := get(0)
			name := get(1)
			category := models.Category(get(2))
			price, priceErr := strconv.ParseFloat(get(3), 64)
			description := get(4)
			image := get(5)
			rating, _ := strconv.ParseFloat(get(6), 64)

			if name == "" || !category.Valid() || priceErr != nil || price < 0 {
				skipped++
				continue
			}

			product := models.Product{
				Name:        name,
				Category:    category,
				Price:       price,
				Description: description,
				Image:       image,
				Rating:      rating,
			}

			if idStr != "" {
				if id, err := strconv.ParseUint(idStr, 10, 64); err == nil {
					var existing models.Product
					if db.First(&existing, "id = ?", uint(id)).Error == nil {
						product.ID = existing.ID
						if err := db.Model(&existing).Updates(&product).Error; err != nil {
							skipped++
							continue
						}
						updated++
						continue
					}
				}
			}

			if err := db.Create(&product).Error; err != nil {
				skipped++
				continue
			}
			created++
		}

		c.JSON(http.StatusOK, gin.H{
			"created": created,
			"updated": updated,
			"skipped": skipped,
		})
	}
}
