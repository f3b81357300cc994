package server

import (
	"fmt"
	"net/http"
	"sort"

	"github.com/gin-gonic/gin"
	"github.com/xuri/excelize/v2"

	"silverradar/internal/flips"
	"silverradar/internal/logging"
)

// ExportFlips writes the current filtered flip table as a spreadsheet.
func (s *Server) ExportFlips(c *gin.Context) {
	q := parseFlipsQuery(c)
	res := s.refresher(q.Region).Ensure(c.Request.Context())

	list := flips.Normalize(res.Opportunities, q.Tax)
	list = filterFlips(list, q)
	sort.Slice(list, func(i, j int) bool {
		return list[i].Profit > list[j].Profit
	})

	f := excelize.NewFile()
	defer f.Close()

	const sheet = "Flips"
	f.SetSheetName("Sheet1", sheet)

	headers := []string{"Item", "Tier", "Quality", "Enchant", "Buy City", "Sell City",
		"Buy Price", "Sell Price", "Market Avg", "Discount %", "Profit", "Margin %"}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(sheet, cell, h)
	}

	for row, flip := range list {
		values := []any{
			flip.ItemName, flip.Tier, flip.Quality, flip.Enchantment,
			flip.BuyCity, flip.SellCity,
			flip.BuyPrice, flip.SellPrice, flip.MarketAverage,
			flip.Discount, flip.Profit, flip.ProfitMargin,
		}
		for col, v := range values {
			cell, _ := excelize.CoordinatesToCellName(col+1, row+2)
			f.SetCellValue(sheet, cell, v)
		}
	}

	filename := fmt.Sprintf("flips-%s-%s.xlsx", q.Region, res.FetchedAt.Format("20060102-150405"))
	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	if err := f.Write(c.Writer); err != nil {
		logging.Errorf("[export] write failed: %v", err)
		c.Status(http.StatusInternalServerError)
	}
}
