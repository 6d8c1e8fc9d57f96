package purchase

import (
	"fmt"

	"procurement-backend/internal/database"
	"procurement-backend/internal/models"

	"github.com/gofiber/fiber/v2"
	"github.com/xuri/excelize/v2"
	"gorm.io/gorm"
)

// GET /api/purchase_order/export/:id
// Renders the order as a spreadsheet: header block, then one row per line
// with the resolved display names.
func (h *Handlers) Export() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")

		var order models.PurchaseOrder
		if err := database.DB.Preload("Vendor").Preload("Client").Preload("Items", func(db *gorm.DB) *gorm.DB {
			return db.Order("position asc, id asc")
		}).First(&order, "id = ?", id).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Purchase order not found")
		}

		if needsAnnotation(order.Items) {
			bundle := h.loader.LoadAll(c.Context())
			annotateItems(order.Items, bundle)
		}

		f := excelize.NewFile()
		defer f.Close()
		sheet := f.GetSheetName(0)

		vendor, client := "", ""
		if order.Vendor != nil {
			vendor = order.Vendor.Name
		}
		if order.Client != nil {
			client = order.Client.Name
		}

		header := [][]any{
			{"Purchase Order", order.Reference},
			{"Date", order.OrderDate.Format("2006-01-02")},
			{"Vendor", vendor},
			{"Client", client},
			{"Site Incharge", order.SiteIncharge},
			{},
			{"#", "Item", "Category", "Model", "Brand", "Type", "Qty", "Amount"},
		}
		for i, row := range header {
			cell, _ := excelize.CoordinatesToCellName(1, i+1)
			if err := f.SetSheetRow(sheet, cell, &row); err != nil {
				return fiber.NewError(fiber.StatusInternalServerError, "Could not build spreadsheet")
			}
		}

		rowNum := len(header) + 1
		for i, item := range order.Items {
			cell, _ := excelize.CoordinatesToCellName(1, rowNum)
			row := []any{i + 1, item.Item, item.Category, item.Model, item.Brand, item.Type, item.Quantity, item.Amount}
			if err := f.SetSheetRow(sheet, cell, &row); err != nil {
				return fiber.NewError(fiber.StatusInternalServerError, "Could not build spreadsheet")
			}
			rowNum++
		}

		totalCell, _ := excelize.CoordinatesToCellName(7, rowNum+1)
		totalRow := []any{"Total", order.TotalAmount}
		if err := f.SetSheetRow(sheet, totalCell, &totalRow); err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not build spreadsheet")
		}

		buf, err := f.WriteToBuffer()
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not write spreadsheet")
		}

		c.Set(fiber.HeaderContentType, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
		c.Set(fiber.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%s.xlsx", order.Reference))
		return c.Send(buf.Bytes())
	}
}
