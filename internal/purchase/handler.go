package purchase

import (
	"strconv"
	"strings"
	"time"

	"procurement-backend/internal/audit"
	"procurement-backend/internal/catalog"
	"procurement-backend/internal/database"
	"procurement-backend/internal/events"
	"procurement-backend/internal/models"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Handlers owns the purchase-order HTTP surface. The catalog loader feeds
// every operation that needs display-name resolution; the publisher is
// nil-safe and optional.
type Handlers struct {
	loader    *catalog.Loader
	publisher *events.Publisher
}

func NewHandlers(loader *catalog.Loader, publisher *events.Publisher) *Handlers {
	return &Handlers{loader: loader, publisher: publisher}
}

// LineItemRequest: wire shape of one line, integer foreign keys as the
// order-save API requires. item_id is mandatory; the rest are nullable.
type LineItemRequest struct {
	ItemID     uint    `json:"item_id"`
	CategoryID *uint   `json:"category_id"`
	ModelID    *uint   `json:"model_id"`
	BrandID    *uint   `json:"brand_id"`
	TypeID     *uint   `json:"type_id"`
	Quantity   int     `json:"quantity"`
	Amount     float64 `json:"amount"`
}

type CreateOrderRequest struct {
	VendorID     *uint             `json:"vendor_id"`
	ClientID     *uint             `json:"client_id"`
	SiteIncharge string            `json:"site_incharge"`
	OrderDate    string            `json:"order_date"` // YYYY-MM-DD
	Note         string            `json:"note"`
	Status       string            `json:"status"`
	Items        []LineItemRequest `json:"items"`
}

type LineItemResponse struct {
	ID         uint    `json:"id"`
	ItemID     uint    `json:"item_id"`
	CategoryID *uint   `json:"category_id"`
	ModelID    *uint   `json:"model_id"`
	BrandID    *uint   `json:"brand_id"`
	TypeID     *uint   `json:"type_id"`
	Item       string  `json:"item"`
	Category   string  `json:"category"`
	Model      string  `json:"model"`
	Brand      string  `json:"brand"`
	Type       string  `json:"type"`
	Quantity   int     `json:"quantity"`
	Amount     float64 `json:"amount"`
}

type OrderResponse struct {
	ID           uint               `json:"id"`
	Reference    string             `json:"reference"`
	VendorID     *uint              `json:"vendor_id"`
	Vendor       string             `json:"vendor,omitempty"`
	ClientID     *uint              `json:"client_id"`
	Client       string             `json:"client,omitempty"`
	SiteIncharge string             `json:"site_incharge"`
	OrderDate    string             `json:"order_date"`
	Status       string             `json:"status"`
	TotalAmount  float64            `json:"total_amount"`
	Note         string             `json:"note"`
	Items        []LineItemResponse `json:"items,omitempty"`
}

// POST /api/purchase_order/create
func (h *Handlers) Create() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body CreateOrderRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
		}

		order, err := h.buildOrder(c, &body, nil)
		if err != nil {
			return err
		}
		order.Reference = newReference()

		if err := database.DB.Create(order).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not save purchase order")
		}

		audit.WriteFromCtx(c, audit.LogOptions{
			EntityType:  "purchase_order",
			EntityID:    order.ID,
			Action:      models.AuditActionCreate,
			Description: order.Reference,
			After:       order,
		})
		h.publisher.PublishOrderEvent(h.orderEvent(events.EventOrderCreated, order))

		return c.Status(fiber.StatusCreated).JSON(h.toResponse(order, true))
	}
}

// PUT /api/purchase_order/update/:id
func (h *Handlers) Update() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")

		var existing models.PurchaseOrder
		if err := database.DB.Preload("Items").First(&existing, "id = ?", id).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Purchase order not found")
		}

		var body CreateOrderRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
		}

		order, err := h.buildOrder(c, &body, &existing)
		if err != nil {
			return err
		}

		err = database.DB.Transaction(func(tx *gorm.DB) error {
			if err := tx.Where("purchase_order_id = ?", existing.ID).Delete(&models.PurchaseOrderItem{}).Error; err != nil {
				return err
			}
			return tx.Save(order).Error
		})
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not save purchase order")
		}

		audit.WriteFromCtx(c, audit.LogOptions{
			EntityType:  "purchase_order",
			EntityID:    order.ID,
			Action:      models.AuditActionUpdate,
			Description: order.Reference,
			Before:      existing,
			After:       order,
		})
		h.publisher.PublishOrderEvent(h.orderEvent(events.EventOrderUpdated, order))

		return c.JSON(h.toResponse(order, true))
	}
}

// POST /api/purchase_order/:id/items
// Accepts the picker's draft as the form held it (string ids) and runs it
// through the selection/materialization path against a fresh catalog load.
func (h *Handlers) AddItem() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")

		var order models.PurchaseOrder
		if err := database.DB.Preload("Items").First(&order, "id = ?", id).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Purchase order not found")
		}

		var body struct {
			CategoryID string  `json:"category_id"`
			ModelID    string  `json:"model_id"`
			BrandID    string  `json:"brand_id"`
			TypeID     string  `json:"type_id"`
			ItemID     string  `json:"item_id"`
			Quantity   string  `json:"quantity"`
			Amount     float64 `json:"amount"`
		}
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
		}

		bundle := h.loader.LoadAll(c.Context())

		draft := NewDraft()
		draft.SetCategory(body.CategoryID, bundle.Categories)
		draft.SetModel(body.ModelID, bundle.Models)
		draft.SetBrand(body.BrandID, bundle.Brands)
		draft.SetType(body.TypeID, bundle.Types)
		draft.SetItem(body.ItemID, bundle.Items)
		draft.SetQuantity(body.Quantity)

		line, err := Materialize(draft, bundle)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "A line item needs a selected item")
		}
		line.PurchaseOrderID = order.ID
		line.Amount = body.Amount
		line.Position = len(order.Items)

		if err := database.DB.Create(&line).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not save line item")
		}

		database.DB.Model(&order).Update("total_amount", order.TotalAmount+line.Amount)

		return c.Status(fiber.StatusCreated).JSON(toLineResponse(line))
	}
}

// GET /api/purchase_order/getAll
func (h *Handlers) List() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var orders []models.PurchaseOrder
		if err := database.DB.Preload("Vendor").Preload("Client").Order("order_date desc, id desc").Find(&orders).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not list purchase orders")
		}

		res := make([]OrderResponse, 0, len(orders))
		for i := range orders {
			res = append(res, h.toResponse(&orders[i], false))
		}
		return c.JSON(res)
	}
}

// GET /api/purchase_order/get/:id
// Older rows were stored with foreign keys only; their display names are
// resolved through the lookup indices built from the fetched collections.
func (h *Handlers) Get() fiber.Handler {
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

		return c.JSON(h.toResponse(&order, true))
	}
}

// DELETE /api/purchase_order/delete/:id
func (h *Handlers) Delete() fiber.Handler {
	return func(c *fiber.Ctx) error {
		idStr := c.Params("id")

		var order models.PurchaseOrder
		if err := database.DB.First(&order, "id = ?", idStr).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Purchase order not found")
		}

		if err := database.DB.Select("Items").Delete(&order).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not delete purchase order")
		}

		audit.WriteFromCtx(c, audit.LogOptions{
			EntityType:  "purchase_order",
			EntityID:    order.ID,
			Action:      models.AuditActionDelete,
			Description: order.Reference,
			Before:      order,
		})
		h.publisher.PublishOrderEvent(h.orderEvent(events.EventOrderDeleted, &order))

		return c.SendStatus(fiber.StatusNoContent)
	}
}

// buildOrder validates a request body into a PurchaseOrder, resolving line
// display names against a fresh catalog load. Lines without an item_id are
// rejected here, before anything reaches the database.
func (h *Handlers) buildOrder(c *fiber.Ctx, body *CreateOrderRequest, existing *models.PurchaseOrder) (*models.PurchaseOrder, error) {
	orderDate := time.Now()
	if body.OrderDate != "" {
		parsed, err := time.Parse("2006-01-02", body.OrderDate)
		if err != nil {
			return nil, fiber.NewError(fiber.StatusBadRequest, "order_date must be YYYY-MM-DD")
		}
		orderDate = parsed
	}

	status := models.POStatusDraft
	if body.Status != "" {
		switch models.PurchaseOrderStatus(body.Status) {
		case models.POStatusDraft, models.POStatusSubmitted, models.POStatusApproved, models.POStatusCancelled:
			status = models.PurchaseOrderStatus(body.Status)
		default:
			return nil, fiber.NewError(fiber.StatusBadRequest, "Invalid status")
		}
	}

	bundle := h.loader.LoadAll(c.Context())

	order := &models.PurchaseOrder{
		VendorID:     body.VendorID,
		ClientID:     body.ClientID,
		SiteIncharge: strings.TrimSpace(body.SiteIncharge),
		OrderDate:    orderDate,
		Status:       status,
		Note:         strings.TrimSpace(body.Note),
	}
	if existing != nil {
		order.ID = existing.ID
		order.Reference = existing.Reference
		order.CreatedAt = existing.CreatedAt
	}

	total := 0.0
	items := make([]models.PurchaseOrderItem, 0, len(body.Items))
	for i, req := range body.Items {
		if req.ItemID == 0 {
			return nil, fiber.NewError(fiber.StatusBadRequest, "Every line item needs an item_id")
		}
		quantity := req.Quantity
		if quantity < 1 {
			quantity = 1
		}
		line := models.PurchaseOrderItem{
			ItemID:     req.ItemID,
			CategoryID: req.CategoryID,
			ModelID:    req.ModelID,
			BrandID:    req.BrandID,
			TypeID:     req.TypeID,
			Quantity:   quantity,
			Amount:     req.Amount,
			Position:   i,
		}
		annotateItem(&line, bundle)
		total += line.Amount
		items = append(items, line)
	}
	order.Items = items
	order.TotalAmount = total
	return order, nil
}

func (h *Handlers) toResponse(order *models.PurchaseOrder, withItems bool) OrderResponse {
	res := OrderResponse{
		ID:           order.ID,
		Reference:    order.Reference,
		VendorID:     order.VendorID,
		ClientID:     order.ClientID,
		SiteIncharge: order.SiteIncharge,
		OrderDate:    order.OrderDate.Format("2006-01-02"),
		Status:       string(order.Status),
		TotalAmount:  order.TotalAmount,
		Note:         order.Note,
	}
	if order.Vendor != nil {
		res.Vendor = order.Vendor.Name
	}
	if order.Client != nil {
		res.Client = order.Client.Name
	}
	if withItems {
		res.Items = make([]LineItemResponse, 0, len(order.Items))
		for _, item := range order.Items {
			res.Items = append(res.Items, toLineResponse(item))
		}
	}
	return res
}

func toLineResponse(item models.PurchaseOrderItem) LineItemResponse {
	return LineItemResponse{
		ID:         item.ID,
		ItemID:     item.ItemID,
		CategoryID: item.CategoryID,
		ModelID:    item.ModelID,
		BrandID:    item.BrandID,
		TypeID:     item.TypeID,
		Item:       item.Item,
		Category:   item.Category,
		Model:      item.Model,
		Brand:      item.Brand,
		Type:       item.Type,
		Quantity:   item.Quantity,
		Amount:     item.Amount,
	}
}

func (h *Handlers) orderEvent(eventType string, order *models.PurchaseOrder) events.OrderEvent {
	evt := events.OrderEvent{
		EventType:   eventType,
		OrderID:     order.ID,
		Reference:   order.Reference,
		TotalAmount: order.TotalAmount,
	}
	if order.Vendor != nil {
		evt.Vendor = order.Vendor.Name
	}
	for _, item := range order.Items {
		evt.Lines = append(evt.Lines, events.OrderLineEvent{
			ItemID:   item.ItemID,
			Item:     item.Item,
			Category: item.Category,
			Model:    item.Model,
			Brand:    item.Brand,
			Quantity: item.Quantity,
		})
	}
	return evt
}

func newReference() string {
	return "PO-" + strings.ToUpper(uuid.NewString()[:8])
}

func needsAnnotation(items []models.PurchaseOrderItem) bool {
	for _, item := range items {
		if item.Item == "" {
			return true
		}
	}
	return false
}

// annotateItems fills missing display names on persisted lines from the
// per-collection lookup indices.
func annotateItems(items []models.PurchaseOrderItem, bundle *catalog.Bundle) {
	indices := lookupIndices(bundle)
	for i := range items {
		item := &items[i]
		if item.Item == "" {
			item.Item = indexName(indices[catalog.CollectionItem], item.ItemID)
		}
		if item.Category == "" && item.CategoryID != nil {
			item.Category = indexName(indices[catalog.CollectionCategory], *item.CategoryID)
		}
		if item.Model == "" && item.ModelID != nil {
			item.Model = indexName(indices[catalog.CollectionModel], *item.ModelID)
		}
		if item.Brand == "" && item.BrandID != nil {
			item.Brand = indexName(indices[catalog.CollectionBrand], *item.BrandID)
		}
		if item.Type == "" && item.TypeID != nil {
			item.Type = indexName(indices[catalog.CollectionType], *item.TypeID)
		}
	}
}

func annotateItem(line *models.PurchaseOrderItem, bundle *catalog.Bundle) {
	items := []models.PurchaseOrderItem{*line}
	// force resolution even when the client sent display names: the catalog
	// is authoritative
	items[0].Item, items[0].Category, items[0].Model, items[0].Brand, items[0].Type = "", "", "", "", ""
	annotateItems(items, bundle)
	line.Item = items[0].Item
	line.Category = items[0].Category
	line.Model = items[0].Model
	line.Brand = items[0].Brand
	line.Type = items[0].Type
}

// lookupIndices builds one id->name index per collection from the wire-form
// rows, tolerating the upstream field-name variance in one place.
func lookupIndices(bundle *catalog.Bundle) map[catalog.Collection]map[string]string {
	nameFields := map[catalog.Collection][]string{
		catalog.CollectionCategory: catalog.CategoryNameFields,
		catalog.CollectionModel:    catalog.ModelNameFields,
		catalog.CollectionBrand:    catalog.BrandNameFields,
		catalog.CollectionType:     catalog.TypeNameFields,
		catalog.CollectionItem:     catalog.ItemNameFields,
	}

	indices := make(map[catalog.Collection]map[string]string, len(catalog.Resources))
	for _, res := range catalog.Resources {
		entries := bundle.Get(res.Collection)
		rows := make([]catalog.Row, 0, len(entries))
		for _, e := range entries {
			rows = append(rows, catalog.Row(res.Wire(e)))
		}
		indices[res.Collection] = catalog.BuildIndex(rows, catalog.IDFields, nameFields[res.Collection])
	}
	return indices
}

func indexName(index map[string]string, id uint) string {
	key := strconv.FormatUint(uint64(id), 10)
	if name, ok := index[key]; ok {
		return name
	}
	return "#" + key
}
