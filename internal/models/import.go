package models

// ImportType selects which processor the import orchestrator runs.
type ImportType string

const (
	ImportTypeOrders    ImportType = "orders"
	ImportTypeInventory ImportType = "inventory"
	ImportTypeProducts  ImportType = "products"
	ImportTypeAuto      ImportType = "auto"
)

// Valid reports whether the import type is one the orchestrator accepts.
func (t ImportType) Valid() bool {
	switch t {
	case ImportTypeOrders, ImportTypeInventory, ImportTypeProducts, ImportTypeAuto:
		return true
	}
	return false
}

// DetectionResult is the outcome of marketplace detection on an uploaded
// file. Detection never fails outright: an unparseable file produces an
// Unknown result with a Note explaining the fallback.
type DetectionResult struct {
	Marketplace Marketplace         `json:"marketplace"`
	Confidence  float64             `json:"confidence"`
	Headers     []string            `json:"headers"`
	SampleData  []map[string]string `json:"sampleData"`
	Note        string              `json:"note,omitempty"`
}

// ImportRowError describes a failure confined to a single row.
type ImportRowError struct {
	Row     int    `json:"row"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

// ImportResult is the summary returned for one import call. Per-row
// failures accumulate in Errors; they never abort the batch.
type ImportResult struct {
	Total        int              `json:"total"`
	Processed    int              `json:"processed"`
	Skipped      int              `json:"skipped"`
	Errors       []ImportRowError `json:"errors"`
	NewSkus      []string         `json:"newSkus"`
	UnmappedSkus []string         `json:"unmappedSkus"`
}

// NewImportResult returns a result with the slice fields initialized so
// they serialize as empty arrays rather than null.
func NewImportResult() *ImportResult {
	return &ImportResult{
		Errors:       make([]ImportRowError, 0),
		NewSkus:      make([]string, 0),
		UnmappedSkus: make([]string, 0),
	}
}

// AddError records a row-scoped failure.
func (r *ImportResult) AddError(row int, code, message string) {
	r.Errors = append(r.Errors, ImportRowError{Row: row, Code: code, Message: message})
}

// ImportTemplateColumn describes one column of a downloadable import
// template.
type ImportTemplateColumn struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Required    bool   `json:"required"`
	Type        string `json:"type"`
	Example     string `json:"example"`
}

// ImportTemplate is the column layout offered for a given import type.
type ImportTemplate struct {
	Type    ImportType             `json:"type"`
	Columns []ImportTemplateColumn `json:"columns"`
}

// OrdersImportTemplate returns the generic orders import layout.
func OrdersImportTemplate() ImportTemplate {
	return ImportTemplate{
		Type: ImportTypeOrders,
		Columns: []ImportTemplateColumn{
			{Name: "orderId", Description: "External marketplace order id", Required: true, Type: "string", Example: "408-1234567-1234567"},
			{Name: "orderDate", Description: "Order date (YYYY-MM-DD)", Required: false, Type: "date", Example: "2025-01-25"},
			{Name: "status", Description: "Order status as exported by the marketplace", Required: false, Type: "string", Example: "Shipped"},
			{Name: "sku", Description: "Marketplace SKU code", Required: true, Type: "string", Example: "FK-TSHIRT-M"},
			{Name: "quantity", Description: "Units ordered", Required: false, Type: "number", Example: "1"},
			{Name: "price", Description: "Unit price", Required: false, Type: "number", Example: "499.00"},
		},
	}
}

// InventoryImportTemplate returns the generic inventory import layout.
func InventoryImportTemplate() ImportTemplate {
	return ImportTemplate{
		Type: ImportTypeInventory,
		Columns: []ImportTemplateColumn{
			{Name: "SKU", Description: "Marketplace SKU code", Required: true, Type: "string", Example: "FK-TSHIRT-M"},
			{Name: "Quantity", Description: "Available stock", Required: true, Type: "number", Example: "42"},
		},
	}
}

// ProductsImportTemplate returns the product catalog import layout.
func ProductsImportTemplate() ImportTemplate {
	return ImportTemplate{
		Type: ImportTypeProducts,
		Columns: []ImportTemplateColumn{
			{Name: "MSKU", Description: "Master SKU, the product identity", Required: true, Type: "string", Example: "TSHIRT-M"},
			{Name: "Name", Description: "Product name", Required: true, Type: "string", Example: "Cotton T-Shirt (M)"},
			{Name: "Category", Description: "Product category", Required: false, Type: "string", Example: "Apparel"},
			{Name: "Description", Description: "Product description", Required: false, Type: "string", Example: "Round-neck cotton t-shirt"},
			{Name: "HSN_CODE", Description: "Tax classification code", Required: false, Type: "string", Example: "6109"},
			{Name: "Length", Description: "Length in cm", Required: false, Type: "number", Example: "30"},
			{Name: "Width", Description: "Breadth in cm", Required: false, Type: "number", Example: "25"},
			{Name: "Height", Description: "Height in cm", Required: false, Type: "number", Example: "2"},
			{Name: "Weight", Description: "Weight in kg", Required: false, Type: "number", Example: "0.2"},
			{Name: "SKU", Description: "Optional marketplace SKU to map", Required: false, Type: "string", Example: "FK-TSHIRT-M"},
			{Name: "Quantity", Description: "Initial stock for the mapped SKU", Required: false, Type: "number", Example: "10"},
		},
	}
}

// TemplateFor returns the template for an import type, defaulting to
// orders.
func TemplateFor(importType ImportType) ImportTemplate {
	switch importType {
	case ImportTypeInventory:
		return InventoryImportTemplate()
	case ImportTypeProducts:
		return ProductsImportTemplate()
	default:
		return OrdersImportTemplate()
	}
}
