package handlers

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/xuri/excelize/v2"

	"warehouse-service/internal/models"
	"warehouse-service/internal/services"
)

// MaxUploadSize caps staged import files at 10MB.
const MaxUploadSize = 10 << 20

// ImportHandler exposes the upload → detect → process import flow.
type ImportHandler struct {
	cache         *services.FileCache
	detector      *services.Detector
	importService *services.ImportService
}

// NewImportHandler creates a new ImportHandler
func NewImportHandler(cache *services.FileCache, detector *services.Detector, importService *services.ImportService) *ImportHandler {
	return &ImportHandler{
		cache:         cache,
		detector:      detector,
		importService: importService,
	}
}

// Upload stages a CSV/XLSX file and returns its cache id
// POST /api/import/upload
func (h *ImportHandler) Upload(c *gin.Context) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		respondError(c, http.StatusBadRequest, "NO_FILE", "No file uploaded")
		return
	}
	if fileHeader.Size > MaxUploadSize {
		respondError(c, http.StatusBadRequest, "FILE_TOO_LARGE", "File exceeds the 10MB limit")
		return
	}

	name := strings.ToLower(fileHeader.Filename)
	if !strings.HasSuffix(name, ".csv") && !strings.HasSuffix(name, ".xlsx") {
		respondError(c, http.StatusBadRequest, "UNSUPPORTED_FILE_TYPE", "Only CSV and XLSX files are allowed")
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		respondError(c, http.StatusInternalServerError, "UPLOAD_FAILED", "Failed to read uploaded file")
		return
	}
	defer file.Close()

	content, err := io.ReadAll(io.LimitReader(file, MaxUploadSize+1))
	if err != nil {
		respondError(c, http.StatusInternalServerError, "UPLOAD_FAILED", "Failed to read uploaded file")
		return
	}
	if len(content) > MaxUploadSize {
		respondError(c, http.StatusBadRequest, "FILE_TOO_LARGE", "File exceeds the 10MB limit")
		return
	}

	staged := h.cache.Put(content, fileHeader.Filename, fileHeader.Header.Get("Content-Type"))

	c.JSON(http.StatusOK, models.APIResponse{
		Success: true,
		Data:    staged,
	})
}

type detectRequest struct {
	FileID string `json:"fileId" binding:"required"`
}

// Detect guesses the marketplace of a staged file
// POST /api/import/detect
func (h *ImportHandler) Detect(c *gin.Context) {
	var req detectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "VALIDATION_ERROR", "File ID is required")
		return
	}

	staged, ok := h.cache.Get(req.FileID)
	if !ok {
		respondError(c, http.StatusNotFound, "FILE_NOT_FOUND", "File not found or expired")
		return
	}

	result := h.detector.Detect(staged.Content, staged.Filename)
	c.JSON(http.StatusOK, models.APIResponse{
		Success: true,
		Data:    result,
	})
}

type processRequest struct {
	FileID      string            `json:"fileId" binding:"required"`
	Marketplace string            `json:"marketplace" binding:"required"`
	ImportType  models.ImportType `json:"importType"`
	Mappings    map[string]string `json:"mappings"`
}

// Process runs the import pipeline over a staged file
// POST /api/import/process
func (h *ImportHandler) Process(c *gin.Context) {
	var req processRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "VALIDATION_ERROR", "File ID and marketplace are required")
		return
	}

	staged, ok := h.cache.Get(req.FileID)
	if !ok {
		respondError(c, http.StatusNotFound, "FILE_NOT_FOUND", "File not found or expired")
		return
	}

	result, err := h.importService.Process(c.Request.Context(), services.ImportRequest{
		Content:     staged.Content,
		Filename:    staged.Filename,
		Marketplace: models.ParseMarketplace(req.Marketplace),
		Type:        req.ImportType,
		Mappings:    req.Mappings,
	})
	if err != nil {
		switch {
		case errors.Is(err, services.ErrEmptyFile):
			respondError(c, http.StatusBadRequest, "EMPTY_FILE", "Empty or invalid file")
		case errors.Is(err, services.ErrInvalidImportType):
			respondError(c, http.StatusBadRequest, "INVALID_IMPORT_TYPE", "Invalid import type")
		case errors.Is(err, services.ErrMarketplaceRequired):
			respondError(c, http.StatusBadRequest, "INVALID_MARKETPLACE", "A supported marketplace is required")
		default:
			respondError(c, http.StatusInternalServerError, "IMPORT_FAILED", "Error processing file")
		}
		return
	}

	// Processing consumes the staged file.
	h.cache.Delete(req.FileID)

	c.JSON(http.StatusOK, models.APIResponse{
		Success: true,
		Data:    result,
	})
}

// Template returns the import template definition or file
// GET /api/import/template?type=orders&format=csv
func (h *ImportHandler) Template(c *gin.Context) {
	importType := models.ImportType(c.DefaultQuery("type", string(models.ImportTypeOrders)))
	if !importType.Valid() || importType == models.ImportTypeAuto {
		respondError(c, http.StatusBadRequest, "INVALID_IMPORT_TYPE", "Invalid import type")
		return
	}
	template := models.TemplateFor(importType)

	switch c.DefaultQuery("format", "json") {
	case "csv":
		h.writeCSVTemplate(c, template)
	case "xlsx":
		h.writeXLSXTemplate(c, template)
	default:
		c.JSON(http.StatusOK, models.APIResponse{
			Success: true,
			Data:    template,
		})
	}
}

// writeCSVTemplate downloads a header-only CSV template
func (h *ImportHandler) writeCSVTemplate(c *gin.Context, template models.ImportTemplate) {
	c.Header("Content-Type", "text/csv")
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%s_import_template.csv", template.Type))

	writer := csv.NewWriter(c.Writer)
	defer writer.Flush()

	headers := make([]string, len(template.Columns))
	for i, col := range template.Columns {
		headers[i] = col.Name
	}
	writer.Write(headers)
}

// writeXLSXTemplate downloads an Excel template with a column reference
// sheet
func (h *ImportHandler) writeXLSXTemplate(c *gin.Context, template models.ImportTemplate) {
	f := excelize.NewFile()
	defer f.Close()

	sheetName := string(template.Type)
	if len(sheetName) > 0 {
		sheetName = strings.ToUpper(sheetName[:1]) + sheetName[1:]
	}
	f.SetSheetName("Sheet1", sheetName)

	headerStyle, _ := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Color: "FFFFFF"},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"4472C4"}, Pattern: 1},
		Border: []excelize.Border{
			{Type: "bottom", Color: "000000", Style: 1},
		},
	})
	requiredStyle, _ := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Color: "FFFFFF"},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"C65911"}, Pattern: 1},
		Border: []excelize.Border{
			{Type: "bottom", Color: "000000", Style: 1},
		},
	})

	for i, col := range template.Columns {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(sheetName, cell, col.Name)
		if col.Required {
			f.SetCellStyle(sheetName, cell, cell, requiredStyle)
		} else {
			f.SetCellStyle(sheetName, cell, cell, headerStyle)
		}
		colName, _ := excelize.ColumnNumberToName(i + 1)
		f.SetColWidth(sheetName, colName, colName, 20)
	}

	f.NewSheet("Columns")
	f.SetCellValue("Columns", "A1", "Column")
	f.SetCellValue("Columns", "B1", "Description")
	f.SetCellValue("Columns", "C1", "Required")
	f.SetCellValue("Columns", "D1", "Type")
	f.SetCellValue("Columns", "E1", "Example")
	for i, col := range template.Columns {
		row := i + 2
		f.SetCellValue("Columns", fmt.Sprintf("A%d", row), col.Name)
		f.SetCellValue("Columns", fmt.Sprintf("B%d", row), col.Description)
		required := "Optional"
		if col.Required {
			required = "Required"
		}
		f.SetCellValue("Columns", fmt.Sprintf("C%d", row), required)
		f.SetCellValue("Columns", fmt.Sprintf("D%d", row), col.Type)
		f.SetCellValue("Columns", fmt.Sprintf("E%d", row), col.Example)
	}

	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%s_import_template.xlsx", template.Type))
	f.Write(c.Writer)
}
