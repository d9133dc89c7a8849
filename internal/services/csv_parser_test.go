package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseUpload_CSV(t *testing.T) {
	content := []byte("order-id,sku,quantity\n" +
		"171-1,SKU-A,2\n" +
		"171-2,\"SKU, with comma\",1\n")

	parsed, err := ParseUpload(content, "orders.csv")

	assert.NoError(t, err)
	assert.Equal(t, []string{"order-id", "sku", "quantity"}, parsed.Headers)
	assert.Len(t, parsed.Rows, 2)

	// Quoted fields survive embedded delimiters.
	assert.Equal(t, "SKU, with comma", parsed.Rows[1]["sku"])

	// Rows carry their source line number for error reporting.
	assert.Equal(t, "2", parsed.Rows[0]["_row"])
	assert.Equal(t, "3", parsed.Rows[1]["_row"])
}

func TestParseUpload_RaggedRows(t *testing.T) {
	content := []byte("a,b,c\n" +
		"1,2\n" +
		"1,2,3,4\n")

	parsed, err := ParseUpload(content, "data.csv")

	assert.NoError(t, err)
	assert.Len(t, parsed.Rows, 2)
	// Short rows leave missing cells empty; extra cells are dropped.
	assert.Equal(t, "", parsed.Rows[0]["c"])
	assert.Equal(t, "3", parsed.Rows[1]["c"])
}

func TestParseUpload_BadXLSX(t *testing.T) {
	_, err := ParseUpload([]byte("not a spreadsheet"), "data.xlsx")
	assert.Error(t, err)
}
