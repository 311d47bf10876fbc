package usecases_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"residual-hub.backend/internal/domain/entities"
	"residual-hub.backend/internal/usecases"
)

func TestNormalizeHeaderVariants(t *testing.T) {
	rows := []entities.RawRow{
		{"Merchant_ID": "10000001", "DBA Name": "Corner Deli", "Net Residual": "$1,250.75", "Gross Sales": "40,000", "Txn Count": "312"},
		{"MID": "10000002", "Business-Name": "Book Nook", "net": "(45.10)", "Volume": "900.00", "Transactions": "18"},
	}

	records, dropped := usecases.Normalize(rows, "clearent", "2025-03")
	require.Empty(t, dropped)
	require.Len(t, records, 2)

	assert.Equal(t, "10000001", records[0].MerchantID)
	assert.Equal(t, "Corner Deli", records[0].MerchantName)
	assert.True(t, records[0].Net.Equal(decimal.RequireFromString("1250.75")))
	assert.True(t, records[0].SalesVolume.Equal(decimal.RequireFromString("40000")))
	assert.Equal(t, 312, records[0].TransactionCount)
	assert.Equal(t, "clearent", records[0].ProcessorName)
	assert.Equal(t, "2025-03", records[0].Month)

	// Parenthesized amounts are negative
	assert.True(t, records[1].Net.Equal(decimal.RequireFromString("-45.10")))
}

func TestNormalizePartnerColumns(t *testing.T) {
	rows := []entities.RawRow{
		{"MID": "10000001", "Net": "100", "Group Code": "GRP-7"},
		{"MID": "10000002", "Net": "100", "Branch ID": "BR-2"},
		{"MID": "10000003", "Net": "100"},
	}

	records, dropped := usecases.Normalize(rows, "tsys", "2025-03")
	require.Empty(t, dropped)
	require.Len(t, records, 3)

	assert.True(t, records[0].HasPartnerIndicator())
	assert.Equal(t, "GRP-7", records[0].GroupCode.String)
	assert.True(t, records[1].HasPartnerIndicator())
	assert.Equal(t, "BR-2", records[1].BranchID.String)
	assert.False(t, records[2].HasPartnerIndicator())
}

func TestNormalizeDropsUnusableRows(t *testing.T) {
	rows := []entities.RawRow{
		{"MID": "10000001", "Net": "100"},
		{"Merchant Name": "No Identifier Inc", "Net": "50"},
		{"MID": "10000003", "Net": "not-a-number"},
		{"MID": "10000004", "Net": "75.25"},
	}

	records, dropped := usecases.Normalize(rows, "tsys", "2025-03")
	require.Len(t, records, 2)
	require.Len(t, dropped, 2)

	// Row numbers are 1-based positions in the input
	assert.Equal(t, 2, dropped[0].Row)
	assert.Contains(t, dropped[0].Reason, "merchant identifier")
	assert.Equal(t, 3, dropped[1].Row)
	assert.Contains(t, dropped[1].Reason, "net revenue")
}

func TestNormalizeMissingOptionalFieldsDefaultToZero(t *testing.T) {
	rows := []entities.RawRow{
		{"MID": "10000001", "Net": "100"},
	}

	records, dropped := usecases.Normalize(rows, "tsys", "2025-03")
	require.Empty(t, dropped)
	require.Len(t, records, 1)
	assert.True(t, records[0].SalesVolume.IsZero())
	assert.Equal(t, 0, records[0].TransactionCount)
	assert.Equal(t, "", records[0].MerchantName)
}

// Normalization is stable: canonical output fed back through the
// normalizer reproduces the same record.
func TestNormalizeCanonicalRoundTrip(t *testing.T) {
	rows := []entities.RawRow{
		{"Merchant Number": "10000001", "Legal Name": "Corner Deli", "Residual": "$99.50", "Total Sales": "1,200", "Tran Count": "14", "Partner Code": "GRP-1"},
	}

	first, dropped := usecases.Normalize(rows, "clearent", "2025-03")
	require.Empty(t, dropped)
	require.Len(t, first, 1)

	second, dropped := usecases.Normalize([]entities.RawRow{usecases.CanonicalRow(&first[0])}, "clearent", "2025-03")
	require.Empty(t, dropped)
	require.Len(t, second, 1)

	assert.Equal(t, first[0].MerchantID, second[0].MerchantID)
	assert.Equal(t, first[0].MerchantName, second[0].MerchantName)
	assert.True(t, first[0].Net.Equal(second[0].Net))
	assert.True(t, first[0].SalesVolume.Equal(second[0].SalesVolume))
	assert.Equal(t, first[0].TransactionCount, second[0].TransactionCount)
	assert.Equal(t, first[0].GroupCode, second[0].GroupCode)
}
