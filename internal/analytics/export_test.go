package analytics

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"vendorhub/internal/model"
)

func TestWriteBreakdownXLSX(t *testing.T) {
	subs := Enhance([]model.Subscription{
		newSub("1", "12", model.BillingMonthly, withTeam("Ops"), withVendor("Slack"), renewsIn(3)),
		newSub("2", "240", model.BillingYearly, withVendor("GitHub")),
	}, refNow)

	var buf bytes.Buffer
	require.NoError(t, WriteBreakdownXLSX(&buf, Breakdown(subs), subs))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{summarySheet, subscriptionsSheet}, f.GetSheetList())

	v, err := f.GetCellValue(summarySheet, "B2")
	require.NoError(t, err)
	assert.Equal(t, "32", v)

	rows, err := f.GetRows(subscriptionsSheet)
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, "Name", rows[0][0])
	assert.Equal(t, "sub 1", rows[1][0])
	assert.Equal(t, "Ops", rows[1][2])
	assert.Equal(t, "GitHub", rows[2][1])
	assert.Equal(t, "Unassigned", rows[2][2])
}
