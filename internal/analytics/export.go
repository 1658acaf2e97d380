package analytics

import (
	"fmt"
	"io"
	"sort"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"

	"vendorhub/internal/model"
)

const (
	summarySheet       = "Summary"
	subscriptionsSheet = "Subscriptions"
)

// XLSXContentType is the MIME type of WriteBreakdownXLSX output.
const XLSXContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// WriteBreakdownXLSX writes a workbook with the breakdown totals, its
// groupings and one row per subscription.
func WriteBreakdownXLSX(w io.Writer, b CostBreakdown, subs []EnhancedSubscription) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", summarySheet); err != nil {
		return fmt.Errorf("failed to rename sheet: %w", err)
	}
	if _, err := f.NewSheet(subscriptionsSheet); err != nil {
		return fmt.Errorf("failed to create sheet: %w", err)
	}

	rows := [][]any{
		{"Metric", "Amount"},
		{"Monthly", money(b.Monthly)},
		{"Quarterly", money(b.Quarterly)},
		{"Yearly", money(b.Yearly)},
		{"Total annual", money(b.TotalAnnual)},
		{},
		{"Billing cycle", "Monthly cost"},
	}
	for _, c := range model.BillingCycles {
		rows = append(rows, []any{string(c), money(b.ByBillingCycle[c])})
	}
	rows = append(rows, []any{}, []any{"Team", "Monthly cost"})
	rows = append(rows, groupRows(b.ByTeam)...)
	rows = append(rows, []any{}, []any{"Vendor", "Monthly cost"})
	rows = append(rows, groupRows(b.ByVendor)...)
	if err := writeRows(f, summarySheet, rows); err != nil {
		return err
	}

	rows = [][]any{{"Name", "Vendor", "Team", "Status", "Billing cycle", "Currency", "Cost", "Monthly cost", "Yearly cost", "Next renewal"}}
	for _, s := range subs {
		renewal := ""
		if s.NextRenewalDate != nil {
			renewal = FormatDate(*s.NextRenewalDate)
		}
		rows = append(rows, []any{
			s.Name, s.VendorLabel(), s.TeamLabel(), string(s.Status), string(s.BillingCycle),
			s.Currency, money(s.Cost), money(s.MonthlyCost), money(s.YearlyCost), renewal,
		})
	}
	if err := writeRows(f, subscriptionsSheet, rows); err != nil {
		return err
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("failed to write workbook: %w", err)
	}
	return nil
}

func writeRows(f *excelize.File, sheet string, rows [][]any) error {
	for i, row := range rows {
		if len(row) == 0 {
			continue
		}
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return fmt.Errorf("failed to write %s row %d: %w", sheet, i+1, err)
		}
	}
	return nil
}

func groupRows(m map[string]decimal.Decimal) [][]any {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	rows := make([][]any, 0, len(keys))
	for _, k := range keys {
		rows = append(rows, []any{k, money(m[k])})
	}
	return rows
}

func money(d decimal.Decimal) float64 {
	return d.Round(2).InexactFloat64()
}
