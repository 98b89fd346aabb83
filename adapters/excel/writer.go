package excel

import (
	"fmt"
	"sort"
	"strings"

	"goverdict/domain/verdict"
	"goverdict/models"

	"github.com/xuri/excelize/v2"
)

const (
	resultsSheet = "Verdicts"
	summarySheet = "Summary"
)

var reportHeaders = []string{
	"row", "job_id", "verdict_id", "mode", "tier", "label", "overall_score",
	"calibrated_score", "score_low", "score_high", "confidence",
	"data_sufficiency", "weakest_dimension", "red_flags", "cached", "error",
}

// WriteReport writes batch results to an xlsx workbook with one row per
// request and a summary sheet of tier counts
func WriteReport(path string, result *models.BatchResult) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", resultsSheet); err != nil {
		return err
	}

	if err := writeRow(f, resultsSheet, 1, toCells(reportHeaders)); err != nil {
		return err
	}
	for i, item := range result.Items {
		if err := writeRow(f, resultsSheet, i+2, reportRow(item)); err != nil {
			return err
		}
	}

	if _, err := f.NewSheet(summarySheet); err != nil {
		return err
	}
	summary := [][]interface{}{
		{"batch_id", result.ID.String()},
		{"total", result.Summary.Total},
		{"succeeded", result.Summary.Succeeded},
		{"failed", result.Summary.Failed},
	}
	tiers := make([]string, 0, len(result.Summary.ByTier))
	for tier := range result.Summary.ByTier {
		tiers = append(tiers, string(tier))
	}
	sort.Strings(tiers)
	for _, tier := range tiers {
		summary = append(summary, []interface{}{"tier:" + tier, result.Summary.ByTier[verdict.Tier(tier)]})
	}
	for i, row := range summary {
		if err := writeRow(f, summarySheet, i+1, row); err != nil {
			return err
		}
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("failed to save report %s: %w", path, err)
	}
	return nil
}

func reportRow(item models.BatchItemResult) []interface{} {
	if item.Record == nil {
		row := make([]interface{}, len(reportHeaders))
		row[0] = item.Index + 1
		row[len(row)-1] = item.Error
		return row
	}

	rec := item.Record
	v := rec.Verdict
	var low, high interface{}
	if v.ScoreRange != nil {
		low, high = v.ScoreRange.Low, v.ScoreRange.High
	}
	weakest := ""
	if v.WeakestDimension != nil {
		weakest = string(v.WeakestDimension.Name)
	}
	flags := make([]string, 0, len(v.RedFlags))
	for _, flag := range v.RedFlags {
		flags = append(flags, flag.Title)
	}

	return []interface{}{
		item.Index + 1, rec.JobID, rec.ID.String(), string(rec.Mode), string(v.Verdict),
		v.VerdictLabel, v.OverallScore, v.CalibratedScore, low, high,
		string(v.Confidence), string(v.DataSufficiency), weakest,
		strings.Join(flags, listSeparator+" "), rec.Cached, "",
	}
}

func writeRow(f *excelize.File, sheet string, rowIdx int, values []interface{}) error {
	for c, v := range values {
		if v == nil {
			continue
		}
		cell, err := excelize.CoordinatesToCellName(c+1, rowIdx)
		if err != nil {
			return err
		}
		if err := f.SetCellValue(sheet, cell, v); err != nil {
			return err
		}
	}
	return nil
}

func toCells(values []string) []interface{} {
	out := make([]interface{}, len(values))
	for i, v := range values {
		out[i] = v
	}
	return out
}
