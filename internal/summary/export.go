package summary

import (
	"DietTracker/internal/models"
	"encoding/csv"
	"io"
	"strconv"
)

var csvHeader = []string{"date", "total_kcal", "goal_kcal", "difference", "status", "protein_g", "carbs_g", "fat_g"}

// WriteWeeklyCSV пишет сводки в CSV, по строке на день в переданном порядке.
// Отсутствующие цель и разница выводятся пустыми полями.
func WriteWeeklyCSV(w io.Writer, summaries []models.DailySummary) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeader); err != nil {
		return err
	}
	for _, s := range summaries {
		row := []string{
			s.Date,
			formatNumber(s.TotalKcal),
			formatOptional(s.GoalKcal),
			formatOptional(s.Difference),
			string(s.Status),
			formatNumber(s.TotalProtein),
			formatNumber(s.TotalCarbs),
			formatNumber(s.TotalFat),
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// ExportFileName — имя файла выгрузки недели
func ExportFileName(end string) string {
	return "weekly-summary-" + end + ".csv"
}

func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func formatOptional(v *float64) string {
	if v == nil {
		return ""
	}
	return formatNumber(*v)
}
