package api

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/lunover/attendly/internal/services"
)

// ExportCSV writes the monthly attendance matrix as a CSV attachment: one
// row per visible user, one column per calendar day, then the summary
// columns.
func (handler *Handler) ExportCSV(c *fiber.Ctx) error {
	year, month := handler.requestedMonth(c)

	report, status, message := handler.buildMonthReport(c.Context(), year, month, false)
	if status != 0 {
		return apiError(c, status, message)
	}

	headers := []string{"Name", "Email"}
	for _, day := range report.DaysInMonth {
		headers = append(headers, strconv.Itoa(day.Day()))
	}
	headers = append(headers, "Worked Days", "Working Days", "Overtime Hours", "Total Hours", "Present %")

	var output bytes.Buffer
	writer := csv.NewWriter(&output)
	if err := writer.Write(headers); err != nil {
		return apiError(c, fiber.StatusInternalServerError, "failed to build export")
	}

	for _, row := range report.Rows {
		record := []string{row.Name, row.Email}
		for _, cell := range row.Cells {
			record = append(record, csvCellValue(cell))
		}
		record = append(record,
			fmt.Sprintf("%.1f", row.Summary.WorkedDays),
			strconv.Itoa(row.Summary.WorkingDays),
			fmt.Sprintf("%.1f", row.Summary.TotalOvertime),
			fmt.Sprintf("%.1f", row.Summary.TotalHours),
			fmt.Sprintf("%.1f", row.Summary.PresentPercentage),
		)
		if err := writer.Write(record); err != nil {
			return apiError(c, fiber.StatusInternalServerError, "failed to build export")
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return apiError(c, fiber.StatusInternalServerError, "failed to build export")
	}

	filename := fmt.Sprintf("attendance-%d-%02d.csv", report.Year, int(report.Month))
	c.Set(fiber.HeaderContentType, "text/csv")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+filename+`"`)
	return c.Send(output.Bytes())
}

func csvCellValue(cell DayCell) string {
	switch {
	case cell.TotalHours > 0:
		return fmt.Sprintf("%.1f", cell.TotalHours)
	case cell.Status.Background == services.BackgroundHoliday:
		return "H"
	case cell.Status.Background == services.BackgroundWeekend:
		return ""
	default:
		return "0"
	}
}
