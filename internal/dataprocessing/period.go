package dataprocessing

import (
	"regexp"
	"time"

	"revcompare/pkg/contracts/domain"
)

var (
	// dayPattern matches a YYYY-MM-DD date anywhere in a name
	dayPattern = regexp.MustCompile(`\d{4}-\d{2}-\d{2}`)
	// monthPattern matches a YYYY-MM month anywhere in a name
	monthPattern = regexp.MustCompile(`\d{4}-\d{2}`)
)

// ExtractPeriod finds the reporting period embedded in a source name such as
// "revenue_2024-03.csv" or "Revenue Report 2024-03-15.xlsx".
//
// A day-level date always wins over the month it starts with. Candidates that
// are not real calendar dates (month 13, February 30) are skipped. The second
// return value is false when the name carries no usable period.
func ExtractPeriod(name string) (domain.Period, bool) {
	for _, candidate := range dayPattern.FindAllString(name, -1) {
		if _, err := time.Parse(domain.DayLayout, candidate); err == nil {
			return domain.Period{Value: candidate, Granularity: domain.GranularityDay}, true
		}
	}

	for _, candidate := range monthPattern.FindAllString(name, -1) {
		if _, err := time.Parse(domain.MonthLayout, candidate); err == nil {
			return domain.Period{Value: candidate, Granularity: domain.GranularityMonth}, true
		}
	}

	return domain.Period{}, false
}
