// Package reconciler validates per-file record batches and reduces
// them into a single tri-partitioned result: accepted records, fatal
// errors, and informational warnings.
package reconciler

import (
	"fmt"
	"path/filepath"
	"regexp"
	"sort"

	"delivery-order-service/internal/models"
	"delivery-order-service/pkg/logger"
)

// filenameDatePattern matches a YYYY-MM-DD or YYYY.MM.DD shaped
// substring embedded in a file name
var filenameDatePattern = regexp.MustCompile(`(\d{4})[-.](\d{1,2})[-.](\d{1,2})`)

// Engine validates extracted record batches and folds them into a
// ProcessResult. Validation is per file and all-or-nothing: any date
// error rejects the file's entire batch.
type Engine struct {
	logger logger.Logger
}

// NewEngine creates a reconciliation engine
func NewEngine(log logger.Logger) *Engine {
	if log == nil {
		log = logger.GetGlobalLogger()
	}
	return &Engine{logger: log.WithComponent("reconciler")}
}

// dupKey identifies a delivery number within a customer for cross-file
// duplicate detection
type dupKey struct {
	customer string
	orderNo  string
}

// Reconcile reduces per-file extraction results into accepted records,
// errors, and warnings. The reduction is sequential so the duplicate
// detection map and warning ordering stay deterministic regardless of
// how the inputs were produced.
func (e *Engine) Reconcile(results []models.FileResult) *models.ProcessResult {
	out := &models.ProcessResult{
		Records:  make([]models.Record, 0),
		Errors:   make([]models.Issue, 0),
		Warnings: make([]models.Issue, 0),
	}
	seen := make(map[dupKey]string)

	for _, fr := range results {
		fileName := filepath.Base(fr.FilePath)

		if fr.Err != nil {
			out.Errors = append(out.Errors, models.Issue{
				FileName: fileName,
				Message:  fmt.Sprintf("parse failed: %v", fr.Err),
			})
			continue
		}
		if len(fr.Records) == 0 {
			out.Warnings = append(out.Warnings, models.Issue{
				FileName: fileName,
				Message:  "file contains no valid data or layout mismatch",
			})
			continue
		}

		rejected := false
		for _, rec := range fr.Records {
			if _, err := models.ParseDate(rec.DeliveryDate); err != nil {
				out.Errors = append(out.Errors, models.Issue{
					FileName: fileName,
					Message:  fmt.Sprintf("invalid date %q", rec.DeliveryDate),
				})
				rejected = true
			}
		}
		if rejected {
			e.logger.WithField("file", fileName).Warn("Rejected file batch on date error")
		}

		filenameDate := dateFromFilename(fileName)
		accepted := make([]models.Record, 0, len(fr.Records))
		for _, rec := range fr.Records {
			if !rejected && filenameDate != "" {
				contentDate := models.NormalizeDate(rec.DeliveryDate)
				if contentDate != filenameDate {
					out.Warnings = append(out.Warnings, models.Issue{
						FileName: fileName,
						Message: fmt.Sprintf("filename date %s differs from content date %s",
							filenameDate, contentDate),
					})
				}
			}

			// Rejected files still register their delivery numbers so
			// duplicates in later files are reported against them.
			if rec.DeliveryNo != "" {
				key := dupKey{customer: rec.CustomerName, orderNo: rec.DeliveryNo}
				if firstFile, ok := seen[key]; ok {
					if firstFile != fileName {
						out.Warnings = append(out.Warnings, models.Issue{
							FileName: fileName,
							Message: fmt.Sprintf("duplicate order number %s for customer %s (first seen in %s)",
								rec.DeliveryNo, rec.CustomerName, firstFile),
						})
					}
				} else {
					seen[key] = fileName
				}
			}

			if rejected {
				continue
			}
			if err := rec.Validate(); err != nil {
				out.Warnings = append(out.Warnings, models.Issue{
					FileName: fileName,
					Message:  fmt.Sprintf("skipped row %d: %v", rec.RowIndex, err),
				})
				continue
			}
			accepted = append(accepted, rec)
		}
		if rejected {
			continue
		}

		out.Records = append(out.Records, accepted...)
		out.FilesProcessed++
	}

	out.Warnings = dedupeIssues(out.Warnings)
	return out
}

// dateFromFilename extracts a normalized YYYY-MM-DD date embedded in
// the file name, or the empty string when none is present. Single
// digit months and days are zero-padded so the result compares
// against normalized content dates.
func dateFromFilename(fileName string) string {
	m := filenameDatePattern.FindStringSubmatch(fileName)
	if m == nil {
		return ""
	}
	t, err := models.ParseDate(fmt.Sprintf("%s-%s-%s", m[1], m[2], m[3]))
	if err != nil {
		return ""
	}
	return t.Format(models.DateLayout)
}

// dedupeIssues removes exact (file, message) duplicates and sorts the
// remainder by file then message for deterministic output
func dedupeIssues(issues []models.Issue) []models.Issue {
	seen := make(map[models.Issue]struct{}, len(issues))
	deduped := make([]models.Issue, 0, len(issues))
	for _, issue := range issues {
		if _, ok := seen[issue]; ok {
			continue
		}
		seen[issue] = struct{}{}
		deduped = append(deduped, issue)
	}
	sort.Slice(deduped, func(i, j int) bool {
		if deduped[i].FileName != deduped[j].FileName {
			return deduped[i].FileName < deduped[j].FileName
		}
		return deduped[i].Message < deduped[j].Message
	})
	return deduped
}
