// Package discovery walks a delivery order directory and produces the
// ordered file list the processing pipeline consumes. Files directly
// under the scan root get the default customer type; files under a
// first-level subdirectory inherit that directory's name as their
// customer type.
package discovery

import (
	"io/fs"
	"path/filepath"
	"strings"

	"delivery-order-service/internal/models"
	apperrors "delivery-order-service/pkg/errors"
	"delivery-order-service/pkg/logger"
)

// DefaultCustomerType is assigned to files found directly under the
// scan root
const DefaultCustomerType = "monthly"

// spreadsheetExtensions lists the file extensions treated as delivery
// order workbooks
var spreadsheetExtensions = map[string]bool{
	".xlsx": true,
	".xls":  true,
}

// Scanner discovers delivery order files under a root directory
type Scanner struct {
	logger logger.Logger
}

// NewScanner creates a Scanner with the given logger
func NewScanner(log logger.Logger) *Scanner {
	if log == nil {
		log = logger.GetGlobalLogger()
	}
	return &Scanner{logger: log.WithComponent("discovery")}
}

// Scan walks root and returns discovered spreadsheet files in lexical
// walk order. Office temporary files (the "~$" prefix) and
// non-spreadsheet files are skipped.
func (s *Scanner) Scan(root string) ([]models.SourceFile, error) {
	files := make([]models.SourceFile, 0)

	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}

		name := d.Name()
		if strings.HasPrefix(name, "~$") {
			return nil
		}
		if !spreadsheetExtensions[strings.ToLower(filepath.Ext(name))] {
			return nil
		}

		rel, err := filepath.Rel(root, path)
		if err != nil {
			return err
		}

		files = append(files, models.SourceFile{
			Path:         path,
			CustomerType: customerTypeOf(rel),
		})
		return nil
	})
	if err != nil {
		return nil, apperrors.FileError(apperrors.CodeDirectoryAccess,
			"failed to scan directory", err).WithContext("root", root)
	}

	s.logger.WithFields(logger.Fields{
		"root":  root,
		"files": len(files),
	}).Info("Directory scan complete")

	return files, nil
}

// customerTypeOf derives the customer type from a root-relative path:
// the first path segment for nested files, the default for files at
// the root itself
func customerTypeOf(rel string) string {
	dir := filepath.Dir(rel)
	if dir == "." {
		return DefaultCustomerType
	}
	segments := strings.Split(filepath.ToSlash(rel), "/")
	return segments[0]
}
