// file: internals/helpers/slug.go
package helper

import (
	"fmt"
	"regexp"
	"strings"

	"gorm.io/gorm"
)

const DefaultSlugMaxLen = 160

var nonAlnum = regexp.MustCompile(`[^a-z0-9]+`)

// GenerateSlug normalizes a string into a slug:
// - lower-case
// - spaces & non-alnum become "-"
// - collapse multiple "-" into one
// - trim "-" at both ends
func GenerateSlug(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	s = nonAlnum.ReplaceAllString(s, "-")
	s = strings.Trim(s, "-")
	if len(s) > DefaultSlugMaxLen {
		s = strings.Trim(s[:DefaultSlugMaxLen], "-")
	}
	return s
}

// EnsureUniqueSlug finds a unique slug on a given table.
// base → base slug (from GenerateSlug).
// table → table name, e.g. "courses".
// column → slug column name, e.g. "course_slug".
func EnsureUniqueSlug(db *gorm.DB, base, table, column string) (string, error) {
	slug := base

	// fast path: exact slug taken or not
	var count int64
	if err := db.Table(table).
		Where(fmt.Sprintf("%s = ?", column), slug).
		Count(&count).Error; err != nil {
		return "", err
	}
	if count == 0 {
		return slug, nil
	}

	// find the largest numeric suffix
	type row struct{ Slug string }
	var rows []row
	like := base + "%"
	if err := db.Table(table).
		Select(column+" as slug").
		Where(fmt.Sprintf("%s = ? OR %s LIKE ?", column, column), base, like).
		Find(&rows).Error; err != nil {
		return "", err
	}

	maxN := 1
	re := regexp.MustCompile(`^` + regexp.QuoteMeta(base) + `-(\d+)$`)
	for _, r := range rows {
		m := re.FindStringSubmatch(r.Slug)
		if len(m) == 2 {
			var n int
			fmt.Sscanf(m[1], "%d", &n)
			if n > maxN {
				maxN = n
			}
		}
	}

	return fmt.Sprintf("%s-%d", base, maxN+1), nil
}
