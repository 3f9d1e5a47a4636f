package postgres

import (
	"strconv"
	"strings"

	"github.com/fittrack/fittrack-api/internal/store"
)

// queryArgs collects positional arguments and hands out their $N placeholders.
type queryArgs []any

func (a *queryArgs) add(v any) string {
	*a = append(*a, v)
	return "$" + strconv.Itoa(len(*a))
}

// likePattern turns a search term into a substring ILIKE pattern with the
// wildcard characters of the term escaped.
func likePattern(term string) string {
	escaped := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(term)
	return "%" + escaped + "%"
}

// whereClause joins conditions with AND, or returns "" for none.
func whereClause(conditions []string) string {
	if len(conditions) == 0 {
		return ""
	}
	return " WHERE " + strings.Join(conditions, " AND ")
}

// pageClause renders LIMIT/OFFSET for opts, or "" when opts.Limit is zero.
func pageClause(opts store.ListOptions, args *queryArgs) string {
	if opts.Limit <= 0 {
		return ""
	}
	clause := " LIMIT " + args.add(opts.Limit)
	if opts.Offset > 0 {
		clause += " OFFSET " + args.add(opts.Offset)
	}
	return clause
}
