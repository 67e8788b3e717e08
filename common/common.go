package common

const (
	// SQLLiteDriverName is the name of the sqlite database/sql driver
	SQLLiteDriverName = "sqlite3"
	// PostgresDriverName is the name under which pgx registers its database/sql driver
	PostgresDriverName = "pgx"
)

// Dedup returns the input elements in their original order without repetitions.
func Dedup[T comparable](in []T) []T {
	seen := make(map[T]struct{}, len(in))
	out := make([]T, 0, len(in))
	for _, v := range in {
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	return out
}
