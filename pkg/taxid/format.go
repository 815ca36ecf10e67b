package taxid

import "strings"

// formatGroups splits value into consecutive groups of the given sizes and
// joins them with the separator. Group sizes must sum to len(value).
func formatGroups(value string, groups []int, separator string) string {
	parts := make([]string, 0, len(groups))
	position := 0
	for _, size := range groups {
		parts = append(parts, value[position:position+size])
		position += size
	}
	return strings.Join(parts, separator)
}
