package postgres

import (
	"fmt"
	"strings"
)

// placeholder returns the PostgreSQL positional placeholder $n.
func placeholder(n int) string {
	return fmt.Sprintf("$%d", n)
}

// placeholders returns $1..$n comma separated.
func placeholders(n int) string {
	list := make([]string, n)
	for i := range list {
		list[i] = placeholder(i + 1)
	}
	return strings.Join(list, ", ")
}
