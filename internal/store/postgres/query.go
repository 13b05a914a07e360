package postgres

import (
	"fmt"
	"strings"
)

// conditions accumulates AND-ed WHERE clauses with positional arguments
type conditions struct {
	clauses []string
	args    []interface{}
}

func scoped(org string) *conditions {
	return &conditions{clauses: []string{"organization_id = $1"}, args: []interface{}{org}}
}

// add appends clause, replacing every "?" in it with the next placeholder
func (c *conditions) add(clause string, arg interface{}) {
	c.args = append(c.args, arg)
	c.clauses = append(c.clauses, strings.ReplaceAll(clause, "?", fmt.Sprintf("$%d", len(c.args))))
}

func (c *conditions) where() string {
	return " WHERE " + strings.Join(c.clauses, " AND ")
}
