package response

import (
	"fmt"
	"net/http"
	"strconv"
)

// Query reads typed query parameters and remembers the first failure.
type Query struct {
	r   *http.Request
	err error
}

func NewQuery(r *http.Request) *Query {
	return &Query{r: r}
}

func (q *Query) Err() error {
	return q.err
}

func (q *Query) Int(name string) int {
	raw, ok := q.lookup(name)
	if !ok {
		return 0
	}
	return q.parseInt(name, raw)
}

func (q *Query) IntDefault(name string, def int) int {
	raw := q.r.URL.Query().Get(name)
	if raw == "" {
		return def
	}
	return q.parseInt(name, raw)
}

// OptionalInt64 returns nil when the parameter is absent.
func (q *Query) OptionalInt64(name string) *int64 {
	raw := q.r.URL.Query().Get(name)
	if raw == "" {
		return nil
	}
	v, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		q.fail(fmt.Errorf("query parameter %q must be an integer", name))
		return nil
	}
	return &v
}

func (q *Query) String(name string) string {
	raw, _ := q.lookup(name)
	return raw
}

func (q *Query) StringDefault(name, def string) string {
	values, ok := q.r.URL.Query()[name]
	if !ok || len(values) == 0 {
		return def
	}
	return values[0]
}

func (q *Query) lookup(name string) (string, bool) {
	values, ok := q.r.URL.Query()[name]
	if !ok || len(values) == 0 {
		q.fail(fmt.Errorf("query parameter %q is required", name))
		return "", false
	}
	return values[0], true
}

func (q *Query) parseInt(name, raw string) int {
	v, err := strconv.Atoi(raw)
	if err != nil {
		q.fail(fmt.Errorf("query parameter %q must be an integer", name))
		return 0
	}
	return v
}

func (q *Query) fail(err error) {
	if q.err == nil {
		q.err = err
	}
}
