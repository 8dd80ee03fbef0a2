package repository

import (
	"fmt"
	"strings"

	"github.com/dmarchuk/flightroster/internal/domain"
)

// flightQuery accumulates an ordered conjunction of optional predicates
// together with their positional arguments. The verb in each clause is
// a fmt format taking the argument position.
type flightQuery struct {
	conds []string
	args  []any
}

func (q *flightQuery) and(clause string, arg any) {
	q.args = append(q.args, arg)
	q.conds = append(q.conds, fmt.Sprintf(clause, len(q.args)))
}

// where renders the accumulated conjunction, or the empty string when
// no predicate was added (the universal match).
func (q *flightQuery) where() string {
	if len(q.conds) == 0 {
		return ""
	}
	return " WHERE " + strings.Join(q.conds, " AND ")
}

// next returns the position of the next argument to be appended, for
// clauses (LIMIT/OFFSET) added outside the conjunction.
func (q *flightQuery) next() int {
	return len(q.args) + 1
}

// buildFlightSearch folds the present criteria fields into predicates.
// Absent fields are simply omitted from the conjunction.
func buildFlightSearch(c domain.FlightSearchCriteria) *flightQuery {
	q := &flightQuery{}
	if c.FlightNumber != nil {
		q.and("flight_number LIKE $%d", *c.FlightNumber+"%")
	}
	if c.DepartureTimeFrom != nil {
		q.and("departure_time >= $%d", *c.DepartureTimeFrom)
	}
	if c.DepartureTimeTo != nil {
		q.and("departure_time <= $%d", *c.DepartureTimeTo)
	}
	if c.AvailableSeatsFrom != nil {
		q.and("available_seats >= $%d", *c.AvailableSeatsFrom)
	}
	if c.City != nil {
		q.and("$%d = ANY(route)", *c.City)
	}
	return q
}
