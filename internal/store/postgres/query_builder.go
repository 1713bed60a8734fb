package postgres

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/FeedbackLens/feedback-lens-backend/types"
)

// conditionSet accumulates WHERE predicates with positionally bound
// parameters. The same rendered clause and argument list feed both the page
// query and the count query, which is what keeps total counts consistent with
// the returned page. Values are only ever bound as parameters, never
// interpolated into the SQL text.
type conditionSet struct {
	conditions []string
	args       []interface{}
}

// bind appends arg to the parameter list and returns its placeholder ($1, $2, ...).
func (cs *conditionSet) bind(arg interface{}) string {
	cs.args = append(cs.args, arg)
	return fmt.Sprintf("$%d", len(cs.args))
}

// add appends a rendered predicate. Predicates are joined with AND.
func (cs *conditionSet) add(condition string) {
	cs.conditions = append(cs.conditions, condition)
}

// whereClause renders the accumulated predicates, or "" when unfiltered.
func (cs *conditionSet) whereClause() string {
	if len(cs.conditions) == 0 {
		return ""
	}
	return " WHERE " + strings.Join(cs.conditions, " AND ")
}

// feedbackConditions translates the optional list filters into predicates:
//   - search: case-insensitive substring match against the raw text OR the
//     analysis summary;
//   - sentiment: exact match on the analysis sentiment;
//   - tag: JSONB containment, so the tag must be a literal element of the
//     analysis tags array (never a substring match).
//
// Filters are conjunctive and independently omittable.
func feedbackConditions(filters types.FeedbackFilters) (*conditionSet, error) {
	cs := &conditionSet{}

	if filters.Search != "" {
		pattern := cs.bind("%" + filters.Search + "%")
		cs.add(fmt.Sprintf("(text ILIKE %s OR analysis->>'summary' ILIKE %s)", pattern, pattern))
	}

	if filters.Sentiment != "" {
		cs.add(fmt.Sprintf("analysis->>'sentiment' = %s", cs.bind(filters.Sentiment)))
	}

	if filters.Tag != "" {
		element, err := json.Marshal([]string{filters.Tag})
		if err != nil {
			return nil, fmt.Errorf("failed to encode tag filter: %w", err)
		}
		cs.add(fmt.Sprintf("analysis->'tags' @> %s", cs.bind(string(element))))
	}

	return cs, nil
}

// buildFeedbackQueries renders the page query and the count query for the
// given filters and pagination. Both share the identical predicate list; the
// page query additionally binds LIMIT and OFFSET.
func buildFeedbackQueries(filters types.FeedbackFilters, params types.PaginationParams) (listQuery string, listArgs []interface{}, countQuery string, countArgs []interface{}, err error) {
	cs, err := feedbackConditions(filters)
	if err != nil {
		return "", nil, "", nil, err
	}

	where := cs.whereClause()

	countQuery = "SELECT COUNT(*) FROM feedback" + where
	countArgs = make([]interface{}, len(cs.args))
	copy(countArgs, cs.args)

	limit := cs.bind(params.PageSize)
	offset := cs.bind(params.Offset())
	listQuery = "SELECT id, text, email, created_at, analysis FROM feedback" + where +
		" ORDER BY created_at DESC LIMIT " + limit + " OFFSET " + offset
	listArgs = cs.args

	return listQuery, listArgs, countQuery, countArgs, nil
}
