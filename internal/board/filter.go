package board

import (
	"strings"

	"github.com/xavierca1/ligue-crm/internal/entity"
)

// AllStatuses disables the status filter. An empty Query.Status does the same.
const AllStatuses = "Todos"

type Query struct {
	Search string `json:"search"`
	Status string `json:"status"`
}

func (q Query) allStatuses() bool {
	return q.Status == "" || q.Status == AllStatuses
}

// Filter keeps leads whose name or email contains the search term
// (case-insensitive) and whose status matches the status filter.
func Filter(leads []entity.Lead, q Query) []entity.Lead {
	term := strings.ToLower(q.Search)
	out := make([]entity.Lead, 0, len(leads))
	for _, l := range leads {
		if !q.allStatuses() && string(l.Status) != q.Status {
			continue
		}
		if term != "" &&
			!strings.Contains(strings.ToLower(l.Name), term) &&
			!strings.Contains(strings.ToLower(l.Email), term) {
			continue
		}
		out = append(out, l)
	}
	return out
}

type Column struct {
	Stage entity.Stage  `json:"id"`
	Title string        `json:"title"`
	Leads []entity.Lead `json:"leads"`
}

func (c Column) Count() int { return len(c.Leads) }

// Columns groups leads into one column per stage, in pipeline order.
// Leads whose status is outside the set are dropped.
func Columns(stages entity.StageSet, leads []entity.Lead) []Column {
	ids := stages.Stages()
	cols := make([]Column, len(ids))
	idx := make(map[entity.Stage]int, len(ids))
	for i, st := range ids {
		cols[i] = Column{Stage: st, Title: stages.Title(st), Leads: []entity.Lead{}}
		idx[st] = i
	}
	for _, l := range leads {
		if i, ok := idx[l.Status]; ok {
			cols[i].Leads = append(cols[i].Leads, l)
		}
	}
	return cols
}
