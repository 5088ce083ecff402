package job

import "strings"

// Filter holds the optional listing predicates. Every set field narrows the
// candidate set; fields combine with AND semantics. Pointer fields distinguish
// "absent" from a zero value.
type Filter struct {
	Search    string
	Location  string
	Type      string
	IsRemote  *bool
	IsWeb3    *bool
	Skills    []string // a job matches when it shares at least one skill
	SalaryMin *int
	SalaryMax *int
}

// Matches reports whether j passes every supplied predicate. Status and
// expiry eligibility are the store's concern, not the filter's.
func (f Filter) Matches(j Job) bool {
	if f.Search != "" && !j.matchesSearch(f.Search) {
		return false
	}

	if f.Location != "" &&
		!strings.Contains(strings.ToLower(j.Location), strings.ToLower(f.Location)) {
		return false
	}

	if f.Type != "" && j.Type != f.Type {
		return false
	}

	if f.IsRemote != nil && j.IsRemote != *f.IsRemote {
		return false
	}

	if f.IsWeb3 != nil && j.IsWeb3 != *f.IsWeb3 {
		return false
	}

	if len(f.Skills) > 0 && !j.hasAnySkill(f.Skills) {
		return false
	}

	if f.SalaryMin != nil && j.Salary.Min < *f.SalaryMin {
		return false
	}

	if f.SalaryMax != nil && j.Salary.Max > *f.SalaryMax {
		return false
	}

	return true
}

// search hits title, description, company, or any individual skill.
func (j Job) matchesSearch(query string) bool {
	q := strings.ToLower(query)

	if strings.Contains(strings.ToLower(j.Title), q) ||
		strings.Contains(strings.ToLower(j.Description), q) ||
		strings.Contains(strings.ToLower(j.Company), q) {
		return true
	}

	for _, skill := range j.Requirements.Skills {
		if strings.Contains(strings.ToLower(skill), q) {
			return true
		}
	}

	return false
}

// hasAnySkill reports whether the job lists at least one of the wanted
// skills, compared case-insensitively.
func (j Job) hasAnySkill(wanted []string) bool {
	set := make(map[string]struct{}, len(wanted))
	for _, s := range wanted {
		set[strings.ToLower(strings.TrimSpace(s))] = struct{}{}
	}

	for _, skill := range j.Requirements.Skills {
		if _, ok := set[strings.ToLower(skill)]; ok {
			return true
		}
	}

	return false
}
