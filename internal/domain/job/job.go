package job

import (
	"errors"
	"strings"
	"time"
)

// Listing types accepted by the platform.
const (
	TypeFullTime = "full-time"
	TypePartTime = "part-time"
	TypeContract = "contract"
	TypeRemote   = "remote"
)

// Listing lifecycle states.
const (
	StatusActive = "active"
	StatusClosed = "closed"
	StatusDraft  = "draft"
)

// Listings expire this long after creation unless a date is supplied.
const defaultExpiry = 30 * 24 * time.Hour

var (
	ErrNotFound = errors.New("job not found")
	ErrNotOwner = errors.New("requester does not own this job")
)

type Salary struct {
	Min      int    `json:"min"`
	Max      int    `json:"max"`
	Currency string `json:"currency"`
}

type Requirements struct {
	Skills     []string `json:"skills"`
	Experience string   `json:"experience"`
	Education  string   `json:"education"`
}

type Job struct {
	ID           string       `json:"id"`
	Title        string       `json:"title"`
	Company      string       `json:"company"`
	Description  string       `json:"description"`
	Location     string       `json:"location"`
	Type         string       `json:"type"`
	Salary       Salary       `json:"salary"`
	Requirements Requirements `json:"requirements"`
	Benefits     []string     `json:"benefits"`
	IsRemote     bool         `json:"isRemote"`
	IsWeb3       bool         `json:"isWeb3"`
	EmployerID   string       `json:"employerId"` // owning user, set once
	Applicants   []string     `json:"applicants"`
	Status       string       `json:"status"`
	IsPremium    bool         `json:"isPremium"`
	CreatedAt    time.Time    `json:"createdAt"`
	UpdatedAt    time.Time    `json:"updatedAt"`
	ExpiresAt    time.Time    `json:"expiresAt"`
}

// CreateJobInput is the partial record a caller supplies; every absent field
// has a documented default.
type CreateJobInput struct {
	Title       string
	Company     string
	Description string
	Location    string
	Type        string
	Salary      *Salary
	Skills      []string
	Experience  string
	Education   string
	Benefits    []string
	IsRemote    bool
	IsWeb3      bool
	EmployerID  string
	IsPremium   bool
	Status      string
	ExpiresAt   *time.Time
}

// New builds a Job with defaults filled in. It never fails; callers run
// Validate before storing.
func New(in CreateJobInput) Job {
	now := time.Now().UTC()

	typ := in.Type
	if typ == "" {
		typ = TypeFullTime
	}

	salary := Salary{Currency: "USD"}
	if in.Salary != nil {
		salary = *in.Salary
		if salary.Currency == "" {
			salary.Currency = "USD"
		}
	}

	skills := in.Skills
	if skills == nil {
		skills = []string{}
	}
	benefits := in.Benefits
	if benefits == nil {
		benefits = []string{}
	}

	experience := in.Experience
	if experience == "" {
		experience = "entry-level"
	}

	status := in.Status
	if status == "" {
		status = StatusActive
	}

	expiresAt := now.Add(defaultExpiry)
	if in.ExpiresAt != nil {
		expiresAt = *in.ExpiresAt
	}

	return Job{
		Title:       in.Title,
		Company:     in.Company,
		Description: in.Description,
		Location:    in.Location,
		Type:        typ,
		Salary:      salary,
		Requirements: Requirements{
			Skills:     skills,
			Experience: experience,
			Education:  in.Education,
		},
		Benefits:   benefits,
		IsRemote:   in.IsRemote,
		IsWeb3:     in.IsWeb3,
		EmployerID: in.EmployerID,
		Applicants: []string{},
		Status:     status,
		IsPremium:  in.IsPremium,
		CreatedAt:  now,
		UpdatedAt:  now,
		ExpiresAt:  expiresAt,
	}
}

type ValidationResult struct {
	IsValid bool     `json:"isValid"`
	Errors  []string `json:"errors"`
}

func (j Job) Validate() ValidationResult {
	errs := []string{}

	if strings.TrimSpace(j.Title) == "" {
		errs = append(errs, "Job title is required")
	}
	if strings.TrimSpace(j.Company) == "" {
		errs = append(errs, "Company name is required")
	}
	if strings.TrimSpace(j.Description) == "" {
		errs = append(errs, "Job description is required")
	}
	if j.Salary.Min < 0 {
		errs = append(errs, "Minimum salary cannot be negative")
	}
	if j.Salary.Max < j.Salary.Min {
		errs = append(errs, "Maximum salary cannot be less than minimum")
	}

	return ValidationResult{IsValid: len(errs) == 0, Errors: errs}
}

// Patch enumerates updatable fields; EmployerID and ID stay immutable.
type Patch struct {
	Title       *string
	Company     *string
	Description *string
	Location    *string
	Type        *string
	Salary      *Salary
	Skills      *[]string
	Experience  *string
	Education   *string
	Benefits    *[]string
	IsRemote    *bool
	IsWeb3      *bool
	Status      *string
	IsPremium   *bool
	ExpiresAt   *time.Time
}

// Apply merges a patch into j, refreshing UpdatedAt. Only supplied fields
// change; the result still needs Validate before it is stored.
func Apply(j Job, p Patch) Job {
	if p.Title != nil {
		j.Title = *p.Title
	}
	if p.Company != nil {
		j.Company = *p.Company
	}
	if p.Description != nil {
		j.Description = *p.Description
	}
	if p.Location != nil {
		j.Location = *p.Location
	}
	if p.Type != nil {
		j.Type = *p.Type
	}
	if p.Salary != nil {
		j.Salary = *p.Salary
	}
	if p.Skills != nil {
		j.Requirements.Skills = append([]string{}, (*p.Skills)...)
	}
	if p.Experience != nil {
		j.Requirements.Experience = *p.Experience
	}
	if p.Education != nil {
		j.Requirements.Education = *p.Education
	}
	if p.Benefits != nil {
		j.Benefits = append([]string{}, (*p.Benefits)...)
	}
	if p.IsRemote != nil {
		j.IsRemote = *p.IsRemote
	}
	if p.IsWeb3 != nil {
		j.IsWeb3 = *p.IsWeb3
	}
	if p.Status != nil {
		j.Status = *p.Status
	}
	if p.IsPremium != nil {
		j.IsPremium = *p.IsPremium
	}
	if p.ExpiresAt != nil {
		j.ExpiresAt = *p.ExpiresAt
	}
	j.UpdatedAt = time.Now().UTC()
	return j
}

// AddApplicant appends a user id unless already present; duplicates leave the
// job untouched (no UpdatedAt bump) and report added=false.
func AddApplicant(j Job, userID string) (Job, bool) {
	for _, id := range j.Applicants {
		if id == userID {
			return j, false
		}
	}
	j.Applicants = append(append([]string{}, j.Applicants...), userID)
	j.UpdatedAt = time.Now().UTC()
	return j, true
}

// RemoveApplicant drops a user id; removed=false when it was not there.
func RemoveApplicant(j Job, userID string) (Job, bool) {
	for i, id := range j.Applicants {
		if id == userID {
			out := append([]string{}, j.Applicants[:i]...)
			j.Applicants = append(out, j.Applicants[i+1:]...)
			j.UpdatedAt = time.Now().UTC()
			return j, true
		}
	}
	return j, false
}

func (j Job) IsExpired() bool {
	return time.Now().After(j.ExpiresAt)
}

// Summary is the condensed listing row used by search results.
type Summary struct {
	ID              string    `json:"id"`
	Title           string    `json:"title"`
	Company         string    `json:"company"`
	Location        string    `json:"location"`
	Type            string    `json:"type"`
	Salary          Salary    `json:"salary"`
	IsRemote        bool      `json:"isRemote"`
	IsWeb3          bool      `json:"isWeb3"`
	ApplicantsCount int       `json:"applicantsCount"`
	Status          string    `json:"status"`
	CreatedAt       time.Time `json:"createdAt"`
}

func (j Job) Summarize() Summary {
	return Summary{
		ID:              j.ID,
		Title:           j.Title,
		Company:         j.Company,
		Location:        j.Location,
		Type:            j.Type,
		Salary:          j.Salary,
		IsRemote:        j.IsRemote,
		IsWeb3:          j.IsWeb3,
		ApplicantsCount: len(j.Applicants),
		Status:          j.Status,
		CreatedAt:       j.CreatedAt,
	}
}
