package user

import (
	"errors"
	"regexp"
	"strings"
	"time"
)

// Roles understood by the RBAC middleware.
const (
	RoleUser     = "user"
	RoleEmployer = "employer"
	RoleAdmin    = "admin"
)

var ErrNotFound = errors.New("user not found")

// matches the original platform's permissive check: something@something.tld
var emailRe = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

type Profile struct {
	Bio            string   `json:"bio"`
	Location       string   `json:"location"`
	Skills         []string `json:"skills"`
	Experience     []string `json:"experience"`
	Education      []string `json:"education"`
	ProfilePicture string   `json:"profilePicture,omitempty"`
}

type Wallet struct {
	Address string  `json:"address,omitempty"`
	Balance float64 `json:"-"` // never serialized
}

type User struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"` // never expose hash in JSON
	Role         string    `json:"role"`
	Profile      Profile   `json:"profile"`
	Wallet       Wallet    `json:"wallet"`
	Connections  []string  `json:"connections"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
	IsActive     bool      `json:"isActive"`
}

// CreateUserInput carries the fields a caller may supply at creation time.
// The password arrives already hashed; hashing lives in internal/security.
type CreateUserInput struct {
	Name          string
	Email         string
	PasswordHash  string
	Role          string
	Profile       Profile
	WalletAddress string
}

// New builds a User from a partial input, filling documented defaults.
// It never fails; callers run Validate before storing.
func New(in CreateUserInput) User {
	now := time.Now().UTC()

	role := in.Role
	if role == "" {
		role = RoleUser
	}

	p := in.Profile
	if p.Skills == nil {
		p.Skills = []string{}
	}
	if p.Experience == nil {
		p.Experience = []string{}
	}
	if p.Education == nil {
		p.Education = []string{}
	}

	return User{
		Name:         in.Name,
		Email:        in.Email,
		PasswordHash: in.PasswordHash,
		Role:         role,
		Profile:      p,
		Wallet:       Wallet{Address: in.WalletAddress},
		Connections:  []string{},
		CreatedAt:    now,
		UpdatedAt:    now,
		IsActive:     true,
	}
}

type ValidationResult struct {
	IsValid bool     `json:"isValid"`
	Errors  []string `json:"errors"`
}

// Validate reports every rule violation at once; it never panics.
func (u User) Validate() ValidationResult {
	errs := []string{}

	if len(strings.TrimSpace(u.Name)) < 2 {
		errs = append(errs, "Name must be at least 2 characters long")
	}
	if u.Email == "" || !emailRe.MatchString(u.Email) {
		errs = append(errs, "Valid email is required")
	}
	if len(u.PasswordHash) < 6 {
		errs = append(errs, "Password must be at least 6 characters long")
	}

	return ValidationResult{IsValid: len(errs) == 0, Errors: errs}
}

// ProfilePatch enumerates the profile fields that are legal to update.
// Nil means "leave as is".
type ProfilePatch struct {
	Bio            *string   `json:"bio"`
	Location       *string   `json:"location"`
	Skills         *[]string `json:"skills"`
	Experience     *[]string `json:"experience"`
	Education      *[]string `json:"education"`
	ProfilePicture *string   `json:"profilePicture"`
	WalletAddress  *string   `json:"publicWalletAddress"`
}

// Patch is the store-level update shape. ID is deliberately absent.
type Patch struct {
	Name     *string
	Email    *string
	Role     *string
	IsActive *bool
	Profile  *ProfilePatch
}

// ApplyProfile returns a copy of u with the supplied profile fields replaced
// and UpdatedAt refreshed.
func ApplyProfile(u User, p ProfilePatch) User {
	if p.Bio != nil {
		u.Profile.Bio = *p.Bio
	}
	if p.Location != nil {
		u.Profile.Location = *p.Location
	}
	if p.Skills != nil {
		u.Profile.Skills = append([]string{}, (*p.Skills)...)
	}
	if p.Experience != nil {
		u.Profile.Experience = append([]string{}, (*p.Experience)...)
	}
	if p.Education != nil {
		u.Profile.Education = append([]string{}, (*p.Education)...)
	}
	if p.ProfilePicture != nil {
		u.Profile.ProfilePicture = *p.ProfilePicture
	}
	if p.WalletAddress != nil {
		u.Wallet.Address = *p.WalletAddress
	}
	u.UpdatedAt = time.Now().UTC()
	return u
}

// Apply merges a store-level patch into u. Only supplied fields change.
func Apply(u User, p Patch) User {
	if p.Name != nil {
		u.Name = *p.Name
	}
	if p.Email != nil {
		u.Email = *p.Email
	}
	if p.Role != nil {
		u.Role = *p.Role
	}
	if p.IsActive != nil {
		u.IsActive = *p.IsActive
	}
	if p.Profile != nil {
		return ApplyProfile(u, *p.Profile)
	}
	u.UpdatedAt = time.Now().UTC()
	return u
}

// AddSkill appends a skill unless it is already present. On a duplicate the
// user is returned untouched (no UpdatedAt bump) and added is false.
func AddSkill(u User, skill string) (User, bool) {
	for _, s := range u.Profile.Skills {
		if s == skill {
			return u, false
		}
	}
	u.Profile.Skills = append(append([]string{}, u.Profile.Skills...), skill)
	u.UpdatedAt = time.Now().UTC()
	return u, true
}

// AddConnection mirrors AddSkill for the connections list.
func AddConnection(u User, userID string) (User, bool) {
	for _, id := range u.Connections {
		if id == userID {
			return u, false
		}
	}
	u.Connections = append(append([]string{}, u.Connections...), userID)
	u.UpdatedAt = time.Now().UTC()
	return u, true
}

// PublicProfile is the view other users see: no email, no wallet.
type PublicProfile struct {
	ID      string        `json:"id"`
	Name    string        `json:"name"`
	Role    string        `json:"role"`
	Profile PublicDetails `json:"profile"`
}

type PublicDetails struct {
	Bio            string   `json:"bio"`
	Location       string   `json:"location"`
	Skills         []string `json:"skills"`
	ProfilePicture string   `json:"profilePicture,omitempty"`
}

func (u User) Public() PublicProfile {
	return PublicProfile{
		ID:   u.ID,
		Name: u.Name,
		Role: u.Role,
		Profile: PublicDetails{
			Bio:            u.Profile.Bio,
			Location:       u.Profile.Location,
			Skills:         u.Profile.Skills,
			ProfilePicture: u.Profile.ProfilePicture,
		},
	}
}
