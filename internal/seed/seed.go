package seed

import (
	"fmt"
	"log/slog"

	"github.com/jobsplus/jobsplus/internal/domain/job"
	"github.com/jobsplus/jobsplus/internal/domain/user"
	"github.com/jobsplus/jobsplus/internal/repo/memory"
	"github.com/jobsplus/jobsplus/internal/security"
)

// SampleData loads the development fixture set: a job seeker, a recruiter,
// and a handful of listings owned by the recruiter. Skipped silently when the
// users already exist (e.g. a test calling it twice).
func SampleData(users *memory.UsersRepo, jobs *memory.JobsRepo, log *slog.Logger) error {
	if _, err := users.GetByEmail("samyuktha@jobsplus.com"); err == nil {
		return nil
	}

	hash, err := security.HashPassword("password123")
	if err != nil {
		return fmt.Errorf("hash sample password: %w", err)
	}

	seeker, err := users.Create(user.CreateUserInput{
		Name:         "Samyuktha Nunna",
		Email:        "samyuktha@jobsplus.com",
		PasswordHash: hash,
		Profile: user.Profile{
			Bio:      "Full-stack developer with a passion for elegant user interfaces and Web3 technologies.",
			Location: "Adoni, Andhra Pradesh, India",
			Skills:   []string{"JavaScript", "React", "Node.js", "MongoDB", "Python", "Web3", "Solidity", "Express.js"},
		},
	})
	if err != nil {
		return fmt.Errorf("seed seeker: %w", err)
	}

	recruiter, err := users.Create(user.CreateUserInput{
		Name:         "Tech Recruiter",
		Email:        "recruiter@techcorp.com",
		PasswordHash: hash,
		Role:         user.RoleEmployer,
		Profile: user.Profile{
			Bio:      "Talent acquisition specialist focusing on tech roles",
			Location: "San Francisco, CA",
			Skills:   []string{"Recruiting", "HR", "Talent Acquisition"},
		},
	})
	if err != nil {
		return fmt.Errorf("seed recruiter: %w", err)
	}

	listings := []job.CreateJobInput{
		{
			Title:       "Senior Frontend Developer",
			Company:     "TechCorp Inc.",
			Description: "We are looking for a skilled frontend developer to join our team and build amazing user experiences with React and modern JavaScript.",
			Location:    "San Francisco, CA",
			Type:        job.TypeFullTime,
			Salary:      &job.Salary{Min: 120000, Max: 150000, Currency: "USD"},
			Skills:      []string{"React", "JavaScript", "CSS", "Git", "TypeScript"},
			IsRemote:    true,
		},
		{
			Title:       "Smart Contract Developer",
			Company:     "BlockchainCorp",
			Description: "Join us in building the future of decentralized finance. Work with cutting-edge blockchain technology and smart contracts.",
			Location:    "Remote",
			Type:        job.TypeContract,
			Salary:      &job.Salary{Min: 80000, Max: 120000, Currency: "USD"},
			Skills:      []string{"Solidity", "Web3", "Ethereum", "JavaScript", "DeFi"},
			IsRemote:    true,
			IsWeb3:      true,
			IsPremium:   true,
		},
		{
			Title:       "Full Stack Developer",
			Company:     "StartupXYZ",
			Description: "Be part of our growing startup! Work on both frontend and backend technologies in a fast-paced environment.",
			Location:    "New York, NY",
			Type:        job.TypeFullTime,
			Salary:      &job.Salary{Min: 90000, Max: 130000, Currency: "USD"},
			Skills:      []string{"React", "Node.js", "MongoDB", "Express.js", "JavaScript"},
		},
		{
			Title:       "Web3 Product Manager",
			Company:     "CryptoVentures",
			Description: "Lead product development for our Web3 platform. Experience with DeFi protocols and crypto markets preferred.",
			Location:    "Austin, TX",
			Type:        job.TypeFullTime,
			Salary:      &job.Salary{Min: 140000, Max: 180000, Currency: "USD"},
			Skills:      []string{"Product Management", "Web3", "DeFi", "Blockchain", "Strategy"},
			IsRemote:    true,
			IsWeb3:      true,
			IsPremium:   true,
		},
		{
			Title:       "Python Backend Developer",
			Company:     "DataCorp",
			Description: "Build scalable backend systems using Python and modern frameworks. Work with big data and machine learning pipelines.",
			Location:    "Seattle, WA",
			Type:        job.TypeFullTime,
			Salary:      &job.Salary{Min: 110000, Max: 140000, Currency: "USD"},
			Skills:      []string{"Python", "Django", "PostgreSQL", "AWS", "Docker"},
			IsRemote:    true,
		},
	}

	for _, in := range listings {
		in.EmployerID = recruiter.ID
		if _, err := jobs.Create(in); err != nil {
			return fmt.Errorf("seed job %q: %w", in.Title, err)
		}
	}

	log.Info("sample data seeded",
		"users", users.Count(),
		"jobs", jobs.Count(),
		"seeker_id", seeker.ID,
	)
	return nil
}
