package matching

import (
	"errors"
	"math"
	"sort"
	"strings"

	"github.com/jobsplus/jobsplus/internal/domain/job"
)

// ErrProfileIncomplete distinguishes "user cannot be matched" from "no job
// matched".
var ErrProfileIncomplete = errors.New("user profile has no skills configured")

type ScoredJob struct {
	Job   job.Job
	Score float64
}

// Match scores every candidate against the user's skill list and returns the
// jobs with a positive score, best first.
//
// score = |S ∩ J| / max(|J|, |S|), over lower-cased skills. The denominator is
// the larger list, not the union; consumers depend on this exact ratio.
// Ties are broken by createdAt descending, then candidate order.
func Match(userSkills []string, candidates []job.Job) ([]ScoredJob, error) {
	if len(userSkills) == 0 {
		return nil, ErrProfileIncomplete
	}

	mine := make([]string, len(userSkills))
	for i, s := range userSkills {
		mine[i] = strings.ToLower(s)
	}

	out := []ScoredJob{}
	for _, j := range candidates {
		score := score(mine, j.Requirements.Skills)
		if score > 0 {
			out = append(out, ScoredJob{Job: j, Score: score})
		}
	}

	sort.SliceStable(out, func(a, b int) bool {
		if out[a].Score != out[b].Score {
			return out[a].Score > out[b].Score
		}
		return out[a].Job.CreatedAt.After(out[b].Job.CreatedAt)
	})

	return out, nil
}

// score computes the overlap ratio for one job. Jobs without configured
// skills score 0 rather than erroring.
func score(userSkills, jobSkills []string) float64 {
	if len(jobSkills) == 0 {
		return 0
	}

	theirs := make(map[string]struct{}, len(jobSkills))
	for _, s := range jobSkills {
		theirs[strings.ToLower(s)] = struct{}{}
	}

	intersection := 0
	for _, s := range userSkills {
		if _, ok := theirs[s]; ok {
			intersection++
		}
	}

	denom := len(jobSkills)
	if len(userSkills) > denom {
		denom = len(userSkills)
	}

	return float64(intersection) / float64(denom)
}

// Round2 rounds a score for display; internal ordering uses the raw value.
func Round2(s float64) float64 {
	return math.Round(s*100) / 100
}
