package coachingsrv

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/Abraxas-365/peoplehub/internal/ai/llm"
	"github.com/Abraxas-365/peoplehub/internal/ai/prompts"
	"github.com/Abraxas-365/peoplehub/internal/ai/resumeparser"
	"github.com/Abraxas-365/peoplehub/pkg/kernel"
	"github.com/Abraxas-365/peoplehub/pkg/logx"
	"github.com/Abraxas-365/peoplehub/recruitment/coaching"
	"github.com/Abraxas-365/peoplehub/recruitment/job"
	"github.com/Abraxas-365/peoplehub/workforce/training"
)

// Resumes gives read access to parsed resumes
type Resumes interface {
	ResumeOwner(ctx context.Context, id kernel.ResumeID) (kernel.UserID, error)
	ResumeText(ctx context.Context, id kernel.ResumeID) (string, error)
}

type Jobs interface {
	GetJob(ctx context.Context, id kernel.JobID) (*job.Job, error)
}

// Catalogue lists the courses recommendations may pick from
type Catalogue interface {
	Catalogue(ctx context.Context) ([]training.Course, error)
}

type Providers interface {
	Resolve(name string) (llm.Provider, error)
}

// Actor is the caller of a coaching tool
type Actor struct {
	UserID kernel.UserID
	// CanUseAnyResume lets the actor coach on resumes they do not own
	CanUseAnyResume bool
}

type Service struct {
	resumes   Resumes
	jobs      Jobs
	catalogue Catalogue
	providers Providers
}

func NewService(resumes Resumes, jobs Jobs, catalogue Catalogue, providers Providers) *Service {
	return &Service{
		resumes:   resumes,
		jobs:      jobs,
		catalogue: catalogue,
		providers: providers,
	}
}

// MockInterview generates interview questions for a resume against a job
func (s *Service) MockInterview(ctx context.Context, req coaching.MockInterviewRequest, actor Actor) (*coaching.Result[coaching.MockInterview], error) {
	req = req.WithDefaults()
	for level, n := range map[string]int{"easy": req.Easy, "medium": req.Medium, "hard": req.Hard} {
		if n < 0 || n > coaching.MaxQuestionsPerLevel {
			return nil, coaching.ErrInvalidRequest().
				WithDetail(level, n).
				WithDetail("max", coaching.MaxQuestionsPerLevel)
		}
	}

	provider, text, err := s.prepare(ctx, req.ResumeID, req.JobID, req.Provider, actor)
	if err != nil {
		return nil, err
	}
	j, err := s.jobs.GetJob(ctx, req.JobID)
	if err != nil {
		return nil, err
	}

	prompt := prompts.MockInterview(string(j.Title), string(j.Description), text, req.Easy, req.Medium, req.Hard)
	var out coaching.MockInterview
	if err := s.generate(ctx, provider, "mock_interview", prompt, &out); err != nil {
		return nil, err
	}
	out.FillDefaults()

	return &coaching.Result[coaching.MockInterview]{ResumeID: req.ResumeID, Provider: provider.Name(), Data: out}, nil
}

// SkillGap lists missing skills and an upskilling path drawing on the course catalogue
func (s *Service) SkillGap(ctx context.Context, req coaching.ResumeJobRequest, actor Actor) (*coaching.Result[coaching.SkillGap], error) {
	provider, text, err := s.prepare(ctx, req.ResumeID, req.JobID, req.Provider, actor)
	if err != nil {
		return nil, err
	}
	j, err := s.jobs.GetJob(ctx, req.JobID)
	if err != nil {
		return nil, err
	}
	courses, err := s.courses(ctx)
	if err != nil {
		return nil, err
	}

	prompt := prompts.SkillGap(text, string(j.Title), string(j.Description), courses)
	var out coaching.SkillGap
	if err := s.generate(ctx, provider, "skill_gap", prompt, &out); err != nil {
		return nil, err
	}
	out.FillDefaults()

	return &coaching.Result[coaching.SkillGap]{ResumeID: req.ResumeID, Provider: provider.Name(), Data: out}, nil
}

// TailorResume rewrites the resume summary and bullets towards the target jobs
func (s *Service) TailorResume(ctx context.Context, req coaching.TailorResumeRequest, actor Actor) (*coaching.Result[coaching.TailoredResume], error) {
	if len(req.JobIDs) == 0 || len(req.JobIDs) > coaching.MaxTargetJobs {
		return nil, coaching.ErrInvalidRequest().
			WithDetail("job_ids", len(req.JobIDs)).
			WithDetail("max", coaching.MaxTargetJobs)
	}

	provider, text, err := s.prepare(ctx, req.ResumeID, req.JobIDs[0], req.Provider, actor)
	if err != nil {
		return nil, err
	}

	targets := make([]prompts.TargetJob, 0, len(req.JobIDs))
	for _, id := range req.JobIDs {
		j, err := s.jobs.GetJob(ctx, id)
		if err != nil {
			return nil, err
		}
		targets = append(targets, prompts.TargetJob{Title: string(j.Title), Description: string(j.Description)})
	}

	var out coaching.TailoredResume
	if err := s.generate(ctx, provider, "tailor_resume", prompts.TailorResume(text, targets), &out); err != nil {
		return nil, err
	}
	out.FillDefaults()

	return &coaching.Result[coaching.TailoredResume]{ResumeID: req.ResumeID, Provider: provider.Name(), Data: out}, nil
}

// RecommendCourses picks catalogue courses closing the gap to a job. Picks the
// model invents outside the catalogue are dropped.
func (s *Service) RecommendCourses(ctx context.Context, req coaching.ResumeJobRequest, actor Actor) (*coaching.Result[[]coaching.CourseRecommendation], error) {
	provider, text, err := s.prepare(ctx, req.ResumeID, req.JobID, req.Provider, actor)
	if err != nil {
		return nil, err
	}
	j, err := s.jobs.GetJob(ctx, req.JobID)
	if err != nil {
		return nil, err
	}

	catalogue, err := s.catalogue.Catalogue(ctx)
	if err != nil {
		return nil, err
	}
	if len(catalogue) == 0 {
		return &coaching.Result[[]coaching.CourseRecommendation]{
			ResumeID: req.ResumeID,
			Provider: provider.Name(),
			Data:     []coaching.CourseRecommendation{},
		}, nil
	}

	prompt := prompts.CourseRecommendation(text, string(j.Title), string(j.Description), toPromptCourses(catalogue))
	var picks []coaching.CourseRecommendation
	if err := s.generate(ctx, provider, "course_recommendation", prompt, &picks); err != nil {
		return nil, err
	}

	known := make(map[kernel.CourseID]training.Course, len(catalogue))
	for _, c := range catalogue {
		known[c.ID] = c
	}
	out := make([]coaching.CourseRecommendation, 0, len(picks))
	for _, p := range picks {
		c, ok := known[p.CourseID]
		if !ok {
			logx.Debugf("Dropping recommended course %q outside the catalogue", p.CourseID)
			continue
		}
		p.CourseTitle = c.Title
		out = append(out, p)
	}

	return &coaching.Result[[]coaching.CourseRecommendation]{ResumeID: req.ResumeID, Provider: provider.Name(), Data: out}, nil
}

// prepare resolves the provider before any I/O, checks the actor may use the
// resume and loads its text
func (s *Service) prepare(ctx context.Context, resumeID kernel.ResumeID, jobID kernel.JobID, providerName string, actor Actor) (llm.Provider, string, error) {
	if resumeID.IsEmpty() || jobID.IsEmpty() {
		return nil, "", coaching.ErrInvalidRequest().WithDetail("required", []string{"resume_id", "job_id"})
	}

	provider, err := s.providers.Resolve(providerName)
	if err != nil {
		return nil, "", err
	}

	owner, err := s.resumes.ResumeOwner(ctx, resumeID)
	if err != nil {
		return nil, "", err
	}
	if owner != actor.UserID && !actor.CanUseAnyResume {
		return nil, "", coaching.ErrInsufficientPermissions().WithDetail("resume_id", resumeID.String())
	}

	text, err := s.resumes.ResumeText(ctx, resumeID)
	if err != nil {
		return nil, "", err
	}
	return provider, text, nil
}

func (s *Service) courses(ctx context.Context) ([]prompts.Course, error) {
	catalogue, err := s.catalogue.Catalogue(ctx)
	if err != nil {
		return nil, err
	}
	return toPromptCourses(catalogue), nil
}

func (s *Service) generate(ctx context.Context, provider llm.Provider, tool, prompt string, out any) error {
	start := time.Now()
	raw, err := provider.Generate(ctx, prompt)
	if err != nil {
		return err
	}
	logx.With("tool", tool, "provider", provider.Name(), "elapsed", time.Since(start)).Debug("Coaching reply received")

	return resumeparser.DecodeJSON(raw, out)
}

func toPromptCourses(courses []training.Course) []prompts.Course {
	out := make([]prompts.Course, 0, len(courses))
	for _, c := range courses {
		desc := strings.TrimSpace(c.ContentURL)
		if c.DurationMins > 0 {
			desc = strings.TrimSpace(fmt.Sprintf("%d minutes %s", c.DurationMins, desc))
		}
		out = append(out, prompts.Course{ID: c.ID.String(), Title: c.Title, Description: desc})
	}
	return out
}
