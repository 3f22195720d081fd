package coachingsrv

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Abraxas-365/peoplehub/internal/ai/llm"
	"github.com/Abraxas-365/peoplehub/internal/ai/resumeparser"
	"github.com/Abraxas-365/peoplehub/pkg/errx"
	"github.com/Abraxas-365/peoplehub/pkg/kernel"
	"github.com/Abraxas-365/peoplehub/recruitment/coaching"
	"github.com/Abraxas-365/peoplehub/recruitment/job"
	"github.com/Abraxas-365/peoplehub/recruitment/job/jobtest"
	"github.com/Abraxas-365/peoplehub/recruitment/resume"
	"github.com/Abraxas-365/peoplehub/workforce/training"
)

type scriptedProvider struct {
	reply   string
	prompts []string
}

func (p *scriptedProvider) Name() string { return llm.ProviderGemini }

func (p *scriptedProvider) Generate(ctx context.Context, prompt string) (string, error) {
	p.prompts = append(p.prompts, prompt)
	return p.reply, nil
}

type fakeResumes struct{}

func (fakeResumes) ResumeOwner(ctx context.Context, id kernel.ResumeID) (kernel.UserID, error) {
	switch id {
	case "r1", "raw":
		return "u1", nil
	}
	return "", resume.ErrResumeNotFound()
}

func (fakeResumes) ResumeText(ctx context.Context, id kernel.ResumeID) (string, error) {
	if id == "raw" {
		return "", resume.ErrResumeNotParsed()
	}
	return "Skills: Go, Postgres", nil
}

type jobLookup struct {
	*jobtest.JobRepo
}

func (j jobLookup) GetJob(ctx context.Context, id kernel.JobID) (*job.Job, error) {
	return j.GetByID(ctx, id)
}

type fakeCatalogue []training.Course

func (f fakeCatalogue) Catalogue(ctx context.Context) ([]training.Course, error) {
	return f, nil
}

func newService(t *testing.T, reply string, courses ...training.Course) (*Service, *scriptedProvider) {
	t.Helper()
	jobs := jobtest.NewJobRepo()
	jobs.Put(job.Job{ID: "j1", Title: "Backend Engineer", Description: "Build Go services", Status: job.JobStatusActive})
	jobs.Put(job.Job{ID: "j2", Title: "Data Engineer", Description: "Own pipelines", Status: job.JobStatusActive})

	provider := &scriptedProvider{reply: reply}
	svc := NewService(fakeResumes{}, jobLookup{jobs}, fakeCatalogue(courses), llm.NewRegistry(llm.ProviderGemini, provider))
	return svc, provider
}

func TestMockInterview(t *testing.T) {
	reply := "```json\n{\"easy\":[{\"question\":\"What is a goroutine?\",\"answer\":\"A lightweight thread.\",\"difficulty\":\"easy\"}],\"medium\":null}\n```"
	svc, provider := newService(t, reply)

	result, err := svc.MockInterview(context.Background(), coaching.MockInterviewRequest{ResumeID: "r1", JobID: "j1"}, Actor{UserID: "u1"})
	require.NoError(t, err)

	assert.Equal(t, llm.ProviderGemini, result.Provider)
	require.Len(t, result.Data.Easy, 1)
	assert.Equal(t, "What is a goroutine?", result.Data.Easy[0].Question)
	assert.NotNil(t, result.Data.Medium)
	assert.NotNil(t, result.Data.Hard)

	require.Len(t, provider.prompts, 1)
	assert.Contains(t, provider.prompts[0], "Backend Engineer")
	assert.Contains(t, provider.prompts[0], "Number of easy questions: 2")
	assert.Contains(t, provider.prompts[0], "Number of hard questions: 1")
}

func TestMockInterviewValidation(t *testing.T) {
	svc, provider := newService(t, "{}")
	ctx := context.Background()
	owner := Actor{UserID: "u1"}

	tests := []struct {
		name string
		req  coaching.MockInterviewRequest
		code string
	}{
		{"too many", coaching.MockInterviewRequest{ResumeID: "r1", JobID: "j1", Easy: 11}, coaching.CodeInvalidRequest},
		{"negative", coaching.MockInterviewRequest{ResumeID: "r1", JobID: "j1", Hard: -1, Easy: 1}, coaching.CodeInvalidRequest},
		{"missing job", coaching.MockInterviewRequest{ResumeID: "r1"}, coaching.CodeInvalidRequest},
		{"unknown provider", coaching.MockInterviewRequest{ResumeID: "r1", JobID: "j1", Provider: "claude"}, llm.CodeUnsupportedProvider},
		{"unparsed resume", coaching.MockInterviewRequest{ResumeID: "raw", JobID: "j1"}, resume.CodeResumeNotParsed},
		{"unknown resume", coaching.MockInterviewRequest{ResumeID: "nope", JobID: "j1"}, resume.CodeResumeNotFound},
		{"unknown job", coaching.MockInterviewRequest{ResumeID: "r1", JobID: "nope"}, job.CodeJobNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.MockInterview(ctx, tt.req, owner)
			assert.True(t, errx.IsCode(err, tt.code), "got %v", err)
		})
	}
	assert.Empty(t, provider.prompts)
}

func TestResumeOwnership(t *testing.T) {
	svc, _ := newService(t, `{"missing_skill":["Kafka"]}`)
	ctx := context.Background()
	req := coaching.ResumeJobRequest{ResumeID: "r1", JobID: "j1"}

	_, err := svc.SkillGap(ctx, req, Actor{UserID: "u2"})
	assert.True(t, errx.IsCode(err, coaching.CodeInsufficientPermissions))

	result, err := svc.SkillGap(ctx, req, Actor{UserID: "u2", CanUseAnyResume: true})
	require.NoError(t, err)
	assert.Equal(t, []string{"Kafka"}, result.Data.MissingSkills)
	assert.NotNil(t, result.Data.UpskillingPath)
}

func TestSkillGapIncludesCatalogue(t *testing.T) {
	svc, provider := newService(t, `{"missing_skill":[],"upskilling_path":[{"step":"Learn Kafka","estimated_time":"10h","reason":"streaming"}]}`,
		training.Course{ID: "c1", Title: "Kafka fundamentals", DurationMins: 90})

	result, err := svc.SkillGap(context.Background(), coaching.ResumeJobRequest{ResumeID: "r1", JobID: "j1"}, Actor{UserID: "u1"})
	require.NoError(t, err)
	require.Len(t, result.Data.UpskillingPath, 1)
	assert.Equal(t, "Learn Kafka", result.Data.UpskillingPath[0].Step)
	assert.Contains(t, provider.prompts[0], "[c1] Kafka fundamentals: 90 minutes")
}

func TestTailorResume(t *testing.T) {
	svc, provider := newService(t, `Sure! {"rewritten_summary":"Go engineer","rewritten_bullets":["Shipped X"]}`)
	ctx := context.Background()

	result, err := svc.TailorResume(ctx, coaching.TailorResumeRequest{ResumeID: "r1", JobIDs: []kernel.JobID{"j1", "j2"}}, Actor{UserID: "u1"})
	require.NoError(t, err)
	assert.Equal(t, "Go engineer", result.Data.RewrittenSummary)
	assert.Equal(t, []string{"Shipped X"}, result.Data.RewrittenBullets)
	assert.Equal(t, []string{}, result.Data.ExplainedChanges)
	assert.Contains(t, provider.prompts[0], "Backend Engineer: Build Go services")
	assert.Contains(t, provider.prompts[0], "Data Engineer: Own pipelines")

	_, err = svc.TailorResume(ctx, coaching.TailorResumeRequest{ResumeID: "r1"}, Actor{UserID: "u1"})
	assert.True(t, errx.IsCode(err, coaching.CodeInvalidRequest))

	_, err = svc.TailorResume(ctx, coaching.TailorResumeRequest{
		ResumeID: "r1",
		JobIDs:   []kernel.JobID{"j1", "j1", "j1", "j1", "j1", "j1"},
	}, Actor{UserID: "u1"})
	assert.True(t, errx.IsCode(err, coaching.CodeInvalidRequest))
}

func TestRecommendCoursesKeepsCataloguePicks(t *testing.T) {
	reply := `[
		{"Course_id":"c1","Course_title":"renamed","reason":"fills the Kafka gap"},
		{"Course_id":"c9","Course_title":"Invented","reason":"n/a"}
	]`
	svc, _ := newService(t, reply, training.Course{ID: "c1", Title: "Kafka fundamentals"})

	result, err := svc.RecommendCourses(context.Background(), coaching.ResumeJobRequest{ResumeID: "r1", JobID: "j1"}, Actor{UserID: "u1"})
	require.NoError(t, err)
	require.Len(t, result.Data, 1)
	assert.Equal(t, kernel.CourseID("c1"), result.Data[0].CourseID)
	assert.Equal(t, "Kafka fundamentals", result.Data[0].CourseTitle)
}

func TestRecommendCoursesEmptyCatalogue(t *testing.T) {
	svc, provider := newService(t, "[]")

	result, err := svc.RecommendCourses(context.Background(), coaching.ResumeJobRequest{ResumeID: "r1", JobID: "j1"}, Actor{UserID: "u1"})
	require.NoError(t, err)
	assert.Empty(t, result.Data)
	assert.Empty(t, provider.prompts)
}

func TestMalformedReply(t *testing.T) {
	svc, _ := newService(t, "I cannot help with that")

	_, err := svc.SkillGap(context.Background(), coaching.ResumeJobRequest{ResumeID: "r1", JobID: "j1"}, Actor{UserID: "u1"})
	assert.True(t, errx.IsCode(err, resumeparser.CodeNoJSON), "got %v", err)
}
