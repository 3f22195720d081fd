package training

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Abraxas-365/peoplehub/pkg/errx"
)

func TestEnrollment_SetProgress(t *testing.T) {
	tests := []struct {
		progress float64
		want     EnrollmentStatus
	}{
		{0, EnrollmentStatusEnrolled},
		{40, EnrollmentStatusInProgress},
		{100, EnrollmentStatusCompleted},
	}
	for _, tt := range tests {
		e := Enrollment{Status: EnrollmentStatusEnrolled}
		require.NoError(t, e.SetProgress(tt.progress))
		assert.Equal(t, tt.want, e.Status)
		assert.Equal(t, tt.progress, e.Progress)
		assert.Equal(t, tt.want == EnrollmentStatusCompleted, e.CompletedAt != nil)
	}
}

func TestEnrollment_SetProgressRejects(t *testing.T) {
	e := Enrollment{Status: EnrollmentStatusInProgress}
	assert.True(t, errx.IsCode(e.SetProgress(-1), CodeInvalidProgress))
	assert.True(t, errx.IsCode(e.SetProgress(100.5), CodeInvalidProgress))

	require.NoError(t, e.SetProgress(100))
	assert.True(t, errx.IsCode(e.SetProgress(50), CodeEnrollmentCompleted))
}

func TestTraining_ValidDates(t *testing.T) {
	start := time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 1, 0)

	assert.True(t, (&Training{}).ValidDates())
	assert.True(t, (&Training{StartDate: &start, EndDate: &end}).ValidDates())
	assert.False(t, (&Training{StartDate: &end, EndDate: &start}).ValidDates())
}
