package application

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Abraxas-365/peoplehub/pkg/errx"
)

func TestCanUpdateStatus(t *testing.T) {
	tests := []struct {
		from ApplicationStatus
		to   ApplicationStatus
		want bool
	}{
		{ApplicationStatusApplied, ApplicationStatusScreening, true},
		{ApplicationStatusScreening, ApplicationStatusInterviewing, true},
		{ApplicationStatusInterviewing, ApplicationStatusOffered, true},
		{ApplicationStatusOffered, ApplicationStatusHired, true},
		{ApplicationStatusApplied, ApplicationStatusOffered, false},
		{ApplicationStatusScreening, ApplicationStatusApplied, false},
		{ApplicationStatusApplied, ApplicationStatusRejected, true},
		{ApplicationStatusOffered, ApplicationStatusWithdrawn, true},
		{ApplicationStatusHired, ApplicationStatusRejected, false},
		{ApplicationStatusRejected, ApplicationStatusScreening, false},
		{ApplicationStatusWithdrawn, ApplicationStatusWithdrawn, false},
	}
	for _, tt := range tests {
		t.Run(string(tt.from)+"->"+string(tt.to), func(t *testing.T) {
			a := &Application{Status: tt.from}
			assert.Equal(t, tt.want, a.CanUpdateStatus(tt.to))
		})
	}
}

func TestUpdateStatus(t *testing.T) {
	a := &Application{Status: ApplicationStatusApplied}

	err := a.UpdateStatus("shortlisted")
	assert.True(t, errx.IsCode(err, CodeInvalidStatus))

	err = a.UpdateStatus(ApplicationStatusHired)
	assert.True(t, errx.IsCode(err, CodeInvalidStatusTransition))
	assert.Nil(t, a.StatusChangedAt)

	require.NoError(t, a.UpdateStatus(ApplicationStatusScreening))
	assert.Equal(t, ApplicationStatusScreening, a.Status)
	assert.NotNil(t, a.StatusChangedAt)

	require.NoError(t, a.Withdraw())
	assert.False(t, a.IsActive())
	assert.Error(t, a.Reject())
}
