package errs

import (
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

func TestNewDatabaseError(t *testing.T) {
	tests := []struct {
		name       string
		cause      error
		wantStatus int
		wantMsg    string
	}{
		{name: "duplicate key", cause: gorm.ErrDuplicatedKey, wantStatus: http.StatusConflict, wantMsg: "profile already exists"},
		{name: "foreign key", cause: gorm.ErrForeignKeyViolated, wantStatus: http.StatusBadRequest, wantMsg: "invalid reference in profile"},
		{name: "not found", cause: gorm.ErrRecordNotFound, wantStatus: http.StatusNotFound, wantMsg: "profile not found"},
		{name: "anything else", cause: errors.New("connection refused by 10.0.0.3"), wantStatus: http.StatusInternalServerError, wantMsg: "Failed to save profile"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := NewDatabaseError("Failed to save profile", "profile", tt.cause)
			assert.Equal(t, tt.wantStatus, err.StatusCode)
			assert.Equal(t, tt.wantMsg, err.Error())
		})
	}
}

func TestNewDatabaseError_KeepsCauseOutOfMessage(t *testing.T) {
	cause := errors.New("pq: password authentication failed")
	err := NewDatabaseError("Failed to fetch profile", "profile", cause)

	assert.NotContains(t, err.Error(), "password authentication")
	assert.Contains(t, err.GetFullError(), "password authentication")
	assert.True(t, errors.Is(err, cause))
	assert.True(t, errors.Is(err, ErrDatabaseQuery))
}

func TestConflictDetection(t *testing.T) {
	assert.True(t, IsConflict(NewDatabaseError("x", "skill", gorm.ErrDuplicatedKey)))
	assert.True(t, IsConflict(NewAlreadyExists("profile")))
	assert.True(t, IsUniqueConstraintViolationError(NewDatabaseError("x", "skill", gorm.ErrDuplicatedKey)))
	assert.False(t, IsConflict(NewBadRequestError("nope")))
}

func TestAuthErrors(t *testing.T) {
	assert.True(t, IsUnauthorized(NewMissingTokenError()))
	assert.True(t, IsMissingTokenError(NewMissingTokenError()))
	assert.True(t, IsMalformedHeaderError(NewMalformedHeaderError()))
	assert.True(t, IsInvalidTokenError(NewInvalidTokenError(errors.New("sig"))))
	assert.True(t, IsInvalidTokenStructureError(NewInvalidTokenStructureError()))
	assert.Equal(t, "Invalid email or password", NewInvalidCredentialsError().Error())
	assert.False(t, IsUnauthorized(NewBadRequestError("nope")))
}

func TestConfigError(t *testing.T) {
	err := NewConfigError("JWT_SECRET", ErrConfigInvalid)
	assert.True(t, IsConfigError(err))
	assert.True(t, errors.Is(err, ErrConfigInvalid))
	assert.Contains(t, err.Error(), "JWT_SECRET")
}

func TestGetFullError_Nested(t *testing.T) {
	inner := NewInternalErrorWithCause("inner", errors.New("root"))
	outer := NewInternalErrorWithCause("outer", inner)
	assert.Equal(t, "outer -> inner -> root", outer.GetFullError())
}

func TestTransactionFailed_KeepsCauseClassification(t *testing.T) {
	failed := NewTransactionFailedError("project with links insert", gorm.ErrForeignKeyViolated)
	assert.Equal(t, http.StatusInternalServerError, failed.StatusCode)
	assert.True(t, errors.Is(failed, ErrTransactionFailed))
	assert.True(t, IsForeignKeyConstraintError(failed))

	wrapped := NewDatabaseError("Failed to create project from GitHub", "project", failed)
	assert.Equal(t, http.StatusBadRequest, wrapped.StatusCode)

	other := NewDatabaseError("Failed to create project from GitHub", "project",
		NewTransactionFailedError("project with links insert", errors.New("deadlock detected")))
	assert.Equal(t, http.StatusInternalServerError, other.StatusCode)
	assert.Equal(t, "Failed to create project from GitHub", other.Error())
	assert.Contains(t, other.GetFullError(), "deadlock detected")
	assert.False(t, IsForeignKeyConstraintError(other))
}
