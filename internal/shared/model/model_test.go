package model

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserRoleValid(t *testing.T) {
	tests := []struct {
		role     UserRole
		expected bool
	}{
		{UserRoleAdmin, true},
		{UserRoleOperator, true},
		{UserRoleViewer, true},
		{UserRole("superadmin"), false},
		{UserRole("Admin"), false}, // 大小写敏感
		{UserRole(""), false},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, tt.role.Valid(), "role %q", tt.role)
	}
}

func TestUserJSONHidesPasswordHash(t *testing.T) {
	u := &User{
		ID:           1,
		Username:     "admin",
		PasswordHash: "$2a$10$secret",
		Name:         "Administrator",
		Role:         UserRoleAdmin,
		IsActive:     true,
		CreatedAt:    time.Now(),
		UpdatedAt:    time.Now(),
	}

	data, err := json.Marshal(u)
	require.NoError(t, err)
	assert.NotContains(t, string(data), "secret")
	assert.NotContains(t, string(data), "password")
}

func TestUserPublic(t *testing.T) {
	u := &User{ID: 7, Username: "viewer1", Name: "Viewer", Role: UserRoleViewer, PasswordHash: "x"}
	p := u.Public()
	assert.Equal(t, int64(7), p.ID)
	assert.Equal(t, "viewer1", p.Username)
	assert.Equal(t, UserRoleViewer, p.Role)
}

func TestRoutingTypeValid(t *testing.T) {
	assert.True(t, RoutingTypeRoundRobin.Valid())
	assert.True(t, RoutingTypeManual.Valid())
	assert.True(t, RoutingTypeCapacity.Valid())
	assert.False(t, RoutingType("random").Valid())
}

func TestQueueTaskRetryable(t *testing.T) {
	assert.True(t, (&QueueTask{Status: TaskStatusStuck}).Retryable())
	assert.True(t, (&QueueTask{Status: TaskStatusFailed}).Retryable())
	assert.False(t, (&QueueTask{Status: TaskStatusActive}).Retryable())
	assert.False(t, (&QueueTask{Status: TaskStatusPending}).Retryable())
	assert.False(t, (&QueueTask{Status: TaskStatusCompleted}).Retryable())
}
