package console

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolve(t *testing.T) {
	tests := []struct {
		path   string
		page   string
		params map[string]string
	}{
		{"/", "qr-attendance", map[string]string{}},
		{"/login", "login", map[string]string{}},
		{"/admin/course&section", "course-and-section", map[string]string{}},
		{"/admin/computermanagement", "computer-management", map[string]string{}},
		{"/admin/computermanagement/Lab%20A", "computer-management-detail", map[string]string{"name": "Lab A"}},
		{"/admin/attendanceRecord/teachersRecord", "teachers-record", map[string]string{}},
		{"/teacher/schedule/", "teacher-schedule", map[string]string{}},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			r, params, ok := Resolve(tt.path)
			require.True(t, ok)
			assert.Equal(t, tt.page, r.Page)
			assert.Equal(t, tt.params, params)
		})
	}
}

func TestResolve_Unknown(t *testing.T) {
	for _, p := range []string{"/admin", "/admin/computermanagement/a/b", "/teacher/record"} {
		_, _, ok := Resolve(p)
		assert.False(t, ok, p)
	}
}

func TestRoutes_Complete(t *testing.T) {
	assert.Len(t, Routes, 14)
	seen := map[string]bool{}
	for _, r := range Routes {
		assert.False(t, seen[r.Path], "duplicate %s", r.Path)
		seen[r.Path] = true
	}
}
