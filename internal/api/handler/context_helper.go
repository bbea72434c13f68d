package handler

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/toriojohn/Computer-Lab-Attendance-and-Monitoring-System/pkg/response"
)

// Context keys set by middleware.JWTAuth.
const (
	CtxTeacherID = "teacher_id"
	CtxRole      = "role"
	CtxTokenJTI  = "token_jti"
	CtxTokenExp  = "token_exp"
)

// CallerID returns the authenticated teacher id, or "" when the route is
// open (auth.require_token: false).
func CallerID(c *gin.Context) string {
	return c.GetString(CtxTeacherID)
}

// MustGetTeacherID extracts teacher_id. On failure it writes a 401 and the
// caller should return.
func MustGetTeacherID(c *gin.Context) (string, bool) {
	v, exists := c.Get(CtxTeacherID)
	if !exists {
		response.Unauthorized(c, response.CodeUnauthorized, "not authenticated")
		return "", false
	}
	s, ok := v.(string)
	if !ok || s == "" {
		response.Unauthorized(c, response.CodeUnauthorized, "not authenticated")
		return "", false
	}
	return s, true
}

// MustGetToken extracts the token id and expiry of the current request.
func MustGetToken(c *gin.Context) (string, time.Time, bool) {
	jti := c.GetString(CtxTokenJTI)
	exp, ok := c.Get(CtxTokenExp)
	if jti == "" || !ok {
		response.Unauthorized(c, response.CodeUnauthorized, "not authenticated")
		return "", time.Time{}, false
	}
	t, ok := exp.(time.Time)
	if !ok {
		response.Unauthorized(c, response.CodeUnauthorized, "not authenticated")
		return "", time.Time{}, false
	}
	return jti, t, true
}
