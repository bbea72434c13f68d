package router

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/toriojohn/Computer-Lab-Attendance-and-Monitoring-System/config"
	"github.com/toriojohn/Computer-Lab-Attendance-and-Monitoring-System/internal/api/handler"
	"github.com/toriojohn/Computer-Lab-Attendance-and-Monitoring-System/internal/api/middleware"
	"github.com/toriojohn/Computer-Lab-Attendance-and-Monitoring-System/internal/model"
	"github.com/toriojohn/Computer-Lab-Attendance-and-Monitoring-System/pkg/jwt"
	"github.com/toriojohn/Computer-Lab-Attendance-and-Monitoring-System/pkg/metrics"
	"github.com/toriojohn/Computer-Lab-Attendance-and-Monitoring-System/pkg/redis"
)

const (
	maxBodyBytes = 1 << 20
	loginLimit   = 10
	loginWindow  = time.Minute
)

// Setup builds the gin engine. rdb may be nil; the token blacklist and the
// login rate limit are then skipped.
func Setup(cfg *config.Config, h *handler.Handler, jwtMgr *jwt.Manager, rdb *redis.Client, m *metrics.Metrics, logger *zap.Logger) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	r := gin.New()

	// interfaces stay nil instead of holding a nil *redis.Client
	var (
		revoked middleware.Revocations
		limiter middleware.RateLimiter
	)
	if rdb != nil {
		revoked, limiter = rdb, rdb
	}

	// ── global middleware ──
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger(logger))
	r.Use(middleware.Metrics(m))
	r.Use(middleware.SecurityHeaders())
	r.Use(middleware.CORS(cfg.Server.CORS.AllowOrigins))
	r.Use(middleware.BodyLimit(maxBodyBytes))

	// ── ops ──
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(m.Handler()))

	api := r.Group("/api")

	// write guards mutations; with auth.require_token off it is a no-op
	var write, admin []gin.HandlerFunc
	if cfg.Auth.RequireToken {
		write = append(write, middleware.JWTAuth(jwtMgr, revoked))
		admin = append(admin, middleware.JWTAuth(jwtMgr, revoked), middleware.RoleAuth(model.RoleAdmin))
	}

	teacher := api.Group("/teacher")
	{
		teacher.GET("/getSpecificTeacher/:id", h.Teacher.GetTeacher)
		teacher.GET("/getTeachers", h.Teacher.ListTeachers)
		teacher.POST("/login", middleware.RateLimit(limiter, loginLimit, loginWindow), h.Teacher.Login)
		teacher.POST("/logout", middleware.JWTAuth(jwtMgr, revoked), h.Teacher.Logout)
		teacher.POST("/addTeacher", chain(admin, h.Teacher.CreateTeacher)...)
	}

	computer := api.Group("/computer")
	{
		computer.GET("/getList", h.Lab.ListLabs)
		computer.POST("/addCom", chain(write, h.Lab.AddLab)...)
		computer.POST("/editCom/:id", chain(write, h.Lab.EditLab)...)
		computer.DELETE("/deleteCom/:id", chain(write, h.Lab.DeleteLab)...)
	}

	acads := api.Group("/acads")
	{
		acads.GET("/getCourses", h.Acads.ListCourses)
		acads.POST("/addCourse", chain(write, h.Acads.AddCourse)...)
		acads.GET("/getSubjects", h.Acads.ListSubjects)
		acads.POST("/addSubject", chain(write, h.Acads.AddSubject)...)
	}

	schedule := api.Group("/schedule")
	{
		schedule.GET("/getSched", h.Schedule.ListEvents)
		schedule.POST("/addSchedule", chain(write, h.Schedule.AddEvent)...)
		schedule.PUT("/updateSched", chain(write, h.Schedule.UpdateEvent)...)
		schedule.DELETE("/deleteSched/:id", chain(write, h.Schedule.DeleteEvent)...)
		schedule.GET("/export.xlsx", h.Export.ExportXLSX)
		schedule.GET("/export.ics", h.Export.ExportICS)
		schedule.POST("/import.ics", chain(write, h.Import.ImportICS)...)
	}

	return r
}

func chain(guards []gin.HandlerFunc, h gin.HandlerFunc) []gin.HandlerFunc {
	out := make([]gin.HandlerFunc, 0, len(guards)+1)
	return append(append(out, guards...), h)
}
