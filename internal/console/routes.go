package console

import (
	"net/url"
	"strings"
)

// Route maps a URL path to a page.
type Route struct {
	Path  string
	Page  string
	Admin bool
}

// Routes is the static page table.
var Routes = []Route{
	{Path: "/", Page: "qr-attendance"},
	{Path: "/login", Page: "login"},
	{Path: "/admin/course&section", Page: "course-and-section", Admin: true},
	{Path: "/admin/subjects", Page: "subjects", Admin: true},
	{Path: "/admin/courses", Page: "courses", Admin: true},
	{Path: "/admin/faculty", Page: "faculty", Admin: true},
	{Path: "/admin/computermanagement", Page: "computer-management", Admin: true},
	{Path: "/admin/computermanagement/:name", Page: "computer-management-detail", Admin: true},
	{Path: "/admin/attendanceRecord/studentsRecord", Page: "students-record", Admin: true},
	{Path: "/admin/dashboard", Page: "dashboard", Admin: true},
	{Path: "/admin/attendanceRecord/teachersRecord", Page: "teachers-record", Admin: true},
	{Path: "/admin/schedule", Page: "admin-schedule", Admin: true},
	{Path: "/teacher/Record", Page: "teacher-record"},
	{Path: "/teacher/schedule", Page: "teacher-schedule"},
}

// Resolve finds the route for path. Segments starting with ':' match any
// non-empty segment and are returned unescaped in params.
func Resolve(path string) (Route, map[string]string, bool) {
	segs := split(path)
	for _, r := range Routes {
		params, ok := match(split(r.Path), segs)
		if ok {
			return r, params, true
		}
	}
	return Route{}, nil, false
}

func split(path string) []string {
	path = strings.Trim(path, "/")
	if path == "" {
		return nil
	}
	return strings.Split(path, "/")
}

func match(pattern, segs []string) (map[string]string, bool) {
	if len(pattern) != len(segs) {
		return nil, false
	}
	params := map[string]string{}
	for i, p := range pattern {
		if strings.HasPrefix(p, ":") {
			if segs[i] == "" {
				return nil, false
			}
			v, err := url.PathUnescape(segs[i])
			if err != nil {
				return nil, false
			}
			params[p[1:]] = v
			continue
		}
		if p != segs[i] {
			return nil, false
		}
	}
	return params, true
}
