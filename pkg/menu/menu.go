// Package menu builds the navigation menu a session is allowed to see.
package menu

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// Permission names the menu checks for.
const (
	PermAnnouncement = "公告管理"
	PermUser         = "用户管理"
	PermHR           = "人事管理"
)

// Checker answers permission questions for the current session.
// *gate.Gate and gate.Snapshot both satisfy it.
type Checker interface {
	IsAuthenticated() bool
	HasPermission(name string) bool
}

// Entry is a menu item. An entry with children is a group and has no Href.
// Children inherit the Permission of their group.
type Entry struct {
	Key        string
	Label      string
	Href       string
	Permission string
	Children   []Entry
}

// Catalog is the full, ordered menu. Entries without a Permission are shown
// to every authenticated session.
var Catalog = []Entry{
	{Key: "home", Label: "系统首页", Href: "/dashboard"},
	{Key: "clockIn", Label: "考勤打卡", Href: "/attendance"},
	{Key: "leaveRequest", Label: "请假申请", Href: "/leave-request"},
	{Key: "announcementManagement", Label: "公告管理", Href: "/announcement-management", Permission: PermAnnouncement},
	{
		Key:        "userManagement",
		Label:      "用户管理",
		Permission: PermUser,
		Children: []Entry{
			{Key: "adminInfo", Label: "管理员信息", Href: "/admin-info"},
			{Key: "empInfo", Label: "员工信息", Href: "/user-info"},
			{Key: "empPwdManagement", Label: "员工密码管理", Href: "/employee-password"},
		},
	},
	{
		Key:        "hrManagement",
		Label:      "人事管理",
		Permission: PermHR,
		Children: []Entry{
			{Key: "departmentManagement", Label: "部门管理", Href: "/department-management"},
			{Key: "attendanceManagement", Label: "考勤管理", Href: "/attendance-management"},
			{Key: "leaveApproval", Label: "假期审批", Href: "/approval/leave"},
			{Key: "setCheckInTime", Label: "考勤设置", Href: "/set-check-in-time"},
		},
	},
}

// Build returns the part of Catalog visible to checker.
func Build(checker Checker) []Entry {
	return BuildFrom(Catalog, checker)
}

// BuildFrom filters entries for checker, keeping their order. Nothing is
// visible to an unauthenticated session.
func BuildFrom(entries []Entry, checker Checker) []Entry {
	if checker == nil || !checker.IsAuthenticated() {
		return nil
	}
	out := make([]Entry, 0, len(entries))
	for _, e := range entries {
		if e.Permission != "" && !checker.HasPermission(e.Permission) {
			continue
		}
		out = append(out, e.clone())
	}
	return out
}

func (e Entry) clone() Entry {
	out := e
	if e.Children != nil {
		out.Children = make([]Entry, len(e.Children))
		for i, c := range e.Children {
			out.Children[i] = c.clone()
		}
	}
	return out
}

// Find returns the catalog entry with key, searching groups too.
func Find(key string) (Entry, bool) {
	for _, e := range Catalog {
		if e.Key == key {
			return e, true
		}
		for _, c := range e.Children {
			if c.Key == key {
				return c, true
			}
		}
	}
	return Entry{}, false
}

// RequiredPermission returns the permission guarding the page at path, and
// whether path belongs to the menu at all.
func RequiredPermission(path string) (string, bool) {
	for _, e := range Catalog {
		if matchesHref(path, e.Href) {
			return e.Permission, true
		}
		for _, c := range e.Children {
			if matchesHref(path, c.Href) {
				return e.Permission, true
			}
		}
	}
	return "", false
}

// SelectedKeys returns the keys to highlight for path: the group key first
// when the page sits inside a group. Unknown paths select home.
func SelectedKeys(path string) []string {
	for _, e := range Catalog {
		if matchesHref(path, e.Href) {
			return []string{e.Key}
		}
		for _, c := range e.Children {
			if matchesHref(path, c.Href) {
				return []string{e.Key, c.Key}
			}
		}
	}
	return []string{"home"}
}

func matchesHref(path, href string) bool {
	if href == "" {
		return false
	}
	return path == href || strings.HasPrefix(path, href+"/")
}

// Crumb is one breadcrumb link.
type Crumb struct {
	Href  string
	Title string
}

// Breadcrumbs returns the home crumb followed by one crumb per path segment.
func Breadcrumbs(path string) []Crumb {
	crumbs := []Crumb{{Href: "/dashboard", Title: "首页"}}
	var segments []string
	for _, s := range strings.Split(path, "/") {
		if s != "" {
			segments = append(segments, s)
		}
	}
	for i, s := range segments {
		crumbs = append(crumbs, Crumb{
			Href:  "/" + strings.Join(segments[:i+1], "/"),
			Title: upperFirst(s),
		})
	}
	return crumbs
}

func upperFirst(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}
	return string(unicode.ToUpper(r)) + s[size:]
}
