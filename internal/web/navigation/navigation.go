// Package navigation knows the pages of the dashboard, the menu that links them
// and the breadcrumbs shown above each of them.
package navigation

// Section groups pages in the menu.
type Section string

// Sections.
const (
	SectionReview Section = "review"
	SectionAdmin  Section = "admin"
)

// Page identifies a rendered page.
type Page string

// Pages.
const (
	PageUpload    Page = "upload"
	PageResults   Page = "results"
	PageHistory   Page = "history"
	PageAnalytics Page = "analytics"
	PageBrand     Page = "brand"
	PageProvider  Page = "provider"
	PageUser      Page = "user"
)

type entry struct {
	section Section
	title   string
	crumb   string
	path    string
	parent  Page
}

var pages = map[Page]entry{ //nolint:gochecknoglobals
	PageUpload:    {section: SectionReview, title: "Upload Asset", crumb: "Upload", path: "/upload"},
	PageResults:   {section: SectionReview, title: "Analysis Results", crumb: "Results", path: "/results", parent: PageUpload},
	PageHistory:   {section: SectionReview, title: "History", crumb: "History", path: "/history"},
	PageAnalytics: {section: SectionAdmin, title: "Governance Analytics", crumb: "Analytics", path: "/admin/analytics"},
	PageBrand:     {section: SectionAdmin, title: "Brand Settings", crumb: "Brand Settings", path: "/admin/brand"},
	PageProvider:  {section: SectionAdmin, title: "Model Provider", crumb: "Model Provider", path: "/admin/provider"},
	PageUser:      {section: SectionAdmin, title: "Users", crumb: "Users", path: "/admin/user"},
}

// MenuItem is one link of the top menu.
type MenuItem struct {
	Label  string
	Path   string
	Active bool
	pages  []Page
}

// menu is in display order. Admin links come first and are only shown to admins.
var menu = []MenuItem{ //nolint:gochecknoglobals
	{Label: "Analytics", Path: "/admin/analytics", pages: []Page{PageAnalytics}},
	{Label: "Brand Settings", Path: "/admin/brand", pages: []Page{PageBrand}},
	{Label: "Model Provider", Path: "/admin/provider", pages: []Page{PageProvider}},
	{Label: "Users", Path: "/admin/user", pages: []Page{PageUser}},
	{Label: "Review", Path: "/upload", pages: []Page{PageUpload, PageResults}},
	{Label: "History", Path: "/history", pages: []Page{PageHistory}},
}

// Breadcrumb is a single breadcrumb link.
type Breadcrumb struct {
	Title  string
	URL    string
	Active bool
}

// Context is the navigation state of one rendered page.
type Context struct {
	PageTitle   string
	Section     Section
	Page        Page
	Breadcrumbs []Breadcrumb
}

// For returns the context of page. Its trail starts at the home of the section,
// goes through the parent page if there is one and ends at page.
func For(page Page) *Context {
	e := pages[page]

	c := &Context{PageTitle: e.title, Section: e.section, Page: page}
	c.add("Home", Home(e.section), false)

	if parent, ok := pages[e.parent]; ok {
		c.add(parent.crumb, parent.path, false)
	}

	c.add(e.crumb, e.path, true)

	return c
}

// Home is where the Home breadcrumb of a section points.
func Home(section Section) string {
	return pages[homePage(section)].path
}

func homePage(section Section) Page {
	if section == SectionAdmin {
		return PageAnalytics
	}

	return PageUpload
}

func (c *Context) add(title, url string, active bool) {
	c.Breadcrumbs = append(c.Breadcrumbs, Breadcrumb{Title: title, URL: url, Active: active})
}

// Menu returns the top menu with the link of the current page marked active.
// A nil context yields the menu with nothing active.
func (c *Context) Menu(admin bool) []MenuItem {
	items := make([]MenuItem, 0, len(menu))

	for _, item := range menu {
		if pages[item.pages[0]].section == SectionAdmin && !admin {
			continue
		}

		if c != nil {
			for _, p := range item.pages {
				item.Active = item.Active || p == c.Page
			}
		}

		items = append(items, item)
	}

	return items
}
