// Package site renders the portfolio as HTML pages, either written to disk by
// a Builder or served live by a Server.
package site

import (
	"fmt"
	"io"
	"net/url"
	"sort"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/mithrel/showcase/internal/present/format"
	"github.com/mithrel/showcase/pkg/api"
)

var (
	tag  = format.Tag
	text = format.Text
	add  = format.Append
)

// NotFoundTitle heads the page served for unknown projects.
const NotFoundTitle = "Project Not Found"

// ProjectPath is the URL path of a project page.
func ProjectPath(slug string) string {
	return "/project/" + url.PathEscape(slug) + "/"
}

// page wraps main content in the shared document shell.
func page(siteTitle, title string, main ...*html.Node) *html.Node {
	full := siteTitle
	if title != "" && title != siteTitle {
		full = title + " | " + siteTitle
	}
	head := add(tag(atom.Head),
		tag(atom.Meta, "charset", "utf-8"),
		tag(atom.Meta, "name", "viewport", "content", "width=device-width, initial-scale=1"),
		add(tag(atom.Title), text(full)),
	)
	header := add(tag(atom.Header),
		add(tag(atom.A, "href", "/", "class", "site-title"), text(siteTitle)),
	)
	body := add(tag(atom.Body), header, add(tag(atom.Main), main...))
	doc := &html.Node{Type: html.DocumentNode}
	return add(doc,
		&html.Node{Type: html.DoctypeNode, Data: "html"},
		add(tag(atom.Html, "lang", "en"), head, body),
	)
}

// Write renders a page tree to w.
func Write(w io.Writer, n *html.Node) error {
	return html.Render(w, n)
}

func media(m api.MediaItem) *html.Node {
	alt := m.AltText
	if alt == "" {
		alt = m.Title
	}
	var el *html.Node
	switch m.Type {
	case api.MediaVideo:
		el = tag(atom.Video, "src", m.File.URL, "controls", "", "muted", "", "loop", "", "playsinline", "")
	default:
		el = tag(atom.Img, "src", m.File.URL, "alt", alt, "loading", "lazy")
	}
	fig := add(tag(atom.Figure, "class", "media media-"+mediaType(m)), el)
	if m.Caption != "" {
		add(fig, add(tag(atom.Figcaption), text(m.Caption)))
	}
	return fig
}

func mediaType(m api.MediaItem) string {
	if m.Type == "" {
		return string(api.MediaImage)
	}
	return string(m.Type)
}

// groupByCategory groups projects by category in sorted category order,
// keeping the incoming project order within each group. Projects without a
// category are grouped last under "Other".
func groupByCategory(projects []api.Project) ([]string, map[string][]api.Project) {
	groups := make(map[string][]api.Project)
	var names []string
	for _, p := range projects {
		c := strings.TrimSpace(p.Category)
		if c == "" {
			c = "other"
		}
		key := strings.ToLower(c)
		if _, ok := groups[key]; !ok {
			names = append(names, key)
		}
		groups[key] = append(groups[key], p)
	}
	sort.Slice(names, func(i, j int) bool {
		if (names[i] == "other") != (names[j] == "other") {
			return names[j] == "other"
		}
		return names[i] < names[j]
	})
	return names, groups
}

// IndexPage lists every project as a card, grouped under category headings.
func IndexPage(siteTitle string, projects []api.Project) *html.Node {
	title := cases.Title(language.English)
	var sections []*html.Node
	names, groups := groupByCategory(projects)
	for _, name := range names {
		grid := tag(atom.Ul, "class", "project-grid")
		for _, p := range groups[name] {
			link := tag(atom.A, "href", ProjectPath(p.Slug))
			if cover, ok := p.Cover(); ok {
				add(link, media(cover))
			}
			add(link, add(tag(atom.H3), text(p.Title)))
			if p.TechStack != "" {
				add(link, add(tag(atom.P, "class", "tech-stack"), text(p.TechStack)))
			}
			add(grid, add(tag(atom.Li, "class", "project-card"), link))
		}
		sections = append(sections, add(tag(atom.Section, "class", "category", "id", "category-"+slugify(name)),
			add(tag(atom.H2), text(title.String(name))),
			grid,
		))
	}
	if len(sections) == 0 {
		sections = append(sections, add(tag(atom.P, "class", "empty"), text("No projects yet.")))
	}
	return page(siteTitle, "", sections...)
}

func slugify(s string) string {
	return strings.Join(strings.Fields(strings.ToLower(s)), "-")
}

// ProjectPage renders one project: header, demo media carousel, document
// sections, inspiration media and a back link.
func ProjectPage(siteTitle string, p api.Project, docs format.Documents) *html.Node {
	header := add(tag(atom.Section, "class", "project-header"), add(tag(atom.H1), text(p.Title)))
	if p.Category != "" {
		add(header, add(tag(atom.P, "class", "category"), text(cases.Title(language.English).String(p.Category))))
	}
	if p.TechStack != "" {
		add(header, add(tag(atom.P, "class", "tech-stack"), text(p.TechStack)))
	}
	links := tag(atom.P, "class", "links")
	if p.ProjectURL != "" {
		add(links, add(tag(atom.A, "href", p.ProjectURL, "target", "_blank", "rel", "noopener noreferrer"), text("Live Site")))
	}
	if p.GithubURL != "" {
		add(links, add(tag(atom.A, "href", p.GithubURL, "target", "_blank", "rel", "noopener noreferrer"), text("GitHub")))
	}
	if links.FirstChild != nil {
		add(header, links)
	}

	body := []*html.Node{header, carousel(p.DemoMedia)}
	for _, d := range docs {
		if d.Element == nil {
			continue
		}
		body = append(body, add(tag(atom.Section, "class", "document-section", "id", string(d.Field)),
			add(tag(atom.H2), text(d.Field.Title())),
			format.HTML(d.Element),
		))
	}
	if len(p.InspirationMedia) > 0 {
		gallery := add(tag(atom.Section, "class", "inspiration-media"), add(tag(atom.H2), text("Inspiration")))
		for _, m := range p.InspirationMedia {
			add(gallery, media(m))
		}
		body = append(body, gallery)
	}
	body = append(body, add(tag(atom.P, "class", "back"),
		add(tag(atom.A, "href", "/"), text("← Back to projects"))))
	return page(siteTitle, p.Title, body...)
}

// carousel renders each demo item as an anchored slide with previous and next
// links. The first slide has no previous link and the last no next link.
func carousel(items []api.MediaItem) *html.Node {
	if len(items) == 0 {
		return nil
	}
	sec := tag(atom.Section, "class", "carousel")
	c := format.NewCarousel(items)
	for {
		i := c.Index()
		item, _ := c.Current()
		nav := tag(atom.Nav, "class", "carousel-nav")
		if c.HasPrev() {
			add(nav, add(tag(atom.A, "href", fmt.Sprintf("#media-%d", i), "class", "prev"), text("Previous")))
		} else {
			add(nav, add(tag(atom.Span, "class", "prev disabled"), text("Previous")))
		}
		add(nav, add(tag(atom.Span, "class", "position"), text(c.Position())))
		if c.HasNext() {
			add(nav, add(tag(atom.A, "href", fmt.Sprintf("#media-%d", i+2), "class", "next"), text("Next")))
		} else {
			add(nav, add(tag(atom.Span, "class", "next disabled"), text("Next")))
		}
		add(sec, add(tag(atom.Div, "class", "slide", "id", fmt.Sprintf("media-%d", i+1)), media(item), nav))
		if !c.Next() {
			break
		}
	}
	return sec
}

// NotFoundPage is served for unknown project slugs.
func NotFoundPage(siteTitle string) *html.Node {
	return page(siteTitle, NotFoundTitle,
		add(tag(atom.H1), text(NotFoundTitle)),
		add(tag(atom.P), text("The project you are looking for does not exist.")),
		add(tag(atom.P, "class", "back"), add(tag(atom.A, "href", "/"), text("← Back to projects"))),
	)
}
