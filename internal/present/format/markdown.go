package format

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/glamour"
	"golang.org/x/term"

	"github.com/mithrel/showcase/internal/document"
	"github.com/mithrel/showcase/pkg/api"
)

// PrettyOptions configures glamour output.
type PrettyOptions struct {
	// Style is a glamour standard style name such as "dark" or "notty".
	Style string
	// WordWrap is the wrap width; 0 uses the terminal width of the writer.
	WordWrap int
}

// Markdown renders an element tree as CommonMark. Markup blocks are reduced
// to their visible text.
func Markdown(el *document.Element) string {
	var m mdWriter
	m.block(el, "")
	out := strings.TrimRight(m.b.String(), "\n")
	if out == "" {
		return ""
	}
	return out + "\n"
}

// ProjectMarkdown renders a project page as markdown.
func ProjectMarkdown(p api.Project, docs Documents) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# %s\n\n", p.Title)

	var meta []string
	if p.Category != "" {
		meta = append(meta, "**Category:** "+p.Category)
	}
	if p.TechStack != "" {
		meta = append(meta, "**Tech Stack:** "+p.TechStack)
	}
	if !p.CreatedAt.IsZero() {
		meta = append(meta, "**Created:** "+created(p.CreatedAt))
	}
	if len(meta) > 0 {
		fmt.Fprintf(&b, "%s\n\n", strings.Join(meta, " | "))
	}

	var links []string
	if p.ProjectURL != "" {
		links = append(links, fmt.Sprintf("[Live Site](%s)", p.ProjectURL))
	}
	if p.GithubURL != "" {
		links = append(links, fmt.Sprintf("[GitHub](%s)", p.GithubURL))
	}
	if len(links) > 0 {
		fmt.Fprintf(&b, "%s\n\n", strings.Join(links, " | "))
	}

	writeMediaList(&b, "Demo Media", p.DemoMedia)
	for _, d := range docs {
		if d.Element == nil {
			continue
		}
		fmt.Fprintf(&b, "---\n\n## %s\n\n", d.Field.Title())
		b.WriteString(Markdown(d.Element))
		b.WriteString("\n")
	}
	writeMediaList(&b, "Inspiration Media", p.InspirationMedia)
	return strings.TrimRight(b.String(), "\n") + "\n"
}

func writeMediaList(b *strings.Builder, title string, items []api.MediaItem) {
	if len(items) == 0 {
		return
	}
	fmt.Fprintf(b, "### %s\n\n", title)
	for _, m := range items {
		label := m.Title
		if label == "" {
			label = m.AltText
		}
		if label == "" {
			label = m.File.URL
		}
		fmt.Fprintf(b, "- [%s](%s)", label, m.File.URL)
		if m.Type != "" {
			fmt.Fprintf(b, " (%s)", m.Type)
		}
		if m.Caption != "" {
			b.WriteString(" ")
			b.WriteString(m.Caption)
		}
		b.WriteString("\n")
	}
	b.WriteString("\n")
}

// WritePrettyDocument renders an element tree to the terminal with glamour.
func WritePrettyDocument(w io.Writer, el *document.Element, opts PrettyOptions) error {
	return writeGlamour(w, Markdown(el), opts)
}

// WritePrettyProject renders a project page to the terminal with glamour.
func WritePrettyProject(w io.Writer, p api.Project, docs Documents, opts PrettyOptions) error {
	return writeGlamour(w, ProjectMarkdown(p, docs), opts)
}

// RenderPretty renders markdown with glamour and returns the styled string.
func RenderPretty(md string, opts PrettyOptions) (string, error) {
	style := opts.Style
	if style == "" {
		style = "dark"
	}
	width := opts.WordWrap
	if width <= 0 {
		width = 80
	}
	r, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle(style),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return "", fmt.Errorf("failed to create renderer: %w", err)
	}
	out, err := r.Render(md)
	if err != nil {
		return "", fmt.Errorf("failed to render markdown: %w", err)
	}
	return out, nil
}

func writeGlamour(w io.Writer, md string, opts PrettyOptions) error {
	if opts.WordWrap <= 0 {
		opts.WordWrap = TerminalWidth(w)
	}
	out, err := RenderPretty(md, opts)
	if err != nil {
		return err
	}
	_, err = io.WriteString(w, out)
	return err
}

// TerminalWidth returns the column count of w when it is a terminal, else 80.
func TerminalWidth(w io.Writer) int {
	if f, ok := w.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		if cols, _, err := term.GetSize(int(f.Fd())); err == nil && cols > 0 {
			return cols
		}
	}
	return 80
}

type mdWriter struct {
	b strings.Builder
}

func (m *mdWriter) para(indent, text string) {
	if strings.TrimSpace(text) == "" {
		return
	}
	for i, line := range strings.Split(text, "\n") {
		if i > 0 {
			m.b.WriteString("\n")
		}
		m.b.WriteString(indent)
		m.b.WriteString(line)
	}
	m.b.WriteString("\n\n")
}

func (m *mdWriter) block(el *document.Element, indent string) {
	if el == nil {
		return
	}
	switch el.Kind {
	case document.KindContainer:
		for _, c := range el.Children {
			m.block(c, indent)
		}
	case document.KindParagraph:
		m.para(indent, inlineChildren(el))
	case document.KindHeading:
		level := el.Level
		if level < 1 {
			level = 2
		}
		m.para(indent, strings.Repeat("#", level)+" "+inlineChildren(el))
	case document.KindTextBlock:
		m.para(indent, escapeMarkdown(el.Text))
	case document.KindMarkup:
		m.para(indent, escapeMarkdown(MarkupText(el.Text)))
	case document.KindDebugDump:
		m.para(indent, "**"+escapeMarkdown(el.Label)+"**")
		m.para(indent, fenced("json", el.Text))
	case document.KindList:
		m.list(el, indent)
		m.b.WriteString("\n")
	case document.KindListItem:
		m.item(el, indent, "- ")
		m.b.WriteString("\n")
	default:
		m.para(indent, inline(el))
	}
}

func (m *mdWriter) list(el *document.Element, indent string) {
	n := 0
	for _, c := range el.Children {
		if c.Kind == document.KindList {
			m.list(c, indent+"  ")
			continue
		}
		marker := "- "
		if el.Ordered {
			n++
			marker = fmt.Sprintf("%d. ", n)
		}
		m.item(c, indent, marker)
	}
}

func (m *mdWriter) item(el *document.Element, indent, marker string) {
	var parts []string
	var nested []*document.Element
	if el.Kind == document.KindListItem {
		for _, c := range el.Children {
			if c.Kind == document.KindList {
				nested = append(nested, c)
				continue
			}
			if s := strings.TrimSpace(inline(c)); s != "" {
				parts = append(parts, s)
			}
		}
	} else {
		parts = append(parts, strings.TrimSpace(inline(el)))
	}
	m.b.WriteString(indent + marker + strings.Join(parts, " ") + "\n")
	pad := indent + strings.Repeat(" ", len(marker))
	for _, l := range nested {
		m.list(l, pad)
	}
}

func inline(el *document.Element) string {
	if el == nil {
		return ""
	}
	switch el.Kind {
	case document.KindText, document.KindTextBlock:
		return escapeMarkdown(el.Text)
	case document.KindMarkup:
		return escapeMarkdown(MarkupText(el.Text))
	case document.KindBold:
		return wrapMark("**", inlineChildren(el))
	case document.KindItalic:
		return wrapMark("_", inlineChildren(el))
	case document.KindLink:
		label := inlineChildren(el)
		if label == "" {
			label = el.URL
		}
		return "[" + label + "](" + el.URL + ")"
	case document.KindDebugDump:
		return escapeMarkdown(el.Label)
	default:
		return inlineChildren(el)
	}
}

func inlineChildren(el *document.Element) string {
	var b strings.Builder
	for _, c := range el.Children {
		b.WriteString(inline(c))
	}
	return b.String()
}

func wrapMark(mark, s string) string {
	if strings.TrimSpace(s) == "" {
		return s
	}
	return mark + s + mark
}

var markdownEscaper = strings.NewReplacer(
	`\`, `\\`,
	"`", "\\`",
	"*", `\*`,
	"_", `\_`,
	"[", `\[`,
	"]", `\]`,
	"<", `\<`,
	">", `\>`,
	"~", `\~`,
)

// escapeMarkdown makes document text render literally: inline markers are
// backslash-escaped, as are block markers at the start of a line.
func escapeMarkdown(s string) string {
	lines := strings.Split(markdownEscaper.Replace(s), "\n")
	for i, l := range lines {
		lines[i] = escapeLineStart(l)
	}
	return strings.Join(lines, "\n")
}

func escapeLineStart(l string) string {
	rest := strings.TrimLeft(l, " ")
	lead := l[:len(l)-len(rest)]
	if rest == "" {
		return l
	}
	switch rest[0] {
	case '#', '-', '+', '=':
		return lead + `\` + rest
	}
	digits := len(rest) - len(strings.TrimLeft(rest, "0123456789"))
	if digits > 0 && digits < len(rest) && (rest[digits] == '.' || rest[digits] == ')') {
		return lead + rest[:digits] + `\` + rest[digits:]
	}
	return l
}

// fenced wraps body in a code fence longer than any backtick run inside it.
func fenced(lang, body string) string {
	longest, run := 0, 0
	for _, r := range body {
		if r != '`' {
			run = 0
			continue
		}
		run++
		longest = max(longest, run)
	}
	fence := strings.Repeat("`", max(3, longest+1))
	return fence + lang + "\n" + body + "\n" + fence
}
