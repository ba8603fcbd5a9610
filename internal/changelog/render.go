package changelog

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path"
	"strings"
	"text/template"
	"time"
	"unicode/utf8"
)

// Fragment names. MainFragment is the entry point; it composes the others.
const (
	MainFragment      = "main"
	HeaderFragment    = "header"
	CommitFragment    = "commit"
	NoteFragment      = "note"
	NoteGroupFragment = "note-group"
	FooterFragment    = "footer"
)

// FragmentExt is the file extension of a fragment file.
const FragmentExt = ".tmpl"

// Fragments returns every fragment a renderer requires, main first.
func Fragments() []string {
	return []string{MainFragment, HeaderFragment, CommitFragment, NoteFragment, NoteGroupFragment, FooterFragment}
}

// TemplateError reports a fragment that could not be loaded or parsed.
// Loading happens before any commit is processed, so it is always fatal.
type TemplateError struct {
	Fragment string
	Path     string
	Err      error
}

func (e *TemplateError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("template fragment %q (%s): %v", e.Fragment, e.Path, e.Err)
	}
	return fmt.Sprintf("template fragment %q: %v", e.Fragment, e.Err)
}

func (e *TemplateError) Unwrap() error {
	return e.Err
}

// IsTemplateError reports whether err is or wraps a TemplateError.
func IsTemplateError(err error) bool {
	var te *TemplateError
	return errors.As(err, &te)
}

// Renderer executes the fragment set against a Context.
// It is safe for concurrent use; each render works on a clone.
type Renderer struct {
	tmpl *template.Template
	now  func() time.Time
}

// RendererOption configures a Renderer.
type RendererOption func(*Renderer)

// WithClock sets the time source used when no release date is known.
func WithClock(now func() time.Time) RendererOption {
	return func(r *Renderer) {
		if now != nil {
			r.now = now
		}
	}
}

// LoadRenderer loads the fragments from dir, or the embedded defaults when
// dir is empty. Every fragment must be present in dir.
func LoadRenderer(dir string, opts ...RendererOption) (*Renderer, error) {
	if dir == "" {
		return NewRenderer(EmbeddedTemplates(), opts...)
	}
	info, err := os.Stat(dir)
	if err != nil {
		return nil, &TemplateError{Fragment: MainFragment, Path: dir, Err: err}
	}
	if !info.IsDir() {
		return nil, &TemplateError{Fragment: MainFragment, Path: dir, Err: fmt.Errorf("not a directory")}
	}
	return NewRenderer(os.DirFS(dir), opts...)
}

// NewRenderer parses every fragment from fsys. Fragment files are UTF-8
// text; one trailing newline is dropped from each.
func NewRenderer(fsys fs.FS, opts ...RendererOption) (*Renderer, error) {
	r := &Renderer{now: time.Now}
	for _, opt := range opts {
		opt(r)
	}

	root := template.New(MainFragment).Funcs(placeholderFuncs())
	for _, name := range Fragments() {
		file := name + FragmentExt
		data, err := fs.ReadFile(fsys, file)
		if err != nil {
			return nil, &TemplateError{Fragment: name, Path: file, Err: err}
		}
		if !utf8.Valid(data) {
			return nil, &TemplateError{Fragment: name, Path: file, Err: fmt.Errorf("not valid UTF-8")}
		}

		text := strings.TrimSuffix(string(data), "\n")
		t := root
		if name != MainFragment {
			t = root.New(name)
		}
		if _, err := t.Parse(text); err != nil {
			return nil, &TemplateError{Fragment: name, Path: file, Err: err}
		}
		logDebug("[render] loaded fragment %s (%d bytes)", name, len(data))
	}

	r.tmpl = root
	return r, nil
}

// Render writes the entry for ctx to w.
func (r *Renderer) Render(w io.Writer, ctx *Context) error {
	if ctx == nil {
		return fmt.Errorf("render context is nil")
	}

	t, err := r.tmpl.Clone()
	if err != nil {
		return fmt.Errorf("cloning templates: %w", err)
	}
	t.Funcs(r.funcs(ctx))

	if err := t.ExecuteTemplate(w, MainFragment, ctx); err != nil {
		return fmt.Errorf("executing templates: %w", err)
	}
	return nil
}

// RenderString is a convenience wrapper around Render.
func (r *Renderer) RenderString(ctx *Context) (string, error) {
	var b strings.Builder
	if err := r.Render(&b, ctx); err != nil {
		return "", err
	}
	return b.String(), nil
}

// ReleaseDate resolves the date of the release being rendered:
// NextRelease.Date, then Date, then the current time.
func (r *Renderer) ReleaseDate(ctx *Context) time.Time {
	switch {
	case !ctx.NextRelease.Date.IsZero():
		return ctx.NextRelease.Date
	case !ctx.Date.IsZero():
		return ctx.Date
	default:
		return r.now()
	}
}

// FormatDate formats ts as "YYYY-MM-DD" for the "iso" format and as an
// RFC 3339 timestamp for anything else.
func FormatDate(ts time.Time, format string) string {
	if format == "iso" {
		return ts.Format(time.DateOnly)
	}
	return ts.Format(time.RFC3339)
}

// funcs builds the helper set bound to one render context.
func (r *Renderer) funcs(ctx *Context) template.FuncMap {
	base := strings.TrimSuffix(ctx.Repository.URL, "/")
	return template.FuncMap{
		// formatDate "iso" uses the release date; an explicit non-zero
		// timestamp argument takes precedence over it.
		"formatDate": func(format string, ts ...time.Time) string {
			for _, t := range ts {
				if !t.IsZero() {
					return FormatDate(t, format)
				}
			}
			return FormatDate(r.ReleaseDate(ctx), format)
		},
		"compareURL": func(prev, cur string) string {
			if base == "" || prev == "" || cur == "" {
				return ""
			}
			return base + "/compare/" + prev + "..." + cur
		},
		"issueURL": func(id string) string {
			if base == "" || id == "" {
				return ""
			}
			return base + "/issues/" + id
		},
		"userURL": func(user string) string {
			host := hostOf(base)
			user = strings.TrimPrefix(user, "@")
			if host == "" || user == "" {
				return ""
			}
			return host + "/" + user
		},
		"indent": indent,
	}
}

// placeholderFuncs declares the helper names so fragments parse; the real
// implementations are bound per render.
func placeholderFuncs() template.FuncMap {
	return template.FuncMap{
		"formatDate": func(string, ...time.Time) string { return "" },
		"compareURL": func(string, string) string { return "" },
		"issueURL":   func(string) string { return "" },
		"userURL":    func(string) string { return "" },
		"indent":     indent,
	}
}

// indent prefixes every non-empty line of s with n spaces.
func indent(n int, s string) string {
	pad := strings.Repeat(" ", n)
	lines := strings.Split(strings.TrimRight(s, "\n"), "\n")
	for i, l := range lines {
		if l != "" {
			lines[i] = pad + l
		}
	}
	return strings.Join(lines, "\n")
}

// hostOf returns scheme and host of a base URL such as
// "https://github.com/o/r" -> "https://github.com".
func hostOf(base string) string {
	scheme, rest, ok := strings.Cut(base, "://")
	if !ok {
		return ""
	}
	host, _, _ := strings.Cut(rest, "/")
	if host == "" {
		return ""
	}
	return scheme + "://" + host
}

// NewRepository splits a base URL into owner and name.
func NewRepository(baseURL string) Repository {
	repo := Repository{URL: strings.TrimSuffix(baseURL, "/")}
	_, rest, ok := strings.Cut(repo.URL, "://")
	if !ok {
		return repo
	}
	parts := strings.Split(rest, "/")
	if len(parts) >= 3 {
		repo.Owner = parts[1]
		repo.Name = path.Base(repo.URL)
	}
	return repo
}
