package toc

import (
	"errors"
	"regexp/syntax"
	"strings"
	"testing"
	"time"

	"github.com/dgallion1/doctoc/internal/document"
)

type fakeRecorder struct {
	outcomes []string
	headings []int
}

func (r *fakeRecorder) ObserveTransform(_ time.Duration, headings int, outcome string) {
	r.outcomes = append(r.outcomes, outcome)
	r.headings = append(r.headings, headings)
}

func newDoc(body string, meta map[string]string) *document.Document {
	return &document.Document{Path: "page.html", Body: body, Metadata: meta}
}

func TestTransform_AssignsIDsAndBuildsOutline(t *testing.T) {
	doc := newDoc(`<h1>Intro</h1><p>text</p><h2>Background</h2><h2>Scope</h2><h1>Methods</h1>`,
		map[string]string{"title": "Paper"})
	tr := New(Defaults(), nil, nil)

	res, err := tr.Transform(doc)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Outcome != OutcomeTransformed || res.Headings != 4 {
		t.Fatalf("unexpected result: %+v", res)
	}

	wantBody := `<h1 id="intro">Intro</h1><p>text</p><h2 id="background">Background</h2>` +
		`<h2 id="scope">Scope</h2><h1 id="methods">Methods</h1>`
	if doc.Body != wantBody {
		t.Errorf("unexpected body:\n got: %s\nwant: %s", doc.Body, wantBody)
	}

	wantOutline := `<div id="toc"><ul><li><a class="toc-href" href="#" title="Paper">Paper</a><ul>` +
		`<li><a class="toc-href" href="#intro" title="Intro">Intro</a><ul>` +
		`<li><a class="toc-href" href="#background" title="Background">Background</a></li>` +
		`<li><a class="toc-href" href="#scope" title="Scope">Scope</a></li></ul></li>` +
		`<li><a class="toc-href" href="#methods" title="Methods">Methods</a></li>` +
		`</ul></li></ul></div>`
	if doc.Outline != wantOutline {
		t.Errorf("unexpected outline:\n got: %s\nwant: %s", doc.Outline, wantOutline)
	}
}

func TestTransform_DuplicateHeadings(t *testing.T) {
	doc := newDoc(`<h1>Overview</h1><h1>Overview</h1>`, nil)
	if _, err := New(Defaults(), nil, nil).Transform(doc); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := `<h1 id="overview">Overview</h1><h1 id="overview_1">Overview</h1>`
	if doc.Body != want {
		t.Errorf("expected %s, got %s", want, doc.Body)
	}
}

func TestTransform_IncludeTitleFalse(t *testing.T) {
	doc := newDoc(`<h1>Solo</h1>`, map[string]string{"toc_include_title": "false"})
	if _, err := New(Defaults(), nil, nil).Transform(doc); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := `<div id="toc"><ul><li><a class="toc-href" href="#solo" title="Solo">Solo</a></li></ul></div>`
	if doc.Outline != want {
		t.Errorf("expected %s, got %s", want, doc.Outline)
	}
}

func TestTransform_KeepsExistingIDAndAttributes(t *testing.T) {
	doc := newDoc(`<h2 id="custom" class="lead">Getting Started</h2><h2>custom</h2>`, nil)
	if _, err := New(Defaults(), nil, nil).Transform(doc); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := `<h2 id="custom" class="lead">Getting Started</h2><h2 id="custom_1">custom</h2>`
	if doc.Body != want {
		t.Errorf("expected %s, got %s", want, doc.Body)
	}
}

func TestTransform_NestedTextSkipsComments(t *testing.T) {
	doc := newDoc(`<h2><!-- anchor --><code>Foo</code> bar</h2>`, nil)
	if _, err := New(Defaults(), nil, nil).Transform(doc); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(doc.Body, `id="foo-bar"`) {
		t.Errorf("expected id from descendant text, got %s", doc.Body)
	}
	if !strings.Contains(doc.Outline, `title="Foo bar"`) {
		t.Errorf("expected comment-free title, got %s", doc.Outline)
	}
}

func TestTransform_EmptyHeadingGetsGeneratedID(t *testing.T) {
	doc := newDoc(`<h2></h2><h2>   </h2>`, nil)
	if _, err := New(Defaults(), nil, nil).Transform(doc); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := `<h2 id="_1"></h2><h2 id="_2">   </h2>`
	if doc.Body != want {
		t.Errorf("expected %s, got %s", want, doc.Body)
	}
}

func TestTransform_CustomPatternLimitsLevels(t *testing.T) {
	doc := newDoc(`<h1>Top</h1><h2>Mid</h2><h3>Low</h3>`, map[string]string{"toc_headers": "^h[12]$"})
	res, err := New(Defaults(), nil, nil).Transform(doc)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Headings != 2 {
		t.Fatalf("expected 2 headings, got %d", res.Headings)
	}
	if strings.Contains(doc.Body, `<h3 id=`) {
		t.Errorf("expected h3 to stay untouched, got %s", doc.Body)
	}
}

func TestTransform_NonHeadingMatchesIgnored(t *testing.T) {
	// "h" also matches <header> and <hr>; only h1-h6 carry a level.
	doc := newDoc(`<header>Site</header><hr/><h3>Real</h3>`, map[string]string{"toc_headers": "h"})
	res, err := New(Defaults(), nil, nil).Transform(doc)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Headings != 1 {
		t.Fatalf("expected 1 heading, got %d", res.Headings)
	}
	if strings.Contains(doc.Body, `<header id=`) {
		t.Errorf("expected header element untouched, got %s", doc.Body)
	}
}

func TestTransform_NoHeadingsLeavesBody(t *testing.T) {
	body := `<p>Just <b>text</b></p>`
	doc := newDoc(body, nil)
	rec := &fakeRecorder{}
	res, err := New(Defaults(), nil, rec).Transform(doc)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Outcome != OutcomeNoHeadings {
		t.Errorf("expected outcome %q, got %q", OutcomeNoHeadings, res.Outcome)
	}
	if doc.Body != body || doc.HasOutline() {
		t.Errorf("expected document unchanged, got body=%q outline=%q", doc.Body, doc.Outline)
	}
	if len(rec.outcomes) != 1 || rec.outcomes[0] != OutcomeNoHeadings {
		t.Errorf("expected one no_headings observation, got %v", rec.outcomes)
	}
}

func TestTransform_Disabled(t *testing.T) {
	tests := []struct {
		name string
		site Options
		meta map[string]string
	}{
		{"metadata false", Defaults(), map[string]string{"toc_run": "false"}},
		{"metadata not exactly true", Defaults(), map[string]string{"toc_run": "True"}},
		{"site disabled", Options{Enabled: false, Headers: DefaultHeaders}, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			body := `<h1>Intro</h1>`
			doc := newDoc(body, tt.meta)
			res, err := New(tt.site, nil, nil).Transform(doc)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if res.Outcome != OutcomeSkipped {
				t.Errorf("expected skipped, got %q", res.Outcome)
			}
			if doc.Body != body || doc.HasOutline() {
				t.Errorf("expected document unchanged")
			}
		})
	}
}

func TestTransform_MetadataEnablesOverSiteDefault(t *testing.T) {
	site := Options{Enabled: false, Headers: DefaultHeaders}
	doc := newDoc(`<h1>Intro</h1>`, map[string]string{"toc_run": "true"})
	res, err := New(site, nil, nil).Transform(doc)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Outcome != OutcomeTransformed {
		t.Fatalf("expected transformed, got %q", res.Outcome)
	}
}

func TestTransform_StaticPassThrough(t *testing.T) {
	doc := &document.Document{Path: "logo.png", Body: "<h1>not really</h1>", Static: true}
	res, err := New(Defaults(), nil, nil).Transform(doc)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Outcome != OutcomeSkipped || doc.Body != "<h1>not really</h1>" || doc.HasOutline() {
		t.Errorf("expected static document untouched, got %+v", doc)
	}
}

func TestTransform_InvalidPattern(t *testing.T) {
	body := `<h1>Intro</h1>`
	doc := newDoc(body, map[string]string{"toc_headers": "^h[1-6"})
	rec := &fakeRecorder{}
	res, err := New(Defaults(), nil, rec).Transform(doc)
	if err == nil {
		t.Fatal("expected pattern error")
	}
	var pe *PatternError
	if !errors.As(err, &pe) {
		t.Fatalf("expected *PatternError, got %T", err)
	}
	if pe.Pattern != "^h[1-6" || pe.Path != "page.html" {
		t.Errorf("unexpected error fields: %+v", pe)
	}
	if !strings.Contains(err.Error(), `"^h[1-6"`) {
		t.Errorf("expected message to name the pattern, got %q", err.Error())
	}
	var syntaxErr *syntax.Error
	if !errors.As(err, &syntaxErr) {
		t.Errorf("expected wrapped regexp error")
	}
	if res.Outcome != OutcomeFailed || rec.outcomes[0] != OutcomeFailed {
		t.Errorf("expected failed outcome, got %q / %v", res.Outcome, rec.outcomes)
	}
	if doc.Body != body || doc.HasOutline() {
		t.Errorf("expected document unchanged on error")
	}
}

func TestTransform_FreshStatePerDocument(t *testing.T) {
	tr := New(Defaults(), nil, nil)
	for i := 0; i < 2; i++ {
		doc := newDoc(`<h1>Intro</h1>`, nil)
		if _, err := tr.Transform(doc); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if doc.Body != `<h1 id="intro">Intro</h1>` {
			t.Errorf("run %d: expected unsuffixed id, got %s", i, doc.Body)
		}
	}
}

func TestTransform_DefaultRootTitle(t *testing.T) {
	doc := newDoc(`<h1>Intro</h1>`, nil)
	if _, err := New(Defaults(), nil, nil).Transform(doc); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(doc.Outline, `title="Title"`) {
		t.Errorf("expected default root title, got %s", doc.Outline)
	}
}

func TestHeadings(t *testing.T) {
	hs, err := Headings(`<h2 id="a">A</h2><div><h5>B</h5></div><h3>C</h3>`, Defaults())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []Heading{{Level: 2, Text: "A", ExistingID: "a"}, {Level: 5, Text: "B"}, {Level: 3, Text: "C"}}
	if len(hs) != len(want) {
		t.Fatalf("expected %d headings, got %d", len(want), len(hs))
	}
	for i := range want {
		if hs[i].Level != want[i].Level || hs[i].Text != want[i].Text || hs[i].ExistingID != want[i].ExistingID {
			t.Errorf("heading %d: expected %+v, got %+v", i, want[i], hs[i])
		}
	}
}

func TestResolve(t *testing.T) {
	site := Options{Enabled: true, Headers: "^h[23]", IncludeTitle: false}
	got := Resolve(site, map[string]string{"toc_include_title": "true", "toc_headers": "^h1"})
	want := Options{Enabled: true, Headers: "^h1", IncludeTitle: true}
	if got != want {
		t.Errorf("expected %+v, got %+v", want, got)
	}
	if Resolve(site, nil) != site {
		t.Errorf("expected site options without metadata")
	}
}

func TestValidate(t *testing.T) {
	if err := Validate(Defaults()); err != nil {
		t.Errorf("expected default pattern to compile: %v", err)
	}
	err := Validate(Options{Headers: "("})
	if !IsPatternError(err) {
		t.Errorf("expected pattern error, got %v", err)
	}
}
