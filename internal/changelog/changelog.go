package changelog

import (
	"context"
)

// Options configures Build.
type Options struct {
	LogFormat LogFormat
	// TitleOverrides replace the default section headings in both the plain
	// and Markdown views. Empty values keep the default.
	TitleOverrides map[Category]string
}

// Build fetches, classifies and renders a changelog. Only a failure to list
// commits is returned as an error.
func Build(ctx context.Context, src Source, opts Options) (*Changelog, error) {
	rng, commits, err := Fetch(ctx, src, opts.LogFormat)
	if err != nil {
		return nil, err
	}
	return Render(rng.Latest, commits, opts.TitleOverrides), nil
}

// Render classifies commits and produces all three views. An empty title
// omits the release heading.
func Render(title string, commits []string, overrides map[Category]string) *Changelog {
	sections := Classify(commits)
	textTitles := DefaultTextTitles().WithOverrides(overrides)
	markdownTitles := DefaultMarkdownTitles().WithOverrides(overrides)

	return &Changelog{
		Title:        title,
		Commits:      commits,
		Sections:     sections,
		Text:         RenderTextString(title, commits),
		Conventional: RenderConventionalString(title, sections, textTitles),
		Markdown:     RenderMarkdownString(title, sections, markdownTitles),
	}
}
