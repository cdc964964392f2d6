package changelog

import (
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
)

func commitLineGen() gopter.Gen {
	prefixGen := gen.OneConstOf(
		"feat", "feature", "fix", "bugfix", "chore", "build", "refactor",
		"format", "test", "tests", "docs", "doc", "Feat", "wip", "",
	)
	ticketGen := gen.OneConstOf("", "(JRA-1)", "(core)", "()")
	sepGen := gen.OneConstOf(":", " :", "  :", " ", "")
	return gopter.CombineGens(prefixGen, ticketGen, sepGen, gen.AlphaString()).
		Map(func(v []any) string {
			return v[0].(string) + v[1].(string) + v[2].(string) + " " + v[3].(string)
		})
}

// TestPropertyClassifyTotality verifies every commit lands in exactly one
// category.
func TestPropertyClassifyTotality(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200
	properties := gopter.NewProperties(parameters)

	properties.Property("entry count equals commit count", prop.ForAll(
		func(commits []string) bool {
			return Classify(commits).Count() == len(commits)
		},
		gen.SliceOf(commitLineGen()),
	))

	properties.Property("arbitrary text never panics and is classified", prop.ForAll(
		func(line string) bool {
			r := Parse(line)
			for _, c := range Categories() {
				if c == r.Category {
					return true
				}
			}
			return false
		},
		gen.AnyString(),
	))

	properties.Property("unmatched lines keep their text", prop.ForAll(
		func(line string) bool {
			r := Parse(line)
			if r.Category != Other {
				return true
			}
			return r.Message == Capitalize(line)
		},
		commitLineGen(),
	))

	properties.TestingRun(t)
}

// TestPropertyRenderIdempotence verifies rendering the same sections twice
// yields identical bytes.
func TestPropertyRenderIdempotence(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 100
	properties := gopter.NewProperties(parameters)

	properties.Property("sectioned views are stable", prop.ForAll(
		func(commits []string) bool {
			s := Classify(commits)
			text := DefaultTextTitles()
			md := DefaultMarkdownTitles()
			return RenderConventionalString("v1", s, text) == RenderConventionalString("v1", s, text) &&
				RenderMarkdownString("v1", s, md) == RenderMarkdownString("v1", s, md)
		},
		gen.SliceOf(commitLineGen()),
	))

	properties.Property("input order across categories does not change output", prop.ForAll(
		func(a, b string) bool {
			ra, rb := Parse(a), Parse(b)
			if ra.Category == rb.Category {
				return true
			}
			titles := DefaultTextTitles()
			return RenderConventionalString("", Classify([]string{a, b}), titles) ==
				RenderConventionalString("", Classify([]string{b, a}), titles)
		},
		commitLineGen(),
		commitLineGen(),
	))

	properties.TestingRun(t)
}
