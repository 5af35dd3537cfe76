package catalog

import "fmt"

// Severity grades a lint finding.
type Severity string

const (
	SeverityWarning Severity = "warning"
	SeverityInfo    Severity = "info"
)

// Finding is an authoring problem that does not prevent indexing.
type Finding struct {
	Severity Severity
	Category string
	Tag      string
	Message  string
}

func (f Finding) String() string {
	loc := f.Category
	if f.Tag != "" {
		loc += " / " + f.Tag
	}
	return fmt.Sprintf("%s: %s: %s", f.Severity, loc, f.Message)
}

// Lint reports authoring mistakes the engine tolerates at runtime.
func Lint(ix *Index) []Finding {
	var out []Finding

	owners := make(map[string]string)
	for _, cat := range ix.Categories() {
		if !cat.Type().Known() {
			out = append(out, Finding{
				Severity: SeverityWarning,
				Category: cat.Name(),
				Message:  fmt.Sprintf("unknown type %q; clicks in this category are ignored", cat.Type()),
			})
		}
		if !cat.Requirement().Known() {
			out = append(out, Finding{
				Severity: SeverityWarning,
				Category: cat.Name(),
				Message:  fmt.Sprintf("unknown requirement %q", cat.Requirement()),
			})
		}

		seen := make(map[string]bool)
		hasMain := false
		for _, spec := range cat.Specs() {
			if spec.Main {
				hasMain = true
			}
			for _, name := range spec.Name {
				if seen[name] {
					out = append(out, Finding{
						Severity: SeverityWarning,
						Category: cat.Name(),
						Tag:      name,
						Message:  "name declared more than once; the last declaration wins",
					})
				}
				seen[name] = true
			}

			main := spec.MainName()
			if prev, ok := owners[main]; ok && prev != cat.Name() {
				out = append(out, Finding{
					Severity: SeverityInfo,
					Category: cat.Name(),
					Tag:      main,
					Message:  fmt.Sprintf("main name also declared in %q; free text resolves it by position", prev),
				})
			} else if !ok {
				owners[main] = cat.Name()
			}

			for _, req := range spec.RequiredTag {
				if _, ok := cat.Tag(req); !ok {
					out = append(out, Finding{
						Severity: SeverityWarning,
						Category: cat.Name(),
						Tag:      main,
						Message:  fmt.Sprintf("required tag %q is not declared in this category", req),
					})
				}
			}
			if len(spec.RequiredTag) > 0 && cat.Type() == TypeSingle {
				out = append(out, Finding{
					Severity: SeverityInfo,
					Category: cat.Name(),
					Tag:      main,
					Message:  "required tags are not applied in single categories",
				})
			}
		}

		if cat.Requirement() == RequireAtLeastOneMain && !hasMain {
			out = append(out, Finding{
				Severity: SeverityWarning,
				Category: cat.Name(),
				Message:  "requires a main tag but declares none",
			})
		}
	}
	return out
}
