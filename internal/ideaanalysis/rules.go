package ideaanalysis

import "strings"

// Keyword sets. Matching is case-insensitive and unanchored, so "ai" also
// fires on words such as "email" or "chain".
var (
	technologyKeywords        = []string{"tech", "software", "ai"}
	projectManagementKeywords = []string{"project management", "jira", "agile"}
	atlassianKeywords         = []string{"jira", "confluence", "atlassian"}
	aiKeywords                = []string{"ai", "artificial intelligence"}
	saasKeywords              = []string{"saas", "platform", "software"}
)

type ideaText struct {
	description string
	industry    string
}

func newIdeaText(sub IdeaSubmission) ideaText {
	return ideaText{
		description: strings.ToLower(sub.Description),
		industry:    strings.ToLower(strings.TrimSpace(sub.Industry)),
	}
}

func (t ideaText) describes(keywords ...string) bool {
	for _, k := range keywords {
		if strings.Contains(t.description, k) {
			return true
		}
	}
	return false
}

func (t ideaText) isTechnology() bool {
	return t.industry == "technology" || t.describes(technologyKeywords...)
}

func (t ideaText) isProjectManagement() bool {
	return t.isTechnology() && t.describes(projectManagementKeywords...)
}

type rule struct {
	Template TemplateID
	Matches  func(ideaText) bool
}

// rules is evaluated top-down; the first matching rule picks the template.
// The last rule always matches.
var rules = []rule{
	{
		Template: TemplateAtlassianAlternative,
		Matches: func(t ideaText) bool {
			return t.isProjectManagement() && t.describes(atlassianKeywords...)
		},
	},
	{
		Template: TemplateProjectManagement,
		Matches:  ideaText.isProjectManagement,
	},
	{
		Template: TemplateAITechnology,
		Matches: func(t ideaText) bool {
			return t.isTechnology() && t.describes(aiKeywords...)
		},
	},
	{
		Template: TemplateSaaSTechnology,
		Matches: func(t ideaText) bool {
			return t.isTechnology() && t.describes(saasKeywords...)
		},
	},
	{
		Template: TemplateGenericIndustry,
		Matches:  func(ideaText) bool { return true },
	},
}

// Classify returns the template the rule table selects for sub. Defaults are
// applied before matching, exactly as Synthesize does.
func Classify(sub IdeaSubmission) TemplateID {
	return classify(rules, newIdeaText(withDefaults(sub)))
}

func classify(table []rule, t ideaText) TemplateID {
	for _, r := range table {
		if r.Matches(t) {
			return r.Template
		}
	}
	return TemplateGenericIndustry
}

func withDefaults(sub IdeaSubmission) IdeaSubmission {
	if strings.TrimSpace(sub.Title) == "" {
		sub.Title = DefaultTitle
	}
	if strings.TrimSpace(sub.Description) == "" {
		sub.Description = DefaultDescription
	}
	if strings.TrimSpace(sub.Industry) == "" {
		sub.Industry = DefaultIndustry
	}
	return sub
}
