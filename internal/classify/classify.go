// Package classify matches compiled pattern rules against page text to
// produce topical and geographic tags for a lead.
package classify

import "regexp"

// Rule maps a tag label to the pattern that triggers it. Rules are static,
// compiled once at load time, and never mutated afterwards. A pattern that
// fails to compile is a startup-time panic, never a per-request failure.
type Rule struct {
	Label   string
	Pattern *regexp.Regexp
}

// Classifier applies a fixed rule set to text. Rules are independent and
// additive: a text may match zero, one, or many rules.
type Classifier struct {
	rules []Rule
}

// New creates a classifier with the given rules.
func New(rules []Rule) *Classifier {
	return &Classifier{rules: rules}
}

// Default returns a classifier loaded with the built-in rule corpus.
func Default() *Classifier {
	return New(DefaultRules())
}

// Classify returns the labels of all rules whose pattern matches anywhere in
// text. Each matching label appears exactly once; no ordering is guaranteed
// beyond rule declaration order.
func (c *Classifier) Classify(text string) []string {
	tags := make([]string, 0, 4)
	for _, r := range c.rules {
		if r.Pattern.MatchString(text) {
			tags = append(tags, r.Label)
		}
	}
	return tags
}

func rule(label, pattern string) Rule {
	return Rule{Label: label, Pattern: regexp.MustCompile(`(?i)` + pattern)}
}

// DefaultRules is the built-in topical and geographic rule corpus.
func DefaultRules() []Rule {
	return []Rule{
		rule("Women in STEM", `women in stem`),
		rule("Africa", `africa`),
		rule("Corporate", `\.com.*(career|about)`),
		rule("University", `\.edu|university|college`),
		rule("Mentor", `\bmentor\b`),
		rule("Mentorship Program", `mentor(?:ing|ship) program|coaching cohort|career mentor`),
		rule("Youth Mentorship", `youth mentor|student mentor|STEM mentor|STEM outreach`),
		rule("Climate Change", `climate change|global warming|net ?zero|decarbon`),
		rule("Sustainability", `sustainab|\bESG\b|green energy|renewable`),

		// Investor detection
		rule("Venture Capital", `venture capital|VC firm|\bVC\b|venture partner|investment fund`),
		rule("Angel Investor", `angel investor|angel group|accredited investor|private investor`),
		rule("Startup Funding", `startup funding|seed funding|series [ABC]|pre-seed|funding round`),
		rule("Investment Firm", `investment firm|capital partners|equity partners|growth capital`),
		rule("Female Investor", `female investor|women investor|diversity fund|female-led fund`),
		rule("Tech Investor", `tech investor|technology fund|software investor|AI investor|fintech`),
		rule("Grant Provider", `grant program|foundation grant|startup grant|entrepreneur grant`),
		rule("Accelerator", `accelerator|incubator|startup program|entrepreneur program`),
		rule("Corporate VC", `corporate venture|strategic investor|corporate fund|CVC`),
		rule("Impact Investor", `impact invest|social impact|ESG invest|sustainable invest`),

		// Geographic detection
		rule("San Francisco", `san francisco|SF bay area|silicon valley|palo alto|menlo park`),
		rule("New York", `new york|NYC|manhattan|brooklyn|wall street`),
		rule("Boston", `boston|cambridge|massachusetts|MIT|harvard`),
		rule("Los Angeles", `los angeles|\bLA\b|hollywood|santa monica|beverly hills`),
		rule("Seattle", `seattle|bellevue|redmond|washington state`),
		rule("Austin", `austin|texas tech|south by southwest|SXSW`),
		rule("Chicago", `chicago|illinois|windy city`),
		rule("London", `london|\bUK\b|united kingdom|england|british`),
		rule("Toronto", `toronto|canada|canadian|ontario`),
		rule("Berlin", `berlin|germany|german|deutschland`),
		rule("Tel Aviv", `tel aviv|israel|israeli`),
		rule("Singapore", `singapore|asia pacific|APAC`),
		rule("India", `india|bangalore|mumbai|delhi|indian`),
		rule("Remote/Global", `remote|global|worldwide|international|distributed team`),
	}
}
