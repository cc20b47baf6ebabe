package validation

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/jonathan/cv-builder/internal/types"
)

var (
	// tokenPattern matches \begin{env}, \end{env} and \item in source order
	tokenPattern   = regexp.MustCompile(`\\(begin|end)\{([^}]*)\}|\\item\b`)
	sectionPattern = regexp.MustCompile(`\\(?:section|ecvsection)\{(.*)\}`)
)

// listEnvironments must contain at least one \item
var listEnvironments = map[string]bool{
	"itemize":     true,
	"enumerate":   true,
	"description": true,
}

// openEnvironment is a \begin waiting for its \end
type openEnvironment struct {
	name    string
	line    int
	section string
	items   int
}

// structureChecker walks a document line by line, tracking the section each
// problem appears in.
type structureChecker struct {
	violations []types.Violation
	section    string
	depth      int
	openLine   []int
	envs       []openEnvironment
	shell      struct {
		class, begin, end bool
	}
}

// CheckStructure reports structural problems that keep a document from
// compiling: unbalanced braces, mismatched \begin/\end pairs, a missing
// document shell and list environments without items.
func CheckStructure(content string) []types.Violation {
	c := &structureChecker{}
	for i, raw := range strings.Split(content, "\n") {
		c.line(i+1, stripComment(raw))
	}
	c.finish()
	return c.violations
}

func (c *structureChecker) add(kind, severity, details string, line int, section string) {
	v := types.Violation{
		Type:     kind,
		Severity: severity,
		Details:  details,
	}
	if line > 0 {
		v.LineNumber = intPtr(line)
	}
	if section != "" {
		v.AffectedSections = []string{section}
	}
	c.violations = append(c.violations, v)
}

func (c *structureChecker) line(num int, line string) {
	if m := sectionPattern.FindStringSubmatch(line); m != nil {
		c.section = m[1]
	}

	c.braces(num, line)

	if strings.Contains(line, `\documentclass`) {
		c.shell.class = true
	}

	for _, m := range tokenPattern.FindAllStringSubmatch(line, -1) {
		if m[1] == "" {
			if len(c.envs) > 0 {
				c.envs[len(c.envs)-1].items++
			}
			continue
		}
		name := m[2]
		if m[1] == "begin" {
			if name == "document" {
				c.shell.begin = true
			}
			c.envs = append(c.envs, openEnvironment{name: name, line: num, section: c.section})
			continue
		}
		if name == "document" {
			c.shell.end = true
		}
		c.closeEnvironment(num, name)
	}
}

// braces tracks { } depth, skipping escaped characters
func (c *structureChecker) braces(num int, line string) {
	for i := 0; i < len(line); i++ {
		switch line[i] {
		case '\\':
			i++
		case '{':
			c.depth++
			c.openLine = append(c.openLine, num)
		case '}':
			if c.depth == 0 {
				c.add(types.ViolationUnbalancedBraces, types.SeverityError,
					fmt.Sprintf("Line %d closes a brace that was never opened", num), num, c.section)
				continue
			}
			c.depth--
			c.openLine = c.openLine[:len(c.openLine)-1]
		}
	}
}

func (c *structureChecker) closeEnvironment(num int, name string) {
	if len(c.envs) == 0 {
		c.add(types.ViolationEnvironment, types.SeverityError,
			fmt.Sprintf(`Line %d has \end{%s} without a matching \begin`, num, name), num, c.section)
		return
	}

	top := c.envs[len(c.envs)-1]
	if top.name != name {
		c.add(types.ViolationEnvironment, types.SeverityError,
			fmt.Sprintf(`Line %d has \end{%s} but \begin{%s} from line %d is still open`, num, name, top.name, top.line), num, c.section)
		return
	}

	c.envs = c.envs[:len(c.envs)-1]
	if listEnvironments[name] && top.items == 0 {
		c.add(types.ViolationEmptyEnvironment, types.SeverityError,
			fmt.Sprintf("The %s environment opened on line %d has no items", name, top.line), top.line, top.section)
	}
}

func (c *structureChecker) finish() {
	if c.depth > 0 {
		c.add(types.ViolationUnbalancedBraces, types.SeverityError,
			fmt.Sprintf("%d brace(s) left open, the first on line %d", c.depth, c.openLine[0]), c.openLine[0], "")
	}
	for _, env := range c.envs {
		c.add(types.ViolationEnvironment, types.SeverityError,
			fmt.Sprintf(`\begin{%s} on line %d is never closed`, env.name, env.line), env.line, env.section)
	}

	var missing []string
	if !c.shell.class {
		missing = append(missing, `\documentclass`)
	}
	if !c.shell.begin {
		missing = append(missing, `\begin{document}`)
	}
	if !c.shell.end {
		missing = append(missing, `\end{document}`)
	}
	if len(missing) > 0 {
		c.add(types.ViolationMissingShell, types.SeverityError,
			"Document is missing "+strings.Join(missing, ", "), 0, "")
	}
}
