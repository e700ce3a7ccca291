package service

import (
	"fmt"
	"strings"

	"github.com/okian/gobu/internal/domain/flags"
	"github.com/okian/gobu/pkg/metrics"
)

// Help renders help for a command ("talents firstgen") or a category
// ("Pets", matched exactly). An unknown topic gets a short text.
func (s *Service) Help(topic string) Reply {
	topic = strings.TrimSpace(topic)
	for _, cat := range s.categories {
		if cat.name == topic {
			return Reply{Command: "help", Pages: s.categoryPages(cat), Outcome: metrics.OutcomeOK}
		}
	}
	cmd, rest := s.route(topic)
	if cmd == nil || rest != "" {
		return Reply{Command: "help", Text: textUnknownHelpTopic, Outcome: metrics.OutcomeEmpty}
	}
	return Reply{Command: "help", Pages: []string{s.commandHelp(cmd)}, Outcome: metrics.OutcomeOK}
}

// helpPages is the full help: each category's overview followed by its
// commands.
func (s *Service) helpPages() []string {
	var pages []string
	for _, cat := range s.categories {
		pages = append(pages, s.categoryPages(cat)...)
	}
	return pages
}

func (s *Service) categoryPages(cat category) []string {
	var lines []string
	for _, c := range cat.commands {
		lines = append(lines, treeLines(c, "")...)
	}
	overview := fmt.Sprintf("**%s**\n%s\n\n%s\n\ntap the buttons to view info on all commands\n"+
		"type %shelp <command> for more information on a specific command.",
		cat.name, cat.doc, strings.Join(lines, "\n"), s.prefix)

	pages := []string{overview}
	for _, c := range cat.commands {
		pages = append(pages, s.commandHelp(c))
	}
	return pages
}

func treeLines(c *command, branch string) []string {
	lines := []string{fmt.Sprintf("%s`%s`: %s", branch, c.qualified(), c.shortDoc())}
	for i, sub := range c.subs {
		b := "├"
		if i == len(c.subs)-1 {
			b = "└"
		}
		lines = append(lines, treeLines(sub, b)...)
	}
	return lines
}

// commandHelp renders one command's page: signature, description,
// aliases, flags, subcommands and examples.
func (s *Service) commandHelp(c *command) string {
	var b strings.Builder
	fmt.Fprintf(&b, "**%s%s %s**\n%s", s.prefix, c.qualified(), c.usage, c.doc)

	if len(c.aliases) > 1 {
		wrapped := make([]string, len(c.aliases))
		for i, a := range c.aliases {
			wrapped[i] = "`" + a + "`"
		}
		fmt.Fprintf(&b, "\n\n**Aliases**\n%s", naturalJoin(wrapped))
	}

	if c.flags != nil {
		b.WriteString("\n\n**Flags**")
		for _, f := range c.flags.Flags {
			b.WriteString("\n" + flagLine(f))
		}
	}

	if len(c.subs) > 0 {
		b.WriteString("\n\n**Subcommands**")
		for _, sub := range c.subs {
			fmt.Fprintf(&b, "\n`%s`: %s", sub.qualified(), sub.shortDoc())
		}
	}

	examples := append([]string(nil), c.examples...)
	for _, sub := range c.subs {
		examples = append(examples, sub.examples...)
	}
	if len(examples) > 0 {
		title := "Example"
		if len(examples) > 1 {
			title += "s"
		}
		fmt.Fprintf(&b, "\n\n**%s**", title)
		for _, e := range examples {
			b.WriteString("\n" + s.prefix + e)
		}
	}

	if len(c.subs) > 0 {
		fmt.Fprintf(&b, "\n\ntype %shelp <subcommand> for more information on a specific subcommand.", s.prefix)
	}
	return b.String()
}

func flagLine(f flags.Flag) string {
	var brief []string
	if f.Kind == flags.KindBool && !f.NoHint {
		brief = append(brief, "true/false.")
	}
	brief = append(brief, f.Description)
	switch {
	case f.MaxArgs == flags.Variadic:
		brief = append(brief, "(variadic)")
	case f.MaxArgs != 1:
		brief = append(brief, fmt.Sprintf("(limited to %d times)", f.MaxArgs))
	}
	return fmt.Sprintf("`%s:` %s", f.Name, strings.Join(brief, " "))
}

// naturalJoin joins words as "a, b & c".
func naturalJoin(words []string) string {
	switch len(words) {
	case 0:
		return ""
	case 1:
		return words[0]
	default:
		return strings.Join(words[:len(words)-1], ", ") + " & " + words[len(words)-1]
	}
}
