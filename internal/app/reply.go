package service

import (
	"fmt"
	"strings"

	"github.com/okian/gobu/internal/domain/failure"
	"github.com/okian/gobu/internal/domain/model"
	"github.com/okian/gobu/pkg/metrics"
)

// Reply is the transport-neutral answer to one command.
type Reply struct {
	// Command is the qualified name of the command that ran, e.g.
	// "talents prioritise". Empty when no command matched.
	Command string
	// Pages holds paginated output. Start is the page to open on.
	Pages []string
	Start int
	// Text is a single plain message, used for errors and soft empties.
	Text string
	// ShowHelp asks the transport to offer the command's help.
	ShowHelp bool
	// Outcome is the metrics label of the reply.
	Outcome string
}

// Silent reports that nothing should be sent.
func (r Reply) Silent() bool { return r.Text == "" && len(r.Pages) == 0 }

// Fixed replies.
const (
	textNoPetsWithFlags  = "no pets found with those flags"
	textNoTalents        = "no talents found"
	textNoHybrids        = "no hybrids for this pet"
	textUnknownHelpTopic = "dont have a command like that"
	suggestLimit         = 3
)

// MentionText answers a bare mention of the bot.
func MentionText(prefix string) string {
	return fmt.Sprintf("my prefix is `%s` or you can mention me", prefix)
}

func pagesReply(cmd string, pages []string) Reply {
	return Reply{Command: cmd, Pages: pages, Outcome: metrics.OutcomeOK}
}

func emptyReply(cmd, text string) Reply {
	return Reply{Command: cmd, Text: text, Outcome: metrics.OutcomeEmpty}
}

// failureReply turns a query failure into user text. Errors that are not
// failures are internal and get no text.
func (s *Service) failureReply(cmd string, err error) Reply {
	f, ok := failure.As(err)
	if !ok {
		return Reply{Command: cmd, Outcome: metrics.OutcomeFailure}
	}
	metrics.RecordQueryFailure(f.Kind.String())
	return Reply{
		Command:  cmd,
		Text:     s.failureText(f),
		ShowHelp: f.ShowHelp(),
		Outcome:  metrics.OutcomeFailure,
	}
}

func (s *Service) failureText(f *failure.Error) string {
	switch f.Kind {
	case failure.KindNotFound:
		return fmt.Sprintf("dont know a %s like \"%s\"", f.Entity, escape(f.Input)) + s.didYouMean(f)
	case failure.KindNoneFound:
		return fmt.Sprintf("no %s found for \"%s\"", f.Entity.Plural(0), escape(f.Input))
	case failure.KindCountMismatch:
		if f.Direction == failure.TooMany {
			return fmt.Sprintf("only need %d %s", f.Bound, f.Entity.Plural(f.Bound))
		}
		return fmt.Sprintf("need at least %d %s", f.Bound, f.Entity.Plural(f.Bound))
	case failure.KindMutuallyExclusiveBounds:
		return "between is mutually exclusive with above and below"
	case failure.KindBoundsIdentical:
		return "um those are the same talent so there's nothing between them"
	case failure.KindBoundsOutOfOrder:
		return "both talents have to be in-range of each other"
	case failure.KindInvalidEnumValue:
		return enumText(f)
	case failure.KindInvalidBoolean:
		return fmt.Sprintf("type true/false for the `%s` flag.", f.Flag)
	case failure.KindOutOfRange:
		return fmt.Sprintf("%ss are between %d and %d", strings.ReplaceAll(f.Flag, "-", " "), f.Min, f.Max)
	case failure.KindMissingFlagValue:
		return fmt.Sprintf("`%s` is missing a value", f.Flag)
	case failure.KindTooManyFlagValues:
		if f.Bound == 1 {
			return fmt.Sprintf("`%s` can only be specified once", f.Flag)
		}
		return fmt.Sprintf("`%s` can only be specified up to %d times, not %d times", f.Flag, f.Bound, f.Actual)
	case failure.KindNoFlags:
		return "i dont know any of those flag or i didnt get enough."
	default:
		return f.Error()
	}
}

func enumText(f *failure.Error) string {
	switch f.Enum {
	case failure.EnumRarity:
		return fmt.Sprintf("dont know a rarity like \"%s\"\ncan be any of this: %s",
			escape(f.Input), strings.Join(model.RarityNames(), ", "))
	case failure.EnumSchool:
		return fmt.Sprintf("dont know a school like \"%s\"\ncan be any of this: %s",
			escape(f.Input), strings.Join(model.Schools(), ", "))
	case failure.EnumEgg:
		return fmt.Sprintf("dont know an egg like \"%s\"", escape(f.Input))
	case failure.EnumFormat:
		return `put "relative" or "absolute" for the format.`
	default:
		return f.Error()
	}
}

// didYouMean lists completions of a missed name, if any.
func (s *Service) didYouMean(f *failure.Error) string {
	r := s.resolver()
	if r == nil || strings.TrimSpace(f.Input) == "" {
		return ""
	}
	got := r.Suggest(f.Entity, f.Input, suggestLimit)
	if len(got) == 0 {
		return ""
	}
	names := make([]string, len(got))
	for i, sg := range got {
		names[i] = "`" + sg.Alias + "`"
	}
	return "\ndid you mean " + strings.Join(names, ", ") + "?"
}
