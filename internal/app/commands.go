package service

import (
	"context"
	"strings"
	"time"
	"unicode"

	"github.com/okian/gobu/internal/domain/flags"
	"github.com/okian/gobu/internal/domain/priority"
	"github.com/okian/gobu/pkg/logger"
	"github.com/okian/gobu/pkg/metrics"
)

type runFunc func(ctx context.Context, s *Service, arg string) (Reply, error)

// command is one entry of the command table.
type command struct {
	name     string
	aliases  []string
	usage    string
	doc      string
	examples []string
	flags    *flags.Schema
	// required commands show their help when called without text.
	required bool
	subs     []*command
	parent   *command
	run      runFunc
}

func (c *command) qualified() string {
	if c.parent != nil {
		return c.parent.qualified() + " " + c.name
	}
	return c.name
}

func (c *command) shortDoc() string {
	first, _, _ := strings.Cut(c.doc, "\n")
	return first
}

func (c *command) matches(word string) bool {
	if word == c.name {
		return true
	}
	for _, a := range c.aliases {
		if word == a {
			return true
		}
	}
	return false
}

// category groups commands on the help overview.
type category struct {
	name     string
	doc      string
	commands []*command
}

func commandTable() []category {
	talents := &command{
		name:    "talents",
		aliases: []string{"talent", "ta"},
		usage:   "[flags]",
		doc:     "search talents.\nlower priority talents are higher when looking at a pet's talent in-game.",
		examples: []string{
			"talents below: furnace above: balance-sniper",
			"talents between: mighty, storm-giver rarity: ultra-rare",
			"talents between: spell-proof, spell-defy rarity: common rarity: uncommon",
		},
		flags: &flags.TalentSearch,
		run:   runTalents,
	}
	talents.subs = []*command{
		{
			name:     "firstgen",
			aliases:  []string{"fg", "pool"},
			usage:    "<pet>",
			doc:      "show a pet's first gen pool.",
			required: true,
			parent:   talents,
			run:      runFirstGen,
		},
		{
			name:     "prioritise",
			aliases:  []string{"prioritize", "p"},
			usage:    "<talents>",
			doc:      "sort a given list of talents by priority.",
			examples: []string{"talents prioritise death-dealer, spell-proof, mighty"},
			required: true,
			parent:   talents,
			run:      runPrioritise,
		},
	}

	return []category{
		{
			name: "Pets",
			doc:  "pet commands.",
			commands: []*command{
				{
					name:    "pets",
					aliases: []string{"pet"},
					usage:   "[pets] [flags]",
					doc:     "show full info on some pets.",
					examples: []string{
						"pets rain core",
						"pets levi school: storm",
						"pets wow-factor: 10 exclusive: yes",
						"pets spell: deathblade spell: feint talent: mighty wow-factor: 10",
					},
					flags:    &flags.PetSearch,
					required: true,
					run:      runPets,
				},
				talents,
				{
					name:     "hybrids",
					usage:    "<pet>",
					doc:      "show pet's hybrids.",
					examples: []string{"hybrids ghulture", "hybrids rain core"},
					required: true,
					run:      runHybrids,
				},
				{
					name:     "hatch",
					usage:    "<pets>",
					doc:      "calculate baby chance from 2 pet hatch.",
					examples: []string{"hatch wraith, dark hound", "hatch rain core, ghulture"},
					required: true,
					run:      runHatch,
				},
			},
		},
		{
			name: "Self",
			doc:  "commands relating to the bot itself.",
			commands: []*command{
				{
					name:  "help",
					usage: "[command]",
					doc:   "shows this message.",
					run:   runHelp,
				},
			},
		},
	}
}

// nextWord splits off the first whitespace-delimited word of s and
// returns the rest with leading whitespace removed. Line breaks in the
// rest are kept since list arguments split on them.
func nextWord(s string) (string, string) {
	s = strings.TrimLeftFunc(s, unicode.IsSpace)
	i := strings.IndexFunc(s, unicode.IsSpace)
	if i < 0 {
		return s, ""
	}
	return s[:i], strings.TrimLeftFunc(s[i:], unicode.IsSpace)
}

// route finds the command text invokes, descending into subcommands.
func (s *Service) route(text string) (*command, string) {
	word, rest := nextWord(text)
	var cmd *command
	for _, c := range s.commands {
		if c.matches(strings.ToLower(word)) {
			cmd = c
			break
		}
	}
	for cmd != nil && len(cmd.subs) > 0 {
		sub, subRest := nextWord(rest)
		var next *command
		for _, c := range cmd.subs {
			if c.matches(strings.ToLower(sub)) {
				next = c
				break
			}
		}
		if next == nil {
			break
		}
		cmd, rest = next, subRest
	}
	return cmd, strings.TrimSpace(rest)
}

// Execute runs one command. text has the prefix already stripped, e.g.
// "hatch rain core, ghulture". Unknown commands give a silent reply.
func (s *Service) Execute(ctx context.Context, text string) Reply {
	start := time.Now()
	cmd, arg := s.route(text)
	if cmd == nil {
		metrics.RecordCommand("", metrics.OutcomeUnknown)
		return Reply{Outcome: metrics.OutcomeUnknown}
	}
	name := cmd.qualified()

	var reply Reply
	if _, err := s.ready(); err != nil {
		s.log().Error(ctx, "command before start", logger.String("command", name), logger.Error(err))
		reply = Reply{Outcome: metrics.OutcomeFailure}
	} else if cmd.required && arg == "" {
		reply = Reply{Pages: []string{s.commandHelp(cmd)}, Outcome: metrics.OutcomeFailure}
	} else {
		var err error
		reply, err = cmd.run(ctx, s, arg)
		if err != nil {
			reply = s.failureReply(name, err)
			s.log().Debug(ctx, "command failed",
				logger.String("command", name),
				logger.Error(err),
			)
		}
	}
	reply.Command = name

	took := time.Since(start)
	metrics.RecordCommand(name, reply.Outcome)
	metrics.RecordCommandLatency(name, float64(took.Microseconds())/1000)
	return reply
}

func runPets(ctx context.Context, s *Service, arg string) (Reply, error) {
	positional, bag, err := flags.Parse(flags.PetSearch, arg)
	if err != nil {
		return Reply{}, err
	}
	pets, err := s.SearchPets(ctx, positional, bag)
	if err != nil {
		return Reply{}, err
	}
	if len(pets) == 0 {
		return emptyReply("pets", textNoPetsWithFlags), nil
	}
	return pagesReply("pets", petPages(pets)), nil
}

func runTalents(ctx context.Context, s *Service, arg string) (Reply, error) {
	_, bag, err := flags.Parse(flags.TalentSearch, arg)
	if err != nil {
		return Reply{}, err
	}
	res, key, err := s.SearchTalents(ctx, bag)
	if err != nil {
		return Reply{}, err
	}
	if res.Empty() {
		return emptyReply("talents", textNoTalents), nil
	}
	reply := pagesReply("talents", talentPages(res.Talents, key))
	if res.StartFromLast {
		reply.Start = len(reply.Pages) - 1
	}
	return reply, nil
}

func runFirstGen(ctx context.Context, s *Service, arg string) (Reply, error) {
	pet, err := s.FirstGen(ctx, arg)
	if err != nil {
		return Reply{}, err
	}
	return pagesReply("talents firstgen", firstGenPages(pet)), nil
}

func runPrioritise(ctx context.Context, s *Service, arg string) (Reply, error) {
	talents, err := s.Prioritise(ctx, arg)
	if err != nil {
		return Reply{}, err
	}
	return pagesReply("talents prioritise", talentPages(talents, priority.Relative)), nil
}

func runHybrids(ctx context.Context, s *Service, arg string) (Reply, error) {
	_, pairs, err := s.Hybrids(ctx, arg)
	if err != nil {
		return Reply{}, err
	}
	if len(pairs) == 0 {
		return emptyReply("hybrids", textNoHybrids), nil
	}
	return pagesReply("hybrids", hybridPages(pairs)), nil
}

func runHatch(ctx context.Context, s *Service, arg string) (Reply, error) {
	res, err := s.Hatch(ctx, arg)
	if err != nil {
		return Reply{}, err
	}
	return pagesReply("hatch", hatchPages(res)), nil
}

func runHelp(_ context.Context, s *Service, arg string) (Reply, error) {
	if arg == "" {
		return pagesReply("help", s.helpPages()), nil
	}
	return s.Help(arg), nil
}
