package discord

import (
	"strconv"
	"sync"

	"github.com/bwmarrin/discordgo"
	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/okian/gobu/pkg/metrics"
)

// Button ids. Pager buttons carry pagerPrefix + action; the help button
// carries helpPrefix + the qualified command name.
const (
	pagerPrefix = "pager:"
	helpPrefix  = "help:"

	actionFirst = "first"
	actionPrev  = "prev"
	actionPage  = "page"
	actionNext  = "next"
	actionLast  = "last"
	actionClose = "close"
)

const vs15 = "\uFE0E"

// DefaultPagerSessions bounds the number of live paginated messages.
const DefaultPagerSessions = 10_000

type pagerSession struct {
	pages []string
	index int
	owner string
}

// Turn is what an interaction did to a paginated message.
type Turn int

const (
	// TurnMoved means the message should show View.
	TurnMoved Turn = iota + 1
	// TurnDenied means someone other than the owner pressed a button.
	TurnDenied
	// TurnClosed means the owner closed the pages.
	TurnClosed
	// TurnExpired means the session was evicted or never existed.
	TurnExpired
)

// View is the content and buttons of one page.
type View struct {
	Content    string
	Components []discordgo.MessageComponent
}

// Pager tracks paginated messages by message id. Only the author of the
// command may turn its pages.
type Pager struct {
	mu       sync.Mutex
	sessions *lru.Cache[string, *pagerSession]
}

// NewPager creates a pager holding at most size sessions; the least
// recently used session is forgotten first.
func NewPager(size int) (*Pager, error) {
	if size <= 0 {
		size = DefaultPagerSessions
	}
	sessions, err := lru.New[string, *pagerSession](size)
	if err != nil {
		return nil, err
	}
	return &Pager{sessions: sessions}, nil
}

// First returns the view a paginated reply opens on. Single pages get no
// buttons and need no session.
func First(pages []string, start int) View {
	switch len(pages) {
	case 0:
		return View{}
	case 1:
		return View{Content: pages[0]}
	}
	start = clamp(start, len(pages))
	return View{Content: pages[start], Components: pagerButtons(start, len(pages))}
}

// Track remembers a sent multi-page message.
func (p *Pager) Track(messageID, owner string, pages []string, start int) {
	if len(pages) <= 1 {
		return
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	p.sessions.Add(messageID, &pagerSession{pages: pages, index: clamp(start, len(pages)), owner: owner})
	metrics.UpdatePagerSessions(p.sessions.Len())
}

// Turn applies action for user to the message's session.
func (p *Pager) Turn(messageID, user, action string) (View, Turn) {
	p.mu.Lock()
	defer p.mu.Unlock()

	s, ok := p.sessions.Get(messageID)
	if !ok {
		return View{}, TurnExpired
	}
	if user != s.owner {
		return View{}, TurnDenied
	}
	metrics.RecordPagerInteraction(action)

	last := len(s.pages) - 1
	switch action {
	case actionFirst:
		s.index = 0
	case actionPrev:
		s.index = max(s.index-1, 0)
	case actionNext:
		s.index = min(s.index+1, last)
	case actionLast:
		s.index = last
	case actionClose:
		p.sessions.Remove(messageID)
		metrics.UpdatePagerSessions(p.sessions.Len())
		return View{}, TurnClosed
	}
	return View{Content: s.pages[s.index], Components: pagerButtons(s.index, len(s.pages))}, TurnMoved
}

// Len is the number of live sessions.
func (p *Pager) Len() int {
	return p.sessions.Len()
}

func pagerButtons(index, total int) []discordgo.MessageComponent {
	atFirst := index == 0
	atLast := index == total-1
	return []discordgo.MessageComponent{
		discordgo.ActionsRow{Components: []discordgo.MessageComponent{
			discordgo.Button{Label: "1 \u23EA" + vs15, Style: discordgo.SecondaryButton, CustomID: pagerPrefix + actionFirst, Disabled: atFirst},
			discordgo.Button{Label: "\u25C0" + vs15, Style: discordgo.SecondaryButton, CustomID: pagerPrefix + actionPrev, Disabled: atFirst},
			discordgo.Button{Label: strconv.Itoa(index + 1), Style: discordgo.PrimaryButton, CustomID: pagerPrefix + actionPage, Disabled: true},
			discordgo.Button{Label: "\u25B6" + vs15, Style: discordgo.SecondaryButton, CustomID: pagerPrefix + actionNext, Disabled: atLast},
			discordgo.Button{Label: "\u23E9" + vs15 + " " + strconv.Itoa(total), Style: discordgo.SecondaryButton, CustomID: pagerPrefix + actionLast, Disabled: atLast},
		}},
		discordgo.ActionsRow{Components: []discordgo.MessageComponent{
			discordgo.Button{Label: "\u23CF" + vs15 + " Close pages", Style: discordgo.DangerButton, CustomID: pagerPrefix + actionClose},
		}},
	}
}

func helpButton(command string) []discordgo.MessageComponent {
	return []discordgo.MessageComponent{
		discordgo.ActionsRow{Components: []discordgo.MessageComponent{
			discordgo.Button{Label: "\u21AA Show help", Style: discordgo.PrimaryButton, CustomID: helpPrefix + command},
		}},
	}
}

func clamp(i, n int) int {
	if i < 0 || n == 0 {
		return 0
	}
	if i >= n {
		return n - 1
	}
	return i
}
