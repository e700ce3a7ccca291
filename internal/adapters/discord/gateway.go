// Package discord connects the command service to a Discord bot account.
package discord

import (
	"context"
	"fmt"
	"regexp"
	"strings"
	"sync"
	"time"

	"github.com/bwmarrin/discordgo"
	"github.com/google/uuid"
	service "github.com/okian/gobu/internal/app"
	"github.com/okian/gobu/internal/domain/cooldown"
	"github.com/okian/gobu/internal/domain/model"
	"github.com/okian/gobu/pkg/logger"
	"github.com/okian/gobu/pkg/metrics"
)

// Executor is the part of the command service the gateway drives.
// *service.Service satisfies it.
type Executor interface {
	Enqueue(ctx context.Context, inv model.Invocation) bool
	Help(topic string) service.Reply
	Prefix() string
}

// session is the subset of *discordgo.Session the gateway calls.
type session interface {
	ChannelMessageSendComplex(channelID string, data *discordgo.MessageSend, options ...discordgo.RequestOption) (*discordgo.Message, error)
	ChannelMessageDelete(channelID, messageID string, options ...discordgo.RequestOption) error
	InteractionRespond(interaction *discordgo.Interaction, resp *discordgo.InteractionResponse, options ...discordgo.RequestOption) error
	InteractionResponse(interaction *discordgo.Interaction, options ...discordgo.RequestOption) (*discordgo.Message, error)
	UserChannelPermissions(userID, channelID string, fetchOptions ...discordgo.RequestOption) (int64, error)
}

// Gateway routes Discord messages into the service and sends its replies.
// It implements service.Responder.
type Gateway struct {
	dg   *discordgo.Session
	sess session
	exec Executor

	limiter cooldown.Limiter
	pager   *Pager
	logger  logger.Logger

	mu      sync.RWMutex
	ctx     context.Context
	botID   string
	mention *regexp.Regexp
	remove  []func()
}

// New creates a gateway for the bot token. Call Open to connect.
func New(token string, exec Executor, opts ...Option) (*Gateway, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return nil, ErrNoToken
	}
	if !strings.HasPrefix(token, "Bot ") {
		token = "Bot " + token
	}
	dg, err := discordgo.New(token)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrOpen, err)
	}
	dg.Identify.Intents = discordgo.IntentsGuildMessages |
		discordgo.IntentsDirectMessages |
		discordgo.IntentsMessageContent

	g, err := newGateway(dg, exec, opts...)
	if err != nil {
		return nil, err
	}
	g.dg = dg
	return g, nil
}

func newGateway(sess session, exec Executor, opts ...Option) (*Gateway, error) {
	o := options{pagerSessions: DefaultPagerSessions}
	for _, opt := range opts {
		opt(&o)
	}
	if o.limiter == nil {
		o.limiter = cooldown.New()
	}
	if o.logger == nil {
		o.logger = logger.Get().Named("discord")
	}
	pager, err := NewPager(o.pagerSessions)
	if err != nil {
		return nil, err
	}
	return &Gateway{
		sess:    sess,
		exec:    exec,
		limiter: o.limiter,
		pager:   pager,
		logger:  o.logger,
		ctx:     context.Background(),
	}, nil
}

// Open connects to Discord and starts handling events. ctx is used for
// everything the event handlers start.
func (g *Gateway) Open(ctx context.Context) error {
	if g.dg == nil {
		return ErrNotOpen
	}
	g.mu.Lock()
	g.ctx = ctx
	g.remove = append(g.remove,
		g.dg.AddHandler(func(_ *discordgo.Session, r *discordgo.Ready) { g.onReady(r) }),
		g.dg.AddHandler(func(_ *discordgo.Session, m *discordgo.MessageCreate) { g.handleMessage(m.Message) }),
		g.dg.AddHandler(func(_ *discordgo.Session, i *discordgo.InteractionCreate) { g.handleInteraction(i.Interaction) }),
	)
	g.mu.Unlock()

	if err := g.dg.Open(); err != nil {
		return fmt.Errorf("%w: %w", ErrOpen, err)
	}
	if u := g.dg.State.User; u != nil {
		g.setBotID(u.ID)
	}
	return nil
}

// Close disconnects from Discord.
func (g *Gateway) Close() error {
	g.mu.Lock()
	for _, rm := range g.remove {
		rm()
	}
	g.remove = nil
	g.mu.Unlock()
	if g.dg == nil {
		return nil
	}
	if err := g.dg.Close(); err != nil {
		return fmt.Errorf("discord close: %w", err)
	}
	return nil
}

func (g *Gateway) onReady(r *discordgo.Ready) {
	metrics.RecordGatewayEvent("ready")
	if r.User == nil {
		return
	}
	g.setBotID(r.User.ID)
	g.logger.Info(g.context(), "discord ready",
		logger.String("user", r.User.Username),
		logger.Int("guilds", len(r.Guilds)),
	)
}

func (g *Gateway) setBotID(id string) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.botID = id
	g.mention = regexp.MustCompile(`^<@!?` + regexp.QuoteMeta(id) + `>`)
}

func (g *Gateway) identity() (string, *regexp.Regexp) {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.botID, g.mention
}

func (g *Gateway) context() context.Context {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.ctx
}

func (g *Gateway) handleMessage(m *discordgo.Message) {
	if m == nil || m.Author == nil || m.Author.Bot {
		return
	}
	botID, mention := g.identity()
	if botID == "" {
		return
	}
	ctx := g.context()

	if m.GuildID != "" && !g.canSend(ctx, botID, m.ChannelID) {
		metrics.RecordGatewayEvent("no_permission")
		return
	}

	content := m.Content
	if loc := mention.FindStringIndex(content); loc != nil && loc[1] == len(content) {
		g.handleMention(ctx, m)
		return
	}

	rest, ok := g.stripPrefix(content, mention)
	if !ok {
		return
	}
	metrics.RecordGatewayEvent("command")
	inv := model.Invocation{
		ID:         uuid.NewString(),
		GuildID:    m.GuildID,
		ChannelID:  m.ChannelID,
		MessageID:  m.ID,
		AuthorID:   m.Author.ID,
		Content:    rest,
		ReceivedAt: time.Now(),
	}
	if !g.exec.Enqueue(ctx, inv) {
		metrics.RecordGatewayEvent("dropped")
	}
}

// stripPrefix removes the text prefix or a leading mention, then any
// whitespace after it.
func (g *Gateway) stripPrefix(content string, mention *regexp.Regexp) (string, bool) {
	if prefix := g.exec.Prefix(); prefix != "" && strings.HasPrefix(content, prefix) {
		return strings.TrimLeft(content[len(prefix):], " \t\n"), true
	}
	if loc := mention.FindStringIndex(content); loc != nil {
		return strings.TrimLeft(content[loc[1]:], " \t\n"), true
	}
	return "", false
}

func (g *Gateway) canSend(ctx context.Context, botID, channelID string) bool {
	perms, err := g.sess.UserChannelPermissions(botID, channelID)
	if err != nil {
		g.logger.Debug(ctx, "permission lookup failed", logger.String("channel", channelID), logger.Error(err))
		return false
	}
	return perms&discordgo.PermissionSendMessages != 0
}

// handleMention answers a message that is only a mention of the bot, at
// most once per cooldown window per guild.
func (g *Gateway) handleMention(ctx context.Context, m *discordgo.Message) {
	if m.GuildID != "" {
		if ok, _ := g.limiter.Allow(ctx, m.GuildID); !ok {
			metrics.RecordCooldownSuppressed()
			return
		}
		metrics.UpdateCooldownGuilds(g.limiter.Size())
	}
	metrics.RecordGatewayEvent("mention")
	_, err := g.sess.ChannelMessageSendComplex(m.ChannelID, &discordgo.MessageSend{
		Content:         service.MentionText(g.exec.Prefix()),
		Reference:       m.Reference(),
		AllowedMentions: noMentions(),
	})
	if err != nil {
		metrics.RecordReplySendError()
		g.logger.Warn(ctx, "mention reply failed", logger.String("channel", m.ChannelID), logger.Error(err))
	}
}

// Respond sends reply to the invocation's channel. Multi-page replies get
// pager buttons; failures that offer help get a help button.
func (g *Gateway) Respond(_ context.Context, inv model.Invocation, reply service.Reply) error { //nolint:gocritic // hugeParam: matches service.Responder
	msg := &discordgo.MessageSend{AllowedMentions: noMentions()}
	if len(reply.Pages) > 0 {
		view := First(reply.Pages, reply.Start)
		msg.Content = view.Content
		msg.Components = view.Components
	} else {
		msg.Content = reply.Text
		if reply.ShowHelp && reply.Command != "" {
			msg.Components = helpButton(reply.Command)
		}
	}

	sent, err := g.sess.ChannelMessageSendComplex(inv.ChannelID, msg)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrSend, err)
	}
	if len(reply.Pages) > 1 && sent != nil {
		g.pager.Track(sent.ID, inv.AuthorID, reply.Pages, reply.Start)
	}
	return nil
}

func (g *Gateway) handleInteraction(i *discordgo.Interaction) {
	if i == nil || i.Type != discordgo.InteractionMessageComponent {
		return
	}
	ctx := g.context()
	id := i.MessageComponentData().CustomID

	var err error
	switch {
	case strings.HasPrefix(id, helpPrefix):
		err = g.showHelp(i, strings.TrimPrefix(id, helpPrefix))
	case strings.HasPrefix(id, pagerPrefix) && i.Message != nil:
		err = g.turnPage(i, strings.TrimPrefix(id, pagerPrefix))
	default:
		return
	}
	if err != nil {
		metrics.RecordReplySendError()
		g.logger.Warn(ctx, "interaction response failed", logger.String("custom_id", id), logger.Error(err))
	}
}

// showHelp answers a help button privately. Long help is paged like any
// other reply, owned by whoever pressed the button.
func (g *Gateway) showHelp(i *discordgo.Interaction, command string) error {
	metrics.RecordGatewayEvent("help_button")
	reply := g.exec.Help(command)
	data := &discordgo.InteractionResponseData{
		Content:         reply.Text,
		Flags:           discordgo.MessageFlagsEphemeral,
		AllowedMentions: noMentions(),
	}
	if len(reply.Pages) > 0 {
		view := First(reply.Pages, reply.Start)
		data.Content = view.Content
		data.Components = view.Components
	}
	err := g.sess.InteractionRespond(i, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: data,
	})
	if err != nil || len(reply.Pages) < 2 {
		return err
	}

	sent, err := g.sess.InteractionResponse(i)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrSend, err)
	}
	g.pager.Track(sent.ID, interactionUser(i), reply.Pages, reply.Start)
	return nil
}

func (g *Gateway) turnPage(i *discordgo.Interaction, action string) error {
	view, turn := g.pager.Turn(i.Message.ID, interactionUser(i), action)
	switch turn {
	case TurnMoved:
		return g.sess.InteractionRespond(i, &discordgo.InteractionResponse{
			Type: discordgo.InteractionResponseUpdateMessage,
			Data: &discordgo.InteractionResponseData{Content: view.Content, Components: view.Components},
		})
	case TurnClosed:
		if i.Message.Flags&discordgo.MessageFlagsEphemeral != 0 {
			// Ephemeral messages cannot be deleted through the channel.
			return g.stripButtons(i)
		}
		if err := g.deferUpdate(i); err != nil {
			return err
		}
		return g.sess.ChannelMessageDelete(i.ChannelID, i.Message.ID)
	case TurnExpired:
		return g.stripButtons(i)
	default:
		return g.deferUpdate(i)
	}
}

// stripButtons removes the components and keeps the page that is showing.
func (g *Gateway) stripButtons(i *discordgo.Interaction) error {
	return g.sess.InteractionRespond(i, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseUpdateMessage,
		Data: &discordgo.InteractionResponseData{Content: i.Message.Content, Components: []discordgo.MessageComponent{}},
	})
}

func (g *Gateway) deferUpdate(i *discordgo.Interaction) error {
	return g.sess.InteractionRespond(i, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseDeferredMessageUpdate,
	})
}

func interactionUser(i *discordgo.Interaction) string {
	if i.Member != nil && i.Member.User != nil {
		return i.Member.User.ID
	}
	if i.User != nil {
		return i.User.ID
	}
	return ""
}

func noMentions() *discordgo.MessageAllowedMentions {
	return &discordgo.MessageAllowedMentions{Parse: []discordgo.AllowedMentionType{}}
}
