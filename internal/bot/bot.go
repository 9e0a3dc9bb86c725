package bot

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/bwmarrin/discordgo"

	"steam-library-service/internal/logging"
)

const (
	embedColor     = 0x33ccbb
	commandTimeout = 30 * time.Second
)

// Bot bridges Discord chat commands to the library service API.
type Bot struct {
	session *discordgo.Session
	api     *APIClient
	logger  *slog.Logger
}

// New builds a bot with its Discord session and API client wired up but not
// yet connected.
func New(token, apiBaseURL string, logger *slog.Logger) (*Bot, error) {
	session, err := discordgo.New("Bot " + token)
	if err != nil {
		return nil, fmt.Errorf("create discord session: %w", err)
	}

	b := &Bot{
		session: session,
		api:     NewAPIClient(apiBaseURL, nil),
		logger:  logger,
	}
	session.AddHandler(b.onMessage)
	session.AddHandler(b.onInteraction)
	return b, nil
}

// Run connects to Discord and blocks until the context is canceled.
func (b *Bot) Run(ctx context.Context) error {
	if err := b.session.Open(); err != nil {
		return fmt.Errorf("open discord connection: %w", err)
	}
	logging.Info(b.logger, "bot connected")

	<-ctx.Done()
	logging.Info(b.logger, "bot shutting down")
	return b.session.Close()
}

func (b *Bot) onMessage(s *discordgo.Session, m *discordgo.MessageCreate) {
	if m.Author.ID == s.State.User.ID || !strings.HasPrefix(m.Content, "!") {
		return
	}

	parts := strings.Fields(m.Content)
	command := strings.TrimPrefix(parts[0], "!")
	args := parts[1:]

	ctx, cancel := context.WithTimeout(context.Background(), commandTimeout)
	defer cancel()

	switch command {
	case "ping":
		b.reply(s, m.ChannelID, fmt.Sprintf("Pong, %s!", m.Author.Mention()))
	case "register":
		b.handleRegister(ctx, s, m, args)
	case "games":
		b.handleGames(ctx, s, m, args)
	case "search":
		b.handleSearch(ctx, s, m, args)
	}
}

func (b *Bot) handleRegister(ctx context.Context, s *discordgo.Session, m *discordgo.MessageCreate, args []string) {
	if len(args) != 1 {
		b.reply(s, m.ChannelID, "Usage: `!register <steamid>`")
		return
	}

	account, err := b.api.Register(ctx, args[0])
	if err != nil {
		b.replyError(s, m.ChannelID, err)
		return
	}

	embed := &discordgo.MessageEmbed{
		Title:     account.SteamID,
		URL:       account.ProfileURL,
		Color:     embedColor,
		Thumbnail: &discordgo.MessageEmbedThumbnail{URL: account.AvatarURL},
		Footer:    &discordgo.MessageEmbedFooter{Text: "Registration successful"},
	}
	if _, err := s.ChannelMessageSendEmbed(m.ChannelID, embed); err != nil {
		logging.Error(b.logger, "failed to send embed", err)
	}
}

func (b *Bot) handleGames(ctx context.Context, s *discordgo.Session, m *discordgo.MessageCreate, args []string) {
	if len(args) != 1 {
		b.reply(s, m.ChannelID, "Usage: `!games <username>`")
		return
	}

	username := args[0]
	account, err := b.api.User(ctx, username)
	if err != nil {
		b.replyError(s, m.ChannelID, err)
		return
	}

	entries := entriesFromAccount(account)
	ref := pageRef{Kind: "games", Query: username, Page: 0}
	b.sendListing(s, m.ChannelID, username, account.AvatarURL, entries, ref)
}

func (b *Bot) handleSearch(ctx context.Context, s *discordgo.Session, m *discordgo.MessageCreate, args []string) {
	if len(args) == 0 {
		b.reply(s, m.ChannelID, "Usage: `!search <game name>`")
		return
	}

	game := strings.Join(args, " ")
	result, err := b.api.Search(ctx, game)
	if err != nil {
		b.replyError(s, m.ChannelID, err)
		return
	}

	entries := entriesFromSearch(result)
	if len(entries) == 0 {
		b.reply(s, m.ChannelID, fmt.Sprintf("No users found for **%s**", game))
		return
	}

	ref := pageRef{Kind: "search", Query: game, Page: 0}
	b.sendListing(s, m.ChannelID, game, result.ImgIconURL, entries, ref)
}

func (b *Bot) onInteraction(s *discordgo.Session, i *discordgo.InteractionCreate) {
	if i.Type != discordgo.InteractionMessageComponent {
		return
	}

	ref, ok := parseCustomID(i.MessageComponentData().CustomID)
	if !ok {
		logging.Warn(b.logger, "malformed pagination id", "custom_id", i.MessageComponentData().CustomID)
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), commandTimeout)
	defer cancel()

	var (
		entries []entry
		thumb   string
	)
	switch ref.Kind {
	case "games":
		account, err := b.api.User(ctx, ref.Query)
		if err != nil {
			logging.Error(b.logger, "pagination fetch failed", err)
			return
		}
		entries = entriesFromAccount(account)
		thumb = account.AvatarURL
	case "search":
		result, err := b.api.Search(ctx, ref.Query)
		if err != nil {
			logging.Error(b.logger, "pagination fetch failed", err)
			return
		}
		entries = entriesFromSearch(result)
		thumb = result.ImgIconURL
	default:
		return
	}

	p := renderPage(entries, ref.Page)
	ref.Page = p.Index

	err := s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseUpdateMessage,
		Data: &discordgo.InteractionResponseData{
			Embeds:     []*discordgo.MessageEmbed{buildEmbed(ref.Query, thumb, p)},
			Components: []discordgo.MessageComponent{buildButtons(ref, p)},
		},
	})
	if err != nil {
		logging.Error(b.logger, "failed to update pagination", err)
	}
}

func (b *Bot) sendListing(s *discordgo.Session, channelID, title, thumb string, entries []entry, ref pageRef) {
	p := renderPage(entries, ref.Page)
	ref.Page = p.Index

	_, err := s.ChannelMessageSendComplex(channelID, &discordgo.MessageSend{
		Embed:      buildEmbed(title, thumb, p),
		Components: []discordgo.MessageComponent{buildButtons(ref, p)},
	})
	if err != nil {
		logging.Error(b.logger, "failed to send listing", err)
	}
}

func buildEmbed(title, thumb string, p page) *discordgo.MessageEmbed {
	return &discordgo.MessageEmbed{
		Title:       fmt.Sprintf("%s - Page %d/%d", title, p.Index+1, p.TotalPages),
		Description: p.Body,
		Color:       embedColor,
		Thumbnail:   &discordgo.MessageEmbedThumbnail{URL: thumb},
		Image:       &discordgo.MessageEmbedImage{URL: p.ImageURL},
		Footer:      &discordgo.MessageEmbedFooter{Text: fmt.Sprintf("Total items: %d", p.Total)},
	}
}

func buildButtons(ref pageRef, p page) discordgo.ActionsRow {
	return discordgo.ActionsRow{
		Components: []discordgo.MessageComponent{
			discordgo.Button{
				Label:    "◀ Previous",
				Style:    discordgo.PrimaryButton,
				CustomID: ref.customID("prev"),
				Disabled: p.Index == 0,
			},
			discordgo.Button{
				Label:    "Next ▶",
				Style:    discordgo.PrimaryButton,
				CustomID: ref.customID("next"),
				Disabled: p.Index >= p.TotalPages-1,
			},
		},
	}
}

func (b *Bot) reply(s *discordgo.Session, channelID, message string) {
	if _, err := s.ChannelMessageSend(channelID, message); err != nil {
		logging.Error(b.logger, "failed to send message", err)
	}
}

func (b *Bot) replyError(s *discordgo.Session, channelID string, err error) {
	b.reply(s, channelID, fmt.Sprintf("Error: %v", err))
}
