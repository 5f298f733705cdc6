// Package bot is the chat front end: it connects to a Twitch channel and
// answers commands with match data, stream availability, and static shop and
// clip links. All data access goes through the matches and streams services,
// which already degrade to absent/empty on any upstream problem, so handlers
// never special-case failures.
package bot

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand"
	"strings"
	"sync"
	"time"

	twitch "github.com/gempir/go-twitch-irc/v4"
	"github.com/google/uuid"

	"github.com/furiafans/matchbot/config"
	"github.com/furiafans/matchbot/matches"
	"github.com/furiafans/matchbot/streams"
	"github.com/furiafans/matchbot/telemetry"
)

const (
	voteCooldown = 10 * time.Second
	alertDelay   = 10 * time.Second
)

// Bot dispatches chat commands to the data services.
type Bot struct {
	Cfg     *config.Config
	Matches *matches.Service
	Streams *streams.Service

	// notify delivers an out-of-band message to the channel (used by the
	// alert demo). Set by Run; tests inject their own.
	notify func(line string)

	mu        sync.Mutex
	lastVotes map[string]time.Time
}

// Run connects to the configured channel and blocks until ctx is done or the
// connection fails.
func (b *Bot) Run(ctx context.Context) error {
	if err := b.Cfg.ValidateChatReady(); err != nil {
		return err
	}
	client := twitch.NewClient(b.Cfg.BotUsername, b.Cfg.BotOAuthToken)
	channel := b.Cfg.BotChannel
	b.notify = func(line string) { client.Say(channel, line) }

	client.OnPrivateMessage(func(msg twitch.PrivateMessage) {
		cctx := telemetry.WithCorrelation(ctx, uuid.New().String())
		for _, line := range b.handle(cctx, msg.User.Name, msg.Message) {
			client.Say(channel, line)
		}
	})

	done := make(chan struct{})
	go func() {
		<-ctx.Done()
		if err := client.Disconnect(); err != nil {
			slog.Warn("chat disconnect error", slog.Any("err", err))
		}
		close(done)
	}()

	client.Join(channel)
	if err := client.Connect(); err != nil {
		slog.Error("chat connect error", slog.Any("err", err))
		return err
	}
	<-done
	return nil
}

// handle parses one chat message and returns the reply lines, or nil when the
// message is not addressed to the bot.
func (b *Bot) handle(ctx context.Context, user, text string) []string {
	if !strings.HasPrefix(text, "!") {
		return nil
	}
	name, arg, _ := strings.Cut(strings.TrimPrefix(text, "!"), " ")
	name = strings.ToLower(name)
	arg = strings.TrimSpace(arg)

	log := telemetry.LoggerWithCorr(ctx)
	log.Debug("command received", slog.String("command", name), slog.String("user", user))
	telemetry.CountCommand(name)

	switch name {
	case "start":
		return startLines
	case "aceito":
		return []string{
			"✅ Termos aceitos! Agora você pode usar: !status, !proximos, !resultados, " +
				"!alerta, !votar <nome>, !clip, !ping, !stream, !loja, !ajuda",
		}
	case "status":
		return b.statusLines(ctx)
	case "proximos":
		return b.upcomingLines(ctx)
	case "resultados":
		return b.resultLines()
	case "alerta":
		return b.alertLines(ctx)
	case "clip":
		return []string{"🎬 Highlight CS:GO da FURIA: " + clipURLs[rand.Intn(len(clipURLs))]}
	case "ping":
		return []string{"🏓 Pong!"}
	case "stream":
		return b.streamLines(ctx)
	case "loja":
		return shopLines
	case "votar":
		return b.voteLines(user, arg)
	case "ajuda":
		return helpLines
	default:
		return []string{"❓ Comando não reconhecido. Use !ajuda."}
	}
}

func (b *Bot) statusLines(ctx context.Context) []string {
	live := b.Matches.Live(ctx)
	if live == nil {
		return []string{"🔫 No momento não há partidas da FURIA em andamento."}
	}
	return []string{fmt.Sprintf("🔫 %s %d–%d %s (%s)",
		live.TeamA, live.ScoreA, live.ScoreB, live.TeamB, live.Label)}
}

func (b *Bot) upcomingLines(ctx context.Context) []string {
	games := b.Matches.Upcoming(ctx, 5)
	if len(games) == 0 {
		return []string{"📅 Nenhum jogo agendado nos próximos dias."}
	}
	lines := []string{"📅 Próximos jogos da FURIA:"}
	for _, g := range games {
		lines = append(lines, fmt.Sprintf("%s — %s vs %s (%s)", g.When, g.TeamA, g.TeamB, g.Label))
	}
	return lines
}

func (b *Bot) resultLines() []string {
	hist := b.Matches.RecentResults(3)
	lines := []string{"🏆 Resultados recentes:"}
	return append(lines, hist...)
}

func (b *Bot) alertLines(ctx context.Context) []string {
	// Demonstration stub: the notification fires after a fixed delay, it is
	// not tied to the real match start time.
	when, label := "2025-05-06 18:00", "FURIA vs ENCE (DEMO)"
	if next := b.Matches.Upcoming(ctx, 1); len(next) > 0 {
		when, label = next[0].When, next[0].Label
	}
	go func() {
		select {
		case <-ctx.Done():
		case <-time.After(alertDelay):
			if b.notify != nil {
				b.notify("🚨 DEMONSTRAÇÃO — Começou a partida da FURIA: " + label + "!")
			}
		}
	}()
	return []string{fmt.Sprintf("🔔 Alerta configurado para %s em %s. "+
		"🕑 (Em 10s você verá a notificação de demonstração)", label, when)}
}

func (b *Bot) streamLines(ctx context.Context) []string {
	info := b.Streams.Lookup(ctx, b.Cfg.StreamChannel)
	if info == nil {
		return []string{"🔴 FURIA não está ao vivo agora. Você pode acompanhar o canal: " +
			"https://twitch.tv/" + b.Cfg.StreamChannel}
	}
	return []string{fmt.Sprintf("🔴 FURIA ao vivo no Twitch! %s — %s (thumb: %s)",
		info.Title, info.ChannelURL, info.ThumbnailURL)}
}

func (b *Bot) voteLines(user, nominee string) []string {
	if nominee == "" {
		return []string{"❗ Use !votar nome_do_player"}
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.lastVotes == nil {
		b.lastVotes = make(map[string]time.Time)
	}
	if last, ok := b.lastVotes[user]; ok && time.Since(last) < voteCooldown {
		return []string{"⏳ Calma! Você pode votar de novo em alguns segundos."}
	}
	b.lastVotes[user] = time.Now()
	return []string{"✅ Voto em " + nominee + " registrado! Obrigado!"}
}
