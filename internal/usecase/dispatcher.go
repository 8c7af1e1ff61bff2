package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	domainErrors "github.com/ndrsndbk/stampbot/internal/domain/errors"
	"github.com/ndrsndbk/stampbot/internal/domain/model"
	"github.com/ndrsndbk/stampbot/internal/domain/repository"
)

// Command is a chat keyword recognized by the dispatcher.
type Command string

const (
	CommandSignup Command = "SIGNUP"
	CommandStamp  Command = "STAMP"
	CommandCard   Command = "CARD"
	CommandReport Command = "REPORT"
	// CommandHelp is the implicit fallback for anything unrecognized.
	CommandHelp Command = "HELP"
)

// ParseCommand resolves trimmed, case-insensitive message text to a
// command. Empty or unknown text falls back to help.
func ParseCommand(text string) Command {
	switch cmd := Command(strings.ToUpper(strings.TrimSpace(text))); cmd {
	case CommandSignup, CommandStamp, CommandCard, CommandReport:
		return cmd
	default:
		return CommandHelp
	}
}

// Notifier delivers replies over the messaging channel.
type Notifier interface {
	SendText(ctx context.Context, recipientID, text string) error
	SendImage(ctx context.Context, recipientID, imageURL, caption string) error
}

const (
	welcomeText = "👋 *Welcome to the Demo Coffee Shop stamp card!*\n\n" +
		"You’re now signed up via Instagram.\n\n" +
		"You can send:\n" +
		"• *STAMP* – log a visit and collect a stamp\n" +
		"• *CARD* – see your current stamp card\n" +
		"• *REPORT* – open the live dashboard\n\n" +
		"_(Prototype in testing mode)_"

	streakTwoText = "🔥 *You’re on a 2-visit streak!* 🔥\n\n" +
		"Keep it going — reach *5 visits* and earn an *extra stamp* 🏆"

	streakFiveText = "🏆 *5-Visit Streak!* 🏆\n\n" +
		"You’ve unlocked *double stamps today* — this check-in counts as *+2* and " +
		"your exclusive *coffee bag reward*!\n" +
		"Keep the momentum going!\n" +
		"_(Double applies to this visit only.)_"

	helpText = "👋 *Demo Coffee Shop stamp card (Instagram)*\n\n" +
		"You can send:\n" +
		"• *SIGNUP* – register and start your card\n" +
		"• *STAMP* – log a visit and collect a stamp\n" +
		"• *CARD* – see your current stamp card\n" +
		"• *REPORT* – open the live dashboard\n\n" +
		"_Prototype currently in testing mode._"

	stampCaptionFormat = "You now have *%d* stamp(s). 10 stamps = 1 free coffee ☕"
	cardCaptionFormat  = "You currently have *%d* stamp(s). 10 stamps = 1 free coffee ☕"
)

// Dispatcher resolves inbound messages to commands and executes them
// against the state store, replying through the notifier. Every
// external call is best-effort: failures are logged and handling
// continues with safe defaults.
type Dispatcher struct {
	customers    repository.CustomerRepository
	streaks      *StreakUseCase
	cards        *CardRenderer
	notifier     Notifier
	dashboardURL string
	logger       *slog.Logger
	now          func() time.Time
}

// NewDispatcher constructs the command dispatcher.
func NewDispatcher(
	customers repository.CustomerRepository,
	streaks *StreakUseCase,
	cards *CardRenderer,
	notifier Notifier,
	dashboardURL string,
	logger *slog.Logger,
) *Dispatcher {
	return &Dispatcher{
		customers:    customers,
		streaks:      streaks,
		cards:        cards,
		notifier:     notifier,
		dashboardURL: dashboardURL,
		logger:       logger,
		now:          func() time.Time { return time.Now().UTC().Truncate(time.Second) },
	}
}

// Dispatch handles one inbound message end to end. It never returns an
// error: a recognized command always attempts a reply, and anything
// that goes wrong downstream is logged.
func (d *Dispatcher) Dispatch(ctx context.Context, senderID, text string) {
	switch ParseCommand(text) {
	case CommandSignup:
		d.handleSignup(ctx, senderID)
	case CommandStamp:
		d.handleStamp(ctx, senderID)
	case CommandCard:
		d.handleCard(ctx, senderID)
	case CommandReport:
		d.handleReport(ctx, senderID)
	default:
		d.sendText(ctx, senderID, helpText)
	}
}

func (d *Dispatcher) handleSignup(ctx context.Context, senderID string) {
	if _, err := d.customers.Get(ctx, senderID); err != nil {
		d.logLookupFailure(senderID, err)
		customer := model.Customer{ID: senderID, Visits: 0, LastVisitAt: d.now()}
		if err := d.customers.Upsert(ctx, customer); err != nil && !errors.Is(err, domainErrors.ErrNotConfigured) {
			d.logger.Error("customer upsert failed",
				slog.String("customer_id", senderID),
				slog.String("error", err.Error()),
			)
		}
	}
	d.sendText(ctx, senderID, welcomeText)
}

func (d *Dispatcher) handleStamp(ctx context.Context, senderID string) {
	visits := d.currentVisits(ctx, senderID)

	advance := d.streaks.Advance(ctx, senderID)
	addStamps := 1

	if advance.CrossedTwo {
		d.sendText(ctx, senderID, streakTwoText)
	}
	if advance.CrossedFive {
		addStamps = 2
		d.sendText(ctx, senderID, streakFiveText)
	}

	newVisits := visits + addStamps
	customer := model.Customer{ID: senderID, Visits: newVisits, LastVisitAt: d.now()}
	if err := d.customers.Upsert(ctx, customer); err != nil && !errors.Is(err, domainErrors.ErrNotConfigured) {
		d.logger.Error("customer upsert failed",
			slog.String("customer_id", senderID),
			slog.String("error", err.Error()),
		)
	}

	d.sendImage(ctx, senderID, d.cards.URL(newVisits), fmt.Sprintf(stampCaptionFormat, newVisits))
}

func (d *Dispatcher) handleCard(ctx context.Context, senderID string) {
	visits := d.currentVisits(ctx, senderID)
	d.sendImage(ctx, senderID, d.cards.URL(visits), fmt.Sprintf(cardCaptionFormat, visits))
}

func (d *Dispatcher) handleReport(ctx context.Context, senderID string) {
	report := "📊 *Here’s your dashboard*\n\n" +
		d.dashboardURL + "\n\n" +
		"You can see:\n" +
		"• Total cards\n" +
		"• Stamps issued & redeemed\n" +
		"• Redemption rate & ROI\n"
	d.sendText(ctx, senderID, report)
}

// currentVisits reads the customer's visit count, defaulting to zero
// when the record is absent or the store is unavailable.
func (d *Dispatcher) currentVisits(ctx context.Context, senderID string) int {
	customer, err := d.customers.Get(ctx, senderID)
	if err != nil {
		d.logLookupFailure(senderID, err)
		return 0
	}
	return customer.Visits
}

func (d *Dispatcher) logLookupFailure(senderID string, err error) {
	if errors.Is(err, domainErrors.ErrNotFound) || errors.Is(err, domainErrors.ErrNotConfigured) {
		return
	}
	d.logger.Error("customer lookup failed",
		slog.String("customer_id", senderID),
		slog.String("error", err.Error()),
	)
}

func (d *Dispatcher) sendText(ctx context.Context, recipientID, text string) {
	if err := d.notifier.SendText(ctx, recipientID, text); err != nil {
		d.logger.Error("send text failed",
			slog.String("recipient", recipientID),
			slog.String("error", err.Error()),
		)
	}
}

func (d *Dispatcher) sendImage(ctx context.Context, recipientID, imageURL, caption string) {
	if err := d.notifier.SendImage(ctx, recipientID, imageURL, caption); err != nil {
		d.logger.Error("send image failed",
			slog.String("recipient", recipientID),
			slog.String("error", err.Error()),
		)
	}
}
