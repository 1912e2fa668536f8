package notifier

import (
	"fmt"
	"time"

	"safedrop/config"
	"safedrop/pkg/logger"
	"safedrop/pkg/models"

	tele "gopkg.in/telebot.v3"
)

// INotifier pushes moderation events to the admin Telegram channel.
type INotifier interface {
	DriverApplied(app *models.Profile, d *models.Driver)
	DriverReapplied(profileID string)
	ComplaintFiled(c *models.Complaint)
	OrderCompleted(o *models.Order)
}

type telegramNotifier struct {
	bot    *tele.Bot
	chatID int64
	log    logger.ILogger
}

// noop is used when no bot token is configured, so callers never need a nil
// check.
type noop struct{}

func (noop) DriverApplied(*models.Profile, *models.Driver) {}
func (noop) DriverReapplied(string)                        {}
func (noop) ComplaintFiled(*models.Complaint)              {}
func (noop) OrderCompleted(*models.Order)                  {}

func New(cfg config.Config, log logger.ILogger) (INotifier, error) {
	if cfg.TelegramBotToken == "" || cfg.AdminChatID == 0 {
		log.Info("telegram notifier disabled")
		return noop{}, nil
	}

	pref := tele.Settings{
		Token:  cfg.TelegramBotToken,
		Poller: &tele.LongPoller{Timeout: 10 * time.Second},
	}
	b, err := tele.NewBot(pref)
	if err != nil {
		return nil, err
	}

	return &telegramNotifier{bot: b, chatID: cfg.AdminChatID, log: log}, nil
}

func (n *telegramNotifier) send(text string) {
	_, err := n.bot.Send(tele.ChatID(n.chatID), text)
	if err != nil {
		n.log.Warning("failed to send admin notification", logger.Error(err))
	}
}

func (n *telegramNotifier) DriverApplied(p *models.Profile, d *models.Driver) {
	n.send(fmt.Sprintf("New driver application\n%s (%s)\n%s %s, plate %s",
		p.FullName, p.Email, d.VehicleMake, d.VehicleModel, d.VehiclePlate))
}

func (n *telegramNotifier) DriverReapplied(profileID string) {
	n.send(fmt.Sprintf("Driver %s resubmitted their application", profileID))
}

func (n *telegramNotifier) ComplaintFiled(c *models.Complaint) {
	n.send(fmt.Sprintf("New complaint: %s\nfrom %s", c.Subject, c.ProfileID))
}

func (n *telegramNotifier) OrderCompleted(o *models.Order) {
	n.send(fmt.Sprintf("Order %s completed, %.2f", o.ID, o.Price))
}
