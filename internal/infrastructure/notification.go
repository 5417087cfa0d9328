package infrastructure

import (
	"fmt"
	"os/exec"

	"go.uber.org/zap"

	"github.com/yourusername/yt-wav-go/internal/domain"
)

// NotificationService sends desktop notifications about download requests.
// Disabled by default; enabled through configuration.
type NotificationService struct {
	config *domain.NotificationConfig
	logger *zap.Logger
}

// NewNotificationService creates a new notification service
func NewNotificationService(config *domain.NotificationConfig, logger *zap.Logger) *NotificationService {
	return &NotificationService{
		config: config,
		logger: logger,
	}
}

// Send sends a notification
func (n *NotificationService) Send(title, message string) error {
	if !n.config.Enabled {
		n.logger.Debug("Notifications disabled, skipping",
			zap.String("title", title),
			zap.String("message", message))
		return nil
	}

	switch n.config.Method {
	case "osascript":
		return n.sendOSAScript(title, message)
	case "notify-send":
		return n.sendNotifySend(title, message)
	default:
		n.logger.Warn("Unknown notification method", zap.String("method", n.config.Method))
		return nil
	}
}

// sendOSAScript sends notification using macOS osascript
func (n *NotificationService) sendOSAScript(title, message string) error {
	script := fmt.Sprintf(`display notification "%s" with title "%s"`, message, title)
	cmd := exec.Command("osascript", "-e", script)

	if err := cmd.Run(); err != nil {
		n.logger.Error("Failed to send notification",
			zap.String("method", "osascript"),
			zap.Error(err))
		return err
	}
	return nil
}

// sendNotifySend sends notification using Linux notify-send
func (n *NotificationService) sendNotifySend(title, message string) error {
	cmd := exec.Command("notify-send", title, message)

	if err := cmd.Run(); err != nil {
		n.logger.Error("Failed to send notification",
			zap.String("method", "notify-send"),
			zap.Error(err))
		return err
	}
	return nil
}

// NotifyDownloadStarted sends notification when a request starts
func (n *NotificationService) NotifyDownloadStarted(req *domain.Request) {
	n.Send("Download Started", fmt.Sprintf("Processing: %s (%s)", truncateString(req.URL, 40), req.Mode))
}

// NotifyDownloadCompleted sends notification when a request completes
func (n *NotificationService) NotifyDownloadCompleted(req *domain.Request, summary domain.Summary) {
	n.Send("Download Completed",
		fmt.Sprintf("Success: %d, Failed: %d — %s", summary.Succeeded, summary.Failed, truncateString(req.URL, 40)))
}

// NotifyDownloadFailed sends notification when a request fails
func (n *NotificationService) NotifyDownloadFailed(req *domain.Request, err error) {
	n.Send("Download Failed", fmt.Sprintf("Failed: %s", truncateString(req.URL, 40)))
}

// truncateString truncates a string to the specified length
func truncateString(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen] + "..."
}
