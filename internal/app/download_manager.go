package app

import (
	"context"

	"go.uber.org/zap"

	"github.com/yourusername/yt-wav-go/internal/domain"
	"github.com/yourusername/yt-wav-go/internal/infrastructure"
)

// DownloadManager runs one download request end to end: status transitions,
// delegation to the downloader and notifications. No retries happen at this
// layer; yt-dlp's own skip-and-continue handles bad playlist items.
type DownloadManager struct {
	downloader domain.Downloader
	notifier   *infrastructure.NotificationService
	logger     *zap.Logger
}

// NewDownloadManager creates a new download manager
func NewDownloadManager(
	downloader domain.Downloader,
	notifier *infrastructure.NotificationService,
	logger *zap.Logger,
) *DownloadManager {
	return &DownloadManager{
		downloader: downloader,
		notifier:   notifier,
		logger:     logger,
	}
}

// ProcessDownload processes a single download request
func (dm *DownloadManager) ProcessDownload(ctx context.Context, req *domain.Request, progress domain.ProgressFunc) (domain.Summary, error) {
	dm.logger.Info("Processing download",
		zap.String("id", req.ID),
		zap.String("url", req.URL),
		zap.String("mode", string(req.Mode)),
		zap.String("output", req.OutputDir))

	req.MarkProcessing()
	if dm.notifier != nil {
		dm.notifier.NotifyDownloadStarted(req)
	}

	summary, err := dm.downloader.Download(ctx, req, progress)
	if err != nil {
		req.MarkFailed(err)
		if dm.notifier != nil {
			dm.notifier.NotifyDownloadFailed(req, err)
		}
		dm.logger.Error("Download failed",
			zap.String("id", req.ID),
			zap.String("url", req.URL),
			zap.Error(err))
		return summary, err
	}

	req.MarkCompleted()
	dm.logger.Info("Download completed",
		zap.String("id", req.ID),
		zap.Int("succeeded", summary.Succeeded),
		zap.Int("failed", summary.Failed))

	if dm.notifier != nil {
		dm.notifier.NotifyDownloadCompleted(req, summary)
	}
	return summary, nil
}
