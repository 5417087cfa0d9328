package infrastructure

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
	"path/filepath"
	"time"

	"github.com/lrstanley/go-ytdlp"
	"go.uber.org/zap"

	"github.com/yourusername/yt-wav-go/internal/domain"
	"github.com/yourusername/yt-wav-go/internal/validate"
)

// Output templates (yt-dlp format). Playlists get one subfolder named after
// the playlist; files go inside it. The audio templates force the .wav
// extension so post-processed files never keep the pre-conversion extension.
const (
	playlistTemplate    = "%(playlist_title)s/%(title)s.%(ext)s"
	playlistTemplateWAV = "%(playlist_title)s/%(title)s.wav"
	singleTemplate      = "%(title)s.%(ext)s"
	singleTemplateWAV   = "%(title)s.wav"

	formatAudio = "bestaudio/best"
	formatVideo = "bestvideo+bestaudio/best"

	progressInterval = 500 * time.Millisecond
)

// ErrFFmpegNotFound is returned when the FFmpeg binary required for audio
// extraction cannot be found on the system path.
var ErrFFmpegNotFound = errors.New("ffmpeg is not installed or not in PATH")

// YouTubeDownloader implements domain.Downloader on top of yt-dlp.
// Playlist traversal, stream selection and the FFmpeg post-processing step
// are delegated to yt-dlp; this type only builds the invocation and
// translates its progress stream.
type YouTubeDownloader struct {
	download *domain.DownloadConfig
	audio    *domain.AudioConfig
	logger   *zap.Logger
}

// NewYouTubeDownloader creates a new YouTube downloader
func NewYouTubeDownloader(download *domain.DownloadConfig, audio *domain.AudioConfig, logger *zap.Logger) *YouTubeDownloader {
	return &YouTubeDownloader{
		download: download,
		audio:    audio,
		logger:   logger,
	}
}

// Validate validates if the downloader can handle the given URL
func (d *YouTubeDownloader) Validate(url string) error {
	if !validate.IsValidYouTubeURL(url) {
		return fmt.Errorf("invalid YouTube URL: %s", url)
	}
	return nil
}

// CheckPrerequisites fails when a binary the given mode depends on is not
// discoverable. Only audio mode needs FFmpeg, for the WAV transcode.
func (d *YouTubeDownloader) CheckPrerequisites(mode domain.Mode) error {
	if mode != domain.ModeAudio {
		return nil
	}
	if _, err := exec.LookPath(d.download.FFmpegBinary); err != nil {
		return fmt.Errorf("%w: audio extraction to WAV requires FFmpeg"+
			" (macOS: brew install ffmpeg | Ubuntu: sudo apt install ffmpeg)", ErrFFmpegNotFound)
	}
	return nil
}

// FetchMetadata resolves the URL with a flat-playlist, metadata-only probe.
// Library errors are logged and wrapped, never propagated raw.
func (d *YouTubeDownloader) FetchMetadata(ctx context.Context, url string) (*domain.Metadata, error) {
	probe := ytdlp.New().
		Quiet().
		NoWarnings().
		SkipDownload().
		FlatPlaylist().
		DumpSingleJSON()
	if d.download.YTDLPBinary != "" {
		probe.SetExecutable(d.download.YTDLPBinary)
	}

	result, err := probe.Run(ctx, url)
	if err != nil {
		d.logger.Error("Failed to fetch metadata", zap.String("url", url), zap.Error(err))
		return nil, fmt.Errorf("fetch metadata: %w", err)
	}

	info, err := result.GetExtractedInfo()
	if err != nil {
		d.logger.Error("Failed to parse metadata", zap.String("url", url), zap.Error(err))
		return nil, fmt.Errorf("parse metadata: %w", err)
	}
	if len(info) == 0 {
		return nil, fmt.Errorf("no metadata returned for %s", url)
	}

	return metadataFromInfo(info[0]), nil
}

// Download downloads a playlist or single video and returns the final
// success/failure accounting. A metadata fetch failure aborts the request
// as an empty batch. A download error that escapes yt-dlp aborts the rest
// of the batch, but items finished before it still count.
func (d *YouTubeDownloader) Download(ctx context.Context, req *domain.Request, progress domain.ProgressFunc) (domain.Summary, error) {
	if err := d.CheckPrerequisites(req.Mode); err != nil {
		return domain.Summary{}, err
	}

	meta, err := d.FetchMetadata(ctx, req.URL)
	if err != nil {
		d.logger.Error("Invalid or inaccessible URL", zap.String("url", req.URL))
		return domain.Summary{}, nil
	}

	d.logger.Info("Total items to process",
		zap.Int("items", meta.Items),
		zap.String("title", meta.Title))

	tracker := newProgressTracker(meta.Items, progress, d.logger)
	cmd := d.buildCommand(req, meta.Playlist)
	cmd.ProgressFunc(progressInterval, tracker.handle)

	d.logger.Debug("Invoking yt-dlp",
		zap.String("cmd", ShellEscapeCommand(d.download.YTDLPBinary, d.displayArgs(req, meta.Playlist)...)))

	if _, err := cmd.Run(ctx, req.URL); err != nil {
		d.logger.Error("Download error", zap.String("url", req.URL), zap.Error(err))
	}

	return tracker.summary(), nil
}

// buildCommand assembles the yt-dlp invocation for one request
func (d *YouTubeDownloader) buildCommand(req *domain.Request, playlist bool) *ytdlp.Command {
	cmd := ytdlp.New().
		Format(formatSelector(req.Mode)).
		Output(filepath.Join(req.OutputDir, outputTemplate(req.Mode, playlist))).
		IgnoreErrors()
	if d.download.YTDLPBinary != "" {
		cmd.SetExecutable(d.download.YTDLPBinary)
	}
	if req.Mode == domain.ModeAudio {
		cmd.ExtractAudio().
			AudioFormat(d.audio.Format).
			PostProcessorArgs(d.postprocessorArgs())
	}
	return cmd
}

// displayArgs reconstructs a representative argument list for logging only;
// the real invocation is assembled inside the library.
func (d *YouTubeDownloader) displayArgs(req *domain.Request, playlist bool) []string {
	args := []string{
		"-f", formatSelector(req.Mode),
		"-o", filepath.Join(req.OutputDir, outputTemplate(req.Mode, playlist)),
		"--ignore-errors",
	}
	if req.Mode == domain.ModeAudio {
		args = append(args,
			"-x",
			"--audio-format", d.audio.Format,
			"--postprocessor-args", d.postprocessorArgs())
	}
	return append(args, req.URL)
}

// postprocessorArgs fixes the WAV parameters applied by the FFmpeg
// extract-audio step
func (d *YouTubeDownloader) postprocessorArgs() string {
	return fmt.Sprintf("ExtractAudio+ffmpeg:-ar %d -ac %d -acodec %s",
		d.audio.SampleRate, d.audio.Channels, d.audio.Codec)
}

// outputTemplate selects one of the four path templates by mode and
// playlist shape
func outputTemplate(mode domain.Mode, playlist bool) string {
	if mode == domain.ModeVideo {
		if playlist {
			return playlistTemplate
		}
		return singleTemplate
	}
	if playlist {
		return playlistTemplateWAV
	}
	return singleTemplateWAV
}

// formatSelector returns the yt-dlp format string for a mode
func formatSelector(mode domain.Mode) string {
	if mode == domain.ModeVideo {
		return formatVideo
	}
	return formatAudio
}

// metadataFromInfo converts the library's nullable playlist shape into the
// explicit Metadata type. Zero or absent entries means a single video;
// nil entries (unavailable playlist items from a partial fetch) are not
// counted.
func metadataFromInfo(info *ytdlp.ExtractedInfo) *domain.Metadata {
	meta := &domain.Metadata{Items: 1}
	if info == nil {
		return meta
	}
	if info.Title != nil {
		meta.Title = *info.Title
	}
	if items := countEntries(info.Entries); items > 0 {
		meta.Items = items
	}
	meta.Playlist = meta.Items > 1
	return meta
}

// countEntries counts the non-nil playlist entries
func countEntries(entries []*ytdlp.ExtractedInfo) int {
	count := 0
	for _, entry := range entries {
		if entry != nil {
			count++
		}
	}
	return count
}

// progressTracker owns the running counters for one download batch.
// succeeded counts finished items; while an item is still downloading the
// current index is derived as succeeded+1, since yt-dlp does not report a
// playlist position.
type progressTracker struct {
	total     int
	succeeded int
	current   int
	notify    domain.ProgressFunc
	logger    *zap.Logger
}

func newProgressTracker(total int, notify domain.ProgressFunc, logger *zap.Logger) *progressTracker {
	return &progressTracker{
		total:  total,
		notify: notify,
		logger: logger,
	}
}

// handle translates one library progress update into a domain event
func (t *progressTracker) handle(update ytdlp.ProgressUpdate) {
	status := progressStatus(update.Status)
	switch status {
	case domain.ProgressFinished:
		t.succeeded++
		t.current = t.succeeded
	case domain.ProgressDownloading:
		t.current = t.succeeded + 1
	}

	event := domain.ProgressEvent{
		Current:    t.current,
		Total:      t.total,
		TotalKnown: t.total > 0,
		Filename:   displayName(update),
		Status:     status,
	}
	if t.notify != nil {
		t.notify(event)
	}

	switch status {
	case domain.ProgressFinished:
		t.logger.Info("Finished", zap.String("file", event.Filename))
	case domain.ProgressError:
		t.logger.Warn("Item failed", zap.String("file", event.Filename))
	default:
		var percent float64
		if update.TotalBytes > 0 {
			percent = float64(update.DownloadedBytes) / float64(update.TotalBytes) * 100
		}
		t.logger.Debug("Progress",
			zap.String("file", event.Filename),
			zap.Float64("percent", percent))
	}
}

// summary returns the final accounting; anything not finished failed
func (t *progressTracker) summary() domain.Summary {
	return domain.Summary{
		Succeeded: t.succeeded,
		Failed:    t.total - t.succeeded,
	}
}

// progressStatus maps library statuses onto the three phases callers see
func progressStatus(s ytdlp.ProgressStatus) domain.ProgressStatus {
	switch s {
	case ytdlp.ProgressStatusFinished:
		return domain.ProgressFinished
	case ytdlp.ProgressStatusError:
		return domain.ProgressError
	default:
		return domain.ProgressDownloading
	}
}

// displayName picks a short human-readable name for progress lines
func displayName(update ytdlp.ProgressUpdate) string {
	if update.Filename != "" {
		return filepath.Base(update.Filename)
	}
	if update.Info != nil && update.Info.Title != nil {
		return *update.Info.Title
	}
	return "?"
}
