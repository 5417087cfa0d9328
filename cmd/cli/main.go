package main

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/yourusername/yt-wav-go/internal/app"
	"github.com/yourusername/yt-wav-go/internal/domain"
	"github.com/yourusername/yt-wav-go/internal/infrastructure"
	"github.com/yourusername/yt-wav-go/internal/validate"
	"github.com/yourusername/yt-wav-go/pkg/logger"
)

var (
	configPath string
	outputDir  string
	videoMode  bool
	verbose    bool

	rootCmd = &cobra.Command{
		Use:   "ytwav [url]",
		Short: "Download a YouTube playlist or single video as WAV (default) or video",
		Long: `Download a YouTube playlist or single video into a folder.

Audio mode (the default) extracts audio and transcodes it to 44.1 kHz
stereo 16-bit PCM WAV via FFmpeg. Playlists get one subfolder named after
the playlist; single videos go directly into the output folder.`,
		Example: `  ytwav "https://www.youtube.com/playlist?list=PLxxx"
  ytwav "https://www.youtube.com/watch?v=VIDEO_ID" -o ./my_music
  ytwav "https://youtu.be/VIDEO_ID" --video`,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          run,
	}
)

func init() {
	rootCmd.Flags().StringVar(&configPath, "config", "", "Config file path")
	rootCmd.Flags().StringVarP(&outputDir, "output", "o", "",
		"Output folder (default: configured download dir)")
	rootCmd.Flags().BoolVar(&videoMode, "video", false, "Download video instead of audio (WAV)")
	rootCmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")
}

func run(cmd *cobra.Command, args []string) error {
	config, err := app.LoadConfig(configPath)
	if err != nil {
		return err
	}
	if verbose {
		config.Logging.Level = "debug"
	}

	log, err := logger.New(logger.Config{
		Level:      config.Logging.Level,
		Format:     config.Logging.Format,
		OutputPath: config.Logging.OutputPath,
	})
	if err != nil {
		return fmt.Errorf("failed to build logger: %w", err)
	}
	defer log.Sync()

	url := ""
	if len(args) > 0 {
		url = args[0]
	}
	if url == "" {
		url = promptURL()
	}
	if url == "" {
		log.Error("No URL provided")
		return fmt.Errorf("no URL provided")
	}

	if !validate.IsValidYouTubeURL(url) {
		log.Error("Invalid YouTube URL", zap.String("url", url))
		return fmt.Errorf("invalid YouTube URL: %s", url)
	}

	// Use -o if provided; otherwise the configured download folder
	dir := config.Download.OutputDir
	if outputDir != "" {
		dir, err = validate.NormalizePath(outputDir)
		if err != nil {
			return fmt.Errorf("invalid output folder %s: %w", outputDir, err)
		}
	}
	if err := validate.EnsureDir(dir); err != nil {
		log.Error("Cannot create output folder", zap.String("dir", dir), zap.Error(err))
		return fmt.Errorf("cannot create output folder %s: %w", dir, err)
	}

	mode := domain.ModeAudio
	if videoMode {
		mode = domain.ModeVideo
	}

	log.Info("Starting", zap.String("url", url), zap.String("output", dir), zap.String("mode", string(mode)))

	req := domain.NewRequest(url, dir, mode)
	downloader := infrastructure.NewYouTubeDownloader(&config.Download, &config.Audio, log)
	notifier := infrastructure.NewNotificationService(&config.Notification, log)
	manager := app.NewDownloadManager(downloader, notifier, log)

	progress := func(e domain.ProgressEvent) {
		if e.TotalKnown && e.Total > 0 {
			log.Info(fmt.Sprintf("[%d/%d] %s", e.Current, e.Total, e.Status),
				zap.String("file", e.Filename))
		} else {
			log.Info(string(e.Status), zap.String("file", e.Filename))
		}
	}

	summary, err := manager.ProcessDownload(cmd.Context(), req, progress)
	if err != nil {
		return err
	}

	log.Info("Done", zap.Int("success", summary.Succeeded), zap.Int("failed", summary.Failed))
	if !summary.Ok() {
		return fmt.Errorf("completed with %d failed item(s)", summary.Failed)
	}
	return nil
}

// promptURL reads a URL from stdin. Interrupted or empty input yields "".
func promptURL() string {
	fmt.Print("YouTube playlist or video URL: ")
	line, err := bufio.NewReader(os.Stdin).ReadString('\n')
	if err != nil && line == "" {
		return ""
	}
	return strings.TrimSpace(line)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
