package infrastructure

import (
	"path/filepath"
	"testing"

	"github.com/lrstanley/go-ytdlp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/yourusername/yt-wav-go/internal/domain"
)

func testDownloader() *YouTubeDownloader {
	config := domain.DefaultConfig()
	return NewYouTubeDownloader(&config.Download, &config.Audio, zap.NewNop())
}

func strPtr(s string) *string { return &s }

func TestOutputTemplate(t *testing.T) {
	tests := []struct {
		name     string
		mode     domain.Mode
		playlist bool
		expected string
	}{
		{"playlist video", domain.ModeVideo, true, "%(playlist_title)s/%(title)s.%(ext)s"},
		{"single video", domain.ModeVideo, false, "%(title)s.%(ext)s"},
		{"playlist audio forces wav", domain.ModeAudio, true, "%(playlist_title)s/%(title)s.wav"},
		{"single audio forces wav", domain.ModeAudio, false, "%(title)s.wav"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, outputTemplate(tt.mode, tt.playlist))
		})
	}
}

func TestFormatSelector(t *testing.T) {
	assert.Equal(t, "bestaudio/best", formatSelector(domain.ModeAudio))
	assert.Equal(t, "bestvideo+bestaudio/best", formatSelector(domain.ModeVideo))
}

func TestPostprocessorArgs(t *testing.T) {
	d := testDownloader()

	assert.Equal(t, "ExtractAudio+ffmpeg:-ar 44100 -ac 2 -acodec pcm_s16le", d.postprocessorArgs())
}

func TestValidate(t *testing.T) {
	d := testDownloader()

	assert.NoError(t, d.Validate("https://www.youtube.com/watch?v=abc123"))
	assert.Error(t, d.Validate("https://vimeo.com/12345"))
	assert.Error(t, d.Validate(""))
}

func TestCheckPrerequisites_VideoModeNeedsNothing(t *testing.T) {
	config := domain.DefaultConfig()
	config.Download.FFmpegBinary = "definitely-not-a-real-binary-xyz"
	d := NewYouTubeDownloader(&config.Download, &config.Audio, zap.NewNop())

	assert.NoError(t, d.CheckPrerequisites(domain.ModeVideo))
}

func TestCheckPrerequisites_AudioModeMissingFFmpeg(t *testing.T) {
	config := domain.DefaultConfig()
	config.Download.FFmpegBinary = "definitely-not-a-real-binary-xyz"
	d := NewYouTubeDownloader(&config.Download, &config.Audio, zap.NewNop())

	err := d.CheckPrerequisites(domain.ModeAudio)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrFFmpegNotFound)
	assert.Contains(t, err.Error(), "FFmpeg")
}

func TestMetadataFromInfo_NoEntriesIsSingleVideo(t *testing.T) {
	meta := metadataFromInfo(&ytdlp.ExtractedInfo{Title: strPtr("Some Video")})

	assert.Equal(t, 1, meta.Items)
	assert.False(t, meta.Playlist)
	assert.Equal(t, "Some Video", meta.Title)
}

func TestMetadataFromInfo_NilInfo(t *testing.T) {
	meta := metadataFromInfo(nil)

	assert.Equal(t, 1, meta.Items)
	assert.False(t, meta.Playlist)
}

func TestMetadataFromInfo_FiltersUnavailableEntries(t *testing.T) {
	info := &ytdlp.ExtractedInfo{
		Title: strPtr("My Playlist"),
		Entries: []*ytdlp.ExtractedInfo{
			nil,
			{Title: strPtr("one")},
			nil,
			{Title: strPtr("two")},
		},
	}

	meta := metadataFromInfo(info)

	assert.Equal(t, 2, meta.Items)
	assert.True(t, meta.Playlist)
}

func TestMetadataFromInfo_AllEntriesUnavailable(t *testing.T) {
	info := &ytdlp.ExtractedInfo{
		Entries: []*ytdlp.ExtractedInfo{nil, nil},
	}

	meta := metadataFromInfo(info)

	// nothing usable left, treat as a single item
	assert.Equal(t, 1, meta.Items)
	assert.False(t, meta.Playlist)
}

func TestMetadataFromInfo_SingleEntryPlaylistUsesSingleLayout(t *testing.T) {
	info := &ytdlp.ExtractedInfo{
		Entries: []*ytdlp.ExtractedInfo{{Title: strPtr("only")}},
	}

	meta := metadataFromInfo(info)

	assert.Equal(t, 1, meta.Items)
	assert.False(t, meta.Playlist)
}

func TestProgressTracker_PartialBatch(t *testing.T) {
	tracker := newProgressTracker(5, nil, zap.NewNop())

	for i := 0; i < 3; i++ {
		tracker.handle(ytdlp.ProgressUpdate{Status: ytdlp.ProgressStatusDownloading})
		tracker.handle(ytdlp.ProgressUpdate{Status: ytdlp.ProgressStatusFinished})
	}

	assert.Equal(t, domain.Summary{Succeeded: 3, Failed: 2}, tracker.summary())
}

func TestProgressTracker_CurrentIndexDerivation(t *testing.T) {
	var events []domain.ProgressEvent
	tracker := newProgressTracker(2, func(e domain.ProgressEvent) {
		events = append(events, e)
	}, zap.NewNop())

	tracker.handle(ytdlp.ProgressUpdate{Status: ytdlp.ProgressStatusDownloading, Filename: "/tmp/a.wav"})
	tracker.handle(ytdlp.ProgressUpdate{Status: ytdlp.ProgressStatusFinished, Filename: "/tmp/a.wav"})
	tracker.handle(ytdlp.ProgressUpdate{Status: ytdlp.ProgressStatusDownloading, Filename: "/tmp/b.wav"})
	tracker.handle(ytdlp.ProgressUpdate{Status: ytdlp.ProgressStatusFinished, Filename: "/tmp/b.wav"})

	require.Len(t, events, 4)

	assert.Equal(t, domain.ProgressEvent{Current: 1, Total: 2, TotalKnown: true, Filename: "a.wav", Status: domain.ProgressDownloading}, events[0])
	assert.Equal(t, domain.ProgressEvent{Current: 1, Total: 2, TotalKnown: true, Filename: "a.wav", Status: domain.ProgressFinished}, events[1])
	assert.Equal(t, domain.ProgressEvent{Current: 2, Total: 2, TotalKnown: true, Filename: "b.wav", Status: domain.ProgressDownloading}, events[2])
	assert.Equal(t, domain.ProgressEvent{Current: 2, Total: 2, TotalKnown: true, Filename: "b.wav", Status: domain.ProgressFinished}, events[3])
}

func TestProgressTracker_ErrorStatusDoesNotCount(t *testing.T) {
	tracker := newProgressTracker(2, nil, zap.NewNop())

	tracker.handle(ytdlp.ProgressUpdate{Status: ytdlp.ProgressStatusDownloading})
	tracker.handle(ytdlp.ProgressUpdate{Status: ytdlp.ProgressStatusError})
	tracker.handle(ytdlp.ProgressUpdate{Status: ytdlp.ProgressStatusDownloading})
	tracker.handle(ytdlp.ProgressUpdate{Status: ytdlp.ProgressStatusFinished})

	assert.Equal(t, domain.Summary{Succeeded: 1, Failed: 1}, tracker.summary())
}

func TestDisplayName(t *testing.T) {
	assert.Equal(t, "song.wav",
		displayName(ytdlp.ProgressUpdate{Filename: filepath.Join("some", "dir", "song.wav")}))
	assert.Equal(t, "A Title",
		displayName(ytdlp.ProgressUpdate{Info: &ytdlp.ExtractedInfo{Title: strPtr("A Title")}}))
	assert.Equal(t, "?", displayName(ytdlp.ProgressUpdate{}))
}

func TestDisplayArgs_AudioMode(t *testing.T) {
	d := testDownloader()
	req := domain.NewRequest("https://youtu.be/abc", "/music", domain.ModeAudio)

	args := d.displayArgs(req, false)

	assert.Contains(t, args, "-x")
	assert.Contains(t, args, "--audio-format")
	assert.Contains(t, args, "bestaudio/best")
	assert.Contains(t, args, filepath.Join("/music", "%(title)s.wav"))
	assert.Equal(t, "https://youtu.be/abc", args[len(args)-1])
}

func TestDisplayArgs_VideoPlaylist(t *testing.T) {
	d := testDownloader()
	req := domain.NewRequest("https://www.youtube.com/playlist?list=PL1", "/videos", domain.ModeVideo)

	args := d.displayArgs(req, true)

	assert.NotContains(t, args, "-x")
	assert.Contains(t, args, "bestvideo+bestaudio/best")
	assert.Contains(t, args, filepath.Join("/videos", "%(playlist_title)s/%(title)s.%(ext)s"))
}
