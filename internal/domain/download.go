package domain

import (
	"time"

	"github.com/google/uuid"
)

// RequestStatus represents the current status of a download request
type RequestStatus string

const (
	StatusPending    RequestStatus = "pending"
	StatusProcessing RequestStatus = "processing"
	StatusCompleted  RequestStatus = "completed"
	StatusFailed     RequestStatus = "failed"
)

// Mode selects what gets downloaded and how it is post-processed
type Mode string

const (
	ModeAudio Mode = "audio" // extract audio, transcode to WAV
	ModeVideo Mode = "video" // keep the video container, no transcoding
)

// ValidMode checks if a download mode is valid
func ValidMode(mode Mode) bool {
	return mode == ModeAudio || mode == ModeVideo
}

// Request represents one download invocation: a URL, a destination
// directory and a mode. It is immutable apart from its status fields.
type Request struct {
	ID           string        `json:"id"`
	URL          string        `json:"url"`
	OutputDir    string        `json:"output_dir"`
	Mode         Mode          `json:"mode"`
	Status       RequestStatus `json:"status"`
	ErrorMessage string        `json:"error_message,omitempty"`
	CreatedAt    time.Time     `json:"created_at"`
	StartedAt    *time.Time    `json:"started_at,omitempty"`
	CompletedAt  *time.Time    `json:"completed_at,omitempty"`
}

// NewRequest creates a new download request
func NewRequest(url, outputDir string, mode Mode) *Request {
	return &Request{
		ID:        uuid.New().String(),
		URL:       url,
		OutputDir: outputDir,
		Mode:      mode,
		Status:    StatusPending,
		CreatedAt: time.Now(),
	}
}

// MarkProcessing marks the request as processing
func (r *Request) MarkProcessing() {
	r.Status = StatusProcessing
	now := time.Now()
	r.StartedAt = &now
}

// MarkCompleted marks the request as completed
func (r *Request) MarkCompleted() {
	r.Status = StatusCompleted
	now := time.Now()
	r.CompletedAt = &now
}

// MarkFailed marks the request as failed
func (r *Request) MarkFailed(err error) {
	r.Status = StatusFailed
	if err != nil {
		r.ErrorMessage = err.Error()
	}
	now := time.Now()
	r.CompletedAt = &now
}

// IsTerminal checks if the request is in a terminal state
func (r *Request) IsTerminal() bool {
	return r.Status == StatusCompleted || r.Status == StatusFailed
}

// ProgressStatus is the phase reported by a progress event
type ProgressStatus string

const (
	ProgressDownloading ProgressStatus = "downloading"
	ProgressFinished    ProgressStatus = "finished"
	ProgressError       ProgressStatus = "error"
)

// ProgressEvent is one transient progress update emitted during a download.
// Total is only meaningful when TotalKnown is true; an unknown batch size is
// reported explicitly rather than through a sentinel value.
type ProgressEvent struct {
	Current    int
	Total      int
	TotalKnown bool
	Filename   string
	Status     ProgressStatus
}

// ProgressFunc receives progress events for one download request.
// A nil ProgressFunc means no observer.
type ProgressFunc func(ProgressEvent)

// Summary is the final accounting for one download request
type Summary struct {
	Succeeded int `json:"succeeded"`
	Failed    int `json:"failed"`
}

// Total returns the number of items the batch attempted
func (s Summary) Total() int {
	return s.Succeeded + s.Failed
}

// Ok reports whether the whole batch completed without failures
func (s Summary) Ok() bool {
	return s.Failed == 0
}
