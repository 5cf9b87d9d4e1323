package model

// StreamStatus tags a StreamEvent variant.
type StreamStatus string

// Stream event variants. A stream is one processing event, any number
// of streaming events, and exactly one terminal completed or error event.
const (
	StreamProcessing StreamStatus = "processing"
	StreamStreaming  StreamStatus = "streaming"
	StreamCompleted  StreamStatus = "completed"
	StreamError      StreamStatus = "error"
)

// StreamEvent is one newline-delimited JSON object on the streaming
// transport. Field presence depends on Status.
type StreamEvent struct {
	Status    StreamStatus `json:"status"`
	RequestID string       `json:"request_id"`

	// streaming
	Content  string   `json:"content,omitempty"`
	Progress *float64 `json:"progress,omitempty"`

	// completed
	FullContent    string       `json:"full_content,omitempty"`
	ProductInfo    *ProductInfo `json:"product_info,omitempty"`
	AdSettings     *AdSettings  `json:"ad_settings,omitempty"`
	GenerationTime *float64     `json:"generation_time,omitempty"`
	ModelUsed      string       `json:"model_used,omitempty"`

	// error
	Message   string `json:"message,omitempty"`
	ErrorCode string `json:"error_code,omitempty"`
}

// IsTerminal reports whether the event ends the stream.
func (e StreamEvent) IsTerminal() bool {
	return e.Status == StreamCompleted || e.Status == StreamError
}

// NewProcessingEvent builds the initial event of a stream.
func NewProcessingEvent(requestID string) StreamEvent {
	return StreamEvent{Status: StreamProcessing, RequestID: requestID}
}

// NewStreamingEvent builds an intermediate content fragment event.
func NewStreamingEvent(requestID, fragment string, progress float64) StreamEvent {
	return StreamEvent{
		Status:    StreamStreaming,
		RequestID: requestID,
		Content:   fragment,
		Progress:  &progress,
	}
}

// NewCompletedEvent builds the successful terminal event.
func NewCompletedEvent(requestID, fullContent string, info ProductInfo, settings AdSettings, generationTime float64, modelUsed string) StreamEvent {
	return StreamEvent{
		Status:         StreamCompleted,
		RequestID:      requestID,
		FullContent:    fullContent,
		ProductInfo:    &info,
		AdSettings:     &settings,
		GenerationTime: &generationTime,
		ModelUsed:      modelUsed,
	}
}

// NewErrorEvent builds the failed terminal event.
func NewErrorEvent(requestID, errorCode, message string) StreamEvent {
	return StreamEvent{
		Status:    StreamError,
		RequestID: requestID,
		ErrorCode: errorCode,
		Message:   message,
	}
}
