package models

// ContentKind classifies an inbound message payload.
type ContentKind int

const (
	ContentUnsupported ContentKind = iota
	ContentText
	ContentPhoto
	ContentDocument
	ContentVideo
	ContentVoice
	ContentAudio
)

func (k ContentKind) String() string {
	switch k {
	case ContentText:
		return "text"
	case ContentPhoto:
		return "photo"
	case ContentDocument:
		return "document"
	case ContentVideo:
		return "video"
	case ContentVoice:
		return "voice"
	case ContentAudio:
		return "audio"
	default:
		return "unsupported"
	}
}

// Content is the tagged union for message payloads. It is built once at
// the transport boundary; everything downstream switches on Kind and
// never inspects raw transport messages.
type Content struct {
	Kind    ContentKind
	Text    string // set when Kind == ContentText
	FileID  string // transport file reference for media kinds
	Caption string // optional caption for media kinds
}

// IsMedia reports whether the content carries a file reference.
func (c Content) IsMedia() bool {
	switch c.Kind {
	case ContentPhoto, ContentDocument, ContentVideo, ContentVoice, ContentAudio:
		return true
	}
	return false
}
