package intake

// State identifies the current step of a report intake conversation
type State int

const (
	StatePhoto State = iota
	StateLocation
	StateComment
	StateEnd
)

// MediaKind distinguishes photo and video attachments
type MediaKind int

const (
	MediaPhoto MediaKind = iota
	MediaVideo
)

// Ext returns the file extension used for downloaded media of this kind
func (k MediaKind) Ext() string {
	if k == MediaVideo {
		return ".mp4"
	}
	return ".jpg"
}

// ContentType returns the MIME type stored alongside the uploaded object
func (k MediaKind) ContentType() string {
	if k == MediaVideo {
		return "video/mp4"
	}
	return "image/jpeg"
}

// EventKind classifies an inbound message for the state machine
type EventKind int

const (
	EventPhoto EventKind = iota
	EventVideo
	EventLocation
	EventText
	EventCancel
	EventOther
)

// Event is a transport-independent view of one inbound message
type Event struct {
	Kind         EventKind
	FileID       string
	FileUniqueID string
	Latitude     float64
	Longitude    float64
	Text         string
}

// Action tells the caller which side effect to perform after a transition
type Action int

const (
	ActionIgnore Action = iota
	ActionAcceptMedia
	ActionRepromptPhoto
	ActionAcceptLocation
	ActionRepromptLocation
	ActionAcceptComment
	ActionRepromptComment
	ActionCancel
)

// Next is the pure transition function of the intake conversation.
// It maps the current state and a classified event to the next state and
// the side effect the caller must perform. A re-prompt action keeps the
// state unchanged and must not mutate the session.
func Next(state State, ev Event) (State, Action) {
	if ev.Kind == EventCancel {
		if state == StateEnd {
			return StateEnd, ActionIgnore
		}
		return StateEnd, ActionCancel
	}

	switch state {
	case StatePhoto:
		if ev.Kind == EventPhoto || ev.Kind == EventVideo {
			return StateLocation, ActionAcceptMedia
		}
		return StatePhoto, ActionRepromptPhoto

	case StateLocation:
		if ev.Kind == EventLocation {
			return StateComment, ActionAcceptLocation
		}
		return StateLocation, ActionRepromptLocation

	case StateComment:
		if ev.Kind == EventText {
			return StateEnd, ActionAcceptComment
		}
		return StateComment, ActionRepromptComment
	}

	return StateEnd, ActionIgnore
}
