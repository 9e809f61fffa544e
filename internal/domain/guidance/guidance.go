package guidance

// GameGuidance is the structured answer for one game and progress description.
// Every field holds markdown.
type GameGuidance struct {
	Hints      string `json:"hints"`
	Missables  string `json:"missables"`
	Strategies string `json:"strategies"`
}

type GuidanceRequest struct {
	GameID   string `json:"gameId"`
	Progress string `json:"progress"`
}

// Frame types exchanged on the chat websocket.
const (
	FrameMessage  = "message"
	FrameCancel   = "cancel"
	FrameChunk    = "chunk"
	FrameDone     = "done"
	FrameError    = "error"
	FrameCanceled = "canceled"
)

type ChatFrame struct {
	Type  string `json:"type"`
	ID    string `json:"id,omitempty"`
	Text  string `json:"text,omitempty"`
	Error string `json:"error,omitempty"`
}

type CanceledResponse struct {
	Canceled bool `json:"canceled"`
}

// StructuredPrompt describes a single-shot completion constrained to a JSON
// object whose properties are all strings.
type StructuredPrompt struct {
	SystemInstruction string
	Prompt            string
	Temperature       float32
	TopP              float32
	TopK              int32
	// Properties maps each property name to its description.
	Properties map[string]string
	Required   []string
}
