package assistant

import "context"

// State names the orchestrator's position in the wake → transcribe →
// interpret → act cycle.
type State string

const (
	StateIdle          State = "idle"
	StateListening     State = "listening"
	StateAcknowledging State = "acknowledging"
	StateTranscribing  State = "transcribing"
	StateInterpreting  State = "interpreting"
	StateActing        State = "acting"
	StateTerminated    State = "terminated"
)

// Interface runs the voice command loop until a terminate command or context
// cancellation.
type Interface interface {
	Run(ctx context.Context) error
}
