package agent

import (
	"errors"
	"regexp"
	"strings"
)

const finalAnswerMarker = "Final Answer:"

var (
	actionRe      = regexp.MustCompile(`(?m)^\s*Action\s*:\s*(.+?)\s*$`)
	actionInputRe = regexp.MustCompile(`(?m)^\s*Action Input\s*:\s*(.*?)\s*$`)
)

// ErrMalformedOutput signals model output that is neither a tool call nor a
// final answer. The loop feeds it back as a corrective observation rather
// than aborting.
var ErrMalformedOutput = errors.New("model output has no Action or Final Answer")

// ModelOutput is one parsed reasoning step.
type ModelOutput struct {
	Action      string
	ActionInput string
	FinalAnswer string
	Final       bool
}

// ParseModelOutput extracts either a Final Answer or an Action/Action Input
// pair from raw model text. A Final Answer wins when both appear, which
// tolerates models that keep narrating after deciding.
func ParseModelOutput(text string) (ModelOutput, error) {
	if idx := strings.Index(text, finalAnswerMarker); idx >= 0 {
		return ModelOutput{
			Final:       true,
			FinalAnswer: strings.TrimSpace(text[idx+len(finalAnswerMarker):]),
		}, nil
	}

	action := actionRe.FindStringSubmatch(text)
	if action == nil {
		return ModelOutput{}, ErrMalformedOutput
	}

	var input string
	if m := actionInputRe.FindStringSubmatch(text); m != nil {
		input = strings.Trim(strings.TrimSpace(m[1]), `"'`)
	}

	return ModelOutput{
		Action:      strings.TrimSpace(action[1]),
		ActionInput: input,
	}, nil
}
