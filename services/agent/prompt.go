package agent

import (
	"fmt"
	"strings"

	"slotwise/models"
)

const promptTemplate = `You are a helpful AI assistant specialized in booking calendar appointments.

You have access to the following tools:

%s

Use the following format:

Question: the input question you must answer
Thought: you should always think about what to do
Action: the action to take, should be one of [%s]
Action Input: the input to the action
Observation: the result of the action
... (this Thought/Action/Action Input/Observation can repeat N times)
Thought: I now know the final answer
Final Answer: the final answer to the original input question

If you need more information from the user, stop and ask them clearly using Final Answer. Do not try to call tools again after asking a question.

Avoid using code syntax or comments in action inputs. Just pass plain text.

Be conversational, friendly, and helpful. Always confirm details before booking.

Current date: %s

Previous conversation:
%s

Question: %s
Thought: %s`

func buildPrompt(tools []Tool, currentDate, history, input, scratchpad string) string {
	var desc strings.Builder
	names := make([]string, 0, len(tools))
	for _, t := range tools {
		fmt.Fprintf(&desc, "%s: %s\n", t.Name, t.Description)
		names = append(names, t.Name)
	}

	return fmt.Sprintf(promptTemplate,
		strings.TrimRight(desc.String(), "\n"),
		strings.Join(names, ", "),
		currentDate,
		history,
		input,
		scratchpad,
	)
}

// renderHistory turns transcript turns into the Human:/Assistant: lines the
// prompt expects.
func renderHistory(turns []models.Turn) string {
	var sb strings.Builder
	for _, t := range turns {
		switch t.Role {
		case models.RoleUser:
			sb.WriteString("Human: " + t.Text + "\n")
		case models.RoleAssistant:
			sb.WriteString("Assistant: " + t.Text + "\n")
		}
	}
	return sb.String()
}
