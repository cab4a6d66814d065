package agent

import (
	"fmt"
	"strings"
)

const (
	apiKeyErrorMsg = `API Key Error!

It looks like there's an issue with your LLM API key. Please check your configuration:

- GROQ_API_KEY (Free): https://console.groq.com/
- GEMINI_API_KEY (Free Tier): https://makersuite.google.com/app/apikey
- OPENAI_API_KEY (Paid): https://platform.openai.com/api-keys

Then restart the server.`

	quotaNote     = "\n\nThis looks like a quota/billing issue. Consider switching to Groq or Google Gemini."
	rateLimitNote = "\n\nRate limit exceeded. Please wait a moment and try again."
)

// classifyLLMError maps a language-model failure to a user-facing message.
// Known failure classes are matched by substring because the upstream SDKs
// do not expose stable error types across providers.
func classifyLLMError(err error) string {
	msg := strings.ToLower(err.Error())
	base := fmt.Sprintf("I apologize, but I encountered an error: %v", err)

	switch {
	case strings.Contains(msg, "api key") || strings.Contains(msg, "invalid_api_key"):
		return apiKeyErrorMsg
	case strings.Contains(msg, "quota"):
		return base + quotaNote
	case strings.Contains(msg, "rate limit"):
		return base + rateLimitNote
	default:
		return base
	}
}
