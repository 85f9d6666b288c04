// Package ui provides the label lookups used by the dashboard rendering layer:
// model→provider names and run-status→color classes.
package ui

// chatProviders maps model IDs to their provider's machine and display names.
// Lookups are exact-match; callers are responsible for handling a miss.
var chatProviders = map[string]struct{ machine, display string }{
	"gpt-3.5-turbo":  {"openai", "OpenAI"},
	"gpt-4":          {"openai", "OpenAI"},
	"text-bison@001": {"vertexai", "Vertex AI"},
	"chat-bison@001": {"vertexai", "Vertex AI"},
}

// statusColors maps run status keywords to Tailwind background classes
// used by the dashboard status badges.
var statusColors = map[string]string{
	"idle":    "bg-slate-400",
	"waiting": "bg-yellow-400",
	"done":    "bg-green-500",
	"error":   "bg-red-600",
}

// ChatProvider returns the provider name for a model ID.
// With display=true it returns the human-readable form (e.g. "Vertex AI"),
// otherwise the machine form (e.g. "vertexai"). The second return is false
// for unknown models; no case folding or normalization is applied.
func ChatProvider(model string, display bool) (string, bool) {
	p, ok := chatProviders[model]
	if !ok {
		return "", false
	}
	if display {
		return p.display, true
	}
	return p.machine, true
}

// StatusColor returns the badge color class for a run status keyword.
// The second return is false for unknown statuses.
func StatusColor(status string) (string, bool) {
	color, ok := statusColors[status]
	return color, ok
}

// StatusColors returns a copy of the full status→color table, keyed by status.
func StatusColors() map[string]string {
	out := make(map[string]string, len(statusColors))
	for k, v := range statusColors {
		out[k] = v
	}
	return out
}

// KnownStatus reports whether status is one of the tracked run states.
func KnownStatus(status string) bool {
	_, ok := statusColors[status]
	return ok
}
