package driven

// PromptStore provides access to LLM prompt templates.
// Implementations may load prompts from files or embed them in the binary.
type PromptStore interface {
	// Load returns the prompt template for the given name.
	// If the prompt is not found, implementations should return a sensible default
	// or an error, depending on whether the prompt is required.
	Load(name string) (string, error)

	// Reload clears any cached prompts, forcing fresh loads on next access.
	Reload()
}

// Well-known prompt names used throughout the application.
const (
	// PromptAnswerSystem is the system instruction for answering questions.
	// This prompt has no format placeholders.
	PromptAnswerSystem = "answer_system"

	// PromptAnswerUser wraps the reference context and the question.
	// The template expects two %s placeholders: context, then question.
	PromptAnswerUser = "answer_user"
)

// defaultPrompts holds the built-in templates for every well-known prompt.
var defaultPrompts = map[string]string{
	PromptAnswerSystem: "You are a helpful reference assistant. " +
		"Answer questions based only on the provided reference materials. " +
		"If the answer is not in the materials, say so clearly. " +
		"Always cite your sources using the format [Source X: filename, Page Y]. " +
		"Be concise but thorough.",

	PromptAnswerUser: "Based ONLY on the following reference materials, please answer this question.\n" +
		"If the answer is not in the provided materials, say so clearly.\n" +
		"Always cite your sources using the format [Source X: filename, Page Y].\n\n" +
		"%s\n\nQuestion: %s",
}

// DefaultPrompt returns the built-in template for name, or "" if unknown.
func DefaultPrompt(name string) string {
	return defaultPrompts[name]
}

// PromptNames returns the well-known prompt names.
func PromptNames() []string {
	return []string{PromptAnswerSystem, PromptAnswerUser}
}
