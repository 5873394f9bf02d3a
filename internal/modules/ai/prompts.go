package ai

import "fmt"

const (
	summarizeSystemPrompt = `Summarize the following content. Focus only on the text itself.
Do not include any HTML tags or attributes in the summary. The summary should be concise and informative.`

	askSystemPrompt = "You are answering questions based on the following content."

	grammarSystemPrompt = `Correct the grammar and spelling of the text provided by the user.
Return only the corrected text, with no commentary and no explanation of the changes.`

	translateSystemPrompt = `Translate the text provided by the user into the target language.
Return only the translated text, with no commentary.`

	chatSystemPrompt = "You are discussing a piece of content the user has selected. Answer their question about it."
)

// Each task builds a fixed message scaffold: one system instruction plus one
// or two user turns. The stored/selected text always travels as data inside
// a user turn, never as part of the instruction.

func summarizeMessages(text string) []Message {
	return []Message{
		{Role: RoleSystem, Content: summarizeSystemPrompt},
		{Role: RoleUser, Content: text},
	}
}

func askMessages(text, question string) []Message {
	return []Message{
		{Role: RoleSystem, Content: askSystemPrompt},
		{Role: RoleUser, Content: fmt.Sprintf("Content:\n%s\n\nQuestion:\n%s", text, question)},
	}
}

func grammarMessages(text string) []Message {
	return []Message{
		{Role: RoleSystem, Content: grammarSystemPrompt},
		{Role: RoleUser, Content: text},
	}
}

func translateMessages(text, targetLang string) []Message {
	return []Message{
		{Role: RoleSystem, Content: translateSystemPrompt},
		{Role: RoleUser, Content: fmt.Sprintf("Target language: %s\n\nText:\n%s", targetLang, text)},
	}
}

func chatMessages(selectedContent, question string) []Message {
	return []Message{
		{Role: RoleSystem, Content: chatSystemPrompt},
		{Role: RoleUser, Content: fmt.Sprintf("Selected content:\n%s\n\nQuestion:\n%s", selectedContent, question)},
	}
}
