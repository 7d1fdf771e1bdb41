package chat

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/iyunix/go-retriever/internal/services/index"
)

// BuildPrompt assembles the retrieval-augmented prompt: retrieved document
// context, the reconstructed conversation history, then the question.
func BuildPrompt(matches []index.Match, history []Turn, question string) string {
	var context strings.Builder
	for i, m := range matches {
		fmt.Fprintf(&context, "[%d] (source: %s, page %d)\n%s\n\n",
			i+1, m.Chunk.Source, m.Chunk.Page, m.Chunk.Content)
	}
	if context.Len() == 0 {
		context.WriteString("(no relevant passages found)\n")
	}

	var memory strings.Builder
	for _, t := range history {
		switch t.Role {
		case RoleHuman:
			fmt.Fprintf(&memory, "Human: %s\n", t.Content)
		case RoleAssistant:
			fmt.Fprintf(&memory, "Assistant: %s\n", t.Content)
		}
	}
	if memory.Len() == 0 {
		memory.WriteString("(no prior conversation)\n")
	}

	return fmt.Sprintf(`You are an assistant answering questions about a document the user uploaded.

# Context
%s
# Conversation so far
%s
# Question
%s

# Instructions
- Answer using only the context above and the conversation so far.
- If the context does not contain the answer, say so clearly.
- Be concise.
`, context.String(), memory.String(), question)
}

// truncatePreview bounds a cited snippet, appending an ellipsis when content
// was cut. Truncation is rune-safe.
func truncatePreview(content string, limit int) string {
	if utf8.RuneCountInString(content) <= limit {
		return content
	}
	return truncateRunes(content, limit) + "..."
}

// truncateRunes bounds s to at most limit runes so a multi-byte sequence is
// never split.
func truncateRunes(s string, limit int) string {
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit])
}
