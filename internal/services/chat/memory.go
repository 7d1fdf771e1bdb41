package chat

import "github.com/iyunix/go-retriever/internal/domain"

// Turn roles supplied to the language model.
const (
	RoleHuman     = "human"
	RoleAssistant = "assistant"
)

// BuildMemory reconstructs the conversational memory buffer from persisted
// messages, mapping sender "user" to a human turn and "ai" to an assistant
// turn. Messages with any other sender are dropped. Input order is
// preserved; callers pass messages already ordered by creation time.
func BuildMemory(messages []domain.Message) []Turn {
	turns := make([]Turn, 0, len(messages))
	for _, m := range messages {
		switch m.Sender {
		case domain.SenderUser:
			turns = append(turns, Turn{Role: RoleHuman, Content: m.Content})
		case domain.SenderAI:
			turns = append(turns, Turn{Role: RoleAssistant, Content: m.Content})
		}
	}
	return turns
}
