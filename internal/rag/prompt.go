package rag

import (
	"fmt"
	"strings"

	"admissions-rag/internal/llm"
)

// Fixed answers returned without calling the generative model.
const (
	// TechnicalDifficultyAnswer is returned when the document store cannot be queried.
	TechnicalDifficultyAnswer = "Xin lỗi, chatbot hiện đang gặp sự cố kỹ thuật. Vui lòng thử lại sau."

	// NotFoundAnswer is returned when no passage survives reranking.
	NotFoundAnswer = "Xin lỗi, tôi không tìm thấy bất kỳ thông tin nào liên quan đến câu hỏi của bạn."

	// InsufficientContextAnswer is what the model is told to reply when the context lacks the answer.
	InsufficientContextAnswer = "Xin lỗi, tôi không tìm thấy thông tin này trong tài liệu được cung cấp."
)

const contextDelimiter = "\n\n---\n\n"

var systemPrompt = "Bạn là một trợ lý AI hữu ích của trường Đại học Duy Tân. " +
	"Nhiệm vụ của bạn là trả lời câu hỏi của sinh viên và phụ huynh một cách chính xác dựa trên thông tin được cung cấp trong phần 'Context'. " +
	"Hãy trả lời một cách ngắn gọn, đi thẳng vào vấn đề. " +
	"Nếu thông tin không có trong Context, hãy trả lời: '" + InsufficientContextAnswer + "'"

const userTemplate = "Context:\n'''\n%s\n'''\n\nDựa vào Context trên, hãy trả lời câu hỏi sau: %s"

// BuildMessages builds the grounded chat prompt. Contexts appear verbatim in the given order.
func BuildMessages(query string, contexts []string) []llm.Message {
	return []llm.Message{
		{Role: llm.RoleSystem, Content: systemPrompt},
		{Role: llm.RoleUser, Content: fmt.Sprintf(userTemplate, strings.Join(contexts, contextDelimiter), query)},
	}
}
