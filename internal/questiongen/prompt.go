package questiongen

import "fmt"

const systemPrompt = "당신은 교육용 문제를 생성하는 AI입니다."

// buildUserMessage embeds the standard verbatim and asks for a single question.
func buildUserMessage(standard string) string {
	return fmt.Sprintf("성취기준: %s. 이 성취기준에 맞는 문제를 딱 1개만 생성해 주세요.", standard)
}
