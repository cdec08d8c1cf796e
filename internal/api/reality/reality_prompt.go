package reality

import "fmt"

func getExistenceCheckPrompt(placeName, chapterTitle, chapterContent string) string {
	contentSection := ""
	if chapterContent != "" {
		if len(chapterContent) > 300 {
			chapterContent = chapterContent[:300]
		}
		contentSection = fmt.Sprintf("Content: %s\n", chapterContent)
	}

	return fmt.Sprintf(`
Verify whether the following place actually exists.

Main location: %s
Place to verify: %s
%s
Respond with ONLY this JSON:
{
  "exists": true/false,
  "confidence": 0-1,
  "reasoning": "basis for the judgement",
  "evidences": ["evidence it exists"],
  "warnings": ["anything suspicious"],
  "alternatives": ["suggested replacements"]
}

Criteria:
1. Does such a place really exist at this location?
2. Is it consistent with how attractions of this kind are laid out?
3. Is the name overly specific or overly vague?
4. Does it contradict known facts?`,
		placeName, chapterTitle, contentSection)
}
