package prompt

import "fmt"

// Credibility builds the full instruction prompt around already-truncated
// content. The JSON-only contract here is exactly what the interpreter expects
// to find in the completion.
func Credibility(content string) string {
	return fmt.Sprintf(`Analyze the following content for credibility.
Return ONLY a single, valid JSON object in this exact format:
{
  "summary": "2-3 sentence summary of the content.",
  "analysis": "Step-by-step detailed reasoning with clear numbering (1., 2., 3., etc.) and line breaks for readability.",
  "score": number (0-100),
  "verdict": "Credible" or "Not Credible",
  "category": "Politics | Health | Technology | Entertainment | Finance | Science | Other"
}

Important: in the "analysis" field, always format the reasoning as a neatly spaced, numbered list. Example:
"1. Source: ...
2. Content Type: ...
3. Tone and Bias: ...
4. Fact-Checking: ...
5. Overall: ..."

Content to analyze:
%s`, content)
}
