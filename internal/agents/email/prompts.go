package email

import "fmt"

func extractPrompt(content string) string {
	return fmt.Sprintf(`Extract structured information from the following email content.

Email content:
%s

Extract the following fields and respond with JSON:
- sender: email address or name of sender
- recipient: email address or name of recipient
- subject: email subject line
- issue_type: main issue or request type
- key_points: list of main points or requests
- contact_info: any contact information mentioned
- deadline_mentioned: any deadlines or time-sensitive information

Respond with JSON in this format:
{
    "sender": "string",
    "recipient": "string",
    "subject": "string",
    "issue_type": "string",
    "key_points": ["string"],
    "contact_info": "string",
    "deadline_mentioned": "string"
}`, content)
}

func tonePrompt(content string) string {
	return fmt.Sprintf(`Analyze the tone and sentiment of the following email content.

Email content:
%s

Classify the tone into one of these categories:
- polite: Professional, courteous, respectful
- escalation: Frustrated but controlled, seeking resolution
- threatening: Aggressive, demanding, mentions consequences
- neutral: Factual, no strong emotional indicators
- urgent: Time-sensitive, requires immediate attention

Respond with JSON in this format:
{
    "tone": "polite|escalation|threatening|neutral|urgent",
    "sentiment_score": 0.0-1.0,
    "emotional_indicators": ["string"],
    "politeness_level": "high|medium|low",
    "reasoning": "explanation"
}`, content)
}
