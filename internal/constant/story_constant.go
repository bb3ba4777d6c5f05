package constant

// Sampling temperatures for the three gateway tiers.
const (
	TemperatureStrict   = 0.0  // classification / judgment
	TemperatureChat     = 0.4  // short chat replies
	TemperatureCreative = 0.65 // story writing / rewriting
)

// Maximum story context characters handed to the chat responder.
const ChatContextLimit = 400

// Fixed user-facing messages. RefusalMessage and RefineRejectionMessage are
// compared byte-for-byte by the router to derive the response kind, so they
// must stay stable.
const (
	RefusalMessage = "I can't write that safely for kids, as the theme might involve danger or fear, or an event of significant loss. However, I can offer a gentle, positive version if you want to try a similar topic."

	RefineRejectionMessage = RefusalMessage + " I cannot apply that change because it introduces danger, violence, or loss. The current safe story remains unchanged."

	NoStoryMessage = "I don't have a story right now. Could you ask me to tell you a new one?"

	EmptyMessageReply = "Please send a message or a request for a story!"
)

// INTENT CLASSIFICATION (Strict JSON Output)
// %s placeholders: session status line, user request text.
const IntentClassifierPrompt = `You are a routing system for a story generator. Your task is to classify the user's request
and extract the necessary instruction. Only use the available intents.

Current Session Status: %s

Possible intents:
- 'new_story': The user wants a new story. Example: "Tell me a story about a brave knight."
- 'refine': The user wants to modify, extend, or improve the active story. Only use this if a story is active. Example: "Make the king a little friendlier."
- 'chat': The user is making a general comment, asking a question, or giving a simple reply. Example: "That was a good story, thanks."

Return JSON ONLY.

{
  "intent": "<'new_story' | 'refine' | 'chat'>",
  "instruction": "<The core request text (e.g., the theme or the change). Extract character names or specific themes if mentioned, and keep it concise.>"
}

User Request: "%s"`

const (
	SessionStatusStoryActive = "A story is active."
	SessionStatusNoStory     = "No story is active."
)

// STORY GENERATION (Creative, Self-Censoring)
// %s placeholders: theme, theme.
const StoryPrompt = `Write a short bedtime story (180-300 words) for kids age 5-10.
The story must be warm, positive, and use simple sentences.
STRICT RULE: Prohibit ANY content related to violence, fear, danger, sadness, death, or loss.
If the requested Theme/Topic: "%s" contains an element that cannot be made 100%% positive (e.g., 'murder,' 'fight,' 'tragedy'), you must ignore that unsafe element entirely and write a simple, safe story about a happy, unrelated subject (e.g., sharing a toy or finding a flower).
Theme/Topic: "%s"
End with a gentle moral.`

// SAFETY JUDGMENT (Strict JSON Output)
// %s placeholder: story text.
const JudgePrompt = `You are the Story Evaluation Tool. Your purpose is to strictly judge the provided story against child safety rules (age 5-10) and offer constructive feedback.

Safety Rules (STRICT REFUSAL IF VIOLATED):
- NO explicit acts of violence (e.g., fighting, striking, murder).
- NO concepts of death, injury, loss, or grief (even if implied, like "tragic loss" or "taken unjustly").
- NO intense negative emotions (fear, terror, profound sadness) that are not immediately and fully resolved.
- Story must be 100%% positive, warm, and gentle throughout.

Quality Rules: Story must be 180-300 words, end with a moral.

Output is MANDATORY JSON format with two parameters:
1. "unsafe" (Boolean): true if the story violates ANY safety rule above, false otherwise.
2. "hint" (String): A short, single-sentence improvement suggestion for the writer (e.g., 'Make it a little shorter' or 'Add a blue flower'), OR an empty string "" if the story is perfect or unsafe.

Return JSON ONLY:
{
  "unsafe": false,
  "hint": "<Improvement hint or empty string>"
}

Story to Evaluate: """%s"""`

// STORY REVISION (Creative Rewrite)
// %s placeholders: hint, story text.
const ImprovePrompt = `Rewrite the ENTIRE story, applying this hint: "%s".
Keep it safe, gentle, 180-300 words, with a clear moral at the end.
Return ONLY the improved story text. Do not add any commentary or prefix.
Story to revise: """%s"""`

// CHAT REPLY (Short, No Story Content)
// %s placeholders: story context, user text.
const ChatPrompt = `You are a friendly story assistant. Reply in 1-2 friendly sentences.
Do NOT start a story or ask for a story request unless the user clearly asks for one.
Story so far (for context): """%s"""
User: "%s"`
