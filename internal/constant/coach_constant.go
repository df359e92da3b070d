package constant

// Prompt template kinds. The fixed vocabulary is authoring-time only; the
// core never mutates prompt text.
const (
	PromptKindClassifier       = "classifier"
	PromptKindScenarioResponse = "scenario_response"
	PromptKindValidation       = "validation"
	PromptKindIntro            = "intro"
	PromptKindOutro            = "outro"
)

// ResponseTemperature matches the coaching tone the content was authored
// against. Classification and validation run colder (see pkg/scenario).
const ResponseTemperature = 0.7

// NoFollowupsInstruction is appended to the response prompt on a question's
// final permitted iteration so the model closes the question out instead of
// asking another follow-up.
const NoFollowupsInstruction = "Important: If the user's response already satisfies the criteria for this question and it is considered complete (or the classified scenario instructs to move on), do not ask any additional questions. Conclude your reply without further questions so we can proceed to the next question."

// RephraseMessage is the user-visible reply when classification fails twice.
// The turn commits nothing; the user simply tries again.
const RephraseMessage = "I'm sorry, I didn't quite catch that. Could you rephrase your answer?"

// ApologyMessage is the generic user-visible text for any fatal condition.
// Raw error detail never reaches the client.
const ApologyMessage = "I apologize, something went wrong processing your response. Please try again."
