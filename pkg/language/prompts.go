package language

// GenericPolishPrompt is the system prompt used when the source language has
// no dedicated entry in the prompt catalog.
const GenericPolishPrompt = "Revise the following sentences to make them more clear, concise and coherent."

// GenericDetailedAddendum is appended to the system prompt in detailed mode
// when the source language has no dedicated addendum.
const GenericDetailedAddendum = " Please list the changes you made and briefly explain why."

// polishPrompts holds per-language polishing system prompts, keyed by the
// source language code of the query.
var polishPrompts = map[string]string{
	"en":      "You are an expert English writing assistant. Revise the following text to make it clearer, more concise and more coherent while preserving its meaning.",
	"de":      "Du bist ein Experte für deutsche Texte. Überarbeite den folgenden Text, damit er klarer, prägnanter und stimmiger wird, ohne die Bedeutung zu verändern.",
	"fr":      "Vous êtes un assistant expert en rédaction française. Révisez le texte suivant pour le rendre plus clair, plus concis et plus cohérent sans en changer le sens.",
	"es":      "Eres un asistente experto en redacción en español. Revisa el siguiente texto para hacerlo más claro, conciso y coherente sin cambiar su significado.",
	"it":      "Sei un assistente esperto di scrittura italiana. Rivedi il testo seguente per renderlo più chiaro, conciso e coerente senza alterarne il significato.",
	"pt":      "Você é um assistente especializado em escrita em português. Revise o texto a seguir para torná-lo mais claro, conciso e coerente sem alterar o significado.",
	"ru":      "Вы — эксперт по русскому языку. Отредактируйте следующий текст, чтобы он стал яснее, лаконичнее и связнее, не меняя его смысла.",
	"ja":      "あなたは日本語の文章校正の専門家です。意味を変えずに、次の文章をより明確で簡潔、かつ一貫性のあるものに書き直してください。",
	"ko":      "당신은 한국어 글쓰기 전문가입니다. 의미를 유지하면서 다음 글을 더 명확하고 간결하며 일관성 있게 다듬어 주세요.",
	"zh-Hans": "你是一位专业的中文写作改进助理。请在不改变原意的前提下，改写下面的文字，使其更清晰、简洁、连贯。",
	"zh-Hant": "你是一位專業的中文寫作改進助理。請在不改變原意的前提下，改寫下面的文字，使其更清晰、簡潔、連貫。",
}

// detailedAddenda holds per-language instructions appended in detailed mode,
// asking the model to enumerate and justify its changes.
var detailedAddenda = map[string]string{
	"en":      " Afterwards, list the changes you made and briefly explain each one.",
	"de":      " Liste anschließend die vorgenommenen Änderungen auf und begründe sie kurz.",
	"fr":      " Ensuite, énumérez les modifications apportées et justifiez-les brièvement.",
	"es":      " Después, enumera los cambios realizados y explícalos brevemente.",
	"it":      " Successivamente, elenca le modifiche apportate e spiegale brevemente.",
	"pt":      " Em seguida, liste as alterações feitas e explique cada uma brevemente.",
	"ru":      " Затем перечислите внесённые изменения и кратко обоснуйте каждое из них.",
	"ja":      " その後、行った変更点を列挙し、それぞれ簡単に理由を説明してください。",
	"ko":      " 이후 수정한 내용을 나열하고 각각의 이유를 간단히 설명해 주세요.",
	"zh-Hans": "修改完成后，请列出所做的更改并简要说明理由。",
	"zh-Hant": "修改完成後，請列出所做的更改並簡要說明理由。",
}

// PolishPrompt returns the polishing system prompt for the given source
// language. Falls back to the generic prompt when the language has no entry.
func PolishPrompt(sourceLang string) string {
	if p, ok := polishPrompts[sourceLang]; ok {
		return p
	}
	return GenericPolishPrompt
}

// DetailedAddendum returns the detailed-mode instruction for the given
// source language, falling back to the generic addendum.
func DetailedAddendum(sourceLang string) string {
	if a, ok := detailedAddenda[sourceLang]; ok {
		return a
	}
	return GenericDetailedAddendum
}
