package advisory

import (
	"strings"

	"github.com/tbourn/krishi-mitra/internal/i18n"
)

const instructionRules = `- If the image contains a plant, describe the disease and how to cure it.
- Format disease name in **bold**.
- You may provide important steps or chemicals in *italics*.
- Optionally include links to websites for more info as [text](url).
- Do not add anything else.
- If it's not a plant, reply: 'Please upload a plant image only.'
- Respond in Markdown.`

// Instruction returns the fixed crop-doctor instruction for lang.
func Instruction(lang i18n.Language) string {
	head := "You are a crop doctor."
	if lang == i18n.Malayalam {
		head += " Reply only in Malayalam."
	}
	return head + "\n" + instructionRules
}

// ComposeText joins the instruction and the farmer's text the way the model
// receives them: instruction, blank line, user text.
func ComposeText(lang i18n.Language, prompt string) string {
	return Instruction(lang) + "\n\n" + strings.TrimSpace(prompt)
}
