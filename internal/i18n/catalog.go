package i18n

// Key names one localized string.
type Key int

const (
	Welcome Key = iota
	Apology
	EmptyReply
	PlantRefusal
	DefaultImageCaption
	SpeakerUser
	SpeakerAI
	NoMessages
	EmptyHistory
	ChatHistory
	WasHelpful
	Thinking
)

var catalog = map[Language]map[Key]string{
	English: {
		Welcome:             "Namaste! How can I help you? You can type your question or send an image of your crop.",
		Apology:             "Sorry, I couldn’t process your request. Please try again later.",
		EmptyReply:          "I couldn’t generate a response.",
		PlantRefusal:        "Please upload a plant image only.",
		DefaultImageCaption: "Here is an image of my crop.",
		SpeakerUser:         "You",
		SpeakerAI:           "Krishi Mitra AI",
		NoMessages:          "No messages",
		EmptyHistory:        "Your past conversations will appear here. For now, it's empty.",
		ChatHistory:         "Chat History",
		WasHelpful:          "Was this helpful?",
		Thinking:            "Thinking...",
	},
	Malayalam: {
		Welcome:             "നമസ്കാരം! ഞാൻ നിങ്ങളെ എങ്ങനെ സഹായിക്കും? നിങ്ങൾക്ക് ചോദ്യം ടൈപ്പ് ചെയ്യാം, അല്ലെങ്കിൽ നിങ്ങളുടെ വിളയുടെ ചിത്രം അയയ്ക്കാം.",
		Apology:             "ക്ഷമിക്കണം, നിങ്ങളുടെ അഭ്യർത്ഥന പ്രോസസ്സ് ചെയ്യാൻ കഴിഞ്ഞില്ല. ദയവായി പിന്നീട് വീണ്ടും ശ്രമിക്കുക.",
		EmptyReply:          "എനിക്ക് ഒരു മറുപടി തയ്യാറാക്കാൻ കഴിഞ്ഞില്ല.",
		PlantRefusal:        "ദയവായി സസ്യത്തിന്റെ ചിത്രം അപ്‌ലോഡ് ചെയ്യുക.",
		DefaultImageCaption: "ഇതാ എന്റെ വിളയുടെ ചിത്രം.",
		SpeakerUser:         "നിങ്ങൾ",
		SpeakerAI:           "കൃഷി മിത്ര AI",
		EmptyHistory:        "നിങ്ങളുടെ മുൻകാല സംഭാഷണങ്ങൾ ഇവിടെ ദൃശ്യമാകും. തൽക്കാലം, ഇത് ശൂന്യമാണ്.",
		ChatHistory:         "ചാറ്റ് ചരിത്രം",
		WasHelpful:          "ഇത് സഹായകമായിരുന്നോ?",
	},
}

// T returns the string for key in lang. Keys without a Malayalam entry fall
// back to English.
func T(lang Language, key Key) string {
	if s, ok := catalog[lang][key]; ok {
		return s
	}
	return catalog[English][key]
}
