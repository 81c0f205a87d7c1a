package extract

import "strings"

// BotCheck reports whether extracted text looks like a CAPTCHA or
// verification interstitial instead of page content. It is injectable so the
// phrase list can be extended without touching extraction logic.
type BotCheck func(text string) bool

// Phrases seen on interstitial pages of major search engines and CDNs.
var defaultBotCheckPhrases = []string{
	"captcha",
	"verify you are human",
	"are you a robot",
	"unusual traffic from your computer network",
	"enable javascript and cookies to continue",
	"подтвердите, что запросы отправляли вы",
}

// DefaultBotCheck matches known bot-check phrases case-insensitively.
func DefaultBotCheck(text string) bool {
	lower := strings.ToLower(text)
	for _, phrase := range defaultBotCheckPhrases {
		if strings.Contains(lower, phrase) {
			return true
		}
	}
	return false
}
