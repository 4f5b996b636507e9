package i18n

import "sync"

// Translator retrieves rendered messages for error codes. data provides
// optional metadata to embed in the message (for example, "min" or
// "expected").
type Translator interface {
	Message(code string, data map[string]string) string
}

// dictTranslator is the built-in dictionary-based Translator.
type dictTranslator struct{ lang string }

func (t dictTranslator) Message(code string, data map[string]string) string {
	switch t.lang {
	case "ja":
		switch code {
		case "required":
			return "必須です"
		case "type_error":
			return "型が不正です"
		case "min":
			return "小さすぎます"
		case "max":
			return "大きすぎます"
		case "length":
			return "長さが不正です"
		case "format":
			return "形式が不正です"
		case "enum":
			return "許可されていない値です"
		case "refinement":
			return "不正な値です"
		case "discriminator_missing":
			return "判別キーがありません"
		case "invalid_discriminator":
			return "不明なバリアントです"
		case "union_type_error":
			return "どの型にも一致しません"
		}
	default: // "en"
		switch code {
		case "required":
			return "is required"
		case "type_error":
			if want := data["expected"]; want != "" {
				return "must be a valid " + want
			}
			return "is not of the expected type"
		case "min":
			if n := data["min"]; n != "" {
				return "must be at least " + n
			}
			return "is too small"
		case "max":
			if n := data["max"]; n != "" {
				return "must be at most " + n
			}
			return "is too large"
		case "length":
			if n := data["exact"]; n != "" {
				return "must have exactly " + n + " characters"
			}
			if min, max := data["min"], data["max"]; min != "" && max != "" {
				return "must have between " + min + " and " + max + " characters"
			} else if min != "" {
				return "must have at least " + min + " characters"
			} else if max != "" {
				return "must have at most " + max + " characters"
			}
			return "has an invalid length"
		case "format":
			if f := data["format"]; f != "" {
				return "is not a valid " + f
			}
			return "has an invalid format"
		case "enum":
			if allowed := data["allowed"]; allowed != "" {
				return "must be one of: " + allowed
			}
			return "is not an allowed value"
		case "refinement":
			return "is invalid"
		case "discriminator_missing":
			return "discriminator is missing"
		case "invalid_discriminator":
			if allowed := data["allowed"]; allowed != "" {
				return "must be one of: " + allowed
			}
			return "is not a known variant"
		case "union_type_error":
			if members := data["members"]; members != "" {
				return "must match one of: " + members
			}
			return "does not match any allowed type"
		}
	}
	return code
}

var (
	mu                sync.RWMutex
	currentTranslator Translator = dictTranslator{lang: "en"}
)

// SetLanguage switches the built-in Translator language ("en"/"ja").
func SetLanguage(lang string) {
	if lang != "ja" {
		lang = "en"
	}
	mu.Lock()
	defer mu.Unlock()
	currentTranslator = dictTranslator{lang: lang}
}

// SetTranslator replaces the Translator implementation (not limited to the
// dictionary version). Passing nil restores the built-in dictionary.
func SetTranslator(tr Translator) {
	mu.Lock()
	defer mu.Unlock()
	if tr == nil {
		currentTranslator = dictTranslator{lang: "en"}
		return
	}
	currentTranslator = tr
}

// T fetches a message for the given code using the current Translator.
func T(code string, data map[string]string) string {
	mu.RLock()
	tr := currentTranslator
	mu.RUnlock()
	return tr.Message(code, data)
}
