package i18n

import (
	"io"
	"sync"

	"github.com/valyala/fasttemplate"
)

const (
	LangEnglish    = "en"
	LangIndonesian = "id"
)

const (
	KeyNewMessage  = "notifications.newMessage"
	KeyAdApproved  = "notifications.adApproved"
	KeyAdRejected  = "notifications.adRejected"
	KeyOrderUpdate = "notifications.orderUpdate"
	KeySystem      = "notifications.system"
)

var catalog = map[string]map[string]string{
	LangEnglish: {
		KeyNewMessage:  "New message from {senderName} about \"{productName}\"",
		KeyAdApproved:  "Your advertisement for {companyName} has been approved",
		KeyAdRejected:  "Your advertisement for {companyName} has been rejected",
		KeyOrderUpdate: "Order {orderId} is now {status}",
		KeySystem:      "{text}",
	},
	LangIndonesian: {
		KeyNewMessage:  "Pesan baru dari {senderName} tentang \"{productName}\"",
		KeyAdApproved:  "Iklan Anda untuk {companyName} telah disetujui",
		KeyAdRejected:  "Iklan Anda untuk {companyName} ditolak",
		KeyOrderUpdate: "Pesanan {orderId} sekarang {status}",
		KeySystem:      "{text}",
	},
}

// Translator renders catalog keys in the active display language.
type Translator struct {
	mu       sync.RWMutex
	language string
}

func NewTranslator(language string) *Translator {
	t := &Translator{language: LangEnglish}
	t.SetLanguage(language)
	return t
}

// SetLanguage switches the active language. Unsupported languages are ignored.
func (t *Translator) SetLanguage(language string) bool {
	if _, ok := catalog[language]; !ok {
		return false
	}
	t.mu.Lock()
	t.language = language
	t.mu.Unlock()
	return true
}

func (t *Translator) Language() string {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.language
}

// T renders key with {name} placeholders replaced from replacements. Missing
// keys fall back to English, then to the key itself; unknown placeholders
// are left in place.
func (t *Translator) T(key string, replacements map[string]string) string {
	tmpl, ok := catalog[t.Language()][key]
	if !ok {
		tmpl, ok = catalog[LangEnglish][key]
	}
	if !ok {
		return key
	}

	return fasttemplate.ExecuteFuncString(tmpl, "{", "}", func(w io.Writer, tag string) (int, error) {
		if v, ok := replacements[tag]; ok {
			return w.Write([]byte(v))
		}
		return w.Write([]byte("{" + tag + "}"))
	})
}

func SupportedLanguages() []string {
	return []string{LangEnglish, LangIndonesian}
}
