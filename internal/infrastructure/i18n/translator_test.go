package i18n

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTranslator_RendersPlaceholders(t *testing.T) {
	tr := NewTranslator(LangEnglish)

	got := tr.T(KeyNewMessage, map[string]string{"senderName": "Ana", "productName": "Bike"})
	assert.Equal(t, "New message from Ana about \"Bike\"", got)
}

func TestTranslator_SwitchLanguage(t *testing.T) {
	tr := NewTranslator(LangEnglish)

	assert.True(t, tr.SetLanguage(LangIndonesian))
	assert.Equal(t, LangIndonesian, tr.Language())
	assert.Equal(t, "Iklan Anda untuk Acme telah disetujui", tr.T(KeyAdApproved, map[string]string{"companyName": "Acme"}))

	assert.False(t, tr.SetLanguage("xx"))
	assert.Equal(t, LangIndonesian, tr.Language())
}

func TestTranslator_Fallbacks(t *testing.T) {
	tr := NewTranslator("unknown")
	assert.Equal(t, LangEnglish, tr.Language())

	assert.Equal(t, "missing.key", tr.T("missing.key", nil))
	assert.Equal(t, "Order 42 is now {status}", tr.T(KeyOrderUpdate, map[string]string{"orderId": "42"}))
}
