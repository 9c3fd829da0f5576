package notify

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRenderContentCoversAllTypes(t *testing.T) {
	types := []Type{
		TypeHealthCheckCampaignNew,
		TypeVaccinationCampaignNew,
		TypeResultReady,
		TypeConsentSubmitted,
		TypeIncidentAlert,
		TypeMedicationScheduled,
		TypeMedicationDue,
		TypeChatMessage,
		TypeInventoryLowStock,
	}

	for _, typ := range types {
		title, body := RenderContent(typ, "")
		assert.NotEmpty(t, title, "type %s", typ)
		assert.NotEmpty(t, body, "type %s", typ)
	}
}

func TestRenderContentUnknownTypeFallsBack(t *testing.T) {
	title, body := RenderContent(Type("SOMETHING_NEW"), "")
	assert.Equal(t, "新通知", title)
	assert.NotEmpty(t, body)
}

func TestRenderContentPersonalizesActor(t *testing.T) {
	_, body := RenderContent(TypeChatMessage, "李老师")
	assert.Contains(t, body, "李老师")

	_, anonBody := RenderContent(TypeChatMessage, "")
	assert.NotContains(t, anonBody, "李老师")

	_, consentBody := RenderContent(TypeConsentSubmitted, "张家长")
	assert.Contains(t, consentBody, "张家长")
}
