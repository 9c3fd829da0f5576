package notify

// Type 通知类型枚举
type Type string

const (
	TypeHealthCheckCampaignNew Type = "HEALTH_CHECK_CAMPAIGN_NEW"
	TypeVaccinationCampaignNew Type = "VACCINATION_CAMPAIGN_NEW"
	TypeResultReady            Type = "RESULT_READY"
	TypeConsentSubmitted       Type = "CONSENT_SUBMITTED"
	TypeIncidentAlert          Type = "INCIDENT_ALERT"
	TypeMedicationScheduled    Type = "MEDICATION_SCHEDULED"
	TypeMedicationDue          Type = "MEDICATION_DUE"
	TypeChatMessage            Type = "CHAT_MESSAGE"
	TypeInventoryLowStock      Type = "INVENTORY_LOW_STOCK"
)

// EntityModel 通知指向的实体种类，客户端用它做深链跳转
type EntityModel string

const (
	EntityHealthCheckCampaign EntityModel = "HealthCheckCampaign"
	EntityVaccinationCampaign EntityModel = "VaccinationCampaign"
	EntityCampaignResult      EntityModel = "CampaignResult"
	EntityConsent             EntityModel = "Consent"
	EntityIncident            EntityModel = "Incident"
	EntityMedicationRequest   EntityModel = "MedicationRequest"
	EntityChatMessage         EntityModel = "ChatMessage"
	EntityInventoryItem       EntityModel = "InventoryItem"
)

// JobPayload 队列中的一条扇出任务
// RecipientIDs 允许出现重复，消费侧会按唯一收件人落库
type JobPayload struct {
	JobID        string      `json:"jobId"`
	RecipientIDs []uint64    `json:"recipientIds"`
	Type         Type        `json:"type"`
	EntityID     string      `json:"entityId"`
	EntityModel  EntityModel `json:"entityModel"`
	ActorID      uint64      `json:"actorId,omitempty"` // 0 表示系统触发
}
