package consts

const (
	RoleParent  = "PARENT"
	RoleNurse   = "NURSE"
	RoleManager = "MANAGER"
	RoleAdmin   = "ADMIN"
)

const (
	StudentStatusActive   = 1
	StudentStatusInactive = 2
)

const (
	CampaignStatusDraft     = 1
	CampaignStatusAnnounced = 2
	CampaignStatusClosed    = 3
)

const (
	CampaignTypeHealthCheck = "HealthCheckCampaign"
	CampaignTypeVaccination = "VaccinationCampaign"
)

const (
	ConsentStatusApproved = 1
	ConsentStatusDeclined = 2
)

const (
	MedicationStatusPending   = 1
	MedicationStatusScheduled = 2
	MedicationStatusRejected  = 3
)
