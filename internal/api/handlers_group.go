package api

import "SchoolCare/internal/api/handler"

// HandlersGroup 封装了所有已初始化的 Handler 实例
type HandlersGroup struct {
	UserHandler         *handler.UserHandler
	NotificationHandler *handler.NotificationHandler
	CampaignHandler     *handler.CampaignHandler
	ConsentHandler      *handler.ConsentHandler
	IncidentHandler     *handler.IncidentHandler
	MedicationHandler   *handler.MedicationHandler
	InventoryHandler    *handler.InventoryHandler
	MessageHandler      *handler.MessageHandler
}
