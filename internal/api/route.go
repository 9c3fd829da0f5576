package api

import (
	"SchoolCare/internal/api/middleware"
	"SchoolCare/internal/pkg/consts"
	"SchoolCare/internal/pkg/logger"
	"net/http"

	"github.com/gin-gonic/gin"
)

func SetupRouter(group *HandlersGroup) *gin.Engine {
	r := gin.New()
	_ = r.SetTrustedProxies([]string{"localhost"})

	// TraceId & Logger & CORS
	r.Use(middleware.TraceMiddleware())
	r.Use(middleware.CORSMiddleware())
	logger.SetupGin(r)

	apiGroup := r.Group("/api")
	{
		apiGroup.GET("/ping", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{
				"Code":    200,
				"Message": "pong",
				"Data":    nil,
			})
		})

		userGroup := apiGroup.Group("/user")
		{
			// 无需登录即可访问的接口
			userGroup.POST("/login", group.UserHandler.Login)

			authGroup := userGroup.Group("")
			authGroup.Use(middleware.AuthMiddleware())
			{
				authGroup.POST("/logout", group.UserHandler.Logout)
				authGroup.GET("/info", group.UserHandler.GetUserInfo)
				authGroup.POST("/device-token", group.UserHandler.RegisterDeviceToken)
				authGroup.DELETE("/device-token", group.UserHandler.UnregisterDeviceToken)
			}

			// 建账号走管理员
			adminGroup := authGroup.Group("")
			adminGroup.Use(middleware.CheckRoles(consts.RoleAdmin))
			{
				adminGroup.POST("/register", group.UserHandler.Register)
			}
		}

		notificationGroup := apiGroup.Group("/notification")
		notificationGroup.Use(middleware.AuthMiddleware())
		{
			notificationGroup.GET("/list", group.NotificationHandler.GetNotificationList)
			notificationGroup.GET("/unread-count", group.NotificationHandler.GetUnreadCount)
			notificationGroup.PUT("/:notification_id/read", group.NotificationHandler.MarkRead)
			notificationGroup.PUT("/read-all", group.NotificationHandler.MarkAllRead)

			adminGroup := notificationGroup.Group("")
			adminGroup.Use(middleware.CheckRoles(consts.RoleAdmin))
			{
				adminGroup.GET("/failed-jobs", group.NotificationHandler.GetFailedJobs)
			}
		}

		campaignGroup := apiGroup.Group("/campaign")
		campaignGroup.Use(middleware.AuthMiddleware())
		{
			campaignGroup.GET("/list", group.CampaignHandler.GetCampaignList)

			managerGroup := campaignGroup.Group("")
			managerGroup.Use(middleware.CheckRoles(consts.RoleManager, consts.RoleAdmin))
			{
				managerGroup.POST("", group.CampaignHandler.CreateCampaign)
				managerGroup.POST("/:campaign_id/announce", group.CampaignHandler.AnnounceCampaign)
			}

			nurseGroup := campaignGroup.Group("")
			nurseGroup.Use(middleware.CheckRoles(consts.RoleNurse))
			{
				nurseGroup.POST("/:campaign_id/result", group.CampaignHandler.RecordResult)
			}
		}

		consentGroup := apiGroup.Group("/consent")
		consentGroup.Use(middleware.AuthMiddleware())
		{
			parentGroup := consentGroup.Group("")
			parentGroup.Use(middleware.CheckRoles(consts.RoleParent))
			{
				parentGroup.POST("", group.ConsentHandler.SubmitConsent)
			}

			staffGroup := consentGroup.Group("")
			staffGroup.Use(middleware.CheckRoles(consts.RoleNurse, consts.RoleManager, consts.RoleAdmin))
			{
				staffGroup.GET("/campaign/:campaign_id", group.ConsentHandler.GetConsentList)
			}
		}

		incidentGroup := apiGroup.Group("/incident")
		incidentGroup.Use(middleware.AuthMiddleware())
		{
			incidentGroup.GET("/student/:student_id", group.IncidentHandler.GetIncidentList)

			nurseGroup := incidentGroup.Group("")
			nurseGroup.Use(middleware.CheckRoles(consts.RoleNurse))
			{
				nurseGroup.POST("", group.IncidentHandler.CreateIncident)
			}
		}

		medicationGroup := apiGroup.Group("/medication")
		medicationGroup.Use(middleware.AuthMiddleware())
		{
			parentGroup := medicationGroup.Group("")
			parentGroup.Use(middleware.CheckRoles(consts.RoleParent))
			{
				parentGroup.POST("", group.MedicationHandler.CreateRequest)
			}

			nurseGroup := medicationGroup.Group("")
			nurseGroup.Use(middleware.CheckRoles(consts.RoleNurse))
			{
				nurseGroup.POST("/:request_id/schedule", group.MedicationHandler.ScheduleRequest)
			}
		}

		inventoryGroup := apiGroup.Group("/inventory")
		inventoryGroup.Use(middleware.AuthMiddleware(), middleware.CheckRoles(consts.RoleNurse, consts.RoleManager))
		{
			inventoryGroup.POST("", group.InventoryHandler.CreateItem)
			inventoryGroup.GET("/list", group.InventoryHandler.GetItemList)
			inventoryGroup.POST("/:item_id/dispense", group.InventoryHandler.Dispense)
		}

		messageGroup := apiGroup.Group("/message")
		messageGroup.Use(middleware.AuthMiddleware())
		{
			messageGroup.POST("", group.MessageHandler.SendMessage)
			messageGroup.GET("/history/:peer_id", group.MessageHandler.GetHistory)
		}
	}

	return r
}
