package service

import (
	"SchoolCare/internal/model"
	"SchoolCare/internal/pkg/consts"
	"SchoolCare/internal/pkg/notify"
	"SchoolCare/internal/repository"
	"context"
	log "log/slog"
	"strconv"
)

// NotificationQueue 通知任务队列抽象，生产侧唯一依赖
type NotificationQueue interface {
	Enqueue(ctx context.Context, payload *notify.JobPayload) (string, error)
}

// NotifierService 领域事件到通知任务的生产层
// 所有方法不返回错误：通知是业务动作的副作用，解析或入队失败只记日志，
// 绝不反过来让业务主流程失败
type NotifierService interface {
	CampaignAnnounced(ctx context.Context, campaign *model.Campaign)
	ResultReady(ctx context.Context, result *model.CampaignResult)
	ConsentSubmitted(ctx context.Context, consent *model.Consent)
	IncidentLogged(ctx context.Context, incident *model.Incident)
	MedicationScheduled(ctx context.Context, req *model.MedicationRequest)
	MedicationDue(ctx context.Context, req *model.MedicationRequest)
	ChatMessage(ctx context.Context, senderID, recipientID uint64, messageID string)
	InventoryLowStock(ctx context.Context, item *model.InventoryItem)
}

type NotifierServiceImpl struct {
	queue        NotificationQueue
	classRepo    repository.ClassRepo
	studentRepo  repository.StudentRepo
	userRepo     repository.UserRepo
	campaignRepo repository.CampaignRepo
}

func NewNotifierService(
	queue NotificationQueue,
	classRepo repository.ClassRepo,
	studentRepo repository.StudentRepo,
	userRepo repository.UserRepo,
	campaignRepo repository.CampaignRepo,
) NotifierService {
	return &NotifierServiceImpl{
		queue:        queue,
		classRepo:    classRepo,
		studentRepo:  studentRepo,
		userRepo:     userRepo,
		campaignRepo: campaignRepo,
	}
}

// CampaignAnnounced 活动发布后通知目标年级所有在读学生的家长
func (s *NotifierServiceImpl) CampaignAnnounced(ctx context.Context, campaign *model.Campaign) {
	classIDs, err := s.classRepo.GetClassIDsByGradeLevels(ctx, campaign.GradeLevels)
	if err != nil {
		log.ErrorContext(ctx, "resolve campaign audience error", "campaign_id", campaign.ID, "err", err)
		return
	}
	if len(classIDs) == 0 {
		log.InfoContext(ctx, "campaign has no matching class, skip notify", "campaign_id", campaign.ID)
		return
	}

	parentIDs, err := s.studentRepo.GetActiveParentIDsByClassIDs(ctx, classIDs)
	if err != nil {
		log.ErrorContext(ctx, "resolve campaign audience error", "campaign_id", campaign.ID, "err", err)
		return
	}

	typ := notify.TypeHealthCheckCampaignNew
	entity := notify.EntityHealthCheckCampaign
	if campaign.Type == consts.CampaignTypeVaccination {
		typ = notify.TypeVaccinationCampaignNew
		entity = notify.EntityVaccinationCampaign
	}

	s.enqueue(ctx, parentIDs, typ, formatID(campaign.ID), entity, 0)
}

// ResultReady 检查结果录入后通知该学生的家长
func (s *NotifierServiceImpl) ResultReady(ctx context.Context, result *model.CampaignResult) {
	parentID, err := s.studentRepo.GetParentIDByStudentId(ctx, result.StudentID)
	if err != nil {
		log.ErrorContext(ctx, "resolve result audience error", "result_id", result.ID, "err", err)
		return
	}
	if parentID == nil {
		log.InfoContext(ctx, "student has no linked parent, skip notify", "student_id", result.StudentID)
		return
	}

	s.enqueue(ctx, []uint64{*parentID}, notify.TypeResultReady, formatID(result.ID), notify.EntityCampaignResult, 0)
}

// ConsentSubmitted 家长提交回执后通知活动创建者
func (s *NotifierServiceImpl) ConsentSubmitted(ctx context.Context, consent *model.Consent) {
	campaign, err := s.campaignRepo.GetCampaignById(ctx, consent.CampaignID)
	if err != nil || campaign == nil {
		log.ErrorContext(ctx, "resolve consent audience error", "consent_id", consent.ID, "err", err)
		return
	}

	s.enqueue(ctx, []uint64{campaign.CreatedBy}, notify.TypeConsentSubmitted, formatID(consent.ID), notify.EntityConsent, consent.ParentID)
}

// IncidentLogged 健康事件通知学生家长和全体管理者
func (s *NotifierServiceImpl) IncidentLogged(ctx context.Context, incident *model.Incident) {
	recipients := make([]uint64, 0, 4)

	parentID, err := s.studentRepo.GetParentIDByStudentId(ctx, incident.StudentID)
	if err != nil {
		log.ErrorContext(ctx, "resolve incident audience error", "incident_id", incident.ID, "err", err)
		return
	}
	if parentID != nil {
		recipients = append(recipients, *parentID)
	}

	managerIDs, err := s.userRepo.GetUserIDsByRole(ctx, consts.RoleManager)
	if err != nil {
		log.ErrorContext(ctx, "resolve incident audience error", "incident_id", incident.ID, "err", err)
		return
	}
	recipients = append(recipients, managerIDs...)

	s.enqueue(ctx, recipients, notify.TypeIncidentAlert, formatID(incident.ID), notify.EntityIncident, incident.ReportedBy)
}

// MedicationScheduled 用药申请安排后通知提交的家长
func (s *NotifierServiceImpl) MedicationScheduled(ctx context.Context, req *model.MedicationRequest) {
	var actorID uint64
	if req.NurseID != nil {
		actorID = *req.NurseID
	}
	s.enqueue(ctx, []uint64{req.ParentID}, notify.TypeMedicationScheduled, formatID(req.ID), notify.EntityMedicationRequest, actorID)
}

// MedicationDue 每日提醒负责的校医
func (s *NotifierServiceImpl) MedicationDue(ctx context.Context, req *model.MedicationRequest) {
	if req.NurseID == nil {
		log.InfoContext(ctx, "medication request has no nurse, skip reminder", "request_id", req.ID)
		return
	}
	s.enqueue(ctx, []uint64{*req.NurseID}, notify.TypeMedicationDue, formatID(req.ID), notify.EntityMedicationRequest, 0)
}

// ChatMessage 私信通知接收方，附带发送者用于文案个性化
func (s *NotifierServiceImpl) ChatMessage(ctx context.Context, senderID, recipientID uint64, messageID string) {
	s.enqueue(ctx, []uint64{recipientID}, notify.TypeChatMessage, messageID, notify.EntityChatMessage, senderID)
}

// InventoryLowStock 库存预警通知全体校医和管理者
func (s *NotifierServiceImpl) InventoryLowStock(ctx context.Context, item *model.InventoryItem) {
	nurseIDs, err := s.userRepo.GetUserIDsByRole(ctx, consts.RoleNurse)
	if err != nil {
		log.ErrorContext(ctx, "resolve low stock audience error", "item_id", item.ID, "err", err)
		return
	}
	managerIDs, err := s.userRepo.GetUserIDsByRole(ctx, consts.RoleManager)
	if err != nil {
		log.ErrorContext(ctx, "resolve low stock audience error", "item_id", item.ID, "err", err)
		return
	}

	s.enqueue(ctx, append(nurseIDs, managerIDs...), notify.TypeInventoryLowStock, formatID(item.ID), notify.EntityInventoryItem, 0)
}

// enqueue 去重后入队，空受众和入队失败都在这里收口
func (s *NotifierServiceImpl) enqueue(
	ctx context.Context,
	recipients []uint64,
	typ notify.Type,
	entityID string,
	entityModel notify.EntityModel,
	actorID uint64,
) {
	unique := dedupeIDs(recipients)
	if len(unique) == 0 {
		log.InfoContext(ctx, "notification audience is empty, skip enqueue", "type", typ, "entity_id", entityID)
		return
	}

	jobID, err := s.queue.Enqueue(ctx, &notify.JobPayload{
		RecipientIDs: unique,
		Type:         typ,
		EntityID:     entityID,
		EntityModel:  entityModel,
		ActorID:      actorID,
	})
	if err != nil {
		log.ErrorContext(ctx, "enqueue notification job error", "type", typ, "entity_id", entityID, "err", err)
		return
	}

	log.InfoContext(ctx, "notification job enqueued", "job_id", jobID, "type", typ, "recipients", len(unique))
}

// dedupeIDs 保序去重，同一家长多个孩子受影响也只通知一次
func dedupeIDs(ids []uint64) []uint64 {
	seen := make(map[uint64]struct{}, len(ids))
	unique := make([]uint64, 0, len(ids))
	for _, id := range ids {
		if id == 0 {
			continue
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		unique = append(unique, id)
	}
	return unique
}

func formatID(id uint64) string {
	return strconv.FormatUint(id, 10)
}
