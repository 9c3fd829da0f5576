package service

import (
	"SchoolCare/internal/api/dto"
	"SchoolCare/internal/model"
	"SchoolCare/internal/pkg/consts"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeNotifier 记录各事件回调的触发次数
type fakeNotifier struct {
	announced []*model.Campaign
	results   []*model.CampaignResult
	consents  []*model.Consent
	incidents []*model.Incident
	scheduled []*model.MedicationRequest
	due       []*model.MedicationRequest
	chats     []string
	lowStocks []*model.InventoryItem
}

func (f *fakeNotifier) CampaignAnnounced(_ context.Context, c *model.Campaign) {
	f.announced = append(f.announced, c)
}

func (f *fakeNotifier) ResultReady(_ context.Context, r *model.CampaignResult) {
	f.results = append(f.results, r)
}

func (f *fakeNotifier) ConsentSubmitted(_ context.Context, c *model.Consent) {
	f.consents = append(f.consents, c)
}

func (f *fakeNotifier) IncidentLogged(_ context.Context, i *model.Incident) {
	f.incidents = append(f.incidents, i)
}

func (f *fakeNotifier) MedicationScheduled(_ context.Context, r *model.MedicationRequest) {
	f.scheduled = append(f.scheduled, r)
}

func (f *fakeNotifier) MedicationDue(_ context.Context, r *model.MedicationRequest) {
	f.due = append(f.due, r)
}

func (f *fakeNotifier) ChatMessage(_ context.Context, _, _ uint64, messageID string) {
	f.chats = append(f.chats, messageID)
}

func (f *fakeNotifier) InventoryLowStock(_ context.Context, item *model.InventoryItem) {
	f.lowStocks = append(f.lowStocks, item)
}

func newCampaignFixture() (*fakeCampaignRepo, *fakeStudentRepo, *fakeNotifier, CampaignService) {
	campaignRepo := &fakeCampaignRepo{campaigns: make(map[uint64]*model.Campaign)}
	studentRepo := &fakeStudentRepo{
		parentByStud: make(map[uint64]*uint64),
		students:     make(map[uint64]*model.Student),
	}
	notifier := &fakeNotifier{}
	svc := NewCampaignService(campaignRepo, studentRepo, notifier)
	return campaignRepo, studentRepo, notifier, svc
}

func TestCreateCampaignStartsAsDraft(t *testing.T) {
	campaignRepo, _, notifier, svc := newCampaignFixture()

	err := svc.CreateCampaign(context.Background(), 30, &dto.CreateCampaignDTO{
		Title:       "秋季体检",
		Type:        consts.CampaignTypeHealthCheck,
		GradeLevels: []int{1, 2},
	})

	require.NoError(t, err)
	require.Len(t, campaignRepo.created, 1)
	assert.EqualValues(t, consts.CampaignStatusDraft, campaignRepo.created[0].Status)
	assert.Equal(t, uint64(30), campaignRepo.created[0].CreatedBy)
	// 创建草稿不触发任何通知
	assert.Empty(t, notifier.announced)
}

func TestAnnounceCampaignNotifiesOnTransition(t *testing.T) {
	campaignRepo, _, notifier, svc := newCampaignFixture()
	campaignRepo.campaigns[1] = &model.Campaign{ID: 1, Status: consts.CampaignStatusDraft}
	campaignRepo.updateRows = 1

	err := svc.AnnounceCampaign(context.Background(), 1)

	require.NoError(t, err)
	require.Len(t, notifier.announced, 1)
	assert.EqualValues(t, consts.CampaignStatusAnnounced, notifier.announced[0].Status)
}

func TestAnnounceCampaignAlreadyAnnounced(t *testing.T) {
	campaignRepo, _, notifier, svc := newCampaignFixture()
	campaignRepo.campaigns[1] = &model.Campaign{ID: 1, Status: consts.CampaignStatusAnnounced}
	campaignRepo.updateRows = 0

	err := svc.AnnounceCampaign(context.Background(), 1)

	// 状态流转没赢就不通知，重复发布不会重复扇出
	assert.ErrorIs(t, err, ErrCampaignNotDraft)
	assert.Empty(t, notifier.announced)
}

func TestAnnounceCampaignNotFound(t *testing.T) {
	_, _, notifier, svc := newCampaignFixture()

	err := svc.AnnounceCampaign(context.Background(), 99)

	assert.ErrorIs(t, err, ErrCampaignNotFound)
	assert.Empty(t, notifier.announced)
}

func TestRecordResultNotifiesAfterPersist(t *testing.T) {
	campaignRepo, studentRepo, notifier, svc := newCampaignFixture()
	campaignRepo.campaigns[1] = &model.Campaign{ID: 1}
	studentRepo.students[50] = &model.Student{ID: 50}

	err := svc.RecordResult(context.Background(), 1, 40, &dto.RecordResultDTO{
		StudentID: 50,
		Summary:   "一切正常",
	})

	require.NoError(t, err)
	require.Len(t, campaignRepo.results, 1)
	assert.Equal(t, uint64(40), campaignRepo.results[0].RecordedBy)
	require.Len(t, notifier.results, 1)
}

func TestRecordResultUnknownStudent(t *testing.T) {
	campaignRepo, _, notifier, svc := newCampaignFixture()
	campaignRepo.campaigns[1] = &model.Campaign{ID: 1}

	err := svc.RecordResult(context.Background(), 1, 40, &dto.RecordResultDTO{StudentID: 51})

	assert.ErrorIs(t, err, ErrStudentNotFound)
	assert.Empty(t, notifier.results)
}
