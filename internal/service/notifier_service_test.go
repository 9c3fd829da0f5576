package service

import (
	"SchoolCare/internal/model"
	"SchoolCare/internal/pkg/consts"
	"SchoolCare/internal/pkg/notify"
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeQueue struct {
	jobs       []*notify.JobPayload
	enqueueErr error
}

func (f *fakeQueue) Enqueue(_ context.Context, payload *notify.JobPayload) (string, error) {
	if f.enqueueErr != nil {
		return "", f.enqueueErr
	}
	f.jobs = append(f.jobs, payload)
	return "job-fake", nil
}

type fakeClassRepo struct {
	classIDs []uint64
	err      error
}

func (f *fakeClassRepo) GetClassIDsByGradeLevels(context.Context, []int) ([]uint64, error) {
	return f.classIDs, f.err
}

type fakeStudentRepo struct {
	parentIDs    []uint64
	parentByStud map[uint64]*uint64
	students     map[uint64]*model.Student
	err          error
}

func (f *fakeStudentRepo) GetStudentById(_ context.Context, id uint64) (*model.Student, error) {
	return f.students[id], nil
}

func (f *fakeStudentRepo) GetActiveParentIDsByClassIDs(context.Context, []uint64) ([]uint64, error) {
	return f.parentIDs, f.err
}

func (f *fakeStudentRepo) GetParentIDByStudentId(_ context.Context, studentID uint64) (*uint64, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.parentByStud[studentID], nil
}

type fakeCampaignRepo struct {
	campaigns  map[uint64]*model.Campaign
	updateRows int64
	created    []*model.Campaign
	results    []*model.CampaignResult
}

func (f *fakeCampaignRepo) GetCampaignById(_ context.Context, id uint64) (*model.Campaign, error) {
	return f.campaigns[id], nil
}

func (f *fakeCampaignRepo) GetCampaignList(context.Context, int, int) ([]*model.Campaign, error) {
	return nil, nil
}

func (f *fakeCampaignRepo) CreateCampaign(_ context.Context, campaign *model.Campaign) error {
	f.created = append(f.created, campaign)
	return nil
}

func (f *fakeCampaignRepo) UpdateCampaignStatus(context.Context, uint64, int8, int8) (int64, error) {
	return f.updateRows, nil
}

func (f *fakeCampaignRepo) CreateResult(_ context.Context, result *model.CampaignResult) error {
	f.results = append(f.results, result)
	return nil
}

type notifierFixture struct {
	queue        *fakeQueue
	classRepo    *fakeClassRepo
	studentRepo  *fakeStudentRepo
	userRepo     *fakeUserRepo
	campaignRepo *fakeCampaignRepo
	svc          NotifierService
}

func newNotifierFixture() *notifierFixture {
	f := &notifierFixture{
		queue:        &fakeQueue{},
		classRepo:    &fakeClassRepo{},
		studentRepo:  &fakeStudentRepo{parentByStud: make(map[uint64]*uint64)},
		userRepo:     &fakeUserRepo{users: make(map[uint64]*model.User), roles: make(map[string][]uint64)},
		campaignRepo: &fakeCampaignRepo{campaigns: make(map[uint64]*model.Campaign)},
	}
	f.svc = NewNotifierService(f.queue, f.classRepo, f.studentRepo, f.userRepo, f.campaignRepo)
	return f
}

func uintPtr(v uint64) *uint64 { return &v }

func TestCampaignAnnouncedDedupesParents(t *testing.T) {
	f := newNotifierFixture()
	f.classRepo.classIDs = []uint64{10, 11}
	// 同一家长有两个孩子受影响
	f.studentRepo.parentIDs = []uint64{100, 101, 100}

	f.svc.CampaignAnnounced(context.Background(), &model.Campaign{
		ID:          1,
		Type:        consts.CampaignTypeHealthCheck,
		GradeLevels: []int{1, 2},
	})

	require.Len(t, f.queue.jobs, 1)
	job := f.queue.jobs[0]
	assert.Equal(t, []uint64{100, 101}, job.RecipientIDs)
	assert.Equal(t, notify.TypeHealthCheckCampaignNew, job.Type)
	assert.Equal(t, notify.EntityHealthCheckCampaign, job.EntityModel)
	assert.Equal(t, "1", job.EntityID)
}

func TestCampaignAnnouncedVaccinationType(t *testing.T) {
	f := newNotifierFixture()
	f.classRepo.classIDs = []uint64{10}
	f.studentRepo.parentIDs = []uint64{100}

	f.svc.CampaignAnnounced(context.Background(), &model.Campaign{
		ID:   2,
		Type: consts.CampaignTypeVaccination,
	})

	require.Len(t, f.queue.jobs, 1)
	assert.Equal(t, notify.TypeVaccinationCampaignNew, f.queue.jobs[0].Type)
	assert.Equal(t, notify.EntityVaccinationCampaign, f.queue.jobs[0].EntityModel)
}

func TestCampaignAnnouncedEmptyAudienceSkipsEnqueue(t *testing.T) {
	f := newNotifierFixture()
	f.classRepo.classIDs = []uint64{10}
	f.studentRepo.parentIDs = nil

	f.svc.CampaignAnnounced(context.Background(), &model.Campaign{ID: 3})

	assert.Empty(t, f.queue.jobs)
}

func TestCampaignAnnouncedResolutionErrorSwallowed(t *testing.T) {
	f := newNotifierFixture()
	f.classRepo.err = errors.New("db gone")

	// 受众解析失败不会 panic 也不会入队
	f.svc.CampaignAnnounced(context.Background(), &model.Campaign{ID: 4})

	assert.Empty(t, f.queue.jobs)
}

func TestResultReadySkipsUnlinkedStudent(t *testing.T) {
	f := newNotifierFixture()

	f.svc.ResultReady(context.Background(), &model.CampaignResult{ID: 5, StudentID: 50})

	assert.Empty(t, f.queue.jobs)
}

func TestResultReadyNotifiesParent(t *testing.T) {
	f := newNotifierFixture()
	f.studentRepo.parentByStud[50] = uintPtr(200)

	f.svc.ResultReady(context.Background(), &model.CampaignResult{ID: 5, StudentID: 50})

	require.Len(t, f.queue.jobs, 1)
	assert.Equal(t, []uint64{200}, f.queue.jobs[0].RecipientIDs)
	assert.Equal(t, notify.TypeResultReady, f.queue.jobs[0].Type)
}

func TestConsentSubmittedNotifiesCreator(t *testing.T) {
	f := newNotifierFixture()
	f.campaignRepo.campaigns[7] = &model.Campaign{ID: 7, CreatedBy: 300}

	f.svc.ConsentSubmitted(context.Background(), &model.Consent{ID: 8, CampaignID: 7, ParentID: 100})

	require.Len(t, f.queue.jobs, 1)
	assert.Equal(t, []uint64{300}, f.queue.jobs[0].RecipientIDs)
	assert.Equal(t, uint64(100), f.queue.jobs[0].ActorID)
}

func TestIncidentLoggedFansOutToParentAndManagers(t *testing.T) {
	f := newNotifierFixture()
	f.studentRepo.parentByStud[50] = uintPtr(100)
	f.userRepo.roles[consts.RoleManager] = []uint64{400, 401}

	f.svc.IncidentLogged(context.Background(), &model.Incident{ID: 9, StudentID: 50, ReportedBy: 500})

	require.Len(t, f.queue.jobs, 1)
	job := f.queue.jobs[0]
	assert.Equal(t, []uint64{100, 400, 401}, job.RecipientIDs)
	assert.Equal(t, notify.TypeIncidentAlert, job.Type)
	assert.Equal(t, uint64(500), job.ActorID)
}

func TestIncidentLoggedWithoutParentStillAlertsManagers(t *testing.T) {
	f := newNotifierFixture()
	f.userRepo.roles[consts.RoleManager] = []uint64{400}

	f.svc.IncidentLogged(context.Background(), &model.Incident{ID: 10, StudentID: 51})

	require.Len(t, f.queue.jobs, 1)
	assert.Equal(t, []uint64{400}, f.queue.jobs[0].RecipientIDs)
}

func TestMedicationDueWithoutNurseSkips(t *testing.T) {
	f := newNotifierFixture()

	f.svc.MedicationDue(context.Background(), &model.MedicationRequest{ID: 11})

	assert.Empty(t, f.queue.jobs)
}

func TestInventoryLowStockMergesRoles(t *testing.T) {
	f := newNotifierFixture()
	// 既是校医又是管理者的账号只收一条
	f.userRepo.roles[consts.RoleNurse] = []uint64{600, 601}
	f.userRepo.roles[consts.RoleManager] = []uint64{601, 602}

	f.svc.InventoryLowStock(context.Background(), &model.InventoryItem{ID: 12})

	require.Len(t, f.queue.jobs, 1)
	assert.Equal(t, []uint64{600, 601, 602}, f.queue.jobs[0].RecipientIDs)
}

func TestEnqueueFailureSwallowed(t *testing.T) {
	f := newNotifierFixture()
	f.queue.enqueueErr = errors.New("broker unavailable")

	// 入队失败只记日志，调用方不受影响
	f.svc.ChatMessage(context.Background(), 1, 2, "abc")

	assert.Empty(t, f.queue.jobs)
}

func TestDedupeIDsDropsZeroAndKeepsOrder(t *testing.T) {
	assert.Equal(t, []uint64{3, 1, 2}, dedupeIDs([]uint64{3, 0, 1, 3, 2, 1}))
	assert.Empty(t, dedupeIDs(nil))
	assert.Empty(t, dedupeIDs([]uint64{0, 0}))
}
