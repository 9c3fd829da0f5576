package service

import (
	"SchoolCare/internal/api/dto"
	"SchoolCare/internal/model"
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeMedicationRepo struct {
	requests     map[uint64]*model.MedicationRequest
	created      []*model.MedicationRequest
	scheduleRows int64
}

func (f *fakeMedicationRepo) GetRequestById(_ context.Context, id uint64) (*model.MedicationRequest, error) {
	return f.requests[id], nil
}

func (f *fakeMedicationRepo) CreateRequest(_ context.Context, req *model.MedicationRequest) error {
	f.created = append(f.created, req)
	return nil
}

func (f *fakeMedicationRepo) ScheduleRequest(context.Context, uint64, uint64, time.Time, time.Time) (int64, error) {
	return f.scheduleRows, nil
}

func (f *fakeMedicationRepo) GetScheduledDueOn(context.Context, time.Time) ([]*model.MedicationRequest, error) {
	return nil, nil
}

func newMedicationFixture() (*fakeMedicationRepo, *fakeStudentRepo, *fakeNotifier, MedicationService) {
	medicationRepo := &fakeMedicationRepo{requests: make(map[uint64]*model.MedicationRequest)}
	studentRepo := &fakeStudentRepo{
		parentByStud: make(map[uint64]*uint64),
		students:     make(map[uint64]*model.Student),
	}
	notifier := &fakeNotifier{}
	svc := NewMedicationService(medicationRepo, studentRepo, notifier)
	return medicationRepo, studentRepo, notifier, svc
}

func TestCreateRequestRequiresOwnStudent(t *testing.T) {
	medicationRepo, studentRepo, _, svc := newMedicationFixture()
	studentRepo.parentByStud[50] = uintPtr(100)

	err := svc.CreateRequest(context.Background(), 101, &dto.CreateMedicationDTO{
		StudentID:  50,
		Medication: "布洛芬",
	})

	assert.ErrorIs(t, err, ErrStudentNotLinked)
	assert.Empty(t, medicationRepo.created)
}

func TestCreateRequestSucceeds(t *testing.T) {
	medicationRepo, studentRepo, notifier, svc := newMedicationFixture()
	studentRepo.parentByStud[50] = uintPtr(100)

	err := svc.CreateRequest(context.Background(), 100, &dto.CreateMedicationDTO{
		StudentID:  50,
		Medication: "布洛芬",
		Dosage:     "5ml",
	})

	require.NoError(t, err)
	require.Len(t, medicationRepo.created, 1)
	assert.Equal(t, uint64(100), medicationRepo.created[0].ParentID)
	// 提交申请本身不通知，受理后才通知家长
	assert.Empty(t, notifier.scheduled)
}

func TestScheduleRequestNotifiesParent(t *testing.T) {
	medicationRepo, _, notifier, svc := newMedicationFixture()
	medicationRepo.requests[1] = &model.MedicationRequest{ID: 1, ParentID: 100}
	medicationRepo.scheduleRows = 1

	start := time.Now()
	end := start.AddDate(0, 0, 3)
	err := svc.ScheduleRequest(context.Background(), 1, 200, &dto.ScheduleMedicationDTO{
		StartDate: start,
		EndDate:   end,
	})

	require.NoError(t, err)
	require.Len(t, notifier.scheduled, 1)
	require.NotNil(t, notifier.scheduled[0].NurseID)
	assert.Equal(t, uint64(200), *notifier.scheduled[0].NurseID)
}

func TestScheduleRequestNotPending(t *testing.T) {
	medicationRepo, _, notifier, svc := newMedicationFixture()
	medicationRepo.requests[1] = &model.MedicationRequest{ID: 1}
	medicationRepo.scheduleRows = 0

	err := svc.ScheduleRequest(context.Background(), 1, 200, &dto.ScheduleMedicationDTO{
		StartDate: time.Now(),
		EndDate:   time.Now().AddDate(0, 0, 1),
	})

	// 已被其他校医受理的申请不会二次通知
	assert.ErrorIs(t, err, ErrMedicationNotPending)
	assert.Empty(t, notifier.scheduled)
}
