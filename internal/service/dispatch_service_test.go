package service

import (
	"SchoolCare/internal/model"
	pkgmongo "SchoolCare/internal/pkg/mongo"
	"SchoolCare/internal/pkg/notify"
	"SchoolCare/internal/pkg/push"
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type fakeNotificationRepo struct {
	inserted  []*pkgmongo.Notification
	insertErr error
}

func (f *fakeNotificationRepo) InsertBatch(_ context.Context, docs []*pkgmongo.Notification) error {
	if f.insertErr != nil {
		return f.insertErr
	}
	f.inserted = append(f.inserted, docs...)
	return nil
}

func (f *fakeNotificationRepo) GetListByRecipient(context.Context, uint64, int64, int64) ([]*pkgmongo.Notification, error) {
	return nil, nil
}

func (f *fakeNotificationRepo) GetUnreadCount(context.Context, uint64) (int64, error) {
	return 0, nil
}

func (f *fakeNotificationRepo) MarkAsRead(context.Context, uint64, primitive.ObjectID) error {
	return nil
}

func (f *fakeNotificationRepo) MarkAllAsRead(context.Context, uint64) error {
	return nil
}

func (f *fakeNotificationRepo) GetByID(context.Context, primitive.ObjectID) (*pkgmongo.Notification, error) {
	return nil, nil
}

type fakeTokenRepo struct {
	tokens  map[uint64][]string
	getErr  map[uint64]error
	removed map[uint64][]string
}

func newFakeTokenRepo() *fakeTokenRepo {
	return &fakeTokenRepo{
		tokens:  make(map[uint64][]string),
		getErr:  make(map[uint64]error),
		removed: make(map[uint64][]string),
	}
}

func (f *fakeTokenRepo) GetTokens(_ context.Context, userID uint64) ([]string, error) {
	if err := f.getErr[userID]; err != nil {
		return nil, err
	}
	return f.tokens[userID], nil
}

func (f *fakeTokenRepo) AddToken(_ context.Context, userID uint64, token string) error {
	f.tokens[userID] = append(f.tokens[userID], token)
	return nil
}

func (f *fakeTokenRepo) RemoveTokens(_ context.Context, userID uint64, tokens []string) error {
	f.removed[userID] = append(f.removed[userID], tokens...)
	return nil
}

type fakeUserRepo struct {
	users   map[uint64]*model.User
	roles   map[string][]uint64
	roleErr error
}

func (f *fakeUserRepo) GetUserById(_ context.Context, id uint64) (*model.User, error) {
	return f.users[id], nil
}

func (f *fakeUserRepo) GetUserByUsername(context.Context, string) (*model.User, error) {
	return nil, nil
}

func (f *fakeUserRepo) GetUserIDsByRole(_ context.Context, roleName string) ([]uint64, error) {
	if f.roleErr != nil {
		return nil, f.roleErr
	}
	return f.roles[roleName], nil
}

func (f *fakeUserRepo) CreateUser(context.Context, *model.User, string) error {
	return nil
}

type fakeGateway struct {
	enabled bool
	results map[string]string // token -> error code
	sendErr map[string]error  // first token -> error
	calls   [][]string
}

func (f *fakeGateway) Enabled() bool { return f.enabled }

func (f *fakeGateway) SendMulticast(_ context.Context, tokens []string, _, _ string, _ map[string]string) (*push.MulticastResult, error) {
	f.calls = append(f.calls, tokens)
	if len(tokens) > 0 {
		if err := f.sendErr[tokens[0]]; err != nil {
			return nil, err
		}
	}
	res := &push.MulticastResult{}
	for _, token := range tokens {
		code := f.results[token]
		if code == "" {
			res.SuccessCount++
		} else {
			res.FailureCount++
		}
		res.Results = append(res.Results, push.TokenResult{Token: token, Error: code})
	}
	return res, nil
}

func newDispatchFixture() (*fakeNotificationRepo, *fakeTokenRepo, *fakeUserRepo, *fakeGateway, NotificationDispatchService) {
	notificationRepo := &fakeNotificationRepo{}
	tokenRepo := newFakeTokenRepo()
	userRepo := &fakeUserRepo{users: make(map[uint64]*model.User)}
	gateway := &fakeGateway{enabled: true, results: map[string]string{}, sendErr: map[string]error{}}
	svc := NewNotificationDispatchService(notificationRepo, tokenRepo, userRepo, gateway)
	return notificationRepo, tokenRepo, userRepo, gateway, svc
}

func TestDispatchFanOutPerRecipient(t *testing.T) {
	notificationRepo, tokenRepo, _, _, svc := newDispatchFixture()
	tokenRepo.tokens[1] = []string{"tok-a"}
	tokenRepo.tokens[2] = []string{"tok-b"}

	err := svc.Dispatch(context.Background(), &notify.JobPayload{
		JobID:        "job-1",
		RecipientIDs: []uint64{1, 2, 2, 3, 1},
		Type:         notify.TypeIncidentAlert,
		EntityID:     "42",
		EntityModel:  notify.EntityIncident,
	})
	require.NoError(t, err)

	// 重复收件人只产生一条记录
	require.Len(t, notificationRepo.inserted, 3)
	for _, doc := range notificationRepo.inserted {
		assert.Equal(t, "job-1", doc.JobID)
		assert.Equal(t, string(notify.TypeIncidentAlert), doc.Type)
		assert.Equal(t, "42", doc.EntityID)
		assert.False(t, doc.IsRead)
	}
	assert.Equal(t, uint64(1), notificationRepo.inserted[0].RecipientID)
	assert.Equal(t, uint64(2), notificationRepo.inserted[1].RecipientID)
	assert.Equal(t, uint64(3), notificationRepo.inserted[2].RecipientID)
}

func TestDispatchEmptyRecipientsAcked(t *testing.T) {
	notificationRepo, _, _, gateway, svc := newDispatchFixture()

	err := svc.Dispatch(context.Background(), &notify.JobPayload{
		JobID:        "job-2",
		RecipientIDs: []uint64{0},
		Type:         notify.TypeResultReady,
	})

	// 空任务直接确认，不算失败
	require.NoError(t, err)
	assert.Empty(t, notificationRepo.inserted)
	assert.Empty(t, gateway.calls)
}

func TestDispatchPersistenceFailureReturnsError(t *testing.T) {
	notificationRepo, tokenRepo, _, gateway, svc := newDispatchFixture()
	notificationRepo.insertErr = errors.New("mongo down")
	tokenRepo.tokens[1] = []string{"tok-a"}

	err := svc.Dispatch(context.Background(), &notify.JobPayload{
		JobID:        "job-3",
		RecipientIDs: []uint64{1},
		Type:         notify.TypeChatMessage,
	})

	// 落库失败必须上抛让队列重试，且不做任何推送
	require.Error(t, err)
	assert.Empty(t, gateway.calls)
}

func TestDispatchPushFailureDoesNotFailJob(t *testing.T) {
	notificationRepo, tokenRepo, _, gateway, svc := newDispatchFixture()
	tokenRepo.tokens[1] = []string{"tok-bad"}
	tokenRepo.tokens[2] = []string{"tok-good"}
	gateway.sendErr["tok-bad"] = errors.New("provider unreachable")

	err := svc.Dispatch(context.Background(), &notify.JobPayload{
		JobID:        "job-4",
		RecipientIDs: []uint64{1, 2},
		Type:         notify.TypeMedicationScheduled,
	})

	// 单个收件人的推送失败不影响任务结果，其余收件人照常送达
	require.NoError(t, err)
	assert.Len(t, notificationRepo.inserted, 2)
	assert.Len(t, gateway.calls, 2)
}

func TestDispatchPrunesStaleTokens(t *testing.T) {
	_, tokenRepo, _, gateway, svc := newDispatchFixture()
	tokenRepo.tokens[7] = []string{"tok-live", "tok-dead", "tok-moved"}
	gateway.results["tok-dead"] = push.ErrCodeNotRegistered
	gateway.results["tok-moved"] = push.ErrCodeMismatchSenderID

	err := svc.Dispatch(context.Background(), &notify.JobPayload{
		JobID:        "job-5",
		RecipientIDs: []uint64{7},
		Type:         notify.TypeChatMessage,
	})

	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"tok-dead", "tok-moved"}, tokenRepo.removed[7])
}

func TestDispatchNoTokensSkipsGateway(t *testing.T) {
	notificationRepo, _, _, gateway, svc := newDispatchFixture()

	err := svc.Dispatch(context.Background(), &notify.JobPayload{
		JobID:        "job-6",
		RecipientIDs: []uint64{9},
		Type:         notify.TypeInventoryLowStock,
	})

	// 无设备的用户仍有站内通知，但不触发组播
	require.NoError(t, err)
	assert.Len(t, notificationRepo.inserted, 1)
	assert.Empty(t, gateway.calls)
}

func TestDispatchTokenLookupFailureIsolated(t *testing.T) {
	notificationRepo, tokenRepo, _, _, svc := newDispatchFixture()
	tokenRepo.getErr[1] = errors.New("redis timeout")
	tokenRepo.tokens[2] = []string{"tok-b"}

	err := svc.Dispatch(context.Background(), &notify.JobPayload{
		JobID:        "job-7",
		RecipientIDs: []uint64{1, 2},
		Type:         notify.TypeConsentSubmitted,
	})

	require.NoError(t, err)
	assert.Len(t, notificationRepo.inserted, 2)
}
