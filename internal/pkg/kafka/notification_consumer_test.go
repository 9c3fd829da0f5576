package kafka

import (
	"SchoolCare/internal/api/config"
	"SchoolCare/internal/pkg/mongo"
	"SchoolCare/internal/pkg/notify"
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/IBM/sarama"
	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHandlerDefaultsWhenConfigEmpty(t *testing.T) {
	h := NewNotificationJobsHandler(nil, nil, nil, config.NotifyConfig{})

	assert.Equal(t, defaultConcurrency, h.concurrency)
	assert.Equal(t, defaultMaxAttempts, h.maxAttempts)
	assert.Equal(t, defaultBackoffBase, h.backoffBase)
	assert.Equal(t, int64(defaultCompleted), h.completedKeep)
}

func TestHandlerHonorsConfig(t *testing.T) {
	h := NewNotificationJobsHandler(nil, nil, nil, config.NotifyConfig{
		Concurrency:        4,
		MaxAttempts:        5,
		BackoffBaseSeconds: 2,
		CompletedRetention: 500,
	})

	assert.Equal(t, 4, h.concurrency)
	assert.Equal(t, 5, h.maxAttempts)
	assert.Equal(t, 2*time.Second, h.backoffBase)
	assert.Equal(t, int64(500), h.completedKeep)
}

type fakeDispatch struct {
	mu       sync.Mutex
	attempts int
	err      error
	onFirst  func()
}

func (f *fakeDispatch) Dispatch(context.Context, *notify.JobPayload) error {
	f.mu.Lock()
	f.attempts++
	n := f.attempts
	f.mu.Unlock()
	if n == 1 && f.onFirst != nil {
		f.onFirst()
	}
	return f.err
}

func (f *fakeDispatch) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.attempts
}

type fakeFailedJobs struct {
	mu       sync.Mutex
	inserted []*mongo.FailedJob
}

func (f *fakeFailedJobs) Insert(_ context.Context, job *mongo.FailedJob) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.inserted = append(f.inserted, job)
	return nil
}

func (f *fakeFailedJobs) GetList(context.Context, int64, int64) ([]*mongo.FailedJob, error) {
	return nil, nil
}

func (f *fakeFailedJobs) TrimToNewest(context.Context, int64) (int64, error) {
	return 0, nil
}

type fakeSession struct {
	ctx       context.Context
	mu        sync.Mutex
	marked    []*sarama.ConsumerMessage
	committed bool
}

func (f *fakeSession) Claims() map[string][]int32               { return nil }
func (f *fakeSession) MemberID() string                         { return "" }
func (f *fakeSession) GenerationID() int32                      { return 0 }
func (f *fakeSession) MarkOffset(string, int32, int64, string)  {}
func (f *fakeSession) ResetOffset(string, int32, int64, string) {}
func (f *fakeSession) Context() context.Context                 { return f.ctx }

func (f *fakeSession) MarkMessage(msg *sarama.ConsumerMessage, _ string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.marked = append(f.marked, msg)
}

func (f *fakeSession) Commit() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.committed = true
}

func newRetryHandler(dispatch *fakeDispatch, failedJobs *fakeFailedJobs, maxAttempts int, backoff time.Duration) *NotificationJobsHandler {
	return &NotificationJobsHandler{
		dispatch:      dispatch,
		failedJobRepo: failedJobs,
		concurrency:   2,
		maxAttempts:   maxAttempts,
		backoffBase:   backoff,
		completedKeep: 10,
	}
}

func jobMessage(t *testing.T, jobID string, offset int64) *sarama.ConsumerMessage {
	t.Helper()
	value, err := json.Marshal(&notify.JobPayload{
		JobID:        jobID,
		RecipientIDs: []uint64{1},
		Type:         notify.TypeHealthCheckCampaignNew,
		EntityID:     "1",
		EntityModel:  notify.EntityHealthCheckCampaign,
	})
	require.NoError(t, err)
	return &sarama.ConsumerMessage{Value: value, Offset: offset}
}

func TestProcessWithRetryExhaustsThenDeadLetters(t *testing.T) {
	dispatch := &fakeDispatch{err: errors.New("mongo unavailable")}
	failedJobs := &fakeFailedJobs{}
	h := newRetryHandler(dispatch, failedJobs, 3, time.Millisecond)

	terminal := h.processWithRetry(context.Background(), jobMessage(t, "job-1", 1))

	assert.True(t, terminal)
	assert.Equal(t, 3, dispatch.callCount())
	require.Len(t, failedJobs.inserted, 1)
	assert.Equal(t, "job-1", failedJobs.inserted[0].JobID)
	assert.Equal(t, 3, failedJobs.inserted[0].Attempts)
}

func TestProcessWithRetryDeadLettersMalformedPayload(t *testing.T) {
	dispatch := &fakeDispatch{}
	failedJobs := &fakeFailedJobs{}
	h := newRetryHandler(dispatch, failedJobs, 3, time.Millisecond)

	terminal := h.processWithRetry(context.Background(), &sarama.ConsumerMessage{Value: []byte("{not json")})

	assert.True(t, terminal)
	assert.Zero(t, dispatch.callCount())
	require.Len(t, failedJobs.inserted, 1)
	assert.Zero(t, failedJobs.inserted[0].Attempts)
}

func TestProcessBatchSkipsCommitWhenSessionEndsMidRetry(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	dispatch := &fakeDispatch{err: errors.New("push gateway down"), onFirst: cancel}
	failedJobs := &fakeFailedJobs{}
	h := newRetryHandler(dispatch, failedJobs, 3, time.Minute)
	session := &fakeSession{ctx: ctx}

	h.processBatch(session, []*sarama.ConsumerMessage{jobMessage(t, "job-1", 1)})

	// 任务未到终态，位点不能越过它提交，等重平衡后重新投递
	assert.Equal(t, 1, dispatch.callCount())
	assert.Empty(t, failedJobs.inserted)
	assert.Empty(t, session.marked)
	assert.False(t, session.committed)
}

func TestProcessBatchCommitsAfterDeadLetter(t *testing.T) {
	dispatch := &fakeDispatch{err: errors.New("mongo unavailable")}
	failedJobs := &fakeFailedJobs{}
	h := newRetryHandler(dispatch, failedJobs, 1, time.Millisecond)
	session := &fakeSession{ctx: context.Background()}
	messages := []*sarama.ConsumerMessage{jobMessage(t, "job-1", 1), jobMessage(t, "job-2", 2)}

	h.processBatch(session, messages)

	// 进死信也是终态，位点照常提交
	assert.Len(t, failedJobs.inserted, 2)
	require.Len(t, session.marked, 1)
	assert.Equal(t, int64(2), session.marked[0].Offset)
	assert.True(t, session.committed)
}
