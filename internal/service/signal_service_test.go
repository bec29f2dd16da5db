package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"btc-signal-bot/config"
	"btc-signal-bot/internal/indicator"
	"btc-signal-bot/pkg/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubMarketRepo struct {
	closes []float64
	err    error
	calls  int
}

func (s *stubMarketRepo) GetDailyCloses(ctx context.Context, days int) ([]float64, error) {
	s.calls++
	return s.closes, s.err
}

type stubNotifier struct {
	configured bool
	sendErr    error
	sent       []string
}

func (s *stubNotifier) Configured() bool { return s.configured }

func (s *stubNotifier) Send(ctx context.Context, text string) error {
	if s.sendErr != nil {
		return s.sendErr
	}
	s.sent = append(s.sent, text)
	return nil
}

func signalTestConfig() *config.Config {
	return &config.Config{
		Signal: config.SignalConfig{
			RSIPeriod:         14,
			OversoldThreshold: 30,
		},
	}
}

func ascendingSeries() []float64 {
	prices := make([]float64, 15)
	for i := range prices {
		prices[i] = 40000 + float64(i)*100
	}
	return prices
}

// decliningSeries has one gain of 2 and losses totalling 18 within the
// window, giving rs = 1/9 and RSI exactly 10.
func decliningSeries() []float64 {
	return []float64{100, 102, 100, 98, 96, 94, 92, 90, 88, 86, 84, 84, 84, 84, 84}
}

func TestCheckAndNotify_NoSignalOnAscendingSeries(t *testing.T) {
	repo := &stubMarketRepo{closes: ascendingSeries()}
	notifier := &stubNotifier{configured: true}
	svc := NewSignalService(signalTestConfig(), logger.NewNop(), repo, notifier)

	err := svc.CheckAndNotify(context.Background())

	require.NoError(t, err)
	assert.Empty(t, notifier.sent)

	eval := svc.LastEvaluation()
	require.NotNil(t, eval)
	assert.Equal(t, 100.0, eval.RSI)
	assert.False(t, eval.Triggered)
	assert.False(t, eval.Notified)
}

func TestCheckAndNotify_SendsAlertBelowThreshold(t *testing.T) {
	repo := &stubMarketRepo{closes: decliningSeries()}
	notifier := &stubNotifier{configured: true}
	svc := NewSignalService(signalTestConfig(), logger.NewNop(), repo, notifier)

	err := svc.CheckAndNotify(context.Background())

	require.NoError(t, err)
	require.Len(t, notifier.sent, 1)
	assert.Contains(t, notifier.sent[0], "10.00")
	assert.Contains(t, notifier.sent[0], "Disclaimer")

	eval := svc.LastEvaluation()
	require.NotNil(t, eval)
	assert.True(t, eval.Triggered)
	assert.True(t, eval.Notified)
	assert.InDelta(t, 10.0, eval.RSI, 1e-9)
	assert.WithinDuration(t, time.Now(), eval.CheckedAt, time.Minute)
}

func TestCheckAndNotify_MissingCredentials(t *testing.T) {
	repo := &stubMarketRepo{closes: decliningSeries()}
	notifier := &stubNotifier{configured: false}
	svc := NewSignalService(signalTestConfig(), logger.NewNop(), repo, notifier)

	err := svc.CheckAndNotify(context.Background())

	assert.ErrorIs(t, err, ErrMissingCredentials)
	assert.Zero(t, repo.calls, "must not fetch prices without credentials")
	assert.Empty(t, notifier.sent)
}

func TestCheckAndNotify_ProviderFailure(t *testing.T) {
	repo := &stubMarketRepo{err: errors.New("connection refused")}
	notifier := &stubNotifier{configured: true}
	svc := NewSignalService(signalTestConfig(), logger.NewNop(), repo, notifier)

	err := svc.CheckAndNotify(context.Background())

	assert.ErrorIs(t, err, ErrDataUnavailable)
	assert.Empty(t, notifier.sent)
}

func TestCheckAndNotify_InsufficientData(t *testing.T) {
	repo := &stubMarketRepo{closes: []float64{100, 101}}
	notifier := &stubNotifier{configured: true}
	svc := NewSignalService(signalTestConfig(), logger.NewNop(), repo, notifier)

	err := svc.CheckAndNotify(context.Background())

	assert.ErrorIs(t, err, indicator.ErrInsufficientData)
	assert.Empty(t, notifier.sent)
}

func TestCheckAndNotify_NotificationFailureCompletesCycle(t *testing.T) {
	repo := &stubMarketRepo{closes: decliningSeries()}
	notifier := &stubNotifier{configured: true, sendErr: errors.New("telegram: 502")}
	svc := NewSignalService(signalTestConfig(), logger.NewNop(), repo, notifier)

	err := svc.CheckAndNotify(context.Background())

	assert.NoError(t, err, "a failed notification must not fail the cycle")

	eval := svc.LastEvaluation()
	require.NotNil(t, eval)
	assert.True(t, eval.Triggered)
	assert.False(t, eval.Notified)
}
