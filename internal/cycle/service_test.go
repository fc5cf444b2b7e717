package cycle_test

import (
	"context"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MrJamesThe3rd/intima/internal/cycle"
)

func TestService_Append(t *testing.T) {
	accountID := uuid.New()

	tests := []struct {
		name      string
		params    cycle.AppendParams
		setupMock func(m *cycle.MockRepository)
		wantErr   error
	}{
		{
			name:    "missing date",
			params:  cycle.AppendParams{Flow: cycle.FlowLight},
			wantErr: cycle.ErrInvalidDate,
		},
		{
			name:    "bad flow",
			params:  cycle.AppendParams{StartDate: date(2026, 1, 1), Flow: "gushing"},
			wantErr: cycle.ErrInvalidFlow,
		},
		{
			name:   "normalizes and stores",
			params: cycle.AppendParams{StartDate: date(2026, 1, 1), Flow: "Medium", Symptoms: []string{"Cramps", "cramps"}},
			setupMock: func(m *cycle.MockRepository) {
				m.EXPECT().CreateLogs(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, logs ...*cycle.Log) error {
					require.Len(t, logs, 1)
					assert.Equal(t, accountID, logs[0].AccountID)
					assert.Equal(t, cycle.FlowMedium, logs[0].Flow)
					assert.Equal(t, []string{"cramps"}, logs[0].Symptoms)

					return nil
				})
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			repo := cycle.NewMockRepository(ctrl)

			if tt.setupMock != nil {
				tt.setupMock(repo)
			}

			log, err := cycle.NewService(repo).Append(context.Background(), accountID, tt.params)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, date(2026, 1, 1), log.StartDate)
		})
	}
}

func TestService_Predict(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := cycle.NewMockRepository(ctrl)
	accountID := uuid.New()

	gomock.InOrder(
		repo.EXPECT().ListLogs(gomock.Any(), accountID, 0).Return(nil, nil),
		repo.EXPECT().ListLogs(gomock.Any(), accountID, 0).Return([]*cycle.Log{{StartDate: date(2026, 1, 1)}}, nil),
	)

	svc := cycle.NewService(repo)

	_, ok, err := svc.Predict(context.Background(), accountID, date(2026, 1, 12))
	require.NoError(t, err)
	assert.False(t, ok)

	p, ok, err := svc.Predict(context.Background(), accountID, date(2026, 1, 12))
	require.NoError(t, err)
	require.True(t, ok)
	assert.True(t, p.IsFertile)
	assert.Equal(t, 17, p.DaysUntilNext)
}

func TestService_Import_SkipsDuplicates(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := cycle.NewMockRepository(ctrl)
	accountID := uuid.New()

	repo.EXPECT().ListLogs(gomock.Any(), accountID, 0).Return([]*cycle.Log{{StartDate: date(2026, 1, 1)}}, nil)
	repo.EXPECT().CreateLogs(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, logs ...*cycle.Log) error {
		require.Len(t, logs, 1)
		assert.Equal(t, date(2026, 1, 29), logs[0].StartDate)

		return nil
	})

	in := "2026-01-01;medium;\n2026-01-29;light;cramps\n2026-01-29;light;cramps\n"

	res, err := cycle.NewService(repo).Import(context.Background(), accountID, strings.NewReader(in))
	require.NoError(t, err)
	assert.Len(t, res.Imported, 1)
	assert.Len(t, res.Duplicates, 2)
}
