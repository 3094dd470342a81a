package analytics

import (
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newMockedAggregator(t *testing.T) (*Aggregator, sqlmock.Sqlmock) {
	t.Helper()

	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })

	gdb, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	return NewAggregator(gdb), mock
}

func TestAggregatorCount(t *testing.T) {
	agg, mock := newMockedAggregator(t)
	companyID := uuid.New()

	mock.ExpectQuery(`SELECT count\(\*\) FROM "negotiation_analytics_events" WHERE company_id = \$1`).
		WithArgs(companyID).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(7))

	count, err := agg.Count("negotiation_analytics_events", map[string]interface{}{"company_id": companyID}, nil)
	require.NoError(t, err)
	assert.Equal(t, int64(7), count)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAggregatorAverage(t *testing.T) {
	agg, mock := newMockedAggregator(t)

	mock.ExpectQuery(`SELECT AVG\(conversation_duration_minutes\) AS avg FROM "negotiation_analytics_events"`).
		WillReturnRows(sqlmock.NewRows([]string{"avg"}).AddRow(12.5))

	avg, err := agg.Average("negotiation_analytics_events", "conversation_duration_minutes", nil)
	require.NoError(t, err)
	assert.Equal(t, 12.5, avg)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAggregatorAverageEmptySet(t *testing.T) {
	agg, mock := newMockedAggregator(t)

	mock.ExpectQuery(`SELECT AVG\(conversation_duration_minutes\) AS avg FROM "negotiation_analytics_events"`).
		WillReturnRows(sqlmock.NewRows([]string{"avg"}).AddRow(nil))

	avg, err := agg.Average("negotiation_analytics_events", "conversation_duration_minutes", nil)
	require.NoError(t, err)
	assert.Equal(t, 0.0, avg)
	assert.NoError(t, mock.ExpectationsWereMet())
}
