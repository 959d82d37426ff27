package sqlite

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm/logger"

	gormstore "github.com/jpavlov47-ux/Jardova-online-kucha-ka/internal/infrastructure/persistence/gorm"
)

func TestSetupDatabase_CreatesSchema(t *testing.T) {
	db, err := SetupDatabase(filepath.Join(t.TempDir(), "test.db"), logger.Silent)
	require.NoError(t, err)

	assert.True(t, db.Migrator().HasTable(&gormstore.KVEntryModel{}))
}

func TestParseLogLevel(t *testing.T) {
	assert.Equal(t, logger.Silent, ParseLogLevel("silent"))
	assert.Equal(t, logger.Info, ParseLogLevel("info"))
	assert.Equal(t, logger.Warn, ParseLogLevel("whatever"))
}
